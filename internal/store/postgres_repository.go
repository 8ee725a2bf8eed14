/**
 * @description
 * This file provides the PostgreSQL implementation of the `Repository`
 * interface: SQL for the sessions table and the document acknowledgement
 * audit trail.
 *
 * @dependencies
 * - context, time: Standard Go libraries.
 * - github.com/jackc/pgx/v5: The PostgreSQL driver for database operations.
 * - internal/domain: Contains the domain models used for data transfer.
 */

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/RizeFinance/onboarding-service/internal/domain"
)

// PostgresRepository is a concrete implementation of the Repository interface for PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a new instance of PostgresRepository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// CreateSession persists a new session row.
func (r *PostgresRepository) CreateSession(ctx context.Context, session *domain.Session) error {
	query := `
		INSERT INTO sessions (id, customer_uid, external_uid, email, access_token, refresh_token, customer_status, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.db.Exec(ctx, query,
		session.ID, session.CustomerUID, session.ExternalUID, session.Email,
		session.AccessToken, session.RefreshToken, session.CustomerStatus,
		session.CreatedAt, session.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}
	return nil
}

// FindSessionByID retrieves a session by id. Revoked sessions are treated as
// not found so callers have a single rejection path.
func (r *PostgresRepository) FindSessionByID(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	var session domain.Session
	query := `
		SELECT id, customer_uid, external_uid, email, access_token, refresh_token, customer_status, created_at, expires_at, revoked_at
		FROM sessions
		WHERE id = $1 AND revoked_at IS NULL`
	err := r.db.QueryRow(ctx, query, id).Scan(
		&session.ID, &session.CustomerUID, &session.ExternalUID, &session.Email,
		&session.AccessToken, &session.RefreshToken, &session.CustomerStatus,
		&session.CreatedAt, &session.ExpiresAt, &session.RevokedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return &session, nil
}

// RevokeSession marks a session as revoked. Revoking an already revoked or
// unknown session is a no-op.
func (r *PostgresRepository) RevokeSession(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE sessions SET revoked_at = now() WHERE id = $1 AND revoked_at IS NULL`
	_, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}

// UpdateSessionCustomerStatus records the latest vendor customer status on
// the session row so sweep jobs can skip settled customers.
func (r *PostgresRepository) UpdateSessionCustomerStatus(ctx context.Context, id uuid.UUID, status string) error {
	query := `UPDATE sessions SET customer_status = $2 WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("failed to update session customer status: %w", err)
	}
	return nil
}

// ListActiveSessions returns unrevoked, unexpired sessions, oldest first.
func (r *PostgresRepository) ListActiveSessions(ctx context.Context, limit int) ([]domain.Session, error) {
	if limit <= 0 {
		limit = 100
	}
	query := `
		SELECT id, customer_uid, external_uid, email, access_token, refresh_token, customer_status, created_at, expires_at, revoked_at
		FROM sessions
		WHERE revoked_at IS NULL AND expires_at > now()
		ORDER BY created_at ASC
		LIMIT $1`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list active sessions: %w", err)
	}
	defer rows.Close()

	var sessions []domain.Session
	for rows.Next() {
		var session domain.Session
		if err := rows.Scan(
			&session.ID, &session.CustomerUID, &session.ExternalUID, &session.Email,
			&session.AccessToken, &session.RefreshToken, &session.CustomerStatus,
			&session.CreatedAt, &session.ExpiresAt, &session.RevokedAt,
		); err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	return sessions, rows.Err()
}

// DeleteExpiredSessions removes sessions that expired before the cutoff and
// returns the number of rows deleted.
func (r *PostgresRepository) DeleteExpiredSessions(ctx context.Context, before time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM sessions WHERE expires_at < $1`, before)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	return tag.RowsAffected(), nil
}

// RecordAcknowledgements inserts the audit rows for one acknowledgement batch
// in a single transaction.
func (r *PostgresRepository) RecordAcknowledgements(ctx context.Context, records []domain.AcknowledgementRecord) error {
	if len(records) == 0 {
		return nil
	}
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin acknowledgement transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO document_acknowledgements (id, session_id, workflow_uid, document_uid, external_storage_name, ip_address, user_name, acknowledged_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	for _, record := range records {
		if _, err := tx.Exec(ctx, query,
			record.ID, record.SessionID, record.WorkflowUID, record.DocumentUID,
			record.ExternalStorageName, record.IPAddress, record.UserName, record.AcknowledgedAt,
		); err != nil {
			return fmt.Errorf("failed to insert acknowledgement record: %w", err)
		}
	}
	return tx.Commit(ctx)
}

// ListAcknowledgementsByWorkflow returns the audit rows for one workflow in
// acknowledgement order.
func (r *PostgresRepository) ListAcknowledgementsByWorkflow(ctx context.Context, workflowUID string) ([]domain.AcknowledgementRecord, error) {
	query := `
		SELECT id, session_id, workflow_uid, document_uid, external_storage_name, ip_address, user_name, acknowledged_at
		FROM document_acknowledgements
		WHERE workflow_uid = $1
		ORDER BY acknowledged_at ASC`
	rows, err := r.db.Query(ctx, query, workflowUID)
	if err != nil {
		return nil, fmt.Errorf("failed to list acknowledgements: %w", err)
	}
	defer rows.Close()

	var records []domain.AcknowledgementRecord
	for rows.Next() {
		var record domain.AcknowledgementRecord
		if err := rows.Scan(
			&record.ID, &record.SessionID, &record.WorkflowUID, &record.DocumentUID,
			&record.ExternalStorageName, &record.IPAddress, &record.UserName, &record.AcknowledgedAt,
		); err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}
