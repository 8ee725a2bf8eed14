/**
 * @description
 * This file defines the `Repository` interface, the contract for all data
 * access needed by the onboarding service: session persistence, the document
 * acknowledgement audit trail, and sweep queries for the scheduled jobs.
 * Defining an interface decouples the application logic from PostgreSQL and
 * lets tests substitute in-memory stubs.
 *
 * @dependencies
 * - context, time: Standard Go libraries.
 * - github.com/google/uuid: For session identifiers.
 * - internal/domain: For the service's domain models.
 */

package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/RizeFinance/onboarding-service/internal/domain"
)

var (
	// ErrSessionNotFound is returned when a session id does not exist or the
	// session has been revoked.
	ErrSessionNotFound = errors.New("session not found")
)

// Repository defines the set of methods for interacting with the database.
type Repository interface {
	// Session methods
	CreateSession(ctx context.Context, session *domain.Session) error
	FindSessionByID(ctx context.Context, id uuid.UUID) (*domain.Session, error)
	RevokeSession(ctx context.Context, id uuid.UUID) error
	UpdateSessionCustomerStatus(ctx context.Context, id uuid.UUID, status string) error
	ListActiveSessions(ctx context.Context, limit int) ([]domain.Session, error)
	DeleteExpiredSessions(ctx context.Context, before time.Time) (int64, error)

	// Acknowledgement audit methods
	RecordAcknowledgements(ctx context.Context, records []domain.AcknowledgementRecord) error
	ListAcknowledgementsByWorkflow(ctx context.Context, workflowUID string) ([]domain.AcknowledgementRecord, error)
}
