/**
 * @description
 * Scheduled job implementations for the onboarding service: purging expired
 * sessions and sweeping in-review customers for status changes so events fire
 * even when the customer never reopens the app.
 */
package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/RizeFinance/onboarding-service/internal/domain"
	"github.com/RizeFinance/onboarding-service/internal/store"
)

// Jobs contains the logic for all scheduled tasks.
type Jobs struct {
	service        *Service
	repo           store.Repository
	logger         *slog.Logger
	sweepBatchSize int
}

// NewJobs creates a new Jobs runner.
func NewJobs(service *Service, repo store.Repository, logger *slog.Logger, sweepBatchSize int) *Jobs {
	if sweepBatchSize <= 0 {
		sweepBatchSize = 100
	}
	return &Jobs{
		service:        service,
		repo:           repo,
		logger:         logger,
		sweepBatchSize: sweepBatchSize,
	}
}

// PurgeExpiredSessions deletes sessions past their expiry.
func (j *Jobs) PurgeExpiredSessions() {
	ctx := context.Background()
	deleted, err := j.repo.DeleteExpiredSessions(ctx, time.Now().UTC())
	if err != nil {
		j.logger.Error("failed to purge expired sessions", "error", err)
		return
	}
	if deleted > 0 {
		j.logger.Info("purged expired sessions", "count", deleted)
	}
}

// SweepPendingCustomers refreshes the vendor status of customers whose
// applications are still under review. Status changes are published the same
// way an interactive refresh publishes them.
func (j *Jobs) SweepPendingCustomers() {
	j.logger.Info("starting pending customer sweep")
	ctx := context.Background()

	sessions, err := j.repo.ListActiveSessions(ctx, j.sweepBatchSize)
	if err != nil {
		j.logger.Error("failed to list active sessions for sweep", "error", err)
		return
	}

	var refreshed int
	for i := range sessions {
		session := &sessions[i]
		if !pendingStatus(session.CustomerStatus) {
			continue
		}
		customer, err := j.service.rize.GetCustomer(ctx, session.AccessToken)
		if err != nil {
			// Dead vendor tokens are revoked by wrapVendorErr; everything
			// else just waits for the next sweep.
			if wrapErr := j.service.wrapVendorErr(ctx, session, err); wrapErr != ErrSessionExpired {
				j.logger.Warn("failed to refresh customer during sweep", "session_id", session.ID, "error", wrapErr)
			}
			continue
		}
		j.service.noteCustomerStatus(ctx, session, customer)
		refreshed++
	}

	j.logger.Info("pending customer sweep finished", "refreshed", refreshed)
}

// pendingStatus reports whether a customer status can still change without
// user action.
func pendingStatus(status string) bool {
	switch status {
	case domain.CustomerStatusQueued,
		domain.CustomerStatusIdentityVerified,
		domain.CustomerStatusManualReview,
		domain.CustomerStatusUnderReview:
		return true
	default:
		return false
	}
}
