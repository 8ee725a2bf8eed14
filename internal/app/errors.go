/**
 * @description
 * Sentinel errors and the user-facing error taxonomy for the onboarding
 * service. Vendor HTTP statuses are folded into a small set of typed errors;
 * handlers map those to response codes and display strings.
 */

package app

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrInvalidCredentials covers vendor 401 on authentication.
	ErrInvalidCredentials = errors.New("wrong email and/or password")

	// ErrTooManyLoginAttempts covers both the local login rate limit and a
	// vendor 429.
	ErrTooManyLoginAttempts = errors.New("too many login attempts")

	// ErrSessionExpired is returned when the vendor rejects a session's
	// access token; the session has been revoked by the time callers see it.
	ErrSessionExpired = errors.New("session expired")

	// ErrForbidden covers vendor 403.
	ErrForbidden = errors.New("unauthorized")

	// ErrWorkflowStillExpired is returned when a renewed workflow comes back
	// expired again. Resolution never renews more than once per action.
	ErrWorkflowStillExpired = errors.New("compliance workflow still expired after renewal")

	// ErrNoWorkflow is returned when the customer has no compliance workflow
	// and one could not be created.
	ErrNoWorkflow = errors.New("no compliance workflow for customer")

	// ErrWatchExhausted is returned when a status watcher reaches its attempt
	// cap without observing the awaited condition.
	ErrWatchExhausted = errors.New("status watch exhausted its attempts")
)

// FieldErrors maps field names to validation messages. It is returned by
// profile validation and rendered field-scoped by the frontend.
type FieldErrors map[string]string

func (f FieldErrors) Error() string {
	fields := make([]string, 0, len(f))
	for field := range f {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, f[field]))
	}
	return "invalid profile: " + strings.Join(parts, "; ")
}
