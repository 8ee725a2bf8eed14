/**
 * @description
 * Session and audit models owned by this service (everything else in the
 * domain package mirrors vendor records). A session binds a frontend bearer
 * token to the vendor access/refresh token pair obtained at login or signup.
 * Sessions are destroyed at logout or when the vendor rejects the access
 * token.
 */

package domain

import (
	"time"

	"github.com/google/uuid"
)

// Session is one authenticated frontend session.
type Session struct {
	ID             uuid.UUID  `json:"id"`
	CustomerUID    string     `json:"customer_uid"`
	ExternalUID    string     `json:"external_uid"`
	Email          string     `json:"email"`
	AccessToken    string     `json:"-"`
	RefreshToken   string     `json:"-"`
	CustomerStatus string     `json:"customer_status"`
	CreatedAt      time.Time  `json:"created_at"`
	ExpiresAt      time.Time  `json:"expires_at"`
	RevokedAt      *time.Time `json:"revoked_at,omitempty"`
}

// Active reports whether the session can still be used at the given instant.
func (s *Session) Active(now time.Time) bool {
	return s != nil && s.RevokedAt == nil && now.Before(s.ExpiresAt)
}

// AcknowledgementRecord is one row of the document acknowledgement audit
// trail. The vendor holds the authoritative acceptance state; this trail
// records who consented to what, from which address, and when.
type AcknowledgementRecord struct {
	ID                  uuid.UUID `json:"id"`
	SessionID           uuid.UUID `json:"session_id"`
	WorkflowUID         string    `json:"workflow_uid"`
	DocumentUID         string    `json:"document_uid"`
	ExternalStorageName string    `json:"external_storage_name"`
	IPAddress           string    `json:"ip_address"`
	UserName            string    `json:"user_name"`
	AcknowledgedAt      time.Time `json:"acknowledged_at"`
}
