/**
 * @description
 * Message payloads published to RabbitMQ as the customer moves through
 * onboarding. Downstream consumers (analytics, notifications) subscribe to
 * the rize.onboarding topic exchange.
 */

package domain

import (
	"time"

	"github.com/google/uuid"
)

// StepAdvancedEvent is published whenever step resolution lands on a
// different step than the one last seen for the session.
type StepAdvancedEvent struct {
	EventID     uuid.UUID      `json:"event_id"`
	CustomerUID string         `json:"customer_uid"`
	WorkflowUID string         `json:"workflow_uid"`
	Step        OnboardingStep `json:"step"`
	Timestamp   time.Time      `json:"timestamp"`
}

// DocumentsAcknowledgedEvent is published after a successful batch
// acknowledgement call.
type DocumentsAcknowledgedEvent struct {
	EventID      uuid.UUID `json:"event_id"`
	CustomerUID  string    `json:"customer_uid"`
	WorkflowUID  string    `json:"workflow_uid"`
	DocumentUIDs []string  `json:"document_uids"`
	IPAddress    string    `json:"ip_address"`
	Timestamp    time.Time `json:"timestamp"`
}

// ProfileSubmittedEvent is published after PII has been accepted by the
// vendor. It intentionally carries no PII fields.
type ProfileSubmittedEvent struct {
	EventID     uuid.UUID `json:"event_id"`
	CustomerUID string    `json:"customer_uid"`
	Timestamp   time.Time `json:"timestamp"`
}

// CustomerStatusChangedEvent is published when a refresh observes a new
// vendor customer status.
type CustomerStatusChangedEvent struct {
	EventID        uuid.UUID `json:"event_id"`
	CustomerUID    string    `json:"customer_uid"`
	PreviousStatus string    `json:"previous_status"`
	Status         string    `json:"status"`
	Timestamp      time.Time `json:"timestamp"`
}

// CardReissuedEvent is published when a card reissue has been requested.
type CardReissuedEvent struct {
	EventID     uuid.UUID `json:"event_id"`
	CustomerUID string    `json:"customer_uid"`
	CardUID     string    `json:"card_uid"`
	Reason      string    `json:"reason"`
	Timestamp   time.Time `json:"timestamp"`
}
