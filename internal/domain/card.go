/**
 * @description
 * Debit card models covering the vendor card lifecycle: issuance, lock and
 * unlock, reissue after loss or damage, physical activation and PIN set.
 */

package domain

import "time"

// Debit card statuses reported by the vendor.
const (
	CardStatusQueued              = "queued"
	CardStatusIssued              = "issued"
	CardStatusPrintingPhysical    = "printing_physical_card"
	CardStatusReplacementShipped  = "card_replacement_shipped"
	CardStatusUsableWithoutPIN    = "usable_without_pin"
	CardStatusNormal              = "normal"
	CardStatusLocked              = "locked"
	CardStatusClosed              = "closed"
)

// DebitCard is a vendor debit card record.
type DebitCard struct {
	UID                 string     `json:"uid"`
	CustomerUID         string     `json:"customer_uid"`
	SyntheticAccountUID string     `json:"synthetic_account_uid"`
	PoolUID             string     `json:"pool_uid,omitempty"`
	Status              string     `json:"status"`
	Type                string     `json:"type"` // "virtual" or "physical"
	CardLastFourDigits  string     `json:"card_last_four_digits,omitempty"`
	LockReason          string     `json:"lock_reason,omitempty"`
	LockedAt            *time.Time `json:"locked_at,omitempty"`
	IssuedOn            string     `json:"issued_on,omitempty"`
	ClosedAt            *time.Time `json:"closed_at,omitempty"`
}

// Usable reports whether the card can transact (possibly before a PIN is set).
func (c DebitCard) Usable() bool {
	return c.Status == CardStatusNormal || c.Status == CardStatusUsableWithoutPIN
}
