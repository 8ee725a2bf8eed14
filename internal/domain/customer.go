/**
 * @description
 * Customer models mirroring the Rize customer record. The customer is owned
 * by the vendor; this service holds a read-mostly copy per request and never
 * attempts conflict resolution (last fetch wins).
 *
 * @notes
 * - The presence of details.first_name is used as the proxy for "PII has been
 *   submitted", matching the vendor contract.
 */

package domain

// Customer statuses reported by the vendor. The set is open-ended; these are
// the values the onboarding flow branches on.
const (
	CustomerStatusInitiated        = "initiated"
	CustomerStatusQueued           = "queued"
	CustomerStatusIdentityVerified = "identity_verified"
	CustomerStatusManualReview     = "manual_review"
	CustomerStatusUnderReview      = "under_review"
	CustomerStatusRejected         = "rejected"
	CustomerStatusActive           = "active"
	CustomerStatusArchived         = "archived"
)

// CustomerAddress is the customer's residential address.
type CustomerAddress struct {
	Street1    string `json:"street1"`
	Street2    string `json:"street2,omitempty"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
}

// CustomerDetails holds the PII collected during onboarding.
type CustomerDetails struct {
	FirstName   string           `json:"first_name"`
	MiddleName  string           `json:"middle_name,omitempty"`
	LastName    string           `json:"last_name"`
	Suffix      string           `json:"suffix,omitempty"`
	Phone       string           `json:"phone"`
	// SSN is write-only: sent on the first profile submission, never echoed
	// back by the vendor.
	SSN         string           `json:"ssn,omitempty"`
	SSNLastFour string           `json:"ssn_last_four,omitempty"`
	DOB         string           `json:"dob"`
	Address     *CustomerAddress `json:"address,omitempty"`
}

// Customer is the vendor's customer record.
type Customer struct {
	UID         string           `json:"uid"`
	ExternalUID string           `json:"external_uid"`
	Email       string           `json:"email"`
	Status      string           `json:"status"`
	Details     *CustomerDetails `json:"details,omitempty"`
}

// HasSubmittedPII reports whether identity details have been captured for the
// customer.
func (c *Customer) HasSubmittedPII() bool {
	return c != nil && c.Details != nil && c.Details.FirstName != ""
}

// HasDOB reports whether a date of birth is already on file. SSN is only
// required on the first profile submission, and the vendor contract uses the
// stored DOB as the marker for that.
func (c *Customer) HasDOB() bool {
	return c != nil && c.Details != nil && c.Details.DOB != ""
}

// CustomerProduct is a product enrollment on the customer (e.g. checking).
type CustomerProduct struct {
	UID         string `json:"uid"`
	ProductUID  string `json:"product_uid"`
	ProductName string `json:"product_name"`
	CustomerUID string `json:"customer_uid"`
	Status      string `json:"status"`
}

// ProfileAnswer is a single response to a program profile requirement,
// submitted in batch during onboarding.
type ProfileAnswer struct {
	ProfileRequirementUID string `json:"profile_requirement_uid"`
	ProfileResponse       string `json:"profile_response"`
}
