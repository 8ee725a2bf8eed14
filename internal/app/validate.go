/**
 * @description
 * Profile (PII) validation for the onboarding flow. All fields are validated
 * together and failures are returned as a field->message map so the API can
 * render every error in one round trip.
 */

package app

import (
	"regexp"
	"strings"
	"time"
)

var (
	phonePattern  = regexp.MustCompile(`^\(\d{3}\) \d{3}-\d{4}$`)
	postalPattern = regexp.MustCompile(`^\d{5}$`)
	ssnPattern    = regexp.MustCompile(`^\d{3}-\d{2}-\d{4}$`)
	digitPattern  = regexp.MustCompile(`\D`)
)

const profileDateLayout = "2006-01-02"

// ProfileParams is the raw PII submission from the client.
type ProfileParams struct {
	FirstName  string `json:"first_name"`
	MiddleName string `json:"middle_name"`
	LastName   string `json:"last_name"`
	Suffix     string `json:"suffix"`
	Phone      string `json:"phone"`
	SSN        string `json:"ssn"`
	DOB        string `json:"dob"`
	Street1    string `json:"street1"`
	Street2    string `json:"street2"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
}

// FormatPhone normalizes a ten digit number into the "(999) 999-9999" display
// form. Already formatted input and input with too few digits pass through
// unchanged, so the function is safe to apply repeatedly.
func FormatPhone(raw string) string {
	if phonePattern.MatchString(raw) {
		return raw
	}
	digits := digitPattern.ReplaceAllString(raw, "")
	if len(digits) != 10 {
		return raw
	}
	return "(" + digits[:3] + ") " + digits[3:6] + "-" + digits[6:]
}

// ValidateProfile checks every field and returns the full set of failures.
// ssnRequired is false when the vendor already holds a date of birth for the
// customer, which indicates identity was captured in a prior application.
func ValidateProfile(p ProfileParams, ssnRequired bool, now time.Time) error {
	errs := FieldErrors{}

	if strings.TrimSpace(p.FirstName) == "" {
		errs["first_name"] = "First name is required"
	}
	if strings.TrimSpace(p.LastName) == "" {
		errs["last_name"] = "Last name is required"
	}

	phone := FormatPhone(p.Phone)
	if strings.TrimSpace(p.Phone) == "" {
		errs["phone"] = "Phone number is required"
	} else if !phonePattern.MatchString(phone) {
		errs["phone"] = "Phone number is invalid"
	}

	if ssnRequired {
		if strings.TrimSpace(p.SSN) == "" {
			errs["ssn"] = "Social Security Number is required"
		} else if !ssnPattern.MatchString(p.SSN) {
			errs["ssn"] = "Social Security Number must match 999-99-9999"
		}
	}

	if strings.TrimSpace(p.DOB) == "" {
		errs["dob"] = "Date of birth is required"
	} else if dob, err := time.Parse(profileDateLayout, p.DOB); err != nil {
		errs["dob"] = "Date of birth is invalid"
	} else if dob.After(now.AddDate(-18, 0, 0)) {
		// A customer whose 18th birthday is today is eligible.
		errs["dob"] = "You must be at least 18 years old"
	}

	if strings.TrimSpace(p.Street1) == "" {
		errs["street1"] = "Street address is required"
	}
	if strings.TrimSpace(p.City) == "" {
		errs["city"] = "City is required"
	}
	if strings.TrimSpace(p.State) == "" {
		errs["state"] = "State is required"
	}
	if strings.TrimSpace(p.PostalCode) == "" {
		errs["postal_code"] = "Postal code is required"
	} else if !postalPattern.MatchString(p.PostalCode) {
		errs["postal_code"] = "Postal code must be 5 digits"
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
