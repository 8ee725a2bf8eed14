package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func validParams() ProfileParams {
	return ProfileParams{
		FirstName:  "Jane",
		LastName:   "Doe",
		Phone:      "5551234567",
		SSN:        "123-45-6789",
		DOB:        "1990-06-15",
		Street1:    "123 Main St",
		City:       "Austin",
		State:      "TX",
		PostalCode: "78701",
	}
}

func TestFormatPhone(t *testing.T) {
	require.Equal(t, "(555) 123-4567", FormatPhone("5551234567"))
	require.Equal(t, "(555) 123-4567", FormatPhone("555-123-4567"))
	// Already formatted input passes through unchanged, so formatting twice
	// is safe.
	require.Equal(t, "(555) 123-4567", FormatPhone(FormatPhone("5551234567")))
	// Too few digits are left alone for validation to reject.
	require.Equal(t, "12345", FormatPhone("12345"))
}

func TestValidateProfileAcceptsValidSubmission(t *testing.T) {
	now := time.Date(2022, 3, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, ValidateProfile(validParams(), true, now))
}

func TestValidateProfileDOBBoundary(t *testing.T) {
	now := time.Date(2022, 3, 1, 0, 0, 0, 0, time.UTC)

	t.Run("18th birthday today is eligible", func(t *testing.T) {
		p := validParams()
		p.DOB = "2004-03-01"
		require.NoError(t, ValidateProfile(p, true, now))
	})

	t.Run("one day short of 18 is rejected", func(t *testing.T) {
		p := validParams()
		p.DOB = "2004-03-02"
		err := ValidateProfile(p, true, now)
		var fieldErrs FieldErrors
		require.ErrorAs(t, err, &fieldErrs)
		require.Contains(t, fieldErrs, "dob")
	})

	t.Run("garbage date is rejected", func(t *testing.T) {
		p := validParams()
		p.DOB = "June 15 1990"
		err := ValidateProfile(p, true, now)
		var fieldErrs FieldErrors
		require.ErrorAs(t, err, &fieldErrs)
		require.Contains(t, fieldErrs, "dob")
	})
}

func TestValidateProfileSSNRequirement(t *testing.T) {
	now := time.Date(2022, 3, 1, 0, 0, 0, 0, time.UTC)

	t.Run("missing ssn rejected when required", func(t *testing.T) {
		p := validParams()
		p.SSN = ""
		err := ValidateProfile(p, true, now)
		var fieldErrs FieldErrors
		require.ErrorAs(t, err, &fieldErrs)
		require.Contains(t, fieldErrs, "ssn")
	})

	t.Run("missing ssn allowed when not required", func(t *testing.T) {
		p := validParams()
		p.SSN = ""
		require.NoError(t, ValidateProfile(p, false, now))
	})

	t.Run("malformed ssn rejected", func(t *testing.T) {
		p := validParams()
		p.SSN = "123456789"
		err := ValidateProfile(p, true, now)
		var fieldErrs FieldErrors
		require.ErrorAs(t, err, &fieldErrs)
		require.Contains(t, fieldErrs, "ssn")
	})
}

func TestValidateProfileCollectsAllErrors(t *testing.T) {
	now := time.Date(2022, 3, 1, 0, 0, 0, 0, time.UTC)
	err := ValidateProfile(ProfileParams{}, true, now)
	var fieldErrs FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	for _, field := range []string{"first_name", "last_name", "phone", "ssn", "dob", "street1", "city", "state", "postal_code"} {
		require.Contains(t, fieldErrs, field)
	}
}

func TestValidateProfilePostalCode(t *testing.T) {
	now := time.Date(2022, 3, 1, 0, 0, 0, 0, time.UTC)
	p := validParams()
	p.PostalCode = "787"
	err := ValidateProfile(p, true, now)
	var fieldErrs FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	require.Contains(t, fieldErrs, "postal_code")
}
