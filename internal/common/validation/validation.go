package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Form field names.
const (
	FieldName       = "name"
	FieldMobile     = "mobile"
	FieldEmail      = "email"
	FieldInterest   = "interest"
	FieldAgeGroup   = "ageGroup"
	FieldOccupation = "occupation"
	FieldPostalCode = "postalCode"
)

var (
	ErrRequired      = errors.New("required")
	ErrInvalidFormat = errors.New("invalid format")
)

var (
	// Indian mobile: 10 digits, leading 6-9
	mobileRegex     = regexp.MustCompile(`^[6-9]\d{9}$`)
	emailRegex      = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	postalCodeRegex = regexp.MustCompile(`^\d{6}$`)
)

// AgeGroups are the accepted age group values.
var AgeGroups = []string{"18-24", "25-34", "35-44", "45-54", "55+"}

// RequiredFields must be present for a submission to be dispatched.
var RequiredFields = []string{FieldName, FieldMobile}

// OptionalFields are checked only when non-empty. Interest moves to the required set
// under Rules.RequireInterest.
var OptionalFields = []string{FieldEmail, FieldInterest, FieldAgeGroup, FieldOccupation, FieldPostalCode}

// Rules selects which form variant is being validated.
type Rules struct {
	// RequireInterest makes the interest dropdown mandatory
	RequireInterest bool
}

// Known reports whether field is a form field.
func Known(field string) bool {
	for _, f := range RequiredFields {
		if f == field {
			return true
		}
	}
	for _, f := range OptionalFields {
		if f == field {
			return true
		}
	}
	return false
}

// FieldError is a verdict on one form field.
type FieldError struct {
	Field  string
	Reason error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Reason)
}

func (e *FieldError) Unwrap() error {
	return e.Reason
}

// Message is the inline text shown next to the field.
func (e *FieldError) Message() string {
	switch e.Field {
	case FieldName:
		return "Name is required"
	case FieldMobile:
		if errors.Is(e.Reason, ErrRequired) {
			return "Mobile number is required"
		}
		return "Enter valid 10-digit mobile number starting with 6-9"
	case FieldEmail:
		return "Enter a valid email address"
	case FieldInterest:
		return "Please select an interest"
	case FieldPostalCode:
		return "Enter a valid 6-digit PIN code"
	case FieldAgeGroup:
		return "Select a valid age group"
	}
	return e.Error()
}

// ValidateField checks a single raw field value. It returns nil when the value is
// acceptable. Unknown fields are always valid.
func (r Rules) ValidateField(field, value string) error {
	switch field {
	case FieldName:
		if strings.TrimSpace(value) == "" {
			return &FieldError{Field: field, Reason: ErrRequired}
		}
	case FieldMobile:
		if value == "" {
			return &FieldError{Field: field, Reason: ErrRequired}
		}
		if !mobileRegex.MatchString(value) {
			return &FieldError{Field: field, Reason: ErrInvalidFormat}
		}
	case FieldEmail:
		if value != "" && !emailRegex.MatchString(value) {
			return &FieldError{Field: field, Reason: ErrInvalidFormat}
		}
	case FieldInterest:
		if r.RequireInterest && strings.TrimSpace(value) == "" {
			return &FieldError{Field: field, Reason: ErrRequired}
		}
	case FieldPostalCode:
		if value != "" && !postalCodeRegex.MatchString(value) {
			return &FieldError{Field: field, Reason: ErrInvalidFormat}
		}
	case FieldAgeGroup:
		if value != "" && !isAgeGroup(value) {
			return &FieldError{Field: field, Reason: ErrInvalidFormat}
		}
	}
	return nil
}

func isAgeGroup(v string) bool {
	for _, g := range AgeGroups {
		if v == g {
			return true
		}
	}
	return false
}

// Fields exposes named form values.
type Fields interface {
	Field(name string) string
}

// FieldErrors maps a field name to its error.
type FieldErrors map[string]*FieldError

// Messages returns the inline message per field.
func (fe FieldErrors) Messages() map[string]string {
	out := make(map[string]string, len(fe))
	for field, err := range fe {
		out[field] = err.Message()
	}
	return out
}

// Validate collects every field error of a submission.
func (r Rules) Validate(f Fields) FieldErrors {
	errs := FieldErrors{}
	for _, field := range RequiredFields {
		r.check(errs, field, f.Field(field))
	}
	for _, field := range OptionalFields {
		r.check(errs, field, f.Field(field))
	}
	return errs
}

func (r Rules) check(errs FieldErrors, field, value string) {
	if err := r.ValidateField(field, value); err != nil {
		var fe *FieldError
		if errors.As(err, &fe) {
			errs[field] = fe
		}
	}
}

// IsSubmittable reports whether every required field is present and valid and every
// optional field that is present is valid.
func (r Rules) IsSubmittable(f Fields) bool {
	for _, field := range RequiredFields {
		v := f.Field(field)
		if strings.TrimSpace(v) == "" || r.ValidateField(field, v) != nil {
			return false
		}
	}
	for _, field := range OptionalFields {
		if r.ValidateField(field, f.Field(field)) != nil {
			return false
		}
	}
	return true
}
