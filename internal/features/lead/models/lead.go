package models

import (
	"strings"

	"lead-voucher-backend/internal/common/validation"
)

// Interest is the product category a lead is interested in
type Interest string

const (
	InterestLaptops     Interest = "Laptops"
	InterestDesktops    Interest = "Desktops"
	InterestPrinters    Interest = "Printers"
	InterestMonitors    Interest = "Monitors"
	InterestAccessories Interest = "Accessories"
	InterestGaming      Interest = "Gaming"
)

// LeadSubmission is a snapshot of the form at the moment the user submits it.
type LeadSubmission struct {
	Name       string   `json:"name" example:"Asha"`
	Mobile     string   `json:"mobile" example:"9123456789"`
	Email      string   `json:"email,omitempty" example:"asha@example.com"`
	Interest   Interest `json:"interest" example:"Printers"`
	AgeGroup   string   `json:"ageGroup,omitempty" example:"25-34"`
	Occupation string   `json:"occupation,omitempty" example:"Engineer"`
	PostalCode string   `json:"postalCode,omitempty" example:"560001"`
}

// Normalized returns a copy with surrounding whitespace removed from every field.
func (s LeadSubmission) Normalized() LeadSubmission {
	return LeadSubmission{
		Name:       strings.TrimSpace(s.Name),
		Mobile:     strings.TrimSpace(s.Mobile),
		Email:      strings.TrimSpace(s.Email),
		Interest:   Interest(strings.TrimSpace(string(s.Interest))),
		AgeGroup:   strings.TrimSpace(s.AgeGroup),
		Occupation: strings.TrimSpace(s.Occupation),
		PostalCode: strings.TrimSpace(s.PostalCode),
	}
}

// Field returns the raw value of a named form field.
func (s LeadSubmission) Field(name string) string {
	switch name {
	case validation.FieldName:
		return s.Name
	case validation.FieldMobile:
		return s.Mobile
	case validation.FieldEmail:
		return s.Email
	case validation.FieldInterest:
		return string(s.Interest)
	case validation.FieldAgeGroup:
		return s.AgeGroup
	case validation.FieldOccupation:
		return s.Occupation
	case validation.FieldPostalCode:
		return s.PostalCode
	default:
		return ""
	}
}
