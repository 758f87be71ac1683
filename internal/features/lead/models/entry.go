package models

import (
	"time"

	"github.com/google/uuid"
)

// LogEntry is one relayed submission in the local submission log.
type LogEntry struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Mobile     string    `json:"mobile"`
	Email      string    `json:"email"`
	Occupation string    `json:"occupation"`
	Interest   Interest  `json:"interest,omitempty"`
	AgeGroup   string    `json:"ageGroup,omitempty"`
	PostalCode string    `json:"postalCode,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// NewLogEntry stamps a submission with a time-ordered id.
func NewLogEntry(s LeadSubmission, now time.Time) LogEntry {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return LogEntry{
		ID:         id.String(),
		Name:       s.Name,
		Mobile:     s.Mobile,
		Email:      s.Email,
		Occupation: s.Occupation,
		Interest:   s.Interest,
		AgeGroup:   s.AgeGroup,
		PostalCode: s.PostalCode,
		Timestamp:  now.UTC(),
	}
}
