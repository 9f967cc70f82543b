package models

import (
	"fmt"
	"time"
)

// Rating bounds enforced at write time by every backend. The Postgres table
// additionally carries a CHECK constraint with the same range.
const (
	MinRating = 1
	MaxRating = 5
)

type Review struct {
	ID         int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	CustomerID string    `json:"customer_id" gorm:"type:varchar(255);not null"`
	SalonID    int64     `json:"salon_id" gorm:"not null;index"`
	Rating     int       `json:"rating" gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Comment    string    `json:"comment" gorm:"type:text"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (Review) TableName() string {
	return "reviews"
}

// ValidationError marks caller input that violates a record invariant.
// Handlers translate it to 400; every other error class maps elsewhere.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// ValidateRating checks the shared rating range invariant.
func ValidateRating(rating int) error {
	if rating < MinRating || rating > MaxRating {
		return &ValidationError{
			Field:  "rating",
			Reason: fmt.Sprintf("must be between %d and %d", MinRating, MaxRating),
		}
	}
	return nil
}

// ValidateForCreate checks the invariants required before a review is first
// persisted. ID and CreatedAt are assigned by the backend, so only the
// caller-supplied fields are inspected. Comment is never required.
func (r *Review) ValidateForCreate() error {
	if r.CustomerID == "" {
		return &ValidationError{Field: "customer_id", Reason: "is required"}
	}
	if r.SalonID <= 0 {
		return &ValidationError{Field: "salon_id", Reason: "must be a positive integer"}
	}
	return ValidateRating(r.Rating)
}
