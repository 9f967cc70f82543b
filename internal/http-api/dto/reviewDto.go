package dto

import (
	"time"

	"github.com/ilhamtrinanda/beauty-salon-microservice/internal/http-api/models"
)

// CreateReviewDTO is the POST /api/reviews payload.
type CreateReviewDTO struct {
	CustomerID string `json:"customer_id" binding:"required"`
	SalonID    int64  `json:"salon_id" binding:"required,gt=0"`
	Rating     int    `json:"rating" binding:"required,min=1,max=5"`
	Comment    string `json:"comment"`
}

// UpdateReviewDTO is the PUT /api/reviews/:id payload. Pointer fields
// distinguish "omitted, keep current value" from an explicit zero.
type UpdateReviewDTO struct {
	Rating  *int    `json:"rating" binding:"omitempty,min=1,max=5"`
	Comment *string `json:"comment"`
}

// ReviewResponse is the externally visible review shape, identical for both
// storage backends.
type ReviewResponse struct {
	ID         int64     `json:"id"`
	CustomerID string    `json:"customer_id"`
	SalonID    int64     `json:"salon_id"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	CreatedAt  time.Time `json:"created_at"`
}

// FromModelToReviewResponse converts a Review model to its response DTO.
func FromModelToReviewResponse(review *models.Review) *ReviewResponse {
	return &ReviewResponse{
		ID:         review.ID,
		CustomerID: review.CustomerID,
		SalonID:    review.SalonID,
		Rating:     review.Rating,
		Comment:    review.Comment,
		CreatedAt:  review.CreatedAt,
	}
}

// FromModelToReviewResponses converts a listing, preserving order.
func FromModelToReviewResponses(reviews []models.Review) []ReviewResponse {
	responses := make([]ReviewResponse, 0, len(reviews))
	for i := range reviews {
		responses = append(responses, *FromModelToReviewResponse(&reviews[i]))
	}
	return responses
}

// Envelope is the uniform response wrapper: success plus data on the happy
// path, message for expected misses, error for everything else.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

func OK(data any) Envelope {
	return Envelope{Success: true, Data: data}
}

func OKMessage(message string) Envelope {
	return Envelope{Success: true, Message: message}
}

func FailMessage(message string) Envelope {
	return Envelope{Success: false, Message: message}
}

func FailError(err string) Envelope {
	return Envelope{Success: false, Error: err}
}
