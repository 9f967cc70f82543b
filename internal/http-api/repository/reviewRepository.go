package repository

import (
	"context"
	"errors"

	"github.com/ilhamtrinanda/beauty-salon-microservice/internal/http-api/models"
)

// Sentinel errors shared by every backend. Handlers match on these with
// errors.Is and never on concrete driver errors.
var (
	// ErrNotFound is returned when an id-addressed operation misses.
	ErrNotFound = errors.New("review not found")
	// ErrStoreUnavailable is returned when the backing store is unreachable
	// or fails mid-operation.
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrInconsistent is returned when stored data cannot be decoded or the
	// salon index references a review that no longer exists. It signals a
	// defect and is never silently skipped.
	ErrInconsistent = errors.New("store inconsistent")
)

// ReviewRepository is the storage contract both backends implement.
// All listings are ordered by created_at descending.
type ReviewRepository interface {
	ListAll(ctx context.Context) ([]models.Review, error)
	GetByID(ctx context.Context, id int64) (*models.Review, error)
	ListBySalon(ctx context.Context, salonID int64) ([]models.Review, error)
	// Create assigns ID and CreatedAt on the passed record.
	Create(ctx context.Context, review *models.Review) error
	// Update rewrites rating and comment of an existing record in a single
	// write; id, customer_id, salon_id and created_at are immutable.
	Update(ctx context.Context, review *models.Review) error
	Delete(ctx context.Context, id int64) error
	// Ping reports reachability of the underlying store, not process liveness.
	Ping(ctx context.Context) error
}
