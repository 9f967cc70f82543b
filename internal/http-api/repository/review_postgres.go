package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/ilhamtrinanda/beauty-salon-microservice/internal/http-api/models"
)

// Postgres error codes we translate instead of surfacing raw.
const (
	pgCheckViolation   = "23514"
	pgNotNullViolation = "23502"
)

type reviewPostgresRepository struct {
	db *gorm.DB
}

// NewReviewPostgresRepository builds the relational backend. The reviews
// table must already exist (database.ConnectDB migrates it on startup).
func NewReviewPostgresRepository(db *gorm.DB) ReviewRepository {
	return &reviewPostgresRepository{db: db}
}

func (r *reviewPostgresRepository) ListAll(ctx context.Context) ([]models.Review, error) {
	reviews := make([]models.Review, 0)
	err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, translatePostgresError("list reviews", err)
	}
	return reviews, nil
}

func (r *reviewPostgresRepository) GetByID(ctx context.Context, id int64) (*models.Review, error) {
	var review models.Review
	if err := r.db.WithContext(ctx).First(&review, id).Error; err != nil {
		return nil, translatePostgresError("get review", err)
	}
	return &review, nil
}

func (r *reviewPostgresRepository) ListBySalon(ctx context.Context, salonID int64) ([]models.Review, error) {
	reviews := make([]models.Review, 0)
	err := r.db.WithContext(ctx).
		Where("salon_id = ?", salonID).
		Order("created_at DESC, id DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, translatePostgresError("list salon reviews", err)
	}
	return reviews, nil
}

func (r *reviewPostgresRepository) Create(ctx context.Context, review *models.Review) error {
	// GORM populates review.ID on insert. CreatedAt is stamped here in UTC
	// so both backends serialize identical offsets.
	review.CreatedAt = time.Now().UTC()
	if err := r.db.WithContext(ctx).Create(review).Error; err != nil {
		return translatePostgresError("create review", err)
	}
	return nil
}

// Update writes rating and comment in one statement so an invalid value can
// never leave a half-applied record behind.
func (r *reviewPostgresRepository) Update(ctx context.Context, review *models.Review) error {
	result := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Where("id = ?", review.ID).
		Updates(map[string]any{
			"rating":  review.Rating,
			"comment": review.Comment,
		})
	if result.Error != nil {
		return translatePostgresError("update review", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *reviewPostgresRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.Review{}, id)
	if result.Error != nil {
		return translatePostgresError("delete review", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *reviewPostgresRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// translatePostgresError maps driver errors onto the shared taxonomy. The
// CHECK constraint on rating is a second line of defense behind the
// application-level validation, so its violation still surfaces as caller
// input error rather than a store failure.
func translatePostgresError(op string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgCheckViolation:
			return &models.ValidationError{Field: "rating", Reason: "rejected by rating range constraint"}
		case pgNotNullViolation:
			return &models.ValidationError{Field: pgErr.ColumnName, Reason: "is required"}
		}
	}
	return fmt.Errorf("%s: %w: %v", op, ErrStoreUnavailable, err)
}
