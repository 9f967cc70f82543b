package service

import (
	"context"

	"github.com/ilhamtrinanda/beauty-salon-microservice/internal/http-api/dto"
	"github.com/ilhamtrinanda/beauty-salon-microservice/internal/http-api/models"
	"github.com/ilhamtrinanda/beauty-salon-microservice/internal/http-api/repository"
)

type ReviewService interface {
	ListReviews(ctx context.Context) ([]dto.ReviewResponse, error)
	GetReview(ctx context.Context, id int64) (*dto.ReviewResponse, error)
	ListSalonReviews(ctx context.Context, salonID int64) ([]dto.ReviewResponse, error)
	CreateReview(ctx context.Context, req *dto.CreateReviewDTO) (*dto.ReviewResponse, error)
	UpdateReview(ctx context.Context, id int64, req *dto.UpdateReviewDTO) (*dto.ReviewResponse, error)
	DeleteReview(ctx context.Context, id int64) error
	HealthCheck(ctx context.Context) error
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
}

func NewReviewService(reviewRepo repository.ReviewRepository) ReviewService {
	return &reviewService{reviewRepo: reviewRepo}
}

func (s *reviewService) ListReviews(ctx context.Context) ([]dto.ReviewResponse, error) {
	reviews, err := s.reviewRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return dto.FromModelToReviewResponses(reviews), nil
}

func (s *reviewService) GetReview(ctx context.Context, id int64) (*dto.ReviewResponse, error) {
	review, err := s.reviewRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.FromModelToReviewResponse(review), nil
}

func (s *reviewService) ListSalonReviews(ctx context.Context, salonID int64) ([]dto.ReviewResponse, error) {
	// An unknown salon is not an error, just an empty listing.
	reviews, err := s.reviewRepo.ListBySalon(ctx, salonID)
	if err != nil {
		return nil, err
	}
	return dto.FromModelToReviewResponses(reviews), nil
}

// CreateReview validates at the application level before handing the record
// to the backend, which may enforce the same invariants again on its own.
func (s *reviewService) CreateReview(ctx context.Context, req *dto.CreateReviewDTO) (*dto.ReviewResponse, error) {
	review := &models.Review{
		CustomerID: req.CustomerID,
		SalonID:    req.SalonID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	}
	if err := review.ValidateForCreate(); err != nil {
		return nil, err
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}
	return dto.FromModelToReviewResponse(review), nil
}

// UpdateReview follows a read-validate-write protocol: the current record is
// loaded, omitted fields keep their stored values, and nothing is written
// until the merged record validates. An out-of-range rating therefore leaves
// the stored record completely unchanged.
func (s *reviewService) UpdateReview(ctx context.Context, id int64, req *dto.UpdateReviewDTO) (*dto.ReviewResponse, error) {
	review, err := s.reviewRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Rating != nil {
		review.Rating = *req.Rating
	}
	if req.Comment != nil {
		review.Comment = *req.Comment
	}
	if err := models.ValidateRating(review.Rating); err != nil {
		return nil, err
	}

	if err := s.reviewRepo.Update(ctx, review); err != nil {
		return nil, err
	}
	return dto.FromModelToReviewResponse(review), nil
}

func (s *reviewService) DeleteReview(ctx context.Context, id int64) error {
	return s.reviewRepo.Delete(ctx, id)
}

func (s *reviewService) HealthCheck(ctx context.Context) error {
	return s.reviewRepo.Ping(ctx)
}
