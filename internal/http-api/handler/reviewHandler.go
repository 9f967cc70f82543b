package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ilhamtrinanda/beauty-salon-microservice/internal/http-api/dto"
	"github.com/ilhamtrinanda/beauty-salon-microservice/internal/http-api/models"
	"github.com/ilhamtrinanda/beauty-salon-microservice/internal/http-api/repository"
	"github.com/ilhamtrinanda/beauty-salon-microservice/internal/http-api/service"
)

type ReviewHandler struct {
	reviewService service.ReviewService
	backend       string
}

func NewReviewHandler(reviewService service.ReviewService, backend string) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
		backend:       backend,
	}
}

// RegisterRoutes registers the health probe and the review CRUD surface.
func (h *ReviewHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/health", h.Health)

	reviews := router.Group("/api/reviews")
	{
		reviews.GET("", h.List)
		reviews.GET("/:id", h.Get)
		reviews.GET("/salon/:salon_id", h.ListBySalon)
		reviews.POST("", h.Create)
		reviews.PUT("/:id", h.Update)
		reviews.DELETE("/:id", h.Delete)
	}
}

// Health reports reachability of the active storage backend.
// GET /health
func (h *ReviewHandler) Health(c *gin.Context) {
	if err := h.reviewService.HealthCheck(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, dto.FailError(err.Error()))
		return
	}
	c.JSON(http.StatusOK, dto.Envelope{
		Success: true,
		Message: "Review Service is running",
		Data:    gin.H{"backend": h.backend},
	})
}

// List returns every review, newest first.
// GET /api/reviews
func (h *ReviewHandler) List(c *gin.Context) {
	reviews, err := h.reviewService.ListReviews(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(reviews))
}

// Get returns a single review by id.
// GET /api/reviews/:id
func (h *ReviewHandler) Get(c *gin.Context) {
	id, ok := h.reviewID(c)
	if !ok {
		return
	}
	review, err := h.reviewService.GetReview(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(review))
}

// ListBySalon returns the reviews of one salon, newest first. An unknown
// salon yields an empty list, not a 404.
// GET /api/reviews/salon/:salon_id
func (h *ReviewHandler) ListBySalon(c *gin.Context) {
	salonID, err := strconv.ParseInt(c.Param("salon_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.FailError("invalid salon ID"))
		return
	}
	reviews, err := h.reviewService.ListSalonReviews(c.Request.Context(), salonID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(reviews))
}

// Create stores a new review.
// POST /api/reviews
func (h *ReviewHandler) Create(c *gin.Context) {
	var req dto.CreateReviewDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.FailError(err.Error()))
		return
	}
	review, err := h.reviewService.CreateReview(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.OK(review))
}

// Update changes rating and/or comment of an existing review.
// PUT /api/reviews/:id
func (h *ReviewHandler) Update(c *gin.Context) {
	id, ok := h.reviewID(c)
	if !ok {
		return
	}
	var req dto.UpdateReviewDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.FailError(err.Error()))
		return
	}
	review, err := h.reviewService.UpdateReview(c.Request.Context(), id, &req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(review))
}

// Delete removes a review and its salon-index entry.
// DELETE /api/reviews/:id
func (h *ReviewHandler) Delete(c *gin.Context) {
	id, ok := h.reviewID(c)
	if !ok {
		return
	}
	if err := h.reviewService.DeleteReview(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OKMessage("Review deleted"))
}

func (h *ReviewHandler) reviewID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.FailError("invalid review ID"))
		return 0, false
	}
	return id, true
}

// respondError is the single place typed errors become status codes; the
// repository and service layers never see HTTP.
func (h *ReviewHandler) respondError(c *gin.Context, err error) {
	var validationErr *models.ValidationError
	switch {
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.FailMessage("Review not found"))
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, dto.FailError(validationErr.Error()))
	default:
		// ErrStoreUnavailable, ErrInconsistent and anything unexpected.
		c.JSON(http.StatusInternalServerError, dto.FailError(err.Error()))
	}
}
