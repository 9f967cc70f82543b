package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ilhamtrinanda/beauty-salon-microservice/internal/http-api/models"
)

func TestKeyDerivation(t *testing.T) {
	assert.Equal(t, "review:7", ReviewKey(7))
	assert.Equal(t, "salon:3:reviews", SalonReviewsKey(3))

	// The counter lives in the review namespace and would match the scan
	// pattern, so it must be distinguishable by exact identity.
	assert.Equal(t, "review:id:counter", CounterKey)
	assert.NotEqual(t, CounterKey, ReviewKey(0))
}

func TestEncodeDecodeReview(t *testing.T) {
	createdAt := time.Date(2024, time.January, 15, 10, 30, 0, 0, time.UTC)
	review := &models.Review{
		ID:         1,
		CustomerID: "CUST001",
		SalonID:    1,
		Rating:     5,
		Comment:    "Great",
		CreatedAt:  createdAt,
	}

	fields := stringifyFields(EncodeReview(review))
	decoded, err := decodeReview(ReviewKey(review.ID), fields)
	require.NoError(t, err)
	assert.Equal(t, review, decoded)
}

func TestDecodeReview(t *testing.T) {
	validFields := func() map[string]string {
		return map[string]string{
			"id":          "4",
			"customer_id": "CUST004",
			"salon_id":    "2",
			"rating":      "3",
			"comment":     "Good service but a bit pricey.",
			"created_at":  "2024-01-18T16:45:00Z",
		}
	}

	t.Run("NumericFieldsCoerced", func(t *testing.T) {
		review, err := decodeReview("review:4", validFields())
		require.NoError(t, err)
		assert.Equal(t, int64(4), review.ID)
		assert.Equal(t, int64(2), review.SalonID)
		assert.Equal(t, 3, review.Rating)
		assert.Equal(t, time.Date(2024, time.January, 18, 16, 45, 0, 0, time.UTC), review.CreatedAt)
	})

	t.Run("MissingCommentNormalizesToEmpty", func(t *testing.T) {
		fields := validFields()
		delete(fields, "comment")
		review, err := decodeReview("review:4", fields)
		require.NoError(t, err)
		assert.Equal(t, "", review.Comment)
	})

	t.Run("MalformedFieldsFailFast", func(t *testing.T) {
		corruptions := map[string]string{
			"id":         "not-a-number",
			"salon_id":   "",
			"rating":     "five",
			"created_at": "yesterday",
		}
		for field, bad := range corruptions {
			t.Run(field, func(t *testing.T) {
				fields := validFields()
				fields[field] = bad
				_, err := decodeReview("review:4", fields)
				require.ErrorIs(t, err, ErrInconsistent)
			})
		}
	})

	t.Run("MissingCustomerIDIsInconsistent", func(t *testing.T) {
		fields := validFields()
		delete(fields, "customer_id")
		_, err := decodeReview("review:4", fields)
		require.ErrorIs(t, err, ErrInconsistent)
	})
}

func TestSortReviewsByNewest(t *testing.T) {
	base := time.Date(2024, time.January, 15, 10, 0, 0, 0, time.UTC)
	reviews := []models.Review{
		{ID: 1, CreatedAt: base},
		{ID: 3, CreatedAt: base.Add(2 * time.Hour)},
		{ID: 2, CreatedAt: base.Add(time.Hour)},
	}

	sortReviewsByNewest(reviews)

	ids := make([]int64, 0, len(reviews))
	for _, review := range reviews {
		ids = append(ids, review.ID)
	}
	assert.Equal(t, []int64{3, 2, 1}, ids)
}

func TestSortReviewsByNewestTieBreaksOnID(t *testing.T) {
	same := time.Date(2024, time.January, 15, 10, 0, 0, 0, time.UTC)
	reviews := []models.Review{
		{ID: 1, CreatedAt: same},
		{ID: 2, CreatedAt: same},
	}

	sortReviewsByNewest(reviews)

	assert.Equal(t, int64(2), reviews[0].ID)
	assert.Equal(t, int64(1), reviews[1].ID)
}

// stringifyFields mimics what the store hands back: every value a string.
func stringifyFields(fields map[string]any) map[string]string {
	out := make(map[string]string, len(fields))
	for key, value := range fields {
		out[key] = fmt.Sprintf("%v", value)
	}
	return out
}
