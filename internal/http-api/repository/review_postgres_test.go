package repository

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ilhamtrinanda/beauty-salon-microservice/internal/http-api/models"
)

func TestTranslatePostgresError(t *testing.T) {
	t.Run("RecordNotFound", func(t *testing.T) {
		err := translatePostgresError("get review", gorm.ErrRecordNotFound)
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("CheckViolationIsValidationError", func(t *testing.T) {
		// The rating CHECK constraint firing means caller input slipped past
		// the application-level validation, still a 400, not a store failure.
		pgErr := &pgconn.PgError{Code: pgCheckViolation, ConstraintName: "chk_reviews_rating"}
		err := translatePostgresError("create review", pgErr)

		var validationErr *models.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "rating", validationErr.Field)
		assert.NotErrorIs(t, err, ErrStoreUnavailable)
	})

	t.Run("NotNullViolationIsValidationError", func(t *testing.T) {
		pgErr := &pgconn.PgError{Code: pgNotNullViolation, ColumnName: "customer_id"}
		err := translatePostgresError("create review", pgErr)

		var validationErr *models.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "customer_id", validationErr.Field)
	})

	t.Run("OtherPostgresErrorsAreStoreUnavailable", func(t *testing.T) {
		pgErr := &pgconn.PgError{Code: "53300", Message: "too many connections"}
		err := translatePostgresError("list reviews", pgErr)
		require.ErrorIs(t, err, ErrStoreUnavailable)
	})

	t.Run("UnknownErrorsAreStoreUnavailable", func(t *testing.T) {
		err := translatePostgresError("list reviews", errors.New("connection refused"))
		require.ErrorIs(t, err, ErrStoreUnavailable)
		assert.Contains(t, err.Error(), "list reviews")
	})
}
