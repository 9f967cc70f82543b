package repository

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ilhamtrinanda/beauty-salon-microservice/internal/http-api/models"
)

// Key layout shared with cmd/redis-seed. The counter lives in the same
// "review:" namespace as the records, so every key enumeration must filter
// it out by exact identity, not by pattern.
const (
	CounterKey       = "review:id:counter"
	reviewKeyPattern = "review:*"
	scanBatchSize    = 100
)

// ReviewKey derives the primary hash key for a review id. The key is
// computable from the id alone, no lookup needed.
func ReviewKey(id int64) string {
	return fmt.Sprintf("review:%d", id)
}

// SalonReviewsKey derives the secondary-index set key for a salon.
func SalonReviewsKey(salonID int64) string {
	return fmt.Sprintf("salon:%d:reviews", salonID)
}

type reviewRedisRepository struct {
	client *redis.Client
}

// NewReviewRedisRepository builds the key-value backend. Redis has no native
// secondary index or auto-increment, so the repository maintains both: a
// per-salon set of review ids and a global INCR counter for id assignment.
func NewReviewRedisRepository(client *redis.Client) ReviewRepository {
	return &reviewRedisRepository{client: client}
}

func (r *reviewRedisRepository) ListAll(ctx context.Context) ([]models.Review, error) {
	reviews := make([]models.Review, 0)
	// SCAN may return the same key more than once while the store rehashes.
	seen := make(map[string]struct{})
	var cursor uint64
	for {
		keys, nextCursor, err := r.client.Scan(ctx, cursor, reviewKeyPattern, scanBatchSize).Result()
		if err != nil {
			return nil, fmt.Errorf("scan reviews: %w: %v", ErrStoreUnavailable, err)
		}
		for _, key := range keys {
			if key == CounterKey {
				continue
			}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			fields, err := r.client.HGetAll(ctx, key).Result()
			if err != nil {
				return nil, fmt.Errorf("read %s: %w: %v", key, ErrStoreUnavailable, err)
			}
			if len(fields) == 0 {
				// Expired between SCAN and HGETALL.
				continue
			}
			review, err := decodeReview(key, fields)
			if err != nil {
				return nil, err
			}
			reviews = append(reviews, *review)
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	sortReviewsByNewest(reviews)
	return reviews, nil
}

func (r *reviewRedisRepository) GetByID(ctx context.Context, id int64) (*models.Review, error) {
	key := ReviewKey(id)
	fields, err := r.client.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w: %v", key, ErrStoreUnavailable, err)
	}
	if len(fields) == 0 {
		return nil, ErrNotFound
	}
	return decodeReview(key, fields)
}

func (r *reviewRedisRepository) ListBySalon(ctx context.Context, salonID int64) ([]models.Review, error) {
	// An unknown salon simply has no index set; SMEMBERS returns empty.
	members, err := r.client.SMembers(ctx, SalonReviewsKey(salonID)).Result()
	if err != nil {
		return nil, fmt.Errorf("read salon index: %w: %v", ErrStoreUnavailable, err)
	}

	reviews := make([]models.Review, 0, len(members))
	for _, member := range members {
		id, err := strconv.ParseInt(member, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: salon %d index holds non-numeric member %q", ErrInconsistent, salonID, member)
		}
		key := ReviewKey(id)
		fields, err := r.client.HGetAll(ctx, key).Result()
		if err != nil {
			return nil, fmt.Errorf("read %s: %w: %v", key, ErrStoreUnavailable, err)
		}
		if len(fields) == 0 {
			// The index points at a record that is gone. Surface it; this is
			// a defect signal, not something to mask.
			return nil, fmt.Errorf("%w: salon %d index references missing review %d", ErrInconsistent, salonID, id)
		}
		review, err := decodeReview(key, fields)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, *review)
	}
	sortReviewsByNewest(reviews)
	return reviews, nil
}

// Create assigns the id from the store-owned atomic counter, writes the
// record hash, then adds the id to the salon index. Only the INCR is atomic;
// a crash between the two writes can leave the index briefly out of step,
// which is the documented consistency gap of this layout.
func (r *reviewRedisRepository) Create(ctx context.Context, review *models.Review) error {
	id, err := r.client.Incr(ctx, CounterKey).Result()
	if err != nil {
		return fmt.Errorf("next review id: %w: %v", ErrStoreUnavailable, err)
	}
	review.ID = id
	review.CreatedAt = time.Now().UTC()

	if err := r.client.HSet(ctx, ReviewKey(id), EncodeReview(review)).Err(); err != nil {
		return fmt.Errorf("write review %d: %w: %v", id, ErrStoreUnavailable, err)
	}
	if err := r.client.SAdd(ctx, SalonReviewsKey(review.SalonID), id).Err(); err != nil {
		return fmt.Errorf("index review %d: %w: %v", id, ErrStoreUnavailable, err)
	}
	return nil
}

// Update rewrites the full hash in a single HSET so rating and comment land
// together or not at all. Existence is checked first; a record deleted in
// between surfaces as not found instead of being resurrected.
func (r *reviewRedisRepository) Update(ctx context.Context, review *models.Review) error {
	key := ReviewKey(review.ID)
	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("check %s: %w: %v", key, ErrStoreUnavailable, err)
	}
	if exists == 0 {
		return ErrNotFound
	}
	if err := r.client.HSet(ctx, key, EncodeReview(review)).Err(); err != nil {
		return fmt.Errorf("write %s: %w: %v", key, ErrStoreUnavailable, err)
	}
	return nil
}

// Delete reads the record first to learn its salon_id, removes the index
// entry, then erases the hash. Once the hash is gone the salon is not
// recoverable, so the read has to come first.
func (r *reviewRedisRepository) Delete(ctx context.Context, id int64) error {
	key := ReviewKey(id)
	fields, err := r.client.HGetAll(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("read %s: %w: %v", key, ErrStoreUnavailable, err)
	}
	if len(fields) == 0 {
		return ErrNotFound
	}
	review, err := decodeReview(key, fields)
	if err != nil {
		return err
	}

	if err := r.client.SRem(ctx, SalonReviewsKey(review.SalonID), id).Err(); err != nil {
		return fmt.Errorf("unindex review %d: %w: %v", id, ErrStoreUnavailable, err)
	}
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("delete %s: %w: %v", key, ErrStoreUnavailable, err)
	}
	return nil
}

func (r *reviewRedisRepository) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// EncodeReview flattens a review into the hash field map. Redis stores every
// value as a string; decodeReview is the matching strict parser. Exported so
// cmd/redis-seed writes the exact same layout.
func EncodeReview(review *models.Review) map[string]any {
	return map[string]any{
		"id":          review.ID,
		"customer_id": review.CustomerID,
		"salon_id":    review.SalonID,
		"rating":      review.Rating,
		"comment":     review.Comment,
		"created_at":  review.CreatedAt.Format(time.RFC3339Nano),
	}
}

// decodeReview parses a stored hash back into a typed record. Malformed
// stored data fails fast as ErrInconsistent rather than leaking zero values
// to callers. A missing comment normalizes to the empty string.
func decodeReview(key string, fields map[string]string) (*models.Review, error) {
	id, err := strconv.ParseInt(fields["id"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s has malformed id %q", ErrInconsistent, key, fields["id"])
	}
	salonID, err := strconv.ParseInt(fields["salon_id"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s has malformed salon_id %q", ErrInconsistent, key, fields["salon_id"])
	}
	rating, err := strconv.Atoi(fields["rating"])
	if err != nil {
		return nil, fmt.Errorf("%w: %s has malformed rating %q", ErrInconsistent, key, fields["rating"])
	}
	createdAt, err := time.Parse(time.RFC3339Nano, fields["created_at"])
	if err != nil {
		return nil, fmt.Errorf("%w: %s has malformed created_at %q", ErrInconsistent, key, fields["created_at"])
	}
	customerID, ok := fields["customer_id"]
	if !ok {
		return nil, fmt.Errorf("%w: %s is missing customer_id", ErrInconsistent, key)
	}

	return &models.Review{
		ID:         id,
		CustomerID: customerID,
		SalonID:    salonID,
		Rating:     rating,
		Comment:    fields["comment"],
		CreatedAt:  createdAt,
	}, nil
}

// sortReviewsByNewest orders client-side by created_at descending, falling
// back to id so records created in the same instant keep a stable order.
func sortReviewsByNewest(reviews []models.Review) {
	sort.Slice(reviews, func(i, j int) bool {
		if reviews[i].CreatedAt.Equal(reviews[j].CreatedAt) {
			return reviews[i].ID > reviews[j].ID
		}
		return reviews[i].CreatedAt.After(reviews[j].CreatedAt)
	})
}
