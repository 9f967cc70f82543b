// Command redis-seed loads a fixed set of demo reviews into Redis. It is a
// one-shot bootstrap: when the id counter already exists the data is assumed
// seeded and the run is a no-op, so it is safe to execute on every deploy.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/ilhamtrinanda/beauty-salon-microservice/database"
	"github.com/ilhamtrinanda/beauty-salon-microservice/internal/config"
	"github.com/ilhamtrinanda/beauty-salon-microservice/internal/http-api/models"
	"github.com/ilhamtrinanda/beauty-salon-microservice/internal/http-api/repository"
)

func demoReviews() []models.Review {
	utc := func(day, hour, min int) time.Time {
		return time.Date(2024, time.January, day, hour, min, 0, 0, time.UTC)
	}
	return []models.Review{
		{ID: 1, CustomerID: "CUST001", SalonID: 1, Rating: 5, Comment: "Excellent service! Very professional and friendly staff.", CreatedAt: utc(15, 10, 30)},
		{ID: 2, CustomerID: "CUST002", SalonID: 1, Rating: 4, Comment: "Great haircut, will come back again!", CreatedAt: utc(16, 14, 20)},
		{ID: 3, CustomerID: "CUST003", SalonID: 2, Rating: 5, Comment: "Best salon in town. Highly recommended!", CreatedAt: utc(17, 9, 15)},
		{ID: 4, CustomerID: "CUST004", SalonID: 2, Rating: 3, Comment: "Good service but a bit pricey.", CreatedAt: utc(18, 16, 45)},
		{ID: 5, CustomerID: "CUST005", SalonID: 1, Rating: 5, Comment: "Amazing experience! The stylist really understood what I wanted.", CreatedAt: utc(19, 11, 0)},
		{ID: 6, CustomerID: "CUST006", SalonID: 3, Rating: 4, Comment: "Very clean and modern salon. Professional service.", CreatedAt: utc(20, 13, 30)},
		{ID: 7, CustomerID: "CUST007", SalonID: 3, Rating: 5, Comment: "Love my new hairstyle! Thank you!", CreatedAt: utc(21, 15, 0)},
		{ID: 8, CustomerID: "CUST008", SalonID: 2, Rating: 4, Comment: "Good quality service. Staff is very polite.", CreatedAt: utc(22, 10, 0)},
	}
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	client, err := database.ConnectRedis(cfg, logger)
	if err != nil {
		log.Fatalf("could not connect to Redis: %v", err)
	}
	defer client.Close()

	ctx := context.Background()

	// The counter key doubles as the seeded marker.
	exists, err := client.Exists(ctx, repository.CounterKey).Result()
	if err != nil {
		log.Fatalf("could not check counter key: %v", err)
	}
	if exists > 0 {
		logger.Info("data already exists in Redis, skipping initialization")
		return
	}

	reviews := demoReviews()
	for _, review := range reviews {
		if err := client.HSet(ctx, repository.ReviewKey(review.ID), repository.EncodeReview(&review)).Err(); err != nil {
			log.Fatalf("could not write review %d: %v", review.ID, err)
		}
		if err := client.SAdd(ctx, repository.SalonReviewsKey(review.SalonID), review.ID).Err(); err != nil {
			log.Fatalf("could not index review %d: %v", review.ID, err)
		}
		logger.Info("seeded review", "id", review.ID, "salon_id", review.SalonID)
	}

	// Counter goes in last so a crash mid-seed re-runs the whole thing.
	if err := client.Set(ctx, repository.CounterKey, len(reviews), 0).Err(); err != nil {
		log.Fatalf("could not set counter: %v", err)
	}

	logger.Info("successfully initialized reviews in Redis", "count", len(reviews))
}
