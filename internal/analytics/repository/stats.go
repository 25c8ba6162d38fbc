package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"astrodesk/pkg/config"
	"astrodesk/pkg/model"
)

const CollectionName = "analytics"

type StatsRepository interface {
	Increment(ctx context.Context, metricType, date, page string) error
	FindSince(ctx context.Context, metricType, dateGte string) ([]model.DailyStat, error)
}

type mongoStatsRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoStatsRepository(cfg *config.Config) StatsRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoStatsRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) < timeout {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

// Increment bumps one per-day counter with an atomic upsert. Concurrent
// increments of the same counter never lose updates.
func (r *mongoStatsRepository) Increment(ctx context.Context, metricType, date, page string) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	filter := bson.M{"type": metricType, "date": date}
	if page != "" {
		filter["page"] = page
	}

	update := bson.M{"$inc": bson.M{"count": 1}}
	opts := options.Update().SetUpsert(true)

	if _, err := r.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to increment %s counter: %w", metricType, err)
	}
	return nil
}

// FindSince returns the counters of one metric for all dates >= dateGte,
// oldest first.
func (r *mongoStatsRepository) FindSince(ctx context.Context, metricType, dateGte string) ([]model.DailyStat, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{
		"type": metricType,
		"date": bson.M{"$gte": dateGte},
	}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find %s stats: %w", metricType, err)
	}
	defer cursor.Close(ctx)

	var stats []model.DailyStat
	if err = cursor.All(ctx, &stats); err != nil {
		return nil, fmt.Errorf("failed to decode %s stats: %w", metricType, err)
	}

	return stats, nil
}
