package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	inquirieserrors "astrodesk/internal/inquiries/errors"
	"astrodesk/pkg/config"
	"astrodesk/pkg/model"
)

const CollectionName = "inquiries"

type InquiryRepository interface {
	Create(ctx context.Context, inquiry *model.Inquiry) error
	FindAll(ctx context.Context) ([]*model.Inquiry, error)
	UpdateStatus(ctx context.Context, id, status string) error
	UpdateNotes(ctx context.Context, id, adminNotes string) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
}

type mongoInquiryRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoInquiryRepository(cfg *config.Config) InquiryRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoInquiryRepository{
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

func (r *mongoInquiryRepository) Create(ctx context.Context, inquiry *model.Inquiry) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	inquiry.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	if _, err := r.collection.InsertOne(ctx, inquiry); err != nil {
		return fmt.Errorf("failed to create inquiry: %w", err)
	}
	return nil
}

func (r *mongoInquiryRepository) FindAll(ctx context.Context) ([]*model.Inquiry, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(config.DefaultPaginationLimit))

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find inquiries: %w", err)
	}
	defer cursor.Close(ctx)

	var inquiries []*model.Inquiry
	if err = cursor.All(ctx, &inquiries); err != nil {
		return nil, fmt.Errorf("failed to decode inquiries: %w", err)
	}

	return inquiries, nil
}

func (r *mongoInquiryRepository) UpdateStatus(ctx context.Context, id, status string) error {
	return r.updateField(ctx, id, bson.M{"status": status})
}

func (r *mongoInquiryRepository) UpdateNotes(ctx context.Context, id, adminNotes string) error {
	return r.updateField(ctx, id, bson.M{"admin_notes": adminNotes})
}

func (r *mongoInquiryRepository) updateField(ctx context.Context, id string, fields bson.M) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("failed to update inquiry: %w", err)
	}
	if result.MatchedCount == 0 {
		return inquirieserrors.ErrNotFound
	}
	return nil
}

func (r *mongoInquiryRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete inquiry: %w", err)
	}
	if result.DeletedCount == 0 {
		return inquirieserrors.ErrNotFound
	}
	return nil
}

func (r *mongoInquiryRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count inquiries: %w", err)
	}
	return count, nil
}

func (r *mongoInquiryRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{"status": status})
	if err != nil {
		return 0, fmt.Errorf("failed to count inquiries by status: %w", err)
	}
	return count, nil
}
