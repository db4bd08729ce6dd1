package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/ncobase/ncore/logging/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UpsertResult reports what an industry upsert did to the store.
type UpsertResult struct {
	Created  bool
	Modified bool
}

// IndustryRepository defines the interface for industry document operations.
type IndustryRepository interface {
	FindByName(ctx context.Context, name string, projection bson.M) (bson.M, error)
	EnsureExists(ctx context.Context, name string) (bool, error)
	Upsert(ctx context.Context, name string, attrs bson.M) (*UpsertResult, error)
}

type industryRepository struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

// NewIndustryRepository creates a new industry repository instance.
func NewIndustryRepository(db *mongo.Database, logger *logger.Logger) IndustryRepository {
	return &industryRepository{
		collection: db.Collection("industries"),
		logger:     logger,
	}
}

// FindByName returns the industry document keyed by name, or nil when no
// such industry exists.
func (r *industryRepository) FindByName(ctx context.Context, name string, projection bson.M) (bson.M, error) {
	opts := options.FindOne().SetProjection(projection)

	var industry bson.M
	err := r.collection.FindOne(ctx, bson.M{"industry_name": name}, opts).Decode(&industry)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		r.logger.Error(ctx, "failed to find industry", "name", name, "error", err)
		return nil, fmt.Errorf("failed to find industry: %w", err)
	}
	return industry, nil
}

// EnsureExists creates an attribute-less industry record if none exists for
// the name. Returns true when a new record was created.
func (r *industryRepository) EnsureExists(ctx context.Context, name string) (bool, error) {
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"industry_name": name},
		bson.M{"$setOnInsert": bson.M{"industry_name": name}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		r.logger.Error(ctx, "failed to ensure industry exists", "name", name, "error", err)
		return false, fmt.Errorf("failed to ensure industry exists: %w", err)
	}

	created := result.UpsertedCount > 0
	if created {
		r.logger.Info(ctx, "industry created", "name", name)
	}
	return created, nil
}

// Upsert replaces the given attributes on the industry keyed by name,
// inserting the record if it does not exist.
func (r *industryRepository) Upsert(ctx context.Context, name string, attrs bson.M) (*UpsertResult, error) {
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"industry_name": name},
		bson.M{"$set": attrs},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		r.logger.Error(ctx, "failed to upsert industry", "name", name, "error", err)
		return nil, fmt.Errorf("failed to upsert industry: %w", err)
	}

	return &UpsertResult{
		Created:  result.UpsertedCount > 0,
		Modified: result.ModifiedCount > 0,
	}, nil
}
