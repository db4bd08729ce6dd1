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

// CompanyRepository defines the interface for company document reads. The
// collection is populated only by the seed step.
type CompanyRepository interface {
	FindByName(ctx context.Context, name string, projection bson.M) (bson.M, error)
}

type companyRepository struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

// NewCompanyRepository creates a new company repository instance.
func NewCompanyRepository(db *mongo.Database, logger *logger.Logger) CompanyRepository {
	return &companyRepository{
		collection: db.Collection("companies"),
		logger:     logger,
	}
}

// FindByName returns the company document keyed by name, or nil when no
// such company exists.
func (r *companyRepository) FindByName(ctx context.Context, name string, projection bson.M) (bson.M, error) {
	opts := options.FindOne().SetProjection(projection)

	var company bson.M
	err := r.collection.FindOne(ctx, bson.M{"name": name}, opts).Decode(&company)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		r.logger.Error(ctx, "failed to find company", "name", name, "error", err)
		return nil, fmt.Errorf("failed to find company: %w", err)
	}
	return company, nil
}
