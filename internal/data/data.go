// Package data manages the MongoDB connection for the CareerHub API.
package data

import (
	"context"
	"fmt"
	"time"

	"github.com/ncobase/ncore/logging/logger"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/isabelarvelo/careerhub/internal/data/repository"
)

// Data encapsulates all data layer dependencies.
type Data struct {
	client *mongo.Client
	db     *mongo.Database

	Jobs       repository.JobRepository
	Industries repository.IndustryRepository
	Companies  repository.CompanyRepository
}

// New creates a new Data instance with a MongoDB connection and seeds the
// job id counter from the current collection.
func New(mongoURI, dbName string, logger *logger.Logger) (*Data, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	logger.Info(ctx, "Connected to MongoDB successfully", "database", dbName)

	db := client.Database(dbName)
	jobs := repository.NewJobRepository(db, logger)

	if err := jobs.EnsureCounter(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize job id counter: %w", err)
	}

	return &Data{
		client:     client,
		db:         db,
		Jobs:       jobs,
		Industries: repository.NewIndustryRepository(db, logger),
		Companies:  repository.NewCompanyRepository(db, logger),
	}, nil
}

// Close closes the MongoDB connection.
func (d *Data) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return d.client.Disconnect(ctx)
}

// DB returns the MongoDB database instance.
func (d *Data) DB() *mongo.Database {
	return d.db
}
