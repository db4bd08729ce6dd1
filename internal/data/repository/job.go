// Package repository provides MongoDB-backed persistence for jobs,
// industries and companies.
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

const jobIDCounter = "job_id"

// CompanyJobCount is one row of the top-companies aggregation.
type CompanyJobCount struct {
	CompanyName string `bson:"company_name" json:"company_name"`
	JobCount    int64  `bson:"job_count" json:"job_count"`
}

// JobRepository defines the interface for job document operations. Job
// documents are free-form maps; filters and projections are built by the
// query package.
type JobRepository interface {
	Insert(ctx context.Context, doc bson.M) error
	Find(ctx context.Context, filter, projection bson.M) ([]bson.M, error)
	UpdateMany(ctx context.Context, filter, set bson.M) (int64, error)
	DeleteMany(ctx context.Context, filter bson.M) (int64, error)
	TopCompaniesByIndustry(ctx context.Context, industryName string) ([]CompanyJobCount, error)
	NextID(ctx context.Context) (int64, error)
	EnsureCounter(ctx context.Context) error
}

type jobRepository struct {
	collection *mongo.Collection
	counters   *mongo.Collection
	logger     *logger.Logger
}

// NewJobRepository creates a new job repository instance.
func NewJobRepository(db *mongo.Database, logger *logger.Logger) JobRepository {
	return &jobRepository{
		collection: db.Collection("jobs"),
		counters:   db.Collection("counters"),
		logger:     logger,
	}
}

// Insert stores a new job document verbatim.
func (r *jobRepository) Insert(ctx context.Context, doc bson.M) error {
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		r.logger.Error(ctx, "failed to insert job", "error", err)
		return fmt.Errorf("failed to insert job: %w", err)
	}
	return nil
}

// Find returns all documents matching the filter, shaped by the projection.
func (r *jobRepository) Find(ctx context.Context, filter, projection bson.M) ([]bson.M, error) {
	opts := options.Find().SetProjection(projection)

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		r.logger.Error(ctx, "failed to find jobs", "error", err)
		return nil, fmt.Errorf("failed to find jobs: %w", err)
	}
	defer cursor.Close(ctx)

	var jobs []bson.M
	if err := cursor.All(ctx, &jobs); err != nil {
		r.logger.Error(ctx, "failed to decode jobs", "error", err)
		return nil, fmt.Errorf("failed to decode jobs: %w", err)
	}
	return jobs, nil
}

// UpdateMany applies a $set to every document matching the filter and
// returns the modified count.
func (r *jobRepository) UpdateMany(ctx context.Context, filter, set bson.M) (int64, error) {
	result, err := r.collection.UpdateMany(ctx, filter, bson.M{"$set": set})
	if err != nil {
		r.logger.Error(ctx, "failed to update jobs", "error", err)
		return 0, fmt.Errorf("failed to update jobs: %w", err)
	}
	return result.ModifiedCount, nil
}

// DeleteMany removes every document matching the filter and returns the
// deleted count.
func (r *jobRepository) DeleteMany(ctx context.Context, filter bson.M) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, filter)
	if err != nil {
		r.logger.Error(ctx, "failed to delete jobs", "error", err)
		return 0, fmt.Errorf("failed to delete jobs: %w", err)
	}
	r.logger.Info(ctx, "jobs deleted", "count", result.DeletedCount)
	return result.DeletedCount, nil
}

// TopCompaniesByIndustry groups jobs in an industry by company and ranks
// them by posting count, descending.
func (r *jobRepository) TopCompaniesByIndustry(ctx context.Context, industryName string) ([]CompanyJobCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"industry_name": industryName}}},
		{{Key: "$group", Value: bson.M{
			"_id":       "$company_name",
			"job_count": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.M{"job_count": -1}}},
		{{Key: "$project", Value: bson.M{
			"_id":          0,
			"company_name": "$_id",
			"job_count":    1,
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		r.logger.Error(ctx, "failed to aggregate top companies", "industry", industryName, "error", err)
		return nil, fmt.Errorf("failed to aggregate top companies: %w", err)
	}
	defer cursor.Close(ctx)

	var counts []CompanyJobCount
	if err := cursor.All(ctx, &counts); err != nil {
		return nil, fmt.Errorf("failed to decode top companies: %w", err)
	}
	return counts, nil
}

// NextID atomically increments and returns the job id counter. The counter
// replaces the max-plus-one scan of earlier versions, which could hand out
// duplicate ids under concurrent creates.
func (r *jobRepository) NextID(ctx context.Context) (int64, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	result := r.counters.FindOneAndUpdate(
		ctx,
		bson.M{"_id": jobIDCounter},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		opts,
	)

	var counter struct {
		Seq int64 `bson:"seq"`
	}
	if err := result.Decode(&counter); err != nil {
		r.logger.Error(ctx, "failed to advance job id counter", "error", err)
		return 0, fmt.Errorf("failed to advance job id counter: %w", err)
	}
	return counter.Seq, nil
}

// EnsureCounter seeds the job id counter from the current maximum job_id if
// no counter document exists yet, so ids stay monotonic over seeded data.
func (r *jobRepository) EnsureCounter(ctx context.Context) error {
	opts := options.FindOne().
		SetSort(bson.D{{Key: "job_id", Value: -1}}).
		SetProjection(bson.M{"job_id": 1})

	var highest struct {
		JobID int64 `bson:"job_id"`
	}
	err := r.collection.FindOne(ctx, bson.M{}, opts).Decode(&highest)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("failed to read max job_id: %w", err)
	}

	_, err = r.counters.UpdateOne(
		ctx,
		bson.M{"_id": jobIDCounter},
		bson.M{"$setOnInsert": bson.M{"seq": highest.JobID}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to seed job id counter: %w", err)
	}
	return nil
}
