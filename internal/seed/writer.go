package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ncobase/ncore/logging/logger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/isabelarvelo/careerhub/internal/data/repository"
)

// WriteJSON writes the dataset as jobs.json, industries.json and
// companies.json under dir.
func (d *Dataset) WriteJSON(dir string) error {
	if err := writeJSONFile(filepath.Join(dir, "jobs.json"), d.Jobs); err != nil {
		return err
	}
	if err := writeJSONFile(filepath.Join(dir, "industries.json"), d.Industries); err != nil {
		return err
	}
	return writeJSONFile(filepath.Join(dir, "companies.json"), d.Companies)
}

func writeJSONFile(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	return nil
}

// LoadMongo replaces the jobs, industries and companies collections with
// the dataset and initializes the job id counter from the seeded maximum.
func (d *Dataset) LoadMongo(ctx context.Context, db *mongo.Database, log *logger.Logger) error {
	if err := replaceCollection(ctx, db, "jobs", toDocs(d.Jobs)); err != nil {
		return err
	}
	if err := replaceCollection(ctx, db, "industries", toDocs(d.Industries)); err != nil {
		return err
	}
	if err := replaceCollection(ctx, db, "companies", toDocs(d.Companies)); err != nil {
		return err
	}

	log.Info(ctx, "collections seeded",
		"jobs", len(d.Jobs), "industries", len(d.Industries), "companies", len(d.Companies))

	return repository.NewJobRepository(db, log).EnsureCounter(ctx)
}

func replaceCollection(ctx context.Context, db *mongo.Database, name string, docs []any) error {
	coll := db.Collection(name)
	if err := coll.Drop(ctx); err != nil {
		return fmt.Errorf("failed to drop %s: %w", name, err)
	}
	if len(docs) == 0 {
		return nil
	}
	if _, err := coll.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to insert into %s: %w", name, err)
	}
	return nil
}

func toDocs[T any](items []T) []any {
	docs := make([]any, len(items))
	for i := range items {
		docs[i] = items[i]
	}
	return docs
}
