package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/isabelarvelo/careerhub/internal/data"
	"github.com/isabelarvelo/careerhub/internal/seed"
)

var (
	seedDataDir string
	seedOutDir  string
	seedLoad    bool
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Transform the raw CSV exports and seed the database",
	Long: "Join the raw CSV exports into job, industry and company documents, " +
		"write them as JSON, and optionally replace the MongoDB collections.",
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().StringVar(&seedDataDir, "data", "data/raw", "directory containing the source CSV files")
	seedCmd.Flags().StringVar(&seedOutDir, "out", "data/processed", "directory to write the JSON output")
	seedCmd.Flags().BoolVar(&seedLoad, "load", false, "load the transformed documents into MongoDB")
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, log, cleanupLogger, err := setup()
	if err != nil {
		return err
	}
	defer cleanupLogger()

	ctx := context.Background()

	dataset, err := seed.Load(seedDataDir)
	if err != nil {
		return fmt.Errorf("failed to load CSV data: %w", err)
	}
	log.Info(ctx, "dataset transformed",
		"jobs", len(dataset.Jobs),
		"industries", len(dataset.Industries),
		"companies", len(dataset.Companies),
	)

	if err := dataset.WriteJSON(seedOutDir); err != nil {
		return err
	}
	log.Info(ctx, "JSON files written", "dir", seedOutDir)

	if !seedLoad {
		return nil
	}

	dataLayer, err := data.New(cfg.Data.Database.Master.Source, databaseName, log)
	if err != nil {
		return fmt.Errorf("failed to create data layer: %w", err)
	}
	defer func() {
		if err := dataLayer.Close(); err != nil {
			log.Error(ctx, "failed to close data layer", "error", err)
		}
	}()

	return dataset.LoadMongo(ctx, dataLayer.DB(), log)
}
