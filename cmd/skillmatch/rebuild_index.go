package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/skillmatch/internal/index"
	"github.com/jonathan/skillmatch/internal/store"
)

var rebuildIndexCmd = &cobra.Command{
	Use:   "rebuild-index",
	Short: "Build the term vector index over a job postings file",
	Long:  "Loads a job postings JSON file, builds the term vector index over every active posting, and reports corpus statistics. Useful for validating a postings file before serving matches from it.",
	RunE:  runRebuildIndex,
}

var rebuildIndexJobs string

func init() {
	rebuildIndexCmd.Flags().StringVar(&rebuildIndexJobs, "jobs", "", "Path to job postings JSON file (required)")

	if err := rebuildIndexCmd.MarkFlagRequired("jobs"); err != nil {
		panic(fmt.Sprintf("failed to mark jobs flag as required: %v", err))
	}

	rootCmd.AddCommand(rebuildIndexCmd)
}

func runRebuildIndex(cmd *cobra.Command, _ []string) error {
	mem := store.NewMemory()
	total, err := loadJobs(mem, rebuildIndexJobs)
	if err != nil {
		return err
	}

	active, err := mem.ListActiveJobs(cmd.Context())
	if err != nil {
		return err
	}

	documents := make([]index.Document, 0, len(active))
	for _, job := range active {
		documents = append(documents, index.Document{
			ID:   job.ID,
			Text: job.Title + " " + job.DescriptionText,
		})
	}

	idx, err := index.Build(documents)
	if err != nil {
		return fmt.Errorf("failed to build term vector index: %w", err)
	}

	_, _ = fmt.Fprintf(os.Stdout, "Indexed %d of %d postings from %s\n", idx.Len(), total, rebuildIndexJobs)
	return nil
}
