package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/skillmatch/internal/observability"
)

var explainCmd = &cobra.Command{
	Use:   "explain",
	Short: "Explain the match between one profile and one job",
	Long:  "Scores a single profile/job pair with full sub-score and skill gap detail, bypassing the result cache.",
	RunE:  runExplain,
}

var (
	explainProfileID string
	explainJobID     string
	explainProfiles  string
	explainJobs      string
	explainConfig    string
	explainOutput    string
)

func init() {
	explainCmd.Flags().StringVarP(&explainProfileID, "profile-id", "p", "", "ID of the profile (required)")
	explainCmd.Flags().StringVarP(&explainJobID, "job-id", "j", "", "ID of the job posting (required)")
	explainCmd.Flags().StringVar(&explainProfiles, "profiles", "", "Path to profiles JSON file (required)")
	explainCmd.Flags().StringVar(&explainJobs, "jobs", "", "Path to job postings JSON file (required)")
	explainCmd.Flags().StringVarP(&explainConfig, "config", "c", "", "Path to config JSON file")
	explainCmd.Flags().StringVarP(&explainOutput, "out", "o", "", "Path to output JSON file (default: stdout)")

	for _, flag := range []string{"profile-id", "job-id", "profiles", "jobs"} {
		if err := explainCmd.MarkFlagRequired(flag); err != nil {
			panic(fmt.Sprintf("failed to mark %s flag as required: %v", flag, err))
		}
	}

	rootCmd.AddCommand(explainCmd)
}

func runExplain(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(explainConfig)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	matcher, cleanup, err := buildMatcher(ctx, cfg, explainProfiles, explainJobs)
	if err != nil {
		return err
	}
	defer cleanup()

	result, err := matcher.Explain(ctx, explainProfileID, explainJobID)
	if err != nil {
		return fmt.Errorf("explain failed: %w", err)
	}

	if cfg.Verbose {
		observability.NewPrinter(os.Stderr).PrintMatchDetail(result)
	}

	return writeJSON(explainOutput, result)
}
