package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/skillmatch/internal/observability"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Rank job postings for a candidate profile",
	Long:  "Ranks job postings against a candidate profile and writes the scored results as JSON, best match first. Without --job-ids every active posting is considered.",
	RunE:  runMatch,
}

var (
	matchProfileID string
	matchProfiles  string
	matchJobs      string
	matchJobIDs    []string
	matchConfig    string
	matchOutput    string
	matchTop       int
)

func init() {
	matchCmd.Flags().StringVarP(&matchProfileID, "profile-id", "p", "", "ID of the profile to match (required)")
	matchCmd.Flags().StringVar(&matchProfiles, "profiles", "", "Path to profiles JSON file (required)")
	matchCmd.Flags().StringVar(&matchJobs, "jobs", "", "Path to job postings JSON file (required)")
	matchCmd.Flags().StringSliceVar(&matchJobIDs, "job-ids", nil, "Job IDs to rank (default: all active postings)")
	matchCmd.Flags().StringVarP(&matchConfig, "config", "c", "", "Path to config JSON file")
	matchCmd.Flags().StringVarP(&matchOutput, "out", "o", "", "Path to output JSON file (default: stdout)")
	matchCmd.Flags().IntVarP(&matchTop, "top", "n", 0, "Limit output to the top N results")

	if err := matchCmd.MarkFlagRequired("profile-id"); err != nil {
		panic(fmt.Sprintf("failed to mark profile-id flag as required: %v", err))
	}
	if err := matchCmd.MarkFlagRequired("profiles"); err != nil {
		panic(fmt.Sprintf("failed to mark profiles flag as required: %v", err))
	}
	if err := matchCmd.MarkFlagRequired("jobs"); err != nil {
		panic(fmt.Sprintf("failed to mark jobs flag as required: %v", err))
	}

	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(matchConfig)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	matcher, cleanup, err := buildMatcher(ctx, cfg, matchProfiles, matchJobs)
	if err != nil {
		return err
	}
	defer cleanup()

	results, err := matcher.Match(ctx, matchProfileID, matchJobIDs, nil)
	if err != nil {
		return fmt.Errorf("match failed: %w", err)
	}

	if matchTop > 0 && matchTop < len(results) {
		results = results[:matchTop]
	}

	if cfg.Verbose {
		printer := observability.NewPrinter(os.Stderr)
		printer.PrintRankedResults(results)
		printer.PrintCacheStats(matcher.CacheStats())
	}

	return writeJSON(matchOutput, results)
}
