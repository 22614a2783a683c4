// Package main implements the skillmatch CLI for profile/job matching.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "skillmatch",
	Short: "Candidate/job matching engine",
	Long:  "Skillmatch ranks job postings against candidate profiles using term vector similarity, taxonomy-normalized skill matching, and multi-factor weighted scoring.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
