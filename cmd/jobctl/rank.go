package main

import (
	"fmt"

	"jobboard/internal/search"
	"jobboard/internal/usecase"

	"github.com/spf13/cobra"
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank the applications for a job",
	Long:  "Loads every application for a job, joins the applicant profiles in batches and prints them ranked by the chosen mode as JSON.",
	RunE:  runRank,
}

var (
	rankJobID  string
	rankMode   string
	rankStatus string
)

func init() {
	rankCmd.Flags().StringVar(&rankJobID, "job", "", "Job id (required)")
	rankCmd.Flags().StringVar(&rankMode, "mode", string(search.ModeChronological), "chronological, relevance or match_count")
	rankCmd.Flags().StringVar(&rankStatus, "status", usecase.StatusFilterAll, "Only applications in this status")

	if err := rankCmd.MarkFlagRequired("job"); err != nil {
		panic(fmt.Sprintf("failed to mark job flag as required: %v", err))
	}

	rootCmd.AddCommand(rankCmd)
}

func runRank(cmd *cobra.Command, _ []string) error {
	mode, err := search.ParseMode(rankMode)
	if err != nil {
		return err
	}

	c, err := openContainer()
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()

	ranked, err := c.Applications.ListForJob(cmd.Context(), rankJobID, usecase.RankOptions{Mode: mode, Status: rankStatus})
	if err != nil {
		return fmt.Errorf("failed to rank applications: %w", err)
	}
	return writeJSON(cmd.OutOrStdout(), ranked)
}
