package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var savedCmd = &cobra.Command{
	Use:   "saved",
	Short: "List a user's saved jobs with their listings",
	RunE:  runSaved,
}

var savedUserID string

func init() {
	savedCmd.Flags().StringVar(&savedUserID, "user", "", "User id (required)")

	if err := savedCmd.MarkFlagRequired("user"); err != nil {
		panic(fmt.Sprintf("failed to mark user flag as required: %v", err))
	}

	rootCmd.AddCommand(savedCmd)
}

func runSaved(cmd *cobra.Command, _ []string) error {
	c, err := openContainer()
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()

	saved, err := c.SavedJobs.GetSavedJobsWithMeta(cmd.Context(), savedUserID)
	if err != nil {
		return fmt.Errorf("failed to load saved jobs: %w", err)
	}
	return writeJSON(cmd.OutOrStdout(), saved)
}
