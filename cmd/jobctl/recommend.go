package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Recommend active jobs for a skill set",
	Long:  "Scores every active job against the given skills, or against a seeker's profile skills when only --user is set, and prints the matches as JSON.",
	RunE:  runRecommend,
}

var (
	recommendSkills []string
	recommendUserID string
)

func init() {
	recommendCmd.Flags().StringSliceVar(&recommendSkills, "skills", nil, "Comma separated skills")
	recommendCmd.Flags().StringVar(&recommendUserID, "user", "", "Seeker id whose profile skills are used when --skills is empty")

	rootCmd.AddCommand(recommendCmd)
}

func runRecommend(cmd *cobra.Command, _ []string) error {
	if len(recommendSkills) == 0 && recommendUserID == "" {
		return errors.New("one of --skills or --user is required")
	}

	c, err := openContainer()
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()

	recs, err := c.Jobs.Recommend(cmd.Context(), recommendUserID, recommendSkills)
	if err != nil {
		return fmt.Errorf("failed to recommend jobs: %w", err)
	}
	return writeJSON(cmd.OutOrStdout(), recs)
}
