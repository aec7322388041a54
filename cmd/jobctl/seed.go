package main

import (
	"fmt"
	"time"

	"jobboard/internal/database/seeder"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load demo recruiters, seekers and job posts",
	Long:  "Creates the demo documents that do not exist yet. Running it again leaves existing documents untouched.",
	RunE:  runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, _ []string) error {
	c, err := openContainer()
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()

	r := seeder.Runner{Seeders: seeder.Defaults(time.Now()), Logger: c.Logger}
	n, err := r.Run(cmd.Context(), c.Store)
	if err != nil {
		return fmt.Errorf("seed failed: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d document(s) created\n", n)
	return nil
}
