// Package main is the operator CLI for the job board: it applies migrations
// and runs the ranking and lookup flows against the configured store.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"jobboard/internal/app"
	"jobboard/internal/config"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "jobctl",
	Short:         "Job board operator CLI",
	Long:          "jobctl applies database migrations and runs application ranking, saved job and recommendation lookups against the configured document store.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var verbose bool

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log store and cache activity to stderr")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func openContainer() (*app.Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := log.New(io.Discard, "", 0)
	if verbose {
		logger = log.New(os.Stderr, "", log.LstdFlags)
	}
	c, err := app.NewContainer(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to init container: %w", err)
	}
	return c, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
