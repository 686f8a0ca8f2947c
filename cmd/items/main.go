// Package main is the entry point for the items CLI
package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/osrs-items/internal/config"
	"github.com/KirkDiggler/osrs-items/internal/errors"
	"github.com/KirkDiggler/osrs-items/internal/logger"
	itemsrepo "github.com/KirkDiggler/osrs-items/internal/repositories/items"
)

var (
	// Global flags
	configPath string
	outputDir  string
	sqlitePath string

	cfg config.Config

	version = "dev"
)

var rootCmd = &cobra.Command{
	Use:   "items",
	Short: "OSRS item record tools",
	Long: `Converts OSRS item data into one JSON file per item and inspects the
converted records.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(errors.GetCode(err).ExitStatus())
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "items.yaml", "YAML config file (optional)")
	rootCmd.PersistentFlags().StringVar(&outputDir, "dir", "", "Item directory (overrides config)")
	rootCmd.PersistentFlags().StringVar(&sqlitePath, "db", "", "SQLite item database; selects the sqlite store (overrides config)")

	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(deleteCmd)
}

// setup loads configuration and installs the logger before any subcommand runs
func setup(cmd *cobra.Command, _ []string) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}

	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if outputDir != "" {
		loaded.OutputDir = outputDir
	}
	if sqlitePath != "" {
		loaded.Store = config.StoreSQLite
		loaded.SQLitePath = sqlitePath
	}
	cfg = loaded

	cfg.Log.Version = version
	slog.SetDefault(logger.New(cfg.Log, os.Stderr))

	ctx := logger.WithRunID(cmd.Context(), logger.NewRunID())
	cmd.SetContext(ctx)
	return nil
}

// openRepository opens the configured item store. The returned func releases
// it and is safe to call when err is non-nil.
func openRepository() (itemsrepo.Repository, func(), error) {
	if cfg.Store == config.StoreSQLite {
		repo, err := itemsrepo.NewSQLite(&itemsrepo.SQLiteConfig{Path: cfg.SQLitePath})
		if err != nil {
			return nil, func() {}, err
		}
		return repo, func() {
			if err := repo.Close(); err != nil {
				slog.Warn("failed to close item store", "path", cfg.SQLitePath, "error", err)
			}
		}, nil
	}

	repo, err := itemsrepo.NewFile(&itemsrepo.FileConfig{
		Dir:       cfg.OutputDir,
		Pretty:    cfg.Pretty,
		CacheSize: cfg.CacheSize,
		CacheTTL:  cfg.CacheTTL,
	})
	return repo, func() {}, err
}

// storeLocation names where converted items are kept
func storeLocation() string {
	if cfg.Store == config.StoreSQLite {
		return cfg.SQLitePath
	}
	return cfg.OutputDir
}

func formatElapsed(d time.Duration) string {
	return d.Round(time.Millisecond).String()
}
