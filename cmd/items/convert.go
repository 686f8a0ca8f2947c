package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/osrs-items/internal/config"
	"github.com/KirkDiggler/osrs-items/internal/errors"
	"github.com/KirkDiggler/osrs-items/internal/logger"
	"github.com/KirkDiggler/osrs-items/internal/orchestrators/convert"
)

var (
	inputPath string
	pretty    bool
	workers   int
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert item JSON into one file per item",
	Long: `Reads a single item object, or an object of items keyed by ID such as
items-complete.json, and writes <dir>/<id>.json (or a database row with --db)
for every item. Nothing is written unless every item in the input is valid.`,
	Args: cobra.NoArgs,
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringVar(&inputPath, "in", "", "Input JSON file, or - for stdin (required)")
	convertCmd.Flags().BoolVar(&pretty, "pretty", false, "Indent written files (overrides config)")
	convertCmd.Flags().IntVar(&workers, "workers", 0, "Concurrent writes (overrides config)")
	_ = convertCmd.MarkFlagRequired("in") // nolint:errcheck // safe to ignore in init
}

func runConvert(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	if cmd.Flags().Changed("pretty") {
		cfg.Pretty = pretty
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers = workers
	}

	data, err := readInput(cmd.InOrStdin(), inputPath)
	if err != nil {
		return err
	}

	dir := cfg.OutputDir
	if cfg.Store == config.StoreSQLite {
		dir = filepath.Dir(cfg.SQLitePath)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.IOFailuref(err, "failed to create %s", dir)
	}

	repo, closeRepo, err := openRepository()
	defer closeRepo()
	if err != nil {
		return err
	}

	orch, err := convert.NewOrchestrator(&convert.Config{
		Repository: repo,
		Workers:    cfg.Workers,
	})
	if err != nil {
		return err
	}

	out, err := orch.Convert(ctx, &convert.ConvertInput{Data: data})
	if err != nil {
		logger.FromContext(ctx).Error("convert failed", "input", inputPath, "error", err)
		return err
	}

	logger.FromContext(ctx).Info("convert finished",
		"input", inputPath,
		"store", storeLocation(),
		"count", out.Count)

	fmt.Fprintf(cmd.OutOrStdout(), "Converted %d items into %s in %s\n",
		out.Count, storeLocation(), formatElapsed(out.Elapsed))
	return nil
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, errors.IOFailure(err, "failed to read stdin")
		}
		return data, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFoundf("input file %s not found", path)
		}
		return nil, errors.IOFailuref(err, "failed to read %s", path)
	}
	return data, nil
}
