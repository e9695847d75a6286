package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mnemo-dev/mnemo/internal/analysis"
	"github.com/mnemo-dev/mnemo/internal/analyzer"
	"github.com/mnemo-dev/mnemo/internal/config"
	"github.com/mnemo-dev/mnemo/internal/extract"
	"github.com/mnemo-dev/mnemo/internal/relgraph"
	"github.com/mnemo-dev/mnemo/internal/scanner"
)

func resolveProjectPath(args []string) (string, error) {
	path := "."
	if len(args) > 0 {
		path = args[0]
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path %q: %w", path, err)
	}
	return abs, nil
}

func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if os.Getenv("MNEMO_VERBOSE") != "" {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func newPipeline(cfg config.Config, log *slog.Logger) *analysis.Pipeline {
	return analysis.NewPipeline(
		scanner.New(cfg.ScanDepth, log),
		extract.New(analyzer.NewDefaultRegistry(), cfg.MemoCapacity, log),
		relgraph.NewBuilder(log),
		log,
	)
}

func loadConfig(cmd *cobra.Command, root string) (config.Config, error) {
	cfg, err := config.Load(root)
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	if cmd.Flags().Lookup("depth") != nil {
		if depth, err := cmd.Flags().GetInt("depth"); err == nil && depth > 0 {
			cfg.ScanDepth = depth
		}
	}
	if cmd.Flags().Lookup("output") != nil {
		if out, err := cmd.Flags().GetString("output"); err == nil && out != "" {
			cfg.OutputDir = out
		}
	}
	return cfg, nil
}
