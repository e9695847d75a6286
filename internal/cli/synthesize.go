package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mnemo-dev/mnemo/internal/artifact"
	"github.com/mnemo-dev/mnemo/internal/snapcache"
	"github.com/mnemo-dev/mnemo/internal/workflow"
)

func RunSynthesize(cmd *cobra.Command, args []string) error {
	rootPath, err := resolveProjectPath(args)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd, rootPath)
	if err != nil {
		return err
	}
	responsesPath, err := cmd.Flags().GetString("responses")
	if err != nil {
		return fmt.Errorf("failed to read --responses flag: %w", err)
	}
	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return fmt.Errorf("failed to read --json flag: %w", err)
	}

	responses, err := loadResponses(responsesPath)
	if err != nil {
		return err
	}

	log := newLogger()
	cache := snapcache.New(cfg.CacheTTL, cfg.CacheCapacity)
	stop := cache.StartSweeper(cfg.SweepInterval)
	defer stop()

	orch := workflow.New(newPipeline(cfg, log), cache, artifact.NewDirWriter(),
		cfg.MinResponseLength, cfg.QualityThreshold, cfg.OutputDir, log)

	phase1, err := orch.Analyze(context.Background(), rootPath)
	if err != nil {
		return err
	}

	result, err := orch.Synthesize(phase1.AnalysisID, responses)
	if err != nil {
		var validation *workflow.ValidationError
		if errors.As(err, &validation) {
			return fmt.Errorf("response validation failed: %s", validation.Error())
		}
		return err
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	switch result.Status {
	case workflow.StatusComplete:
		color.Green("synthesis complete (quality %d/100)", result.Metrics.Overall)
		for _, name := range result.Artifacts {
			fmt.Printf("  wrote %s\n", name)
		}
	case workflow.StatusNeedsEnhancement:
		color.Yellow("quality gate failed (%d/100); enhancement needed:", result.Metrics.Overall)
		for _, req := range result.Enhancements {
			fmt.Printf("  - %s\n", req)
		}
	}
	return nil
}

func loadResponses(path string) (workflow.ResponseSet, error) {
	var responses workflow.ResponseSet
	data, err := os.ReadFile(path)
	if err != nil {
		return responses, fmt.Errorf("failed to read responses file: %w", err)
	}
	if err := json.Unmarshal(data, &responses); err != nil {
		return responses, fmt.Errorf("failed to parse responses file: %w", err)
	}
	return responses, nil
}
