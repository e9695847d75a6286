package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mnemo-dev/mnemo/internal/artifact"
	"github.com/mnemo-dev/mnemo/internal/snapcache"
	"github.com/mnemo-dev/mnemo/internal/workflow"
)

func RunAnalyze(cmd *cobra.Command, args []string) error {
	rootPath, err := resolveProjectPath(args)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd, rootPath)
	if err != nil {
		return err
	}
	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return fmt.Errorf("failed to read --json flag: %w", err)
	}

	log := newLogger()
	cache := snapcache.New(cfg.CacheTTL, cfg.CacheCapacity)
	stop := cache.StartSweeper(cfg.SweepInterval)
	defer stop()

	orch := workflow.New(newPipeline(cfg, log), cache, artifact.NewDirWriter(),
		cfg.MinResponseLength, cfg.QualityThreshold, cfg.OutputDir, log)

	result, err := orch.Analyze(context.Background(), rootPath)
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	bold := color.New(color.Bold)
	bold.Printf("analysis %s\n", result.AnalysisID)
	fmt.Printf("status: %s (expires %s)\n\n", result.Status, result.ExpiresAt.Format("15:04:05"))

	printPrompt := func(name, body string) {
		color.Cyan("## %s\n", name)
		fmt.Println(body)
		fmt.Println()
	}
	printPrompt(workflow.SlotBrief, result.Prompts.Brief)
	printPrompt(workflow.SlotProductContext, result.Prompts.ProductContext)
	printPrompt(workflow.SlotActiveContext, result.Prompts.ActiveContext)
	printPrompt(workflow.SlotSystemPatterns, result.Prompts.SystemPatterns)
	printPrompt(workflow.SlotTechContext, result.Prompts.TechContext)
	printPrompt(workflow.SlotProgress, result.Prompts.Progress)
	return nil
}
