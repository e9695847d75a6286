package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func RunGraph(cmd *cobra.Command, args []string) error {
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
	snap, err := newPipeline(cfg, log).Run(context.Background(), rootPath)
	if err != nil {
		return err
	}
	g := snap.Graph

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(g)
	}

	bold := color.New(color.Bold)
	bold.Printf("%d nodes, %d edges\n\n", len(g.Nodes), g.EdgeCount())

	paths := make([]string, 0, len(g.Nodes))
	for path := range g.Nodes {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	for _, path := range paths {
		node := g.Nodes[path]
		rel, err := filepath.Rel(rootPath, path)
		if err != nil {
			rel = path
		}
		line := fmt.Sprintf("%s (importance %d", rel, node.Importance)
		if node.CycleRisk > 0 {
			line += color.RedString(", cycle risk %d", node.CycleRisk)
		}
		fmt.Println(line + ")")
		for _, edge := range node.Dependencies {
			target, err := filepath.Rel(rootPath, edge.Path)
			if err != nil {
				target = edge.Path
			}
			fmt.Printf("  -> %s (%s)\n", target, edge.Kind)
		}
	}

	if len(g.Clusters) > 0 {
		fmt.Println()
		color.Cyan("clusters:")
		for _, cluster := range g.Clusters {
			fmt.Printf("  %s (cohesion %.2f)\n", cluster.Purpose, cluster.Cohesion)
		}
	}
	if len(g.CriticalPaths) > 0 {
		fmt.Println()
		color.Cyan("critical paths:")
		for _, cp := range g.CriticalPaths {
			fmt.Printf("  %s -> %s (%d files, risk %d)\n",
				filepath.Base(cp.Entry), filepath.Base(cp.Exit), len(cp.Files), cp.RiskScore)
		}
	}
	return nil
}
