// Package cli is the thin command surface over the project intelligence
// pipeline and the two-phase synthesis workflow.
package cli

import (
	"github.com/spf13/cobra"
)

func NewRootCommand(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "mnemo",
		Short: "Analyze a codebase and drive memory-bank documentation synthesis",
		Long: `Mnemo inspects a source tree, builds a structural and relational model
of it, and drives a two-phase workflow: phase 1 produces six documentation
prompts from the analysis, phase 2 validates externally generated responses
against a quality gate and commits the accepted memory-bank artifacts.`,
		Version: version,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [path]",
		Short: "Run phase 1: analyze a project and print the prompt set",
		Args:  cobra.MaximumNArgs(1),
		RunE:  RunAnalyze,
	}
	analyzeCmd.Flags().Bool("json", false, "Print machine-readable analysis output")
	analyzeCmd.Flags().Int("depth", 0, "Override the scan depth budget")

	synthesizeCmd := &cobra.Command{
		Use:   "synthesize [path]",
		Short: "Run both phases: analyze, then commit responses through the quality gate",
		Long: `Synthesize runs phase 1 and phase 2 in a single process; the analysis
cache lives in memory, so both phases share one invocation. Responses are
read from a JSON file with the six documentation slots.`,
		Args: cobra.MaximumNArgs(1),
		RunE: RunSynthesize,
	}
	synthesizeCmd.Flags().String("responses", "", "JSON file holding the six response slots (required)")
	synthesizeCmd.Flags().String("output", "", "Override the artifact output directory")
	synthesizeCmd.Flags().Bool("json", false, "Print machine-readable synthesis output")
	_ = synthesizeCmd.MarkFlagRequired("responses")

	graphCmd := &cobra.Command{
		Use:   "graph [path]",
		Short: "Print the relationship graph for a project",
		Args:  cobra.MaximumNArgs(1),
		RunE:  RunGraph,
	}
	graphCmd.Flags().Bool("json", false, "Print machine-readable graph output")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(synthesizeCmd)
	rootCmd.AddCommand(graphCmd)

	return rootCmd
}
