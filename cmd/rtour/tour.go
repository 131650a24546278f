package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/repotour/repotour/internal/config"
	"github.com/repotour/repotour/internal/output"
)

var tourCmd = &cobra.Command{
	Use:   "tour <owner/repo>",
	Short: "Generate a guided developer tour of a repository",
	Long: `Walks the repository's directory tree, classifies notable files,
aggregates structure statistics, and produces a guided onboarding tour:
key folders, important files, setup steps, architecture notes.

Examples:
  rtour tour pallets/flask
  rtour tour pallets/flask --depth 2`,
	Args: cobra.ExactArgs(1),
	RunE: runTour,
}

func init() {
	tourCmd.Flags().Int("depth", 0, fmt.Sprintf("tree traversal depth, %d-%d (default from config)", config.MinDepth, config.MaxDepth))
	tourCmd.Flags().Bool("json", false, "Print the raw JSON tour instead of the formatted view")
	tourCmd.Flags().Bool("stats", false, "Also print repository structure statistics")
}

func runTour(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	repo := args[0]

	depth, _ := cmd.Flags().GetInt("depth")
	if depth == 0 {
		depth = cfg.Traversal.MaxDepth
	}
	depth = config.ClampDepth(depth)

	pipeline, err := newPipeline(ctx)
	if err != nil {
		return err
	}

	logger.WithField("repo", repo).WithField("depth", depth).Debug("Generating tour")
	result, err := pipeline.GenerateTour(ctx, repo, depth)
	if err != nil {
		return err
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		fmt.Println(result.TourJSON)
		return nil
	}

	fmt.Println(result.Formatted)

	if withStats, _ := cmd.Flags().GetBool("stats"); withStats {
		fmt.Println(output.FormatStats(result.Stats))
		fmt.Println("Notable files:")
		fmt.Println(output.FormatCategories(result.Categories))
	}
	return nil
}
