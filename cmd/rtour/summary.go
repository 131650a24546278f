package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary <owner/repo>",
	Short: "Summarize a repository's README",
	Long: `Fetches the repository's README and produces a structured project
summary: purpose, key features, tech stack, quick-start hints.

Example:
  rtour summary golang/go`,
	Args: cobra.ExactArgs(1),
	RunE: runSummary,
}

func init() {
	summaryCmd.Flags().Bool("json", false, "Print the raw JSON summary instead of the formatted view")
}

func runSummary(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	repo := args[0]

	pipeline, err := newPipeline(ctx)
	if err != nil {
		return err
	}

	logger.WithField("repo", repo).Debug("Generating summary")
	result, err := pipeline.GenerateSummary(ctx, repo)
	if err != nil {
		return err
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		fmt.Println(result.SummaryJSON)
		return nil
	}

	fmt.Println(result.Formatted)
	return nil
}
