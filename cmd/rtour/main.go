package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/repotour/repotour/internal/agent"
	"github.com/repotour/repotour/internal/config"
	apperrors "github.com/repotour/repotour/internal/errors"
	"github.com/repotour/repotour/internal/github"
	"github.com/repotour/repotour/internal/llm"
)

var (
	// Version information (set by build flags)
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"

	cfgFile string
	verbose bool
	logger  *logrus.Logger
	cfg     *config.Config
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		if appErr, ok := err.(*apperrors.Error); ok {
			fmt.Fprintf(os.Stderr, "Error: %s\n", appErr.DetailedString())
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "rtour",
	Short: "RepoTour - AI guided tours for GitHub repositories",
	Long: `RepoTour analyzes a public GitHub repository and generates a structured
onboarding guide: a README summary or a full guided developer tour built
from the repository's structure.`,
	Version: Version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = logrus.New()
		if verbose {
			logger.SetLevel(logrus.DebugLevel)
		} else {
			logger.SetLevel(logrus.InfoLevel)
		}

		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			logger.WithError(err).Warn("Failed to load config, using defaults")
			cfg = config.Default()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.repotour/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.SetVersionTemplate(`RepoTour {{.Version}}
Build time: ` + BuildTime + `
Git commit: ` + GitCommit + `
`)

	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(tourCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configureCmd)
	rootCmd.AddCommand(configCmd)
}

// newPipeline assembles the GitHub source, LLM client, and pipeline from
// the loaded configuration.
func newPipeline(ctx context.Context) (*agent.Pipeline, error) {
	completer, err := llm.NewClient(ctx, cfg.LLM)
	if err != nil {
		return nil, err
	}

	source := github.NewClient(cfg.GitHub.Token, cfg.GitHub.RateLimit)
	return agent.New(source, completer, cfg.Traversal, cfg.Limits), nil
}
