package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/repotour/repotour/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage RepoTour configuration",
	Long:  `View and modify RepoTour configuration settings.`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the configuration file with defaults",
	RunE:  runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	RunE:  runConfigShow,
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	configPath := config.DefaultPath()

	if _, err := os.Stat(configPath); err == nil {
		fmt.Printf("Config file already exists: %s\n", configPath)
		fmt.Println("Use 'rtour configure' to modify it, or edit the file directly.")
		return nil
	}

	if err := config.Default().Save(configPath); err != nil {
		return fmt.Errorf("failed to create config: %w", err)
	}

	fmt.Printf("✅ Created config file: %s\n", configPath)
	fmt.Println("Run 'rtour configure' to set API keys.")
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	fmt.Printf("Config file: %s\n\n", config.DefaultPath())

	fmt.Println("GitHub:")
	fmt.Printf("  token:           %s\n", maskSecret(cfg.GitHub.Token))
	fmt.Printf("  rate_limit:      %d req/s\n", cfg.GitHub.RateLimit)
	fmt.Println("LLM:")
	fmt.Printf("  provider:        %s\n", cfg.LLM.Provider)
	fmt.Printf("  gemini_model:    %s\n", cfg.LLM.GeminiModel)
	fmt.Printf("  gemini_api_key:  %s\n", maskSecret(cfg.LLM.GeminiKey))
	fmt.Printf("  openai_model:    %s\n", cfg.LLM.OpenAIModel)
	fmt.Printf("  openai_api_key:  %s\n", maskSecret(cfg.LLM.OpenAIKey))
	fmt.Printf("  use_keychain:    %t\n", cfg.LLM.UseKeychain)
	fmt.Println("Traversal:")
	fmt.Printf("  max_depth:       %d\n", cfg.Traversal.MaxDepth)
	fmt.Printf("  skip_dirs:       %s\n", strings.Join(cfg.Traversal.SkipDirs, ", "))
	fmt.Println("Limits:")
	fmt.Printf("  max_tree_items:  %d\n", cfg.Limits.MaxTreeItems)
	fmt.Printf("  max_readme_chars: %d\n", cfg.Limits.MaxReadmeChars)
	fmt.Printf("  max_per_category: %d\n", cfg.Limits.MaxPerCategory)
	fmt.Println("Web:")
	fmt.Printf("  port:            %d\n", cfg.Web.Port)
	return nil
}

// maskSecret shows enough of a credential to recognize it without
// printing the whole value.
func maskSecret(s string) string {
	if s == "" {
		return "(not set)"
	}
	if len(s) <= 8 {
		return "****"
	}
	return s[:4] + "..." + s[len(s)-4:]
}
