package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/repotour/repotour/internal/config"
)

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Interactive setup wizard for RepoTour (with OS keychain support)",
	Long: `Walk through RepoTour configuration step-by-step with secure credential storage.

This will configure:
1. LLM provider (Gemini or OpenAI) and API key
2. GitHub token (optional, raises the API rate limit)
3. Traversal depth and web UI port`,
	RunE: runConfigure,
}

func runConfigure(cmd *cobra.Command, args []string) error {
	fmt.Println("🔧 RepoTour Configuration Wizard")
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Println()

	reader := bufio.NewReader(os.Stdin)
	configPath := config.DefaultPath()

	loadedCfg, err := config.Load("")
	if err != nil {
		loadedCfg = config.Default()
	}

	km := config.NewKeyringManager()
	keychainAvailable := km.IsAvailable()
	if !keychainAvailable {
		fmt.Println("⚠️  OS keychain not available (headless system or Linux without libsecret)")
		fmt.Println("   API keys will be stored in the config file instead.")
		fmt.Println()
	}

	// Step 1: provider and API key
	fmt.Println("Step 1/3: LLM Provider")
	fmt.Println()
	fmt.Println("Available providers:")
	fmt.Println("  1. Gemini (recommended, free tier available)")
	fmt.Println("  2. OpenAI")
	fmt.Printf("Current: %s\n", loadedCfg.LLM.Provider)
	fmt.Print("Select provider (1-2) or press Enter to keep current: ")

	response := readLine(reader)
	switch response {
	case "1":
		loadedCfg.LLM.Provider = "gemini"
	case "2":
		loadedCfg.LLM.Provider = "openai"
	}
	fmt.Printf("✅ Using %s\n", loadedCfg.LLM.Provider)
	fmt.Println()

	if loadedCfg.LLM.Provider == "gemini" {
		fmt.Println("Get a Gemini API key at: https://aistudio.google.com/apikey")
		fmt.Print("Enter your Gemini API key (leave blank to keep current): ")
	} else {
		fmt.Println("Get an OpenAI API key at: https://platform.openai.com/api-keys")
		fmt.Print("Enter your OpenAI API key (starts with sk-, leave blank to keep current): ")
	}

	apiKey, err := readSecret()
	if err != nil {
		return fmt.Errorf("failed to read API key: %w", err)
	}
	if apiKey != "" {
		saveKey := func() error {
			if loadedCfg.LLM.Provider == "gemini" {
				return km.SaveGeminiKey(apiKey)
			}
			return km.SaveOpenAIKey(apiKey)
		}
		if keychainAvailable && saveKey() == nil {
			fmt.Println("✅ API key saved to OS keychain (secure)")
			loadedCfg.LLM.UseKeychain = true
		} else {
			if loadedCfg.LLM.Provider == "gemini" {
				loadedCfg.LLM.GeminiKey = apiKey
			} else {
				loadedCfg.LLM.OpenAIKey = apiKey
			}
			loadedCfg.LLM.UseKeychain = false
			fmt.Println("✅ API key saved to config file (plaintext)")
		}
	}
	fmt.Println()

	// Step 2: GitHub token
	fmt.Println("Step 2/3: GitHub Token (Optional)")
	fmt.Println()
	fmt.Println("Without a token, the GitHub API allows 60 requests/hour.")
	fmt.Println("With a token: 5000 requests/hour. Create one at: https://github.com/settings/tokens")
	fmt.Print("Enter a GitHub token (leave blank to skip): ")

	token, err := readSecret()
	if err != nil {
		return fmt.Errorf("failed to read token: %w", err)
	}
	if token != "" {
		if keychainAvailable && km.SaveGitHubToken(token) == nil {
			fmt.Println("✅ GitHub token saved to OS keychain")
		} else {
			loadedCfg.GitHub.Token = token
			fmt.Println("✅ GitHub token saved to config file")
		}
	}
	fmt.Println()

	// Step 3: defaults
	fmt.Println("Step 3/3: Defaults")
	fmt.Println()
	fmt.Printf("Current traversal depth: %d (range %d-%d)\n",
		loadedCfg.Traversal.MaxDepth, config.MinDepth, config.MaxDepth)
	fmt.Print("Change depth? Enter a value or press Enter to keep: ")

	if response = readLine(reader); response != "" {
		var depth int
		if _, err := fmt.Sscanf(response, "%d", &depth); err == nil {
			loadedCfg.Traversal.MaxDepth = config.ClampDepth(depth)
		}
	}
	fmt.Printf("✅ Traversal depth: %d\n", loadedCfg.Traversal.MaxDepth)

	fmt.Printf("Current web UI port: %d\n", loadedCfg.Web.Port)
	fmt.Print("Change port? Enter a value or press Enter to keep: ")

	if response = readLine(reader); response != "" {
		var port int
		if _, err := fmt.Sscanf(response, "%d", &port); err == nil && port > 0 && port < 65536 {
			loadedCfg.Web.Port = port
		}
	}
	fmt.Printf("✅ Web UI port: %d\n", loadedCfg.Web.Port)
	fmt.Println()

	fmt.Printf("Save to: %s\n", configPath)
	fmt.Print("Confirm? (Y/n): ")

	if response = readLine(reader); response == "" || strings.ToLower(response) == "y" {
		if err := loadedCfg.Save(configPath); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		fmt.Println("✅ Configuration saved!")
		fmt.Println()
		fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		fmt.Println("🎯 Next Steps:")
		fmt.Println()
		fmt.Println("  rtour summary golang/go")
		fmt.Println("  rtour tour pallets/flask --depth 3")
		fmt.Println("  rtour serve --open")
	} else {
		fmt.Println("Configuration not saved.")
	}

	return nil
}

func readLine(reader *bufio.Reader) string {
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}

// readSecret reads without echo when stdin is a terminal, falling back to
// plain reads for piped input.
func readSecret() (string, error) {
	fd := int(syscall.Stdin)
	if term.IsTerminal(fd) {
		raw, err := term.ReadPassword(fd)
		fmt.Println()
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(raw)), nil
	}
	reader := bufio.NewReader(os.Stdin)
	return readLine(reader), nil
}
