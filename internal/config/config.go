package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration settings
type Config struct {
	// GitHub configuration
	GitHub GitHubConfig `yaml:"github" mapstructure:"github"`

	// LLM configuration
	LLM LLMConfig `yaml:"llm" mapstructure:"llm"`

	// Traversal configuration
	Traversal TraversalConfig `yaml:"traversal" mapstructure:"traversal"`

	// Payload limits forwarded to the LLM call
	Limits LimitsConfig `yaml:"limits" mapstructure:"limits"`

	// Web UI configuration
	Web WebConfig `yaml:"web" mapstructure:"web"`
}

type GitHubConfig struct {
	Token     string `yaml:"token" mapstructure:"token"`
	RateLimit int    `yaml:"rate_limit" mapstructure:"rate_limit"` // Requests per second
}

type LLMConfig struct {
	Provider    string `yaml:"provider" mapstructure:"provider"` // "gemini" or "openai"
	GeminiKey   string `yaml:"gemini_key" mapstructure:"gemini_key"`
	GeminiModel string `yaml:"gemini_model" mapstructure:"gemini_model"`
	OpenAIKey   string `yaml:"openai_key" mapstructure:"openai_key"`
	OpenAIModel string `yaml:"openai_model" mapstructure:"openai_model"`
	UseKeychain bool   `yaml:"use_keychain" mapstructure:"use_keychain"`
}

type TraversalConfig struct {
	MaxDepth     int      `yaml:"max_depth" mapstructure:"max_depth"` // 1-5
	SkipDirs     []string `yaml:"skip_dirs" mapstructure:"skip_dirs"`
	HiddenAllow  []string `yaml:"hidden_allow" mapstructure:"hidden_allow"`
	MaxListCalls int      `yaml:"max_list_calls" mapstructure:"max_list_calls"` // concurrent listing calls
}

type LimitsConfig struct {
	MaxTreeItems   int `yaml:"max_tree_items" mapstructure:"max_tree_items"`
	MaxReadmeChars int `yaml:"max_readme_chars" mapstructure:"max_readme_chars"`
	MaxPerCategory int `yaml:"max_per_category" mapstructure:"max_per_category"`
}

type WebConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// DefaultSkipDirs lists directory names excluded from traversal. Version
// control metadata, dependency caches, and build output.
var DefaultSkipDirs = []string{
	".git", "node_modules", ".venv", "venv", "__pycache__",
	".pytest_cache", ".mypy_cache", "dist", "build", ".next",
	"target", ".idea", ".vscode", "coverage",
}

// DefaultHiddenAllow lists hidden root entries that survive the root-level
// dot filter.
var DefaultHiddenAllow = []string{".github", ".gitignore", ".env.example"}

// Default returns default configuration
func Default() *Config {
	return &Config{
		GitHub: GitHubConfig{
			RateLimit: 10,
		},
		LLM: LLMConfig{
			Provider:    "gemini",
			GeminiModel: "gemini-2.5-flash",
			OpenAIModel: "gpt-4o-mini",
		},
		Traversal: TraversalConfig{
			MaxDepth:     3,
			SkipDirs:     append([]string(nil), DefaultSkipDirs...),
			HiddenAllow:  append([]string(nil), DefaultHiddenAllow...),
			MaxListCalls: 4,
		},
		Limits: LimitsConfig{
			MaxTreeItems:   200,
			MaxReadmeChars: 5000,
			MaxPerCategory: 10,
		},
		Web: WebConfig{
			Port: 8471,
		},
	}
}

// Load loads configuration from file, then applies environment overrides.
func Load(path string) (*Config, error) {
	loadEnvFiles()

	v := viper.New()
	v.SetConfigType("yaml")

	cfg := Default()
	v.SetDefault("github", cfg.GitHub)
	v.SetDefault("llm", cfg.LLM)
	v.SetDefault("traversal", cfg.Traversal)
	v.SetDefault("limits", cfg.Limits)
	v.SetDefault("web", cfg.Web)

	v.SetEnvPrefix("RTOUR")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".repotour")
		v.AddConfigPath(".")
		homeDir, _ := os.UserHomeDir()
		v.AddConfigPath(filepath.Join(homeDir, ".repotour"))
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyEnvOverrides(cfg)

	return cfg, nil
}

// loadEnvFiles loads .env files in order of precedence
func loadEnvFiles() {
	envFiles := []string{
		".env.local",
		".env",
	}

	for _, file := range envFiles {
		if _, err := os.Stat(file); err == nil {
			godotenv.Load(file)
		}
	}

	homeDir, _ := os.UserHomeDir()
	homeEnvFile := filepath.Join(homeDir, ".repotour", ".env")
	if _, err := os.Stat(homeEnvFile); err == nil {
		godotenv.Load(homeEnvFile)
	}
}

// applyEnvOverrides applies environment variable overrides to config.
// Precedence for API keys: env var, then OS keychain, then config file.
func applyEnvOverrides(cfg *Config) {
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		cfg.GitHub.Token = token
	} else if cfg.GitHub.Token == "" {
		km := NewKeyringManager()
		if km.IsAvailable() {
			if keychainToken, err := km.GetGitHubToken(); err == nil && keychainToken != "" {
				cfg.GitHub.Token = keychainToken
			}
		}
	}
	if rateLimit := os.Getenv("GITHUB_RATE_LIMIT"); rateLimit != "" {
		if rate, err := strconv.Atoi(rateLimit); err == nil {
			cfg.GitHub.RateLimit = rate
		}
	}

	if provider := os.Getenv("LLM_PROVIDER"); provider != "" {
		cfg.LLM.Provider = provider
	}

	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		cfg.LLM.GeminiKey = key
	} else if key := os.Getenv("GOOGLE_API_KEY"); key != "" {
		cfg.LLM.GeminiKey = key
	} else if cfg.LLM.GeminiKey == "" {
		km := NewKeyringManager()
		if km.IsAvailable() {
			if keychainKey, err := km.GetGeminiKey(); err == nil && keychainKey != "" {
				cfg.LLM.GeminiKey = keychainKey
			}
		}
	}

	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		cfg.LLM.OpenAIKey = key
	} else if cfg.LLM.OpenAIKey == "" {
		km := NewKeyringManager()
		if km.IsAvailable() {
			if keychainKey, err := km.GetOpenAIKey(); err == nil && keychainKey != "" {
				cfg.LLM.OpenAIKey = keychainKey
			}
		}
	}

	if model := os.Getenv("GEMINI_MODEL"); model != "" {
		cfg.LLM.GeminiModel = model
	}
	if model := os.Getenv("OPENAI_MODEL"); model != "" {
		cfg.LLM.OpenAIModel = model
	}

	if depth := os.Getenv("RTOUR_MAX_DEPTH"); depth != "" {
		if d, err := strconv.Atoi(depth); err == nil {
			cfg.Traversal.MaxDepth = d
		}
	}
	if port := os.Getenv("RTOUR_WEB_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Web.Port = p
		}
	}
}

// Save writes the configuration to a yaml file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// DefaultPath returns the standard config file location.
func DefaultPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".repotour", "config.yaml")
}
