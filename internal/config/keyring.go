package config

import (
	"fmt"
	"log/slog"

	"github.com/zalando/go-keyring"
)

const (
	// KeyringService is the service name in the OS keychain
	KeyringService = "RepoTour"

	// KeyringGeminiItem is the key for the Gemini API key
	KeyringGeminiItem = "gemini-api-key"

	// KeyringOpenAIItem is the key for the OpenAI API key
	KeyringOpenAIItem = "openai-api-key"

	// KeyringGitHubItem is the key for the GitHub token
	KeyringGitHubItem = "github-token"
)

// KeyringManager handles secure credential storage in the OS keychain.
// macOS Keychain, Windows Credential Manager, Linux Secret Service.
type KeyringManager struct {
	logger *slog.Logger
}

// NewKeyringManager creates a new keyring manager
func NewKeyringManager() *KeyringManager {
	return &KeyringManager{
		logger: slog.Default().With("component", "keyring"),
	}
}

// IsAvailable checks whether the OS keychain can be used on this system.
func (km *KeyringManager) IsAvailable() bool {
	probe := "rtour-keychain-probe"
	if err := keyring.Set(KeyringService, probe, "ok"); err != nil {
		return false
	}
	keyring.Delete(KeyringService, probe)
	return true
}

func (km *KeyringManager) save(item, value string) error {
	if value == "" {
		return fmt.Errorf("credential cannot be empty")
	}
	if err := keyring.Set(KeyringService, item, value); err != nil {
		km.logger.Error("failed to save credential to keychain", "item", item, "error", err)
		return fmt.Errorf("failed to save to OS keychain: %w", err)
	}
	km.logger.Info("credential saved to keychain", "service", KeyringService, "item", item)
	return nil
}

func (km *KeyringManager) get(item string) (string, error) {
	value, err := keyring.Get(KeyringService, item)
	if err == keyring.ErrNotFound {
		// Not an error - just not set yet
		return "", nil
	}
	if err != nil {
		km.logger.Error("failed to read credential from keychain", "item", item, "error", err)
		return "", fmt.Errorf("failed to read from OS keychain: %w", err)
	}
	return value, nil
}

func (km *KeyringManager) delete(item string) error {
	err := keyring.Delete(KeyringService, item)
	if err == keyring.ErrNotFound {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to delete from OS keychain: %w", err)
	}
	return nil
}

// SaveGeminiKey stores the Gemini API key in the OS keychain.
func (km *KeyringManager) SaveGeminiKey(apiKey string) error { return km.save(KeyringGeminiItem, apiKey) }

// GetGeminiKey retrieves the Gemini API key from the OS keychain.
func (km *KeyringManager) GetGeminiKey() (string, error) { return km.get(KeyringGeminiItem) }

// SaveOpenAIKey stores the OpenAI API key in the OS keychain.
func (km *KeyringManager) SaveOpenAIKey(apiKey string) error { return km.save(KeyringOpenAIItem, apiKey) }

// GetOpenAIKey retrieves the OpenAI API key from the OS keychain.
func (km *KeyringManager) GetOpenAIKey() (string, error) { return km.get(KeyringOpenAIItem) }

// SaveGitHubToken stores the GitHub token in the OS keychain.
func (km *KeyringManager) SaveGitHubToken(token string) error { return km.save(KeyringGitHubItem, token) }

// GetGitHubToken retrieves the GitHub token from the OS keychain.
func (km *KeyringManager) GetGitHubToken() (string, error) { return km.get(KeyringGitHubItem) }

// DeleteAll removes every stored credential.
func (km *KeyringManager) DeleteAll() error {
	for _, item := range []string{KeyringGeminiItem, KeyringOpenAIItem, KeyringGitHubItem} {
		if err := km.delete(item); err != nil {
			return err
		}
	}
	return nil
}
