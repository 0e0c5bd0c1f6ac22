// Package config provides application settings loaded from environment variables.
//
// Settings are created via New() which handles:
// - Environment variable parsing with validation
// - Default value application
// - Front-end selection (HTTP port, Telegram token)

package config

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
)

// Settings holds all application configuration.
type Settings struct {
	LLM           LLMConfig
	Search        SearchConfig
	HTTPPort      string
	TelegramToken string
	Debug         DebugConfig
}

// LLMConfig holds chat endpoint configuration.
type LLMConfig struct {
	Provider  string
	BaseURL   string
	APIKey    string
	Model     string
	Streaming bool
}

// SearchConfig holds web-search API configuration.
type SearchConfig struct {
	APIKey string
}

// DebugConfig holds the diagnostic logging flags.
type DebugConfig struct {
	Chat     bool
	Pipeline bool
	Search   bool
	FailExit bool
}

const (
	defaultBaseURL = "https://openrouter.ai/api/v1"
	defaultModel   = "meta-llama/llama-3-8b-instruct"

	// minSearchKeyLength guards against truncated keys: a valid you.com key
	// is at least this long.
	minSearchKeyLength = 64

	// minTelegramTokenLength likewise; a shorter token cannot be real and
	// does not select the Telegram front-end.
	minTelegramTokenLength = 40
)

// New creates settings from environment variables.
// Returns an error if the search API key is missing or malformed.
func New() (Settings, error) {
	searchKey := os.Getenv("YOU_API_KEY")
	if len(searchKey) < minSearchKeyLength {
		return Settings{}, fmt.Errorf("config: YOU_API_KEY must be set to a valid key (at least %d characters)", minSearchKeyLength)
	}

	token := os.Getenv("GAMAL_TELEGRAM_TOKEN")
	if len(token) < minTelegramTokenLength {
		token = ""
	}

	return Settings{
		LLM: LLMConfig{
			Provider:  os.Getenv("LLM_PROVIDER"),
			BaseURL:   getEnv("LLM_API_BASE_URL", defaultBaseURL),
			APIKey:    os.Getenv("LLM_API_KEY"),
			Model:     getEnv("LLM_CHAT_MODEL", defaultModel),
			Streaming: !strings.EqualFold(os.Getenv("LLM_STREAMING"), "no"),
		},
		Search: SearchConfig{
			APIKey: searchKey,
		},
		HTTPPort:      os.Getenv("GAMAL_HTTP_PORT"),
		TelegramToken: token,
		Debug: DebugConfig{
			Chat:     getEnvFlag("LLM_DEBUG_CHAT"),
			Pipeline: getEnvFlag("LLM_DEBUG_PIPELINE"),
			Search:   getEnvFlag("LLM_DEBUG_SEARCH"),
			FailExit: getEnvFlag("LLM_DEBUG_FAIL_EXIT"),
		},
	}, nil
}

// DebugLogger builds a development-style logger when the flag is enabled and
// a no-op logger otherwise, so callers never have to nil-check.
func DebugLogger(enabled bool) *zap.SugaredLogger {
	if !enabled {
		return zap.NewNop().Sugar()
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{"stderr"}
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop().Sugar()
	}
	return logger.Sugar()
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// getEnvFlag treats any non-empty value except "0" and "false" as set.
func getEnvFlag(key string) bool {
	val := strings.ToLower(os.Getenv(key))
	return val != "" && val != "0" && val != "false"
}
