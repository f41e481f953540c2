// Package config loads client configuration from environment variables,
// optionally seeded from a .env file.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// placeholderURL is the sample value shipped in .env templates; treating it
// as unset makes half-finished setups fail validation instead of hanging
// on a nonexistent host.
const placeholderURL = "https://your-letta-server.com:8283"

// Config holds the client's environment-driven settings.
type Config struct {
	ServerURL   string
	APIToken    string
	DisplayName string

	DefaultAgentID string
	ShowReasoning  bool
	Theme          string
	ThemeFile      string

	LogFile string

	VibeControlFile string
	VibeLogFile     string
	VibePrompt      string
	VibeInterval    time.Duration
}

// Load reads configuration from the environment. envFile, when non-empty,
// is loaded first via godotenv; a missing file is not an error so the
// client works from plain environment variables alone.
func Load(envFile string) *Config {
	if envFile == "" {
		envFile = ".env"
	}
	_ = godotenv.Load(envFile)

	return &Config{
		ServerURL:      getenv("LETTA_SERVER_URL", placeholderURL),
		APIToken:       os.Getenv("LETTA_API_TOKEN"),
		DisplayName:    getenv("DISPLAY_NAME", "User"),
		DefaultAgentID: os.Getenv("DEFAULT_AGENT_ID"),
		ShowReasoning:  getenvBool("SHOW_REASONING", false),
		Theme:          getenv("ANIMA_THEME", "default"),
		ThemeFile:      os.Getenv("ANIMA_THEME_FILE"),
		LogFile:        getenv("ANIMA_LOG_FILE", defaultPath("anima.log")),

		VibeControlFile: getenv("VIBE_CONTROL_FILE", defaultPath("vibe_control.json")),
		VibeLogFile:     getenv("VIBE_LOG_FILE", defaultPath("vibe.log")),
		VibePrompt:      getenv("VIBE_MODE_PROMPT", "Continue your current train of thought."),
		VibeInterval:    time.Duration(getenvInt("VIBE_INTERVAL_SECONDS", 300)) * time.Second,
	}
}

// Validate reports whether the configuration is complete enough to talk to
// a server. A failing config puts the client in the Unavailable state
// rather than aborting startup.
func (c *Config) Validate() error {
	if c.APIToken == "" {
		return errors.New("LETTA_API_TOKEN is required")
	}
	if c.ServerURL == "" || c.ServerURL == placeholderURL {
		return errors.New("LETTA_SERVER_URL must be set to your actual server")
	}
	return nil
}

// NewLogger builds a file-backed zap logger so log output never interferes
// with the terminal UI.
func NewLogger(c *Config) (*zap.Logger, error) {
	return NewFileLogger(c.LogFile)
}

// NewFileLogger builds a zap logger writing to the given file, creating
// parent directories as needed. The vibe runner logs to its own file.
func NewFileLogger(path string) (*zap.Logger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	zc := zap.NewProductionConfig()
	zc.OutputPaths = []string{path}
	zc.ErrorOutputPaths = []string{path}
	return zc.Build()
}

func defaultPath(name string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return name
	}
	return filepath.Join(home, ".anima", name)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
