package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/devdeck-labs/devdeck/internal/branding"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Config keys understood by Settings.
const (
	KeyPollInterval   = "poll_interval"
	KeyCopiedDuration = "copied_duration"
	KeyAlertDismiss   = "alert_dismiss"
	KeyAlertSwapDelay = "alert_swap_delay"
	KeyGitHubAPIURL   = "github_api_url"
	KeyLinearAPIURL   = "linear_api_url"
	KeyHTTPTimeout    = "http_timeout"
	KeyStoreFile      = "store_file"
	KeyLogFile        = "log_file"
)

// Settings is the resolved runtime configuration.
type Settings struct {
	PollInterval   time.Duration
	CopiedDuration time.Duration
	AlertDismiss   time.Duration
	AlertSwapDelay time.Duration
	GitHubAPIURL   string
	LinearAPIURL   string
	// HTTPTimeout of zero means requests only end when their context does.
	HTTPTimeout time.Duration
	StoreFile   string
	LogFile     string
}

// Dir returns the path to the DevDeck config directory (~/.devdeck/).
// DEVDECK_HOME overrides it.
func Dir() string {
	if v := os.Getenv(branding.EnvVar("HOME")); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.devdeck/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

func setDefaults() {
	viper.SetDefault(KeyPollInterval, time.Second)
	viper.SetDefault(KeyCopiedDuration, 2*time.Second)
	viper.SetDefault(KeyAlertDismiss, 3*time.Second)
	viper.SetDefault(KeyAlertSwapDelay, 600*time.Millisecond)
	viper.SetDefault(KeyGitHubAPIURL, "https://api.github.com")
	viper.SetDefault(KeyLinearAPIURL, "https://api.linear.app")
	viper.SetDefault(KeyHTTPTimeout, time.Duration(0))
	viper.SetDefault(KeyStoreFile, filepath.Join(Dir(), "store.json"))
	viper.SetDefault(KeyLogFile, filepath.Join(Dir(), "devdeck.log"))
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	setDefaults()
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Current returns the settings resolved by the last Load.
func Current() Settings {
	return Settings{
		PollInterval:   viper.GetDuration(KeyPollInterval),
		CopiedDuration: viper.GetDuration(KeyCopiedDuration),
		AlertDismiss:   viper.GetDuration(KeyAlertDismiss),
		AlertSwapDelay: viper.GetDuration(KeyAlertSwapDelay),
		GitHubAPIURL:   viper.GetString(KeyGitHubAPIURL),
		LinearAPIURL:   viper.GetString(KeyLinearAPIURL),
		HTTPTimeout:    viper.GetDuration(KeyHTTPTimeout),
		StoreFile:      viper.GetString(KeyStoreFile),
		LogFile:        viper.GetString(KeyLogFile),
	}
}

// Validate rejects settings the watcher cannot run with.
func (s Settings) Validate() error {
	if s.PollInterval <= 0 {
		return fmt.Errorf("%s must be positive, got %s", KeyPollInterval, s.PollInterval)
	}
	if s.HTTPTimeout < 0 {
		return fmt.Errorf("%s must not be negative, got %s", KeyHTTPTimeout, s.HTTPTimeout)
	}
	if s.StoreFile == "" {
		return fmt.Errorf("%s must be set", KeyStoreFile)
	}
	return nil
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
