package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func setupHome(t *testing.T) string {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
	dir := t.TempDir()
	t.Setenv("DEVDECK_HOME", dir)
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	dir := setupHome(t)
	Load()

	s := Current()
	if s.PollInterval != time.Second {
		t.Errorf("PollInterval = %s, want 1s", s.PollInterval)
	}
	if s.CopiedDuration != 2*time.Second {
		t.Errorf("CopiedDuration = %s, want 2s", s.CopiedDuration)
	}
	if s.AlertDismiss != 3*time.Second {
		t.Errorf("AlertDismiss = %s, want 3s", s.AlertDismiss)
	}
	if s.AlertSwapDelay != 600*time.Millisecond {
		t.Errorf("AlertSwapDelay = %s, want 600ms", s.AlertSwapDelay)
	}
	if s.HTTPTimeout != 0 {
		t.Errorf("HTTPTimeout = %s, want 0", s.HTTPTimeout)
	}
	if s.StoreFile != filepath.Join(dir, "store.json") {
		t.Errorf("StoreFile = %q", s.StoreFile)
	}
	if err := s.Validate(); err != nil {
		t.Errorf("default settings should validate: %v", err)
	}
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := setupHome(t)
	content := "poll_interval: 250ms\ngithub_api_url: https://ghe.example.com/api/v3\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DEVDECK_HTTP_TIMEOUT", "15s")

	Load()
	s := Current()

	if s.PollInterval != 250*time.Millisecond {
		t.Errorf("PollInterval = %s, want 250ms", s.PollInterval)
	}
	if s.GitHubAPIURL != "https://ghe.example.com/api/v3" {
		t.Errorf("GitHubAPIURL = %q", s.GitHubAPIURL)
	}
	if s.HTTPTimeout != 15*time.Second {
		t.Errorf("HTTPTimeout = %s, want 15s", s.HTTPTimeout)
	}
}

func TestSetAndGet(t *testing.T) {
	dir := setupHome(t)
	Load()

	if err := Set(KeyLinearAPIURL, "https://linear.internal"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if got := Get(KeyLinearAPIURL); got != "https://linear.internal" {
		t.Errorf("Get = %q", got)
	}
	if _, err := os.Stat(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("config file not written: %v", err)
	}
}

func TestSettingsValidate(t *testing.T) {
	tests := []struct {
		name    string
		s       Settings
		wantErr bool
	}{
		{"valid", Settings{PollInterval: time.Second, StoreFile: "x.json"}, false},
		{"zero poll", Settings{StoreFile: "x.json"}, true},
		{"negative timeout", Settings{PollInterval: time.Second, HTTPTimeout: -1, StoreFile: "x.json"}, true},
		{"no store", Settings{PollInterval: time.Second}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.s.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
