package release

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const cacheFileName = "version-check.json"

// DefaultMaxAge is how long a check result is reused.
const DefaultMaxAge = 24 * time.Hour

// Cache is the persisted result of the last network check.
type Cache struct {
	LatestVersion   string    `json:"latest_version"`
	CurrentVersion  string    `json:"current_version"`
	URL             string    `json:"url,omitempty"`
	CheckedAt       time.Time `json:"checked_at"`
	UpdateAvailable bool      `json:"update_available"`
}

// LoadCache reads the cache from dir. A missing file yields nil, nil.
func LoadCache(dir string) (*Cache, error) {
	data, err := os.ReadFile(filepath.Join(dir, cacheFileName))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading version cache: %w", err)
	}

	var c Cache
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing version cache: %w", err)
	}
	return &c, nil
}

// SaveCache writes c to dir.
func SaveCache(dir string, c *Cache) error {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling version cache: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, cacheFileName), data, 0600); err != nil {
		return fmt.Errorf("writing version cache: %w", err)
	}
	return nil
}

// Stale reports whether the cache is missing or older than maxAge at now.
func (c *Cache) Stale(now time.Time, maxAge time.Duration) bool {
	if c == nil {
		return true
	}
	return now.Sub(c.CheckedAt) > maxAge
}
