// Package credentials reads and writes the GitHub and Linear API tokens kept
// in the DevDeck store.
package credentials

import (
	"fmt"

	"github.com/devdeck-labs/devdeck/internal/store"
)

// Credentials holds the provider tokens. An empty string means unset.
type Credentials struct {
	GitHub string
	Linear string
}

// Validation reports which tokens are present.
type Validation struct {
	GitHub bool
	Linear bool
	// Valid is true when both tokens are present.
	Valid bool
}

// Validate checks that each token is non-empty. Tokens are not verified
// against the providers.
func (c Credentials) Validate() Validation {
	v := Validation{
		GitHub: c.GitHub != "",
		Linear: c.Linear != "",
	}
	v.Valid = v.GitHub && v.Linear
	return v
}

// Missing lists the providers whose token is unset.
func (v Validation) Missing() []string {
	var out []string
	if !v.GitHub {
		out = append(out, "GitHub")
	}
	if !v.Linear {
		out = append(out, "Linear")
	}
	return out
}

// Load reads both tokens from kv. Absent keys yield empty tokens.
func Load(kv *store.Store) (Credentials, error) {
	var c Credentials
	if _, err := kv.Get(store.KeyGitHubAPIKey, &c.GitHub); err != nil {
		return Credentials{}, fmt.Errorf("reading GitHub token: %w", err)
	}
	if _, err := kv.Get(store.KeyLinearAPIKey, &c.Linear); err != nil {
		return Credentials{}, fmt.Errorf("reading Linear token: %w", err)
	}
	return c, nil
}

// SaveGitHub stores the GitHub token.
func SaveGitHub(kv *store.Store, token string) error {
	if err := kv.Set(store.KeyGitHubAPIKey, token); err != nil {
		return fmt.Errorf("saving GitHub token: %w", err)
	}
	return nil
}

// SaveLinear stores the Linear token.
func SaveLinear(kv *store.Store, token string) error {
	if err := kv.Set(store.KeyLinearAPIKey, token); err != nil {
		return fmt.Errorf("saving Linear token: %w", err)
	}
	return nil
}

// Source loads credentials from a store on every call so edits made by other
// processes are picked up without restarting.
type Source struct {
	kv *store.Store
}

// NewSource returns a Source reading from kv.
func NewSource(kv *store.Store) *Source {
	return &Source{kv: kv}
}

// Credentials returns the current tokens.
func (s *Source) Credentials() (Credentials, error) {
	return Load(s.kv)
}

// Redact shows the first four characters of a token followed by "***".
// Shorter non-empty tokens are fully masked and an empty token stays empty.
func Redact(token string) string {
	if token == "" {
		return ""
	}
	if len(token) >= 4 {
		return token[:4] + "***"
	}
	return "***"
}
