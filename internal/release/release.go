package release

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/devdeck-labs/devdeck/internal/branding"
)

const defaultBaseURL = "https://api.github.com"

// Release is the subset of a GitHub release the check needs.
type Release struct {
	Version   string    `json:"tag_name"`
	Published time.Time `json:"published_at"`
	HTMLURL   string    `json:"html_url"`
}

// Checker looks up the latest release of the DevDeck repository.
type Checker struct {
	current    string
	httpClient *http.Client
	baseURL    string
	repo       string
	token      string
	now        func() time.Time
}

// Option configures a Checker.
type Option func(*Checker)

// WithHTTPClient sets a custom HTTP client (useful for testing).
func WithHTTPClient(c *http.Client) Option {
	return func(ch *Checker) {
		ch.httpClient = c
	}
}

// WithBaseURL points the checker at a GitHub Enterprise or test server.
func WithBaseURL(base string) Option {
	return func(ch *Checker) {
		if base != "" {
			ch.baseURL = strings.TrimRight(base, "/")
		}
	}
}

// WithToken authenticates requests for higher rate limits.
func WithToken(token string) Option {
	return func(ch *Checker) {
		ch.token = token
	}
}

// WithClock overrides time.Now for cache timestamps.
func WithClock(now func() time.Time) Option {
	return func(ch *Checker) {
		ch.now = now
	}
}

// New creates a Checker for the running version.
func New(currentVersion string, opts ...Option) *Checker {
	ch := &Checker{
		current:    currentVersion,
		httpClient: http.DefaultClient,
		baseURL:    defaultBaseURL,
		repo:       branding.GitHubRepo(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(ch)
	}
	return ch
}

// Latest fetches the latest published release.
func (c *Checker) Latest(ctx context.Context) (Release, error) {
	url := fmt.Sprintf("%s/repos/%s/releases/latest", c.baseURL, c.repo)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Release{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", branding.CLIName()+"-release-check")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Release{}, fmt.Errorf("fetching release: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return Release{}, fmt.Errorf("no release published for %s", c.repo)
	case resp.StatusCode == http.StatusForbidden:
		return Release{}, fmt.Errorf("GitHub API rate limit exceeded. Run '%s creds set github <token>' for higher limits", branding.CLIName())
	case resp.StatusCode != http.StatusOK:
		return Release{}, fmt.Errorf("GitHub API returned status %d", resp.StatusCode)
	}

	var r Release
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return Release{}, fmt.Errorf("parsing release JSON: %w", err)
	}
	if r.Version == "" {
		return Release{}, fmt.Errorf("release has no tag")
	}
	return r, nil
}

// Result is the outcome of a check.
type Result struct {
	Current   string
	Latest    string
	URL       string
	Available bool
	// Cached is true when the answer came from the cache file.
	Cached bool
}

// Check compares the running version with the latest release. A cache in dir
// younger than maxAge is used instead of the network unless force is set.
// Development builds never report an update.
func (c *Checker) Check(ctx context.Context, dir string, maxAge time.Duration, force bool) (Result, error) {
	if !force {
		cache, err := LoadCache(dir)
		if err == nil && !cache.Stale(c.now(), maxAge) && cache.CurrentVersion == c.current {
			return Result{
				Current:   c.current,
				Latest:    cache.LatestVersion,
				URL:       cache.URL,
				Available: cache.UpdateAvailable,
				Cached:    true,
			}, nil
		}
	}

	r, err := c.Latest(ctx)
	if err != nil {
		return Result{}, err
	}

	// Tags or builds that are not semantic versions, such as "dev", never
	// report an update.
	available, _ := newerRelease(c.current, r.Version)

	cache := &Cache{
		LatestVersion:   r.Version,
		CurrentVersion:  c.current,
		URL:             r.HTMLURL,
		CheckedAt:       c.now(),
		UpdateAvailable: available,
	}
	if err := SaveCache(dir, cache); err != nil {
		return Result{}, err
	}

	return Result{
		Current:   c.current,
		Latest:    r.Version,
		URL:       r.HTMLURL,
		Available: available,
	}, nil
}

// newerRelease reports whether the release tag is ahead of the running
// build. Both may carry a leading "v".
func newerRelease(current, tag string) (bool, error) {
	running, err := semver.NewVersion(strings.TrimPrefix(current, "v"))
	if err != nil {
		return false, fmt.Errorf("parsing build version %q: %w", current, err)
	}
	published, err := semver.NewVersion(strings.TrimPrefix(tag, "v"))
	if err != nil {
		return false, fmt.Errorf("parsing release tag %q: %w", tag, err)
	}
	return published.GreaterThan(running), nil
}
