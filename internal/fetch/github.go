package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/devdeck-labs/devdeck/internal/clipparse"
	"github.com/devdeck-labs/devdeck/internal/history"
)

const githubAPIVersion = "2022-11-28"

type pullRequest struct {
	Title   string `json:"title"`
	HTMLURL string `json:"html_url"`
}

// FetchPR fetches the pull request at prURL and returns it as a history item
// with id "PR-<number>".
func (c *Client) FetchPR(ctx context.Context, prURL, token string) (history.Item, error) {
	if token == "" {
		return history.Item{}, missingToken("GitHub")
	}

	pr, err := clipparse.PullRequestPath(prURL)
	if err != nil {
		return history.Item{}, fmt.Errorf("%w: %s", ErrInvalidURL, prURL)
	}

	url := fmt.Sprintf("%s/repos/%s/%s/pulls/%s", c.githubBase, pr.Owner, pr.Repo, pr.Number)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return history.Item{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/vnd.github+json")
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("X-GitHub-Api-Version", githubAPIVersion)
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return history.Item{}, fmt.Errorf("fetching pull request: %w", err)
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return history.Item{}, statusError("GitHub", resp)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return history.Item{}, fmt.Errorf("reading response body: %w", err)
	}

	var payload pullRequest
	if err := json.Unmarshal(body, &payload); err != nil {
		return history.Item{}, fmt.Errorf("invalid GitHub API response: %w", ErrMalformedResponse)
	}
	if payload.Title == "" || payload.HTMLURL == "" {
		return history.Item{}, fmt.Errorf("invalid GitHub API response: missing required fields: %w", ErrMalformedResponse)
	}

	return history.Item{
		ID:       "PR-" + pr.Number,
		Type:     history.TypeGitHub,
		Label:    payload.Title,
		Markdown: fmt.Sprintf("[PR #%s - %s](%s)", pr.Number, payload.Title, payload.HTMLURL),
		Date:     c.now(),
		URL:      payload.HTMLURL,
	}, nil
}
