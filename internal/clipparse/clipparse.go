// Package clipparse recognizes Linear issue keys and GitHub pull-request URLs
// in clipboard text.
package clipparse

import (
	"errors"
	"net/url"
	"regexp"
	"strings"

	"github.com/devdeck-labs/devdeck/internal/history"
)

var (
	linearPattern = regexp.MustCompile(`(ENG-|PAY-)\d+`)
	githubPattern = regexp.MustCompile(`https://github\.com/[a-zA-Z0-9_-]+/[a-zA-Z0-9_-]+/pull/[0-9]+`)
	digits        = regexp.MustCompile(`^[0-9]+$`)
)

// ErrNotPullRequest is returned by PullRequestPath for URLs without owner,
// repo and number segments.
var ErrNotPullRequest = errors.New("not a pull request URL")

// Result identifies the PR or issue found in a piece of clipboard text.
type Result struct {
	Type history.Type
	ID   string
	// URL is the matched pull-request URL for GitHub and the whole text for Linear.
	URL string
}

// Parse returns the first recognized reference in text, or nil. Text must
// start with "https://". A Linear key anywhere in the text takes precedence
// over a GitHub pull-request URL.
func Parse(text string) *Result {
	if !strings.HasPrefix(text, "https://") {
		return nil
	}

	if key := linearPattern.FindString(text); key != "" {
		return &Result{Type: history.TypeLinear, ID: key, URL: text}
	}

	if prURL := githubPattern.FindString(text); prURL != "" {
		pr, err := PullRequestPath(prURL)
		if err != nil {
			return nil
		}
		return &Result{Type: history.TypeGitHub, ID: "PR-" + pr.Number, URL: prURL}
	}

	return nil
}

// PullRequest is the owner/repo/number triple of a GitHub pull-request URL.
type PullRequest struct {
	Owner  string
	Repo   string
	Number string
}

// PullRequestPath extracts owner, repo and number from path segments 1, 2
// and 4 of a pull-request URL such as https://github.com/owner/repo/pull/123.
func PullRequestPath(rawURL string) (PullRequest, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return PullRequest{}, ErrNotPullRequest
	}

	segments := strings.Split(u.Path, "/")
	if len(segments) < 5 || segments[3] != "pull" {
		return PullRequest{}, ErrNotPullRequest
	}

	pr := PullRequest{Owner: segments[1], Repo: segments[2], Number: segments[4]}
	if pr.Owner == "" || pr.Repo == "" || !digits.MatchString(pr.Number) {
		return PullRequest{}, ErrNotPullRequest
	}
	return pr, nil
}
