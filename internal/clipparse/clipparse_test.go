package clipparse

import (
	"errors"
	"testing"

	"github.com/devdeck-labs/devdeck/internal/history"
	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		text string
		want *Result
	}{
		{
			"ENG key from Linear URL",
			"https://linear.app/team/issue/ENG-123/some-issue-title",
			&Result{Type: history.TypeLinear, ID: "ENG-123", URL: "https://linear.app/team/issue/ENG-123/some-issue-title"},
		},
		{
			"PAY key from Linear URL",
			"https://linear.app/team/issue/PAY-456/payment-issue",
			&Result{Type: history.TypeLinear, ID: "PAY-456", URL: "https://linear.app/team/issue/PAY-456/payment-issue"},
		},
		{
			"large issue number",
			"https://linear.app/team/issue/ENG-99999/big-number",
			&Result{Type: history.TypeLinear, ID: "ENG-99999", URL: "https://linear.app/team/issue/ENG-99999/big-number"},
		},
		{
			"first key wins",
			"https://linear.app/team/issue/PAY-1/see-ENG-2",
			&Result{Type: history.TypeLinear, ID: "PAY-1", URL: "https://linear.app/team/issue/PAY-1/see-ENG-2"},
		},
		{
			"GitHub PR URL",
			"https://github.com/owner/repo/pull/123",
			&Result{Type: history.TypeGitHub, ID: "PR-123", URL: "https://github.com/owner/repo/pull/123"},
		},
		{
			"hyphens and underscores",
			"https://github.com/some-owner/my_repo-name/pull/456",
			&Result{Type: history.TypeGitHub, ID: "PR-456", URL: "https://github.com/some-owner/my_repo-name/pull/456"},
		},
		{
			"large PR number",
			"https://github.com/facebook/react/pull/99999",
			&Result{Type: history.TypeGitHub, ID: "PR-99999", URL: "https://github.com/facebook/react/pull/99999"},
		},
		{
			"PR URL with trailing path",
			"https://github.com/owner/repo/pull/77/files",
			&Result{Type: history.TypeGitHub, ID: "PR-77", URL: "https://github.com/owner/repo/pull/77"},
		},
		{
			"Linear beats GitHub",
			"https://github.com/owner/repo/pull/12 ENG-34",
			&Result{Type: history.TypeLinear, ID: "ENG-34", URL: "https://github.com/owner/repo/pull/12 ENG-34"},
		},
		{"plain text", "just some text", nil},
		{"empty string", "", nil},
		{"http scheme", "http://github.com/owner/repo/pull/123", nil},
		{"key without https prefix", "ENG-123", nil},
		{"unrecognized URL", "https://example.com/some/path", nil},
		{"GitHub issue URL", "https://github.com/owner/repo/issues/123", nil},
		{"missing repo segment", "https://github.com/owner/pull/123", nil},
		{"lowercase key", "https://linear.app/team/issue/eng-123", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.text)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.text, diff)
			}
		})
	}
}

func TestPullRequestPath(t *testing.T) {
	tests := []struct {
		url     string
		want    PullRequest
		wantErr bool
	}{
		{"https://github.com/owner/repo/pull/123", PullRequest{"owner", "repo", "123"}, false},
		{"https://github.com/my-org/my_repo-name/pull/456", PullRequest{"my-org", "my_repo-name", "456"}, false},
		{"https://github.com/owner/repo/pull/9/commits", PullRequest{"owner", "repo", "9"}, false},
		{"https://github.com/owner/pull/123", PullRequest{}, true},
		{"https://github.com/owner/repo/issues/1", PullRequest{}, true},
		{"https://github.com/owner/repo/pull/abc", PullRequest{}, true},
		{"://bad", PullRequest{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			got, err := PullRequestPath(tt.url)
			if tt.wantErr {
				if !errors.Is(err, ErrNotPullRequest) {
					t.Errorf("error = %v, want ErrNotPullRequest", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("PullRequestPath = %+v, want %+v", got, tt.want)
			}
		})
	}
}
