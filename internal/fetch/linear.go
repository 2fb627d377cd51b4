package fetch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"unicode"

	"github.com/devdeck-labs/devdeck/internal/history"
)

type graphQLRequest struct {
	Query string `json:"query"`
}

type issueResponse struct {
	Data *struct {
		Issue *struct {
			Title string `json:"title"`
			URL   string `json:"url"`
			State *struct {
				Name string `json:"name"`
			} `json:"state"`
		} `json:"issue"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// issueQuery builds the GraphQL query for one issue. The key is quoted so a
// caller-supplied string cannot break out of the argument.
func issueQuery(key string) string {
	return fmt.Sprintf("query { issue(id: %q) { title url state { name } } }", key)
}

// FetchIssue fetches the Linear issue with the given key and derives its
// branch name and PR title.
func (c *Client) FetchIssue(ctx context.Context, key, token string) (history.Item, error) {
	if token == "" {
		return history.Item{}, missingToken("Linear")
	}

	body, err := json.Marshal(graphQLRequest{Query: issueQuery(key)})
	if err != nil {
		return history.Item{}, fmt.Errorf("encoding query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.linearBase+"/graphql", bytes.NewReader(body))
	if err != nil {
		return history.Item{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	// Linear personal API keys are sent raw, without a Bearer prefix.
	req.Header.Set("Authorization", token)
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return history.Item{}, fmt.Errorf("fetching issue: %w", err)
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return history.Item{}, statusError("Linear", resp)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return history.Item{}, fmt.Errorf("reading response body: %w", err)
	}

	var payload issueResponse
	if err := json.Unmarshal(data, &payload); err != nil {
		return history.Item{}, fmt.Errorf("invalid Linear API response: %w", ErrMalformedResponse)
	}
	if len(payload.Errors) > 0 {
		return history.Item{}, &GraphQLError{Message: payload.Errors[0].Message}
	}
	if payload.Data == nil || payload.Data.Issue == nil {
		return history.Item{}, fmt.Errorf("invalid Linear API response: issue not found: %w", ErrMalformedResponse)
	}

	issue := payload.Data.Issue
	if issue.Title == "" || issue.URL == "" {
		return history.Item{}, fmt.Errorf("invalid Linear API response: missing required fields: %w", ErrMalformedResponse)
	}

	item := history.Item{
		ID:         key,
		Type:       history.TypeLinear,
		Label:      issue.Title,
		Markdown:   fmt.Sprintf("[%s - %s](%s)", key, issue.Title, issue.URL),
		Date:       c.now(),
		URL:        issue.URL,
		BranchName: BranchName(key, issue.Title),
		PRName:     PRName(key, issue.Title),
	}
	if issue.State != nil {
		item.State = issue.State.Name
	}
	return item, nil
}

// spaceClass also covers Unicode spaces such as NBSP, which titles pasted
// from rich text often carry.
const spaceClass = `\s\v\p{Zs}\x{2028}\x{2029}\x{FEFF}`

var (
	nonSlugChars = regexp.MustCompile(`[^a-zA-Z0-9` + spaceClass + `-]`)
	whitespace   = regexp.MustCompile(`[` + spaceClass + `]+`)
)

// BranchName derives "<key>-<slug>" from an issue title: the title is trimmed,
// stripped of characters outside [a-zA-Z0-9\s-], whitespace runs become a
// single hyphen and the result is lowercased.
func BranchName(key, title string) string {
	slug := strings.TrimFunc(title, isSlugSpace)
	slug = nonSlugChars.ReplaceAllString(slug, "")
	slug = whitespace.ReplaceAllString(slug, "-")
	return key + "-" + strings.ToLower(slug)
}

func isSlugSpace(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}

// PRName is the pull-request title convention "<key> - <title>".
func PRName(key, title string) string {
	return key + " - " + title
}
