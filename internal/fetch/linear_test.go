package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/devdeck-labs/devdeck/internal/history"
	"github.com/google/go-cmp/cmp"
)

func TestFetchIssue_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/graphql" {
			t.Errorf("request = %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "lin_api_key" {
			t.Errorf("Authorization = %q, want raw token", got)
		}
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("Content-Type = %q", got)
		}
		var body graphQLRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decoding body: %v", err)
		}
		if !strings.Contains(body.Query, `issue(id: "ENG-123")`) {
			t.Errorf("query = %q", body.Query)
		}
		w.Write([]byte(`{"data": {"issue": {"title": "Fix payment flow", "url": "https://linear.app/team/issue/ENG-123", "state": {"name": "In Progress"}}}}`))
	}))
	defer srv.Close()

	item, err := newTestClient(srv).FetchIssue(context.Background(), "ENG-123", "lin_api_key")
	if err != nil {
		t.Fatalf("FetchIssue failed: %v", err)
	}

	want := history.Item{
		ID:         "ENG-123",
		Type:       history.TypeLinear,
		Label:      "Fix payment flow",
		Markdown:   "[ENG-123 - Fix payment flow](https://linear.app/team/issue/ENG-123)",
		Date:       fixedNow,
		URL:        "https://linear.app/team/issue/ENG-123",
		BranchName: "ENG-123-fix-payment-flow",
		PRName:     "ENG-123 - Fix payment flow",
		State:      "In Progress",
	}
	if diff := cmp.Diff(want, item); diff != "" {
		t.Errorf("item mismatch (-want +got):\n%s", diff)
	}
}

func TestFetchIssue_MissingToken(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	_, err := newTestClient(srv).FetchIssue(context.Background(), "ENG-1", "")
	if !errors.Is(err, ErrMissingCredential) {
		t.Errorf("error = %v, want ErrMissingCredential", err)
	}
	if calls.Load() != 0 {
		t.Errorf("server called %d times, want 0", calls.Load())
	}
}

func TestFetchIssue_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := newTestClient(srv).FetchIssue(context.Background(), "ENG-1", "bad")
	if err == nil || err.Error() != "Linear API error: 401 Unauthorized" {
		t.Errorf("error = %v", err)
	}
}

func TestFetchIssue_GraphQLError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"errors": [{"message": "Entity not found"}, {"message": "second"}], "data": null}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv).FetchIssue(context.Background(), "ENG-404", "lin_api_key")
	var gqlErr *GraphQLError
	if !errors.As(err, &gqlErr) {
		t.Fatalf("error = %v, want *GraphQLError", err)
	}
	if gqlErr.Message != "Entity not found" {
		t.Errorf("Message = %q, want first error", gqlErr.Message)
	}
	if err.Error() != "Linear GraphQL error: Entity not found" {
		t.Errorf("message = %q", err.Error())
	}
}

func TestFetchIssue_Malformed(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"null issue", `{"data": {"issue": null}}`},
		{"no data", `{}`},
		{"missing url", `{"data": {"issue": {"title": "x"}}}`},
		{"not json", `oops`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := newTestClient(srv).FetchIssue(context.Background(), "ENG-1", "lin_api_key")
			if !errors.Is(err, ErrMalformedResponse) {
				t.Errorf("error = %v, want ErrMalformedResponse", err)
			}
		})
	}
}

func TestBranchName(t *testing.T) {
	tests := []struct {
		key, title, want string
	}{
		{"ENG-123", "Fix payment flow", "ENG-123-fix-payment-flow"},
		{"ENG-456", "Fix: bug (with special) chars! & stuff", "ENG-456-fix-bug-with-special-chars-stuff"},
		{"PAY-9", "  Trim   surrounding   space  ", "PAY-9-trim-surrounding-space"},
		{"ENG-1", "already-hyphenated title", "ENG-1-already-hyphenated-title"},
		{"ENG-2", "Ünïcödé title", "ENG-2-ncd-title"},
		{"ENG-3", "Fix\u00a0bug", "ENG-3-fix-bug"},
		{"ENG-4", "\u3000Wide\u2003space\u00a0", "ENG-4-wide-space"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := BranchName(tt.key, tt.title); got != tt.want {
				t.Errorf("BranchName(%q, %q) = %q, want %q", tt.key, tt.title, got, tt.want)
			}
		})
	}
}

func TestPRName(t *testing.T) {
	if got := PRName("ENG-123", "Fix payment flow"); got != "ENG-123 - Fix payment flow" {
		t.Errorf("PRName = %q", got)
	}
}
