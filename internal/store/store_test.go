package store

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestOpen_MissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	var history []map[string]any
	ok, err := s.Get(KeyClipboardHistory, &history)
	if err != nil || !ok {
		t.Fatalf("Get history: ok=%v err=%v", ok, err)
	}
	if len(history) != 0 {
		t.Errorf("expected empty history, got %v", history)
	}

	var debug bool
	if ok, _ := s.Get(KeyDebugMode, &debug); !ok || debug {
		t.Errorf("debug-mode default: ok=%v value=%v", ok, debug)
	}

	var today string
	if ok, _ := s.Get(KeyToday, &today); ok {
		t.Error("today should be absent by default")
	}

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("Open should not create the file before the first mutation")
	}
}

func TestSetPersistsAndReopens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "store.json")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := s.Set(KeyGitHubAPIKey, "ghp_secret"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := s.Set(KeyToday, "2026-10-19"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		if err != nil {
			t.Fatal(err)
		}
		if perm := info.Mode().Perm(); perm != FilePerm {
			t.Errorf("store file mode = %o, want %o", perm, FilePerm)
		}
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	var token, today string
	reopened.Get(KeyGitHubAPIKey, &token)
	reopened.Get(KeyToday, &today)
	if token != "ghp_secret" || today != "2026-10-19" {
		t.Errorf("reopened values = %q, %q", token, today)
	}
}

func TestDelete(t *testing.T) {
	s := NewMemory()
	if err := s.Delete(KeyClipboardHistory); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if s.Has(KeyClipboardHistory) {
		t.Error("key still present after Delete")
	}
	// Deleting an absent key is a no-op.
	if err := s.Delete(KeyClipboardHistory); err != nil {
		t.Errorf("second Delete failed: %v", err)
	}
}

func TestUpdate_NoChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	s, _ := Open(path)

	err := s.Update(KeyDebugMode, func(raw json.RawMessage) (any, error) {
		return nil, ErrNoChange
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("ErrNoChange should not flush the document")
	}
}

func TestUpdate_PropagatesError(t *testing.T) {
	s := NewMemory()
	boom := errors.New("boom")
	err := s.Update(KeyDebugMode, func(raw json.RawMessage) (any, error) {
		return nil, boom
	})
	if !errors.Is(err, boom) {
		t.Errorf("Update error = %v, want boom", err)
	}
}

func TestUpdate_SerializesConcurrentWriters(t *testing.T) {
	s := NewMemory()

	const writers = 50
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_ = s.Update(KeyClipboardHistory, func(raw json.RawMessage) (any, error) {
				var list []int
				if raw != nil {
					if err := json.Unmarshal(raw, &list); err != nil {
						return nil, err
					}
				}
				return append(list, n), nil
			})
		}(i)
	}
	wg.Wait()

	var list []int
	s.Get(KeyClipboardHistory, &list)
	if len(list) != writers {
		t.Errorf("got %d entries, want %d (lost update)", len(list), writers)
	}
}

func TestOpen_InvalidDocument(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not json", "not valid json{{{"},
		{"wrong toggle type", `{"debug-mode": "yes"}`},
		{"bad history type", `{"clipboard-history": [{"id": "X-1", "type": "jira", "label": "", "markdown": "", "date": "", "url": ""}]}`},
		{"history item missing id", `{"clipboard-history": [{"type": "github", "label": "", "markdown": "", "date": "", "url": ""}]}`},
		{"bad today format", `{"today": "19/10/2026"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "store.json")
			os.WriteFile(path, []byte(tt.content), 0600)

			_, err := Open(path)
			if !errors.Is(err, ErrInvalidDocument) {
				t.Errorf("Open error = %v, want ErrInvalidDocument", err)
			}
		})
	}
}

func TestValidate_AcceptsOriginalShape(t *testing.T) {
	doc := `{
  "clipboard-history": [
    {"id": "ENG-123", "type": "linear", "label": "Fix payment flow",
     "markdown": "[ENG-123 - Fix payment flow](https://linear.app/team/issue/ENG-123)",
     "date": "2026-10-19T09:00:00Z", "url": "https://linear.app/team/issue/ENG-123",
     "branch_name": "ENG-123-fix-payment-flow", "pr_name": "ENG-123 - Fix payment flow"}
  ],
  "github-api-key": "",
  "linear-api-key": "",
  "today": null,
  "debug-mode": false,
  "discord-timestamp-visible": true,
  "fancy-text-visible": false,
  "waygate-url": "https://waygate.local"
}`
	if err := Validate([]byte(doc)); err != nil {
		t.Errorf("Validate rejected a valid document: %v", err)
	}
}

func TestReload_RunsCallbacks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	s, _ := Open(path)
	if err := s.Set(KeyLinearAPIKey, "lin_old"); err != nil {
		t.Fatal(err)
	}

	calls := 0
	s.OnReload(func() { calls++ })

	os.WriteFile(path, []byte(`{"linear-api-key": "lin_new"}`), 0600)
	if err := s.Reload(); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}

	var token string
	s.Get(KeyLinearAPIKey, &token)
	if diff := cmp.Diff("lin_new", token); diff != "" {
		t.Errorf("token mismatch (-want +got):\n%s", diff)
	}
	if calls != 1 {
		t.Errorf("callback ran %d times, want 1", calls)
	}
}

func TestReload_SkipsOwnWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	s, _ := Open(path)
	if err := s.Set(KeyLinearAPIKey, "lin_own"); err != nil {
		t.Fatal(err)
	}

	calls := 0
	s.OnReload(func() { calls++ })

	if err := s.Reload(); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	if calls != 0 {
		t.Errorf("callback ran %d times for an unchanged file, want 0", calls)
	}
}

func TestReload_KeepsDocumentOnInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	s, _ := Open(path)
	s.Set(KeyLinearAPIKey, "lin_kept")

	os.WriteFile(path, []byte(`{"linear-api-key": 42}`), 0600)
	if err := s.Reload(); err == nil {
		t.Fatal("expected reload error for invalid document")
	}

	var token string
	s.Get(KeyLinearAPIKey, &token)
	if token != "lin_kept" {
		t.Errorf("token = %q, want lin_kept", token)
	}
}

func TestWatch_ReloadsOnExternalWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	s, _ := Open(path)
	s.Set(KeyGitHubAPIKey, "before")

	reloaded := make(chan struct{}, 10)
	s.OnReload(func() { reloaded <- struct{}{} })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Watch(ctx) }()

	// Give the watcher time to register the directory.
	time.Sleep(100 * time.Millisecond)
	os.WriteFile(path, []byte(`{"github-api-key": "after"}`), 0600)

	select {
	case <-reloaded:
	case <-time.After(5 * time.Second):
		t.Fatal("store was not reloaded after external write")
	}

	var token string
	s.Get(KeyGitHubAPIKey, &token)
	if token != "after" {
		t.Errorf("token = %q, want after", token)
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("Watch returned %v", err)
	}
}

func TestWatch_KeepsConcurrentUpdates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	s, _ := Open(path)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Watch(ctx) }()
	time.Sleep(100 * time.Millisecond)

	const n = 200
	for i := range n {
		err := s.Update(KeyClipboardHistory, func(raw json.RawMessage) (any, error) {
			var items []map[string]any
			if raw != nil {
				if err := json.Unmarshal(raw, &items); err != nil {
					return nil, err
				}
			}
			return append(items, historyEntry(i)), nil
		})
		if err != nil {
			t.Fatalf("Update %d: %v", i, err)
		}
	}

	// Let the watcher drain the events of the writes above.
	time.Sleep(500 * time.Millisecond)
	cancel()
	if err := <-done; err != nil {
		t.Errorf("Watch returned %v", err)
	}

	var inMemory []map[string]any
	s.Get(KeyClipboardHistory, &inMemory)
	if len(inMemory) != n {
		t.Errorf("in-memory history has %d items, want %d", len(inMemory), n)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopening store: %v", err)
	}
	var onDisk []map[string]any
	reopened.Get(KeyClipboardHistory, &onDisk)
	if len(onDisk) != n {
		t.Errorf("persisted history has %d items, want %d", len(onDisk), n)
	}
}

func historyEntry(i int) map[string]any {
	id := "ENG-" + strconv.Itoa(i+1)
	return map[string]any{
		"id":       id,
		"type":     "linear",
		"label":    id,
		"markdown": "[" + id + "](https://linear.app/x/" + id + ")",
		"date":     "2026-10-19T09:00:00Z",
		"url":      "https://linear.app/x/" + id,
	}
}
