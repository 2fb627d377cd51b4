package history

import (
	"context"
	"path/filepath"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/devdeck-labs/devdeck/internal/store"
	"github.com/google/go-cmp/cmp"
)

func item(id string, date time.Time) Item {
	return Item{
		ID:       id,
		Type:     TypeLinear,
		Label:    "Label " + id,
		Markdown: "[" + id + "](https://linear.app/x/" + id + ")",
		Date:     date,
		URL:      "https://linear.app/x/" + id,
	}
}

func TestInsert_Idempotent(t *testing.T) {
	s := New(store.NewMemory())
	now := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

	first := item("ENG-1", now)
	second := item("ENG-1", now.Add(time.Hour))
	second.Label = "Second write"

	added, err := s.Insert(first)
	if err != nil || !added {
		t.Fatalf("first Insert: added=%v err=%v", added, err)
	}
	added, err = s.Insert(second)
	if err != nil {
		t.Fatalf("second Insert: %v", err)
	}
	if added {
		t.Error("duplicate insert reported as added")
	}

	items, _ := s.List()
	if diff := cmp.Diff([]Item{first}, items); diff != "" {
		t.Errorf("history mismatch (-want +got):\n%s", diff)
	}
}

func TestInsert_ConcurrentSameID(t *testing.T) {
	s := New(store.NewMemory())
	now := time.Now()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.Insert(item("PAY-7", now))
		}()
	}
	wg.Wait()

	items, _ := s.List()
	if len(items) != 1 {
		t.Errorf("got %d items, want exactly 1", len(items))
	}
}

func TestInsert_EmptyID(t *testing.T) {
	s := New(store.NewMemory())
	if _, err := s.Insert(Item{}); err == nil {
		t.Error("expected error for empty id")
	}
}

func TestRemoveAndClear(t *testing.T) {
	s := New(store.NewMemory())
	now := time.Now()
	s.Insert(item("ENG-1", now))
	s.Insert(item("ENG-2", now))

	if err := s.Remove("ENG-1"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if ok, _ := s.Contains("ENG-1"); ok {
		t.Error("ENG-1 still present after Remove")
	}
	if ok, _ := s.Contains("ENG-2"); !ok {
		t.Error("ENG-2 missing after removing ENG-1")
	}
	if err := s.Remove("ENG-404"); err != nil {
		t.Errorf("removing unknown id: %v", err)
	}

	if err := s.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	items, err := s.List()
	if err != nil || len(items) != 0 {
		t.Errorf("after Clear: items=%v err=%v", items, err)
	}

	// Inserting after a clear recreates the list.
	if added, err := s.Insert(item("ENG-3", now)); err != nil || !added {
		t.Errorf("Insert after Clear: added=%v err=%v", added, err)
	}
}

func TestSorted_NewestFirst(t *testing.T) {
	s := New(store.NewMemory())
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s.Insert(item("ENG-1", base))
	s.Insert(item("ENG-3", base.Add(2*time.Hour)))
	s.Insert(item("ENG-2", base.Add(time.Hour)))

	items, err := s.Sorted()
	if err != nil {
		t.Fatal(err)
	}
	var ids []string
	for _, it := range items {
		ids = append(ids, it.ID)
	}
	if diff := cmp.Diff([]string{"ENG-3", "ENG-2", "ENG-1"}, ids); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	kv, err := store.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	date := time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)
	want := Item{
		ID:         "ENG-123",
		Type:       TypeLinear,
		Label:      "Fix payment flow",
		Markdown:   "[ENG-123 - Fix payment flow](https://linear.app/team/issue/ENG-123)",
		Date:       date,
		URL:        "https://linear.app/team/issue/ENG-123",
		BranchName: "ENG-123-fix-payment-flow",
		PRName:     "ENG-123 - Fix payment flow",
	}
	if _, err := New(kv).Insert(want); err != nil {
		t.Fatal(err)
	}

	reopened, err := store.Open(path)
	if err != nil {
		t.Fatalf("reopen failed (schema should accept items): %v", err)
	}
	got, ok, err := New(reopened).Get("ENG-123")
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("item mismatch (-want +got):\n%s", diff)
	}
}

func TestInsert_WhileStoreIsWatched(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	kv, err := store.Open(path)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- kv.Watch(ctx) }()
	time.Sleep(100 * time.Millisecond)

	s := New(kv)
	start := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	const n = 200
	for i := range n {
		id := "ENG-" + strconv.Itoa(i+1)
		if _, err := s.Insert(item(id, start.Add(time.Duration(i)*time.Second))); err != nil {
			t.Fatalf("Insert %s: %v", id, err)
		}
	}

	time.Sleep(500 * time.Millisecond)
	cancel()
	if err := <-done; err != nil {
		t.Errorf("Watch returned %v", err)
	}

	items, _ := s.List()
	if len(items) != n {
		t.Errorf("history has %d items, want %d", len(items), n)
	}

	reopened, err := store.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	persisted, _ := New(reopened).List()
	if len(persisted) != n {
		t.Errorf("persisted history has %d items, want %d", len(persisted), n)
	}
}

func TestProviderName(t *testing.T) {
	if got := (Item{Type: TypeLinear}).ProviderName(); got != "Linear issue" {
		t.Errorf("linear ProviderName = %q", got)
	}
	if got := (Item{Type: TypeGitHub}).ProviderName(); got != "GitHub" {
		t.Errorf("github ProviderName = %q", got)
	}
}
