// Package history keeps the deduplicated list of pull requests and issues
// captured from the clipboard, persisted under the "clipboard-history" key.
package history

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/devdeck-labs/devdeck/internal/store"
)

// Type is the provider an item was fetched from.
type Type string

const (
	TypeLinear Type = "linear"
	TypeGitHub Type = "github"
)

// Item is a previously detected and fetched PR or issue reference.
type Item struct {
	ID         string    `json:"id" yaml:"id"`
	Type       Type      `json:"type" yaml:"type"`
	Label      string    `json:"label" yaml:"label"`
	Markdown   string    `json:"markdown" yaml:"markdown"`
	Date       time.Time `json:"date" yaml:"date"`
	URL        string    `json:"url" yaml:"url"`
	BranchName string    `json:"branch_name,omitempty" yaml:"branch_name,omitempty"`
	PRName     string    `json:"pr_name,omitempty" yaml:"pr_name,omitempty"`
	State      string    `json:"state,omitempty" yaml:"state,omitempty"`
}

// ProviderName is the human name used in messages ("Linear issue", "GitHub").
func (i Item) ProviderName() string {
	if i.Type == TypeLinear {
		return "Linear issue"
	}
	return "GitHub"
}

// Store is the History Store. Inserts are idempotent by id.
type Store struct {
	kv *store.Store
}

// New returns a history store backed by kv.
func New(kv *store.Store) *Store {
	return &Store{kv: kv}
}

// List returns the persisted items in insertion order.
func (s *Store) List() ([]Item, error) {
	var items []Item
	if _, err := s.kv.Get(store.KeyClipboardHistory, &items); err != nil {
		return nil, fmt.Errorf("reading history: %w", err)
	}
	return items, nil
}

// Sorted returns the items newest first, the order they are displayed in.
func (s *Store) Sorted() ([]Item, error) {
	items, err := s.List()
	if err != nil {
		return nil, err
	}
	SortNewestFirst(items)
	return items, nil
}

// SortNewestFirst orders items by date descending.
func SortNewestFirst(items []Item) {
	sort.SliceStable(items, func(a, b int) bool {
		return items[a].Date.After(items[b].Date)
	})
}

// Get returns the item with the given id.
func (s *Store) Get(id string) (Item, bool, error) {
	items, err := s.List()
	if err != nil {
		return Item{}, false, err
	}
	for _, it := range items {
		if it.ID == id {
			return it, true, nil
		}
	}
	return Item{}, false, nil
}

// Contains reports whether an item with id is present.
func (s *Store) Contains(id string) (bool, error) {
	_, ok, err := s.Get(id)
	return ok, err
}

// Insert appends item unless an item with the same id already exists. It
// reports whether the item was added. The check and the write happen under
// the store lock, so two concurrent inserts of one id add it once.
func (s *Store) Insert(item Item) (bool, error) {
	if item.ID == "" {
		return false, fmt.Errorf("inserting history item: empty id")
	}

	added := false
	err := s.kv.Update(store.KeyClipboardHistory, func(raw json.RawMessage) (any, error) {
		items, err := decode(raw)
		if err != nil {
			return nil, err
		}
		for _, it := range items {
			if it.ID == item.ID {
				return nil, store.ErrNoChange
			}
		}
		added = true
		return append(items, item), nil
	})
	if err != nil {
		return false, fmt.Errorf("inserting %s into history: %w", item.ID, err)
	}
	return added, nil
}

// Remove deletes the item with id. Removing an unknown id is a no-op.
func (s *Store) Remove(id string) error {
	err := s.kv.Update(store.KeyClipboardHistory, func(raw json.RawMessage) (any, error) {
		items, err := decode(raw)
		if err != nil {
			return nil, err
		}
		kept := make([]Item, 0, len(items))
		for _, it := range items {
			if it.ID != id {
				kept = append(kept, it)
			}
		}
		return kept, nil
	})
	if err != nil {
		return fmt.Errorf("removing %s from history: %w", id, err)
	}
	return nil
}

// Clear deletes the whole list.
func (s *Store) Clear() error {
	if err := s.kv.Delete(store.KeyClipboardHistory); err != nil {
		return fmt.Errorf("clearing history: %w", err)
	}
	return nil
}

func decode(raw json.RawMessage) ([]Item, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var items []Item
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decoding history: %w", err)
	}
	return items, nil
}
