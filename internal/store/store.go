package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
)

// Key names a top-level entry of the persisted document.
type Key string

// Keys of the persisted document.
const (
	KeyClipboardHistory        Key = "clipboard-history"
	KeyGitHubAPIKey            Key = "github-api-key"
	KeyLinearAPIKey            Key = "linear-api-key"
	KeyToday                   Key = "today"
	KeyDebugMode               Key = "debug-mode"
	KeyDiscordTimestampVisible Key = "discord-timestamp-visible"
	KeyFancyTextVisible        Key = "fancy-text-visible"
)

// File permissions. The document holds API tokens.
const (
	DirPerm  os.FileMode = 0700
	FilePerm os.FileMode = 0600
)

// ErrNoChange may be returned by an Update function to leave the key as is.
var ErrNoChange = errors.New("no change")

// Defaults returns the values a fresh document starts with. "today" has no
// default and stays absent.
func Defaults() map[Key]any {
	return map[Key]any{
		KeyClipboardHistory:        []any{},
		KeyGitHubAPIKey:            "",
		KeyLinearAPIKey:            "",
		KeyDebugMode:               false,
		KeyDiscordTimestampVisible: false,
		KeyFancyTextVisible:        false,
	}
}

// Store is a key-value document persisted to a single JSON file.
// All methods are safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	path     string
	doc      map[Key]json.RawMessage
	logger   *zap.Logger
	onReload []func()
	// flushed is the file content last written or loaded by this store.
	flushed []byte
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for reload and watch diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		s.logger = l
	}
}

// Open loads the document at path. A missing file yields the defaults; the
// file is created on the first mutation.
func Open(path string, opts ...Option) (*Store, error) {
	s := newStore(path, opts...)

	data, doc, err := readDocument(path)
	if err != nil {
		return nil, err
	}
	if doc != nil {
		s.doc = doc
		s.flushed = data
	}
	return s, nil
}

// NewMemory returns a store with default contents that never touches disk.
func NewMemory(opts ...Option) *Store {
	return newStore("", opts...)
}

func newStore(path string, opts ...Option) *Store {
	s := &Store{
		path:   path,
		doc:    defaultDocument(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetLogger replaces the logger, for stores opened before logging was set up.
func (s *Store) SetLogger(l *zap.Logger) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logger = l
}

// Path returns the backing file, or "" for an in-memory store.
func (s *Store) Path() string {
	return s.path
}

// Get decodes the value stored under key into v. It reports false when the
// key is absent, leaving v untouched.
func (s *Store) Get(key Key, v any) (bool, error) {
	s.mu.RLock()
	raw, ok := s.doc[key]
	s.mu.RUnlock()

	if !ok || string(raw) == "null" {
		return false, nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return true, fmt.Errorf("decoding %s: %w", key, err)
	}
	return true, nil
}

// Has reports whether key is present.
func (s *Store) Has(key Key) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.doc[key]
	return ok
}

// Set stores v under key and persists the document.
func (s *Store) Set(key Key, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prev, had := s.doc[key]
	s.doc[key] = raw
	if err := s.flushLocked(); err != nil {
		if had {
			s.doc[key] = prev
		} else {
			delete(s.doc, key)
		}
		return err
	}
	return nil
}

// Delete removes key and persists the document.
func (s *Store) Delete(key Key) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, had := s.doc[key]
	if !had {
		return nil
	}
	delete(s.doc, key)
	if err := s.flushLocked(); err != nil {
		s.doc[key] = prev
		return err
	}
	return nil
}

// Update runs a read-modify-write of key while holding the store lock, so
// concurrent updates of the same key cannot lose each other's writes. fn
// receives the current raw value (nil when absent) and returns the new value,
// or ErrNoChange to leave the document untouched.
func (s *Store) Update(key Key, fn func(raw json.RawMessage) (any, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, had := s.doc[key]
	next, err := fn(prev)
	if errors.Is(err, ErrNoChange) {
		return nil
	}
	if err != nil {
		return err
	}

	raw, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	s.doc[key] = raw
	if err := s.flushLocked(); err != nil {
		if had {
			s.doc[key] = prev
		} else {
			delete(s.doc, key)
		}
		return err
	}
	return nil
}

// OnReload registers fn to run after the document is reloaded from disk.
func (s *Store) OnReload(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onReload = append(s.onReload, fn)
}

// Reload re-reads the backing file. On failure the in-memory document is kept.
// The file is read under the store lock, and content this store wrote itself
// is ignored, so a reload never rolls back a newer in-memory document.
func (s *Store) Reload() error {
	if s.path == "" {
		return nil
	}

	s.mu.Lock()
	data, doc, err := readDocument(s.path)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	if doc != nil && bytes.Equal(data, s.flushed) {
		s.mu.Unlock()
		return nil
	}
	if doc == nil {
		doc = defaultDocument()
	}
	s.doc = doc
	s.flushed = data
	callbacks := append([]func(){}, s.onReload...)
	s.mu.Unlock()

	for _, fn := range callbacks {
		fn()
	}
	return nil
}

// flushLocked writes the whole document. Callers hold s.mu.
func (s *Store) flushLocked() error {
	if s.path == "" {
		return nil
	}

	// encoding/json sorts map keys, so the file diffs cleanly.
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling store: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := ensureDir(dir); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp store file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing store: %w", err)
	}
	if err := tmp.Chmod(FilePerm); err != nil {
		tmp.Close()
		return fmt.Errorf("setting store permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing store: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replacing store file: %w", err)
	}
	s.flushed = data
	return nil
}

func ensureDir(dir string) error {
	if err := os.MkdirAll(dir, DirPerm); err != nil {
		return fmt.Errorf("creating store directory %s: %w", dir, err)
	}
	return nil
}

func defaultDocument() map[Key]json.RawMessage {
	doc := make(map[Key]json.RawMessage)
	for key, v := range Defaults() {
		raw, _ := json.Marshal(v)
		doc[key] = raw
	}
	return doc
}

// readDocument returns the raw file and its decoded document, or all nils
// when the file does not exist.
func readDocument(path string) ([]byte, map[Key]json.RawMessage, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("reading store %s: %w", path, err)
	}

	if err := Validate(data); err != nil {
		return nil, nil, fmt.Errorf("loading store %s: %w", path, err)
	}

	var doc map[Key]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("parsing store %s: %w", path, err)
	}
	if doc == nil {
		doc = make(map[Key]json.RawMessage)
	}
	return data, doc, nil
}
