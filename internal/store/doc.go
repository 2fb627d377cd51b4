// Package store persists DevDeck's state as a single JSON document of
// top-level keys (clipboard history, API credentials, feature toggles).
// Every mutation rewrites the whole document atomically. The document is
// validated against an embedded JSON schema when loaded, and Watch reloads it
// when another process edits the file.
package store
