// Package release checks GitHub Releases for a newer DevDeck version. Results
// are cached for a day in the DevDeck home directory.
package release
