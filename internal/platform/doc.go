// Package platform wraps the OS-specific operations DevDeck needs: setting
// permission bits and opening URLs in the default browser.
package platform
