// Package doctor checks a DevDeck installation: directory and store file
// permissions, store document validity, credentials and clipboard support.
package doctor

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/devdeck-labs/devdeck/internal/branding"
	"github.com/devdeck-labs/devdeck/internal/clipboard"
	"github.com/devdeck-labs/devdeck/internal/credentials"
	"github.com/devdeck-labs/devdeck/internal/platform"
	"github.com/devdeck-labs/devdeck/internal/store"
)

// Paths locates the files to check.
type Paths struct {
	Home       string
	ConfigFile string
	StoreFile  string
}

// Report counts what the checks found.
type Report struct {
	Problems int
	Fixed    int
}

// Check writes one line per check to w. When fix is true it repairs missing
// directories and loose permissions.
func Check(w io.Writer, p Paths, fix bool) Report {
	c := &checker{w: w, fix: fix}

	fmt.Fprintln(w, "Installation check:")
	c.checkDir(p.Home)
	c.checkConfig(p.ConfigFile)
	kv := c.checkStore(p.StoreFile)
	c.checkCredentials(kv)
	c.checkClipboard()

	return c.report
}

type checker struct {
	w      io.Writer
	fix    bool
	report Report
}

func (c *checker) ok(format string, args ...any) {
	fmt.Fprintf(c.w, "  [ OK ] "+format+"\n", args...)
}

func (c *checker) problem(tag, format string, args ...any) {
	c.report.Problems++
	fmt.Fprintf(c.w, "  ["+tag+"] "+format+"\n", args...)
}

func (c *checker) fixed(format string, args ...any) {
	c.report.Fixed++
	fmt.Fprintf(c.w, "  [FIX ] "+format+"\n", args...)
}

func (c *checker) checkDir(path string) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		c.problem("MISS", "%s does not exist", path)
		if c.fix {
			if err := os.MkdirAll(path, store.DirPerm); err != nil {
				fmt.Fprintf(c.w, "  [FAIL] Could not create %s: %v\n", path, err)
				return
			}
			c.fixed("Created %s with %o", path, store.DirPerm)
		}
		return
	}
	if err != nil {
		c.problem("FAIL", "%s: %v", path, err)
		return
	}
	if !info.IsDir() {
		c.problem("FAIL", "%s exists but is not a directory", path)
		return
	}
	c.checkPerm(path, store.DirPerm)
}

func (c *checker) checkPerm(path string, want os.FileMode) {
	got, ok, err := platform.CheckPerm(path, want)
	if err != nil {
		c.problem("FAIL", "%v", err)
		return
	}
	if ok {
		c.ok("%s (permissions %o)", path, got)
		return
	}
	c.problem("WARN", "%s has permissions %o (expected %o)", path, got, want)
	if c.fix {
		if err := platform.Chmod(path, want); err != nil {
			fmt.Fprintf(c.w, "  [FAIL] Could not fix permissions on %s: %v\n", path, err)
			return
		}
		c.fixed("Fixed permissions on %s to %o", path, want)
	}
}

func (c *checker) checkConfig(path string) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		// Not a problem: every setting has a default.
		fmt.Fprintf(c.w, "  [INFO] %s not found, using defaults\n", path)
		return
	}
	c.ok("%s exists", path)
}

func (c *checker) checkStore(path string) *store.Store {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Fprintf(c.w, "  [INFO] %s not found, it is created on first use\n", path)
		return store.NewMemory()
	}

	kv, err := store.Open(path)
	if errors.Is(err, store.ErrInvalidDocument) {
		c.problem("FAIL", "%s is not a valid store document: %v", path, err)
		return nil
	}
	if err != nil {
		c.problem("FAIL", "%v", err)
		return nil
	}
	c.checkPerm(path, store.FilePerm)
	return kv
}

func (c *checker) checkCredentials(kv *store.Store) {
	if kv == nil {
		return
	}
	creds, err := credentials.Load(kv)
	if err != nil {
		c.problem("FAIL", "reading credentials: %v", err)
		return
	}
	v := creds.Validate()
	if v.Valid {
		c.ok("GitHub and Linear tokens are set")
		return
	}
	for _, provider := range v.Missing() {
		c.problem("MISS", "%s token not set. Run '%s creds set %s <token>'",
			provider, branding.CLIName(), providerArg(provider))
	}
}

func (c *checker) checkClipboard() {
	if clipboard.Unsupported() {
		c.problem("WARN", "no clipboard utility found (install xclip, xsel or wl-clipboard)")
		return
	}
	c.ok("clipboard available")
}

func providerArg(provider string) string {
	if provider == "GitHub" {
		return "github"
	}
	return "linear"
}
