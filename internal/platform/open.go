package platform

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
)

// Runner starts a command without waiting for it. Tests replace it.
type Runner func(name string, args ...string) error

func startCommand(name string, args ...string) error {
	return exec.Command(name, args...).Start()
}

// OpenURL opens rawURL in the user's default browser. Only http and https
// URLs are accepted.
func OpenURL(rawURL string) error {
	return openWith(startCommand, runtime.GOOS, rawURL)
}

func openWith(run Runner, goos, rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("refusing to open %q: not an http(s) URL", rawURL)
	}

	name, args := openCommand(goos, u.String())
	if err := run(name, args...); err != nil {
		return fmt.Errorf("running %s: %w", name, err)
	}
	return nil
}

func openCommand(goos, target string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{target}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", target}
	default:
		return "xdg-open", []string{target}
	}
}
