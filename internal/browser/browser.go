// Package browser hands URLs to the user's default handler.
package browser

import (
	"fmt"
	"runtime"

	"github.com/drewfead/relnote/internal/executil"
)

// Opener launches URLs with the platform's opener utility.
type Opener struct{}

// Open launches url in the default browser.
func (Opener) Open(url string) error {
	var name string
	var args []string
	switch runtime.GOOS {
	case "darwin":
		name = "open"
	case "windows":
		name, args = "rundll32", []string{"url.dll,FileProtocolHandler"}
	default:
		name = "xdg-open"
	}

	cmd, err := executil.Command(name, append(args, url)...)
	if err != nil {
		return fmt.Errorf("no browser opener: %w", err)
	}
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("open %s: %w", url, err)
	}
	return nil
}
