// Package clipboard places text on the system clipboard.
package clipboard

import (
	"errors"
	"fmt"

	atotto "github.com/atotto/clipboard"
)

// ErrUnavailable means no clipboard backend exists on this system
// (e.g. no xclip/xsel/wl-copy on Linux).
var ErrUnavailable = errors.New("no clipboard backend available")

// System copies through the platform clipboard utilities.
type System struct{}

// Copy places text on the clipboard.
func (System) Copy(text string) error {
	if atotto.Unsupported {
		return ErrUnavailable
	}
	if err := atotto.WriteAll(text); err != nil {
		return fmt.Errorf("clipboard write: %w", err)
	}
	return nil
}
