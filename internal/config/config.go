// Package config persists relnote's per-user settings.
//
// Two flat-file stores live under the config root: a single global
// ticket-URL base and one release-notes URL per repository, keyed by a
// SHA-256 fingerprint of the repository's origin remote URL. Writes are
// whole-file and unlocked; concurrent runs race with last-writer-wins.
package config

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotFound reports a per-repository value that has not been configured.
var ErrNotFound = errors.New("config value not found")

const (
	ticketURLFile = "ticket_url"
	reposDir      = "repos"
)

// Store reads and writes the flat-file configuration under Root.
type Store struct {
	Root string
}

// DefaultRoot returns the config directory, honoring XDG_CONFIG_HOME.
func DefaultRoot() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "relnote")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "relnote")
}

// TicketURLBase returns the global tracker base URL. On first use the value
// is collected through ask and persisted; an empty answer is an error.
func (s Store) TicketURLBase(ask func(prompt string) (string, error)) (string, error) {
	raw, err := os.ReadFile(filepath.Join(s.Root, ticketURLFile))
	if err == nil {
		if v := strings.TrimSpace(string(raw)); v != "" {
			return v, nil
		}
	}

	answer, err := ask("Ticket URL base (e.g. https://jira.example.com/browse)")
	if err != nil {
		return "", err
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return "", errors.New("ticket URL base must not be empty")
	}
	if err := s.write(ticketURLFile, answer); err != nil {
		return "", err
	}
	return answer, nil
}

// ReleaseNotesURL returns the stored URL for a repository fingerprint.
// A missing entry is ErrNotFound, not a failure.
func (s Store) ReleaseNotesURL(fingerprint string) (string, error) {
	raw, err := os.ReadFile(filepath.Join(s.Root, reposDir, fingerprint))
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("read release notes url: %w", err)
	}
	return strings.TrimSpace(string(raw)), nil
}

// SetReleaseNotesURL persists (overwriting) the URL for a fingerprint.
func (s Store) SetReleaseNotesURL(fingerprint, url string) error {
	return s.write(filepath.Join(reposDir, fingerprint), url)
}

func (s Store) write(rel, value string) error {
	path := filepath.Join(s.Root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(value+"\n"), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", rel, err)
	}
	return nil
}

// Fingerprint derives the stable, filesystem-safe key for a remote URL.
func Fingerprint(remoteURL string) string {
	sum := sha256.Sum256([]byte(remoteURL))
	return hex.EncodeToString(sum[:])
}
