// Package app sequences one relnote invocation: resolve the range and
// version, extract and render the log, then feed the sinks.
package app

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/drewfead/relnote/internal/clipboard"
	"github.com/drewfead/relnote/internal/config"
	"github.com/drewfead/relnote/internal/gitx"
	"github.com/drewfead/relnote/internal/notes"
	"github.com/drewfead/relnote/internal/version"
)

// How many commits the interactive picker offers.
const pickerLimit = 200

// History is the version-control backend.
type History interface {
	CommitsInRange(start, end string) ([]gitx.Commit, error)
	RecentCommits(limit int) ([]gitx.Summary, error)
	CurrentBranch() (string, error)
	Tags() ([]string, error)
	RemoteURL() (string, error)
}

// Picker selects a starting commit interactively.
type Picker interface {
	Pick(commits []gitx.Summary) (string, error)
}

// Clipboard places the document on the system clipboard.
type Clipboard interface {
	Copy(text string) error
}

// Browser hands a URL to the user's default handler.
type Browser interface {
	Open(url string) error
}

// Renderer pretty-prints markdown for terminal display.
type Renderer interface {
	Render(markdown string) (string, error)
}

// Prompter collects interactive answers.
type Prompter interface {
	Ask(prompt string) (string, error)
	Confirm(prompt string) (bool, error)
}

// Runner wires the pipeline to its collaborators.
type Runner struct {
	History   History
	Picker    Picker
	Clipboard Clipboard
	Browser   Browser
	Renderer  Renderer
	Prompter  Prompter
	Config    config.Store
	Settings  config.Settings
	Log       *slog.Logger
	Out       io.Writer
	Now       func() time.Time
}

// Run executes one invocation end to end.
func (r *Runner) Run(opts Options) error {
	startRef := opts.StartRef
	if startRef == "" {
		recent, err := r.History.RecentCommits(pickerLimit)
		if err != nil {
			return err
		}
		startRef, err = r.Picker.Pick(recent)
		if err != nil {
			return err
		}
	}

	ver, err := r.resolveVersion(opts)
	if err != nil {
		return err
	}

	base, err := r.Config.TicketURLBase(r.Prompter.Ask)
	if err != nil {
		return err
	}

	commits, err := r.History.CommitsInRange(startRef, "HEAD")
	if err != nil {
		return err
	}

	doc := notes.Render(ver, notes.BuildRecords(commits, base))

	r.copyToClipboard(doc)
	r.show(doc)

	return r.offerReleasePage()
}

// Version confirmation is a tiny state machine so the auto-accept and
// interactive paths share one code path.
type versionState int

const (
	stateResolve versionState = iota
	stateConfirm
	stateDone
)

func (r *Runner) resolveVersion(opts Options) (string, error) {
	var majorMinor string
	for state := stateResolve; state != stateDone; {
		switch state {
		case stateResolve:
			branch, err := r.History.CurrentBranch()
			if err != nil {
				return "", err
			}
			tags, err := r.History.Tags()
			if err != nil {
				return "", err
			}
			majorMinor = version.ResolveMajorMinor(opts.Override, branch, tags)
			if opts.Yes {
				state = stateDone
			} else {
				state = stateConfirm
			}
		case stateConfirm:
			answer, err := r.Prompter.Ask(fmt.Sprintf("Version %s (enter to accept, or type major.minor)", majorMinor))
			if err != nil {
				return "", err
			}
			if answer = strings.TrimSpace(answer); answer != "" {
				majorMinor = answer
			}
			state = stateDone
		}
	}
	return version.Compose(majorMinor, r.Now()), nil
}

// Clipboard trouble degrades the run, it never fails it.
func (r *Runner) copyToClipboard(doc string) {
	if r.Settings.NoClipboard {
		return
	}
	err := r.Clipboard.Copy(doc)
	switch {
	case errors.Is(err, clipboard.ErrUnavailable):
		r.Log.Warn("no clipboard backend, skipping copy")
	case err != nil:
		r.Log.Warn("clipboard copy failed", "error", err)
	}
}

func (r *Runner) show(doc string) {
	if !r.Settings.NoPretty && r.Renderer != nil {
		pretty, err := r.Renderer.Render(doc)
		if err == nil {
			fmt.Fprint(r.Out, pretty)
			return
		}
		r.Log.Warn("markdown renderer failed, printing verbatim", "error", err)
	}
	fmt.Fprintln(r.Out, doc)
}

func (r *Runner) offerReleasePage() error {
	open, err := r.Prompter.Confirm("Open the release notes page?")
	if err != nil || !open {
		return err
	}

	remote, err := r.History.RemoteURL()
	if err != nil {
		return err
	}
	fp := config.Fingerprint(remote)

	url, err := r.Config.ReleaseNotesURL(fp)
	if errors.Is(err, config.ErrNotFound) {
		url, err = r.Prompter.Ask("Release notes URL for this repository")
		if err != nil {
			return err
		}
		if url = strings.TrimSpace(url); url == "" {
			return errors.New("release notes URL must not be empty")
		}
		if err := r.Config.SetReleaseNotesURL(fp, url); err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	return r.Browser.Open(url)
}
