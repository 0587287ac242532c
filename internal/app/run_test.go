package app

import (
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drewfead/relnote/internal/clipboard"
	"github.com/drewfead/relnote/internal/config"
	"github.com/drewfead/relnote/internal/gitx"
	"github.com/drewfead/relnote/internal/picker"
)

type fakeHistory struct {
	commits  []gitx.Commit
	recent   []gitx.Summary
	branch   string
	tags     []string
	remote   string
	rangeErr error

	gotStart string
	gotEnd   string
}

func (f *fakeHistory) CommitsInRange(start, end string) ([]gitx.Commit, error) {
	f.gotStart, f.gotEnd = start, end
	if f.rangeErr != nil {
		return nil, f.rangeErr
	}
	return f.commits, nil
}

func (f *fakeHistory) RecentCommits(int) ([]gitx.Summary, error) { return f.recent, nil }

func (f *fakeHistory) CurrentBranch() (string, error) { return f.branch, nil }

func (f *fakeHistory) Tags() ([]string, error) { return f.tags, nil }

func (f *fakeHistory) RemoteURL() (string, error) { return f.remote, nil }

type fakePicker struct {
	hash   string
	err    error
	called bool
}

func (f *fakePicker) Pick([]gitx.Summary) (string, error) {
	f.called = true
	return f.hash, f.err
}

type fakeClipboard struct {
	copied []string
	err    error
}

func (f *fakeClipboard) Copy(text string) error {
	if f.err != nil {
		return f.err
	}
	f.copied = append(f.copied, text)
	return nil
}

type fakeBrowser struct {
	opened []string
}

func (f *fakeBrowser) Open(url string) error {
	f.opened = append(f.opened, url)
	return nil
}

// fakePrompter answers Ask and Confirm from fixed queues.
type fakePrompter struct {
	answers  []string
	confirms []bool
}

func (f *fakePrompter) Ask(string) (string, error) {
	if len(f.answers) == 0 {
		return "", errors.New("unexpected prompt")
	}
	answer := f.answers[0]
	f.answers = f.answers[1:]
	return answer, nil
}

func (f *fakePrompter) Confirm(string) (bool, error) {
	if len(f.confirms) == 0 {
		return false, nil
	}
	answer := f.confirms[0]
	f.confirms = f.confirms[1:]
	return answer, nil
}

func newTestRunner(t *testing.T, history *fakeHistory) (*Runner, *fakeClipboard, *fakeBrowser, *strings.Builder) {
	t.Helper()

	store := config.Store{Root: t.TempDir()}
	clip := &fakeClipboard{}
	web := &fakeBrowser{}
	out := &strings.Builder{}

	return &Runner{
		History:   history,
		Picker:    &fakePicker{err: picker.ErrAborted},
		Clipboard: clip,
		Browser:   web,
		Prompter:  &fakePrompter{},
		Config:    store,
		Settings:  config.DefaultSettings(),
		Log:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		Out:       out,
		Now:       func() time.Time { return time.Date(2024, time.March, 9, 12, 0, 0, 0, time.Local) },
	}, clip, web, out
}

func seedTicketBase(t *testing.T, store config.Store) {
	t.Helper()
	_, err := store.TicketURLBase(func(string) (string, error) { return "https://x/browse", nil })
	require.NoError(t, err)
}

func TestRunFullPipeline(t *testing.T) {
	t.Parallel()

	history := &fakeHistory{
		commits: []gitx.Commit{
			{Hash: "aaa", Subject: "add login", Body: "Tickets: ABC-1, ABC-2"},
			{Hash: "bbb", Subject: "fix typo"},
		},
		branch: "release/1.4.2",
	}
	r, clip, web, out := newTestRunner(t, history)
	seedTicketBase(t, r.Config)

	err := r.Run(Options{Yes: true, StartRef: "v1.3.0"})
	require.NoError(t, err)

	want := "# 1.4.20240309.1\n" +
		"\n" +
		"|hash|subject|tickets|\n" +
		"|---|-----------|------|\n" +
		"|aaa|add login| https://x/browse/ABC-1 , https://x/browse/ABC-2 |\n" +
		"|bbb|fix typo|  |\n"

	require.Len(t, clip.copied, 1)
	assert.Equal(t, want, clip.copied[0])
	assert.Equal(t, want+"\n", out.String())
	assert.Equal(t, "v1.3.0", history.gotStart)
	assert.Equal(t, "HEAD", history.gotEnd)
	assert.Empty(t, web.opened)
}

func TestRunAbortedPickIsFatal(t *testing.T) {
	t.Parallel()

	r, clip, _, _ := newTestRunner(t, &fakeHistory{})

	err := r.Run(Options{})
	assert.ErrorIs(t, err, picker.ErrAborted)
	assert.Empty(t, clip.copied)
}

func TestRunPickedCommitBecomesStartRef(t *testing.T) {
	t.Parallel()

	history := &fakeHistory{branch: "main", tags: []string{"v1.4.0", "v1.2.0"}}
	r, _, _, _ := newTestRunner(t, history)
	seedTicketBase(t, r.Config)
	r.Picker = &fakePicker{hash: "abc1234"}

	require.NoError(t, r.Run(Options{Yes: true}))
	assert.Equal(t, "abc1234", history.gotStart)
}

func TestRunVersionConfirmation(t *testing.T) {
	t.Parallel()

	t.Run("empty answer accepts the resolved version", func(t *testing.T) {
		t.Parallel()
		r, clip, _, _ := newTestRunner(t, &fakeHistory{branch: "release/2.3.1"})
		seedTicketBase(t, r.Config)
		r.Prompter = &fakePrompter{answers: []string{""}}

		require.NoError(t, r.Run(Options{StartRef: "v2.2.0"}))
		require.Len(t, clip.copied, 1)
		assert.True(t, strings.HasPrefix(clip.copied[0], "# 2.3.20240309.1\n"))
	})

	t.Run("typed answer overrides the resolved version", func(t *testing.T) {
		t.Parallel()
		r, clip, _, _ := newTestRunner(t, &fakeHistory{branch: "release/2.3.1"})
		seedTicketBase(t, r.Config)
		r.Prompter = &fakePrompter{answers: []string{"9.9"}}

		require.NoError(t, r.Run(Options{StartRef: "v2.2.0"}))
		require.Len(t, clip.copied, 1)
		assert.True(t, strings.HasPrefix(clip.copied[0], "# 9.9.20240309.1\n"))
	})
}

func TestRunReferenceNotFound(t *testing.T) {
	t.Parallel()

	history := &fakeHistory{rangeErr: gitx.ErrReferenceNotFound}
	r, clip, _, _ := newTestRunner(t, history)
	seedTicketBase(t, r.Config)

	err := r.Run(Options{Yes: true, StartRef: "nope"})
	assert.ErrorIs(t, err, gitx.ErrReferenceNotFound)
	assert.Empty(t, clip.copied)
}

func TestRunClipboardUnavailableIsNonFatal(t *testing.T) {
	t.Parallel()

	r, _, _, out := newTestRunner(t, &fakeHistory{commits: []gitx.Commit{{Hash: "aaa", Subject: "s"}}})
	seedTicketBase(t, r.Config)
	r.Clipboard = &fakeClipboard{err: clipboard.ErrUnavailable}

	require.NoError(t, r.Run(Options{Yes: true, StartRef: "v1.0.0"}))
	assert.Contains(t, out.String(), "|aaa|s|")
}

func TestRunReleasePage(t *testing.T) {
	t.Parallel()

	history := &fakeHistory{remote: "git@github.com:acme/widgets.git"}
	r, _, web, _ := newTestRunner(t, history)
	seedTicketBase(t, r.Config)
	r.Prompter = &fakePrompter{
		answers:  []string{"https://wiki.acme.dev/releases"},
		confirms: []bool{true},
	}

	require.NoError(t, r.Run(Options{Yes: true, StartRef: "v1.0.0"}))
	assert.Equal(t, []string{"https://wiki.acme.dev/releases"}, web.opened)

	// The collected URL is persisted for the repository fingerprint.
	stored, err := r.Config.ReleaseNotesURL(config.Fingerprint(history.remote))
	require.NoError(t, err)
	assert.Equal(t, "https://wiki.acme.dev/releases", stored)

	// A later run reads it back without prompting.
	r.Prompter = &fakePrompter{confirms: []bool{true}}
	require.NoError(t, r.Run(Options{Yes: true, StartRef: "v1.0.0"}))
	assert.Equal(t, "https://wiki.acme.dev/releases", web.opened[1])
}
