// Package gitx wraps the git commands relnote needs.
package gitx

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/drewfead/relnote/internal/executil"
)

// ErrReferenceNotFound reports a range endpoint git does not recognize.
var ErrReferenceNotFound = errors.New("git reference not found")

// Commit is one commit's metadata as read from git log.
type Commit struct {
	Hash    string
	Subject string
	Body    string
}

// Summary is the short form shown by the interactive picker.
type Summary struct {
	ShortHash string
	Subject   string
}

// Repo runs git against a single working directory. An empty Dir means
// the process working directory.
type Repo struct {
	Dir string
}

// git log field and record separators; bodies may contain newlines, so
// records cannot be newline-delimited.
const (
	fieldSep  = "\x1f"
	recordSep = "\x1e"
)

// CommitsInRange lists non-merge commits reachable from end but not from
// start, oldest first. An empty start means the repository's root commit
// (an arbitrary one when history has several roots).
func (r Repo) CommitsInRange(start, end string) ([]Commit, error) {
	if start == "" {
		root, err := r.RootCommit()
		if err != nil {
			return nil, err
		}
		start = root
	}
	spec := fmt.Sprintf("%s..%s", start, end)
	out, err := r.git("log", "--no-merges", "--reverse",
		"--format=%H"+fieldSep+"%s"+fieldSep+"%b"+recordSep, spec)
	if err != nil {
		return nil, err
	}
	return parseCommits(out), nil
}

// RecentCommits returns up to limit commits from HEAD backward, newest
// first, for interactive selection.
func (r Repo) RecentCommits(limit int) ([]Summary, error) {
	out, err := r.git("log", "--no-merges", fmt.Sprintf("-n%d", limit),
		"--format=%h"+fieldSep+"%s")
	if err != nil {
		return nil, err
	}
	return parseSummaries(out), nil
}

// CurrentBranch returns the short name of the checked-out branch, or ""
// for a detached HEAD.
func (r Repo) CurrentBranch() (string, error) {
	out, err := r.git("branch", "--show-current")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// Tags returns all tag names sorted by version, descending.
func (r Repo) Tags() ([]string, error) {
	out, err := r.git("tag", "--sort=-v:refname")
	if err != nil {
		return nil, err
	}
	var tags []string
	for _, line := range strings.Split(out, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			tags = append(tags, line)
		}
	}
	return tags, nil
}

// RemoteURL returns the URL of the origin remote.
func (r Repo) RemoteURL() (string, error) {
	out, err := r.git("remote", "get-url", "origin")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// RootCommit returns a parentless commit of the current history. When the
// repository has several roots the first reported one is used.
func (r Repo) RootCommit() (string, error) {
	out, err := r.git("rev-list", "--max-parents=0", "HEAD")
	if err != nil {
		return "", err
	}
	roots := strings.Fields(out)
	if len(roots) == 0 {
		return "", fmt.Errorf("no root commit: %w", ErrReferenceNotFound)
	}
	return roots[0], nil
}

func (r Repo) git(args ...string) (string, error) {
	cmd, err := executil.Command("git", args...)
	if err != nil {
		return "", err
	}
	cmd.Dir = r.Dir
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			stderr := strings.TrimSpace(string(exitErr.Stderr))
			if isUnknownRevision(stderr) {
				return "", fmt.Errorf("%s: %w", firstLine(stderr), ErrReferenceNotFound)
			}
			return "", fmt.Errorf("git %s: %s", args[0], firstLine(stderr))
		}
		return "", fmt.Errorf("git %s: %w", args[0], err)
	}
	return string(out), nil
}

// git exits 128 with one of these messages for refs it cannot resolve.
func isUnknownRevision(stderr string) bool {
	return strings.Contains(stderr, "unknown revision") ||
		strings.Contains(stderr, "bad revision") ||
		strings.Contains(stderr, "ambiguous argument")
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func parseCommits(out string) []Commit {
	var commits []Commit
	for _, record := range strings.Split(out, recordSep) {
		record = strings.TrimSpace(record)
		if record == "" {
			continue
		}
		parts := strings.SplitN(record, fieldSep, 3)
		if len(parts) != 3 {
			continue
		}
		commits = append(commits, Commit{
			Hash:    parts[0],
			Subject: parts[1],
			Body:    strings.TrimRight(parts[2], "\n"),
		})
	}
	return commits
}

func parseSummaries(out string) []Summary {
	var summaries []Summary
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, fieldSep, 2)
		if len(parts) != 2 {
			continue
		}
		summaries = append(summaries, Summary{ShortHash: parts[0], Subject: parts[1]})
	}
	return summaries
}
