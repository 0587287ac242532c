// Package picker implements the interactive starting-commit selection.
package picker

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/drewfead/relnote/internal/gitx"
)

// ErrAborted means the user left the picker without choosing a commit, or
// no interactive terminal was available to run it.
var ErrAborted = errors.New("no commit selected")

var titleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("205"))

type commitItem struct {
	c gitx.Summary
}

func (i commitItem) Title() string       { return i.c.ShortHash + " " + i.c.Subject }
func (i commitItem) Description() string { return "" }
func (i commitItem) FilterValue() string { return i.c.ShortHash + " " + i.c.Subject }

type model struct {
	list   list.Model
	choice string
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height)
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			if item, ok := m.list.SelectedItem().(commitItem); ok {
				m.choice = item.c.ShortHash
				return m, tea.Quit
			}
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "q":
			// "q" is regular input while the filter prompt is open.
			if m.list.FilterState() != list.Filtering {
				return m, tea.Quit
			}
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m model) View() string { return m.list.View() }

// Terminal runs a filterable bubbletea list over recent commits.
type Terminal struct{}

// Pick returns the short hash of the commit the user selected.
func (Terminal) Pick(commits []gitx.Summary) (string, error) {
	if !isatty.IsTerminal(os.Stdin.Fd()) {
		return "", ErrAborted
	}

	items := make([]list.Item, len(commits))
	for i, c := range commits {
		items[i] = commitItem{c: c}
	}

	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	l := list.New(items, delegate, 0, 0)
	l.Title = "Pick the first commit of the release"
	l.Styles.Title = titleStyle

	out, err := tea.NewProgram(model{list: l}, tea.WithAltScreen()).Run()
	if err != nil {
		return "", fmt.Errorf("commit picker: %w", err)
	}

	final, ok := out.(model)
	if !ok || final.choice == "" {
		return "", ErrAborted
	}
	return final.choice, nil
}
