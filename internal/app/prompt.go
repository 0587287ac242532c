package app

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	promptStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	hintStyle   = lipgloss.NewStyle().Faint(true)
)

// TerminalPrompter asks questions on the controlling terminal.
type TerminalPrompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewTerminalPrompter reads answers from in and writes prompts to out.
func NewTerminalPrompter(in io.Reader, out io.Writer) *TerminalPrompter {
	return &TerminalPrompter{in: bufio.NewReader(in), out: out}
}

// Ask prints prompt and returns one line of input, without the newline.
func (p *TerminalPrompter) Ask(prompt string) (string, error) {
	fmt.Fprintf(p.out, "%s ", promptStyle.Render(prompt+":"))
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read answer: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Confirm asks a yes/no question; only "y"/"yes" counts as yes.
func (p *TerminalPrompter) Confirm(prompt string) (bool, error) {
	fmt.Fprintf(p.out, "%s %s ", promptStyle.Render(prompt), hintStyle.Render("[y/N]"))
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return false, fmt.Errorf("read answer: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}
