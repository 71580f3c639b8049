package ui

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"fileshare/internal/notify"
	"fileshare/pkg/utils"
)

var (
	red   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	green = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	cyan  = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	gray  = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
)

// ConsoleUI writes messages and prompts to the terminal
type ConsoleUI struct {
	in  io.Reader
	out io.Writer
}

// NewConsoleUI creates a console UI on stdin and stdout
func NewConsoleUI() *ConsoleUI {
	return NewConsoleUIWith(os.Stdin, os.Stdout)
}

// NewConsoleUIWith creates a console UI on the given streams
func NewConsoleUIWith(in io.Reader, out io.Writer) *ConsoleUI {
	return &ConsoleUI{in: in, out: out}
}

// Notify implements notify.Sink
func (c *ConsoleUI) Notify(n notify.Notification) {
	switch n.Level {
	case notify.LevelSuccess:
		fmt.Fprintln(c.out, green.Render("✓ "+n.Message))
	case notify.LevelError:
		fmt.Fprintln(c.out, red.Render("✗ "+n.Message))
	default:
		fmt.Fprintln(c.out, cyan.Render(n.Message))
	}
}

// ShowMessage displays a message to the user
func (c *ConsoleUI) ShowMessage(message string) {
	fmt.Fprintln(c.out, message)
}

// ShowHint displays a de-emphasised message
func (c *ConsoleUI) ShowHint(message string) {
	fmt.Fprintln(c.out, gray.Render(message))
}

// Confirm asks a yes/no question, defaulting to no
func (c *ConsoleUI) Confirm(ctx context.Context, prompt string) (bool, error) {
	return utils.AskForConfirmation(ctx, c.in, c.out, prompt)
}

// IsTerminal reports whether stderr, where progress is drawn, is a terminal
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stderr.Fd()))
}
