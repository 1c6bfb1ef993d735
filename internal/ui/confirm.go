package ui

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Confirm displays a warning box listing what is about to happen and asks
// the user to answer "y" or "yes". Anything else, including EOF, declines.
func Confirm(in io.Reader, out io.Writer, title string, warnings ...string) bool {
	width := GetTerminalWidth()

	lines := []string{
		"",
		WarningTitleStyle.Render(fmt.Sprintf(" %s  WARNING  ─  %s", WarningMarker, title)),
		"",
	}
	for _, warning := range warnings {
		lines = append(lines, lipgloss.NewStyle().Foreground(TextColor).Render(" • "+warning))
	}
	lines = append(lines, "")

	box := lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(WarningColor).
		Width(width-2).
		Padding(0, 2).
		Render(strings.Join(lines, "\n"))

	fmt.Fprintln(out, box)
	fmt.Fprint(out, WarningTitleStyle.Render("Proceed? [y/N]: "))

	input, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && input == "" {
		fmt.Fprintln(out)
		return false
	}

	switch strings.ToLower(strings.TrimSpace(input)) {
	case "y", "yes":
		return true
	}

	fmt.Fprintln(out, lipgloss.NewStyle().Foreground(MutedColor).Render("  Operation cancelled."))
	return false
}
