package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Param is one labelled value shown under a header title.
type Param struct {
	Key   string
	Value string
}

// Header represents a command header with a title and parameters.
// Used at the start of human-readable output to show which file is in use.
type Header struct {
	Title  string  // e.g., "SPACENAV CONFIGURATION"
	Params []Param // e.g., {"File", "/etc/spnavrc"}
	Width  int     // Terminal width for responsive rendering
}

// NewHeader creates a new header with the given values
func NewHeader(title string, params ...Param) *Header {
	return &Header{
		Title:  title,
		Params: params,
		Width:  GetTerminalWidth(),
	}
}

// SetWidth sets the terminal width for responsive rendering
func (h *Header) SetWidth(width int) *Header {
	h.Width = width
	return h
}

// Render returns the styled header as a string
func (h *Header) Render() string {
	width := h.Width
	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}

	content := HeaderTitleStyle.Render(strings.ToUpper(h.Title))

	if len(h.Params) > 0 {
		divider := RenderHorizontalDivider(width-6, "─")

		keyWidth := 0
		for _, p := range h.Params {
			if len(p.Key) > keyWidth {
				keyWidth = len(p.Key)
			}
		}

		paramLines := make([]string, 0, len(h.Params))
		for _, p := range h.Params {
			key := p.Key + ":" + strings.Repeat(" ", keyWidth-len(p.Key))
			paramLines = append(paramLines,
				HeaderParamKeyStyle.Render(key)+" "+HeaderParamValueStyle.Render(p.Value))
		}

		content = lipgloss.JoinVertical(lipgloss.Left, content, divider, strings.Join(paramLines, "\n"))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(PrimaryColor).
		Width(width - 2). // Account for border characters
		Render(content)
}

// String implements fmt.Stringer
func (h *Header) String() string {
	return h.Render()
}
