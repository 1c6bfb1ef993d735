package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ResultType indicates success or failure
type ResultType int

const (
	ResultSuccess ResultType = iota
	ResultFailure
	ResultWarning
)

// Result represents a result box (success, failure, or warning)
type Result struct {
	Type            ResultType // Success, failure, or warning
	Title           string     // e.g., "Configuration saved"
	Details         []Param    // Key-value details, rendered in order
	Items           []string   // Bullet list (e.g., skipped lines)
	Error           error      // Error (for failure results)
	Troubleshooting []string   // Troubleshooting tips (for failure results)
	Width           int        // Terminal width
}

// NewSuccessResult creates a success result box
func NewSuccessResult(title string, details ...Param) *Result {
	return &Result{
		Type:    ResultSuccess,
		Title:   title,
		Details: details,
		Width:   GetTerminalWidth(),
	}
}

// NewFailureResult creates a failure result box
func NewFailureResult(title string, err error, troubleshooting ...string) *Result {
	return &Result{
		Type:            ResultFailure,
		Title:           title,
		Error:           err,
		Troubleshooting: troubleshooting,
		Width:           GetTerminalWidth(),
	}
}

// NewWarningResult creates a warning result box listing items
func NewWarningResult(title string, items ...string) *Result {
	return &Result{
		Type:  ResultWarning,
		Title: title,
		Items: items,
		Width: GetTerminalWidth(),
	}
}

// SetWidth sets the terminal width for responsive rendering
func (r *Result) SetWidth(width int) *Result {
	r.Width = width
	return r
}

// AddDetail adds a detail key-value pair
func (r *Result) AddDetail(key, value string) *Result {
	r.Details = append(r.Details, Param{Key: key, Value: value})
	return r
}

// Render returns the styled result box as a string
func (r *Result) Render() string {
	width := r.Width
	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}

	var (
		titleStyle  lipgloss.Style
		borderColor lipgloss.Color
		marker      string
		label       string
	)
	switch r.Type {
	case ResultFailure:
		titleStyle, borderColor, marker, label = ErrorTitleStyle, ErrorColor, FailureMarker, "FAILED"
	case ResultWarning:
		titleStyle, borderColor, marker, label = WarningTitleStyle, WarningColor, WarningMarker, "WARNING"
	default:
		titleStyle, borderColor, marker, label = SuccessTitleStyle, SuccessColor, SuccessMarker, "SUCCESS"
	}

	lines := []string{
		"",
		titleStyle.Render(fmt.Sprintf(" %s  %s  ─  %s", marker, label, r.Title)),
		"",
	}

	if r.Error != nil {
		lines = append(lines, ErrorMessageStyle.Render(" Error: "+r.Error.Error()), "")
	}

	if len(r.Details) > 0 {
		for _, d := range r.Details {
			lines = append(lines, ResultKeyStyle.Render(" "+d.Key+":")+" "+ResultValueStyle.Render(d.Value))
		}
		lines = append(lines, "")
	}

	if len(r.Items) > 0 {
		for _, item := range r.Items {
			lines = append(lines, ResultValueStyle.Render(" • "+item))
		}
		lines = append(lines, "")
	}

	if len(r.Troubleshooting) > 0 {
		lines = append(lines, r.renderTroubleshootingBox(width), "")
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(borderColor).
		Width(width - 2).
		Padding(0, 2).
		Render(strings.Join(lines, "\n"))
}

// renderTroubleshootingBox renders the nested troubleshooting section
func (r *Result) renderTroubleshootingBox(width int) string {
	lines := []string{TroubleshootingItemStyle.Bold(true).Render("Troubleshooting:")}
	for _, tip := range r.Troubleshooting {
		for i, tipLine := range strings.Split(tip, "\n") {
			prefix := "  "
			if i == 0 {
				prefix = "• "
			}
			lines = append(lines, TroubleshootingItemStyle.Render(prefix+tipLine))
		}
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(MutedColor).
		Width(width - 10). // Indented within result box
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}

// String implements fmt.Stringer
func (r *Result) String() string {
	return r.Render()
}
