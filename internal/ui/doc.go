// Package ui renders spnavcfg's human-readable output.
//
// It provides lipgloss styles, a bordered header naming the file being
// edited, result boxes for success, failure and warnings, and a yes/no
// confirmation prompt. Color is switched off with SetColor(false) when
// stdout is not a terminal or the user prefers plain output.
package ui
