// Package ui provides shared UI components and helpers for the TUI.
package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// DimStyle applies a dim gray color to background content behind dialogs.
// We strip existing ANSI codes and apply gray because SGR 2 (faint) doesn't
// reliably combine with existing color codes in most terminals.
var DimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))

// maxLineWidth returns the maximum visual width of the given lines.
func maxLineWidth(lines []string) int {
	maxWidth := 0
	for _, line := range lines {
		w := ansi.StringWidth(line)
		if w > maxWidth {
			maxWidth = w
		}
	}
	return maxWidth
}

// dimLine strips ANSI codes and applies dim gray styling.
func dimLine(s string) string {
	return DimStyle.Render(ansi.Strip(s))
}

// compositeRow overlays dialogLine onto bgLine at position startX.
// Returns: dimmed-left-segment + dialogLine + dimmed-right-segment
func compositeRow(bgLine, dialogLine string, startX, dialogWidth, totalWidth int) string {
	var result strings.Builder

	// Strip ANSI from background for consistent dimming
	stripped := ansi.Strip(bgLine)
	bgWidth := ansi.StringWidth(stripped)

	// Left segment: dimmed background from 0 to startX
	if startX > 0 {
		leftSeg := ansi.Truncate(stripped, startX, "")
		leftWidth := ansi.StringWidth(leftSeg)
		result.WriteString(DimStyle.Render(leftSeg))
		// Pad if background is shorter than dialog position
		if leftWidth < startX {
			result.WriteString(strings.Repeat(" ", startX-leftWidth))
		}
	}

	// Dialog content (not dimmed)
	result.WriteString(dialogLine)

	// Right segment: dimmed background after the dialog
	rightStartX := startX + dialogWidth
	if rightStartX < totalWidth && bgWidth > rightStartX {
		rightSeg := ansi.Cut(stripped, rightStartX, bgWidth)
		result.WriteString(DimStyle.Render(rightSeg))
	}

	return result.String()
}

// Overlay composites a dialog on top of a dimmed background.
// The dialog is centered, with dimmed background visible on all sides.
func Overlay(background, dialog string, width, height int) string {
	bgLines := strings.Split(background, "\n")
	dialogLines := strings.Split(dialog, "\n")

	dialogWidth := maxLineWidth(dialogLines)
	dialogHeight := len(dialogLines)
	startX := (width - dialogWidth) / 2
	startY := (height - dialogHeight) / 2
	if startX < 0 {
		startX = 0
	}
	if startY < 0 {
		startY = 0
	}

	for len(bgLines) < height {
		bgLines = append(bgLines, "")
	}

	result := make([]string, 0, height)
	for y := 0; y < height; y++ {
		bgLine := ""
		if y < len(bgLines) {
			bgLine = bgLines[y]
		}

		rowIdx := y - startY
		if rowIdx >= 0 && rowIdx < dialogHeight {
			result = append(result, compositeRow(bgLine, dialogLines[rowIdx], startX, dialogWidth, width))
		} else {
			result = append(result, dimLine(bgLine))
		}
	}

	return strings.Join(result, "\n")
}
