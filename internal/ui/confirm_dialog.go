package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jparker/inkwell/internal/styles"
)

// ConfirmDialog is a reusable two-button confirmation box. The caller
// owns the focus state and key handling; the dialog only renders.
type ConfirmDialog struct {
	Title        string
	Message      string
	ConfirmLabel string // e.g., " Delete ", " Yes "
	CancelLabel  string // e.g., " Cancel ", " No "
	Danger       bool   // red border and confirm button for destructive actions
	Width        int
}

// NewConfirmDialog creates a dialog with sensible defaults.
func NewConfirmDialog(title, message string) ConfirmDialog {
	return ConfirmDialog{
		Title:        title,
		Message:      message,
		ConfirmLabel: " Confirm ",
		CancelLabel:  " Cancel ",
		Width:        50,
	}
}

// Render draws the dialog. confirmFocused selects which button carries
// the focus highlight.
func (d ConfirmDialog) Render(confirmFocused bool) string {
	width := d.Width
	if width <= 0 {
		width = 50
	}

	confirmStyle := styles.Button
	cancelStyle := styles.Button
	if confirmFocused {
		confirmStyle = styles.ButtonFocused
		if d.Danger {
			confirmStyle = styles.ButtonDangerFocused
		}
	} else {
		cancelStyle = styles.ButtonFocused
	}
	if d.Danger && !confirmFocused {
		confirmStyle = styles.ButtonDanger
	}

	buttons := lipgloss.JoinHorizontal(lipgloss.Center,
		confirmStyle.Render(d.ConfirmLabel),
		"  ",
		cancelStyle.Render(d.CancelLabel),
	)

	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.ModalTitle.Render(d.Title),
		styles.Body.Width(width-6).Render(d.Message),
		"",
		lipgloss.PlaceHorizontal(width-6, lipgloss.Center, buttons),
	)

	box := styles.ModalBox
	if d.Danger {
		box = styles.ModalBoxDanger
	}
	return box.Width(width).Render(content)
}
