package ui

import (
	"strings"
	"testing"
)

func TestNewConfirmDialog(t *testing.T) {
	d := NewConfirmDialog("Test Title", "Test message")

	if d.Title != "Test Title" {
		t.Errorf("expected title 'Test Title', got %q", d.Title)
	}
	if d.Message != "Test message" {
		t.Errorf("expected message 'Test message', got %q", d.Message)
	}
	if d.ConfirmLabel != " Confirm " {
		t.Errorf("expected default confirm label ' Confirm ', got %q", d.ConfirmLabel)
	}
	if d.CancelLabel != " Cancel " {
		t.Errorf("expected default cancel label ' Cancel ', got %q", d.CancelLabel)
	}
	if d.Width != 50 {
		t.Errorf("expected width 50, got %d", d.Width)
	}
}

func TestConfirmDialog_Render(t *testing.T) {
	d := NewConfirmDialog("Delete note?", "This cannot be undone.")
	d.ConfirmLabel = " Delete "
	d.Danger = true

	output := d.Render(true)

	if !strings.Contains(output, "Delete note?") {
		t.Error("render should contain title")
	}
	if !strings.Contains(output, "This cannot be undone.") {
		t.Error("render should contain message")
	}
	if !strings.Contains(output, "Delete") {
		t.Error("render should contain confirm label")
	}
	if !strings.Contains(output, "Cancel") {
		t.Error("render should contain cancel label")
	}

	// Both focus states render without panicking and differ.
	other := d.Render(false)
	if output == other {
		t.Error("focus change should alter rendering")
	}
}
