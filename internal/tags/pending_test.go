package tags

import (
	"strings"
	"testing"

	"github.com/jparker/inkwell/internal/model"
)

func TestAddExistingRejectsDuplicates(t *testing.T) {
	p := NewPendingSet([]model.Tag{{ID: 1, Name: "work"}})

	err := p.AddExisting(model.Tag{ID: 1, Name: "work"})
	if err == nil || !strings.Contains(err.Error(), "already on this note") {
		t.Errorf("duplicate-on-note error = %v", err)
	}

	if err := p.AddExisting(model.Tag{ID: 2, Name: "home"}); err != nil {
		t.Fatalf("AddExisting: %v", err)
	}
	err = p.AddExisting(model.Tag{ID: 2, Name: "home"})
	if err == nil || !strings.Contains(err.Error(), "already selected to be added") {
		t.Errorf("duplicate-in-pending error = %v", err)
	}

	if got := len(p.Candidates()); got != 1 {
		t.Errorf("candidates = %d, want 1", got)
	}
}

func TestAddNewCaseVariantOfNoteTagIsRejected(t *testing.T) {
	// noteTags=[{id:1,name:"work"}], proposing "Work" must fail before any
	// network call can happen.
	registry := NewRegistry([]model.Tag{{ID: 1, Name: "work"}})
	p := NewPendingSet([]model.Tag{{ID: 1, Name: "work"}})

	err := p.AddNew("Work", registry)
	if err == nil || !strings.Contains(err.Error(), "already exists and is attached to this note") {
		t.Errorf("error = %v", err)
	}
	if !p.Empty() {
		t.Error("rejected candidate was queued")
	}
}

func TestAddNewCaseVariantOfNoteTagRejectedWhenRegistryStale(t *testing.T) {
	// The note carries "work" but the registry hasn't seen it yet (stale
	// global set). The name lookup misses, but the candidate must still be
	// rejected against the note's own tags.
	registry := NewRegistry(nil)
	p := NewPendingSet([]model.Tag{{ID: 1, Name: "work"}})

	err := p.AddNew("WORK", registry)
	if err == nil || !strings.Contains(err.Error(), "already on this note") {
		t.Errorf("error = %v", err)
	}
	if !p.Empty() {
		t.Error("rejected candidate was queued")
	}
}

func TestAddNewResolvesToExistingGlobalTag(t *testing.T) {
	registry := NewRegistry([]model.Tag{{ID: 5, Name: "Errands"}})
	p := NewPendingSet(nil)

	if err := p.AddNew("errands", registry); err != nil {
		t.Fatalf("AddNew: %v", err)
	}
	cands := p.Candidates()
	if len(cands) != 1 || cands[0].ID != 5 {
		t.Fatalf("candidate = %+v, want resolved tag id 5", cands)
	}

	// Adding the same name again now collides with the queued candidate.
	err := p.AddNew("ERRANDS", registry)
	if err == nil || !strings.Contains(err.Error(), "already selected to be added") {
		t.Errorf("error = %v", err)
	}
}

func TestAddNewRejectsEmptyAndPendingDuplicates(t *testing.T) {
	registry := NewRegistry(nil)
	p := NewPendingSet(nil)

	if err := p.AddNew("   ", registry); err == nil || !strings.Contains(err.Error(), "cannot be empty") {
		t.Errorf("empty name error = %v", err)
	}

	if err := p.AddNew("fresh", registry); err != nil {
		t.Fatalf("AddNew: %v", err)
	}
	err := p.AddNew("Fresh", registry)
	if err == nil || !strings.Contains(err.Error(), "already waiting to be added") {
		t.Errorf("pending duplicate error = %v", err)
	}

	cands := p.Candidates()
	if len(cands) != 1 || !cands[0].Pending() || cands[0].Name != "fresh" {
		t.Errorf("candidates = %+v", cands)
	}
}

func TestRemoveAndReset(t *testing.T) {
	registry := NewRegistry(nil)
	p := NewPendingSet(nil)
	p.AddNew("a", registry)
	p.AddNew("b", registry)

	p.Remove(0)
	if cands := p.Candidates(); len(cands) != 1 || cands[0].Name != "b" {
		t.Errorf("after Remove: %+v", cands)
	}
	p.Remove(5) // out of range, ignored

	p.Reset([]model.Tag{{ID: 9, Name: "kept"}})
	if !p.Empty() {
		t.Error("Reset left candidates queued")
	}
	if err := p.AddExisting(model.Tag{ID: 9, Name: "kept"}); err == nil {
		t.Error("Reset did not rebase note tags")
	}
}

func TestValidateRename(t *testing.T) {
	noteTags := []model.Tag{{ID: 1, Name: "work"}, {ID: 2, Name: "home"}}

	tests := []struct {
		name    string
		tagID   int
		newName string
		want    string
		wantErr string
	}{
		{"trims", 1, "  office  ", "office", ""},
		{"same tag keeps its own name", 1, "Work", "Work", ""},
		{"empty", 1, "   ", "", "cannot be empty"},
		{"collides with sibling", 1, "HOME", "", "already exists on this note"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateRename(noteTags, tt.tagID, tt.newName)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("error = %v, want containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Fatalf("got (%q, %v), want %q", got, err, tt.want)
			}
		})
	}
}
