package tags

import (
	"fmt"
	"strings"

	"github.com/jparker/inkwell/internal/model"
)

// PendingSet collects tag-attachment candidates for one note while the
// add-tag dialog is open. Candidates are either existing global tags or
// name-only placeholders (id 0) for tags that don't exist yet. The set
// enforces, up front, that no candidate duplicates a tag already on the
// note or another candidate, by id or case-insensitive name.
type PendingSet struct {
	noteTags []model.Tag
	toAdd    []model.Tag
}

// NewPendingSet opens a pending set against the note's current tags.
func NewPendingSet(noteTags []model.Tag) *PendingSet {
	p := &PendingSet{}
	p.Reset(noteTags)
	return p
}

// Reset clears all candidates and rebases on the note's current tags.
// Called when the dialog opens, closes, or a save completes.
func (p *PendingSet) Reset(noteTags []model.Tag) {
	p.noteTags = make([]model.Tag, len(noteTags))
	copy(p.noteTags, noteTags)
	p.toAdd = p.toAdd[:0]
}

// AddExisting queues an existing global tag for attachment.
func (p *PendingSet) AddExisting(tag model.Tag) error {
	for _, t := range p.noteTags {
		if t.ID == tag.ID {
			return fmt.Errorf("%q is already on this note.", tag.Name)
		}
	}
	for _, t := range p.toAdd {
		if t.ID == tag.ID {
			return fmt.Errorf("%q is already selected to be added.", tag.Name)
		}
	}
	p.toAdd = append(p.toAdd, tag)
	return nil
}

// AddNew queues a free-text tag name. If the name matches an existing
// global tag the candidate resolves to that tag instead of proposing a
// creation; otherwise a pending placeholder (id 0) is queued.
func (p *PendingSet) AddNew(name string, registry *Registry) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("Tag name cannot be empty.")
	}

	if existing, ok := registry.FindByName(name); ok {
		for _, t := range p.noteTags {
			if t.ID == existing.ID {
				return fmt.Errorf("%q already exists and is attached to this note. Use the 'Select Existing Tag' list.", name)
			}
		}
		for _, t := range p.toAdd {
			if t.ID == existing.ID {
				return fmt.Errorf("%q is already selected to be added.", name)
			}
		}
		p.toAdd = append(p.toAdd, existing)
		return nil
	}

	// The registry can lag behind the note (a tag attached elsewhere and
	// not refetched yet), so the note's own tags are checked by name too.
	for _, t := range p.noteTags {
		if strings.EqualFold(t.Name, name) {
			return fmt.Errorf("%q is already on this note.", name)
		}
	}
	for _, t := range p.toAdd {
		if t.Pending() && strings.EqualFold(t.Name, name) {
			return fmt.Errorf("%q is already waiting to be added as a new tag.", name)
		}
	}

	p.toAdd = append(p.toAdd, model.Tag{Name: name})
	return nil
}

// Remove drops the candidate at index i. Out-of-range indexes are ignored.
func (p *PendingSet) Remove(i int) {
	if i < 0 || i >= len(p.toAdd) {
		return
	}
	p.toAdd = append(p.toAdd[:i], p.toAdd[i+1:]...)
}

// Candidates returns the queued candidates in insertion order.
func (p *PendingSet) Candidates() []model.Tag {
	out := make([]model.Tag, len(p.toAdd))
	copy(out, p.toAdd)
	return out
}

// Empty reports whether no candidates are queued.
func (p *PendingSet) Empty() bool {
	return len(p.toAdd) == 0
}

// ValidateRename checks a proposed new name for a tag on a note: the
// trimmed name must be non-empty and must not collide case-insensitively
// with a different tag on the same note. Collisions with tags on other
// notes are fine. Returns the trimmed name.
func ValidateRename(noteTags []model.Tag, tagID int, newName string) (string, error) {
	trimmed := strings.TrimSpace(newName)
	if trimmed == "" {
		return "", fmt.Errorf("Tag name cannot be empty.")
	}
	for _, t := range noteTags {
		if t.ID != tagID && strings.EqualFold(t.Name, trimmed) {
			return "", fmt.Errorf("The tag name %q already exists on this note.", trimmed)
		}
	}
	return trimmed, nil
}
