// Package tags holds the global tag registry, the per-note pending
// attachment set, and the reconciler that turns pending candidates into
// backend calls.
package tags

import (
	"sort"
	"strings"
	"sync"

	"github.com/jparker/inkwell/internal/model"
)

// Registry is the in-memory reflection of the backend's global tag set.
// It answers "what tags exist" and "does this name already exist" and
// never touches the network itself. Safe for concurrent use: the render
// loop reads while a reconcile commits creations.
type Registry struct {
	mu   sync.RWMutex
	tags []model.Tag
}

// NewRegistry creates a registry seeded with the given tags.
func NewRegistry(seed []model.Tag) *Registry {
	r := &Registry{}
	r.Replace(seed)
	return r
}

// Replace swaps the whole tag set, typically after a fresh GET /tags.
func (r *Registry) Replace(tags []model.Tag) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tags = make([]model.Tag, len(tags))
	copy(r.tags, tags)
}

// FindByName looks a tag up by case-insensitive exact name match.
func (r *Registry) FindByName(name string) (model.Tag, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, t := range r.tags {
		if strings.EqualFold(t.Name, name) {
			return t, true
		}
	}
	return model.Tag{}, false
}

// FindByID looks a tag up by id.
func (r *Registry) FindByID(id int) (model.Tag, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.findByID(id)
}

func (r *Registry) findByID(id int) (model.Tag, bool) {
	for _, t := range r.tags {
		if t.ID == id {
			return t, true
		}
	}
	return model.Tag{}, false
}

// Register inserts a tag. Idempotent: registering an id that is already
// present is a no-op, so racing creations (two clients) collapse safely.
func (r *Registry) Register(tag model.Tag) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.findByID(tag.ID); ok {
		return
	}
	r.tags = append(r.tags, tag)
}

// Rename updates a tag's name in place. Unknown ids are ignored.
func (r *Registry) Rename(id int, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.tags {
		if r.tags[i].ID == id {
			r.tags[i].Name = name
			return
		}
	}
}

// Remove deletes a tag from the registry. Unknown ids are ignored.
func (r *Registry) Remove(id int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, t := range r.tags {
		if t.ID == id {
			r.tags = append(r.tags[:i], r.tags[i+1:]...)
			return
		}
	}
}

// All returns the tags sorted by name (case-insensitive). The result is
// a copy; callers may not mutate registry state through it.
func (r *Registry) All() []model.Tag {
	r.mu.RLock()
	out := make([]model.Tag, len(r.tags))
	copy(out, r.tags)
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out
}

// Len returns the number of registered tags.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tags)
}
