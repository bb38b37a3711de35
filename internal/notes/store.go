// Package notes holds the note store, the lifecycle controller that moves
// notes between the active, archived and trash collections, and the pure
// filter that computes display lists.
package notes

import (
	"sync"

	"github.com/jparker/inkwell/internal/model"
)

// Store holds the three disjoint note collections and their load status.
// A note id lives in at most one collection at a time; every insert
// evicts the id from the other two first. Safe for concurrent use: the
// render loop reads while command goroutines commit network results.
type Store struct {
	mu          sync.RWMutex
	collections map[model.Collection][]model.Note
	loading     map[model.Collection]bool
	errs        map[model.Collection]error

	// OnInvalidate fires when a note leaves its collection (moved or
	// removed), so any open edit buffer for that id can be discarded.
	OnInvalidate func(noteID int)
}

// NewStore creates an empty store with all collections idle.
func NewStore() *Store {
	return &Store{
		collections: make(map[model.Collection][]model.Note),
		loading:     make(map[model.Collection]bool),
		errs:        make(map[model.Collection]error),
	}
}

// SetLoading marks a collection as mid-fetch and clears its last error.
func (s *Store) SetLoading(c model.Collection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading[c] = true
	s.errs[c] = nil
}

// SetNotes replaces a collection's contents after a successful fetch.
func (s *Store) SetNotes(c model.Collection, ns []model.Note) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.collections[c] = append([]model.Note(nil), ns...)
	s.loading[c] = false
	s.errs[c] = nil
}

// SetError records a fetch failure. Existing contents are kept; stale
// data beats no data.
func (s *Store) SetError(c model.Collection, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading[c] = false
	s.errs[c] = err
}

// Notes returns a copy of a collection's contents.
func (s *Store) Notes(c model.Collection) []model.Note {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Note(nil), s.collections[c]...)
}

// Loading reports whether a collection fetch is in flight.
func (s *Store) Loading(c model.Collection) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading[c]
}

// Err returns the collection's last fetch error, if any.
func (s *Store) Err(c model.Collection) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.errs[c]
}

// Get finds a note by id across all collections.
func (s *Store) Get(id int) (model.Note, model.Collection, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.get(id)
}

func (s *Store) get(id int) (model.Note, model.Collection, bool) {
	for _, c := range []model.Collection{model.CollectionActive, model.CollectionArchived, model.CollectionTrash} {
		for _, n := range s.collections[c] {
			if n.ID == id {
				return n, c, true
			}
		}
	}
	return model.Note{}, model.CollectionActive, false
}

// Insert places a note into a collection, first evicting its id from
// every collection so membership stays mutually exclusive. New notes go
// to the front, matching newest-first fetch order.
func (s *Store) Insert(c model.Collection, n model.Note) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.insert(c, n)
}

func (s *Store) insert(c model.Collection, n model.Note) {
	s.evict(n.ID)
	n.IsArchived = c == model.CollectionArchived
	s.collections[c] = append([]model.Note{n}, s.collections[c]...)
}

// Update replaces a note in place, wherever it lives. Unknown ids are
// ignored.
func (s *Store) Update(n model.Note) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for c, list := range s.collections {
		for i := range list {
			if list[i].ID == n.ID {
				n.IsArchived = c == model.CollectionArchived
				list[i] = n
				return
			}
		}
	}
}

// ReplaceTags swaps a note's tag list, wherever the note lives.
func (s *Store) ReplaceTags(id int, tags []model.Tag) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, list := range s.collections {
		for i := range list {
			if list[i].ID == id {
				list[i].Tags = append([]model.Tag(nil), tags...)
				return
			}
		}
	}
}

// DetachTagEverywhere removes a tag id from every note in every
// collection. Used when a tag is deleted globally.
func (s *Store) DetachTagEverywhere(tagID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, list := range s.collections {
		for i := range list {
			kept := list[i].Tags[:0]
			for _, t := range list[i].Tags {
				if t.ID != tagID {
					kept = append(kept, t)
				}
			}
			list[i].Tags = kept
		}
	}
}

// RenameTagEverywhere applies a tag rename to every note carrying it.
func (s *Store) RenameTagEverywhere(tagID int, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, list := range s.collections {
		for i := range list {
			for j := range list[i].Tags {
				if list[i].Tags[j].ID == tagID {
					list[i].Tags[j].Name = name
				}
			}
		}
	}
}

// Move transfers a note between collections, preserving its data. The
// note's edit buffer is invalidated. Unknown ids are a no-op.
func (s *Store) Move(id int, to model.Collection) {
	s.mu.Lock()
	n, _, ok := s.get(id)
	if ok {
		s.insert(to, n)
	}
	s.mu.Unlock()

	if ok {
		s.invalidate(id)
	}
}

// Remove drops a note from all collections (permanent delete) and
// invalidates its edit buffer.
func (s *Store) Remove(id int) {
	s.mu.Lock()
	s.evict(id)
	s.mu.Unlock()
	s.invalidate(id)
}

// Clear empties every collection and resets statuses. Used on session
// teardown so the next login starts from a clean fetch.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.collections = make(map[model.Collection][]model.Note)
	s.loading = make(map[model.Collection]bool)
	s.errs = make(map[model.Collection]error)
}

func (s *Store) evict(id int) {
	for c, list := range s.collections {
		for i, n := range list {
			if n.ID == id {
				s.collections[c] = append(list[:i], list[i+1:]...)
				break
			}
		}
	}
}

// invalidate runs the hook outside the lock so it may call back in.
func (s *Store) invalidate(id int) {
	if s.OnInvalidate != nil {
		s.OnInvalidate(id)
	}
}
