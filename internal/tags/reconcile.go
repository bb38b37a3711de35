package tags

import (
	"context"
	"fmt"

	"github.com/jparker/inkwell/internal/model"
)

// Backend is the slice of the API the reconciler needs.
type Backend interface {
	CreateTag(ctx context.Context, name string) (model.Tag, error)
	AttachTag(ctx context.Context, noteID, tagID int) error
}

// Reconciler commits a pending attachment set: it resolves each candidate
// against the registry, creates missing global tags, and attaches each
// resolved tag to the note at most once.
type Reconciler struct {
	Backend  Backend
	Registry *Registry

	// OnTagsChanged fires after a reconcile that created global tags, so
	// dependent views (sidebar filter, other notes) can refresh.
	OnTagsChanged func()
}

// Result reports what a reconcile accomplished. On partial failure it
// still reflects every attachment and creation that succeeded before the
// failing step; nothing is rolled back.
type Result struct {
	Attached []model.Tag // the note's full tag list after this call
	Created  []model.Tag // tags newly created globally by this call
}

// Reconcile processes candidates strictly in order. Each candidate is
// resolved (by id, by registry name lookup, or by creating the tag) and
// then attached unless the note already carries that id. Sequencing
// matters: a creation in one iteration is registered before the next
// candidate resolves, so a batch like ["new-a", "new-a"] issues a single
// creation and a single attach.
func (r *Reconciler) Reconcile(ctx context.Context, note model.Note, candidates []model.Tag) (Result, error) {
	res := Result{Attached: append([]model.Tag(nil), note.Tags...)}
	if len(candidates) == 0 {
		return res, nil
	}

	for _, cand := range candidates {
		resolved := cand
		if cand.Pending() {
			if existing, ok := r.Registry.FindByName(cand.Name); ok {
				resolved = existing
			} else {
				created, err := r.Backend.CreateTag(ctx, cand.Name)
				if err != nil {
					r.finish(res)
					return res, fmt.Errorf("create tag %q: %w", cand.Name, err)
				}
				r.Registry.Register(created)
				res.Created = append(res.Created, created)
				resolved = created
			}
		}

		if hasID(res.Attached, resolved.ID) {
			continue
		}
		if err := r.Backend.AttachTag(ctx, note.ID, resolved.ID); err != nil {
			r.finish(res)
			return res, fmt.Errorf("attach tag %q: %w", resolved.Name, err)
		}
		res.Attached = append(res.Attached, resolved)
	}

	r.finish(res)
	return res, nil
}

// finish fires the change hook when the global tag set grew.
func (r *Reconciler) finish(res Result) {
	if len(res.Created) > 0 && r.OnTagsChanged != nil {
		r.OnTagsChanged()
	}
}

func hasID(tags []model.Tag, id int) bool {
	for _, t := range tags {
		if t.ID == id {
			return true
		}
	}
	return false
}
