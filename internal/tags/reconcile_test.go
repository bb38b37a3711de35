package tags

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jparker/inkwell/internal/model"
)

// fakeBackend records tag creations and attachments, assigning ids
// sequentially, and can be told to fail a specific step.
type fakeBackend struct {
	nextID      int
	creations   []string
	attachments []int // tag ids attached, in order
	failCreate  string
	failAttach  int
}

func (f *fakeBackend) CreateTag(_ context.Context, name string) (model.Tag, error) {
	if name == f.failCreate {
		return model.Tag{}, fmt.Errorf("boom")
	}
	f.nextID++
	f.creations = append(f.creations, name)
	return model.Tag{ID: f.nextID, Name: name}, nil
}

func (f *fakeBackend) AttachTag(_ context.Context, noteID, tagID int) error {
	if tagID == f.failAttach {
		return fmt.Errorf("boom")
	}
	f.attachments = append(f.attachments, tagID)
	return nil
}

func newReconciler(backend *fakeBackend, seed []model.Tag) (*Reconciler, *Registry) {
	reg := NewRegistry(seed)
	return &Reconciler{Backend: backend, Registry: reg}, reg
}

func TestReconcileEmptyIsNoop(t *testing.T) {
	backend := &fakeBackend{}
	r, _ := newReconciler(backend, nil)
	note := model.Note{ID: 1, Tags: []model.Tag{{ID: 3, Name: "work"}}}

	res, err := r.Reconcile(context.Background(), note, nil)
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if len(backend.creations)+len(backend.attachments) != 0 {
		t.Error("empty reconcile touched the network")
	}
	if len(res.Attached) != 1 || res.Attached[0].ID != 3 {
		t.Errorf("Attached = %+v, want the note's existing tags", res.Attached)
	}
}

func TestReconcileDuplicateNewNamesCreateOnce(t *testing.T) {
	// Batch ["new-a", "new-a"]: the second occurrence must resolve to the
	// tag created by the first, with one creation and one attach total.
	backend := &fakeBackend{nextID: 100}
	r, reg := newReconciler(backend, nil)
	note := model.Note{ID: 1}

	res, err := r.Reconcile(context.Background(), note, []model.Tag{{Name: "new-a"}, {Name: "new-a"}})
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if len(backend.creations) != 1 {
		t.Errorf("creations = %v, want exactly one", backend.creations)
	}
	if len(backend.attachments) != 1 {
		t.Errorf("attachments = %v, want exactly one", backend.attachments)
	}
	if len(res.Created) != 1 || len(res.Attached) != 1 {
		t.Errorf("result = %+v", res)
	}
	if _, ok := reg.FindByName("new-a"); !ok {
		t.Error("created tag not registered")
	}
}

func TestReconcileIsIdempotentForAttachedTags(t *testing.T) {
	backend := &fakeBackend{}
	r, _ := newReconciler(backend, []model.Tag{{ID: 7, Name: "work"}})
	note := model.Note{ID: 1}

	res, err := r.Reconcile(context.Background(), note, []model.Tag{{ID: 7, Name: "work"}})
	if err != nil {
		t.Fatalf("first reconcile: %v", err)
	}
	if len(backend.attachments) != 1 {
		t.Fatalf("attachments = %v", backend.attachments)
	}

	// Second call with the same candidate against the updated note.
	note.Tags = res.Attached
	res, err = r.Reconcile(context.Background(), note, []model.Tag{{ID: 7, Name: "work"}})
	if err != nil {
		t.Fatalf("second reconcile: %v", err)
	}
	if len(backend.attachments) != 1 {
		t.Errorf("second call re-attached: %v", backend.attachments)
	}
	if len(res.Attached) != 1 {
		t.Errorf("Attached grew: %+v", res.Attached)
	}
}

func TestReconcilePartialFailureKeepsCompletedWork(t *testing.T) {
	// Three candidates; the third one's creation fails. The first two
	// stay attached and the registry keeps the first creation.
	backend := &fakeBackend{nextID: 10, failCreate: "doomed"}
	r, reg := newReconciler(backend, []model.Tag{{ID: 5, Name: "existing"}})
	note := model.Note{ID: 1}

	candidates := []model.Tag{{ID: 5, Name: "existing"}, {Name: "fresh"}, {Name: "doomed"}}
	res, err := r.Reconcile(context.Background(), note, candidates)
	if err == nil {
		t.Fatal("expected error")
	}

	if got := backend.attachments; len(got) != 2 {
		t.Errorf("attachments = %v, want the two pre-failure tags", got)
	}
	if len(res.Attached) != 2 {
		t.Errorf("Attached = %+v, want the two that succeeded", res.Attached)
	}
	if _, ok := reg.FindByName("fresh"); !ok {
		t.Error("pre-failure creation missing from registry")
	}
	if _, ok := reg.FindByName("doomed"); ok {
		t.Error("failed creation appeared in registry")
	}
}

func TestReconcileAttachFailureSurfacesError(t *testing.T) {
	sentinel := errors.New("link failed")
	backend := &attachFailBackend{err: sentinel}
	r := &Reconciler{Backend: backend, Registry: NewRegistry([]model.Tag{{ID: 3, Name: "work"}})}

	_, err := r.Reconcile(context.Background(), model.Note{ID: 1}, []model.Tag{{ID: 3, Name: "work"}})
	if !errors.Is(err, sentinel) {
		t.Errorf("error = %v, want wrapped %v", err, sentinel)
	}
}

type attachFailBackend struct{ err error }

func (b *attachFailBackend) CreateTag(context.Context, string) (model.Tag, error) {
	return model.Tag{}, fmt.Errorf("unexpected create")
}
func (b *attachFailBackend) AttachTag(context.Context, int, int) error { return b.err }

func TestReconcileFiresChangeHookOnCreation(t *testing.T) {
	backend := &fakeBackend{}
	r, _ := newReconciler(backend, nil)
	fired := 0
	r.OnTagsChanged = func() { fired++ }

	// Attaching only existing tags does not fire the hook.
	r.Registry.Register(model.Tag{ID: 1, Name: "work"})
	if _, err := r.Reconcile(context.Background(), model.Note{ID: 1}, []model.Tag{{ID: 1, Name: "work"}}); err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if fired != 0 {
		t.Errorf("hook fired %d times without a creation", fired)
	}

	if _, err := r.Reconcile(context.Background(), model.Note{ID: 2}, []model.Tag{{Name: "brand-new"}}); err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if fired != 1 {
		t.Errorf("hook fired %d times, want 1", fired)
	}
}
