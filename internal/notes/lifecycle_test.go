package notes

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/jparker/inkwell/internal/api"
	"github.com/jparker/inkwell/internal/model"
)

// fakeBackend counts calls per action and can fail or block.
type fakeBackend struct {
	mu      sync.Mutex
	calls   map[string]int
	fail    error
	started chan struct{} // closed when a call begins, if set
	release chan struct{} // call blocks until closed, if set
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{calls: make(map[string]int)}
}

func (f *fakeBackend) record(action string) error {
	f.mu.Lock()
	f.calls[action]++
	f.mu.Unlock()
	if f.started != nil {
		close(f.started)
		f.started = nil
	}
	if f.release != nil {
		<-f.release
	}
	return f.fail
}

func (f *fakeBackend) count(action string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[action]
}

func (f *fakeBackend) CreateNote(_ context.Context, title, content string, _ []int) (model.Note, string, error) {
	if err := f.record("create"); err != nil {
		return model.Note{}, "", err
	}
	return model.Note{ID: 1, Title: title, Content: content}, "", nil
}

func (f *fakeBackend) UpdateNote(_ context.Context, id int, title, content string) (model.Note, string, error) {
	if err := f.record("update"); err != nil {
		return model.Note{}, "", err
	}
	return model.Note{ID: id, Title: title, Content: content}, "Server says updated", nil
}

func (f *fakeBackend) DeleteNote(_ context.Context, id int) (string, error) {
	return "", f.record("delete")
}

func (f *fakeBackend) ArchiveNote(_ context.Context, id int) (string, error) {
	return "", f.record("archive")
}

func (f *fakeBackend) UnarchiveNote(_ context.Context, id int) (string, error) {
	return "", f.record("unarchive")
}

func (f *fakeBackend) RecoverNote(_ context.Context, id int) (string, error) {
	return "", f.record("recover")
}

func (f *fakeBackend) PurgeNote(_ context.Context, id int) (string, error) {
	return "", f.record("purge")
}

func TestCreateEmptyTitleSkipsNetwork(t *testing.T) {
	backend := newFakeBackend()
	c := NewController(backend, NewStore())

	_, _, err := c.Create(context.Background(), "   ", "content", nil)
	if !errors.Is(err, ErrTitleRequired) {
		t.Fatalf("error = %v, want ErrTitleRequired", err)
	}
	if backend.count("create") != 0 {
		t.Error("validation failure reached the network")
	}
}

func TestEditEmptyTitleSkipsNetwork(t *testing.T) {
	backend := newFakeBackend()
	c := NewController(backend, NewStore())

	_, err := c.Edit(context.Background(), 1, "", "content")
	if !errors.Is(err, ErrTitleRequired) {
		t.Fatalf("error = %v, want ErrTitleRequired", err)
	}
	if backend.count("update") != 0 {
		t.Error("validation failure reached the network")
	}
}

func TestArchiveMovesNote(t *testing.T) {
	backend := newFakeBackend()
	store := NewStore()
	store.SetNotes(model.CollectionActive, []model.Note{{ID: 42, Title: "t"}})
	c := NewController(backend, store)

	msg, err := c.Archive(context.Background(), 42)
	if err != nil {
		t.Fatalf("Archive: %v", err)
	}
	if msg != "Note archived" {
		t.Errorf("message = %q, want fallback %q", msg, "Note archived")
	}
	if _, col, _ := store.Get(42); col != model.CollectionArchived {
		t.Errorf("note in %v, want archived", col)
	}
	if c.Operating(42) {
		t.Error("marker not released after success")
	}
}

func TestServerMessagePreferredOverFallback(t *testing.T) {
	backend := newFakeBackend()
	store := NewStore()
	store.SetNotes(model.CollectionActive, []model.Note{{ID: 1, Title: "t"}})
	c := NewController(backend, store)

	msg, err := c.Edit(context.Background(), 1, "t2", "c")
	if err != nil {
		t.Fatalf("Edit: %v", err)
	}
	if msg != "Server says updated" {
		t.Errorf("message = %q, want server message", msg)
	}
}

func TestSingleFlightBlocksDuplicateTransition(t *testing.T) {
	backend := newFakeBackend()
	backend.started = make(chan struct{})
	backend.release = make(chan struct{})
	store := NewStore()
	store.SetNotes(model.CollectionActive, []model.Note{{ID: 42, Title: "t"}})
	c := NewController(backend, store)

	started := backend.started
	done := make(chan error, 1)
	go func() {
		_, err := c.Archive(context.Background(), 42)
		done <- err
	}()
	<-started

	// Second archive for the same id while the first is in flight.
	_, err := c.Archive(context.Background(), 42)
	if !errors.Is(err, ErrOperationInFlight) {
		t.Errorf("error = %v, want ErrOperationInFlight", err)
	}
	if !c.Operating(42) {
		t.Error("Operating(42) = false during in-flight call")
	}

	close(backend.release)
	if err := <-done; err != nil {
		t.Fatalf("first archive: %v", err)
	}
	if backend.count("archive") != 1 {
		t.Errorf("archive called %d times, want 1", backend.count("archive"))
	}
	if c.Operating(42) {
		t.Error("marker not released")
	}
}

func TestFailureLeavesCollectionsUnchanged(t *testing.T) {
	backend := newFakeBackend()
	backend.fail = errors.New("network down")
	store := NewStore()
	store.SetNotes(model.CollectionActive, []model.Note{{ID: 1, Title: "t"}})
	c := NewController(backend, store)

	_, err := c.Delete(context.Background(), 1)
	if err == nil {
		t.Fatal("expected error")
	}
	if _, col, ok := store.Get(1); !ok || col != model.CollectionActive {
		t.Errorf("note moved despite failure: col=%v ok=%v", col, ok)
	}
	if c.Operating(1) {
		t.Error("marker not released after failure")
	}
}

func TestUnauthorizedTriggersTeardownAndKeepsCollections(t *testing.T) {
	backend := newFakeBackend()
	backend.fail = &api.Error{Status: http.StatusUnauthorized, Message: "Token expired"}
	store := NewStore()
	store.SetNotes(model.CollectionActive, []model.Note{{ID: 1, Title: "a"}})
	store.SetNotes(model.CollectionArchived, []model.Note{{ID: 2, Title: "b"}})
	store.SetNotes(model.CollectionTrash, []model.Note{{ID: 3, Title: "c"}})
	c := NewController(backend, store)

	tornDown := false
	c.OnUnauthorized = func() { tornDown = true }

	_, err := c.Archive(context.Background(), 1)
	if !errors.Is(err, api.ErrUnauthorized) {
		t.Fatalf("error = %v, want ErrUnauthorized", err)
	}
	if !tornDown {
		t.Error("OnUnauthorized not invoked")
	}
	for _, col := range []model.Collection{model.CollectionActive, model.CollectionArchived, model.CollectionTrash} {
		if len(store.Notes(col)) != 1 {
			t.Errorf("%v collection changed on 401", col)
		}
	}
}

func TestDeleteForeverRemovesNote(t *testing.T) {
	backend := newFakeBackend()
	store := NewStore()
	store.SetNotes(model.CollectionTrash, []model.Note{{ID: 9, Title: "t"}})
	c := NewController(backend, store)

	msg, err := c.DeleteForever(context.Background(), 9)
	if err != nil {
		t.Fatalf("DeleteForever: %v", err)
	}
	if msg != "Note permanently deleted" {
		t.Errorf("message = %q", msg)
	}
	if _, _, ok := store.Get(9); ok {
		t.Error("note still present after permanent delete")
	}
}

func TestCreateInsertsIntoActive(t *testing.T) {
	backend := newFakeBackend()
	store := NewStore()
	c := NewController(backend, store)

	note, msg, err := c.Create(context.Background(), "  hello  ", "body", nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if note.Title != "hello" {
		t.Errorf("title = %q, want trimmed", note.Title)
	}
	if msg != "Note created" {
		t.Errorf("message = %q", msg)
	}
	if got := store.Notes(model.CollectionActive); len(got) != 1 || got[0].ID != note.ID {
		t.Errorf("active = %+v", got)
	}
}
