package notes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/jparker/inkwell/internal/api"
	"github.com/jparker/inkwell/internal/model"
)

// ErrTitleRequired is returned by create and edit before any network
// call when the trimmed title is empty.
var ErrTitleRequired = errors.New("Title cannot be empty")

// ErrOperationInFlight is returned when a lifecycle transition is
// requested for a note that already has one in flight.
var ErrOperationInFlight = errors.New("operation already in progress for this note")

// Backend is the slice of the API the controller needs.
type Backend interface {
	CreateNote(ctx context.Context, title, content string, tagIDs []int) (model.Note, string, error)
	UpdateNote(ctx context.Context, id int, title, content string) (model.Note, string, error)
	DeleteNote(ctx context.Context, id int) (string, error)
	ArchiveNote(ctx context.Context, id int) (string, error)
	UnarchiveNote(ctx context.Context, id int) (string, error)
	RecoverNote(ctx context.Context, id int) (string, error)
	PurgeNote(ctx context.Context, id int) (string, error)
}

// Controller drives note lifecycle transitions. Each transition is
// single-flight per note id: while one is in flight, further requests
// for the same id fail fast with ErrOperationInFlight. Collections are
// only mutated after the backend confirms, so a failed call leaves the
// store exactly as it was.
type Controller struct {
	Backend Backend
	Store   *Store

	// OnUnauthorized fires when any call comes back 401, before the
	// error is returned. The session must be torn down; collections are
	// deliberately left untouched.
	OnUnauthorized func()

	mu       sync.Mutex
	inflight map[int]bool
}

// NewController wires a controller to its backend and store.
func NewController(backend Backend, store *Store) *Controller {
	return &Controller{
		Backend:  backend,
		Store:    store,
		inflight: make(map[int]bool),
	}
}

// Operating reports whether a transition for the note id is in flight.
// Views use it to disable the note's action buttons.
func (c *Controller) Operating(id int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inflight[id]
}

// begin claims the single-flight marker for id. The returned release
// must run on every exit path.
func (c *Controller) begin(id int) (release func(), err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inflight[id] {
		return nil, ErrOperationInFlight
	}
	c.inflight[id] = true
	return func() {
		c.mu.Lock()
		delete(c.inflight, id)
		c.mu.Unlock()
	}, nil
}

// check routes 401s to session teardown and passes the error through.
func (c *Controller) check(err error, action string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, api.ErrUnauthorized) {
		if c.OnUnauthorized != nil {
			c.OnUnauthorized()
		}
		return err
	}
	return fmt.Errorf("%s: %w", action, err)
}

// Create makes a new active note. The trimmed title must be non-empty;
// validation failures never reach the network.
func (c *Controller) Create(ctx context.Context, title, content string, tagIDs []int) (model.Note, string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return model.Note{}, "", ErrTitleRequired
	}

	note, msg, err := c.Backend.CreateNote(ctx, title, content, tagIDs)
	if err := c.check(err, "create note"); err != nil {
		return model.Note{}, "", err
	}
	c.Store.Insert(model.CollectionActive, note)
	return note, fallback(msg, "Note created"), nil
}

// Edit updates a note's title and content in place.
func (c *Controller) Edit(ctx context.Context, id int, title, content string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", ErrTitleRequired
	}

	release, err := c.begin(id)
	if err != nil {
		return "", err
	}
	defer release()

	note, msg, err := c.Backend.UpdateNote(ctx, id, title, content)
	if err := c.check(err, "update note"); err != nil {
		return "", err
	}
	c.Store.Update(note)
	return fallback(msg, "Note updated"), nil
}

// Archive moves an active note to the archived collection.
func (c *Controller) Archive(ctx context.Context, id int) (string, error) {
	return c.transition(ctx, id, "archive note", "Note archived", model.CollectionArchived, c.Backend.ArchiveNote)
}

// Unarchive moves an archived note back to the active collection.
func (c *Controller) Unarchive(ctx context.Context, id int) (string, error) {
	return c.transition(ctx, id, "unarchive note", "Note unarchived", model.CollectionActive, c.Backend.UnarchiveNote)
}

// Delete soft-deletes a note from the active or archived collection,
// moving it to trash.
func (c *Controller) Delete(ctx context.Context, id int) (string, error) {
	return c.transition(ctx, id, "delete note", "Note moved to trash", model.CollectionTrash, c.Backend.DeleteNote)
}

// Recover moves a trashed note back to the active collection.
func (c *Controller) Recover(ctx context.Context, id int) (string, error) {
	return c.transition(ctx, id, "recover note", "Note recovered", model.CollectionActive, c.Backend.RecoverNote)
}

// DeleteForever permanently deletes a trashed note. The note vanishes
// from all collections; there is no destination.
func (c *Controller) DeleteForever(ctx context.Context, id int) (string, error) {
	release, err := c.begin(id)
	if err != nil {
		return "", err
	}
	defer release()

	msg, err := c.Backend.PurgeNote(ctx, id)
	if err := c.check(err, "permanently delete note"); err != nil {
		return "", err
	}
	c.Store.Remove(id)
	return fallback(msg, "Note permanently deleted"), nil
}

// transition runs one single-flight collection move.
func (c *Controller) transition(ctx context.Context, id int, action, defaultMsg string, to model.Collection, call func(context.Context, int) (string, error)) (string, error) {
	release, err := c.begin(id)
	if err != nil {
		return "", err
	}
	defer release()

	msg, err := call(ctx, id)
	if err := c.check(err, action); err != nil {
		return "", err
	}
	c.Store.Move(id, to)
	return fallback(msg, defaultMsg), nil
}

// fallback prefers the server's message over the deterministic default.
func fallback(msg, def string) string {
	if msg != "" {
		return msg
	}
	return def
}
