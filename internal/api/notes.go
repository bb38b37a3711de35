package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jparker/inkwell/internal/model"
)

// noteEnvelope wraps single-note responses.
type noteEnvelope struct {
	Note    model.Note `json:"note"`
	Message string     `json:"message"`
}

// listEnvelope wraps collection responses.
type listEnvelope struct {
	Notes []model.Note `json:"notes"`
}

// statusEnvelope wraps success/message responses from lifecycle calls.
type statusEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ListNotes returns the active (non-archived, non-trashed) collection.
func (c *Client) ListNotes(ctx context.Context) ([]model.Note, error) {
	var env listEnvelope
	if err := c.do(ctx, http.MethodGet, "/notes", nil, &env); err != nil {
		return nil, err
	}
	return env.Notes, nil
}

// ListArchivedNotes returns the archived collection.
func (c *Client) ListArchivedNotes(ctx context.Context) ([]model.Note, error) {
	var env listEnvelope
	if err := c.do(ctx, http.MethodGet, "/notes/archived", nil, &env); err != nil {
		return nil, err
	}
	return env.Notes, nil
}

// ListTrashedNotes returns the soft-deleted collection.
func (c *Client) ListTrashedNotes(ctx context.Context) ([]model.Note, error) {
	var env listEnvelope
	if err := c.do(ctx, http.MethodGet, "/notes/trash", nil, &env); err != nil {
		return nil, err
	}
	return env.Notes, nil
}

// CreateNote creates a note with an optional initial tag id list.
func (c *Client) CreateNote(ctx context.Context, title, content string, tagIDs []int) (model.Note, string, error) {
	if tagIDs == nil {
		tagIDs = []int{}
	}
	payload := map[string]any{
		"title":   title,
		"content": content,
		"tag_ids": tagIDs,
	}
	var env noteEnvelope
	err := c.do(ctx, http.MethodPost, "/notes", payload, &env)
	return env.Note, env.Message, err
}

// UpdateNote replaces a note's title and content.
func (c *Client) UpdateNote(ctx context.Context, id int, title, content string) (model.Note, string, error) {
	payload := map[string]string{"title": title, "content": content}
	var env noteEnvelope
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/notes/%d", id), payload, &env)
	return env.Note, env.Message, err
}

// DeleteNote soft-deletes a note, moving it to the trash collection.
func (c *Client) DeleteNote(ctx context.Context, id int) (string, error) {
	var env statusEnvelope
	err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/notes/%d", id), nil, &env)
	return env.Message, err
}

// ArchiveNote moves an active note to the archived collection.
func (c *Client) ArchiveNote(ctx context.Context, id int) (string, error) {
	var env statusEnvelope
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/notes/%d/archive", id), nil, &env)
	return env.Message, err
}

// UnarchiveNote moves an archived note back to the active collection.
func (c *Client) UnarchiveNote(ctx context.Context, id int) (string, error) {
	var env statusEnvelope
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/notes/%d/unarchive", id), nil, &env)
	return env.Message, err
}

// RecoverNote moves a trashed note back to the active collection.
func (c *Client) RecoverNote(ctx context.Context, id int) (string, error) {
	var env statusEnvelope
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/notes/%d/recover", id), nil, &env)
	return env.Message, err
}

// PurgeNote permanently deletes a trashed note. Irreversible.
func (c *Client) PurgeNote(ctx context.Context, id int) (string, error) {
	var env statusEnvelope
	err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/notes/%d/permanent", id), nil, &env)
	return env.Message, err
}
