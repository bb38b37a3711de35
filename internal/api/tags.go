package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jparker/inkwell/internal/model"
)

type tagEnvelope struct {
	Tag     model.Tag `json:"tag"`
	Message string    `json:"message"`
}

// ListTags returns the global tag set, name-sorted by the backend.
func (c *Client) ListTags(ctx context.Context) ([]model.Tag, error) {
	var env struct {
		Tags []model.Tag `json:"tags"`
	}
	if err := c.do(ctx, http.MethodGet, "/tags", nil, &env); err != nil {
		return nil, err
	}
	return env.Tags, nil
}

// CreateTag creates a global tag. The backend rejects names that collide
// case-insensitively with an existing tag.
func (c *Client) CreateTag(ctx context.Context, name string) (model.Tag, error) {
	var env tagEnvelope
	err := c.do(ctx, http.MethodPost, "/tags", map[string]string{"name": name}, &env)
	return env.Tag, err
}

// RenameTag changes a tag's name in place; the id is stable.
func (c *Client) RenameTag(ctx context.Context, id int, name string) (model.Tag, error) {
	var env tagEnvelope
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/tags/%d", id), map[string]string{"name": name}, &env)
	return env.Tag, err
}

// DeleteTag removes a tag globally, detaching it from every note.
func (c *Client) DeleteTag(ctx context.Context, id int) (string, error) {
	var env statusEnvelope
	err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/tags/%d", id), nil, &env)
	return env.Message, err
}

// AttachTag links an existing tag to a note.
func (c *Client) AttachTag(ctx context.Context, noteID, tagID int) error {
	payload := map[string]int{"tag_id": tagID}
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/notes/%d/tags", noteID), payload, nil)
}

// DetachTag removes a tag from a single note without deleting it globally.
func (c *Client) DetachTag(ctx context.Context, noteID, tagID int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/notes/%d/tags/%d", noteID, tagID), nil, nil)
}
