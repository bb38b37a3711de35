package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, func() string { return "test-token" }, 5*time.Second)
}

func TestBearerHeader(t *testing.T) {
	var got string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]any{"notes": []any{}})
	})

	if _, err := c.ListNotes(context.Background()); err != nil {
		t.Fatalf("ListNotes: %v", err)
	}
	if got != "Bearer test-token" {
		t.Errorf("Authorization = %q, want %q", got, "Bearer test-token")
	}
}

func TestNoHeaderWithoutToken(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]any{"notes": []any{}})
	}))
	defer srv.Close()

	c := New(srv.URL, func() string { return "" }, 5*time.Second)
	if _, err := c.ListNotes(context.Background()); err != nil {
		t.Fatalf("ListNotes: %v", err)
	}
	if got != "" {
		t.Errorf("Authorization = %q, want empty", got)
	}
}

func TestListNotesDecodesEnvelope(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/notes" || r.Method != http.MethodGet {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.Write([]byte(`{"notes":[
			{"id":1,"title":"First","content":"body","created_at":"2026-03-01T10:00:00.123456","is_archived":false,"tags":[{"id":3,"name":"work"}]},
			{"id":2,"title":"Second","content":"","created_at":"2026-03-02T10:00:00","is_archived":false,"tags":[]}
		]}`))
	})

	notes, err := c.ListNotes(context.Background())
	if err != nil {
		t.Fatalf("ListNotes: %v", err)
	}
	if len(notes) != 2 {
		t.Fatalf("len(notes) = %d, want 2", len(notes))
	}
	if notes[0].Title != "First" || len(notes[0].Tags) != 1 || notes[0].Tags[0].Name != "work" {
		t.Errorf("first note decoded wrong: %+v", notes[0])
	}
	if notes[0].CreatedAt.IsZero() {
		t.Error("created_at not decoded")
	}
}

func TestCreateNoteSendsEmptyTagList(t *testing.T) {
	var payload map[string]json.RawMessage
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decode payload: %v", err)
		}
		w.Write([]byte(`{"note":{"id":7,"title":"t","content":"c","tags":[]},"message":"Note created"}`))
	})

	note, msg, err := c.CreateNote(context.Background(), "t", "c", nil)
	if err != nil {
		t.Fatalf("CreateNote: %v", err)
	}
	if string(payload["tag_ids"]) != "[]" {
		t.Errorf("tag_ids payload = %s, want []", payload["tag_ids"])
	}
	if note.ID != 7 || msg != "Note created" {
		t.Errorf("got note %d message %q", note.ID, msg)
	}
}

func TestLifecycleRoutes(t *testing.T) {
	tests := []struct {
		name       string
		call       func(c *Client) (string, error)
		wantMethod string
		wantPath   string
	}{
		{"archive", func(c *Client) (string, error) { return c.ArchiveNote(context.Background(), 5) }, http.MethodPut, "/notes/5/archive"},
		{"unarchive", func(c *Client) (string, error) { return c.UnarchiveNote(context.Background(), 5) }, http.MethodPut, "/notes/5/unarchive"},
		{"recover", func(c *Client) (string, error) { return c.RecoverNote(context.Background(), 5) }, http.MethodPut, "/notes/5/recover"},
		{"delete", func(c *Client) (string, error) { return c.DeleteNote(context.Background(), 5) }, http.MethodDelete, "/notes/5"},
		{"purge", func(c *Client) (string, error) { return c.PurgeNote(context.Background(), 5) }, http.MethodDelete, "/notes/5/permanent"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var method, path string
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				method, path = r.Method, r.URL.Path
				w.Write([]byte(`{"success":true,"message":"done"}`))
			})
			msg, err := tt.call(c)
			if err != nil {
				t.Fatalf("call: %v", err)
			}
			if method != tt.wantMethod || path != tt.wantPath {
				t.Errorf("request = %s %s, want %s %s", method, path, tt.wantMethod, tt.wantPath)
			}
			if msg != "done" {
				t.Errorf("message = %q, want %q", msg, "done")
			}
		})
	}
}

func TestAttachDetachRoutes(t *testing.T) {
	var method, path, body string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		raw := make([]byte, 256)
		n, _ := r.Body.Read(raw)
		body = string(raw[:n])
		w.Write([]byte(`{}`))
	})

	if err := c.AttachTag(context.Background(), 4, 9); err != nil {
		t.Fatalf("AttachTag: %v", err)
	}
	if method != http.MethodPost || path != "/notes/4/tags" {
		t.Errorf("attach request = %s %s", method, path)
	}
	if body != `{"tag_id":9}`+"\n" && body != `{"tag_id":9}` {
		t.Errorf("attach body = %q", body)
	}

	if err := c.DetachTag(context.Background(), 4, 9); err != nil {
		t.Fatalf("DetachTag: %v", err)
	}
	if method != http.MethodDelete || path != "/notes/4/tags/9" {
		t.Errorf("detach request = %s %s", method, path)
	}
}

func TestServerErrorMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"error":"Tag already exists"}`))
	})

	_, err := c.CreateTag(context.Background(), "work")
	if err == nil {
		t.Fatal("expected error")
	}
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T, want *Error", err)
	}
	if apiErr.Status != http.StatusConflict || apiErr.Message != "Tag already exists" {
		t.Errorf("error = %+v", apiErr)
	}
	if got := ServerMessage(err); got != "Tag already exists" {
		t.Errorf("ServerMessage = %q", got)
	}
}

func TestUnauthorizedMatchesSentinel(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"Token expired"}`))
	})

	_, err := c.ListNotes(context.Background())
	if !errors.Is(err, ErrUnauthorized) {
		t.Errorf("errors.Is(err, ErrUnauthorized) = false for %v", err)
	}

	other := &Error{Status: http.StatusInternalServerError}
	if errors.Is(other, ErrUnauthorized) {
		t.Error("500 error should not match ErrUnauthorized")
	}
}

func TestErrorWithoutBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := c.ListNotes(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if got := err.Error(); got != "server returned status 502" {
		t.Errorf("error = %q", got)
	}
	if got := ServerMessage(err); got != "" {
		t.Errorf("ServerMessage = %q, want empty", got)
	}
}

func TestLoginDecodesCredentials(t *testing.T) {
	c := New("", nil, 0)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Write([]byte(`{"token":"abc123","user":{"id":1,"username":"ada","email":"ada@example.com"}}`))
	}))
	defer srv.Close()
	c.baseURL = srv.URL

	creds, err := c.Login(context.Background(), "ada@example.com", "pw")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if creds.Token != "abc123" || creds.User.Username != "ada" {
		t.Errorf("creds = %+v", creds)
	}
}
