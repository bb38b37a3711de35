package model

import (
	"fmt"
	"strings"
	"time"
)

// Tag is a named label shared across notes. ID is assigned by the server;
// a zero ID marks a tag that has been proposed locally but not created yet.
type Tag struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Pending reports whether the tag exists only locally.
func (t Tag) Pending() bool { return t.ID == 0 }

// NameEquals compares tag names case-insensitively, which is how the
// backend deduplicates them.
func (t Tag) NameEquals(name string) bool {
	return strings.EqualFold(t.Name, name)
}

// Note is a single note as served by the backend.
type Note struct {
	ID         int    `json:"id"`
	Title      string `json:"title"`
	Content    string `json:"content"`
	CreatedAt  Time   `json:"created_at"`
	UpdatedAt  Time   `json:"updated_at"`
	IsArchived bool   `json:"is_archived"`
	Tags       []Tag  `json:"tags"`
}

// HasTag reports whether the note carries the given tag id.
func (n Note) HasTag(tagID int) bool {
	for _, t := range n.Tags {
		if t.ID == tagID {
			return true
		}
	}
	return false
}

// HasTagNamed reports whether the note carries a tag with the given name,
// compared case-insensitively.
func (n Note) HasTagNamed(name string) bool {
	for _, t := range n.Tags {
		if t.NameEquals(name) {
			return true
		}
	}
	return false
}

// User identifies the authenticated account.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// SortOrder selects list ordering by creation time.
type SortOrder string

const (
	SortNewest SortOrder = "newest"
	SortOldest SortOrder = "oldest"
)

// Toggle flips between newest and oldest.
func (s SortOrder) Toggle() SortOrder {
	if s == SortOldest {
		return SortNewest
	}
	return SortOldest
}

// Collection identifies which of the three disjoint note lists a note
// belongs to.
type Collection int

const (
	CollectionActive Collection = iota
	CollectionArchived
	CollectionTrash
)

// String returns the display name for the collection.
func (c Collection) String() string {
	switch c {
	case CollectionArchived:
		return "Archived"
	case CollectionTrash:
		return "Trash"
	default:
		return "Active"
	}
}

// Time wraps time.Time to accept the backend's timestamp format. The
// server serializes datetimes as bare ISO 8601 without a zone offset
// ("2024-01-02T15:04:05.999999"), which strict RFC 3339 parsing rejects.
type Time struct {
	time.Time
}

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
}

// UnmarshalJSON parses a timestamp in any of the accepted layouts.
// Null and empty strings decode to the zero time.
func (t *Time) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range timeLayouts {
		parsed, err := time.Parse(layout, s)
		if err == nil {
			t.Time = parsed.UTC()
			return nil
		}
	}
	return fmt.Errorf("unsupported timestamp %q", s)
}

// MarshalJSON emits RFC 3339, which the backend accepts.
func (t Time) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.UTC().Format(time.RFC3339Nano) + `"`), nil
}
