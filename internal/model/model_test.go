package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestTimeUnmarshal(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{
			name:  "rfc3339",
			input: `"2024-01-02T15:04:05Z"`,
			want:  time.Date(2024, 1, 2, 15, 4, 5, 0, time.UTC),
		},
		{
			name:  "bare iso without offset",
			input: `"2024-01-02T15:04:05"`,
			want:  time.Date(2024, 1, 2, 15, 4, 5, 0, time.UTC),
		},
		{
			name:  "bare iso with microseconds",
			input: `"2024-01-02T15:04:05.123456"`,
			want:  time.Date(2024, 1, 2, 15, 4, 5, 123456000, time.UTC),
		},
		{
			name:  "null",
			input: `null`,
			want:  time.Time{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Time
			if err := json.Unmarshal([]byte(tt.input), &got); err != nil {
				t.Fatalf("unmarshal %s: %v", tt.input, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("got %v, want %v", got.Time, tt.want)
			}
		})
	}
}

func TestTimeUnmarshalRejectsGarbage(t *testing.T) {
	var ts Time
	if err := json.Unmarshal([]byte(`"yesterday"`), &ts); err == nil {
		t.Error("expected error for unparseable timestamp")
	}
}

func TestNoteUnmarshal(t *testing.T) {
	raw := `{
		"id": 7,
		"title": "groceries",
		"content": "milk",
		"created_at": "2024-03-01T09:00:00.500000",
		"updated_at": "2024-03-01T09:30:00",
		"is_archived": false,
		"tags": [{"id": 2, "name": "home"}]
	}`

	var n Note
	if err := json.Unmarshal([]byte(raw), &n); err != nil {
		t.Fatalf("unmarshal note: %v", err)
	}
	if n.ID != 7 || n.Title != "groceries" {
		t.Errorf("unexpected note: %+v", n)
	}
	if len(n.Tags) != 1 || n.Tags[0].Name != "home" {
		t.Errorf("unexpected tags: %+v", n.Tags)
	}
	if !n.HasTag(2) {
		t.Error("HasTag(2) = false, want true")
	}
	if n.HasTag(3) {
		t.Error("HasTag(3) = true, want false")
	}
	if !n.HasTagNamed("HOME") {
		t.Error("HasTagNamed should be case-insensitive")
	}
}

func TestTagNameEquals(t *testing.T) {
	tag := Tag{ID: 1, Name: "Work"}
	if !tag.NameEquals("work") {
		t.Error(`NameEquals("work") = false, want true`)
	}
	if tag.NameEquals("homework") {
		t.Error(`NameEquals("homework") = true, want false`)
	}
}

func TestTagPending(t *testing.T) {
	if (Tag{ID: 4, Name: "x"}).Pending() {
		t.Error("tag with id should not be pending")
	}
	if !(Tag{Name: "x"}).Pending() {
		t.Error("tag without id should be pending")
	}
}

func TestSortOrderToggle(t *testing.T) {
	if SortNewest.Toggle() != SortOldest {
		t.Error("newest should toggle to oldest")
	}
	if SortOldest.Toggle() != SortNewest {
		t.Error("oldest should toggle to newest")
	}
}

func TestCollectionString(t *testing.T) {
	tests := []struct {
		col  Collection
		want string
	}{
		{CollectionActive, "Active"},
		{CollectionArchived, "Archived"},
		{CollectionTrash, "Trash"},
	}
	for _, tt := range tests {
		if got := tt.col.String(); got != tt.want {
			t.Errorf("Collection(%d).String() = %q, want %q", tt.col, got, tt.want)
		}
	}
}
