package notes

import (
	"reflect"
	"testing"
	"time"

	"github.com/jparker/inkwell/internal/model"
)

func at(day int) model.Time {
	return model.Time{Time: time.Date(2024, 1, day, 0, 0, 0, 0, time.UTC)}
}

func ids(ns []model.Note) []int {
	out := make([]int, len(ns))
	for i, n := range ns {
		out[i] = n.ID
	}
	return out
}

func TestSortIsStableAndTotal(t *testing.T) {
	// t1=2024-01-01, t2=2024-01-03, t3=2024-01-02.
	ns := []model.Note{
		{ID: 1, CreatedAt: at(1)},
		{ID: 2, CreatedAt: at(3)},
		{ID: 3, CreatedAt: at(2)},
	}

	newest := Filter(ns, nil, "", model.SortNewest)
	if got := ids(newest); !reflect.DeepEqual(got, []int{2, 3, 1}) {
		t.Errorf("newest = %v, want [2 3 1]", got)
	}

	oldest := Filter(ns, nil, "", model.SortOldest)
	if got := ids(oldest); !reflect.DeepEqual(got, []int{1, 3, 2}) {
		t.Errorf("oldest = %v, want [1 3 2]", got)
	}

	// Ties keep original relative order.
	tied := []model.Note{
		{ID: 10, CreatedAt: at(1)},
		{ID: 11, CreatedAt: at(1)},
		{ID: 12, CreatedAt: at(1)},
	}
	if got := ids(Filter(tied, nil, "", model.SortNewest)); !reflect.DeepEqual(got, []int{10, 11, 12}) {
		t.Errorf("tied = %v, want original order", got)
	}
}

func TestTagFilterIsUnionNotIntersection(t *testing.T) {
	work := model.Tag{ID: 1, Name: "work"}
	home := model.Tag{ID: 2, Name: "home"}
	ns := []model.Note{
		{ID: 1, CreatedAt: at(1), Tags: []model.Tag{work}},
		{ID: 2, CreatedAt: at(2), Tags: []model.Tag{home}},
		{ID: 3, CreatedAt: at(3), Tags: []model.Tag{work, home}},
		{ID: 4, CreatedAt: at(4)},
	}

	got := ids(Filter(ns, []int{1, 2}, "", model.SortOldest))
	if !reflect.DeepEqual(got, []int{1, 2, 3}) {
		t.Errorf("filtered = %v, want [1 2 3]", got)
	}
}

func TestSearchMatchesTitleContentAndTagNames(t *testing.T) {
	ns := []model.Note{
		{ID: 1, CreatedAt: at(1), Title: "Groceries", Content: "milk"},
		{ID: 2, CreatedAt: at(2), Title: "Meeting", Content: "discuss groceries budget"},
		{ID: 3, CreatedAt: at(3), Title: "Other", Tags: []model.Tag{{ID: 1, Name: "groceries"}}},
		{ID: 4, CreatedAt: at(4), Title: "Unrelated", Content: "nothing"},
	}

	tests := []struct {
		query string
		want  []int
	}{
		{"GROCERIES", []int{1, 2, 3}},
		{"  milk  ", []int{1}},
		{"groc", []int{1, 2, 3}}, // substring, not exact
		{"", []int{1, 2, 3, 4}},
		{"zzz", []int{}},
	}

	for _, tt := range tests {
		got := ids(Filter(ns, nil, tt.query, model.SortOldest))
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Filter(query=%q) = %v, want %v", tt.query, got, tt.want)
		}
	}
}

func TestFilterIsPure(t *testing.T) {
	ns := []model.Note{
		{ID: 1, CreatedAt: at(2), Title: "b"},
		{ID: 2, CreatedAt: at(1), Title: "a"},
	}
	original := ids(ns)

	first := Filter(ns, nil, "", model.SortNewest)
	second := Filter(ns, nil, "", model.SortNewest)
	if !reflect.DeepEqual(ids(first), ids(second)) {
		t.Error("same inputs gave different outputs")
	}
	if got := ids(ns); !reflect.DeepEqual(got, original) {
		t.Errorf("input mutated: %v", got)
	}
}
