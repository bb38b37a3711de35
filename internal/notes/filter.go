package notes

import (
	"sort"
	"strings"

	"github.com/jparker/inkwell/internal/model"
)

// Filter computes the display list for a collection: tag filter (OR over
// selected ids), then free-text search (substring of title, content or
// any tag name, case-folded), then a stable sort by creation time. Pure:
// the input slice is never mutated and equal inputs yield equal outputs.
func Filter(ns []model.Note, selectedTagIDs []int, query string, order model.SortOrder) []model.Note {
	out := make([]model.Note, 0, len(ns))
	for _, n := range ns {
		out = append(out, n)
	}

	if len(selectedTagIDs) > 0 {
		out = keep(out, func(n model.Note) bool {
			for _, id := range selectedTagIDs {
				if n.HasTag(id) {
					return true
				}
			}
			return false
		})
	}

	if q := strings.ToLower(strings.TrimSpace(query)); q != "" {
		out = keep(out, func(n model.Note) bool {
			if strings.Contains(strings.ToLower(n.Title), q) ||
				strings.Contains(strings.ToLower(n.Content), q) {
				return true
			}
			for _, t := range n.Tags {
				if strings.Contains(strings.ToLower(t.Name), q) {
					return true
				}
			}
			return false
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].CreatedAt.Time, out[j].CreatedAt.Time
		if order == model.SortOldest {
			return a.Before(b)
		}
		return b.Before(a)
	})
	return out
}

func keep(ns []model.Note, pred func(model.Note) bool) []model.Note {
	kept := ns[:0]
	for _, n := range ns {
		if pred(n) {
			kept = append(kept, n)
		}
	}
	return kept
}
