package state

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// State holds persistent user preferences.
type State struct {
	SortOrder string `json:"sortOrder"` // "newest" or "oldest"

	// List pane width as a percentage of the note area (0 = use default)
	ListPaneWidth int `json:"listPaneWidth,omitempty"`

	// Tag ids selected in the sidebar filter, restored across runs
	SelectedTagIDs []int `json:"selectedTagIds,omitempty"`
}

var (
	current *State
	mu      sync.RWMutex
	path    string
)

// Init loads state from the default location.
func Init() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	return InitWithDir(filepath.Join(home, ".config", "inkwell"))
}

// InitWithDir loads state from a specified directory.
// This is primarily for testing to avoid reading real user state.
func InitWithDir(dir string) error {
	path = filepath.Join(dir, "state.json")
	return Load()
}

// Load reads state from disk.
func Load() error {
	mu.Lock()
	defer mu.Unlock()

	current = &State{
		SortOrder: "newest", // default
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil // no state file yet, use defaults
	}
	if err != nil {
		return err
	}

	return json.Unmarshal(data, current)
}

// Save writes state to disk.
func Save() error {
	mu.RLock()
	defer mu.RUnlock()

	if current == nil {
		return nil
	}

	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(current, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// GetSortOrder returns the saved sort order.
func GetSortOrder() string {
	mu.RLock()
	defer mu.RUnlock()
	if current == nil {
		return "newest"
	}
	return current.SortOrder
}

// SetSortOrder saves the sort order preference.
func SetSortOrder(order string) error {
	mu.Lock()
	if current == nil {
		current = &State{}
	}
	current.SortOrder = order
	mu.Unlock()
	return Save()
}

// GetListPaneWidth returns the saved list pane width.
// Returns 0 if no preference is saved (use default).
func GetListPaneWidth() int {
	mu.RLock()
	defer mu.RUnlock()
	if current == nil {
		return 0
	}
	return current.ListPaneWidth
}

// SetListPaneWidth saves the list pane width.
func SetListPaneWidth(width int) error {
	mu.Lock()
	if current == nil {
		current = &State{}
	}
	current.ListPaneWidth = width
	mu.Unlock()
	return Save()
}

// GetSelectedTagIDs returns the saved sidebar tag filter selection.
func GetSelectedTagIDs() []int {
	mu.RLock()
	defer mu.RUnlock()
	if current == nil {
		return nil
	}
	out := make([]int, len(current.SelectedTagIDs))
	copy(out, current.SelectedTagIDs)
	return out
}

// SetSelectedTagIDs saves the sidebar tag filter selection.
func SetSelectedTagIDs(ids []int) error {
	mu.Lock()
	if current == nil {
		current = &State{}
	}
	current.SelectedTagIDs = append([]int(nil), ids...)
	mu.Unlock()
	return Save()
}
