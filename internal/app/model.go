// Package app wires the note store, tag registry and backend client into
// the Bubble Tea model that drives the whole TUI.
package app

import (
	"github.com/cespare/xxhash/v2"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/jparker/inkwell/internal/api"
	"github.com/jparker/inkwell/internal/config"
	"github.com/jparker/inkwell/internal/model"
	"github.com/jparker/inkwell/internal/msg"
	"github.com/jparker/inkwell/internal/notes"
	"github.com/jparker/inkwell/internal/session"
	"github.com/jparker/inkwell/internal/state"
	"github.com/jparker/inkwell/internal/tags"
	"github.com/jparker/inkwell/internal/version"
)

// ViewMode selects the top-level screen.
type ViewMode int

const (
	ModeLogin ViewMode = iota
	ModeSignup
	ModeNotes
	ModeCompose // creating a new note
	ModeEdit    // editing an existing note
)

// dialogKind identifies the dialog floating over the notes view.
// At most one dialog is open at a time.
type dialogKind int

const (
	dialogNone dialogKind = iota
	dialogAddTag
	dialogNoteTags
	dialogRenameTag
	dialogConfirm
	dialogPassword
)

// confirmAction identifies what the confirm dialog commits.
type confirmAction int

const (
	confirmNone confirmAction = iota
	confirmDelete
	confirmPurge
	confirmDeleteTagGlobal
	confirmDiscardEdit
	confirmQuit
)

// addTagFocus selects the active area inside the add-tag dialog.
type addTagFocus int

const (
	focusExistingList addTagFocus = iota
	focusNewTagInput
	focusPendingList
)

// Model is the root Bubble Tea model for the inkwell application.
type Model struct {
	cfg        *config.Config
	client     *api.Client
	session    *session.Store
	store      *notes.Store
	ctrl       *notes.Controller
	registry   *tags.Registry
	reconciler *tags.Reconciler
	appVersion string

	// epoch increments on every session teardown. Result messages carry
	// the epoch they were issued under; older ones are dropped on arrival.
	epoch int

	mode       ViewMode
	collection model.Collection
	width      int
	height     int
	ready      bool

	// Auth forms
	emailInput    textinput.Model
	passwordInput textinput.Model
	usernameInput textinput.Model // signup only
	formFocus     int
	formErr       string
	authBusy      bool
	user          model.User

	// List state
	cursor    int
	scrollOff int

	// Search, sort, tag filter
	searchInput    textinput.Model
	searching      bool
	sortOrder      model.SortOrder
	selectedTagIDs []int
	sidebarFocus   bool
	sidebarCursor  int
	listPaneWidth  int // percentage of the note area given to the list

	// Compose/edit buffer
	titleInput   textinput.Model
	bodyArea     textarea.Model
	editID       int    // 0 while composing a new note
	editDigest   uint64 // buffer hash at open, for dirty detection
	composeFocus int    // 0=title, 1=body

	// Dialogs
	dialog        dialogKind
	dialogErr     string
	dialogNoteID  int
	pending       *tags.PendingSet
	tagNameInput  textinput.Model
	tagFocus      addTagFocus
	existingIdx   int
	pendingIdx    int
	noteTagIdx    int
	renameInput   textinput.Model
	renameTagID   int
	oldPassInput  textinput.Model
	newPassInput  textinput.Model
	passFocus     int
	confirm       confirmAction
	confirmNoteID int
	confirmTagID  int
	confirmFocus  bool // true = confirm button focused

	// Toast
	toast     msg.ToastMsg
	showToast bool

	// Footer notice when a newer release exists
	updateInfo *version.UpdateAvailableMsg

	keys keyMap
}

// New creates the root model. The API client reads its token through the
// injected session store, so a persisted login is picked up automatically.
func New(cfg *config.Config, sess *session.Store, appVersion string) Model {
	client := api.New(cfg.Server.URL, sess.Token, cfg.Server.Timeout)
	store := notes.NewStore()
	registry := tags.NewRegistry(nil)

	m := Model{
		cfg:        cfg,
		client:     client,
		session:    sess,
		store:      store,
		ctrl:       notes.NewController(client, store),
		registry:   registry,
		reconciler: &tags.Reconciler{Backend: client, Registry: registry},
		appVersion: appVersion,
		keys:       defaultKeyMap(),
	}

	m.emailInput = newInput("email", 0)
	m.passwordInput = newInput("password", '•')
	m.usernameInput = newInput("username", 0)
	m.searchInput = newInput("search notes...", 0)
	m.titleInput = newInput("title", 0)
	m.tagNameInput = newInput("new tag name", 0)
	m.renameInput = newInput("tag name", 0)
	m.oldPassInput = newInput("current password", '•')
	m.newPassInput = newInput("new password", '•')

	m.bodyArea = textarea.New()
	m.bodyArea.Placeholder = "write something..."
	m.bodyArea.CharLimit = 0

	m.sortOrder = model.SortOrder(state.GetSortOrder())
	if m.sortOrder != model.SortNewest && m.sortOrder != model.SortOldest {
		m.sortOrder = model.SortOrder(m.cfg.UI.DefaultSort)
	}
	m.selectedTagIDs = state.GetSelectedTagIDs()
	m.listPaneWidth = clampPaneWidth(state.GetListPaneWidth())

	if sess.Active() {
		m.mode = ModeNotes
		m.user = sess.User()
	} else {
		m.mode = ModeLogin
		m.emailInput.Focus()
	}
	return m
}

func newInput(placeholder string, echo rune) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = 256
	if echo != 0 {
		in.EchoMode = textinput.EchoPassword
		in.EchoCharacter = echo
	}
	return in
}

// Init kicks off the initial fetches plus the background update check.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		textinput.Blink,
		version.CheckAsync(m.appVersion),
	}
	if m.mode == ModeNotes {
		cmds = append(cmds, m.loadAllCmds()...)
	}
	return tea.Batch(cmds...)
}

// visibleNotes applies the filter pipeline to the current collection. The
// sidebar tag filter only applies to the active view, where the filter UI
// lives; search and sort apply everywhere.
func (m *Model) visibleNotes() []model.Note {
	tagIDs := m.selectedTagIDs
	if m.collection != model.CollectionActive {
		tagIDs = nil
	}
	return notes.Filter(m.store.Notes(m.collection), tagIDs, m.searchInput.Value(), m.sortOrder)
}

// selectedNote returns the note under the cursor, if any.
func (m *Model) selectedNote() (model.Note, bool) {
	visible := m.visibleNotes()
	if m.cursor < 0 || m.cursor >= len(visible) {
		return model.Note{}, false
	}
	return visible[m.cursor], true
}

// clampCursor keeps the cursor inside the visible list after a filter or
// collection change.
func (m *Model) clampCursor() {
	n := len(m.visibleNotes())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.scrollOff > m.cursor {
		m.scrollOff = m.cursor
	}
}

// clampPaneWidth keeps the list pane percentage usable; zero (no saved
// preference) falls back to an even split.
func clampPaneWidth(pct int) int {
	if pct == 0 {
		return 50
	}
	if pct < 20 {
		return 20
	}
	if pct > 80 {
		return 80
	}
	return pct
}

// bufferDigest hashes the edit buffer for dirty detection.
func bufferDigest(title, body string) uint64 {
	d := xxhash.New()
	d.WriteString(title)
	d.Write([]byte{0})
	d.WriteString(body)
	return d.Sum64()
}

// dirty reports whether the compose/edit buffer differs from its state
// when it was opened.
func (m *Model) dirty() bool {
	return bufferDigest(m.titleInput.Value(), m.bodyArea.Value()) != m.editDigest
}

// openCompose opens a blank compose buffer.
func (m *Model) openCompose() {
	m.mode = ModeCompose
	m.editID = 0
	m.titleInput.SetValue("")
	m.bodyArea.SetValue("")
	m.composeFocus = 0
	m.titleInput.Focus()
	m.bodyArea.Blur()
	m.editDigest = bufferDigest("", "")
}

// openEdit opens the edit buffer for a note.
func (m *Model) openEdit(n model.Note) {
	m.mode = ModeEdit
	m.editID = n.ID
	m.titleInput.SetValue(n.Title)
	m.bodyArea.SetValue(n.Content)
	m.composeFocus = 0
	m.titleInput.Focus()
	m.bodyArea.Blur()
	m.editDigest = bufferDigest(n.Title, n.Content)
}

// closeEditor returns to the notes list and clears the buffer.
func (m *Model) closeEditor() {
	m.mode = ModeNotes
	m.editID = 0
	m.titleInput.Blur()
	m.bodyArea.Blur()
}

// closeDialog resets all dialog state.
func (m *Model) closeDialog() {
	m.dialog = dialogNone
	m.dialogErr = ""
	m.dialogNoteID = 0
	m.pending = nil
	m.noteTagIdx = 0
	m.tagNameInput.SetValue("")
	m.tagNameInput.Blur()
	m.renameInput.SetValue("")
	m.renameInput.Blur()
	m.oldPassInput.SetValue("")
	m.oldPassInput.Blur()
	m.newPassInput.SetValue("")
	m.newPassInput.Blur()
	m.confirm = confirmNone
	m.confirmNoteID = 0
	m.confirmTagID = 0
}

// teardownSession forgets the credential and all server-derived state,
// then returns to the login screen. Invalidates in-flight results by
// bumping the epoch.
func (m *Model) teardownSession() {
	_ = m.session.Clear()
	m.store.Clear()
	m.registry.Replace(nil)
	m.epoch++
	m.user = model.User{}
	m.cursor = 0
	m.scrollOff = 0
	m.collection = model.CollectionActive
	m.searching = false
	m.searchInput.SetValue("")
	m.closeDialog()
	m.closeEditor()
	m.mode = ModeLogin
	m.formFocus = 0
	m.formErr = ""
	m.authBusy = false
	m.emailInput.SetValue("")
	m.passwordInput.SetValue("")
	m.usernameInput.SetValue("")
	m.emailInput.Focus()
	m.passwordInput.Blur()
	m.usernameInput.Blur()
}
