package app

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jparker/inkwell/internal/api"
	"github.com/jparker/inkwell/internal/model"
	"github.com/jparker/inkwell/internal/msg"
	"github.com/jparker/inkwell/internal/notes"
	"github.com/jparker/inkwell/internal/state"
	"github.com/jparker/inkwell/internal/tags"
	"github.com/jparker/inkwell/internal/version"
)

// Update handles all messages and returns the updated model and commands.
func (m Model) Update(teaMsg tea.Msg) (tea.Model, tea.Cmd) {
	switch v := teaMsg.(type) {
	case tea.KeyMsg:
		return m.handleKey(v)

	case tea.WindowSizeMsg:
		m.width = v.Width
		m.height = v.Height
		m.ready = true
		m.titleInput.Width = v.Width - 8
		m.bodyArea.SetWidth(v.Width - 6)
		m.bodyArea.SetHeight(v.Height - 8)
		return m, nil

	case msg.ToastMsg:
		m.toast = v
		m.showToast = true
		d := v.Duration
		if d <= 0 {
			d = m.cfg.UI.ToastDuration
		}
		return m, msg.ClearToastAfter(d)

	case msg.ClearToastMsg:
		m.showToast = false
		return m, nil

	case version.UpdateAvailableMsg:
		m.updateInfo = &v
		return m, nil

	case LoginResultMsg:
		return m.handleLoginResult(v)

	case SignupResultMsg:
		m.authBusy = false
		if v.Err != nil {
			m.formErr = errText(v.Err, "Signup failed")
			return m, nil
		}
		m.mode = ModeLogin
		m.formErr = ""
		m.formFocus = 0
		m.emailInput.Focus()
		m.passwordInput.Blur()
		m.usernameInput.Blur()
		return m, m.showSuccess("Account created. Please log in.")

	case LogoutDoneMsg:
		return m, nil

	case PasswordChangedMsg:
		if v.Err != nil {
			if errors.Is(v.Err, api.ErrUnauthorized) {
				return m.expireSession()
			}
			m.dialogErr = errText(v.Err, "Password change failed")
			return m, nil
		}
		m.closeDialog()
		return m, m.showSuccess(fallbackText(v.Message, "Password changed"))

	case NotesLoadedMsg:
		if v.Epoch != m.epoch {
			return m, nil
		}
		if v.Err != nil {
			if errors.Is(v.Err, api.ErrUnauthorized) {
				return m.expireSession()
			}
			m.store.SetError(v.Collection, v.Err)
			return m, m.showError(errText(v.Err, "Failed to load notes"))
		}
		m.store.SetNotes(v.Collection, v.Notes)
		m.clampCursor()
		return m, nil

	case TagsLoadedMsg:
		if v.Epoch != m.epoch {
			return m, nil
		}
		if v.Err != nil {
			if errors.Is(v.Err, api.ErrUnauthorized) {
				return m.expireSession()
			}
			return m, m.showError(errText(v.Err, "Failed to load tags"))
		}
		m.registry.Replace(v.Tags)
		return m, nil

	case NoteCreatedMsg:
		if v.Epoch != m.epoch {
			return m, nil
		}
		if v.Err != nil {
			return m.handleNoteErr(v.Err, "Failed to create note")
		}
		m.closeEditor()
		m.collection = model.CollectionActive
		m.cursor = 0
		m.scrollOff = 0
		return m, m.showSuccess(v.Message)

	case NoteSavedMsg:
		if v.Epoch != m.epoch {
			return m, nil
		}
		if v.Err != nil {
			return m.handleNoteErr(v.Err, "Failed to save note")
		}
		m.closeEditor()
		return m, m.showSuccess(v.Message)

	case LifecycleDoneMsg:
		if v.Epoch != m.epoch {
			return m, nil
		}
		if v.Err != nil {
			return m.handleNoteErr(v.Err, "Failed to "+v.Action+" note")
		}
		m.clampCursor()
		return m, m.showSuccess(v.Message)

	case TagsReconciledMsg:
		return m.handleTagsReconciled(v)

	case TagRenamedMsg:
		if v.Epoch != m.epoch {
			return m, nil
		}
		if v.Err != nil {
			if errors.Is(v.Err, api.ErrUnauthorized) {
				return m.expireSession()
			}
			m.dialogErr = errText(v.Err, "Failed to rename tag")
			return m, nil
		}
		m.registry.Rename(v.TagID, v.Name)
		m.store.RenameTagEverywhere(v.TagID, v.Name)
		m.closeDialog()
		return m, m.showSuccess("Tag renamed")

	case TagDetachedMsg:
		if v.Epoch != m.epoch {
			return m, nil
		}
		if v.Err != nil {
			return m.handleNoteErr(v.Err, "Failed to remove tag")
		}
		if n, _, ok := m.store.Get(v.NoteID); ok {
			kept := make([]model.Tag, 0, len(n.Tags))
			for _, t := range n.Tags {
				if t.ID != v.TagID {
					kept = append(kept, t)
				}
			}
			m.store.ReplaceTags(v.NoteID, kept)
		}
		return m, m.showSuccess("Tag removed from note")

	case TagDeletedMsg:
		if v.Epoch != m.epoch {
			return m, nil
		}
		if v.Err != nil {
			return m.handleNoteErr(v.Err, "Failed to delete tag")
		}
		m.registry.Remove(v.TagID)
		m.store.DetachTagEverywhere(v.TagID)
		m.dropTagFilter(v.TagID)
		if m.sidebarCursor >= m.registry.Len() {
			m.sidebarCursor = m.registry.Len() - 1
		}
		if m.sidebarCursor < 0 {
			m.sidebarCursor = 0
		}
		return m, m.showSuccess(fallbackText(v.Message, "Tag deleted"))

	case YankDoneMsg:
		if v.Err != nil {
			return m, m.showError("Copy failed: " + v.Err.Error())
		}
		return m, m.showSuccess("Note content copied")
	}

	return m, nil
}

func (m Model) handleLoginResult(v LoginResultMsg) (tea.Model, tea.Cmd) {
	m.authBusy = false
	if v.Err != nil {
		m.formErr = errText(v.Err, "Login failed")
		return m, nil
	}
	if err := m.session.Set(v.Creds.Token, v.Creds.User); err != nil {
		m.formErr = "Failed to save session: " + err.Error()
		return m, nil
	}
	m.user = v.Creds.User
	m.mode = ModeNotes
	m.formErr = ""
	m.passwordInput.SetValue("")
	m.collection = model.CollectionActive
	m.cursor = 0
	m.scrollOff = 0
	return m, tea.Batch(m.loadAllCmds()...)
}

// handleTagsReconciled applies whatever the reconcile accomplished, even
// on partial failure, then reports the outcome.
func (m Model) handleTagsReconciled(v TagsReconciledMsg) (tea.Model, tea.Cmd) {
	if v.Epoch != m.epoch {
		return m, nil
	}
	m.store.ReplaceTags(v.NoteID, v.Result.Attached)

	var refresh tea.Cmd
	if len(v.Result.Created) > 0 {
		refresh = m.loadTagsCmd()
	}

	if v.Err != nil {
		if errors.Is(v.Err, api.ErrUnauthorized) {
			return m.expireSession()
		}
		return m, tea.Batch(refresh, m.showError(errText(v.Err, "Failed to add tags")))
	}
	return m, tea.Batch(refresh, m.showSuccess("Tags updated"))
}

// handleNoteErr routes a note-scoped failure: 401s tear down the session,
// in-flight collisions and everything else become an error toast.
func (m Model) handleNoteErr(err error, fallback string) (tea.Model, tea.Cmd) {
	if errors.Is(err, api.ErrUnauthorized) {
		return m.expireSession()
	}
	if errors.Is(err, notes.ErrOperationInFlight) {
		return m, m.showError("That note already has an operation in progress")
	}
	if errors.Is(err, notes.ErrTitleRequired) {
		return m, m.showError("Title cannot be empty")
	}
	return m, m.showError(errText(err, fallback))
}

// expireSession handles a 401: forget the credential and all loaded data
// and return to login. Collections are cleared wholesale, never partially.
func (m Model) expireSession() (tea.Model, tea.Cmd) {
	m.teardownSession()
	return m, m.showError("Session expired. Please log in again.")
}

func (m Model) showSuccess(text string) tea.Cmd {
	return msg.ShowToast(text, m.cfg.UI.ToastDuration)
}

func (m Model) showError(text string) tea.Cmd {
	return msg.ShowErrorToast(text, m.cfg.UI.ToastDuration)
}

// errText prefers the backend's message over the deterministic fallback.
func errText(err error, fallback string) string {
	if s := api.ServerMessage(err); s != "" {
		return s
	}
	return fallback
}

func fallbackText(s, def string) string {
	if s != "" {
		return s
	}
	return def
}

// dropTagFilter removes a deleted tag id from the persisted sidebar
// selection.
func (m *Model) dropTagFilter(tagID int) {
	kept := m.selectedTagIDs[:0]
	for _, id := range m.selectedTagIDs {
		if id != tagID {
			kept = append(kept, id)
		}
	}
	if len(kept) != len(m.selectedTagIDs) {
		m.selectedTagIDs = kept
		_ = state.SetSelectedTagIDs(kept)
	}
}

// --- key routing ---

func (m Model) handleKey(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	// ctrl+c always quits, regardless of mode.
	if k.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.mode {
	case ModeLogin:
		return m.handleLoginKey(k)
	case ModeSignup:
		return m.handleSignupKey(k)
	case ModeCompose, ModeEdit:
		return m.handleEditorKey(k)
	default:
		if m.dialog != dialogNone {
			return m.handleDialogKey(k)
		}
		if m.searching {
			return m.handleSearchKey(k)
		}
		if m.sidebarFocus {
			return m.handleSidebarKey(k)
		}
		return m.handleNotesKey(k)
	}
}

func (m Model) handleLoginKey(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch k.String() {
	case "tab", "down":
		m.formFocus = (m.formFocus + 1) % 2
		m.syncLoginFocus()
		return m, nil
	case "shift+tab", "up":
		m.formFocus = (m.formFocus + 1) % 2
		m.syncLoginFocus()
		return m, nil
	case "ctrl+s":
		m.mode = ModeSignup
		m.formFocus = 0
		m.formErr = ""
		m.usernameInput.Focus()
		m.emailInput.Blur()
		m.passwordInput.Blur()
		return m, nil
	case "enter":
		if m.authBusy {
			return m, nil
		}
		email := strings.TrimSpace(m.emailInput.Value())
		password := m.passwordInput.Value()
		if email == "" || password == "" {
			m.formErr = "Email and password are required"
			return m, nil
		}
		m.authBusy = true
		m.formErr = ""
		return m, m.loginCmd(email, password)
	}
	return m.updateLoginInputs(k)
}

func (m *Model) syncLoginFocus() {
	m.emailInput.Blur()
	m.passwordInput.Blur()
	if m.formFocus == 0 {
		m.emailInput.Focus()
	} else {
		m.passwordInput.Focus()
	}
}

func (m Model) updateLoginInputs(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.formFocus == 0 {
		m.emailInput, cmd = m.emailInput.Update(k)
	} else {
		m.passwordInput, cmd = m.passwordInput.Update(k)
	}
	return m, cmd
}

func (m Model) handleSignupKey(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch k.String() {
	case "esc":
		m.mode = ModeLogin
		m.formFocus = 0
		m.formErr = ""
		m.syncLoginFocus()
		return m, nil
	case "tab", "down":
		m.formFocus = (m.formFocus + 1) % 3
		m.syncSignupFocus()
		return m, nil
	case "shift+tab", "up":
		m.formFocus = (m.formFocus + 2) % 3
		m.syncSignupFocus()
		return m, nil
	case "enter":
		if m.authBusy {
			return m, nil
		}
		username := strings.TrimSpace(m.usernameInput.Value())
		email := strings.TrimSpace(m.emailInput.Value())
		password := m.passwordInput.Value()
		if username == "" || email == "" || password == "" {
			m.formErr = "All fields are required"
			return m, nil
		}
		m.authBusy = true
		m.formErr = ""
		return m, m.signupCmd(username, email, password)
	}

	var cmd tea.Cmd
	switch m.formFocus {
	case 0:
		m.usernameInput, cmd = m.usernameInput.Update(k)
	case 1:
		m.emailInput, cmd = m.emailInput.Update(k)
	default:
		m.passwordInput, cmd = m.passwordInput.Update(k)
	}
	return m, cmd
}

func (m *Model) syncSignupFocus() {
	m.usernameInput.Blur()
	m.emailInput.Blur()
	m.passwordInput.Blur()
	switch m.formFocus {
	case 0:
		m.usernameInput.Focus()
	case 1:
		m.emailInput.Focus()
	default:
		m.passwordInput.Focus()
	}
}

func (m Model) handleEditorKey(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The discard prompt takes over input while it is open.
	if m.dialog == dialogConfirm {
		return m.handleConfirmKey(k)
	}

	switch k.String() {
	case "esc":
		if m.dirty() {
			m.dialog = dialogConfirm
			m.confirm = confirmDiscardEdit
			m.confirmFocus = false
			return m, nil
		}
		m.closeEditor()
		return m, nil
	case "tab":
		if m.composeFocus == 0 {
			m.composeFocus = 1
			m.titleInput.Blur()
			m.bodyArea.Focus()
		} else {
			m.composeFocus = 0
			m.bodyArea.Blur()
			m.titleInput.Focus()
		}
		return m, nil
	case "ctrl+s":
		title := strings.TrimSpace(m.titleInput.Value())
		if title == "" {
			return m, m.showError("Title cannot be empty")
		}
		content := m.bodyArea.Value()
		if m.mode == ModeCompose {
			return m, m.createNoteCmd(title, content)
		}
		if m.ctrl.Operating(m.editID) {
			return m, m.showError("That note already has an operation in progress")
		}
		return m, m.saveNoteCmd(m.editID, title, content)
	}

	var cmd tea.Cmd
	if m.composeFocus == 0 {
		m.titleInput, cmd = m.titleInput.Update(k)
	} else {
		m.bodyArea, cmd = m.bodyArea.Update(k)
	}
	return m, cmd
}

func (m Model) handleSearchKey(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch k.String() {
	case "esc":
		m.searching = false
		m.searchInput.SetValue("")
		m.searchInput.Blur()
		m.clampCursor()
		return m, nil
	case "enter":
		m.searching = false
		m.searchInput.Blur()
		m.clampCursor()
		return m, nil
	}
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(k)
	m.clampCursor()
	return m, cmd
}

func (m Model) handleSidebarKey(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	all := m.registry.All()
	switch k.String() {
	case "esc", "f":
		m.sidebarFocus = false
		return m, nil
	case "j", "down":
		if m.sidebarCursor < len(all)-1 {
			m.sidebarCursor++
		}
		return m, nil
	case "k", "up":
		if m.sidebarCursor > 0 {
			m.sidebarCursor--
		}
		return m, nil
	case "enter", " ":
		if m.sidebarCursor >= len(all) {
			return m, nil
		}
		m.toggleTagFilter(all[m.sidebarCursor].ID)
		m.clampCursor()
		return m, nil
	case "c":
		m.selectedTagIDs = nil
		_ = state.SetSelectedTagIDs(nil)
		m.clampCursor()
		return m, nil
	case "d":
		if m.sidebarCursor >= len(all) {
			return m, nil
		}
		m.dialog = dialogConfirm
		m.confirm = confirmDeleteTagGlobal
		m.confirmTagID = all[m.sidebarCursor].ID
		m.confirmFocus = false
		return m, nil
	}
	return m, nil
}

func (m *Model) toggleTagFilter(tagID int) {
	for i, id := range m.selectedTagIDs {
		if id == tagID {
			m.selectedTagIDs = append(m.selectedTagIDs[:i], m.selectedTagIDs[i+1:]...)
			_ = state.SetSelectedTagIDs(m.selectedTagIDs)
			return
		}
	}
	m.selectedTagIDs = append(m.selectedTagIDs, tagID)
	_ = state.SetSelectedTagIDs(m.selectedTagIDs)
}

func (m Model) handleNotesKey(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(k, m.keys.Quit):
		m.dialog = dialogConfirm
		m.confirm = confirmQuit
		m.confirmFocus = true
		return m, nil
	case key.Matches(k, m.keys.Down):
		if m.cursor < len(m.visibleNotes())-1 {
			m.cursor++
		}
		return m, nil
	case key.Matches(k, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case key.Matches(k, m.keys.NextTab):
		m.collection = nextCollection(m.collection)
		m.cursor = 0
		m.scrollOff = 0
		return m, nil
	case key.Matches(k, m.keys.PrevTab):
		m.collection = prevCollection(m.collection)
		m.cursor = 0
		m.scrollOff = 0
		return m, nil
	case key.Matches(k, m.keys.New):
		m.openCompose()
		return m, nil
	case key.Matches(k, m.keys.Edit):
		n, ok := m.selectedNote()
		if !ok || m.collection == model.CollectionTrash {
			return m, nil
		}
		m.openEdit(n)
		return m, nil
	case key.Matches(k, m.keys.Archive):
		return m.archiveKey()
	case key.Matches(k, m.keys.Delete):
		return m.deleteKey()
	case key.Matches(k, m.keys.Recover):
		n, ok := m.selectedNote()
		if !ok || m.collection != model.CollectionTrash {
			return m, nil
		}
		if m.ctrl.Operating(n.ID) {
			return m, m.showError("That note already has an operation in progress")
		}
		return m, m.recoverCmd(n.ID)
	case key.Matches(k, m.keys.AddTag):
		n, ok := m.selectedNote()
		if !ok || m.collection == model.CollectionTrash {
			return m, nil
		}
		m.dialog = dialogAddTag
		m.dialogNoteID = n.ID
		m.pending = tags.NewPendingSet(n.Tags)
		m.tagFocus = focusExistingList
		m.existingIdx = 0
		m.pendingIdx = 0
		m.dialogErr = ""
		return m, nil
	case key.Matches(k, m.keys.NoteTags):
		n, ok := m.selectedNote()
		if !ok || len(n.Tags) == 0 || m.collection == model.CollectionTrash {
			return m, nil
		}
		m.dialog = dialogNoteTags
		m.dialogNoteID = n.ID
		m.noteTagIdx = 0
		m.dialogErr = ""
		return m, nil
	case key.Matches(k, m.keys.Yank):
		n, ok := m.selectedNote()
		if !ok {
			return m, nil
		}
		return m, yankCmd(n.Content)
	case key.Matches(k, m.keys.Search):
		m.searching = true
		m.searchInput.Focus()
		return m, nil
	case key.Matches(k, m.keys.Sort):
		m.sortOrder = m.sortOrder.Toggle()
		_ = state.SetSortOrder(string(m.sortOrder))
		m.clampCursor()
		return m, nil
	case key.Matches(k, m.keys.Sidebar):
		if m.collection == model.CollectionActive {
			m.sidebarFocus = true
		}
		return m, nil
	case k.String() == "[":
		m.listPaneWidth = clampPaneWidth(m.listPaneWidth - 5)
		_ = state.SetListPaneWidth(m.listPaneWidth)
		return m, nil
	case k.String() == "]":
		m.listPaneWidth = clampPaneWidth(m.listPaneWidth + 5)
		_ = state.SetListPaneWidth(m.listPaneWidth)
		return m, nil
	case key.Matches(k, m.keys.Refresh):
		return m, tea.Batch(m.loadAllCmds()...)
	case key.Matches(k, m.keys.ChangePass):
		m.dialog = dialogPassword
		m.passFocus = 0
		m.oldPassInput.Focus()
		m.dialogErr = ""
		return m, nil
	case key.Matches(k, m.keys.Logout):
		logout := m.logoutCmd()
		m.teardownSession()
		return m, tea.Batch(logout, m.showSuccess("Logged out"))
	}
	return m, nil
}

func (m Model) archiveKey() (tea.Model, tea.Cmd) {
	n, ok := m.selectedNote()
	if !ok {
		return m, nil
	}
	if m.ctrl.Operating(n.ID) {
		return m, m.showError("That note already has an operation in progress")
	}
	switch m.collection {
	case model.CollectionActive:
		return m, m.archiveCmd(n.ID)
	case model.CollectionArchived:
		return m, m.unarchiveCmd(n.ID)
	}
	return m, nil
}

func (m Model) deleteKey() (tea.Model, tea.Cmd) {
	n, ok := m.selectedNote()
	if !ok {
		return m, nil
	}
	m.dialog = dialogConfirm
	m.confirmNoteID = n.ID
	m.confirmFocus = false
	if m.collection == model.CollectionTrash {
		m.confirm = confirmPurge
	} else {
		m.confirm = confirmDelete
	}
	return m, nil
}

func nextCollection(c model.Collection) model.Collection {
	switch c {
	case model.CollectionActive:
		return model.CollectionArchived
	case model.CollectionArchived:
		return model.CollectionTrash
	default:
		return model.CollectionActive
	}
}

func prevCollection(c model.Collection) model.Collection {
	switch c {
	case model.CollectionActive:
		return model.CollectionTrash
	case model.CollectionTrash:
		return model.CollectionArchived
	default:
		return model.CollectionActive
	}
}

// --- dialog keys ---

func (m Model) handleDialogKey(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.dialog {
	case dialogAddTag:
		return m.handleAddTagKey(k)
	case dialogNoteTags:
		return m.handleNoteTagsKey(k)
	case dialogRenameTag:
		return m.handleRenameTagKey(k)
	case dialogPassword:
		return m.handlePasswordKey(k)
	case dialogConfirm:
		return m.handleConfirmKey(k)
	}
	return m, nil
}

func (m Model) handleAddTagKey(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch k.String() {
	case "esc":
		m.closeDialog()
		return m, nil
	case "tab":
		m.tagFocus = (m.tagFocus + 1) % 3
		m.syncTagDialogFocus()
		return m, nil
	case "shift+tab":
		m.tagFocus = (m.tagFocus + 2) % 3
		m.syncTagDialogFocus()
		return m, nil
	case "ctrl+s":
		return m.commitPendingTags()
	}

	switch m.tagFocus {
	case focusExistingList:
		all := m.registry.All()
		switch k.String() {
		case "j", "down":
			if m.existingIdx < len(all)-1 {
				m.existingIdx++
			}
		case "k", "up":
			if m.existingIdx > 0 {
				m.existingIdx--
			}
		case "enter", " ":
			if m.existingIdx < len(all) {
				if err := m.pending.AddExisting(all[m.existingIdx]); err != nil {
					m.dialogErr = err.Error()
				} else {
					m.dialogErr = ""
				}
			}
		}
		return m, nil

	case focusNewTagInput:
		if k.String() == "enter" {
			if err := m.pending.AddNew(m.tagNameInput.Value(), m.registry); err != nil {
				m.dialogErr = err.Error()
			} else {
				m.dialogErr = ""
				m.tagNameInput.SetValue("")
			}
			return m, nil
		}
		var cmd tea.Cmd
		m.tagNameInput, cmd = m.tagNameInput.Update(k)
		return m, cmd

	default: // focusPendingList
		cands := m.pending.Candidates()
		switch k.String() {
		case "j", "down":
			if m.pendingIdx < len(cands)-1 {
				m.pendingIdx++
			}
		case "k", "up":
			if m.pendingIdx > 0 {
				m.pendingIdx--
			}
		case "d", "x":
			m.pending.Remove(m.pendingIdx)
			if n := len(m.pending.Candidates()); m.pendingIdx >= n && m.pendingIdx > 0 {
				m.pendingIdx--
			}
		case "enter":
			return m.commitPendingTags()
		}
		return m, nil
	}
}

func (m *Model) syncTagDialogFocus() {
	if m.tagFocus == focusNewTagInput {
		m.tagNameInput.Focus()
	} else {
		m.tagNameInput.Blur()
	}
}

// commitPendingTags snapshots the pending set and hands it to the
// reconciler. The dialog closes immediately; partial progress lands via
// the result message.
func (m Model) commitPendingTags() (tea.Model, tea.Cmd) {
	if m.pending == nil || m.pending.Empty() {
		m.closeDialog()
		return m, nil
	}
	n, _, ok := m.store.Get(m.dialogNoteID)
	if !ok {
		m.closeDialog()
		return m, nil
	}
	cands := candidatesFor(m.pending)
	m.closeDialog()
	return m, m.reconcileTagsCmd(n, cands)
}

// handleNoteTagsKey manages the tags already on a note: rename one
// globally or detach one from just this note.
func (m Model) handleNoteTagsKey(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	n, _, ok := m.store.Get(m.dialogNoteID)
	if !ok || len(n.Tags) == 0 {
		m.closeDialog()
		return m, nil
	}
	if m.noteTagIdx >= len(n.Tags) {
		m.noteTagIdx = len(n.Tags) - 1
	}

	switch k.String() {
	case "esc":
		m.closeDialog()
		return m, nil
	case "j", "down":
		if m.noteTagIdx < len(n.Tags)-1 {
			m.noteTagIdx++
		}
		return m, nil
	case "k", "up":
		if m.noteTagIdx > 0 {
			m.noteTagIdx--
		}
		return m, nil
	case "r", "enter":
		tag := n.Tags[m.noteTagIdx]
		m.dialog = dialogRenameTag
		m.renameTagID = tag.ID
		m.renameInput.SetValue(tag.Name)
		m.renameInput.Focus()
		m.dialogErr = ""
		return m, nil
	case "d", "x":
		tag := n.Tags[m.noteTagIdx]
		noteID := m.dialogNoteID
		m.closeDialog()
		return m, m.detachTagCmd(noteID, tag.ID)
	}
	return m, nil
}

func (m Model) handleRenameTagKey(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch k.String() {
	case "esc":
		m.closeDialog()
		return m, nil
	case "enter":
		n, _, ok := m.store.Get(m.dialogNoteID)
		if !ok {
			m.closeDialog()
			return m, nil
		}
		name, err := tags.ValidateRename(n.Tags, m.renameTagID, m.renameInput.Value())
		if err != nil {
			m.dialogErr = err.Error()
			return m, nil
		}
		return m, m.renameTagCmd(m.dialogNoteID, m.renameTagID, name)
	}
	var cmd tea.Cmd
	m.renameInput, cmd = m.renameInput.Update(k)
	return m, cmd
}

func (m Model) handlePasswordKey(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch k.String() {
	case "esc":
		m.closeDialog()
		return m, nil
	case "tab", "down":
		m.passFocus = (m.passFocus + 1) % 2
		m.syncPasswordFocus()
		return m, nil
	case "shift+tab", "up":
		m.passFocus = (m.passFocus + 1) % 2
		m.syncPasswordFocus()
		return m, nil
	case "enter":
		oldPass := m.oldPassInput.Value()
		newPass := m.newPassInput.Value()
		if oldPass == "" || newPass == "" {
			m.dialogErr = "Both passwords are required"
			return m, nil
		}
		return m, m.changePasswordCmd(oldPass, newPass)
	}
	var cmd tea.Cmd
	if m.passFocus == 0 {
		m.oldPassInput, cmd = m.oldPassInput.Update(k)
	} else {
		m.newPassInput, cmd = m.newPassInput.Update(k)
	}
	return m, cmd
}

func (m *Model) syncPasswordFocus() {
	m.oldPassInput.Blur()
	m.newPassInput.Blur()
	if m.passFocus == 0 {
		m.oldPassInput.Focus()
	} else {
		m.newPassInput.Focus()
	}
}

func (m Model) handleConfirmKey(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch k.String() {
	case "esc":
		m.closeDialog()
		return m, nil
	case "left", "right", "tab", "h", "l":
		m.confirmFocus = !m.confirmFocus
		return m, nil
	case "enter":
		if !m.confirmFocus {
			m.closeDialog()
			return m, nil
		}
		action := m.confirm
		noteID := m.confirmNoteID
		tagID := m.confirmTagID
		m.closeDialog()
		switch action {
		case confirmDelete:
			if m.ctrl.Operating(noteID) {
				return m, m.showError("That note already has an operation in progress")
			}
			return m, m.deleteCmd(noteID)
		case confirmPurge:
			if m.ctrl.Operating(noteID) {
				return m, m.showError("That note already has an operation in progress")
			}
			return m, m.purgeCmd(noteID)
		case confirmDeleteTagGlobal:
			return m, m.deleteTagCmd(tagID)
		case confirmDiscardEdit:
			m.closeEditor()
			return m, nil
		case confirmQuit:
			return m, tea.Quit
		}
	}
	return m, nil
}
