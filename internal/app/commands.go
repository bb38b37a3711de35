package app

import (
	"context"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jparker/inkwell/internal/model"
	"github.com/jparker/inkwell/internal/tags"
)

// Commands capture the epoch at issue time so results from a torn-down
// session can be recognized and dropped. Each command runs on its own
// goroutine; everything it touches (store, registry, controller) is
// safe for concurrent use.

func (m *Model) loginCmd(email, password string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		creds, err := client.Login(context.Background(), email, password)
		return LoginResultMsg{Creds: creds, Err: err}
	}
}

func (m *Model) signupCmd(username, email, password string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		err := client.Signup(context.Background(), username, email, password)
		return SignupResultMsg{Err: err}
	}
}

// logoutCmd revokes the token server-side. Local teardown has already
// happened; a failure here is invisible by design.
func (m *Model) logoutCmd() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		_ = client.Logout(context.Background())
		return LogoutDoneMsg{}
	}
}

func (m *Model) changePasswordCmd(oldPass, newPass string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		message, err := client.ChangePassword(context.Background(), oldPass, newPass)
		return PasswordChangedMsg{Message: message, Err: err}
	}
}

// loadNotesCmd fetches one collection.
func (m *Model) loadNotesCmd(c model.Collection) tea.Cmd {
	m.store.SetLoading(c)
	client, epoch := m.client, m.epoch
	return func() tea.Msg {
		var (
			ns  []model.Note
			err error
		)
		switch c {
		case model.CollectionArchived:
			ns, err = client.ListArchivedNotes(context.Background())
		case model.CollectionTrash:
			ns, err = client.ListTrashedNotes(context.Background())
		default:
			ns, err = client.ListNotes(context.Background())
		}
		return NotesLoadedMsg{Collection: c, Notes: ns, Err: err, Epoch: epoch}
	}
}

func (m *Model) loadTagsCmd() tea.Cmd {
	client, epoch := m.client, m.epoch
	return func() tea.Msg {
		ts, err := client.ListTags(context.Background())
		return TagsLoadedMsg{Tags: ts, Err: err, Epoch: epoch}
	}
}

// loadAllCmds fetches all three collections plus the tag set.
func (m *Model) loadAllCmds() []tea.Cmd {
	return []tea.Cmd{
		m.loadNotesCmd(model.CollectionActive),
		m.loadNotesCmd(model.CollectionArchived),
		m.loadNotesCmd(model.CollectionTrash),
		m.loadTagsCmd(),
	}
}

func (m *Model) createNoteCmd(title, content string) tea.Cmd {
	ctrl, epoch := m.ctrl, m.epoch
	return func() tea.Msg {
		note, message, err := ctrl.Create(context.Background(), title, content, nil)
		return NoteCreatedMsg{Note: note, Message: message, Err: err, Epoch: epoch}
	}
}

func (m *Model) saveNoteCmd(id int, title, content string) tea.Cmd {
	ctrl, epoch := m.ctrl, m.epoch
	return func() tea.Msg {
		message, err := ctrl.Edit(context.Background(), id, title, content)
		return NoteSavedMsg{ID: id, Message: message, Err: err, Epoch: epoch}
	}
}

// lifecycleCmd runs one collection transition through the controller.
func (m *Model) lifecycleCmd(id int, action string, call func(context.Context, int) (string, error)) tea.Cmd {
	epoch := m.epoch
	return func() tea.Msg {
		message, err := call(context.Background(), id)
		return LifecycleDoneMsg{ID: id, Action: action, Message: message, Err: err, Epoch: epoch}
	}
}

func (m *Model) archiveCmd(id int) tea.Cmd {
	return m.lifecycleCmd(id, "archive", m.ctrl.Archive)
}

func (m *Model) unarchiveCmd(id int) tea.Cmd {
	return m.lifecycleCmd(id, "unarchive", m.ctrl.Unarchive)
}

func (m *Model) deleteCmd(id int) tea.Cmd {
	return m.lifecycleCmd(id, "delete", m.ctrl.Delete)
}

func (m *Model) recoverCmd(id int) tea.Cmd {
	return m.lifecycleCmd(id, "recover", m.ctrl.Recover)
}

func (m *Model) purgeCmd(id int) tea.Cmd {
	return m.lifecycleCmd(id, "purge", m.ctrl.DeleteForever)
}

// reconcileTagsCmd commits the pending tag set for a note.
func (m *Model) reconcileTagsCmd(note model.Note, candidates []model.Tag) tea.Cmd {
	rec, epoch := m.reconciler, m.epoch
	return func() tea.Msg {
		res, err := rec.Reconcile(context.Background(), note, candidates)
		return TagsReconciledMsg{NoteID: note.ID, Result: res, Err: err, Epoch: epoch}
	}
}

func (m *Model) renameTagCmd(noteID, tagID int, name string) tea.Cmd {
	client, epoch := m.client, m.epoch
	return func() tea.Msg {
		tag, err := client.RenameTag(context.Background(), tagID, name)
		if err != nil {
			return TagRenamedMsg{NoteID: noteID, TagID: tagID, Name: name, Err: err, Epoch: epoch}
		}
		return TagRenamedMsg{NoteID: noteID, TagID: tag.ID, Name: tag.Name, Epoch: epoch}
	}
}

func (m *Model) detachTagCmd(noteID, tagID int) tea.Cmd {
	client, epoch := m.client, m.epoch
	return func() tea.Msg {
		err := client.DetachTag(context.Background(), noteID, tagID)
		return TagDetachedMsg{NoteID: noteID, TagID: tagID, Err: err, Epoch: epoch}
	}
}

func (m *Model) deleteTagCmd(tagID int) tea.Cmd {
	client, epoch := m.client, m.epoch
	return func() tea.Msg {
		message, err := client.DeleteTag(context.Background(), tagID)
		return TagDeletedMsg{TagID: tagID, Message: message, Err: err, Epoch: epoch}
	}
}

// yankCmd copies a note's content to the system clipboard.
func yankCmd(content string) tea.Cmd {
	return func() tea.Msg {
		return YankDoneMsg{Err: clipboard.WriteAll(content)}
	}
}

// candidatesFor snapshots the pending set for a reconcile command.
func candidatesFor(p *tags.PendingSet) []model.Tag {
	if p == nil {
		return nil
	}
	return p.Candidates()
}
