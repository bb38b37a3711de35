package app

import (
	"github.com/jparker/inkwell/internal/api"
	"github.com/jparker/inkwell/internal/model"
	"github.com/jparker/inkwell/internal/tags"
)

// Result messages carry the session epoch they were issued under.
// Messages from a previous session (before a logout or 401) are stale
// and dropped on arrival.

// LoginResultMsg reports a login attempt.
type LoginResultMsg struct {
	Creds api.Credentials
	Err   error
}

// SignupResultMsg reports an account creation attempt.
type SignupResultMsg struct {
	Err error
}

// LogoutDoneMsg reports that the server-side logout call finished.
// Local teardown has already happened by the time it arrives.
type LogoutDoneMsg struct{}

// PasswordChangedMsg reports a change-password attempt.
type PasswordChangedMsg struct {
	Message string
	Err     error
}

// NotesLoadedMsg delivers one collection fetch.
type NotesLoadedMsg struct {
	Collection model.Collection
	Notes      []model.Note
	Err        error
	Epoch      int
}

// TagsLoadedMsg delivers the global tag set.
type TagsLoadedMsg struct {
	Tags  []model.Tag
	Err   error
	Epoch int
}

// NoteCreatedMsg reports a create-note call.
type NoteCreatedMsg struct {
	Note    model.Note
	Message string
	Err     error
	Epoch   int
}

// NoteSavedMsg reports an update-note call.
type NoteSavedMsg struct {
	ID      int
	Message string
	Err     error
	Epoch   int
}

// LifecycleDoneMsg reports an archive/unarchive/delete/recover/purge
// transition. Action names the attempted transition for error context.
type LifecycleDoneMsg struct {
	ID      int
	Action  string
	Message string
	Err     error
	Epoch   int
}

// TagsReconciledMsg reports a pending-tag save. Result reflects partial
// progress even when Err is set.
type TagsReconciledMsg struct {
	NoteID int
	Result tags.Result
	Err    error
	Epoch  int
}

// TagRenamedMsg reports a global tag rename issued from a note card.
type TagRenamedMsg struct {
	NoteID int
	TagID  int
	Name   string
	Err    error
	Epoch  int
}

// TagDetachedMsg reports a note-scoped tag removal.
type TagDetachedMsg struct {
	NoteID int
	TagID  int
	Err    error
	Epoch  int
}

// TagDeletedMsg reports a global tag delete.
type TagDeletedMsg struct {
	TagID   int
	Message string
	Err     error
	Epoch   int
}

// YankDoneMsg reports a clipboard copy.
type YankDoneMsg struct {
	Err error
}
