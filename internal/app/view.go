package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/jparker/inkwell/internal/model"
	"github.com/jparker/inkwell/internal/styles"
	"github.com/jparker/inkwell/internal/ui"
)

const (
	headerHeight = 2
	footerHeight = 1
	sidebarWidth = 22
	minWidth     = 60
	minHeight    = 16
)

// View renders the entire application UI.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.width < minWidth || m.height < minHeight {
		warn := fmt.Sprintf("Terminal too small (%dx%d)\nMinimum: %dx%d",
			m.width, m.height, minWidth, minHeight)
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			styles.ErrorText.Render(warn))
	}

	var screen string
	switch m.mode {
	case ModeLogin:
		screen = m.viewLogin()
	case ModeSignup:
		screen = m.viewSignup()
	case ModeCompose, ModeEdit:
		screen = m.viewEditor()
	default:
		screen = m.viewNotes()
	}

	if m.dialog != dialogNone {
		screen = ui.Overlay(screen, m.renderDialog(), m.width, m.height)
	}

	if m.showToast {
		screen = m.placeToast(screen)
	}
	return screen
}

// --- auth screens ---

func (m Model) viewLogin() string {
	var b strings.Builder
	b.WriteString(styles.Logo.Render("inkwell"))
	b.WriteString("\n\n")
	b.WriteString(styles.Muted.Render("Email"))
	b.WriteString("\n")
	b.WriteString(m.emailInput.View())
	b.WriteString("\n\n")
	b.WriteString(styles.Muted.Render("Password"))
	b.WriteString("\n")
	b.WriteString(m.passwordInput.View())
	b.WriteString("\n")
	if m.formErr != "" {
		b.WriteString("\n")
		b.WriteString(styles.ErrorText.Render(m.formErr))
		b.WriteString("\n")
	}
	if m.authBusy {
		b.WriteString("\n")
		b.WriteString(styles.Muted.Render("Signing in..."))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(styles.Subtle.Render("enter: sign in • ctrl+s: create account • ctrl+c: quit"))

	box := styles.ModalBox.Width(48).Render(b.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func (m Model) viewSignup() string {
	var b strings.Builder
	b.WriteString(styles.Logo.Render("inkwell"))
	b.WriteString(" ")
	b.WriteString(styles.Muted.Render("— create account"))
	b.WriteString("\n\n")
	b.WriteString(styles.Muted.Render("Username"))
	b.WriteString("\n")
	b.WriteString(m.usernameInput.View())
	b.WriteString("\n\n")
	b.WriteString(styles.Muted.Render("Email"))
	b.WriteString("\n")
	b.WriteString(m.emailInput.View())
	b.WriteString("\n\n")
	b.WriteString(styles.Muted.Render("Password"))
	b.WriteString("\n")
	b.WriteString(m.passwordInput.View())
	b.WriteString("\n")
	if m.formErr != "" {
		b.WriteString("\n")
		b.WriteString(styles.ErrorText.Render(m.formErr))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(styles.Subtle.Render("enter: sign up • esc: back to login"))

	box := styles.ModalBox.Width(48).Render(b.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// --- editor screen ---

func (m Model) viewEditor() string {
	var b strings.Builder
	if m.mode == ModeCompose {
		b.WriteString(styles.Title.Render("New Note"))
	} else {
		b.WriteString(styles.Title.Render("Edit Note"))
	}
	if m.dirty() {
		b.WriteString(styles.Muted.Render(" (modified)"))
	}
	b.WriteString("\n\n")
	b.WriteString(m.titleInput.View())
	b.WriteString("\n\n")
	b.WriteString(m.bodyArea.View())
	b.WriteString("\n\n")
	b.WriteString(styles.Subtle.Render("tab: switch field • ctrl+s: save • esc: close"))
	return b.String()
}

// --- notes screen ---

func (m Model) viewNotes() string {
	contentHeight := m.height - headerHeight
	if m.cfg.UI.ShowFooter {
		contentHeight -= footerHeight
	}
	if contentHeight < 1 {
		contentHeight = 1
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	listWidth := m.width
	var cols []string
	if m.collection == model.CollectionActive {
		cols = append(cols, m.renderSidebar(contentHeight))
		listWidth -= sidebarWidth
	}

	paneWidth := listWidth * m.listPaneWidth / 100
	previewWidth := listWidth - paneWidth

	cols = append(cols,
		m.renderList(paneWidth, contentHeight),
		m.renderPreview(previewWidth, contentHeight),
	)
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cols...))

	if m.cfg.UI.ShowFooter {
		b.WriteString("\n")
		b.WriteString(m.renderFooter())
	}
	return b.String()
}

func (m Model) renderHeader() string {
	var tabs []string
	for _, c := range []model.Collection{model.CollectionActive, model.CollectionArchived, model.CollectionTrash} {
		label := fmt.Sprintf(" %s (%d) ", c, len(m.store.Notes(c)))
		if c == m.collection {
			tabs = append(tabs, styles.ListItemFocused.Render(label))
		} else {
			tabs = append(tabs, styles.Muted.Render(label))
		}
	}
	left := styles.Logo.Render(" inkwell ") + strings.Join(tabs, "")

	right := ""
	if m.user.Username != "" {
		right = styles.Muted.Render(m.user.Username + " ")
	}
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

func (m Model) renderSidebar(height int) string {
	all := m.registry.All()
	counts := make(map[int]int)
	for _, n := range m.store.Notes(model.CollectionActive) {
		for _, t := range n.Tags {
			counts[t.ID]++
		}
	}

	var b strings.Builder
	b.WriteString(styles.PanelHeader.Render("Tags"))
	b.WriteString("\n")
	if len(all) == 0 {
		b.WriteString(styles.Subtle.Render("no tags yet"))
	}
	for i, t := range all {
		line := fmt.Sprintf("%s (%d)", t.Name, counts[t.ID])
		line = runewidth.Truncate(line, sidebarWidth-6, "…")

		selected := false
		for _, id := range m.selectedTagIDs {
			if id == t.ID {
				selected = true
				break
			}
		}
		mark := "  "
		if selected {
			mark = "✓ "
		}
		style := styles.ListItemNormal
		if m.sidebarFocus && i == m.sidebarCursor {
			style = styles.ListItemFocused
		} else if selected {
			style = styles.ListItemSelected
		}
		b.WriteString(style.Render(mark + line))
		b.WriteString("\n")
	}

	panel := styles.PanelInactive
	if m.sidebarFocus {
		panel = styles.PanelActive
	}
	return panel.Width(sidebarWidth - 2).Height(height - 2).Render(b.String())
}

func (m Model) renderList(width, height int) string {
	visible := m.visibleNotes()
	inner := width - 4
	rows := height - 3

	var b strings.Builder
	if m.searching || m.searchInput.Value() != "" {
		b.WriteString(m.searchInput.View())
		b.WriteString("\n")
		rows--
	}

	switch {
	case m.store.Loading(m.collection) && len(visible) == 0:
		b.WriteString(styles.Muted.Render("Loading..."))
	case m.store.Err(m.collection) != nil && len(visible) == 0:
		b.WriteString(styles.ErrorText.Render("Failed to load. Press r to retry."))
	case len(visible) == 0:
		b.WriteString(styles.Subtle.Render("No notes here."))
	}

	start := m.scrollOff
	if m.cursor >= start+rows {
		start = m.cursor - rows + 1
	}
	if m.cursor < start {
		start = m.cursor
	}
	end := start + rows
	if end > len(visible) {
		end = len(visible)
	}

	for i := start; i < end; i++ {
		n := visible[i]
		title := runewidth.Truncate(n.Title, inner-4, "…")
		prefix := "  "
		style := styles.ListItemNormal
		if i == m.cursor {
			prefix = styles.ListCursor.Render("> ")
			style = styles.ListItemSelected
		}
		if m.ctrl.Operating(n.ID) {
			title += " ⟳"
		}
		b.WriteString(prefix + style.Render(title))
		b.WriteString("\n")
		meta := n.CreatedAt.Format("2006-01-02")
		if len(n.Tags) > 0 {
			names := make([]string, len(n.Tags))
			for j, t := range n.Tags {
				names[j] = t.Name
			}
			meta += "  " + strings.Join(names, ", ")
		}
		b.WriteString("  " + styles.Subtle.Render(runewidth.Truncate(meta, inner-2, "…")))
		b.WriteString("\n")
	}

	panel := styles.PanelActive
	if m.sidebarFocus {
		panel = styles.PanelInactive
	}
	return panel.Width(width - 2).Height(height - 2).Render(b.String())
}

func (m Model) renderPreview(width, height int) string {
	var body string
	if n, ok := m.selectedNote(); ok {
		var b strings.Builder
		b.WriteString(styles.Title.Render(runewidth.Truncate(n.Title, width-6, "…")))
		b.WriteString("\n")
		if len(n.Tags) > 0 {
			chips := make([]string, len(n.Tags))
			for i, t := range n.Tags {
				chips[i] = styles.TagChip.Render(t.Name)
			}
			b.WriteString(strings.Join(chips, " "))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(m.renderContent(n.Content, width-6))
		body = b.String()
	} else {
		body = styles.Subtle.Render("Select a note to preview it.")
	}
	return styles.PanelInactive.Width(width - 2).Height(height - 2).Render(body)
}

// renderContent renders note content as markdown when enabled, falling
// back to the raw text when rendering fails.
func (m Model) renderContent(content string, width int) string {
	if !m.cfg.UI.MarkdownPreview {
		return content
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return content
	}
	out, err := r.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimRight(out, "\n")
}

func (m Model) renderFooter() string {
	var hints []string
	switch {
	case m.sidebarFocus:
		hints = []string{"j/k: move", "enter: toggle filter", "c: clear filters", "d: delete tag", "esc: back"}
	case m.collection == model.CollectionTrash:
		hints = []string{"j/k: move", "u: recover", "d: delete forever", "tab: next view", "q: quit"}
	default:
		hints = []string{"n: new", "enter: edit", "a: archive", "d: delete", "t: add tag", "R: note tags", "/: search", "s: sort", "f: filter", "q: quit"}
	}
	text := " " + strings.Join(hints, " • ")

	if m.updateInfo != nil {
		notice := fmt.Sprintf("update %s available • %s ",
			m.updateInfo.LatestVersion, m.updateInfo.UpdateCommand)
		gap := m.width - lipgloss.Width(text) - lipgloss.Width(notice)
		if gap > 0 {
			text += strings.Repeat(" ", gap) + notice
		}
	}
	return styles.Footer.Width(m.width).Render(text)
}

func (m Model) placeToast(screen string) string {
	style := styles.ToastSuccess
	if m.toast.IsError {
		style = styles.ToastError
	}
	toast := style.Render(m.toast.Message)

	lines := strings.Split(screen, "\n")
	if len(lines) == 0 {
		return toast
	}
	row := len(lines) - 2
	if row < 0 {
		row = 0
	}
	pad := m.width - lipgloss.Width(toast) - 1
	if pad < 0 {
		pad = 0
	}
	lines[row] = strings.Repeat(" ", pad) + toast
	return strings.Join(lines, "\n")
}

// --- dialogs ---

func (m Model) renderDialog() string {
	switch m.dialog {
	case dialogAddTag:
		return m.renderAddTagDialog()
	case dialogNoteTags:
		return m.renderNoteTagsDialog()
	case dialogRenameTag:
		return m.renderRenameDialog()
	case dialogPassword:
		return m.renderPasswordDialog()
	case dialogConfirm:
		return m.renderConfirmDialog()
	}
	return ""
}

func (m Model) renderAddTagDialog() string {
	var b strings.Builder
	b.WriteString(styles.ModalTitle.Render("Add Tags"))
	b.WriteString("\n")

	b.WriteString(sectionLabel("Select Existing Tag", m.tagFocus == focusExistingList))
	b.WriteString("\n")
	all := m.registry.All()
	if len(all) == 0 {
		b.WriteString(styles.Subtle.Render("  no tags yet"))
		b.WriteString("\n")
	}
	for i, t := range all {
		prefix := "  "
		style := styles.ListItemNormal
		if m.tagFocus == focusExistingList && i == m.existingIdx {
			prefix = "> "
			style = styles.ListItemFocused
		}
		b.WriteString(prefix + style.Render(t.Name))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(sectionLabel("New Tag", m.tagFocus == focusNewTagInput))
	b.WriteString("\n")
	b.WriteString(m.tagNameInput.View())
	b.WriteString("\n\n")

	b.WriteString(sectionLabel("To Be Added", m.tagFocus == focusPendingList))
	b.WriteString("\n")
	cands := m.pending.Candidates()
	if len(cands) == 0 {
		b.WriteString(styles.Subtle.Render("  nothing queued"))
		b.WriteString("\n")
	}
	for i, t := range cands {
		chip := styles.TagChip
		if t.Pending() {
			chip = styles.TagChipPending
		}
		prefix := "  "
		if m.tagFocus == focusPendingList && i == m.pendingIdx {
			prefix = "> "
		}
		b.WriteString(prefix + chip.Render(t.Name))
		b.WriteString("\n")
	}

	if m.dialogErr != "" {
		b.WriteString("\n")
		b.WriteString(styles.ErrorText.Render(m.dialogErr))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(styles.Subtle.Render("tab: next section • enter: add • ctrl+s: save • esc: cancel"))
	return styles.ModalBox.Width(54).Render(b.String())
}

func sectionLabel(label string, focused bool) string {
	if focused {
		return styles.Title.Render(label)
	}
	return styles.Muted.Render(label)
}

func (m Model) renderNoteTagsDialog() string {
	var b strings.Builder
	b.WriteString(styles.ModalTitle.Render("Note Tags"))
	b.WriteString("\n")

	n, _, ok := m.store.Get(m.dialogNoteID)
	if !ok || len(n.Tags) == 0 {
		b.WriteString(styles.Subtle.Render("no tags on this note"))
	}
	for i, t := range n.Tags {
		prefix := "  "
		chip := styles.TagChip
		if i == m.noteTagIdx {
			prefix = "> "
			chip = styles.TagChipSelected
		}
		b.WriteString(prefix + chip.Render(t.Name))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.Subtle.Render("r: rename everywhere • d: remove from this note"))
	b.WriteString("\n")
	b.WriteString(styles.Subtle.Render("j/k: move • esc: close"))
	return styles.ModalBox.Width(46).Render(b.String())
}

func (m Model) renderRenameDialog() string {
	var b strings.Builder
	b.WriteString(styles.ModalTitle.Render("Rename Tag"))
	b.WriteString("\n")
	b.WriteString(m.renameInput.View())
	b.WriteString("\n")
	if m.dialogErr != "" {
		b.WriteString("\n")
		b.WriteString(styles.ErrorText.Render(m.dialogErr))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(styles.Subtle.Render("renames the tag everywhere it is used"))
	b.WriteString("\n")
	b.WriteString(styles.Subtle.Render("enter: rename • esc: cancel"))
	return styles.ModalBox.Width(46).Render(b.String())
}

func (m Model) renderPasswordDialog() string {
	var b strings.Builder
	b.WriteString(styles.ModalTitle.Render("Change Password"))
	b.WriteString("\n")
	b.WriteString(styles.Muted.Render("Current"))
	b.WriteString("\n")
	b.WriteString(m.oldPassInput.View())
	b.WriteString("\n\n")
	b.WriteString(styles.Muted.Render("New"))
	b.WriteString("\n")
	b.WriteString(m.newPassInput.View())
	b.WriteString("\n")
	if m.dialogErr != "" {
		b.WriteString("\n")
		b.WriteString(styles.ErrorText.Render(m.dialogErr))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(styles.Subtle.Render("enter: change • esc: cancel"))
	return styles.ModalBox.Width(46).Render(b.String())
}

func (m Model) renderConfirmDialog() string {
	d := ui.NewConfirmDialog("", "")
	switch m.confirm {
	case confirmDelete:
		d.Title = "Move to Trash?"
		d.Message = "The note can be recovered from the Trash view."
		d.ConfirmLabel = " Delete "
	case confirmPurge:
		d.Title = "Delete Forever?"
		d.Message = "This permanently deletes the note. There is no undo."
		d.ConfirmLabel = " Delete Forever "
		d.Danger = true
	case confirmDeleteTagGlobal:
		d.Title = "Delete Tag?"
		d.Message = "The tag is removed from every note that carries it."
		d.ConfirmLabel = " Delete "
		d.Danger = true
	case confirmDiscardEdit:
		d.Title = "Discard Changes?"
		d.Message = "Unsaved changes to this note will be lost."
		d.ConfirmLabel = " Discard "
		d.Danger = true
	case confirmQuit:
		d.Title = "Quit inkwell?"
		d.Message = "Any unsaved work is lost."
		d.ConfirmLabel = " Quit "
	}
	return d.Render(m.confirmFocus)
}
