package console

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

var userColumns = []struct {
	title string
	width int
}{
	{"ID", 4},
	{"USERNAME", 14},
	{"ACCOUNT", 16},
	{"STATUS", 8},
	{"SCHEDULE", 8},
	{"LAST RUN", 19},
	{"RESULT", 26},
}

func (a *App) fetchUsersCmd(fetchID int64) tea.Cmd {
	c := a.client
	return func() tea.Msg {
		users, err := c.ListUsers(context.Background())
		return usersLoadedMsg{users: users, err: err, fetchID: fetchID}
	}
}

// refreshUsers starts a new tagged list fetch; any fetch still in flight
// becomes stale and its completion will be discarded.
func (a *App) refreshUsers() tea.Cmd {
	a.loading = true
	a.fetchID++
	return tea.Batch(a.fetchUsersCmd(a.fetchID), a.spinner.Tick)
}

// editTargetCmd re-fetches the full list and locates the record by id. There
// is no get-by-id endpoint. A nil user means the record vanished between
// render and refetch; the edit is then abandoned without complaint.
func (a *App) editTargetCmd(id int64) tea.Cmd {
	c := a.client
	return func() tea.Msg {
		users, err := c.ListUsers(context.Background())
		if err != nil {
			return editTargetMsg{err: err}
		}
		for i := range users {
			if users[i].ID == id {
				return editTargetMsg{user: &users[i]}
			}
		}
		return editTargetMsg{}
	}
}

func (a *App) saveUserCmd(f *userForm) tea.Cmd {
	c := a.client
	targetID := f.targetID
	p := f.payload()
	return func() tea.Msg {
		ctx := context.Background()
		var err error
		if targetID == nil {
			_, err = c.CreateUser(ctx, p)
		} else {
			_, err = c.UpdateUser(ctx, *targetID, p)
		}
		return userSavedMsg{err: err}
	}
}

func (a *App) deleteUserCmd(id int64) tea.Cmd {
	c := a.client
	return func() tea.Msg {
		return userDeletedMsg{id: id, err: c.DeleteUser(context.Background(), id)}
	}
}

func (a *App) onUsersLoaded(msg usersLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.fetchID != a.fetchID {
		// stale completion from an earlier fetch
		return a, nil
	}
	a.loading = false
	if msg.err != nil {
		a.loadErr = msg.err
		a.log.Error(context.Background(), "user list fetch failed", "err", msg.err.Error())
		return a, nil
	}
	a.loadErr = nil
	a.rows = BuildRows(msg.users)
	if a.cursor >= len(a.rows) {
		a.cursor = len(a.rows) - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
	return a, nil
}

func (a *App) onEditTarget(msg editTargetMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		a.statusMsg = "Failed to load user: " + msg.err.Error()
		a.statusErr = true
		return a, nil
	}
	if msg.user == nil {
		return a, nil
	}
	a.form.openForEdit(*msg.user)
	a.formErr = ""
	a.mode = usersEditing
	return a, textinput.Blink
}

func (a *App) onUserSaved(msg userSavedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		// the form stays open with the entered values intact
		a.formErr = "Save failed: " + msg.err.Error()
		return a, nil
	}
	a.mode = usersBrowse
	a.formErr = ""
	a.statusMsg = "User saved"
	a.statusErr = false
	return a, a.refreshUsers()
}

func (a *App) onUserDeleted(msg userDeletedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		// the stale row stays visible until the next successful refresh
		a.statusMsg = fmt.Sprintf("Failed to delete user %d: %v", msg.id, msg.err)
		a.statusErr = true
		return a, nil
	}
	a.statusMsg = fmt.Sprintf("User %d deleted", msg.id)
	a.statusErr = false
	return a, a.refreshUsers()
}

func (a *App) updateUsersKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.mode {
	case usersEditing:
		if msg.String() == "esc" {
			a.mode = usersBrowse
			a.formErr = ""
			return a, nil
		}
		submit, cmd := a.form.update(msg)
		if !submit {
			return a, cmd
		}
		p := a.form.payload()
		if strings.TrimSpace(p.Username) == "" || strings.TrimSpace(p.AccountID) == "" {
			a.formErr = "username and account id are required"
			return a, nil
		}
		return a, a.saveUserCmd(a.form)

	case usersConfirmDel:
		switch msg.String() {
		case "enter", "y":
			a.mode = usersBrowse
			return a, a.deleteUserCmd(a.confirmID)
		case "esc", "n":
			a.mode = usersBrowse
		}
		return a, nil
	}

	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "tab":
		a.view = viewSettings
		return a, a.focusSettings(0)
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
	case "down", "j":
		if a.cursor < len(a.rows)-1 {
			a.cursor++
		}
	case "a":
		a.form.openForCreate()
		a.formErr = ""
		a.mode = usersEditing
		return a, textinput.Blink
	case "e", "enter":
		if len(a.rows) == 0 {
			return a, nil
		}
		return a, a.editTargetCmd(a.rows[a.cursor].ID)
	case "d":
		if len(a.rows) == 0 {
			return a, nil
		}
		a.confirmID = a.rows[a.cursor].ID
		a.mode = usersConfirmDel
	case "r":
		return a, a.refreshUsers()
	}
	return a, nil
}

func (a *App) renderUsers() string {
	title := styleTitle.Render("Check-in Accounts")

	if a.mode == usersEditing {
		lines := []string{a.form.view()}
		if a.formErr != "" {
			lines = append(lines, "", styleError.Render(a.formErr))
		}
		return strings.Join(lines, "\n")
	}

	if a.loading {
		return title + "\n\n" + styleWarning.Render(a.spinner.View()+" Loading...")
	}

	var lines []string
	lines = append(lines, title+styleDim.Render(fmt.Sprintf(" (%d)", len(a.rows))))
	lines = append(lines, "")
	lines = append(lines, a.renderTable()...)

	if a.mode == usersConfirmDel {
		lines = append(lines, "",
			styleWarning.Render(fmt.Sprintf("Delete user %d? [Enter] confirm   [Esc] cancel", a.confirmID)))
		return strings.Join(lines, "\n")
	}

	lines = append(lines, "")
	switch {
	case a.statusMsg != "" && a.statusErr:
		lines = append(lines, styleError.Render(a.statusMsg))
	case a.statusMsg != "":
		lines = append(lines, styleSuccess.Render(a.statusMsg))
	default:
		lines = append(lines, "")
	}
	lines = append(lines, styleHelp.Render("[a] add   [e] edit   [d] delete   [r] refresh  |  [Tab] settings"))
	lines = append(lines, styleHelp.Render("[q] quit"))
	return strings.Join(lines, "\n")
}

func (a *App) renderTable() []string {
	if a.loadErr != nil {
		return []string{styleError.Render("Failed to load accounts: " + a.loadErr.Error())}
	}

	var header strings.Builder
	header.WriteString("  ")
	for _, col := range userColumns {
		header.WriteString(cell(col.title, col.width))
		header.WriteString(" ")
	}
	lines := []string{styleHeader.Render(header.String())}

	if len(a.rows) == 0 {
		return append(lines, styleDim.Render("  no accounts yet, press [a] to add one"))
	}

	for i, r := range a.rows {
		prefix := "  "
		if i == a.cursor {
			prefix = styleWarning.Render("> ")
		}

		badge := styleBadgeOff.Render(cell("disabled", userColumns[3].width))
		if r.Active {
			badge = styleBadgeOn.Render(cell("enabled", userColumns[3].width))
		}
		result := cell(r.Status, userColumns[6].width)
		if r.StatusErr {
			result = styleError.Render(result)
		}

		line := prefix +
			cell(strconv.FormatInt(r.ID, 10), userColumns[0].width) + " " +
			cell(r.Username, userColumns[1].width) + " " +
			cell(r.AccountID, userColumns[2].width) + " " +
			badge + " " +
			cell(r.CheckinTime, userColumns[4].width) + " " +
			cell(r.LastRun, userColumns[5].width) + " " +
			result
		lines = append(lines, line)
	}
	return lines
}
