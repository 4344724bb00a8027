// Package console implements the terminal admin console for the check-in
// server: the account table, the shared create/edit form, notification
// settings, and the admin password change.
//
// The console is a Bubble Tea program. Its update loop serializes all event
// handling on one goroutine while network commands run as independent
// in-flight operations, so handlers never race on render state. The account
// table is always rebuilt from the most recent completed list fetch; list
// fetches carry a fetchID and stale completions are discarded.
package console

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/timmyz/newlongfor/internal/client/api"
	"github.com/timmyz/newlongfor/internal/client/models"
	"github.com/timmyz/newlongfor/internal/logging"
)

type view int

const (
	viewUsers view = iota
	viewSettings
	viewPassword
)

type usersMode int

const (
	usersBrowse usersMode = iota
	usersEditing
	usersConfirmDel
)

// Messages produced by network commands.
type (
	usersLoadedMsg struct {
		users   []models.UserRecord
		err     error
		fetchID int64
	}
	editTargetMsg struct {
		user *models.UserRecord
		err  error
	}
	userSavedMsg struct {
		err error
	}
	userDeletedMsg struct {
		id  int64
		err error
	}
	settingsLoadedMsg struct {
		settings *models.SettingsRecord
		err      error
	}
	settingsSavedMsg struct {
		err error
	}
	passwordChangedMsg struct {
		result *api.PasswordChangeResult
		err    error
	}
)

// App is the admin console controller. All state transitions happen inside
// Update; the table, form, and status lines are derived fields, never shared
// mutable globals.
type App struct {
	client api.Client
	log    logging.Logger

	view view

	// account table
	rows      []Row
	cursor    int
	loading   bool
	loadErr   error
	fetchID   int64
	spinner   spinner.Model
	mode      usersMode
	form      *userForm
	formErr   string
	confirmID int64
	statusMsg string
	statusErr bool

	// notification settings
	settings      [2]textinput.Model
	settingsFocus int
	settingsMsg   string
	settingsErr   bool

	// admin password
	password      [3]textinput.Model
	passwordFocus int
	passwordMsg   string
	passwordErr   bool

	width  int
	height int
}

func NewApp(client api.Client, log logging.Logger) *App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	webhook := textinput.New()
	webhook.Placeholder = "https://oapi.dingtalk.com/robot/send?access_token=..."
	secret := textinput.New()
	secret.Placeholder = "signing secret"
	secret.EchoMode = textinput.EchoPassword

	var password [3]textinput.Model
	passwordPlaceholders := [3]string{"current password", "new password (min 4 chars)", "confirm new password"}
	for i := range password {
		ti := textinput.New()
		ti.Placeholder = passwordPlaceholders[i]
		ti.EchoMode = textinput.EchoPassword
		password[i] = ti
	}

	return &App{
		client:   client,
		log:      log,
		spinner:  sp,
		form:     newUserForm(),
		loading:  true,
		fetchID:  1,
		settings: [2]textinput.Model{webhook, secret},
		password: password,
	}
}

// Init fetches the user list and the settings concurrently. Either fetch
// failing degrades only its own section.
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.fetchUsersCmd(a.fetchID), a.fetchSettingsCmd(), a.spinner.Tick)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		if a.loading {
			return a, cmd
		}
		return a, nil

	case usersLoadedMsg:
		return a.onUsersLoaded(msg)
	case editTargetMsg:
		return a.onEditTarget(msg)
	case userSavedMsg:
		return a.onUserSaved(msg)
	case userDeletedMsg:
		return a.onUserDeleted(msg)
	case settingsLoadedMsg:
		return a.onSettingsLoaded(msg)
	case settingsSavedMsg:
		return a.onSettingsSaved(msg)
	case passwordChangedMsg:
		return a.onPasswordChanged(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		switch a.view {
		case viewUsers:
			return a.updateUsersKey(msg)
		case viewSettings:
			return a.updateSettingsKey(msg)
		case viewPassword:
			return a.updatePasswordKey(msg)
		}
	}
	return a, nil
}

func (a *App) View() string {
	var body string
	switch a.view {
	case viewUsers:
		body = a.renderUsers()
	case viewSettings:
		body = a.renderSettings()
	case viewPassword:
		body = a.renderPassword()
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(body)
}
