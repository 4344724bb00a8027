package console

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/timmyz/newlongfor/internal/client/models"
)

var passwordLabels = [3]string{"Current password:", "New password:", "Confirm password:"}

func (a *App) changePasswordCmd(req models.PasswordChangeRequest) tea.Cmd {
	c := a.client
	return func() tea.Msg {
		result, err := c.ChangePassword(context.Background(), req)
		return passwordChangedMsg{result: result, err: err}
	}
}

// submitPassword validates locally first; client-detectable violations never
// reach the network.
func (a *App) submitPassword() tea.Cmd {
	current := a.password[0].Value()
	newPassword := a.password[1].Value()
	confirm := a.password[2].Value()

	if err := ValidatePasswordChange(current, newPassword, confirm); err != nil {
		a.passwordMsg = err.Error()
		a.passwordErr = true
		return nil
	}
	return a.changePasswordCmd(models.PasswordChangeRequest{
		CurrentPassword: current,
		NewPassword:     newPassword,
	})
}

func (a *App) onPasswordChanged(msg passwordChangedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		a.passwordMsg = "Failed to change password: " + msg.err.Error()
		a.passwordErr = true
		return a, nil
	}
	if !msg.result.OK {
		// the server's own message, e.g. a wrong current password
		m := msg.result.Message
		if m == "" {
			m = "password change rejected"
		}
		a.passwordMsg = m
		a.passwordErr = true
		return a, nil
	}
	a.passwordMsg = "Password changed"
	a.passwordErr = false
	for i := range a.password {
		a.password[i].Reset()
	}
	return a, a.focusPassword(0)
}

func (a *App) focusPassword(i int) tea.Cmd {
	for j := range a.password {
		a.password[j].Blur()
	}
	a.passwordFocus = i
	return a.password[i].Focus()
}

func (a *App) updatePasswordKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "esc":
		a.view = viewUsers
		return a, nil
	case "shift+tab", "up":
		return a, a.focusPassword((a.passwordFocus + len(a.password) - 1) % len(a.password))
	case "down":
		return a, a.focusPassword((a.passwordFocus + 1) % len(a.password))
	case "enter":
		if a.passwordFocus < len(a.password)-1 {
			return a, a.focusPassword(a.passwordFocus + 1)
		}
		return a, a.submitPassword()
	}

	var cmd tea.Cmd
	a.password[a.passwordFocus], cmd = a.password[a.passwordFocus].Update(msg)
	return a, cmd
}

func (a *App) renderPassword() string {
	lines := []string{styleTitle.Render("Admin Password"), ""}

	for i := range a.password {
		label := fmt.Sprintf("  %-20s", passwordLabels[i])
		if i == a.passwordFocus {
			lines = append(lines, styleWarning.Render(label)+a.password[i].View())
		} else {
			lines = append(lines, styleDim.Render(label)+a.password[i].View())
		}
	}

	lines = append(lines, "")
	switch {
	case a.passwordMsg != "" && a.passwordErr:
		lines = append(lines, styleError.Render(a.passwordMsg))
	case a.passwordMsg != "":
		lines = append(lines, styleSuccess.Render(a.passwordMsg))
	default:
		lines = append(lines, "")
	}
	lines = append(lines, styleHelp.Render("[Enter] next/submit   [Tab] accounts   [Esc] accounts"))
	return strings.Join(lines, "\n")
}
