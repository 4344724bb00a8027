package console

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/timmyz/newlongfor/internal/client/models"
)

var settingsLabels = [2]string{"DingTalk webhook:", "DingTalk secret:"}

func (a *App) fetchSettingsCmd() tea.Cmd {
	c := a.client
	return func() tea.Msg {
		s, err := c.GetSettings(context.Background())
		return settingsLoadedMsg{settings: s, err: err}
	}
}

func (a *App) saveSettingsCmd(s models.SettingsRecord) tea.Cmd {
	c := a.client
	return func() tea.Msg {
		return settingsSavedMsg{err: c.SaveSettings(context.Background(), s)}
	}
}

func (a *App) onSettingsLoaded(msg settingsLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		// degrade quietly: the fields stay blank, the failure goes to the log
		a.log.Error(context.Background(), "settings fetch failed", "err", msg.err.Error())
		return a, nil
	}
	a.settings[0].SetValue(msg.settings.DingtalkWebhook)
	a.settings[1].SetValue(msg.settings.DingtalkSecret)
	return a, nil
}

func (a *App) onSettingsSaved(msg settingsSavedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		a.settingsMsg = "Failed to save settings: " + msg.err.Error()
		a.settingsErr = true
	} else {
		a.settingsMsg = "Notification settings saved"
		a.settingsErr = false
	}
	return a, nil
}

func (a *App) focusSettings(i int) tea.Cmd {
	for j := range a.settings {
		a.settings[j].Blur()
	}
	a.settingsFocus = i
	return a.settings[i].Focus()
}

func (a *App) updateSettingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab":
		a.view = viewPassword
		return a, a.focusPassword(0)
	case "esc":
		a.view = viewUsers
		return a, nil
	case "shift+tab", "up":
		return a, a.focusSettings((a.settingsFocus + len(a.settings) - 1) % len(a.settings))
	case "down":
		return a, a.focusSettings((a.settingsFocus + 1) % len(a.settings))
	case "enter":
		if a.settingsFocus < len(a.settings)-1 {
			return a, a.focusSettings(a.settingsFocus + 1)
		}
		record := models.SettingsRecord{
			DingtalkWebhook: a.settings[0].Value(),
			DingtalkSecret:  a.settings[1].Value(),
		}
		return a, a.saveSettingsCmd(record)
	}

	var cmd tea.Cmd
	a.settings[a.settingsFocus], cmd = a.settings[a.settingsFocus].Update(msg)
	return a, cmd
}

func (a *App) renderSettings() string {
	lines := []string{styleTitle.Render("Notification Settings"), ""}

	for i := range a.settings {
		label := fmt.Sprintf("  %-20s", settingsLabels[i])
		if i == a.settingsFocus {
			lines = append(lines, styleWarning.Render(label)+a.settings[i].View())
		} else {
			lines = append(lines, styleDim.Render(label)+a.settings[i].View())
		}
	}

	lines = append(lines, "")
	switch {
	case a.settingsMsg != "" && a.settingsErr:
		lines = append(lines, styleError.Render(a.settingsMsg))
	case a.settingsMsg != "":
		lines = append(lines, styleSuccess.Render(a.settingsMsg))
	default:
		lines = append(lines, "")
	}
	lines = append(lines, styleHelp.Render("[Enter] next/save   [Tab] password   [Esc] accounts"))
	return strings.Join(lines, "\n")
}
