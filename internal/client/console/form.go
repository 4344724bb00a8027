package console

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/timmyz/newlongfor/internal/client/models"
)

// Field positions in the user form. The is_active toggle sits after the last
// text field as one more focusable item.
const (
	fieldUsername = iota
	fieldAccountID
	fieldCheckinTime
	fieldToken
	fieldUserToken
	fieldCookie
	fieldDxriskToken
	fieldChannel
	fieldBUCode
	fieldRiskSource
	numTextFields
)

type formMode int

const (
	formCreate formMode = iota
	formEdit
)

var fieldLabels = [numTextFields]string{
	"Username:",
	"Account ID:",
	"Check-in time:",
	"Token:",
	"X-LF-Usertoken:",
	"Cookie:",
	"X-LF-Dxrisk-Token:",
	"X-LF-Channel:",
	"X-LF-BU-Code:",
	"X-LF-Dxrisk-Source:",
}

// userForm is the one form reused for both creating and editing an account.
// mode and targetID decide the save routing: no target means create, a target
// means a full-field update addressed by that id.
type userForm struct {
	mode     formMode
	targetID *int64
	inputs   [numTextFields]textinput.Model
	active   bool
	focus    int
	title    string
}

func newUserForm() *userForm {
	placeholders := [numTextFields]string{
		"display name (required)",
		"external account id (required)",
		"HH:MM",
		"token",
		"x-lf-usertoken",
		"cookie",
		"x-lf-dxrisk-token",
		models.DefaultChannel,
		models.DefaultBUCode,
		models.DefaultRiskSource,
	}

	f := &userForm{}
	for i := range f.inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		f.inputs[i] = ti
	}
	return f
}

// openForCreate resets the form: blank credentials, active on, the default
// schedule, and the three documented header defaults.
func (f *userForm) openForCreate() {
	f.mode = formCreate
	f.targetID = nil
	f.title = "Add User"
	for i := range f.inputs {
		f.inputs[i].Reset()
	}
	f.inputs[fieldCheckinTime].SetValue(models.DefaultCheckinTime)
	f.inputs[fieldChannel].SetValue(models.DefaultChannel)
	f.inputs[fieldBUCode].SetValue(models.DefaultBUCode)
	f.inputs[fieldRiskSource].SetValue(models.DefaultRiskSource)
	f.active = true
	f.setFocus(fieldUsername)
}

// openForEdit populates every field from the record. Absent optional
// credentials become empty strings; the three defaulted headers fall back to
// their documented defaults.
func (f *userForm) openForEdit(rec models.UserRecord) {
	f.mode = formEdit
	id := rec.ID
	f.targetID = &id
	f.title = "Edit User: " + rec.Username

	p := models.PayloadFromRecord(rec)
	f.inputs[fieldUsername].SetValue(p.Username)
	f.inputs[fieldAccountID].SetValue(p.AccountID)
	f.inputs[fieldCheckinTime].SetValue(p.CheckinTime)
	f.inputs[fieldToken].SetValue(p.Token)
	f.inputs[fieldUserToken].SetValue(p.UserToken)
	f.inputs[fieldCookie].SetValue(p.Cookie)
	f.inputs[fieldDxriskToken].SetValue(p.DxriskToken)
	f.inputs[fieldChannel].SetValue(p.Channel)
	f.inputs[fieldBUCode].SetValue(p.BUCode)
	f.inputs[fieldRiskSource].SetValue(p.DxriskSource)
	f.active = p.IsActive
	f.setFocus(fieldUsername)
}

// payload extracts the complete field set exactly as entered, blanks
// included. The server always receives every field, never a sparse patch.
func (f *userForm) payload() models.UserPayload {
	return models.UserPayload{
		Username:     f.inputs[fieldUsername].Value(),
		AccountID:    f.inputs[fieldAccountID].Value(),
		IsActive:     f.active,
		CheckinTime:  f.inputs[fieldCheckinTime].Value(),
		Token:        f.inputs[fieldToken].Value(),
		UserToken:    f.inputs[fieldUserToken].Value(),
		Cookie:       f.inputs[fieldCookie].Value(),
		DxriskToken:  f.inputs[fieldDxriskToken].Value(),
		Channel:      f.inputs[fieldChannel].Value(),
		BUCode:       f.inputs[fieldBUCode].Value(),
		DxriskSource: f.inputs[fieldRiskSource].Value(),
	}
}

func (f *userForm) setFocus(i int) {
	for j := range f.inputs {
		f.inputs[j].Blur()
	}
	f.focus = i
	if i < numTextFields {
		f.inputs[i].Focus()
	}
}

// update routes a message into the form. It reports submit=true when the user
// confirmed the last field; the caller decides what a submission means.
func (f *userForm) update(msg tea.Msg) (submit bool, cmd tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "tab", "down":
			f.setFocus((f.focus + 1) % (numTextFields + 1))
			return false, textinput.Blink
		case "shift+tab", "up":
			f.setFocus((f.focus + numTextFields) % (numTextFields + 1))
			return false, textinput.Blink
		case "enter":
			if f.focus < numTextFields {
				f.setFocus(f.focus + 1)
				return false, textinput.Blink
			}
			return true, nil
		case " ":
			if f.focus == numTextFields {
				f.active = !f.active
				return false, nil
			}
		}
	}
	if f.focus < numTextFields {
		f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	}
	return false, cmd
}

func (f *userForm) view() string {
	lines := []string{styleTitle.Render(f.title), ""}

	for i := range f.inputs {
		label := fmt.Sprintf("  %-22s", fieldLabels[i])
		if i == f.focus {
			lines = append(lines, styleWarning.Render(label)+f.inputs[i].View())
		} else {
			lines = append(lines, styleDim.Render(label)+f.inputs[i].View())
		}
	}

	toggle := "[ ] scheduled check-in enabled"
	if f.active {
		toggle = "[x] scheduled check-in enabled"
	}
	label := fmt.Sprintf("  %-22s", "Active:")
	if f.focus == numTextFields {
		lines = append(lines, styleWarning.Render(label+toggle))
	} else {
		lines = append(lines, styleDim.Render(label+toggle))
	}

	lines = append(lines, "", styleHelp.Render("[Enter] next/save   [Space] toggle active   [Esc] cancel"))
	return strings.Join(lines, "\n")
}
