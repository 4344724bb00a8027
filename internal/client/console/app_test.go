package console

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/timmyz/newlongfor/internal/client/api"
	"github.com/timmyz/newlongfor/internal/client/models"
	"github.com/timmyz/newlongfor/internal/logging"
)

type fakeClient struct {
	users     []models.UserRecord
	listErr   error
	listCalls int

	createdPayload *models.UserPayload
	createErr      error

	updatedID      *int64
	updatedPayload *models.UserPayload
	updateErr      error

	deletedID *int64
	deleteErr error

	settings       models.SettingsRecord
	getSettingsErr error
	savedSettings  *models.SettingsRecord
	saveErr        error

	pwReq    *models.PasswordChangeRequest
	pwResult *api.PasswordChangeResult
	pwErr    error
}

func (f *fakeClient) ListUsers(context.Context) ([]models.UserRecord, error) {
	f.listCalls++
	return f.users, f.listErr
}

func (f *fakeClient) CreateUser(_ context.Context, p models.UserPayload) (*models.UserRecord, error) {
	f.createdPayload = &p
	return &models.UserRecord{ID: 100}, f.createErr
}

func (f *fakeClient) UpdateUser(_ context.Context, id int64, p models.UserPayload) (*models.UserRecord, error) {
	f.updatedID, f.updatedPayload = &id, &p
	return &models.UserRecord{ID: id}, f.updateErr
}

func (f *fakeClient) DeleteUser(_ context.Context, id int64) error {
	f.deletedID = &id
	return f.deleteErr
}

func (f *fakeClient) GetSettings(context.Context) (*models.SettingsRecord, error) {
	if f.getSettingsErr != nil {
		return nil, f.getSettingsErr
	}
	return &f.settings, nil
}

func (f *fakeClient) SaveSettings(_ context.Context, s models.SettingsRecord) error {
	f.savedSettings = &s
	return f.saveErr
}

func (f *fakeClient) ChangePassword(_ context.Context, req models.PasswordChangeRequest) (*api.PasswordChangeResult, error) {
	f.pwReq = &req
	return f.pwResult, f.pwErr
}

func newTestApp(f *fakeClient) *App {
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	return NewApp(f, log)
}

func loadUsers(t *testing.T, a *App) {
	t.Helper()
	msg := a.fetchUsersCmd(a.fetchID)()
	_, _ = a.Update(msg)
	require.NoError(t, a.loadErr)
}

func TestInitialLoad_BuildsRows(t *testing.T) {
	f := &fakeClient{users: []models.UserRecord{
		{ID: 1, Username: "a", AccountID: "x", IsActive: true},
		{ID: 2, Username: "b", AccountID: "y"},
	}}
	a := newTestApp(f)

	loadUsers(t, a)

	require.False(t, a.loading)
	require.Len(t, a.rows, 2)
	require.Equal(t, "N/A", a.rows[0].LastRun)
	require.True(t, a.rows[0].Active)
}

func TestInitialLoad_FailureShowsInlineError(t *testing.T) {
	f := &fakeClient{listErr: errors.New("connection refused")}
	a := newTestApp(f)

	msg := a.fetchUsersCmd(a.fetchID)()
	_, _ = a.Update(msg)

	require.Error(t, a.loadErr)
	require.Contains(t, a.View(), "Failed to load accounts")
}

func TestStaleFetchDiscarded(t *testing.T) {
	f := &fakeClient{users: []models.UserRecord{{ID: 1, Username: "fresh"}}}
	a := newTestApp(f)
	loadUsers(t, a)

	// a newer fetch is now in flight; the old completion must not win
	a.refreshUsers()
	stale := usersLoadedMsg{users: []models.UserRecord{{ID: 9, Username: "stale"}}, fetchID: a.fetchID - 1}
	_, _ = a.Update(stale)

	require.Equal(t, "fresh", a.rows[0].Username)
}

func TestEdit_OpensFormForExistingID(t *testing.T) {
	f := &fakeClient{users: []models.UserRecord{{ID: 7, Username: "seven", AccountID: "acc"}}}
	a := newTestApp(f)
	loadUsers(t, a)

	msg := a.editTargetCmd(7)()
	_, _ = a.Update(msg)

	require.Equal(t, usersEditing, a.mode)
	require.NotNil(t, a.form.targetID)
	require.Equal(t, int64(7), *a.form.targetID)
	require.Equal(t, "seven", a.form.payload().Username)
}

// The edit refetch runs against live data: an id deleted in the meantime is
// simply not there anymore, and the form must not open.
func TestEdit_VanishedIDSilentlyAbandoned(t *testing.T) {
	f := &fakeClient{users: []models.UserRecord{{ID: 1}}}
	a := newTestApp(f)
	loadUsers(t, a)

	msg := a.editTargetCmd(7)()
	_, _ = a.Update(msg)

	require.Equal(t, usersBrowse, a.mode)
	require.False(t, a.statusErr)
	require.Empty(t, a.statusMsg)
}

func TestSave_RoutesCreateWhenNoTarget(t *testing.T) {
	f := &fakeClient{}
	a := newTestApp(f)
	a.form.openForCreate()
	a.form.inputs[fieldUsername].SetValue("u")
	a.form.inputs[fieldAccountID].SetValue("acc")

	msg := a.saveUserCmd(a.form)()
	_, _ = a.Update(msg)

	require.NotNil(t, f.createdPayload)
	require.Nil(t, f.updatedID)
	require.Equal(t, "u", f.createdPayload.Username)
}

func TestSave_RoutesUpdateWhenTargetSet(t *testing.T) {
	f := &fakeClient{}
	a := newTestApp(f)
	a.form.openForEdit(models.UserRecord{ID: 7, Username: "seven", AccountID: "acc"})

	msg := a.saveUserCmd(a.form)()
	_, _ = a.Update(msg)

	require.Nil(t, f.createdPayload)
	require.NotNil(t, f.updatedID)
	require.Equal(t, int64(7), *f.updatedID)
	// full-field replace: blanks included
	require.Equal(t, "", f.updatedPayload.Cookie)
}

func TestSave_SuccessClosesFormAndRefreshes(t *testing.T) {
	f := &fakeClient{}
	a := newTestApp(f)
	a.mode = usersEditing
	before := a.fetchID

	_, cmd := a.Update(userSavedMsg{})

	require.Equal(t, usersBrowse, a.mode)
	require.NotNil(t, cmd)
	require.Greater(t, a.fetchID, before)
}

func TestSave_FailureKeepsFormOpen(t *testing.T) {
	f := &fakeClient{}
	a := newTestApp(f)
	a.form.openForEdit(models.UserRecord{ID: 3, Username: "keep", AccountID: "acc"})
	a.mode = usersEditing

	_, cmd := a.Update(userSavedMsg{err: errors.New("boom")})

	require.Equal(t, usersEditing, a.mode)
	require.Nil(t, cmd)
	require.Contains(t, a.formErr, "boom")
	// entered values survive the failure
	require.Equal(t, "keep", a.form.payload().Username)
}

func TestDelete_FailureKeepsStaleRows(t *testing.T) {
	f := &fakeClient{users: []models.UserRecord{{ID: 5, Username: "five"}}}
	a := newTestApp(f)
	loadUsers(t, a)

	_, cmd := a.Update(userDeletedMsg{id: 5, err: errors.New("boom")})

	require.Nil(t, cmd) // no refresh: the table keeps its pre-delete state
	require.Len(t, a.rows, 1)
	require.Equal(t, int64(5), a.rows[0].ID)
	require.True(t, a.statusErr)
}

func TestDelete_SuccessRefreshes(t *testing.T) {
	f := &fakeClient{users: []models.UserRecord{{ID: 5}}}
	a := newTestApp(f)
	loadUsers(t, a)
	before := a.fetchID

	_, cmd := a.Update(userDeletedMsg{id: 5})

	require.NotNil(t, cmd)
	require.Greater(t, a.fetchID, before)
	require.False(t, a.statusErr)
}

func TestSettings_LoadPopulatesFields(t *testing.T) {
	f := &fakeClient{settings: models.SettingsRecord{DingtalkWebhook: "https://hook", DingtalkSecret: "s"}}
	a := newTestApp(f)

	msg := a.fetchSettingsCmd()()
	_, _ = a.Update(msg)

	require.Equal(t, "https://hook", a.settings[0].Value())
	require.Equal(t, "s", a.settings[1].Value())
}

// A settings fetch failure degrades only its own section.
func TestSettings_LoadFailureLeavesFieldsBlank(t *testing.T) {
	f := &fakeClient{getSettingsErr: errors.New("boom")}
	a := newTestApp(f)

	msg := a.fetchSettingsCmd()()
	_, _ = a.Update(msg)

	require.Empty(t, a.settings[0].Value())
	require.Empty(t, a.settings[1].Value())
	require.Empty(t, a.settingsMsg)
}

func TestSettings_SaveOutcomes(t *testing.T) {
	f := &fakeClient{}
	a := newTestApp(f)

	_, _ = a.Update(settingsSavedMsg{})
	require.False(t, a.settingsErr)
	require.Contains(t, a.settingsMsg, "saved")

	_, _ = a.Update(settingsSavedMsg{err: errors.New("boom")})
	require.True(t, a.settingsErr)
}

func TestPassword_ValidationShortCircuits(t *testing.T) {
	f := &fakeClient{}
	a := newTestApp(f)
	a.password[0].SetValue("old")
	a.password[1].SetValue("abc")
	a.password[2].SetValue("abcd")

	cmd := a.submitPassword()

	require.Nil(t, cmd)
	require.Nil(t, f.pwReq) // no network call for a client-detectable violation
	require.True(t, a.passwordErr)
	require.Equal(t, ErrPasswordMismatch.Error(), a.passwordMsg)
}

func TestPassword_ValidSubmitCallsServer(t *testing.T) {
	f := &fakeClient{pwResult: &api.PasswordChangeResult{OK: true}}
	a := newTestApp(f)
	a.password[0].SetValue("old")
	a.password[1].SetValue("abcd")
	a.password[2].SetValue("abcd")

	cmd := a.submitPassword()
	require.NotNil(t, cmd)

	_, _ = a.Update(cmd())

	require.NotNil(t, f.pwReq)
	require.Equal(t, "old", f.pwReq.CurrentPassword)
	require.Equal(t, "abcd", f.pwReq.NewPassword)
	require.False(t, a.passwordErr)
	// the transient request is never rendered back
	require.Empty(t, a.password[0].Value())
	require.Empty(t, a.password[1].Value())
}

func TestPassword_ServerRejectionSurfacesMessage(t *testing.T) {
	f := &fakeClient{pwResult: &api.PasswordChangeResult{OK: false, Message: "当前密码错误"}}
	a := newTestApp(f)

	_, _ = a.Update(passwordChangedMsg{result: f.pwResult})

	require.True(t, a.passwordErr)
	require.Equal(t, "当前密码错误", a.passwordMsg)
}

func TestView_RendersTableRows(t *testing.T) {
	f := &fakeClient{users: []models.UserRecord{
		{ID: 1, Username: "alice", AccountID: "x", IsActive: true, LastCheckinStatus: "签到成功"},
	}}
	a := newTestApp(f)
	loadUsers(t, a)

	out := a.View()
	require.True(t, strings.Contains(out, "alice"))
	require.True(t, strings.Contains(out, "enabled"))
	require.True(t, strings.Contains(out, "N/A"))
}
