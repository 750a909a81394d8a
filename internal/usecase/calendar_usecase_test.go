package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"goal-tracker/internal/config"
	"goal-tracker/internal/domain/entity"
)

type calendarFixture struct {
	users        *fakeUserRepo
	appointments *fakeAppointmentRepo
	settings     *fakeSettingsRepo
	notifier     *fakeNotifier
	tokens       *fakeTokenService
	states       *fakeStateStore
	client       *fakeCalendarClient
	usecase      CalendarUsecase
}

func newCalendarFixture(users ...*entity.User) *calendarFixture {
	f := &calendarFixture{
		users:        newFakeUserRepo(users...),
		appointments: &fakeAppointmentRepo{},
		settings:     newFakeSettingsRepo(),
		notifier:     &fakeNotifier{},
		states:       &fakeStateStore{states: make(map[string]string)},
		client:       &fakeCalendarClient{failOn: make(map[string]bool)},
	}
	f.tokens = &fakeTokenService{users: f.users}

	cfg := &config.Config{
		Google: config.GoogleConfig{TimeZone: "Europe/Berlin"},
		Export: config.ExportConfig{Concurrency: 3},
	}
	f.usecase = NewCalendarUsecase(cfg, f.users, f.appointments, f.settings, f.notifier,
		f.tokens, f.states, f.client, zap.NewNop())
	return f
}

func (f *calendarFixture) addAppointments(userID string, n int) []string {
	ids := make([]string, 0, n)
	for i := 0; i < n; i++ {
		id := testID(i)
		f.appointments.appointments = append(f.appointments.appointments, entity.Appointment{
			ID:          id,
			UserID:      userID,
			DateStart:   time.Date(2024, 5, i+1, 7, 0, 0, 0, time.UTC),
			Details:     fmt.Sprintf("Session %d", i),
			Amount:      float64(i + 1),
			MeasureUnit: "km",
		})
		ids = append(ids, id)
	}
	return ids
}

func TestExportAppointments_PartialFailure(t *testing.T) {
	f := newCalendarFixture(connectedUser(userA, time.Now().Add(time.Hour)))
	ids := f.addAppointments(userA, 5)
	f.client.failOn["Session 1"] = true
	f.client.failOn["Session 3"] = true

	summary, err := f.usecase.ExportAppointments(context.Background(), &entity.ExportRequest{
		UserID:         userA,
		AppointmentIDs: ids,
	})
	require.NoError(t, err)

	require.Len(t, summary.Results, 5)
	assert.Equal(t, 3, summary.Succeeded)
	assert.Equal(t, 5, summary.Total)
	assert.Equal(t, "Exported 3 of 5 appointments", summary.Message)

	for i, r := range summary.Results {
		assert.Equal(t, ids[i], r.AppointmentID, "results keep appointment order")
		assert.Equal(t, entity.ExportTypeEvent, r.Type)
		if i == 1 || i == 3 {
			assert.False(t, r.Success)
			assert.Contains(t, r.Error, "provider request failed")
		} else {
			assert.True(t, r.Success)
			assert.NotEmpty(t, r.ExternalID)
		}
	}

	assert.Contains(t, f.settings.synced, userA)
	require.Len(t, f.notifier.sent, 1)
	assert.Equal(t, "Calendar Export Complete", f.notifier.sent[0].title)
	assert.Equal(t, "Successfully exported 3 of 5 appointments to Google Calendar.", f.notifier.sent[0].message)
}

func TestExportAppointments_AsTasks(t *testing.T) {
	f := newCalendarFixture(connectedUser(userA, time.Now().Add(time.Hour)))
	ids := f.addAppointments(userA, 2)

	summary, err := f.usecase.ExportAppointments(context.Background(), &entity.ExportRequest{
		UserID:             userA,
		AppointmentIDs:     ids,
		ExportAsTask:       true,
		IncludeAmount:      true,
		IncludeMeasureUnit: true,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Succeeded)
	assert.Len(t, f.client.tasks, 2)
	assert.Empty(t, f.client.events)
	for _, r := range summary.Results {
		assert.Equal(t, entity.ExportTypeTask, r.Type)
	}
	assert.Equal(t, "Successfully exported 2 of 2 appointments to Google Tasks.", f.notifier.sent[0].message)
}

func TestExportAppointments_UsesConfiguredTimeZone(t *testing.T) {
	f := newCalendarFixture(connectedUser(userA, time.Now().Add(time.Hour)))
	ids := f.addAppointments(userA, 1)

	_, err := f.usecase.ExportAppointments(context.Background(), &entity.ExportRequest{UserID: userA, AppointmentIDs: ids})
	require.NoError(t, err)

	require.Len(t, f.client.events, 1)
	assert.Equal(t, "Europe/Berlin", f.client.events[0].Start.TimeZone)
}

func TestExportAppointments_DisconnectedUserMakesNoCalls(t *testing.T) {
	f := newCalendarFixture(connectedUser(userA, time.Now().Add(time.Hour)))
	ids := f.addAppointments(userA, 3)
	ctx := context.Background()

	require.NoError(t, f.usecase.Disconnect(ctx, userA))

	user, err := f.users.FindByID(ctx, userA)
	require.NoError(t, err)
	assert.Nil(t, user.GoogleAccessToken)
	assert.Nil(t, user.GoogleRefreshToken)
	assert.Nil(t, user.GoogleTokenExpiry)

	_, err = f.usecase.ExportAppointments(ctx, &entity.ExportRequest{UserID: userA, AppointmentIDs: ids})
	assert.ErrorIs(t, err, entity.ErrNotConnected)
	assert.Zero(t, f.tokens.ensureCalls)
	assert.Zero(t, f.client.calls)
}

func TestExportAppointments_RefreshFailureIsFatal(t *testing.T) {
	f := newCalendarFixture(connectedUser(userA, time.Now()))
	ids := f.addAppointments(userA, 2)
	f.tokens.refreshErr = fmt.Errorf("%w: status 400 invalid_grant", entity.ErrRefreshFailed)

	_, err := f.usecase.ExportAppointments(context.Background(), &entity.ExportRequest{UserID: userA, AppointmentIDs: ids})

	assert.ErrorIs(t, err, entity.ErrRefreshFailed)
	assert.Zero(t, f.client.calls)
	assert.Empty(t, f.notifier.sent)
}

func TestExportAppointments_NothingFound(t *testing.T) {
	f := newCalendarFixture(connectedUser(userA, time.Now().Add(time.Hour)))
	f.addAppointments(userB, 2)

	_, err := f.usecase.ExportAppointments(context.Background(), &entity.ExportRequest{
		UserID:         userA,
		AppointmentIDs: []string{testID(0), testID(1)},
	})
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestExportAppointments_Validation(t *testing.T) {
	f := newCalendarFixture()

	_, err := f.usecase.ExportAppointments(context.Background(), &entity.ExportRequest{UserID: userA})
	require.ErrorIs(t, err, entity.ErrValidation)
	assert.NotEmpty(t, ValidationDetails(err))

	_, err = f.usecase.ExportAppointments(context.Background(), &entity.ExportRequest{
		UserID:          userA,
		AppointmentIDs:  []string{testID(9)},
		ReminderMinutes: entity.MaxReminderMinutes + 1,
	})
	assert.ErrorIs(t, err, entity.ErrValidation)
}

func TestCallback_ProviderErrorNeverPersists(t *testing.T) {
	f := newCalendarFixture(&entity.User{ID: userA})
	ctx := context.Background()
	state, err := f.states.Issue(ctx, userA)
	require.NoError(t, err)

	_, err = f.usecase.Callback(ctx, entity.OAuthCallback{Code: "abc", State: state, Error: "access_denied"})
	assert.ErrorIs(t, err, entity.ErrOAuthDenied)

	user, _ := f.users.FindByID(ctx, userA)
	assert.Nil(t, user.Credential())
	assert.Nil(t, user.GoogleAccessToken)
	assert.Empty(t, f.settings.settings)
	assert.Empty(t, f.notifier.sent)
}

func TestCallback_MissingParams(t *testing.T) {
	f := newCalendarFixture(&entity.User{ID: userA})

	_, err := f.usecase.Callback(context.Background(), entity.OAuthCallback{State: "nonce-1"})
	require.ErrorIs(t, err, entity.ErrValidation)
	assert.Equal(t, []string{"missing_params"}, ValidationDetails(err))
}

func TestCallback_UnknownState(t *testing.T) {
	f := newCalendarFixture(&entity.User{ID: userA})

	_, err := f.usecase.Callback(context.Background(), entity.OAuthCallback{Code: "abc", State: userA})
	assert.ErrorIs(t, err, entity.ErrInvalidState)
}

func TestCallback_TokenExchangeFailure(t *testing.T) {
	f := newCalendarFixture(&entity.User{ID: userA})
	f.tokens.exchangeErr = fmt.Errorf("%w: status 400 invalid_grant", entity.ErrTokenExchange)
	ctx := context.Background()
	state, _ := f.states.Issue(ctx, userA)

	_, err := f.usecase.Callback(ctx, entity.OAuthCallback{Code: "abc", State: state})
	assert.ErrorIs(t, err, entity.ErrTokenExchange)

	user, _ := f.users.FindByID(ctx, userA)
	assert.Nil(t, user.Credential())
}

func TestConnectAndCallback_Success(t *testing.T) {
	f := newCalendarFixture(&entity.User{ID: userA})
	expiresAt := time.Now().Add(time.Hour)
	f.tokens.exchanged = &entity.Credential{AccessToken: "at", RefreshToken: "rt", ExpiresAt: &expiresAt}
	ctx := context.Background()

	authURL, err := f.usecase.Connect(ctx, userA)
	require.NoError(t, err)
	assert.Contains(t, authURL, "state=nonce-1")
	assert.NotContains(t, authURL, "state=u1")

	userID, err := f.usecase.Callback(ctx, entity.OAuthCallback{Code: "abc", State: "nonce-1"})
	require.NoError(t, err)
	assert.Equal(t, userA, userID)

	user, _ := f.users.FindByID(ctx, userA)
	require.NotNil(t, user.Credential())
	assert.Equal(t, "at", user.Credential().AccessToken)

	settings := f.settings.settings[userA]
	require.NotNil(t, settings)
	assert.Equal(t, 30, settings.ReminderMinutes)
	assert.True(t, settings.IncludeAmount)

	require.Len(t, f.notifier.sent, 1)
	assert.Equal(t, "Google Calendar Connected", f.notifier.sent[0].title)

	// A nonce is good for one callback only
	_, err = f.usecase.Callback(ctx, entity.OAuthCallback{Code: "abc", State: "nonce-1"})
	assert.ErrorIs(t, err, entity.ErrInvalidState)
}

func TestCallback_SettingsFailureLeavesUserDisconnected(t *testing.T) {
	f := newCalendarFixture(&entity.User{ID: userA})
	expiresAt := time.Now().Add(time.Hour)
	f.tokens.exchanged = &entity.Credential{AccessToken: "at", RefreshToken: "rt", ExpiresAt: &expiresAt}
	f.settings.createErr = errors.New("insert failed")
	ctx := context.Background()
	state, _ := f.states.Issue(ctx, userA)

	_, err := f.usecase.Callback(ctx, entity.OAuthCallback{Code: "abc", State: state})
	require.Error(t, err)

	user, _ := f.users.FindByID(ctx, userA)
	assert.Nil(t, user.Credential())
	assert.Empty(t, f.notifier.sent)
}

func TestCalendarUsecase_RejectsMalformedIDs(t *testing.T) {
	f := newCalendarFixture(connectedUser(userA, time.Now().Add(time.Hour)))
	ctx := context.Background()

	_, err := f.usecase.ExportAppointments(ctx, &entity.ExportRequest{
		UserID:         "not-a-uuid",
		AppointmentIDs: []string{"also-bad"},
	})
	require.ErrorIs(t, err, entity.ErrValidation)
	assert.ElementsMatch(t, []string{
		"user_id must be a valid UUID",
		"appointment_ids[0] must be a valid UUID",
	}, ValidationDetails(err))

	_, err = f.usecase.Connect(ctx, "foo")
	assert.ErrorIs(t, err, entity.ErrValidation)
	_, err = f.usecase.GetSettings(ctx, "foo")
	assert.ErrorIs(t, err, entity.ErrValidation)
	assert.ErrorIs(t, f.usecase.Disconnect(ctx, "foo"), entity.ErrValidation)
	_, err = f.usecase.UpdateSettings(ctx, &entity.CalendarSettingsRequest{UserID: "foo"})
	assert.ErrorIs(t, err, entity.ErrValidation)

	// Nothing reached a repository or the provider
	assert.Empty(t, f.states.states)
	assert.Zero(t, f.tokens.ensureCalls)
	assert.Zero(t, f.client.calls)
	user, _ := f.users.FindByID(ctx, userA)
	assert.NotNil(t, user.Credential())
}

func TestConnect_UnknownUser(t *testing.T) {
	f := newCalendarFixture()

	_, err := f.usecase.Connect(context.Background(), testID(99))
	assert.ErrorIs(t, err, entity.ErrNotFound)
	assert.Empty(t, f.states.states)
}

func TestGetSettings(t *testing.T) {
	expiresAt := time.Now().Add(time.Hour)
	f := newCalendarFixture(connectedUser(userA, expiresAt), &entity.User{ID: userB})
	ctx := context.Background()
	require.NoError(t, f.settings.CreateIfMissing(ctx, entity.DefaultCalendarIntegration(userA)))

	status, err := f.usecase.GetSettings(ctx, userA)
	require.NoError(t, err)
	assert.True(t, status.Connected)
	require.NotNil(t, status.TokenExpiry)
	assert.True(t, status.TokenExpiry.Equal(expiresAt))
	assert.NotNil(t, status.Settings)

	status, err = f.usecase.GetSettings(ctx, userB)
	require.NoError(t, err)
	assert.False(t, status.Connected)
	assert.Nil(t, status.TokenExpiry)
	assert.Nil(t, status.Settings)
}

func TestUpdateSettings(t *testing.T) {
	f := newCalendarFixture(&entity.User{ID: userA})

	settings, err := f.usecase.UpdateSettings(context.Background(), &entity.CalendarSettingsRequest{
		UserID:          userA,
		ExportAsTask:    true,
		ReminderMinutes: 60,
	})
	require.NoError(t, err)
	assert.True(t, settings.ExportAsTask)
	assert.Equal(t, 60, settings.ReminderMinutes)

	_, err = f.usecase.UpdateSettings(context.Background(), &entity.CalendarSettingsRequest{UserID: userA, ReminderMinutes: -1})
	assert.ErrorIs(t, err, entity.ErrValidation)
}
