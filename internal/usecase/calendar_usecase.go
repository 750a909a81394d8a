package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"goal-tracker/internal/config"
	"goal-tracker/internal/domain/entity"
	"goal-tracker/internal/domain/repository"
	"goal-tracker/internal/infrastructure/google"
	"goal-tracker/internal/infrastructure/httpclient"
	"goal-tracker/internal/infrastructure/oauth2"
)

const (
	notificationConnected    = "Google Calendar Connected"
	notificationDisconnected = "Google Calendar Disconnected"
	notificationExported     = "Calendar Export Complete"
)

type CalendarUsecase interface {
	// Connect returns the consent URL for userID
	Connect(ctx context.Context, userID string) (string, error)

	// Callback completes the authorization started by Connect and returns the connected user
	Callback(ctx context.Context, cb entity.OAuthCallback) (string, error)

	Disconnect(ctx context.Context, userID string) error
	GetSettings(ctx context.Context, userID string) (*entity.CalendarStatus, error)
	UpdateSettings(ctx context.Context, req *entity.CalendarSettingsRequest) (*entity.CalendarIntegration, error)

	// ExportAppointments pushes the selected appointments to the provider one by one
	ExportAppointments(ctx context.Context, req *entity.ExportRequest) (*entity.ExportSummary, error)
}

type calendarUsecase struct {
	config          *config.Config
	userRepo        repository.UserRepository
	appointmentRepo repository.AppointmentRepository
	settingsRepo    repository.CalendarIntegrationRepository
	notifier        Notifier
	tokenService    oauth2.TokenService
	stateStore      oauth2.StateStore
	calendarClient  google.CalendarClient
	logger          *zap.Logger
	now             func() time.Time
}

func NewCalendarUsecase(
	cfg *config.Config,
	userRepo repository.UserRepository,
	appointmentRepo repository.AppointmentRepository,
	settingsRepo repository.CalendarIntegrationRepository,
	notifier Notifier,
	tokenService oauth2.TokenService,
	stateStore oauth2.StateStore,
	calendarClient google.CalendarClient,
	logger *zap.Logger,
) CalendarUsecase {
	return &calendarUsecase{
		config:          cfg,
		userRepo:        userRepo,
		appointmentRepo: appointmentRepo,
		settingsRepo:    settingsRepo,
		notifier:        notifier,
		tokenService:    tokenService,
		stateStore:      stateStore,
		calendarClient:  calendarClient,
		logger:          logger,
		now:             time.Now,
	}
}

func (u *calendarUsecase) Connect(ctx context.Context, userID string) (string, error) {
	if err := validateID("userId", userID); err != nil {
		return "", err
	}

	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", fmt.Errorf("user %w", entity.ErrNotFound)
	}

	state, err := u.stateStore.Issue(ctx, userID)
	if err != nil {
		return "", err
	}

	u.logger.Info("Starting Google authorization", zap.String("user_id", userID))
	return u.tokenService.AuthCodeURL(state), nil
}

func (u *calendarUsecase) Callback(ctx context.Context, cb entity.OAuthCallback) (string, error) {
	if cb.Error != "" {
		u.logger.Warn("Google authorization denied", zap.String("error", cb.Error))
		return "", fmt.Errorf("%w: %s", entity.ErrOAuthDenied, cb.Error)
	}
	if cb.Code == "" || cb.State == "" {
		return "", validationError("missing_params")
	}

	userID, err := u.stateStore.Consume(ctx, cb.State)
	if err != nil {
		u.logger.Warn("OAuth state rejected", zap.Error(err))
		return "", err
	}

	cred, err := u.tokenService.ExchangeCode(httpclient.WithUserID(ctx, userID), cb.Code)
	if err != nil {
		u.logger.Error("Token exchange failed",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return "", err
	}

	// Settings first: once the credential is stored the user counts as connected
	if err := u.settingsRepo.CreateIfMissing(ctx, entity.DefaultCalendarIntegration(userID)); err != nil {
		return "", err
	}

	if err := u.userRepo.SaveCredential(ctx, userID, cred); err != nil {
		return "", err
	}

	u.notifier.Notify(ctx, userID, notificationConnected,
		"Your Google Calendar account has been successfully connected.")

	u.logger.Info("Google account connected", zap.String("user_id", userID))
	return userID, nil
}

func (u *calendarUsecase) Disconnect(ctx context.Context, userID string) error {
	if err := validateID("userId", userID); err != nil {
		return err
	}

	if err := u.userRepo.ClearCredential(ctx, userID); err != nil {
		return err
	}

	u.notifier.Notify(ctx, userID, notificationDisconnected,
		"Your Google Calendar account has been disconnected.")

	u.logger.Info("Google account disconnected", zap.String("user_id", userID))
	return nil
}

func (u *calendarUsecase) GetSettings(ctx context.Context, userID string) (*entity.CalendarStatus, error) {
	if err := validateID("userId", userID); err != nil {
		return nil, err
	}

	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user %w", entity.ErrNotFound)
	}

	settings, err := u.settingsRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	status := &entity.CalendarStatus{
		Connected: user.Credential() != nil,
		Settings:  settings,
	}
	if status.Connected {
		status.TokenExpiry = user.GoogleTokenExpiry
	}
	return status, nil
}

func (u *calendarUsecase) UpdateSettings(ctx context.Context, req *entity.CalendarSettingsRequest) (*entity.CalendarIntegration, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	settings, err := u.settingsRepo.Upsert(ctx, &entity.CalendarIntegration{
		UserID:             req.UserID,
		ExportAsTask:       req.ExportAsTask,
		IncludeAmount:      req.IncludeAmount,
		IncludeMeasureUnit: req.IncludeMeasureUnit,
		AddReminders:       req.AddReminders,
		ReminderMinutes:    req.ReminderMinutes,
	})
	if err != nil {
		return nil, err
	}

	u.logger.Info("Calendar settings updated",
		zap.String("user_id", req.UserID),
		zap.Bool("export_as_task", req.ExportAsTask),
	)
	return settings, nil
}

func (u *calendarUsecase) ExportAppointments(ctx context.Context, req *entity.ExportRequest) (*entity.ExportSummary, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	// Credential check is local so a disconnected user never reaches the network
	user, err := u.userRepo.FindByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if user.Credential() == nil {
		return nil, entity.ErrNotConnected
	}

	appointments, err := u.appointmentRepo.FindByIDsForUser(ctx, req.UserID, req.AppointmentIDs)
	if err != nil {
		return nil, err
	}
	if len(appointments) == 0 {
		return nil, fmt.Errorf("no appointments found to export: %w", entity.ErrNotFound)
	}

	exportType := entity.ExportTypeEvent
	if req.ExportAsTask {
		exportType = entity.ExportTypeTask
	}

	u.logger.Info("Exporting appointments",
		zap.String("user_id", req.UserID),
		zap.String("type", exportType),
		zap.Int("count", len(appointments)),
	)

	ctx = httpclient.WithUserID(ctx, req.UserID)

	// A rejected refresh fails the whole export; items would all hit the same wall
	if _, err := u.tokenService.EnsureValidAccessToken(ctx, req.UserID); err != nil {
		return nil, err
	}

	opts := req.Options(u.config.Google.TimeZone)
	results := make([]entity.ExportResult, len(appointments))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(u.concurrency())
	for i := range appointments {
		g.Go(func() error {
			// Item failures are recorded, never returned, so siblings keep running
			results[i] = u.exportOne(gctx, req.UserID, &appointments[i], req.ExportAsTask, opts)
			return nil
		})
	}
	_ = g.Wait()

	succeeded := 0
	for _, r := range results {
		if r.Success {
			succeeded++
		}
	}

	if err := u.settingsRepo.TouchLastSynced(ctx, req.UserID, u.now()); err != nil {
		u.logger.Warn("Failed to record last sync time",
			zap.String("user_id", req.UserID),
			zap.Error(err),
		)
	}

	target := "Calendar"
	if req.ExportAsTask {
		target = "Tasks"
	}
	u.notifier.Notify(ctx, req.UserID, notificationExported,
		fmt.Sprintf("Successfully exported %d of %d appointments to Google %s.", succeeded, len(appointments), target))

	u.logger.Info("Export finished",
		zap.String("user_id", req.UserID),
		zap.Int("succeeded", succeeded),
		zap.Int("total", len(appointments)),
	)

	return &entity.ExportSummary{
		Results:   results,
		Succeeded: succeeded,
		Total:     len(appointments),
		Message:   fmt.Sprintf("Exported %d of %d appointments", succeeded, len(appointments)),
	}, nil
}

func (u *calendarUsecase) exportOne(ctx context.Context, userID string, a *entity.Appointment, asTask bool, opts entity.ExportOptions) entity.ExportResult {
	result := entity.ExportResult{
		AppointmentID: a.ID,
		Type:          entity.ExportTypeEvent,
	}
	if asTask {
		result.Type = entity.ExportTypeTask
	}

	var (
		event *entity.CalendarEvent
		task  *entity.TaskItem
	)
	if asTask {
		task = AppointmentToTask(a, opts)
	} else {
		event = AppointmentToCalendarEvent(a, opts)
	}

	accessToken, err := u.tokenService.EnsureValidAccessToken(ctx, userID)
	if err != nil {
		return u.failed(result, err)
	}

	if asTask {
		result.ExternalID, err = u.calendarClient.CreateTask(ctx, accessToken, task)
	} else {
		result.ExternalID, err = u.calendarClient.CreateEvent(ctx, accessToken, event)
	}
	if err != nil {
		return u.failed(result, err)
	}

	result.Success = true
	return result
}

func (u *calendarUsecase) failed(result entity.ExportResult, err error) entity.ExportResult {
	u.logger.Warn("Failed to export appointment",
		zap.String("appointment_id", result.AppointmentID),
		zap.Bool("provider_rejected", errors.Is(err, entity.ErrProviderRequestFailed)),
		zap.Error(err),
	)
	result.Success = false
	result.Error = err.Error()
	return result
}

func (u *calendarUsecase) concurrency() int {
	if u.config.Export.Concurrency < 1 {
		return 1
	}
	return u.config.Export.Concurrency
}
