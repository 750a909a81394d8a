package google

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/tasks/v1"

	"goal-tracker/internal/config"
	"goal-tracker/internal/domain/entity"
)

const primaryCalendarID = "primary"

// CalendarClient creates items in the user's calendar and task list.
type CalendarClient interface {
	CreateEvent(ctx context.Context, accessToken string, event *entity.CalendarEvent) (string, error)
	CreateTask(ctx context.Context, accessToken string, task *entity.TaskItem) (string, error)
}

type calendarClient struct {
	httpClient       *http.Client
	calendarEndpoint string
	tasksEndpoint    string
	limiter          *rate.Limiter
	logger           *zap.Logger
}

func NewCalendarClient(cfg *config.Config, httpClient *http.Client, logger *zap.Logger) CalendarClient {
	return &calendarClient{
		httpClient:       httpClient,
		calendarEndpoint: cfg.Google.CalendarEndpoint,
		tasksEndpoint:    cfg.Google.TasksEndpoint,
		limiter:          NewLimiter(cfg.Export),
		logger:           logger,
	}
}

// NewLimiter returns the token bucket shared by all provider calls.
// A non-positive rate disables limiting.
func NewLimiter(cfg config.ExportConfig) *rate.Limiter {
	if cfg.RequestsPerSecond <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
}

func (c *calendarClient) options(accessToken, endpoint string) []option.ClientOption {
	// The bearer transport wraps the logging client, so every call lands in api_logs
	httpClient := &http.Client{
		Timeout: c.httpClient.Timeout,
		Transport: &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken, TokenType: "Bearer"}),
			Base:   c.httpClient.Transport,
		},
	}

	opts := []option.ClientOption{option.WithHTTPClient(httpClient)}
	if endpoint != "" {
		opts = append(opts, option.WithEndpoint(endpoint))
	}
	return opts
}

func (c *calendarClient) CreateEvent(ctx context.Context, accessToken string, event *entity.CalendarEvent) (string, error) {
	svc, err := calendar.NewService(ctx, c.options(accessToken, c.calendarEndpoint)...)
	if err != nil {
		return "", fmt.Errorf("failed to create calendar service: %w", err)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	created, err := svc.Events.Insert(primaryCalendarID, toCalendarEvent(event)).Context(ctx).Do()
	if err != nil {
		return "", providerError("create event", err)
	}

	c.logger.Debug("Calendar event created", zap.String("event_id", created.Id))
	return created.Id, nil
}

func (c *calendarClient) CreateTask(ctx context.Context, accessToken string, task *entity.TaskItem) (string, error) {
	svc, err := tasks.NewService(ctx, c.options(accessToken, c.tasksEndpoint)...)
	if err != nil {
		return "", fmt.Errorf("failed to create tasks service: %w", err)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	lists, err := svc.Tasklists.List().MaxResults(1).Context(ctx).Do()
	if err != nil {
		return "", providerError("list task lists", err)
	}
	if len(lists.Items) == 0 {
		return "", fmt.Errorf("%w: no task list found", entity.ErrProviderRequestFailed)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	created, err := svc.Tasks.Insert(lists.Items[0].Id, toTask(task)).Context(ctx).Do()
	if err != nil {
		return "", providerError("create task", err)
	}

	c.logger.Debug("Task created",
		zap.String("task_id", created.Id),
		zap.String("task_list_id", lists.Items[0].Id),
	)
	return created.Id, nil
}

func toCalendarEvent(e *entity.CalendarEvent) *calendar.Event {
	event := &calendar.Event{
		Summary:     e.Summary,
		Description: e.Description,
		Start:       eventDateTime(e.Start),
		End:         eventDateTime(e.End),
	}

	if e.Reminders != nil {
		reminders := &calendar.EventReminders{
			UseDefault:      e.Reminders.UseDefault,
			ForceSendFields: []string{"UseDefault"},
		}
		for _, o := range e.Reminders.Overrides {
			reminders.Overrides = append(reminders.Overrides, &calendar.EventReminder{
				Method:          o.Method,
				Minutes:         int64(o.Minutes),
				ForceSendFields: []string{"Minutes"},
			})
		}
		event.Reminders = reminders
	}

	return event
}

func eventDateTime(t entity.EventTime) *calendar.EventDateTime {
	return &calendar.EventDateTime{
		DateTime: t.DateTime.Format(time.RFC3339),
		TimeZone: t.TimeZone,
	}
}

func toTask(t *entity.TaskItem) *tasks.Task {
	return &tasks.Task{
		Title:  t.Title,
		Notes:  t.Notes,
		Due:    t.Due.UTC().Format(time.RFC3339),
		Status: t.Status,
	}
}

// providerError keeps the status code and message of a rejected call
func providerError(op string, err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return fmt.Errorf("%w: %s: status %d: %s", entity.ErrProviderRequestFailed, op, apiErr.Code, apiErr.Message)
	}
	return fmt.Errorf("%w: %s: %v", entity.ErrProviderRequestFailed, op, err)
}
