package google

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"goal-tracker/internal/config"
	"goal-tracker/internal/domain/entity"
)

func newTestClient(t *testing.T, mux *http.ServeMux) CalendarClient {
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		Google: config.GoogleConfig{
			CalendarEndpoint: srv.URL + "/",
			TasksEndpoint:    srv.URL + "/",
		},
		Export: config.ExportConfig{RequestsPerSecond: 100, Burst: 10},
	}
	return NewCalendarClient(cfg, srv.Client(), zap.NewNop())
}

func TestCreateEvent(t *testing.T) {
	var got map[string]interface{}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /calendars/primary/events", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer access-1", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"evt-123"}`))
	})
	client := newTestClient(t, mux)

	start := time.Date(2024, 5, 1, 7, 30, 0, 0, time.UTC)
	id, err := client.CreateEvent(context.Background(), "access-1", &entity.CalendarEvent{
		Summary:     "Run (5 km)",
		Description: "Goal: Marathon\nAmount: 5 km",
		Start:       entity.EventTime{DateTime: start, TimeZone: "UTC"},
		End:         entity.EventTime{DateTime: start.Add(time.Hour), TimeZone: "UTC"},
		Reminders: &entity.EventReminders{
			Overrides: []entity.ReminderOverride{{Method: "popup", Minutes: 30}},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "evt-123", id)

	assert.Equal(t, "Run (5 km)", got["summary"])
	assert.Equal(t, "2024-05-01T07:30:00Z", got["start"].(map[string]interface{})["dateTime"])
	assert.Equal(t, "2024-05-01T08:30:00Z", got["end"].(map[string]interface{})["dateTime"])

	reminders := got["reminders"].(map[string]interface{})
	assert.Equal(t, false, reminders["useDefault"])
	overrides := reminders["overrides"].([]interface{})
	require.Len(t, overrides, 1)
	assert.Equal(t, "popup", overrides[0].(map[string]interface{})["method"])
	assert.EqualValues(t, 30, overrides[0].(map[string]interface{})["minutes"])
}

func TestCreateEvent_ProviderError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /calendars/primary/events", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"code":403,"message":"insufficient permissions"}}`))
	})
	client := newTestClient(t, mux)

	_, err := client.CreateEvent(context.Background(), "access-1", &entity.CalendarEvent{Summary: "Run"})

	require.ErrorIs(t, err, entity.ErrProviderRequestFailed)
	assert.Contains(t, err.Error(), "403")
	assert.Contains(t, err.Error(), "insufficient permissions")
}

func TestCreateTask(t *testing.T) {
	var got map[string]interface{}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /tasks/v1/users/@me/lists", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items":[{"id":"list-a"},{"id":"list-b"}]}`))
	})
	mux.HandleFunc("POST /tasks/v1/lists/list-a/tasks", func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"task-9"}`))
	})
	client := newTestClient(t, mux)

	id, err := client.CreateTask(context.Background(), "access-1", &entity.TaskItem{
		Title:  "Run (5 km)",
		Notes:  "Goal: Marathon\nAmount: 5 km",
		Due:    time.Date(2024, 5, 1, 7, 30, 0, 0, time.UTC),
		Status: entity.TaskStatusCompleted,
	})
	require.NoError(t, err)

	assert.Equal(t, "task-9", id)
	assert.Equal(t, "Run (5 km)", got["title"])
	assert.Equal(t, "completed", got["status"])
	assert.Equal(t, "2024-05-01T07:30:00Z", got["due"])
	assert.NotContains(t, got, "end")
	assert.NotContains(t, got, "reminders")
}

func TestCreateTask_NoTaskList(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /tasks/v1/users/@me/lists", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items":[]}`))
	})
	client := newTestClient(t, mux)

	_, err := client.CreateTask(context.Background(), "access-1", &entity.TaskItem{Title: "Run"})
	assert.ErrorIs(t, err, entity.ErrProviderRequestFailed)
}

func TestNewLimiter(t *testing.T) {
	unlimited := NewLimiter(config.ExportConfig{})
	assert.True(t, unlimited.Allow())

	limited := NewLimiter(config.ExportConfig{RequestsPerSecond: 1, Burst: 0})
	assert.Equal(t, 1, limited.Burst())
	assert.True(t, limited.Allow())
	assert.False(t, limited.Allow())
}
