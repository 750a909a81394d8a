package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goal-tracker/internal/domain/entity"
)

func sampleAppointment() *entity.Appointment {
	return &entity.Appointment{
		ID:          testID(1),
		DateStart:   time.Date(2024, 5, 1, 7, 30, 0, 0, time.UTC),
		Details:     "Run",
		Amount:      5,
		MeasureUnit: "km",
		Plan:        &entity.PlanSummary{Name: "Marathon", Category: "running"},
	}
}

func TestAppointmentToCalendarEvent_Title(t *testing.T) {
	tests := []struct {
		name   string
		amount bool
		unit   bool
		want   string
	}{
		{name: "amount and unit", amount: true, unit: true, want: "Run (5 km)"},
		{name: "amount only", amount: true, want: "Run (5)"},
		{name: "unit only", unit: true, want: "Run (km)"},
		{name: "neither", want: "Run"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := AppointmentToCalendarEvent(sampleAppointment(), entity.ExportOptions{
				IncludeAmount:      tt.amount,
				IncludeMeasureUnit: tt.unit,
			})
			assert.Equal(t, tt.want, event.Summary)
		})
	}
}

func TestAppointmentToCalendarEvent_Fields(t *testing.T) {
	a := sampleAppointment()

	event := AppointmentToCalendarEvent(a, entity.ExportOptions{
		AddReminders:    true,
		ReminderMinutes: 15,
		TimeZone:        "Europe/Berlin",
	})

	assert.Equal(t, "Goal: Marathon\nAmount: 5 km", event.Description)
	assert.Equal(t, a.DateStart, event.Start.DateTime)
	assert.Equal(t, a.DateStart.Add(time.Hour), event.End.DateTime)
	assert.Equal(t, "Europe/Berlin", event.Start.TimeZone)
	assert.Equal(t, "Europe/Berlin", event.End.TimeZone)

	require.NotNil(t, event.Reminders)
	assert.False(t, event.Reminders.UseDefault)
	assert.Equal(t, []entity.ReminderOverride{{Method: "popup", Minutes: 15}}, event.Reminders.Overrides)
}

func TestAppointmentToCalendarEvent_NoReminders(t *testing.T) {
	event := AppointmentToCalendarEvent(sampleAppointment(), entity.ExportOptions{ReminderMinutes: 15})
	assert.Nil(t, event.Reminders)
}

func TestAppointmentToCalendarEvent_UnknownPlanAndFractionalAmount(t *testing.T) {
	a := sampleAppointment()
	a.Plan = nil
	a.Amount = 2.5

	event := AppointmentToCalendarEvent(a, entity.ExportOptions{IncludeAmount: true})

	assert.Equal(t, "Run (2.5)", event.Summary)
	assert.Equal(t, "Goal: Unknown\nAmount: 2.5 km", event.Description)
}

func TestAppointmentToCalendarEvent_IsPure(t *testing.T) {
	a := sampleAppointment()
	opts := entity.ExportOptions{IncludeAmount: true, AddReminders: true, ReminderMinutes: 10, TimeZone: "UTC"}

	first := AppointmentToCalendarEvent(a, opts)
	second := AppointmentToCalendarEvent(a, opts)

	assert.Equal(t, first, second)
	assert.Equal(t, sampleAppointment(), a)
}

func TestAppointmentToTask(t *testing.T) {
	a := sampleAppointment()

	task := AppointmentToTask(a, entity.ExportOptions{IncludeAmount: true, IncludeMeasureUnit: true, AddReminders: true})

	assert.Equal(t, "Run (5 km)", task.Title)
	assert.Equal(t, "Goal: Marathon\nAmount: 5 km", task.Notes)
	assert.Equal(t, a.DateStart, task.Due)
	assert.Equal(t, entity.TaskStatusNeedsAction, task.Status)

	a.Completed = true
	assert.Equal(t, entity.TaskStatusCompleted, AppointmentToTask(a, entity.ExportOptions{}).Status)
}
