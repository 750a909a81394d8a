package entity

import "time"

const (
	ExportTypeEvent = "event"
	ExportTypeTask  = "task"

	TaskStatusCompleted   = "completed"
	TaskStatusNeedsAction = "needsAction"

	ReminderMethodPopup = "popup"
)

type ExportRequest struct {
	UserID             string   `json:"user_id" validate:"required,uuid"`
	AppointmentIDs     []string `json:"appointment_ids" validate:"required,min=1,dive,required,uuid"`
	ExportAsTask       bool     `json:"export_as_task"`
	IncludeAmount      bool     `json:"include_amount"`
	IncludeMeasureUnit bool     `json:"include_measure_unit"`
	AddReminders       bool     `json:"add_reminders"`
	ReminderMinutes    int      `json:"reminder_minutes" validate:"min=0,max=40320"`
}

// Options returns the formatting options of the request.
func (r *ExportRequest) Options(timeZone string) ExportOptions {
	return ExportOptions{
		IncludeAmount:      r.IncludeAmount,
		IncludeMeasureUnit: r.IncludeMeasureUnit,
		AddReminders:       r.AddReminders,
		ReminderMinutes:    r.ReminderMinutes,
		TimeZone:           timeZone,
	}
}

// ExportOptions controls how an appointment is rendered for the provider.
type ExportOptions struct {
	IncludeAmount      bool
	IncludeMeasureUnit bool
	AddReminders       bool
	ReminderMinutes    int
	TimeZone           string
}

// ExportResult is the outcome of exporting a single appointment.
type ExportResult struct {
	AppointmentID string `json:"appointment_id"`
	Success       bool   `json:"success"`
	Type          string `json:"type,omitempty"`
	ExternalID    string `json:"external_id,omitempty"`
	Error         string `json:"error,omitempty"`
}

type ExportSummary struct {
	Results   []ExportResult `json:"results"`
	Succeeded int            `json:"succeeded"`
	Total     int            `json:"total"`
	Message   string         `json:"message"`
}

// CalendarEvent is the provider-neutral form of a calendar event.
type CalendarEvent struct {
	Summary     string
	Description string
	Start       EventTime
	End         EventTime
	Reminders   *EventReminders
}

type EventTime struct {
	DateTime time.Time
	TimeZone string
}

type EventReminders struct {
	UseDefault bool
	Overrides  []ReminderOverride
}

type ReminderOverride struct {
	Method  string
	Minutes int
}

// TaskItem is the provider-neutral form of a task. Tasks have a due time only.
type TaskItem struct {
	Title  string
	Notes  string
	Due    time.Time
	Status string
}
