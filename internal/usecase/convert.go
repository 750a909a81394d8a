package usecase

import (
	"fmt"
	"strconv"
	"time"

	"goal-tracker/internal/domain/entity"
)

const eventDuration = time.Hour

// AppointmentToCalendarEvent renders an appointment as a one-hour event.
// It performs no I/O.
func AppointmentToCalendarEvent(a *entity.Appointment, opts entity.ExportOptions) *entity.CalendarEvent {
	event := &entity.CalendarEvent{
		Summary:     exportTitle(a, opts),
		Description: exportDescription(a),
		Start:       entity.EventTime{DateTime: a.DateStart, TimeZone: opts.TimeZone},
		End:         entity.EventTime{DateTime: a.DateStart.Add(eventDuration), TimeZone: opts.TimeZone},
	}

	if opts.AddReminders {
		event.Reminders = &entity.EventReminders{
			UseDefault: false,
			Overrides: []entity.ReminderOverride{
				{Method: entity.ReminderMethodPopup, Minutes: opts.ReminderMinutes},
			},
		}
	}

	return event
}

// AppointmentToTask renders an appointment as a task due at its start time.
func AppointmentToTask(a *entity.Appointment, opts entity.ExportOptions) *entity.TaskItem {
	status := entity.TaskStatusNeedsAction
	if a.Completed {
		status = entity.TaskStatusCompleted
	}

	return &entity.TaskItem{
		Title:  exportTitle(a, opts),
		Notes:  exportDescription(a),
		Due:    a.DateStart,
		Status: status,
	}
}

func exportTitle(a *entity.Appointment, opts entity.ExportOptions) string {
	switch {
	case opts.IncludeAmount && opts.IncludeMeasureUnit:
		return fmt.Sprintf("%s (%s %s)", a.Details, formatAmount(a.Amount), a.MeasureUnit)
	case opts.IncludeAmount:
		return fmt.Sprintf("%s (%s)", a.Details, formatAmount(a.Amount))
	case opts.IncludeMeasureUnit:
		return fmt.Sprintf("%s (%s)", a.Details, a.MeasureUnit)
	default:
		return a.Details
	}
}

func exportDescription(a *entity.Appointment) string {
	return fmt.Sprintf("Goal: %s\nAmount: %s %s", a.PlanName(), formatAmount(a.Amount), a.MeasureUnit)
}

// formatAmount prints 5 as "5" and 2.5 as "2.5"
func formatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', -1, 64)
}
