package entity

import "time"

// Google caps popup reminders at four weeks.
const MaxReminderMinutes = 40320

// CalendarIntegration holds a user's export preferences. There is at most one
// row per user.
type CalendarIntegration struct {
	ID                 string     `json:"id" db:"id"`
	UserID             string     `json:"user_id" db:"user_id"`
	ExportAsTask       bool       `json:"export_as_task" db:"export_as_task"`
	IncludeAmount      bool       `json:"include_amount" db:"include_amount"`
	IncludeMeasureUnit bool       `json:"include_measure_unit" db:"include_measure_unit"`
	AddReminders       bool       `json:"add_reminders" db:"add_reminders"`
	ReminderMinutes    int        `json:"reminder_minutes" db:"reminder_minutes"`
	LastSyncedAt       *time.Time `json:"last_synced_at" db:"last_synced_at"`
	CreatedAt          time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at" db:"updated_at"`
}

// DefaultCalendarIntegration returns the settings created on first connection.
func DefaultCalendarIntegration(userID string) *CalendarIntegration {
	return &CalendarIntegration{
		UserID:             userID,
		ExportAsTask:       false,
		IncludeAmount:      true,
		IncludeMeasureUnit: true,
		AddReminders:       true,
		ReminderMinutes:    30,
	}
}

type CalendarSettingsRequest struct {
	UserID             string `json:"user_id" validate:"required,uuid"`
	ExportAsTask       bool   `json:"export_as_task"`
	IncludeAmount      bool   `json:"include_amount"`
	IncludeMeasureUnit bool   `json:"include_measure_unit"`
	AddReminders       bool   `json:"add_reminders"`
	ReminderMinutes    int    `json:"reminder_minutes" validate:"min=0,max=40320"`
}

// CalendarStatus is what the settings page shows.
type CalendarStatus struct {
	Connected   bool                 `json:"connected"`
	TokenExpiry *time.Time           `json:"token_expiry"`
	Settings    *CalendarIntegration `json:"settings"`
}

// OAuthCallback carries the query parameters of the provider redirect.
type OAuthCallback struct {
	Code  string
	State string
	Error string
}
