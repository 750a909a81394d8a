package entity

import "time"

type Plan struct {
	ID           string        `json:"id" db:"id"`
	UserID       string        `json:"user_id" db:"user_id"`
	Name         string        `json:"name" db:"name"`
	Goal         string        `json:"goal" db:"goal"`
	Category     string        `json:"category" db:"category"`
	CurrentLevel string        `json:"current_level" db:"current_level"`
	CreatedAt    time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at" db:"updated_at"`
	Appointments []Appointment `json:"appointments" db:"-"`
}

// PlanInput describes the goal the planner builds a schedule for.
type PlanInput struct {
	UserID          string            `json:"user_id" validate:"omitempty,uuid"`
	Name            string            `json:"name" validate:"required,min=2"`
	Goal            string            `json:"goal" validate:"required,min=5"`
	Category        string            `json:"category" validate:"required"`
	CurrentLevel    string            `json:"current_level" validate:"required,min=5"`
	Experience      string            `json:"experience" validate:"required,oneof=beginner intermediate advanced"`
	Frequency       int               `json:"frequency" validate:"min=1,max=7"`
	PreferredDays   []string          `json:"preferred_days" validate:"dive,oneof=monday tuesday wednesday thursday friday saturday sunday"`
	Constraints     string            `json:"constraints"`
	Preferences     string            `json:"preferences"`
	Duration        int               `json:"duration" validate:"min=1,max=52"` // weeks
	SpecificDetails map[string]string `json:"specific_details,omitempty"`
}

// PlanEntry is one scheduled activity proposed by the planner.
type PlanEntry struct {
	DateStart   string  `json:"date_start"` // YYYY-MM-DD
	Details     string  `json:"details"`
	Amount      float64 `json:"amount"`
	MeasureUnit string  `json:"measure_unit"`
}

// PlanEntryDateLayout is the date format of PlanEntry.DateStart.
const PlanEntryDateLayout = "2006-01-02"

// PlanWithAppointments is returned when a plan is created.
type PlanWithAppointments struct {
	Plan         *Plan         `json:"plan"`
	Appointments []Appointment `json:"appointments"`
}
