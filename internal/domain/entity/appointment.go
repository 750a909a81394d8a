package entity

import "time"

type Appointment struct {
	ID          string       `json:"id" db:"id"`
	PlanID      string       `json:"plan_id" db:"plan_id"`
	UserID      string       `json:"user_id" db:"user_id"`
	DateStart   time.Time    `json:"date_start" db:"date_start"`
	Details     string       `json:"details" db:"details"`
	Amount      float64      `json:"amount" db:"amount"`
	MeasureUnit string       `json:"measure_unit" db:"measure_unit"`
	Completed   bool         `json:"completed" db:"completed"`
	CreatedAt   time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at" db:"updated_at"`
	Plan        *PlanSummary `json:"plan,omitempty" db:"-"`
}

// PlanSummary is the slice of the parent plan shown next to an appointment.
type PlanSummary struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

// PlanName returns the parent plan's name, or "Unknown" when it was not loaded.
func (a *Appointment) PlanName() string {
	if a.Plan == nil || a.Plan.Name == "" {
		return "Unknown"
	}
	return a.Plan.Name
}

type AppointmentFilter struct {
	UserID    string
	PlanID    string
	StartDate *time.Time
	EndDate   *time.Time
}

type CreateAppointmentRequest struct {
	DateStart   time.Time `json:"date_start" validate:"required"`
	Details     string    `json:"details" validate:"required,min=3"`
	Amount      float64   `json:"amount" validate:"gt=0"`
	MeasureUnit string    `json:"measure_unit" validate:"required"`
	PlanID      string    `json:"plan_id" validate:"required,uuid"`
	UserID      string    `json:"user_id" validate:"required,uuid"`
}

// UpdateAppointmentRequest is a partial update; nil fields are left as they are.
type UpdateAppointmentRequest struct {
	ID          string     `json:"id" validate:"required,uuid"`
	DateStart   *time.Time `json:"date_start,omitempty"`
	Details     *string    `json:"details,omitempty" validate:"omitempty,min=3"`
	Amount      *float64   `json:"amount,omitempty" validate:"omitempty,gt=0"`
	MeasureUnit *string    `json:"measure_unit,omitempty" validate:"omitempty,min=1"`
	Completed   *bool      `json:"completed,omitempty"`
}
