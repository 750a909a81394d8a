package entity

import "time"

type Notification struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	Title     string    `json:"title" db:"title"`
	Message   string    `json:"message" db:"message"`
	Read      bool      `json:"read" db:"read"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type CreateNotificationRequest struct {
	Title   string `json:"title" validate:"required,min=2"`
	Message string `json:"message" validate:"required,min=5"`
	UserID  string `json:"user_id" validate:"required,uuid"`
}

type UpdateNotificationRequest struct {
	ID   string `json:"id" validate:"required,uuid"`
	Read bool   `json:"read"`
}
