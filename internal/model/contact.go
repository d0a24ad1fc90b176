package model

import "time"

// ContactMessage represents a message submitted via the contact form.
// Records are written once and never modified.
type ContactMessage struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Message   string    `json:"message" db:"message"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// ContactListOptions carries pagination parameters for listing contact messages.
type ContactListOptions struct {
	Limit  int
	Offset int
}
