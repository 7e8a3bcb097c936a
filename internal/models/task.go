package models

import "time"

// Task is a single todo item owned by exactly one user. ID is assigned by
// the store and never reused; ExternalID is the client-facing stable handle.
// A nil Description means the task was created without one, which is not the
// same as an empty description.
type Task struct {
	ID          int64
	ExternalID  string
	OwnerID     string
	Title       string
	Description *string
	Completed   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
