package models

import "time"

// Status is the life-cycle state of a ticket.
type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in_progress"
	StatusClosed     Status = "closed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusClosed:
		return true
	}
	return false
}

// Priority is optional on a ticket; the zero value means "not set".
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Ticket is owned by exactly one user. ID and the timestamps are
// assigned by the store and never written by clients.
type Ticket struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Status      Status    `json:"status"`
	Priority    Priority  `json:"priority,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Draft holds the unsaved form fields for a create or edit. It mirrors
// Ticket minus id, owner and timestamps, and is never persisted as-is:
// only the validated subset reaches the store.
type Draft struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Status      Status   `json:"status"`
	Priority    Priority `json:"priority"`
}

// NewDraft returns the defaults the create form opens with.
func NewDraft() Draft {
	return Draft{Status: StatusOpen, Priority: PriorityMedium}
}

// DraftOf copies a ticket's mutable fields into a draft for editing.
// An absent priority falls back to the form default.
func DraftOf(t Ticket) Draft {
	d := Draft{
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		Priority:    t.Priority,
	}
	if d.Priority == "" {
		d.Priority = PriorityMedium
	}
	return d
}
