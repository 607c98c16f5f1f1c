package domain

import "time"

// Priority is the advisory urgency of a task. The store keeps whatever string was submitted.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ParsePriority reports whether raw names one of the known priorities.
func ParsePriority(raw string) (Priority, bool) {
	switch p := Priority(raw); p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return p, true
	default:
		return "", false
	}
}

// Task represents a user-owned to-do item.
type Task struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	DueDate     string    `json:"due_date,omitempty"`
	Priority    string    `json:"priority,omitempty"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
}
