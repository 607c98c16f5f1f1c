package domain

import "time"

// FlashLevel is the severity attached to a one-shot notice.
type FlashLevel string

const (
	FlashSuccess FlashLevel = "success"
	FlashInfo    FlashLevel = "info"
	FlashWarning FlashLevel = "warning"
	FlashError   FlashLevel = "error"
)

// Flash is a notice shown on the next rendered page only.
type Flash struct {
	Level   FlashLevel `json:"level"`
	Message string     `json:"message"`
}

// Session represents server-side state bound to a client cookie.
type Session struct {
	ID        string    `json:"id"`
	UserID    int64     `json:"user_id,omitempty"`
	Username  string    `json:"username,omitempty"`
	Permanent bool      `json:"permanent"`
	Flashes   []Flash   `json:"flashes,omitempty"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

func (s *Session) IsExpired(reference time.Time) bool {
	if s == nil {
		return true
	}
	if reference.IsZero() {
		reference = time.Now()
	}
	return !s.ExpiresAt.After(reference)
}

// Identity returns the authenticated identity, if any.
func (s *Session) Identity() (Identity, bool) {
	if s == nil || s.UserID == 0 {
		return Identity{}, false
	}
	return Identity{UserID: s.UserID, Username: s.Username}, true
}
