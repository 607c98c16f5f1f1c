package domain

import "time"

// User represents a registered account. Users are created by registration only.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Email        string    `json:"email"`
	CreatedAt    time.Time `json:"created_at"`
}

// Identity is the immutable snapshot of an authenticated user carried through a request.
type Identity struct {
	UserID   int64
	Username string
}

func (u *User) Identity() Identity {
	if u == nil {
		return Identity{}
	}
	return Identity{UserID: u.ID, Username: u.Username}
}
