package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/fastygo/todo/domain"
)

// AuthResult is the outcome of an authorization check: either an identity or nothing.
type AuthResult struct {
	Identity   domain.Identity
	Authorized bool
}

func Authorized(identity domain.Identity) AuthResult {
	return AuthResult{Identity: identity, Authorized: true}
}

func Unauthorized() AuthResult {
	return AuthResult{}
}

// Handle is the request-scoped view of one session. It is not safe for concurrent use.
type Handle struct {
	session    *domain.Session
	persisted  bool
	dirty      bool
	previousID string

	lifetime time.Duration
	now      func() time.Time
}

// ID returns the current session id.
func (h *Handle) ID() string {
	return h.session.ID
}

// Authorize reports whether the session carries an authenticated user.
func (h *Handle) Authorize() AuthResult {
	if h == nil {
		return Unauthorized()
	}
	if identity, ok := h.session.Identity(); ok {
		return Authorized(identity)
	}
	return Unauthorized()
}

// Login binds the user to the session, makes it long-lived and rotates its id.
func (h *Handle) Login(user *domain.User) {
	if user == nil {
		return
	}
	if h.persisted {
		h.previousID = h.session.ID
		h.persisted = false
	}

	now := h.now()
	h.session.ID = uuid.NewString()
	h.session.UserID = user.ID
	h.session.Username = user.Username
	h.session.Permanent = true
	h.session.CreatedAt = now
	h.session.ExpiresAt = now.Add(h.lifetime)
	h.dirty = true
}

// Logout drops the identity; the session itself, with its pending notices, survives.
func (h *Handle) Logout() {
	if h.session.UserID == 0 && h.session.Username == "" {
		return
	}
	h.session.UserID = 0
	h.session.Username = ""
	h.dirty = true
}

// Flash queues a notice for the next rendered page.
func (h *Handle) Flash(level domain.FlashLevel, message string) {
	h.session.Flashes = append(h.session.Flashes, domain.Flash{Level: level, Message: message})
	h.dirty = true
}

// Flashes returns and clears the queued notices.
func (h *Handle) Flashes() []domain.Flash {
	if len(h.session.Flashes) == 0 {
		return nil
	}
	out := h.session.Flashes
	h.session.Flashes = nil
	h.dirty = true
	return out
}
