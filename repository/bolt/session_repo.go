package bolt

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fastygo/todo/domain"
	"github.com/fastygo/todo/internal/infrastructure/boltdb"
)

// SessionRepository keeps sessions in a local BoltDB file. Expired entries are
// treated as missing on read and removed by PurgeExpired.
type SessionRepository struct {
	store *boltdb.Store
	ttl   time.Duration
	now   func() time.Time
}

// NewSessionRepository creates a BoltDB-backed session repository.
// ttl is used for sessions saved without an expiry.
func NewSessionRepository(store *boltdb.Store, ttl time.Duration) *SessionRepository {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &SessionRepository{store: store, ttl: ttl, now: time.Now}
}

func (r *SessionRepository) Get(ctx context.Context, id string) (*domain.Session, error) {
	raw, err := r.store.Get(id)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, domain.ErrSessionNotFound
	}

	var session domain.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, err
	}
	if session.IsExpired(r.now()) {
		_ = r.store.Delete(id)
		return nil, domain.ErrSessionNotFound
	}
	return &session, nil
}

func (r *SessionRepository) Save(ctx context.Context, session *domain.Session) error {
	if session == nil || session.ID == "" {
		return domain.ErrInvalidPayload
	}

	if session.CreatedAt.IsZero() {
		session.CreatedAt = r.now()
	}
	if session.ExpiresAt.Before(session.CreatedAt) {
		session.ExpiresAt = session.CreatedAt.Add(r.ttl)
	}

	payload, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return r.store.Put(session.ID, payload)
}

func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	return r.store.Delete(id)
}

func (r *SessionRepository) Ping(ctx context.Context) error {
	_, err := r.store.Size()
	return err
}

// PurgeExpired drops every session whose expiry has passed.
func (r *SessionRepository) PurgeExpired(ctx context.Context) (int, error) {
	now := r.now()
	return r.store.DeleteWhere(func(_, value []byte) bool {
		var session domain.Session
		if err := json.Unmarshal(value, &session); err != nil {
			return true
		}
		return session.IsExpired(now)
	})
}
