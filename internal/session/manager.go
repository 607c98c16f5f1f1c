// Package session binds server-side session state to a signed client cookie.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fastygo/todo/domain"
	"github.com/fastygo/todo/repository"
)

var errInvalidToken = errors.New("invalid session token")

// Config controls cookie naming, signing and lifetimes.
type Config struct {
	Secret       []byte
	CookieName   string
	Secure       bool
	Lifetime     time.Duration
	AnonymousTTL time.Duration
}

// Cookie describes the cookie the transport layer must set after a commit.
// A zero Expires means a browser-session cookie.
type Cookie struct {
	Name    string
	Value   string
	Expires time.Time
	Secure  bool
}

// Manager loads and persists sessions through a SessionRepository.
type Manager struct {
	store  repository.SessionRepository
	cfg    Config
	logger *zap.Logger
	now    func() time.Time
}

func NewManager(store repository.SessionRepository, cfg Config, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.CookieName == "" {
		cfg.CookieName = "session"
	}
	if cfg.Lifetime <= 0 {
		cfg.Lifetime = 7 * 24 * time.Hour
	}
	if cfg.AnonymousTTL <= 0 {
		cfg.AnonymousTTL = time.Hour
	}
	return &Manager{
		store:  store,
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
}

// CookieName returns the name of the session cookie.
func (m *Manager) CookieName() string {
	return m.cfg.CookieName
}

// Load resolves a cookie token to its session. Missing, tampered or expired
// tokens yield a fresh anonymous session that is only stored once written to.
func (m *Manager) Load(ctx context.Context, token string) (*Handle, error) {
	if token == "" {
		return m.fresh(), nil
	}

	id, err := m.parse(token)
	if err != nil {
		m.logger.Debug("discarding session token", zap.Error(err))
		return m.fresh(), nil
	}

	stored, err := m.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return m.fresh(), nil
		}
		return nil, fmt.Errorf("load session: %w", err)
	}
	if stored.IsExpired(m.now()) {
		return m.fresh(), nil
	}

	return &Handle{
		session:   stored,
		persisted: true,
		lifetime:  m.cfg.Lifetime,
		now:       m.now,
	}, nil
}

// Commit persists a modified session and returns the cookie to send, or nil
// when nothing changed.
func (m *Manager) Commit(ctx context.Context, h *Handle) (*Cookie, error) {
	if h == nil || !h.dirty {
		return nil, nil
	}

	if h.previousID != "" {
		if err := m.store.Delete(ctx, h.previousID); err != nil {
			m.logger.Warn("failed to drop rotated session", zap.Error(err))
		}
	}

	s := h.session
	if !s.Permanent {
		s.ExpiresAt = m.now().Add(m.cfg.AnonymousTTL)
	}
	if err := m.store.Save(ctx, s); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	token, err := m.sign(s)
	if err != nil {
		return nil, err
	}

	h.dirty = false
	h.persisted = true
	h.previousID = ""

	cookie := &Cookie{
		Name:   m.cfg.CookieName,
		Value:  token,
		Secure: m.cfg.Secure,
	}
	if s.Permanent {
		cookie.Expires = s.ExpiresAt
	}
	return cookie, nil
}

func (m *Manager) fresh() *Handle {
	now := m.now()
	return &Handle{
		session: &domain.Session{
			ID:        uuid.NewString(),
			CreatedAt: now,
			ExpiresAt: now.Add(m.cfg.AnonymousTTL),
		},
		lifetime: m.cfg.Lifetime,
		now:      m.now,
	}
}

func (m *Manager) sign(s *domain.Session) (string, error) {
	claims := jwt.RegisteredClaims{
		ID:        s.ID,
		IssuedAt:  jwt.NewNumericDate(m.now()),
		ExpiresAt: jwt.NewNumericDate(s.ExpiresAt),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.cfg.Secret)
	if err != nil {
		return "", fmt.Errorf("sign session: %w", err)
	}
	return token, nil
}

func (m *Manager) parse(raw string) (string, error) {
	var claims jwt.RegisteredClaims
	token, err := jwt.ParseWithClaims(raw, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.cfg.Secret, nil
	})
	if err != nil {
		return "", err
	}
	if !token.Valid || claims.ID == "" {
		return "", errInvalidToken
	}
	return claims.ID, nil
}
