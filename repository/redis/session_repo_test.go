package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	redislib "github.com/redis/go-redis/v9"

	"github.com/fastygo/todo/domain"
)

func setupRepo(t *testing.T) (*miniredis.Miniredis, *sessionRepository) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redislib.NewClient(&redislib.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, NewSessionRepository(client, time.Hour).(*sessionRepository)
}

func TestSessionRepository_SaveGetDelete(t *testing.T) {
	mr, repo := setupRepo(t)
	ctx := context.Background()

	session := &domain.Session{
		ID:        "abc",
		UserID:    42,
		Username:  "alice",
		Permanent: true,
		Flashes:   []domain.Flash{{Level: domain.FlashSuccess, Message: "hi"}},
		ExpiresAt: time.Now().Add(7 * 24 * time.Hour),
	}
	if err := repo.Save(ctx, session); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	ttl := mr.TTL("session:abc")
	if ttl <= 6*24*time.Hour || ttl > 7*24*time.Hour {
		t.Errorf("unexpected ttl %v", ttl)
	}

	got, err := repo.Get(ctx, "abc")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.UserID != 42 || got.Username != "alice" || len(got.Flashes) != 1 {
		t.Errorf("unexpected session %+v", got)
	}

	if err := repo.Delete(ctx, "abc"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := repo.Get(ctx, "abc"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestSessionRepository_Expiry(t *testing.T) {
	mr, repo := setupRepo(t)
	ctx := context.Background()

	if err := repo.Save(ctx, &domain.Session{ID: "short", ExpiresAt: time.Now().Add(time.Minute)}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	mr.FastForward(2 * time.Minute)

	if _, err := repo.Get(ctx, "short"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("expected expired session to be gone, got %v", err)
	}
}

func TestSessionRepository_DefaultTTL(t *testing.T) {
	mr, repo := setupRepo(t)

	if err := repo.Save(context.Background(), &domain.Session{ID: "anon"}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if ttl := mr.TTL("session:anon"); ttl <= 0 || ttl > time.Hour {
		t.Errorf("expected default ttl, got %v", ttl)
	}
}

func TestSessionRepository_Validation(t *testing.T) {
	_, repo := setupRepo(t)
	if err := repo.Save(context.Background(), &domain.Session{}); !errors.Is(err, domain.ErrInvalidPayload) {
		t.Errorf("expected ErrInvalidPayload, got %v", err)
	}
	if err := repo.Ping(context.Background()); err != nil {
		t.Errorf("Ping() error = %v", err)
	}
}
