package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"

	"github.com/fastygo/todo/internal/config"
)

func TestNewClient(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewClient(context.Background(), config.RedisConfig{URL: "redis://" + mr.Addr()}, nil)
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	defer client.Close()

	if err := client.Set(context.Background(), "k", "v", 0).Err(); err != nil {
		t.Fatalf("set: %v", err)
	}
	if got, _ := mr.Get("k"); got != "v" {
		t.Errorf("expected value to reach redis, got %q", got)
	}
}

func TestNewClientRejectsBadURL(t *testing.T) {
	if _, err := NewClient(context.Background(), config.RedisConfig{URL: "://nope"}, nil); err == nil {
		t.Fatal("expected error for malformed url")
	}
}

func TestNewClientUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	if _, err := NewClient(context.Background(), config.RedisConfig{URL: "redis://" + addr}, nil); err == nil {
		t.Fatal("expected ping failure")
	}
}
