package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/pawconnect/platform/internal/core/domain"
)

func newTestStore(t *testing.T) (*SessionStore, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis run failed: %v", err)
	}
	t.Cleanup(mr.Close)

	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewSessionStore(client, zerolog.Nop()), mr
}

func sampleSession() domain.Session {
	return domain.Session{
		User: &domain.User{
			ID:        "u1",
			Email:     "vet@pawconnect.org.np",
			Name:      "Vet",
			Role:      domain.RoleVeterinarian,
			CreatedAt: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
		},
		Token: "t1",
	}
}

func TestSessionStore_RoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	want := sampleSession()
	if err := store.Save(ctx, want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got == nil || got.Token != want.Token || *got.User != *want.User {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, want)
	}
}

func TestSessionStore_LoadAbsent(t *testing.T) {
	store, _ := newTestStore(t)

	got, err := store.Load(context.Background())
	if err != nil || got != nil {
		t.Fatalf("expected nil, nil for absent key, got %+v, %v", got, err)
	}
}

func TestSessionStore_CorruptValuePurged(t *testing.T) {
	store, mr := newTestStore(t)
	if err := mr.Set(sessionKey, "{not json"); err != nil {
		t.Fatalf("seed corrupt value: %v", err)
	}

	got, err := store.Load(context.Background())
	if err != nil || got != nil {
		t.Fatalf("corrupt value must read as absent, got %+v, %v", got, err)
	}
	if mr.Exists(sessionKey) {
		t.Fatalf("corrupt key must be deleted")
	}
}

func TestSessionStore_Clear(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, sampleSession()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if mr.Exists(sessionKey) {
		t.Fatalf("key should be gone")
	}
}
