package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/99minutos/piracy-detector/internal/core/domain"
)

func TestCredentialStore_CreateAndFind(t *testing.T) {
	s := NewCredentialStore()
	ctx := context.Background()

	if err := s.Create(ctx, &domain.User{Username: "alice", PasswordHash: "h1"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	u, err := s.FindByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if u.PasswordHash != "h1" {
		t.Fatalf("unexpected hash: %s", u.PasswordHash)
	}

	u.PasswordHash = "mutated"
	again, _ := s.FindByUsername(ctx, "alice")
	if again.PasswordHash != "h1" {
		t.Fatalf("store leaked internal state")
	}
}

func TestCredentialStore_Duplicate(t *testing.T) {
	s := NewCredentialStore()
	ctx := context.Background()

	_ = s.Create(ctx, &domain.User{Username: "bob", PasswordHash: "h1"})
	if err := s.Create(ctx, &domain.User{Username: "bob", PasswordHash: "h2"}); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
	u, _ := s.FindByUsername(ctx, "bob")
	if u.PasswordHash != "h1" {
		t.Fatalf("duplicate create overwrote hash")
	}
}

func TestCredentialStore_NotFound(t *testing.T) {
	if _, err := NewCredentialStore().FindByUsername(context.Background(), "ghost"); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestCredentialStore_ConcurrentCreateSameUser(t *testing.T) {
	s := NewCredentialStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	var mu sync.Mutex
	created := 0
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if err := s.Create(ctx, &domain.User{Username: "race", PasswordHash: fmt.Sprint(i)}); err == nil {
				mu.Lock()
				created++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	if created != 1 {
		t.Fatalf("expected exactly one successful create, got %d", created)
	}
}

func TestSessionStore_SaveGetDelete(t *testing.T) {
	s := NewSessionStore()
	ctx := context.Background()
	sess := domain.Session{ID: "s1", Username: "alice", ExpiresAt: time.Now().Add(time.Hour)}

	if err := s.Save(ctx, sess); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := s.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Username != "alice" {
		t.Fatalf("unexpected username: %s", got.Username)
	}

	if err := s.Delete(ctx, "s1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.Get(ctx, "s1"); err != domain.ErrSessionNotFound {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestSessionStore_EmptyID(t *testing.T) {
	if err := NewSessionStore().Save(context.Background(), domain.Session{}); err == nil {
		t.Fatalf("expected error for empty id")
	}
}

func TestSessionStore_ExpiredEvictedOnRead(t *testing.T) {
	s := NewSessionStore()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	_ = s.Save(context.Background(), domain.Session{ID: "old", ExpiresAt: now.Add(-time.Minute)})
	if _, err := s.Get(context.Background(), "old"); err != domain.ErrSessionNotFound {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	if len(s.sessions) != 0 {
		t.Fatalf("expired session not evicted")
	}
}
