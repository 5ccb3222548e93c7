package chat

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/madhavasok/chatai/pkg/models"
)

func TestListAllOrdersByRecency(t *testing.T) {
	store := newFakeStore(&callLog{})
	base := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	store.addSession(models.Session{ID: "old", Title: "Old", UpdatedAt: base.Add(-2 * time.Hour)})
	store.addSession(models.Session{ID: "newest", Title: "Newest", UpdatedAt: base})
	store.addSession(models.Session{ID: "middle", Title: "Middle", UpdatedAt: base.Add(-1 * time.Hour)})

	directory := NewDirectory(store)
	sessions, err := directory.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}

	want := []string{"newest", "middle", "old"}
	if len(sessions) != len(want) {
		t.Fatalf("expected %d sessions, got %d", len(want), len(sessions))
	}
	for i, id := range want {
		if sessions[i].ID != id {
			t.Errorf("position %d: got %s, want %s", i, sessions[i].ID, id)
		}
	}
}

func TestListAllUnavailable(t *testing.T) {
	store := newFakeStore(&callLog{})
	store.listSessionsErr = errors.New("connection refused")

	directory := NewDirectory(store)
	_, err := directory.ListAll(context.Background())
	if !errors.Is(err, ErrDirectoryUnavailable) {
		t.Fatalf("expected ErrDirectoryUnavailable, got %v", err)
	}

	// Callers degrade to an empty list
	if got := directory.Sessions(); len(got) != 0 {
		t.Errorf("expected empty cache, got %d sessions", len(got))
	}
}

func TestCreateRefreshesCache(t *testing.T) {
	store := newFakeStore(&callLog{})
	directory := NewDirectory(store)

	session, err := directory.Create(context.Background(), "My Session")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if session.ID == "" {
		t.Fatal("store should have assigned a session id")
	}

	found := false
	for _, cached := range directory.Sessions() {
		if cached.ID == session.ID {
			found = true
		}
	}
	if !found {
		t.Error("created session should appear in the cache without a full reload")
	}
}

func TestCreateDefaultTitle(t *testing.T) {
	store := newFakeStore(&callLog{})
	directory := NewDirectory(store)

	session, err := directory.Create(context.Background(), "")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if session.Title != DefaultSessionTitle {
		t.Errorf("got title %q, want %q", session.Title, DefaultSessionTitle)
	}
}

func TestCreateFailed(t *testing.T) {
	store := newFakeStore(&callLog{})
	store.createSessionErr = errors.New("validation rejected")

	directory := NewDirectory(store)
	_, err := directory.Create(context.Background(), "My Session")
	if !errors.Is(err, ErrCreateFailed) {
		t.Fatalf("expected ErrCreateFailed, got %v", err)
	}
}

func TestCreateSplicesWhenRefreshFails(t *testing.T) {
	store := newFakeStore(&callLog{})
	store.listSessionsErr = errors.New("connection refused")

	directory := NewDirectory(store)
	session, err := directory.Create(context.Background(), "My Session")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	cached := directory.Sessions()
	if len(cached) != 1 || cached[0].ID != session.ID {
		t.Errorf("created session should be spliced into the cache when the refresh fails, got %v", cached)
	}
}
