package chat

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/madhavasok/chatai/pkg/models"
)

// Directory is the in-memory view of all sessions the user can resume,
// kept eventually consistent with the store by polling on view activation.
type Directory struct {
	store Store

	mu       sync.Mutex
	sessions []models.Session
}

// NewDirectory creates a directory backed by the given store.
func NewDirectory(store Store) *Directory {
	return &Directory{store: store}
}

// ListAll fetches all sessions from the store, replaces the cached list and
// returns it most-recently-updated first. On failure the cache is left
// untouched and the error wraps ErrDirectoryUnavailable; callers degrade to
// an empty list rather than crash.
func (d *Directory) ListAll(ctx context.Context) ([]models.Session, error) {
	sessions, err := d.store.ListSessions(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDirectoryUnavailable, err)
	}

	sortByRecency(sessions)

	d.mu.Lock()
	d.sessions = sessions
	d.mu.Unlock()

	return d.snapshot(), nil
}

// Create mints a new session via the store and refreshes the cached list so
// sidebars reflect it without a full reload. The refresh is best-effort: if
// it fails, the created session is spliced into the cache instead.
func (d *Directory) Create(ctx context.Context, title string) (models.Session, error) {
	if title == "" {
		title = DefaultSessionTitle
	}

	session, err := d.store.CreateSession(ctx, title)
	if err != nil {
		return models.Session{}, fmt.Errorf("%w: %v", ErrCreateFailed, err)
	}

	if _, err := d.ListAll(ctx); err != nil {
		d.mu.Lock()
		d.sessions = append([]models.Session{session}, d.sessions...)
		d.mu.Unlock()
	}

	return session, nil
}

// Sessions returns a snapshot of the cached list, most recently updated first.
func (d *Directory) Sessions() []models.Session {
	return d.snapshot()
}

func (d *Directory) snapshot() []models.Session {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]models.Session, len(d.sessions))
	copy(out, d.sessions)
	return out
}

func sortByRecency(sessions []models.Session) {
	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].UpdatedAt.After(sessions[j].UpdatedAt)
	})
}
