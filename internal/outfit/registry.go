package outfit

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// ErrViewNotFound is returned for unknown, expired, or foreign planner views.
var ErrViewNotFound = errors.New("planner view not found")

// View is one open planner. Its store is discarded when the view is closed
// or expires; nothing is persisted.
type View struct {
	ID       string    `json:"id"`
	UserID   int64     `json:"-"`
	OpenedAt time.Time `json:"opened_at"`

	mu    sync.Mutex
	store *Store
}

// Do runs fn with exclusive access to the view's store.
func (v *View) Do(fn func(*Store) error) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return fn(v.store)
}

// Snapshot returns the view's current assignment.
func (v *View) Snapshot() Assignment {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.store.Snapshot()
}

// Registry tracks open planner views. Least recently used views are
// dropped when the registry is full, and idle views expire after the TTL.
type Registry struct {
	// mu makes Lookup's get-and-refresh atomic with respect to Close, so a
	// closed view is never re-added.
	mu    sync.Mutex
	views *expirable.LRU[string, *View]
}

// NewRegistry creates a registry holding at most size views, each kept
// for ttl after its last use.
func NewRegistry(size int, ttl time.Duration) *Registry {
	return &Registry{
		views: expirable.NewLRU[string, *View](size, nil, ttl),
	}
}

// Open creates a new empty planner view for a user.
func (r *Registry) Open(userID int64) *View {
	v := &View{
		ID:       uuid.NewString(),
		UserID:   userID,
		OpenedAt: time.Now().UTC(),
		store:    NewStore(),
	}
	r.views.Add(v.ID, v)
	return v
}

// Lookup returns the user's view with the given ID and refreshes its expiry.
func (r *Registry) Lookup(id string, userID int64) (*View, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.views.Get(id)
	if !ok || v.UserID != userID {
		return nil, ErrViewNotFound
	}
	r.views.Add(id, v)
	return v, nil
}

// Close discards the user's view.
func (r *Registry) Close(id string, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.views.Peek(id)
	if !ok || v.UserID != userID {
		return ErrViewNotFound
	}
	r.views.Remove(id)
	return nil
}

// Len returns the number of open views.
func (r *Registry) Len() int {
	return r.views.Len()
}
