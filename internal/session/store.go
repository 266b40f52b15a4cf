package session

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

var (
	// ErrNotFound is returned when no session exists for the given ID.
	ErrNotFound = errors.New("session: not found")

	// ErrExpired is returned by Get when the session exists but is past its
	// deadline. The record is left in place; removal is the caller's or the
	// reaper's job.
	ErrExpired = errors.New("session: expired")
)

// DefaultTTL is how long an unresolved session stays live.
const DefaultTTL = 300 * time.Second

// CreateParams carries everything needed to allocate a session. The ID,
// asset reference and timestamps are assigned by the store.
type CreateParams struct {
	Target      Rect
	ChannelRef  string
	CreatorRef  string
	CreatorName string
	Notify      Notifier
}

// Store is a concurrency-safe collection of live sessions keyed by ID.
// Reads may proceed concurrently; all mutations are serialized with each
// other and with sweeps. The zero value is not usable; use NewStore.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
	now      func() time.Time
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithTTL overrides the session time-to-live.
func WithTTL(ttl time.Duration) StoreOption {
	return func(s *Store) { s.ttl = ttl }
}

// WithClock overrides the store's clock. Tests use this to cross the TTL
// boundary without sleeping.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) { s.now = now }
}

// NewStore constructs an empty store with the default 300s TTL.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		sessions: make(map[string]*Session),
		ttl:      DefaultTTL,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create allocates a fresh session with a unique ID and stores it. Safe under
// concurrent calls; two concurrent creates never collide on ID.
//
// The persist callback, when non-nil, is invoked with the reserved ID before
// the record becomes visible; it persists the session's image blob and
// returns the asset reference. A persist failure aborts the create and leaves
// no record behind. A nil persist leaves the asset ref equal to the ID, for
// callers that manage the blob themselves.
func (s *Store) Create(p CreateParams, persist func(id string) (string, error)) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := GenerateID()
	for _, taken := s.sessions[id]; taken; _, taken = s.sessions[id] {
		id = GenerateID()
	}

	assetRef := id
	if persist != nil {
		ref, err := persist(id)
		if err != nil {
			return nil, fmt.Errorf("session: persist asset: %w", err)
		}
		assetRef = ref
	}

	now := s.now()
	sess := &Session{
		ID:          id,
		AssetRef:    assetRef,
		CreatedAt:   now,
		ExpiresAt:   now.Add(s.ttl),
		Target:      p.Target,
		ChannelRef:  p.ChannelRef,
		CreatorRef:  p.CreatorRef,
		CreatorName: p.CreatorName,
		Notify:      p.Notify,
	}
	s.sessions[id] = sess
	return sess, nil
}

// Get returns the session only if it is present and unexpired. Reading is
// side-effect-free: an expired-but-present record is reported as ErrExpired
// but never removed here.
func (s *Store) Get(id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	if sess.Expired(s.now()) {
		return nil, ErrExpired
	}
	return sess, nil
}

// Peek returns the session regardless of expiry state, without removing it.
// The resolve path uses it for hit validation, where existence at lookup
// time is the rule: a resolve racing an expiry sweep is still valid.
func (s *Store) Peek(id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return sess, nil
}

// Take atomically looks up and removes the session in a single step. It is
// the exactly-once primitive for resolution: of any number of concurrent
// Take calls for the same ID, exactly one receives the record. Expiry state
// is ignored; existence at lookup time is sufficient.
func (s *Store) Take(id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	delete(s.sessions, id)
	return sess, nil
}

// Remove deletes the session if present. Removing a nonexistent or
// already-removed ID is a no-op reported as false, never an error.
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return false
	}
	delete(s.sessions, id)
	return true
}

// SweepExpired removes every record past its deadline and returns the IDs
// that were removed.
func (s *Store) SweepExpired() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	var removed []string
	for id, sess := range s.sessions {
		if sess.Expired(now) {
			delete(s.sessions, id)
			removed = append(removed, id)
		}
	}
	return removed
}

// ActiveSessionFor returns the ID of the first live session created by the
// given creator, if any. The command layer uses this to stop a creator from
// opening a second session before the first ends.
func (s *Store) ActiveSessionFor(creatorRef string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now()
	for id, sess := range s.sessions {
		if sess.CreatorRef == creatorRef && !sess.Expired(now) {
			return id, true
		}
	}
	return "", false
}

// Len reports the number of records currently held, expired or not.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
