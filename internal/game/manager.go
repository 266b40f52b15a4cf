package game

import (
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/n0troot/WheresBenny/internal/asset"
	"github.com/n0troot/WheresBenny/internal/session"
)

// Manager ties the session table to its image blobs and owns their coupled
// lifecycle: created together, destroyed together. It is the API the chat
// command layer calls into, and the only thing the HTTP handlers talk to.
type Manager struct {
	store  *session.Store
	assets *asset.Store
	base   string
	now    func() time.Time
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithManagerClock overrides the clock used for remaining-time computations.
func WithManagerClock(now func() time.Time) ManagerOption {
	return func(m *Manager) { m.now = now }
}

// NewManager builds a manager over the given stores. base is the public base
// URL used to compose shareable session links.
func NewManager(store *session.Store, assets *asset.Store, base string, opts ...ManagerOption) *Manager {
	m := &Manager{
		store:  store,
		assets: assets,
		base:   base,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// CreateSession registers a new session around a finished image and its
// hidden target region, and returns the session ID plus the shareable URL.
// The image is persisted before the record becomes visible; a persistence
// failure leaves nothing behind.
func (m *Manager) CreateSession(
	image []byte,
	target session.Rect,
	channelRef, creatorRef, creatorName string,
	notify session.Notifier,
) (string, string, error) {
	sess, err := m.store.Create(session.CreateParams{
		Target:      target,
		ChannelRef:  channelRef,
		CreatorRef:  creatorRef,
		CreatorName: creatorName,
		Notify:      notify,
	}, func(id string) (string, error) {
		return m.assets.Put(id, image)
	})
	if err != nil {
		return "", "", err
	}

	url := m.SessionURL(sess.ID)
	log.WithFields(log.Fields{
		"session": sess.ID,
		"creator": creatorName,
		"expires": sess.ExpiresAt,
	}).Info("session created")
	return sess.ID, url, nil
}

// SessionURL composes the shareable link for a session ID.
func (m *Manager) SessionURL(id string) string {
	return m.base + "/session/" + id
}

// ActiveSessionURL reports the link to the creator's current live session,
// if one exists. The command layer uses it to refuse duplicate sessions.
func (m *Manager) ActiveSessionURL(creatorRef string) (string, bool) {
	id, ok := m.store.ActiveSessionFor(creatorRef)
	if !ok {
		return "", false
	}
	return m.SessionURL(id), true
}

// Get returns the session if it is present and unexpired.
func (m *Manager) Get(id string) (*session.Session, error) {
	return m.store.Get(id)
}

// Peek returns the session regardless of expiry, without touching it.
func (m *Manager) Peek(id string) (*session.Session, error) {
	return m.store.Peek(id)
}

// Asset returns the session's image bytes and content type.
func (m *Manager) Asset(id string) ([]byte, string, error) {
	return m.assets.Get(id)
}

// Remaining is the time left before the session expires, floored at zero.
func (m *Manager) Remaining(s *session.Session) time.Duration {
	return s.Remaining(m.now())
}

// Resolve consumes the session exactly once: the record is atomically taken
// from the table, the notification is dispatched without waiting on it, and
// the image blob is released. Of any number of concurrent or repeated calls
// for the same ID, exactly one succeeds; the rest observe ErrNotFound.
// Expiry state is ignored, existence at lookup time is enough.
func (m *Manager) Resolve(id, finder string) (*session.Session, error) {
	sess, err := m.store.Take(id)
	if err != nil {
		return nil, err
	}

	if sess.Notify != nil {
		// Fire and forget: the notification must never block or fail the
		// HTTP response path.
		go sess.Notify.ResolvedBy(finder, sess.ChannelRef, sess.CreatorName)
	}

	m.assets.Delete(id)
	log.WithFields(log.Fields{
		"session": id,
		"finder":  finder,
	}).Info("session resolved")
	return sess, nil
}

// Remove deletes the session record and its asset. Idempotent; removing an
// absent ID reports false and is not an error.
func (m *Manager) Remove(id string) bool {
	removed := m.store.Remove(id)
	m.assets.Delete(id)
	return removed
}

// SweepExpired removes every expired session together with its asset and
// returns the removed IDs. This is the reaper's target.
func (m *Manager) SweepExpired() []string {
	removed := m.store.SweepExpired()
	for _, id := range removed {
		m.assets.Delete(id)
	}
	return removed
}
