package session

import (
	"time"
)

// Rect is a pixel-space rectangle within the session's image. It marks the
// region that counts as a successful find.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Contains reports whether the point (x, y) falls inside the rectangle,
// expanded by pad pixels on every side.
func (r Rect) Contains(x, y, pad int) bool {
	return x >= r.X-pad &&
		x <= r.X+r.Width+pad &&
		y >= r.Y-pad &&
		y <= r.Y+r.Height+pad
}

// Notifier is the single-shot capability used to inform the external system
// that a session was resolved. It is supplied by the caller at creation time
// and invoked at most once per session. The core never inspects its outcome.
type Notifier interface {
	ResolvedBy(finder, channelRef, creatorName string)
}

// NotifierFunc adapts a plain function to the Notifier interface.
type NotifierFunc func(finder, channelRef, creatorName string)

// ResolvedBy calls f.
func (f NotifierFunc) ResolvedBy(finder, channelRef, creatorName string) {
	f(finder, channelRef, creatorName)
}

// Session is one instance of the create->view->resolve/expire lifecycle.
// All fields are immutable after creation; the only mutation is removal.
type Session struct {
	ID          string // unique, URL-safe identifier
	AssetRef    string // handle to the image blob, owned by this session
	CreatedAt   time.Time
	ExpiresAt   time.Time // CreatedAt + TTL, absolute deadline
	Target      Rect      // hidden target region within the image
	ChannelRef  string    // where the resolution notice goes
	CreatorRef  string    // identifies the session owner
	CreatorName string    // owner display name
	Notify      Notifier  // resolution callback, invoked exactly once
}

// Expired reports whether the session is past its deadline at the given time.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Remaining returns the time left until expiry, floored at zero.
func (s *Session) Remaining(now time.Time) time.Duration {
	d := s.ExpiresAt.Sub(now)
	if d < 0 {
		return 0
	}
	return d
}
