package session

import (
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// DefaultSweepInterval is how often the reaper scans for expired sessions.
const DefaultSweepInterval = 60 * time.Second

// Reaper periodically removes expired sessions. The sweep function is
// injected so the owning layer can couple record removal with asset cleanup,
// and so tests can drive sweeps directly instead of waiting on the clock.
type Reaper struct {
	sweep    func() []string
	interval time.Duration
	stop     chan struct{}
	stopOnce sync.Once
}

// NewReaper builds a reaper around the given sweep function. It does not
// start until Run is called.
func NewReaper(sweep func() []string, interval time.Duration) *Reaper {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	return &Reaper{
		sweep:    sweep,
		interval: interval,
		stop:     make(chan struct{}),
	}
}

// Run loops until Stop is called, sweeping once per interval. Meant to be
// run as a goroutine. Sweep outcomes are logged; nothing here is ever fatal.
func (r *Reaper) Run() {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stop:
			return
		case <-ticker.C:
			r.Sweep()
		}
	}
}

// Sweep performs a single pass. Exposed so tests and shutdown paths can
// trigger it deterministically.
func (r *Reaper) Sweep() {
	removed := r.sweep()
	if len(removed) > 0 {
		log.WithFields(log.Fields{
			"count":    len(removed),
			"sessions": removed,
		}).Info("reaped expired sessions")
	}
}

// Stop halts the loop. Safe to call more than once.
func (r *Reaper) Stop() {
	r.stopOnce.Do(func() {
		close(r.stop)
	})
}
