// Package notice holds the single user-facing notification slot. A new notice replaces the
// current one, and each notice expires after a fixed TTL.
package notice

import (
	"sync"
	"time"
)

// DefaultTTL is how long a notice stays visible.
const DefaultTTL = 5 * time.Second

// Level is the severity of a notice.
type Level string

const (
	Success Level = "success"
	Danger  Level = "danger"
	Warning Level = "warning"
	Info    Level = "info"
)

// Notice is one message in the slot.
type Notice struct {
	Level     Level
	Message   string
	ShownAt   time.Time
	ExpiresAt time.Time
}

// Listener observes slot changes. n is nil when the slot was emptied.
type Listener func(n *Notice)

// Slot is a one-message notification area. It is safe for concurrent use.
type Slot struct {
	mu       sync.Mutex
	ttl      time.Duration
	now      func() time.Time
	current  *Notice
	timer    *time.Timer
	seq      uint64
	listener Listener
}

// Option customises a Slot.
type Option func(*Slot)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Slot) {
		if now != nil {
			s.now = now
		}
	}
}

// WithListener is called on every show and every expiry or dismissal.
func WithListener(l Listener) Option {
	return func(s *Slot) { s.listener = l }
}

// NewSlot returns an empty slot; ttl <= 0 uses DefaultTTL.
func NewSlot(ttl time.Duration, opts ...Option) *Slot {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	s := &Slot{ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Show replaces the current notice and restarts the expiry timer.
func (s *Slot) Show(level Level, message string) Notice {
	s.mu.Lock()
	now := s.now()
	n := Notice{Level: level, Message: message, ShownAt: now, ExpiresAt: now.Add(s.ttl)}
	s.current = &n
	s.seq++
	seq := s.seq
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.ttl, func() { s.expire(seq) })
	listener := s.listener
	s.mu.Unlock()

	if listener != nil {
		shown := n
		listener(&shown)
	}
	return n
}

// Current returns the visible notice.
func (s *Slot) Current() (Notice, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil || !s.now().Before(s.current.ExpiresAt) {
		return Notice{}, false
	}
	return *s.current, true
}

// Dismiss empties the slot.
func (s *Slot) Dismiss() {
	s.mu.Lock()
	s.seq++
	had := s.clearLocked()
	listener := s.listener
	s.mu.Unlock()
	if had && listener != nil {
		listener(nil)
	}
}

// Close stops the pending timer without notifying.
func (s *Slot) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.clearLocked()
}

func (s *Slot) expire(seq uint64) {
	s.mu.Lock()
	if seq != s.seq {
		// replaced or dismissed since this timer was armed
		s.mu.Unlock()
		return
	}
	had := s.clearLocked()
	listener := s.listener
	s.mu.Unlock()
	if had && listener != nil {
		listener(nil)
	}
}

func (s *Slot) clearLocked() bool {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	had := s.current != nil
	s.current = nil
	return had
}
