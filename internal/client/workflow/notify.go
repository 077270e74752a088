package workflow

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultNotifyTimeout is how long a notification stays visible.
const DefaultNotifyTimeout = 4 * time.Second

type Kind string

const (
	KindError   Kind = "error"
	KindSuccess Kind = "success"
)

// Notification is one transient message. ID ties it to its expiry timer.
type Notification struct {
	ID        uuid.UUID
	Kind      Kind
	Text      string
	CreatedAt time.Time
}

// Timer is a cancellable scheduled task.
type Timer interface {
	Stop() bool
}

// Clock abstracts time for notification expiry.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) AfterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }

// SystemClock returns a Clock backed by the time package.
func SystemClock() Clock { return realClock{} }

type slot struct {
	n     Notification
	timer Timer
}

// Center holds at most one notification per kind. Each expires on its own
// timer measured from its creation.
type Center struct {
	mu       sync.Mutex
	clock    Clock
	timeout  time.Duration
	slots    map[Kind]*slot
	onExpire func(Kind)
}

// NewCenter builds a Center. onExpire, if set, runs after a notification
// expired on its own, without the Center lock held.
func NewCenter(clock Clock, timeout time.Duration, onExpire func(Kind)) *Center {
	if clock == nil {
		clock = SystemClock()
	}
	if timeout <= 0 {
		timeout = DefaultNotifyTimeout
	}
	return &Center{clock: clock, timeout: timeout, slots: map[Kind]*slot{}, onExpire: onExpire}
}

// Show replaces the notification of that kind and restarts its timer.
func (c *Center) Show(kind Kind, text string) Notification {
	n := Notification{ID: uuid.New(), Kind: kind, Text: text, CreatedAt: c.clock.Now()}

	c.mu.Lock()
	defer c.mu.Unlock()

	if old, ok := c.slots[kind]; ok {
		old.timer.Stop()
	}
	c.slots[kind] = &slot{n: n, timer: c.clock.AfterFunc(c.timeout, func() { c.expire(kind, n.ID) })}
	return n
}

// Dismiss removes the notification of that kind and cancels its timer.
func (c *Center) Dismiss(kind Kind) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.slots[kind]
	if !ok {
		return false
	}
	s.timer.Stop()
	delete(c.slots, kind)
	return true
}

// Current returns the visible notification of that kind.
func (c *Center) Current(kind Kind) (Notification, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.slots[kind]
	if !ok {
		return Notification{}, false
	}
	return s.n, true
}

// Stop cancels every pending timer and clears all notifications.
func (c *Center) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for k, s := range c.slots {
		s.timer.Stop()
		delete(c.slots, k)
	}
}

func (c *Center) expire(kind Kind, id uuid.UUID) {
	c.mu.Lock()
	s, ok := c.slots[kind]
	if !ok || s.n.ID != id {
		// replaced or dismissed since the timer was armed
		c.mu.Unlock()
		return
	}
	delete(c.slots, kind)
	c.mu.Unlock()

	if c.onExpire != nil {
		c.onExpire(kind)
	}
}
