package assistant

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// fakeClock runs scheduled continuations only when advanced.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
}

type fakeTimer struct {
	clock   *fakeClock
	at      time.Time
	f       func()
	stopped bool
	fired   bool
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{clock: c, at: c.now.Add(d), f: f}
	c.timers = append(c.timers, t)
	return t
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.fired || t.stopped {
		return false
	}
	t.stopped = true
	return true
}

// Advance moves time forward and runs due continuations on the caller's
// goroutine.
func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	var due []*fakeTimer
	for _, t := range c.timers {
		if !t.fired && !t.stopped && !t.at.After(c.now) {
			t.fired = true
			due = append(due, t)
		}
	}
	c.mu.Unlock()

	for _, t := range due {
		t.f()
	}
}

// Pending counts continuations neither fired nor stopped.
func (c *fakeClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if !t.fired && !t.stopped {
			n++
		}
	}
	return n
}

type memRepo struct {
	mu    sync.Mutex
	convs map[uuid.UUID]Conversation
}

func newMemRepo() *memRepo {
	return &memRepo{convs: make(map[uuid.UUID]Conversation)}
}

func (r *memRepo) GetByID(ctx context.Context, id uuid.UUID) (*Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.convs[id]
	if !ok {
		return nil, ErrNotFound
	}
	c.History = append([]Message{}, c.History...)
	return &c, nil
}

func (r *memRepo) Save(ctx context.Context, c *Conversation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *c
	stored.History = append([]Message{}, c.History...)
	r.convs[c.ID] = stored
	return nil
}

// immediateClock runs every continuation inline, before AfterFunc returns.
type immediateClock struct{}

func (immediateClock) Now() time.Time {
	return time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
}

func (immediateClock) AfterFunc(d time.Duration, f func()) Timer {
	f()
	return firedTimer{}
}

type firedTimer struct{}

func (firedTimer) Stop() bool { return false }

// echoAgent echoes the question it was asked, with two sources.
type echoAgent struct{}

func (echoAgent) Reply(ctx context.Context, history []Message, question Message) (Message, error) {
	return Message{
		Content: "echo: " + question.Content,
		Sources: []Source{
			{EntryID: "top", Citation: "Top Source"},
			{EntryID: "second", Citation: "Second Source"},
		},
	}, nil
}
