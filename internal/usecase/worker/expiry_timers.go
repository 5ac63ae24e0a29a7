package worker

import (
	"sync"
	"time"

	"order-core/internal/pkg/clock"

	"github.com/google/uuid"
)

// ExpiryTimers keeps one in-process timer per pending order. Fired order ids are
// delivered on Fired; the durable sweep covers anything dropped or lost to a restart.
type ExpiryTimers struct {
	mu     sync.Mutex
	timers map[uuid.UUID]*time.Timer
	fired  chan uuid.UUID
	clock  clock.Clock
}

func NewExpiryTimers(clk clock.Clock) *ExpiryTimers {
	return &ExpiryTimers{
		timers: make(map[uuid.UUID]*time.Timer),
		fired:  make(chan uuid.UUID, 256),
		clock:  clk,
	}
}

func (t *ExpiryTimers) Schedule(orderID uuid.UUID, at time.Time) {
	delay := at.Sub(t.clock.Now())
	if delay < 0 {
		delay = 0
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if old, ok := t.timers[orderID]; ok {
		old.Stop()
	}

	var timer *time.Timer
	timer = time.AfterFunc(delay, func() {
		t.mu.Lock()
		current, ok := t.timers[orderID]
		if !ok || current != timer {
			t.mu.Unlock()
			return
		}
		delete(t.timers, orderID)
		t.mu.Unlock()

		select {
		case t.fired <- orderID:
		default:
		}
	})
	t.timers[orderID] = timer
}

func (t *ExpiryTimers) Cancel(orderID uuid.UUID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if timer, ok := t.timers[orderID]; ok {
		timer.Stop()
		delete(t.timers, orderID)
	}
}

func (t *ExpiryTimers) Fired() <-chan uuid.UUID {
	return t.fired
}

func (t *ExpiryTimers) Pending() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.timers)
}

// Stop cancels every outstanding timer.
func (t *ExpiryTimers) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for id, timer := range t.timers {
		timer.Stop()
		delete(t.timers, id)
	}
}
