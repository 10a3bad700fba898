// Package countdown renders live "time remaining" labels for flash deals.
// Each timer is owned by whatever is displaying it and must be stopped when
// that owner goes away; no tick fires after Stop.
package countdown

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

const zeroLabel = "00:00:00"

// Timer counts an HH:MM:SS label down to zero, one second at a time.
// Instances are fully independent; there is no shared clock state.
type Timer struct {
	mu      sync.Mutex
	h, m, s int
	done    bool

	stopOnce sync.Once
	stop     chan struct{}
}

// New starts a timer seeded from initial. An empty initial value yields a
// static timer that always reads 00:00:00 and never ticks. A malformed
// value is an error.
func New(initial string, clock clockwork.Clock) (*Timer, error) {
	t := &Timer{stop: make(chan struct{})}

	if initial == "" {
		t.done = true
		return t, nil
	}

	h, m, s, err := parseHMS(initial)
	if err != nil {
		return nil, err
	}
	t.h, t.m, t.s = h, m, s

	if h == 0 && m == 0 && s == 0 {
		t.done = true
		return t, nil
	}

	go t.run(clock)
	return t, nil
}

func (t *Timer) run(clock clockwork.Clock) {
	ticker := clock.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-t.stop:
			return
		case <-ticker.Chan():
			if t.tick() {
				return
			}
		}
	}
}

// tick decrements one second with borrow and reports whether the timer
// just reached zero.
func (t *Timer) tick() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.done {
		return true
	}

	switch {
	case t.s > 0:
		t.s--
	case t.m > 0:
		t.m--
		t.s = 59
	case t.h > 0:
		t.h--
		t.m = 59
		t.s = 59
	}

	if t.h == 0 && t.m == 0 && t.s == 0 {
		t.done = true
		return true
	}
	return false
}

// Value returns the current display label.
func (t *Timer) Value() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done && t.h == 0 && t.m == 0 && t.s == 0 {
		return zeroLabel
	}
	return fmt.Sprintf("%02d:%02d:%02d", t.h, t.m, t.s)
}

// Done reports whether the countdown has reached zero.
func (t *Timer) Done() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.done
}

// Stop cancels the ticker. It is idempotent and safe to call on a timer
// that already finished.
func (t *Timer) Stop() {
	t.stopOnce.Do(func() { close(t.stop) })
}

func parseHMS(v string) (h, m, s int, err error) {
	parts := strings.Split(v, ":")
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("invalid countdown %q: want HH:MM:SS", v)
	}
	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return 0, 0, 0, fmt.Errorf("invalid countdown %q: want HH:MM:SS", v)
		}
		nums[i] = n
	}
	h, m, s = nums[0], nums[1], nums[2]
	if m > 59 || s > 59 {
		return 0, 0, 0, fmt.Errorf("invalid countdown %q: out of range", v)
	}
	return h, m, s, nil
}
