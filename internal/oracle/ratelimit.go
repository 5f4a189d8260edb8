package oracle

import (
	"context"
	"time"
)

// throttle paces adapter calls: at most rps requests per second once the
// initial burst is spent. A nil throttle never blocks, so adapters built
// without ORACLE_RPS run unpaced.
type throttle struct {
	slots chan struct{}
	done  chan struct{}
}

func newThrottle(rps float64, burst int) *throttle {
	if rps <= 0 {
		return nil
	}
	if burst < 1 {
		burst = 1
	}
	th := &throttle{
		slots: make(chan struct{}, burst),
		done:  make(chan struct{}),
	}
	for len(th.slots) < cap(th.slots) {
		th.slots <- struct{}{}
	}
	interval := time.Duration(float64(time.Second) / rps)
	if interval < time.Millisecond {
		interval = time.Millisecond
	}
	go th.refill(interval)
	return th
}

func (th *throttle) refill(interval time.Duration) {
	tick := time.NewTicker(interval)
	defer tick.Stop()
	for {
		select {
		case <-th.done:
			return
		case <-tick.C:
		}
		select {
		case th.slots <- struct{}{}:
		default:
		}
	}
}

// wait blocks until a slot frees up, the context ends, or the throttle is
// stopped.
func (th *throttle) wait(ctx context.Context) error {
	if th == nil {
		return nil
	}
	select {
	case <-th.slots:
		return nil
	case <-th.done:
		return context.Canceled
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (th *throttle) stop() {
	if th != nil {
		close(th.done)
	}
}
