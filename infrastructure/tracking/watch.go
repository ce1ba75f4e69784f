package tracking

import (
	"context"
	"sync"
	"time"
)

// Watch notifies the tracker's subscribers every interval until the
// returned stop function is called or ctx ends. Stop is idempotent and
// waits for the watcher to exit. A non-positive interval disables periodic
// reports.
func Watch(ctx context.Context, t *Tracker, interval time.Duration) (stop func()) {
	if interval <= 0 {
		return func() {}
	}

	done := make(chan struct{})
	exited := make(chan struct{})
	go func() {
		defer close(exited)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-done:
				return
			case <-ticker.C:
				t.Notify(ctx)
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			close(done)
			<-exited
		})
	}
}
