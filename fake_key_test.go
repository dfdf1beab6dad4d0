package regwatch_test

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/spiretechnology/go-regwatch"
	"github.com/stretchr/testify/require"
)

// fakeKey models a one-shot registration: Change only fires a watch that is currently armed.
type fakeKey struct {
	mu     sync.Mutex
	waiter chan struct{}
	armed  chan struct{}
	closed atomic.Bool
}

func newFakeKey() *fakeKey {
	return &fakeKey{armed: make(chan struct{}, 64)}
}

func (k *fakeKey) Watch(filter regwatch.Filter, watchSubtree bool, timeout regwatch.Timeout) (regwatch.Response, error) {
	fired := make(chan struct{})
	k.mu.Lock()
	k.waiter = fired
	k.mu.Unlock()

	select {
	case k.armed <- struct{}{}:
	default:
	}

	var elapsed <-chan time.Time
	if !timeout.IsInfinite() {
		elapsed = time.After(timeout.Duration())
	}
	select {
	case <-fired:
		return regwatch.Notified, nil
	case <-elapsed:
		k.mu.Lock()
		if k.waiter == fired {
			k.waiter = nil
		}
		k.mu.Unlock()
		return regwatch.TimedOut, nil
	}
}

func (k *fakeKey) Close() error {
	k.closed.Store(true)
	return nil
}

// Change simulates a modification of the key and reports whether an armed watch observed it.
func (k *fakeKey) Change() bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.waiter == nil {
		return false
	}
	close(k.waiter)
	k.waiter = nil
	return true
}

func (k *fakeKey) waitArmed(t *testing.T) {
	t.Helper()
	select {
	case <-k.armed:
	case <-time.After(2 * time.Second):
		t.Fatal("key was never armed")
	}
}

func receive(t *testing.T, ch <-chan regwatch.Response) (regwatch.Response, bool) {
	t.Helper()
	select {
	case resp, ok := <-ch:
		return resp, ok
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting on channel")
		return 0, false
	}
}

// waitStopped requires the watcher's worker to exit cleanly and promptly.
func waitStopped(t *testing.T, w *regwatch.Watcher) {
	t.Helper()
	errc := make(chan error, 1)
	go func() {
		errc <- w.Wait()
	}()
	select {
	case err := <-errc:
		require.NoError(t, err, "worker should stop cleanly")
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop")
	}
}
