package regwatch

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultTickDuration is the delay between delivering a notification and re-arming, if nothing else is specified.
const DefaultTickDuration = time.Second

// Watcher repeatedly watches a key from a dedicated background worker. It is created idle, holding the key,
// and becomes active on the first call to Start or the first poll of a Stream. The key then belongs to the
// worker; a watcher can only be activated once.
type Watcher struct {
	filter       Filter
	watchSubtree bool
	tickDuration time.Duration
	logger       logrus.FieldLogger

	mu      sync.Mutex
	key     Key
	started bool
	done    chan struct{}
	err     error
}

// New creates an idle watcher for key.
func New(key Key, filter Filter, options ...Option) *Watcher {
	w := &Watcher{
		filter:       filter,
		tickDuration: DefaultTickDuration,
		logger:       defaultLogger(),
		key:          key,
		done:         make(chan struct{}),
	}
	for _, option := range options {
		option(w)
	}
	return w
}

// Start activates the watcher. A worker is spawned that watches the key without a timeout and sends every
// response to ch, sleeping for the tick duration after each one.
//
// The worker takes ownership of ch and closes it when it exits. It exits when ctx is cancelled, which is
// noticed after the next notification or during the tick sleep, or when a watch fails. Failures are not
// retried; use Wait to find out why the channel was closed.
func (w *Watcher) Start(ctx context.Context, ch chan<- Response) error {
	return w.activate(ctx, ch, func() {})
}

// Wait blocks until the worker exits and returns the error that stopped it. It returns nil if the worker
// stopped because its context was cancelled.
func (w *Watcher) Wait() error {
	w.mu.Lock()
	started := w.started
	w.mu.Unlock()
	if !started {
		return ErrNotStarted
	}

	<-w.done
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.err
}

// activate moves the key to a new worker. notify is called after every delivered response and once more
// after ch is closed.
func (w *Watcher) activate(ctx context.Context, ch chan<- Response, notify func()) error {
	w.mu.Lock()
	key := w.key
	if key == nil {
		w.mu.Unlock()
		return ErrKeyConsumed
	}
	w.key = nil
	w.started = true
	w.mu.Unlock()

	go w.run(ctx, key, ch, notify)
	return nil
}

func (w *Watcher) run(ctx context.Context, key Key, ch chan<- Response, notify func()) {
	// The thread is never unlocked, so the runtime terminates it along with the worker and any
	// registration bound to it.
	runtime.LockOSThread()

	logger := w.log()
	logger.Debug("watcher started")

	defer close(w.done)
	defer notify()
	defer close(ch)
	defer func() {
		if err := key.Close(); err != nil {
			logger.WithError(err).Warn("error closing watched key")
		}
	}()

	for {
		// Never arm a registration nobody will receive
		if ctx.Err() != nil {
			logger.Debug("receiver gone, stopping watcher")
			return
		}

		resp, err := key.Watch(w.filter, w.watchSubtree, Infinite)
		if err != nil {
			w.mu.Lock()
			w.err = err
			w.mu.Unlock()
			logger.WithError(err).Error("watch failed, stopping watcher")
			return
		}

		if ctx.Err() != nil {
			logger.Debug("receiver gone, stopping watcher")
			return
		}
		select {
		case <-ctx.Done():
			logger.Debug("receiver gone, stopping watcher")
			return
		case ch <- resp:
		}
		notify()
		logger.WithField("response", resp.String()).Debug("response delivered")

		// Sleep for the configured tick before re-arming
		select {
		case <-ctx.Done():
			logger.Debug("receiver gone, stopping watcher")
			return
		case <-time.After(w.tickDuration):
		}
	}
}
