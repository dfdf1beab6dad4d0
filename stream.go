package regwatch

import (
	"context"
	"iter"
	"sync"
)

// streamBuffer is the number of responses a stream holds before the worker blocks.
const streamBuffer = 16

// PollState is the result of polling a Stream.
type PollState uint8

const (
	// Pending means no response is available yet. The wake function passed to Poll is called when one is.
	Pending PollState = iota
	// Ready means a response was returned.
	Ready
	// Done means the stream has ended and will never yield again.
	Done
)

// Stream is a lazy, infinite sequence of responses from a Watcher. Nothing is watched until the first poll,
// which activates the watcher. A stream cannot be restarted.
type Stream struct {
	w      *Watcher
	ctx    context.Context
	cancel context.CancelFunc
	ch     chan Response

	mu      sync.Mutex
	wake    func()
	started bool
	ended   bool
	err     error
}

// Stream returns a lazy stream over the watcher's responses. The worker stops when ctx is cancelled or the
// stream is closed.
func (w *Watcher) Stream(ctx context.Context) *Stream {
	ctx, cancel := context.WithCancel(ctx)
	return &Stream{
		w:      w,
		ctx:    ctx,
		cancel: cancel,
		ch:     make(chan Response, streamBuffer),
	}
}

// Poll attempts to take the next response without blocking. When it returns Pending, wake will be called
// once a response is available or the stream ends; the caller should then poll again. Only the wake from
// the most recent poll is kept.
func (s *Stream) Poll(wake func()) (Response, PollState) {
	s.mu.Lock()
	s.wake = wake
	if s.ended {
		s.mu.Unlock()
		return 0, Done
	}
	if !s.started && s.ctx.Err() != nil {
		// Closed before the first poll; the watcher stays idle
		s.ended = true
		s.mu.Unlock()
		return 0, Done
	}
	if !s.started {
		s.started = true
		s.mu.Unlock()

		// The first poll only spawns the worker
		if err := s.w.activate(s.ctx, s.ch, s.notify); err != nil {
			s.mu.Lock()
			s.ended = true
			s.err = err
			s.mu.Unlock()
			return 0, Done
		}
		return 0, Pending
	}
	s.mu.Unlock()

	select {
	case resp, ok := <-s.ch:
		if !ok {
			s.mu.Lock()
			s.ended = true
			s.mu.Unlock()
			return 0, Done
		}
		return resp, Ready
	default:
		return 0, Pending
	}
}

// notify is handed to the worker and forwards to the latest registered wake function.
func (s *Stream) notify() {
	s.mu.Lock()
	wake := s.wake
	s.mu.Unlock()
	if wake != nil {
		wake()
	}
}

// Next blocks until the next response is available. It returns ErrStopped when the stream ended because it
// was closed or its context was cancelled, the worker's error if the watch failed, or ctx.Err().
func (s *Stream) Next(ctx context.Context) (Response, error) {
	wakeup := make(chan struct{}, 1)
	wake := func() {
		select {
		case wakeup <- struct{}{}:
		default:
		}
	}

	for {
		resp, state := s.Poll(wake)
		switch state {
		case Ready:
			return resp, nil
		case Done:
			if err := s.Err(); err != nil {
				return 0, err
			}
			return 0, ErrStopped
		}

		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-wakeup:
		}
	}
}

// All returns an iterator over the stream's responses. Breaking out of the loop closes the stream.
func (s *Stream) All() iter.Seq[Response] {
	return func(yield func(Response) bool) {
		for {
			resp, err := s.Next(s.ctx)
			if err != nil {
				return
			}
			if !yield(resp) {
				s.Close()
				return
			}
		}
	}
}

// Close stops the stream's worker. Responses already buffered can still be polled.
func (s *Stream) Close() {
	s.cancel()
}

// Err returns the error that ended the stream: ErrKeyConsumed if the watcher had already been activated,
// or the watch failure that stopped the worker. It returns nil while the stream is live or after a clean stop.
func (s *Stream) Err() error {
	s.mu.Lock()
	err, ended, started := s.err, s.ended, s.started
	s.mu.Unlock()
	if err != nil || !ended || !started {
		return err
	}
	return s.w.Wait()
}
