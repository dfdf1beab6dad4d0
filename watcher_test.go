package regwatch_test

import (
	"context"
	"syscall"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/spiretechnology/go-regwatch"
	"github.com/spiretechnology/go-regwatch/mocks"
	"github.com/stretchr/testify/require"
)

func quietLogger() logrus.FieldLogger {
	logger, _ := logtest.NewNullLogger()
	return logger
}

func TestWatcher(t *testing.T) {
	t.Run("delivers a notification per change", func(t *testing.T) {
		key := newFakeKey()
		w := regwatch.New(key, regwatch.ChangeLastSet,
			regwatch.WithTickDuration(10*time.Millisecond),
			regwatch.WithLogger(quietLogger()),
		)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		ch := make(chan regwatch.Response)
		require.NoError(t, w.Start(ctx, ch), "error starting watcher")

		for i := 0; i < 3; i++ {
			key.waitArmed(t)
			require.True(t, key.Change(), "change should be observed")
			resp, ok := receive(t, ch)
			require.True(t, ok, "channel closed early")
			require.Equal(t, regwatch.Notified, resp, "wrong response")
		}
	})
	t.Run("second activation fails", func(t *testing.T) {
		w := regwatch.New(newFakeKey(), regwatch.LegalChangeFilter, regwatch.WithLogger(quietLogger()))
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		require.NoError(t, w.Start(ctx, make(chan regwatch.Response)), "error starting watcher")
		err := w.Start(ctx, make(chan regwatch.Response))
		require.ErrorIs(t, err, regwatch.ErrKeyConsumed, "second start should fail")

		_, state := w.Stream(ctx).Poll(nil)
		require.Equal(t, regwatch.Done, state, "stream over a consumed watcher should end")
	})
	t.Run("watcher without a key cannot start", func(t *testing.T) {
		w := regwatch.New(nil, regwatch.ChangeName, regwatch.WithLogger(quietLogger()))
		err := w.Start(context.Background(), make(chan regwatch.Response))
		require.ErrorIs(t, err, regwatch.ErrKeyConsumed, "start should fail")
		require.ErrorIs(t, w.Wait(), regwatch.ErrNotStarted, "wait should report not started")
	})
	t.Run("changes before arming are not reported", func(t *testing.T) {
		key := newFakeKey()
		require.False(t, key.Change(), "change before registration should be lost")

		w := regwatch.New(key, regwatch.ChangeLastSet, regwatch.WithLogger(quietLogger()))
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		ch := make(chan regwatch.Response, 1)
		require.NoError(t, w.Start(ctx, ch), "error starting watcher")
		key.waitArmed(t)

		select {
		case resp := <-ch:
			t.Fatalf("unexpected response %s", resp)
		case <-time.After(50 * time.Millisecond):
		}
	})
	t.Run("changes within a tick collapse", func(t *testing.T) {
		key := newFakeKey()
		w := regwatch.New(key, regwatch.ChangeLastSet,
			regwatch.WithTickDuration(200*time.Millisecond),
			regwatch.WithLogger(quietLogger()),
		)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		ch := make(chan regwatch.Response, 16)
		require.NoError(t, w.Start(ctx, ch), "error starting watcher")

		changes, observed, received := 0, 0, 0
		key.waitArmed(t)
		changes++
		require.True(t, key.Change(), "first change should be observed")
		_, ok := receive(t, ch)
		require.True(t, ok, "channel closed early")
		received++

		// The worker is sleeping, so nothing is armed
		for i := 0; i < 5; i++ {
			changes++
			if key.Change() {
				observed++
			}
		}
		require.Zero(t, observed, "changes during the tick should be dropped")

		key.waitArmed(t)
		changes++
		require.True(t, key.Change(), "change after re-arming should be observed")
		_, ok = receive(t, ch)
		require.True(t, ok, "channel closed early")
		received++

		// The worker is in its tick sleep, so cancelling stops it before it re-arms
		cancel()
		for range ch {
			received++
		}
		waitStopped(t, w)
		require.Equal(t, 7, changes, "wrong number of changes")
		require.Equal(t, 2, received, "changes within a tick should collapse")
		require.LessOrEqual(t, received, changes, "more responses than changes")
	})
	t.Run("cancelling the context stops the worker", func(t *testing.T) {
		key := newFakeKey()
		w := regwatch.New(key, regwatch.ChangeLastSet, regwatch.WithLogger(quietLogger()))
		ctx, cancel := context.WithCancel(context.Background())
		ch := make(chan regwatch.Response)
		require.NoError(t, w.Start(ctx, ch), "error starting watcher")

		key.waitArmed(t)
		cancel()
		require.True(t, key.Change(), "change should be observed")

		_, ok := receive(t, ch)
		require.False(t, ok, "channel should be closed")
		require.NoError(t, w.Wait(), "a cancelled watcher stops cleanly")
		require.True(t, key.closed.Load(), "key should be closed by the worker")
	})
	t.Run("starting with a cancelled context never arms the key", func(t *testing.T) {
		key := newFakeKey()
		w := regwatch.New(key, regwatch.ChangeLastSet, regwatch.WithLogger(quietLogger()))
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		ch := make(chan regwatch.Response)
		require.NoError(t, w.Start(ctx, ch), "error starting watcher")

		_, ok := receive(t, ch)
		require.False(t, ok, "channel should be closed")
		waitStopped(t, w)
		require.Len(t, key.armed, 0, "key should never be armed")
		require.True(t, key.closed.Load(), "key should be closed by the worker")
	})
	t.Run("cancelling during the tick stops the worker", func(t *testing.T) {
		key := newFakeKey()
		w := regwatch.New(key, regwatch.ChangeLastSet,
			regwatch.WithTickDuration(time.Hour),
			regwatch.WithLogger(quietLogger()),
		)
		ctx, cancel := context.WithCancel(context.Background())
		ch := make(chan regwatch.Response, 1)
		require.NoError(t, w.Start(ctx, ch), "error starting watcher")

		key.waitArmed(t)
		require.True(t, key.Change(), "change should be observed")
		resp, ok := receive(t, ch)
		require.True(t, ok, "channel closed early")
		require.Equal(t, regwatch.Notified, resp, "wrong response")

		cancel()
		_, ok = receive(t, ch)
		require.False(t, ok, "channel should be closed")
		require.NoError(t, w.Wait(), "a cancelled watcher stops cleanly")
	})
	t.Run("watch failure closes the channel", func(t *testing.T) {
		key := mocks.NewMockKey(t)
		key.On("Watch", regwatch.ChangeLastSet, true, regwatch.Infinite).Return(regwatch.Notified, nil).Once()
		key.On("Watch", regwatch.ChangeLastSet, true, regwatch.Infinite).Return(regwatch.Response(0), &regwatch.RegistrationError{Code: syscall.Errno(5)}).Once()
		key.On("Close").Return(nil).Once()

		logger, hook := logtest.NewNullLogger()
		w := regwatch.New(key, regwatch.ChangeLastSet,
			regwatch.WithSubtree(true),
			regwatch.WithTickDuration(0),
			regwatch.WithLogger(logger),
		)
		ch := make(chan regwatch.Response, 4)
		require.NoError(t, w.Start(context.Background(), ch), "error starting watcher")

		var responses []regwatch.Response
		for resp := range ch {
			responses = append(responses, resp)
		}
		require.Equal(t, []regwatch.Response{regwatch.Notified}, responses, "wrong responses before failure")

		err := w.Wait()
		var regErr *regwatch.RegistrationError
		require.ErrorAs(t, err, &regErr, "wait should return the registration error")
		require.Equal(t, syscall.Errno(5), regErr.Code, "wrong error code")
		require.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level, "failure should be logged")
	})
	t.Run("wait failure is reported", func(t *testing.T) {
		key := mocks.NewMockKey(t)
		key.On("Watch", regwatch.ChangeName, false, regwatch.Infinite).Return(regwatch.Response(0), regwatch.ErrAbandoned).Once()
		key.On("Close").Return(syscall.Errno(6)).Once()

		logger, hook := logtest.NewNullLogger()
		w := regwatch.New(key, regwatch.ChangeName, regwatch.WithLogger(logger))
		ch := make(chan regwatch.Response)
		require.NoError(t, w.Start(context.Background(), ch), "error starting watcher")

		_, ok := receive(t, ch)
		require.False(t, ok, "channel should be closed")
		require.ErrorIs(t, w.Wait(), regwatch.ErrAbandoned, "wrong error")
		require.Equal(t, logrus.WarnLevel, hook.LastEntry().Level, "close failure should be logged")
	})
}
