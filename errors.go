package regwatch

import (
	"errors"
	"fmt"
	"syscall"
)

var (
	// ErrKeyConsumed is returned when a watcher is activated a second time. The key is handed to the first
	// worker and cannot be shared with another.
	ErrKeyConsumed = errors.New("watcher key already consumed")

	// ErrNotStarted is returned by Wait on a watcher that was never activated.
	ErrNotStarted = errors.New("watcher not started")

	// ErrAbandoned is returned when the wait object was abandoned instead of signaled.
	ErrAbandoned = errors.New("wait object abandoned")

	// ErrStopped is returned by Stream.Next once the stream has ended without a failure.
	ErrStopped = errors.New("watcher stopped")

	// ErrUnsupported is returned when registry notifications are not available on this platform.
	ErrUnsupported = errors.New("registry notifications are only supported on windows")
)

// RegistrationError is returned when the operating system refuses to arm a change notification.
type RegistrationError struct {
	Code syscall.Errno
}

func (e *RegistrationError) Error() string {
	return fmt.Sprintf("RegNotifyChangeKeyValue return code: %d", uint32(e.Code))
}

func (e *RegistrationError) Unwrap() error {
	return e.Code
}

// WaitError is returned when waiting on the notification event fails.
type WaitError struct {
	Code syscall.Errno
}

func (e *WaitError) Error() string {
	return fmt.Sprintf("WaitForSingleObject return code: %d", uint32(e.Code))
}

func (e *WaitError) Unwrap() error {
	return e.Code
}
