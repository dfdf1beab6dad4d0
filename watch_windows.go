//go:build windows

package regwatch

import (
	"errors"
	"fmt"
	"runtime"
	"syscall"

	"github.com/spiretechnology/go-regwatch/internal/winevent"
	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"
)

// Watch arms a one-shot change notification on key and blocks the calling goroutine until a change matching
// filter occurs or the timeout elapses. With watchSubtree set, changes to descendant keys count as well.
//
// The registration is edge-triggered. Changes made before Watch is called, or between two calls, are not
// reported.
func Watch(key registry.Key, filter Filter, watchSubtree bool, timeout Timeout) (Response, error) {
	// Unless ThreadAgnostic is set the registration belongs to the thread that made it.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	event, err := winevent.Create()
	if err != nil {
		return 0, fmt.Errorf("create wait event: %w", err)
	}
	defer event.Close()

	err = windows.RegNotifyChangeKeyValue(
		windows.Handle(key),
		watchSubtree,
		uint32(filter),
		event.Handle(),
		true,
	)
	if err != nil {
		return 0, &RegistrationError{Code: toErrno(err)}
	}

	result, err := event.Wait(uint32(timeout))
	switch result {
	case winevent.WaitObject0:
		return Notified, nil
	case winevent.WaitTimeout:
		return TimedOut, nil
	case winevent.WaitAbandoned:
		return 0, ErrAbandoned
	case winevent.WaitFailed:
		return 0, &WaitError{Code: toErrno(err)}
	default:
		panic(fmt.Sprintf("regwatch: unexpected WaitForSingleObject result %#x", result))
	}
}

func toErrno(err error) syscall.Errno {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return errno
	}
	return 0
}
