//go:build windows

package winevent

import (
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sys/windows"
)

// NameSuffix is appended to every generated event name.
const NameSuffix = "-reg-watcher"

// Raw results of WaitForSingleObject.
const (
	WaitObject0   = uint32(0x00000000)
	WaitAbandoned = uint32(0x00000080)
	WaitTimeout   = uint32(0x00000102)
	WaitFailed    = uint32(0xFFFFFFFF)
)

// Event is an auto-reset, initially unsignaled event. It is owned by exactly one watch and must be closed by it.
type Event struct {
	name   string
	handle windows.Handle
}

// Create creates a new event with a process-unique name.
func Create() (*Event, error) {
	name := uuid.NewString() + NameSuffix
	namePtr, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return nil, err
	}
	handle, err := windows.CreateEvent(nil, 0, 0, namePtr)
	if err != nil {
		// A name collision still hands back a handle to the existing object.
		if handle != 0 {
			_ = windows.CloseHandle(handle)
		}
		return nil, fmt.Errorf("CreateEvent %q: %w", name, err)
	}
	return &Event{name: name, handle: handle}, nil
}

// Name returns the kernel object name of the event.
func (e *Event) Name() string {
	return e.name
}

// Handle returns the raw event handle.
func (e *Event) Handle() windows.Handle {
	return e.handle
}

// Wait blocks for up to ms milliseconds and returns the raw wait result. The error is only set when the
// result is WaitFailed.
func (e *Event) Wait(ms uint32) (uint32, error) {
	return windows.WaitForSingleObject(e.handle, ms)
}

// Set signals the event.
func (e *Event) Set() error {
	return windows.SetEvent(e.handle)
}

// Close releases the event. Failures are ignored; there is nothing a caller could do about them.
func (e *Event) Close() {
	if e.handle == 0 {
		return
	}
	_ = windows.CloseHandle(e.handle)
	e.handle = 0
}
