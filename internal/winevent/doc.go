// Package winevent wraps a named, auto-resetting kernel event used as the signal target of a registry
// change notification. It is only implemented on windows.
package winevent
