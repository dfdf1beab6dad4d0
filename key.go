package regwatch

// Key is an open handle to a watched registry key. Ownership moves to the watcher's worker on activation,
// which closes it when the worker exits.
type Key interface {
	// Watch arms a one-shot notification for the next change matching filter and blocks until it fires or
	// the timeout elapses. Changes made before the call are never reported.
	Watch(filter Filter, watchSubtree bool, timeout Timeout) (Response, error)

	// Close releases the handle.
	Close() error
}
