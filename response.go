package regwatch

// Response is the outcome of a single watch.
type Response uint8

const (
	// Notified means a change matching the filter was observed. Which change, or how many, is not known.
	Notified = Response(1 << 0)
	// TimedOut means the timeout elapsed without a matching change.
	TimedOut = Response(1 << 1)
)

func (r Response) String() string {
	switch r {
	case Notified:
		return "notified"
	case TimedOut:
		return "timed out"
	default:
		return "unknown"
	}
}
