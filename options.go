package regwatch

import (
	"time"

	"github.com/sirupsen/logrus"
)

type Option func(w *Watcher)

// WithSubtree makes changes to descendant keys count as changes to the watched key.
func WithSubtree(watchSubtree bool) Option {
	return func(w *Watcher) {
		w.watchSubtree = watchSubtree
	}
}

// WithTickDuration sets how long the worker sleeps after delivering a notification before re-arming.
// Changes made during that window collapse into the next notification.
func WithTickDuration(tick time.Duration) Option {
	return func(w *Watcher) {
		if tick < 0 {
			tick = 0
		}
		w.tickDuration = tick
	}
}

func WithLogger(logger logrus.FieldLogger) Option {
	return func(w *Watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}
