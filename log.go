package regwatch

import "github.com/sirupsen/logrus"

// defaultLogger is used when no logger option is given.
func defaultLogger() logrus.FieldLogger {
	return logrus.StandardLogger().WithField("component", "regwatch")
}

// log returns the watcher's logger annotated with its configuration
func (w *Watcher) log() logrus.FieldLogger {
	return w.logger.WithFields(logrus.Fields{
		"filter":  w.filter.String(),
		"subtree": w.watchSubtree,
	})
}
