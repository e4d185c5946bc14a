// logger.go - lazy diagnostic logging for the audio thread

package graphcore

import "log"

// threadLogger wraps the standard logger with the install-once guard
// the Executor calls on its first process() - the audio thread reports
// only through telemetry and the occasional defensive warning, never
// by failing loudly.
type threadLogger struct {
	installed bool
}

func (l *threadLogger) installOnce() {
	if l.installed {
		return
	}
	l.installed = true
	log.SetPrefix("graphcore: ")
	log.SetFlags(log.Ltime | log.Lmicroseconds)
}

func (l *threadLogger) warnf(format string, args ...interface{}) {
	log.Printf(format, args...)
}
