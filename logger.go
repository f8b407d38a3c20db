package morph

import (
	"sync/atomic"

	"github.com/rs/zerolog"
)

// loggerPtr holds the active logger. Swapped atomically so SetLogger can race
// with a running morph on another goroutine.
var loggerPtr atomic.Pointer[zerolog.Logger]

func init() {
	l := zerolog.Nop()
	loggerPtr.Store(&l)
}

// SetLogger configures the logger used by the package.
// By default nothing is logged.
//
// Levels used:
//   - debug: triangulation sizes, skipped faces, per-frame statistics
//   - info: run start and completion
//   - warn: degraded runs (e.g. not enough points to triangulate)
func SetLogger(l zerolog.Logger) {
	loggerPtr.Store(&l)
}

// Logger returns the current package logger.
func Logger() *zerolog.Logger {
	return loggerPtr.Load()
}

func componentLogger(component string) zerolog.Logger {
	return Logger().With().Str("component", component).Logger()
}
