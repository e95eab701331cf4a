// Package logging provides component-scoped loggers for internal diagnostics.
// User-facing progress lines go through internal/output instead.
package logging

import (
	"os"
	"sync"

	"github.com/charmbracelet/log"
)

var (
	root = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
	})

	mu      sync.Mutex
	loggers []*log.Logger
)

// L returns a logger scoped to the given component. Loggers are tracked so a
// later level change reaches the ones already handed out.
func L(component string) *log.Logger {
	l := root.With("component", component)
	mu.Lock()
	loggers = append(loggers, l)
	mu.Unlock()
	return l
}

// SetVerbose lowers the log level to Debug.
func SetVerbose() {
	setLevel(log.DebugLevel)
}

// SetQuiet raises the log level so only errors are emitted.
func SetQuiet() {
	setLevel(log.ErrorLevel)
}

func setLevel(level log.Level) {
	mu.Lock()
	defer mu.Unlock()
	root.SetLevel(level)
	for _, l := range loggers {
		l.SetLevel(level)
	}
}
