// Package httpx provides the shared HTTP client and the bounded retry policy
// that wraps every network call the updater makes.
package httpx

import (
	"errors"
	"net/http"
	"time"

	"github.com/zevwings/workflow/internal/logging"
)

// UserAgent identifies this tool in outbound requests.
const UserAgent = "workflow-cli"

var log = logging.L("http")

// NewClient returns an HTTP client sized for large release downloads.
func NewClient() *http.Client {
	return &http.Client{Timeout: 5 * time.Minute}
}

// RetryConfig bounds the retry loop.
type RetryConfig struct {
	Attempts int
	Delay    time.Duration
}

// DefaultRetryConfig retries three times with a short fixed delay.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{Attempts: 3, Delay: 2 * time.Second}
}

type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// Permanent marks an error as not worth retrying, such as a 404 response.
func Permanent(err error) error {
	return &permanentError{err: err}
}

// Retry runs op until it succeeds or the attempts run out. Errors
// wrapped with Permanent abort immediately and are returned unwrapped.
func Retry(cfg RetryConfig, label string, op func() error) error {
	if cfg.Attempts < 1 {
		cfg.Attempts = 1
	}

	var err error
	for attempt := 1; attempt <= cfg.Attempts; attempt++ {
		err = op()
		if err == nil {
			return nil
		}

		var perm *permanentError
		if errors.As(err, &perm) {
			return perm.err
		}

		if attempt < cfg.Attempts {
			log.Debug("retrying", "label", label, "attempt", attempt, "error", err)
			time.Sleep(cfg.Delay)
		}
	}
	return err
}
