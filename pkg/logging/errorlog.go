package logging

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/alexsab-ru/sitekit/pkg/constants"
)

// ErrorLog appends failures of external collaborators to a plain text file,
// one "<RFC3339>: <message>" line per failure. CI jobs publish this file
// instead of failing the pipeline.
type ErrorLog struct {
	path string
	now  func() time.Time
	mu   sync.Mutex
}

// NewErrorLog returns an ErrorLog writing to path. An empty path disables it.
func NewErrorLog(path string) *ErrorLog {
	return &ErrorLog{path: path, now: time.Now}
}

// Path returns the file the log appends to.
func (l *ErrorLog) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Record writes err to the default logger and appends it to the log file.
// A failure to append is reported on the default logger only.
func (l *ErrorLog) Record(err error) {
	if err == nil {
		return
	}
	Error().Err(err).Msg("External failure")
	if l == nil || l.path == "" {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	f, openErr := os.OpenFile(l.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, constants.FilePermissions)
	if openErr != nil {
		Error().Err(openErr).Str("path", l.path).Msg("Cannot open error log")
		return
	}
	defer func() { _ = f.Close() }()

	if _, writeErr := fmt.Fprintf(f, "%s: %s\n", l.now().UTC().Format(time.RFC3339), err.Error()); writeErr != nil {
		Error().Err(writeErr).Str("path", l.path).Msg("Cannot append to error log")
	}
}
