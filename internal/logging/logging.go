// Package logging builds the per-invocation logger: every line goes to the
// system log under the auth facility and, in verbose mode, to stderr as well.
package logging

import (
	"fmt"
	"io"
	"log"

	"github.com/google/uuid"
)

// Logger is a configured *log.Logger plus the resources it holds open.
type Logger struct {
	*log.Logger
	AttemptID string

	syslog io.Closer
}

// New opens the logger for one authentication attempt. program becomes the
// syslog tag. When verbose is set every line is copied to stderr. A missing
// syslog daemon is not fatal: the returned logger is usable and the error
// only explains why lines are not reaching the system log.
func New(program string, verbose bool, stderr io.Writer) (*Logger, error) {
	sys, syslogErr := openSyslog(program)
	if syslogErr != nil {
		l := newLogger(nil, verbose, stderr)
		return l, fmt.Errorf("logging: open syslog: %w", syslogErr)
	}
	l := newLogger(sys, verbose, stderr)
	l.syslog = sys
	return l, nil
}

func newLogger(sys io.Writer, verbose bool, stderr io.Writer) *Logger {
	var writers []io.Writer
	if sys != nil {
		writers = append(writers, ignoreErrors{sys})
	}
	if verbose && stderr != nil {
		writers = append(writers, stderr)
	}

	out := io.Discard
	if len(writers) > 0 {
		out = io.MultiWriter(writers...)
	}

	attemptID := NewAttemptID()
	return &Logger{
		Logger:    log.New(out, fmt.Sprintf("[%s] ", attemptID), log.Lmsgprefix),
		AttemptID: attemptID,
	}
}

// ignoreErrors keeps a failing syslog connection from cutting off the
// writers that follow it in the MultiWriter.
type ignoreErrors struct{ w io.Writer }

func (e ignoreErrors) Write(p []byte) (int, error) {
	_, _ = e.w.Write(p)
	return len(p), nil
}

// NewAttemptID returns a short random identifier that ties together the log
// lines of one invocation.
func NewAttemptID() string {
	return uuid.NewString()[:8]
}

// Close releases the syslog connection.
func (l *Logger) Close() error {
	if l.syslog == nil {
		return nil
	}
	return l.syslog.Close()
}
