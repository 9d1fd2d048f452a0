package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/afero"
)

// Environment variables used to hand the event log to child processes.
const (
	EnvEventLog = "NESTSH_EVENT_LOG"
	EnvSession  = "NESTSH_SESSION"
)

// LogRecorder is a callback that stores events in an external datastore.
type LogRecorder func(le *LogEntry) error

// Logger captures the events of shell sessions.
type Logger struct {
	Record LogRecorder
}

// NewJsonLinesLogRecorder creates a Logger that exports logs in newline
// delimited JSON object format. Each entry is a single write so several
// processes can append to the same file.
func NewJsonLinesLogRecorder(w io.Writer) *Logger {
	return &Logger{
		Record: func(le *LogEntry) error {
			entry, err := json.Marshal(le)
			if err != nil {
				return err
			}
			_, err = w.Write(append(entry, '\n'))
			return err
		},
	}
}

// OpenJSONLinesLog opens a newline delimited JSON log for appending.
func OpenJSONLinesLog(fs afero.Fs, path string) (*Logger, io.Closer, error) {
	f, err := fs.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0600)
	if err != nil {
		return nil, nil, err
	}
	return NewJsonLinesLogRecorder(f), f, nil
}

func (l *Logger) recordLogType(sessionID string, event LogType) error {
	le := &LogEntry{
		TimestampMicros: time.Now().UnixMicro(),
		SessionID:       sessionID,
		Pid:             os.Getpid(),
	}
	event.setOn(le)

	return l.Record(le)
}

var sessionIDs = rand.New(rand.NewSource(time.Now().UnixNano()))

// NewSession creates a logger with a new random session ID.
func (l *Logger) NewSession() *SessionLogger {
	return l.Session(fmt.Sprintf("%d", sessionIDs.Uint64()))
}

// Session creates a logger that joins an existing session.
func (l *Logger) Session(sessionID string) *SessionLogger {
	return &SessionLogger{Logger: l, sessionID: sessionID}
}

// SessionLogger logs messages with a shared session ID.
type SessionLogger struct {
	*Logger
	sessionID string

	// path is where child interpreters append to the session.
	path string
}

// SessionID returns the ID stamped on every entry.
func (l *SessionLogger) SessionID() string {
	return l.sessionID
}

// Record stamps and stores a single event.
func (l *SessionLogger) Record(event LogType) error {
	return l.recordLogType(l.sessionID, event)
}

// Export shares the session with child interpreters, which append to path.
// The process environment is left alone; children receive the session
// through Environ.
func (l *SessionLogger) Export(path string) {
	l.path = path
}

// Environ returns the environment entries that hand an exported session to a
// child interpreter. It returns nil for a nil or unexported session.
func (l *SessionLogger) Environ() []string {
	if l == nil || l.path == "" {
		return nil
	}
	return []string{
		EnvEventLog + "=" + l.path,
		EnvSession + "=" + l.sessionID,
	}
}

// FromEnvironment joins the session exported by a parent process. It returns
// a nil logger if no parent exported one.
//
// The variables are removed from the process environment so programs started
// from it don't inherit them; the returned session is exported again for the
// process's own child interpreters.
func FromEnvironment(fs afero.Fs) (*SessionLogger, io.Closer, error) {
	path := os.Getenv(EnvEventLog)
	sessionID := os.Getenv(EnvSession)
	os.Unsetenv(EnvEventLog)
	os.Unsetenv(EnvSession)
	if path == "" {
		return nil, nil, nil
	}

	l, closer, err := OpenJSONLinesLog(fs, path)
	if err != nil {
		return nil, nil, err
	}
	session := l.Session(sessionID)
	session.Export(path)
	return session, closer, nil
}
