package logger

// LogEntry is a single line of the event log. Exactly one event field is
// set on a valid entry.
type LogEntry struct {
	TimestampMicros int64  `json:"timestamp_micros"`
	SessionID       string `json:"session_id,omitempty"`
	Pid             int    `json:"pid,omitempty"`

	RunCommand   *RunCommand   `json:"run_command,omitempty"`
	Builtin      *Builtin      `json:"builtin,omitempty"`
	SyntaxError  *SyntaxError  `json:"syntax_error,omitempty"`
	SpawnFailure *SpawnFailure `json:"spawn_failure,omitempty"`
	Chdir        *Chdir        `json:"chdir,omitempty"`
}

// LogType is implemented by every event that can be recorded.
type LogType interface {
	setOn(le *LogEntry)
}

// GetLogType returns the event held by the entry, or nil if there is none.
func (le *LogEntry) GetLogType() LogType {
	switch {
	case le.RunCommand != nil:
		return le.RunCommand
	case le.Builtin != nil:
		return le.Builtin
	case le.SyntaxError != nil:
		return le.SyntaxError
	case le.SpawnFailure != nil:
		return le.SpawnFailure
	case le.Chdir != nil:
		return le.Chdir
	default:
		return nil
	}
}

// RunCommand is recorded when a program is about to be started.
type RunCommand struct {
	Command []string `json:"command"`
}

func (e *RunCommand) setOn(le *LogEntry) { le.RunCommand = e }

// Builtin is recorded when the shell runs one of its own commands.
type Builtin struct {
	Command []string `json:"command"`
}

func (e *Builtin) setOn(le *LogEntry) { le.Builtin = e }

// SyntaxError is recorded for command text that could not be parsed.
type SyntaxError struct {
	Text  string `json:"text"`
	Error string `json:"error"`
}

func (e *SyntaxError) setOn(le *LogEntry) { le.SyntaxError = e }

// SpawnFailure is recorded when a process or pipe could not be created.
type SpawnFailure struct {
	Command []string `json:"command"`
	Error   string   `json:"error"`
}

func (e *SpawnFailure) setOn(le *LogEntry) { le.SpawnFailure = e }

// Chdir is recorded for every cd, successful or not.
type Chdir struct {
	From  string `json:"from"`
	To    string `json:"to,omitempty"`
	Error string `json:"error,omitempty"`
}

func (e *Chdir) setOn(le *LogEntry) { le.Chdir = e }
