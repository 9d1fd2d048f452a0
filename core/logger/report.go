package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
)

// ReadJSONLinesLog parses a newline delimited JSON log.
func ReadJSONLinesLog(r io.Reader, handler func(le *LogEntry)) error {
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	for decoder.More() {
		var logEntry LogEntry
		if err := decoder.Decode(&logEntry); err != nil {
			return err
		}

		handler(&logEntry)
	}
	return nil
}

// Report holds statistics about the logged events.
type Report struct {
	LogEntries     int        `json:"log_entries"`
	Sessions       StrCounter `json:"sessions"`
	InvalidEntries StrCounter `json:"invalid_log_entries,omitempty"`

	RunCommand   RunCommandReport   `json:"run_command_report"`
	Builtin      BuiltinReport      `json:"builtin_report"`
	SyntaxError  SyntaxErrorReport  `json:"syntax_error_report"`
	SpawnFailure SpawnFailureReport `json:"spawn_failure_report"`
	Chdir        ChdirReport        `json:"chdir_report"`
}

// Update adds a single entry to the report.
func (r *Report) Update(le *LogEntry) {
	r.LogEntries++
	r.Sessions.Increment(le.SessionID)

	switch event := le.GetLogType().(type) {
	case *RunCommand:
		r.RunCommand.update(event)
	case *Builtin:
		r.Builtin.update(event)
	case *SyntaxError:
		r.SyntaxError.update(event)
	case *SpawnFailure:
		r.SpawnFailure.update(event)
	case *Chdir:
		r.Chdir.update(event)
	default:
		r.InvalidEntries.Increment(fmt.Sprintf("%T", event))
	}
}

type RunCommandReport struct {
	// Name of the command
	CommandNames StrCounter `json:"command_names"`
	// Full command lines
	CommandLines StrCounter `json:"command_lines"`
}

func (r *RunCommandReport) update(rc *RunCommand) {
	if len(rc.Command) > 0 {
		r.CommandNames.Increment(rc.Command[0])
	}
	r.CommandLines.Increment(strings.Join(rc.Command, " "))
}

type BuiltinReport struct {
	CommandNames StrCounter `json:"command_names"`
}

func (r *BuiltinReport) update(b *Builtin) {
	if len(b.Command) > 0 {
		r.CommandNames.Increment(b.Command[0])
	}
}

type SyntaxErrorReport struct {
	Count  int        `json:"count"`
	Errors StrCounter `json:"errors"`
}

func (r *SyntaxErrorReport) update(se *SyntaxError) {
	r.Count++
	r.Errors.Increment(se.Error)
}

type SpawnFailureReport struct {
	Failures *PathCounter `json:"failures"`
}

func (r *SpawnFailureReport) update(sf *SpawnFailure) {
	if r.Failures == nil {
		r.Failures = NewPathCounter("command", "error")
	}

	name := ""
	if len(sf.Command) > 0 {
		name = sf.Command[0]
	}
	r.Failures.Increment(name, sf.Error)
}

type ChdirReport struct {
	Directories StrCounter `json:"directories"`
	Failures    int        `json:"failures"`
}

func (r *ChdirReport) update(cd *Chdir) {
	if cd.Error != "" {
		r.Failures++
		return
	}
	r.Directories.Increment(cd.To)
}

// StrCounter counts the number of strings seen.
type StrCounter struct {
	internal map[string]int
}

// Increment adds one to the given key.
func (s *StrCounter) Increment(toAdd string) {
	if s.internal == nil {
		s.internal = make(map[string]int)
	}

	s.internal[toAdd]++
}

// Count returns the number of times key was seen.
func (s *StrCounter) Count(key string) int {
	return s.internal[key]
}

// MarshalJSON implements custom JSON marshaler.
func (s StrCounter) MarshalJSON() ([]byte, error) {
	if s.internal == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(s.internal)
}

func NewPathCounter(cols ...string) *PathCounter {
	return &PathCounter{
		cols:     cols,
		internal: make(map[string]int),
	}
}

// PathCounter counts tuples of strings seen.
type PathCounter struct {
	cols     []string
	internal map[string]int
}

// Increment adds one to the given key.
func (ctr *PathCounter) Increment(toAdd ...string) {
	if len(toAdd) != len(ctr.cols) {
		panic("wrong number of columns to add")
	}

	ctr.internal[toKey(toAdd...)]++
}

// Count returns the number of times the tuple was seen.
func (ctr *PathCounter) Count(vals ...string) int {
	return ctr.internal[toKey(vals...)]
}

// MarshalJSON implements custom JSON marshaler.
func (ctr *PathCounter) MarshalJSON() ([]byte, error) {
	type Count struct {
		Count  int               `json:"count"`
		Fields map[string]string `json:"event"`
		Path   string            `json:"-"`
	}

	out := []Count{}
	for k, v := range ctr.internal {
		count := Count{
			Count:  v,
			Path:   k,
			Fields: make(map[string]string),
		}

		splitPath := fromKey(k)
		for colNum, colVal := range ctr.cols {
			count.Fields[colVal] = splitPath[colNum]
		}

		out = append(out, count)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].Path < out[j].Path
		}
		return out[i].Count > out[j].Count
	})

	return json.Marshal(out)
}

func toKey(vals ...string) string {
	key, _ := json.Marshal(vals)
	return string(key)
}

func fromKey(key string) (out []string) {
	json.Unmarshal([]byte(key), &out)
	return
}
