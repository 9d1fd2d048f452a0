// Package interp runs nestsh command text as a tree of operating system
// processes.
//
// Interpret is the single recursive entry point. Pipeline stages, subshells
// and redirected commands run in child copies of the interpreter (see
// package proc) which call Interpret again on their own piece of text.
package interp

import (
	"strings"

	"github.com/spf13/afero"

	"github.com/josephlewis42/nestsh/core/dirstate"
	"github.com/josephlewis42/nestsh/core/logger"
	"github.com/josephlewis42/nestsh/core/proc"
	"github.com/josephlewis42/nestsh/core/syntax"
)

// Interpreter runs command text against a set of standard streams.
type Interpreter struct {
	// Stdio is inherited by every process the interpreter starts. Builtins
	// and diagnostics write to it too.
	Stdio proc.Stdio

	// Fs opens redirection targets.
	Fs afero.Fs

	// Events receives a record of what the interpreter runs; it may be nil.
	Events *logger.SessionLogger

	exited bool
}

// New creates an Interpreter on the host filesystem.
func New(stdio proc.Stdio) *Interpreter {
	return &Interpreter{
		Stdio: stdio,
		Fs:    afero.NewOsFs(),
	}
}

// Exited reports whether the exit builtin has run. The owner of the
// interpreter is expected to stop feeding it input once it has.
func (in *Interpreter) Exited() bool {
	return in.exited
}

// Interpret runs one unit of command text and returns its exit status. dir
// is the directory state of the calling process; only cd changes it.
//
// Operators are applied lowest precedence first: a depth zero ";" runs each
// item in order, a depth zero "|" builds a pipeline, a depth zero
// redirection runs the rest of the text in a redirected child, a
// parenthesized group runs in a subshell, builtins run in process and
// anything else starts a program.
func (in *Interpreter) Interpret(text string, dir *dirstate.State) int {
	text = strings.TrimSpace(text)

	switch syntax.Classify(text) {
	case syntax.KindEmpty:
		return proc.StatusSuccess
	case syntax.KindBatch:
		return in.runBatch(syntax.SplitTopLevel(text, syntax.OpBatch), dir)
	case syntax.KindPipeline:
		return in.runPipeline(syntax.SplitTopLevel(text, syntax.OpPipe), dir)
	case syntax.KindRedirect:
		return in.runRedirect(text, dir)
	case syntax.KindSubshell:
		return in.runSubshell(text)
	case syntax.KindBuiltin:
		return in.runBuiltin(text, dir)
	default:
		return in.runSimple(text)
	}
}

// runBatch runs every item to completion, in order, regardless of status.
func (in *Interpreter) runBatch(items []string, dir *dirstate.State) int {
	status := proc.StatusSuccess
	for _, item := range items {
		status = in.Interpret(item, dir)
		if in.exited {
			break
		}
	}
	return status
}

// errorf reports a diagnostic on the interpreter's error stream.
func (in *Interpreter) errorf(format string, a ...interface{}) {
	in.Stdio.Errorf("nestsh: "+format+"\n", a...)
}

func (in *Interpreter) syntaxError(text string, err error) int {
	in.errorf("%v", err)
	in.record(&logger.SyntaxError{Text: text, Error: err.Error()})
	return proc.StatusFailure
}

// spawnFailure reports a process that could not be started. The status
// distinguishes programs that don't exist or can't be executed.
func (in *Interpreter) spawnFailure(argv []string, err error) int {
	in.errorf("%v", err)
	in.record(&logger.SpawnFailure{Command: argv, Error: err.Error()})
	return proc.LookupStatus(err)
}

func (in *Interpreter) record(event logger.LogType) {
	if in.Events == nil {
		return
	}
	if err := in.Events.Record(event); err != nil {
		in.errorf("event log: %v", err)
		in.Events = nil
	}
}
