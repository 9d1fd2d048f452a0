package interp

import (
	"strings"

	getopt "github.com/pborman/getopt/v2"

	"github.com/josephlewis42/nestsh/core/dirstate"
	"github.com/josephlewis42/nestsh/core/logger"
	"github.com/josephlewis42/nestsh/core/proc"
	"github.com/josephlewis42/nestsh/core/syntax"
)

// Child interpreter entry points.
const (
	childStage    = "stage"
	childSubshell = "subshell"
	childRedirect = "redirect"
)

func init() {
	proc.RegisterChild(childStage, stageMain)
	proc.RegisterChild(childSubshell, subshellMain)
	proc.RegisterChild(childRedirect, redirectMain)
}

// newChild creates the interpreter of a child process. It joins the event
// log session of its parent, if there is one.
func newChild(stdio proc.Stdio) (*Interpreter, func()) {
	in := New(stdio)

	events, closer, err := logger.FromEnvironment(in.Fs)
	if err != nil {
		in.errorf("event log: %v", err)
		return in, func() {}
	}
	in.Events = events
	return in, func() {
		if closer != nil {
			closer.Close()
		}
	}
}

// startChild starts a child interpreter that joins the event log session, if
// there is one.
func (in *Interpreter) startChild(name string, args []string, stdio proc.Stdio) (*proc.Process, error) {
	return proc.StartChild(name, args, stdio, in.Events.Environ()...)
}

// parseChildArgs parses args with opts and returns the command text that
// follows the options.
func parseChildArgs(name string, opts *getopt.Set, stdio proc.Stdio, args []string) (string, bool) {
	if err := opts.Getopt(append([]string{name}, args...), nil); err != nil {
		stdio.Errorf("nestsh: %s: %v\n", name, err)
		return "", false
	}
	return strings.Join(opts.Args(), " "), true
}

// stageMain runs one pipeline stage with a copy of its parent's last
// directory.
func stageMain(stdio proc.Stdio, args []string) int {
	opts := getopt.New()
	last := opts.StringLong("last", 0, "", "last working directory")

	text, ok := parseChildArgs(childStage, opts, stdio, args)
	if !ok {
		return proc.StatusUsage
	}

	in, done := newChild(stdio)
	defer done()
	return in.Interpret(text, &dirstate.State{Last: *last})
}

// subshellMain runs the inside of a group with a fresh directory state.
func subshellMain(stdio proc.Stdio, args []string) int {
	text, ok := parseChildArgs(childSubshell, getopt.New(), stdio, args)
	if !ok {
		return proc.StatusUsage
	}

	in, done := newChild(stdio)
	defer done()

	dir, err := dirstate.New()
	if err != nil {
		in.errorf("%v", err)
		return proc.StatusFailure
	}
	return in.Interpret(text, dir)
}

// redirectMain binds its streams to the redirection targets, then runs the
// remaining text. Nothing runs if a target can't be opened.
func redirectMain(stdio proc.Stdio, args []string) int {
	opts := getopt.New()
	last := opts.StringLong("last", 0, "", "last working directory")
	inPath := opts.StringLong("in", 0, "", "read standard input from the file")
	outPath := opts.StringLong("out", 0, "", "write standard output to the file")
	appendOut := opts.BoolLong("append", 0, "append to the output file instead of truncating it")

	text, ok := parseChildArgs(childRedirect, opts, stdio, args)
	if !ok {
		return proc.StatusUsage
	}

	in, done := newChild(stdio)
	defer done()

	closeFiles, err := in.bindRedirect(syntax.Redirect{
		In:     *inPath,
		Out:    *outPath,
		Append: *appendOut,
	})
	if err != nil {
		in.errorf("%v", err)
		return proc.StatusFailure
	}
	defer closeFiles()

	return in.Interpret(text, &dirstate.State{Last: *last})
}
