// Package interptest runs command text through an Interpreter the way a
// shell session would and captures the results.
package interptest

import (
	"bytes"
	"io"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/josephlewis42/nestsh/core/dirstate"
	"github.com/josephlewis42/nestsh/core/interp"
	"github.com/josephlewis42/nestsh/core/logger"
	"github.com/josephlewis42/nestsh/core/proc"
)

// Main should be called from TestMain of any package that interprets
// commands. Pipelines, redirections and subshells run in copies of the test
// binary, so it has to serve as a child interpreter too.
func Main(m *testing.M) {
	if proc.IsChild(os.Args) {
		os.Exit(proc.RunChild(os.Args))
	}
	os.Exit(m.Run())
}

// Cmd is similar to exec.Cmd but interprets a script in process.
type Cmd struct {
	// Script is the command text to interpret. Each line is interpreted
	// separately, like input to an interactive session.
	Script string
	// If Dir is non-empty, the process changes into the directory before
	// interpreting the script and back afterwards.
	Dir string
	// Events, if set, receives the session's event log.
	Events *logger.SessionLogger

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// ExitStatus is the status of the last line interpreted.
	ExitStatus int
	// Exited is set if the script ran the exit builtin.
	Exited bool
	// DirState is the directory state after the script ran.
	DirState *dirstate.State
}

// Script creates a Cmd for the given command text.
func Script(text string) *Cmd {
	return &Cmd{Script: text}
}

// Run interprets the script and waits for every process it started.
func (c *Cmd) Run() error {
	if c.Dir != "" {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		if err := os.Chdir(c.Dir); err != nil {
			return err
		}
		defer os.Chdir(wd)
	}

	dir, err := dirstate.New()
	if err != nil {
		return err
	}

	in := interp.New(proc.Stdio{In: c.Stdin, Out: c.Stdout, Err: c.Stderr})
	in.Events = c.Events

	for _, line := range strings.Split(c.Script, "\n") {
		c.ExitStatus = in.Interpret(line, dir)
		if in.Exited() {
			break
		}
	}

	c.Exited = in.Exited()
	c.DirState = dir
	return nil
}

// CombinedOutput runs the script and returns its standard output and
// standard error interleaved.
func (c *Cmd) CombinedOutput() ([]byte, error) {
	buf := &Buffer{}
	c.Stdout = buf
	c.Stderr = buf

	if err := c.Run(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Output runs the script and returns its standard output. Standard error is
// captured in the returned buffer when Stderr is unset.
func (c *Cmd) Output() (stdout []byte, stderr []byte, err error) {
	outBuf := &Buffer{}
	errBuf := &Buffer{}
	c.Stdout = outBuf
	if c.Stderr == nil {
		c.Stderr = errBuf
	}

	if err := c.Run(); err != nil {
		return nil, nil, err
	}
	return outBuf.Bytes(), errBuf.Bytes(), nil
}

// Buffer is a bytes.Buffer safe for the concurrent writes of an interpreter
// and the output copiers of os/exec.
type Buffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *Buffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *Buffer) Bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]byte(nil), b.buf.Bytes()...)
}

func (b *Buffer) String() string {
	return string(b.Bytes())
}
