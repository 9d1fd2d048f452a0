package proc

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/afero"
)

// EnvPath lists the directories searched for programs.
const EnvPath = "PATH"

var osFs = afero.NewOsFs()

// Process is a started child process. The caller that started a Process owns
// it and must Wait on it exactly once.
type Process struct {
	// Argv is the argument vector the process was started with.
	Argv []string

	cmd *exec.Cmd
}

// Pid returns the operating system's identifier for the process.
func (p *Process) Pid() int {
	return p.cmd.Process.Pid
}

// Wait blocks until the process exits and returns its exit status.
func (p *Process) Wait() int {
	return ExitStatus(p.cmd.Wait())
}

// LookupError is returned when a program can't be resolved to an executable.
type LookupError struct {
	Name string
	Err  error
}

func (e *LookupError) Error() string {
	if e.Status() == StatusNotFound {
		return fmt.Sprintf("%s: command not found", e.Name)
	}
	return fmt.Sprintf("%s: %v", e.Name, e.Err)
}

func (e *LookupError) Unwrap() error {
	return e.Err
}

// Status is the exit status a shell reports for the failed lookup.
func (e *LookupError) Status() int {
	return LookupStatus(e.Err)
}

// Start resolves argv[0] against PATH and starts it with the given streams.
func Start(argv []string, stdio Stdio) (*Process, error) {
	if len(argv) == 0 {
		return nil, errors.New("empty command")
	}

	path, err := LookPath(osFs, os.Getenv(EnvPath), argv[0])
	if err != nil {
		return nil, &LookupError{Name: argv[0], Err: err}
	}
	return start(path, argv, stdio, nil)
}

func start(path string, argv []string, stdio Stdio, env []string) (*Process, error) {
	cmd := &exec.Cmd{
		Path:   path,
		Args:   argv,
		Stdin:  stdio.In,
		Stdout: stdio.Out,
		Stderr: stdio.Err,
	}
	if len(env) > 0 {
		cmd.Env = append(os.Environ(), env...)
	}
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	return &Process{Argv: argv, cmd: cmd}, nil
}
