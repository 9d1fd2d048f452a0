// Package shell drives an interpreter from a terminal or a script, one line
// at a time.
package shell

import (
	"fmt"
	"io"
	"os"

	"github.com/abiosoft/readline"
	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/josephlewis42/nestsh/core/config"
	"github.com/josephlewis42/nestsh/core/dirstate"
	"github.com/josephlewis42/nestsh/core/interp"
)

// Shell reads lines and hands each to an Interpreter.
type Shell struct {
	Interpreter *interp.Interpreter
	Dir         *dirstate.State
	Config      *config.Configuration

	promptColor *color.Color
	status      int
}

// New creates a Shell in the current directory.
func New(cfg *config.Configuration, in *interp.Interpreter) (*Shell, error) {
	dir, err := dirstate.New()
	if err != nil {
		return nil, err
	}

	promptColor := color.New(color.FgGreen, color.Bold)
	if useColor(cfg.Color, in.Stdio.In) {
		promptColor.EnableColor()
	} else {
		promptColor.DisableColor()
	}

	return &Shell{
		Interpreter: in,
		Dir:         dir,
		Config:      cfg,
		promptColor: promptColor,
	}, nil
}

func useColor(setting string, stdin io.Reader) bool {
	switch setting {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default:
		return isTerminal(stdin)
	}
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Prompt renders the configured prompt for the current process state.
func (s *Shell) Prompt() string {
	return s.promptColor.Sprint(ExpandPrompt(s.Config.Prompt, CurrentPromptEnv()))
}

// Eval interprets a single line.
func (s *Shell) Eval(line string) int {
	s.status = s.Interpreter.Interpret(line, s.Dir)
	return s.status
}

// Status returns the status of the last line interpreted.
func (s *Shell) Status() int {
	return s.status
}

// Run reads lines from the interpreter's standard input until it's closed or
// the exit builtin runs. A terminal gets line editing and history.
func (s *Shell) Run() (int, error) {
	if isTerminal(s.Interpreter.Stdio.In) {
		return s.runInteractive()
	}
	return s.RunScript(s.Interpreter.Stdio.Stdin())
}

// RunScript interprets every line of r.
func (s *Shell) RunScript(r io.Reader) (int, error) {
	lr := &lineReader{r: r}
	for !s.Interpreter.Exited() {
		line, err := lr.ReadLine()
		if err == nil || line != "" {
			s.Eval(line)
		}

		switch {
		case err == io.EOF:
			return s.status, nil
		case err != nil:
			return s.status, err
		}
	}
	return s.status, nil
}

func (s *Shell) runInteractive() (int, error) {
	historyPath, err := s.Config.HistoryPath()
	if err != nil {
		return s.status, fmt.Errorf("history file: %w", err)
	}

	historyLimit := s.Config.HistoryLimit
	if historyLimit == 0 {
		historyLimit = -1
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          s.Prompt(),
		HistoryFile:     historyPath,
		HistoryLimit:    historyLimit,
		InterruptPrompt: "^C",
		Stdin:           readline.NewCancelableStdin(s.Interpreter.Stdio.Stdin()),
		Stdout:          s.Interpreter.Stdio.Stdout(),
		Stderr:          s.Interpreter.Stdio.Stderr(),
	})
	if err != nil {
		return s.status, err
	}
	defer rl.Close()

	for !s.Interpreter.Exited() {
		rl.SetPrompt(s.Prompt())
		line, err := rl.Readline()

		switch {
		case err == io.EOF:
			return s.status, nil // Input closed, quit.
		case err == readline.ErrInterrupt:
			continue // Discard the line.
		case err != nil:
			return s.status, err
		}

		s.Eval(line)
	}
	return s.status, nil
}
