package interp

import (
	"fmt"

	"github.com/josephlewis42/nestsh/core/dirstate"
	"github.com/josephlewis42/nestsh/core/logger"
	"github.com/josephlewis42/nestsh/core/proc"
	"github.com/josephlewis42/nestsh/core/syntax"
)

// AllBuiltins holds every builtin by name.
var AllBuiltins = make(map[string]Builtin)

// Builtin is a command run by the interpreter itself.
type Builtin interface {
	Main(in *Interpreter, dir *dirstate.State, args []string) int
}

// BuiltinFunc adapts a function to a Builtin.
type BuiltinFunc func(in *Interpreter, dir *dirstate.State, args []string) int

func (f BuiltinFunc) Main(in *Interpreter, dir *dirstate.State, args []string) int {
	return f(in, dir, args)
}

var _ Builtin = (BuiltinFunc)(nil)

func (in *Interpreter) runBuiltin(text string, dir *dirstate.State) int {
	args, err := syntax.Fields(text)
	if err != nil {
		return in.syntaxError(text, err)
	}

	if len(args) == 0 {
		return proc.StatusSuccess
	}
	builtin, ok := AllBuiltins[args[0]]
	if !ok {
		return in.runSimple(text)
	}

	in.record(&logger.Builtin{Command: args})
	return builtin.Main(in, dir, args)
}

// Cd is the cd builtin: cd [-|DIR]. With no operand it changes to $HOME. cd -
// returns to the previous directory and prints it. Every operand is a path;
// cd takes no options.
func Cd(in *Interpreter, dir *dirstate.State, args []string) int {
	operands := args[1:]

	target, err := dir.Change(operands...)
	event := &logger.Chdir{From: dir.Last, To: target}
	if err != nil {
		event.Error = err.Error()
	}
	in.record(event)

	if err != nil {
		in.errorf("cd: %v", err)
		return proc.StatusFailure
	}
	if len(operands) > 0 && operands[0] == dirstate.Previous {
		fmt.Fprintln(in.Stdio.Stdout(), target)
	}
	return proc.StatusSuccess
}

// Exit stops the interpreter.
func Exit(in *Interpreter, dir *dirstate.State, args []string) int {
	fmt.Fprintln(in.Stdio.Stdout(), "exiting shell...")
	in.exited = true
	return proc.StatusSuccess
}

func init() {
	AllBuiltins["cd"] = BuiltinFunc(Cd)
	AllBuiltins["exit"] = BuiltinFunc(Exit)
}
