package interp

import (
	"github.com/josephlewis42/nestsh/core/logger"
	"github.com/josephlewis42/nestsh/core/proc"
	"github.com/josephlewis42/nestsh/core/syntax"
)

// runSimple starts a program and waits for it.
func (in *Interpreter) runSimple(text string) int {
	argv, err := syntax.Fields(text)
	if err != nil {
		return in.syntaxError(text, err)
	}
	if len(argv) == 0 {
		return proc.StatusSuccess
	}

	in.record(&logger.RunCommand{Command: argv})
	p, err := proc.Start(argv, in.Stdio)
	if err != nil {
		return in.spawnFailure(argv, err)
	}
	return p.Wait()
}
