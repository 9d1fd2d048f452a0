package interp

import (
	"github.com/josephlewis42/nestsh/core/syntax"
)

// runSubshell interprets the text inside a parenthesized group in a child
// with directory state of its own.
func (in *Interpreter) runSubshell(text string) int {
	inner, err := syntax.ExtractGroup(text)
	if err != nil {
		return in.syntaxError(text, err)
	}

	p, err := in.startChild(childSubshell, []string{"--", inner}, in.Stdio)
	if err != nil {
		return in.spawnFailure([]string{text}, err)
	}
	return p.Wait()
}
