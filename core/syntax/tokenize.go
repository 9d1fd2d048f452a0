package syntax

import (
	shlex "github.com/anmitsu/go-shlex"
)

// Builtins names the commands the interpreter runs itself.
var Builtins = map[string]bool{
	"cd":   true,
	"exit": true,
}

// Fields splits a simple command into its program name and arguments.
// Single and double quotes group words; an unterminated quote is malformed.
func Fields(text string) ([]string, error) {
	args, err := shlex.Split(text, true)
	if err != nil {
		return nil, newError(text, len(text), "%v", err)
	}
	return args, nil
}
