package syntax

import (
	"fmt"
	"strings"
)

// Kind is the shape of a unit of command text.
type Kind int

const (
	KindEmpty Kind = iota
	KindBatch
	KindPipeline
	KindRedirect
	KindSubshell
	KindBuiltin
	KindSimple
)

var kindNames = map[Kind]string{
	KindEmpty:    "empty",
	KindBatch:    "batch",
	KindPipeline: "pipeline",
	KindRedirect: "redirect",
	KindSubshell: "subshell",
	KindBuiltin:  "builtin",
	KindSimple:   "simple",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Classify returns the lowest precedence shape text has. The first match of
// the following wins: a depth zero ";", a depth zero "|", a depth zero
// redirection, any parenthesis, a builtin name, anything else.
func Classify(text string) Kind {
	text = strings.TrimSpace(text)

	switch {
	case text == "":
		return KindEmpty
	case HasOperator(text, OpBatch):
		return KindBatch
	case HasOperator(text, OpPipe):
		return KindPipeline
	case HasRedirect(text):
		return KindRedirect
	case strings.IndexByte(text, OpOpen) >= 0 || strings.IndexByte(text, OpClose) >= 0:
		return KindSubshell
	case Builtins[strings.Fields(text)[0]]:
		return KindBuiltin
	default:
		return KindSimple
	}
}
