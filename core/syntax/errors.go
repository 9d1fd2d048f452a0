package syntax

import (
	"errors"
	"fmt"
)

// ErrMalformed is wrapped by every error the package returns.
var ErrMalformed = errors.New("malformed command")

// Error describes malformed command text.
type Error struct {
	// Text is the command text being examined.
	Text string
	// Pos is the byte offset in Text the problem was found at.
	Pos int
	// Msg describes the problem.
	Msg string
}

func newError(text string, pos int, format string, a ...interface{}) *Error {
	return &Error{Text: text, Pos: pos, Msg: fmt.Sprintf(format, a...)}
}

func (e *Error) Error() string {
	return fmt.Sprintf("syntax error near column %d: %s", e.Pos+1, e.Msg)
}

// Unwrap allows errors.Is(err, ErrMalformed).
func (e *Error) Unwrap() error {
	return ErrMalformed
}
