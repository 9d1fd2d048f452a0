// Package dirstate tracks the working directory bookkeeping behind cd.
package dirstate

import (
	"errors"
	"fmt"
	"os"
)

const (
	// EnvHome is consulted by a bare cd.
	EnvHome = "HOME"
	// Previous is the cd argument that returns to the last directory.
	Previous = "-"
)

// ErrHomeNotSet is returned by a bare cd when HOME is empty.
var ErrHomeNotSet = errors.New("HOME not set")

// State is the directory state of one interpreter process. The current
// directory belongs to the operating system; Last is the directory the
// process was in before its most recent cd.
//
// States are never shared between processes. A subshell builds a new one
// with New instead of inheriting its parent's.
type State struct {
	Last string
}

// New creates a State whose Last is the current directory.
func New() (*State, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getwd: %w", err)
	}
	return &State{Last: wd}, nil
}

// Change implements cd. No operands moves to $HOME, Previous moves to Last
// and anything else is a path, including words that look like options.
// Operands after the first are ignored. It returns the directory it tried to
// enter.
//
// Last is set to the directory the process was in before the call, whether
// or not the change succeeded.
func (s *State) Change(args ...string) (string, error) {
	prev, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getwd: %w", err)
	}
	defer func() { s.Last = prev }()

	var target string
	switch {
	case len(args) == 0:
		target = os.Getenv(EnvHome)
		if target == "" {
			return "", ErrHomeNotSet
		}
	case args[0] == Previous:
		target = s.Last
	default:
		target = args[0]
	}

	if err := os.Chdir(target); err != nil {
		return target, err
	}
	return target, nil
}
