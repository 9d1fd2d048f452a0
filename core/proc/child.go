package proc

import (
	"fmt"
	"os"
	"sort"
	"strings"
)

// ChildArg marks an invocation of the executable as a child interpreter.
const ChildArg = "__nestsh_child"

// ChildFunc is the entry point of a child interpreter. It receives the
// arguments after its name and returns the process exit status.
type ChildFunc func(stdio Stdio, args []string) int

var childFuncs = make(map[string]ChildFunc)

// RegisterChild adds an entry point. It panics if name is already taken, so
// it should only be called from init functions.
func RegisterChild(name string, fn ChildFunc) {
	if _, ok := childFuncs[name]; ok {
		panic(fmt.Sprintf("proc: child %q registered twice", name))
	}
	childFuncs[name] = fn
}

// ChildNames lists the registered entry points.
func ChildNames() []string {
	var out []string
	for name := range childFuncs {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// IsChild reports whether argv is a child interpreter invocation.
func IsChild(argv []string) bool {
	return len(argv) > 1 && argv[1] == ChildArg
}

// RunChild runs the entry point named in argv with the process's own
// streams and returns its exit status.
func RunChild(argv []string) int {
	stdio := OSStdio()
	if !IsChild(argv) || len(argv) < 3 {
		stdio.Errorf("nestsh: invalid child invocation: %s\n", strings.Join(argv, " "))
		return StatusUsage
	}

	fn, ok := childFuncs[argv[2]]
	if !ok {
		stdio.Errorf("nestsh: unknown child %q\n", argv[2])
		return StatusUsage
	}
	return fn(stdio, argv[3:])
}

// StartChild starts a copy of the running executable that runs the named
// entry point with args. env is added to the child's environment only.
func StartChild(name string, args []string, stdio Stdio, env ...string) (*Process, error) {
	if _, ok := childFuncs[name]; !ok {
		return nil, fmt.Errorf("unknown child %q", name)
	}

	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("locate executable: %w", err)
	}

	argv := append([]string{exe, ChildArg, name}, args...)
	return start(exe, argv, stdio, env)
}
