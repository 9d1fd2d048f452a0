package main

import (
	"os"

	"github.com/josephlewis42/nestsh/cmd"
	"github.com/josephlewis42/nestsh/core/proc"
)

func main() {
	// Pipeline stages, subshells and redirected commands re-execute this
	// binary; they must be dispatched before cobra sees the arguments.
	if proc.IsChild(os.Args) {
		os.Exit(proc.RunChild(os.Args))
	}

	cmd.Execute()
}
