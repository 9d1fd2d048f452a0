package interp

import (
	"io"
	"os"

	"github.com/josephlewis42/nestsh/core/dirstate"
	"github.com/josephlewis42/nestsh/core/syntax"
)

// FileMode is the permission given to files created by output redirection.
const FileMode os.FileMode = 0644

// OutputFlags returns the open flags for an output redirection target.
func OutputFlags(appendOutput bool) int {
	if appendOutput {
		return os.O_WRONLY | os.O_CREATE | os.O_APPEND
	}
	return os.O_WRONLY | os.O_CREATE | os.O_TRUNC
}

// runRedirect strips the redirections from text and interprets the rest in a
// child whose streams are bound to the targets. The child opens the
// targets, so a target that can't be opened only fails that child.
func (in *Interpreter) runRedirect(text string, dir *dirstate.State) int {
	redir, residual, err := syntax.ResolveRedirect(text)
	if err != nil {
		return in.syntaxError(text, err)
	}

	p, err := in.startChild(childRedirect, redirectArgs(dir, redir, residual), in.Stdio)
	if err != nil {
		return in.spawnFailure([]string{text}, err)
	}
	return p.Wait()
}

func redirectArgs(dir *dirstate.State, redir syntax.Redirect, text string) []string {
	args := []string{"--last=" + dir.Last}
	if redir.In != "" {
		args = append(args, "--in="+redir.In)
	}
	if redir.Out != "" {
		args = append(args, "--out="+redir.Out)
	}
	if redir.Append {
		args = append(args, "--append")
	}
	return append(args, "--", text)
}

// bindRedirect opens the targets of redir and rebinds the interpreter's
// streams to them. The returned function closes the opened files.
func (in *Interpreter) bindRedirect(redir syntax.Redirect) (func(), error) {
	var opened []io.Closer
	closeAll := func() {
		for _, f := range opened {
			f.Close()
		}
	}

	if redir.In != "" {
		f, err := in.Fs.OpenFile(redir.In, os.O_RDONLY, 0)
		if err != nil {
			return nil, err
		}
		opened = append(opened, f)
		in.Stdio.In = f
	}

	if redir.Out != "" {
		f, err := in.Fs.OpenFile(redir.Out, OutputFlags(redir.Append), FileMode)
		if err != nil {
			closeAll()
			return nil, err
		}
		opened = append(opened, f)
		in.Stdio.Out = f
	}

	return closeAll, nil
}
