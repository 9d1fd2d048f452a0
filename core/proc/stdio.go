package proc

import (
	"fmt"
	"io"
	"os"
)

// Stdio holds the standard streams a process or interpreter reads from and
// writes to. A nil stream reads as empty and discards writes.
//
// Streams that are *os.File values are handed to child processes directly;
// anything else is copied through a pipe by os/exec.
type Stdio struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// OSStdio returns the streams of the current process.
func OSStdio() Stdio {
	return Stdio{
		In:  os.Stdin,
		Out: os.Stdout,
		Err: os.Stderr,
	}
}

// Stdin returns In or an always empty reader.
func (s Stdio) Stdin() io.Reader {
	return toReaderOrEmpty(s.In)
}

// Stdout returns Out or a writer that discards.
func (s Stdio) Stdout() io.Writer {
	return toWriterOrDiscard(s.Out)
}

// Stderr returns Err or a writer that discards.
func (s Stdio) Stderr() io.Writer {
	return toWriterOrDiscard(s.Err)
}

// Errorf writes a diagnostic to the error stream.
func (s Stdio) Errorf(format string, a ...interface{}) {
	fmt.Fprintf(s.Stderr(), format, a...)
}

func toWriterOrDiscard(w io.Writer) io.Writer {
	if w == nil {
		return io.Discard
	}
	return w
}

func toReaderOrEmpty(r io.Reader) io.Reader {
	if r == nil {
		return &devNull{}
	}
	return r
}

// devNull implements io.Reader, always at EOF.
type devNull struct{}

var _ io.Reader = (*devNull)(nil)

func (*devNull) Read([]byte) (int, error) {
	return 0, io.EOF
}
