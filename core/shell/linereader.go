package shell

import (
	"bytes"
	"io"
)

// lineReader reads lines one byte at a time so input after the current line
// is left for the commands it starts.
type lineReader struct {
	r io.Reader
}

// ReadLine returns the next line without its terminator. The last line of
// the input is returned with io.EOF if it isn't terminated.
func (lr *lineReader) ReadLine() (string, error) {
	var (
		line bytes.Buffer
		b    [1]byte
	)
	for {
		n, err := lr.r.Read(b[:])
		if n == 1 {
			if b[0] == '\n' {
				return string(bytes.TrimSuffix(line.Bytes(), []byte("\r"))), nil
			}
			line.WriteByte(b[0])
			continue
		}
		if err != nil {
			return line.String(), err
		}
	}
}
