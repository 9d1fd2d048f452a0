package proc

import (
	"errors"
	"io/fs"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// ErrNotFound is the error resulting if a path search failed to find an executable file.
var ErrNotFound = exec.ErrNotFound

func findExecutable(fsys afero.Fs, file string) error {
	d, err := fsys.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0111 != 0 {
		return nil
	}
	return fs.ErrPermission
}

// LookPath searches fsys for an executable named file in the directories
// named by path, a list in the PATH environment variable format. If file
// contains a slash, it is tried directly and path is not consulted.
//
// A file that exists but cannot be executed returns fs.ErrPermission when no
// executable match is found elsewhere on the path.
func LookPath(fsys afero.Fs, path, file string) (string, error) {
	if strings.Contains(file, "/") {
		err := findExecutable(fsys, file)
		if err == nil {
			return file, nil
		}
		return "", err
	}

	var permErr error
	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		path := filepath.Join(dir, file)
		err := findExecutable(fsys, path)
		if err == nil {
			return path, nil
		}
		if errors.Is(err, fs.ErrPermission) && permErr == nil {
			permErr = err
		}
	}
	if permErr != nil {
		return "", permErr
	}
	return "", ErrNotFound
}
