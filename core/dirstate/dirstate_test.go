package dirstate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdirTemp moves the test into a fresh directory tree and restores the
// original working directory afterwards.
func chdirTemp(t *testing.T) (a, b string) {
	t.Helper()

	orig, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.Chdir(orig) })

	root, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	a = filepath.Join(root, "a")
	b = filepath.Join(root, "b")
	require.NoError(t, os.Mkdir(a, 0755))
	require.NoError(t, os.Mkdir(b, 0755))
	require.NoError(t, os.Chdir(root))
	return a, b
}

func getwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	return wd
}

func TestNew(t *testing.T) {
	chdirTemp(t)

	s, err := New()
	require.NoError(t, err)
	assert.Equal(t, getwd(t), s.Last)
}

func TestChange_previousRoundTrip(t *testing.T) {
	a, b := chdirTemp(t)
	s, err := New()
	require.NoError(t, err)

	_, err = s.Change(a)
	require.NoError(t, err)
	_, err = s.Change(b)
	require.NoError(t, err)
	assert.Equal(t, a, s.Last)

	target, err := s.Change(Previous)
	require.NoError(t, err)
	assert.Equal(t, a, target)
	assert.Equal(t, a, getwd(t))
	assert.Equal(t, b, s.Last)
}

func TestChange_home(t *testing.T) {
	a, _ := chdirTemp(t)
	t.Setenv(EnvHome, a)
	start := getwd(t)

	s := &State{}
	target, err := s.Change()
	require.NoError(t, err)
	assert.Equal(t, a, target)
	assert.Equal(t, a, getwd(t))
	assert.Equal(t, start, s.Last)
}

func TestChange_homeNotSet(t *testing.T) {
	chdirTemp(t)
	t.Setenv(EnvHome, "")
	start := getwd(t)

	s := &State{Last: "/"}
	_, err := s.Change()
	assert.ErrorIs(t, err, ErrHomeNotSet)
	assert.Equal(t, start, s.Last)
}

func TestChange_failureStillUpdatesLast(t *testing.T) {
	a, _ := chdirTemp(t)
	require.NoError(t, os.Chdir(a))

	s := &State{Last: "/"}
	_, err := s.Change(filepath.Join(a, "does-not-exist"))
	assert.Error(t, err)
	assert.Equal(t, a, s.Last)
	assert.Equal(t, a, getwd(t))
}

func TestChange_extraOperandsIgnored(t *testing.T) {
	a, b := chdirTemp(t)
	start := getwd(t)

	s := &State{Last: "/"}
	target, err := s.Change(a, b)
	require.NoError(t, err)
	assert.Equal(t, a, target)
	assert.Equal(t, a, getwd(t))
	assert.Equal(t, start, s.Last)
}

func TestChange_optionLikePath(t *testing.T) {
	chdirTemp(t)
	start := getwd(t)
	require.NoError(t, os.Mkdir("-x", 0755))

	s := &State{Last: "/"}
	target, err := s.Change("-x")
	require.NoError(t, err)
	assert.Equal(t, "-x", target)
	assert.Equal(t, filepath.Join(start, "-x"), getwd(t))
	assert.Equal(t, start, s.Last)
}
