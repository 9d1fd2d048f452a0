package interp_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josephlewis42/nestsh/core/interp"
	"github.com/josephlewis42/nestsh/core/interp/interptest"
	"github.com/josephlewis42/nestsh/core/logger"
	"github.com/josephlewis42/nestsh/core/syntax"
)

// tempDir creates a directory with symlinks resolved so it compares equal to
// the output of pwd.
func tempDir(t *testing.T) string {
	t.Helper()

	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	return dir
}

func mkdirs(t *testing.T, root string, names ...string) []string {
	t.Helper()

	var out []string
	for _, name := range names {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(path, 0755))
		out = append(out, path)
	}
	return out
}

func TestInterpret(t *testing.T) {
	cases := map[string]struct {
		script     string
		wantOutput string
		wantStatus int
		wantExited bool
	}{
		"empty": {
			script: "",
		},
		"blank": {
			script: "   \t ",
		},
		"simple": {
			script:     "echo hello world",
			wantOutput: "hello world\n",
		},
		"quoted arguments": {
			script:     `printf '%s.' "a  b" c`,
			wantOutput: "a  b.c.",
		},
		"status of simple": {
			script:     "sh -c 'exit 3'",
			wantStatus: 3,
		},
		"batch runs every item": {
			script:     "false ; echo after",
			wantOutput: "after\n",
		},
		"batch status is the last item": {
			script:     "echo a ; false",
			wantOutput: "a\n",
			wantStatus: 1,
		},
		"pipeline": {
			script:     "echo hello | tr a-z A-Z",
			wantOutput: "HELLO\n",
		},
		"three stage pipeline": {
			script:     "echo a | tr a b | tr b c",
			wantOutput: "c\n",
		},
		"pipeline status is the last stage": {
			script:     "true | false",
			wantStatus: 1,
		},
		"failed upstream stage": {
			script: "false | true",
		},
		"downstream exits first": {
			script:     "printf 'a\\nb\\nc\\n' | head -n 1",
			wantOutput: "a\n",
		},
		"group in pipeline": {
			script:     "( echo a ; echo b ) | tr -d '\\n'",
			wantOutput: "ab",
		},
		"nested groups": {
			script:     "( echo a ; ( echo b ; echo c ) | tr a-z A-Z )",
			wantOutput: "a\nB\nC\n",
		},
		"not found": {
			script:     "nestsh-no-such-program arg",
			wantOutput: "nestsh: nestsh-no-such-program: command not found\n",
			wantStatus: 127,
		},
		"not found in stage": {
			script:     "echo a | nestsh-no-such-program",
			wantOutput: "nestsh: nestsh-no-such-program: command not found\n",
			wantStatus: 127,
		},
		"exit": {
			script:     "exit",
			wantOutput: "exiting shell...\n",
			wantExited: true,
		},
		"exit stops batch": {
			script:     "echo a ; exit ; echo b",
			wantOutput: "a\nexiting shell...\n",
			wantExited: true,
		},
		"exit in subshell": {
			script:     "( exit ) ; echo still here",
			wantOutput: "exiting shell...\nstill here\n",
		},
		"exit in stage": {
			script:     "exit | cat ; echo still here",
			wantOutput: "exiting shell...\nstill here\n",
		},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			cmd := interptest.Script(tc.script)
			out, err := cmd.CombinedOutput()
			require.NoError(t, err)

			assert.Equal(t, tc.wantOutput, string(out))
			assert.Equal(t, tc.wantStatus, cmd.ExitStatus)
			assert.Equal(t, tc.wantExited, cmd.Exited)
		})
	}
}

func TestInterpret_countLines(t *testing.T) {
	cmd := interptest.Script("( echo a ; echo b ) | wc -l")
	out, err := cmd.CombinedOutput()
	require.NoError(t, err)

	assert.Equal(t, "2", strings.TrimSpace(string(out)))
}

func TestInterpret_malformed(t *testing.T) {
	cmd := interptest.Script(strings.Join([]string{
		"(echo a",
		"echo >",
		"echo a ; ) ; echo b",
		"cat < | cat",
		"echo 'unterminated",
		"echo next",
	}, "\n"))

	out, err := cmd.CombinedOutput()
	require.NoError(t, err)
	assert.False(t, cmd.Exited)
	assert.Equal(t, 0, cmd.ExitStatus)

	g := goldie.New(t, goldie.WithFixtureDir(filepath.Join("testdata", "golden", "scripts")))
	g.Assert(t, "malformed", out)
}

func TestInterpret_redirect(t *testing.T) {
	dir := tempDir(t)
	read := func(t *testing.T, name string) string {
		t.Helper()

		contents, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err)
		return string(contents)
	}
	run := func(t *testing.T, script string) (string, int) {
		t.Helper()

		cmd := interptest.Script(script)
		cmd.Dir = dir
		out, err := cmd.CombinedOutput()
		require.NoError(t, err)
		return string(out), cmd.ExitStatus
	}

	t.Run("truncate", func(t *testing.T) {
		run(t, "echo a longer line > out.txt")
		run(t, "echo short > out.txt")
		assert.Equal(t, "short\n", read(t, "out.txt"))
	})

	t.Run("append", func(t *testing.T) {
		run(t, "echo one > log.txt")
		run(t, "echo two >> log.txt ; echo three >>log.txt")
		assert.Equal(t, "one\ntwo\nthree\n", read(t, "log.txt"))
	})

	t.Run("round trip", func(t *testing.T) {
		run(t, "printf 'exact\\tbytes' > exact.txt")
		out, status := run(t, "cat < exact.txt")
		assert.Equal(t, 0, status)
		assert.Equal(t, "exact\tbytes", out)
	})

	t.Run("input and output", func(t *testing.T) {
		run(t, "printf 'x\\ny\\n' > lower.txt")
		run(t, "tr a-z A-Z > upper.txt < lower.txt")
		assert.Equal(t, "X\nY\n", read(t, "upper.txt"))
	})

	t.Run("targets without spaces", func(t *testing.T) {
		run(t, "printf 'q' > tight-in.txt")
		run(t, "cat<tight-in.txt>tight-out.txt")
		assert.Equal(t, "q", read(t, "tight-out.txt"))
	})

	t.Run("group", func(t *testing.T) {
		run(t, "( echo a ; echo b ) > group.txt")
		assert.Equal(t, "a\nb\n", read(t, "group.txt"))
	})

	t.Run("last stage", func(t *testing.T) {
		run(t, "echo abc | tr a-z A-Z > stage.txt")
		assert.Equal(t, "ABC\n", read(t, "stage.txt"))
	})

	t.Run("missing input", func(t *testing.T) {
		out, status := run(t, "echo should not run < missing.txt")
		assert.Equal(t, 1, status)
		assert.Contains(t, out, "missing.txt")
		assert.NotContains(t, out, "should not run")
	})

	t.Run("missing output directory", func(t *testing.T) {
		out, status := run(t, "echo hi > no/such/dir/out.txt ; echo next")
		assert.Equal(t, 0, status)
		assert.Contains(t, out, "no/such/dir/out.txt")
		assert.True(t, strings.HasSuffix(out, "next\n"))
	})

	t.Run("missing target", func(t *testing.T) {
		out, status := run(t, "echo hi >")
		assert.Equal(t, 1, status)
		assert.Contains(t, out, "requires a file path")
	})
}

func TestInterpret_subshellIsolation(t *testing.T) {
	dir := tempDir(t)
	sub := mkdirs(t, dir, "sub")[0]

	cmd := interptest.Script("( cd sub ; pwd ) ; pwd")
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	require.NoError(t, err)

	assert.Equal(t, sub+"\n"+dir+"\n", string(out))
	assert.Equal(t, dir, cmd.DirState.Last)
}

func TestInterpret_subshellFreshDirState(t *testing.T) {
	dir := tempDir(t)
	sub := mkdirs(t, dir, "sub")[0]

	// The parent's last directory is dir, the subshell's starts at sub.
	cmd := interptest.Script("cd sub ; ( cd - )")
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	require.NoError(t, err)

	assert.Equal(t, sub+"\n", string(out))
	assert.Equal(t, dir, cmd.DirState.Last)
}

func TestInterpret_cd(t *testing.T) {
	dir := tempDir(t)
	dirs := mkdirs(t, dir, "a", "b")
	a, b := dirs[0], dirs[1]

	run := func(t *testing.T, script string) (*interptest.Cmd, string) {
		t.Helper()

		cmd := interptest.Script(script)
		cmd.Dir = dir
		out, err := cmd.CombinedOutput()
		require.NoError(t, err)
		return cmd, string(out)
	}

	t.Run("previous", func(t *testing.T) {
		cmd, out := run(t, "cd "+a+" ; cd "+b+" ; cd - ; pwd")
		assert.Equal(t, a+"\n"+a+"\n", out)
		assert.Equal(t, b, cmd.DirState.Last)
	})

	t.Run("failure still updates last", func(t *testing.T) {
		cmd, out := run(t, "cd "+a+" ; cd "+b+" ; cd "+filepath.Join(dir, "missing")+" ; cd -")
		assert.Contains(t, out, "nestsh: cd: ")
		assert.True(t, strings.HasSuffix(out, b+"\n"), out)
		assert.Equal(t, 0, cmd.ExitStatus)
	})

	t.Run("failure status", func(t *testing.T) {
		cmd, _ := run(t, "cd "+filepath.Join(dir, "missing"))
		assert.Equal(t, 1, cmd.ExitStatus)
	})

	t.Run("home", func(t *testing.T) {
		t.Setenv("HOME", a)
		_, out := run(t, "cd ; pwd")
		assert.Equal(t, a+"\n", out)
	})

	t.Run("home not set", func(t *testing.T) {
		t.Setenv("HOME", "")
		cmd, out := run(t, "cd")
		assert.Equal(t, "nestsh: cd: HOME not set\n", out)
		assert.Equal(t, 1, cmd.ExitStatus)
	})

	t.Run("extra operands ignored", func(t *testing.T) {
		cmd, out := run(t, "cd "+a+" "+b+" ; pwd")
		assert.Equal(t, a+"\n", out)
		assert.Equal(t, 0, cmd.ExitStatus)
	})

	t.Run("option-like operand is a path", func(t *testing.T) {
		dashed := mkdirs(t, dir, "-x")[0]
		cmd, out := run(t, "cd -x ; pwd")
		assert.Equal(t, dashed+"\n", out)
		assert.Equal(t, 0, cmd.ExitStatus)
	})

	t.Run("failed option-like operand updates last", func(t *testing.T) {
		cmd, out := run(t, "cd "+a+" ; cd --bogus ; cd -")
		assert.Contains(t, out, "nestsh: cd: ")
		assert.True(t, strings.HasSuffix(out, a+"\n"), out)
		assert.Equal(t, 0, cmd.ExitStatus)
		assert.Equal(t, a, cmd.DirState.Last)
	})

	t.Run("stages inherit last", func(t *testing.T) {
		cmd, out := run(t, "cd "+a+" ; cd "+b+" ; cd - | cat ; pwd")
		assert.Equal(t, a+"\n"+b+"\n", out)
		assert.Equal(t, a, cmd.DirState.Last)
	})
}

func TestInterpret_events(t *testing.T) {
	dir := tempDir(t)
	sub := mkdirs(t, dir, "sub")[0]
	logPath := filepath.Join(dir, "events.jsonl")

	t.Setenv(logger.EnvEventLog, "")
	t.Setenv(logger.EnvSession, "")

	fs := afero.NewOsFs()
	l, closer, err := logger.OpenJSONLinesLog(fs, logPath)
	require.NoError(t, err)
	defer closer.Close()

	session := l.NewSession()
	session.Export(logPath)

	cmd := interptest.Script("cd " + sub + " ; echo hi | cat ; ( nestsh-no-such-program ) ; (")
	cmd.Dir = dir
	cmd.Events = session
	_, err = cmd.CombinedOutput()
	require.NoError(t, err)

	f, err := fs.Open(logPath)
	require.NoError(t, err)
	defer f.Close()

	var report logger.Report
	require.NoError(t, logger.ReadJSONLinesLog(f, report.Update))

	assert.Equal(t, report.LogEntries, report.Sessions.Count(session.SessionID()))
	assert.Equal(t, 1, report.Builtin.CommandNames.Count("cd"))
	assert.Equal(t, 1, report.Chdir.Directories.Count(sub))
	assert.Equal(t, 1, report.RunCommand.CommandNames.Count("echo"))
	assert.Equal(t, 1, report.RunCommand.CommandNames.Count("cat"))
	assert.Equal(t, 1, report.SyntaxError.Count)
	assert.Equal(t, 1, report.SpawnFailure.Failures.Count(
		"nestsh-no-such-program",
		"nestsh-no-such-program: command not found",
	))
}

func TestAllBuiltins(t *testing.T) {
	for name := range syntax.Builtins {
		assert.Contains(t, interp.AllBuiltins, name)
	}
	assert.Len(t, interp.AllBuiltins, len(syntax.Builtins))
}

func TestInterpret_eventLogStaysOutOfPrograms(t *testing.T) {
	dir := tempDir(t)
	logPath := filepath.Join(dir, "events.jsonl")

	// Setenv restores the variables afterwards; the test needs them unset.
	t.Setenv(logger.EnvEventLog, "")
	t.Setenv(logger.EnvSession, "")
	require.NoError(t, os.Unsetenv(logger.EnvEventLog))
	require.NoError(t, os.Unsetenv(logger.EnvSession))

	fs := afero.NewOsFs()
	l, closer, err := logger.OpenJSONLinesLog(fs, logPath)
	require.NoError(t, err)
	defer closer.Close()

	session := l.NewSession()
	session.Export(logPath)

	cmd := interptest.Script("printenv NESTSH_EVENT_LOG NESTSH_SESSION ; ( printenv NESTSH_EVENT_LOG ) ; echo x | printenv NESTSH_SESSION")
	cmd.Dir = dir
	cmd.Events = session
	out, err := cmd.CombinedOutput()
	require.NoError(t, err)
	assert.Empty(t, string(out))
	assert.Empty(t, os.Getenv(logger.EnvEventLog))

	f, err := fs.Open(logPath)
	require.NoError(t, err)
	defer f.Close()

	var report logger.Report
	require.NoError(t, logger.ReadJSONLinesLog(f, report.Update))
	assert.Equal(t, 3, report.RunCommand.CommandNames.Count("printenv"))
	assert.Equal(t, report.LogEntries, report.Sessions.Count(session.SessionID()))
}
