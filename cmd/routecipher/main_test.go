package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kingrea/routecipher/internal/cipher"
	"github.com/kingrea/routecipher/internal/config"
)

// runCLI executes run with an isolated state directory and returns stdout,
// stderr and the error.
func runCLI(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	args = append([]string{"-project", t.TempDir()}, args...)
	err := run(strings.NewReader(stdin), &stdout, &stderr, args)
	return stdout.String(), stderr.String(), err
}

func exitCode(t *testing.T, err error) int {
	t.Helper()
	var exitErr *exitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("error %v is not an exitError", err)
	}
	return exitErr.code
}

func TestPlainModePromptsAndPrintsCiphertext(t *testing.T) {
	t.Setenv(config.HomeEnv, "")
	out, _, err := runCLI(t, "Hello\n3,2\nc\n")
	require.NoError(t, err)
	want := promptMessage + promptDimensions + promptDirection + "\nLXOLHE\n"
	assert.Equal(t, want, out)
}

func TestQuietCounterClockwise(t *testing.T) {
	t.Setenv(config.HomeEnv, "")
	out, _, err := runCLI(t, "we are discovered. flee at once\n9, 3\nCC", "-quiet")
	require.NoError(t, err)
	// W E A R E D I S C
	// O V E R E D F L E
	// E A T O N C E X X
	assert.Equal(t, "CSIDERAEWOEATONCEXXELFDEREV\n", out)
}

func TestFlagsPreAnswerPrompts(t *testing.T) {
	t.Setenv(config.HomeEnv, "")
	out, _, err := runCLI(t, "", "-quiet", "-message", "hello", "-dims", "3,2", "-dir", "cc")
	require.NoError(t, err)
	assert.Equal(t, "LEHLOX\n", out)

	// only the missing answer is asked for
	out, _, err = runCLI(t, "c\n", "-message", "hello", "-dims", "3,2")
	require.NoError(t, err)
	assert.Equal(t, promptDirection+"\nLXOLHE\n", out)
}

func TestShowGrid(t *testing.T) {
	t.Setenv(config.HomeEnv, "")
	out, _, err := runCLI(t, "hello\n3,2\nc\n", "-quiet", "-show-grid")
	require.NoError(t, err)
	assert.Equal(t, "H E L\nL O X\n\nLXOLHE\n", out)
}

func TestInvalidInputExitsWithCodeOne(t *testing.T) {
	cases := []struct {
		name  string
		stdin string
		msg   string
	}{
		{"DimensionOutOfRange", "hello\n255,2\nc\n", "between 0 and 254"},
		{"DimensionNotNumber", "hello\nthree,two\nc\n", "#,#"},
		{"ZeroDimension", "hello\n0,2\nc\n", "at least one row"},
		{"UnknownDirection", "hello\n3,2\nclockwise\n", "Unknown direction"},
		{"MissingLines", "hello\n", "#,#"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(config.HomeEnv, "")
			out, _, err := runCLI(t, tc.stdin, "-quiet")
			require.Error(t, err)
			assert.Equal(t, 1, exitCode(t, err))
			assert.Contains(t, err.Error(), tc.msg)
			assert.Empty(t, out, "no ciphertext on failure")
		})
	}
}

func TestFlagErrors(t *testing.T) {
	t.Setenv(config.HomeEnv, "")
	_, stderr, err := runCLI(t, "", "-no-such-flag")
	assert.Equal(t, 2, exitCode(t, err))
	assert.Contains(t, stderr, "no-such-flag")

	_, _, err = runCLI(t, "", "extra")
	assert.Equal(t, 2, exitCode(t, err))

	_, stderr, err = runCLI(t, "", "-h")
	assert.Equal(t, 0, exitCode(t, err))
	assert.Contains(t, stderr, "-dims")

	_, _, err = runCLI(t, "hello\n3,2\nc\n", "-filler", "7")
	assert.Equal(t, 2, exitCode(t, err))
	assert.ErrorContains(t, err, cipher.ErrInvalidFiller.Error())
}

func TestFillerFlagOverridesConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv(config.HomeEnv, home)
	require.NoError(t, os.WriteFile(filepath.Join(home, "config.yaml"), []byte("cipher:\n  filler: q\n"), 0o644))

	out, _, err := runCLI(t, "hello\n3,2\nc\n", "-quiet", "-filler", "z")
	require.NoError(t, err)
	// H E L
	// L O Z
	assert.Equal(t, "LZOLHE\n", out)

	// the override lasts for one run only
	data, err := os.ReadFile(filepath.Join(home, "config.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "filler: q")
	out, _, err = runCLI(t, "hello\n3,2\nc\n", "-quiet")
	require.NoError(t, err)
	assert.Equal(t, "LQOLHE\n", out)
}

func TestLogbookWarningGoesToStderrWriter(t *testing.T) {
	home := t.TempDir()
	t.Setenv(config.HomeEnv, home)
	// a regular file where the log directory should be
	require.NoError(t, os.WriteFile(filepath.Join(home, "blocked"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(home, "config.yaml"), []byte("logbook:\n  path: blocked/journey.log\n"), 0o644))

	out, stderr, err := runCLI(t, "hello\n3,2\nc\n", "-quiet")
	require.NoError(t, err, "a broken logbook never stops the run")
	assert.Equal(t, "LXOLHE\n", out)
	assert.Contains(t, stderr, "Warning: logbook disabled")

	cfg, err := config.NewConfig(t.TempDir())
	require.NoError(t, err)
	var buf bytes.Buffer
	assert.Nil(t, openLogbook(cfg, &buf))
	assert.Contains(t, buf.String(), "logbook: ensure log dir")
}

func TestConfigFillerAndLogbook(t *testing.T) {
	home := t.TempDir()
	t.Setenv(config.HomeEnv, home)
	require.NoError(t, os.WriteFile(filepath.Join(home, "config.yaml"), []byte("cipher:\n  filler: q\n"), 0o644))

	out, _, err := runCLI(t, "hello\n3,2\nc\n", "-quiet")
	require.NoError(t, err)
	// H E L
	// L O Q
	assert.Equal(t, "LQOLHE\n", out)

	data, err := os.ReadFile(filepath.Join(home, "logs", "journey.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Encrypted 3x2 clockwise · 6 cells")
	assert.NotContains(t, string(data), "hello")
}

func TestPlainModeDoesNotCreateStateDir(t *testing.T) {
	t.Setenv(config.HomeEnv, "")
	project := t.TempDir()
	var stdout, stderr bytes.Buffer
	err := run(strings.NewReader("hello\n3,2\nc\n"), &stdout, &stderr, []string{"-project", project})
	require.NoError(t, err)
	assert.NoDirExists(t, filepath.Join(project, config.StateDirName))
}

func TestInvalidConfigFails(t *testing.T) {
	home := t.TempDir()
	t.Setenv(config.HomeEnv, home)
	require.NoError(t, os.WriteFile(filepath.Join(home, "config.yaml"), []byte("cipher:\n  direction: up\n"), 0o644))

	_, _, err := runCLI(t, "hello\n3,2\nc\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config:")
}
