package cmd

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionPrintsVersion(t *testing.T) {
	stdout, _, err := executeCLI(t, t.TempDir(), "", "version")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", stdout)
}

func TestUnknownCommandFails(t *testing.T) {
	_, _, err := executeCLI(t, t.TempDir(), "", "status")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command \"status\"")
}

func TestConsoleCreatesListsAndTodos(t *testing.T) {
	stdout, _, err := executeCLI(t, t.TempDir(), lines(
		"new Groceries",
		"add 1 milk",
		"add 1 oat   milk",
		"toggle 1 1 true",
		"show 1",
		"lists",
		"quit",
		"new Ignored",
	), "console")

	require.NoError(t, err)
	assert.Contains(t, stdout, "The list has been created.")
	assert.Contains(t, stdout, "Todo successfully added.")
	assert.Contains(t, stdout, "The todo item has been updated.")
	assert.Contains(t, stdout, "oat   milk")
	assert.Contains(t, stdout, "remaining: 1 / 2")
	assert.Contains(t, stdout, "lists: 1")
	assert.Contains(t, stdout, "Groceries")
	assert.NotContains(t, stdout, "Ignored")
}

func TestConsoleReportsErrorsAndContinues(t *testing.T) {
	stdout, _, err := executeCLI(t, t.TempDir(), lines(
		"new",
		"new Work",
		"new Work",
		"show 9",
		"show abc",
		"toggle 1",
		"bogus",
		"rename 1 Work",
	), "console")

	require.NoError(t, err)
	assert.Contains(t, stdout, "error: List name must be between 1 and 100 characters.")
	assert.Contains(t, stdout, "error: List name must be unique.")
	assert.Contains(t, stdout, "error: The specified list was not found.")
	assert.Contains(t, stdout, "error: usage: toggle <id> <todo_id> <true|false>")
	assert.Contains(t, stdout, "error: usage: unknown command \"bogus\"")
	assert.Contains(t, stdout, "The list has been updated.", "renaming a list to its own name is accepted")
}

func TestConsoleRejectsSameNameRenameWhenConfigured(t *testing.T) {
	t.Setenv("TODOS_LISTS_REJECT_SAME_NAME_RENAME", "true")

	stdout, _, err := executeCLI(t, t.TempDir(), lines(
		"new Work",
		"rename 1 Work",
	), "console")

	require.NoError(t, err)
	assert.Contains(t, stdout, "error: List name must be unique.")
	assert.NotContains(t, stdout, "The list has been updated.")
}

func TestConsoleCompletesRemovesAndDeletes(t *testing.T) {
	stdout, _, err := executeCLI(t, t.TempDir(), lines(
		"new Chores",
		"add 1 sweep",
		"add 1 mop",
		"check 1",
		"remove 1 2",
		"remove 1 7",
		"delete 1",
		"lists",
	), "console")

	require.NoError(t, err)
	assert.Contains(t, stdout, "The todo items have all been completed.")
	assert.Contains(t, stdout, "remaining: 0 / 2")
	assert.Contains(t, stdout, "The todo item has been deleted.")
	assert.Contains(t, stdout, "error: The specified todo was not found.")
	assert.Contains(t, stdout, "The list has been deleted.")
	assert.Contains(t, stdout, "You have no lists yet.")
}

func TestConsoleReportsOverlongLineAndContinues(t *testing.T) {
	stdout, _, err := executeCLI(t, t.TempDir(), lines(
		"new "+strings.Repeat("a", 100_000),
		"new Kept",
	), "console")

	require.NoError(t, err)
	assert.Contains(t, stdout, "error: line is longer than 16384 bytes")
	assert.Contains(t, stdout, "The list has been created.")
	assert.Contains(t, stdout, "Kept")
}

func TestReadLine(t *testing.T) {
	reader := bufio.NewReaderSize(strings.NewReader("first\r\n"+strings.Repeat("x", maxConsoleLine+1)+"\nlast"), 16)

	line, err := readLine(reader)
	require.NoError(t, err)
	assert.Equal(t, "first", line)

	_, err = readLine(reader)
	assert.ErrorIs(t, err, errLineTooLong)

	line, err = readLine(reader)
	require.NoError(t, err)
	assert.Equal(t, "last", line)

	_, err = readLine(reader)
	assert.ErrorIs(t, err, io.EOF)
}

func TestShutdownSpinnerOutlivesDrainDeadline(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	var output bytes.Buffer
	err := runShutdownSpinner(ctx, &output, func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestConsoleHelp(t *testing.T) {
	stdout, _, err := executeCLI(t, t.TempDir(), "help\n", "console")

	require.NoError(t, err)
	assert.Contains(t, stdout, "commands:")
	assert.Contains(t, stdout, "toggle <id> <todo_id> <true|false>")
	assert.Contains(t, stdout, "check <id>")
}

func TestConfigInitWritesDefaults(t *testing.T) {
	home := t.TempDir()
	path := filepath.Join(home, ".config", "todos", "config.toml")

	stdout, _, err := executeCLI(t, home, "", "config", "init")
	require.NoError(t, err)
	assert.Contains(t, stdout, "wrote "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "127.0.0.1:4567")
	assert.Contains(t, string(data), "todos_session")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	_, _, err = executeCLI(t, home, "", "config", "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file already exists")

	_, _, err = executeCLI(t, home, "", "config", "init", "--force")
	require.NoError(t, err)
}

func TestConfigShowLayersFileAndEnvironment(t *testing.T) {
	home := t.TempDir()
	path := filepath.Join(home, "todos.toml")
	require.NoError(t, os.WriteFile(path, []byte(`[server]
addr = "127.0.0.1:8080"

[session]
secret = "hunter2"

[log]
level = "debug"
`), 0o600))
	t.Setenv("TODOS_SERVER_ADDR", "0.0.0.0:9000")

	stdout, _, err := executeCLI(t, home, "", "--config", path, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, stdout, "0.0.0.0:9000")
	assert.Contains(t, stdout, "debug")
	assert.Contains(t, stdout, "<redacted>")
	assert.NotContains(t, stdout, "hunter2")

	stdout, _, err = executeCLI(t, home, "", "--config", path, "config", "show", "--show-secret")
	require.NoError(t, err)
	assert.Contains(t, stdout, "hunter2")
}

func TestExplicitMissingConfigFails(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "", "--config", filepath.Join(home, "missing.toml"), "config", "show")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config file")
}

func TestServeStopsWhenContextIsDone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, stderr, err := executeCLIContext(ctx, t, t.TempDir(), "", "serve", "--addr", "127.0.0.1:0")
	require.NoError(t, err)
	assert.Contains(t, stderr, "listening")
	assert.Contains(t, stderr, "session.secret is not set")
	assert.Contains(t, stderr, "shutting down")
}

func TestServeFailsOnBadAddress(t *testing.T) {
	_, _, err := executeCLI(t, t.TempDir(), "", "serve", "--addr", "127.0.0.1:99999")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "listen on 127.0.0.1:99999")
}

func TestRestKeepsInnerSpacing(t *testing.T) {
	assert.Equal(t, "oat   milk", rest("add 1 oat   milk", 2))
	assert.Equal(t, "Groceries", rest("  new   Groceries", 1))
	assert.Equal(t, "", rest("new", 1))
	assert.Equal(t, "", rest("rename 1", 2))
}

func executeCLI(t *testing.T, home, stdin string, args ...string) (string, string, error) {
	t.Helper()
	return executeCLIContext(context.Background(), t, home, stdin, args...)
}

func executeCLIContext(ctx context.Context, t *testing.T, home, stdin string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", home)

	root := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	return stdout.String(), stderr.String(), err
}

func lines(commands ...string) string {
	return strings.Join(commands, "\n") + "\n"
}
