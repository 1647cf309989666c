package logbook

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTailReturnsRecentLinesAndTotal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "journey.log")
	book, err := New(path)
	if err != nil {
		t.Fatalf("new logbook: %v", err)
	}
	for i := 0; i < 5; i++ {
		book.Info("entry-%d", i)
	}
	lines, total := book.Tail(3)
	if total != 5 {
		t.Fatalf("total lines = %d, want 5", total)
	}
	if len(lines) != 3 {
		t.Fatalf("len(lines) = %d, want 3", len(lines))
	}
	for idx, want := range []string{"entry-2", "entry-3", "entry-4"} {
		if !strings.Contains(lines[idx], want) {
			t.Fatalf("line %d = %q, missing %s", idx, lines[idx], want)
		}
	}
}

func TestNewCreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".routecipher", "logs", "journey.log")
	book, err := New(path)
	require.NoError(t, err)
	assert.Equal(t, path, book.Path())

	book.Warn("grid %dx%d", 3, 2)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "WARN  grid 3x2")
}

func TestAppendFormatsTimestampAndLevel(t *testing.T) {
	book, err := New(filepath.Join(t.TempDir(), "journey.log"))
	require.NoError(t, err)
	book.now = func() time.Time { return time.Date(2018, 6, 12, 9, 30, 0, 0, time.UTC) }

	book.Error("  bad direction %q \n", "x")
	lines, total := book.Tail(10)
	require.Equal(t, 1, total)
	assert.Equal(t, `2018-06-12T09:30:00Z ERROR bad direction "x"`, lines[0])
}

func TestRunTagsEntries(t *testing.T) {
	book, err := New(filepath.Join(t.TempDir(), "journey.log"))
	require.NoError(t, err)

	run := book.StartRun()
	require.Len(t, run.ID(), 8)
	run.Info("encrypted %d cells", 6)
	run.Error("oops")

	other := book.StartRun()
	assert.NotEqual(t, run.ID(), other.ID())

	lines, total := book.Tail(5)
	require.Equal(t, 2, total)
	assert.Contains(t, lines[0], "INFO  [run "+run.ID()+"] encrypted 6 cells")
	assert.Contains(t, lines[1], "ERROR [run "+run.ID()+"] oops")
}

func TestNilLogbookIsSafe(t *testing.T) {
	var book *Logbook
	book.Info("ignored")
	assert.Equal(t, "", book.Path())
	lines, total := book.Tail(3)
	assert.Nil(t, lines)
	assert.Zero(t, total)

	run := book.StartRun()
	assert.NotEmpty(t, run.ID())
	run.Info("ignored too")

	var nilRun *Run
	nilRun.Warn("ignored")
	assert.Equal(t, "", nilRun.ID())
}

func TestTailMissingFile(t *testing.T) {
	book, err := New(filepath.Join(t.TempDir(), "never-written.log"))
	require.NoError(t, err)
	lines, total := book.Tail(4)
	assert.Nil(t, lines)
	assert.Zero(t, total)
}
