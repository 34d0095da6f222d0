package report

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"
)

func sampleSession() FullReport {
	s := NewSession(SystemInfo{NumCPU: 4, GOARCH: "amd64"})
	s.Results = []RaceResult{
		{Implementation: "ArrayQueue", NumItems: 100, Iteration: 1, NsPerItem: 900, Place: 4},
		{Implementation: "RingBufferQueue", NumItems: 100, Iteration: 1, NsPerItem: 20, Place: 1},
		{Implementation: "DoubleStackQueue", NumItems: 100, Iteration: 1, NsPerItem: 30, Place: 2},
		{Implementation: "LinkedListQueue", NumItems: 100, Iteration: 1, NsPerItem: 60, Place: 3},
		{Implementation: "RingBufferQueue", NumItems: 100, Iteration: 2, NsPerItem: 22, Place: 1},
		{Implementation: "DoubleStackQueue", NumItems: 100, Iteration: 2, NsPerItem: 35, Place: 2},
	}
	return s
}

func TestNewSession(t *testing.T) {
	a := NewSession(SystemInfo{})
	b := NewSession(SystemInfo{})
	assert.NotEmpty(t, a.SessionID)
	assert.NotEqual(t, a.SessionID, b.SessionID)
	assert.NotEmpty(t, a.SessionTime)
}

func TestGatherSystemInfo(t *testing.T) {
	info := GatherSystemInfo()
	assert.Greater(t, info.NumCPU, 0)
	assert.NotEmpty(t, info.GOARCH)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoadRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))
	_, err := Load(path)
	assert.ErrorContains(t, err, "unmarshalling")
}

func TestAppendAccumulates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test-results.json")
	first := sampleSession()
	require.NoError(t, Append(path, first))
	require.NoError(t, Append(path, sampleSession(), sampleSession()))

	sessions, err := Load(path)
	require.NoError(t, err)
	require.Len(t, sessions, 3)
	assert.Equal(t, first.SessionID, sessions[0].SessionID)
	assert.Equal(t, first.Results, sessions[0].Results)
}

func TestAppendConcurrentWriters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test-results.json")
	const writers = 8
	var wg sync.WaitGroup
	wg.Add(writers)
	for i := 0; i < writers; i++ {
		go func() {
			defer wg.Done()
			assert.NoError(t, Append(path, sampleSession()))
		}()
	}
	wg.Wait()

	sessions, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, sessions, writers)
}

func TestWriteMarkdownTable(t *testing.T) {
	var buf bytes.Buffer
	meta := map[string]Meta{
		"RingBufferQueue": {PkgName: "ringbufferqueue", Features: []string{"FIFO", "Bounded"}},
	}
	WriteMarkdownTable(&buf, sampleSession(), meta)
	out := buf.String()

	assert.Contains(t, out, "## Last Session Race Summary")
	assert.Contains(t, out, "Median (ns/item)")
	assert.Contains(t, out, "ringbufferqueue")
	assert.Contains(t, out, "FIFO, Bounded")

	// Sorted by median: RingBuffer ~20-22, DoubleStack ~30-35, LinkedList 60, Array 900.
	order := []string{"RingBufferQueue", "DoubleStackQueue", "LinkedListQueue", "ArrayQueue"}
	last := -1
	for _, name := range order {
		idx := strings.Index(out, name)
		require.Greater(t, idx, last, "%s out of order", name)
		last = idx
	}
	assert.Contains(t, out, "60.0")
	assert.Contains(t, out, "900.0")
	assert.Contains(t, out, "2/2")
	assert.Contains(t, out, "0/2")
	assert.Contains(t, out, "0/1")
}

func TestMedian(t *testing.T) {
	assert.Equal(t, 0.0, Median(nil))
	assert.Equal(t, 7.0, Median([]float64{7}))

	for _, sorted := range [][]float64{{1, 2, 3}, {1, 2, 3, 4}, {10, 10, 20, 40, 80}} {
		got := Median(sorted)
		assert.Equal(t, stat.Quantile(0.5, stat.LinInterp, sorted, nil), got)
		assert.GreaterOrEqual(t, got, sorted[0])
		assert.LessOrEqual(t, got, sorted[len(sorted)-1])
	}
}

func TestLoadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test-results.json")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	sessions, err := Load(path)
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestAppendToEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test-results.json")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	session := sampleSession()
	require.NoError(t, Append(path, session))

	sessions, err := Load(path)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, session.SessionID, sessions[0].SessionID)
}

func TestAppendLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test-results.json")
	require.NoError(t, Append(path, sampleSession()))
	require.NoError(t, Append(path, sampleSession()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{"test-results.json", "test-results.json.lock"}, names)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0644), info.Mode().Perm())
}

// A failed write must leave the previous contents intact.
func TestAppendKeepsOldFileOnWriteFailure(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test-results.json")
	require.NoError(t, Append(path, sampleSession()))
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	require.Error(t, writeFileAtomic(filepath.Join(dir, "missing-dir", "x.json"), []byte("[]")))

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}
