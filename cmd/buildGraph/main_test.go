package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/vg"

	"github.com/i5heu/GoQueueRace/internal/report"
)

func sessions() []report.FullReport {
	s := report.NewSession(report.SystemInfo{NumCPU: 2})
	for _, n := range []int{1000, 10000} {
		for i, v := range []float64{10, 20, 30, 40} {
			s.Results = append(s.Results,
				report.RaceResult{Implementation: "RingBufferQueue", NumItems: n, Parallel: true, NsPerItem: v, Iteration: i + 1},
				report.RaceResult{Implementation: "ArrayQueue", NumItems: n, Parallel: true, NsPerItem: v * 100, Iteration: i + 1},
			)
		}
	}
	s.Results = append(s.Results,
		report.RaceResult{Implementation: "DoubleStackQueue", NumItems: 1000, Parallel: false, NsPerItem: 12},
		report.RaceResult{Implementation: "DoubleStackQueue", NumItems: 1000, Parallel: false, NsPerItem: 0},
	)
	return []report.FullReport{s}
}

func TestGroupByMode(t *testing.T) {
	byMode := groupByMode(sessions())
	require.Contains(t, byMode, "parallel")
	require.Contains(t, byMode, "sequential")

	assert.Len(t, byMode["parallel"]["RingBufferQueue"][1000], 4)
	assert.Len(t, byMode["parallel"]["ArrayQueue"][10000], 4)
	assert.Equal(t, []float64{12}, byMode["sequential"]["DoubleStackQueue"][1000], "zero samples are dropped")
}

func TestBuildStats(t *testing.T) {
	stats := buildStats(map[int][]float64{
		500: {5},
		100: {40, 10, 30, 20},
	})
	require.Len(t, stats, 2)
	assert.Equal(t, 100, stats[0].items)
	assert.Equal(t, 500, stats[1].items)

	s := stats[0]
	assert.Equal(t, 10.0, s.low)
	assert.Equal(t, 40.0, s.high)
	assert.GreaterOrEqual(t, s.median, s.low)
	assert.LessOrEqual(t, s.median, s.high)

	assert.Equal(t, 5.0, stats[1].low)
	assert.Equal(t, 5.0, stats[1].high)
}

func TestStatsPointsErrors(t *testing.T) {
	sp := statsPoints{{x: 1, low: 2, median: 5, high: 9}}
	x, y := sp.XY(0)
	assert.Equal(t, 1.0, x)
	assert.Equal(t, 5.0, y)
	low, high := sp.YError(0)
	assert.Equal(t, 3.0, low)
	assert.Equal(t, 4.0, high)
}

func TestFormatNs(t *testing.T) {
	assert.Equal(t, "15ns", formatNs(15))
	assert.Equal(t, "1.5µs", formatNs(1500))
	assert.Equal(t, "2.0ms", formatNs(2e6))
	assert.Equal(t, "3.00s", formatNs(3e9))
}

func TestBuildPlotSaves(t *testing.T) {
	byMode := groupByMode(sessions())
	p, err := buildPlot("parallel", byMode["parallel"])
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "graph.png")
	require.NoError(t, p.Save(4*vg.Inch, 3*vg.Inch, path))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
