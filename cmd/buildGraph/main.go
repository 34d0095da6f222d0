package main

import (
	"flag"
	"fmt"
	"image/color"
	"os"
	"sort"
	"strconv"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/i5heu/GoQueueRace/internal/report"
)

// itemStats holds the 5% quantile, median, and 95% quantile of ns/item for
// one item count.
type itemStats struct {
	x      float64 // category index plus per-implementation offset
	items  int
	low    float64
	median float64
	high   float64
}

// statsPoints implements XYer and YErrorer for itemStats, so we can plot lines + error bars.
type statsPoints []itemStats

func (s statsPoints) Len() int                { return len(s) }
func (s statsPoints) XY(i int) (x, y float64) { return s[i].x, s[i].median }
func (s statsPoints) YError(i int) (low, high float64) {
	return s[i].median - s[i].low, s[i].high - s[i].median
}

// categoryTicks implements a categorical X-axis: 0,1,2,... => labels for item counts.
type categoryTicks struct {
	positions []float64
	labels    []string
}

func (ct categoryTicks) Ticks(min, max float64) []plot.Tick {
	var ticks []plot.Tick
	for i, pos := range ct.positions {
		if pos >= min && pos <= max {
			ticks = append(ticks, plot.Tick{Value: pos, Label: ct.labels[i]})
		}
	}
	return ticks
}

// nsLogTicks labels log ticks as durations.
type nsLogTicks struct{}

func (nsLogTicks) Ticks(min, max float64) []plot.Tick {
	ticks := plot.LogTicks{}.Ticks(min, max)
	for i := range ticks {
		if ticks[i].Label != "" {
			ticks[i].Label = formatNs(ticks[i].Value)
		}
	}
	return ticks
}

// samples maps implementation -> item count -> ns/item values.
type samples map[string]map[int][]float64

func main() {
	jsonFile := flag.String("jsonfile", "test-results.json", "Path to JSON file containing race sessions")
	outputPrefix := flag.String("out", "race_graph", "Output graph image filename prefix")
	flag.Parse()

	sessions, err := report.Load(*jsonFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	byMode := groupByMode(sessions)
	for _, mode := range []string{"parallel", "sequential"} {
		implMap, ok := byMode[mode]
		if !ok {
			continue
		}
		p, err := buildPlot(mode, implMap)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error building %s plot: %v\n", mode, err)
			continue
		}
		filename := fmt.Sprintf("%s_%s.png", *outputPrefix, mode)
		if err := p.Save(12*vg.Inch, 9*vg.Inch, filename); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving %s plot: %v\n", mode, err)
			continue
		}
		fmt.Printf("Graph for %s races saved to %s\n", mode, filename)
	}
}

// groupByMode splits results by race mode.
func groupByMode(sessions []report.FullReport) map[string]samples {
	out := make(map[string]samples)
	for _, session := range sessions {
		for _, r := range session.Results {
			if r.NsPerItem <= 0 {
				continue
			}
			mode := "sequential"
			if r.Parallel {
				mode = "parallel"
			}
			if out[mode] == nil {
				out[mode] = make(samples)
			}
			if out[mode][r.Implementation] == nil {
				out[mode][r.Implementation] = make(map[int][]float64)
			}
			out[mode][r.Implementation][r.NumItems] = append(out[mode][r.Implementation][r.NumItems], r.NsPerItem)
		}
	}
	return out
}

func buildPlot(mode string, implMap samples) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Queue race (5%% / Median / 95%%) vs. item count, %s lanes", mode)
	p.X.Label.Text = "Items enqueued and dequeued"
	p.Y.Label.Text = "Time per item [log scale]"
	p.Y.Scale = plot.LogScale{}
	p.Y.Tick.Marker = nsLogTicks{}

	// Dark theme.
	p.BackgroundColor = color.RGBA{R: 30, G: 30, B: 30, A: 255}
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	p.Title.TextStyle.Color = white
	p.X.Label.TextStyle.Color = white
	p.Y.Label.TextStyle.Color = white
	p.X.Color = white
	p.Y.Color = white
	p.X.Tick.Label.Color = white
	p.Y.Tick.Label.Color = white
	p.Legend.Top = true
	p.Legend.Left = true
	p.Legend.TextStyle.Color = white

	p.Add(plotter.NewGrid())

	// Union of item counts across implementations.
	itemSet := make(map[int]struct{})
	for _, implData := range implMap {
		for n := range implData {
			itemSet[n] = struct{}{}
		}
	}
	var itemCounts []int
	for n := range itemSet {
		itemCounts = append(itemCounts, n)
	}
	sort.Ints(itemCounts)

	category := make(map[int]float64)
	var positions []float64
	var labels []string
	for i, n := range itemCounts {
		category[n] = float64(i)
		positions = append(positions, float64(i))
		labels = append(labels, strconv.Itoa(n))
	}
	p.X.Tick.Marker = categoryTicks{positions: positions, labels: labels}

	var implNames []string
	for name := range implMap {
		implNames = append(implNames, name)
	}
	sort.Strings(implNames)

	colors := plotutil.SoftColors
	shapes := []draw.GlyphDrawer{
		draw.CircleGlyph{},
		draw.SquareGlyph{},
		draw.TriangleGlyph{},
		draw.CrossGlyph{},
		draw.PlusGlyph{},
	}

	// Slight offset so each implementation is visually separated.
	offsetRange := 0.4
	offsetStep := offsetRange / float64(len(implNames))
	startOffset := -offsetRange/2 + offsetStep/2

	for i, impl := range implNames {
		stats := buildStats(implMap[impl])
		if len(stats) == 0 {
			continue
		}
		for j := range stats {
			stats[j].x = category[stats[j].items] + startOffset + float64(i)*offsetStep
		}
		sp := statsPoints(stats)

		line, err := plotter.NewLine(sp)
		if err != nil {
			return nil, fmt.Errorf("line for %s: %w", impl, err)
		}
		line.Color = colors[i%len(colors)]

		points, err := plotter.NewScatter(sp)
		if err != nil {
			return nil, fmt.Errorf("scatter for %s: %w", impl, err)
		}
		points.GlyphStyle.Radius = vg.Points(5)
		points.Color = colors[i%len(colors)]
		points.Shape = shapes[i%len(shapes)]

		yErrBars, err := plotter.NewYErrorBars(sp)
		if err != nil {
			return nil, fmt.Errorf("error bars for %s: %w", impl, err)
		}
		yErrBars.Color = colors[i%len(colors)]

		p.Add(line, points, yErrBars)
		p.Legend.Add(impl, line, points)
	}
	return p, nil
}

// buildStats computes the 5% quantile, median and 95% quantile per item
// count, ordered by item count.
func buildStats(byItems map[int][]float64) []itemStats {
	var out []itemStats
	for n, vals := range byItems {
		if len(vals) == 0 {
			continue
		}
		sorted := append([]float64(nil), vals...)
		sort.Float64s(sorted)
		out = append(out, itemStats{
			items:  n,
			low:    stat.Quantile(0.05, stat.Empirical, sorted, nil),
			median: report.Median(sorted),
			high:   stat.Quantile(0.95, stat.Empirical, sorted, nil),
		})
	}
	sort.Slice(out, func(a, b int) bool { return out[a].items < out[b].items })
	return out
}

// formatNs nicely formats a nanoseconds value in ns, µs, ms, or s.
func formatNs(ns float64) string {
	switch {
	case ns < 1e3:
		return fmt.Sprintf("%.0fns", ns)
	case ns < 1e6:
		return fmt.Sprintf("%.1fµs", ns/1e3)
	case ns < 1e9:
		return fmt.Sprintf("%.1fms", ns/1e6)
	default:
		return fmt.Sprintf("%.2fs", ns/1e9)
	}
}
