package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/olekukonko/tablewriter"
	"gonum.org/v1/gonum/stat"
)

// Meta describes an implementation for the summary table.
type Meta struct {
	PkgName  string
	Features []string
}

type summaryRow struct {
	implementation string
	median         float64
	wins           int
	runs           int
}

// WriteMarkdownTable renders a markdown summary of session: one row per
// implementation with its median ns/item and how many races it won, fastest
// first. meta may be nil.
func WriteMarkdownTable(w io.Writer, session FullReport, meta map[string]Meta) {
	byImpl := make(map[string][]RaceResult)
	for _, r := range session.Results {
		byImpl[r.Implementation] = append(byImpl[r.Implementation], r)
	}

	rows := make([]summaryRow, 0, len(byImpl))
	for impl, results := range byImpl {
		vals := make([]float64, len(results))
		wins := 0
		for i, r := range results {
			vals[i] = r.NsPerItem
			if r.Place == 1 {
				wins++
			}
		}
		sort.Float64s(vals)
		rows = append(rows, summaryRow{implementation: impl, median: Median(vals), wins: wins, runs: len(results)})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].median != rows[j].median {
			return rows[i].median < rows[j].median
		}
		return rows[i].implementation < rows[j].implementation
	})

	fmt.Fprintln(w, "## Last Session Race Summary")
	fmt.Fprintln(w)

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Implementation", "Package", "Features", "Median (ns/item)", "Wins"})
	table.SetAutoFormatHeaders(false)
	table.SetBorders(tablewriter.Border{Left: true, Top: false, Right: true, Bottom: false})
	table.SetCenterSeparator("|")
	table.SetAutoWrapText(false)
	for _, r := range rows {
		m := meta[r.implementation]
		table.Append([]string{
			r.implementation,
			m.PkgName,
			strings.Join(m.Features, ", "),
			fmt.Sprintf("%.1f", r.median),
			fmt.Sprintf("%d/%d", r.wins, r.runs),
		})
	}
	table.Render()
}

// Median returns the linearly interpolated 50% quantile of sorted, or 0 when
// sorted is empty.
func Median(sorted []float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	return stat.Quantile(0.5, stat.LinInterp, sorted, nil)
}
