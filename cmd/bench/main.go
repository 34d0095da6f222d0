package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/i5heu/GoQueueRace/internal/report"
	"github.com/i5heu/GoQueueRace/internal/testbench"
	"github.com/i5heu/GoQueueRace/pkg/arrayqueue"
	"github.com/i5heu/GoQueueRace/pkg/config"
	"github.com/i5heu/GoQueueRace/pkg/doublestack"
	"github.com/i5heu/GoQueueRace/pkg/linkedlistqueue"
	"github.com/i5heu/GoQueueRace/pkg/queue"
	"github.com/i5heu/GoQueueRace/pkg/ringbufferqueue"
)

// Implementation represents a queue implementation taking part in the race.
type Implementation struct {
	name        string
	description string
	pkgName     string
	features    []string
	// newUnbounded is nil for implementations that always need a capacity.
	newUnbounded func() queue.Queue[string]
	newBounded   func(capacity int) (queue.Queue[string], error)
}

// raceQueue builds the instance used in a race of n items: unbounded when
// the implementation allows it, otherwise sized to hold all n items.
func (impl Implementation) raceQueue(n int) (queue.Queue[string], error) {
	if impl.newUnbounded != nil {
		return impl.newUnbounded(), nil
	}
	return impl.newBounded(n)
}

func (impl Implementation) lane() testbench.Lane {
	return testbench.Lane{
		Name: impl.name,
		Race: func(n int) (testbench.Result, error) {
			q, err := impl.raceQueue(n)
			if err != nil {
				return testbench.Result{}, fmt.Errorf("%s: %w", impl.name, err)
			}
			return testbench.RunBulkTest(impl.name, q, n, itemValue)
		},
	}
}

func itemValue(i int) string {
	return "Item " + strconv.Itoa(i)
}

type options struct {
	items         int
	iterations    int
	parallel      bool
	jsonExport    bool
	jsonFile      string
	markdownTable bool
	progress      bool
}

func loadOptions(v *viper.Viper) (options, error) {
	opts := options{
		items:         v.GetInt("items"),
		iterations:    v.GetInt("iter"),
		parallel:      v.GetBool("parallel"),
		jsonExport:    v.GetBool("json"),
		jsonFile:      v.GetString("jsonfile"),
		markdownTable: v.GetBool("markdown-table"),
		progress:      v.GetBool("progress"),
	}
	if opts.markdownTable {
		return opts, nil
	}
	if opts.items <= 0 {
		return opts, fmt.Errorf("items must be greater than 0, got %d", opts.items)
	}
	if opts.iterations <= 0 {
		return opts, fmt.Errorf("iter must be greater than 0, got %d", opts.iterations)
	}
	return opts, nil
}

// newConfig layers QUEUERACE_* environment variables over the command flags.
func newConfig(flags *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix("QUEUERACE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(flags); err != nil {
		return nil, err
	}
	return v, nil
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Race the queue implementations against each other",
		Long: `Race the queue implementations against each other.
Every implementation enqueues --items strings and then dequeues them all;
the fastest lane wins the race.
  Environment variables:
    QUEUERACE_ITEMS=100000
    QUEUERACE_ITER=5
    QUEUERACE_PARALLEL=true
    QUEUERACE_JSONFILE=test-results.json`,
		Example: `  bench
  bench --items 20000 --iter 10 --parallel=false
  bench --json && bench --markdown-table`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := newConfig(cmd.Flags())
			if err != nil {
				return err
			}
			opts, err := loadOptions(v)
			if err != nil {
				return err
			}
			if opts.markdownTable {
				return outputMarkdownTable(cmd.OutOrStdout(), opts.jsonFile)
			}
			return runRaces(cmd.OutOrStdout(), opts)
		},
	}

	flags := cmd.Flags()
	flags.Int("items", 100000, "Number of items every queue enqueues and dequeues per race")
	flags.Int("iter", 5, "Number of races to run")
	flags.Bool("parallel", true, "Run all lanes of a race at the same time")
	flags.Bool("json", false, "Append results as JSON to --jsonfile")
	flags.String("jsonfile", "test-results.json", "Path to JSON results file")
	flags.Bool("markdown-table", false, "Output markdown table from --jsonfile and exit")
	flags.Bool("progress", false, "Display a progress bar with ETA")
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// outputMarkdownTable loads the JSON file and outputs a Markdown table of its
// last session.
func outputMarkdownTable(w io.Writer, jsonFile string) error {
	sessions, err := report.Load(jsonFile)
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		return errors.New("no sessions found in JSON")
	}
	meta := make(map[string]report.Meta)
	for _, impl := range getImplementations() {
		meta[impl.name] = report.Meta{PkgName: impl.pkgName, Features: impl.features}
	}
	report.WriteMarkdownTable(w, sessions[len(sessions)-1], meta)
	return nil
}

func runRaces(w io.Writer, opts options) error {
	impls := getImplementations()
	lanes := make([]testbench.Lane, len(impls))
	for i, impl := range impls {
		lanes[i] = impl.lane()
	}
	cfg := config.Config{ItemCount: opts.items, Parallel: opts.parallel}
	session := report.NewSession(report.GatherSystemInfo())

	mode := "sequential"
	if cfg.Parallel {
		mode = "parallel"
	}
	fmt.Fprintf(w, "\n=============================\n")
	fmt.Fprintf(w, "Queue race: %d lanes, %d items, %s\n", len(lanes), cfg.ItemCount, mode)
	fmt.Fprintf(w, "=============================\n")

	var bar *progressbar.ProgressBar
	if opts.progress {
		bar = progressbar.NewOptions(len(lanes)*opts.iterations,
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription("racing"),
			progressbar.OptionSetWidth(20),
			progressbar.OptionShowCount(),
			progressbar.OptionSetPredictTime(true),
		)
	}

	winner := color.New(color.FgGreen, color.Bold).SprintFunc()
	for iteration := 1; iteration <= opts.iterations; iteration++ {
		runtime.GC()
		results, err := testbench.RunRace(lanes, cfg, func(testbench.Result) {
			if bar != nil {
				_ = bar.Add(1)
			}
		})
		if err != nil {
			return err
		}
		if bar != nil {
			_ = bar.Clear()
		}

		fmt.Fprintf(w, "  race %d/%d\n", iteration, opts.iterations)
		timestamp := time.Now().Unix()
		for _, r := range results {
			name := r.Name
			if r.Place == 1 {
				name = winner(name)
			}
			fmt.Fprintf(w, "    %d. %s => took=%v, %.1f ns/item\n", r.Place, name, r.Elapsed, r.NsPerItem())
			session.Results = append(session.Results, report.RaceResult{
				Implementation: r.Name,
				NumItems:       r.Items,
				Iteration:      iteration,
				Parallel:       cfg.Parallel,
				ElapsedNs:      r.Elapsed.Nanoseconds(),
				NsPerItem:      r.NsPerItem(),
				Place:          r.Place,
				Timestamp:      timestamp,
				GoVersion:      runtime.Version(),
			})
		}
	}
	if bar != nil {
		_ = bar.Finish()
		fmt.Fprintln(os.Stderr)
	}

	if opts.jsonExport {
		if err := report.Append(opts.jsonFile, session); err != nil {
			return err
		}
		fmt.Fprintf(w, "\nWrote results to %s\n", opts.jsonFile)
	}
	return nil
}

// getImplementations enumerates our different queue implementations.
func getImplementations() []Implementation {
	return []Implementation{
		{
			name:        "ArrayQueue",
			pkgName:     "arrayqueue",
			description: "Baseline queue over a single growable slice; dequeue shifts every remaining element.",
			features:    []string{"FIFO", "Bounded", "Unbounded"},
			newUnbounded: func() queue.Queue[string] {
				return arrayqueue.New[string]()
			},
			newBounded: func(capacity int) (queue.Queue[string], error) {
				q, err := arrayqueue.NewBounded[string](capacity)
				if err != nil {
					return nil, err
				}
				return q, nil
			},
		},
		{
			name:        "LinkedListQueue",
			pkgName:     "linkedlistqueue",
			description: "Queue over a doubly linked list with O(1) enqueue at the tail and dequeue at the head.",
			features:    []string{"FIFO", "Bounded", "Unbounded"},
			newUnbounded: func() queue.Queue[string] {
				return linkedlistqueue.New[string]()
			},
			newBounded: func(capacity int) (queue.Queue[string], error) {
				q, err := linkedlistqueue.NewBounded[string](capacity)
				if err != nil {
					return nil, err
				}
				return q, nil
			},
		},
		{
			name:        "RingBufferQueue",
			pkgName:     "ringbufferqueue",
			description: "Fixed-capacity circular buffer addressed by monotonic read/write counters.",
			features:    []string{"FIFO", "Bounded"},
			newBounded: func(capacity int) (queue.Queue[string], error) {
				q, err := ringbufferqueue.New[string](capacity)
				if err != nil {
					return nil, err
				}
				return q, nil
			},
		},
		{
			name:        "DoubleStackQueue",
			pkgName:     "doublestack",
			description: "Two stacks with an amortized right-to-left transfer on dequeue.",
			features:    []string{"FIFO", "Bounded", "Unbounded"},
			newUnbounded: func() queue.Queue[string] {
				return doublestack.New[string]()
			},
			newBounded: func(capacity int) (queue.Queue[string], error) {
				q, err := doublestack.NewBounded[string](capacity)
				if err != nil {
					return nil, err
				}
				return q, nil
			},
		},
	}
}
