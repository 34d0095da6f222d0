package testbench

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/i5heu/GoQueueRace/pkg/queue"
)

// Config controls one race: how many items every lane pushes through its
// queue and whether lanes run at the same time.
type Config struct {
	ItemCount int
	Parallel  bool
}

// Result is the outcome of one lane.
type Result struct {
	Name     string
	Items    int
	Dequeued int
	Elapsed  time.Duration
	Place    int // 1-based, filled in by RunRace
}

// NsPerItem is the elapsed time per item pushed through the queue.
func (r Result) NsPerItem() float64 {
	if r.Items == 0 {
		return 0
	}
	return float64(r.Elapsed.Nanoseconds()) / float64(r.Items)
}

// Lane is one contestant. Race builds a fresh queue and runs the bulk
// workload on it.
type Lane struct {
	Name string
	Race func(n int) (Result, error)
}

// RunBulkTest performs n enqueues followed by n dequeues on q and measures
// the wall-clock time of both phases together.
func RunBulkTest[T any, Q queue.Queue[T]](
	name string,
	q Q,
	n int,
	valueGenerator func(int) T,
) (Result, error) {
	res := Result{Name: name, Items: n}

	start := time.Now()
	for i := 0; i < n; i++ {
		if err := q.Enqueue(valueGenerator(i)); err != nil {
			return res, fmt.Errorf("%s: enqueue %d of %d: %w", name, i, n, err)
		}
	}
	for i := 0; i < n; i++ {
		if _, ok := q.Dequeue(); !ok {
			break
		}
		res.Dequeued++
	}
	res.Elapsed = time.Since(start)

	if res.Dequeued != n {
		return res, fmt.Errorf("%s: dequeued %d of %d items", name, res.Dequeued, n)
	}
	return res, nil
}

type laneOutcome struct {
	res Result
	err error
}

// RunRace runs every lane once and returns results ordered by elapsed time,
// fastest first. In parallel mode each lane gets its own goroutine and
// queue; nothing is shared between them. onFinish, if set, is called from
// the calling goroutine as each lane completes.
func RunRace(lanes []Lane, cfg Config, onFinish func(Result)) ([]Result, error) {
	outcomes := make(chan laneOutcome, len(lanes))

	if cfg.Parallel {
		var wg sync.WaitGroup
		wg.Add(len(lanes))
		for _, lane := range lanes {
			go func(l Lane) {
				defer wg.Done()
				res, err := l.Race(cfg.ItemCount)
				outcomes <- laneOutcome{res: res, err: err}
			}(lane)
		}
		go func() {
			wg.Wait()
			close(outcomes)
		}()
	} else {
		go func() {
			for _, l := range lanes {
				res, err := l.Race(cfg.ItemCount)
				outcomes <- laneOutcome{res: res, err: err}
			}
			close(outcomes)
		}()
	}

	results := make([]Result, 0, len(lanes))
	var firstErr error
	for o := range outcomes {
		if o.err != nil {
			if firstErr == nil {
				firstErr = o.err
			}
			continue
		}
		results = append(results, o.res)
		if onFinish != nil {
			onFinish(o.res)
		}
	}
	if firstErr != nil {
		return nil, firstErr
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Elapsed < results[j].Elapsed
	})
	for i := range results {
		results[i].Place = i + 1
	}
	return results, nil
}
