package satmeta

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/venicegeo/bf-satmeta/model"
	"github.com/venicegeo/bf-satmeta/util"
)

// Strategy selects how a batch is parsed
type Strategy int

// Batch strategies
const (
	Sequential Strategy = iota
	WorkerPool
)

func (s Strategy) String() string {
	if s == WorkerPool {
		return "pool"
	}
	return "sequential"
}

// ParseStrategy resolves a strategy name; "pool" and "workerpool" select WorkerPool
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "sequential":
		return Sequential, nil
	case "pool", "workerpool", "worker_pool":
		return WorkerPool, nil
	}
	return Sequential, fmt.Errorf("unknown strategy '%s'", name)
}

// Job is one product to parse. A zero Format is detected from the path.
type Job struct {
	Path   string
	Format Format
}

// Result is the outcome of one Job
type Result struct {
	Path     string
	Format   Format
	Record   model.Record
	Err      error
	Duration time.Duration
}

// Runner parses batches of products
type Runner struct {
	Strategy Strategy
	Workers  int
	Options  Options
	Metrics  *Metrics
	Clock    clockwork.Clock
}

// NewRunner creates a runner; workers below 1 become 1
func NewRunner(strategy Strategy, workers int, opts Options, metrics *Metrics) *Runner {
	if workers < 1 {
		workers = 1
	}
	return &Runner{
		Strategy: strategy,
		Workers:  workers,
		Options:  opts,
		Metrics:  metrics,
		Clock:    clockwork.NewRealClock(),
	}
}

// NewRunnerFromEnv creates a runner configured by SATMETA_STRATEGY and SATMETA_WORKERS
func NewRunnerFromEnv(opts Options, metrics *Metrics) (*Runner, error) {
	strategy, err := ParseStrategy(util.GetStrategy())
	if err != nil {
		return nil, err
	}
	workers, err := util.GetWorkers()
	if err != nil {
		return nil, err
	}
	return NewRunner(strategy, workers, opts, metrics), nil
}

// Run parses every job and returns one result per job, in job order. Failures are reported in
// the results and never stop the batch; jobs not started before ctx ends carry ctx's error.
func (r *Runner) Run(ctx context.Context, jobs []Job) []Result {
	r.Metrics.observeBatch(len(jobs))
	if r.Strategy == WorkerPool && r.Workers > 1 && len(jobs) > 1 {
		return r.runPool(ctx, jobs)
	}
	results := make([]Result, len(jobs))
	for i, job := range jobs {
		results[i] = r.process(ctx, job)
	}
	return results
}

type indexedJob struct {
	index int
	job   Job
}

type indexedResult struct {
	index  int
	result Result
}

func (r *Runner) runPool(ctx context.Context, jobs []Job) []Result {
	queue := make(chan indexedJob, r.Workers*2)
	done := make(chan indexedResult, r.Workers*2)

	var wg sync.WaitGroup
	for i := 0; i < r.Workers; i++ {
		wg.Add(1)
		go r.worker(ctx, queue, done, &wg)
	}

	// Listen for the workers' exit
	go func() {
		wg.Wait()
		close(done)
	}()

	go func() {
		defer close(queue)
		for i, job := range jobs {
			select {
			case queue <- indexedJob{index: i, job: job}:
			case <-ctx.Done():
				return
			}
		}
	}()

	results := make([]Result, len(jobs))
	processed := make([]bool, len(jobs))
	for res := range done {
		results[res.index] = res.result
		processed[res.index] = true
	}
	for i, job := range jobs {
		if !processed[i] {
			results[i] = Result{Path: job.Path, Format: job.Format, Err: fmt.Errorf("job not started: %w", ctx.Err())}
		}
	}
	return results
}

func (r *Runner) worker(ctx context.Context, queue <-chan indexedJob, done chan<- indexedResult, wg *sync.WaitGroup) {
	defer wg.Done()
	for {
		select {
		case item, ok := <-queue:
			if !ok {
				return
			}
			done <- indexedResult{index: item.index, result: r.process(ctx, item.job)}
		case <-ctx.Done():
			return
		}
	}
}

func (r *Runner) process(ctx context.Context, job Job) Result {
	result := Result{Path: job.Path, Format: job.Format}
	if err := ctx.Err(); err != nil {
		result.Err = fmt.Errorf("job not started: %w", err)
		return result
	}
	if result.Format == Unknown {
		if result.Format, result.Err = DetectFormat(job.Path); result.Err != nil {
			return result
		}
	}

	start := r.Clock.Now()
	result.Record, result.Err = ParseWithOptions(ctx, result.Format, job.Path, r.Options)
	result.Duration = r.Clock.Since(start)
	r.Metrics.ObserveParse(result.Format, result.Duration, result.Err)

	if result.Err != nil {
		util.LogSimpleErr(nil, fmt.Sprintf("Failed to parse %s product %s", result.Format, job.Path), result.Err)
	} else {
		util.LogDebug(nil, fmt.Sprintf("Parsed %s product %s in %s", result.Format, job.Path, result.Duration))
	}
	return result
}
