package catalog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/venicegeo/bf-satmeta/satmeta"
	"github.com/venicegeo/bf-satmeta/util"
)

// ProductWriter persists parsed products
type ProductWriter interface {
	SaveProducts(products []*Product) error
}

// JobStats summarizes one import job
type JobStats struct {
	Found    int
	Parsed   int
	Failed   int
	Started  time.Time
	Duration time.Duration
}

func (s JobStats) String() string {
	if s.Started.IsZero() {
		return "None"
	}
	return fmt.Sprintf("Started %s, took %s: %d found, %d parsed, %d failed",
		s.Started.Format(time.RFC3339), s.Duration, s.Found, s.Parsed, s.Failed)
}

// Importer manages the state for an import job.
type Importer struct {
	root   string
	runner *satmeta.Runner
	writer ProductWriter
	clock  clockwork.Clock

	mu       sync.Mutex
	previous JobStats
	running  bool
}

// NewImporter intializes a new importer of the products directly below root
func NewImporter(root string, runner *satmeta.Runner, writer ProductWriter, clock clockwork.Clock) *Importer {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Importer{root: root, runner: runner, writer: writer, clock: clock}
}

// FindProducts lists the entries of root whose names match a known format, skipping hidden ones
func FindProducts(root string) ([]satmeta.Job, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}
	var jobs []satmeta.Job
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		format, err := satmeta.DetectFormat(entry.Name())
		if err != nil {
			util.LogDebug(nil, fmt.Sprintf("Skipping %s: %v", entry.Name(), err))
			continue
		}
		jobs = append(jobs, satmeta.Job{Path: filepath.Join(root, entry.Name()), Format: format})
	}
	return jobs, nil
}

// Import parses every product below the root and saves those that parsed. Products that fail
// are counted and logged; only listing the root or saving can fail the job.
func (imp *Importer) Import(ctx context.Context) (JobStats, error) {
	imp.mu.Lock()
	if imp.running {
		imp.mu.Unlock()
		return JobStats{}, fmt.Errorf("an import of %s is already running", imp.root)
	}
	imp.running = true
	imp.mu.Unlock()

	stats := JobStats{Started: imp.clock.Now()}
	defer func() {
		imp.mu.Lock()
		imp.previous = stats
		imp.running = false
		imp.mu.Unlock()
	}()

	jobs, err := FindProducts(imp.root)
	if err != nil {
		return stats, err
	}
	stats.Found = len(jobs)

	var products []*Product
	for _, result := range imp.runner.Run(ctx, jobs) {
		if result.Err != nil {
			stats.Failed++
			continue
		}
		product, err := ProductFromRecord(result.Record, result.Path)
		if err != nil {
			util.LogSimpleErr(nil, "Failed to convert "+result.Path, err)
			stats.Failed++
			continue
		}
		products = append(products, product)
	}

	if len(products) > 0 {
		if err = imp.writer.SaveProducts(products); err != nil {
			stats.Duration = imp.clock.Since(stats.Started)
			return stats, err
		}
	}
	stats.Parsed = len(products)
	stats.Duration = imp.clock.Since(stats.Started)
	util.LogInfo(nil, "Import of "+imp.root+" done. "+stats.String())
	return stats, nil
}

// Status is a thread safe way to get information about the import operation.
func (imp *Importer) Status() (previous JobStats, running bool) {
	imp.mu.Lock()
	defer imp.mu.Unlock()
	return imp.previous, imp.running
}

// ImportWhile runs an import every interval, and whenever a value arrives on trigger, until ctx
// ends or trigger is closed. It blocks; an in-progress job is cancelled with ctx.
func (imp *Importer) ImportWhile(ctx context.Context, trigger <-chan struct{}, interval time.Duration) {
	util.LogInfo(nil, fmt.Sprintf("Import loop started with frequency %s", interval))
	timer := imp.clock.NewTimer(interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.Chan():
			util.LogInfo(nil, "Maximum time between imports elapsed.")
		case _, ok := <-trigger:
			if !ok {
				return
			}
			util.LogInfo(nil, "User requested import start.")
			if !timer.Stop() {
				// drain a tick that fired while we were waiting on trigger
				select {
				case <-timer.Chan():
				default:
				}
			}
		}

		if _, err := imp.Import(ctx); err != nil {
			util.LogSimpleErr(nil, "Import failed", err)
		}
		timer.Reset(interval)
	}
}
