package coordinator

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sourcegraph/conc/pool"

	"publicdatareader/internal/fetcher"
	"publicdatareader/internal/sink"
)

// Coordinator runs independent fetchers with a bounded number of workers
// and hands every table to a sink
type Coordinator struct {
	fetchers    []fetcher.Fetcher
	sink        sink.Sink
	concurrency int
	logger      *slog.Logger
}

// Option configures a Coordinator
type Option func(*Coordinator)

// WithConcurrency sets how many fetchers run at once. The default of 1
// runs queries strictly one after another.
func WithConcurrency(n int) Option {
	return func(c *Coordinator) {
		if n > 0 {
			c.concurrency = n
		}
	}
}

// WithLogger sets the logger for per-query outcomes
func WithLogger(logger *slog.Logger) Option {
	return func(c *Coordinator) { c.logger = logger }
}

// Summary reports the outcome of a run
type Summary struct {
	// Results are in the order the fetchers were given
	Results   []fetcher.Result
	Succeeded int
	Failed    int
}

// New creates a new Coordinator with the given fetchers writing to out
func New(fetchers []fetcher.Fetcher, out sink.Sink, opts ...Option) *Coordinator {
	c := &Coordinator{
		fetchers:    fetchers,
		sink:        out,
		concurrency: 1,
		logger:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type indexedResult struct {
	index int
	fetcher.Result
}

// Run executes all fetchers and writes each successful table to the sink
// as soon as it arrives. A failing fetcher or sink write is recorded in
// its Result and does not stop the others.
func (c *Coordinator) Run(ctx context.Context) (Summary, error) {
	if len(c.fetchers) == 0 {
		return Summary{}, fmt.Errorf("no fetchers configured")
	}

	resultChan := make(chan indexedResult, len(c.fetchers))

	p := pool.New().WithMaxGoroutines(c.concurrency)
	for i, f := range c.fetchers {
		p.Go(func() {
			start := time.Now()
			tbl, err := f.Fetch(ctx)
			resultChan <- indexedResult{
				index: i,
				Result: fetcher.Result{
					Key:     f.Key(),
					Table:   tbl,
					Elapsed: time.Since(start),
					Error:   err,
				},
			}
		})
	}

	go func() {
		p.Wait()
		close(resultChan)
	}()

	summary := Summary{Results: make([]fetcher.Result, len(c.fetchers))}
	for r := range resultChan {
		if r.Error == nil {
			if err := c.sink.Write(ctx, r.Key, r.Table); err != nil {
				r.Error = fmt.Errorf("write %s: %w", r.Key, err)
			}
		}

		if r.Error != nil {
			r.Table = nil
			summary.Failed++
			c.logger.Error("query failed", "key", r.Key, "elapsed", r.Elapsed, "error", r.Error)
		} else {
			summary.Succeeded++
			c.logger.Info("query complete", "key", r.Key, "rows", r.Table.Len(), "elapsed", r.Elapsed)
		}
		summary.Results[r.index] = r.Result
	}

	return summary, nil
}
