package fetcher

import (
	"time"

	"publicdatareader/internal/table"
)

// Result represents the outcome of a fetch operation.
// It's sent through a channel from worker goroutines to the
// coordinator that writes and reports the results.
type Result struct {
	// Key identifies the query that produced this result
	Key string

	// Table holds the fetched rows.
	// If Error is not nil, Table is nil.
	Table *table.Table

	// Elapsed is the wall time spent in Fetch
	Elapsed time.Duration

	// Error contains any error that occurred during the fetch operation.
	Error error
}
