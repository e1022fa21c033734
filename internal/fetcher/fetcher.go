package fetcher

import (
	"context"

	"publicdatareader/internal/table"
)

// Fetcher is the core interface that all data fetchers must implement.
// Each fetcher knows how to retrieve one configured query against a
// public-data endpoint and provides a stable key for naming its output.
type Fetcher interface {
	// Fetch retrieves every record of the query and returns them as a
	// typed table. Returns an error if any request or conversion fails;
	// no partial table is returned.
	Fetch(ctx context.Context) (*table.Table, error)

	// Key returns a hierarchical key for this fetcher.
	// Format: fetcher:{service}:{selector}:{locality}[:{period}]
	// Examples:
	//   - fetcher:rtms:apt_trade:11110:202301
	//   - fetcher:rtms:apt_rent:11110:202301-202303
	//   - fetcher:bldrgst:title:1111010100
	Key() string
}
