package rtms

import (
	"context"
	"fmt"
	"regexp"

	"publicdatareader/internal/envelope"
	"publicdatareader/internal/fetcher"
	"publicdatareader/internal/normalize"
	"publicdatareader/internal/portal"
	"publicdatareader/internal/registry"
	"publicdatareader/internal/table"
)

var lawdCodePattern = regexp.MustCompile(`^\d{5}$`)

// Query selects real-estate transactions of one property and trade type in
// one district, for a single month or an inclusive range of months
type Query struct {
	// PropertyType is a Korean name (아파트) or slug (apt)
	PropertyType string
	// TradeType is 매매/trade or 전월세/rent
	TradeType string
	// LawdCode is the 5-digit district code
	LawdCode string

	// Period is a single YYYYMM month; otherwise Start and End give an inclusive range
	Period string
	Start  string
	End    string

	// Params are passed through to the service, overriding defaults
	Params map[string]any
	// Translate relabels columns; transaction columns are already Korean
	Translate bool
}

// TransactionFetcher fetches transaction prices from the RTMS service
type TransactionFetcher struct {
	client *portal.Client
	query  Query
	spec   registry.EndpointSpec
}

// NewTransactionFetcher validates query and creates a fetcher for it
func NewTransactionFetcher(client *portal.Client, query Query) (*TransactionFetcher, error) {
	spec, err := registry.Resolve(query.PropertyType, query.TradeType)
	if err != nil {
		return nil, err
	}
	if !lawdCodePattern.MatchString(query.LawdCode) {
		return nil, fetcher.NewConfigurationError(
			fmt.Sprintf("invalid LAWD code %q: want 5 digits", query.LawdCode))
	}

	switch {
	case query.Period != "" && (query.Start != "" || query.End != ""):
		return nil, fetcher.NewConfigurationError("set either a period or a start and end period, not both")
	case query.Period != "":
		if _, err := portal.ExpandPeriods(query.Period, query.Period); err != nil {
			return nil, err
		}
	case query.Start != "" && query.End != "":
		if _, err := portal.ExpandPeriods(query.Start, query.End); err != nil {
			return nil, err
		}
	default:
		return nil, fetcher.NewConfigurationError("either a period or a start and end period is required")
	}

	return &TransactionFetcher{
		client: client,
		query:  query,
		spec:   spec,
	}, nil
}

// Spec returns the endpoint this fetcher queries
func (f *TransactionFetcher) Spec() registry.EndpointSpec {
	return f.spec
}

// Fetch retrieves every transaction of the selected months as one table
func (f *TransactionFetcher) Fetch(ctx context.Context) (*table.Table, error) {
	params := f.client.BaseParams()
	params[portal.ParamLawdCode] = f.query.LawdCode
	if err := params.Merge(f.query.Params); err != nil {
		return nil, err
	}

	var records []envelope.Record
	var err error
	if f.query.Period != "" {
		records, err = f.client.FetchPeriod(ctx, f.spec, params, f.query.Period)
	} else {
		records, err = f.client.FetchRange(ctx, f.spec, params, f.query.Start, f.query.End)
	}
	if err != nil {
		return nil, fmt.Errorf("%s %s in %s: %w", f.spec.Name(), f.period(), f.query.LawdCode, err)
	}

	return normalize.Normalize(records, f.spec, f.query.Translate)
}

// Key returns the result key for this fetcher,
// e.g. fetcher:rtms:apt_trade:11110:202301
func (f *TransactionFetcher) Key() string {
	return fmt.Sprintf("fetcher:%s:%s:%s:%s", f.spec.Family, f.spec.Slug, f.query.LawdCode, f.period())
}

func (f *TransactionFetcher) period() string {
	if f.query.Period != "" {
		return f.query.Period
	}
	if f.query.Start == f.query.End {
		return f.query.Start
	}
	return f.query.Start + "-" + f.query.End
}
