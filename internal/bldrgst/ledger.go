package bldrgst

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"publicdatareader/internal/fetcher"
	"publicdatareader/internal/normalize"
	"publicdatareader/internal/portal"
	"publicdatareader/internal/registry"
	"publicdatareader/internal/table"
)

var (
	regionCodePattern = regexp.MustCompile(`^\d{5}$`)
	lotNumberPattern  = regexp.MustCompile(`^\d{1,4}$`)
)

// Query selects building ledger records of one ledger type for a legal
// dong, optionally narrowed to a lot number (bun) and sub-number (ji)
type Query struct {
	// LedgerType is a Korean name (표제부) or slug (title)
	LedgerType  string
	SigunguCode string
	BdongCode   string
	Bun         string
	Ji          string

	// PageWait is the pause before each page after the first.
	// Zero disables the pause; callers usually pass portal.DefaultPageWait.
	PageWait time.Duration
	// Params are passed through to the service, overriding defaults
	Params map[string]any
	// KeepCodes leaves columns labeled with field codes instead of Korean headers
	KeepCodes bool
}

// LedgerFetcher fetches building registry ledgers
type LedgerFetcher struct {
	client *portal.Client
	query  Query
	spec   registry.EndpointSpec
}

// NewLedgerFetcher validates query and creates a fetcher for it.
// Bun and Ji are zero-padded to four digits.
func NewLedgerFetcher(client *portal.Client, query Query) (*LedgerFetcher, error) {
	spec, err := registry.ResolveLedger(query.LedgerType)
	if err != nil {
		return nil, err
	}

	if !regionCodePattern.MatchString(query.SigunguCode) {
		return nil, fetcher.NewConfigurationError(
			fmt.Sprintf("invalid sigungu code %q: want 5 digits", query.SigunguCode))
	}
	if !regionCodePattern.MatchString(query.BdongCode) {
		return nil, fetcher.NewConfigurationError(
			fmt.Sprintf("invalid bdong code %q: want 5 digits", query.BdongCode))
	}
	if query.Bun, err = padLot("bun", query.Bun); err != nil {
		return nil, err
	}
	if query.Ji, err = padLot("ji", query.Ji); err != nil {
		return nil, err
	}
	if query.PageWait < 0 {
		return nil, fetcher.NewConfigurationError(
			fmt.Sprintf("invalid page wait %v: must not be negative", query.PageWait))
	}

	return &LedgerFetcher{
		client: client,
		query:  query,
		spec:   spec,
	}, nil
}

// Spec returns the endpoint this fetcher queries
func (f *LedgerFetcher) Spec() registry.EndpointSpec {
	return f.spec
}

// Fetch retrieves every page of the ledger as one table
func (f *LedgerFetcher) Fetch(ctx context.Context) (*table.Table, error) {
	params := f.client.BaseParams()
	params[portal.ParamSigungu] = f.query.SigunguCode
	params[portal.ParamBdong] = f.query.BdongCode
	if f.query.Bun != "" {
		params[portal.ParamBun] = f.query.Bun
	}
	if f.query.Ji != "" {
		params[portal.ParamJi] = f.query.Ji
	}
	if err := params.Merge(f.query.Params); err != nil {
		return nil, err
	}

	records, err := f.client.FetchPages(ctx, f.spec, params, f.query.PageWait)
	if err != nil {
		return nil, fmt.Errorf("%s in %s%s: %w", f.spec.Name(), f.query.SigunguCode, f.query.BdongCode, err)
	}

	return normalize.Normalize(records, f.spec, !f.query.KeepCodes)
}

// Key returns the result key for this fetcher,
// e.g. fetcher:bldrgst:title:1111010100 or fetcher:bldrgst:title:1111010100:0012-0003
func (f *LedgerFetcher) Key() string {
	key := fmt.Sprintf("fetcher:%s:%s:%s%s", f.spec.Family, f.spec.Slug, f.query.SigunguCode, f.query.BdongCode)
	if f.query.Bun != "" || f.query.Ji != "" {
		key += ":" + strings.Trim(f.query.Bun+"-"+f.query.Ji, "-")
	}
	return key
}

func padLot(name, v string) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", nil
	}
	if !lotNumberPattern.MatchString(v) {
		return "", fetcher.NewConfigurationError(
			fmt.Sprintf("invalid %s %q: want up to 4 digits", name, v))
	}
	return strings.Repeat("0", 4-len(v)) + v, nil
}
