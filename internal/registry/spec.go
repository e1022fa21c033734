package registry

import (
	"fmt"
	"maps"
	"slices"
	"sort"

	"publicdatareader/internal/fetcher"
	"publicdatareader/internal/ratelimit"
	"publicdatareader/internal/table"
)

// Family groups endpoints served by the same upstream service
type Family string

const (
	// FamilyTransaction is the MOLIT real-estate transaction price service (RTMSOBJSvc)
	FamilyTransaction Family = "rtms"
	// FamilyBuildingLedger is the MOLIT building registry service (BldRgstService_v2)
	FamilyBuildingLedger Family = "bldrgst"
)

// API returns the rate limit bucket the family's requests are charged to
func (f Family) API() ratelimit.API {
	switch f {
	case FamilyBuildingLedger:
		return ratelimit.APIBuildingLedger
	default:
		return ratelimit.APITransaction
	}
}

// EndpointSpec is the static description of one endpoint: where it lives,
// which columns its items carry and how those columns are typed and labeled.
type EndpointSpec struct {
	Family      Family
	Category    string
	SubCategory string
	// Slug is an ASCII identifier used in keys and file names
	Slug string
	URL  string

	ExpectedColumns []string
	IntegerColumns  map[string]bool
	FloatColumns    map[string]bool
	// RequiredColumns must be present in every raw record
	RequiredColumns map[string]bool
	// Labels maps field codes to human-readable headers
	Labels map[string]string
}

// ColumnType returns how the named column is typed after normalization
func (s EndpointSpec) ColumnType(name string) table.ColumnType {
	switch {
	case s.IntegerColumns[name]:
		return table.TypeInteger
	case s.FloatColumns[name]:
		return table.TypeFloat
	default:
		return table.TypeText
	}
}

// Name returns a short human description such as "아파트 매매"
func (s EndpointSpec) Name() string {
	if s.SubCategory == "" {
		return s.Category
	}
	return s.Category + " " + s.SubCategory
}

func (s EndpointSpec) clone() EndpointSpec {
	s.ExpectedColumns = slices.Clone(s.ExpectedColumns)
	s.IntegerColumns = maps.Clone(s.IntegerColumns)
	s.FloatColumns = maps.Clone(s.FloatColumns)
	s.RequiredColumns = maps.Clone(s.RequiredColumns)
	s.Labels = maps.Clone(s.Labels)
	return s
}

// endpoint is the compact literal form used by the tables in this package
type endpoint struct {
	slug    string
	url     string
	columns []string
}

// Resolve returns the transaction endpoint for a property type and trade type.
// Both arguments accept either the Korean name (아파트, 매매) or the slug (apt, trade).
func Resolve(category, subCategory string) (EndpointSpec, error) {
	slug := slugFor(propertySlugs, category) + "_" + slugFor(tradeSlugs, subCategory)
	for _, s := range transactionSpecs {
		if s.Slug == slug {
			return s.clone(), nil
		}
	}
	return EndpointSpec{}, fetcher.NewConfigurationError(
		fmt.Sprintf("unknown property type %q and trade type %q: check the property type and trade type", category, subCategory))
}

// ResolveLedger returns the building ledger endpoint for a ledger type.
// The ledger type accepts either the Korean name (표제부) or the slug (title).
func ResolveLedger(ledgerType string) (EndpointSpec, error) {
	for _, s := range ledgerSpecs {
		if s.Category == ledgerType || s.Slug == ledgerType {
			return s.clone(), nil
		}
	}
	return EndpointSpec{}, fetcher.NewConfigurationError(
		fmt.Sprintf("unknown ledger type %q: check the ledger type", ledgerType))
}

// Transactions returns every transaction endpoint, sorted by slug
func Transactions() []EndpointSpec {
	return sortedClones(transactionSpecs)
}

// Ledgers returns every building ledger endpoint, sorted by slug
func Ledgers() []EndpointSpec {
	return sortedClones(ledgerSpecs)
}

func sortedClones(specs []EndpointSpec) []EndpointSpec {
	out := make([]EndpointSpec, len(specs))
	for i, s := range specs {
		out[i] = s.clone()
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	return out
}

func slugFor(names map[string]string, v string) string {
	if slug, ok := names[v]; ok {
		return slug
	}
	return v
}

// subset keeps the members of set that are also columns, so each spec only
// declares coercions for fields its endpoint actually returns
func subset(columns []string, set []string) map[string]bool {
	out := make(map[string]bool)
	for _, c := range set {
		if slices.Contains(columns, c) {
			out[c] = true
		}
	}
	return out
}
