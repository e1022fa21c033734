package portal

import (
	"fmt"
	"maps"
	"net/url"

	"github.com/spf13/cast"

	"publicdatareader/internal/fetcher"
)

// Query parameter names used by the portal services
const (
	ParamNumOfRows = "numOfRows"
	ParamPageNo    = "pageNo"
	ParamLawdCode  = "LAWD_CD"
	ParamDealYM    = "DEAL_YMD"
	ParamSigungu   = "sigunguCd"
	ParamBdong     = "bjdongCd"
	ParamBun       = "bun"
	ParamJi        = "ji"
)

// DefaultNumOfRows asks for every record of a period in a single page
const DefaultNumOfRows = 99999

// Params are the query parameters of one request
type Params map[string]string

// Clone returns an independent copy
func (p Params) Clone() Params {
	if p == nil {
		return Params{}
	}
	return maps.Clone(p)
}

// Merge stringifies and adds caller-supplied parameters, overriding existing ones.
func (p Params) Merge(extra map[string]any) error {
	for k, v := range extra {
		s, err := cast.ToStringE(v)
		if err != nil {
			return fetcher.NewConfigurationError(fmt.Sprintf("parameter %s: %v", k, err))
		}
		p[k] = s
	}
	return nil
}

// DecodeServiceKey undoes the URL encoding of keys copied from the portal
// ("Encoding" key). Keys that are already decoded come back unchanged;
// '+' is kept as is.
func DecodeServiceKey(key string) string {
	decoded, err := url.PathUnescape(key)
	if err != nil {
		return key
	}
	return decoded
}
