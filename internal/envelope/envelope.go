package envelope

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// SuccessCode is the result code the portal uses for a successful call
const SuccessCode = "00"

// ErrUnrecognized is returned when a body is neither a result envelope
// nor a gateway rejection
var ErrUnrecognized = errors.New("unrecognized response envelope")

// Envelope is a decoded portal response
type Envelope struct {
	ResultCode string
	ResultMsg  string
	PageNo     int
	NumOfRows  int
	TotalCount int
	Items      []Record
}

// OK reports whether the envelope carries the success result code
func (e *Envelope) OK() bool {
	return e.ResultCode == SuccessCode
}

// Pages returns how many pages of NumOfRows hold TotalCount records.
// It is at least 1 so the page already fetched is always counted.
func (e *Envelope) Pages() int {
	if e.NumOfRows <= 0 || e.TotalCount <= e.NumOfRows {
		return 1
	}
	return (e.TotalCount + e.NumOfRows - 1) / e.NumOfRows
}

// Decode parses an XML or JSON response body.
//
// Gateway rejections (OpenAPI_ServiceResponse) decode into an envelope
// whose ResultCode is the gateway reason code, so callers handle both
// shapes through OK.
func Decode(body []byte) (*Envelope, error) {
	trimmed := bytes.TrimSpace(body)
	trimmed = bytes.TrimPrefix(trimmed, []byte("\xef\xbb\xbf"))
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty body", ErrUnrecognized)
	}

	switch trimmed[0] {
	case '<':
		return decodeXML(trimmed)
	case '{':
		return decodeJSON(trimmed)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnrecognized, snippet(trimmed))
	}
}

// atoi parses a counter field; blank means zero
func atoi(field, s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", field, s, err)
	}
	return n, nil
}

func (e *Envelope) setCounters(pageNo, numOfRows, totalCount string) error {
	var err error
	if e.PageNo, err = atoi("pageNo", pageNo); err != nil {
		return err
	}
	if e.NumOfRows, err = atoi("numOfRows", numOfRows); err != nil {
		return err
	}
	if e.TotalCount, err = atoi("totalCount", totalCount); err != nil {
		return err
	}
	return nil
}

func snippet(b []byte) string {
	const limit = 120
	s := string(b)
	if len(s) > limit {
		s = s[:limit] + "..."
	}
	return strconv.Quote(s)
}
