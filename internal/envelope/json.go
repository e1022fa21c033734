package envelope

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

type jsonResponse struct {
	Response *struct {
		Header struct {
			ResultCode flexString `json:"resultCode"`
			ResultMsg  flexString `json:"resultMsg"`
		} `json:"header"`
		Body struct {
			NumOfRows  flexString      `json:"numOfRows"`
			PageNo     flexString      `json:"pageNo"`
			TotalCount flexString      `json:"totalCount"`
			Items      json.RawMessage `json:"items"`
		} `json:"body"`
	} `json:"response"`
}

// flexString accepts a JSON string, number or null
type flexString string

func (s *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*s = ""
	case len(b) > 0 && b[0] == '"':
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = flexString(v)
	default:
		*s = flexString(b)
	}
	return nil
}

func decodeJSON(body []byte) (*Envelope, error) {
	var doc jsonResponse
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnrecognized, err)
	}
	if doc.Response == nil {
		return nil, fmt.Errorf("%w: missing response object", ErrUnrecognized)
	}

	r := doc.Response
	env := &Envelope{
		ResultCode: strings.TrimSpace(string(r.Header.ResultCode)),
		ResultMsg:  strings.TrimSpace(string(r.Header.ResultMsg)),
	}
	if err := env.setCounters(string(r.Body.PageNo), string(r.Body.NumOfRows), string(r.Body.TotalCount)); err != nil {
		return nil, err
	}

	items, err := decodeJSONItems(r.Body.Items)
	if err != nil {
		return nil, err
	}
	env.Items = items
	return env, nil
}

// decodeJSONItems handles every shape the portal uses for items:
// absent, null, "", {"item": {...}} and {"item": [...]}.
func decodeJSONItems(raw json.RawMessage) ([]Record, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return []Record{}, nil
	}

	var wrapper struct {
		Item json.RawMessage `json:"item"`
	}
	if err := json.Unmarshal(raw, &wrapper); err != nil {
		return nil, fmt.Errorf("%w: items: %v", ErrUnrecognized, err)
	}

	item := bytes.TrimSpace(wrapper.Item)
	switch {
	case len(item) == 0 || bytes.Equal(item, []byte("null")):
		return []Record{}, nil
	case item[0] == '[':
		var list []json.RawMessage
		if err := json.Unmarshal(item, &list); err != nil {
			return nil, fmt.Errorf("%w: item list: %v", ErrUnrecognized, err)
		}
		records := make([]Record, 0, len(list))
		for i, elem := range list {
			rec, err := decodeJSONRecord(elem)
			if err != nil {
				return nil, fmt.Errorf("item %d: %w", i, err)
			}
			records = append(records, rec)
		}
		return records, nil
	case item[0] == '{':
		rec, err := decodeJSONRecord(item)
		if err != nil {
			return nil, err
		}
		return []Record{rec}, nil
	default:
		return nil, fmt.Errorf("%w: item is %s", ErrUnrecognized, snippet(item))
	}
}

// decodeJSONRecord reads one flat object, keeping field order.
// null fields are treated as absent; numbers and booleans keep their literal text.
func decodeJSONRecord(raw json.RawMessage) (Record, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	rec := Record{values: make(map[string]string)}
	if tok, err := dec.Token(); err != nil || tok != json.Delim('{') {
		return rec, fmt.Errorf("%w: item is not an object", ErrUnrecognized)
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return rec, fmt.Errorf("%w: %v", ErrUnrecognized, err)
		}
		key, ok := tok.(string)
		if !ok {
			return rec, fmt.Errorf("%w: unexpected key %v", ErrUnrecognized, tok)
		}

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return rec, fmt.Errorf("%w: field %s: %v", ErrUnrecognized, key, err)
		}
		value = bytes.TrimSpace(value)

		switch {
		case bytes.Equal(value, []byte("null")):
			continue
		case len(value) > 0 && value[0] == '"':
			var s string
			if err := json.Unmarshal(value, &s); err != nil {
				return rec, fmt.Errorf("%w: field %s: %v", ErrUnrecognized, key, err)
			}
			rec.Set(key, s)
		default:
			rec.Set(key, string(value))
		}
	}
	return rec, nil
}
