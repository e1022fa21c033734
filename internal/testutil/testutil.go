package testutil

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"strings"
	"sync"
	"time"

	"publicdatareader/internal/fetcher"
	"publicdatareader/internal/table"
)

// MockFetcher is a mock implementation of the Fetcher interface for testing
type MockFetcher struct {
	FetchFunc func(ctx context.Context) (*table.Table, error)
	KeyFunc   func() string
}

// Fetch implements the Fetcher interface
func (m *MockFetcher) Fetch(ctx context.Context) (*table.Table, error) {
	if m.FetchFunc != nil {
		return m.FetchFunc(ctx)
	}
	return table.New(nil), nil
}

// Key implements the Fetcher interface
func (m *MockFetcher) Key() string {
	if m.KeyFunc != nil {
		return m.KeyFunc()
	}
	return "mock:key"
}

// NewMockFetcher creates a simple mock fetcher with predefined values
func NewMockFetcher(key string, value *table.Table, err error) fetcher.Fetcher {
	return &MockFetcher{
		FetchFunc: func(ctx context.Context) (*table.Table, error) {
			return value, err
		},
		KeyFunc: func() string {
			return key
		},
	}
}

// SampleTable builds a two-column table with one row per value
func SampleTable(values ...int64) *table.Table {
	t := table.New([]table.Column{
		{Name: "name", Label: "name", Type: table.TypeText},
		{Name: "amount", Label: "amount", Type: table.TypeInteger},
	})
	for i, v := range values {
		t.Rows = append(t.Rows, []any{fmt.Sprintf("row%d", i+1), v})
	}
	return t
}

// Item is one response item given as alternating field code, value pairs
type Item []string

// Page describes the body of a successful response
type Page struct {
	PageNo     int
	NumOfRows  int
	TotalCount int
	Items      []Item
}

// ResponseXML renders a portal response envelope
func ResponseXML(code, msg string, page Page) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	b.WriteString("<response><header>")
	writeElem(&b, "resultCode", code)
	writeElem(&b, "resultMsg", msg)
	b.WriteString("</header><body><items>")
	for _, item := range page.Items {
		b.WriteString("<item>")
		for i := 0; i+1 < len(item); i += 2 {
			writeElem(&b, item[i], item[i+1])
		}
		b.WriteString("</item>")
	}
	b.WriteString("</items>")
	writeElem(&b, "numOfRows", fmt.Sprint(page.NumOfRows))
	writeElem(&b, "pageNo", fmt.Sprint(page.PageNo))
	writeElem(&b, "totalCount", fmt.Sprint(page.TotalCount))
	b.WriteString("</body></response>")
	return b.String()
}

// SuccessXML renders a "00" envelope holding items
func SuccessXML(page Page) string {
	return ResponseXML("00", "NORMAL SERVICE.", page)
}

// ErrorXML renders an envelope with a failing result code and no body
func ErrorXML(code, msg string) string {
	var b strings.Builder
	b.WriteString("<response><header>")
	writeElem(&b, "resultCode", code)
	writeElem(&b, "resultMsg", msg)
	b.WriteString("</header></response>")
	return b.String()
}

// GatewayErrorXML renders the rejection envelope sent by the API gateway
func GatewayErrorXML(reasonCode, authMsg string) string {
	var b strings.Builder
	b.WriteString("<OpenAPI_ServiceResponse><cmmMsgHeader>")
	writeElem(&b, "errMsg", "SERVICE ERROR")
	writeElem(&b, "returnAuthMsg", authMsg)
	writeElem(&b, "returnReasonCode", reasonCode)
	b.WriteString("</cmmMsgHeader></OpenAPI_ServiceResponse>")
	return b.String()
}

func writeElem(b *strings.Builder, name, value string) {
	var esc bytes.Buffer
	_ = xml.EscapeText(&esc, []byte(value))
	fmt.Fprintf(b, "<%s>%s</%s>", name, esc.String(), name)
}

// Sleeper records requested sleeps instead of blocking
type Sleeper struct {
	mu    sync.Mutex
	calls []time.Duration
}

// Sleep records d
func (s *Sleeper) Sleep(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, d)
}

// Calls returns every recorded duration in order
func (s *Sleeper) Calls() []time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]time.Duration, len(s.calls))
	copy(out, s.calls)
	return out
}
