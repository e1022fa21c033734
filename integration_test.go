package main

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"publicdatareader/internal/config"
	"publicdatareader/internal/coordinator"
	"publicdatareader/internal/fetcher"
	"publicdatareader/internal/registry"
	"publicdatareader/internal/sink"
	"publicdatareader/internal/testutil"
)

func testConfig(rtmsURL, bldrgstURL string) *config.Config {
	return &config.Config{
		ServiceKey:     "test_service_key",
		RTMSBaseURL:    rtmsURL,
		BldRgstBaseURL: bldrgstURL,
		NumOfRows:      100,
		PageWait:       time.Millisecond,
		Translate:      true,
		LogLevel:       "debug",
		Concurrency:    1,
		Output:         config.OutputConfig{Format: "csv"},
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// TestIntegration_AllFetchers tests the full flow with both services using mock HTTP servers
func TestIntegration_AllFetchers(t *testing.T) {
	rtmsServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		ym := q.Get("DEAL_YMD")
		w.Header().Set("Content-Type", "application/xml")
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, testutil.SuccessXML(testutil.Page{PageNo: 1, NumOfRows: 100, TotalCount: 1, Items: []testutil.Item{
			{"거래금액", "82,500", "년", ym[:4], "월", ym[4:], "지역코드", q.Get("LAWD_CD"), "전용면적", "84.97"},
		}}))
	}))
	defer rtmsServer.Close()

	bldrgstServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page, _ := strconv.Atoi(r.URL.Query().Get("pageNo"))
		w.Header().Set("Content-Type", "application/xml")
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, testutil.SuccessXML(testutil.Page{PageNo: page, NumOfRows: 1, TotalCount: 2, Items: []testutil.Item{
			{"mgmBldrgstPk", fmt.Sprintf("pk-%d", page), "bldNm", "청운빌딩", "hhldCnt", "10"},
		}}))
	}))
	defer bldrgstServer.Close()

	cfg := testConfig(rtmsServer.URL, bldrgstServer.URL)
	cfg.Transactions = []config.TransactionQuery{
		{PropertyType: "아파트", TradeType: "매매", LawdCode: "11110", Start: "202301", End: "202303"},
		{PropertyType: "오피스텔", TradeType: "전월세", LawdCode: "11680", Period: "202305"},
	}
	cfg.Ledgers = []config.LedgerQuery{
		{LedgerType: "표제부", SigunguCode: "11110", BdongCode: "10100", Bun: "1"},
	}

	client, err := newClient(cfg, discardLogger())
	if err != nil {
		t.Fatalf("newClient() failed: %v", err)
	}

	fetchers, err := buildFetchers(cfg, client)
	if err != nil {
		t.Fatalf("buildFetchers() failed: %v", err)
	}
	if len(fetchers) != 3 {
		t.Fatalf("len(fetchers) = %d, want 3", len(fetchers))
	}

	var buf bytes.Buffer
	coord := coordinator.New(fetchers, sink.NewStream(&buf, sink.EncodeCSV))
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	summary, err := coord.Run(ctx)
	if err != nil {
		t.Fatalf("coordinator.Run() failed: %v", err)
	}
	if summary.Failed != 0 {
		for _, r := range summary.Results {
			if r.Error != nil {
				t.Errorf("%s: %v", r.Key, r.Error)
			}
		}
	}

	wantRows := []int{3, 1, 2}
	for i, r := range summary.Results {
		if r.Table == nil {
			continue
		}
		if r.Table.Len() != wantRows[i] {
			t.Errorf("%s rows = %d, want %d", r.Key, r.Table.Len(), wantRows[i])
		}
	}

	label, _ := registry.Label("bldNm")
	if !strings.Contains(buf.String(), label) {
		t.Errorf("CSV output missing Korean header %q", label)
	}
}

// TestIntegration_ConcurrentFetching tests that independent queries run concurrently
func TestIntegration_ConcurrentFetching(t *testing.T) {
	// Create a server that introduces delays
	slowServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Each request takes 100ms
		time.Sleep(100 * time.Millisecond)

		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, testutil.SuccessXML(testutil.Page{PageNo: 1, NumOfRows: 100}))
	}))
	defer slowServer.Close()

	cfg := testConfig(slowServer.URL, slowServer.URL)
	cfg.Concurrency = 5
	for i := 0; i < 5; i++ {
		cfg.Transactions = append(cfg.Transactions, config.TransactionQuery{
			PropertyType: "아파트", TradeType: "매매", LawdCode: fmt.Sprintf("1111%d", i), Period: "202301",
		})
	}

	client, err := newClient(cfg, discardLogger())
	if err != nil {
		t.Fatalf("newClient() failed: %v", err)
	}
	fetchers, err := buildFetchers(cfg, client)
	if err != nil {
		t.Fatalf("buildFetchers() failed: %v", err)
	}

	coord := coordinator.New(fetchers, sink.NewStream(&bytes.Buffer{}, sink.EncodeCSV),
		coordinator.WithConcurrency(cfg.Concurrency))

	start := time.Now()
	summary, err := coord.Run(context.Background())
	duration := time.Since(start)

	if err != nil {
		t.Fatalf("coordinator.Run() failed: %v", err)
	}
	if summary.Succeeded != 5 {
		t.Errorf("Succeeded = %d, want 5", summary.Succeeded)
	}

	// If fetchers ran sequentially, it would take 500ms (5 * 100ms)
	if duration > 300*time.Millisecond {
		t.Errorf("Fetchers likely ran sequentially. Duration: %v (expected < 300ms)", duration)
	}
}

// TestIntegration_PartialFailures tests that one failing query does not stop the others
func TestIntegration_PartialFailures(t *testing.T) {
	var requestCount atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestCount.Add(1)
		w.WriteHeader(http.StatusOK)
		if r.URL.Query().Get("LAWD_CD") == "99999" {
			fmt.Fprint(w, testutil.ErrorXML("10", "INVALID REQUEST PARAMETER ERROR."))
			return
		}
		fmt.Fprint(w, testutil.SuccessXML(testutil.Page{PageNo: 1, NumOfRows: 100, TotalCount: 1, Items: []testutil.Item{
			{"지역코드", r.URL.Query().Get("LAWD_CD"), "년", "2023", "월", "1"},
		}}))
	}))
	defer server.Close()

	cfg := testConfig(server.URL, server.URL)
	cfg.Transactions = []config.TransactionQuery{
		{PropertyType: "아파트", TradeType: "매매", LawdCode: "11110", Period: "202301"},
		{PropertyType: "아파트", TradeType: "매매", LawdCode: "99999", Start: "202301", End: "202306"},
		{PropertyType: "토지", TradeType: "매매", LawdCode: "11680", Period: "202301"},
	}

	client, err := newClient(cfg, discardLogger())
	if err != nil {
		t.Fatalf("newClient() failed: %v", err)
	}
	fetchers, err := buildFetchers(cfg, client)
	if err != nil {
		t.Fatalf("buildFetchers() failed: %v", err)
	}

	summary, err := coordinator.New(fetchers, sink.NewStream(&bytes.Buffer{}, sink.EncodeJSON)).Run(context.Background())
	if err != nil {
		t.Fatalf("coordinator.Run() failed: %v", err)
	}

	if summary.Succeeded != 2 || summary.Failed != 1 {
		t.Errorf("summary = %d ok / %d failed, want 2 / 1", summary.Succeeded, summary.Failed)
	}
	if !fetcher.IsType(summary.Results[1].Error, fetcher.ErrorTypeUpstream) {
		t.Errorf("Results[1].Error = %v, want upstream error", summary.Results[1].Error)
	}
	// The failing range stops at its first month
	if got := requestCount.Load(); got != 3 {
		t.Errorf("requests = %d, want 3", got)
	}
}

func TestIntegration_SQLiteOutput(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, testutil.SuccessXML(testutil.Page{PageNo: 1, NumOfRows: 100, TotalCount: 2, Items: []testutil.Item{
			{"mgmBldrgstPk", "1", "bldNm", "A"},
			{"mgmBldrgstPk", "2", "bldNm", "B"},
		}}))
	}))
	defer server.Close()

	cfg := testConfig(server.URL, server.URL)
	cfg.Output = config.OutputConfig{Format: "sqlite", Path: filepath.Join(t.TempDir(), "portal.db")}
	cfg.Ledgers = []config.LedgerQuery{{LedgerType: "title", SigunguCode: "11110", BdongCode: "10100"}}

	client, err := newClient(cfg, discardLogger())
	if err != nil {
		t.Fatalf("newClient() failed: %v", err)
	}
	fetchers, err := buildFetchers(cfg, client)
	if err != nil {
		t.Fatalf("buildFetchers() failed: %v", err)
	}

	out, err := sink.Open(cfg.Output.Format, cfg.Output.Path)
	if err != nil {
		t.Fatalf("sink.Open() failed: %v", err)
	}
	db := out.(*sink.SQLite)
	defer db.Close()

	if _, err := coordinator.New(fetchers, out).Run(context.Background()); err != nil {
		t.Fatalf("coordinator.Run() failed: %v", err)
	}

	var rows int
	if err := db.Conn().QueryRow(`SELECT row_count FROM datasets WHERE key = ?`, fetchers[0].Key()).Scan(&rows); err != nil {
		t.Fatalf("query dataset: %v", err)
	}
	if rows != 2 {
		t.Errorf("row_count = %d, want 2", rows)
	}
}

func TestBuildFetchers_Errors(t *testing.T) {
	tests := []struct {
		name string
		cfg  func(*config.Config)
	}{
		{
			name: "no queries",
			cfg:  func(c *config.Config) {},
		},
		{
			name: "unknown trade type",
			cfg: func(c *config.Config) {
				c.Transactions = []config.TransactionQuery{{PropertyType: "아파트", TradeType: "경매", LawdCode: "11110", Period: "202301"}}
			},
		},
		{
			name: "bad params",
			cfg: func(c *config.Config) {
				c.Ledgers = []config.LedgerQuery{{LedgerType: "title", SigunguCode: "11110", BdongCode: "10100", Params: []string{"oops"}}}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig("", "")
			tt.cfg(cfg)
			client, err := newClient(cfg, discardLogger())
			if err != nil {
				t.Fatalf("newClient() failed: %v", err)
			}
			if _, err := buildFetchers(cfg, client); err == nil {
				t.Error("buildFetchers() expected error, got nil")
			}
		})
	}
}

func TestPrintCatalog(t *testing.T) {
	var buf bytes.Buffer
	if err := printCatalog(&buf); err != nil {
		t.Fatalf("printCatalog() failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	want := 1 + len(registry.Transactions()) + len(registry.Ledgers())
	if len(lines) != want {
		t.Errorf("printCatalog() printed %d lines, want %d", len(lines), want)
	}
	for _, s := range []string{"apt_trade", "getBrTitleInfo", "표제부"} {
		if !strings.Contains(buf.String(), s) {
			t.Errorf("catalog missing %q", s)
		}
	}
}

func TestCheckEndpoints(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if strings.HasSuffix(r.URL.Path, "/getBrJijiguInfo") {
			fmt.Fprint(w, testutil.GatewayErrorXML("12", "NO_OPENAPI_SERVICE_ERROR"))
			return
		}
		if r.URL.Query().Get("numOfRows") != "1" {
			t.Errorf("numOfRows = %q, want 1", r.URL.Query().Get("numOfRows"))
		}
		fmt.Fprint(w, testutil.SuccessXML(testutil.Page{PageNo: 1, NumOfRows: 1}))
	}))
	defer server.Close()

	cfg := testConfig(server.URL, server.URL)
	client, err := newClient(cfg, discardLogger())
	if err != nil {
		t.Fatalf("newClient() failed: %v", err)
	}

	unhealthy := checkEndpoints(context.Background(), client, discardLogger(), time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC))
	if unhealthy != 1 {
		t.Errorf("checkEndpoints() = %d unhealthy, want 1", unhealthy)
	}
}

func TestNewLogger_Level(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "warn")
	logger.Info("hidden")
	logger.Warn("shown")

	if strings.Contains(buf.String(), "hidden") {
		t.Error("info message logged at warn level")
	}
	if !strings.Contains(buf.String(), "shown") {
		t.Error("warn message not logged")
	}
}
