package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/pflag"

	"publicdatareader/internal/bldrgst"
	"publicdatareader/internal/config"
	"publicdatareader/internal/coordinator"
	"publicdatareader/internal/fetcher"
	"publicdatareader/internal/portal"
	"publicdatareader/internal/ratelimit"
	"publicdatareader/internal/registry"
	"publicdatareader/internal/rtms"
	"publicdatareader/internal/sink"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run executes the command and returns the process exit code
func run(args []string) int {
	flags := config.Flags()
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		log.Printf("Failed to parse flags: %v", err)
		return 2
	}

	// Load configuration
	cfg, err := config.Load(flags)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := newLogger(os.Stderr, cfg.LogLevel)

	if cfg.List {
		if err := printCatalog(os.Stdout); err != nil {
			log.Fatalf("Failed to print catalog: %v", err)
		}
		return 0
	}

	// Create context with cancellation for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Warn("received interrupt signal, shutting down")
		cancel()
	}()

	client, err := newClient(cfg, logger)
	if err != nil {
		log.Printf("Failed to create client: %v", err)
		return 1
	}
	defer client.Close()

	if cfg.Check {
		if unhealthy := checkEndpoints(ctx, client, logger, time.Now()); unhealthy > 0 {
			logger.Error("endpoint check finished", "unhealthy", unhealthy)
			return 1
		}
		logger.Info("endpoint check finished", "unhealthy", 0)
		return 0
	}

	// Create fetchers dynamically from configuration
	fetchers, err := buildFetchers(cfg, client)
	if err != nil {
		log.Printf("Invalid query: %v", err)
		return 1
	}

	out, err := sink.Open(cfg.Output.Format, cfg.Output.Path)
	if err != nil {
		log.Printf("Failed to open output: %v", err)
		return 1
	}

	coord := coordinator.New(fetchers, out,
		coordinator.WithConcurrency(cfg.Concurrency),
		coordinator.WithLogger(logger))

	logger.Info("fetching public data", "queries", len(fetchers), "concurrency", cfg.Concurrency, "format", cfg.Output.Format)
	summary, err := coord.Run(ctx)
	if cerr := out.Close(); cerr != nil {
		logger.Error("failed to close output", "error", cerr)
	}
	if err != nil {
		logger.Error("coordinator failed", "error", err)
		return 1
	}

	logger.Info("all fetches completed", "succeeded", summary.Succeeded, "failed", summary.Failed)
	if summary.Failed > 0 {
		return 1
	}
	return 0
}

func newLogger(w io.Writer, level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

func newClient(cfg *config.Config, logger *slog.Logger) (*portal.Client, error) {
	return portal.NewClient(cfg.ServiceKey,
		portal.WithLogger(logger),
		portal.WithLimiter(ratelimit.New()),
		portal.WithNumOfRows(cfg.NumOfRows),
		portal.WithBaseURL(registry.FamilyTransaction, cfg.RTMSBaseURL),
		portal.WithBaseURL(registry.FamilyBuildingLedger, cfg.BldRgstBaseURL))
}

// buildFetchers turns the configured queries into fetchers, transactions first
func buildFetchers(cfg *config.Config, client *portal.Client) ([]fetcher.Fetcher, error) {
	var fetchers []fetcher.Fetcher

	for i, q := range cfg.Transactions {
		params, err := config.ParseParams(q.Params)
		if err != nil {
			return nil, fmt.Errorf("transactions[%d]: %w", i, err)
		}
		f, err := rtms.NewTransactionFetcher(client, rtms.Query{
			PropertyType: q.PropertyType,
			TradeType:    q.TradeType,
			LawdCode:     q.LawdCode,
			Period:       q.Period,
			Start:        q.Start,
			End:          q.End,
			Params:       params,
			Translate:    cfg.Translate,
		})
		if err != nil {
			return nil, fmt.Errorf("transactions[%d]: %w", i, err)
		}
		fetchers = append(fetchers, f)
	}

	for i, q := range cfg.Ledgers {
		params, err := config.ParseParams(q.Params)
		if err != nil {
			return nil, fmt.Errorf("ledgers[%d]: %w", i, err)
		}
		f, err := bldrgst.NewLedgerFetcher(client, bldrgst.Query{
			LedgerType:  q.LedgerType,
			SigunguCode: q.SigunguCode,
			BdongCode:   q.BdongCode,
			Bun:         q.Bun,
			Ji:          q.Ji,
			PageWait:    cfg.PageWait,
			Params:      params,
			KeepCodes:   !cfg.Translate,
		})
		if err != nil {
			return nil, fmt.Errorf("ledgers[%d]: %w", i, err)
		}
		fetchers = append(fetchers, f)
	}

	if len(fetchers) == 0 {
		return nil, fmt.Errorf("no transactions or ledgers configured")
	}
	return fetchers, nil
}

// printCatalog lists every registered endpoint
func printCatalog(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FAMILY\tCATEGORY\tSUB CATEGORY\tSLUG\tURL")
	for _, specs := range [][]registry.EndpointSpec{registry.Transactions(), registry.Ledgers()} {
		for _, s := range specs {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", s.Family, s.Category, s.SubCategory, s.Slug, s.URL)
		}
	}
	return tw.Flush()
}

// Sample localities probed by --check (Jongno-gu, Cheongun-dong)
const (
	checkLawdCode = "11110"
	checkBdong    = "10100"
)

// checkEndpoints probes every endpoint once and returns how many did not
// answer with the success code
func checkEndpoints(ctx context.Context, client *portal.Client, logger *slog.Logger, now time.Time) int {
	period := now.AddDate(0, -1, 0).Format("200601")
	unhealthy := 0

	specs := append(registry.Transactions(), registry.Ledgers()...)
	for _, spec := range specs {
		params := client.BaseParams()
		switch spec.Family {
		case registry.FamilyTransaction:
			params[portal.ParamLawdCode] = checkLawdCode
			params[portal.ParamDealYM] = period
		case registry.FamilyBuildingLedger:
			params[portal.ParamSigungu] = checkLawdCode
			params[portal.ParamBdong] = checkBdong
		}

		health, err := client.Check(ctx, spec, params)
		switch {
		case err != nil:
			unhealthy++
			logger.Error("endpoint unreachable", "endpoint", spec.Slug, "category", spec.Name(), "error", err)
		case !health.Healthy():
			unhealthy++
			logger.Warn("endpoint unhealthy", "endpoint", spec.Slug, "category", spec.Name(), "code", health.Code, "message", health.Message)
		default:
			logger.Info("endpoint healthy", "endpoint", spec.Slug, "category", spec.Name())
		}
	}
	return unhealthy
}
