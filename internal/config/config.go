package config

import (
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Output formats accepted by output.format
var Formats = []string{"table", "csv", "json", "yaml", "sqlite"}

var logLevels = []string{"debug", "info", "warn", "error"}

// TransactionQuery selects real-estate transactions to fetch.
type TransactionQuery struct {
	PropertyType string `mapstructure:"property_type"`
	TradeType    string `mapstructure:"trade_type"`
	LawdCode     string `mapstructure:"lawd_code"`
	Period       string `mapstructure:"period"`
	Start        string `mapstructure:"start"`
	End          string `mapstructure:"end"`
	// Params are key=value pairs passed through to the service
	Params []string `mapstructure:"params"`
}

// LedgerQuery selects building ledger records to fetch.
type LedgerQuery struct {
	LedgerType  string `mapstructure:"ledger_type"`
	SigunguCode string `mapstructure:"sigungu_code"`
	BdongCode   string `mapstructure:"bdong_code"`
	Bun         string `mapstructure:"bun"`
	Ji          string `mapstructure:"ji"`
	// Params are key=value pairs passed through to the service
	Params []string `mapstructure:"params"`
}

// OutputConfig selects where fetched tables are written.
type OutputConfig struct {
	Format string `mapstructure:"format"`
	// Path is a file or directory; empty means stdout for stream formats
	Path string `mapstructure:"path"`
}

// Config holds all configuration for the public data reader.
type Config struct {
	ServiceKey string `mapstructure:"service_key"`

	// Base URLs for API endpoints (configurable for testing and mirrors)
	RTMSBaseURL    string `mapstructure:"rtms_base_url"`
	BldRgstBaseURL string `mapstructure:"bldrgst_base_url"`

	NumOfRows   int           `mapstructure:"num_of_rows"`
	PageWait    time.Duration `mapstructure:"page_wait"`
	Translate   bool          `mapstructure:"translate"`
	LogLevel    string        `mapstructure:"log_level"`
	Concurrency int           `mapstructure:"concurrency"`

	Output OutputConfig `mapstructure:"output"`

	// Queries to run
	Transactions []TransactionQuery `mapstructure:"transactions"`
	Ledgers      []LedgerQuery      `mapstructure:"ledgers"`

	// Command modes, set from flags only
	List  bool `mapstructure:"list"`
	Check bool `mapstructure:"check"`
}

// Flags returns the command line flags understood by Load.
func Flags() *pflag.FlagSet {
	flagSet := pflag.NewFlagSet("publicdatareader", pflag.ContinueOnError)
	flagSet.String("config", "", "path to a config file (default ./config.yaml or $HOME/.publicdatareader/config.yaml)")
	flagSet.String("format", "table", "output format: "+strings.Join(Formats, "|"))
	flagSet.StringP("output", "o", "", "output file or directory (default stdout)")
	flagSet.Duration("page-wait", 30*time.Second, "pause before each page after the first")
	flagSet.String("log-level", "info", "log level: "+strings.Join(logLevels, "|"))
	flagSet.Bool("translate", true, "label columns with Korean headers")
	flagSet.Int("concurrency", 1, "number of queries fetched at once")
	flagSet.Bool("list", false, "list every supported endpoint and exit")
	flagSet.Bool("check", false, "probe every endpoint and exit")
	return flagSet
}

// flagKeys maps flag names to config keys
var flagKeys = map[string]string{
	"format":      "output.format",
	"output":      "output.path",
	"page-wait":   "page_wait",
	"log-level":   "log_level",
	"translate":   "translate",
	"concurrency": "concurrency",
	"list":        "list",
	"check":       "check",
}

// Load reads configuration from flags, environment variables, a .env file
// and an optional config file, in that order of precedence.
//
// Expected environment variables:
//   - SERVICE_KEY (required, the data.go.kr service key, encoded or decoded)
//   - RTMS_BASE_URL (optional, overrides the transaction service host)
//   - BLDRGST_BASE_URL (optional, overrides the building ledger service host)
//   - NUM_OF_ROWS, PAGE_WAIT, TRANSLATE, LOG_LEVEL, CONCURRENCY
//   - OUTPUT_FORMAT, OUTPUT_PATH
//
// flags may be nil, in which case only the other sources are used.
func Load(flags *pflag.FlagSet) (*Config, error) {
	// .env never overrides variables already set in the environment
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	v := viper.New()

	v.SetDefault("num_of_rows", 99999)
	v.SetDefault("page_wait", 30*time.Second)
	v.SetDefault("translate", true)
	v.SetDefault("log_level", "info")
	v.SetDefault("concurrency", 1)
	v.SetDefault("output.format", "table")
	v.SetDefault("output.path", "")
	v.SetDefault("rtms_base_url", "")
	v.SetDefault("bldrgst_base_url", "")
	v.SetDefault("list", false)
	v.SetDefault("check", false)

	configFile := ""
	if flags != nil {
		configFile, _ = flags.GetString("config")
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.publicdatareader")

		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range []string{
		"service_key", "rtms_base_url", "bldrgst_base_url", "num_of_rows", "page_wait",
		"translate", "log_level", "concurrency", "output.format", "output.path",
	} {
		_ = v.BindEnv(key, strings.ToUpper(strings.ReplaceAll(key, ".", "_")))
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag --%s: %w", name, err)
				}
			}
		}
	}

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	config.ServiceKey = strings.TrimSpace(config.ServiceKey)
	config.Output.Format = strings.ToLower(config.Output.Format)
	config.LogLevel = strings.ToLower(config.LogLevel)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// ParseParams turns key=value pairs into passthrough parameters.
// Keys keep their case, which the portal services are sensitive to.
func ParseParams(pairs []string) (map[string]any, error) {
	params := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid parameter %q: want key=value", pair)
		}
		params[key] = strings.TrimSpace(value)
	}
	return params, nil
}

// Validate reports every missing or invalid setting at once.
func (c *Config) Validate() error {
	var problems []string

	if c.ServiceKey == "" && !c.List {
		problems = append(problems, "SERVICE_KEY is required")
	}
	if !slices.Contains(Formats, c.Output.Format) {
		problems = append(problems, fmt.Sprintf("output.format %q is not one of %s", c.Output.Format, strings.Join(Formats, ", ")))
	}
	if c.Output.Format == "sqlite" && c.Output.Path == "" {
		problems = append(problems, "output.path is required for the sqlite format")
	}
	if !slices.Contains(logLevels, c.LogLevel) {
		problems = append(problems, fmt.Sprintf("log_level %q is not one of %s", c.LogLevel, strings.Join(logLevels, ", ")))
	}
	if c.NumOfRows < 1 {
		problems = append(problems, "num_of_rows must be at least 1")
	}
	if c.Concurrency < 1 {
		problems = append(problems, "concurrency must be at least 1")
	}
	if c.PageWait < 0 {
		problems = append(problems, "page_wait must not be negative")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}
