package portal

import (
	"fmt"
	"time"

	"publicdatareader/internal/fetcher"
)

const periodLayout = "200601"

// ExpandPeriods lists every YYYYMM token from start to end inclusive,
// in chronological order.
func ExpandPeriods(start, end string) ([]string, error) {
	from, err := parsePeriod(start)
	if err != nil {
		return nil, err
	}
	to, err := parsePeriod(end)
	if err != nil {
		return nil, err
	}
	if from.After(to) {
		return nil, fetcher.NewConfigurationError(
			fmt.Sprintf("start period %s is after end period %s", start, end))
	}

	var tokens []string
	for t := from; !t.After(to); t = t.AddDate(0, 1, 0) {
		tokens = append(tokens, t.Format(periodLayout))
	}
	return tokens, nil
}

func parsePeriod(token string) (time.Time, error) {
	t, err := time.Parse(periodLayout, token)
	if err != nil || len(token) != len(periodLayout) {
		return time.Time{}, fetcher.NewConfigurationError(
			fmt.Sprintf("invalid period %q: want YYYYMM", token))
	}
	return t, nil
}
