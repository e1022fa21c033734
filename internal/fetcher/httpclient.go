package fetcher

import (
	"fmt"
	"log/slog"
	"net/url"

	"resty.dev/v3"
)

// ServiceKeyParam is the query parameter carrying the portal service key
const ServiceKeyParam = "serviceKey"

// NewHTTPClient creates the HTTP client shared by all portal requests.
// Retries are disabled: every failure surfaces to the caller on the first attempt.
func NewHTTPClient(logger *slog.Logger) *resty.Client {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	client := resty.New().
		SetHeader("Accept", "application/xml, application/json;q=0.9").
		SetRetryCount(0).
		SetRetryDefaultConditions(false).
		SetLogger(restyLogger{logger}).
		AddResponseMiddleware(responseLogger(logger))

	return client
}

// responseLogger logs every completed round trip for observability
func responseLogger(logger *slog.Logger) resty.ResponseMiddleware {
	return func(_ *resty.Client, r *resty.Response) error {
		logger.Debug("portal response",
			"method", r.Request.Method,
			"url", RedactURL(requestURL(r)),
			"status_code", r.StatusCode(),
			"duration", r.Duration())
		return nil
	}
}

func requestURL(r *resty.Response) string {
	if r.Request.RawRequest != nil && r.Request.RawRequest.URL != nil {
		return r.Request.RawRequest.URL.String()
	}
	return r.Request.URL
}

// RedactURL masks the service key in a request URL so it can be logged
func RedactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	q := u.Query()
	if q.Has(ServiceKeyParam) {
		q.Set(ServiceKeyParam, "REDACTED")
		u.RawQuery = q.Encode()
	}
	return u.String()
}

// restyLogger routes resty's internal warnings through slog
type restyLogger struct {
	logger *slog.Logger
}

func (l restyLogger) Errorf(format string, v ...any) {
	l.logger.Error(fmt.Sprintf(format, v...))
}

func (l restyLogger) Warnf(format string, v ...any) {
	l.logger.Warn(fmt.Sprintf(format, v...))
}

func (l restyLogger) Debugf(format string, v ...any) {
	l.logger.Debug(fmt.Sprintf(format, v...))
}
