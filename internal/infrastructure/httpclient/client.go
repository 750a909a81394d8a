package httpclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"goal-tracker/internal/config"
	"goal-tracker/internal/domain/entity"
)

const (
	maxBodyLogLength     = 500   // Maximum characters to log for body
	maxBodyPersistLength = 10000 // Maximum characters stored in api_logs
)

// Values of these fields never reach logs or api_logs. The authorization code
// only travels form-encoded, so a JSON "code" (provider error status) is kept.
var (
	jsonSecretPattern = regexp.MustCompile(`("(?:access_token|refresh_token|client_secret|id_token)"\s*:\s*")[^"]*`)
	formSecretPattern = regexp.MustCompile(`((?:^|&)(?:access_token|refresh_token|client_secret|code|id_token)=)[^&\s]*`)
)

// APILogSaver interface for saving API logs
type APILogSaver interface {
	Save(ctx context.Context, log *entity.APILog) error
}

type userIDKey struct{}

// WithUserID tags outbound requests made with ctx so their api_logs rows can be
// searched by user.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

func userIDFrom(ctx context.Context) string {
	userID, _ := ctx.Value(userIDKey{}).(string)
	return userID
}

// NewHTTPClient returns the client used for every call to the calendar
// provider, token endpoint included.
func NewHTTPClient(cfg *config.Config, apiLogSaver APILogSaver, logger *zap.Logger) *http.Client {
	return &http.Client{
		Timeout:   cfg.Google.Timeout,
		Transport: NewTransport(http.DefaultTransport, apiLogSaver, logger),
	}
}

type loggingTransport struct {
	base        http.RoundTripper
	apiLogSaver APILogSaver
	logger      *zap.Logger
}

// NewTransport wraps base with request/response logging. apiLogSaver may be nil.
func NewTransport(base http.RoundTripper, apiLogSaver APILogSaver, logger *zap.Logger) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	return &loggingTransport{
		base:        base,
		apiLogSaver: apiLogSaver,
		logger:      logger,
	}
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	reqBody, err := peekRequestBody(req)
	if err != nil {
		return nil, err
	}

	t.logRequest(req.Method, req.URL.String(), req.Header, reqBody)

	startTime := time.Now()
	resp, err := t.base.RoundTrip(req)
	duration := time.Since(startTime)
	if err != nil {
		t.logger.Warn("Provider request failed",
			zap.String("method", req.Method),
			zap.String("url", req.URL.String()),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return nil, err
	}

	respBody, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	resp.Body = io.NopCloser(bytes.NewReader(respBody))

	t.logResponse(resp.StatusCode, resp.Status, duration, resp.Header, respBody)
	t.saveAPILog(req, reqBody, respBody, resp.StatusCode, duration)

	return resp, nil
}

// peekRequestBody reads the body and puts an identical reader back
func peekRequestBody(req *http.Request) ([]byte, error) {
	if req.Body == nil || req.Body == http.NoBody {
		return nil, nil
	}

	body, err := io.ReadAll(req.Body)
	req.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}
	req.Body = io.NopCloser(bytes.NewReader(body))
	return body, nil
}

// redact masks token-like values in a body
func redact(s string) string {
	s = jsonSecretPattern.ReplaceAllString(s, "${1}[REDACTED]")
	return formSecretPattern.ReplaceAllString(s, "${1}[REDACTED]")
}

// truncateString truncates a string if it exceeds maxLength
func truncateString(s string, maxLength int) string {
	if len(s) <= maxLength {
		return s
	}
	return s[:maxLength] + fmt.Sprintf("... [truncated, total %d chars]", len(s))
}

// formatHeadersForLog formats HTTP headers for logging in "Header Key=Value" format
func formatHeadersForLog(headers http.Header) string {
	var sb strings.Builder
	for key, values := range headers {
		for _, value := range values {
			if strings.EqualFold(key, "Authorization") {
				value = "[REDACTED]"
			}
			if len(value) > 100 {
				value = value[:100] + "..."
			}
			sb.WriteString(fmt.Sprintf("Header %s=%s\n", key, value))
		}
	}
	return sb.String()
}

func (t *loggingTransport) logRequest(method, url string, headers http.Header, body []byte) {
	var logBuilder strings.Builder

	logBuilder.WriteString("\n>>> [PROVIDER-REQ]\n")
	logBuilder.WriteString(fmt.Sprintf("Method: %s\n", method))
	logBuilder.WriteString(fmt.Sprintf("URL: %s\n", url))
	logBuilder.WriteString(formatHeadersForLog(headers))

	if len(body) > 0 {
		logBuilder.WriteString(fmt.Sprintf("REQUEST BODY: %s\n", truncateString(redact(string(body)), maxBodyLogLength)))
	}

	t.logger.Debug(logBuilder.String())
}

func (t *loggingTransport) logResponse(statusCode int, statusText string, duration time.Duration, headers http.Header, body []byte) {
	var logBuilder strings.Builder

	logBuilder.WriteString("\n>>> [PROVIDER-RESPONSE]\n")
	logBuilder.WriteString(fmt.Sprintf("Status: %d %s\n", statusCode, statusText))
	logBuilder.WriteString(fmt.Sprintf("Duration: %s\n", duration))
	logBuilder.WriteString(formatHeadersForLog(headers))
	logBuilder.WriteString(fmt.Sprintf("Body: %s\n", truncateString(redact(string(body)), maxBodyLogLength)))

	if statusCode >= 400 {
		t.logger.Warn(logBuilder.String())
		return
	}
	t.logger.Debug(logBuilder.String())
}

// saveAPILog persists the exchange without blocking the caller
func (t *loggingTransport) saveAPILog(req *http.Request, requestBody, responseBody []byte, statusCode int, duration time.Duration) {
	if t.apiLogSaver == nil {
		return
	}

	apiLog := &entity.APILog{
		Endpoint:     req.URL.Scheme + "://" + req.URL.Host + req.URL.Path,
		Method:       req.Method,
		RequestBody:  truncateString(redact(string(requestBody)), maxBodyPersistLength),
		ResponseBody: truncateString(redact(string(responseBody)), maxBodyPersistLength),
		StatusCode:   statusCode,
		Duration:     duration.Milliseconds(),
		UserID:       userIDFrom(req.Context()),
		CreatedAt:    time.Now(),
	}

	go func() {
		if err := t.apiLogSaver.Save(context.Background(), apiLog); err != nil {
			t.logger.Warn("Failed to save API log to database",
				zap.String("endpoint", apiLog.Endpoint),
				zap.Error(err),
			)
		}
	}()
}
