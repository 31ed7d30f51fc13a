// Package client holds the typed REST clients the console uses to talk to
// the billing backend. Each resource gets a thin wrapper over a shared base
// client that owns auth headers, retries, rate limiting and error decoding.
package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/flexprice/billing-console/internal/config"
	ierr "github.com/flexprice/billing-console/internal/errors"
	"github.com/flexprice/billing-console/internal/logger"
	"github.com/flexprice/billing-console/internal/types"
	"github.com/hashicorp/go-retryablehttp"
	jsoniter "github.com/json-iterator/go"
	"golang.org/x/time/rate"
)

var jsonCodec = jsoniter.ConfigCompatibleWithStandardLibrary

// BaseClient issues authenticated JSON requests against the billing backend.
type BaseClient struct {
	httpClient *retryablehttp.Client
	baseURL    string
	apiKey     string
	limiter    *rate.Limiter
	logger     *logger.Logger
}

// NewBaseClient builds the shared base client from configuration.
func NewBaseClient(cfg *config.Configuration, log *logger.Logger) *BaseClient {
	httpClient := retryablehttp.NewClient()
	httpClient.RetryMax = cfg.Billing.RetryMax
	httpClient.HTTPClient.Timeout = cfg.Billing.Timeout
	httpClient.Logger = log.GetRetryableHTTPLogger()
	// Mutations must not be retried blindly; retryablehttp already limits
	// retries to idempotent outcomes via its default retry policy, and the
	// backend treats POSTs with idempotency keys as safe.

	return &BaseClient{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(cfg.Billing.APIURL, "/"),
		apiKey:     cfg.Billing.APIKey,
		limiter:    rate.NewLimiter(rate.Limit(cfg.Billing.RateLimit), cfg.Billing.RateBurst),
		logger:     log,
	}
}

// Do performs a JSON request. body and out may be nil. Query parameters are
// appended with GenerateQueryParams semantics.
func (c *BaseClient) Do(ctx context.Context, method, path string, params map[string]interface{}, body interface{}, out interface{}) error {
	data, status, err := c.doRaw(ctx, method, path, params, body, "application/json")
	if err != nil {
		return err
	}

	if out != nil && len(data) > 0 {
		if err := jsonCodec.Unmarshal(data, out); err != nil {
			return ierr.WithError(err).
				WithHint("Failed to decode billing API response").
				WithReportableDetails(map[string]interface{}{
					"status": status,
					"path":   path,
				}).
				Mark(ierr.ErrHTTPClient)
		}
	}
	return nil
}

// DoBinary performs a request expecting a binary response, e.g. a PDF.
func (c *BaseClient) DoBinary(ctx context.Context, method, path string, accept string) ([]byte, error) {
	data, _, err := c.doRaw(ctx, method, path, nil, nil, accept)
	return data, err
}

func (c *BaseClient) doRaw(ctx context.Context, method, path string, params map[string]interface{}, body interface{}, accept string) ([]byte, int, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, 0, ierr.WithError(err).
			WithHint("Request cancelled while waiting for rate limit").
			Mark(ierr.ErrHTTPClient)
	}

	endpoint := c.baseURL + path
	if query := GenerateQueryParams(params); query != "" {
		endpoint = endpoint + "?" + query
	}

	var reader io.Reader
	if body != nil {
		payload, err := jsonCodec.Marshal(body)
		if err != nil {
			return nil, 0, ierr.WithError(err).
				WithHint("Failed to encode request body").
				Mark(ierr.ErrHTTPClient)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, 0, ierr.WithError(err).
			WithHint("Failed to build billing API request").
			Mark(ierr.ErrHTTPClient)
	}

	req.Header.Set("Accept", accept)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(types.HeaderAuthorization, "Bearer "+c.apiKey)
	if environmentID := types.GetEnvironmentID(ctx); environmentID != "" {
		req.Header.Set(types.HeaderEnvironment, environmentID)
	}
	if requestID := types.GetRequestID(ctx); requestID != "" {
		req.Header.Set(types.HeaderRequestID, requestID)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, ierr.WithError(err).
			WithHint("Billing API is unreachable").
			WithReportableDetails(map[string]interface{}{
				"method": method,
				"path":   path,
			}).
			Mark(ierr.ErrHTTPClient)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, ierr.WithError(err).
			WithHint("Failed to read billing API response").
			Mark(ierr.ErrHTTPClient)
	}

	c.logger.WithContext(ctx).Debugw("billing api request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"latency_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, resp.StatusCode, c.decodeError(resp.StatusCode, method, path, data)
	}

	return data, resp.StatusCode, nil
}

// decodeError extracts the backend's structured error message and maps the
// status code to a marked error.
func (c *BaseClient) decodeError(status int, method, path string, data []byte) error {
	message := fmt.Sprintf("billing API returned %d", status)
	var serverErr ierr.ErrorResponse
	if err := jsonCodec.Unmarshal(data, &serverErr); err == nil && serverErr.Error.Message != "" {
		message = serverErr.Error.Message
	}

	builder := ierr.NewError(message).
		WithHint(message).
		WithReportableDetails(map[string]interface{}{
			"status": status,
			"method": method,
			"path":   path,
		})

	switch status {
	case http.StatusNotFound:
		return builder.Mark(ierr.ErrNotFound)
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return builder.Mark(ierr.ErrValidation)
	case http.StatusUnauthorized, http.StatusForbidden:
		return builder.Mark(ierr.ErrPermissionDenied)
	case http.StatusConflict:
		return builder.Mark(ierr.ErrAlreadyExists)
	default:
		return builder.Mark(ierr.ErrHTTPClient)
	}
}

// GenerateQueryParams joins non-nil parameters as key=value pairs. Slice
// values are comma-joined under a single key. Keys are emitted in sorted
// order so URLs are stable for caching and tests.
func GenerateQueryParams(params map[string]interface{}) string {
	if len(params) == 0 {
		return ""
	}

	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var pairs []string
	for _, key := range keys {
		value := queryValue(params[key])
		if value == "" {
			continue
		}
		pairs = append(pairs, url.QueryEscape(key)+"="+url.QueryEscape(value))
	}
	return strings.Join(pairs, "&")
}

func queryValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []string:
		return strings.Join(val, ",")
	case int:
		return strconv.Itoa(val)
	case *int:
		if val == nil {
			return ""
		}
		return strconv.Itoa(*val)
	case bool:
		return strconv.FormatBool(val)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprintf("%v", val)
	}
}
