// internal/prediction/client.go
package prediction

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	commonhttp "churn-console/internal/common/http"
	"churn-console/internal/common/logger"
	"churn-console/internal/common/metrics"
	"churn-console/internal/common/observability"

	"github.com/xeipuuv/gojsonschema"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	PathPredict   = "/predict"
	PathHealth    = "/health"
	PathModelInfo = "/model-info"

	maxResponseBytes = 1 << 20
)

var (
	ErrTransport       = errors.New("TRANSPORT_FAILED")
	ErrInvalidResponse = errors.New("INVALID_RESPONSE")
)

var resultSchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"churn_probability": map[string]interface{}{"type": "number"},
		"risk_category":     map[string]interface{}{"type": "string"},
	},
	"required": []interface{}{"churn_probability", "risk_category"},
}

// Client talks to the churn prediction service.
type Client struct {
	baseURL string
	http    *commonhttp.Client
	strict  bool
	schema  *gojsonschema.Schema
	obs     *observability.Observability
	logger  logger.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithStrictResponses makes Predict reject bodies without a numeric churn_probability and a
// string risk_category instead of coercing them.
func WithStrictResponses(strict bool) Option {
	return func(c *Client) {
		c.strict = strict
	}
}

// NewClient builds a client for baseURL. A zero timeout waits indefinitely. obs may be nil.
func NewClient(baseURL string, timeout time.Duration, obs *observability.Observability, log logger.Logger, opts ...Option) (*Client, error) {
	return newClient(baseURL, commonhttp.NewClient(timeout), obs, log, opts)
}

// NewClientWithHTTP is used by tests that need a custom transport.
func NewClientWithHTTP(baseURL string, httpClient *commonhttp.Client, log logger.Logger, opts ...Option) (*Client, error) {
	return newClient(baseURL, httpClient, nil, log, opts)
}

func newClient(baseURL string, httpClient *commonhttp.Client, obs *observability.Observability, log logger.Logger, opts []Option) (*Client, error) {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		obs:     obs,
		logger:  log.WithFields(map[string]interface{}{"component": "prediction-client"}),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.strict {
		schema, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(resultSchema))
		if err != nil {
			return nil, fmt.Errorf("compile result schema: %w", err)
		}
		c.schema = schema
	}

	return c, nil
}

// BaseURL returns the service origin without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Predict sends one POST /predict. It never retries.
func (c *Client) Predict(ctx context.Context, req *Request) (*Result, error) {
	body, err := c.call(ctx, http.MethodPost, PathPredict, req)
	if err != nil {
		return nil, err
	}

	if c.strict {
		if err := c.validateResult(body); err != nil {
			return nil, err
		}
	}

	return decodeResult(body)
}

// Health queries GET /health.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	body, err := c.call(ctx, http.MethodGet, PathHealth, nil)
	if err != nil {
		return nil, err
	}

	var status HealthStatus
	if err := json.Unmarshal(body, &status); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return &status, nil
}

// ModelInfo queries GET /model-info.
func (c *Client) ModelInfo(ctx context.Context) (*ModelInfo, error) {
	body, err := c.call(ctx, http.MethodGet, PathModelInfo, nil)
	if err != nil {
		return nil, err
	}

	var info ModelInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return &info, nil
}

func (c *Client) call(ctx context.Context, method, path string, payload interface{}) ([]byte, error) {
	url := c.baseURL + path
	ctx, span := c.startSpan(ctx, "prediction "+method+" "+path,
		attribute.String("http.method", method),
		attribute.String("http.url", url),
	)
	defer span.End()

	start := time.Now()
	var (
		resp *http.Response
		err  error
	)
	if method == http.MethodPost {
		resp, err = c.http.PostJSON(ctx, url, payload)
	} else {
		resp, err = c.http.GetJSON(ctx, url)
	}
	if err != nil {
		metrics.PredictionRequestDuration.WithLabelValues(path, "error").Observe(time.Since(start).Seconds())
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport failure")
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}

	body, readErr := commonhttp.ReadBody(resp, maxResponseBytes)
	metrics.PredictionRequestDuration.WithLabelValues(path, strconv.Itoa(resp.StatusCode)).Observe(time.Since(start).Seconds())
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		statusErr := &StatusError{StatusCode: resp.StatusCode}
		span.SetStatus(codes.Error, statusErr.Error())
		return nil, statusErr
	}
	if readErr != nil {
		span.RecordError(readErr)
		span.SetStatus(codes.Error, "read body")
		if errors.Is(readErr, commonhttp.ErrBodyTooLarge) {
			return nil, fmt.Errorf("%w: %w", ErrInvalidResponse, readErr)
		}
		return nil, fmt.Errorf("%w: %v", ErrTransport, readErr)
	}

	c.logger.Debug("prediction service responded", map[string]interface{}{
		"path":       path,
		"statusCode": resp.StatusCode,
		"duration":   time.Since(start).String(),
	})

	return body, nil
}

func (c *Client) validateResult(body []byte) error {
	result, err := c.schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("%w: %v", ErrInvalidResponse, errs)
	}
	return nil
}

func (c *Client) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if c.obs != nil {
		return c.obs.StartSpan(ctx, name, attrs...)
	}
	return otel.Tracer("churn-console/prediction").Start(ctx, name, trace.WithAttributes(attrs...))
}
