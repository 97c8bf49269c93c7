package productsapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"finitefield.org/catalog-viewer/internal/catalog"
)

// DefaultEndpoint is the public products API used when no endpoint is configured.
const DefaultEndpoint = "https://api.escuelajs.co/api/v1/products"

const instrumentationName = "finitefield.org/catalog-viewer/internal/productsapi"

var tracer = otel.Tracer(instrumentationName)

// HTTPClient matches the subset of http.Client used by Client.
type HTTPClient interface {
	Do(*http.Request) (*http.Response, error)
}

// Indicator is notified while a fetch is in flight.
type Indicator interface {
	SetLoading(bool)
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client used for requests.
func WithHTTPClient(client HTTPClient) Option {
	return func(c *Client) {
		if client != nil {
			c.http = client
		}
	}
}

// WithLogger sets the logger used to report fetch results.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithIndicator registers a loading indicator toggled around every fetch.
func WithIndicator(indicator Indicator) Option {
	return func(c *Client) {
		c.indicator = indicator
	}
}

// WithMeter records fetch metrics on m instead of the global meter provider.
func WithMeter(m metric.Meter) Option {
	return func(c *Client) {
		c.meter = m
	}
}

// Client fetches the full product collection with a single GET request.
type Client struct {
	endpoint  string
	http      HTTPClient
	logger    *zap.Logger
	indicator Indicator
	meter     metric.Meter
	latency   metric.Float64Histogram
}

// NewClient constructs a Client for endpoint. An empty endpoint selects DefaultEndpoint.
func NewClient(endpoint string, opts ...Option) (*Client, error) {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	parsed, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("productsapi: parse endpoint: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("productsapi: endpoint %q must be an http(s) URL", endpoint)
	}

	c := &Client{
		endpoint: parsed.String(),
		http:     http.DefaultClient,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.meter == nil {
		c.meter = otel.GetMeterProvider().Meter(instrumentationName)
	}
	latency, err := c.meter.Float64Histogram(
		"catalog.products.fetch.latency",
		metric.WithUnit("ms"),
		metric.WithDescription("Latency in milliseconds for product list fetches"),
	)
	if err != nil {
		c.logger.Warn("productsapi: unable to register latency metric", zap.Error(err))
	}
	c.latency = latency
	return c, nil
}

// Endpoint returns the URL requested by FetchAll.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// FetchAll requests the product list. It never retries; any transport failure, non-2xx
// status or undecodable body is reported as a *FetchError.
func (c *Client) FetchAll(ctx context.Context) (products []catalog.Product, err error) {
	if c.indicator != nil {
		c.indicator.SetLoading(true)
		defer c.indicator.SetLoading(false)
	}

	started := time.Now()
	status := 0
	ctx, span := tracer.Start(ctx, "productsapi.FetchAll", trace.WithSpanKind(trace.SpanKindClient))
	span.SetAttributes(attribute.String("url.full", c.endpoint))
	defer func() {
		c.recordLatency(ctx, time.Since(started), status, err)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "fetch failed")
		} else {
			span.SetAttributes(attribute.Int("catalog.products", len(products)))
			span.SetStatus(codes.Ok, "")
		}
		span.End()
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, &FetchError{Endpoint: c.endpoint, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &FetchError{Endpoint: c.endpoint, Err: err}
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()
	status = resp.StatusCode
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{Endpoint: c.endpoint, StatusCode: resp.StatusCode, Err: ErrUnexpectedStatus}
	}

	var payload []catalog.Product
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, &FetchError{Endpoint: c.endpoint, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode products: %w", err)}
	}
	if payload == nil {
		payload = []catalog.Product{}
	}

	c.logger.Info("products loaded", zap.String("endpoint", c.endpoint), zap.Int("count", len(payload)))
	if len(payload) > 0 {
		c.logger.Debug("first product images", zap.String("id", payload[0].ID.String()), zap.Strings("images", payload[0].Images))
	}
	return payload, nil
}

func (c *Client) recordLatency(ctx context.Context, d time.Duration, status int, err error) {
	if c.latency == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	attrs := []attribute.KeyValue{attribute.String("outcome", outcome)}
	if status != 0 {
		attrs = append(attrs, attribute.Int("http.response.status_code", status))
	}
	c.latency.Record(ctx, float64(d)/float64(time.Millisecond), metric.WithAttributes(attrs...))
}

// ErrUnexpectedStatus marks responses outside the 2xx range.
var ErrUnexpectedStatus = errors.New("unexpected status")

// FetchError describes a failed product fetch.
type FetchError struct {
	Endpoint   string
	StatusCode int
	Err        error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	if e.StatusCode != 0 && errors.Is(e.Err, ErrUnexpectedStatus) {
		return fmt.Sprintf("productsapi: GET %s: HTTP error! status: %d", e.Endpoint, e.StatusCode)
	}
	return fmt.Sprintf("productsapi: GET %s: %v", e.Endpoint, e.Err)
}

// Unwrap exposes the underlying error.
func (e *FetchError) Unwrap() error { return e.Err }
