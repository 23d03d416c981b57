package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/lumendb/lumen-go/config"
	"github.com/lumendb/lumen-go/ctxutil"
	"github.com/lumendb/lumen-go/log"
)

const (
	tokenHeader     = "Token"
	requestIDHeader = "X-Request-Id"
	tracerName      = "lumen.api"
)

// Commander sends one command payload to the Data API and returns the
// decoded JSON response. Implementations must honor the TimeoutContext
// and surface an expired budget as a *TimeoutError.
type Commander interface {
	Request(ctx context.Context, payload map[string]any, tc TimeoutContext) (map[string]any, error)
}

// HTTPCommander posts JSON commands to a fixed Data API URL (one
// collection or table endpoint). Numeric values in responses are
// decoded as json.Number so decimal precision survives until the
// caller decides how to interpret them.
type HTTPCommander struct {
	url     string
	token   string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker
	tracer  trace.Tracer
}

// NewHTTPCommander creates a commander for the given endpoint URL.
func NewHTTPCommander(url, token string) *HTTPCommander {
	return &HTTPCommander{
		url:    url,
		token:  token,
		client: http.DefaultClient,
		tracer: otel.Tracer(tracerName),
	}
}

// NewHTTPCommanderWithBreaker creates a commander whose round trips are
// guarded by a circuit breaker configured from bc.
func NewHTTPCommanderWithBreaker(url, token string, bc *config.Breaker) *HTTPCommander {
	c := NewHTTPCommander(url, token)
	if bc != nil && bc.Enabled {
		c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        url,
			MaxRequests: bc.MaxRequests,
			Interval:    bc.Interval,
			Timeout:     bc.Timeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
				return counts.Requests >= bc.MinRequests && failureRatio >= bc.FailureRatio
			},
		})
	}
	return c
}

// SetHTTPClient replaces the underlying HTTP client.
func (c *HTTPCommander) SetHTTPClient(client *http.Client) {
	if client != nil {
		c.client = client
	}
}

// URL returns the endpoint URL this commander posts to.
func (c *HTTPCommander) URL() string {
	return c.url
}

// Request sends one command and decodes one response.
func (c *HTTPCommander) Request(ctx context.Context, payload map[string]any, tc TimeoutContext) (map[string]any, error) {
	ctx, _ = ctxutil.EnsureTraceID(ctx)
	requestID := uuid.NewString()
	ctx = ctxutil.SetRequestID(ctx, requestID)

	command := commandName(payload)
	ctx, span := c.tracer.Start(ctx, "lumen.api.request", trace.WithAttributes(
		attribute.String("db.operation", command),
		attribute.String("request.id", requestID),
	))
	defer span.End()

	if tc.HasTimeout() {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, tc.Request)
		defer cancel()
	}

	resp, err := c.execute(ctx, payload, requestID)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			err = &TimeoutError{Timeout: tc.Request, Label: tc.Label}
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.Warnf(ctx, "command %s failed: %v", command, err)
		return nil, err
	}
	span.SetStatus(codes.Ok, "")
	return resp, nil
}

func (c *HTTPCommander) execute(ctx context.Context, payload map[string]any, requestID string) (map[string]any, error) {
	if c.breaker != nil {
		result, err := c.breaker.Execute(func() (any, error) {
			return c.roundTrip(ctx, payload, requestID)
		})
		if err != nil {
			return nil, err
		}
		return result.(map[string]any), nil
	}
	return c.roundTrip(ctx, payload, requestID)
}

func (c *HTTPCommander) roundTrip(ctx context.Context, payload map[string]any, requestID string) (map[string]any, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode command: %w", err)
	}

	log.Debugf(ctx, "command %s to %s", commandName(payload), c.url)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(requestIDHeader, requestID)
	if c.token != "" {
		req.Header.Set(tokenHeader, c.token)
	}

	httpResp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = httpResp.Body.Close() }()

	raw, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, err
	}

	decoded := decodeBody(raw)
	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		return nil, NewResponseError(decoded, "HTTP %d from %s", httpResp.StatusCode, c.url)
	}
	if decoded == nil {
		return nil, NewResponseError(nil, "response body is not a JSON object")
	}
	if reason, failed := apiErrors(decoded); failed {
		return nil, NewResponseError(decoded, "%s", reason)
	}
	return decoded, nil
}

// decodeBody decodes a response body into a map, preserving numeric
// precision via json.Number. Returns nil for undecodable bodies.
func decodeBody(raw []byte) map[string]any {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var decoded map[string]any
	if err := dec.Decode(&decoded); err != nil {
		return nil
	}
	return decoded
}

// apiErrors inspects the top-level "errors" array the Data API uses to
// report command failures.
func apiErrors(resp map[string]any) (string, bool) {
	errsAny, ok := resp["errors"].([]any)
	if !ok || len(errsAny) == 0 {
		return "", false
	}
	if first, ok := errsAny[0].(map[string]any); ok {
		if msg, ok := first["message"].(string); ok && msg != "" {
			return msg, true
		}
		if code, ok := first["errorCode"].(string); ok && code != "" {
			return code, true
		}
	}
	return "command returned errors", true
}

func commandName(payload map[string]any) string {
	for k := range payload {
		return k
	}
	return "(empty)"
}
