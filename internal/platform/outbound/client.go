// Package outbound implements the resilient inter-service HTTP client
// contract from spec §4.4: every call carries X-Correlation-ID, creates a
// child span, is wrapped by the caller's circuit breaker (+ optional
// retry), and treats status >= 400 as an ExternalServiceError.
package outbound

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/datingapp/request-fabric/internal/domainerr"
	"github.com/datingapp/request-fabric/internal/platform/ctxutil"
	"github.com/datingapp/request-fabric/internal/platform/resilience"
)

var tracer = otel.Tracer("platform/outbound")

// Client calls a downstream collaborator through the fabric's resilience
// wrapper, forwarding correlation and idempotency headers automatically.
type Client struct {
	httpClient *http.Client
	wrapper    resilience.ResilienceWrapper
	baseURL    string
	name       string
}

func New(name, baseURL string, wrapper resilience.ResilienceWrapper) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		wrapper:    wrapper,
		baseURL:    baseURL,
		name:       name,
	}
}

// Request describes one outbound call. IdempotencyKey, when non-empty, is
// forwarded verbatim — the obligation spec §4.8 places on every caller of
// the data collaborator.
type Request struct {
	Method         string
	Path           string
	Body           interface{}
	IdempotencyKey string
}

// Do executes req through the circuit breaker (and retry, if the
// collaborator wrapper is so configured), decoding a 2xx JSON body into
// out. Non-2xx responses become a domainerr.External error.
func (c *Client) Do(ctx context.Context, req Request, out interface{}) error {
	ctx, span := tracer.Start(ctx, "outbound."+c.name+"."+req.Path)
	defer span.End()
	span.SetAttributes(attribute.String("outbound.target", c.name))

	err := c.wrapper.Execute(ctx, c.name, func(ctx context.Context) error {
		return c.doOnce(ctx, req, out)
	})
	if err != nil {
		if de, ok := domainerr.As(err); ok {
			return de
		}
		if resErr, ok := asResilienceError(err); ok {
			switch resErr.Code {
			case resilience.ErrCodeCircuitOpen:
				return domainerr.CircuitOpen(fmt.Sprintf("%s unavailable", c.name))
			case resilience.ErrCodeMaxRetriesExceeded, resilience.ErrCodeTimeoutExceeded, resilience.ErrCodeBulkheadFull:
				return domainerr.External(fmt.Sprintf("%s call failed", c.name), err)
			}
		}
		return domainerr.External(fmt.Sprintf("%s call failed", c.name), err)
	}
	return nil
}

func asResilienceError(err error) (*resilience.ResilienceError, bool) {
	re, ok := err.(*resilience.ResilienceError)
	return re, ok
}

func (c *Client) doOnce(ctx context.Context, req Request, out interface{}) error {
	var bodyReader io.Reader
	if req.Body != nil {
		data, err := json.Marshal(req.Body)
		if err != nil {
			return domainerr.Internal("marshal outbound request", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, c.baseURL+req.Path, bodyReader)
	if err != nil {
		return domainerr.Internal("build outbound request", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Correlation-ID", ctxutil.CorrelationIDFromContext(ctx))
	httpReq.Header.Set("X-Trace-ID", ctxutil.TraceIDFromContext(ctx))
	if req.IdempotencyKey != "" {
		httpReq.Header.Set("Idempotency-Key", req.IdempotencyKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return err // retried/circuit-wrapped by the caller
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%s returned status %d: %s", c.name, resp.StatusCode, string(body))
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
