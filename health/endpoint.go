package health

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrNoEndpoint indicates the probe was constructed without a target URL.
var ErrNoEndpoint = errors.New("health: no endpoint configured")

// DefaultProbeTimeout bounds the startup probe; the calculation fetch
// path itself carries no timeout, but a liveness probe must not hang the
// widget's startup.
const DefaultProbeTimeout = 5 * time.Second

// EndpointCheckerConfig configures an EndpointChecker.
type EndpointCheckerConfig struct {
	// Endpoint is the calculation service base URL. Required.
	Endpoint string

	// Timeout bounds a single probe. Defaults to DefaultProbeTimeout.
	Timeout time.Duration

	// HTTPClient overrides the client used for probes. Defaults to
	// http.DefaultClient.
	HTTPClient *http.Client
}

// EndpointChecker probes the calculation service with a bare GET and
// classifies the response. Any answer at all, including an HTTP error
// status, proves the endpoint is reachable; only 5xx and transport
// failures count against it.
type EndpointChecker struct {
	endpoint string
	timeout  time.Duration
	client   *http.Client
}

// NewEndpointChecker builds a checker for the given configuration.
func NewEndpointChecker(config EndpointCheckerConfig) (*EndpointChecker, error) {
	if config.Endpoint == "" {
		return nil, ErrNoEndpoint
	}
	if config.Timeout <= 0 {
		config.Timeout = DefaultProbeTimeout
	}
	if config.HTTPClient == nil {
		config.HTTPClient = http.DefaultClient
	}
	return &EndpointChecker{
		endpoint: config.Endpoint,
		timeout:  config.Timeout,
		client:   config.HTTPClient,
	}, nil
}

func (c *EndpointChecker) Name() string { return "calculation-service" }

// Check probes the endpoint once.
func (c *EndpointChecker) Check(ctx context.Context) Result {
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return c.result(StatusUnhealthy, "invalid endpoint URL", err, start)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return c.result(StatusUnhealthy, "endpoint unreachable", err, start)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 500:
		return c.result(StatusDegraded,
			fmt.Sprintf("endpoint answered %d", resp.StatusCode), nil, start)
	case resp.StatusCode == http.StatusTooManyRequests:
		return c.result(StatusDegraded, "endpoint is rate limiting", nil, start)
	default:
		return c.result(StatusHealthy, "endpoint reachable", nil, start)
	}
}

func (c *EndpointChecker) result(status Status, msg string, err error, start time.Time) Result {
	return Result{
		Status:    status,
		Message:   msg,
		Duration:  time.Since(start),
		Timestamp: time.Now(),
		Err:       err,
	}
}

var _ Checker = (*EndpointChecker)(nil)
