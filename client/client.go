package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"

	"golang.org/x/sync/singleflight"

	"github.com/jonwraymond/futurecost/calc"
)

// Sentinel errors for client construction.
var (
	ErrNoEndpoint = errors.New("client: endpoint is required")
)

// maxResponseBytes caps how much of a response body is read.
const maxResponseBytes = 1 << 20

// Config configures the calculation service client.
type Config struct {
	// Endpoint is the calculation service URL. Required.
	Endpoint string

	// APIKey is sent as the "key" query parameter. May be empty for
	// services that do not require one.
	APIKey string

	// HTTPClient overrides the HTTP client used for requests.
	// Default: a plain http.Client. The design carries no request
	// timeout; the only temporal contracts live in the debounce delay
	// and the minimum inter-request spacing.
	HTTPClient *http.Client
}

// Client calls the remote calculation service.
//
// Identical concurrent requests are collapsed into a single HTTP round
// trip via singleflight. This matters only when several widget instances
// share one client; each instance's coordinator already prevents
// overlapping fetches of its own.
type Client struct {
	endpoint   *url.URL
	apiKey     string
	httpClient *http.Client
	group      singleflight.Group
}

// New creates a new client.
func New(config Config) (*Client, error) {
	if config.Endpoint == "" {
		return nil, ErrNoEndpoint
	}
	u, err := url.Parse(config.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("client: invalid endpoint: %w", err)
	}
	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		endpoint:   u,
		apiKey:     config.APIKey,
		httpClient: httpClient,
	}, nil
}

// payload is the service response body. Every field is optional; the
// normalization step fills gaps from the original request.
type payload struct {
	CurrentCost   *float64 `json:"current_cost"`
	InflationRate *float64 `json:"inflation_rate"`
	NoYears       *float64 `json:"no_years"`
	FutureAmount  *float64 `json:"future_amount"`
	Status        *int     `json:"status"`
	StatusMsg     string   `json:"status_msg"`
}

// Calculate asks the service for the future value of req.
//
// Error mapping:
//   - HTTP 429 or an in-payload status of 429: calc.ErrRateLimited.
//   - Any other non-2xx status, or an in-payload status other than 200:
//     *calc.StatusError carrying status_msg when the body provides one.
//   - Transport or decoding failures: wrapped transport error.
func (c *Client) Calculate(ctx context.Context, req calc.Request) (calc.Result, error) {
	if err := req.Validate(); err != nil {
		return calc.Result{}, err
	}

	v, err, _ := c.group.Do(req.Key(), func() (any, error) {
		return c.do(ctx, req)
	})
	if err != nil {
		return calc.Result{}, err
	}
	return v.(calc.Result), nil
}

func (c *Client) do(ctx context.Context, req calc.Request) (calc.Result, error) {
	u := *c.endpoint
	q := u.Query()
	if c.apiKey != "" {
		q.Set("key", c.apiKey)
	}
	// The service contract takes whole currency units and whole years.
	q.Set("current_cost", strconv.FormatFloat(math.Floor(req.Cost), 'f', -1, 64))
	q.Set("inflation_rate", strconv.FormatFloat(req.Rate, 'f', -1, 64))
	q.Set("no_years", strconv.Itoa(req.Years))
	u.RawQuery = q.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return calc.Result{}, fmt.Errorf("client: build request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return calc.Result{}, fmt.Errorf("client: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return calc.Result{}, calc.ErrRateLimited
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return calc.Result{}, fmt.Errorf("client: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Prefer the body's status_msg when it parses
		var p payload
		if json.Unmarshal(body, &p) == nil && p.StatusMsg != "" {
			return calc.Result{}, &calc.StatusError{Code: resp.StatusCode, Message: p.StatusMsg}
		}
		return calc.Result{}, &calc.StatusError{Code: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}

	var p payload
	if err := json.Unmarshal(body, &p); err != nil {
		return calc.Result{}, fmt.Errorf("client: malformed response: %w", err)
	}

	if p.Status != nil {
		switch *p.Status {
		case http.StatusOK:
			// carry on
		case http.StatusTooManyRequests:
			return calc.Result{}, calc.ErrRateLimited
		default:
			return calc.Result{}, &calc.StatusError{Code: *p.Status, Message: p.StatusMsg}
		}
	}

	return normalize(req, p), nil
}

// normalize builds the result, falling back to the requested inputs when
// the service omits echoing them and to zero for a missing amount.
func normalize(req calc.Request, p payload) calc.Result {
	res := calc.Result{
		CurrentCost:   req.Cost,
		InflationRate: req.Rate,
		NoYears:       float64(req.Years),
	}
	if p.CurrentCost != nil {
		res.CurrentCost = *p.CurrentCost
	}
	if p.InflationRate != nil {
		res.InflationRate = *p.InflationRate
	}
	if p.NoYears != nil {
		res.NoYears = *p.NoYears
	}
	if p.FutureAmount != nil {
		res.FutureAmount = *p.FutureAmount
	}
	return res
}
