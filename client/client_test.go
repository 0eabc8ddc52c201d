package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonwraymond/futurecost/calc"
)

var testReq = calc.Request{Cost: 2500000, Rate: 6, Years: 10}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := New(Config{Endpoint: srv.URL, APIKey: "test-key", HTTPClient: srv.Client()})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return c
}

func TestNew_RequiresEndpoint(t *testing.T) {
	if _, err := New(Config{}); !errors.Is(err, ErrNoEndpoint) {
		t.Errorf("New without endpoint = %v, want ErrNoEndpoint", err)
	}
}

func TestClient_QueryContract(t *testing.T) {
	var got *http.Request
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Clone(context.Background())
		w.Write([]byte(`{"future_amount": 4476000}`))
	})

	// Fractional cost must be floored on the wire
	req := calc.Request{Cost: 2500000.75, Rate: 6.5, Years: 10}
	if _, err := c.Calculate(context.Background(), req); err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}

	q := got.URL.Query()
	if q.Get("key") != "test-key" {
		t.Errorf("key = %q, want test-key", q.Get("key"))
	}
	if q.Get("current_cost") != "2500000" {
		t.Errorf("current_cost = %q, want 2500000 (floored)", q.Get("current_cost"))
	}
	if q.Get("inflation_rate") != "6.5" {
		t.Errorf("inflation_rate = %q, want 6.5", q.Get("inflation_rate"))
	}
	if q.Get("no_years") != "10" {
		t.Errorf("no_years = %q, want 10", q.Get("no_years"))
	}
	if accept := got.Header.Get("Accept"); accept != "application/json" {
		t.Errorf("Accept = %q, want application/json", accept)
	}
}

func TestClient_SuccessFullEcho(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"status": 200,
			"current_cost": 2500000,
			"inflation_rate": 6,
			"no_years": 10,
			"future_amount": 4476000
		}`))
	})

	res, err := c.Calculate(context.Background(), testReq)
	if err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}
	want := calc.Result{CurrentCost: 2500000, InflationRate: 6, NoYears: 10, FutureAmount: 4476000}
	if res != want {
		t.Errorf("result = %+v, want %+v", res, want)
	}
}

func TestClient_NormalizationFallbacks(t *testing.T) {
	// Server echoes nothing back: inputs fall back to the request,
	// the amount to zero.
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})

	res, err := c.Calculate(context.Background(), testReq)
	if err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}
	want := calc.Result{CurrentCost: 2500000, InflationRate: 6, NoYears: 10, FutureAmount: 0}
	if res != want {
		t.Errorf("result = %+v, want %+v", res, want)
	}
}

func TestClient_HTTP429(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := c.Calculate(context.Background(), testReq)
	if !errors.Is(err, calc.ErrRateLimited) {
		t.Errorf("Calculate on HTTP 429 = %v, want ErrRateLimited", err)
	}
}

func TestClient_InPayload429(t *testing.T) {
	// A 429 carried in an otherwise-200 body is still a rate limit.
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": 429, "status_msg": "too many requests"}`))
	})

	_, err := c.Calculate(context.Background(), testReq)
	if !errors.Is(err, calc.ErrRateLimited) {
		t.Errorf("Calculate on in-payload 429 = %v, want ErrRateLimited", err)
	}
}

func TestClient_InPayloadFailureStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": 500, "status_msg": "calculation engine down"}`))
	})

	_, err := c.Calculate(context.Background(), testReq)
	var statusErr *calc.StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("Calculate = %v, want StatusError", err)
	}
	if statusErr.Code != 500 || statusErr.Message != "calculation engine down" {
		t.Errorf("StatusError = %+v", statusErr)
	}
}

func TestClient_NonOKHTTPStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`{"status_msg": "upstream unavailable"}`))
	})

	_, err := c.Calculate(context.Background(), testReq)
	var statusErr *calc.StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("Calculate = %v, want StatusError", err)
	}
	if statusErr.Code != http.StatusBadGateway {
		t.Errorf("Code = %d, want 502", statusErr.Code)
	}
	if statusErr.Message != "upstream unavailable" {
		t.Errorf("Message = %q, want the body's status_msg", statusErr.Message)
	}
}

func TestClient_NonOKHTTPStatusWithoutBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := c.Calculate(context.Background(), testReq)
	var statusErr *calc.StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("Calculate = %v, want StatusError", err)
	}
	if statusErr.Message != http.StatusText(http.StatusInternalServerError) {
		t.Errorf("Message = %q, want the generic status text", statusErr.Message)
	}
}

func TestClient_MalformedPayload(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"future_amount": not-json`))
	})

	_, err := c.Calculate(context.Background(), testReq)
	if err == nil {
		t.Fatal("Calculate on malformed payload should fail")
	}
	if errors.Is(err, calc.ErrRateLimited) {
		t.Error("malformed payload must not map to ErrRateLimited")
	}
}

func TestClient_InvalidRequestNeverSent(t *testing.T) {
	var calls atomic.Int64
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`{}`))
	})

	_, err := c.Calculate(context.Background(), calc.Request{Cost: -1, Rate: 6, Years: 10})
	if !errors.Is(err, calc.ErrInvalidCost) {
		t.Errorf("Calculate with invalid request = %v, want ErrInvalidCost", err)
	}
	if calls.Load() != 0 {
		t.Error("invalid request reached the network")
	}
}

func TestClient_CollapsesIdenticalConcurrentRequests(t *testing.T) {
	var calls atomic.Int64
	release := make(chan struct{})
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		<-release
		w.Write([]byte(`{"future_amount": 4476000}`))
	})

	const callers = 5
	var wg sync.WaitGroup
	wg.Add(callers)
	for i := 0; i < callers; i++ {
		go func() {
			defer wg.Done()
			if _, err := c.Calculate(context.Background(), testReq); err != nil {
				t.Errorf("Calculate failed: %v", err)
			}
		}()
	}

	// Give the goroutines time to pile onto the same key, then release.
	time.Sleep(100 * time.Millisecond)
	close(release)
	wg.Wait()

	if calls.Load() != 1 {
		t.Errorf("server saw %d calls for identical concurrent requests, want 1", calls.Load())
	}
}
