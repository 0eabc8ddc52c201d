package orchestrate

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jonwraymond/futurecost/cache"
	"github.com/jonwraymond/futurecost/calc"
	"github.com/jonwraymond/futurecost/observe"
	"github.com/jonwraymond/futurecost/resilience"
)

// Sentinel errors for coordinator construction.
var (
	ErrNoFetcher = errors.New("orchestrate: fetcher is required")
)

// Fetcher issues the remote calculation.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: rate limiting is signalled with calc.ErrRateLimited; logical
//   failures with *calc.StatusError; anything else is a transport error.
type Fetcher interface {
	Calculate(ctx context.Context, req calc.Request) (calc.Result, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, req calc.Request) (calc.Result, error)

// Calculate calls the function.
func (f FetcherFunc) Calculate(ctx context.Context, req calc.Request) (calc.Result, error) {
	return f(ctx, req)
}

// State is what the widget renders: the current result (nil before the
// first success), whether a fetch is actually in flight, and the current
// error. Loading is never true for a cache hit or a deferred wait.
type State struct {
	Result  *calc.Result
	Loading bool
	Err     error
}

// Config configures a Coordinator.
type Config struct {
	// Fetcher issues the remote calculation. Required.
	Fetcher Fetcher

	// Inputs is the shared input holder snapshotted on every request.
	// Default: a fresh holder with zero values.
	Inputs *Inputs

	// Cache stores calculation results. Default: an in-memory cache
	// with the default retention policy.
	Cache cache.Cache

	// Gate enforces the minimum spacing between outbound requests.
	// Default: a gate with the default interval.
	Gate *resilience.Gate

	// Notify publishes every state change. Called outside the
	// coordinator's lock; must not call back into the coordinator
	// synchronously. Optional.
	Notify func(State)

	// Logger and Metrics default to no-ops.
	Logger  observe.Logger
	Metrics observe.Metrics
}

// Coordinator is the request orchestration state machine for one widget
// instance: cache-hit vs. fetch, de-duplication of in-flight requests,
// deferral behind the spacing gate, and draining of the queued retry.
//
// Lifecycle: created at widget mount, Close at teardown. Close cancels
// the retry timer and suppresses further publishes.
type Coordinator struct {
	fetcher Fetcher
	inputs  *Inputs
	cache   cache.Cache
	gate    *resilience.Gate
	notify  func(State)
	log     observe.Logger
	metrics observe.Metrics

	mu          sync.Mutex
	state       State
	inFlight    bool
	retryQueued bool
	retryTimer  *time.Timer
	closed      bool
}

// New creates a Coordinator.
func New(config Config) (*Coordinator, error) {
	if config.Fetcher == nil {
		return nil, ErrNoFetcher
	}
	if config.Inputs == nil {
		config.Inputs = NewInputs(calc.Request{})
	}
	if config.Cache == nil {
		config.Cache = cache.NewMemory(cache.DefaultPolicy())
	}
	if config.Gate == nil {
		config.Gate = resilience.NewGate(resilience.GateConfig{})
	}
	if config.Logger == nil {
		config.Logger = observe.NopLogger()
	}
	if config.Metrics == nil {
		config.Metrics = observe.NopMetrics()
	}

	return &Coordinator{
		fetcher: config.Fetcher,
		inputs:  config.Inputs,
		cache:   config.Cache,
		gate:    config.Gate,
		notify:  config.Notify,
		log:     config.Logger.WithComponent("coordinator"),
		metrics: config.Metrics,
	}, nil
}

// Inputs returns the shared input holder.
func (c *Coordinator) Inputs() *Inputs {
	return c.inputs
}

// State returns the current published state.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Request runs one pass of the orchestration state machine using the
// latest input snapshot.
//
// While a fetch is in flight the call is a silent no-op: at most one
// fetch is outstanding per coordinator no matter how many triggers
// arrive. A valid cache entry is served without touching the network or
// the gate. A gate-blocked call queues a single retry for when the
// spacing elapses and changes no visible loading state.
func (c *Coordinator) Request(ctx context.Context) {
	c.mu.Lock()
	if c.closed || c.inFlight {
		c.mu.Unlock()
		return
	}

	req := c.inputs.Snapshot()
	if err := req.Validate(); err != nil {
		c.state.Loading = false
		c.state.Err = err
		st := c.state
		c.mu.Unlock()
		c.publish(st)
		return
	}

	key := req.Key()
	if entry, ok := c.cache.Get(key); ok && c.cache.Valid(entry) {
		c.cache.RecordHit(entry)
		res := entry.Result
		c.state = State{Result: &res}
		st := c.state
		c.mu.Unlock()

		c.metrics.RecordCacheHit(ctx)
		c.log.Debug(ctx, "served from cache",
			observe.Field{Key: "cache_key", Value: key},
			observe.Field{Key: "hits", Value: entry.HitCount()},
		)
		c.publish(st)
		return
	}

	if !c.gate.Allow() {
		if !c.retryQueued {
			c.retryQueued = true
			c.retryTimer = time.AfterFunc(c.gate.Remaining(), c.retryFire)
		}
		c.mu.Unlock()

		c.metrics.RecordDeferred(ctx)
		c.log.Debug(ctx, "request deferred by spacing gate",
			observe.Field{Key: "remaining_ms", Value: c.gate.Remaining().Milliseconds()},
		)
		return
	}

	c.inFlight = true
	c.state.Loading = true
	c.state.Err = nil
	st := c.state
	c.mu.Unlock()

	c.publish(st)
	go c.fetch(ctx, req, key)
}

func (c *Coordinator) fetch(ctx context.Context, req calc.Request, key string) {
	res, err := c.fetcher.Calculate(ctx, req)

	c.mu.Lock()
	c.inFlight = false

	switch {
	case errors.Is(err, calc.ErrRateLimited):
		// Rejected, not completed: neither the cache nor the spacing
		// clock moves.
		c.state.Loading = false
		c.state.Err = err
	case err != nil:
		c.state.Loading = false
		c.state.Err = err
		c.gate.MarkCompleted()
	default:
		c.cache.Put(key, res)
		result := res
		c.state = State{Result: &result}
		c.gate.MarkCompleted()
	}

	// Drain a queued retry once the remaining spacing has elapsed; the
	// retry re-reads the inputs at fire time.
	if c.retryQueued {
		if c.retryTimer != nil {
			c.retryTimer.Stop()
		}
		c.retryTimer = time.AfterFunc(c.gate.Remaining(), c.retryFire)
	}

	st := c.state
	closed := c.closed
	c.mu.Unlock()

	if !closed {
		c.publish(st)
	}
}

// retryFire drains the queued retry through the ordinary Request path,
// which snapshots the then-current inputs.
func (c *Coordinator) retryFire() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.retryQueued = false
	c.retryTimer = nil
	c.mu.Unlock()

	c.Request(context.Background())
}

func (c *Coordinator) publish(st State) {
	if c.notify != nil {
		c.notify(st)
	}
}

// Close releases the coordinator: the pending retry timer is cancelled
// and no further state is published. In-flight fetches are not
// interrupted; their responses are dropped silently.
func (c *Coordinator) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	if c.retryTimer != nil {
		c.retryTimer.Stop()
		c.retryTimer = nil
	}
}
