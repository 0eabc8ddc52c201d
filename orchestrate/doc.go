// Package orchestrate decides when and whether the remote calculation is
// asked for, and what happens with the answer.
//
// The Coordinator ties the cache, the spacing gate, and the fetcher into
// one state machine per widget instance:
//
//	Idle -> CacheCheck -> {Serve(cached) | RateGate}
//	     -> {FetchInFlight | Deferred} -> {Success | Failure} -> Idle
//
// Guarantees:
//
//   - De-duplication: while a fetch is in flight every further trigger
//     is a silent no-op, so fetches for one instance never overlap.
//   - Cache hits never touch the network or the gate.
//   - A gate-blocked request queues exactly one retry which fires after
//     the remaining spacing with the then-latest inputs.
//   - A rate-limited response updates neither the cache nor the spacing
//     clock; any other completed outcome advances the clock.
//
// In-flight fetches are not cancelled when inputs change again: the last
// response wins. This mirrors the widget's accepted behavior and keeps
// the state machine free of generation tracking.
package orchestrate
