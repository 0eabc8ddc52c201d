// Package resilience provides the temporal guards around the remote
// calculation call.
//
// Two guards are implemented:
//
//   - Gate: enforces a minimum spacing between consecutive outbound
//     requests. The gate only answers "may I send now" and "how long
//     until I may"; deferring and retrying blocked requests is the
//     coordinator's job.
//
//   - Debouncer: coalesces rapid successive input changes into a single
//     downstream trigger after a quiet period. Single-slot: each trigger
//     cancels any pending timer.
//
// The gate's clock advances only when a request's outcome is known
// (success or definitive failure), never at initiation. Back-to-back
// failures therefore never appear spaced out, and a rejected (429)
// request never advances the clock.
package resilience
