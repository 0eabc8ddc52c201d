// Package health reports whether the remote calculation service is
// reachable. The widget probes the endpoint once at startup so a missing
// or misconfigured endpoint surfaces immediately instead of as the first
// calculation's error.
package health
