// Package cache provides a bounded in-memory store for calculation
// results with lazy timestamp-based expiry and oldest-insertion eviction.
package cache
