// Package present derives display values from orchestrator state: currency
// strings with Indian digit grouping, the chart share percentage, and the
// two-slice pie geometry. Everything here is pure; no timers, no network.
package present
