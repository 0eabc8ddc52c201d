// Package client consumes the remote calculation service: it encodes the
// request triple into the service's query contract, maps rate-limit and
// logical-failure signals onto the calc error taxonomy, and normalizes
// sparse response payloads into complete results.
package client
