// Package calc defines the domain model for future-value-under-inflation
// calculations: the request triple, the normalized result, the canonical
// cache key, and the error taxonomy shared by the client and the
// request coordinator.
package calc
