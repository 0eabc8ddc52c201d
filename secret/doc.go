// Package secret provides strict environment expansion for configuration
// values. The widget's endpoint and API key are supplied through the
// environment; expanding them strictly turns a missing variable into a
// startup error instead of an empty query parameter.
package secret
