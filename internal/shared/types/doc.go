// Package types defines the request and response shapes shared across the
// HTTP surface.
package types
