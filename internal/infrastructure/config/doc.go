// Package config loads service configuration from environment variables,
// with sane defaults for local development.
package config
