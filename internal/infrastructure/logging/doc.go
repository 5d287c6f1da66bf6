// Package logging provides structured logging using uber/zap.
//
// Two modes are supported: production (JSON output) and development
// (colored console output at debug level). Handlers and domain code receive
// a *Logger and attach structured fields rather than formatting strings.
package logging
