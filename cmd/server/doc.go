// Package main is the entry point for the clio assistant server.
//
// The server answers user questions through a quick-lookup service with a
// generative-model fallback, and, when the session has authorized it, by
// reading the local browser's visit history.
//
// Configuration comes from environment variables (see the config package);
// the -port and -dev flags override the environment for local runs.
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
