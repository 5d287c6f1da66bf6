// Package server wires configuration, logging, metrics, the session store,
// the upstream answer clients, and the query router into a gin HTTP server.
package server
