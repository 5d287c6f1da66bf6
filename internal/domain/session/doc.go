// Package session owns per-user state across requests: the history-access
// authorization flag and a bounded conversation memory. The store is purely
// in-memory; history data itself is never retained here.
package session
