// Package history extracts visit records from a browser's local history
// database. Reads go against a transient snapshot copy of the store, never
// the live file, and nothing read here outlives the request.
package history
