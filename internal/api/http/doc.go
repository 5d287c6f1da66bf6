// Package http contains the gin handlers for the assistant's routes. Every
// route answers 200 with a JSON text payload; failures travel as text, not
// as HTTP errors.
package http
