// Package resilience contains the circuit breaker guarding the upstream
// answer services (the instant-answer lookup and the generative model).
//
// A breaker trips after a streak of consecutive failures, sheds calls with
// ErrCircuitOpen while open, and after a timeout lets a bounded number of
// probe requests through; enough probe successes close it again. Each
// upstream client owns one breaker, named for its service, and reports state
// changes through its logger.
package resilience
