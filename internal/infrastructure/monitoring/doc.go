/*
Package monitoring provides Prometheus metrics for the assistant.

Tracked concerns: HTTP requests, query routing by kind, the history
extraction pipeline (outcomes, durations, privacy-gate prompts and grants),
upstream answer-service calls, and live session count.

Usage:

	metrics := monitoring.NewMetrics()
	router.Use(monitoring.Middleware(metrics))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))
*/
package monitoring
