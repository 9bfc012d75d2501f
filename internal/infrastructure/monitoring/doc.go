/*
Package monitoring provides Prometheus metrics for the automation driver.

# Features

- Strategy attempts per command cascade, by operation and outcome
- Exhausted cascades and cascade latency
- Transport circuit breaker transitions
- Insertions and placeholder searches
- Typing script steps
- HTTP request metrics

All Record methods accept a nil receiver so components can run without
metrics.

# Usage

	metrics := monitoring.NewMetrics()
	router.Use(monitoring.Middleware(metrics))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))
*/
package monitoring
