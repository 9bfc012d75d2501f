// Package middleware provides the gin middleware of the automation API.
//
//   - CORS: lets browser-based editors on the same machine call the API
//   - RateLimit: per-client token buckets, idle clients evicted
//   - GlobalRateLimit: one bucket for routes that drive the word processor
//   - RequestID: tags each request with a req_* ULID
//
// Example Usage:
//
//	router.Use(middleware.RequestID())
//	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
//	router.Use(middleware.RateLimit(middleware.DefaultRateLimitConfig()))
package middleware
