// Package config loads configuration from environment variables with
// defaults suited to a single workstation.
//
// Configuration Sections:
//   - Server: HTTP listen address (PORT, HOST)
//   - Automation: word processor attachment, searches, equations, images (HWP_*)
//   - Breaker: transport circuit breaker (BREAKER_THRESHOLD, BREAKER_TIMEOUT)
//   - Logging: LOG_LEVEL, LOG_DEV
//   - RateLimit: RATE_LIMIT_RPS, RATE_LIMIT_BURST, RATE_LIMIT_ENABLED
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	fmt.Printf("listening on %s:%s\n", cfg.Server.Host, cfg.Server.Port)
package config
