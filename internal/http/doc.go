// Package http provides the HTTP handlers of the automation API.
//
// Endpoints:
//   - Health: / and /health
//   - Services: /services, /services/discover, /services/execute
//   - Scripts: /scripts/run
//   - Metrics: /metrics/snapshot (Prometheus exposition lives at /metrics)
//
// Tool failures are not HTTP failures: a tool that ran and failed answers
// 200 with success=false and the error kind. Malformed requests answer 400
// and unknown tools 404.
package http
