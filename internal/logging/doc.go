// Package logging provides structured logging using uber/zap.
//
// Two modes are available:
//   - Production: JSON output for machine parsing
//   - Development: Colored console output for human readability
//
// Logs go to stderr; stdout belongs to script results.
//
// Example Usage:
//
//	logger := logging.NewDefault()
//	exec := logger.Named("executor")
//	exec.Debug("strategy failed", zap.String("op", "TableCreate"), zap.Error(err))
package logging
