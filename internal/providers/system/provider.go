package system

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/GriffinCanCode/litepro/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/litepro/internal/logging"
	"github.com/GriffinCanCode/litepro/internal/platform"
	"github.com/GriffinCanCode/litepro/internal/shared/types"
	"go.uber.org/zap"
)

// Provider implements host information and the run log
type Provider struct {
	startTime time.Time
	logs      *CircularLogBuffer
	desktop   platform.Desktop
	metrics   *monitoring.Metrics
	logger    *logging.Logger
}

// CircularLogBuffer is a thread-safe circular buffer for log entries
type CircularLogBuffer struct {
	entries []*LogEntry
	head    int
	size    int
	maxSize int
	mu      sync.RWMutex
}

// LogEntry is a message recorded by a script or API caller
type LogEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"`
	Message   string    `json:"message"`
	RunID     string    `json:"run_id,omitempty"`
	RequestID string    `json:"request_id,omitempty"`
}

// NewProvider creates a system provider. metrics may be nil.
func NewProvider(desktop platform.Desktop, metrics *monitoring.Metrics, logger *logging.Logger) *Provider {
	return &Provider{
		startTime: time.Now(),
		logs:      NewCircularLogBuffer(1000),
		desktop:   desktop,
		metrics:   metrics,
		logger:    logger.Named("system"),
	}
}

// NewCircularLogBuffer creates a new circular buffer for logs
func NewCircularLogBuffer(maxSize int) *CircularLogBuffer {
	return &CircularLogBuffer{
		entries: make([]*LogEntry, maxSize),
		maxSize: maxSize,
	}
}

// Add inserts a log entry into the circular buffer
func (cb *CircularLogBuffer) Add(entry *LogEntry) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.entries[cb.head] = entry
	cb.head = (cb.head + 1) % cb.maxSize
	if cb.size < cb.maxSize {
		cb.size++
	}
}

// GetRecent returns up to limit matching entries, newest first
func (cb *CircularLogBuffer) GetRecent(limit int, levelFilter, runFilter string) []LogEntry {
	cb.mu.RLock()
	defer cb.mu.RUnlock()

	if limit > cb.size {
		limit = cb.size
	}

	result := make([]LogEntry, 0, limit)
	for i := 0; i < cb.size && len(result) < limit; i++ {
		idx := (cb.head - 1 - i + cb.maxSize) % cb.maxSize
		entry := cb.entries[idx]
		if entry == nil {
			continue
		}
		if levelFilter != "" && entry.Level != levelFilter {
			continue
		}
		if runFilter != "" && entry.RunID != runFilter {
			continue
		}
		result = append(result, *entry)
	}
	return result
}

// Definition returns service metadata
func (s *Provider) Definition() types.Service {
	return types.Service{
		ID:          "system",
		Name:        "System Service",
		Description: "Host information, word processor windows and the run log",
		Category:    types.CategorySystem,
		Capabilities: []string{
			"info",
			"windows",
			"logging",
			"monitoring",
		},
		Tools: []types.Tool{
			{
				ID:          "system.info",
				Name:        "System Info",
				Description: "Get host and process information",
				Parameters:  []types.Parameter{},
				Returns:     "object",
			},
			{
				ID:          "system.windows",
				Name:        "Word Processor Windows",
				Description: "List open word processor windows and the foreground document",
				Parameters:  []types.Parameter{},
				Returns:     "object",
			},
			{
				ID:          "system.metrics",
				Name:        "Automation Metrics",
				Description: "Get automation counters",
				Parameters:  []types.Parameter{},
				Returns:     "object",
			},
			{
				ID:          "system.log",
				Name:        "Log Message",
				Description: "Record a message in the run log",
				Parameters: []types.Parameter{
					{Name: "message", Type: "string", Description: "Log message", Required: true},
					{Name: "level", Type: "string", Description: "Log level (info/warn/error)", Required: false},
				},
				Returns: "boolean",
			},
			{
				ID:          "system.get_logs",
				Name:        "Get Logs",
				Description: "Retrieve recent run log messages",
				Parameters: []types.Parameter{
					{Name: "limit", Type: "number", Description: "Number of logs to retrieve", Required: false},
					{Name: "level", Type: "string", Description: "Filter by log level", Required: false},
					{Name: "run_id", Type: "string", Description: "Filter by script run", Required: false},
				},
				Returns: "array",
			},
			{
				ID:          "system.ping",
				Name:        "Ping",
				Description: "Test service availability",
				Parameters:  []types.Parameter{},
				Returns:     "object",
			},
		},
	}
}

// Execute runs a system operation
func (s *Provider) Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	switch toolID {
	case "system.info":
		return s.info()
	case "system.windows":
		return s.windows()
	case "system.metrics":
		return success(map[string]interface{}{"snapshot": s.metrics.GetSnapshot()})
	case "system.log":
		return s.log(params, appCtx)
	case "system.get_logs":
		return s.getLogs(params)
	case "system.ping":
		return s.ping()
	default:
		return failure(fmt.Sprintf("unknown tool: %s", toolID))
	}
}

func (s *Provider) info() (*types.Result, error) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return success(map[string]interface{}{
		"go_version":         runtime.Version(),
		"os":                 runtime.GOOS,
		"arch":               runtime.GOARCH,
		"automation_support": platform.Supported(),
		"goroutines":         runtime.NumGoroutine(),
		"memory_alloc":       m.Alloc / 1024 / 1024, // MB
		"uptime_seconds":     time.Since(s.startTime).Seconds(),
	})
}

func (s *Provider) windows() (*types.Result, error) {
	titles := platform.FindWindows(s.desktop)
	if titles == nil {
		titles = []string{}
	}
	return success(map[string]interface{}{
		"windows":    titles,
		"foreground": platform.ForegroundDocumentName(s.desktop),
		"current":    platform.CurrentFilename(s.desktop),
	})
}

func (s *Provider) log(params map[string]interface{}, ctx *types.Context) (*types.Result, error) {
	message, ok := params["message"].(string)
	if !ok || strings.TrimSpace(message) == "" {
		return failure("message required")
	}

	level := "info"
	if l, ok := params["level"].(string); ok && l != "" {
		level = strings.ToLower(l)
	}

	entry := &LogEntry{
		Timestamp: time.Now(),
		Level:     level,
		Message:   message,
	}
	if ctx != nil && ctx.RunID != nil {
		entry.RunID = *ctx.RunID
	}
	if ctx != nil && ctx.RequestID != nil {
		entry.RequestID = *ctx.RequestID
	}
	s.logs.Add(entry)

	fields := []zap.Field{zap.String("message", message), zap.String("run_id", entry.RunID)}
	switch level {
	case "error":
		s.logger.Error("run log", fields...)
	case "warn":
		s.logger.Warn("run log", fields...)
	default:
		s.logger.Info("run log", fields...)
	}

	return success(map[string]interface{}{"logged": true})
}

func (s *Provider) getLogs(params map[string]interface{}) (*types.Result, error) {
	limit := 100
	if l, ok := params["limit"].(float64); ok && l > 0 {
		limit = int(l)
	}

	level, _ := params["level"].(string)
	runID, _ := params["run_id"].(string)
	logs := s.logs.GetRecent(limit, level, runID)

	return success(map[string]interface{}{
		"logs":  logs,
		"count": len(logs),
	})
}

func (s *Provider) ping() (*types.Result, error) {
	return success(map[string]interface{}{
		"pong":      true,
		"timestamp": time.Now().Unix(),
	})
}

func success(data map[string]interface{}) (*types.Result, error) {
	return &types.Result{Success: true, Data: data}, nil
}

func failure(message string) (*types.Result, error) {
	msg := message
	return &types.Result{Success: false, Error: &msg}, nil
}
