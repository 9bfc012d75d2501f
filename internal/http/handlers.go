package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/GriffinCanCode/litepro/internal/api/middleware"
	"github.com/GriffinCanCode/litepro/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/litepro/internal/logging"
	"github.com/GriffinCanCode/litepro/internal/script"
	"github.com/GriffinCanCode/litepro/internal/service"
	"github.com/GriffinCanCode/litepro/internal/shared/types"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// Version is reported by the root endpoint
	Version = "0.3.0"

	stateTool       = "hwp.state"
	defaultDiscover = 5
	maxDiscover     = 50
	maxScriptSize   = 1 << 20
)

// Handlers contains all HTTP handlers
type Handlers struct {
	registry *service.Registry
	runner   *script.Runner
	metrics  *monitoring.Metrics
	logger   *logging.Logger
}

// NewHandlers creates a new handler set
func NewHandlers(registry *service.Registry, runner *script.Runner, metrics *monitoring.Metrics, logger *logging.Logger) *Handlers {
	return &Handlers{
		registry: registry,
		runner:   runner,
		metrics:  metrics,
		logger:   logger.Named("http"),
	}
}

// Root handles the liveness probe
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "litepro",
		"version": Version,
	})
}

// Health reports the registry and the automation session
func (h *Handlers) Health(c *gin.Context) {
	body := gin.H{
		"status":           "healthy",
		"service_registry": h.registry.Stats(),
	}

	if _, ok := h.registry.Tool(stateTool); ok {
		result, err := h.registry.Execute(c.Request.Context(), stateTool, nil, nil)
		if err == nil && result.Success {
			body["automation"] = result.Data["state"]
		} else {
			body["status"] = "degraded"
		}
	}

	c.JSON(http.StatusOK, body)
}

// ListServices lists all available services
func (h *Handlers) ListServices(c *gin.Context) {
	var category *types.Category
	if raw := c.Query("category"); raw != "" {
		cat := types.Category(raw)
		if cat != types.CategoryDocument && cat != types.CategorySystem {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown category: " + raw})
			return
		}
		category = &cat
	}

	c.JSON(http.StatusOK, gin.H{
		"services": h.registry.List(category),
		"stats":    h.registry.Stats(),
	})
}

// DiscoverServices finds tools matching a free-text query
func (h *Handlers) DiscoverServices(c *gin.Context) {
	var req types.DiscoverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	limit := req.Limit
	if limit <= 0 {
		limit = defaultDiscover
	}
	if limit > maxDiscover {
		limit = maxDiscover
	}

	c.JSON(http.StatusOK, gin.H{
		"query": req.Query,
		"tools": h.registry.Discover(req.Query, limit),
	})
}

// ExecuteService executes a service tool
func (h *Handlers) ExecuteService(c *gin.Context) {
	var req types.ExecuteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req.ToolID = strings.TrimSpace(req.ToolID)

	if _, ok := h.registry.Tool(req.ToolID); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown tool: " + req.ToolID})
		return
	}

	result, err := h.registry.Execute(c.Request.Context(), req.ToolID, req.Params, h.appContext(c, req.Target))
	if err != nil {
		h.logger.Error("tool execution failed", zap.String("tool", req.ToolID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// RunScript parses an inline typing script and runs it
func (h *Handlers) RunScript(c *gin.Context) {
	var req types.ScriptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req.Source) > maxScriptSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "script too large"})
		return
	}

	format, err := script.ParseFormat(req.Format)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s, err := script.Parse([]byte(req.Source), format)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Target != "" {
		s.Target = req.Target
	}
	s.ContinueOnError = s.ContinueOnError || req.ContinueOnError

	report, err := h.runner.Run(c.Request.Context(), s)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"success": true, "report": report})
	case errors.Is(err, script.ErrStepFailed):
		c.JSON(http.StatusOK, gin.H{"success": false, "error": err.Error(), "report": report})
	default:
		h.logger.Warn("script aborted", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "error": err.Error(), "report": report})
	}
}

// MetricsSnapshot returns the metric counters as JSON
func (h *Handlers) MetricsSnapshot(c *gin.Context) {
	c.JSON(http.StatusOK, h.metrics.GetSnapshot())
}

func (h *Handlers) appContext(c *gin.Context, target string) *types.Context {
	appCtx := &types.Context{}
	if rid := middleware.GetRequestID(c); rid != "" {
		appCtx.RequestID = &rid
	}
	if target = strings.TrimSpace(target); target != "" {
		appCtx.Target = &target
	}
	return appCtx
}
