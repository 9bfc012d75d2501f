package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/GriffinCanCode/litepro/internal/shared/types"
)

// Registry manages service discovery and tool execution
type Registry struct {
	services sync.Map
}

// Provider is implemented by every service
type Provider interface {
	Definition() types.Service
	Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error)
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a service provider
func (r *Registry) Register(provider Provider) error {
	def := provider.Definition()
	if def.ID == "" {
		return fmt.Errorf("service ID cannot be empty")
	}
	r.services.Store(def.ID, provider)
	return nil
}

// Unregister removes a service provider
func (r *Registry) Unregister(serviceID string) {
	r.services.Delete(serviceID)
}

// Get retrieves a service by ID
func (r *Registry) Get(serviceID string) (Provider, bool) {
	val, ok := r.services.Load(serviceID)
	if !ok {
		return nil, false
	}
	return val.(Provider), true
}

// List returns registered services ordered by ID, optionally filtered by
// category
func (r *Registry) List(category *types.Category) []types.Service {
	var services []types.Service
	r.services.Range(func(_, value interface{}) bool {
		def := value.(Provider).Definition()
		if category == nil || def.Category == *category {
			services = append(services, def)
		}
		return true
	})
	sort.Slice(services, func(i, j int) bool { return services[i].ID < services[j].ID })
	return services
}

// Tool looks up a tool definition by its full ID
func (r *Registry) Tool(toolID string) (types.Tool, bool) {
	serviceID, _, ok := strings.Cut(toolID, ".")
	if !ok {
		return types.Tool{}, false
	}
	provider, ok := r.Get(serviceID)
	if !ok {
		return types.Tool{}, false
	}
	for _, tool := range provider.Definition().Tools {
		if tool.ID == toolID {
			return tool, true
		}
	}
	return types.Tool{}, false
}

// Discover ranks tools matching a free-text query, best first
func (r *Registry) Discover(query string, limit int) []types.Tool {
	type scored struct {
		tool  types.Tool
		score int
	}

	words := strings.Fields(strings.ToLower(query))
	var results []scored
	r.services.Range(func(_, value interface{}) bool {
		for _, tool := range value.(Provider).Definition().Tools {
			if s := relevance(words, tool); s > 0 {
				results = append(results, scored{tool: tool, score: s})
			}
		}
		return true
	})

	sort.Slice(results, func(i, j int) bool {
		if results[i].score != results[j].score {
			return results[i].score > results[j].score
		}
		return results[i].tool.ID < results[j].tool.ID
	})

	out := make([]types.Tool, 0, limit)
	for i := 0; i < len(results) && i < limit; i++ {
		out = append(out, results[i].tool)
	}
	return out
}

// Execute runs a tool given as "service.tool"
func (r *Registry) Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	serviceID, _, ok := strings.Cut(toolID, ".")
	if !ok {
		return &types.Result{
			Success: false,
			Error:   stringPtr("invalid tool ID format"),
		}, fmt.Errorf("invalid tool ID format: %s", toolID)
	}

	provider, ok := r.Get(serviceID)
	if !ok {
		return &types.Result{
			Success: false,
			Error:   stringPtr(fmt.Sprintf("service not found: %s", serviceID)),
		}, fmt.Errorf("service not found: %s", serviceID)
	}

	return provider.Execute(ctx, toolID, params, appCtx)
}

// Stats returns registry statistics
func (r *Registry) Stats() map[string]interface{} {
	var total, totalTools int
	categories := make(map[string]int)

	r.services.Range(func(_, value interface{}) bool {
		def := value.(Provider).Definition()
		total++
		totalTools += len(def.Tools)
		categories[string(def.Category)]++
		return true
	})

	return map[string]interface{}{
		"total_services": total,
		"total_tools":    totalTools,
		"categories":     categories,
	}
}

func relevance(words []string, tool types.Tool) int {
	id := strings.ToLower(tool.ID)
	name := strings.ToLower(tool.Name)
	desc := strings.ToLower(tool.Description)

	score := 0
	for _, w := range words {
		switch {
		case strings.Contains(id, w):
			score += 10
		case strings.Contains(name, w):
			score += 5
		case strings.Contains(desc, w):
			score += 2
		}
	}
	return score
}

func stringPtr(s string) *string {
	return &s
}
