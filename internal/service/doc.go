// Package service provides the tool registry.
//
// Providers register a Service definition; tools are addressed as
// "service.tool" and dispatched to the owning provider.
//
// Example Usage:
//
//	registry := service.NewRegistry()
//	registry.Register(hwpProvider)
//	tools := registry.Discover("insert table", 5)
//	result, err := registry.Execute(ctx, "hwp.insert_table", params, appCtx)
package service
