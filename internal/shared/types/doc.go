// Package types holds the data structures shared by the tool registry,
// the providers and the HTTP surface.
//
// Core types:
//   - Service: a provider definition with its tools
//   - Tool, Parameter: tool specification
//   - Context: caller context passed to providers
//   - Result: standard tool result
//
// Request types:
//   - ExecuteRequest: run one tool
//   - ScriptRequest: run a typing script
package types
