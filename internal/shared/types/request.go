package types

// ExecuteRequest runs a single tool
type ExecuteRequest struct {
	ToolID string                 `json:"tool_id" binding:"required"`
	Params map[string]interface{} `json:"params"`
	// Target optionally names the document to activate first
	Target string `json:"target,omitempty"`
}

// DiscoverRequest searches tools by free text
type DiscoverRequest struct {
	Query string `json:"query" binding:"required"`
	Limit int    `json:"limit,omitempty"`
}

// ScriptRequest runs a typing script supplied inline
type ScriptRequest struct {
	// Format is yaml, json or toml
	Format string `json:"format" binding:"required"`
	Source string `json:"source" binding:"required"`
	// Target optionally names the document to activate first
	Target string `json:"target,omitempty"`
	// ContinueOnError keeps running after a failed step
	ContinueOnError bool `json:"continue_on_error,omitempty"`
}
