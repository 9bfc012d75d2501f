package types

// Category groups services
type Category string

const (
	CategoryDocument Category = "document"
	CategorySystem   Category = "system"
)

// Service describes a provider and the tools it exposes
type Service struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Category     Category `json:"category"`
	Capabilities []string `json:"capabilities"`
	Tools        []Tool   `json:"tools"`
}

// Tool describes one callable operation
type Tool struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Parameters  []Parameter `json:"parameters"`
	Returns     string      `json:"returns"`
}

// Parameter describes a tool parameter
type Parameter struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
}

// Context identifies the caller of a tool
type Context struct {
	RequestID *string `json:"request_id,omitempty"`
	RunID     *string `json:"run_id,omitempty"`
	Target    *string `json:"target,omitempty"`
}

// Result is the outcome of a tool call
type Result struct {
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Error   *string                `json:"error,omitempty"`
	Kind    string                 `json:"kind,omitempty"`
}
