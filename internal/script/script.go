package script

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
)

// DefaultService owns tool names written without a prefix
const DefaultService = "hwp"

// Format is a script serialization
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

var ErrUnknownFormat = errors.New("unknown script format")

// Script is an ordered list of tool calls
type Script struct {
	Name            string `yaml:"name" json:"name" toml:"name"`
	Target          string `yaml:"target" json:"target" toml:"target"`
	ContinueOnError bool   `yaml:"continue_on_error" json:"continue_on_error" toml:"continue_on_error"`
	Steps           []Step `yaml:"steps" json:"steps" toml:"steps"`
}

// Step is one tool call
type Step struct {
	Tool   string                 `yaml:"tool" json:"tool" toml:"tool"`
	Params map[string]interface{} `yaml:"params" json:"params" toml:"params"`
}

// ToolID returns the fully qualified tool ID
func (s Step) ToolID() string {
	if strings.Contains(s.Tool, ".") {
		return s.Tool
	}
	return DefaultService + "." + s.Tool
}

// ParseFormat accepts a format name or a file extension
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	case "toml":
		return FormatTOML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Load reads a script file, choosing the format by extension
func Load(path string) (*Script, error) {
	format, err := ParseFormat(filepath.Ext(path))
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	s, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return s, nil
}

// Parse decodes a script in any supported encoding
func Parse(data []byte, format Format) (*Script, error) {
	text, err := ToUTF8(data)
	if err != nil {
		return nil, fmt.Errorf("decode script: %w", err)
	}

	var s Script
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(text, &s)
	case FormatJSON:
		err = sonic.Unmarshal(text, &s)
	case FormatTOML:
		err = toml.Unmarshal(text, &s)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s script: %w", format, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks that every step names a tool
func (s *Script) Validate() error {
	if len(s.Steps) == 0 {
		return errors.New("script has no steps")
	}
	for i, step := range s.Steps {
		if strings.TrimSpace(step.Tool) == "" {
			return fmt.Errorf("step %d: tool required", i+1)
		}
	}
	return nil
}
