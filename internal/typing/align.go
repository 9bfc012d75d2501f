package typing

import "strings"

// Align is a paragraph alignment
type Align int

const (
	AlignNone Align = iota
	AlignLeft
	AlignRight
	AlignCenter
	AlignJustify
)

// String returns the string representation of the alignment
func (a Align) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignRight:
		return "right"
	case AlignCenter:
		return "center"
	case AlignJustify:
		return "justify"
	default:
		return "none"
	}
}

// Action returns the application action applying the alignment
func (a Align) Action() string {
	switch a {
	case AlignRight:
		return "ParagraphShapeAlignRight"
	case AlignCenter:
		return "ParagraphShapeAlignCenter"
	case AlignJustify:
		return "ParagraphShapeAlignJustify"
	default:
		return "ParagraphShapeAlignLeft"
	}
}

// MarshalText implements encoding.TextMarshaler
func (a Align) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// ParseAlign parses an alignment name
func ParseAlign(s string) (Align, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left":
		return AlignLeft, true
	case "right":
		return AlignRight, true
	case "center", "centre":
		return AlignCenter, true
	case "justify":
		return AlignJustify, true
	case "", "none":
		return AlignNone, true
	default:
		return AlignNone, false
	}
}
