package typing

import (
	"regexp"
	"strings"
)

var numberedLine = regexp.MustCompile(`^\d+\s*[.)]`)

const (
	// EquationIndent is the auto-indent in spaces before a line-leading equation
	EquationIndent = 2
	// ContainerIndent is the auto-indent in spaces before a container
	ContainerIndent = 1
)

// Context is the formatting and cursor state of one session. Every
// insertion reads and mutates it. Create it with New.
type Context struct {
	LineStart        bool  `json:"line_start"`
	FirstLineWritten bool  `json:"first_line_written"`
	PendingAlign     Align `json:"pending_align"`
	ActiveAlign      Align `json:"active_align"`
	LastWasEquation  bool  `json:"last_was_equation"`
	InBox            bool  `json:"in_box"`
	BoxLineStart     bool  `json:"box_line_start"`
	Underline        bool  `json:"underline"`
	Bold             bool  `json:"bold"`

	// skipIndent marks a line whose right alignment was applied at its start
	skipIndent bool
}

// New returns the context of a fresh session
func New() *Context {
	c := &Context{}
	c.Reset()
	return c
}

// Reset returns the context to its initial state
func (c *Context) Reset() {
	*c = Context{LineStart: true}
}

// Snapshot returns a copy safe to hand to other goroutines
func (c *Context) Snapshot() Context {
	return *c
}

// NormalizeTab turns an escaped tab prefix ("\t" typed as two characters,
// or "/t") into a literal tab
func NormalizeTab(text string) string {
	if strings.HasPrefix(text, `\t`) || strings.HasPrefix(text, "/t") {
		return "\t" + text[2:]
	}
	return text
}

// IsNumberedLine reports whether text opens a numbered list item such as
// "2." or "3)". Such lines never receive auto-indent.
func IsNumberedLine(text string) bool {
	return numberedLine.MatchString(text)
}

// ArmAlign requests alignment for the next line only. The last request
// before the line starts wins.
func (c *Context) ArmAlign(a Align) {
	c.PendingAlign = a
}

// NeedsBreakBefore reports whether a tab-led line must start on a fresh
// paragraph instead of sharing the current one
func (c *Context) NeedsBreakBefore(text string) bool {
	return c.LineStart && c.FirstLineWritten && strings.HasPrefix(text, "\t")
}

// StartLine consumes the pending alignment when the cursor is at a line
// start and returns the alignment to apply, or AlignNone
func (c *Context) StartLine() Align {
	if !c.LineStart || c.PendingAlign == AlignNone {
		return AlignNone
	}
	a := c.PendingAlign
	c.PendingAlign = AlignNone
	c.ActiveAlign = a
	c.skipIndent = a == AlignRight
	return a
}

// PrepareText rewrites text for insertion at the cursor. indent is the
// configured auto-indent for plain text lines; it is added only on a line
// start that carries no explicit indentation.
func (c *Context) PrepareText(text string, indent int) string {
	pad := 0
	if c.LineStart {
		switch {
		case strings.HasPrefix(text, "\t"), strings.HasPrefix(text, " "):
			c.LineStart = false
		case c.skipIndent, c.InBox, !c.FirstLineWritten, IsNumberedLine(text):
			// no auto-indent
		default:
			pad = indent
		}
	}

	if c.skipIndent {
		text = strings.TrimLeft(text, " \t")
	}
	if c.LastWasEquation && strings.HasPrefix(text, " ") {
		text = text[1:]
	}
	if c.InBox && c.BoxLineStart {
		if !strings.HasPrefix(text, " ") {
			text = " " + text
		}
		c.BoxLineStart = false
	}
	if pad > 0 {
		text = strings.Repeat(" ", pad) + text
	}
	return text
}

// SplitEquationTab separates a leading tab from equation markup when the
// equation opens a line
func (c *Context) SplitEquationTab(markup string) (tab bool, rest string) {
	if c.LineStart && strings.HasPrefix(markup, "\t") {
		return true, strings.TrimLeft(markup, "\t")
	}
	return false, markup
}

// EquationIndent returns the spaces to insert before an equation
func (c *Context) EquationIndent() int {
	if c.skipIndent {
		return 0
	}
	return c.lineIndent(EquationIndent)
}

// ContainerIndent returns the spaces to insert before a container. No
// indent is added while an alignment request is pending.
func (c *Context) ContainerIndent() int {
	if c.PendingAlign != AlignNone {
		return 0
	}
	return c.lineIndent(ContainerIndent)
}

func (c *Context) lineIndent(spaces int) int {
	if c.InBox || !c.LineStart || !c.FirstLineWritten {
		return 0
	}
	return spaces
}

// Indented records raw indentation written at the line start
func (c *Context) Indented() {
	c.LineStart = false
}

// Wrote records a completed insertion
func (c *Context) Wrote(equation bool) {
	c.LineStart = false
	c.LastWasEquation = equation
	c.FirstLineWritten = true
	c.skipIndent = false
}

// LineBreak records a paragraph break. It returns true when the line
// carried an alignment override that must be reverted to left.
func (c *Context) LineBreak() bool {
	c.LineStart = true
	c.skipIndent = false
	if c.InBox {
		c.BoxLineStart = false
	}
	revert := c.ActiveAlign != AlignNone && c.ActiveAlign != AlignLeft
	c.ActiveAlign = AlignNone
	return revert
}

// ApplyAlign records an alignment applied outside the one-shot mechanism,
// such as centering a container cell. It is reverted at the next break.
func (c *Context) ApplyAlign(a Align) {
	if a == AlignLeft {
		c.ActiveAlign = AlignNone
		return
	}
	c.ActiveAlign = a
}

// EnterBox records that the cursor moved into a condition box
func (c *Context) EnterBox() {
	c.InBox = true
	c.BoxLineStart = true
	c.LineStart = false
	c.FirstLineWritten = true
}

// ResumeBox records that the cursor is inside a box past its first line,
// so no leading space is added
func (c *Context) ResumeBox() {
	c.InBox = true
	c.BoxLineStart = false
	c.LineStart = false
	c.FirstLineWritten = true
}

// EnterContainer records that the cursor moved into a container that is
// not a condition box
func (c *Context) EnterContainer() {
	c.LineStart = false
	c.FirstLineWritten = true
}

// LeaveBox records that the cursor left the condition box
func (c *Context) LeaveBox() {
	c.InBox = false
	c.BoxLineStart = false
}

// LeaveContainer records that the cursor is back in document flow on a
// fresh, left-aligned line
func (c *Context) LeaveContainer() {
	c.LineStart = true
	c.ActiveAlign = AlignNone
	c.skipIndent = false
}

// SetBold mirrors the last requested bold state
func (c *Context) SetBold(on bool) {
	c.Bold = on
}

// SetUnderline mirrors the last requested underline state
func (c *Context) SetUnderline(on bool) {
	c.Underline = on
}
