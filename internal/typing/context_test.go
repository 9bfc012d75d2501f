package typing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// written returns a context positioned at the start of a later line
func written() *Context {
	c := New()
	c.Wrote(false)
	c.LineBreak()
	return c
}

func TestNormalizeTab(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{`\tx`, "\tx"},
		{"/tx", "\tx"},
		{"\tx", "\tx"},
		{"x/t", "x/t"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeTab(tt.in), tt.in)
	}
}

func TestIsNumberedLine(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"2.", true},
		{"3) 다음", true},
		{"12 . x", true},
		{"x2.", false},
		{"2", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsNumberedLine(tt.text), tt.text)
	}
}

func TestNeedsBreakBefore(t *testing.T) {
	assert.False(t, New().NeedsBreakBefore("\tx"), "first line is never preceded by a break")
	assert.True(t, written().NeedsBreakBefore("\tx"))
	assert.False(t, written().NeedsBreakBefore("x"))

	c := written()
	c.Wrote(false)
	assert.False(t, c.NeedsBreakBefore("\tx"), "mid-line")
}

func TestStartLineConsumesPendingOnce(t *testing.T) {
	c := written()
	c.ArmAlign(AlignRight)
	c.ArmAlign(AlignRight)

	assert.Equal(t, AlignRight, c.StartLine())
	assert.Equal(t, AlignNone, c.PendingAlign)
	assert.Equal(t, AlignRight, c.ActiveAlign)
	c.PrepareText("score", 0)
	c.Wrote(false)

	assert.Equal(t, AlignNone, c.StartLine(), "same line must not re-apply")
}

func TestStartLineLastRequestWins(t *testing.T) {
	c := written()
	c.ArmAlign(AlignRight)
	c.ArmAlign(AlignJustify)
	assert.Equal(t, AlignJustify, c.StartLine())
}

func TestStartLineMidLineKeepsPending(t *testing.T) {
	c := written()
	c.Wrote(false)
	c.ArmAlign(AlignJustify)
	assert.Equal(t, AlignNone, c.StartLine())
	assert.Equal(t, AlignJustify, c.PendingAlign)
}

func TestPrepareText(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(c *Context)
		text   string
		indent int
		want   string
	}{
		{
			name:   "first line never indented",
			setup:  func(c *Context) {},
			text:   "x",
			indent: 2,
			want:   "x",
		},
		{
			name:   "later line indented",
			setup:  func(c *Context) { c.Wrote(false); c.LineBreak() },
			text:   "x",
			indent: 2,
			want:   "  x",
		},
		{
			name:   "numbered line exempt",
			setup:  func(c *Context) { c.Wrote(false); c.LineBreak() },
			text:   "2. x",
			indent: 2,
			want:   "2. x",
		},
		{
			name:   "explicit indentation kept",
			setup:  func(c *Context) { c.Wrote(false); c.LineBreak() },
			text:   " x",
			indent: 2,
			want:   " x",
		},
		{
			name: "right aligned line strips indentation",
			setup: func(c *Context) {
				c.Wrote(false)
				c.LineBreak()
				c.ArmAlign(AlignRight)
				c.StartLine()
			},
			text:   " \t(5점)",
			indent: 2,
			want:   "(5점)",
		},
		{
			name:  "one space dropped after equation",
			setup: func(c *Context) { c.Wrote(true) },
			text:  " x",
			want:  "x",
		},
		{
			name:  "two spaces keep one after equation",
			setup: func(c *Context) { c.Wrote(true) },
			text:  "  x",
			want:  " x",
		},
		{
			name:  "box first line gets a space",
			setup: func(c *Context) { c.EnterBox() },
			text:  "hi",
			want:  " hi",
		},
		{
			name:  "box first line keeps existing space",
			setup: func(c *Context) { c.EnterBox() },
			text:  " hi",
			want:  " hi",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			tt.setup(c)
			assert.Equal(t, tt.want, c.PrepareText(tt.text, tt.indent))
		})
	}
}

func TestPrepareTextInBoxOnlyOnce(t *testing.T) {
	c := New()
	c.EnterBox()

	assert.Equal(t, " hi", c.PrepareText("hi", 0))
	c.Wrote(false)
	assert.Equal(t, "more", c.PrepareText("more", 0))
}

func TestResumeBoxSkipsLeadingSpace(t *testing.T) {
	c := New()
	c.ResumeBox()

	assert.True(t, c.InBox)
	assert.False(t, c.LineStart)
	assert.Equal(t, "hi", c.PrepareText("hi", 0))
}

func TestLineBreak(t *testing.T) {
	for _, a := range []Align{AlignNone, AlignRight, AlignJustify, AlignCenter} {
		t.Run(a.String(), func(t *testing.T) {
			c := written()
			c.ArmAlign(a)
			c.StartLine()
			c.Wrote(false)

			revert := c.LineBreak()
			assert.Equal(t, a != AlignNone, revert)
			assert.True(t, c.LineStart)
			assert.Equal(t, AlignNone, c.ActiveAlign)
		})
	}
}

func TestLineBreakInBoxDoesNotRearmSpace(t *testing.T) {
	c := New()
	c.EnterBox()
	c.PrepareText("a", 0)
	c.Wrote(false)
	c.LineBreak()

	assert.False(t, c.BoxLineStart)
	assert.Equal(t, "b", c.PrepareText("b", 0))
}

func TestEquationIndent(t *testing.T) {
	assert.Equal(t, 0, New().EquationIndent())
	assert.Equal(t, EquationIndent, written().EquationIndent())

	c := written()
	c.EnterBox()
	c.LineStart = true
	assert.Equal(t, 0, c.EquationIndent())

	c = written()
	c.ArmAlign(AlignRight)
	c.StartLine()
	assert.Equal(t, 0, c.EquationIndent())
}

func TestSplitEquationTab(t *testing.T) {
	c := New()
	tab, rest := c.SplitEquationTab("\t\tx^2")
	assert.True(t, tab)
	assert.Equal(t, "x^2", rest)

	c.Wrote(false)
	tab, rest = c.SplitEquationTab("\tx")
	assert.False(t, tab)
	assert.Equal(t, "\tx", rest)
}

func TestContainerIndent(t *testing.T) {
	assert.Equal(t, ContainerIndent, written().ContainerIndent())

	c := written()
	c.ArmAlign(AlignJustify)
	assert.Equal(t, 0, c.ContainerIndent())
}

func TestLeaveContainer(t *testing.T) {
	c := New()
	c.EnterBox()
	c.ApplyAlign(AlignCenter)
	c.LeaveBox()
	c.LeaveContainer()

	assert.False(t, c.InBox)
	assert.False(t, c.BoxLineStart)
	assert.True(t, c.LineStart)
	assert.Equal(t, AlignNone, c.ActiveAlign)
}

func TestParseAlign(t *testing.T) {
	a, ok := ParseAlign(" Right ")
	assert.True(t, ok)
	assert.Equal(t, AlignRight, a)

	_, ok = ParseAlign("diagonal")
	assert.False(t, ok)
}
