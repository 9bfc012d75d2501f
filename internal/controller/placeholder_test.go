package controller_test

import (
	"testing"

	"github.com/GriffinCanCode/litepro/internal/automation"
	"github.com/GriffinCanCode/litepro/internal/automation/automationtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFocusHashPlaceholderVariants(t *testing.T) {
	for _, variant := range automation.Variants(automation.MarkerHash) {
		t.Run(variant, func(t *testing.T) {
			fake := automationtest.New()
			fake.Doc = "문제 " + variant + " 끝"
			c := connected(t, fake)

			found, err := c.FocusPlaceholder("###")
			require.NoError(t, err)

			assert.True(t, found)
			assert.Equal(t, "문제  끝", fake.Doc)
		})
	}
}

func TestFocusHashPlaceholderFailsClosed(t *testing.T) {
	fake := automationtest.New()
	fake.Doc = "no markers here"
	fake.Pos = 5
	c := connected(t, fake)

	found, err := c.FocusPlaceholder("###")
	require.NoError(t, err)

	assert.False(t, found)
	assert.Equal(t, 5, fake.Pos)
	assert.Equal(t, "no markers here", fake.Doc)
	assert.False(t, typingState(c).InBox)
}

func TestFocusHashPlaceholderFromHeading(t *testing.T) {
	fake := automationtest.New()
	fake.Doc = "문제 <보기>"
	fake.CellAfter = 1
	c := connected(t, fake)

	found, err := c.FocusPlaceholder("###")
	require.NoError(t, err)

	assert.True(t, found)
	assert.True(t, fake.InCell)
	st := typingState(c)
	assert.True(t, st.InBox)
	assert.True(t, st.BoxLineStart)
}

func TestFocusHashPlaceholderForwardProbe(t *testing.T) {
	fake := automationtest.New()
	fake.CellAfter = 3
	c := connected(t, fake)

	found, err := c.FocusPlaceholder("###")
	require.NoError(t, err)

	assert.True(t, found)
	assert.True(t, fake.InCell)
	assert.True(t, typingState(c).InBox)
}

func TestFocusPlaceholder(t *testing.T) {
	tests := []struct {
		name      string
		marker    string
		doc       string
		want      bool
		wantDoc   string
		docStarts int
	}{
		{name: "at marker", marker: "@@@", doc: "a @@@ b", want: true, wantDoc: "a  b"},
		{name: "full width at marker", marker: "@@@", doc: "a ＠＠＠ b", want: true, wantDoc: "a  b"},
		{name: "missing at marker searches from top", marker: "@@@", doc: "a b", want: false, wantDoc: "a b", docStarts: 1},
		{name: "missing amp marker stays local", marker: "&&&", doc: "a b", want: false, wantDoc: "a b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := automationtest.New()
			fake.Doc = tt.doc
			fake.Pos = 7
			c := connected(t, fake)

			found, err := c.FocusPlaceholder(tt.marker)
			require.NoError(t, err)

			assert.Equal(t, tt.want, found)
			assert.Equal(t, tt.wantDoc, fake.Doc)
			assert.Equal(t, tt.docStarts, fake.Count("run:MoveDocBegin"))
			if !tt.want {
				assert.Equal(t, 7, fake.Pos)
			}
		})
	}
}

func TestFocusPlaceholderRetriesWhileRendering(t *testing.T) {
	fake := automationtest.New()
	fake.Doc = "@@@"
	fake.RenderAfter(3)
	c := connected(t, fake)

	found, err := c.FocusPlaceholder("@@@")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Empty(t, fake.Doc)
}

func TestFocusPlaceholderRejectsEmptyMarker(t *testing.T) {
	c := connected(t, automationtest.New())

	_, err := c.FocusPlaceholder("")
	assert.ErrorIs(t, err, automation.ErrInvalidArgument)
}

func TestCleanupKnownPlaceholdersRestoresCursor(t *testing.T) {
	fake := automationtest.New()
	fake.Doc = "a @@@ b ＃＃＃ c & & &"
	fake.Pos = 3
	c := connected(t, fake)

	require.NoError(t, c.CleanupKnownPlaceholders())

	assert.Equal(t, "a  b  c ", fake.Doc)
	assert.Equal(t, 3, fake.Pos)
	assert.Equal(t, 3, fake.Count("run:MoveDocBegin"))
}

func TestCleanupKnownPlaceholdersWithoutPositions(t *testing.T) {
	fake := automationtest.New()
	fake.Doc = "a @@@ b"
	fake.NoPositions = true
	c := connected(t, fake)

	require.NoError(t, c.CleanupKnownPlaceholders())

	assert.Equal(t, "a  b", fake.Doc)
	assert.Zero(t, fake.Count("run:MoveDocBegin"))
}

func TestCleanupKnownPlaceholdersNearCursor(t *testing.T) {
	fake := automationtest.New()
	fake.Doc = "x &&& y ### z"
	c := connected(t, fake)

	require.NoError(t, c.CleanupKnownPlaceholdersNearCursor())

	assert.Equal(t, "x  y  z", fake.Doc)
	assert.Zero(t, fake.Count("run:MoveDocBegin"))
	assert.Equal(t, 2, fake.Count("run:Cancel"))
}
