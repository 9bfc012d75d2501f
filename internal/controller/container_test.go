package controller_test

import (
	"testing"

	"github.com/GriffinCanCode/litepro/internal/automation"
	"github.com/GriffinCanCode/litepro/internal/automation/automationtest"
	"github.com/GriffinCanCode/litepro/internal/controller"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkCells(t *testing.T) {
	tests := []struct {
		name string
		flat []string
		cols int
		want [][]string
	}{
		{name: "even", flat: []string{"a", "b", "c", "d"}, cols: 2, want: [][]string{{"a", "b"}, {"c", "d"}}},
		{name: "ragged", flat: []string{"a", "b", "c"}, cols: 2, want: [][]string{{"a", "b"}, {"c"}}},
		{name: "empty", flat: nil, cols: 3, want: [][]string{}},
		{name: "no columns", flat: []string{"a"}, cols: 0, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, controller.ChunkCells(tt.flat, tt.cols))
		})
	}
}

func TestInsertTableRejectsBadDimensions(t *testing.T) {
	for _, dims := range [][2]int{{0, 3}, {2, 0}, {-1, 1}} {
		fake := automationtest.New()
		c := connected(t, fake)

		err := c.InsertTable(dims[0], dims[1], controller.TableOptions{})

		assert.ErrorIs(t, err, automation.ErrInvalidArgument)
		assert.Empty(t, fake.Calls)
	}
}

func TestInsertTableFillsAndExits(t *testing.T) {
	fake := automationtest.New()
	c := connected(t, fake)

	err := c.InsertTable(2, 2, controller.TableOptions{
		Cells: [][]string{{"a", "EQ:x^2"}, {"b", "c"}},
	})
	require.NoError(t, err)

	created := fake.Executed("TableCreate")
	require.Len(t, created, 1)
	assert.Equal(t, 2, created[0].Set.Items["Rows"])
	assert.Equal(t, 2, created[0].Set.Items["Cols"])

	equations := fake.Executed("EquationCreate")
	require.Len(t, equations, 1)
	assert.Equal(t, "x^2", equations[0].Set.Items["String"])

	assert.Equal(t, []string{"a", " ", "b", "c"}, fake.Text)
	assert.Equal(t, 2, fake.Count("run:TableRightCell"))
	assert.Equal(t, 1, fake.Count("run:TableLowerCell"))
	assert.Equal(t, 1, fake.Count("run:TableLeftCell"))
	assert.True(t, fake.Has("run:CloseEx"))
	assert.False(t, fake.InCell)

	st := typingState(c)
	assert.True(t, st.LineStart)
	assert.Equal(t, "left", fake.LastAlign())
}

func TestInsertTableSkipsEmptyEquationCells(t *testing.T) {
	tests := []string{"EQ:", "EQ:   "}

	for _, cell := range tests {
		t.Run(cell, func(t *testing.T) {
			fake := automationtest.New()
			c := connected(t, fake)

			err := c.InsertTable(1, 2, controller.TableOptions{
				Cells: [][]string{{cell, "b"}},
			})
			require.NoError(t, err)

			assert.Empty(t, fake.Executed("EquationCreate"))
			assert.Equal(t, []string{"b"}, fake.Text)
			assert.False(t, fake.InCell)
		})
	}
}

func TestInsertTableShortRowMovesBackOnlyWhatItMoved(t *testing.T) {
	fake := automationtest.New()
	c := connected(t, fake)

	err := c.InsertTable(2, 3, controller.TableOptions{
		Cells: [][]string{{"a"}, {"b", "c", "d"}},
	})
	require.NoError(t, err)

	assert.Equal(t, 0, fake.Count("run:TableLeftCell"))
	assert.Equal(t, 2, fake.Count("run:TableRightCell"))
}

func TestInsertTableStayInside(t *testing.T) {
	fake := automationtest.New()
	c := connected(t, fake)

	err := c.InsertTable(1, 2, controller.TableOptions{
		Cells:       [][]string{{"a", "b"}},
		AlignCenter: true,
		StayInside:  true,
	})
	require.NoError(t, err)

	assert.True(t, fake.InCell)
	assert.Zero(t, fake.Count("run:CloseEx"))
	assert.Equal(t, "center", fake.LastAlign())

	require.NoError(t, c.ExitTable())
	assert.False(t, fake.InCell)
	assert.True(t, typingState(c).LineStart)
}

func TestInsertTableCellMoveFailureSurfaces(t *testing.T) {
	fake := automationtest.New()
	fake.RejectAction("TableRightCell")
	c := connected(t, fake)

	err := c.InsertTable(1, 2, controller.TableOptions{Cells: [][]string{{"a", "b"}}})

	assert.ErrorIs(t, err, automation.ErrAutomationFailure)
	assert.True(t, typingState(c).LineStart)
}

func TestInsertTableCreationFailure(t *testing.T) {
	fake := automationtest.New()
	fake.Reject("execute:TableCreate")
	c := connected(t, fake)

	err := c.InsertTable(1, 1, controller.TableOptions{})

	assert.ErrorIs(t, err, automation.ErrAutomationFailure)
	assert.Zero(t, fake.Count("run:CloseEx"))
	assert.Equal(t, "left", fake.LastAlign())
}

func TestInsertBoxForcesOneLeadingSpace(t *testing.T) {
	fake := automationtest.New()
	c := connected(t, fake)

	require.NoError(t, c.InsertBox())
	require.NoError(t, c.InsertText("hi"))
	require.NoError(t, c.InsertText("more"))

	assert.Equal(t, []string{" hi", "more"}, fake.Text)
	assert.True(t, typingState(c).InBox)
}

func TestInsertBoxKeepsExplicitSpace(t *testing.T) {
	fake := automationtest.New()
	c := connected(t, fake)

	require.NoError(t, c.InsertBox())
	require.NoError(t, c.InsertText(" hi"))

	assert.Equal(t, []string{" hi"}, fake.Text)
}

func TestInsertBoxStylesContent(t *testing.T) {
	fake := automationtest.New()
	c := connected(t, fake)

	require.NoError(t, c.InsertBox())

	shapes := fake.Executed("CharShape")
	require.Len(t, shapes, 2)
	assert.Equal(t, "HyhwpEQ", shapes[0].Set.Optional["FaceName"])
	assert.Equal(t, 800, shapes[1].Set.Items["Height"])
	assert.Len(t, fake.Executed("ParaShape"), 1)
}

func TestInsertBoxFailsWithoutCell(t *testing.T) {
	fake := automationtest.New()
	fake.Handle("execute:TableCreate", func(f *automationtest.Fake, c automationtest.Call) (interface{}, error) {
		return true, nil
	})
	c := connected(t, fake)

	err := c.InsertBox()

	assert.ErrorIs(t, err, automation.ErrAutomationFailure)
	assert.False(t, typingState(c).InBox)
}

func TestExitBox(t *testing.T) {
	fake := automationtest.New()
	c := connected(t, fake)

	require.NoError(t, c.InsertBox())
	require.NoError(t, c.InsertText("hi"))
	require.NoError(t, c.ExitBox())

	st := typingState(c)
	assert.False(t, st.InBox)
	assert.True(t, st.LineStart)
	assert.Equal(t, "left", fake.LastAlign())
}

func TestExitBoxOutsideContainer(t *testing.T) {
	fake := automationtest.New()
	c := connected(t, fake)

	err := c.ExitBox()

	assert.ErrorIs(t, err, automation.ErrAutomationFailure)
	assert.False(t, typingState(c).InBox)
}

func TestInsertViewBox(t *testing.T) {
	fake := automationtest.New()
	c := connected(t, fake)

	require.NoError(t, c.InsertViewBox())
	require.NoError(t, c.InsertText("ㄱ. 보기"))

	assert.Equal(t, []string{"< 보 기 >", "\n", "ㄱ. 보기"}, fake.Text)
	st := typingState(c)
	assert.True(t, st.InBox)
	assert.False(t, st.BoxLineStart)
	assert.Equal(t, "justify", fake.LastAlign())
}
