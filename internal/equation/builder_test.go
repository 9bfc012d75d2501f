package equation

import (
	"testing"

	"github.com/GriffinCanCode/litepro/internal/automation"
	"github.com/GriffinCanCode/litepro/internal/automation/automationtest"
	"github.com/GriffinCanCode/litepro/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBuilder(fake *automationtest.Fake) *Builder {
	return NewBuilder(automation.NewExecutor(fake), logging.NewNop())
}

func TestInsertBuildsEquation(t *testing.T) {
	fake := automationtest.New()

	require.NoError(t, newBuilder(fake).Insert("x^{2}", DefaultOptions()))

	created := fake.Executed("EquationCreate")
	require.Len(t, created, 1)
	assert.Equal(t, "HEqEdit", created[0].Set.Name)
	assert.Equal(t, "x^{2}", created[0].Set.Items["String"])
	assert.Equal(t, 800, created[0].Set.Items["BaseUnit"])
	assert.Equal(t, DefaultFont, created[0].Set.Items["EqFontName"])
	assert.True(t, fake.Has("run:SelectCtrlReverse"))
	assert.Equal(t, " ", fake.Inserted(), "equations carry trailing spacing")
}

func TestInsertFallsBackToCreatedSet(t *testing.T) {
	fake := automationtest.New()
	fake.Fail("execute:EquationCreate", 1)

	require.NoError(t, newBuilder(fake).Insert("a", Options{FontSizePt: 10}))

	created := fake.Executed("EquationCreate")
	require.Len(t, created, 1)
	assert.Equal(t, automation.ShapeCreated, created[0].Set.Shape)
	assert.Equal(t, 1000, created[0].Set.Items["BaseUnit"])
}

func TestInsertOptions(t *testing.T) {
	fake := automationtest.New()
	opts := Options{EnsureNewline: true}

	require.NoError(t, newBuilder(fake).Insert("a", opts))
	assert.True(t, fake.Has("run:BreakPara"))
	assert.False(t, fake.Has("run:SelectCtrlReverse"), "block equations are not made inline")
}

func TestInsertFailures(t *testing.T) {
	t.Run("empty markup", func(t *testing.T) {
		err := newBuilder(automationtest.New()).Insert("", DefaultOptions())
		assert.ErrorIs(t, err, automation.ErrInvalidArgument)
	})

	t.Run("creation refused", func(t *testing.T) {
		fake := automationtest.New().Reject("execute:EquationCreate")
		err := newBuilder(fake).Insert("a", DefaultOptions())
		assert.ErrorIs(t, err, automation.ErrAutomationFailure)
		assert.Empty(t, fake.Inserted())
	})
}
