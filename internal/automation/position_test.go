package automation_test

import (
	"testing"

	"github.com/GriffinCanCode/litepro/internal/automation"
	"github.com/GriffinCanCode/litepro/internal/automation/automationtest"
	"github.com/stretchr/testify/assert"
)

func TestPositionRoundTrip(t *testing.T) {
	fake := automationtest.New()
	fake.Pos = 3
	store := automation.NewPositionStore(automation.NewExecutor(fake))

	pos := store.Capture()
	assert.Equal(t, 3, pos)

	fake.Pos = 9
	assert.True(t, store.Restore(pos))
	assert.Equal(t, 3, fake.Pos)
}

func TestPositionUnavailable(t *testing.T) {
	fake := automationtest.New()
	fake.NoPositions = true
	store := automation.NewPositionStore(automation.NewExecutor(fake))

	pos := store.Capture()
	assert.Nil(t, pos)
	assert.False(t, store.Restore(pos))
	assert.Equal(t, 1, fake.Count("getpos:GetPos"))
	assert.Zero(t, fake.Count("setpos:SetPos"))
}

func TestChanged(t *testing.T) {
	tests := []struct {
		name          string
		before, after automation.Position
		want          bool
	}{
		{"same", 1, 1, false},
		{"moved", 1, 2, true},
		{"unknown before", nil, 2, false},
		{"unknown after", 1, nil, false},
		{"tuples", []int{1, 2, 3}, []int{1, 2, 4}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, automation.Changed(tt.before, tt.after))
		})
	}
}
