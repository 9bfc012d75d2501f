package automation_test

import (
	"errors"
	"testing"
	"time"

	"github.com/GriffinCanCode/litepro/internal/automation"
	"github.com/GriffinCanCode/litepro/internal/automation/automationtest"
	"github.com/GriffinCanCode/litepro/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/litepro/internal/infrastructure/resilience"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCascadeStopsAtFirstSuccess(t *testing.T) {
	tests := []struct {
		name     string
		failing  int
		wantErr  bool
		wantKeys []string
	}{
		{
			name:     "first strategy succeeds",
			failing:  0,
			wantKeys: []string{"run:A"},
		},
		{
			name:     "falls through to third",
			failing:  2,
			wantKeys: []string{"run:A", "run:B", "run:C"},
		},
		{
			name:     "all fail",
			failing:  3,
			wantErr:  true,
			wantKeys: []string{"run:A", "run:B", "run:C"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := automationtest.New()
			names := []string{"A", "B", "C"}
			for _, n := range names[:tt.failing] {
				fake.Reject("run:" + n)
			}
			exec := automation.NewExecutor(fake)

			_, err := exec.Cascade("op",
				automation.RunAction("A"),
				automation.RunAction("B"),
				automation.RunAction("C"),
			)

			assert.Equal(t, tt.wantKeys, fake.Keys())
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, automation.ErrAutomationFailure)
				assert.ErrorIs(t, err, automationtest.ErrRejected)
				return
			}
			require.NoError(t, err)
			assert.Len(t, fake.Succeeded(), 1)
		})
	}
}

func TestCascadeReturnsResult(t *testing.T) {
	fake := automationtest.New()
	fake.Handle("invoke:Answer", func(*automationtest.Fake, automationtest.Call) (interface{}, error) {
		return 42, nil
	})
	exec := automation.NewExecutor(fake)

	result, err := exec.Cascade("answer", automation.Method("Missing"), automation.Method("Answer"))
	require.NoError(t, err)
	assert.Equal(t, 42, result)
}

func TestCascadeWithoutStrategies(t *testing.T) {
	exec := automation.NewExecutor(automationtest.New())
	_, err := exec.Cascade("nothing")
	assert.ErrorIs(t, err, automation.ErrAutomationFailure)
}

func TestSequenceRequiresEveryStep(t *testing.T) {
	fake := automationtest.New().Reject("run:MoveDown")
	fake.InCell = true
	exec := automation.NewExecutor(fake)

	_, err := exec.Cascade("exit",
		automation.Sequence("close", automation.RunAction("CloseEx"), automation.RunAction("MoveDown")),
	)
	assert.Error(t, err)
	assert.Equal(t, []string{"run:CloseEx", "run:MoveDown"}, fake.Keys())
}

func TestRunFallsBackToRunByName(t *testing.T) {
	fake := automationtest.New().Reject("run:BreakPara")
	exec := automation.NewExecutor(fake)

	require.NoError(t, exec.Run("BreakPara"))
	assert.Equal(t, []string{"run:BreakPara", "runbyname:BreakPara"}, fake.Keys())
	assert.True(t, fake.Has("runbyname:BreakPara"))
}

func TestTryRunNeverFails(t *testing.T) {
	fake := automationtest.New().RejectAction("Cancel")
	exec := automation.NewExecutor(fake)
	assert.False(t, exec.TryRun("Cancel"))
	assert.True(t, exec.TryRun("MoveDown"))
}

func TestExecuteTriesBothSetShapes(t *testing.T) {
	fake := automationtest.New()
	first := true
	fake.Handle("execute:CharShape", func(_ *automationtest.Fake, c automationtest.Call) (interface{}, error) {
		if first {
			first = false
			return nil, errors.New("structured set missing")
		}
		return true, nil
	})
	exec := automation.NewExecutor(fake)

	_, err := exec.Execute("CharShape", "HCharShape", automation.Params{"Bold": 1})
	require.NoError(t, err)
	require.Len(t, fake.Calls, 2)
	assert.Equal(t, automation.ShapeStructured, fake.Calls[0].Set.Shape)
	assert.Equal(t, automation.ShapeCreated, fake.Calls[1].Set.Shape)
	assert.Equal(t, 1, fake.Calls[1].Set.Items["Bold"])
}

func TestBreakerOpensOnUnavailable(t *testing.T) {
	fake := automationtest.New()
	fake.Unavailable = true
	breaker := resilience.New("hwp", resilience.Settings{
		Timeout: time.Minute,
		ReadyToTrip: func(c resilience.Counts) bool {
			return c.ConsecutiveFailures >= 2
		},
		IsFailure: func(err error) bool { return errors.Is(err, automation.ErrUnavailable) },
	})
	exec := automation.NewExecutor(fake, automation.WithBreaker(breaker))

	_, err := exec.Cascade("op", automation.RunAction("A"), automation.RunAction("B"))
	assert.ErrorIs(t, err, automation.ErrAutomationFailure)
	assert.Equal(t, resilience.StateOpen, breaker.State())

	calls := len(fake.Calls)
	_, err = exec.Cascade("op", automation.RunAction("A"))
	assert.ErrorIs(t, err, automation.ErrNotConnected)
	assert.Len(t, fake.Calls, calls, "open breaker must not reach the transport")
}

func TestBreakerIgnoresRoutineRefusals(t *testing.T) {
	fake := automationtest.New().RejectAction("TableCellBlock")
	breaker := resilience.New("hwp", resilience.Settings{
		ReadyToTrip: func(c resilience.Counts) bool { return c.ConsecutiveFailures >= 1 },
		IsFailure:   func(err error) bool { return errors.Is(err, automation.ErrUnavailable) },
	})
	exec := automation.NewExecutor(fake, automation.WithBreaker(breaker))

	for i := 0; i < 5; i++ {
		exec.TryRun("TableCellBlock")
	}
	assert.Equal(t, resilience.StateClosed, breaker.State())
}

func TestCascadeRecordsMetrics(t *testing.T) {
	metrics := monitoring.NewMetrics()
	fake := automationtest.New().Reject("run:A")
	exec := automation.NewExecutor(fake, automation.WithMetrics(metrics))

	_, err := exec.Cascade("op", automation.RunAction("A"), automation.RunAction("B"))
	require.NoError(t, err)

	snap := metrics.GetSnapshot()
	assert.Equal(t, int64(2), snap.StrategyAttempts)
	assert.Equal(t, int64(1), snap.StrategyFailures)
	assert.Equal(t, int64(0), snap.CascadesFailed)
}
