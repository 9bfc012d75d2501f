package resilience

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRetryPolicy(t *testing.T) {
	tests := []struct {
		name      string
		policy    RetryPolicy
		succeedAt int
		wantOK    bool
		wantCalls int
	}{
		{name: "first round", policy: RetryPolicy{Attempts: 3}, succeedAt: 0, wantOK: true, wantCalls: 1},
		{name: "last round", policy: RetryPolicy{Attempts: 3}, succeedAt: 2, wantOK: true, wantCalls: 3},
		{name: "exhausted", policy: RetryPolicy{Attempts: 3}, succeedAt: -1, wantOK: false, wantCalls: 3},
		{name: "zero attempts still runs once", policy: RetryPolicy{}, succeedAt: -1, wantOK: false, wantCalls: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			ok := tt.policy.Do(func(attempt int) bool {
				calls++
				return attempt == tt.succeedAt
			})
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantCalls, calls)
		})
	}
}

func TestRetryPolicyNoSleepAfterLastRound(t *testing.T) {
	policy := RetryPolicy{Attempts: 2, Delay: 50 * time.Millisecond}
	start := time.Now()
	policy.Do(func(int) bool { return false })
	elapsed := time.Since(start)

	assert.GreaterOrEqual(t, elapsed, 50*time.Millisecond)
	assert.Less(t, elapsed, 95*time.Millisecond)
}

func TestRetryPolicyWithAttempts(t *testing.T) {
	base := RetryPolicy{Attempts: 6, Delay: time.Millisecond}
	p := base.WithAttempts(2)
	assert.Equal(t, 2, p.Attempts)
	assert.Equal(t, 6, base.Attempts)
	assert.Equal(t, time.Millisecond, p.Delay)
}
