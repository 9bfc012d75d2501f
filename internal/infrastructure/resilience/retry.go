package resilience

import "time"

// RetryPolicy bounds a polling loop that waits for an external peer to
// settle. It is a value so call sites can tune it and tests can zero it.
type RetryPolicy struct {
	// Attempts is the number of rounds; values below 1 mean one round
	Attempts int
	// Delay is slept between rounds, never after the last one
	Delay time.Duration
}

// Do calls round until it reports true or the attempt budget is spent.
// There is no cancellation: the loop always runs to its budget.
func (p RetryPolicy) Do(round func(attempt int) bool) bool {
	attempts := p.Attempts
	if attempts < 1 {
		attempts = 1
	}
	for i := 0; i < attempts; i++ {
		if round(i) {
			return true
		}
		if i < attempts-1 && p.Delay > 0 {
			time.Sleep(p.Delay)
		}
	}
	return false
}

// WithAttempts returns a copy with a different attempt budget
func (p RetryPolicy) WithAttempts(n int) RetryPolicy {
	p.Attempts = n
	return p
}
