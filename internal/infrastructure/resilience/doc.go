/*
Package resilience provides the failure policies used when talking to the
word processor: a circuit breaker and a bounded retry loop.

# Circuit breaker

The breaker guards the automation transport. Only errors classified by
Settings.IsFailure (the application went away) count against it; an action
that the application rejects is a normal answer and keeps the circuit closed.

	breaker := resilience.New("hwp", resilience.Settings{
		Timeout: 30 * time.Second,
		IsFailure: func(err error) bool {
			return errors.Is(err, automation.ErrUnavailable)
		},
	})

	err := breaker.Do(func() error {
		return transport.Run("BreakPara")
	})

	Closed --[failures]-> Open --[timeout]-> Half-Open --[successes]-> Closed

# Retry

RetryPolicy absorbs asynchronous rendering in the application. It sleeps a
fixed delay between rounds and never after the last one.

	found := resilience.RetryPolicy{Attempts: 6, Delay: 60 * time.Millisecond}.Do(func(int) bool {
		return locator.findOnce(needle)
	})
*/
package resilience
