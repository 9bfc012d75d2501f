/*
Package automation is the resilient command layer between the typing
pipeline and the word processor's scripting surface.

The application exposes several incompatible shapes of the same operation
across versions. Every logical operation is therefore expressed as an
ordered list of Strategy values and run by an Executor cascade: the first
strategy that succeeds wins, and if all fail the caller gets one *Error of
kind KindAutomationFailure carrying the last cause. Transport errors never
escape in any other form.

Components:

  - Executor: strategy cascades, optional circuit breaker and metrics
  - PositionStore: opaque cursor snapshots (may be unavailable)
  - Locator: bounded, multi-direction retry around the search primitive
  - Navigator: line-by-line probing into table cells where search cannot reach

Usage:

	exec := automation.NewExecutor(transport, automation.WithLogger(logger))
	_, err := exec.Cascade("TableCreate",
		automation.Method("create_table", 2, 3),
		automation.ExecuteSet("TableCreate", automation.ParamSet{Name: "HTableCreation", Items: automation.Params{"Rows": 2, "Cols": 3}}),
	)
*/
package automation
