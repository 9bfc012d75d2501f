package automation

import (
	"errors"
	"time"

	"github.com/GriffinCanCode/litepro/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/litepro/internal/infrastructure/resilience"
	"github.com/GriffinCanCode/litepro/internal/logging"
	"go.uber.org/zap"
)

// Strategy is one concrete way of invoking a logical operation
type Strategy struct {
	Name string
	Call func(t Transport) (interface{}, error)
}

// RunAction runs action through the action table
func RunAction(action string) Strategy {
	return Strategy{Name: "action", Call: func(t Transport) (interface{}, error) {
		return nil, t.Run(action)
	}}
}

// RunByName runs action through the application's generic Run method
func RunByName(action string, args ...interface{}) Strategy {
	return Strategy{Name: "run", Call: func(t Transport) (interface{}, error) {
		return t.Invoke("Run", append([]interface{}{action}, args...)...)
	}}
}

// Method calls a method on the application object
func Method(name string, args ...interface{}) Strategy {
	return Strategy{Name: "method:" + name, Call: func(t Transport) (interface{}, error) {
		return t.Invoke(name, args...)
	}}
}

// ExecuteSet executes action with a parameter set
func ExecuteSet(action string, set ParamSet) Strategy {
	name := "set:" + set.Name
	if set.Shape == ShapeCreated {
		name = "created:" + set.Name
	}
	return Strategy{Name: name, Call: func(t Transport) (interface{}, error) {
		return t.Execute(action, set)
	}}
}

// Sequence chains strategies that must all succeed. The result of the
// last step is returned.
func Sequence(name string, steps ...Strategy) Strategy {
	return Strategy{Name: name, Call: func(t Transport) (interface{}, error) {
		var result interface{}
		for _, step := range steps {
			var err error
			if result, err = step.Call(t); err != nil {
				return nil, err
			}
		}
		return result, nil
	}}
}

// ExecutorOption configures an Executor
type ExecutorOption func(*Executor)

// WithBreaker guards every transport call with a circuit breaker
func WithBreaker(b *resilience.Breaker) ExecutorOption {
	return func(e *Executor) { e.breaker = b }
}

// WithMetrics records strategy outcomes
func WithMetrics(m *monitoring.Metrics) ExecutorOption {
	return func(e *Executor) { e.metrics = m }
}

// WithLogger sets the executor logger
func WithLogger(l *logging.Logger) ExecutorOption {
	return func(e *Executor) { e.logger = l.Named("executor") }
}

// Executor runs named operations through ordered strategy cascades. It is
// stateless apart from the transport handle.
type Executor struct {
	transport Transport
	breaker   *resilience.Breaker
	metrics   *monitoring.Metrics
	logger    *logging.Logger
}

// NewExecutor creates an executor bound to a live transport
func NewExecutor(t Transport, opts ...ExecutorOption) *Executor {
	e := &Executor{transport: t, logger: logging.NewNop()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Transport returns the underlying transport
func (e *Executor) Transport() Transport {
	return e.transport
}

// Cascade tries strategies in order until one succeeds. Exactly one
// strategy succeeds, or the result is an AutomationFailure carrying the
// last cause. An open breaker aborts the cascade with NotConnected.
func (e *Executor) Cascade(op string, strategies ...Strategy) (interface{}, error) {
	start := time.Now()
	var last error
	for _, s := range strategies {
		result, err := e.attempt(s)
		if err == nil {
			e.metrics.RecordStrategy(op, s.Name, true)
			e.metrics.RecordCascade(op, true, time.Since(start))
			return result, nil
		}
		if errors.Is(err, resilience.ErrCircuitOpen) || errors.Is(err, resilience.ErrTooManyRequests) {
			e.metrics.RecordCascade(op, false, time.Since(start))
			return nil, &Error{Kind: KindNotConnected, Op: op, Msg: "application unavailable", Err: err}
		}
		e.metrics.RecordStrategy(op, s.Name, false)
		e.logger.Debug("strategy failed",
			zap.String("op", op),
			zap.String("strategy", s.Name),
			zap.Error(err),
		)
		last = err
	}
	e.metrics.RecordCascade(op, false, time.Since(start))
	if last == nil {
		last = errors.New("no strategies")
	}
	return nil, Failure(op, last)
}

// BestEffort runs a cascade whose failure must never abort the caller.
func (e *Executor) BestEffort(op string, strategies ...Strategy) bool {
	if _, err := e.Cascade(op, strategies...); err != nil {
		e.logger.Debug("best-effort operation skipped", zap.String("op", op), zap.Error(err))
		return false
	}
	return true
}

// Run runs a parameterless action, first through the action table and
// then through the generic Run method.
func (e *Executor) Run(action string) error {
	_, err := e.Cascade(action, RunAction(action), RunByName(action))
	if err != nil {
		e.logger.Warn("action failed", zap.String("action", action), zap.Error(err))
	}
	return err
}

// TryRun is the fire-and-forget form of Run
func (e *Executor) TryRun(action string) bool {
	return e.BestEffort(action, RunAction(action), RunByName(action))
}

// Execute runs action with a parameter set, first with the structured
// set object and then with a freshly created one.
func (e *Executor) Execute(action, set string, items Params) (interface{}, error) {
	return e.Cascade(action,
		ExecuteSet(action, ParamSet{Name: set, Shape: ShapeStructured, Items: items}),
		ExecuteSet(action, ParamSet{Name: set, Shape: ShapeCreated, Items: items}),
	)
}

func (e *Executor) attempt(s Strategy) (result interface{}, err error) {
	if e.breaker == nil {
		return s.Call(e.transport)
	}
	err = e.breaker.Do(func() error {
		var callErr error
		result, callErr = s.Call(e.transport)
		return callErr
	})
	return result, err
}
