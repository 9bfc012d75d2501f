package controller

import (
	"errors"
	"io"
	"strings"

	"github.com/GriffinCanCode/litepro/internal/automation"
	"github.com/GriffinCanCode/litepro/internal/equation"
	"github.com/GriffinCanCode/litepro/internal/imaging"
	"github.com/GriffinCanCode/litepro/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/litepro/internal/infrastructure/resilience"
	"github.com/GriffinCanCode/litepro/internal/logging"
	"github.com/GriffinCanCode/litepro/internal/platform"
	"github.com/GriffinCanCode/litepro/internal/shared/id"
	"github.com/GriffinCanCode/litepro/internal/typing"
	"go.uber.org/zap"
)

const rpcGuidance = "automation server unavailable: quit the word processor completely, " +
	"start it again, and run it with the same privileges (normal or administrator) as this program"

// Controller types formatted content into the running word processor. It
// owns one session and its typing context. Calls must be serialized by
// the caller.
type Controller struct {
	opts          Options
	attacher      automation.Attacher
	desktop       platform.Desktop
	requireWindow bool
	breaker       *resilience.Breaker
	metrics       *monitoring.Metrics
	logger        *logging.Logger
	images        *imaging.Processor

	ctx         *typing.Context
	sourceImage string

	// session, set by Connect
	session   id.SessionID
	exec      *automation.Executor
	positions *automation.PositionStore
	locator   *automation.Locator
	navigator *automation.Navigator
	equations *equation.Builder
}

// State is a diagnostic snapshot of the session
type State struct {
	Connected   bool           `json:"connected"`
	Session     string         `json:"session,omitempty"`
	SourceImage string         `json:"source_image,omitempty"`
	Typing      typing.Context `json:"typing"`
}

// New creates a controller. Nothing is attached until Connect.
func New(attacher automation.Attacher, opts Options, options ...Option) *Controller {
	c := &Controller{
		opts:          opts,
		attacher:      attacher,
		desktop:       platform.NewDesktop(),
		requireWindow: platform.Supported(),
		logger:        logging.NewNop(),
		ctx:           typing.New(),
	}
	for _, opt := range options {
		opt(c)
	}
	c.logger = c.logger.Named("controller")
	c.images = imaging.NewProcessor(opts.TempDir)

	if c.breaker == nil {
		threshold := opts.BreakerThreshold
		if threshold == 0 {
			threshold = 5
		}
		c.breaker = resilience.New("hwp", resilience.Settings{
			Timeout: opts.BreakerTimeout,
			ReadyToTrip: func(counts resilience.Counts) bool {
				return counts.ConsecutiveFailures >= threshold
			},
			IsFailure: func(err error) bool {
				return errors.Is(err, automation.ErrUnavailable)
			},
			OnStateChange: func(name string, from, to resilience.State) {
				c.logger.Warn("transport breaker state changed",
					zap.String("breaker", name),
					zap.String("from", from.String()),
					zap.String("to", to.String()),
				)
				c.metrics.RecordBreaker(from.String(), to.String())
			},
		})
	}
	return c
}

// Connect attaches to the running application. It is idempotent and never
// leaves the application window in front of the user's window.
func (c *Controller) Connect() error {
	if c.exec != nil {
		return nil
	}
	if c.requireWindow && len(platform.FindWindows(c.desktop)) == 0 {
		return &automation.Error{
			Kind: automation.KindNotConnected,
			Op:   "Connect",
			Msg:  "no word processor window found; start the application first",
		}
	}

	return platform.PreserveForeground(c.desktop, func() error {
		t, err := c.attach()
		if err != nil {
			return err
		}
		c.bind(t)
		c.metrics.IncSessionsConnected()
		c.logger.Info("connected", zap.String("session", c.session.String()))
		c.activateCurrent()
		return nil
	})
}

func (c *Controller) attach() (automation.Transport, error) {
	opts := automation.AttachOptions{Visible: c.opts.Visible, RegisterModule: c.opts.RegisterModule}

	var (
		t       automation.Transport
		lastErr error
		first   error
	)
	c.opts.Attach.Do(func(attempt int) bool {
		var err error
		t, err = c.attacher.Attach(opts)
		if err == nil {
			return true
		}
		if first == nil {
			first = err
		}
		lastErr = err
		c.logger.Warn("attach failed", zap.Int("attempt", attempt), zap.Error(err))
		return automation.KindOf(err) == automation.KindDependencyMissing
	})
	if lastErr == nil || t != nil {
		return t, nil
	}
	if automation.KindOf(lastErr) == automation.KindDependencyMissing {
		return nil, lastErr
	}
	if platform.IsRPCUnavailable(lastErr) || platform.IsRPCUnavailable(first) {
		return nil, &automation.Error{Kind: automation.KindNotConnected, Op: "Connect", Msg: rpcGuidance, Err: lastErr}
	}
	return nil, &automation.Error{Kind: automation.KindNotConnected, Op: "Connect", Msg: "attach failed", Err: lastErr}
}

func (c *Controller) bind(t automation.Transport) {
	c.exec = automation.NewExecutor(t,
		automation.WithBreaker(c.breaker),
		automation.WithMetrics(c.metrics),
		automation.WithLogger(c.logger),
	)
	c.positions = automation.NewPositionStore(c.exec)
	c.locator = automation.NewLocator(c.exec)
	c.navigator = automation.NewNavigator(c.exec, c.positions, c.locator)
	c.equations = equation.NewBuilder(c.exec, c.logger)
	c.session = id.NewSessionID()
}

// Close ends the session and releases the transport. A later Connect
// starts a fresh session with a fresh typing context.
func (c *Controller) Close() error {
	if c.exec == nil {
		return nil
	}
	var err error
	if closer, ok := c.exec.Transport().(io.Closer); ok {
		err = closer.Close()
	}
	c.logger.Info("disconnected", zap.String("session", c.session.String()))
	c.exec, c.positions, c.locator, c.navigator, c.equations = nil, nil, nil, nil, nil
	c.session = ""
	c.ctx = typing.New()
	return err
}

// Connected reports whether a session exists
func (c *Controller) Connected() bool {
	return c.exec != nil
}

// Session returns the session ID, empty before Connect
func (c *Controller) Session() id.SessionID {
	return c.session
}

// State returns a snapshot of the session and typing context
func (c *Controller) State() State {
	return State{
		Connected:   c.Connected(),
		Session:     c.session.String(),
		SourceImage: c.sourceImage,
		Typing:      c.ctx.Snapshot(),
	}
}

// EquationDefaults returns the configured equation options
func (c *Controller) EquationDefaults() equation.Options {
	return c.opts.Equation
}

// Desktop returns the window manager the controller drives
func (c *Controller) Desktop() platform.Desktop {
	return c.desktop
}

// ActivateTargetWindow switches the application's active document to the
// one whose title contains target, falling back to the document in the
// foreground. The OS foreground window is left unchanged.
func (c *Controller) ActivateTargetWindow(target string) error {
	if err := c.ensure("ActivateTargetWindow"); err != nil {
		return err
	}
	return platform.PreserveForeground(c.desktop, func() error {
		target = strings.TrimSpace(target)
		if target != "" {
			if act, ok := c.exec.Transport().(automation.WindowActivator); ok {
				if act.ActivateDocument(func(title string) bool { return strings.Contains(title, target) }) {
					return nil
				}
			}
		}
		c.activateCurrent()
		return nil
	})
}

// activateCurrent switches to the document shown in the foreground window
func (c *Controller) activateCurrent() bool {
	_, fgTitle := c.desktop.Foreground()
	if !platform.IsHwpTitle(fgTitle) {
		return false
	}
	act, ok := c.exec.Transport().(automation.WindowActivator)
	if !ok {
		return false
	}
	filename := platform.DocumentName(fgTitle)
	return act.ActivateDocument(func(title string) bool {
		return platform.MatchesDocument(title, fgTitle, filename)
	})
}

func (c *Controller) ensure(op string) error {
	if c.exec == nil {
		return automation.NotConnected(op)
	}
	return nil
}
