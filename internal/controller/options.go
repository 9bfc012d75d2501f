package controller

import (
	"time"

	"github.com/GriffinCanCode/litepro/internal/automation"
	"github.com/GriffinCanCode/litepro/internal/equation"
	"github.com/GriffinCanCode/litepro/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/litepro/internal/infrastructure/resilience"
	"github.com/GriffinCanCode/litepro/internal/logging"
	"github.com/GriffinCanCode/litepro/internal/platform"
)

// Options configures a controller
type Options struct {
	Visible        bool
	RegisterModule bool

	TemplateDir string
	TempDir     string

	// Search bounds placeholder searches that may wait for rendering
	Search automation.SearchPolicy
	// NearSearch bounds searches that must not move the cursor far
	NearSearch automation.SearchPolicy
	// Attach bounds attachment attempts
	Attach resilience.RetryPolicy

	// TextIndent is the auto-indent for plain text lines (0 disables it)
	TextIndent int
	Equation   equation.Options

	ImageScale   float64
	CropMaxWidth int

	BreakerThreshold uint32
	BreakerTimeout   time.Duration
}

// DefaultOptions returns the production defaults
func DefaultOptions() Options {
	return Options{
		Visible:          true,
		RegisterModule:   true,
		TemplateDir:      "templates",
		Search:           automation.DefaultSearchPolicy(),
		NearSearch:       automation.DefaultSearchPolicy().WithRetry(3, 40*time.Millisecond).WithDirections(automation.Forward, automation.Backward),
		Attach:           resilience.RetryPolicy{Attempts: 2, Delay: 250 * time.Millisecond},
		Equation:         equation.DefaultOptions(),
		ImageScale:       0.3,
		CropMaxWidth:     900,
		BreakerThreshold: 5,
		BreakerTimeout:   30 * time.Second,
	}
}

// Option configures controller collaborators
type Option func(*Controller)

// WithDesktop replaces the OS window manager
func WithDesktop(d platform.Desktop) Option {
	return func(c *Controller) {
		c.desktop = d
	}
}

// WithWindowCheck controls whether Connect requires a visible application
// window before attaching
func WithWindowCheck(required bool) Option {
	return func(c *Controller) {
		c.requireWindow = required
	}
}

// WithMetrics records cascades and insertions
func WithMetrics(m *monitoring.Metrics) Option {
	return func(c *Controller) {
		c.metrics = m
	}
}

// WithLogger sets the controller logger
func WithLogger(l *logging.Logger) Option {
	return func(c *Controller) {
		c.logger = l
	}
}

// WithBreaker replaces the transport circuit breaker
func WithBreaker(b *resilience.Breaker) Option {
	return func(c *Controller) {
		c.breaker = b
	}
}
