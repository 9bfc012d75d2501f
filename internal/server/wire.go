package server

import (
	"os"
	"path/filepath"

	"github.com/GriffinCanCode/litepro/internal/automation"
	"github.com/GriffinCanCode/litepro/internal/controller"
	"github.com/GriffinCanCode/litepro/internal/infrastructure/config"
	"github.com/GriffinCanCode/litepro/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/litepro/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/litepro/internal/logging"
	"github.com/GriffinCanCode/litepro/internal/providers/hwp"
	"github.com/GriffinCanCode/litepro/internal/providers/system"
	"github.com/GriffinCanCode/litepro/internal/script"
	"github.com/GriffinCanCode/litepro/internal/service"
	"go.uber.org/zap"
)

// App holds the collaborators built from configuration
type App struct {
	Config   *config.Config
	Logger   *logging.Logger
	Metrics  *monitoring.Metrics
	Tracer   *tracing.Tracer
	Registry *service.Registry
	Runner   *script.Runner
	HWP      *hwp.Provider
}

// NewLogger builds the process logger from configuration
func NewLogger(cfg config.LogConfig) (*logging.Logger, error) {
	base := logging.DefaultConfig()
	if cfg.Development {
		base = logging.DevelopmentConfig()
	}
	if cfg.Level != "" {
		base.Level = cfg.Level
	}
	return logging.New(base)
}

// ControllerOptions maps configuration onto controller options
func ControllerOptions(cfg *config.Config) controller.Options {
	a := cfg.Automation
	opts := controller.DefaultOptions()

	opts.Visible = a.Visible
	opts.RegisterModule = a.RegisterModule
	opts.TemplateDir = a.TemplateDir
	opts.TempDir = a.TempDir
	if opts.TempDir == "" {
		opts.TempDir = filepath.Join(os.TempDir(), "litepro")
	}
	opts.Search = opts.Search.WithRetry(a.SearchAttempts, a.SearchDelay)
	opts.TextIndent = a.TextIndent
	opts.Equation.FontName = a.EquationFont
	opts.Equation.FontSizePt = a.EquationSize
	opts.ImageScale = a.ImageScale
	opts.CropMaxWidth = a.CropMaxWidth
	opts.BreakerThreshold = cfg.Breaker.Threshold
	opts.BreakerTimeout = cfg.Breaker.Timeout
	return opts
}

// Build assembles the application around attacher. Extra controller
// options are applied after the configured ones.
func Build(cfg *config.Config, attacher automation.Attacher, logger *logging.Logger, options ...controller.Option) (*App, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	metrics := monitoring.NewMetrics()
	tracer := tracing.New("litepro", logger)

	ctlOptions := append([]controller.Option{
		controller.WithMetrics(metrics),
		controller.WithLogger(logger),
	}, options...)
	ctl := controller.New(attacher, ControllerOptions(cfg), ctlOptions...)
	provider := hwp.NewProvider(ctl, logger)

	registry := service.NewRegistry()
	for _, p := range []service.Provider{
		provider,
		system.NewProvider(ctl.Desktop(), metrics, logger),
	} {
		if err := registry.Register(p); err != nil {
			tracer.Close()
			return nil, err
		}
	}

	logger.Info("application initialized",
		zap.String("template_dir", cfg.Automation.TemplateDir),
		zap.Int("services", len(registry.List(nil))),
	)

	return &App{
		Config:   cfg,
		Logger:   logger,
		Metrics:  metrics,
		Tracer:   tracer,
		Registry: registry,
		Runner:   script.NewRunner(registry, metrics, logger).WithTracer(tracer),
		HWP:      provider,
	}, nil
}

// Close ends the automation session and flushes telemetry
func (a *App) Close() error {
	err := a.HWP.Close()
	a.Tracer.Close()
	// Sync fails on console outputs; nothing to report there
	_ = a.Logger.Sync()
	return err
}
