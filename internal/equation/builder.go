package equation

import (
	"github.com/GriffinCanCode/litepro/internal/automation"
	"github.com/GriffinCanCode/litepro/internal/logging"
	"go.uber.org/zap"
)

const (
	DefaultFont   = "HyhwpEQ"
	DefaultSizePt = 8.0
	version       = "Equation Version 60"
)

// Options controls how an equation object is built
type Options struct {
	FontSizePt    float64
	FontName      string
	TreatAsChar   bool
	EnsureNewline bool
}

// DefaultOptions returns inline 8pt HyhwpEQ equations
func DefaultOptions() Options {
	return Options{FontSizePt: DefaultSizePt, FontName: DefaultFont, TreatAsChar: true}
}

// Builder creates equation objects at the cursor
type Builder struct {
	exec   *automation.Executor
	logger *logging.Logger
}

// NewBuilder creates an equation builder
func NewBuilder(exec *automation.Executor, logger *logging.Logger) *Builder {
	return &Builder{exec: exec, logger: logger.Named("equation")}
}

// Insert builds an equation from script markup at the cursor and leaves
// the cursor after it, followed by one space
func (b *Builder) Insert(markup string, opts Options) error {
	if markup == "" {
		return automation.InvalidArgument("EquationCreate", "empty equation")
	}
	opts = withDefaults(opts)

	if opts.EnsureNewline {
		if err := b.exec.Run("BreakPara"); err != nil {
			return err
		}
	}

	items := automation.Params{
		"String":     markup,
		"BaseUnit":   int(opts.FontSizePt * 100),
		"EqFontName": opts.FontName,
	}
	optional := automation.Params{
		"Version":   version,
		"LineMode":  0,
		"BaseLine":  86,
		"TextColor": 0,
	}
	_, err := b.exec.Cascade("EquationCreate",
		automation.ExecuteSet("EquationCreate", automation.ParamSet{
			Name: "HEqEdit", Shape: automation.ShapeStructured, Items: items, Optional: optional,
		}),
		automation.ExecuteSet("EquationCreate", automation.ParamSet{
			Name: "HEqEdit", Shape: automation.ShapeCreated, Items: items, Optional: optional,
		}),
	)
	if err != nil {
		return err
	}

	if opts.TreatAsChar {
		b.inline()
	}

	if _, err := b.exec.Execute("InsertText", "HInsertText", automation.Params{"Text": " "}); err != nil {
		b.logger.Debug("trailing space not inserted", zap.Error(err))
	}
	return nil
}

// inline marks the equation just created as flowing with text
func (b *Builder) inline() {
	selected := b.exec.TryRun("SelectCtrlReverse")
	if !selected {
		return
	}
	b.exec.BestEffort("ShapeObjDialog",
		automation.ExecuteSet("ShapeObjDialog", automation.ParamSet{
			Name:  "HShapeObject",
			Shape: automation.ShapeStructured,
			Items: automation.Params{"TreatAsChar": 1},
		}),
	)
	b.exec.TryRun("Cancel")
	b.exec.TryRun("MoveRight")
}

func withDefaults(opts Options) Options {
	if opts.FontSizePt <= 0 {
		opts.FontSizePt = DefaultSizePt
	}
	if opts.FontName == "" {
		opts.FontName = DefaultFont
	}
	return opts
}
