package hwp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/GriffinCanCode/litepro/internal/automation"
	"github.com/GriffinCanCode/litepro/internal/controller"
	"github.com/GriffinCanCode/litepro/internal/equation"
	"github.com/GriffinCanCode/litepro/internal/imaging"
	"github.com/GriffinCanCode/litepro/internal/logging"
	"github.com/GriffinCanCode/litepro/internal/shared/types"
	"go.uber.org/zap"
)

// ErrUnknownTool is returned for tool IDs this provider does not serve
var ErrUnknownTool = errors.New("unknown tool")

// Provider serves document automation tools
type Provider struct {
	mu     sync.Mutex
	ctl    *controller.Controller
	logger *logging.Logger
	tools  map[string]bool
}

// NewProvider creates the hwp provider around a controller
func NewProvider(ctl *controller.Controller, logger *logging.Logger) *Provider {
	if logger == nil {
		logger = logging.NewNop()
	}
	p := &Provider{ctl: ctl, logger: logger.Named("hwp"), tools: map[string]bool{}}
	for _, tool := range p.Definition().Tools {
		p.tools[strings.TrimPrefix(tool.ID, ServiceID+".")] = true
	}
	return p
}

// Close ends the automation session
func (p *Provider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ctl.Close()
}

// tools that work without a session
var offline = map[string]bool{
	"state":            true,
	"list_templates":   true,
	"set_source_image": true,
}

// Execute runs a tool. Automation errors are reported in the result, with
// the error kind, rather than as a Go error.
func (p *Provider) Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	if err := ctx.Err(); err != nil {
		return failure(err.Error(), "")
	}
	name := strings.TrimPrefix(toolID, ServiceID+".")
	if params == nil {
		params = map[string]interface{}{}
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	// the lock may have been held for a while
	if err := ctx.Err(); err != nil {
		return failure(err.Error(), "")
	}

	if !p.tools[name] {
		return unknownTool(toolID)
	}

	start := time.Now()
	if !offline[name] && name != "connect" {
		if err := p.ctl.Connect(); err != nil {
			return p.fail(name, err)
		}
		if target := targetOf(appCtx); target != "" && name != "activate_window" {
			if err := p.ctl.ActivateTargetWindow(target); err != nil {
				return p.fail(name, err)
			}
		}
	}

	data, err := p.dispatch(name, params)
	if errors.Is(err, ErrUnknownTool) {
		return unknownTool(toolID)
	}
	if err != nil {
		return p.fail(name, err)
	}

	p.logger.Debug("tool executed",
		zap.String("tool", name),
		zap.Duration("duration", time.Since(start)),
	)
	return success(data)
}

func (p *Provider) dispatch(name string, params map[string]interface{}) (map[string]interface{}, error) {
	switch name {
	case "connect":
		if err := p.ctl.Connect(); err != nil {
			return nil, err
		}
		return map[string]interface{}{"session": p.ctl.Session().String()}, nil
	case "activate_window":
		return nil, p.ctl.ActivateTargetWindow(getString(params, "target"))
	case "state":
		return map[string]interface{}{"state": p.ctl.State()}, nil

	case "insert_text":
		text, err := requireString(params, "text")
		if err != nil {
			return nil, invalid(name, err)
		}
		return nil, p.ctl.InsertText(text)
	case "insert_enter":
		return nil, p.ctl.InsertEnter()
	case "insert_space":
		return nil, p.ctl.InsertSpace()
	case "insert_paragraph":
		return nil, p.ctl.InsertParagraph()

	case "insert_equation":
		markup, err := requireString(params, "markup")
		if err != nil {
			return nil, invalid(name, err)
		}
		return nil, p.ctl.InsertEquation(markup, p.equationOptions(params))
	case "insert_latex_equation":
		latex, err := requireString(params, "latex")
		if err != nil {
			return nil, invalid(name, err)
		}
		return nil, p.ctl.InsertLatexEquation(latex, p.equationOptions(params))

	case "align_right_next_line":
		p.ctl.SetAlignRightNextLine()
		return nil, nil
	case "align_justify_next_line":
		p.ctl.SetAlignJustifyNextLine()
		return nil, nil

	case "set_bold":
		return nil, p.ctl.SetBold(getBool(params, "enabled", true))
	case "set_underline":
		if _, ok := params["enabled"]; !ok {
			return nil, p.ctl.ToggleUnderline()
		}
		return nil, p.ctl.SetUnderline(getBool(params, "enabled", true))
	case "set_char_width_ratio":
		percent, err := requireInt(params, "percent")
		if err != nil {
			return nil, invalid(name, err)
		}
		return nil, p.ctl.SetCharWidthRatio(percent)
	case "set_font_size":
		size, err := requireFloat(params, "size")
		if err != nil {
			return nil, invalid(name, err)
		}
		return nil, p.ctl.SetFontSize(size)
	case "set_font_name":
		font, err := requireString(params, "name")
		if err != nil {
			return nil, invalid(name, err)
		}
		return nil, p.ctl.SetFontName(font)
	case "set_table_border_white":
		return nil, p.ctl.SetTableBorderWhite()

	case "insert_box":
		return nil, p.ctl.InsertBox()
	case "insert_view_box":
		return nil, p.ctl.InsertViewBox()
	case "exit_box":
		return nil, p.ctl.ExitBox()
	case "insert_table":
		return nil, p.insertTable(params)
	case "exit_table":
		return nil, p.ctl.ExitTable()

	case "insert_template":
		tmpl, err := requireString(params, "name")
		if err != nil {
			return nil, invalid(name, err)
		}
		return nil, p.ctl.InsertTemplate(tmpl)
	case "list_templates":
		names, err := p.ctl.Templates()
		if err != nil {
			return nil, automation.Failure("Templates", err)
		}
		if names == nil {
			names = []string{}
		}
		return map[string]interface{}{"templates": names}, nil

	case "set_source_image":
		path, err := requireString(params, "path")
		if err != nil {
			return nil, invalid(name, err)
		}
		p.ctl.SetSourceImage(path)
		return nil, nil
	case "insert_cropped_image":
		var r imaging.Rect
		edges := []struct {
			key string
			dst *float64
		}{{"x1", &r.X1}, {"y1", &r.Y1}, {"x2", &r.X2}, {"y2", &r.Y2}}
		for _, e := range edges {
			v, err := requireFloat(params, e.key)
			if err != nil {
				return nil, invalid(name, err)
			}
			*e.dst = v
		}
		return nil, p.ctl.InsertCroppedImage(r)
	case "insert_image":
		path, err := requireString(params, "path")
		if err != nil {
			return nil, invalid(name, err)
		}
		return nil, p.ctl.InsertImage(path)

	case "focus_placeholder":
		marker, err := requireString(params, "marker")
		if err != nil {
			return nil, invalid(name, err)
		}
		found, err := p.ctl.FocusPlaceholder(marker)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{"found": found}, nil
	case "cleanup_placeholders":
		if getBool(params, "near_cursor", false) {
			return nil, p.ctl.CleanupKnownPlaceholdersNearCursor()
		}
		return nil, p.ctl.CleanupKnownPlaceholders()
	}
	return nil, ErrUnknownTool
}

func unknownTool(toolID string) (*types.Result, error) {
	msg := fmt.Sprintf("unknown tool: %s", toolID)
	return &types.Result{Success: false, Error: &msg}, fmt.Errorf("%w: %s", ErrUnknownTool, toolID)
}

func (p *Provider) insertTable(params map[string]interface{}) error {
	rows, err := requireInt(params, "rows")
	if err != nil {
		return invalid("insert_table", err)
	}
	cols, err := requireInt(params, "cols")
	if err != nil {
		return invalid("insert_table", err)
	}
	cells, err := getCells(params, "cells", cols, controller.ChunkCells)
	if err != nil {
		return invalid("insert_table", err)
	}
	return p.ctl.InsertTable(rows, cols, controller.TableOptions{
		Cells:       cells,
		AlignCenter: getBool(params, "align_center", false),
		StayInside:  !getBool(params, "exit", true),
	})
}

func (p *Provider) equationOptions(params map[string]interface{}) equation.Options {
	opts := p.ctl.EquationDefaults()
	if size, ok := getFloat(params, "font_size"); ok && size > 0 {
		opts.FontSizePt = size
	}
	if font := getString(params, "font_name"); font != "" {
		opts.FontName = font
	}
	opts.TreatAsChar = getBool(params, "treat_as_char", opts.TreatAsChar)
	opts.EnsureNewline = getBool(params, "ensure_newline", opts.EnsureNewline)
	return opts
}

func (p *Provider) fail(name string, err error) (*types.Result, error) {
	kind := automation.KindOf(err)
	p.logger.Warn("tool failed",
		zap.String("tool", name),
		zap.String("kind", kind.String()),
		zap.Error(err),
	)
	return failure(err.Error(), kind.String())
}

func invalid(op string, err error) error {
	return automation.InvalidArgument(op, "%v", err)
}

func targetOf(appCtx *types.Context) string {
	if appCtx == nil || appCtx.Target == nil {
		return ""
	}
	return strings.TrimSpace(*appCtx.Target)
}

func success(data map[string]interface{}) (*types.Result, error) {
	return &types.Result{Success: true, Data: data}, nil
}

func failure(message, kind string) (*types.Result, error) {
	msg := message
	return &types.Result{Success: false, Error: &msg, Kind: kind}, nil
}
