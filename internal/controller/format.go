package controller

import (
	"github.com/GriffinCanCode/litepro/internal/automation"
	"go.uber.org/zap"
)

var faceNameItems = []string{
	"FaceName", "FaceNameUser", "FaceNameHangul", "FaceNameLatin", "FaceNameHanja",
	"FaceNameJapanese", "FaceNameOther", "FaceNameSymbol", "FontName",
}

var cellBorderSets = []struct{ action, set string }{
	{"TableCellBorderFill", "HTableCellBorderFill"},
	{"CellBorderFill", "HCellBorderFill"},
}

const white = 0xFFFFFF

// SetBold turns bold on or off for the following text
func (c *Controller) SetBold(on bool) error {
	if err := c.ensure("SetBold"); err != nil {
		return err
	}
	if err := c.charShape(automation.Params{"Bold": flag(on)}); err != nil {
		return err
	}
	c.ctx.SetBold(on)
	return nil
}

// SetUnderline turns underline on or off for the following text
func (c *Controller) SetUnderline(on bool) error {
	if err := c.ensure("SetUnderline"); err != nil {
		return err
	}
	if err := c.charShape(automation.Params{"UnderlineType": flag(on)}); err != nil {
		return err
	}
	c.ctx.SetUnderline(on)
	return nil
}

// ToggleUnderline flips the last requested underline state
func (c *Controller) ToggleUnderline() error {
	return c.SetUnderline(!c.ctx.Underline)
}

// SetCharWidthRatio sets the character width ratio in percent
func (c *Controller) SetCharWidthRatio(percent int) error {
	if err := c.ensure("SetCharWidthRatio"); err != nil {
		return err
	}
	if percent <= 0 {
		return automation.InvalidArgument("SetCharWidthRatio", "ratio must be positive, got %d", percent)
	}
	var strategies []automation.Strategy
	for _, item := range []string{"Ratio", "CharRatio", "WidthRatio"} {
		strategies = append(strategies, automation.ExecuteSet("CharShape", automation.ParamSet{
			Name: "HCharShape", Shape: automation.ShapeStructured, Items: automation.Params{item: percent},
		}))
	}
	strategies = append(strategies, automation.ExecuteSet("CharShape", automation.ParamSet{
		Name: "HCharShape", Shape: automation.ShapeCreated, Items: automation.Params{"Ratio": percent},
	}))
	_, err := c.exec.Cascade("CharShape", strategies...)
	return err
}

// SetFontSize sets the font size in points
func (c *Controller) SetFontSize(pt float64) error {
	if err := c.ensure("SetFontSize"); err != nil {
		return err
	}
	if pt <= 0 {
		return automation.InvalidArgument("SetFontSize", "font size must be positive, got %g", pt)
	}
	return c.charShape(automation.Params{"Height": int(pt * 100)})
}

// SetFontName sets the font face for every script
func (c *Controller) SetFontName(name string) error {
	if err := c.ensure("SetFontName"); err != nil {
		return err
	}
	if name == "" {
		return automation.InvalidArgument("SetFontName", "font name is empty")
	}
	faces := make(automation.Params, len(faceNameItems))
	for _, item := range faceNameItems {
		faces[item] = name
	}
	_, err := c.exec.Cascade("CharShape",
		automation.ExecuteSet("CharShape", automation.ParamSet{
			Name: "HCharShape", Shape: automation.ShapeStructured, Optional: faces,
		}),
		automation.ExecuteSet("CharShape", automation.ParamSet{
			Name: "HCharShape", Shape: automation.ShapeCreated, Optional: faces,
		}),
	)
	return err
}

// SetTableBorderWhite paints the current cell borders white
func (c *Controller) SetTableBorderWhite() error {
	if err := c.ensure("SetTableBorderWhite"); err != nil {
		return err
	}
	items := automation.Params{}
	for _, side := range []string{"", "Left", "Right", "Top", "Bottom"} {
		items["BorderColor"+side] = white
		items["BorderType"+side] = 1
	}
	_, err := c.exec.Cascade("CellBorderFill", c.cellBorderStrategies(items)...)
	return err
}

func (c *Controller) charShape(items automation.Params) error {
	_, err := c.exec.Execute("CharShape", "HCharShape", items)
	return err
}

func (c *Controller) cellBorderStrategies(optional automation.Params) []automation.Strategy {
	strategies := make([]automation.Strategy, 0, len(cellBorderSets))
	for _, s := range cellBorderSets {
		strategies = append(strategies, automation.ExecuteSet(s.action, automation.ParamSet{
			Name: s.set, Shape: automation.ShapeStructured, Optional: optional,
		}))
	}
	return strategies
}

// zeroCellMargins removes the padding of the current cell
func (c *Controller) zeroCellMargins() {
	items := automation.Params{}
	for _, side := range []string{"Left", "Right", "Top", "Bottom"} {
		items["Margin"+side] = 0
		items["CellMargin"+side] = 0
	}
	c.exec.BestEffort("CellMargins", c.cellBorderStrategies(items)...)
}

// hideCellBorders makes the current cell borderless
func (c *Controller) hideCellBorders() {
	items := automation.Params{}
	for _, side := range []string{"", "Left", "Right", "Top", "Bottom"} {
		items["BorderType"+side] = 0
	}
	c.exec.BestEffort("CellBorderNone", c.cellBorderStrategies(items)...)
}

// compactParagraph removes paragraph spacing at the cursor
func (c *Controller) compactParagraph() {
	c.exec.BestEffort("ParaShape", automation.ExecuteSet("ParaShape", automation.ParamSet{
		Name:  "HParaShape",
		Shape: automation.ShapeStructured,
		Optional: automation.Params{
			"Spacing":         0,
			"LineSpacing":     100,
			"LineSpace":       100,
			"LineSpacingType": 0,
			"Before":          0,
			"After":           0,
			"ParaTop":         0,
			"ParaBottom":      0,
		},
	}))
}

// boxTextStyle switches to the equation-friendly font at the box size
func (c *Controller) boxTextStyle() {
	if err := c.SetFontName(c.opts.Equation.FontName); err != nil {
		c.logger.Debug("box font not applied", zap.Error(err))
	}
	if err := c.SetFontSize(c.opts.Equation.FontSizePt); err != nil {
		c.logger.Debug("box font size not applied", zap.Error(err))
	}
}

func flag(on bool) int {
	if on {
		return 1
	}
	return 0
}
