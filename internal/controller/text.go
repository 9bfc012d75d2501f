package controller

import (
	"strings"

	"github.com/GriffinCanCode/litepro/internal/automation"
	"github.com/GriffinCanCode/litepro/internal/typing"
	"go.uber.org/zap"
)

// InsertText types text at the cursor, applying the typing context rules
// for line starts, one-shot alignment, equation spacing and boxes
func (c *Controller) InsertText(text string) error {
	if err := c.ensure("InsertText"); err != nil {
		return err
	}
	if text == "" {
		return nil
	}

	text = typing.NormalizeTab(text)
	if c.ctx.NeedsBreakBefore(text) {
		if err := c.InsertEnter(); err != nil {
			return err
		}
	}
	if a := c.ctx.StartLine(); a != typing.AlignNone {
		c.applyAlign(a)
	}

	out := c.ctx.PrepareText(text, c.opts.TextIndent)
	err := c.insertRaw(out)
	c.metrics.RecordInsertion("text", err)
	if err != nil {
		return err
	}
	c.ctx.Wrote(false)
	return nil
}

// InsertEnter breaks the paragraph. An alignment override on the line
// just finished is reverted to left.
func (c *Controller) InsertEnter() error {
	if err := c.ensure("InsertEnter"); err != nil {
		return err
	}
	if err := c.exec.Run("BreakPara"); err != nil {
		return err
	}
	if c.ctx.LineBreak() {
		c.applyAlign(typing.AlignLeft)
	}
	return nil
}

// InsertSpace types a single space
func (c *Controller) InsertSpace() error {
	return c.InsertText(" ")
}

// InsertParagraph breaks the paragraph and types a single space
func (c *Controller) InsertParagraph() error {
	if err := c.InsertEnter(); err != nil {
		return err
	}
	return c.InsertSpace()
}

// SetAlignRightNextLine right-aligns the next line only
func (c *Controller) SetAlignRightNextLine() {
	c.ctx.ArmAlign(typing.AlignRight)
}

// SetAlignJustifyNextLine justifies the next line only
func (c *Controller) SetAlignJustifyNextLine() {
	c.ctx.ArmAlign(typing.AlignJustify)
}

// insertRaw types text verbatim, one character at a time when the bulk
// insertion is refused
func (c *Controller) insertRaw(text string) error {
	if text == "" {
		return nil
	}
	_, err := c.exec.Execute("InsertText", "HInsertText", automation.Params{"Text": text})
	if err == nil {
		return nil
	}
	if automation.KindOf(err) == automation.KindNotConnected {
		return err
	}

	c.logger.Debug("bulk insert refused, typing per character", zap.Error(err))
	for _, r := range text {
		_, err := c.exec.Cascade("InsertChar",
			automation.ExecuteSet("InsertText", automation.ParamSet{
				Name:  "HInsertText",
				Shape: automation.ShapeCreated,
				Items: automation.Params{"Text": string(r)},
			}),
			automation.Method("KeyIndicator", int(r), 1),
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// insertIndent types n spaces of auto-indent at a line start
func (c *Controller) insertIndent(n int) error {
	if n <= 0 {
		return nil
	}
	if err := c.insertRaw(strings.Repeat(" ", n)); err != nil {
		return err
	}
	c.ctx.Indented()
	return nil
}

// applyAlign sets paragraph alignment. It is cosmetic and never fails.
func (c *Controller) applyAlign(a typing.Align) bool {
	return c.exec.TryRun(a.Action())
}
