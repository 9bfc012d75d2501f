package controller

import (
	"github.com/GriffinCanCode/litepro/internal/equation"
	"github.com/GriffinCanCode/litepro/internal/typing"
)

// InsertEquation builds an equation from script markup at the cursor
func (c *Controller) InsertEquation(markup string, opts equation.Options) error {
	if err := c.ensure("InsertEquation"); err != nil {
		return err
	}

	content := markup
	if tab, rest := c.ctx.SplitEquationTab(content); tab {
		if err := c.InsertText("\t"); err != nil {
			return err
		}
		content = rest
	}
	if a := c.ctx.StartLine(); a != typing.AlignNone {
		c.applyAlign(a)
	}
	if err := c.insertIndent(c.ctx.EquationIndent()); err != nil {
		return err
	}

	err := c.equations.Insert(content, opts)
	c.metrics.RecordInsertion("equation", err)
	if err != nil {
		return err
	}
	c.ctx.Wrote(true)
	return nil
}

// InsertLatexEquation translates LaTeX into equation script and inserts it
func (c *Controller) InsertLatexEquation(latex string, opts equation.Options) error {
	return c.InsertEquation(equation.Translate(latex), opts)
}
