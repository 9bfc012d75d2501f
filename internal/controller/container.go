package controller

import (
	"errors"
	"strings"

	"github.com/GriffinCanCode/litepro/internal/automation"
	"github.com/GriffinCanCode/litepro/internal/typing"
)

const (
	boxTemplate     = "box_template_noheader.hwp"
	viewBoxTemplate = "box_template.hwp"
	viewBoxHeading  = "< 보 기 >"
)

var errNoCell = errors.New("cursor did not enter the container")

// TableOptions controls table insertion
type TableOptions struct {
	// Cells holds row-major cell text. Values starting with the equation
	// tag are inserted as equations.
	Cells [][]string
	// AlignCenter centers every filled cell
	AlignCenter bool
	// StayInside keeps the cursor in the last cell instead of exiting
	StayInside bool
}

// ChunkCells splits a flat cell list into rows of cols cells
func ChunkCells(flat []string, cols int) [][]string {
	if cols <= 0 {
		return nil
	}
	rows := make([][]string, 0, (len(flat)+cols-1)/cols)
	for i := 0; i < len(flat); i += cols {
		end := i + cols
		if end > len(flat) {
			end = len(flat)
		}
		rows = append(rows, flat[i:end])
	}
	return rows
}

// InsertBox inserts a condition box and leaves the cursor inside it. A
// prebuilt template is preferred; a plain 1x1 container is the fallback.
func (c *Controller) InsertBox() error {
	if err := c.ensure("InsertBox"); err != nil {
		return err
	}
	err := c.openBox(boxTemplate)
	c.metrics.RecordInsertion("box", err)
	if err != nil {
		return err
	}
	c.ctx.EnterBox()
	c.boxTextStyle()
	c.compactParagraph()
	return nil
}

// InsertViewBox inserts a reference box headed "< 보 기 >" and leaves the
// cursor inside it with justified paragraphs
func (c *Controller) InsertViewBox() error {
	if err := c.ensure("InsertViewBox"); err != nil {
		return err
	}
	err := c.insertViewBox()
	c.metrics.RecordInsertion("view_box", err)
	return err
}

func (c *Controller) insertViewBox() error {
	if c.templateExists(viewBoxTemplate) && c.insertTemplateFile(c.templatePath(viewBoxTemplate)) == nil {
		if err := c.enterCellOrCreate(); err != nil {
			return err
		}
		c.ctx.EnterBox()
		c.boxTextStyle()
		c.compactParagraph()
		c.applyAlign(typing.AlignJustify)
		return nil
	}

	if err := c.insertIndent(c.ctx.ContainerIndent()); err != nil {
		return err
	}
	if err := c.createTable(1, 1); err != nil {
		return err
	}
	if !c.navigator.MoveToCell() {
		return automation.Failure("MoveToCell", errNoCell)
	}
	c.ctx.EnterContainer()

	c.applyAlign(typing.AlignCenter)
	c.boxTextStyle()
	if err := c.insertRaw(viewBoxHeading); err != nil {
		return err
	}
	if err := c.exec.Run("BreakPara"); err != nil {
		return err
	}
	c.applyAlign(typing.AlignLeft)
	c.ctx.ResumeBox()

	c.boxTextStyle()
	c.compactParagraph()
	c.applyAlign(typing.AlignJustify)
	return nil
}

// openBox inserts the template box, or a raw 1x1 container when the
// template is missing or refused
func (c *Controller) openBox(template string) error {
	if c.templateExists(template) && c.insertTemplateFile(c.templatePath(template)) == nil {
		return c.enterCellOrCreate()
	}
	if err := c.insertIndent(c.ctx.ContainerIndent()); err != nil {
		return err
	}
	if err := c.createTable(1, 1); err != nil {
		return err
	}
	if !c.navigator.MoveToCell() {
		return automation.Failure("MoveToCell", errNoCell)
	}
	return nil
}

// enterCellOrCreate moves into the container just inserted from a
// template, creating a raw one when the template yielded no cell
func (c *Controller) enterCellOrCreate() error {
	if c.navigator.MoveToCell() {
		return nil
	}
	if err := c.createTable(1, 1); err != nil {
		return err
	}
	if !c.navigator.MoveToCell() {
		return automation.Failure("MoveToCell", errNoCell)
	}
	return nil
}

// ExitBox leaves the current box and clears the box state
func (c *Controller) ExitBox() error {
	if err := c.ensure("ExitBox"); err != nil {
		return err
	}
	_, err := c.exec.Cascade("ExitBox",
		automation.Sequence("close", automation.RunAction("CloseEx"), automation.RunAction("MoveDown")),
		automation.Sequence("lower-cell", automation.RunAction("TableLowerCell"), automation.RunAction("MoveDown")),
	)
	c.ctx.LeaveBox()
	if err != nil {
		return err
	}
	c.applyAlign(typing.AlignLeft)
	c.ctx.LeaveContainer()
	return nil
}

// ExitTable leaves the current table without adding a blank line. Box
// state is left untouched.
func (c *Controller) ExitTable() error {
	if err := c.ensure("ExitTable"); err != nil {
		return err
	}
	return c.leaveTable()
}

// leaveTable exits the container and resets the line to a left-aligned
// line start even when the exit fails
func (c *Controller) leaveTable() error {
	_, err := c.exec.Cascade("ExitTable",
		automation.Sequence("close", automation.RunAction("CloseEx"), automation.RunAction("MoveDown")),
		automation.Strategy{Name: "lower-cell", Call: func(t automation.Transport) (interface{}, error) {
			if err := t.Run("TableLowerCell"); err != nil {
				return nil, err
			}
			if t.Run("CloseEx") == nil {
				_ = t.Run("MoveDown")
			}
			return nil, nil
		}},
	)
	c.applyAlign(typing.AlignLeft)
	c.ctx.LeaveContainer()
	return err
}

// InsertTable inserts a rows x cols table, optionally filling it row by
// row, and by default exits it afterwards
func (c *Controller) InsertTable(rows, cols int, opts TableOptions) error {
	if err := c.ensure("InsertTable"); err != nil {
		return err
	}
	if rows <= 0 || cols <= 0 {
		return automation.InvalidArgument("InsertTable", "rows and columns must be at least 1, got %dx%d", rows, cols)
	}

	err := c.insertTable(rows, cols, opts)
	c.metrics.RecordInsertion("table", err)
	return err
}

func (c *Controller) insertTable(rows, cols int, opts TableOptions) error {
	if err := c.insertIndent(c.ctx.ContainerIndent()); err != nil {
		return err
	}
	if err := c.createTable(rows, cols); err != nil {
		c.applyAlign(typing.AlignLeft)
		c.ctx.LeaveContainer()
		return err
	}
	c.ctx.EnterContainer()
	c.zeroCellMargins()

	err := c.fillCells(rows, cols, opts)
	if opts.StayInside {
		return err
	}
	return errors.Join(err, c.leaveTable())
}

func (c *Controller) fillCells(rows, cols int, opts TableOptions) error {
	for r := 0; r < rows && r < len(opts.Cells); r++ {
		row := opts.Cells[r]
		if len(row) > cols {
			row = row[:cols]
		}
		moved := 0
		for col, value := range row {
			c.cellStyle(opts.AlignCenter)
			if err := c.insertCell(value); err != nil {
				return err
			}
			if col < len(row)-1 {
				if err := c.exec.Run("TableRightCell"); err != nil {
					return err
				}
				moved++
			}
		}
		if r == rows-1 || r == len(opts.Cells)-1 {
			break
		}
		if err := c.exec.Run("TableLowerCell"); err != nil {
			return err
		}
		for i := 0; i < moved; i++ {
			if err := c.exec.Run("TableLeftCell"); err != nil {
				return err
			}
		}
	}
	return nil
}

func (c *Controller) insertCell(value string) error {
	if value == "" {
		return nil
	}
	if strings.HasPrefix(value, automation.EquationTag) {
		markup := strings.TrimSpace(strings.TrimPrefix(value, automation.EquationTag))
		if markup == "" {
			return nil
		}
		return c.InsertEquation(markup, c.opts.Equation)
	}
	return c.InsertText(value)
}

// cellStyle applies the compact equation-friendly style to a cell
func (c *Controller) cellStyle(center bool) {
	c.boxTextStyle()
	c.compactParagraph()
	if center && c.applyAlign(typing.AlignCenter) {
		c.ctx.ApplyAlign(typing.AlignCenter)
	}
}

// createTable creates a rows x cols container with the cursor in its
// first cell
func (c *Controller) createTable(rows, cols int) error {
	items := automation.Params{"Rows": rows, "Cols": cols}
	_, err := c.exec.Cascade("TableCreate",
		automation.Method("create_table", rows, cols),
		automation.ExecuteSet("TableCreate", automation.ParamSet{
			Name: "HTableCreation", Shape: automation.ShapeStructured, Items: items,
		}),
		automation.ExecuteSet("TableCreate", automation.ParamSet{
			Name: "HTableCreation", Shape: automation.ShapeCreated, Items: items,
		}),
	)
	return err
}
