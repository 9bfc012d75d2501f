package automation

// Navigator reaches content nested in structural containers (table cells)
// that the search primitive cannot see, by probing cursor movement.
type Navigator struct {
	exec      *Executor
	positions *PositionStore
	locator   *Locator
}

// NewNavigator creates a navigator
func NewNavigator(exec *Executor, positions *PositionStore, locator *Locator) *Navigator {
	return &Navigator{exec: exec, positions: positions, locator: locator}
}

// MoveToCell moves the cursor into the container cell at the cursor. It
// reports true when the cursor moved or is verifiably inside a cell.
func (n *Navigator) MoveToCell() bool {
	for _, s := range []Strategy{RunAction("MoveToCell"), RunByName("MoveToCell")} {
		before := n.positions.Capture()
		if !n.exec.BestEffort("MoveToCell", s) {
			continue
		}
		after := n.positions.Capture()
		if Changed(before, after) {
			return true
		}
		if n.InTableContext() {
			return true
		}
	}
	return false
}

// InTableContext probes whether the cursor is inside a table cell. Cell
// block selection and horizontal cell movement only work there.
func (n *Navigator) InTableContext() bool {
	for _, s := range []Strategy{RunAction("TableCellBlock"), RunByName("TableCellBlock")} {
		if n.exec.BestEffort("TableCellBlock", s) {
			n.exec.TryRun("Cancel")
			return true
		}
	}
	probes := []struct{ right, left Strategy }{
		{RunAction("TableRightCell"), RunAction("TableLeftCell")},
		{RunByName("TableRightCell"), RunByName("TableLeftCell")},
	}
	for _, p := range probes {
		if n.exec.BestEffort("TableRightCell", p.right) {
			n.exec.BestEffort("TableLeftCell", p.left)
			return true
		}
	}
	return false
}

// ForwardIntoTable moves down line by line until a cell is entered
func (n *Navigator) ForwardIntoTable(maxLines int) bool {
	for i := 0; i < maxLines; i++ {
		n.exec.TryRun("MoveDown")
		if n.MoveToCell() {
			return true
		}
	}
	return false
}

// FromHeading finds one of the heading texts, first near the cursor and
// then from the top of the document, and descends into the first container
// below it. The cursor is restored when nothing is entered.
func (n *Navigator) FromHeading(headings []string, near, top SearchPolicy, maxLines int) bool {
	saved := n.positions.Capture()

	ok := n.locator.Find(headings, near)
	if !ok {
		n.locator.MoveDocStart()
		ok = n.locator.Find(headings, top)
	}
	if !ok {
		n.positions.Restore(saved)
		return false
	}

	n.exec.TryRun("Cancel")
	for i := 0; i < maxLines; i++ {
		n.exec.TryRun("MoveDown")
		if n.MoveToCell() {
			return true
		}
	}

	n.positions.Restore(saved)
	return false
}
