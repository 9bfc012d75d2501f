package controller

import (
	"github.com/GriffinCanCode/litepro/internal/automation"
	"go.uber.org/zap"
)

var viewHeadings = []string{"<보기>", "< 보 기 >", "<보", "보기>"}

const (
	headingMaxLines = 20
	forwardMaxLines = 80
)

// FocusPlaceholder finds a template marker, deletes it and leaves the
// cursor in its place. It reports whether the cursor was moved to the
// marker. A missing marker is not an error.
func (c *Controller) FocusPlaceholder(marker string) (bool, error) {
	if err := c.ensure("FocusPlaceholder"); err != nil {
		return false, err
	}
	if marker == "" {
		return false, automation.InvalidArgument("FocusPlaceholder", "marker is empty")
	}

	var found bool
	if marker == automation.MarkerHash {
		found = c.focusHash()
	} else {
		found = c.focusMarker(marker)
	}
	c.metrics.RecordPlaceholder(marker, found)
	c.logger.Debug("placeholder focus", zap.String("marker", marker), zap.Bool("found", found))
	return found, nil
}

func (c *Controller) focusMarker(marker string) bool {
	variants := automation.Variants(marker)
	saved := c.positions.Capture()

	found := c.locator.Find(variants, c.opts.Search.WithDirections(automation.Forward, automation.Backward))
	if !found && marker != automation.MarkerAmp && saved != nil {
		c.locator.MoveDocStart()
		found = c.locator.Find(variants, c.opts.Search.WithDirections(automation.Forward))
	}
	if !found {
		c.positions.Restore(saved)
		return false
	}
	c.locator.DeleteFound()
	return true
}

// focusHash handles the marker that lives in the reference box cell, which
// some application versions cannot search into. Strategies run in order:
// scoped search, heading descent, forward probe, and forward probe from
// the original position.
func (c *Controller) focusHash() bool {
	variants := automation.Variants(automation.MarkerHash)
	saved := c.positions.Capture()

	if c.locator.Find(variants, c.opts.Search.WithDirections(automation.Forward, automation.Backward, automation.WholeDocument)) {
		c.locator.DeleteFound()
		return true
	}

	near := c.opts.Search.WithDirections(automation.Forward, automation.Backward)
	top := c.opts.Search.WithRetry(c.opts.Search.Retry.Attempts+2, c.opts.Search.Retry.Delay)
	if c.navigator.FromHeading(viewHeadings, near, top, headingMaxLines) {
		c.claimBox(variants)
		return true
	}
	if c.navigator.ForwardIntoTable(forwardMaxLines) {
		c.claimBox(variants)
		return true
	}
	if saved != nil {
		c.positions.Restore(saved)
		if c.navigator.ForwardIntoTable(forwardMaxLines) {
			c.claimBox(variants)
			return true
		}
	}

	c.positions.Restore(saved)
	return false
}

// claimBox removes the marker inside the entered box, if it is visible
// from there, and marks the typing context as inside a box
func (c *Controller) claimBox(variants []string) {
	post := c.opts.Search.WithRetry(2, c.opts.Search.Retry.Delay).WithDirections(automation.Forward, automation.Backward)
	if c.locator.Find(variants, post) {
		c.locator.DeleteFound()
	}
	c.ctx.EnterBox()
}

// CleanupKnownPlaceholders removes residual markers anywhere in the
// document and puts the cursor back
func (c *Controller) CleanupKnownPlaceholders() error {
	if err := c.ensure("CleanupKnownPlaceholders"); err != nil {
		return err
	}
	for _, marker := range automation.KnownMarkers {
		c.cleanupTemplatePlaceholder(marker)
	}
	return nil
}

// CleanupKnownPlaceholdersNearCursor removes residual markers found close
// to the cursor without global cursor moves
func (c *Controller) CleanupKnownPlaceholdersNearCursor() error {
	if err := c.ensure("CleanupKnownPlaceholdersNearCursor"); err != nil {
		return err
	}
	for _, marker := range automation.KnownMarkers {
		if c.locator.Find(automation.Variants(marker), c.opts.NearSearch) {
			c.locator.DeleteFound()
			c.exec.TryRun("Cancel")
		}
	}
	return nil
}

// cleanupTemplatePlaceholder deletes marker without moving the typing
// cursor. Without position support only a local search is made.
func (c *Controller) cleanupTemplatePlaceholder(marker string) {
	variants := automation.Variants(marker)
	saved := c.positions.Capture()
	if saved == nil {
		if c.locator.Find(variants, c.opts.NearSearch) {
			c.locator.DeleteFound()
		}
		return
	}

	c.locator.MoveDocStart()
	if c.locator.Find(variants, c.opts.Search.WithDirections(automation.Forward)) {
		c.locator.DeleteFound()
	}
	c.positions.Restore(saved)
}
