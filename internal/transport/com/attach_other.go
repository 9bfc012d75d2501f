//go:build !windows

package com

import (
	"github.com/GriffinCanCode/litepro/internal/automation"
	"github.com/GriffinCanCode/litepro/internal/logging"
)

// Attacher reports that COM automation is unavailable on this OS
type Attacher struct{}

// NewAttacher creates an attacher
func NewAttacher(*logging.Logger) *Attacher {
	return &Attacher{}
}

// Attach implements automation.Attacher
func (a *Attacher) Attach(automation.AttachOptions) (automation.Transport, error) {
	return nil, automation.DependencyMissing("Attach", "COM automation (Windows only)")
}
