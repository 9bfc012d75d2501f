package automation

import "errors"

// Shape selects how a parameter set object is obtained from the application
type Shape int

const (
	// ShapeStructured uses the pre-built HParameterSet.<Name> object
	ShapeStructured Shape = iota
	// ShapeCreated builds a fresh set with CreateSet(<Name>)
	ShapeCreated
)

// Params holds parameter set items keyed by item name
type Params map[string]interface{}

// ParamSet names a parameter set and the items to apply before execution.
// Items that the set does not expose make the execution fail; Optional
// items are applied only where the application version exposes them.
type ParamSet struct {
	Name     string
	Shape    Shape
	Items    Params
	Optional Params
}

// Position is an opaque cursor snapshot. Nil means unavailable.
type Position interface{}

// Transport is the narrow contract with the running application
type Transport interface {
	// Execute loads the action defaults into set, applies its items and
	// executes action with it.
	Execute(action string, set ParamSet) (interface{}, error)
	// Run runs a parameterless action through the action table.
	Run(action string) error
	// Invoke calls a method on the application object.
	Invoke(method string, args ...interface{}) (interface{}, error)
	// GetPos returns the current cursor position.
	GetPos() (Position, error)
	// SetPos moves the cursor to a position returned by GetPos.
	SetPos(pos Position) error
}

// ControlEditor is implemented by transports that can mutate properties of
// the currently selected (or most recently inserted) object directly.
type ControlEditor interface {
	SetControlProperty(name string, value interface{}) error
}

// WindowActivator is implemented by transports that can switch the active
// document inside the application.
type WindowActivator interface {
	ActivateDocument(match func(title string) bool) bool
}

// ErrUnavailable marks transport errors meaning the application is gone
var ErrUnavailable = errors.New("automation server unavailable")

// Attacher produces a Transport bound to a running application
type Attacher interface {
	Attach(opts AttachOptions) (Transport, error)
}

// AttachOptions configures attachment to the running application
type AttachOptions struct {
	Visible        bool
	RegisterModule bool
}
