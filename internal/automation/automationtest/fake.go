// Package automationtest provides a scriptable in-memory Transport for
// exercising command cascades without a running word processor.
package automationtest

import (
	"errors"
	"fmt"
	"strings"

	"github.com/GriffinCanCode/litepro/internal/automation"
)

// ErrRejected is returned by calls configured to fail
var ErrRejected = errors.New("rejected by fake")

// Call records one transport call
type Call struct {
	Kind string // execute, run, runbyname, invoke, control, getpos, setpos
	Name string
	Set  automation.ParamSet
	Args []interface{}
	Err  error
}

// Key identifies the call as "kind:name"
func (c Call) Key() string {
	return c.Kind + ":" + c.Name
}

// Handler overrides the default behavior for a key
type Handler func(f *Fake, c Call) (interface{}, error)

// Fake is an in-memory word processor. It models enough behavior for the
// typing pipeline: inserted text, a searchable document, table-cell
// context, line movement and cursor positions.
type Fake struct {
	Calls []Call

	// Doc is the searchable document text
	Doc string
	// Text collects segments inserted through InsertText
	Text []string
	// NoPositions makes GetPos fail like old application versions
	NoPositions bool
	// Pos is the current cursor position token
	Pos int
	// Lines counts MoveDown calls
	Lines int
	// CellAfter is the number of MoveDown calls before MoveToCell can
	// reach a cell when not already next to one
	CellAfter int
	// InCell reports whether the cursor is inside a table cell
	InCell bool
	// Unavailable makes every call fail with automation.ErrUnavailable
	Unavailable bool
	// Titles are the open document titles for ActivateDocument
	Titles []string
	// Activated is the last activated title
	Activated string
	// Properties records SetControlProperty calls
	Properties map[string]interface{}

	failures   map[string]int
	handlers   map[string]Handler
	selection  string
	findMisses int
	cellNear   bool
}

// New creates a fake with a cell reachable at the cursor
func New() *Fake {
	return &Fake{
		failures:   map[string]int{},
		handlers:   map[string]Handler{},
		Properties: map[string]interface{}{},
		CellAfter:  -1,
	}
}

// Fail makes the next n calls matching key fail; n < 0 fails forever.
// Keys are "run:Action", "runbyname:Action", "invoke:Method",
// "execute:Action" or "execute:Action/SetName".
func (f *Fake) Fail(key string, n int) *Fake {
	f.failures[key] = n
	return f
}

// Reject makes every call matching the keys fail
func (f *Fake) Reject(keys ...string) *Fake {
	for _, k := range keys {
		f.failures[k] = -1
	}
	return f
}

// RejectAction makes an action fail through both run conventions
func (f *Fake) RejectAction(actions ...string) *Fake {
	for _, a := range actions {
		f.Reject("run:"+a, "runbyname:"+a)
	}
	return f
}

// Handle overrides the behavior for key
func (f *Fake) Handle(key string, h Handler) *Fake {
	f.handlers[key] = h
	return f
}

// RenderAfter makes the first n searches miss, like a template that is
// still being rendered
func (f *Fake) RenderAfter(n int) *Fake {
	f.findMisses = n
	return f
}

// Keys returns the keys of all recorded calls in order
func (f *Fake) Keys() []string {
	keys := make([]string, len(f.Calls))
	for i, c := range f.Calls {
		keys[i] = c.Key()
	}
	return keys
}

// Succeeded returns the keys of calls that did not fail
func (f *Fake) Succeeded() []string {
	var keys []string
	for _, c := range f.Calls {
		if c.Err == nil {
			keys = append(keys, c.Key())
		}
	}
	return keys
}

// Count returns how many calls matched key
func (f *Fake) Count(key string) int {
	n := 0
	for _, c := range f.Calls {
		if c.Key() == key {
			n++
		}
	}
	return n
}

// Has reports whether a successful call matched key
func (f *Fake) Has(key string) bool {
	for _, c := range f.Calls {
		if c.Key() == key && c.Err == nil {
			return true
		}
	}
	return false
}

// Executed returns the successful execute calls for action
func (f *Fake) Executed(action string) []Call {
	var out []Call
	for _, c := range f.Calls {
		if c.Kind == "execute" && c.Name == action && c.Err == nil {
			out = append(out, c)
		}
	}
	return out
}

// Inserted returns all inserted text
func (f *Fake) Inserted() string {
	return strings.Join(f.Text, "")
}

// LastAlign returns the last paragraph alignment applied ("left",
// "right", "center", "justify") or "" when none was applied
func (f *Fake) LastAlign() string {
	const prefix = "ParagraphShapeAlign"
	for i := len(f.Calls) - 1; i >= 0; i-- {
		c := f.Calls[i]
		if c.Err != nil || (c.Kind != "run" && c.Kind != "runbyname") {
			continue
		}
		if strings.HasPrefix(c.Name, prefix) {
			return strings.ToLower(strings.TrimPrefix(c.Name, prefix))
		}
	}
	return ""
}

// Reset clears the recorded calls
func (f *Fake) Reset() {
	f.Calls = nil
}

// Execute implements automation.Transport
func (f *Fake) Execute(action string, set automation.ParamSet) (interface{}, error) {
	c := Call{Kind: "execute", Name: action, Set: set}
	return f.dispatch(c, action+"/"+set.Name)
}

// Run implements automation.Transport
func (f *Fake) Run(action string) error {
	_, err := f.dispatch(Call{Kind: "run", Name: action})
	return err
}

// Invoke implements automation.Transport
func (f *Fake) Invoke(method string, args ...interface{}) (interface{}, error) {
	if method == "Run" && len(args) > 0 {
		if action, ok := args[0].(string); ok {
			return f.dispatch(Call{Kind: "runbyname", Name: action, Args: args[1:]})
		}
	}
	return f.dispatch(Call{Kind: "invoke", Name: method, Args: args})
}

// GetPos implements automation.Transport
func (f *Fake) GetPos() (automation.Position, error) {
	v, err := f.dispatch(Call{Kind: "getpos", Name: "GetPos"})
	if err != nil {
		return nil, err
	}
	return v, nil
}

// SetPos implements automation.Transport
func (f *Fake) SetPos(pos automation.Position) error {
	_, err := f.dispatch(Call{Kind: "setpos", Name: "SetPos", Args: []interface{}{pos}})
	return err
}

// SetControlProperty implements automation.ControlEditor
func (f *Fake) SetControlProperty(name string, value interface{}) error {
	_, err := f.dispatch(Call{Kind: "control", Name: "SetControlProperty", Args: []interface{}{name, value}})
	if err == nil {
		f.Properties[name] = value
	}
	return err
}

// ActivateDocument implements automation.WindowActivator
func (f *Fake) ActivateDocument(match func(title string) bool) bool {
	for _, title := range f.Titles {
		if match(title) {
			f.Activated = title
			return true
		}
	}
	return false
}

func (f *Fake) dispatch(c Call, extraKeys ...string) (interface{}, error) {
	result, err := f.resolve(c, extraKeys)
	c.Err = err
	f.Calls = append(f.Calls, c)
	return result, err
}

func (f *Fake) resolve(c Call, extraKeys []string) (interface{}, error) {
	if f.Unavailable {
		return nil, automation.ErrUnavailable
	}
	keys := append([]string{c.Key()}, extraKeys...)
	for i, k := range keys {
		if i > 0 {
			k = c.Kind + ":" + k
		}
		if n, ok := f.failures[k]; ok && n != 0 {
			if n > 0 {
				f.failures[k] = n - 1
			}
			return nil, fmt.Errorf("%s: %w", k, ErrRejected)
		}
	}
	if h, ok := f.handlers[c.Key()]; ok {
		return h(f, c)
	}
	return f.builtin(c)
}

func (f *Fake) builtin(c Call) (interface{}, error) {
	switch c.Kind {
	case "getpos":
		if f.NoPositions {
			return nil, errors.New("GetPos not supported")
		}
		return f.Pos, nil
	case "setpos":
		if f.NoPositions {
			return nil, errors.New("SetPos not supported")
		}
		if p, ok := c.Args[0].(int); ok {
			f.Pos = p
		}
		return nil, nil
	case "execute":
		return f.execute(c)
	case "run", "runbyname":
		return nil, f.run(c.Name)
	case "control":
		return nil, nil
	default:
		return nil, fmt.Errorf("method %s not supported", c.Name)
	}
}

func (f *Fake) execute(c Call) (interface{}, error) {
	switch c.Name {
	case "InsertText":
		text, _ := c.Set.Items["Text"].(string)
		f.Text = append(f.Text, text)
		f.Pos++
		return true, nil
	case "RepeatFind":
		if f.findMisses > 0 {
			f.findMisses--
			return false, nil
		}
		needle, _ := c.Set.Items["FindString"].(string)
		if needle != "" && strings.Contains(f.Doc, needle) {
			f.selection = needle
			return true, nil
		}
		return false, nil
	case "TableCreate":
		f.InCell = true
		f.cellNear = true
		f.Pos++
		return true, nil
	default:
		return true, nil
	}
}

func (f *Fake) run(action string) error {
	switch action {
	case "Delete", "DeleteBack":
		if f.selection != "" {
			f.Doc = strings.Replace(f.Doc, f.selection, "", 1)
			f.selection = ""
		}
	case "MoveToCell":
		if f.InCell {
			return nil
		}
		if f.cellNear || (f.CellAfter >= 0 && f.Lines >= f.CellAfter) {
			f.InCell = true
			f.Pos++
			return nil
		}
		return errors.New("no cell at cursor")
	case "TableCellBlock", "TableRightCell", "TableLeftCell", "TableLowerCell":
		if !f.InCell {
			return errors.New("not in a table")
		}
	case "CloseEx":
		if !f.InCell {
			return errors.New("not in a table")
		}
		f.InCell = false
		f.cellNear = false
	case "MoveDown":
		f.Lines++
		f.Pos++
	case "BreakPara":
		f.Text = append(f.Text, "\n")
		f.Pos++
	case "MoveDocBegin":
		f.Pos = 0
	}
	return nil
}

// Attacher hands out a fixed transport
type Attacher struct {
	Transport automation.Transport
	Err       error
	Attached  int
	Options   automation.AttachOptions
}

// Attach implements automation.Attacher
func (a *Attacher) Attach(opts automation.AttachOptions) (automation.Transport, error) {
	a.Options = opts
	if a.Err != nil {
		return nil, a.Err
	}
	a.Attached++
	return a.Transport, nil
}
