//go:build windows

package com

import (
	"errors"
	"fmt"

	"github.com/GriffinCanCode/litepro/internal/automation"
	"github.com/GriffinCanCode/litepro/internal/logging"
	"github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"
	"go.uber.org/zap"
)

// HRESULTs meaning the server process is gone
const (
	rpcServerUnavailable = 0x800706BA
	rpcDisconnected      = 0x80010108
	rpcCallFailed        = 0x800706BE
)

// Attacher attaches to a running application over COM
type Attacher struct {
	logger *logging.Logger
}

// NewAttacher creates a COM attacher
func NewAttacher(logger *logging.Logger) *Attacher {
	return &Attacher{logger: logger.Named("com")}
}

// Attach binds to the running application object, creating one through
// the class factory when none is registered as active
func (a *Attacher) Attach(opts automation.AttachOptions) (automation.Transport, error) {
	apt, err := newApartment()
	if err != nil {
		return nil, fmt.Errorf("initialize COM: %w", err)
	}

	t := &Transport{apt: apt}
	err = apt.do(func() error {
		unknown, err := oleutil.GetActiveObject(ProgID)
		if err != nil {
			a.logger.Debug("no active object, creating one", zap.Error(err))
			if unknown, err = oleutil.CreateObject(ProgID); err != nil {
				return classify(err)
			}
		}
		defer unknown.Release()

		app, err := unknown.QueryInterface(ole.IID_IDispatch)
		if err != nil {
			return classify(err)
		}
		t.app = app

		if opts.RegisterModule {
			if _, err := oleutil.CallMethod(app, "RegisterModule", "FilePathCheckDLL", "FilePathCheckerModule"); err != nil {
				a.logger.Warn("security module not registered", zap.Error(err))
			}
		}
		if opts.Visible {
			t.show()
		}
		return nil
	})
	if err != nil {
		apt.close()
		return nil, err
	}
	return t, nil
}

// Transport drives the application object. All calls are marshalled onto
// the apartment thread.
type Transport struct {
	apt *apartment
	app *ole.IDispatch
}

// Execute implements automation.Transport
func (t *Transport) Execute(action string, set automation.ParamSet) (result interface{}, err error) {
	err = t.apt.do(func() error {
		hact, err := dispatchProperty(t.app, "HAction")
		if err != nil {
			return err
		}

		var target, hset *ole.IDispatch
		switch set.Shape {
		case automation.ShapeCreated:
			v, err := oleutil.CallMethod(t.app, "CreateSet", set.Name)
			if err != nil {
				return classify(err)
			}
			hset = v.ToIDispatch()
		default:
			sets, err := dispatchProperty(t.app, "HParameterSet")
			if err != nil {
				return err
			}
			if target, err = dispatchProperty(sets, set.Name); err != nil {
				return err
			}
			if hset, err = dispatchProperty(target, "HSet"); err != nil {
				return err
			}
		}
		if hset == nil {
			return fmt.Errorf("parameter set %s unavailable", set.Name)
		}

		if _, err := oleutil.CallMethod(hact, "GetDefault", action, hset); err != nil {
			return classify(err)
		}
		for name, value := range set.Items {
			if err := setItem(target, hset, name, value); err != nil {
				return fmt.Errorf("set %s.%s: %w", set.Name, name, err)
			}
		}
		for name, value := range set.Optional {
			_ = setItem(target, hset, name, value)
		}

		v, err := oleutil.CallMethod(hact, "Execute", action, hset)
		if err != nil {
			return classify(err)
		}
		result = v.Value()
		return nil
	})
	return result, err
}

// Run implements automation.Transport. A false return from the action
// table counts as a failure.
func (t *Transport) Run(action string) error {
	return t.apt.do(func() error {
		hact, err := dispatchProperty(t.app, "HAction")
		if err != nil {
			return err
		}
		v, err := oleutil.CallMethod(hact, "Run", action)
		if err != nil {
			return classify(err)
		}
		if ok, isBool := v.Value().(bool); isBool && !ok {
			return fmt.Errorf("action %s refused", action)
		}
		return nil
	})
}

// Invoke implements automation.Transport
func (t *Transport) Invoke(method string, args ...interface{}) (result interface{}, err error) {
	err = t.apt.do(func() error {
		v, err := oleutil.CallMethod(t.app, method, args...)
		if err != nil {
			return classify(err)
		}
		result = v.Value()
		return nil
	})
	return result, err
}

// GetPos implements automation.Transport. The position is the
// (list, paragraph, offset) triple.
func (t *Transport) GetPos() (pos automation.Position, err error) {
	err = t.apt.do(func() error {
		v, err := oleutil.CallMethod(t.app, "GetPos")
		if err != nil {
			return classify(err)
		}
		if arr := v.ToArray(); arr != nil {
			pos = arr.ToValueArray()
			return nil
		}
		pos = v.Value()
		return nil
	})
	return pos, err
}

// SetPos implements automation.Transport
func (t *Transport) SetPos(pos automation.Position) error {
	return t.apt.do(func() error {
		args := []interface{}{pos}
		if parts, ok := pos.([]interface{}); ok {
			args = parts
		}
		_, err := oleutil.CallMethod(t.app, "SetPos", args...)
		return classify(err)
	})
}

// SetControlProperty implements automation.ControlEditor on the selected
// control
func (t *Transport) SetControlProperty(name string, value interface{}) error {
	return t.apt.do(func() error {
		ctrl, err := dispatchProperty(t.app, "CurSelectedCtrl")
		if err != nil {
			return err
		}
		if ctrl == nil {
			return errors.New("no control selected")
		}
		props, err := dispatchProperty(ctrl, "Properties")
		if err != nil {
			return err
		}
		if _, err := oleutil.CallMethod(props, "SetItem", name, value); err != nil {
			return classify(err)
		}
		_, err = oleutil.PutProperty(ctrl, "Properties", props)
		return classify(err)
	})
}

// ActivateDocument implements automation.WindowActivator. It switches the
// active document inside the application and never raises its window.
func (t *Transport) ActivateDocument(match func(title string) bool) bool {
	activated := false
	_ = t.apt.do(func() error {
		wins, err := dispatchProperty(t.app, "XHwpWindows")
		if err != nil || wins == nil {
			return err
		}
		count, err := oleutil.GetProperty(wins, "Count")
		if err != nil {
			return err
		}
		for i := 0; i < int(count.Val); i++ {
			v, err := oleutil.CallMethod(wins, "Item", i)
			if err != nil {
				continue
			}
			win := v.ToIDispatch()
			if win == nil || !match(windowTitle(win)) {
				continue
			}
			for _, m := range []string{"SetActive", "Activate", "setActive"} {
				if _, err := oleutil.CallMethod(win, m); err == nil {
					activated = true
					return nil
				}
			}
		}
		return nil
	})
	return activated
}

// Close releases the application object and stops the apartment thread
func (t *Transport) Close() error {
	err := t.apt.do(func() error {
		if t.app != nil {
			t.app.Release()
			t.app = nil
		}
		return nil
	})
	t.apt.close()
	return err
}

func (t *Transport) show() {
	wins, err := dispatchProperty(t.app, "XHwpWindows")
	if err != nil || wins == nil {
		return
	}
	v, err := oleutil.CallMethod(wins, "Item", 0)
	if err != nil || v.ToIDispatch() == nil {
		return
	}
	_, _ = oleutil.PutProperty(v.ToIDispatch(), "Visible", true)
}

func windowTitle(win *ole.IDispatch) string {
	for _, prop := range []string{"Title", "Text", "Caption", "Name"} {
		if v, err := oleutil.GetProperty(win, prop); err == nil {
			if s, ok := v.Value().(string); ok && s != "" {
				return s
			}
		}
	}
	for _, m := range []string{"GetTitle", "get_Title"} {
		if v, err := oleutil.CallMethod(win, m); err == nil {
			if s, ok := v.Value().(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}

func dispatchProperty(obj *ole.IDispatch, name string) (*ole.IDispatch, error) {
	v, err := oleutil.GetProperty(obj, name)
	if err != nil {
		return nil, classify(err)
	}
	return v.ToIDispatch(), nil
}

// setItem applies an item through the structured object when there is
// one, then through SetItem on the raw set
func setItem(target, hset *ole.IDispatch, name string, value interface{}) error {
	if target != nil {
		if _, err := oleutil.PutProperty(target, name, value); err == nil {
			return nil
		}
	}
	_, err := oleutil.CallMethod(hset, "SetItem", name, value)
	return err
}

// classify marks errors meaning the server is gone
func classify(err error) error {
	if err == nil {
		return nil
	}
	var oleErr *ole.OleError
	if errors.As(err, &oleErr) {
		switch uint32(oleErr.Code()) {
		case rpcServerUnavailable, rpcDisconnected, rpcCallFailed:
			return fmt.Errorf("%w: %v", automation.ErrUnavailable, err)
		}
	}
	return err
}
