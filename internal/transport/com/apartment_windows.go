//go:build windows

package com

import (
	"runtime"

	"github.com/go-ole/go-ole"
)

// apartment runs every COM call on one OS thread initialized as a
// single-threaded apartment
type apartment struct {
	calls chan func()
	done  chan struct{}
}

func newApartment() (*apartment, error) {
	a := &apartment{calls: make(chan func()), done: make(chan struct{})}
	ready := make(chan error, 1)

	go func() {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()

		if err := ole.CoInitializeEx(0, ole.COINIT_APARTMENTTHREADED); err != nil {
			// S_FALSE: already initialized on this thread
			if oleErr, ok := err.(*ole.OleError); !ok || oleErr.Code() != 1 {
				ready <- err
				return
			}
		}
		defer ole.CoUninitialize()
		ready <- nil

		for {
			select {
			case fn := <-a.calls:
				fn()
			case <-a.done:
				return
			}
		}
	}()

	if err := <-ready; err != nil {
		return nil, err
	}
	return a, nil
}

func (a *apartment) do(fn func() error) error {
	errc := make(chan error, 1)
	a.calls <- func() { errc <- fn() }
	return <-errc
}

func (a *apartment) close() {
	close(a.done)
}
