//go:build windows

package platform

import (
	"sync"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32                   = windows.NewLazySystemDLL("user32.dll")
	procGetForegroundWindow  = user32.NewProc("GetForegroundWindow")
	procSetForegroundWindow  = user32.NewProc("SetForegroundWindow")
	procGetWindowTextW       = user32.NewProc("GetWindowTextW")
	procGetWindowTextLengthW = user32.NewProc("GetWindowTextLengthW")
	procIsWindowVisible      = user32.NewProc("IsWindowVisible")
	procEnumWindows          = user32.NewProc("EnumWindows")
)

type win32Desktop struct{}

// NewDesktop returns the Win32 desktop
func NewDesktop() Desktop {
	return win32Desktop{}
}

func (win32Desktop) Foreground() (Window, string) {
	hwnd, _, _ := procGetForegroundWindow.Call()
	if hwnd == 0 {
		return 0, ""
	}
	return Window(hwnd), windowText(hwnd)
}

func (win32Desktop) SetForeground(w Window) error {
	ok, _, err := procSetForegroundWindow.Call(uintptr(w))
	if ok == 0 {
		return err
	}
	return nil
}

// Callback slots are never released by the runtime, so one callback serves
// every enumeration and writes into enumTitles under enumMu.
var (
	enumMu      sync.Mutex
	enumTitles  []string
	enumVisible = windows.NewCallback(func(hwnd uintptr, _ uintptr) uintptr {
		if visible, _, _ := procIsWindowVisible.Call(hwnd); visible != 0 {
			if t := windowText(hwnd); t != "" {
				enumTitles = append(enumTitles, t)
			}
		}
		return 1
	})
)

func (win32Desktop) VisibleTitles() ([]string, error) {
	enumMu.Lock()
	defer enumMu.Unlock()

	enumTitles = nil
	ok, _, err := procEnumWindows.Call(enumVisible, 0)
	titles := enumTitles
	enumTitles = nil
	if ok == 0 && err != syscall.Errno(0) {
		return titles, err
	}
	return titles, nil
}

func windowText(hwnd uintptr) string {
	n, _, _ := procGetWindowTextLengthW.Call(hwnd)
	if n == 0 {
		return ""
	}
	buf := make([]uint16, n+1)
	procGetWindowTextW.Call(hwnd, uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	return windows.UTF16ToString(buf)
}
