package platform

import (
	"runtime"
	"strings"
)

// Window is an OS window handle. Zero means none.
type Window uintptr

// Desktop exposes the OS window manager
type Desktop interface {
	// Foreground returns the foreground window and its title
	Foreground() (Window, string)
	// SetForeground brings w to the foreground
	SetForeground(w Window) error
	// VisibleTitles returns the titles of all visible top-level windows
	VisibleTitles() ([]string, error)
}

// Supported reports whether the word processor can run on this OS
func Supported() bool {
	return runtime.GOOS == "windows"
}

// PreserveForeground runs fn and then restores the window that was in the
// foreground before, even when fn fails
func PreserveForeground(d Desktop, fn func() error) error {
	prev, _ := d.Foreground()
	defer func() {
		if prev == 0 {
			return
		}
		if cur, _ := d.Foreground(); cur != prev {
			_ = d.SetForeground(prev)
		}
	}()
	return fn()
}

// ForegroundDocumentName returns the document shown in the foreground
// window when that window belongs to the word processor
func ForegroundDocumentName(d Desktop) string {
	_, title := d.Foreground()
	if !IsHwpTitle(title) {
		return ""
	}
	if name := DocumentName(title); name != "" {
		return name
	}
	return strings.TrimSpace(title)
}

// FindWindows lists the titles of visible word processor windows
func FindWindows(d Desktop) []string {
	titles, err := d.VisibleTitles()
	if err != nil {
		return nil
	}
	var out []string
	for _, t := range titles {
		if t != "" && mentionsHwp(t) {
			out = append(out, t)
		}
	}
	return out
}

// CurrentFilename returns the foreground document name, falling back to
// the first word processor window with a recognizable name
func CurrentFilename(d Desktop) string {
	if name := ForegroundDocumentName(d); name != "" {
		return name
	}
	for _, title := range FindWindows(d) {
		if name := DocumentName(title); name != "" {
			return name
		}
	}
	return ""
}
