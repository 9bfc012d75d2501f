//go:build !windows

package platform

type noDesktop struct{}

// NewDesktop returns a desktop without windows
func NewDesktop() Desktop {
	return noDesktop{}
}

func (noDesktop) Foreground() (Window, string) { return 0, "" }

func (noDesktop) SetForeground(Window) error { return nil }

func (noDesktop) VisibleTitles() ([]string, error) { return nil, nil }
