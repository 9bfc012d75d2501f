// Package platform wraps the OS window manager: locating word processor
// windows, reading document names from their titles, and keeping the
// user's foreground window in place while automation runs.
package platform
