package platform

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	docFilePattern = regexp.MustCompile(`(?i)([^\\/\-]+\.hwpx?)`)
	untitledDoc    = regexp.MustCompile(`^\s*(.*?)\s*-\s*(한글|HWP|Hwp)\s*$`)
)

var appWords = map[string]bool{"한글": true, "HWP": true, "Hwp": true}

// IsHwpTitle reports whether a window title belongs to the word processor.
// The application name must appear as a whole word.
func IsHwpTitle(title string) bool {
	words := strings.FieldsFunc(title, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	})
	for _, w := range words {
		if appWords[w] {
			return true
		}
	}
	return false
}

// mentionsHwp is the looser substring test used for window enumeration
func mentionsHwp(title string) bool {
	return strings.Contains(title, "한글") || strings.Contains(title, "HWP") || strings.Contains(title, "Hwp")
}

// DocumentName extracts the document name from a window title. Saved
// documents yield their file name; unsaved ones ("빈 문서1 - 한글") the
// text before the application name.
func DocumentName(title string) string {
	if title == "" {
		return ""
	}
	if m := docFilePattern.FindStringSubmatch(title); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := untitledDoc.FindStringSubmatch(title); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// MatchesDocument reports whether an in-application window title refers
// to the target title or file name
func MatchesDocument(title, target, filename string) bool {
	return (target != "" && strings.Contains(title, target)) ||
		(filename != "" && strings.Contains(title, filename))
}

// IsRPCUnavailable reports whether an attach error means the automation
// server process is gone or running at a different privilege level
func IsRPCUnavailable(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	for _, s := range []string{"RPC 서버를 사용할 수 없습니다", "RPC server is unavailable", "0x800706BA", "0x800706ba", "-2147023174"} {
		if strings.Contains(msg, s) {
			return true
		}
	}
	return false
}
