package automation

import (
	"errors"
	"fmt"
)

// Kind classifies automation failures
type Kind int

const (
	KindAutomationFailure Kind = iota
	KindNotConnected
	KindInvalidArgument
	KindDependencyMissing
)

// String returns the string representation of the kind
func (k Kind) String() string {
	switch k {
	case KindNotConnected:
		return "not connected"
	case KindAutomationFailure:
		return "automation failure"
	case KindInvalidArgument:
		return "invalid argument"
	case KindDependencyMissing:
		return "dependency missing"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is
var (
	ErrNotConnected      = &Error{Kind: KindNotConnected}
	ErrAutomationFailure = &Error{Kind: KindAutomationFailure}
	ErrInvalidArgument   = &Error{Kind: KindInvalidArgument}
	ErrDependencyMissing = &Error{Kind: KindDependencyMissing}
)

// Error is the single failure type surfaced to callers. Transport errors
// never cross this boundary except as the wrapped cause.
type Error struct {
	Kind Kind
	Op   string
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = e.Kind.String()
	}
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the last underlying cause
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// NotConnected reports an operation issued without a live session
func NotConnected(op string) error {
	return &Error{Kind: KindNotConnected, Op: op, Msg: "call Connect first"}
}

// Failure reports an exhausted command cascade
func Failure(op string, cause error) error {
	return &Error{Kind: KindAutomationFailure, Op: op, Msg: "all strategies failed", Err: cause}
}

// InvalidArgument reports a rejected caller argument
func InvalidArgument(op string, format string, args ...interface{}) error {
	return &Error{Kind: KindInvalidArgument, Op: op, Msg: fmt.Sprintf(format, args...)}
}

// DependencyMissing reports an absent collaborator
func DependencyMissing(op string, what string) error {
	return &Error{Kind: KindDependencyMissing, Op: op, Msg: what + " is not available"}
}

// KindOf extracts the kind of err, defaulting to KindAutomationFailure
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindAutomationFailure
}
