package mrc

import "fmt"

// Kind distinguishes the fatal error categories a run can fail with.
type Kind uint8

const (
	// InvalidTraceRecord: a malformed binary record (bad command byte,
	// short read).
	InvalidTraceRecord Kind = iota
	// InvalidPolicyConfig: a policy string failed to parse, or its
	// numeric parameters are out of range.
	InvalidPolicyConfig
	// ConfigConflict: mutually exclusive flags were set, or a required
	// flag combination is missing.
	ConfigConflict
	// IoError: a trace or curve file could not be read or written.
	IoError
	// DuplicatePolicy: Kosmo was configured with the same policy twice.
	DuplicatePolicy
)

func (k Kind) String() string {
	switch k {
	case InvalidTraceRecord:
		return "invalid trace record"
	case InvalidPolicyConfig:
		return "invalid policy config"
	case ConfigConflict:
		return "config conflict"
	case IoError:
		return "I/O error"
	case DuplicatePolicy:
		return "duplicate policy"
	default:
		return "unknown error"
	}
}

// Error is the typed error every exported mrc operation fails with. Callers
// can match on Kind directly or use errors.Is/errors.As against Err.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("mrc: %s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("mrc: %s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}
