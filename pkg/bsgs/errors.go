package bsgs

import "fmt"

// DomainError reports a violated arithmetic precondition, such as inverting
// zero or doubling a point with a vertical tangent. It always indicates a bug
// in the caller, never the absence of a solution, so it is surfaced as-is and
// never retried.
type DomainError struct {
	Op     string // operation that was attempted, e.g. "inverse"
	Reason string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

// FormatError reports malformed key material: bad hex, wrong length, an
// unknown prefix byte, or a point that is not on the curve. The call is
// rejected; nothing is coerced or guessed.
type FormatError struct {
	Input  string // what was being parsed, e.g. "public key"
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Input, e.Reason)
}

// NewFormatError builds a FormatError, optionally wrapping an underlying
// parse error into the reason.
func NewFormatError(input, reason string, err error) *FormatError {
	if err != nil {
		reason = fmt.Sprintf("%s: %v", reason, err)
	}
	return &FormatError{Input: input, Reason: reason}
}
