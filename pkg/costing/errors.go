package costing

import "fmt"

// InvalidTokenCountError indicates a non-positive or absurdly large
// token count.
type InvalidTokenCountError struct {
	// Tokens is the rejected value.
	Tokens int64

	// Reason describes why it was rejected.
	Reason string
}

// Error implements the error interface.
func (e *InvalidTokenCountError) Error() string {
	return fmt.Sprintf("invalid token count %d: %s", e.Tokens, e.Reason)
}

// UnknownApproachError indicates an entitlement naming an approach the
// engine does not know.
type UnknownApproachError struct {
	Approach ApproachKind
}

// Error implements the error interface.
func (e *UnknownApproachError) Error() string {
	return fmt.Sprintf("unknown training approach %q", e.Approach)
}
