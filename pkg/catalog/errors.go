package catalog

import "fmt"

// NotFoundError indicates a model identifier is not present in the
// registry.
type NotFoundError struct {
	// ID is the requested model identifier.
	ID string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("model %q not found in catalog", e.ID)
}
