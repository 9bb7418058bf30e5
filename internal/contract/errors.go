package contract

import (
	"errors"

	"github.com/mattjoyce/counter-contract/internal/protocol"
)

// ErrUnknownMethod is returned when the method is not declared by the manifest.
var ErrUnknownMethod = errors.New("unknown method")

// FailureMessage returns the fixed Error event payload for a failure kind.
func FailureMessage(err error) string {
	switch {
	case errors.Is(err, protocol.ErrNoInput):
		return "No input received"
	case errors.Is(err, protocol.ErrInvalidRequest):
		return "Invalid JSON input"
	case errors.Is(err, ErrUnknownMethod):
		return "Unknown method"
	default:
		return err.Error()
	}
}
