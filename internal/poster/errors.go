package poster

import "errors"

var (
	// ErrValidation marks a job whose look snapshot cannot be decoded or validated. Never retried.
	ErrValidation = errors.New("invalid look snapshot")
	// ErrPrecondition marks a look that the platform cannot accept as is. Never retried.
	ErrPrecondition = errors.New("look does not satisfy platform requirements")

	ErrUnknownPlatform = errors.New("unknown platform")
)

// isTerminal reports whether err must not be retried.
func isTerminal(err error) bool {
	return errors.Is(err, ErrValidation) || errors.Is(err, ErrPrecondition) || errors.Is(err, ErrUnknownPlatform)
}
