package generation

import "errors"

// Common errors returned by generation backends
var (
	// ErrGenerationFailed is returned when text or image generation fails
	// for any general reason
	ErrGenerationFailed = errors.New("failed to generate proposal content")

	// ErrInvalidResponse is returned when a provider response cannot be
	// decoded or is malformed
	ErrInvalidResponse = errors.New("invalid response from generation service")

	// ErrContentBlocked is returned when the provider blocks the content
	// due to safety filters
	ErrContentBlocked = errors.New("content blocked by generation service safety filters")

	// ErrInvalidConfig is returned when a generator configuration is invalid
	ErrInvalidConfig = errors.New("invalid generator configuration")
)

// IsGenerationError reports whether err originated from a generation
// backend, as opposed to an unexpected failure elsewhere.
func IsGenerationError(err error) bool {
	return errors.Is(err, ErrGenerationFailed) ||
		errors.Is(err, ErrInvalidResponse) ||
		errors.Is(err, ErrContentBlocked) ||
		errors.Is(err, ErrInvalidConfig)
}

// IsPermanent reports whether err should not be retried. Safety blocks and
// misconfiguration never resolve on a later attempt; everything else is
// treated as transient.
func IsPermanent(err error) bool {
	return errors.Is(err, ErrContentBlocked) || errors.Is(err, ErrInvalidConfig)
}
