package radiometry

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes radiometry errors.
type ErrorCode string

const (
	// ErrCodeUnknownBand indicates the band is not present in the profile.
	ErrCodeUnknownBand ErrorCode = "UNKNOWN_BAND"

	// ErrCodeInvalidInput indicates a non-positive time, binning, aperture
	// count or target SNR, or a non-finite surface brightness.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"

	// ErrCodeNoRealSolution indicates the limit quadratic has no finite real root.
	ErrCodeNoRealSolution ErrorCode = "NO_REAL_SOLUTION"

	// ErrCodeNonPhysical indicates a computed count rate is not positive, so
	// it cannot be converted to a magnitude or an exposure time.
	ErrCodeNonPhysical ErrorCode = "NON_PHYSICAL_RESULT"
)

// Error is returned by every operation in this package.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Band is the band identifier involved, if any.
	Band string

	// Details contains additional context.
	Details map[string]string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Band != "" {
		return fmt.Sprintf("%s: %s (band=%s)", e.Code, e.Message, e.Band)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// CodeOf returns the ErrorCode carried by err, or "" if err is not an *Error.
func CodeOf(err error) ErrorCode {
	var re *Error
	if errors.As(err, &re) {
		return re.Code
	}
	return ""
}

// IsUnknownBand reports whether err is an unknown band error.
func IsUnknownBand(err error) bool { return CodeOf(err) == ErrCodeUnknownBand }

// IsInvalidInput reports whether err is an invalid input error.
func IsInvalidInput(err error) bool { return CodeOf(err) == ErrCodeInvalidInput }

// IsNoRealSolution reports whether err is a no-real-solution error.
func IsNoRealSolution(err error) bool { return CodeOf(err) == ErrCodeNoRealSolution }

// IsNonPhysical reports whether err is a non-physical result error.
func IsNonPhysical(err error) bool { return CodeOf(err) == ErrCodeNonPhysical }

// NewUnknownBandError creates an Error for a band missing from the profile.
func NewUnknownBandError(band string, known []string) *Error {
	return &Error{
		Code:    ErrCodeUnknownBand,
		Message: "band not defined in profile",
		Band:    band,
		Details: map[string]string{
			"known_bands": fmt.Sprintf("%v", known),
		},
	}
}

// invalidInput creates an Error for a parameter that fails validation.
func invalidInput(param string, value any, want string) *Error {
	return &Error{
		Code:    ErrCodeInvalidInput,
		Message: fmt.Sprintf("%s must be %s, got %v", param, want, value),
		Details: map[string]string{
			"param": param,
			"value": fmt.Sprintf("%v", value),
		},
	}
}
