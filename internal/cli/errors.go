package cli

import (
	"errors"

	"github.com/roach88/skylimit/internal/profile"
	"github.com/roach88/skylimit/internal/radiometry"
)

// Error codes for failures that are not radiometry or profile errors.
// Radiometry errors keep their own codes (UNKNOWN_BAND, ...) and profile
// errors keep theirs (P001...).
const (
	ErrCodeUsage    = "E001" // Invalid flag combination or argument
	ErrCodePlan     = "E002" // Plan file could not be loaded or was interrupted
	ErrCodeDatabase = "E003" // Calculation log could not be opened or written
	ErrCodeGolden   = "E004" // Golden file missing, unwritable or different
)

// report writes err through the formatter and returns an ExitError marked as
// reported. The exit code depends on the error: invalid input and unknown
// bands are command errors, unsolvable or non-physical calculations are
// failures.
func report(f *OutputFormatter, message string, err error) error {
	code, exit, details := classify(err)
	_ = f.Error(code, message+": "+err.Error(), details)
	return &ExitError{Code: exit, Message: message, Err: err, Reported: true}
}

// reportCode is report for errors that carry no code of their own.
func reportCode(f *OutputFormatter, code string, exit int, message string, err error) error {
	text := message
	if err != nil {
		text = message + ": " + err.Error()
	}
	_ = f.Error(code, text, nil)
	return &ExitError{Code: exit, Message: message, Err: err, Reported: true}
}

func classify(err error) (code string, exit int, details interface{}) {
	var radErr *radiometry.Error
	if errors.As(err, &radErr) {
		exit = ExitFailure
		if radErr.Code == radiometry.ErrCodeUnknownBand || radErr.Code == radiometry.ErrCodeInvalidInput {
			exit = ExitCommandError
		}
		if len(radErr.Details) > 0 {
			details = radErr.Details
		}
		return string(radErr.Code), exit, details
	}

	var loadErr *profile.LoadError
	if errors.As(err, &loadErr) {
		return loadErr.Code, ExitCommandError, nil
	}

	return ErrCodeUsage, ExitCommandError, nil
}
