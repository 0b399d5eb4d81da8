// Package errors provides structured error handling for stakeflow.
// It defines sentinel errors, exit codes, and helpers for adding
// context, details, and suggestions to errors.
//
// Only programming-contract violations and configuration problems travel as
// errors. Bad user input is reported through validation failures instead.
//
//nolint:revive // Package name intentionally shadows stdlib for domain-specific error handling
package errors

import (
	"errors"
	"fmt"
	"sort"
)

// Exit codes returned by the CLI.
const (
	ExitSuccess  = 0 // Successful execution
	ExitGeneral  = 1 // General/unknown error
	ExitInput    = 2 // Invalid input
	ExitNotFound = 4 // Resource not found
)

// StakeError is the structured error type for stakeflow.
type StakeError struct {
	Code       string            // Machine-readable error code
	Message    string            // Human-readable message
	Details    map[string]string // Additional context
	Suggestion string            // Actionable suggestion for user
	Cause      error             // Underlying error
	ExitCode   int               // Exit code for CLI
}

func (e *StakeError) Error() string {
	msg := e.Message

	// Include details in error message (sorted for deterministic output)
	if len(e.Details) > 0 {
		keys := make([]string, 0, len(e.Details))
		for k := range e.Details {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			msg = fmt.Sprintf("%s (%s: %s)", msg, k, e.Details[k])
		}
	}

	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *StakeError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is for StakeError.
func (e *StakeError) Is(target error) bool {
	var t *StakeError
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// Sentinel errors.
var (
	ErrGeneral = &StakeError{
		Code:     "GENERAL_ERROR",
		Message:  "an error occurred",
		ExitCode: ExitGeneral,
	}

	ErrInvalidInput = &StakeError{
		Code:     "INVALID_INPUT",
		Message:  "invalid input",
		ExitCode: ExitInput,
	}

	ErrNotFound = &StakeError{
		Code:     "NOT_FOUND",
		Message:  "resource not found",
		ExitCode: ExitNotFound,
	}

	// Amount errors.
	ErrInvalidAmount = &StakeError{
		Code:     "INVALID_AMOUNT",
		Message:  "invalid amount format",
		ExitCode: ExitInput,
	}

	ErrTooManyDecimals = &StakeError{
		Code:     "TOO_MANY_DECIMALS",
		Message:  "amount has more fractional digits than the token supports",
		ExitCode: ExitInput,
	}

	ErrInvalidDecimals = &StakeError{
		Code:     "INVALID_DECIMALS",
		Message:  "token decimals must not be negative",
		ExitCode: ExitInput,
	}

	ErrNonPositiveAmount = &StakeError{
		Code:     "NON_POSITIVE_AMOUNT",
		Message:  "amount must be greater than 0",
		ExitCode: ExitInput,
	}

	ErrAmountOverflow = &StakeError{
		Code:     "AMOUNT_OVERFLOW",
		Message:  "amount does not fit in uint256",
		ExitCode: ExitInput,
	}

	// Address errors.
	ErrInvalidAddress = &StakeError{
		Code:     "INVALID_ADDRESS",
		Message:  "invalid address format",
		ExitCode: ExitInput,
	}

	ErrInvalidChecksum = &StakeError{
		Code:     "INVALID_CHECKSUM",
		Message:  "invalid address checksum",
		ExitCode: ExitInput,
	}

	// Deployment errors.
	ErrUnsupportedChain = &StakeError{
		Code:     "UNSUPPORTED_CHAIN",
		Message:  "unsupported chain",
		ExitCode: ExitNotFound,
	}

	ErrNotSupported = &StakeError{
		Code:     "NOT_SUPPORTED",
		Message:  "operation not supported for this token",
		ExitCode: ExitInput,
	}

	ErrUnknownOperation = &StakeError{
		Code:     "UNKNOWN_OPERATION",
		Message:  "unknown operation",
		ExitCode: ExitInput,
	}

	ErrEncodingFailed = &StakeError{
		Code:     "ENCODING_FAILED",
		Message:  "failed to encode contract call",
		ExitCode: ExitGeneral,
	}

	// ErrValidationFailed carries a user-facing rule failure to the exit path.
	ErrValidationFailed = &StakeError{
		Code:     "VALIDATION_FAILED",
		Message:  "validation failed",
		ExitCode: ExitInput,
	}

	// Config-specific errors.
	ErrConfigNotFound = &StakeError{
		Code:     "CONFIG_NOT_FOUND",
		Message:  "configuration file not found",
		ExitCode: ExitNotFound,
	}

	ErrConfigInvalid = &StakeError{
		Code:     "CONFIG_INVALID",
		Message:  "configuration file is invalid",
		ExitCode: ExitInput,
	}

	ErrUnknownConfigKey = &StakeError{
		Code:     "UNKNOWN_CONFIG_KEY",
		Message:  "unknown config key",
		ExitCode: ExitInput,
	}
)

// New creates a new StakeError with the given code and message.
func New(code, message string) *StakeError {
	return &StakeError{
		Code:     code,
		Message:  message,
		ExitCode: ExitGeneral,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}

	msg := fmt.Sprintf(format, args...)

	var se *StakeError
	if errors.As(err, &se) {
		return &StakeError{
			Code:       se.Code,
			Message:    fmt.Sprintf("%s: %s", msg, se.Message),
			Details:    se.Details,
			Suggestion: se.Suggestion,
			Cause:      err,
			ExitCode:   se.ExitCode,
		}
	}

	return &StakeError{
		Code:     "GENERAL_ERROR",
		Message:  msg,
		Cause:    err,
		ExitCode: ExitGeneral,
	}
}

// WithDetails adds details to an error.
func WithDetails(err error, details map[string]string) error {
	if err == nil {
		return nil
	}

	var se *StakeError
	if errors.As(err, &se) {
		return &StakeError{
			Code:       se.Code,
			Message:    se.Message,
			Details:    details,
			Suggestion: se.Suggestion,
			Cause:      se.Cause,
			ExitCode:   se.ExitCode,
		}
	}

	return &StakeError{
		Code:     "GENERAL_ERROR",
		Message:  err.Error(),
		Details:  details,
		Cause:    err,
		ExitCode: ExitGeneral,
	}
}

// WithSuggestion adds a suggestion to an error.
func WithSuggestion(err error, suggestion string) error {
	if err == nil {
		return nil
	}

	var se *StakeError
	if errors.As(err, &se) {
		return &StakeError{
			Code:       se.Code,
			Message:    se.Message,
			Details:    se.Details,
			Suggestion: suggestion,
			Cause:      se.Cause,
			ExitCode:   se.ExitCode,
		}
	}

	return &StakeError{
		Code:       "GENERAL_ERROR",
		Message:    err.Error(),
		Suggestion: suggestion,
		Cause:      err,
		ExitCode:   ExitGeneral,
	}
}

// ExitCode returns the appropriate exit code for an error.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var se *StakeError
	if errors.As(err, &se) {
		return se.ExitCode
	}

	return ExitGeneral
}

// Code returns the error code for an error.
func Code(err error) string {
	var se *StakeError
	if errors.As(err, &se) {
		return se.Code
	}
	return "GENERAL_ERROR"
}

// Is wraps errors.Is for convenience.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As wraps errors.As for convenience.
func As(err error, target any) bool {
	return errors.As(err, target)
}
