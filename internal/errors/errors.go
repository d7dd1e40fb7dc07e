package errors

import (
	"errors"
	"fmt"
)

// Code represents an error code for categorizing errors
type Code string

const (
	// CodeUnknown indicates an unknown error
	CodeUnknown Code = "unknown"

	// CodeInvalidArgument indicates the caller specified an invalid argument
	CodeInvalidArgument Code = "invalid_argument"

	// CodeNotFound indicates a requested resource was not found
	CodeNotFound Code = "not_found"

	// CodeInternal indicates an internal system error
	CodeInternal Code = "internal"

	// CodeEmptyDocument indicates a document with no top-level header
	CodeEmptyDocument Code = "empty_document"

	// CodeUnrecognizedDiceExpression indicates text that is not valid dice notation
	CodeUnrecognizedDiceExpression Code = "unrecognized_dice_expression"

	// CodeMalformedStatBlock indicates a stat block that could not be extracted
	CodeMalformedStatBlock Code = "malformed_stat_block"

	// CodeInvalidCalendarSpec indicates a calendar definition that cannot be compiled
	CodeInvalidCalendarSpec Code = "invalid_calendar_spec"

	// CodeMissingDatePart indicates a date format token with no matching value
	CodeMissingDatePart Code = "missing_date_part"

	// CodeInvalidNameSpec indicates a name grammar definition that cannot be compiled
	CodeInvalidNameSpec Code = "invalid_name_spec"

	// CodeUnknownNamePart indicates a name template token with no matching part list
	CodeUnknownNamePart Code = "unknown_name_part"

	// CodeDuplicateFeatureOverwrite indicates a stat block entry replaced an
	// earlier one with the same name. Warning only, extraction continues.
	CodeDuplicateFeatureOverwrite Code = "duplicate_feature_overwrite"
)

// Error represents an application error with code and metadata
type Error struct {
	// Code is the error code
	Code Code

	// Message is the error message
	Message string

	// Cause is the wrapped error
	Cause error

	// Meta contains additional context
	Meta map[string]any
}

// Error returns the error message
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithMeta adds metadata to the error (builder pattern)
func (e *Error) WithMeta(key string, value any) *Error {
	if e.Meta == nil {
		e.Meta = make(map[string]any)
	}
	e.Meta[key] = value
	return e
}

// New creates a new error with the given code and message
func New(code Code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Newf creates a new error with formatted message
func Newf(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) *Error {
	if err == nil {
		return nil
	}

	// If it's already our error type, preserve the code
	var loreErr *Error
	if errors.As(err, &loreErr) {
		return &Error{
			Code:    loreErr.Code,
			Message: message,
			Cause:   err,
			Meta:    copyMeta(loreErr.Meta),
		}
	}

	// Otherwise, create unknown error
	return &Error{
		Code:    CodeUnknown,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted message
func Wrapf(err error, format string, args ...any) *Error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WrapWithCode wraps an error with a specific code
func WrapWithCode(err error, code Code, message string) *Error {
	if err == nil {
		return nil
	}

	wrapped := Wrap(err, message)
	wrapped.Code = code
	return wrapped
}

// Helper functions for common error types

// NotFound creates a not found error
func NotFound(message string) *Error {
	return New(CodeNotFound, message)
}

// NotFoundf creates a formatted not found error
func NotFoundf(format string, args ...any) *Error {
	return Newf(CodeNotFound, format, args...)
}

// InvalidArgument creates an invalid argument error
func InvalidArgument(message string) *Error {
	return New(CodeInvalidArgument, message)
}

// InvalidArgumentf creates a formatted invalid argument error
func InvalidArgumentf(format string, args ...any) *Error {
	return Newf(CodeInvalidArgument, format, args...)
}

// Internal creates an internal error
func Internal(message string) *Error {
	return New(CodeInternal, message)
}

// Internalf creates a formatted internal error
func Internalf(format string, args ...any) *Error {
	return Newf(CodeInternal, format, args...)
}

// EmptyDocument creates an empty document error
func EmptyDocument(message string) *Error {
	return New(CodeEmptyDocument, message)
}

// UnrecognizedDicef creates a formatted unrecognized dice expression error
func UnrecognizedDicef(format string, args ...any) *Error {
	return Newf(CodeUnrecognizedDiceExpression, format, args...)
}

// MalformedStatBlockf creates a formatted malformed stat block error
func MalformedStatBlockf(format string, args ...any) *Error {
	return Newf(CodeMalformedStatBlock, format, args...)
}

// InvalidCalendarSpecf creates a formatted invalid calendar spec error
func InvalidCalendarSpecf(format string, args ...any) *Error {
	return Newf(CodeInvalidCalendarSpec, format, args...)
}

// MissingDatePartf creates a formatted missing date part error
func MissingDatePartf(format string, args ...any) *Error {
	return Newf(CodeMissingDatePart, format, args...)
}

// InvalidNameSpecf creates a formatted invalid name spec error
func InvalidNameSpecf(format string, args ...any) *Error {
	return Newf(CodeInvalidNameSpec, format, args...)
}

// UnknownNamePartf creates a formatted unknown name part error
func UnknownNamePartf(format string, args ...any) *Error {
	return Newf(CodeUnknownNamePart, format, args...)
}

// DuplicateFeatureOverwritef creates a formatted duplicate feature warning
func DuplicateFeatureOverwritef(format string, args ...any) *Error {
	return Newf(CodeDuplicateFeatureOverwrite, format, args...)
}

// Error checking functions

// Is checks if the error is of a specific code
func Is(err error, code Code) bool {
	var loreErr *Error
	if errors.As(err, &loreErr) {
		return loreErr.Code == code
	}
	return false
}

// IsNotFound checks if the error is a not found error
func IsNotFound(err error) bool {
	return Is(err, CodeNotFound)
}

// IsInvalidArgument checks if the error is an invalid argument error
func IsInvalidArgument(err error) bool {
	return Is(err, CodeInvalidArgument)
}

// IsEmptyDocument checks if the error is an empty document error
func IsEmptyDocument(err error) bool {
	return Is(err, CodeEmptyDocument)
}

// IsUnrecognizedDice checks if the error is an unrecognized dice expression error
func IsUnrecognizedDice(err error) bool {
	return Is(err, CodeUnrecognizedDiceExpression)
}

// IsMalformedStatBlock checks if the error is a malformed stat block error
func IsMalformedStatBlock(err error) bool {
	return Is(err, CodeMalformedStatBlock)
}

// IsInvalidCalendarSpec checks if the error is an invalid calendar spec error
func IsInvalidCalendarSpec(err error) bool {
	return Is(err, CodeInvalidCalendarSpec)
}

// IsMissingDatePart checks if the error is a missing date part error
func IsMissingDatePart(err error) bool {
	return Is(err, CodeMissingDatePart)
}

// IsUnknownNamePart checks if the error is an unknown name part error
func IsUnknownNamePart(err error) bool {
	return Is(err, CodeUnknownNamePart)
}

// IsDuplicateFeatureOverwrite checks if the error is a duplicate feature warning
func IsDuplicateFeatureOverwrite(err error) bool {
	return Is(err, CodeDuplicateFeatureOverwrite)
}

// GetCode returns the error code
func GetCode(err error) Code {
	var loreErr *Error
	if errors.As(err, &loreErr) {
		return loreErr.Code
	}
	return CodeUnknown
}

// GetMeta returns the error metadata
func GetMeta(err error) map[string]any {
	var loreErr *Error
	if errors.As(err, &loreErr) {
		return loreErr.Meta
	}
	return nil
}

// copyMeta creates a copy of the metadata map
func copyMeta(meta map[string]any) map[string]any {
	if meta == nil {
		return nil
	}

	copied := make(map[string]any, len(meta))
	for k, v := range meta {
		copied[k] = v
	}
	return copied
}
