// Unified error handling for digipot-go
//
// Copyright (C) 2026 digipot-go authors
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents the category of error
type ErrorCode string

const (
	// ErrValidation reports a bad constructor or setter argument:
	// out-of-domain value, NaN or infinity.
	ErrValidation ErrorCode = "VALIDATION"

	// ErrAddress reports a channel index or label that does not resolve.
	ErrAddress ErrorCode = "ADDRESS"

	// ErrProtocol reports a malformed, missing or echo-mismatched wire
	// response.
	ErrProtocol ErrorCode = "PROTOCOL"

	// ErrConnection reports an unavailable transport.
	ErrConnection ErrorCode = "CONNECTION"
)

// DeviceError is the unified error type for the module
type DeviceError struct {
	// Code is the error category
	Code ErrorCode

	// Message is a human-readable error description
	Message string

	// Channel is the affected channel, or -1 when not applicable
	Channel int

	// Register is the affected chip register (if applicable)
	Register string

	// Err wraps the underlying error
	Err error
}

// Error implements the error interface
func (e *DeviceError) Error() string {
	msg := fmt.Sprintf("[%s] %s", e.Code, e.Message)
	if e.Channel >= 0 {
		msg += fmt.Sprintf(" (channel %d)", e.Channel)
	}
	if e.Register != "" {
		msg += fmt.Sprintf(" (register %s)", e.Register)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying error
func (e *DeviceError) Unwrap() error {
	return e.Err
}

// SetChannel sets the affected channel
func (e *DeviceError) SetChannel(channel int) *DeviceError {
	e.Channel = channel
	return e
}

// SetRegister sets the affected register
func (e *DeviceError) SetRegister(register string) *DeviceError {
	e.Register = register
	return e
}

// New creates a new DeviceError
func New(code ErrorCode, message string) *DeviceError {
	return &DeviceError{
		Code:    code,
		Message: message,
		Channel: -1,
	}
}

// Wrap wraps an existing error with a category and message
func Wrap(err error, code ErrorCode, message string) *DeviceError {
	return &DeviceError{
		Code:    code,
		Message: message,
		Channel: -1,
		Err:     err,
	}
}

// Validationf creates a validation error with a formatted message
func Validationf(format string, args ...interface{}) *DeviceError {
	return New(ErrValidation, fmt.Sprintf(format, args...))
}

// Addressf creates an address error with a formatted message
func Addressf(format string, args ...interface{}) *DeviceError {
	return New(ErrAddress, fmt.Sprintf(format, args...))
}

// Protocolf creates a protocol error with a formatted message
func Protocolf(format string, args ...interface{}) *DeviceError {
	return New(ErrProtocol, fmt.Sprintf(format, args...))
}

// Connectionf creates a connection error with a formatted message
func Connectionf(format string, args ...interface{}) *DeviceError {
	return New(ErrConnection, fmt.Sprintf(format, args...))
}

// NoTransport creates a connection error for a missing transport
func NoTransport() *DeviceError {
	return New(ErrConnection, "transport not set")
}

// codeOf extracts the error code, or "" for foreign errors
func codeOf(err error) ErrorCode {
	var devErr *DeviceError
	if stderrors.As(err, &devErr) {
		return devErr.Code
	}
	return ""
}

// IsValidation reports whether err is a validation error
func IsValidation(err error) bool {
	return codeOf(err) == ErrValidation
}

// IsAddress reports whether err is an address error
func IsAddress(err error) bool {
	return codeOf(err) == ErrAddress
}

// IsProtocol reports whether err is a protocol error
func IsProtocol(err error) bool {
	return codeOf(err) == ErrProtocol
}

// IsConnection reports whether err is a connection error
func IsConnection(err error) bool {
	return codeOf(err) == ErrConnection
}
