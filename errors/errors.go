/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	// ErrRead is returned when a profile document is missing or not well-formed
	ErrRead = errors.New("profile read failed")

	// ErrIO is returned when a file system operation on a profile fails
	ErrIO = errors.New("profile i/o failed")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")
)

// ReadError represents a failure to parse a profile document
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("read %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("read document: %v", e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

func (e *ReadError) Is(target error) bool {
	return target == ErrRead
}

// IOError represents a failed file system operation on a profile file
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

func (e *IOError) Is(target error) bool {
	return target == ErrIO
}

// ValidationError represents an input validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %q: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// Helper functions for creating errors

// NewReadError creates a new ReadError
func NewReadError(path string, err error) error {
	return &ReadError{Path: path, Err: err}
}

// NewIOError creates a new IOError
func NewIOError(op, path string, err error) error {
	return &IOError{Op: op, Path: path, Err: err}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsRead checks if an error is a document read error
func IsRead(err error) bool {
	return errors.Is(err, ErrRead)
}

// IsIO checks if an error is a profile i/o error
func IsIO(err error) bool {
	return errors.Is(err, ErrIO)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}
