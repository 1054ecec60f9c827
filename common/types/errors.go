// Copyright (c) 2024 Uber Technologies, Inc.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package types

import (
	"errors"
	"fmt"
)

type (
	// BadRequestError is returned when a request or a stored document fails validation
	BadRequestError struct {
		Message string
	}

	// EntityNotExistsError is returned when a channel or stream-to id is not present in the store
	EntityNotExistsError struct {
		Message string
	}

	// AccessDeniedError is returned when the requester does not own the target document
	AccessDeniedError struct {
		Message string
	}

	// EntityAlreadyExistsError is returned when an id is already allocated or still referenced
	EntityAlreadyExistsError struct {
		Message string
	}

	// RangeError is returned for ids outside the allocatable or reserved ranges
	RangeError struct {
		Message string
	}

	// ServiceUnavailableError wraps a coordination service failure
	ServiceUnavailableError struct {
		Message      string
		NotConnected bool
		Cause        error
	}
)

func (err *BadRequestError) Error() string {
	return fmt.Sprintf("BadRequestError{Message: %v}", err.Message)
}

func (err *EntityNotExistsError) Error() string {
	return fmt.Sprintf("EntityNotExistsError{Message: %v}", err.Message)
}

func (err *AccessDeniedError) Error() string {
	return fmt.Sprintf("AccessDeniedError{Message: %v}", err.Message)
}

func (err *EntityAlreadyExistsError) Error() string {
	return fmt.Sprintf("EntityAlreadyExistsError{Message: %v}", err.Message)
}

func (err *RangeError) Error() string {
	return fmt.Sprintf("RangeError{Message: %v}", err.Message)
}

func (err *ServiceUnavailableError) Error() string {
	if err.Cause == nil {
		return fmt.Sprintf("ServiceUnavailableError{Message: %v}", err.Message)
	}
	return fmt.Sprintf("ServiceUnavailableError{Message: %v, Cause: %v}", err.Message, err.Cause)
}

func (err *ServiceUnavailableError) Unwrap() error {
	return err.Cause
}

// Error codes carried in the response envelope
const (
	CodeSuccess            = 0
	CodeInternal           = 1000101
	CodeBadRequest         = 1000400
	CodeAccessDenied       = 1000403
	CodeEntityNotExists    = 1000404
	CodeEntityExists       = 1000409
	CodeRange              = 1000416
	CodeServiceUnavailable = 1000503
	CodeNotConnected       = 1000504
)

// CodeOf maps an error to its envelope code
func CodeOf(err error) int {
	if err == nil {
		return CodeSuccess
	}
	var (
		badRequest  *BadRequestError
		notExists   *EntityNotExistsError
		denied      *AccessDeniedError
		exists      *EntityAlreadyExistsError
		rangeErr    *RangeError
		unavailable *ServiceUnavailableError
	)
	switch {
	case errors.As(err, &badRequest):
		return CodeBadRequest
	case errors.As(err, &notExists):
		return CodeEntityNotExists
	case errors.As(err, &denied):
		return CodeAccessDenied
	case errors.As(err, &exists):
		return CodeEntityExists
	case errors.As(err, &rangeErr):
		return CodeRange
	case errors.As(err, &unavailable):
		if unavailable.NotConnected {
			return CodeNotConnected
		}
		return CodeServiceUnavailable
	}
	return CodeInternal
}

// IsEntityNotExistsError reports whether err is a not-found error
func IsEntityNotExistsError(err error) bool {
	var e *EntityNotExistsError
	return errors.As(err, &e)
}

// IsAccessDeniedError reports whether err is a permission error
func IsAccessDeniedError(err error) bool {
	var e *AccessDeniedError
	return errors.As(err, &e)
}

// IsBadRequestError reports whether err is a validation error
func IsBadRequestError(err error) bool {
	var e *BadRequestError
	return errors.As(err, &e)
}

// IsRangeError reports whether err is a range error
func IsRangeError(err error) bool {
	var e *RangeError
	return errors.As(err, &e)
}

// IsEntityAlreadyExistsError reports whether err is a conflict error
func IsEntityAlreadyExistsError(err error) bool {
	var e *EntityAlreadyExistsError
	return errors.As(err, &e)
}

// IsServiceUnavailableError reports whether err came from the coordination service
func IsServiceUnavailableError(err error) bool {
	var e *ServiceUnavailableError
	return errors.As(err, &e)
}
