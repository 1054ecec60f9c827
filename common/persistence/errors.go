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

package persistence

import (
	"errors"
	"fmt"

	"github.com/uber/streamroute/common/coordination"
	"github.com/uber/streamroute/common/types"
)

// CorruptedDocumentError is returned when a stored node cannot be decoded
type CorruptedDocumentError struct {
	Path  string
	Cause error
}

func (e *CorruptedDocumentError) Error() string {
	return fmt.Sprintf("CorruptedDocumentError{Path: %v, Cause: %v}", e.Path, e.Cause)
}

func (e *CorruptedDocumentError) Unwrap() error {
	return e.Cause
}

// IsCorruptedDocumentError reports whether err came from an undecodable node
func IsCorruptedDocumentError(err error) bool {
	var e *CorruptedDocumentError
	return errors.As(err, &e)
}

var errNotConnected = &types.ServiceUnavailableError{
	Message:      "coordination service not connected",
	NotConnected: true,
}

// convertError maps coordination errors onto the service error kinds
func convertError(operation string, path string, err error) error {
	if err == nil {
		return nil
	}
	if coordination.IsNotConnected(err) {
		return &types.ServiceUnavailableError{
			Message:      fmt.Sprintf("%s %s: not connected", operation, path),
			NotConnected: true,
			Cause:        err,
		}
	}
	return &types.ServiceUnavailableError{
		Message: fmt.Sprintf("%s %s failed", operation, path),
		Cause:   err,
	}
}

func notExists(format string, args ...interface{}) error {
	return &types.EntityNotExistsError{Message: fmt.Sprintf(format, args...)}
}
