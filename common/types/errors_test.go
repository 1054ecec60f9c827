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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeOf(t *testing.T) {
	tests := []struct {
		err  error
		code int
	}{
		{nil, CodeSuccess},
		{&BadRequestError{Message: "x"}, CodeBadRequest},
		{fmt.Errorf("wrapped: %w", &EntityNotExistsError{Message: "x"}), CodeEntityNotExists},
		{&AccessDeniedError{Message: "x"}, CodeAccessDenied},
		{&EntityAlreadyExistsError{Message: "x"}, CodeEntityExists},
		{&RangeError{Message: "x"}, CodeRange},
		{&ServiceUnavailableError{Message: "x"}, CodeServiceUnavailable},
		{&ServiceUnavailableError{Message: "x", NotConnected: true}, CodeNotConnected},
		{errors.New("x"), CodeInternal},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.code, CodeOf(tc.err), "%v", tc.err)
	}
}

func TestServiceUnavailableUnwrap(t *testing.T) {
	cause := errors.New("zk: connection closed")
	err := &ServiceUnavailableError{Message: "get failed", Cause: cause}
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, "ServiceUnavailableError{Message: get failed, Cause: zk: connection closed}", err.Error())
	assert.True(t, IsServiceUnavailableError(err))
	assert.False(t, IsEntityNotExistsError(err))
}
