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

package routeadmin

import (
	"github.com/uber/streamroute/common/types"
)

const successMessage = "success"

// Response is the envelope every management request answers with
type Response struct {
	Result    bool        `json:"result"`
	Code      int         `json:"code"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data"`
	RequestID string      `json:"request_id,omitempty"`
}

// NewResponse wraps a handler result
func NewResponse(requestID string, data interface{}, err error) *Response {
	if err != nil {
		return &Response{
			Result:    false,
			Code:      types.CodeOf(err),
			Message:   errorMessage(err),
			RequestID: requestID,
		}
	}
	return &Response{
		Result:    true,
		Code:      types.CodeSuccess,
		Message:   successMessage,
		Data:      data,
		RequestID: requestID,
	}
}

func errorMessage(err error) string {
	switch e := err.(type) {
	case *types.BadRequestError:
		return e.Message
	case *types.EntityNotExistsError:
		return e.Message
	case *types.AccessDeniedError:
		return e.Message
	case *types.EntityAlreadyExistsError:
		return e.Message
	case *types.RangeError:
		return e.Message
	case *types.ServiceUnavailableError:
		return e.Message
	}
	return err.Error()
}
