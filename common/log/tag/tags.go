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

package tag

import "time"

// All logging tags are defined in this file.
// To help finding available tags, we recommend that all tags to be categorized and placed in the corresponding section.
// We currently have those categories:
//   0. Common tags that can't be categorized(or belong to more than one)
//   1. Route: these tags are information that are useful to operators of a route, like channel-id/stream-to-id/plat-name/...
//   2. System : these tags are internal information which usually cannot be understood by route owners,

// LoggingCallAtKey is reserved tag
const LoggingCallAtKey = "logging-call-at"

///////////////////  Common tags defined here ///////////////////

// Error returns tag for Error
func Error(err error) Tag {
	return newErrorTag("error", err)
}

// Timestamp returns tag for Timestamp
func Timestamp(timestamp time.Time) Tag {
	return newTimeTag("timestamp", timestamp)
}

// RequestID returns tag for RequestID
func RequestID(requestID string) Tag {
	return newStringTag("request-id", requestID)
}

// Operator returns tag for Operator
func Operator(name string) Tag {
	return newStringTag("operator", name)
}

// Counter returns tag for Counter
func Counter(c int) Tag {
	return newInt("counter", c)
}

// Number returns tag for Number
func Number(n int64) Tag {
	return newInt64("number", n)
}

// Attempt returns tag for Attempt
func Attempt(attempt int) Tag {
	return newInt("attempt", attempt)
}

// Duration returns tag for Duration
func Duration(d time.Duration) Tag {
	return newDurationTag("duration", d)
}

///////////////////  Route tags defined here ///////////////////

// ChannelID returns tag for ChannelID
func ChannelID(id uint32) Tag {
	return newUint32("channel-id", id)
}

// OriginID returns tag for OriginID
func OriginID(id uint32) Tag {
	return newUint32("origin-id", id)
}

// StreamToID returns tag for StreamToID
func StreamToID(id uint32) Tag {
	return newUint32("stream-to-id", id)
}

// PlatName returns tag for PlatName
func PlatName(name string) Tag {
	return newStringTag("plat-name", name)
}

// PlatID returns tag for PlatID
func PlatID(id uint32) Tag {
	return newUint32("plat-id", id)
}

// ChannelName returns tag for ChannelName
func ChannelName(name string) Tag {
	return newStringTag("channel-name", name)
}

// FilterName returns tag for FilterName
func FilterName(name string) Tag {
	return newStringTag("filter-name", name)
}

// ReportMode returns tag for ReportMode
func ReportMode(mode string) Tag {
	return newStringTag("report-mode", mode)
}

// BizID returns tag for BizID
func BizID(id int64) Tag {
	return newInt64("bk-biz-id", id)
}

// Odm returns tag for Odm
func Odm(odm string) Tag {
	return newStringTag("odm", odm)
}

// DeleteMethod returns tag for DeleteMethod
func DeleteMethod(method string) Tag {
	return newStringTag("delete-method", method)
}

///////////////////  System tags defined here:  ///////////////////
// Tags with pre-define values

// Component returns tag for Component
func Component(component component) Tag {
	return newPredefinedStringTag("component", string(component))
}

// Lifecycle returns tag for Lifecycle
func Lifecycle(lifecycle lifecycle) Tag {
	return newPredefinedStringTag("lifecycle", string(lifecycle))
}

// StoreOperation returns tag for StoreOperation
func StoreOperation(operation storeOperation) Tag {
	return newPredefinedStringTag("store-operation", string(operation))
}

// OperationResult returns tag for OperationResult
func OperationResult(result operationResult) Tag {
	return newPredefinedStringTag("operation-result", string(result))
}

// CacheEvent returns tag for CacheEvent
func CacheEvent(event string) Tag {
	return newStringTag("cache-event", event)
}

// ZKPath returns tag for the coordination service path
func ZKPath(path string) Tag {
	return newStringTag("zk-path", path)
}

// ZKServers returns tag for the coordination service ensemble
func ZKServers(servers []string) Tag {
	return newObjectTag("zk-servers", servers)
}

// ZKSessionState returns tag for a coordination session state change
func ZKSessionState(state string) Tag {
	return newStringTag("zk-session-state", state)
}

// QueueSize returns tag for QueueSize
func QueueSize(size int) Tag {
	return newInt("queue-size", size)
}

// Address returns tag for Address
func Address(ad string) Tag {
	return newStringTag("address", ad)
}

// Value returns tag for Value
func Value(v interface{}) Tag {
	return newObjectTag("value", v)
}

// Key returns tag for Key
func Key(k string) Tag {
	return newStringTag("key", k)
}

// Enabled returns tag for Enabled
func Enabled(b bool) Tag {
	return newBoolTag("enabled", b)
}

// StackTrace returns tag for StackTrace
func StackTrace(stackTrace string) Tag {
	return newStringTag("stack-trace", stackTrace)
}

// Method returns tag for the transport method of a request
func Method(method string) Tag {
	return newStringTag("method", method)
}
