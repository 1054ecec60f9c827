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

package metrics

const (
	operation   = "operation"
	platName    = "plat_name"
	reportMode  = "report_mode"
	eventKind   = "kind"
	unknownName = "unknown"
)

type (
	// Tag is an interface to define metrics tags
	Tag interface {
		Key() string
		Value() string
	}

	simpleMetric struct {
		key   string
		value string
	}
)

func newTag(key, value string) Tag {
	if value == "" {
		value = unknownName
	}
	return simpleMetric{key: key, value: value}
}

// PlatNameTag tags a metric with the requesting platform
func PlatNameTag(value string) Tag {
	return newTag(platName, value)
}

// ReportModeTag tags a metric with a destination backend kind
func ReportModeTag(value string) Tag {
	return newTag(reportMode, value)
}

// EventKindTag tags a cache metric with the document kind of the event
func EventKindTag(value string) Tag {
	return newTag(eventKind, value)
}

func (s simpleMetric) Key() string {
	return s.key
}

func (s simpleMetric) Value() string {
	return s.value
}
