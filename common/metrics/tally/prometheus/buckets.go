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

// Package prometheus holds the reporter settings shared by every streamroute binary.
package prometheus

import (
	"time"

	"github.com/uber-go/tally/prometheus"
)

// latencyBounds covers admin requests, from a colocated coordination service
// up to the request timeout, and index rebuilds, up to the rebuild timeout.
var latencyBounds = []time.Duration{
	250 * time.Microsecond,
	500 * time.Microsecond,
	time.Millisecond,
	2500 * time.Microsecond,
	5 * time.Millisecond,
	10 * time.Millisecond,
	25 * time.Millisecond,
	50 * time.Millisecond,
	100 * time.Millisecond,
	250 * time.Millisecond,
	500 * time.Millisecond,
	time.Second,
	2500 * time.Millisecond,
	5 * time.Second,
	10 * time.Second,
	30 * time.Second,
	time.Minute,
	5 * time.Minute,
	10 * time.Minute,
}

// DefaultHistogramBuckets returns the timer buckets in seconds, the unit the tally
// prometheus reporter observes timers in. The only histograms are timers; queue
// depth and cache sizes are gauges.
func DefaultHistogramBuckets() []prometheus.HistogramObjective {
	return LatencyBuckets(0)
}

// LatencyBuckets returns the default buckets extended with a last bucket at
// maxLatency when it lies beyond them, e.g. a longer configured rebuild timeout
func LatencyBuckets(maxLatency time.Duration) []prometheus.HistogramObjective {
	buckets := make([]prometheus.HistogramObjective, 0, len(latencyBounds)+1)
	for _, bound := range latencyBounds {
		buckets = append(buckets, prometheus.HistogramObjective{Upper: bound.Seconds()})
	}
	if maxLatency > latencyBounds[len(latencyBounds)-1] {
		buckets = append(buckets, prometheus.HistogramObjective{Upper: maxLatency.Seconds()})
	}
	return buckets
}
