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

type (
	// MetricName is the name of the metric
	MetricName string

	// MetricType is the type of the metric
	MetricType int

	metricDefinition struct {
		metricName MetricName
		metricType MetricType
	}

	// ScopeIdx is an index that uniquely identifies a metrics scope
	ScopeIdx int
)

// Metric types
const (
	Counter MetricType = iota
	Timer
	Gauge
)

// Scopes
const (
	RouteCacheScope ScopeIdx = iota
	RouteLoaderScope
	MetadataStoreRebuildScope
	AdminAddChannelScope
	AdminUpdateChannelScope
	AdminDeleteChannelScope
	AdminQueryChannelScope
	AdminAddStreamToScope
	AdminUpdateStreamToScope
	AdminDeleteStreamToScope
	AdminQueryStreamToScope
	AdminQueryIndexScope

	NumScopes
)

var scopeNames = map[ScopeIdx]string{
	RouteCacheScope:           "RouteCache",
	RouteLoaderScope:          "RouteLoader",
	MetadataStoreRebuildScope: "MetadataStoreRebuild",
	AdminAddChannelScope:      "AdminAddChannel",
	AdminUpdateChannelScope:   "AdminUpdateChannel",
	AdminDeleteChannelScope:   "AdminDeleteChannel",
	AdminQueryChannelScope:    "AdminQueryChannel",
	AdminAddStreamToScope:     "AdminAddStreamTo",
	AdminUpdateStreamToScope:  "AdminUpdateStreamTo",
	AdminDeleteStreamToScope:  "AdminDeleteStreamTo",
	AdminQueryStreamToScope:   "AdminQueryStreamTo",
	AdminQueryIndexScope:      "AdminQueryIndex",
}

// Metrics
const (
	CacheEventsEnqueued = iota
	CacheEventsDropped
	CacheEventsApplied
	CacheEventsInvalid
	CacheTombstonesSwept
	CacheChannelCount
	CacheStreamToCount
	CacheQueueDepth
	CacheDispatchAdmitted
	CacheDispatchRejected

	LoaderResyncs
	LoaderReadFailures
	LoaderWatchEvents

	RebuildFailures
	RebuildLatency

	AdminRequests
	AdminFailures
	AdminBadRequests
	AdminIndexFailures
	AdminLatency

	NumMetrics
)

var metricDefs = map[int]metricDefinition{
	CacheEventsEnqueued:   {metricName: "cache_events_enqueued", metricType: Counter},
	CacheEventsDropped:    {metricName: "cache_events_dropped", metricType: Counter},
	CacheEventsApplied:    {metricName: "cache_events_applied", metricType: Counter},
	CacheEventsInvalid:    {metricName: "cache_events_invalid", metricType: Counter},
	CacheTombstonesSwept:  {metricName: "cache_tombstones_swept", metricType: Counter},
	CacheChannelCount:     {metricName: "cache_channel_count", metricType: Gauge},
	CacheStreamToCount:    {metricName: "cache_stream_to_count", metricType: Gauge},
	CacheQueueDepth:       {metricName: "cache_queue_depth", metricType: Gauge},
	CacheDispatchAdmitted: {metricName: "cache_dispatch_admitted", metricType: Counter},
	CacheDispatchRejected: {metricName: "cache_dispatch_rejected", metricType: Counter},

	LoaderResyncs:      {metricName: "loader_resyncs", metricType: Counter},
	LoaderReadFailures: {metricName: "loader_read_failures", metricType: Counter},
	LoaderWatchEvents:  {metricName: "loader_watch_events", metricType: Counter},

	RebuildFailures: {metricName: "rebuild_failures", metricType: Counter},
	RebuildLatency:  {metricName: "rebuild_latency", metricType: Timer},

	AdminRequests:      {metricName: "admin_requests", metricType: Counter},
	AdminFailures:      {metricName: "admin_errors", metricType: Counter},
	AdminBadRequests:   {metricName: "admin_errors_bad_request", metricType: Counter},
	AdminIndexFailures: {metricName: "admin_index_failures", metricType: Counter},
	AdminLatency:       {metricName: "admin_latency", metricType: Timer},
}
