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

import (
	"time"

	"github.com/uber-go/tally"
)

type (
	// Client creates the scopes components emit through
	Client interface {
		Scope(scope ScopeIdx, tags ...Tag) Scope
	}

	// Scope emits the metrics defined in this package
	Scope interface {
		IncCounter(id int)
		AddCounter(id int, delta int64)
		UpdateGauge(id int, value float64)
		StartTimer(id int) tally.Stopwatch
		RecordTimer(id int, d time.Duration)
		Tagged(tags ...Tag) Scope
	}

	clientImpl struct {
		root        tally.Scope
		childScopes map[ScopeIdx]tally.Scope
	}

	metricsScope struct {
		scope tally.Scope
		defs  map[int]metricDefinition
	}
)

// NewClient creates a metrics client over the root tally scope
func NewClient(root tally.Scope) Client {
	c := &clientImpl{
		root:        root,
		childScopes: make(map[ScopeIdx]tally.Scope, NumScopes),
	}
	for idx, name := range scopeNames {
		c.childScopes[idx] = root.Tagged(map[string]string{operation: name})
	}
	return c
}

// NewNoopClient returns a client that drops every metric
func NewNoopClient() Client {
	return NewClient(tally.NoopScope)
}

func (c *clientImpl) Scope(scope ScopeIdx, tags ...Tag) Scope {
	s, ok := c.childScopes[scope]
	if !ok {
		s = c.root
	}
	return newMetricsScope(s, metricDefs).Tagged(tags...)
}

func newMetricsScope(scope tally.Scope, defs map[int]metricDefinition) Scope {
	return &metricsScope{scope: scope, defs: defs}
}

// NoopScope returns a noop scope of metrics
func NoopScope() Scope {
	return newMetricsScope(tally.NoopScope, metricDefs)
}

func (m *metricsScope) IncCounter(id int) {
	m.AddCounter(id, 1)
}

func (m *metricsScope) AddCounter(id int, delta int64) {
	m.scope.Counter(string(m.defs[id].metricName)).Inc(delta)
}

func (m *metricsScope) UpdateGauge(id int, value float64) {
	m.scope.Gauge(string(m.defs[id].metricName)).Update(value)
}

func (m *metricsScope) StartTimer(id int) tally.Stopwatch {
	return m.scope.Timer(string(m.defs[id].metricName)).Start()
}

func (m *metricsScope) RecordTimer(id int, d time.Duration) {
	m.scope.Timer(string(m.defs[id].metricName)).Record(d)
}

func (m *metricsScope) Tagged(tags ...Tag) Scope {
	if len(tags) == 0 {
		return m
	}
	tagMap := make(map[string]string, len(tags))
	for _, tag := range tags {
		tagMap[tag.Key()] = tag.Value()
	}
	return newMetricsScope(m.scope.Tagged(tagMap), m.defs)
}
