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

package cache

import (
	"time"

	"github.com/uber/streamroute/common/filter"
	"github.com/uber/streamroute/common/types"
)

type (
	// EventType is the change an event applies
	EventType int

	// EventKind is the document kind an event carries
	EventKind int

	// Event is a decoded change queued for the cache worker
	Event struct {
		Type     EventType
		Kind     EventKind
		ID       uint32
		Channel  *types.ChannelConfig
		StreamTo *types.StreamToClusterConfig
	}

	// Route is one resolved, immutable route of a channel
	Route struct {
		ChannelID  uint32
		Name       string
		StreamToID uint32
		Target     types.RouteTarget
		Filter     *filter.Filter
	}

	// ChannelEntry is the immutable cached form of a channel config
	ChannelEntry struct {
		ChannelID uint32
		Config    *types.ChannelConfig
		Routes    []*Route
		UpdatedAt time.Time
	}

	// StreamToEntry is the immutable cached form of a stream-to config
	StreamToEntry struct {
		Config    *types.StreamToClusterConfig
		UpdatedAt time.Time
	}

	// Delivery pairs an admitted route with the cluster it writes to
	Delivery struct {
		Route   *Route
		Cluster *StreamToEntry
	}

	// Stats is a point in time view of the cache
	Stats struct {
		Channels          int
		StreamTos         int
		ChannelTombstones int
		StreamTombstones  int
		Dropped           int64
	}

	tombstone struct {
		id       uint32
		deadline time.Time
	}
)

const (
	EventCreated EventType = iota + 1
	EventChanged
	EventDeleted
)

const (
	KindChannel EventKind = iota + 1
	KindStreamTo
)

func (t EventType) String() string {
	switch t {
	case EventCreated:
		return "created"
	case EventChanged:
		return "changed"
	case EventDeleted:
		return "deleted"
	}
	return "unknown"
}

func (k EventKind) String() string {
	switch k {
	case KindChannel:
		return "channel"
	case KindStreamTo:
		return "streamto"
	}
	return "unknown"
}

// ChannelEvent builds an event for a channel document
func ChannelEvent(t EventType, id uint32, config *types.ChannelConfig) *Event {
	return &Event{Type: t, Kind: KindChannel, ID: id, Channel: config}
}

// StreamToEvent builds an event for a stream-to document
func StreamToEvent(t EventType, id uint32, config *types.StreamToClusterConfig) *Event {
	return &Event{Type: t, Kind: KindStreamTo, ID: id, StreamTo: config}
}

func (e *Event) valid() bool {
	if e == nil {
		return false
	}
	if e.Type == EventDeleted {
		return e.Kind == KindChannel || e.Kind == KindStreamTo
	}
	switch e.Kind {
	case KindChannel:
		return e.Channel != nil
	case KindStreamTo:
		return e.StreamTo != nil
	}
	return false
}
