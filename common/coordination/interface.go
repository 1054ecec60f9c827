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

//go:generate mockgen -package $GOPACKAGE -source $GOFILE -destination interface_mock.go -self_package github.com/uber/streamroute/common/coordination

package coordination

import (
	"context"
	"errors"
)

var (
	// ErrNodeNotFound is returned when the addressed node does not exist
	ErrNodeNotFound = errors.New("coordination: node does not exist")
	// ErrNodeExists is returned when creating a node that already exists
	ErrNodeExists = errors.New("coordination: node already exists")
	// ErrNoParent is returned when creating a node whose parent is missing
	ErrNoParent = errors.New("coordination: parent node does not exist")
	// ErrNotEmpty is returned when deleting a node that still has children
	ErrNotEmpty = errors.New("coordination: node has children")
	// ErrNotConnected is returned when no session is established
	ErrNotConnected = errors.New("coordination: not connected")
)

// EventType is the kind of change reported to a watcher
type EventType int

const (
	EventNodeCreated EventType = iota + 1
	EventNodeDeleted
	EventNodeDataChanged
	EventNodeChildrenChanged
	// EventSessionReconnected is delivered to session listeners after an expired session is re-established
	EventSessionReconnected
)

var eventTypeNames = map[EventType]string{
	EventNodeCreated:         "created",
	EventNodeDeleted:         "deleted",
	EventNodeDataChanged:     "data-changed",
	EventNodeChildrenChanged: "children-changed",
	EventSessionReconnected:  "session-reconnected",
}

func (t EventType) String() string {
	if name, ok := eventTypeNames[t]; ok {
		return name
	}
	return "unknown"
}

type (
	// Event is delivered once to the watcher registered with a read
	Event struct {
		Type EventType
		Path string
		Err  error
	}

	// Watcher is invoked off the caller's goroutine. Watches fire at most once and must be re-armed.
	Watcher func(Event)

	// Client is the capability the metadata store needs from the coordination service.
	// Implementations must be safe for concurrent use.
	Client interface {
		// Create creates a single node. The parent must exist.
		Create(ctx context.Context, path string, data []byte) error
		// CreateSequential creates a child named prefix plus a monotonically increasing
		// ten digit suffix and returns the full path of the created node.
		CreateSequential(ctx context.Context, prefix string, data []byte) (string, error)
		Get(ctx context.Context, path string, watch Watcher) ([]byte, error)
		Set(ctx context.Context, path string, data []byte) error
		// Delete removes a leaf node
		Delete(ctx context.Context, path string) error
		Children(ctx context.Context, path string, watch Watcher) ([]string, error)
		Exists(ctx context.Context, path string, watch Watcher) (bool, error)
		// OnSession registers a listener for session level events
		OnSession(listener Watcher)
		Connected() bool
		Close()
	}
)
