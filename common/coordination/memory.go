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

package coordination

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"go.uber.org/atomic"
)

type (
	memoryNode struct {
		data     []byte
		children map[string]struct{}
		sequence int64
	}

	memoryClient struct {
		connected atomic.Bool

		sync.Mutex
		nodes            map[string]*memoryNode
		dataWatches      map[string][]Watcher
		childWatches     map[string][]Watcher
		sessionListeners []Watcher
	}
)

// MemoryClient is an in-process Client used by tests and the standalone dev mode
type MemoryClient interface {
	Client
	// SetConnected simulates losing or regaining the session
	SetConnected(connected bool)
}

var _ Client = (*memoryClient)(nil)

// NewMemoryClient creates an empty in-process tree
func NewMemoryClient() MemoryClient {
	c := &memoryClient{
		nodes: map[string]*memoryNode{
			"/": {children: make(map[string]struct{})},
		},
		dataWatches:  make(map[string][]Watcher),
		childWatches: make(map[string][]Watcher),
	}
	c.connected.Store(true)
	return c
}

func (c *memoryClient) SetConnected(connected bool) {
	was := c.connected.Swap(connected)
	if connected && !was {
		c.Lock()
		listeners := append([]Watcher(nil), c.sessionListeners...)
		c.Unlock()
		for _, l := range listeners {
			go l(Event{Type: EventSessionReconnected})
		}
	}
}

func (c *memoryClient) OnSession(listener Watcher) {
	c.Lock()
	defer c.Unlock()
	c.sessionListeners = append(c.sessionListeners, listener)
}

func (c *memoryClient) Connected() bool {
	return c.connected.Load()
}

func (c *memoryClient) Close() {
	c.connected.Store(false)
}

func (c *memoryClient) precheck(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !c.Connected() {
		return ErrNotConnected
	}
	return nil
}

func normalize(p string) string {
	if p == "" || p == "/" {
		return "/"
	}
	return JoinPath(p)
}

func (c *memoryClient) Create(ctx context.Context, path string, data []byte) error {
	if err := c.precheck(ctx); err != nil {
		return err
	}
	c.Lock()
	fired, err := c.createLocked(normalize(path), data)
	c.Unlock()
	deliver(fired)
	return err
}

func (c *memoryClient) createLocked(path string, data []byte) ([]pendingEvent, error) {
	if _, ok := c.nodes[path]; ok {
		return nil, ErrNodeExists
	}
	parentPath := ParentPath(path)
	parent, ok := c.nodes[parentPath]
	if !ok {
		return nil, ErrNoParent
	}
	c.nodes[path] = &memoryNode{
		data:     append([]byte(nil), data...),
		children: make(map[string]struct{}),
	}
	parent.children[BaseName(path)] = struct{}{}

	fired := c.takeWatches(c.dataWatches, path, EventNodeCreated)
	fired = append(fired, c.takeWatches(c.childWatches, parentPath, EventNodeChildrenChanged)...)
	return fired, nil
}

func (c *memoryClient) CreateSequential(ctx context.Context, prefix string, data []byte) (string, error) {
	if err := c.precheck(ctx); err != nil {
		return "", err
	}
	parentPath := ParentPath(prefix)
	if strings.HasSuffix(prefix, "/") {
		parentPath = normalize(prefix)
	}
	c.Lock()
	parent, ok := c.nodes[parentPath]
	if !ok {
		c.Unlock()
		return "", ErrNoParent
	}
	seq := parent.sequence
	parent.sequence++
	path := fmt.Sprintf("%s%010d", prefix, seq)
	fired, err := c.createLocked(normalize(path), data)
	c.Unlock()
	deliver(fired)
	if err != nil {
		return "", err
	}
	return normalize(path), nil
}

func (c *memoryClient) Get(ctx context.Context, path string, watch Watcher) ([]byte, error) {
	if err := c.precheck(ctx); err != nil {
		return nil, err
	}
	path = normalize(path)
	c.Lock()
	defer c.Unlock()
	node, ok := c.nodes[path]
	if !ok {
		return nil, ErrNodeNotFound
	}
	if watch != nil {
		c.dataWatches[path] = append(c.dataWatches[path], watch)
	}
	return append([]byte(nil), node.data...), nil
}

func (c *memoryClient) Set(ctx context.Context, path string, data []byte) error {
	if err := c.precheck(ctx); err != nil {
		return err
	}
	path = normalize(path)
	c.Lock()
	node, ok := c.nodes[path]
	if !ok {
		c.Unlock()
		return ErrNodeNotFound
	}
	node.data = append([]byte(nil), data...)
	fired := c.takeWatches(c.dataWatches, path, EventNodeDataChanged)
	c.Unlock()
	deliver(fired)
	return nil
}

func (c *memoryClient) Delete(ctx context.Context, path string) error {
	if err := c.precheck(ctx); err != nil {
		return err
	}
	path = normalize(path)
	c.Lock()
	node, ok := c.nodes[path]
	if !ok {
		c.Unlock()
		return ErrNodeNotFound
	}
	if len(node.children) > 0 {
		c.Unlock()
		return ErrNotEmpty
	}
	delete(c.nodes, path)
	parentPath := ParentPath(path)
	if parent, ok := c.nodes[parentPath]; ok {
		delete(parent.children, BaseName(path))
	}
	fired := c.takeWatches(c.dataWatches, path, EventNodeDeleted)
	fired = append(fired, c.takeWatches(c.childWatches, path, EventNodeDeleted)...)
	fired = append(fired, c.takeWatches(c.childWatches, parentPath, EventNodeChildrenChanged)...)
	c.Unlock()
	deliver(fired)
	return nil
}

func (c *memoryClient) Children(ctx context.Context, path string, watch Watcher) ([]string, error) {
	if err := c.precheck(ctx); err != nil {
		return nil, err
	}
	path = normalize(path)
	c.Lock()
	defer c.Unlock()
	node, ok := c.nodes[path]
	if !ok {
		return nil, ErrNodeNotFound
	}
	if watch != nil {
		c.childWatches[path] = append(c.childWatches[path], watch)
	}
	children := make([]string, 0, len(node.children))
	for name := range node.children {
		children = append(children, name)
	}
	sort.Strings(children)
	return children, nil
}

func (c *memoryClient) Exists(ctx context.Context, path string, watch Watcher) (bool, error) {
	if err := c.precheck(ctx); err != nil {
		return false, err
	}
	path = normalize(path)
	c.Lock()
	defer c.Unlock()
	_, ok := c.nodes[path]
	if watch != nil {
		c.dataWatches[path] = append(c.dataWatches[path], watch)
	}
	return ok, nil
}

type pendingEvent struct {
	watch Watcher
	event Event
}

func (c *memoryClient) takeWatches(watches map[string][]Watcher, path string, t EventType) []pendingEvent {
	registered := watches[path]
	if len(registered) == 0 {
		return nil
	}
	delete(watches, path)
	fired := make([]pendingEvent, 0, len(registered))
	for _, w := range registered {
		fired = append(fired, pendingEvent{watch: w, event: Event{Type: t, Path: path}})
	}
	return fired
}

func deliver(fired []pendingEvent) {
	for _, p := range fired {
		go p.watch(p.event)
	}
}
