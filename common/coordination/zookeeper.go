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
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/samuel/go-zookeeper/zk"
	"go.uber.org/atomic"

	"github.com/uber/streamroute/common/log"
	"github.com/uber/streamroute/common/log/tag"
)

const defaultSessionTimeout = 10 * time.Second

type (
	// ZooKeeperOptions configures the zookeeper client
	ZooKeeperOptions struct {
		Servers        []string
		SessionTimeout time.Duration
		// Auth is a digest credential in user:password form
		Auth string
	}

	zkConn interface {
		Create(path string, data []byte, flags int32, acl []zk.ACL) (string, error)
		Get(path string) ([]byte, *zk.Stat, error)
		GetW(path string) ([]byte, *zk.Stat, <-chan zk.Event, error)
		Set(path string, data []byte, version int32) (*zk.Stat, error)
		Delete(path string, version int32) error
		Children(path string) ([]string, *zk.Stat, error)
		ChildrenW(path string) ([]string, *zk.Stat, <-chan zk.Event, error)
		Exists(path string) (bool, *zk.Stat, error)
		ExistsW(path string) (bool, *zk.Stat, <-chan zk.Event, error)
		State() zk.State
		Close()
	}

	zkClient struct {
		conn   zkConn
		acl    []zk.ACL
		logger log.Logger

		connected atomic.Bool
		// hadSession turns true after the first session and stays true
		hadSession atomic.Bool

		sync.RWMutex
		sessionListeners []Watcher
	}

	zkLogger struct {
		logger log.Logger
	}
)

var _ Client = (*zkClient)(nil)

// NewZooKeeperClient connects to a zookeeper ensemble
func NewZooKeeperClient(opts ZooKeeperOptions, logger log.Logger) (Client, error) {
	if len(opts.Servers) == 0 {
		return nil, errors.New("zookeeper servers are not configured")
	}
	timeout := opts.SessionTimeout
	if timeout <= 0 {
		timeout = defaultSessionTimeout
	}
	logger = logger.WithTags(tag.Component(tag.ComponentCoordination))

	client := &zkClient{
		acl:    zk.WorldACL(zk.PermAll),
		logger: logger,
	}
	conn, _, err := zk.Connect(
		opts.Servers,
		timeout,
		zk.WithLogger(&zkLogger{logger: logger}),
		zk.WithEventCallback(client.handleSessionEvent),
	)
	if err != nil {
		return nil, err
	}
	if opts.Auth != "" {
		if err := conn.AddAuth("digest", []byte(opts.Auth)); err != nil {
			conn.Close()
			return nil, err
		}
	}
	client.conn = conn
	logger.Info("zookeeper client created", tag.ZKServers(opts.Servers))
	return client, nil
}

func (l *zkLogger) Printf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

func (c *zkClient) handleSessionEvent(event zk.Event) {
	if event.Type != zk.EventSession {
		return
	}
	c.logger.Info("zookeeper session state changed", tag.ZKSessionState(event.State.String()))
	switch event.State {
	case zk.StateHasSession:
		c.connected.Store(true)
		if c.hadSession.Swap(true) {
			c.notifySession(Event{Type: EventSessionReconnected})
		}
	case zk.StateDisconnected, zk.StateExpired, zk.StateAuthFailed:
		c.connected.Store(false)
	}
}

func (c *zkClient) notifySession(event Event) {
	c.RLock()
	listeners := make([]Watcher, len(c.sessionListeners))
	copy(listeners, c.sessionListeners)
	c.RUnlock()
	for _, l := range listeners {
		go l(event)
	}
}

func (c *zkClient) OnSession(listener Watcher) {
	c.Lock()
	defer c.Unlock()
	c.sessionListeners = append(c.sessionListeners, listener)
}

func (c *zkClient) Connected() bool {
	return c.connected.Load()
}

func (c *zkClient) Close() {
	c.connected.Store(false)
	c.conn.Close()
}

func (c *zkClient) precheck(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !c.Connected() {
		return ErrNotConnected
	}
	return nil
}

func (c *zkClient) Create(ctx context.Context, path string, data []byte) error {
	if err := c.precheck(ctx); err != nil {
		return err
	}
	_, err := c.conn.Create(path, data, 0, c.acl)
	return convertError(err)
}

func (c *zkClient) CreateSequential(ctx context.Context, prefix string, data []byte) (string, error) {
	if err := c.precheck(ctx); err != nil {
		return "", err
	}
	created, err := c.conn.Create(prefix, data, zk.FlagSequence, c.acl)
	if err != nil {
		return "", convertError(err)
	}
	return created, nil
}

func (c *zkClient) Get(ctx context.Context, path string, watch Watcher) ([]byte, error) {
	if err := c.precheck(ctx); err != nil {
		return nil, err
	}
	if watch == nil {
		data, _, err := c.conn.Get(path)
		return data, convertError(err)
	}
	data, _, ch, err := c.conn.GetW(path)
	if err != nil {
		return nil, convertError(err)
	}
	go forward(ch, watch)
	return data, nil
}

func (c *zkClient) Set(ctx context.Context, path string, data []byte) error {
	if err := c.precheck(ctx); err != nil {
		return err
	}
	_, err := c.conn.Set(path, data, -1)
	return convertError(err)
}

func (c *zkClient) Delete(ctx context.Context, path string) error {
	if err := c.precheck(ctx); err != nil {
		return err
	}
	return convertError(c.conn.Delete(path, -1))
}

func (c *zkClient) Children(ctx context.Context, path string, watch Watcher) ([]string, error) {
	if err := c.precheck(ctx); err != nil {
		return nil, err
	}
	if watch == nil {
		children, _, err := c.conn.Children(path)
		return children, convertError(err)
	}
	children, _, ch, err := c.conn.ChildrenW(path)
	if err != nil {
		return nil, convertError(err)
	}
	go forward(ch, watch)
	return children, nil
}

func (c *zkClient) Exists(ctx context.Context, path string, watch Watcher) (bool, error) {
	if err := c.precheck(ctx); err != nil {
		return false, err
	}
	if watch == nil {
		exists, _, err := c.conn.Exists(path)
		return exists, convertError(err)
	}
	exists, _, ch, err := c.conn.ExistsW(path)
	if err != nil {
		return false, convertError(err)
	}
	go forward(ch, watch)
	return exists, nil
}

func forward(ch <-chan zk.Event, watch Watcher) {
	event, ok := <-ch
	if !ok {
		return
	}
	if converted, ok := convertEvent(event); ok {
		watch(converted)
	}
}

func convertEvent(event zk.Event) (Event, bool) {
	var t EventType
	switch event.Type {
	case zk.EventNodeCreated:
		t = EventNodeCreated
	case zk.EventNodeDeleted:
		t = EventNodeDeleted
	case zk.EventNodeDataChanged:
		t = EventNodeDataChanged
	case zk.EventNodeChildrenChanged:
		t = EventNodeChildrenChanged
	default:
		// EventNotWatching is delivered when the session is lost; the reconnect listener resyncs.
		return Event{}, false
	}
	return Event{Type: t, Path: event.Path, Err: event.Err}, true
}

func convertError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, zk.ErrNoNode):
		return ErrNodeNotFound
	case errors.Is(err, zk.ErrNodeExists):
		return ErrNodeExists
	case errors.Is(err, zk.ErrNotEmpty):
		return ErrNotEmpty
	case errors.Is(err, zk.ErrNoServer), errors.Is(err, zk.ErrConnectionClosed), errors.Is(err, zk.ErrSessionExpired):
		return fmt.Errorf("%w: %v", ErrNotConnected, err)
	}
	return err
}
