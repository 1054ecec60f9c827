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
	"testing"
	"time"

	"github.com/samuel/go-zookeeper/zk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uber/streamroute/common/log/loggerimpl"
)

type fakeConn struct {
	zkConn
	created  []string
	flags    []int32
	getWatch chan zk.Event
}

func (f *fakeConn) Create(path string, data []byte, flags int32, acl []zk.ACL) (string, error) {
	f.created = append(f.created, path)
	f.flags = append(f.flags, flags)
	if flags == zk.FlagSequence {
		return path + "0000000007", nil
	}
	return path, nil
}

func (f *fakeConn) GetW(path string) ([]byte, *zk.Stat, <-chan zk.Event, error) {
	return []byte("v"), &zk.Stat{}, f.getWatch, nil
}

func (f *fakeConn) Delete(path string, version int32) error {
	return zk.ErrNoNode
}

func newTestZKClient(conn zkConn) *zkClient {
	c := &zkClient{conn: conn, acl: zk.WorldACL(zk.PermAll), logger: loggerimpl.NewNopLogger()}
	return c
}

func TestZKClientRequiresSession(t *testing.T) {
	conn := &fakeConn{}
	c := newTestZKClient(conn)
	assert.ErrorIs(t, c.Create(context.Background(), "/a", nil), ErrNotConnected)
	assert.Empty(t, conn.created)

	c.handleSessionEvent(zk.Event{Type: zk.EventSession, State: zk.StateHasSession})
	assert.True(t, c.Connected())
	require.NoError(t, c.Create(context.Background(), "/a", nil))

	created, err := c.CreateSequential(context.Background(), "/seq/", nil)
	require.NoError(t, err)
	assert.Equal(t, "/seq/0000000007", created)
	assert.Equal(t, []int32{0, zk.FlagSequence}, conn.flags)

	assert.True(t, IsNodeNotFound(c.Delete(context.Background(), "/a")))

	c.handleSessionEvent(zk.Event{Type: zk.EventSession, State: zk.StateDisconnected})
	assert.False(t, c.Connected())
}

func TestZKClientReconnectNotifies(t *testing.T) {
	c := newTestZKClient(&fakeConn{})
	events := make(chan Event, 1)
	c.OnSession(func(e Event) { events <- e })

	c.handleSessionEvent(zk.Event{Type: zk.EventSession, State: zk.StateHasSession})
	assert.Empty(t, events)

	c.handleSessionEvent(zk.Event{Type: zk.EventSession, State: zk.StateExpired})
	c.handleSessionEvent(zk.Event{Type: zk.EventSession, State: zk.StateHasSession})
	select {
	case e := <-events:
		assert.Equal(t, EventSessionReconnected, e.Type)
	case <-time.After(time.Second):
		t.Fatal("no reconnect notification")
	}
}

func TestZKClientForwardsWatch(t *testing.T) {
	conn := &fakeConn{getWatch: make(chan zk.Event, 1)}
	c := newTestZKClient(conn)
	c.connected.Store(true)

	fired := make(chan Event, 1)
	data, err := c.Get(context.Background(), "/a", func(e Event) { fired <- e })
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), data)

	conn.getWatch <- zk.Event{Type: zk.EventNodeDataChanged, Path: "/a"}
	select {
	case e := <-fired:
		assert.Equal(t, Event{Type: EventNodeDataChanged, Path: "/a"}, e)
	case <-time.After(time.Second):
		t.Fatal("watch not forwarded")
	}
}

func TestConvertError(t *testing.T) {
	assert.NoError(t, convertError(nil))
	assert.ErrorIs(t, convertError(zk.ErrNoNode), ErrNodeNotFound)
	assert.ErrorIs(t, convertError(zk.ErrNodeExists), ErrNodeExists)
	assert.ErrorIs(t, convertError(zk.ErrNotEmpty), ErrNotEmpty)
	assert.ErrorIs(t, convertError(zk.ErrConnectionClosed), ErrNotConnected)
	other := errors.New("zk: bad arguments")
	assert.Equal(t, other, convertError(other))
}

func TestConvertEvent(t *testing.T) {
	_, ok := convertEvent(zk.Event{Type: zk.EventNotWatching})
	assert.False(t, ok)
	e, ok := convertEvent(zk.Event{Type: zk.EventNodeChildrenChanged, Path: "/p"})
	assert.True(t, ok)
	assert.Equal(t, EventNodeChildrenChanged, e.Type)
	assert.Equal(t, "children-changed", e.Type.String())
}
