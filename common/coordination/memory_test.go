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
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type memoryClientSuite struct {
	*require.Assertions
	suite.Suite

	ctx    context.Context
	client MemoryClient
}

func TestMemoryClientSuite(t *testing.T) {
	suite.Run(t, new(memoryClientSuite))
}

func (s *memoryClientSuite) SetupTest() {
	s.Assertions = require.New(s.T())
	s.ctx = context.Background()
	s.client = NewMemoryClient()
}

func (s *memoryClientSuite) TestCreateRequiresParent() {
	s.ErrorIs(s.client.Create(s.ctx, "/a/b", nil), ErrNoParent)
	s.NoError(s.client.Create(s.ctx, "/a", []byte("x")))
	s.NoError(s.client.Create(s.ctx, "/a/b", []byte("y")))
	s.ErrorIs(s.client.Create(s.ctx, "/a/b", nil), ErrNodeExists)

	data, err := s.client.Get(s.ctx, "/a/b", nil)
	s.NoError(err)
	s.Equal([]byte("y"), data)

	children, err := s.client.Children(s.ctx, "/a", nil)
	s.NoError(err)
	s.Equal([]string{"b"}, children)
}

func (s *memoryClientSuite) TestSequential() {
	s.NoError(s.client.Create(s.ctx, "/seq", nil))
	first, err := s.client.CreateSequential(s.ctx, "/seq/", []byte("bkmonitor"))
	s.NoError(err)
	second, err := s.client.CreateSequential(s.ctx, "/seq/", nil)
	s.NoError(err)
	s.Equal("/seq/0000000000", first)
	s.Equal("/seq/0000000001", second)

	// sequence survives deletes
	s.NoError(s.client.Delete(s.ctx, second))
	third, err := s.client.CreateSequential(s.ctx, "/seq/", nil)
	s.NoError(err)
	s.Equal("/seq/0000000002", third)

	_, err = s.client.CreateSequential(s.ctx, "/missing/", nil)
	s.ErrorIs(err, ErrNoParent)
}

func (s *memoryClientSuite) TestDelete() {
	s.NoError(s.client.Create(s.ctx, "/a", nil))
	s.NoError(s.client.Create(s.ctx, "/a/b", nil))
	s.ErrorIs(s.client.Delete(s.ctx, "/a"), ErrNotEmpty)
	s.NoError(s.client.Delete(s.ctx, "/a/b"))
	s.NoError(s.client.Delete(s.ctx, "/a"))
	s.True(IsNodeNotFound(s.client.Delete(s.ctx, "/a")))

	exists, err := s.client.Exists(s.ctx, "/a", nil)
	s.NoError(err)
	s.False(exists)
}

func (s *memoryClientSuite) TestWatches() {
	events := make(chan Event, 4)
	watch := func(e Event) { events <- e }

	s.NoError(s.client.Create(s.ctx, "/a", nil))
	_, err := s.client.Children(s.ctx, "/a", watch)
	s.NoError(err)
	s.NoError(s.client.Create(s.ctx, "/a/b", []byte("1")))
	s.Equal(Event{Type: EventNodeChildrenChanged, Path: "/a"}, s.receive(events))

	_, err = s.client.Get(s.ctx, "/a/b", watch)
	s.NoError(err)
	s.NoError(s.client.Set(s.ctx, "/a/b", []byte("2")))
	s.Equal(Event{Type: EventNodeDataChanged, Path: "/a/b"}, s.receive(events))

	// fired watches are not re-armed
	s.NoError(s.client.Set(s.ctx, "/a/b", []byte("3")))
	s.Empty(events)

	exists, err := s.client.Exists(s.ctx, "/a/c", watch)
	s.NoError(err)
	s.False(exists)
	s.NoError(s.client.Create(s.ctx, "/a/c", nil))
	s.Equal(Event{Type: EventNodeCreated, Path: "/a/c"}, s.receive(events))
}

func (s *memoryClientSuite) TestNotConnected() {
	reconnected := make(chan Event, 1)
	s.client.OnSession(func(e Event) { reconnected <- e })

	s.client.SetConnected(false)
	s.False(s.client.Connected())
	s.ErrorIs(s.client.Create(s.ctx, "/a", nil), ErrNotConnected)
	_, err := s.client.Get(s.ctx, "/", nil)
	s.True(IsNotConnected(err))

	s.client.SetConnected(true)
	s.Equal(EventSessionReconnected, s.receive(reconnected).Type)
	s.NoError(WaitForConnection(s.ctx, s.client, time.Millisecond))
}

func (s *memoryClientSuite) TestCanceledContext() {
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()
	s.ErrorIs(s.client.Create(ctx, "/a", nil), context.Canceled)
}

func (s *memoryClientSuite) receive(ch <-chan Event) Event {
	select {
	case e := <-ch:
		return e
	case <-time.After(time.Second):
		s.FailNow("timed out waiting for event")
	}
	return Event{}
}

func TestPaths(t *testing.T) {
	require.Equal(t, "/a/b", JoinPath("a", "b"))
	require.Equal(t, "/a/b", JoinPath("/a/", "/b/"))
	require.Equal(t, []string{"a", "b"}, SplitPath("/a//b/"))
	require.Equal(t, "/a", ParentPath("/a/b"))
	require.Equal(t, "/", ParentPath("/a"))
	require.Equal(t, "b", BaseName("/a/b"))
}
