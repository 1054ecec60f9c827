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

package loggerimpl

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/uber/streamroute/common/log/tag"
)

type LogSuite struct {
	*require.Assertions
	suite.Suite

	observed *observer.ObservedLogs
	zap      *zap.Logger
}

func TestLogSuite(t *testing.T) {
	suite.Run(t, new(LogSuite))
}

func (s *LogSuite) SetupTest() {
	s.Assertions = require.New(s.T())
	core, observed := observer.New(zapcore.DebugLevel)
	s.zap = zap.New(core)
	s.observed = observed
}

func (s *LogSuite) TestDefaultLogger() {
	logger := NewLogger(s.zap)
	logger.Info("channel config created", tag.ChannelID(1048577), tag.PlatName("bkmonitor"))

	entries := s.observed.All()
	s.Len(entries, 1)
	s.Equal("channel config created", entries[0].Message)
	fields := entries[0].ContextMap()
	s.Equal(uint32(1048577), fields["channel-id"])
	s.Equal("bkmonitor", fields["plat-name"])
	s.True(strings.HasPrefix(fields[tag.LoggingCallAtKey].(string), "logger_test.go:"))
}

func (s *LogSuite) TestEmptyMessage() {
	logger := NewLogger(s.zap)
	logger.Warn("", tag.Error(errors.New("boom")))

	entries := s.observed.All()
	s.Len(entries, 1)
	s.Equal(defaultMsgForEmpty, entries[0].Message)
	s.Equal("boom", entries[0].ContextMap()["error"])
}

func (s *LogSuite) TestWithTags() {
	logger := NewLogger(s.zap).WithTags(tag.Component(tag.ComponentRouteCache))
	logger.Debug("event applied", tag.StreamToID(1025))
	logger.Error("event dropped", tag.Tag{})

	entries := s.observed.All()
	s.Len(entries, 2)
	for _, e := range entries {
		s.Equal("route-cache", e.ContextMap()["component"])
	}
	s.Equal(uint32(1025), entries[0].ContextMap()["stream-to-id"])
	s.Equal(zapcore.ErrorLevel, entries[1].Level)
}

func (s *LogSuite) TestNopLogger() {
	logger := NewNopLogger()
	logger.Info("dropped")
	logger.WithTags(tag.Counter(1)).Error("dropped")
	s.Equal(0, s.observed.Len())
}
