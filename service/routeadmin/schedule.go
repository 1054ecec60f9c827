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

package routeadmin

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron"
	"go.uber.org/atomic"

	"github.com/uber/streamroute/common"
	"github.com/uber/streamroute/common/log"
	"github.com/uber/streamroute/common/log/tag"
	"github.com/uber/streamroute/common/types"
)

// RebuildScheduler reconciles the secondary indices on a cron schedule
type RebuildScheduler struct {
	status  *atomic.Int32
	running *atomic.Bool
	cron    *cron.Cron
	handler Handler
	timeout time.Duration
	logger  log.Logger
}

var _ common.Daemon = (*RebuildScheduler)(nil)

// ValidateSchedule validates a standard five field cron spec
func ValidateSchedule(spec string) (cron.Schedule, error) {
	sched, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, &types.BadRequestError{
			Message: fmt.Sprintf("invalid rebuild schedule %q: %v", spec, err),
		}
	}
	// impossible dates like Feb 30 parse but never fire
	if sched.Next(time.Now()).IsZero() {
		return nil, &types.BadRequestError{
			Message: fmt.Sprintf("rebuild schedule %q never fires", spec),
		}
	}
	return sched, nil
}

// NewRebuildScheduler creates a stopped scheduler running RebuildIndices through handler
func NewRebuildScheduler(spec string, handler Handler, timeout time.Duration, logger log.Logger) (*RebuildScheduler, error) {
	sched, err := ValidateSchedule(spec)
	if err != nil {
		return nil, err
	}
	s := &RebuildScheduler{
		status:  atomic.NewInt32(common.DaemonStatusInitialized),
		running: atomic.NewBool(false),
		cron:    cron.New(),
		handler: handler,
		timeout: timeout,
		logger:  logger.WithTags(tag.Component(tag.ComponentRouteAdmin), tag.Value(spec)),
	}
	s.cron.Schedule(sched, cron.FuncJob(s.run))
	return s, nil
}

// Start starts firing on schedule
func (s *RebuildScheduler) Start() {
	if !s.status.CompareAndSwap(common.DaemonStatusInitialized, common.DaemonStatusStarted) {
		return
	}
	s.cron.Start()
	s.logger.Info("index rebuild scheduler started", tag.Lifecycle(tag.LifeCycleStarted))
}

// Stop stops firing; a sweep already running is not interrupted
func (s *RebuildScheduler) Stop() {
	if !s.status.CompareAndSwap(common.DaemonStatusStarted, common.DaemonStatusStopped) {
		return
	}
	s.cron.Stop()
	s.logger.Info("index rebuild scheduler stopped", tag.Lifecycle(tag.LifeCycleStopped))
}

func (s *RebuildScheduler) run() {
	// a slow sweep must not overlap the next firing
	if !s.running.CompareAndSwap(false, true) {
		s.logger.Warn("previous index rebuild still running, skipping")
		return
	}
	defer s.running.Store(false)

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	resp, err := s.handler.RebuildIndices(ctx)
	if err != nil {
		s.logger.Error("scheduled index rebuild failed", tag.Error(err))
		return
	}
	s.logger.Info("scheduled index rebuild finished",
		tag.Counter(resp.Channels+resp.StreamTos), tag.Number(int64(resp.Failures)))
}
