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

package persistence

import (
	"context"

	"go.uber.org/atomic"
	"golang.org/x/sync/errgroup"

	"github.com/uber/streamroute/common/log/tag"
)

const rebuildConcurrency = 8

// RebuildIndices re-creates the index entries of every stored document.
// Per-document failures are counted and logged; only listing failures abort the sweep.
func (s *metadataStoreImpl) RebuildIndices(ctx context.Context) (*RebuildReport, error) {
	logger := s.logger.WithTags(tag.StoreOperation(tag.StoreOperationRebuildIndices))

	channelIDs, err := s.ListChannelIDs(ctx)
	if err != nil {
		return nil, err
	}
	streamToIDs, err := s.ListStreamToIDs(ctx)
	if err != nil {
		return nil, err
	}

	var channels, streamTos, failures atomic.Int32
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(rebuildConcurrency)

	for _, channelID := range channelIDs {
		channelID := channelID
		g.Go(func() error {
			config, err := s.ReadChannelConfig(gctx, channelID)
			if err == nil {
				err = s.CreateChannelIndices(gctx, config)
			}
			if err != nil {
				failures.Inc()
				logger.Warn("failed to rebuild channel indices", tag.ChannelID(channelID), tag.Error(err))
				return nil
			}
			channels.Inc()
			return gctx.Err()
		})
	}
	for _, streamToID := range streamToIDs {
		streamToID := streamToID
		g.Go(func() error {
			config, err := s.ReadStreamToConfig(gctx, streamToID)
			if err == nil {
				err = s.CreateStreamToIndices(gctx, config)
			}
			if err != nil {
				failures.Inc()
				logger.Warn("failed to rebuild stream-to indices", tag.StreamToID(streamToID), tag.Error(err))
				return nil
			}
			streamTos.Inc()
			return gctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &RebuildReport{
		Channels:  int(channels.Load()),
		StreamTos: int(streamTos.Load()),
		Failures:  int(failures.Load()),
	}
	logger.Info("index rebuild finished",
		tag.Counter(report.Channels+report.StreamTos),
		tag.Number(int64(report.Failures)))
	return report, nil
}
