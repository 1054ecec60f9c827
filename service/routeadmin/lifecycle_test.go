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
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/uber/streamroute/common"
	"github.com/uber/streamroute/common/coordination"
	"github.com/uber/streamroute/common/log/testlogger"
	"github.com/uber/streamroute/common/messaging/kafka"
	"github.com/uber/streamroute/common/metrics"
	"github.com/uber/streamroute/common/persistence"
	"github.com/uber/streamroute/common/routeid"
	"github.com/uber/streamroute/common/types"
)

// lifecycleSuite drives the handler against the in-memory coordination tree
type lifecycleSuite struct {
	*require.Assertions
	suite.Suite

	ctx     context.Context
	store   persistence.MetadataStore
	handler Handler
}

func TestLifecycleSuite(t *testing.T) {
	suite.Run(t, new(lifecycleSuite))
}

func (s *lifecycleSuite) SetupTest() {
	s.Assertions = require.New(s.T())
	s.ctx = context.Background()
	logger := testlogger.New(s.T())
	s.store = persistence.NewMetadataStore(coordination.NewMemoryClient(), persistence.NewPaths("", ""), logger)
	s.NoError(s.store.Init(s.ctx))
	s.handler = NewHandler(
		s.store,
		routeid.NewAllocator(s.store, logger),
		kafka.NewValidator(kafka.ValidatorOptions{}, logger),
		metrics.NewNoopClient(),
		logger,
	)
}

func (s *lifecycleSuite) addStreamTo() uint32 {
	resp, err := s.handler.AddStreamTo(s.ctx, &AddStreamToRequest{
		Metadata: types.StreamToMetadata{PlatName: "bkmonitor", Label: &types.Label{BizID: int64Ptr(2)}},
		StreamTo: kafkaCluster(),
	})
	s.NoError(err)
	return resp.StreamToID
}

func (s *lifecycleSuite) TestChannelLifecycle() {
	streamToID := s.addStreamTo()
	s.Equal(uint32(0x400), streamToID&0x400)

	added, err := s.handler.AddChannel(s.ctx, &AddChannelRequest{
		Metadata: types.ChannelMetadata{PlatName: "bkmonitor", Label: &types.Label{Odm: "odm_a"}},
		Channels: []*types.Channel{kafkaRoute("r1", streamToID, "f1")},
		Filters:  []*types.StreamFilter{stringFilter("f1")},
	})
	s.NoError(err)
	plat, _ := routeid.DecodeChannelID(added.ChannelID)
	s.Equal(uint32(1), plat)

	s.NoError(s.handler.UpdateChannel(s.ctx, &UpdateChannelRequest{
		Condition:     ChannelCondition{ChannelID: added.ChannelID, PlatName: "bkmonitor"},
		Specification: ChannelSpecification{Channels: []*types.Channel{kafkaRoute("r2", streamToID)}},
	}))

	configs, err := s.handler.QueryChannel(s.ctx, &QueryChannelRequest{
		Condition: ChannelCondition{ChannelID: added.ChannelID, PlatName: "bkmonitor"},
	})
	s.NoError(err)
	s.Len(configs, 1)
	s.Len(configs[0].Channels, 2)

	err = s.handler.UpdateChannel(s.ctx, &UpdateChannelRequest{
		Condition:     ChannelCondition{ChannelID: added.ChannelID, PlatName: "gse"},
		Specification: ChannelSpecification{Channels: []*types.Channel{kafkaRoute("r3", streamToID)}},
	})
	s.True(types.IsAccessDeniedError(err))

	ids, err := s.handler.QueryChannelIDs(s.ctx, &QueryIndexRequest{
		Condition: IndexCondition{PlatName: "bkmonitor", StreamToID: streamToID},
	})
	s.NoError(err)
	s.Equal([]uint32{added.ChannelID}, ids.IDs)

	err = s.handler.DeleteStreamTo(s.ctx, &DeleteStreamToRequest{
		Condition: StreamToCondition{StreamToID: streamToID, PlatName: "bkmonitor"},
	})
	s.True(types.IsEntityAlreadyExistsError(err))

	s.NoError(s.handler.DeleteChannel(s.ctx, &DeleteChannelRequest{
		Condition:     ChannelCondition{ChannelID: added.ChannelID, PlatName: "bkmonitor"},
		Operation:     Operation{Method: common.DeleteMethodSpecification},
		Specification: ChannelSpecification{Channels: []*types.Channel{{Name: "r2"}}},
	}))
	s.NoError(s.handler.DeleteChannel(s.ctx, &DeleteChannelRequest{
		Condition: ChannelCondition{ChannelID: added.ChannelID, PlatName: "bkmonitor"},
	}))
	err = s.handler.DeleteChannel(s.ctx, &DeleteChannelRequest{
		Condition: ChannelCondition{ChannelID: added.ChannelID, PlatName: "bkmonitor"},
	})
	s.True(types.IsEntityNotExistsError(err))

	s.NoError(s.handler.DeleteStreamTo(s.ctx, &DeleteStreamToRequest{
		Condition: StreamToCondition{StreamToID: streamToID, PlatName: "bkmonitor"},
	}))
	streamTos, err := s.handler.QueryStreamTo(s.ctx, &QueryStreamToRequest{
		Condition: StreamToCondition{PlatName: "bkmonitor"},
	})
	s.NoError(err)
	s.Empty(streamTos)
}

func (s *lifecycleSuite) TestTglogAddIsIdempotent() {
	streamToID := s.addStreamTo()
	request := &AddChannelRequest{
		Metadata: types.ChannelMetadata{
			PlatName: persistence.TglogPlatName,
			Label:    &types.Label{Odm: "odm_t", BizID: int64Ptr(9)},
		},
		Channels: []*types.Channel{kafkaRoute("r1", streamToID)},
	}
	first, err := s.handler.AddChannel(s.ctx, request)
	s.NoError(err)
	second, err := s.handler.AddChannel(s.ctx, request)
	s.NoError(err)
	s.Equal(first.ChannelID, second.ChannelID)

	ids, err := s.store.ListChannelIDs(s.ctx)
	s.NoError(err)
	s.Len(ids, 1)
}

func (s *lifecycleSuite) TestRebuildIndices() {
	s.addStreamTo()
	resp, err := s.handler.RebuildIndices(s.ctx)
	s.NoError(err)
	s.Equal(1, resp.StreamTos)
	s.Equal(0, resp.Failures)
}
