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
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/multierr"

	"github.com/uber/streamroute/common/coordination"
	"github.com/uber/streamroute/common/log/testlogger"
	"github.com/uber/streamroute/common/routeid"
	"github.com/uber/streamroute/common/types"
)

type metadataStoreSuite struct {
	*require.Assertions
	suite.Suite

	ctx    context.Context
	client coordination.MemoryClient
	clock  clockwork.FakeClock
	paths  Paths
	store  MetadataStore
}

func TestMetadataStoreSuite(t *testing.T) {
	suite.Run(t, new(metadataStoreSuite))
}

func (s *metadataStoreSuite) SetupTest() {
	s.Assertions = require.New(s.T())
	s.ctx = context.Background()
	s.client = coordination.NewMemoryClient()
	s.clock = clockwork.NewFakeClockAt(time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC))
	s.paths = NewPaths("", "")
	s.store = NewMetadataStore(s.client, s.paths, testlogger.New(s.T()), WithClock(s.clock))
	s.NoError(s.store.Init(s.ctx))
}

func int64Ptr(v int64) *int64 {
	return &v
}

func newChannelConfig(channelID uint32, streamToID uint32) *types.ChannelConfig {
	return &types.ChannelConfig{
		Metadata: types.ChannelMetadata{
			Version:   "1.0",
			ChannelID: channelID,
			PlatName:  "bkmonitor",
			Label:     &types.Label{Odm: "odm_a", BizID: int64Ptr(2)},
		},
		Channels: []*types.Channel{
			{
				Name:          "r1",
				StreamTo:      types.StreamTo{StreamToID: streamToID, Target: &types.KafkaTopic{TopicName: "topic_a", Partition: 1}},
				FilterNameAnd: []string{"f1"},
			},
		},
		Filters: []*types.StreamFilter{
			{Name: "f1", FieldIndex: 1, FieldDataType: types.FieldDataTypeString, FieldDataValue: "x", FieldIn: types.FieldInProtocol},
		},
	}
}

func newStreamToConfig(streamToID uint32) *types.StreamToClusterConfig {
	return &types.StreamToClusterConfig{
		Metadata: types.StreamToMetadata{
			Version:    "1.0",
			StreamToID: streamToID,
			PlatName:   "bkmonitor",
			Label:      &types.Label{Odm: "odm_a", BizID: int64Ptr(2)},
		},
		StreamTo: types.StreamToCluster{
			Name: "cluster_a",
			Backend: &types.RedisCluster{
				StorageAddress: []types.Address{{IP: "127.0.0.1", Port: 6379}},
				Mode:           types.RedisModeSingle,
			},
		},
	}
}

func (s *metadataStoreSuite) TestInitRegistersPlatforms() {
	number, err := s.store.ReadPlatNumber(s.ctx, "bkmonitor")
	s.NoError(err)
	s.Equal("1", number)

	_, err = s.store.ReadPlatNumber(s.ctx, "unknown")
	s.True(types.IsEntityNotExistsError(err))

	// a second Init leaves existing nodes alone
	s.NoError(s.store.Init(s.ctx))
}

func (s *metadataStoreSuite) TestNextOriginIsMonotonic() {
	first, err := s.store.NextChannelOrigin(s.ctx, "bkmonitor")
	s.NoError(err)
	second, err := s.store.NextChannelOrigin(s.ctx, "bkmonitor")
	s.NoError(err)
	s.Greater(second, first)

	exists, err := s.client.Exists(s.ctx, s.paths.ChannelOrigin(second), nil)
	s.NoError(err)
	s.True(exists)

	streamTo, err := s.store.NextStreamToOrigin(s.ctx, "bkmonitor")
	s.NoError(err)
	s.Equal(uint32(0), streamTo)
}

func (s *metadataStoreSuite) TestNextOriginCreatesMissingRoot() {
	store := NewMetadataStore(coordination.NewMemoryClient(), s.paths, testlogger.New(s.T()))
	origin, err := store.NextChannelOrigin(s.ctx, "gse")
	s.NoError(err)
	s.Equal(uint32(0), origin)
}

func (s *metadataStoreSuite) TestChannelConfigRoundTrip() {
	config := newChannelConfig(routeid.EncodeChannelID(1, 1), 1025)
	s.NoError(s.store.CreateChannelConfig(s.ctx, config))

	exists, err := s.store.ExistsChannel(s.ctx, config.Metadata.ChannelID)
	s.NoError(err)
	s.True(exists)

	stamp, err := s.client.Get(s.ctx, s.paths.Channel(config.Metadata.ChannelID), nil)
	s.NoError(err)
	s.Equal("2024-03-01T08:00:00Z", string(stamp))

	count, err := s.client.Get(s.ctx, s.paths.ChannelFilters(config.Metadata.ChannelID), nil)
	s.NoError(err)
	s.Equal("1", string(count))

	read, err := s.store.ReadChannelConfig(s.ctx, config.Metadata.ChannelID)
	s.NoError(err)
	s.Equal(config, read)
}

func (s *metadataStoreSuite) TestChannelConfigRoundTripEveryBackend() {
	channelID := routeid.EncodeChannelID(1, 2)
	kafka := &types.Channel{
		Name:          "z_kafka",
		StreamTo:      types.StreamTo{StreamToID: 1025, Target: &types.KafkaTopic{DataSet: "set_", BizID: 2, Partition: 3}},
		FilterNameAnd: []string{"by_protocol", "by_payload"},
	}
	redis := &types.Channel{
		Name:         "b_redis",
		StreamTo:     types.StreamTo{StreamToID: 1026, Target: &types.RedisChannel{ChannelName: "redis_a", DataSet: "set_", BizID: 2}},
		FilterNameOr: []string{"by_protocol"},
	}
	pulsarTopic := &types.PulsarTopic{
		TopicName:  "pulsar_a",
		Tenant:     "tenant_a",
		Namespace:  "ns_a",
		BizID:      2,
		Persistent: "non-persistent",
	}
	pulsar := &types.Channel{
		Name:     "m_pulsar",
		StreamTo: types.StreamTo{StreamToID: 1027, Target: pulsarTopic},
	}
	proxy := &types.Channel{
		Name:     "a_proxy",
		StreamTo: types.StreamTo{StreamToID: 1028, Target: &types.ProxyTarget{}},
	}
	byProtocol := &types.StreamFilter{
		Name:           "by_protocol",
		FieldIndex:     2,
		FieldDataType:  types.FieldDataTypeInt,
		FieldDataValue: "1|2",
		Separator:      "|",
		FieldIn:        types.FieldInProtocol,
	}
	byPayload := &types.StreamFilter{
		Name:           "by_payload",
		FieldIndex:     4,
		FieldDataType:  types.FieldDataTypeByte,
		FieldDataValue: "abc",
		FieldIn:        types.FieldInData,
	}
	config := &types.ChannelConfig{
		Metadata: types.ChannelMetadata{Version: "1.0", ChannelID: channelID, PlatName: "bkmonitor", IsPlatID: true},
		Channels: []*types.Channel{kafka, redis, pulsar, proxy},
		Filters:  []*types.StreamFilter{byProtocol, byPayload},
	}
	s.NoError(s.store.CreateChannelConfig(s.ctx, config))

	read, err := s.store.ReadChannelConfig(s.ctx, channelID)
	s.NoError(err)
	s.Equal(config.Metadata, read.Metadata)
	s.Equal([]*types.Channel{proxy, redis, pulsar, kafka}, read.Channels)
	s.Equal([]*types.StreamFilter{byPayload, byProtocol}, read.Filters)
	for i, mode := range []types.ReportMode{types.ReportModeProxy, types.ReportModeRedis, types.ReportModePulsar, types.ReportModeKafka} {
		s.Equal(mode, read.Channels[i].StreamTo.ReportMode())
	}
}

func (s *metadataStoreSuite) TestReadMissingChannel() {
	_, err := s.store.ReadChannelConfig(s.ctx, 42)
	s.True(types.IsEntityNotExistsError(err))
}

func (s *metadataStoreSuite) TestReadCorruptedRouteFailsWholeRead() {
	config := newChannelConfig(524289, 1025)
	s.NoError(s.store.CreateChannelConfig(s.ctx, config))
	s.NoError(s.client.Set(s.ctx, s.paths.ChannelRoute(524289, "r1"), []byte("{not json")))

	read, err := s.store.ReadChannelConfig(s.ctx, 524289)
	s.Nil(read)
	s.True(IsCorruptedDocumentError(err))
}

func (s *metadataStoreSuite) TestReadMissingMetadataIsCorrupted() {
	s.NoError(s.store.CreateNode(s.ctx, s.paths.Channel(524300), []byte(" ")))
	_, err := s.store.ReadChannelConfig(s.ctx, 524300)
	s.True(IsCorruptedDocumentError(err))
}

func (s *metadataStoreSuite) TestUpdateChannelConfigMerges() {
	config := newChannelConfig(524289, 1025)
	s.NoError(s.store.CreateChannelConfig(s.ctx, config))

	s.clock.Advance(time.Minute)
	config.Merge([]*types.Channel{
		{Name: "r2", StreamTo: types.StreamTo{StreamToID: 1026, Target: &types.ProxyTarget{}}},
	}, nil)
	s.NoError(s.store.UpdateChannelConfig(s.ctx, config))

	read, err := s.store.ReadChannelConfig(s.ctx, 524289)
	s.NoError(err)
	s.Len(read.Channels, 2)
	s.Equal("r1", read.Channels[0].Name)
	s.Equal("r2", read.Channels[1].Name)

	stamp, err := s.client.Get(s.ctx, s.paths.Channel(524289), nil)
	s.NoError(err)
	s.Equal("2024-03-01T08:01:00Z", string(stamp))
}

func (s *metadataStoreSuite) TestUpdateMissingChannel() {
	err := s.store.UpdateChannelConfig(s.ctx, newChannelConfig(524289, 1025))
	s.True(types.IsEntityNotExistsError(err))
}

func (s *metadataStoreSuite) TestDeleteChannelIDIsIdempotent() {
	origin, err := s.store.NextChannelOrigin(s.ctx, "bkmonitor")
	s.NoError(err)
	channelID := routeid.EncodeChannelID(1, origin)
	s.NoError(s.store.CreateChannelConfig(s.ctx, newChannelConfig(channelID, 1025)))

	s.NoError(s.store.DeleteChannelID(s.ctx, channelID))
	s.NoError(s.store.DeleteChannelID(s.ctx, channelID))

	exists, err := s.store.ExistsChannel(s.ctx, channelID)
	s.NoError(err)
	s.False(exists)
	exists, err = s.client.Exists(s.ctx, s.paths.ChannelOrigin(origin), nil)
	s.NoError(err)
	s.False(exists)
}

func (s *metadataStoreSuite) TestDeleteReservedChannelKeepsOriginNodes() {
	s.NoError(s.store.CreateNode(s.ctx, s.paths.ChannelOrigin(1001), []byte("gse")))
	s.NoError(s.store.CreateChannelConfig(s.ctx, newChannelConfig(1001, 1025)))
	s.NoError(s.store.DeleteChannelID(s.ctx, 1001))

	exists, err := s.client.Exists(s.ctx, s.paths.ChannelOrigin(1001), nil)
	s.NoError(err)
	s.True(exists)
}

func (s *metadataStoreSuite) TestDeleteBySpecification() {
	config := newChannelConfig(524289, 1025)
	config.Filters = append(config.Filters, &types.StreamFilter{
		Name: "f2", FieldIndex: 2, FieldDataType: types.FieldDataTypeInt, FieldDataValue: "7", FieldIn: types.FieldInData,
	})
	config.Channels = append(config.Channels, &types.Channel{
		Name: "r2", StreamTo: types.StreamTo{StreamToID: 1025, Target: &types.ProxyTarget{}},
	})
	s.NoError(s.store.CreateChannelConfig(s.ctx, config))

	s.NoError(s.store.DeleteBySpecification(s.ctx, 524289, []string{"r2", "missing"}, []string{"f2"}))

	read, err := s.store.ReadChannelConfig(s.ctx, 524289)
	s.NoError(err)
	s.Len(read.Channels, 1)
	s.Len(read.Filters, 1)
	count, err := s.client.Get(s.ctx, s.paths.ChannelFilters(524289), nil)
	s.NoError(err)
	s.Equal("1", string(count))
}

func (s *metadataStoreSuite) TestListChannelIDsSkipsIndexNodes() {
	s.NoError(s.store.CreateChannelConfig(s.ctx, newChannelConfig(524289, 1025)))
	s.NoError(s.store.CreateChannelIndices(s.ctx, newChannelConfig(524289, 1025)))

	ids, err := s.store.ListChannelIDs(s.ctx)
	s.NoError(err)
	s.Equal([]uint32{524289}, ids)
}

func (s *metadataStoreSuite) TestChannelIndices() {
	config := newChannelConfig(524289, 1025)
	s.NoError(s.store.CreateChannelIndices(s.ctx, config))

	for family, key := range map[string]string{
		IndexPlatName:   "bkmonitor",
		IndexBizID:      "2",
		IndexOdm:        "odm_a",
		IndexStreamToID: "1025",
	} {
		ids, err := s.store.QueryChannelIDs(s.ctx, family, key)
		s.NoError(err)
		s.Equal([]uint32{524289}, ids, family)
	}

	s.NoError(s.store.DeleteChannelIndices(s.ctx, config))
	s.NoError(s.store.DeleteChannelIndices(s.ctx, config))

	ids, err := s.store.QueryChannelIDs(s.ctx, IndexPlatName, "bkmonitor")
	s.NoError(err)
	s.Empty(ids)
	// key nodes outlive their last leaf so a concurrent writer never loses its parent
	exists, err := s.client.Exists(s.ctx, s.paths.ChannelIndexKey(IndexPlatName, "bkmonitor"), nil)
	s.NoError(err)
	s.True(exists)
	s.NoError(s.store.CreateChannelIndices(s.ctx, newChannelConfig(524290, 1025)))
	ids, err = s.store.QueryChannelIDs(s.ctx, IndexPlatName, "bkmonitor")
	s.NoError(err)
	s.Equal([]uint32{524290}, ids)

	_, err = s.store.QueryChannelIDs(s.ctx, IndexType, "kafka")
	s.True(types.IsBadRequestError(err))
}

func (s *metadataStoreSuite) TestDeleteStreamToLinks() {
	s.NoError(s.store.CreateChannelIndices(s.ctx, newChannelConfig(524289, 1025)))
	s.NoError(s.store.CreateChannelIndices(s.ctx, newChannelConfig(524290, 1025)))

	s.NoError(s.store.DeleteStreamToLinks(s.ctx, 524289, []uint32{1025, 1099}))
	ids, err := s.store.QueryChannelIDs(s.ctx, IndexStreamToID, "1025")
	s.NoError(err)
	s.Equal([]uint32{524290}, ids)
}

func (s *metadataStoreSuite) TestTglogNotify() {
	config := newChannelConfig(routeid.EncodeChannelID(3, 5), 1025)
	config.Metadata.PlatName = TglogPlatName
	s.NoError(s.store.CreateChannelIndices(s.ctx, config))

	channelID, ok, err := s.store.ReadTglogChannelID(s.ctx, config.Metadata.Label)
	s.NoError(err)
	s.True(ok)
	s.Equal(config.Metadata.ChannelID, channelID)

	s.NoError(s.store.DeleteChannelIndices(s.ctx, config))
	_, ok, err = s.store.ReadTglogChannelID(s.ctx, config.Metadata.Label)
	s.NoError(err)
	s.False(ok)
}

func (s *metadataStoreSuite) TestStreamToConfigLifecycle() {
	config := newStreamToConfig(1025)
	s.NoError(s.store.CreateStreamToConfig(s.ctx, config))

	read, err := s.store.ReadStreamToConfig(s.ctx, 1025)
	s.NoError(err)
	s.Equal(config, read)

	config.StreamTo.Name = "cluster_b"
	s.NoError(s.store.UpdateStreamToConfig(s.ctx, config))
	read, err = s.store.ReadStreamToConfig(s.ctx, 1025)
	s.NoError(err)
	s.Equal("cluster_b", read.StreamTo.Name)

	s.NoError(s.store.CreateStreamToIndices(s.ctx, config))
	ids, err := s.store.QueryStreamToIDs(s.ctx, IndexType, "redis")
	s.NoError(err)
	s.Equal([]uint32{1025}, ids)

	listed, err := s.store.ListStreamToIDs(s.ctx)
	s.NoError(err)
	s.Equal([]uint32{1025}, listed)

	s.NoError(s.store.DeleteStreamToID(s.ctx, 1025))
	s.NoError(s.store.DeleteStreamToID(s.ctx, 1025))
	s.NoError(s.store.DeleteStreamToIndices(s.ctx, config))
	_, err = s.store.ReadStreamToConfig(s.ctx, 1025)
	s.True(types.IsEntityNotExistsError(err))
}

func (s *metadataStoreSuite) TestRebuildIndices() {
	channel := newChannelConfig(524289, 1025)
	streamTo := newStreamToConfig(1025)
	s.NoError(s.store.CreateChannelConfig(s.ctx, channel))
	s.NoError(s.store.CreateStreamToConfig(s.ctx, streamTo))
	s.NoError(s.store.CreateNode(s.ctx, s.paths.Channel(524999), []byte(" ")))

	report, err := s.store.RebuildIndices(s.ctx)
	s.NoError(err)
	s.Equal(&RebuildReport{Channels: 1, StreamTos: 1, Failures: 1}, report)

	ids, err := s.store.QueryChannelIDs(s.ctx, IndexStreamToID, "1025")
	s.NoError(err)
	s.Equal([]uint32{524289}, ids)
	ids, err = s.store.QueryStreamToIDs(s.ctx, IndexPlatName, "bkmonitor")
	s.NoError(err)
	s.Equal([]uint32{1025}, ids)
}

func (s *metadataStoreSuite) TestNotConnected() {
	s.client.SetConnected(false)

	_, err := s.store.ReadChannelConfig(s.ctx, 524289)
	s.Equal(types.CodeNotConnected, types.CodeOf(err))
	s.Equal(types.CodeNotConnected, types.CodeOf(s.store.CreateChannelConfig(s.ctx, newChannelConfig(524289, 1025))))
	_, err = s.store.NextChannelOrigin(s.ctx, "gse")
	s.Equal(types.CodeNotConnected, types.CodeOf(err))
}

func TestCoordinationFailuresAreServiceUnavailable(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := coordination.NewMockClient(ctrl)
	paths := NewPaths("", "")
	store := NewMetadataStore(client, paths, testlogger.New(t))
	ctx := context.Background()
	failure := errors.New("connection reset")

	client.EXPECT().Connected().Return(true).AnyTimes()
	client.EXPECT().Exists(gomock.Any(), paths.Channel(524289), nil).Return(true, nil)
	client.EXPECT().Get(gomock.Any(), paths.ChannelMetadata(524289), nil).Return(nil, failure)

	_, err := store.ReadChannelConfig(ctx, 524289)
	require.Error(t, err)
	require.Equal(t, types.CodeServiceUnavailable, types.CodeOf(err))
	require.ErrorIs(t, err, failure)
}

func TestRecursiveDeletePropagatesFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := coordination.NewMockClient(ctrl)
	paths := NewPaths("", "")
	store := NewMetadataStore(client, paths, testlogger.New(t))
	failure := errors.New("session expired")

	client.EXPECT().Connected().Return(true).AnyTimes()
	client.EXPECT().Children(gomock.Any(), paths.Channel(524289), nil).Return([]string{"metadata"}, nil)
	client.EXPECT().Children(gomock.Any(), paths.ChannelMetadata(524289), nil).Return([]string{}, nil)
	client.EXPECT().Delete(gomock.Any(), paths.ChannelMetadata(524289)).Return(failure)

	err := store.DeleteChannelID(context.Background(), 524289)
	require.ErrorIs(t, err, failure)
}

func TestIndexFailuresAreAggregated(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := coordination.NewMockClient(ctrl)
	paths := NewPaths("", "")
	store := NewMetadataStore(client, paths, testlogger.New(t))
	failure := errors.New("write failed")

	client.EXPECT().Connected().Return(true).AnyTimes()
	client.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(failure).Times(4)

	err := store.DeleteChannelIndices(context.Background(), newChannelConfig(524289, 1025))
	require.ErrorIs(t, err, failure)
	require.Len(t, multierr.Errors(err), 4)
}
