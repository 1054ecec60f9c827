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

package cache

import (
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/uber/streamroute/common/filter"
	"github.com/uber/streamroute/common/log/testlogger"
	"github.com/uber/streamroute/common/metrics"
	"github.com/uber/streamroute/common/routeid"
	"github.com/uber/streamroute/common/types"
)

type routeCacheSuite struct {
	*require.Assertions
	suite.Suite

	clock clockwork.FakeClock
	cache *routeCache
}

func TestRouteCacheSuite(t *testing.T) {
	suite.Run(t, new(routeCacheSuite))
}

func (s *routeCacheSuite) SetupTest() {
	s.Assertions = require.New(s.T())
	s.clock = clockwork.NewFakeClock()
	s.cache = s.newCache(Options{QueueSize: 4, Clock: s.clock})
}

func (s *routeCacheSuite) newCache(options Options) *routeCache {
	return NewRouteCache(options, testlogger.New(s.T()), metrics.NewNoopClient()).(*routeCache)
}

func channelConfig(channelID uint32, streamToIDs ...uint32) *types.ChannelConfig {
	config := &types.ChannelConfig{
		Metadata: types.ChannelMetadata{ChannelID: channelID, PlatName: "bkmonitor"},
		Filters: []*types.StreamFilter{
			{Name: "only_a", FieldIn: types.FieldInProtocol, FieldDataType: types.FieldDataTypeString, FieldDataValue: "a"},
		},
	}
	for i, id := range streamToIDs {
		route := &types.Channel{
			Name:     "r" + string(rune('0'+i)),
			StreamTo: types.StreamTo{StreamToID: id, Target: &types.KafkaTopic{TopicName: "t", Partition: 1}},
		}
		if i == 0 {
			route.FilterNameAnd = []string{"only_a"}
		}
		config.Channels = append(config.Channels, route)
	}
	return config
}

func streamToConfig(streamToID uint32) *types.StreamToClusterConfig {
	return &types.StreamToClusterConfig{
		Metadata: types.StreamToMetadata{StreamToID: streamToID, PlatName: "bkmonitor"},
		StreamTo: types.StreamToCluster{
			Name:    "c",
			Backend: &types.KafkaCluster{StorageAddress: []types.Address{{IP: "127.0.0.1", Port: 9092}}},
		},
	}
}

func (s *routeCacheSuite) TestPutAndLookup() {
	s.cache.apply(ChannelEvent(EventCreated, 524289, channelConfig(524289, 1025, 1026)))

	routes := s.cache.Routes(524289)
	s.Len(routes, 2)
	s.Equal(uint32(1025), routes[0].StreamToID)
	s.Equal([]uint32{524289}, s.cache.ChannelIDsByStreamTo(1025))
	s.Equal([]uint32{524289}, s.cache.ChannelIDsByStreamTo(1026))
	s.Equal(1, s.cache.Len())
	s.Nil(s.cache.Routes(524290))
}

func (s *routeCacheSuite) TestChangeReplacesEntry() {
	s.cache.apply(ChannelEvent(EventCreated, 524289, channelConfig(524289, 1025)))
	before, ok := s.cache.Channel(524289)
	s.True(ok)

	s.cache.apply(ChannelEvent(EventChanged, 524289, channelConfig(524289, 1026)))
	after, ok := s.cache.Channel(524289)
	s.True(ok)

	s.NotSame(before, after)
	s.Len(before.Routes, 1)
	s.Equal(uint32(1025), before.Routes[0].StreamToID)
	s.Empty(s.cache.ChannelIDsByStreamTo(1025))
	s.Equal([]uint32{524289}, s.cache.ChannelIDsByStreamTo(1026))
}

func (s *routeCacheSuite) TestCreatedIsIdempotent() {
	event := ChannelEvent(EventCreated, 524289, channelConfig(524289, 1025))
	s.cache.apply(event)
	s.cache.apply(event)
	s.Equal(1, s.cache.Len())
	s.Equal([]uint32{524289}, s.cache.ChannelIDsByStreamTo(1025))
}

func (s *routeCacheSuite) TestDeleteTombstonesUntilSweep() {
	s.cache.apply(ChannelEvent(EventCreated, 524289, channelConfig(524289, 1025)))
	s.cache.apply(StreamToEvent(EventCreated, 1025, streamToConfig(1025)))

	s.cache.apply(&Event{Type: EventDeleted, Kind: KindChannel, ID: 524289})
	s.cache.apply(&Event{Type: EventDeleted, Kind: KindStreamTo, ID: 1025})
	_, ok := s.cache.Channel(524289)
	s.False(ok)
	s.Empty(s.cache.ChannelIDsByStreamTo(1025))
	s.Equal(Stats{ChannelTombstones: 1, StreamTombstones: 1}, s.cache.Stats())

	s.clock.Advance(61 * time.Second)
	s.cache.sweep()
	s.Equal(Stats{ChannelTombstones: 1}, s.cache.Stats())

	s.clock.Advance(60 * time.Second)
	s.cache.sweep()
	s.Equal(Stats{}, s.cache.Stats())
}

func (s *routeCacheSuite) TestRecreateClearsTombstone() {
	s.cache.apply(ChannelEvent(EventCreated, 524289, channelConfig(524289, 1025)))
	s.cache.apply(&Event{Type: EventDeleted, Kind: KindChannel, ID: 524289})
	s.cache.apply(&Event{Type: EventDeleted, Kind: KindChannel, ID: 524289})
	s.Equal(1, s.cache.Stats().ChannelTombstones)

	s.cache.apply(ChannelEvent(EventCreated, 524289, channelConfig(524289, 1025)))
	s.Equal(0, s.cache.Stats().ChannelTombstones)
	s.Equal(1, s.cache.Len())
}

func (s *routeCacheSuite) TestMalformedEventsAreIgnored() {
	s.cache.apply(nil)
	s.cache.apply(&Event{Type: EventCreated, Kind: KindChannel, ID: 1})
	s.cache.apply(&Event{Type: EventDeleted, ID: 1})
	s.Equal(Stats{}, s.cache.Stats())
}

func (s *routeCacheSuite) TestEnqueueDropsOldest() {
	for id := uint32(1); id <= 4; id++ {
		s.True(s.cache.Enqueue(StreamToEvent(EventCreated, id, streamToConfig(id))))
	}
	s.False(s.cache.Enqueue(StreamToEvent(EventCreated, 5, streamToConfig(5))))
	s.Equal(int64(1), s.cache.Stats().Dropped)

	first := <-s.cache.events
	s.Equal(uint32(2), first.ID)
}

func (s *routeCacheSuite) TestDispatch() {
	s.cache.apply(ChannelEvent(EventCreated, 524289, channelConfig(524289, 1025, 1026)))
	s.cache.apply(StreamToEvent(EventCreated, 1025, streamToConfig(1025)))

	deliveries := s.cache.Dispatch(524289, &filter.RawMessage{Fields: []string{"a"}})
	s.Len(deliveries, 1)
	s.Equal("r0", deliveries[0].Route.Name)
	s.Equal(uint32(1025), deliveries[0].Cluster.Config.Metadata.StreamToID)

	s.cache.apply(StreamToEvent(EventCreated, 1026, streamToConfig(1026)))
	s.Len(s.cache.Dispatch(524289, &filter.RawMessage{Fields: []string{"a"}}), 2)
	s.Len(s.cache.Dispatch(524289, &filter.RawMessage{Fields: []string{"b"}}), 1)
}

func (s *routeCacheSuite) TestPlatIDMode() {
	cache := s.newCache(Options{PlatIDMode: true, Clock: s.clock})
	first := routeid.EncodeChannelID(1, 77)
	config := channelConfig(first, 1025)
	config.Metadata.IsPlatID = true
	cache.apply(ChannelEvent(EventCreated, first, config))
	cache.apply(ChannelEvent(EventCreated, routeid.EncodeChannelID(2, 3), channelConfig(routeid.EncodeChannelID(2, 3), 1026)))

	s.Len(cache.Routes(routeid.EncodeChannelID(1, 78)), 1)
	s.Len(cache.Routes(routeid.EncodeChannelID(2, 3)), 1)
	s.Nil(cache.Routes(routeid.EncodeChannelID(2, 4)))

	// a later plat-id channel of the same platform takes over the key
	second := routeid.EncodeChannelID(1, 80)
	config = channelConfig(second, 1027)
	config.Metadata.IsPlatID = true
	cache.apply(ChannelEvent(EventCreated, second, config))
	s.Equal(second, cache.Routes(first)[0].ChannelID)
	s.Empty(cache.ChannelIDsByStreamTo(1025))
	s.Equal(2, cache.Len())

	// deleting the replaced channel leaves the newer entry
	cache.apply(&Event{Type: EventDeleted, Kind: KindChannel, ID: first})
	s.Len(cache.Routes(first), 1)

	// clearing the flag moves the channel back to its own id
	cache.apply(ChannelEvent(EventChanged, second, channelConfig(second, 1027)))
	s.Nil(cache.Routes(first))
	s.Len(cache.Routes(second), 1)
	s.Equal(2, cache.Len())

	// without plat-id mode the flag is ignored
	plain := s.newCache(Options{Clock: s.clock})
	config = channelConfig(first, 1025)
	config.Metadata.IsPlatID = true
	plain.apply(ChannelEvent(EventCreated, first, config))
	s.Len(plain.Routes(first), 1)
	s.Nil(plain.Routes(routeid.EncodeChannelID(1, 78)))
}

func (s *routeCacheSuite) TestWorkerAppliesAndSweeps() {
	s.cache.Start()
	defer s.cache.Stop()

	s.cache.Enqueue(ChannelEvent(EventCreated, 524289, channelConfig(524289, 1025)))
	s.Eventually(func() bool { return s.cache.Len() == 1 }, time.Second, time.Millisecond)

	s.cache.Enqueue(&Event{Type: EventDeleted, Kind: KindChannel, ID: 524289})
	s.Eventually(func() bool { return s.cache.Stats().ChannelTombstones == 1 }, time.Second, time.Millisecond)

	s.clock.BlockUntil(1)
	s.clock.Advance(2 * time.Minute)
	s.Eventually(func() bool { return s.cache.Stats().ChannelTombstones == 0 }, time.Second, time.Millisecond)
}

func versionedConfig(channelID uint32, version uint32) *types.ChannelConfig {
	config := &types.ChannelConfig{Metadata: types.ChannelMetadata{ChannelID: channelID, PlatName: "bkmonitor"}}
	for i := uint32(0); i <= version%4; i++ {
		config.Channels = append(config.Channels, &types.Channel{
			Name:     "r" + strconv.Itoa(int(i)),
			StreamTo: types.StreamTo{StreamToID: 2000 + version, Target: &types.KafkaTopic{TopicName: "t", Partition: 1}},
		})
	}
	return config
}

func (s *routeCacheSuite) TestReadersSeeWholeEntriesWhileWorkerApplies() {
	const (
		channelID = 524289
		versions  = 300
		readers   = 4
	)
	cache := s.newCache(Options{QueueSize: versions, Clock: s.clock})
	for v := uint32(1); v <= versions; v++ {
		cache.apply(StreamToEvent(EventCreated, 2000+v, streamToConfig(2000+v)))
	}
	cache.Start()
	defer cache.Stop()

	check := assert.New(s.T())
	consistent := func(routes []*Route) {
		if len(routes) == 0 {
			return
		}
		version := routes[0].StreamToID - 2000
		check.Len(routes, int(version%4)+1)
		for _, r := range routes {
			check.Equal(uint32(channelID), r.ChannelID)
			check.Equal(routes[0].StreamToID, r.StreamToID)
		}
	}

	done := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < readers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			msg := &filter.RawMessage{Fields: []string{"a"}}
			for {
				select {
				case <-done:
					return
				default:
				}
				consistent(cache.Routes(channelID))
				deliveries := cache.Dispatch(channelID, msg)
				routes := make([]*Route, 0, len(deliveries))
				for _, d := range deliveries {
					check.Equal(d.Route.StreamToID, d.Cluster.Config.Metadata.StreamToID)
					routes = append(routes, d.Route)
				}
				consistent(routes)
			}
		}()
	}

	for v := uint32(1); v <= versions; v++ {
		cache.Enqueue(ChannelEvent(EventChanged, channelID, versionedConfig(channelID, v)))
	}
	s.Eventually(func() bool {
		routes := cache.Routes(channelID)
		return len(routes) > 0 && routes[0].StreamToID == 2000+versions
	}, time.Second, time.Millisecond)
	close(done)
	wg.Wait()
}
