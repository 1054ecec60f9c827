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
	"sort"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/atomic"

	"github.com/uber/streamroute/common"
	"github.com/uber/streamroute/common/filter"
	"github.com/uber/streamroute/common/log"
	"github.com/uber/streamroute/common/log/tag"
	"github.com/uber/streamroute/common/metrics"
	"github.com/uber/streamroute/common/routeid"
	"github.com/uber/streamroute/common/types"
)

type (
	// RouteCache is the read-optimized copy of the stored routes used by the data plane.
	// A single worker applies queued events; readers never block on coordination I/O.
	RouteCache interface {
		common.Daemon
		// Enqueue never blocks. When the queue is full the oldest event is dropped and false is returned.
		Enqueue(event *Event) bool
		// Routes returns the routes of a channel. The slice must not be modified.
		Routes(channelID uint32) []*Route
		Channel(channelID uint32) (*ChannelEntry, bool)
		ChannelIDsByStreamTo(streamToID uint32) []uint32
		StreamTo(streamToID uint32) (*StreamToEntry, bool)
		// Len returns the number of live channels
		Len() int
		Stats() Stats
		// Dispatch returns the routes of a channel that admit msg, paired with their clusters
		Dispatch(channelID uint32, msg filter.Message) []Delivery
	}

	// Options tunes the cache
	Options struct {
		QueueSize           int
		ChannelGracePeriod  time.Duration
		StreamToGracePeriod time.Duration
		SweepInterval       time.Duration
		// PlatIDMode keys channels whose metadata sets is_platid by their platform number,
		// so any channel id carrying that platform resolves to the same routes
		PlatIDMode bool
		Clock      clockwork.Clock
	}

	routeCache struct {
		status       *atomic.Int32
		shutdownCh   chan struct{}
		shutdownWG   sync.WaitGroup
		events       chan *Event
		dropped      *atomic.Int64
		options      Options
		logger       log.Logger
		metricsScope metrics.Scope

		sync.RWMutex
		channels   map[uint32]*ChannelEntry
		keys       map[uint32]uint32
		streamTos  map[uint32]*StreamToEntry
		byStreamTo map[uint32]map[uint32]struct{}

		// owned by the worker
		channelTombstones  map[uint32]tombstone
		streamTombstones   map[uint32]tombstone
		tombstonedChannels *atomic.Int32
		tombstonedStreams  *atomic.Int32
	}
)

var _ RouteCache = (*routeCache)(nil)

func (o Options) withDefaults() Options {
	if o.QueueSize <= 0 {
		o.QueueSize = common.DefaultEventQueueSize
	}
	if o.ChannelGracePeriod <= 0 {
		o.ChannelGracePeriod = common.ChannelGracePeriod
	}
	if o.StreamToGracePeriod <= 0 {
		o.StreamToGracePeriod = common.StreamToGracePeriod
	}
	if o.SweepInterval <= 0 {
		o.SweepInterval = common.TombstoneSweepInterval
	}
	if o.Clock == nil {
		o.Clock = clockwork.NewRealClock()
	}
	return o
}

// NewRouteCache creates a stopped cache
func NewRouteCache(options Options, logger log.Logger, metricsClient metrics.Client) RouteCache {
	options = options.withDefaults()
	return &routeCache{
		status:             atomic.NewInt32(common.DaemonStatusInitialized),
		shutdownCh:         make(chan struct{}),
		events:             make(chan *Event, options.QueueSize),
		dropped:            atomic.NewInt64(0),
		options:            options,
		logger:             logger.WithTags(tag.Component(tag.ComponentRouteCache)),
		metricsScope:       metricsClient.Scope(metrics.RouteCacheScope),
		channels:           make(map[uint32]*ChannelEntry),
		keys:               make(map[uint32]uint32),
		streamTos:          make(map[uint32]*StreamToEntry),
		byStreamTo:         make(map[uint32]map[uint32]struct{}),
		channelTombstones:  make(map[uint32]tombstone),
		streamTombstones:   make(map[uint32]tombstone),
		tombstonedChannels: atomic.NewInt32(0),
		tombstonedStreams:  atomic.NewInt32(0),
	}
}

func (c *routeCache) Start() {
	if !c.status.CompareAndSwap(common.DaemonStatusInitialized, common.DaemonStatusStarted) {
		return
	}
	c.shutdownWG.Add(1)
	go c.processLoop()
	c.logger.Info("route cache started", tag.Lifecycle(tag.LifeCycleStarted), tag.QueueSize(c.options.QueueSize))
}

func (c *routeCache) Stop() {
	if !c.status.CompareAndSwap(common.DaemonStatusStarted, common.DaemonStatusStopped) {
		return
	}
	close(c.shutdownCh)
	c.shutdownWG.Wait()
	c.logger.Info("route cache stopped", tag.Lifecycle(tag.LifeCycleStopped))
}

func (c *routeCache) Enqueue(event *Event) bool {
	for {
		select {
		case c.events <- event:
			c.metricsScope.IncCounter(metrics.CacheEventsEnqueued)
			return true
		default:
		}
		select {
		case dropped := <-c.events:
			c.dropped.Inc()
			c.metricsScope.IncCounter(metrics.CacheEventsDropped)
			c.logger.Warn("event queue full, dropped oldest event",
				tag.CacheEvent(dropped.Type.String()),
				tag.Key(dropped.Kind.String()),
				tag.Number(int64(dropped.ID)))
			select {
			case c.events <- event:
				c.metricsScope.IncCounter(metrics.CacheEventsEnqueued)
				return false
			default:
			}
		default:
		}
	}
}

func (c *routeCache) processLoop() {
	defer c.shutdownWG.Done()
	sweep := c.options.Clock.After(c.options.SweepInterval)
	for {
		select {
		case <-c.shutdownCh:
			return
		case event := <-c.events:
			c.apply(event)
		case <-sweep:
			c.sweep()
			sweep = c.options.Clock.After(c.options.SweepInterval)
		}
	}
}

func (c *routeCache) apply(event *Event) {
	if !event.valid() {
		c.metricsScope.IncCounter(metrics.CacheEventsInvalid)
		c.logger.Warn("ignoring malformed cache event")
		return
	}
	switch event.Kind {
	case KindChannel:
		if event.Type == EventDeleted {
			c.deleteChannel(event.ID)
		} else {
			c.putChannel(event)
		}
	case KindStreamTo:
		if event.Type == EventDeleted {
			c.deleteStreamTo(event.ID)
		} else {
			c.putStreamTo(event)
		}
	}
	c.metricsScope.Tagged(metrics.EventKindTag(event.Kind.String())).IncCounter(metrics.CacheEventsApplied)
	c.metricsScope.UpdateGauge(metrics.CacheQueueDepth, float64(len(c.events)))
}

func (c *routeCache) buildChannelEntry(event *Event) *ChannelEntry {
	config := event.Channel
	routes := make([]*Route, 0, len(config.Channels))
	for _, ch := range config.Channels {
		routes = append(routes, &Route{
			ChannelID:  event.ID,
			Name:       ch.Name,
			StreamToID: ch.StreamTo.StreamToID,
			Target:     ch.StreamTo.Target,
			Filter:     filter.Compile(config, ch, c.logger),
		})
	}
	return &ChannelEntry{
		ChannelID: event.ID,
		Config:    config,
		Routes:    routes,
		UpdatedAt: c.options.Clock.Now(),
	}
}

func (c *routeCache) putChannel(event *Event) {
	entry := c.buildChannelEntry(event)
	key := c.storageKey(event.ID, event.Channel)

	c.Lock()
	if oldKey, ok := c.keys[event.ID]; ok && oldKey != key {
		c.removeLocked(event.ID, oldKey)
	}
	previous := c.channels[key]
	c.channels[key] = entry
	c.keys[event.ID] = key
	if previous != nil {
		c.unlinkLocked(previous.ChannelID, previous)
		if previous.ChannelID != event.ID {
			delete(c.keys, previous.ChannelID)
		}
	}
	for _, r := range entry.Routes {
		ids, ok := c.byStreamTo[r.StreamToID]
		if !ok {
			ids = make(map[uint32]struct{})
			c.byStreamTo[r.StreamToID] = ids
		}
		ids[event.ID] = struct{}{}
	}
	count := len(c.channels)
	c.Unlock()

	if _, ok := c.channelTombstones[event.ID]; ok {
		delete(c.channelTombstones, event.ID)
		c.tombstonedChannels.Dec()
	}
	c.metricsScope.UpdateGauge(metrics.CacheChannelCount, float64(count))
	c.logger.Debug("channel cached",
		tag.ChannelID(event.ID),
		tag.CacheEvent(event.Type.String()),
		tag.Counter(len(entry.Routes)))
}

func (c *routeCache) deleteChannel(channelID uint32) {
	c.Lock()
	key, ok := c.keys[channelID]
	if ok {
		c.removeLocked(channelID, key)
	}
	count := len(c.channels)
	c.Unlock()

	if !ok {
		return
	}
	if _, exists := c.channelTombstones[channelID]; !exists {
		c.tombstonedChannels.Inc()
	}
	c.channelTombstones[channelID] = tombstone{id: channelID, deadline: c.options.Clock.Now().Add(c.options.ChannelGracePeriod)}
	c.metricsScope.UpdateGauge(metrics.CacheChannelCount, float64(count))
	c.logger.Debug("channel tombstoned", tag.ChannelID(channelID))
}

// removeLocked drops the entry of channelID stored under key, leaving a newer
// plat-keyed entry of another channel in place
func (c *routeCache) removeLocked(channelID, key uint32) {
	delete(c.keys, channelID)
	previous, ok := c.channels[key]
	if !ok || previous.ChannelID != channelID {
		return
	}
	delete(c.channels, key)
	c.unlinkLocked(channelID, previous)
}

func (c *routeCache) unlinkLocked(channelID uint32, previous *ChannelEntry) {
	if previous == nil {
		return
	}
	for _, r := range previous.Routes {
		if ids, ok := c.byStreamTo[r.StreamToID]; ok {
			delete(ids, channelID)
			if len(ids) == 0 {
				delete(c.byStreamTo, r.StreamToID)
			}
		}
	}
}

func (c *routeCache) putStreamTo(event *Event) {
	entry := &StreamToEntry{Config: event.StreamTo, UpdatedAt: c.options.Clock.Now()}

	c.Lock()
	c.streamTos[event.ID] = entry
	count := len(c.streamTos)
	c.Unlock()

	if _, ok := c.streamTombstones[event.ID]; ok {
		delete(c.streamTombstones, event.ID)
		c.tombstonedStreams.Dec()
	}
	c.metricsScope.UpdateGauge(metrics.CacheStreamToCount, float64(count))
	c.logger.Debug("stream-to cached", tag.StreamToID(event.ID), tag.CacheEvent(event.Type.String()))
}

func (c *routeCache) deleteStreamTo(streamToID uint32) {
	c.Lock()
	_, ok := c.streamTos[streamToID]
	delete(c.streamTos, streamToID)
	count := len(c.streamTos)
	c.Unlock()

	if !ok {
		return
	}
	if _, exists := c.streamTombstones[streamToID]; !exists {
		c.tombstonedStreams.Inc()
	}
	c.streamTombstones[streamToID] = tombstone{id: streamToID, deadline: c.options.Clock.Now().Add(c.options.StreamToGracePeriod)}
	c.metricsScope.UpdateGauge(metrics.CacheStreamToCount, float64(count))
	c.logger.Debug("stream-to tombstoned", tag.StreamToID(streamToID))
}

// sweep forgets tombstones whose grace period has passed
func (c *routeCache) sweep() {
	now := c.options.Clock.Now()
	swept := 0
	for id, t := range c.channelTombstones {
		if !now.Before(t.deadline) {
			delete(c.channelTombstones, id)
			c.tombstonedChannels.Dec()
			swept++
		}
	}
	for id, t := range c.streamTombstones {
		if !now.Before(t.deadline) {
			delete(c.streamTombstones, id)
			c.tombstonedStreams.Dec()
			swept++
		}
	}
	if swept > 0 {
		c.metricsScope.AddCounter(metrics.CacheTombstonesSwept, int64(swept))
		c.logger.Debug("tombstones swept", tag.Counter(swept))
	}
}

// storageKey is the platform number for plat-id channels in plat-id mode, the channel id otherwise.
// Platform numbers sit below every generated channel id.
func (c *routeCache) storageKey(channelID uint32, config *types.ChannelConfig) uint32 {
	if c.options.PlatIDMode && config.Metadata.IsPlatID {
		return routeid.PlatNum(channelID)
	}
	return channelID
}

func (c *routeCache) Channel(channelID uint32) (*ChannelEntry, bool) {
	c.RLock()
	defer c.RUnlock()
	if entry, ok := c.channels[channelID]; ok {
		return entry, true
	}
	if !c.options.PlatIDMode {
		return nil, false
	}
	entry, ok := c.channels[routeid.PlatNum(channelID)]
	return entry, ok
}

func (c *routeCache) Routes(channelID uint32) []*Route {
	entry, ok := c.Channel(channelID)
	if !ok {
		return nil
	}
	return entry.Routes
}

func (c *routeCache) ChannelIDsByStreamTo(streamToID uint32) []uint32 {
	c.RLock()
	ids := make([]uint32, 0, len(c.byStreamTo[streamToID]))
	for id := range c.byStreamTo[streamToID] {
		ids = append(ids, id)
	}
	c.RUnlock()
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (c *routeCache) StreamTo(streamToID uint32) (*StreamToEntry, bool) {
	c.RLock()
	entry, ok := c.streamTos[streamToID]
	c.RUnlock()
	return entry, ok
}

func (c *routeCache) Len() int {
	c.RLock()
	defer c.RUnlock()
	return len(c.channels)
}

func (c *routeCache) Stats() Stats {
	c.RLock()
	stats := Stats{Channels: len(c.channels), StreamTos: len(c.streamTos)}
	c.RUnlock()
	stats.ChannelTombstones = int(c.tombstonedChannels.Load())
	stats.StreamTombstones = int(c.tombstonedStreams.Load())
	stats.Dropped = c.dropped.Load()
	return stats
}

func (c *routeCache) Dispatch(channelID uint32, msg filter.Message) []Delivery {
	routes := c.Routes(channelID)
	var deliveries []Delivery
	for _, r := range routes {
		if !r.Filter.Admit(msg) {
			c.metricsScope.IncCounter(metrics.CacheDispatchRejected)
			continue
		}
		cluster, ok := c.StreamTo(r.StreamToID)
		if !ok {
			c.logger.Info("admitted route has no cached stream-to",
				tag.ChannelID(channelID),
				tag.ChannelName(r.Name),
				tag.StreamToID(r.StreamToID))
			continue
		}
		c.metricsScope.IncCounter(metrics.CacheDispatchAdmitted)
		deliveries = append(deliveries, Delivery{Route: r, Cluster: cluster})
	}
	return deliveries
}
