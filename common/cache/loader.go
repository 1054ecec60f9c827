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
	"context"
	"sync"
	"time"

	"go.uber.org/atomic"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/uber/streamroute/common"
	"github.com/uber/streamroute/common/coordination"
	"github.com/uber/streamroute/common/log"
	"github.com/uber/streamroute/common/log/tag"
	"github.com/uber/streamroute/common/metrics"
	"github.com/uber/streamroute/common/persistence"
	"github.com/uber/streamroute/common/types"
)

type (
	// Loader mirrors the stored channel and stream-to documents into a RouteCache.
	// It bootstraps from a full listing, then follows watches, and reloads
	// everything after the coordination session is re-established.
	Loader interface {
		common.Daemon
		// Resync lists both subtrees and enqueues every document, deleting ids that vanished
		Resync(ctx context.Context) error
	}

	// LoaderOptions tunes the loader
	LoaderOptions struct {
		// ResyncInterval is the minimum spacing between full reloads
		ResyncInterval time.Duration
		Concurrency    int
		Timeout        time.Duration
	}

	loader struct {
		status       *atomic.Int32
		ctx          context.Context
		cancel       context.CancelFunc
		shutdownWG   sync.WaitGroup
		resyncCh     chan struct{}
		limiter      *rate.Limiter
		options      LoaderOptions
		client       coordination.Client
		store        persistence.MetadataStore
		cache        RouteCache
		logger       log.Logger
		metricsScope metrics.Scope

		channels  *subtree
		streamTos *subtree
	}

	// subtree tracks the ids of one document kind and their armed watches
	subtree struct {
		kind EventKind
		root string
		node func(uint32) string
		read func(ctx context.Context, id uint32, t EventType) (*Event, error)

		// idLocks order the load and delete of one id so a slow read cannot resurrect a deleted document
		idLocks [idLockStripes]sync.Mutex

		sync.Mutex
		known       map[uint32]struct{}
		watched     map[uint32]struct{}
		rootWatched bool
	}
)

const idLockStripes = 32

var _ Loader = (*loader)(nil)

func (o LoaderOptions) withDefaults() LoaderOptions {
	if o.ResyncInterval <= 0 {
		o.ResyncInterval = common.DefaultResyncInterval
	}
	if o.Concurrency <= 0 {
		o.Concurrency = common.DefaultLoaderConcurrency
	}
	if o.Timeout <= 0 {
		o.Timeout = common.DefaultCoordinationTimeout
	}
	return o
}

// NewLoader creates a stopped loader feeding cache from store
func NewLoader(
	client coordination.Client,
	store persistence.MetadataStore,
	cache RouteCache,
	options LoaderOptions,
	logger log.Logger,
	metricsClient metrics.Client,
) Loader {
	options = options.withDefaults()
	ctx, cancel := context.WithCancel(context.Background())
	paths := store.Paths()
	l := &loader{
		status:       atomic.NewInt32(common.DaemonStatusInitialized),
		ctx:          ctx,
		cancel:       cancel,
		resyncCh:     make(chan struct{}, 1),
		limiter:      rate.NewLimiter(rate.Every(options.ResyncInterval), 1),
		options:      options,
		client:       client,
		store:        store,
		cache:        cache,
		logger:       logger.WithTags(tag.Component(tag.ComponentRouteLoader)),
		metricsScope: metricsClient.Scope(metrics.RouteLoaderScope),
	}
	l.channels = newSubtree(KindChannel, paths.ChannelRoot(), paths.Channel,
		func(ctx context.Context, id uint32, t EventType) (*Event, error) {
			config, err := store.ReadChannelConfig(ctx, id)
			if err != nil {
				return nil, err
			}
			return ChannelEvent(t, id, config), nil
		})
	l.streamTos = newSubtree(KindStreamTo, paths.StreamToRoot(), paths.StreamTo,
		func(ctx context.Context, id uint32, t EventType) (*Event, error) {
			config, err := store.ReadStreamToConfig(ctx, id)
			if err != nil {
				return nil, err
			}
			return StreamToEvent(t, id, config), nil
		})
	return l
}

func newSubtree(
	kind EventKind,
	root string,
	node func(uint32) string,
	read func(ctx context.Context, id uint32, t EventType) (*Event, error),
) *subtree {
	return &subtree{
		kind:    kind,
		root:    root,
		node:    node,
		read:    read,
		known:   make(map[uint32]struct{}),
		watched: make(map[uint32]struct{}),
	}
}

func (l *loader) Start() {
	if !l.status.CompareAndSwap(common.DaemonStatusInitialized, common.DaemonStatusStarted) {
		return
	}
	l.client.OnSession(l.handleSessionEvent)
	// the first sync is not rate limited
	l.limiter.Allow()
	if err := l.Resync(l.ctx); err != nil {
		l.logger.Error("initial route load failed, will retry", tag.Error(err))
		l.requestResync()
	}
	l.shutdownWG.Add(1)
	go l.resyncLoop()
	l.logger.Info("route loader started", tag.Lifecycle(tag.LifeCycleStarted))
}

func (l *loader) Stop() {
	if !l.status.CompareAndSwap(common.DaemonStatusStarted, common.DaemonStatusStopped) {
		return
	}
	l.cancel()
	l.shutdownWG.Wait()
	l.logger.Info("route loader stopped", tag.Lifecycle(tag.LifeCycleStopped))
}

func (l *loader) handleSessionEvent(event coordination.Event) {
	if event.Type != coordination.EventSessionReconnected {
		return
	}
	l.logger.Info("coordination session re-established, scheduling reload")
	// watches of the expired session are gone
	l.channels.resetWatches()
	l.streamTos.resetWatches()
	l.requestResync()
}

func (l *loader) requestResync() {
	select {
	case l.resyncCh <- struct{}{}:
	default:
	}
}

func (l *loader) resyncLoop() {
	defer l.shutdownWG.Done()
	for {
		select {
		case <-l.ctx.Done():
			return
		case <-l.resyncCh:
			if err := l.limiter.Wait(l.ctx); err != nil {
				return
			}
			if err := l.Resync(l.ctx); err != nil {
				l.logger.Error("route reload failed, will retry", tag.Error(err))
				l.requestResync()
			}
		}
	}
}

func (l *loader) Resync(ctx context.Context) error {
	l.metricsScope.IncCounter(metrics.LoaderResyncs)
	if err := l.syncSubtree(ctx, l.streamTos); err != nil {
		return err
	}
	if err := l.syncSubtree(ctx, l.channels); err != nil {
		return err
	}
	stats := l.cache.Stats()
	l.logger.Info("route reload enqueued",
		tag.Counter(stats.Channels),
		tag.Number(int64(stats.StreamTos)))
	return nil
}

// syncSubtree lists the ids of a subtree, loads new and known ids, and deletes vanished ones.
// Only listing failures are returned; per-document failures are logged.
func (l *loader) syncSubtree(ctx context.Context, s *subtree) error {
	listCtx, cancel := context.WithTimeout(ctx, l.options.Timeout)
	watch := l.armRootWatch(s)
	children, err := l.client.Children(listCtx, s.root, watch)
	cancel()
	if err != nil {
		if watch != nil {
			s.Lock()
			s.rootWatched = false
			s.Unlock()
		}
		if coordination.IsNodeNotFound(err) {
			return nil
		}
		return err
	}

	current := make(map[uint32]struct{}, len(children))
	for _, child := range children {
		if id, ok := persistence.ParseID(child); ok {
			current[id] = struct{}{}
		}
	}

	s.Lock()
	var vanished []uint32
	for id := range s.known {
		if _, ok := current[id]; !ok {
			vanished = append(vanished, id)
			delete(s.known, id)
		}
	}
	s.Unlock()
	for _, id := range vanished {
		lock := s.idLock(id)
		lock.Lock()
		l.enqueueDelete(s, id)
		lock.Unlock()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.options.Concurrency)
	for id := range current {
		id := id
		g.Go(func() error {
			l.load(gctx, s, id)
			return nil
		})
	}
	return g.Wait()
}

// armRootWatch returns a children watcher unless one is already armed
func (l *loader) armRootWatch(s *subtree) coordination.Watcher {
	s.Lock()
	defer s.Unlock()
	if s.rootWatched {
		return nil
	}
	s.rootWatched = true
	return func(event coordination.Event) {
		s.Lock()
		s.rootWatched = false
		s.Unlock()
		l.metricsScope.IncCounter(metrics.LoaderWatchEvents)
		if l.ctx.Err() != nil {
			return
		}
		if err := l.syncSubtree(l.ctx, s); err != nil {
			l.logger.Warn("failed to follow subtree change", tag.ZKPath(s.root), tag.Error(err))
			l.requestResync()
		}
	}
}

// armNodeWatch returns a data watcher for the document node unless one is already armed
func (l *loader) armNodeWatch(s *subtree, id uint32) coordination.Watcher {
	s.Lock()
	defer s.Unlock()
	if _, ok := s.watched[id]; ok {
		return nil
	}
	s.watched[id] = struct{}{}
	return func(event coordination.Event) {
		s.Lock()
		delete(s.watched, id)
		s.Unlock()
		l.metricsScope.IncCounter(metrics.LoaderWatchEvents)
		if l.ctx.Err() != nil {
			return
		}
		switch event.Type {
		case coordination.EventNodeDeleted:
			lock := s.idLock(id)
			lock.Lock()
			if s.forget(id) {
				l.enqueueDelete(s, id)
			}
			lock.Unlock()
		default:
			l.load(l.ctx, s, id)
		}
	}
}

// load reads one document and enqueues it. Nodes still holding the placeholder are
// mid-write; their final write fires the armed watch.
func (l *loader) load(ctx context.Context, s *subtree, id uint32) {
	lock := s.idLock(id)
	lock.Lock()
	defer lock.Unlock()
	ctx, cancel := context.WithTimeout(ctx, l.options.Timeout)
	defer cancel()

	path := s.node(id)
	watch := l.armNodeWatch(s, id)
	data, err := l.client.Get(ctx, path, watch)
	if err != nil {
		s.disarm(id, watch)
		if coordination.IsNodeNotFound(err) {
			if s.forget(id) {
				l.enqueueDelete(s, id)
			}
			return
		}
		l.readFailed(s, id, err)
		return
	}
	if string(data) == common.PlaceholderValue {
		return
	}

	s.Lock()
	_, known := s.known[id]
	s.Unlock()
	eventType := EventCreated
	if known {
		eventType = EventChanged
	}

	event, err := s.read(ctx, id, eventType)
	if err != nil {
		if types.IsEntityNotExistsError(err) {
			if s.forget(id) {
				l.enqueueDelete(s, id)
			}
			return
		}
		l.readFailed(s, id, err)
		return
	}
	s.Lock()
	s.known[id] = struct{}{}
	s.Unlock()
	l.cache.Enqueue(event)
}

func (l *loader) readFailed(s *subtree, id uint32, err error) {
	l.metricsScope.Tagged(metrics.EventKindTag(s.kind.String())).IncCounter(metrics.LoaderReadFailures)
	l.logger.Warn("failed to load document",
		tag.Key(s.kind.String()),
		tag.Number(int64(id)),
		tag.Error(err))
}

func (l *loader) enqueueDelete(s *subtree, id uint32) {
	l.cache.Enqueue(&Event{Type: EventDeleted, Kind: s.kind, ID: id})
}

func (s *subtree) idLock(id uint32) *sync.Mutex {
	return &s.idLocks[id%idLockStripes]
}

func (s *subtree) resetWatches() {
	s.Lock()
	defer s.Unlock()
	s.watched = make(map[uint32]struct{})
	s.rootWatched = false
}

// disarm clears the watch flag when the read that would have armed it failed
func (s *subtree) disarm(id uint32, watch coordination.Watcher) {
	if watch == nil {
		return
	}
	s.Lock()
	delete(s.watched, id)
	s.Unlock()
}

func (s *subtree) forget(id uint32) bool {
	s.Lock()
	defer s.Unlock()
	_, ok := s.known[id]
	delete(s.known, id)
	return ok
}
