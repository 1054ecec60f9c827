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

package streamroute

import (
	"context"
	"fmt"
	"time"

	"github.com/uber/streamroute/common"
	"github.com/uber/streamroute/common/cache"
	"github.com/uber/streamroute/common/config"
	"github.com/uber/streamroute/common/coordination"
	"github.com/uber/streamroute/common/log"
	"github.com/uber/streamroute/common/log/tag"
	"github.com/uber/streamroute/common/messaging/kafka"
	"github.com/uber/streamroute/common/metrics"
	"github.com/uber/streamroute/common/persistence"
	"github.com/uber/streamroute/common/routeid"
	"github.com/uber/streamroute/service/routeadmin"
)

const connectionCheckInterval = 100 * time.Millisecond

type (
	server struct {
		cfg          *config.Config
		logger       log.Logger
		client       coordination.Client
		store        persistence.MetadataStore
		routeCache   cache.RouteCache
		loader       cache.Loader
		admin        *routeadmin.Server
		scheduler    *routeadmin.RebuildScheduler
		closeMetrics func()
	}
)

var _ common.Daemon = (*server)(nil)

// newServer wires every component on top of an open coordination client.
// The tree base nodes are created before it returns.
func newServer(ctx context.Context, cfg *config.Config, client coordination.Client, logger log.Logger) (*server, error) {
	connectCtx, cancel := context.WithTimeout(ctx, cfg.ZooKeeper.ConnectTimeout)
	defer cancel()
	if err := coordination.WaitForConnection(connectCtx, client, connectionCheckInterval); err != nil {
		return nil, fmt.Errorf("coordination service is not reachable: %w", err)
	}

	scope, closeMetrics := cfg.Metrics.NewScope(logger)
	metricsClient := metrics.NewClient(scope)

	store := persistence.NewMetadataStore(client, persistence.NewPaths(cfg.Paths.Root, cfg.Paths.PlatRegistry), logger)
	if err := store.Init(ctx); err != nil {
		closeMetrics()
		return nil, fmt.Errorf("failed to initialize the metadata tree: %w", err)
	}

	routeCache := cache.NewRouteCache(cache.Options{
		QueueSize:           cfg.Cache.QueueSize,
		ChannelGracePeriod:  cfg.Cache.ChannelGracePeriod,
		StreamToGracePeriod: cfg.Cache.StreamToGracePeriod,
		SweepInterval:       cfg.Cache.SweepInterval,
		PlatIDMode:          cfg.Cache.PlatIDMode,
	}, logger, metricsClient)
	loader := cache.NewLoader(client, store, routeCache, cache.LoaderOptions{
		ResyncInterval: cfg.Loader.ResyncInterval,
		Concurrency:    cfg.Loader.Concurrency,
		Timeout:        cfg.Loader.Timeout,
	}, logger, metricsClient)

	handler := routeadmin.NewHandler(
		store,
		routeid.NewAllocator(store, logger),
		kafka.NewValidator(kafka.ValidatorOptions{
			ProbeBrokers: cfg.Kafka.ProbeBrokers,
			DialTimeout:  cfg.Kafka.DialTimeout,
		}, logger),
		metricsClient,
		logger,
	)
	var (
		scheduler *routeadmin.RebuildScheduler
		err       error
	)
	if cfg.Admin.RebuildSchedule != "" {
		scheduler, err = routeadmin.NewRebuildScheduler(cfg.Admin.RebuildSchedule, handler, cfg.Admin.RebuildTimeout, logger)
		if err != nil {
			closeMetrics()
			return nil, err
		}
	}
	admin, err := routeadmin.NewServer(cfg.Admin.ListenAddress, handler, cfg.Admin.RequestTimeout, logger)
	if err != nil {
		closeMetrics()
		return nil, fmt.Errorf("failed to bind the admin listener: %w", err)
	}

	return &server{
		cfg:          cfg,
		logger:       logger,
		client:       client,
		store:        store,
		routeCache:   routeCache,
		loader:       loader,
		admin:        admin,
		scheduler:    scheduler,
		closeMetrics: closeMetrics,
	}, nil
}

// Start starts the cache before the loader feeding it
func (s *server) Start() {
	s.logger.Info("starting streamroute server", tag.Lifecycle(tag.LifeCycleStarting))
	s.routeCache.Start()
	s.loader.Start()
	s.admin.Start()
	if s.scheduler != nil {
		s.scheduler.Start()
	}
	s.logger.Info("streamroute server started", tag.Lifecycle(tag.LifeCycleStarted), tag.Address(s.admin.Addr()))
}

// Stop stops in the reverse order of Start and closes the session last
func (s *server) Stop() {
	s.logger.Info("stopping streamroute server", tag.Lifecycle(tag.LifeCycleStopping))
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
	s.admin.Stop()
	s.loader.Stop()
	s.routeCache.Stop()
	s.client.Close()
	s.closeMetrics()
	s.logger.Info("streamroute server stopped", tag.Lifecycle(tag.LifeCycleStopped))
}
