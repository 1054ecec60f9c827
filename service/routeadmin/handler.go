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

//go:generate mockgen -package $GOPACKAGE -source $GOFILE -destination handler_mock.go -self_package github.com/uber/streamroute/service/routeadmin

package routeadmin

import (
	"context"

	"github.com/uber-go/tally"
	"go.uber.org/multierr"

	"github.com/uber/streamroute/common/log"
	"github.com/uber/streamroute/common/log/tag"
	"github.com/uber/streamroute/common/messaging/kafka"
	"github.com/uber/streamroute/common/metrics"
	"github.com/uber/streamroute/common/persistence"
	"github.com/uber/streamroute/common/routeid"
	"github.com/uber/streamroute/common/types"
)

type (
	// Handler serves the channel and stream-to management operations independent of wire protocol
	Handler interface {
		AddChannel(ctx context.Context, request *AddChannelRequest) (*AddChannelResponse, error)
		UpdateChannel(ctx context.Context, request *UpdateChannelRequest) error
		DeleteChannel(ctx context.Context, request *DeleteChannelRequest) error
		QueryChannel(ctx context.Context, request *QueryChannelRequest) ([]*types.ChannelConfig, error)

		AddStreamTo(ctx context.Context, request *AddStreamToRequest) (*AddStreamToResponse, error)
		UpdateStreamTo(ctx context.Context, request *UpdateStreamToRequest) error
		DeleteStreamTo(ctx context.Context, request *DeleteStreamToRequest) error
		QueryStreamTo(ctx context.Context, request *QueryStreamToRequest) ([]*types.StreamToClusterConfig, error)

		QueryChannelIDs(ctx context.Context, request *QueryIndexRequest) (*QueryIndexResponse, error)
		QueryStreamToIDs(ctx context.Context, request *QueryIndexRequest) (*QueryIndexResponse, error)
		RebuildIndices(ctx context.Context) (*RebuildIndicesResponse, error)
	}

	handlerImpl struct {
		store          persistence.MetadataStore
		allocator      routeid.Allocator
		kafkaValidator kafka.Validator
		metricsClient  metrics.Client
		logger         log.Logger
	}
)

var _ Handler = (*handlerImpl)(nil)

var (
	errRequestNotSet = &types.BadRequestError{Message: "request is not set"}
)

// NewHandler creates the management handler
func NewHandler(
	store persistence.MetadataStore,
	allocator routeid.Allocator,
	kafkaValidator kafka.Validator,
	metricsClient metrics.Client,
	logger log.Logger,
) Handler {
	return &handlerImpl{
		store:          store,
		allocator:      allocator,
		kafkaValidator: kafkaValidator,
		metricsClient:  metricsClient,
		logger:         logger.WithTags(tag.Component(tag.ComponentRouteAdmin)),
	}
}

func (h *handlerImpl) startRequestProfile(scope metrics.ScopeIdx, platName string) (metrics.Scope, tally.Stopwatch) {
	metricsScope := h.metricsClient.Scope(scope, metrics.PlatNameTag(platName))
	sw := metricsScope.StartTimer(metrics.AdminLatency)
	metricsScope.IncCounter(metrics.AdminRequests)
	return metricsScope, sw
}

// error classifies a failed request. Caller mistakes are counted, not-found is an
// ordinary answer and everything else is an outage worth an error log.
func (h *handlerImpl) error(err error, scope metrics.Scope, logger log.Logger) error {
	switch {
	case types.IsBadRequestError(err),
		types.IsAccessDeniedError(err),
		types.IsRangeError(err),
		types.IsEntityAlreadyExistsError(err):
		scope.IncCounter(metrics.AdminBadRequests)
		logger.Info("request rejected", tag.Error(err))
	case types.IsEntityNotExistsError(err):
		logger.Info("request target not found", tag.Error(err))
	default:
		scope.IncCounter(metrics.AdminFailures)
		logger.Error("request failed", tag.Error(err))
	}
	return err
}

// indexFailed records best-effort index maintenance failures without failing the request
func (h *handlerImpl) indexFailed(err error, scope metrics.Scope, logger log.Logger) {
	if err == nil {
		return
	}
	scope.AddCounter(metrics.AdminIndexFailures, int64(len(multierr.Errors(err))))
	logger.Warn("index maintenance incomplete", tag.Error(err))
}

func (h *handlerImpl) RebuildIndices(ctx context.Context) (retResp *RebuildIndicesResponse, retError error) {
	defer log.CapturePanic(h.logger, &retError)
	scope := h.metricsClient.Scope(metrics.MetadataStoreRebuildScope)
	sw := scope.StartTimer(metrics.RebuildLatency)
	defer sw.Stop()

	report, err := h.store.RebuildIndices(ctx)
	if err != nil {
		return nil, h.error(err, scope, h.logger)
	}
	scope.AddCounter(metrics.RebuildFailures, int64(report.Failures))
	return &RebuildIndicesResponse{
		Channels:  report.Channels,
		StreamTos: report.StreamTos,
		Failures:  report.Failures,
	}, nil
}

func checkPlatName(platName string) error {
	if platName == "" {
		return &types.BadRequestError{Message: "plat_name is not set"}
	}
	if _, ok := routeid.PlatformID(platName); !ok {
		return &types.BadRequestError{Message: "plat_name " + platName + " is not supported"}
	}
	return nil
}
