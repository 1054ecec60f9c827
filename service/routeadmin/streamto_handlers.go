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
	"reflect"
	"strconv"

	"github.com/uber/streamroute/common/log"
	"github.com/uber/streamroute/common/log/tag"
	"github.com/uber/streamroute/common/metrics"
	"github.com/uber/streamroute/common/persistence"
	"github.com/uber/streamroute/common/types"
)

// AddStreamTo allocates a stream-to id and stores its cluster document and indices
func (h *handlerImpl) AddStreamTo(
	ctx context.Context,
	request *AddStreamToRequest,
) (retResp *AddStreamToResponse, retError error) {
	defer log.CapturePanic(h.logger, &retError)
	if request == nil {
		scope, sw := h.startRequestProfile(metrics.AdminAddStreamToScope, "")
		defer sw.Stop()
		return nil, h.error(errRequestNotSet, scope, h.logger)
	}

	platName := request.Metadata.PlatName
	scope, sw := h.startRequestProfile(metrics.AdminAddStreamToScope, platName)
	defer sw.Stop()
	scope = scope.Tagged(metrics.ReportModeTag(string(request.StreamTo.ReportMode())))
	logger := h.logger.WithTags(
		tag.PlatName(platName),
		tag.ReportMode(string(request.StreamTo.ReportMode())),
		tag.Operator(request.Operation.OperatorName),
	)

	config := &types.StreamToClusterConfig{
		Metadata: request.Metadata,
		StreamTo: request.StreamTo,
	}
	if err := checkPlatName(platName); err != nil {
		return nil, h.error(err, scope, logger)
	}
	if err := config.Validate(); err != nil {
		return nil, h.error(err, scope, logger)
	}
	if err := h.validateBackend(ctx, &config.StreamTo); err != nil {
		return nil, h.error(err, scope, logger)
	}

	streamToID, err := h.allocator.GenerateStreamToClusterID(ctx, platName)
	if err != nil {
		return nil, h.error(err, scope, logger)
	}
	config.Metadata.StreamToID = streamToID
	logger = logger.WithTags(tag.StreamToID(streamToID))

	if err := h.store.CreateStreamToConfig(ctx, config); err != nil {
		return nil, h.error(err, scope, logger)
	}
	h.indexFailed(h.store.CreateStreamToIndices(ctx, config), scope, logger)

	logger.Info("stream-to added")
	return &AddStreamToResponse{StreamToID: streamToID}, nil
}

// UpdateStreamTo replaces the cluster document of a stream-to
func (h *handlerImpl) UpdateStreamTo(
	ctx context.Context,
	request *UpdateStreamToRequest,
) (retError error) {
	defer log.CapturePanic(h.logger, &retError)
	if request == nil {
		scope, sw := h.startRequestProfile(metrics.AdminUpdateStreamToScope, "")
		defer sw.Stop()
		return h.error(errRequestNotSet, scope, h.logger)
	}

	condition := request.Condition
	scope, sw := h.startRequestProfile(metrics.AdminUpdateStreamToScope, condition.PlatName)
	defer sw.Stop()
	logger := h.logger.WithTags(
		tag.StreamToID(condition.StreamToID),
		tag.PlatName(condition.PlatName),
		tag.Operator(request.Operation.OperatorName),
	)

	if err := validateStreamToCondition(&condition); err != nil {
		return h.error(err, scope, logger)
	}
	if err := request.StreamTo.Validate(); err != nil {
		return h.error(err, scope, logger)
	}
	if err := h.validateBackend(ctx, &request.StreamTo); err != nil {
		return h.error(err, scope, logger)
	}

	existing, err := h.store.ReadStreamToConfig(ctx, condition.StreamToID)
	if err != nil {
		return h.error(err, scope, logger)
	}
	if err := persistence.CheckStreamToOwner(existing, condition.PlatName); err != nil {
		return h.error(err, scope, logger)
	}

	updated := &types.StreamToClusterConfig{
		Metadata: existing.Metadata,
		StreamTo: request.StreamTo,
	}
	if condition.Label != nil {
		updated.Metadata.Label = condition.Label
	}
	if err := h.store.UpdateStreamToConfig(ctx, updated); err != nil {
		return h.error(err, scope, logger)
	}

	if existing.StreamTo.ReportMode() != updated.StreamTo.ReportMode() ||
		!reflect.DeepEqual(existing.Metadata.Label, updated.Metadata.Label) {
		h.indexFailed(h.store.DeleteStreamToIndices(ctx, existing), scope, logger)
	}
	h.indexFailed(h.store.CreateStreamToIndices(ctx, updated), scope, logger)

	logger.Info("stream-to updated", tag.ReportMode(string(updated.StreamTo.ReportMode())))
	return nil
}

// DeleteStreamTo removes a stream-to id that no channel references any more
func (h *handlerImpl) DeleteStreamTo(
	ctx context.Context,
	request *DeleteStreamToRequest,
) (retError error) {
	defer log.CapturePanic(h.logger, &retError)
	if request == nil {
		scope, sw := h.startRequestProfile(metrics.AdminDeleteStreamToScope, "")
		defer sw.Stop()
		return h.error(errRequestNotSet, scope, h.logger)
	}

	condition := request.Condition
	scope, sw := h.startRequestProfile(metrics.AdminDeleteStreamToScope, condition.PlatName)
	defer sw.Stop()
	logger := h.logger.WithTags(
		tag.StreamToID(condition.StreamToID),
		tag.PlatName(condition.PlatName),
		tag.Operator(request.Operation.OperatorName),
	)

	if err := validateStreamToCondition(&condition); err != nil {
		return h.error(err, scope, logger)
	}

	existing, err := h.store.ReadStreamToConfig(ctx, condition.StreamToID)
	if err != nil {
		return h.error(err, scope, logger)
	}
	if err := persistence.CheckStreamToOwner(existing, condition.PlatName); err != nil {
		return h.error(err, scope, logger)
	}

	referencing, err := h.store.QueryChannelIDs(ctx, persistence.IndexStreamToID, strconv.FormatUint(uint64(condition.StreamToID), 10))
	if err != nil {
		return h.error(err, scope, logger)
	}
	if len(referencing) > 0 {
		return h.error(&types.EntityAlreadyExistsError{
			Message: fmt.Sprintf("stream_to_id %d is still referenced by channel ids %v", condition.StreamToID, referencing),
		}, scope, logger)
	}

	if err := h.store.DeleteStreamToID(ctx, condition.StreamToID); err != nil {
		return h.error(err, scope, logger)
	}
	h.indexFailed(h.store.DeleteStreamToIndices(ctx, existing), scope, logger)

	logger.Info("stream-to deleted")
	return nil
}

// QueryStreamTo reads one stream-to, or every stream-to the platform owns when no id is given
func (h *handlerImpl) QueryStreamTo(
	ctx context.Context,
	request *QueryStreamToRequest,
) (retResp []*types.StreamToClusterConfig, retError error) {
	defer log.CapturePanic(h.logger, &retError)
	if request == nil {
		scope, sw := h.startRequestProfile(metrics.AdminQueryStreamToScope, "")
		defer sw.Stop()
		return nil, h.error(errRequestNotSet, scope, h.logger)
	}

	condition := request.Condition
	scope, sw := h.startRequestProfile(metrics.AdminQueryStreamToScope, condition.PlatName)
	defer sw.Stop()
	logger := h.logger.WithTags(tag.StreamToID(condition.StreamToID), tag.PlatName(condition.PlatName))

	if condition.PlatName == "" {
		return nil, h.error(&types.BadRequestError{Message: "condition.plat_name is not set"}, scope, logger)
	}

	if condition.StreamToID != 0 {
		config, err := h.store.ReadStreamToConfig(ctx, condition.StreamToID)
		if err != nil {
			return nil, h.error(err, scope, logger)
		}
		if err := persistence.CheckStreamToOwner(config, condition.PlatName); err != nil {
			return nil, h.error(err, scope, logger)
		}
		return []*types.StreamToClusterConfig{config}, nil
	}

	ids, err := h.store.QueryStreamToIDs(ctx, persistence.IndexPlatName, condition.PlatName)
	if err != nil {
		return nil, h.error(err, scope, logger)
	}
	configs := make([]*types.StreamToClusterConfig, 0, len(ids))
	for _, id := range ids {
		config, err := h.store.ReadStreamToConfig(ctx, id)
		if types.IsEntityNotExistsError(err) {
			logger.Warn("plat_name index points at a missing stream-to", tag.StreamToID(id))
			continue
		}
		if err != nil {
			return nil, h.error(err, scope, logger)
		}
		if config.Metadata.PlatName != condition.PlatName {
			continue
		}
		configs = append(configs, config)
	}
	return configs, nil
}

// validateBackend runs the backend specific checks that need more than the document itself
func (h *handlerImpl) validateBackend(ctx context.Context, cluster *types.StreamToCluster) error {
	if k, ok := cluster.Backend.(*types.KafkaCluster); ok {
		return h.kafkaValidator.ValidateCluster(ctx, k)
	}
	return nil
}

func validateStreamToCondition(condition *StreamToCondition) error {
	if condition.StreamToID == 0 {
		return &types.BadRequestError{Message: "condition.stream_to_id is not set"}
	}
	if condition.PlatName == "" {
		return &types.BadRequestError{Message: "condition.plat_name is not set"}
	}
	return nil
}
