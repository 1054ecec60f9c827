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

	"github.com/uber/streamroute/common"
	"github.com/uber/streamroute/common/log"
	"github.com/uber/streamroute/common/log/tag"
	"github.com/uber/streamroute/common/metrics"
	"github.com/uber/streamroute/common/persistence"
	"github.com/uber/streamroute/common/routeid"
	"github.com/uber/streamroute/common/types"
)

// AddChannel allocates a channel id and stores its config and indices
func (h *handlerImpl) AddChannel(
	ctx context.Context,
	request *AddChannelRequest,
) (retResp *AddChannelResponse, retError error) {
	defer log.CapturePanic(h.logger, &retError)
	if request == nil {
		scope, sw := h.startRequestProfile(metrics.AdminAddChannelScope, "")
		defer sw.Stop()
		return nil, h.error(errRequestNotSet, scope, h.logger)
	}

	platName := request.Metadata.PlatName
	scope, sw := h.startRequestProfile(metrics.AdminAddChannelScope, platName)
	defer sw.Stop()
	logger := h.logger.WithTags(tag.PlatName(platName), tag.Operator(request.Operation.OperatorName))

	config := &types.ChannelConfig{
		Metadata: request.Metadata,
		Channels: request.Channels,
		Filters:  request.Filters,
	}
	if err := validateNewChannel(config); err != nil {
		return nil, h.error(err, scope, logger)
	}
	if config.Metadata.ChannelID != 0 {
		if err := routeid.CheckExplicitChannelID(config.Metadata.ChannelID); err != nil {
			return nil, h.error(err, scope, logger)
		}
	}

	if config.Metadata.PlatName == persistence.TglogPlatName {
		channelID, found, err := h.store.ReadTglogChannelID(ctx, config.Metadata.Label)
		if err != nil {
			return nil, h.error(err, scope, logger)
		}
		if found {
			logger.Info("tglog business already has a channel id", tag.ChannelID(channelID))
			return &AddChannelResponse{ChannelID: channelID}, nil
		}
	}

	if err := h.checkStreamTosExist(ctx, config.StreamToIDs()); err != nil {
		return nil, h.error(err, scope, logger)
	}

	channelID := config.Metadata.ChannelID
	if channelID != 0 {
		if err := h.allocator.ValidateExplicitChannelID(ctx, channelID); err != nil {
			return nil, h.error(err, scope, logger)
		}
	} else {
		var err error
		if channelID, err = h.allocator.GenerateChannelID(ctx, platName); err != nil {
			return nil, h.error(err, scope, logger)
		}
	}
	config.Metadata.ChannelID = channelID
	logger = logger.WithTags(tag.ChannelID(channelID))

	if err := h.store.CreateChannelConfig(ctx, config); err != nil {
		return nil, h.error(err, scope, logger)
	}
	h.indexFailed(h.store.CreateChannelIndices(ctx, config), scope, logger)

	logger.Info("channel added", tag.Counter(len(config.Channels)))
	return &AddChannelResponse{ChannelID: channelID}, nil
}

// UpdateChannel merges the specification into the stored channel by route and filter name
func (h *handlerImpl) UpdateChannel(
	ctx context.Context,
	request *UpdateChannelRequest,
) (retError error) {
	defer log.CapturePanic(h.logger, &retError)
	if request == nil {
		scope, sw := h.startRequestProfile(metrics.AdminUpdateChannelScope, "")
		defer sw.Stop()
		return h.error(errRequestNotSet, scope, h.logger)
	}

	condition := request.Condition
	scope, sw := h.startRequestProfile(metrics.AdminUpdateChannelScope, condition.PlatName)
	defer sw.Stop()
	logger := h.logger.WithTags(
		tag.ChannelID(condition.ChannelID),
		tag.PlatName(condition.PlatName),
		tag.Operator(request.Operation.OperatorName),
	)

	spec := &types.ChannelConfig{
		Channels: request.Specification.Channels,
		Filters:  request.Specification.Filters,
	}
	if err := validateChannelCondition(&condition); err != nil {
		return h.error(err, scope, logger)
	}
	if err := spec.ValidateSpecification(); err != nil {
		return h.error(err, scope, logger)
	}
	if err := checkStreamToIDsSet(spec.Channels); err != nil {
		return h.error(err, scope, logger)
	}

	config, err := h.store.ReadChannelConfig(ctx, condition.ChannelID)
	if err != nil {
		return h.error(err, scope, logger)
	}
	if err := persistence.CheckChannelOwner(config, condition.PlatName); err != nil {
		return h.error(err, scope, logger)
	}

	previous := types.ChannelConfig{
		Metadata: config.Metadata,
		Channels: append([]*types.Channel(nil), config.Channels...),
		Filters:  append([]*types.StreamFilter(nil), config.Filters...),
	}
	previousStreamToIDs := config.StreamToIDs()
	config.Merge(spec.Channels, spec.Filters)
	if condition.Label != nil {
		config.Metadata.Label = condition.Label
	}
	if err := config.CheckFilterReferences(); err != nil {
		return h.error(err, scope, logger)
	}
	if err := h.checkStreamTosExist(ctx, missingFrom(config.StreamToIDs(), previousStreamToIDs)); err != nil {
		return h.error(err, scope, logger)
	}

	if err := h.store.UpdateChannelConfig(ctx, config); err != nil {
		return h.error(err, scope, logger)
	}

	if condition.Label != nil {
		h.indexFailed(h.store.DeleteChannelIndices(ctx, &previous), scope, logger)
	} else if stale := missingFrom(previousStreamToIDs, config.StreamToIDs()); len(stale) > 0 {
		h.indexFailed(h.store.DeleteStreamToLinks(ctx, condition.ChannelID, stale), scope, logger)
	}
	h.indexFailed(h.store.CreateChannelIndices(ctx, config), scope, logger)

	logger.Info("channel updated", tag.Counter(len(config.Channels)))
	return nil
}

// DeleteChannel removes a channel id, or only the routes and filters named by the specification
func (h *handlerImpl) DeleteChannel(
	ctx context.Context,
	request *DeleteChannelRequest,
) (retError error) {
	defer log.CapturePanic(h.logger, &retError)
	if request == nil {
		scope, sw := h.startRequestProfile(metrics.AdminDeleteChannelScope, "")
		defer sw.Stop()
		return h.error(errRequestNotSet, scope, h.logger)
	}

	condition := request.Condition
	scope, sw := h.startRequestProfile(metrics.AdminDeleteChannelScope, condition.PlatName)
	defer sw.Stop()
	method := request.Operation.Method
	if method == "" {
		method = common.DeleteMethodAll
	}
	logger := h.logger.WithTags(
		tag.ChannelID(condition.ChannelID),
		tag.PlatName(condition.PlatName),
		tag.Operator(request.Operation.OperatorName),
		tag.DeleteMethod(method),
	)

	if err := validateChannelCondition(&condition); err != nil {
		return h.error(err, scope, logger)
	}
	routeNames, filterNames := specificationNames(&request.Specification)
	switch method {
	case common.DeleteMethodAll:
	case common.DeleteMethodSpecification:
		if len(routeNames) == 0 && len(filterNames) == 0 {
			return h.error(&types.BadRequestError{Message: "specification names neither route nor stream_filters"}, scope, logger)
		}
	default:
		return h.error(&types.BadRequestError{
			Message: fmt.Sprintf("operation.method %q must be %s or %s", method, common.DeleteMethodAll, common.DeleteMethodSpecification),
		}, scope, logger)
	}

	config, err := h.store.ReadChannelConfig(ctx, condition.ChannelID)
	if err != nil {
		return h.error(err, scope, logger)
	}
	if err := persistence.CheckChannelOwner(config, condition.PlatName); err != nil {
		return h.error(err, scope, logger)
	}

	if method == common.DeleteMethodAll {
		if err := h.store.DeleteChannelID(ctx, condition.ChannelID); err != nil {
			return h.error(err, scope, logger)
		}
		h.indexFailed(h.store.DeleteChannelIndices(ctx, config), scope, logger)
		logger.Info("channel deleted")
		return nil
	}

	remaining := withoutNames(config, routeNames, filterNames)
	if err := remaining.CheckFilterReferences(); err != nil {
		return h.error(err, scope, logger)
	}
	if err := h.store.DeleteBySpecification(ctx, condition.ChannelID, routeNames, filterNames); err != nil {
		return h.error(err, scope, logger)
	}
	if stale := missingFrom(config.StreamToIDs(), remaining.StreamToIDs()); len(stale) > 0 {
		h.indexFailed(h.store.DeleteStreamToLinks(ctx, condition.ChannelID, stale), scope, logger)
	}
	logger.Info("channel routes deleted", tag.Counter(len(routeNames)+len(filterNames)))
	return nil
}

// QueryChannel reads one channel, or every channel the platform owns when no id is given
func (h *handlerImpl) QueryChannel(
	ctx context.Context,
	request *QueryChannelRequest,
) (retResp []*types.ChannelConfig, retError error) {
	defer log.CapturePanic(h.logger, &retError)
	if request == nil {
		scope, sw := h.startRequestProfile(metrics.AdminQueryChannelScope, "")
		defer sw.Stop()
		return nil, h.error(errRequestNotSet, scope, h.logger)
	}

	condition := request.Condition
	scope, sw := h.startRequestProfile(metrics.AdminQueryChannelScope, condition.PlatName)
	defer sw.Stop()
	logger := h.logger.WithTags(tag.ChannelID(condition.ChannelID), tag.PlatName(condition.PlatName))

	if condition.PlatName == "" {
		return nil, h.error(&types.BadRequestError{Message: "condition.plat_name is not set"}, scope, logger)
	}

	if condition.ChannelID != 0 {
		config, err := h.store.ReadChannelConfig(ctx, condition.ChannelID)
		if err != nil {
			return nil, h.error(err, scope, logger)
		}
		if err := persistence.CheckChannelOwner(config, condition.PlatName); err != nil {
			return nil, h.error(err, scope, logger)
		}
		return []*types.ChannelConfig{config}, nil
	}

	ids, err := h.store.QueryChannelIDs(ctx, persistence.IndexPlatName, condition.PlatName)
	if err != nil {
		return nil, h.error(err, scope, logger)
	}
	configs := make([]*types.ChannelConfig, 0, len(ids))
	for _, id := range ids {
		config, err := h.store.ReadChannelConfig(ctx, id)
		if types.IsEntityNotExistsError(err) {
			logger.Warn("plat_name index points at a missing channel", tag.ChannelID(id))
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

func (h *handlerImpl) checkStreamTosExist(ctx context.Context, streamToIDs []uint32) error {
	for _, id := range streamToIDs {
		exists, err := h.store.ExistsStreamTo(ctx, id)
		if err != nil {
			return err
		}
		if !exists {
			return &types.BadRequestError{Message: fmt.Sprintf("stream_to_id %d does not exist", id)}
		}
	}
	return nil
}

func validateNewChannel(config *types.ChannelConfig) error {
	if err := checkPlatName(config.Metadata.PlatName); err != nil {
		return err
	}
	if err := config.Validate(); err != nil {
		return err
	}
	return checkStreamToIDsSet(config.Channels)
}

func validateChannelCondition(condition *ChannelCondition) error {
	if condition.ChannelID == 0 {
		return &types.BadRequestError{Message: "condition.channel_id is not set"}
	}
	if condition.PlatName == "" {
		return &types.BadRequestError{Message: "condition.plat_name is not set"}
	}
	return nil
}

func checkStreamToIDsSet(channels []*types.Channel) error {
	for _, ch := range channels {
		if ch.StreamTo.StreamToID == 0 {
			return &types.BadRequestError{Message: fmt.Sprintf("route %s: stream_to.stream_to_id is not set", ch.Name)}
		}
	}
	return nil
}

func specificationNames(spec *ChannelSpecification) (routeNames []string, filterNames []string) {
	for _, ch := range spec.Channels {
		if ch != nil && ch.Name != "" {
			routeNames = append(routeNames, ch.Name)
		}
	}
	for _, f := range spec.Filters {
		if f != nil && f.Name != "" {
			filterNames = append(filterNames, f.Name)
		}
	}
	return routeNames, filterNames
}

// withoutNames returns a copy of config without the named routes and filters
func withoutNames(config *types.ChannelConfig, routeNames []string, filterNames []string) *types.ChannelConfig {
	out := &types.ChannelConfig{Metadata: config.Metadata}
	for _, ch := range config.Channels {
		if !containsName(routeNames, ch.Name) {
			out.Channels = append(out.Channels, ch)
		}
	}
	for _, f := range config.Filters {
		if !containsName(filterNames, f.Name) {
			out.Filters = append(out.Filters, f)
		}
	}
	return out
}

func containsName(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

// missingFrom returns the ids of from that are not in other
func missingFrom(from []uint32, other []uint32) []uint32 {
	set := make(map[uint32]struct{}, len(other))
	for _, id := range other {
		set[id] = struct{}{}
	}
	var out []uint32
	for _, id := range from {
		if _, ok := set[id]; !ok {
			out = append(out, id)
		}
	}
	return out
}
