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
	"sort"
	"strconv"

	"github.com/uber/streamroute/common/coordination"
	"github.com/uber/streamroute/common/log/tag"
	"github.com/uber/streamroute/common/routeid"
	"github.com/uber/streamroute/common/types"
)

func (s *metadataStoreImpl) ExistsChannel(ctx context.Context, channelID uint32) (bool, error) {
	return s.exists(ctx, s.paths.Channel(channelID))
}

func (s *metadataStoreImpl) ReadChannelConfig(ctx context.Context, channelID uint32) (*types.ChannelConfig, error) {
	exists, err := s.ExistsChannel(ctx, channelID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, notExists("channel_id %d does not exist", channelID)
	}

	config := &types.ChannelConfig{}
	if err := s.readDocument(ctx, s.paths.ChannelMetadata(channelID), &config.Metadata); err != nil {
		return nil, err
	}

	// children carry no ordinal, so routes and filters come back in name order
	routeNames, err := s.sortedChildren(ctx, s.paths.ChannelRoutes(channelID))
	if err != nil {
		return nil, err
	}
	for _, name := range routeNames {
		route := &types.Channel{}
		if err := s.readDocument(ctx, s.paths.ChannelRoute(channelID, name), route); err != nil {
			return nil, err
		}
		config.Channels = append(config.Channels, route)
	}

	filterNames, err := s.sortedChildren(ctx, s.paths.ChannelFilters(channelID))
	if err != nil {
		return nil, err
	}
	for _, name := range filterNames {
		filter := &types.StreamFilter{}
		if err := s.readDocument(ctx, s.paths.ChannelFilter(channelID, name), filter); err != nil {
			return nil, err
		}
		config.Filters = append(config.Filters, filter)
	}
	return config, nil
}

// readDocument decodes a node that must exist once its parent document does
func (s *metadataStoreImpl) readDocument(ctx context.Context, path string, v interface{}) error {
	err := s.readJSON(ctx, path, v)
	if err != nil && coordination.IsNodeNotFound(err) {
		return &CorruptedDocumentError{Path: path, Cause: coordination.ErrNodeNotFound}
	}
	return err
}

func (s *metadataStoreImpl) sortedChildren(ctx context.Context, path string) ([]string, error) {
	children, err := s.client.Children(ctx, path, nil)
	if err != nil {
		if coordination.IsNodeNotFound(err) {
			return nil, nil
		}
		return nil, convertError("children", path, err)
	}
	sort.Strings(children)
	return children, nil
}

func (s *metadataStoreImpl) CreateChannelConfig(ctx context.Context, config *types.ChannelConfig) error {
	if err := s.checkConnected(); err != nil {
		return err
	}
	channelID := config.Metadata.ChannelID
	logger := s.logger.WithTags(tag.StoreOperation(tag.StoreOperationCreateChannelConfig), tag.ChannelID(channelID))

	if err := s.writeChannelEntries(ctx, config); err != nil {
		logger.Error("failed to write channel config", tag.Error(err))
		return err
	}
	if err := s.touch(ctx, s.paths.Channel(channelID)); err != nil {
		logger.Error("failed to touch channel node", tag.Error(err))
		return err
	}
	logger.Info("channel config created", tag.PlatName(config.Metadata.PlatName), tag.Counter(len(config.Channels)))
	return nil
}

// UpdateChannelConfig persists an already merged config. Entries not named by config are left in place.
func (s *metadataStoreImpl) UpdateChannelConfig(ctx context.Context, config *types.ChannelConfig) error {
	if err := s.checkConnected(); err != nil {
		return err
	}
	channelID := config.Metadata.ChannelID
	logger := s.logger.WithTags(tag.StoreOperation(tag.StoreOperationUpdateChannelConfig), tag.ChannelID(channelID))

	exists, err := s.ExistsChannel(ctx, channelID)
	if err != nil {
		return err
	}
	if !exists {
		return notExists("channel_id %d does not exist", channelID)
	}
	if err := s.writeChannelEntries(ctx, config); err != nil {
		logger.Error("failed to update channel config", tag.Error(err))
		return err
	}
	if err := s.touch(ctx, s.paths.Channel(channelID)); err != nil {
		logger.Error("failed to touch channel node", tag.Error(err))
		return err
	}
	logger.Info("channel config updated", tag.Counter(len(config.Channels)))
	return nil
}

// writeChannelEntries writes metadata, filters and routes. The channel node itself is written by the caller.
func (s *metadataStoreImpl) writeChannelEntries(ctx context.Context, config *types.ChannelConfig) error {
	channelID := config.Metadata.ChannelID
	if err := s.writeJSON(ctx, s.paths.ChannelMetadata(channelID), &config.Metadata, false); err != nil {
		return err
	}
	if len(config.Filters) > 0 {
		count := []byte(strconv.Itoa(len(config.Filters)))
		if err := s.setOrCreate(ctx, s.paths.ChannelFilters(channelID), count); err != nil {
			return err
		}
	}
	for _, filter := range config.Filters {
		if err := s.writeJSON(ctx, s.paths.ChannelFilter(channelID, filter.Name), filter, false); err != nil {
			return err
		}
	}
	for _, route := range config.Channels {
		if err := s.writeJSON(ctx, s.paths.ChannelRoute(channelID, route.Name), route, false); err != nil {
			return err
		}
	}
	return nil
}

func (s *metadataStoreImpl) DeleteChannelID(ctx context.Context, channelID uint32) error {
	if err := s.checkConnected(); err != nil {
		return err
	}
	logger := s.logger.WithTags(tag.StoreOperation(tag.StoreOperationDeleteChannelConfig), tag.ChannelID(channelID))
	if err := s.deleteRecursive(ctx, s.paths.Channel(channelID)); err != nil {
		logger.Error("failed to delete channel config", tag.Error(err))
		return err
	}
	if routeid.IsReserved(channelID) {
		logger.Info("channel config deleted, reserved id keeps no origin node")
		return nil
	}
	origin := routeid.OriginChannelID(channelID)
	if err := s.deleteLeaf(ctx, s.paths.ChannelOrigin(origin)); err != nil {
		logger.Error("failed to delete origin node", tag.StoreOperation(tag.StoreOperationDeleteOriginID), tag.OriginID(origin), tag.Error(err))
		return err
	}
	logger.Info("channel config deleted", tag.OriginID(origin))
	return nil
}

// DeleteBySpecification removes the named routes and filters, then touches the channel node
func (s *metadataStoreImpl) DeleteBySpecification(ctx context.Context, channelID uint32, routeNames []string, filterNames []string) error {
	if err := s.checkConnected(); err != nil {
		return err
	}
	logger := s.logger.WithTags(tag.StoreOperation(tag.StoreOperationDeleteChannelConfig), tag.ChannelID(channelID))
	for _, name := range routeNames {
		if err := s.deleteLeaf(ctx, s.paths.ChannelRoute(channelID, name)); err != nil {
			logger.Error("failed to delete route", tag.ChannelName(name), tag.Error(err))
			return err
		}
	}
	for _, name := range filterNames {
		if err := s.deleteLeaf(ctx, s.paths.ChannelFilter(channelID, name)); err != nil {
			logger.Error("failed to delete filter", tag.FilterName(name), tag.Error(err))
			return err
		}
	}
	if len(filterNames) > 0 {
		remaining, err := s.sortedChildren(ctx, s.paths.ChannelFilters(channelID))
		if err != nil {
			return err
		}
		if err := s.setOrCreate(ctx, s.paths.ChannelFilters(channelID), []byte(strconv.Itoa(len(remaining)))); err != nil {
			return err
		}
	}
	if err := s.touch(ctx, s.paths.Channel(channelID)); err != nil {
		return err
	}
	logger.Info("channel entries deleted", tag.Counter(len(routeNames)+len(filterNames)))
	return nil
}

// ListChannelIDs returns every channel id, skipping administrative children
func (s *metadataStoreImpl) ListChannelIDs(ctx context.Context) ([]uint32, error) {
	return s.numericChildren(ctx, s.paths.ChannelRoot())
}
