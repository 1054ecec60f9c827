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

	"github.com/uber/streamroute/common/log/tag"
	"github.com/uber/streamroute/common/routeid"
	"github.com/uber/streamroute/common/types"
)

func (s *metadataStoreImpl) ExistsStreamTo(ctx context.Context, streamToID uint32) (bool, error) {
	return s.exists(ctx, s.paths.StreamTo(streamToID))
}

func (s *metadataStoreImpl) ReadStreamToConfig(ctx context.Context, streamToID uint32) (*types.StreamToClusterConfig, error) {
	exists, err := s.ExistsStreamTo(ctx, streamToID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, notExists("stream_to_id %d does not exist", streamToID)
	}
	config := &types.StreamToClusterConfig{}
	if err := s.readDocument(ctx, s.paths.StreamToMetadata(streamToID), &config.Metadata); err != nil {
		return nil, err
	}
	if err := s.readDocument(ctx, s.paths.StreamTo(streamToID), &config.StreamTo); err != nil {
		return nil, err
	}
	return config, nil
}

// CreateStreamToConfig writes the metadata first and the cluster document last
func (s *metadataStoreImpl) CreateStreamToConfig(ctx context.Context, config *types.StreamToClusterConfig) error {
	if err := s.checkConnected(); err != nil {
		return err
	}
	streamToID := config.Metadata.StreamToID
	logger := s.logger.WithTags(tag.StoreOperation(tag.StoreOperationCreateStreamToConfig), tag.StreamToID(streamToID))
	if err := s.writeStreamTo(ctx, config); err != nil {
		logger.Error("failed to write stream-to config", tag.Error(err))
		return err
	}
	logger.Info("stream-to config created", tag.PlatName(config.Metadata.PlatName), tag.ReportMode(string(config.StreamTo.ReportMode())))
	return nil
}

func (s *metadataStoreImpl) UpdateStreamToConfig(ctx context.Context, config *types.StreamToClusterConfig) error {
	if err := s.checkConnected(); err != nil {
		return err
	}
	streamToID := config.Metadata.StreamToID
	logger := s.logger.WithTags(tag.StoreOperation(tag.StoreOperationUpdateStreamToConfig), tag.StreamToID(streamToID))
	exists, err := s.ExistsStreamTo(ctx, streamToID)
	if err != nil {
		return err
	}
	if !exists {
		return notExists("stream_to_id %d does not exist", streamToID)
	}
	if err := s.writeStreamTo(ctx, config); err != nil {
		logger.Error("failed to update stream-to config", tag.Error(err))
		return err
	}
	logger.Info("stream-to config updated")
	return nil
}

func (s *metadataStoreImpl) writeStreamTo(ctx context.Context, config *types.StreamToClusterConfig) error {
	streamToID := config.Metadata.StreamToID
	if err := s.writeJSON(ctx, s.paths.StreamToMetadata(streamToID), &config.Metadata, false); err != nil {
		return err
	}
	return s.writeJSON(ctx, s.paths.StreamTo(streamToID), &config.StreamTo, false)
}

func (s *metadataStoreImpl) DeleteStreamToID(ctx context.Context, streamToID uint32) error {
	if err := s.checkConnected(); err != nil {
		return err
	}
	logger := s.logger.WithTags(tag.StoreOperation(tag.StoreOperationDeleteStreamToConfig), tag.StreamToID(streamToID))
	if err := s.deleteRecursive(ctx, s.paths.StreamTo(streamToID)); err != nil {
		logger.Error("failed to delete stream-to config", tag.Error(err))
		return err
	}
	origin := routeid.OriginStreamToID(streamToID)
	if err := s.deleteLeaf(ctx, s.paths.StreamToOrigin(origin)); err != nil {
		logger.Error("failed to delete origin node", tag.StoreOperation(tag.StoreOperationDeleteOriginID), tag.OriginID(origin), tag.Error(err))
		return err
	}
	logger.Info("stream-to config deleted", tag.OriginID(origin))
	return nil
}

// ListStreamToIDs returns every stream-to id, skipping administrative children
func (s *metadataStoreImpl) ListStreamToIDs(ctx context.Context) ([]uint32, error) {
	return s.numericChildren(ctx, s.paths.StreamToRoot())
}
