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
	"strconv"

	"github.com/uber/streamroute/common"
	"github.com/uber/streamroute/common/coordination"
	"github.com/uber/streamroute/common/log/tag"
	"github.com/uber/streamroute/common/types"
)

// TglogPlatName is the platform whose channels are published to tglog agents
const TglogPlatName = "tglog"

type (
	indexEntry struct {
		family string
		key    string
	}

	tglogNotify struct {
		ChannelID uint32 `json:"channelid"`
	}
)

var (
	channelIndexFamilies  = []string{IndexPlatName, IndexBizID, IndexOdm, IndexStreamToID}
	streamToIndexFamilies = []string{IndexPlatName, IndexBizID, IndexOdm, IndexType}
)

// ChannelIndexFamilies returns the families QueryChannelIDs accepts
func ChannelIndexFamilies() []string {
	return append([]string(nil), channelIndexFamilies...)
}

// StreamToIndexFamilies returns the families QueryStreamToIDs accepts
func StreamToIndexFamilies() []string {
	return append([]string(nil), streamToIndexFamilies...)
}

func labelEntries(platName string, label *types.Label) []indexEntry {
	entries := []indexEntry{{family: IndexPlatName, key: platName}}
	if label.HasIndexableBizID() {
		entries = append(entries, indexEntry{family: IndexBizID, key: strconv.FormatInt(*label.BizID, 10)})
	}
	if label != nil && label.Odm != "" {
		entries = append(entries, indexEntry{family: IndexOdm, key: label.Odm})
	}
	return entries
}

func channelIndexEntries(config *types.ChannelConfig) []indexEntry {
	entries := labelEntries(config.Metadata.PlatName, config.Metadata.Label)
	for _, streamToID := range config.StreamToIDs() {
		entries = append(entries, indexEntry{family: IndexStreamToID, key: id(streamToID)})
	}
	return entries
}

func streamToIndexEntries(config *types.StreamToClusterConfig) []indexEntry {
	entries := labelEntries(config.Metadata.PlatName, config.Metadata.Label)
	if mode := config.StreamTo.ReportMode(); mode != "" {
		entries = append(entries, indexEntry{family: IndexType, key: string(mode)})
	}
	return entries
}

func hasTglogNotify(metadata *types.ChannelMetadata) bool {
	return metadata.PlatName == TglogPlatName && metadata.Label.HasIndexableBizID() && metadata.Label.Odm != ""
}

func (s *metadataStoreImpl) CreateChannelIndices(ctx context.Context, config *types.ChannelConfig) error {
	if err := s.checkConnected(); err != nil {
		return err
	}
	channelID := config.Metadata.ChannelID
	var errs []error
	for _, e := range channelIndexEntries(config) {
		if err := s.CreateNode(ctx, s.paths.ChannelIndex(e.family, e.key, channelID), []byte(common.PlaceholderValue)); err != nil {
			errs = append(errs, err)
		}
	}
	if hasTglogNotify(&config.Metadata) {
		if err := s.writeJSON(ctx, s.tglogPath(config.Metadata.Label), &tglogNotify{ChannelID: channelID}, false); err != nil {
			errs = append(errs, err)
		}
	}
	return s.joinIndexErrors(tag.StoreOperation(tag.StoreOperationCreateChannelIndex), errs)
}

func (s *metadataStoreImpl) DeleteChannelIndices(ctx context.Context, config *types.ChannelConfig) error {
	if err := s.checkConnected(); err != nil {
		return err
	}
	channelID := config.Metadata.ChannelID
	var errs []error
	for _, e := range channelIndexEntries(config) {
		if err := s.deleteLeaf(ctx, s.paths.ChannelIndex(e.family, e.key, channelID)); err != nil {
			errs = append(errs, err)
		}
	}
	if hasTglogNotify(&config.Metadata) {
		if err := s.deleteTglogNotify(ctx, config.Metadata.Label, channelID); err != nil {
			errs = append(errs, err)
		}
	}
	return s.joinIndexErrors(tag.StoreOperation(tag.StoreOperationDeleteChannelIndex), errs)
}

func (s *metadataStoreImpl) DeleteStreamToLinks(ctx context.Context, channelID uint32, streamToIDs []uint32) error {
	if err := s.checkConnected(); err != nil {
		return err
	}
	var errs []error
	for _, streamToID := range streamToIDs {
		if err := s.deleteLeaf(ctx, s.paths.ChannelIndex(IndexStreamToID, id(streamToID), channelID)); err != nil {
			errs = append(errs, err)
		}
	}
	return s.joinIndexErrors(tag.StoreOperation(tag.StoreOperationDeleteChannelIndex), errs)
}

func (s *metadataStoreImpl) QueryChannelIDs(ctx context.Context, family string, key string) ([]uint32, error) {
	if !contains(channelIndexFamilies, family) {
		return nil, &types.BadRequestError{Message: "unsupported channel index " + family}
	}
	return s.numericChildren(ctx, s.paths.ChannelIndexKey(family, key))
}

func (s *metadataStoreImpl) CreateStreamToIndices(ctx context.Context, config *types.StreamToClusterConfig) error {
	if err := s.checkConnected(); err != nil {
		return err
	}
	streamToID := config.Metadata.StreamToID
	var errs []error
	for _, e := range streamToIndexEntries(config) {
		if err := s.CreateNode(ctx, s.paths.StreamToIndex(e.family, e.key, streamToID), []byte(common.PlaceholderValue)); err != nil {
			errs = append(errs, err)
		}
	}
	return s.joinIndexErrors(tag.StoreOperation(tag.StoreOperationCreateStreamToIndex), errs)
}

func (s *metadataStoreImpl) DeleteStreamToIndices(ctx context.Context, config *types.StreamToClusterConfig) error {
	if err := s.checkConnected(); err != nil {
		return err
	}
	streamToID := config.Metadata.StreamToID
	var errs []error
	for _, e := range streamToIndexEntries(config) {
		if err := s.deleteLeaf(ctx, s.paths.StreamToIndex(e.family, e.key, streamToID)); err != nil {
			errs = append(errs, err)
		}
	}
	return s.joinIndexErrors(tag.StoreOperation(tag.StoreOperationDeleteStreamToIndex), errs)
}

func (s *metadataStoreImpl) QueryStreamToIDs(ctx context.Context, family string, key string) ([]uint32, error) {
	if !contains(streamToIndexFamilies, family) {
		return nil, &types.BadRequestError{Message: "unsupported stream-to index " + family}
	}
	return s.numericChildren(ctx, s.paths.StreamToIndexKey(family, key))
}

func (s *metadataStoreImpl) tglogPath(label *types.Label) string {
	return s.paths.TglogNotify(*label.BizID, label.Odm)
}

// deleteTglogNotify removes the notify node only while it still points at channelID
func (s *metadataStoreImpl) deleteTglogNotify(ctx context.Context, label *types.Label, channelID uint32) error {
	path := s.tglogPath(label)
	current := &tglogNotify{}
	if err := s.readJSON(ctx, path, current); err != nil {
		if coordination.IsNodeNotFound(err) || IsCorruptedDocumentError(err) {
			return nil
		}
		return err
	}
	if current.ChannelID != channelID {
		s.logger.Info("tglog notify points at another channel", tag.ZKPath(path), tag.ChannelID(current.ChannelID))
		return nil
	}
	return s.deleteLeaf(ctx, path)
}

// ReadTglogChannelID returns the channel registered for a tglog business label
func (s *metadataStoreImpl) ReadTglogChannelID(ctx context.Context, label *types.Label) (uint32, bool, error) {
	if err := s.checkConnected(); err != nil {
		return 0, false, err
	}
	if !label.HasIndexableBizID() || label.Odm == "" {
		return 0, false, nil
	}
	notify := &tglogNotify{}
	if err := s.readJSON(ctx, s.tglogPath(label), notify); err != nil {
		if coordination.IsNodeNotFound(err) {
			return 0, false, nil
		}
		return 0, false, err
	}
	return notify.ChannelID, notify.ChannelID != 0, nil
}

func contains(values []string, v string) bool {
	for _, value := range values {
		if value == v {
			return true
		}
	}
	return false
}
