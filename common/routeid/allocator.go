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

//go:generate mockgen -package $GOPACKAGE -source $GOFILE -destination allocator_mock.go -self_package github.com/uber/streamroute/common/routeid

package routeid

import (
	"context"
	"fmt"
	"strings"

	"github.com/uber/streamroute/common/log"
	"github.com/uber/streamroute/common/log/tag"
	"github.com/uber/streamroute/common/types"
)

type (
	// SequenceStore is the part of the metadata store the allocator draws on
	SequenceStore interface {
		// NextChannelOrigin creates a sequential origin node and returns its number
		NextChannelOrigin(ctx context.Context, platName string) (uint32, error)
		// NextStreamToOrigin creates a sequential stream-to origin node and returns its number
		NextStreamToOrigin(ctx context.Context, platName string) (uint32, error)
		ExistsChannel(ctx context.Context, channelID uint32) (bool, error)
	}

	// Allocator hands out channel and stream-to ids
	Allocator interface {
		GenerateChannelID(ctx context.Context, platName string) (uint32, error)
		ValidateExplicitChannelID(ctx context.Context, channelID uint32) error
		GenerateStreamToClusterID(ctx context.Context, platName string) (uint32, error)
	}

	allocatorImpl struct {
		store  SequenceStore
		logger log.Logger
	}
)

var _ Allocator = (*allocatorImpl)(nil)

// NewAllocator creates an Allocator over the given sequence store
func NewAllocator(store SequenceStore, logger log.Logger) Allocator {
	return &allocatorImpl{
		store:  store,
		logger: logger.WithTags(tag.Component(tag.ComponentAllocator)),
	}
}

func unsupportedPlatform(platName string) error {
	return &types.BadRequestError{
		Message: fmt.Sprintf("plat_name %q is not supported, expected one of [%s]", platName, strings.Join(SupportedPlatforms(), "|")),
	}
}

// GenerateChannelID allocates a fresh id, retrying with a new origin on collision
func (a *allocatorImpl) GenerateChannelID(ctx context.Context, platName string) (uint32, error) {
	platID, ok := PlatformID(platName)
	if !ok {
		return 0, unsupportedPlatform(platName)
	}

	for attempt := 1; attempt <= MaxGenerateAttempts; attempt++ {
		origin, err := a.store.NextChannelOrigin(ctx, platName)
		if err != nil {
			a.logger.Error("failed to create channel origin node", tag.PlatName(platName), tag.Error(err))
			return 0, err
		}
		if origin > MaxOriginID {
			a.logger.Error("channel origin id beyond max index", tag.OriginID(origin), tag.PlatName(platName))
			return 0, &types.RangeError{
				Message: fmt.Sprintf("failed to alloc channel id, origin %d beyond the range [0 - %d]", origin, MaxOriginID),
			}
		}

		channelID := EncodeChannelID(platID, origin)
		exists, err := a.store.ExistsChannel(ctx, channelID)
		if err != nil {
			return 0, err
		}
		if !exists {
			a.logger.Info("channel id allocated", tag.ChannelID(channelID), tag.OriginID(origin), tag.PlatName(platName))
			return channelID, nil
		}
		a.logger.Warn("channel id collision, retrying", tag.ChannelID(channelID), tag.Attempt(attempt))
	}
	return 0, &types.EntityAlreadyExistsError{
		Message: fmt.Sprintf("failed to alloc channel id for %s after %d attempts", platName, MaxGenerateAttempts),
	}
}

// CheckExplicitChannelID rejects a caller supplied id without touching the store
func CheckExplicitChannelID(channelID uint32) error {
	if channelID>>platShift > MaxPlatID {
		return &types.RangeError{Message: fmt.Sprintf("channel id %d beyond max index", channelID)}
	}
	if !IsReserved(channelID) {
		return &types.RangeError{Message: fmt.Sprintf("channel id %d is outside the built-in reserved ranges", channelID)}
	}
	return nil
}

// ValidateExplicitChannelID checks a caller supplied id before it is claimed
func (a *allocatorImpl) ValidateExplicitChannelID(ctx context.Context, channelID uint32) error {
	if err := CheckExplicitChannelID(channelID); err != nil {
		return err
	}
	exists, err := a.store.ExistsChannel(ctx, channelID)
	if err != nil {
		return err
	}
	if exists {
		return &types.EntityAlreadyExistsError{Message: fmt.Sprintf("channel id %d already exists", channelID)}
	}
	return nil
}

// GenerateStreamToClusterID allocates a stream-to id. The id space is sparse so collisions are not retried.
func (a *allocatorImpl) GenerateStreamToClusterID(ctx context.Context, platName string) (uint32, error) {
	if _, ok := PlatformID(platName); !ok {
		return 0, unsupportedPlatform(platName)
	}
	origin, err := a.store.NextStreamToOrigin(ctx, platName)
	if err != nil {
		a.logger.Error("failed to create stream-to origin node", tag.PlatName(platName), tag.Error(err))
		return 0, err
	}
	streamToID := EncodeStreamToID(origin)
	a.logger.Info("stream-to id allocated", tag.StreamToID(streamToID), tag.PlatName(platName))
	return streamToID, nil
}
