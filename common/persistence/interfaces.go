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

//go:generate mockgen -package $GOPACKAGE -source $GOFILE -destination interfaces_mock.go -self_package github.com/uber/streamroute/common/persistence

package persistence

import (
	"context"

	"github.com/uber/streamroute/common/routeid"
	"github.com/uber/streamroute/common/types"
)

type (
	// MetadataStore owns the persisted channel and stream-to documents and their indices.
	// Multi-node writes are not transactional; every write is create-or-set so that
	// re-applying a failed request repairs it.
	MetadataStore interface {
		routeid.SequenceStore

		// Init creates the base nodes and registers the supported platforms
		Init(ctx context.Context) error
		// CreateNode creates every missing ancestor with a placeholder and the leaf with value.
		// Existing nodes are left untouched.
		CreateNode(ctx context.Context, path string, value []byte) error
		ReadPlatNumber(ctx context.Context, platName string) (string, error)

		// ReadChannelConfig returns routes and filters sorted by name, not in the order they were written
		ReadChannelConfig(ctx context.Context, channelID uint32) (*types.ChannelConfig, error)
		CreateChannelConfig(ctx context.Context, config *types.ChannelConfig) error
		UpdateChannelConfig(ctx context.Context, config *types.ChannelConfig) error
		DeleteChannelID(ctx context.Context, channelID uint32) error
		DeleteBySpecification(ctx context.Context, channelID uint32, routeNames []string, filterNames []string) error
		ListChannelIDs(ctx context.Context) ([]uint32, error)

		// Index maintenance is best-effort: failures are logged and returned aggregated
		// so callers can report them without failing the request.
		CreateChannelIndices(ctx context.Context, config *types.ChannelConfig) error
		DeleteChannelIndices(ctx context.Context, config *types.ChannelConfig) error
		DeleteStreamToLinks(ctx context.Context, channelID uint32, streamToIDs []uint32) error
		QueryChannelIDs(ctx context.Context, family string, key string) ([]uint32, error)
		// ReadTglogChannelID looks up the channel already registered for a tglog business
		ReadTglogChannelID(ctx context.Context, label *types.Label) (uint32, bool, error)

		ExistsStreamTo(ctx context.Context, streamToID uint32) (bool, error)
		ReadStreamToConfig(ctx context.Context, streamToID uint32) (*types.StreamToClusterConfig, error)
		CreateStreamToConfig(ctx context.Context, config *types.StreamToClusterConfig) error
		UpdateStreamToConfig(ctx context.Context, config *types.StreamToClusterConfig) error
		DeleteStreamToID(ctx context.Context, streamToID uint32) error
		ListStreamToIDs(ctx context.Context) ([]uint32, error)

		CreateStreamToIndices(ctx context.Context, config *types.StreamToClusterConfig) error
		DeleteStreamToIndices(ctx context.Context, config *types.StreamToClusterConfig) error
		QueryStreamToIDs(ctx context.Context, family string, key string) ([]uint32, error)

		// RebuildIndices re-creates every index entry from the primary documents
		RebuildIndices(ctx context.Context) (*RebuildReport, error)

		Paths() Paths
	}

	// RebuildReport summarizes a reconciliation sweep
	RebuildReport struct {
		Channels  int
		StreamTos int
		Failures  int
	}
)
