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
	"github.com/uber/streamroute/common/types"
)

type (
	// Operation names who issues a request and, for deletes, how
	Operation struct {
		OperatorName string `json:"operator_name"`
		Method       string `json:"method,omitempty"`
	}

	// ChannelCondition identifies the channel a request targets
	ChannelCondition struct {
		ChannelID uint32       `json:"channel_id"`
		PlatName  string       `json:"plat_name"`
		Label     *types.Label `json:"label,omitempty"`
	}

	// ChannelSpecification carries a partial set of routes and filters
	ChannelSpecification struct {
		Channels []*types.Channel      `json:"route"`
		Filters  []*types.StreamFilter `json:"stream_filters"`
	}

	// AddChannelRequest registers a new channel id.
	// A non-zero metadata.channel_id asks for that exact id.
	AddChannelRequest struct {
		Metadata  types.ChannelMetadata `json:"metadata"`
		Operation Operation             `json:"operation"`
		Channels  []*types.Channel      `json:"route"`
		Filters   []*types.StreamFilter `json:"stream_filters"`
	}

	// AddChannelResponse carries the allocated id
	AddChannelResponse struct {
		ChannelID uint32 `json:"channel_id"`
	}

	// UpdateChannelRequest merges routes and filters into a channel by name
	UpdateChannelRequest struct {
		Condition     ChannelCondition     `json:"condition"`
		Operation     Operation            `json:"operation"`
		Specification ChannelSpecification `json:"specification"`
	}

	// DeleteChannelRequest removes a whole channel id or the named parts of it
	DeleteChannelRequest struct {
		Condition     ChannelCondition     `json:"condition"`
		Operation     Operation            `json:"operation"`
		Specification ChannelSpecification `json:"specification"`
	}

	// QueryChannelRequest reads one channel, or every channel of a platform when channel_id is zero
	QueryChannelRequest struct {
		Condition ChannelCondition `json:"condition"`
		Operation Operation        `json:"operation"`
	}

	// StreamToCondition identifies the stream-to a request targets
	StreamToCondition struct {
		StreamToID uint32       `json:"stream_to_id"`
		PlatName   string       `json:"plat_name"`
		Label      *types.Label `json:"label,omitempty"`
	}

	// AddStreamToRequest registers a new stream-to cluster
	AddStreamToRequest struct {
		Metadata  types.StreamToMetadata `json:"metadata"`
		Operation Operation              `json:"operation"`
		StreamTo  types.StreamToCluster  `json:"stream_to"`
	}

	// AddStreamToResponse carries the allocated id
	AddStreamToResponse struct {
		StreamToID uint32 `json:"stream_to_id"`
	}

	// UpdateStreamToRequest replaces the cluster document of a stream-to
	UpdateStreamToRequest struct {
		Condition StreamToCondition     `json:"condition"`
		Operation Operation             `json:"operation"`
		StreamTo  types.StreamToCluster `json:"stream_to"`
	}

	// DeleteStreamToRequest removes a stream-to id
	DeleteStreamToRequest struct {
		Condition StreamToCondition `json:"condition"`
		Operation Operation         `json:"operation"`
	}

	// QueryStreamToRequest reads one stream-to, or every stream-to of a platform when stream_to_id is zero
	QueryStreamToRequest struct {
		Condition StreamToCondition `json:"condition"`
		Operation Operation         `json:"operation"`
	}

	// IndexCondition selects ids through the secondary indices. Set keys are intersected.
	IndexCondition struct {
		PlatName   string `json:"plat_name,omitempty"`
		BizID      *int64 `json:"bk_biz_id,omitempty"`
		Odm        string `json:"odm,omitempty"`
		Type       string `json:"type,omitempty"`
		StreamToID uint32 `json:"stream_to_id,omitempty"`
	}

	// QueryIndexRequest looks ids up by index
	QueryIndexRequest struct {
		Condition IndexCondition `json:"condition"`
	}

	// QueryIndexResponse lists the matching ids in ascending order
	QueryIndexResponse struct {
		IDs []uint32 `json:"ids"`
	}

	// RebuildIndicesResponse summarizes a reconciliation sweep
	RebuildIndicesResponse struct {
		Channels  int `json:"channels"`
		StreamTos int `json:"stream_tos"`
		Failures  int `json:"failures"`
	}
)
