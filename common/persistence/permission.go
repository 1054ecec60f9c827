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
	"fmt"

	"github.com/uber/streamroute/common/types"
)

// CheckChannelOwner rejects a request from a platform other than the one that created the channel
func CheckChannelOwner(config *types.ChannelConfig, platName string) error {
	if config.Metadata.PlatName != platName {
		return &types.AccessDeniedError{
			Message: fmt.Sprintf("plat_name %q may not modify channel_id %d owned by %q", platName, config.Metadata.ChannelID, config.Metadata.PlatName),
		}
	}
	return nil
}

// CheckStreamToOwner rejects a request from a platform other than the one that created the stream-to
func CheckStreamToOwner(config *types.StreamToClusterConfig, platName string) error {
	if config.Metadata.PlatName != platName {
		return &types.AccessDeniedError{
			Message: fmt.Sprintf("plat_name %q may not modify stream_to_id %d owned by %q", platName, config.Metadata.StreamToID, config.Metadata.PlatName),
		}
	}
	return nil
}
