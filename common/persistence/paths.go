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
	"strconv"

	"github.com/uber/streamroute/common"
	"github.com/uber/streamroute/common/coordination"
	"github.com/uber/streamroute/common/routeid"
)

// Index families
const (
	IndexPlatName   = "plat_name"
	IndexBizID      = "bk_biz_id"
	IndexOdm        = "odm"
	IndexStreamToID = "stream_to_id"
	IndexType       = "type"
)

const (
	channelIDDir  = "channelid"
	streamToDir   = "streamto"
	indexDir      = "index"
	metadataNode  = "metadata"
	routeDir      = "channel"
	filterDir     = "filter"
	tglogDir      = "tglog"
	originSubPath = "origin"
)

// Paths builds every node path of the dataserver tree
type Paths struct {
	root         string
	platRegistry string
}

// NewPaths returns the path grammar rooted at root. Empty arguments select the defaults.
func NewPaths(root, platRegistry string) Paths {
	if root == "" {
		root = common.RootPath
	}
	if platRegistry == "" {
		platRegistry = common.PlatRegistryPath
	}
	return Paths{root: root, platRegistry: platRegistry}
}

func id(v uint32) string {
	return strconv.FormatUint(uint64(v), 10)
}

// ChannelRoot is the parent of every channel config and the channel index subtree
func (p Paths) ChannelRoot() string {
	return coordination.JoinPath(p.root, channelIDDir)
}

func (p Paths) Channel(channelID uint32) string {
	return coordination.JoinPath(p.ChannelRoot(), id(channelID))
}

func (p Paths) ChannelMetadata(channelID uint32) string {
	return coordination.JoinPath(p.Channel(channelID), metadataNode)
}

func (p Paths) ChannelRoutes(channelID uint32) string {
	return coordination.JoinPath(p.Channel(channelID), routeDir)
}

func (p Paths) ChannelRoute(channelID uint32, name string) string {
	return coordination.JoinPath(p.ChannelRoutes(channelID), name)
}

func (p Paths) ChannelFilters(channelID uint32) string {
	return coordination.JoinPath(p.Channel(channelID), filterDir)
}

func (p Paths) ChannelFilter(channelID uint32, name string) string {
	return coordination.JoinPath(p.ChannelFilters(channelID), name)
}

func (p Paths) ChannelIndexKey(family, key string) string {
	return coordination.JoinPath(p.ChannelRoot(), indexDir, family, key)
}

func (p Paths) ChannelIndex(family, key string, channelID uint32) string {
	return coordination.JoinPath(p.ChannelIndexKey(family, key), id(channelID))
}

// StreamToRoot is the parent of every stream-to config and the stream-to index subtree
func (p Paths) StreamToRoot() string {
	return coordination.JoinPath(p.root, streamToDir)
}

// StreamTo holds the cluster document itself
func (p Paths) StreamTo(streamToID uint32) string {
	return coordination.JoinPath(p.StreamToRoot(), id(streamToID))
}

func (p Paths) StreamToMetadata(streamToID uint32) string {
	return coordination.JoinPath(p.StreamTo(streamToID), metadataNode)
}

func (p Paths) StreamToIndexKey(family, key string) string {
	return coordination.JoinPath(p.StreamToRoot(), indexDir, family, key)
}

func (p Paths) StreamToIndex(family, key string, streamToID uint32) string {
	return coordination.JoinPath(p.StreamToIndexKey(family, key), id(streamToID))
}

func (p Paths) ChannelOriginRoot() string {
	return coordination.JoinPath(p.root, "etc", channelIDDir, originSubPath)
}

func (p Paths) ChannelOrigin(originID uint32) string {
	return coordination.JoinPath(p.ChannelOriginRoot(), routeid.OriginNodeName(originID))
}

func (p Paths) StreamToOriginRoot() string {
	return coordination.JoinPath(p.root, "etc", streamToDir, originSubPath)
}

func (p Paths) StreamToOrigin(originID uint32) string {
	return coordination.JoinPath(p.StreamToOriginRoot(), routeid.OriginNodeName(originID))
}

func (p Paths) PlatRegistryRoot() string {
	return coordination.JoinPath(p.platRegistry)
}

func (p Paths) PlatRegistry(platName string) string {
	return coordination.JoinPath(p.platRegistry, platName)
}

// TglogNotify is read by tglog agents to discover the channel of a business
func (p Paths) TglogNotify(bizID int64, odm string) string {
	return coordination.JoinPath(p.root, tglogDir, strconv.FormatInt(bizID, 10), odm)
}

// ParseID parses a numeric node name; administrative children such as index are rejected
func ParseID(name string) (uint32, bool) {
	v, err := strconv.ParseUint(name, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint32(v), true
}
