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

package common

import "time"

const (
	// RootPath is the base of every dataserver document in the coordination tree
	RootPath = "/gse/config/server/dataserver"
	// PlatRegistryPath holds one child per registered platform, valued with its platform number
	PlatRegistryPath = "/gse/config/server/configserver/etc/channelid/plats"
	// PlaceholderValue is written into intermediate nodes created on the way to a leaf
	PlaceholderValue = " "
	// OriginNodeWidth is the digit width of sequential node suffixes
	OriginNodeWidth = 10
)

const (
	// ChannelGracePeriod is how long a deleted channel stays tombstoned in the route cache
	ChannelGracePeriod = 120 * time.Second
	// StreamToGracePeriod is how long a deleted stream-to cluster stays tombstoned in the route cache
	StreamToGracePeriod = 60 * time.Second
	// TombstoneSweepInterval is how often expired tombstones are purged
	TombstoneSweepInterval = 20 * time.Second
	// DefaultEventQueueSize bounds the cache event queue
	DefaultEventQueueSize = 4096
	// DefaultResyncInterval is the minimum spacing of full route cache reloads
	DefaultResyncInterval = 10 * time.Second
	// DefaultLoaderConcurrency bounds the documents read in parallel during a reload
	DefaultLoaderConcurrency = 8
	// DefaultCoordinationTimeout bounds a single coordination call made by background loops
	DefaultCoordinationTimeout = 10 * time.Second
)

const (
	// DeleteMethodAll removes a whole channel id
	DeleteMethodAll = "all"
	// DeleteMethodSpecification removes only the named routes and filters
	DeleteMethodSpecification = "specification"
)
