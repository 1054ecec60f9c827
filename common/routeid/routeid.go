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

// Package routeid encodes, decodes and allocates channel and stream-to identifiers.
package routeid

import (
	"fmt"
	"sort"
)

const (
	// ChannelIDOffset is added to every channel origin id
	ChannelIDOffset uint32 = 0x80000
	// StreamToIDOffset is added to every stream-to origin id
	StreamToIDOffset uint32 = 0x400
	// MaxChannelIDIndex is the largest value of the low channel id bits
	MaxChannelIDIndex uint32 = 0xFFFFF
	// MaxOriginID is the largest origin id that still decodes to itself
	MaxOriginID = MaxChannelIDIndex - ChannelIDOffset
	// MaxPlatID is the largest platform tag that fits the high bits
	MaxPlatID uint32 = 0x3FF

	platShift = 20
	// MaxGenerateAttempts bounds the collision retry loop
	MaxGenerateAttempts = 100
)

// supported platforms and their tags; tdm and tgdp share tag 0
var platforms = map[string]uint32{
	"tdm":       0,
	"tgdp":      0,
	"bkmonitor": 1,
	"iegdata":   2,
	"tglog":     3,
	"gse":       4,
	"datemore":  5,
	"cmdb":      6,
}

// Range is an inclusive interval of channel ids
type Range struct {
	Start uint32
	End   uint32
}

// ReservedRanges lists built-in channel ids that may only be claimed explicitly
var ReservedRanges = []Range{
	{Start: 1000, End: 1020},
	{Start: 1100000, End: 1199999},
	{Start: 1200000, End: 1210000},
}

// Contains reports whether id falls in the range
func (r Range) Contains(id uint32) bool {
	return id >= r.Start && id <= r.End
}

// PlatformID returns the tag of a supported platform
func PlatformID(platName string) (uint32, bool) {
	id, ok := platforms[platName]
	return id, ok
}

// SupportedPlatforms returns the supported platform names in sorted order
func SupportedPlatforms() []string {
	names := make([]string, 0, len(platforms))
	for name := range platforms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// EncodeChannelID packs a platform tag and origin id
func EncodeChannelID(platID, originID uint32) uint32 {
	return (platID << platShift) | (ChannelIDOffset + originID)
}

// PlatNum returns the platform tag packed into a channel id
func PlatNum(channelID uint32) uint32 {
	return (channelID >> platShift) & MaxPlatID
}

// RealChannelID strips the platform tag
func RealChannelID(channelID uint32) uint32 {
	return channelID & MaxChannelIDIndex
}

// OriginChannelID recovers the origin id. Ids below the offset are returned unchanged.
func OriginChannelID(channelID uint32) uint32 {
	real := RealChannelID(channelID)
	if real >= ChannelIDOffset {
		return real - ChannelIDOffset
	}
	return real
}

// DecodeChannelID is the inverse of EncodeChannelID
func DecodeChannelID(channelID uint32) (platID, originID uint32) {
	return PlatNum(channelID), OriginChannelID(channelID)
}

// EncodeStreamToID offsets a stream-to origin id
func EncodeStreamToID(originID uint32) uint32 {
	return StreamToIDOffset + originID
}

// OriginStreamToID recovers a stream-to origin id
func OriginStreamToID(streamToID uint32) uint32 {
	if streamToID >= StreamToIDOffset {
		return streamToID - StreamToIDOffset
	}
	return streamToID
}

// IsReserved reports whether id lies in a built-in reserved range
func IsReserved(channelID uint32) bool {
	for _, r := range ReservedRanges {
		if r.Contains(channelID) {
			return true
		}
	}
	return false
}

// OriginNodeName formats an origin id the way sequential nodes are named
func OriginNodeName(originID uint32) string {
	return fmt.Sprintf("%010d", originID)
}
