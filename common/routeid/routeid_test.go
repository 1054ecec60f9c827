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

package routeid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeChannelID(t *testing.T) {
	for _, plat := range SupportedPlatforms() {
		platID, ok := PlatformID(plat)
		assert.True(t, ok)
		for _, origin := range []uint32{0, 1, 12345, MaxOriginID} {
			id := EncodeChannelID(platID, origin)
			gotPlat, gotOrigin := DecodeChannelID(id)
			assert.Equal(t, platID, gotPlat, "plat %s origin %d", plat, origin)
			assert.Equal(t, origin, gotOrigin, "plat %s origin %d", plat, origin)
		}
	}
	assert.Equal(t, uint32(1<<20|0x80000|5), EncodeChannelID(1, 5))
}

func TestOriginOfLegacyIDs(t *testing.T) {
	// ids below the offset predate the encoding and decode to themselves
	assert.Equal(t, uint32(1000), OriginChannelID(1000))
	assert.Equal(t, uint32(0), PlatNum(1000))
}

func TestStreamToID(t *testing.T) {
	assert.Equal(t, uint32(1024), EncodeStreamToID(0))
	assert.Equal(t, uint32(7), OriginStreamToID(EncodeStreamToID(7)))
	assert.Equal(t, uint32(12), OriginStreamToID(12))
}

func TestPlatforms(t *testing.T) {
	id, ok := PlatformID("tglog")
	assert.True(t, ok)
	assert.Equal(t, uint32(3), id)
	tdm, _ := PlatformID("tdm")
	tgdp, _ := PlatformID("tgdp")
	assert.Equal(t, tdm, tgdp)
	_, ok = PlatformID("unknown")
	assert.False(t, ok)
	assert.Equal(t, []string{"bkmonitor", "cmdb", "datemore", "gse", "iegdata", "tdm", "tgdp", "tglog"}, SupportedPlatforms())
}

func TestReservedRanges(t *testing.T) {
	for _, id := range []uint32{1000, 1020, 1100000, 1199999, 1200000, 1210000} {
		assert.True(t, IsReserved(id), "%d", id)
	}
	for _, id := range []uint32{999, 1021, 1099999, 1210001} {
		assert.False(t, IsReserved(id), "%d", id)
	}
}

func TestOriginNodeName(t *testing.T) {
	assert.Equal(t, "0000000042", OriginNodeName(42))
}
