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
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uber/streamroute/common/log/testlogger"
	"github.com/uber/streamroute/common/types"
)

func TestGenerateChannelID(t *testing.T) {
	ctx := context.Background()
	bkmonitor, _ := PlatformID("bkmonitor")

	tests := map[string]struct {
		platName string
		setup    func(store *MockSequenceStore)
		wantID   uint32
		check    func(t *testing.T, err error)
	}{
		"unsupported platform never reaches the store": {
			platName: "unknown",
			setup:    func(store *MockSequenceStore) {},
			check: func(t *testing.T, err error) {
				assert.True(t, types.IsBadRequestError(err))
			},
		},
		"first candidate is free": {
			platName: "bkmonitor",
			setup: func(store *MockSequenceStore) {
				store.EXPECT().NextChannelOrigin(gomock.Any(), "bkmonitor").Return(uint32(10), nil)
				store.EXPECT().ExistsChannel(gomock.Any(), EncodeChannelID(bkmonitor, 10)).Return(false, nil)
			},
			wantID: EncodeChannelID(bkmonitor, 10),
		},
		"collisions are retried with a fresh origin": {
			platName: "bkmonitor",
			setup: func(store *MockSequenceStore) {
				gomock.InOrder(
					store.EXPECT().NextChannelOrigin(gomock.Any(), "bkmonitor").Return(uint32(1), nil),
					store.EXPECT().ExistsChannel(gomock.Any(), EncodeChannelID(bkmonitor, 1)).Return(true, nil),
					store.EXPECT().NextChannelOrigin(gomock.Any(), "bkmonitor").Return(uint32(2), nil),
					store.EXPECT().ExistsChannel(gomock.Any(), EncodeChannelID(bkmonitor, 2)).Return(true, nil),
					store.EXPECT().NextChannelOrigin(gomock.Any(), "bkmonitor").Return(uint32(3), nil),
					store.EXPECT().ExistsChannel(gomock.Any(), EncodeChannelID(bkmonitor, 3)).Return(false, nil),
				)
			},
			wantID: EncodeChannelID(bkmonitor, 3),
		},
		"collisions past the retry bound fail": {
			platName: "bkmonitor",
			setup: func(store *MockSequenceStore) {
				store.EXPECT().NextChannelOrigin(gomock.Any(), "bkmonitor").Return(uint32(1), nil).Times(MaxGenerateAttempts)
				store.EXPECT().ExistsChannel(gomock.Any(), gomock.Any()).Return(true, nil).Times(MaxGenerateAttempts)
			},
			check: func(t *testing.T, err error) {
				assert.True(t, types.IsEntityAlreadyExistsError(err))
			},
		},
		"origin beyond max index": {
			platName: "gse",
			setup: func(store *MockSequenceStore) {
				store.EXPECT().NextChannelOrigin(gomock.Any(), "gse").Return(MaxOriginID+1, nil)
			},
			check: func(t *testing.T, err error) {
				assert.True(t, types.IsRangeError(err))
			},
		},
		"sequence failure propagates": {
			platName: "gse",
			setup: func(store *MockSequenceStore) {
				store.EXPECT().NextChannelOrigin(gomock.Any(), "gse").Return(uint32(0), &types.ServiceUnavailableError{Message: "down"})
			},
			check: func(t *testing.T, err error) {
				assert.True(t, types.IsServiceUnavailableError(err))
			},
		},
		"existence check failure propagates": {
			platName: "gse",
			setup: func(store *MockSequenceStore) {
				store.EXPECT().NextChannelOrigin(gomock.Any(), "gse").Return(uint32(4), nil)
				store.EXPECT().ExistsChannel(gomock.Any(), gomock.Any()).Return(false, errors.New("boom"))
			},
			check: func(t *testing.T, err error) {
				assert.EqualError(t, err, "boom")
			},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			store := NewMockSequenceStore(ctrl)
			tc.setup(store)
			allocator := NewAllocator(store, testlogger.New(t))

			id, err := allocator.GenerateChannelID(ctx, tc.platName)
			if tc.check != nil {
				require.Error(t, err)
				tc.check(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantID, id)
		})
	}
}

func TestGenerateChannelIDUniqueness(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := NewMockSequenceStore(ctrl)
	next := uint32(0)
	store.EXPECT().NextChannelOrigin(gomock.Any(), "tglog").DoAndReturn(func(context.Context, string) (uint32, error) {
		next++
		return next, nil
	}).AnyTimes()
	store.EXPECT().ExistsChannel(gomock.Any(), gomock.Any()).Return(false, nil).AnyTimes()

	allocator := NewAllocator(store, testlogger.New(t))
	seen := make(map[uint32]struct{})
	tglog, _ := PlatformID("tglog")
	for i := 0; i < 50; i++ {
		id, err := allocator.GenerateChannelID(context.Background(), "tglog")
		require.NoError(t, err)
		_, dup := seen[id]
		require.False(t, dup)
		seen[id] = struct{}{}
		assert.Equal(t, tglog, PlatNum(id))
	}
}

func TestValidateExplicitChannelID(t *testing.T) {
	ctx := context.Background()

	tests := map[string]struct {
		channelID uint32
		setup     func(store *MockSequenceStore)
		check     func(err error) bool
	}{
		"beyond max index": {
			channelID: 1 << 31,
			setup:     func(store *MockSequenceStore) {},
			check:     types.IsRangeError,
		},
		"outside reserved ranges": {
			channelID: 5000,
			setup:     func(store *MockSequenceStore) {},
			check:     types.IsRangeError,
		},
		"already allocated": {
			channelID: 1005,
			setup: func(store *MockSequenceStore) {
				store.EXPECT().ExistsChannel(gomock.Any(), uint32(1005)).Return(true, nil)
			},
			check: types.IsEntityAlreadyExistsError,
		},
		"free reserved id": {
			channelID: 1200001,
			setup: func(store *MockSequenceStore) {
				store.EXPECT().ExistsChannel(gomock.Any(), uint32(1200001)).Return(false, nil)
			},
			check: func(err error) bool { return err == nil },
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			store := NewMockSequenceStore(ctrl)
			tc.setup(store)
			err := NewAllocator(store, testlogger.New(t)).ValidateExplicitChannelID(ctx, tc.channelID)
			assert.True(t, tc.check(err), "got %v", err)
		})
	}
}

func TestGenerateStreamToClusterID(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := NewMockSequenceStore(ctrl)
	store.EXPECT().NextStreamToOrigin(gomock.Any(), "cmdb").Return(uint32(6), nil)
	allocator := NewAllocator(store, testlogger.New(t))

	id, err := allocator.GenerateStreamToClusterID(context.Background(), "cmdb")
	require.NoError(t, err)
	assert.Equal(t, uint32(1030), id)

	_, err = allocator.GenerateStreamToClusterID(context.Background(), "nope")
	assert.True(t, types.IsBadRequestError(err))
}
