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
	"context"
	"sort"
	"strconv"

	"github.com/uber/streamroute/common/log"
	"github.com/uber/streamroute/common/metrics"
	"github.com/uber/streamroute/common/persistence"
	"github.com/uber/streamroute/common/types"
)

type indexKey struct {
	family string
	key    string
}

// QueryChannelIDs returns the channel ids matching every key of the condition
func (h *handlerImpl) QueryChannelIDs(
	ctx context.Context,
	request *QueryIndexRequest,
) (retResp *QueryIndexResponse, retError error) {
	defer log.CapturePanic(h.logger, &retError)
	return h.queryIndex(ctx, request, h.store.QueryChannelIDs, persistence.ChannelIndexFamilies())
}

// QueryStreamToIDs returns the stream-to ids matching every key of the condition
func (h *handlerImpl) QueryStreamToIDs(
	ctx context.Context,
	request *QueryIndexRequest,
) (retResp *QueryIndexResponse, retError error) {
	defer log.CapturePanic(h.logger, &retError)
	return h.queryIndex(ctx, request, h.store.QueryStreamToIDs, persistence.StreamToIndexFamilies())
}

func (h *handlerImpl) queryIndex(
	ctx context.Context,
	request *QueryIndexRequest,
	query func(ctx context.Context, family string, key string) ([]uint32, error),
	families []string,
) (*QueryIndexResponse, error) {
	var platName string
	if request != nil {
		platName = request.Condition.PlatName
	}
	scope, sw := h.startRequestProfile(metrics.AdminQueryIndexScope, platName)
	defer sw.Stop()

	if request == nil {
		return nil, h.error(errRequestNotSet, scope, h.logger)
	}
	keys := indexKeys(&request.Condition, families)
	if len(keys) == 0 {
		return nil, h.error(&types.BadRequestError{Message: "condition carries no index key"}, scope, h.logger)
	}

	var result map[uint32]struct{}
	for _, k := range keys {
		ids, err := query(ctx, k.family, k.key)
		if err != nil {
			return nil, h.error(err, scope, h.logger)
		}
		next := make(map[uint32]struct{}, len(ids))
		for _, id := range ids {
			if _, ok := result[id]; result == nil || ok {
				next[id] = struct{}{}
			}
		}
		result = next
		if len(result) == 0 {
			break
		}
	}

	ids := make([]uint32, 0, len(result))
	for id := range result {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return &QueryIndexResponse{IDs: ids}, nil
}

// indexKeys lists the keys of the condition, keeping only families the index accepts
func indexKeys(condition *IndexCondition, families []string) []indexKey {
	var keys []indexKey
	add := func(family, key string) {
		if key == "" {
			return
		}
		for _, f := range families {
			if f == family {
				keys = append(keys, indexKey{family: family, key: key})
				return
			}
		}
	}
	add(persistence.IndexPlatName, condition.PlatName)
	if condition.BizID != nil && *condition.BizID >= 0 {
		add(persistence.IndexBizID, strconv.FormatInt(*condition.BizID, 10))
	}
	add(persistence.IndexOdm, condition.Odm)
	add(persistence.IndexType, condition.Type)
	if condition.StreamToID != 0 {
		add(persistence.IndexStreamToID, strconv.FormatUint(uint64(condition.StreamToID), 10))
	}
	return keys
}
