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

package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/uber/streamroute/common/log/testlogger"
	"github.com/uber/streamroute/common/types"
)

func testConfig() *types.ChannelConfig {
	return &types.ChannelConfig{
		Metadata: types.ChannelMetadata{ChannelID: 524289, PlatName: "bkmonitor"},
		Filters: []*types.StreamFilter{
			{Name: "proto_biz", FieldIn: types.FieldInProtocol, FieldIndex: 0, FieldDataType: types.FieldDataTypeString, FieldDataValue: "biz_a"},
			{Name: "proto_set", FieldIn: types.FieldInProtocol, FieldIndex: 1, FieldDataType: types.FieldDataTypeInt, FieldDataValue: "1,2,3", Separator: ","},
			{Name: "data_table", FieldIn: types.FieldInData, FieldIndex: 0, FieldDataType: types.FieldDataTypeString, FieldDataValue: "table_a", Separator: "|"},
			{Name: "data_level", FieldIn: types.FieldInData, FieldIndex: 2, FieldDataType: types.FieldDataTypeInt, FieldDataValue: "5", Separator: "|"},
			{Name: "data_byte", FieldIn: types.FieldInData, FieldIndex: 1, FieldDataType: types.FieldDataTypeByte, FieldDataValue: "65", Separator: "|"},
		},
	}
}

func TestAdmit(t *testing.T) {
	tests := map[string]struct {
		and  []string
		or   []string
		msg  *RawMessage
		want bool
	}{
		"no filters": {
			msg:  &RawMessage{},
			want: true,
		},
		"and protocol match": {
			and:  []string{"proto_biz"},
			msg:  &RawMessage{Fields: []string{"biz_a"}},
			want: true,
		},
		"and protocol mismatch": {
			and:  []string{"proto_biz"},
			msg:  &RawMessage{Fields: []string{"biz_b"}},
			want: false,
		},
		"protocol set membership": {
			and:  []string{"proto_set"},
			msg:  &RawMessage{Fields: []string{"biz_a", "2"}},
			want: true,
		},
		"protocol falls back to tags": {
			and:  []string{"proto_biz"},
			msg:  &RawMessage{Tags: "[x][biz_a][y]"},
			want: true,
		},
		"protocol tag missing": {
			and:  []string{"proto_biz"},
			msg:  &RawMessage{Tags: "[biz_b]"},
			want: false,
		},
		"and protocol and data": {
			and:  []string{"proto_biz", "data_table"},
			msg:  &RawMessage{Fields: []string{"biz_a"}, Data: []byte("table_a|rest")},
			want: true,
		},
		"and data mismatch": {
			and:  []string{"proto_biz", "data_table"},
			msg:  &RawMessage{Fields: []string{"biz_a"}, Data: []byte("table_b|rest")},
			want: false,
		},
		"data numeric field": {
			and:  []string{"data_level"},
			msg:  &RawMessage{Data: []byte("t|x|5")},
			want: true,
		},
		"data field beyond payload": {
			and:  []string{"data_level"},
			msg:  &RawMessage{Data: []byte("t|x")},
			want: false,
		},
		"data byte as character": {
			and:  []string{"data_byte"},
			msg:  &RawMessage{Data: []byte("t|A|1")},
			want: true,
		},
		"or needs one": {
			or:   []string{"proto_biz", "data_table"},
			msg:  &RawMessage{Fields: []string{"biz_b"}, Data: []byte("table_a|x")},
			want: true,
		},
		"or none match": {
			or:   []string{"proto_biz", "data_table"},
			msg:  &RawMessage{Fields: []string{"biz_b"}, Data: []byte("table_b|x")},
			want: false,
		},
		"and passes but or fails": {
			and:  []string{"proto_biz"},
			or:   []string{"data_table"},
			msg:  &RawMessage{Fields: []string{"biz_a"}, Data: []byte("table_b")},
			want: false,
		},
		"unknown names are skipped": {
			and:  []string{"missing"},
			msg:  &RawMessage{},
			want: true,
		},
	}

	config := testConfig()
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			route := &types.Channel{Name: "r", FilterNameAnd: tc.and, FilterNameOr: tc.or}
			f := Compile(config, route, testlogger.New(t))
			assert.Equal(t, tc.want, f.Admit(tc.msg))
		})
	}
}

func TestDataField(t *testing.T) {
	field, ok := dataField([]byte("a||c"), []byte("||"), 1)
	assert.True(t, ok)
	assert.Equal(t, "c", field)

	field, ok = dataField([]byte("whole"), nil, 0)
	assert.True(t, ok)
	assert.Equal(t, "whole", field)

	_, ok = dataField([]byte("whole"), nil, 1)
	assert.False(t, ok)
}

func TestEmpty(t *testing.T) {
	var f *Filter
	assert.True(t, f.Empty())
	assert.True(t, f.Admit(&RawMessage{}))
}
