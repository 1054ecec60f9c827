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

// Package filter decides whether a message is admitted by a route's stream filters.
package filter

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/uber/streamroute/common/log"
	"github.com/uber/streamroute/common/log/tag"
	"github.com/uber/streamroute/common/types"
)

type (
	// Message is the part of a data-plane message the filters inspect
	Message interface {
		// ProtocolField returns the header field at index, false when the header has no such field
		ProtocolField(index int) (string, bool)
		// ProtocolTags returns the header extension string made of [tag] tokens
		ProtocolTags() string
		Payload() []byte
	}

	// Filter is the compiled, immutable admission rule of one route
	Filter struct {
		andProtocol []*predicate
		andData     []*predicate
		or          []*predicate
	}

	predicate struct {
		name      string
		inData    bool
		index     int
		dataType  types.FieldDataType
		separator []byte
		strings   map[string]struct{}
		numbers   map[int64]struct{}
		tags      []string
	}
)

// Compile resolves the route's AND and OR filter names against the config.
// Names that do not resolve are skipped with a warning.
func Compile(config *types.ChannelConfig, route *types.Channel, logger log.Logger) *Filter {
	f := &Filter{}
	for _, name := range route.FilterNameAnd {
		p, ok := resolve(config, route, name, logger)
		if !ok {
			continue
		}
		if p.inData {
			f.andData = append(f.andData, p)
		} else {
			f.andProtocol = append(f.andProtocol, p)
		}
	}
	var orData []*predicate
	for _, name := range route.FilterNameOr {
		p, ok := resolve(config, route, name, logger)
		if !ok {
			continue
		}
		if p.inData {
			orData = append(orData, p)
		} else {
			f.or = append(f.or, p)
		}
	}
	// protocol predicates first so the payload is only split when needed
	f.or = append(f.or, orData...)
	return f
}

func resolve(config *types.ChannelConfig, route *types.Channel, name string, logger log.Logger) (*predicate, bool) {
	sf, ok := config.Filter(name)
	if !ok {
		logger.Warn("route references an unknown filter",
			tag.ChannelID(config.Metadata.ChannelID),
			tag.ChannelName(route.Name),
			tag.FilterName(name))
		return nil, false
	}
	return newPredicate(sf), true
}

func newPredicate(sf *types.StreamFilter) *predicate {
	p := &predicate{
		name:     sf.Name,
		inData:   sf.FieldIn == types.FieldInData,
		index:    sf.FieldIndex,
		dataType: sf.FieldDataType,
		strings:  make(map[string]struct{}),
		numbers:  make(map[int64]struct{}),
	}
	if sf.Separator != "" {
		p.separator = []byte(sf.Separator)
	}
	for _, v := range sf.Values() {
		p.strings[v] = struct{}{}
		p.tags = append(p.tags, "["+v+"]")
		if n, ok := parseNumber(v, p.dataType); ok {
			p.numbers[n] = struct{}{}
		}
	}
	return p
}

// Empty reports whether the route admits every message
func (f *Filter) Empty() bool {
	return f == nil || (len(f.andProtocol) == 0 && len(f.andData) == 0 && len(f.or) == 0)
}

// Admit applies the rule: every AND predicate matches and, when OR predicates exist, at least one of them does.
func (f *Filter) Admit(msg Message) bool {
	if f.Empty() {
		return true
	}
	for _, p := range f.andProtocol {
		if !p.match(msg) {
			return false
		}
	}
	for _, p := range f.andData {
		if !p.match(msg) {
			return false
		}
	}
	if len(f.or) == 0 {
		return true
	}
	for _, p := range f.or {
		if p.match(msg) {
			return true
		}
	}
	return false
}

func (p *predicate) match(msg Message) bool {
	if p.inData {
		field, ok := dataField(msg.Payload(), p.separator, p.index)
		return ok && p.matchValue(field)
	}
	if field, ok := msg.ProtocolField(p.index); ok {
		return p.matchValue(field)
	}
	// headers without indexed fields carry the values as [tag] tokens
	tags := msg.ProtocolTags()
	for _, t := range p.tags {
		if strings.Contains(tags, t) {
			return true
		}
	}
	return false
}

func (p *predicate) matchValue(field string) bool {
	switch p.dataType {
	case types.FieldDataTypeInt, types.FieldDataTypeByte:
		n, ok := parseNumber(strings.TrimSpace(field), p.dataType)
		if !ok && p.dataType == types.FieldDataTypeByte && len(field) == 1 {
			n, ok = int64(field[0]), true
		}
		if !ok {
			return false
		}
		_, found := p.numbers[n]
		return found
	default:
		_, found := p.strings[field]
		return found
	}
}

func parseNumber(v string, dataType types.FieldDataType) (int64, bool) {
	switch dataType {
	case types.FieldDataTypeInt:
		n, err := strconv.ParseInt(v, 10, 64)
		return n, err == nil
	case types.FieldDataTypeByte:
		n, err := strconv.ParseUint(v, 10, 8)
		return int64(n), err == nil
	}
	return 0, false
}

// dataField returns the index-th separator delimited field of the payload.
// Without a separator the whole payload is field zero.
func dataField(payload []byte, separator []byte, index int) (string, bool) {
	if len(separator) == 0 {
		if index != 0 {
			return "", false
		}
		return string(payload), true
	}
	for i := 0; ; i++ {
		pos := bytes.Index(payload, separator)
		if i == index {
			if pos < 0 {
				return string(payload), true
			}
			return string(payload[:pos]), true
		}
		if pos < 0 {
			return "", false
		}
		payload = payload[pos+len(separator):]
	}
}
