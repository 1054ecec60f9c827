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

package types

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// ReportMode names a stream-to backend kind
type ReportMode string

// Supported backend kinds
const (
	ReportModeKafka  ReportMode = "kafka"
	ReportModePulsar ReportMode = "pulsar"
	ReportModeRedis  ReportMode = "redis"
	ReportModeProxy  ReportMode = "proxy"
)

// FieldLocation says where a filter looks for its field
type FieldLocation string

// FieldDataType is the coercion applied before comparing a filter value
type FieldDataType string

const (
	FieldInProtocol FieldLocation = "protocol"
	FieldInData     FieldLocation = "data"

	FieldDataTypeInt    FieldDataType = "int"
	FieldDataTypeByte   FieldDataType = "byte"
	FieldDataTypeString FieldDataType = "string"
)

type (
	// Label is the optional business classification of a document
	Label struct {
		Odm     string `json:"odm"`
		BizID   *int64 `json:"bk_biz_id,omitempty"`
		BizName string `json:"bk_biz_name"`
	}

	// ChannelMetadata is stored under channelid/{id}/metadata
	ChannelMetadata struct {
		Version   string `json:"version"`
		ChannelID uint32 `json:"channel_id"`
		PlatName  string `json:"plat_name"`
		Label     *Label `json:"label,omitempty"`
		IsPlatID  bool   `json:"is_platid,omitempty"`
	}

	// Channel is one named route of a channel config
	Channel struct {
		Name          string   `json:"name"`
		StreamTo      StreamTo `json:"stream_to"`
		FilterNameAnd []string `json:"filter_name_and"`
		FilterNameOr  []string `json:"filter_name_or"`
	}

	// StreamFilter is a single admission predicate
	StreamFilter struct {
		Name           string        `json:"name"`
		FieldIndex     int           `json:"field_index"`
		FieldDataType  FieldDataType `json:"field_data_type"`
		FieldDataValue string        `json:"field_data_value"`
		Separator      string        `json:"field_separator"`
		FieldIn        FieldLocation `json:"field_in"`
	}

	// ChannelConfig is the full document of a channel id
	ChannelConfig struct {
		Metadata ChannelMetadata `json:"metadata"`
		Channels []*Channel      `json:"route"`
		Filters  []*StreamFilter `json:"stream_filters"`
	}

	// StreamTo is the destination reference of a route. Target holds exactly one backend arm.
	StreamTo struct {
		StreamToID uint32
		Target     RouteTarget
	}

	// RouteTarget is the per-backend part of a route destination
	RouteTarget interface {
		ReportMode() ReportMode
		routeTarget()
	}

	// KafkaTopic routes to a kafka topic
	KafkaTopic struct {
		TopicName string `json:"topic_name"`
		DataSet   string `json:"data_set"`
		BizID     int64  `json:"biz_id"`
		Partition int    `json:"partition"`
	}

	// PulsarTopic routes to a pulsar topic
	PulsarTopic struct {
		TopicName  string `json:"topic_name"`
		Tenant     string `json:"tenant"`
		Namespace  string `json:"namespace"`
		DataSet    string `json:"data_set"`
		BizID      int64  `json:"biz_id"`
		Persistent string `json:"persistent"`
	}

	// RedisChannel routes to a redis pub/sub channel
	RedisChannel struct {
		ChannelName string `json:"channel_name"`
		DataSet     string `json:"data_set"`
		BizID       int64  `json:"biz_id"`
	}

	// ProxyTarget forwards to a downstream data proxy
	ProxyTarget struct{}

	streamToJSON struct {
		StreamToID uint32        `json:"stream_to_id"`
		Kafka      *KafkaTopic   `json:"kafka,omitempty"`
		Pulsar     *PulsarTopic  `json:"pulsar,omitempty"`
		Redis      *RedisChannel `json:"redis,omitempty"`
		Proxy      *ProxyTarget  `json:"proxy,omitempty"`
	}
)

func (*KafkaTopic) ReportMode() ReportMode   { return ReportModeKafka }
func (*PulsarTopic) ReportMode() ReportMode  { return ReportModePulsar }
func (*RedisChannel) ReportMode() ReportMode { return ReportModeRedis }
func (*ProxyTarget) ReportMode() ReportMode  { return ReportModeProxy }

func (*KafkaTopic) routeTarget()   {}
func (*PulsarTopic) routeTarget()  {}
func (*RedisChannel) routeTarget() {}
func (*ProxyTarget) routeTarget()  {}

// UnmarshalJSON applies the partition default
func (t *KafkaTopic) UnmarshalJSON(b []byte) error {
	type alias KafkaTopic
	a := alias{Partition: 1}
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	*t = KafkaTopic(a)
	return nil
}

// ResolvedTopic is the topic name producers write to
func (t *KafkaTopic) ResolvedTopic() string {
	if t.TopicName != "" {
		return t.TopicName
	}
	return t.DataSet + strconv.FormatInt(t.BizID, 10)
}

// ResolvedTopic is the fully qualified pulsar topic
func (t *PulsarTopic) ResolvedTopic() string {
	scheme := t.Persistent
	if scheme == "" {
		scheme = "persistent"
	}
	name := scheme + "://"
	if t.Tenant != "" {
		name += t.Tenant + "/"
	}
	if t.Namespace != "" {
		name += t.Namespace + "/"
	}
	topic := t.TopicName
	if topic == "" {
		topic = t.DataSet + strconv.FormatInt(t.BizID, 10)
	}
	return name + topic
}

// ReportMode returns the backend kind of the target, empty when unset
func (s StreamTo) ReportMode() ReportMode {
	if s.Target == nil {
		return ""
	}
	return s.Target.ReportMode()
}

// MarshalJSON encodes the target as its backend-named arm
func (s StreamTo) MarshalJSON() ([]byte, error) {
	out := streamToJSON{StreamToID: s.StreamToID}
	switch t := s.Target.(type) {
	case *KafkaTopic:
		out.Kafka = t
	case *PulsarTopic:
		out.Pulsar = t
	case *RedisChannel:
		out.Redis = t
	case *ProxyTarget:
		out.Proxy = t
	case nil:
	default:
		return nil, fmt.Errorf("unknown route target %T", t)
	}
	return json.Marshal(out)
}

// UnmarshalJSON requires exactly one backend arm
func (s *StreamTo) UnmarshalJSON(b []byte) error {
	var in streamToJSON
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}
	var targets []RouteTarget
	if in.Kafka != nil {
		targets = append(targets, in.Kafka)
	}
	if in.Pulsar != nil {
		targets = append(targets, in.Pulsar)
	}
	if in.Redis != nil {
		targets = append(targets, in.Redis)
	}
	if in.Proxy != nil {
		targets = append(targets, in.Proxy)
	}
	if len(targets) != 1 {
		return &BadRequestError{Message: fmt.Sprintf("stream_to must carry exactly one of kafka, pulsar, redis or proxy, got %d", len(targets))}
	}
	s.StreamToID = in.StreamToID
	s.Target = targets[0]
	return nil
}

// HasIndexableBizID reports whether the label carries a business id index key
func (l *Label) HasIndexableBizID() bool {
	return l != nil && l.BizID != nil && *l.BizID >= 0
}

// Channel returns the route with the given name
func (c *ChannelConfig) Channel(name string) (*Channel, bool) {
	for _, ch := range c.Channels {
		if ch.Name == name {
			return ch, true
		}
	}
	return nil, false
}

// Filter returns the filter with the given name
func (c *ChannelConfig) Filter(name string) (*StreamFilter, bool) {
	for _, f := range c.Filters {
		if f.Name == name {
			return f, true
		}
	}
	return nil, false
}

// Merge overwrites routes and filters with matching names in place and appends the rest.
func (c *ChannelConfig) Merge(channels []*Channel, filters []*StreamFilter) {
	for _, in := range channels {
		replaced := false
		for i, existing := range c.Channels {
			if existing.Name == in.Name {
				c.Channels[i] = in
				replaced = true
				break
			}
		}
		if !replaced {
			c.Channels = append(c.Channels, in)
		}
	}
	for _, in := range filters {
		replaced := false
		for i, existing := range c.Filters {
			if existing.Name == in.Name {
				c.Filters[i] = in
				replaced = true
				break
			}
		}
		if !replaced {
			c.Filters = append(c.Filters, in)
		}
	}
}

// StreamToIDs returns the distinct stream-to ids referenced by the routes
func (c *ChannelConfig) StreamToIDs() []uint32 {
	seen := make(map[uint32]struct{}, len(c.Channels))
	ids := make([]uint32, 0, len(c.Channels))
	for _, ch := range c.Channels {
		if _, ok := seen[ch.StreamTo.StreamToID]; ok {
			continue
		}
		seen[ch.StreamTo.StreamToID] = struct{}{}
		ids = append(ids, ch.StreamTo.StreamToID)
	}
	return ids
}
