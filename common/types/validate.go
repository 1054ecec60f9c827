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
	"fmt"
	"strconv"

	"gopkg.in/validator.v2"
)

// Validate checks the owner fields of a channel metadata document
func (m *ChannelMetadata) Validate() error {
	if m.PlatName == "" {
		return &BadRequestError{Message: "metadata.plat_name is not set"}
	}
	return nil
}

// Validate checks the owner fields of a stream-to metadata document
func (m *StreamToMetadata) Validate() error {
	if m.PlatName == "" {
		return &BadRequestError{Message: "metadata.plat_name is not set"}
	}
	return nil
}

// Validate checks a route and its destination arm
func (c *Channel) Validate() error {
	if c.Name == "" {
		return &BadRequestError{Message: "route name is not set"}
	}
	switch t := c.StreamTo.Target.(type) {
	case nil:
		return &BadRequestError{Message: fmt.Sprintf("route %s: stream_to is not set", c.Name)}
	case *KafkaTopic:
		if t.TopicName == "" {
			return &BadRequestError{Message: fmt.Sprintf("route %s: stream_to.kafka.topic_name is not set", c.Name)}
		}
	case *PulsarTopic:
		if t.TopicName == "" {
			return &BadRequestError{Message: fmt.Sprintf("route %s: stream_to.pulsar.topic_name is not set", c.Name)}
		}
	case *RedisChannel:
		if t.ChannelName == "" {
			return &BadRequestError{Message: fmt.Sprintf("route %s: stream_to.redis.channel_name is not set", c.Name)}
		}
	}
	return nil
}

// Validate checks a filter predicate
func (f *StreamFilter) Validate() error {
	if f.Name == "" {
		return &BadRequestError{Message: "stream_filters.name is not set"}
	}
	if f.FieldIndex < 0 {
		return &BadRequestError{Message: fmt.Sprintf("filter %s: field_index %d is invalid", f.Name, f.FieldIndex)}
	}
	if f.FieldIn != FieldInProtocol && f.FieldIn != FieldInData {
		return &BadRequestError{Message: fmt.Sprintf("filter %s: field_in %q must be protocol or data", f.Name, f.FieldIn)}
	}
	switch f.FieldDataType {
	case FieldDataTypeInt:
		for _, v := range f.Values() {
			if _, err := strconv.ParseInt(v, 10, 64); err != nil {
				return &BadRequestError{Message: fmt.Sprintf("filter %s: field_data_value %q should be a number", f.Name, v)}
			}
		}
	case FieldDataTypeByte:
		for _, v := range f.Values() {
			if _, err := strconv.ParseUint(v, 10, 8); err != nil {
				return &BadRequestError{Message: fmt.Sprintf("filter %s: field_data_value %q should be a byte", f.Name, v)}
			}
		}
	case FieldDataTypeString:
	default:
		return &BadRequestError{Message: fmt.Sprintf("filter %s: field_data_type %q must be int, string or byte", f.Name, f.FieldDataType)}
	}
	return nil
}

// Values splits the filter value on its separator. An empty separator yields the whole value.
func (f *StreamFilter) Values() []string {
	if f.Separator == "" {
		return []string{f.FieldDataValue}
	}
	return splitNonEmpty(f.FieldDataValue, f.Separator)
}

// Validate checks every document of a channel config, their unique names and filter references.
func (c *ChannelConfig) Validate() error {
	if err := c.Metadata.Validate(); err != nil {
		return err
	}
	if len(c.Channels) == 0 {
		return &BadRequestError{Message: "route is empty"}
	}
	if err := c.validateEntries(); err != nil {
		return err
	}
	return c.CheckFilterReferences()
}

// ValidateSpecification checks a partial set of routes and filters used by update requests.
func (c *ChannelConfig) ValidateSpecification() error {
	if len(c.Channels) == 0 && len(c.Filters) == 0 {
		return &BadRequestError{Message: "specification carries neither route nor stream_filters"}
	}
	return c.validateEntries()
}

func (c *ChannelConfig) validateEntries() error {
	names := make(map[string]struct{}, len(c.Channels))
	for _, ch := range c.Channels {
		if err := ch.Validate(); err != nil {
			return err
		}
		if _, ok := names[ch.Name]; ok {
			return &BadRequestError{Message: fmt.Sprintf("duplicated route name %s", ch.Name)}
		}
		names[ch.Name] = struct{}{}
	}
	names = make(map[string]struct{}, len(c.Filters))
	for _, f := range c.Filters {
		if err := f.Validate(); err != nil {
			return err
		}
		if _, ok := names[f.Name]; ok {
			return &BadRequestError{Message: fmt.Sprintf("duplicated filter name %s", f.Name)}
		}
		names[f.Name] = struct{}{}
	}
	return nil
}

// CheckFilterReferences verifies every filter name used by a route is defined
func (c *ChannelConfig) CheckFilterReferences() error {
	for _, ch := range c.Channels {
		for _, list := range [][]string{ch.FilterNameAnd, ch.FilterNameOr} {
			for _, name := range list {
				if _, ok := c.Filter(name); !ok {
					return &BadRequestError{Message: fmt.Sprintf("route %s references undefined filter %s", ch.Name, name)}
				}
			}
		}
	}
	return nil
}

// Validate checks the cluster arm and its addresses
func (s *StreamToCluster) Validate() error {
	if s.Backend == nil {
		return &BadRequestError{Message: "stream_to.report_mode is not set"}
	}
	addrs := s.Backend.Addresses()
	if len(addrs) == 0 {
		return &BadRequestError{Message: fmt.Sprintf("stream_to.%s.storage_address is empty", s.Backend.ReportMode())}
	}
	for _, addr := range addrs {
		if err := validator.Validate(addr); err != nil {
			return &BadRequestError{Message: fmt.Sprintf("stream_to.%s.storage_address %v: %v", s.Backend.ReportMode(), addr, err)}
		}
	}
	if r, ok := s.Backend.(*RedisCluster); ok {
		if r.Mode != RedisModeSentinel && r.Mode != RedisModeSingle {
			return &BadRequestError{Message: fmt.Sprintf("stream_to.redis.mode %q must be sentinel or single", r.Mode)}
		}
	}
	return nil
}

// Validate checks a stream-to cluster config
func (c *StreamToClusterConfig) Validate() error {
	if err := c.Metadata.Validate(); err != nil {
		return err
	}
	return c.StreamTo.Validate()
}
