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
	"net"
	"strconv"

	"github.com/valyala/fastjson"
)

// Redis deployment modes
const (
	RedisModeSentinel = "sentinel"
	RedisModeSingle   = "single"
)

const (
	defaultKafkaQueueBufferingMaxMessages = 100000
	defaultKafkaMessageMaxBytes           = 1000000
)

type (
	// Address is one storage endpoint
	Address struct {
		IP   string `json:"ip" validate:"nonzero"`
		Port int    `json:"port" validate:"min=0,max=65535"`
	}

	// StreamToMetadata is stored under streamto/{id}/metadata
	StreamToMetadata struct {
		Version    string `json:"version"`
		StreamToID uint32 `json:"stream_to_id"`
		PlatName   string `json:"plat_name"`
		Label      *Label `json:"label,omitempty"`
	}

	// StreamToCluster describes one destination cluster. Backend holds exactly one arm.
	StreamToCluster struct {
		Name    string
		Backend ClusterBackend
	}

	// StreamToClusterConfig is the full document of a stream-to id
	StreamToClusterConfig struct {
		Metadata StreamToMetadata `json:"metadata"`
		StreamTo StreamToCluster  `json:"stream_to"`
	}

	// ClusterBackend is the per-backend part of a stream-to cluster
	ClusterBackend interface {
		ReportMode() ReportMode
		Addresses() []Address
		clusterBackend()
	}

	// KafkaCluster is a kafka destination
	KafkaCluster struct {
		StorageAddress            []Address `json:"storage_address"`
		SecurityProtocol          string    `json:"security_protocol,omitempty"`
		SaslMechanisms            string    `json:"sasl_mechanisms,omitempty"`
		SaslUsername              string    `json:"sasl_username,omitempty"`
		SaslPasswd                string    `json:"sasl_passwd,omitempty"`
		RequestRequiredAcks       string    `json:"request_required_acks"`
		QueueBufferingMaxMs       int       `json:"queue_buffering_max_ms"`
		QueueBufferingMaxMessages int       `json:"queue_buffering_max_messages"`
		MessageMaxBytes           int       `json:"message_max_bytes"`
	}

	// PulsarCluster is a pulsar destination
	PulsarCluster struct {
		StorageAddress []Address `json:"storage_address"`
		Token          string    `json:"token,omitempty"`
	}

	// RedisCluster is a redis destination in sentinel or single mode
	RedisCluster struct {
		StorageAddress []Address `json:"storage_address"`
		MasterName     string    `json:"master_name,omitempty"`
		Passwd         string    `json:"passwd,omitempty"`
		SentinelPasswd string    `json:"sentinel_passwd,omitempty"`
		Mode           string    `json:"mode"`
	}

	// ProxyCluster is a downstream data proxy destination
	ProxyCluster struct {
		StorageAddress       []Address `json:"storage_address"`
		HTTPRequestURI       string    `json:"http_request_uri,omitempty"`
		CertPath             string    `json:"certpath,omitempty"`
		ProxyProtocol        string    `json:"proxyprotocol"`
		ProxyVersion         string    `json:"proxyversion"`
		ConnectionNum        int       `json:"connectionnum"`
		Heartbeat            bool      `json:"heartbeat"`
		FillChannelID        bool      `json:"fillchannelid"`
		ThirdPartyKeyFile    string    `json:"thirdparty_keyfile,omitempty"`
		ThirdPartyCertPasswd string    `json:"thirdparty_cert_passwd,omitempty"`
		ThirdPartyCertFile   string    `json:"thirdparty_certfile,omitempty"`
		IsThirdPartyCert     bool      `json:"is_thirdparty_cert"`
	}
)

// String renders the address as host:port
func (a Address) String() string {
	return net.JoinHostPort(a.IP, strconv.Itoa(a.Port))
}

func (*KafkaCluster) ReportMode() ReportMode  { return ReportModeKafka }
func (*PulsarCluster) ReportMode() ReportMode { return ReportModePulsar }
func (*RedisCluster) ReportMode() ReportMode  { return ReportModeRedis }
func (*ProxyCluster) ReportMode() ReportMode  { return ReportModeProxy }

func (c *KafkaCluster) Addresses() []Address  { return c.StorageAddress }
func (c *PulsarCluster) Addresses() []Address { return c.StorageAddress }
func (c *RedisCluster) Addresses() []Address  { return c.StorageAddress }
func (c *ProxyCluster) Addresses() []Address  { return c.StorageAddress }

func (*KafkaCluster) clusterBackend()  {}
func (*PulsarCluster) clusterBackend() {}
func (*RedisCluster) clusterBackend()  {}
func (*ProxyCluster) clusterBackend()  {}

// UnmarshalJSON applies producer defaults
func (c *KafkaCluster) UnmarshalJSON(b []byte) error {
	type alias KafkaCluster
	a := alias{
		RequestRequiredAcks:       "1",
		QueueBufferingMaxMs:       -1,
		QueueBufferingMaxMessages: defaultKafkaQueueBufferingMaxMessages,
		MessageMaxBytes:           defaultKafkaMessageMaxBytes,
	}
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	*c = KafkaCluster(a)
	return nil
}

// UnmarshalJSON defaults to sentinel mode
func (c *RedisCluster) UnmarshalJSON(b []byte) error {
	type alias RedisCluster
	a := alias{Mode: RedisModeSentinel}
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	*c = RedisCluster(a)
	return nil
}

// UnmarshalJSON applies connection defaults
func (c *ProxyCluster) UnmarshalJSON(b []byte) error {
	type alias ProxyCluster
	a := alias{
		ProxyProtocol: "tcp",
		ProxyVersion:  "v1",
		ConnectionNum: 2,
		Heartbeat:     true,
		FillChannelID: true,
	}
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	*c = ProxyCluster(a)
	return nil
}

// ReportMode returns the backend kind, empty when unset
func (s StreamToCluster) ReportMode() ReportMode {
	if s.Backend == nil {
		return ""
	}
	return s.Backend.ReportMode()
}

// MarshalJSON writes report_mode plus the matching arm
func (s StreamToCluster) MarshalJSON() ([]byte, error) {
	out := map[string]interface{}{
		"name": s.Name,
	}
	if s.Backend != nil {
		out["report_mode"] = s.Backend.ReportMode()
		out[string(s.Backend.ReportMode())] = s.Backend
	}
	return json.Marshal(out)
}

// UnmarshalJSON selects the arm named by report_mode and rejects any other populated arm.
func (s *StreamToCluster) UnmarshalJSON(b []byte) error {
	var p fastjson.Parser
	v, err := p.ParseBytes(b)
	if err != nil {
		return &BadRequestError{Message: fmt.Sprintf("stream_to is not valid json: %v", err)}
	}
	mode := ReportMode(v.GetStringBytes("report_mode"))
	var backend ClusterBackend
	switch mode {
	case ReportModeKafka:
		backend = &KafkaCluster{}
	case ReportModePulsar:
		backend = &PulsarCluster{}
	case ReportModeRedis:
		backend = &RedisCluster{}
	case ReportModeProxy:
		backend = &ProxyCluster{}
	default:
		return &BadRequestError{Message: fmt.Sprintf("unsupported report_mode %q", mode)}
	}
	for _, other := range []ReportMode{ReportModeKafka, ReportModePulsar, ReportModeRedis, ReportModeProxy} {
		if other != mode && v.Exists(string(other)) {
			return &BadRequestError{Message: fmt.Sprintf("report_mode %q does not match populated %q settings", mode, other)}
		}
	}
	arm := v.Get(string(mode))
	if arm == nil || arm.Type() != fastjson.TypeObject {
		return &BadRequestError{Message: fmt.Sprintf("%s settings are not set", mode)}
	}
	if err := json.Unmarshal(arm.MarshalTo(nil), backend); err != nil {
		return &BadRequestError{Message: fmt.Sprintf("invalid %s settings: %v", mode, err)}
	}
	s.Name = string(v.GetStringBytes("name"))
	s.Backend = backend
	return nil
}
