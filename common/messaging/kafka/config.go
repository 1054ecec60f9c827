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

package kafka

import (
	"crypto/tls"
	"fmt"
	"strings"
	"time"

	"github.com/Shopify/sarama"

	"github.com/uber/streamroute/common/types"
)

const (
	securityPlaintext     = "plaintext"
	securitySSL           = "ssl"
	securitySASLPlaintext = "sasl_plaintext"
	securitySASLSSL       = "sasl_ssl"

	clientID = "streamroute"
)

// Brokers formats the storage addresses of a kafka cluster
func Brokers(cluster *types.KafkaCluster) []string {
	brokers := make([]string, 0, len(cluster.StorageAddress))
	for _, addr := range cluster.StorageAddress {
		brokers = append(brokers, addr.String())
	}
	return brokers
}

// NewSaramaConfig translates the producer settings of a stream-to kafka cluster.
// Settings sarama would reject are reported as bad requests.
func NewSaramaConfig(cluster *types.KafkaCluster) (*sarama.Config, error) {
	config := sarama.NewConfig()
	config.ClientID = clientID
	config.Producer.Return.Successes = true

	acks, err := requiredAcks(cluster.RequestRequiredAcks)
	if err != nil {
		return nil, err
	}
	config.Producer.RequiredAcks = acks

	if cluster.QueueBufferingMaxMs > 0 {
		config.Producer.Flush.Frequency = time.Duration(cluster.QueueBufferingMaxMs) * time.Millisecond
	}
	if cluster.QueueBufferingMaxMessages > 0 {
		config.Producer.Flush.MaxMessages = cluster.QueueBufferingMaxMessages
	}
	if cluster.MessageMaxBytes > 0 {
		config.Producer.MaxMessageBytes = cluster.MessageMaxBytes
	}

	if err := applySecurity(config, cluster); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, &types.BadRequestError{Message: fmt.Sprintf("stream_to.kafka: %v", err)}
	}
	return config, nil
}

func requiredAcks(value string) (sarama.RequiredAcks, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "0":
		return sarama.NoResponse, nil
	case "", "1":
		return sarama.WaitForLocal, nil
	case "-1", "all":
		return sarama.WaitForAll, nil
	}
	return 0, &types.BadRequestError{
		Message: fmt.Sprintf("stream_to.kafka.request_required_acks %q must be 0, 1, -1 or all", value),
	}
}

func applySecurity(config *sarama.Config, cluster *types.KafkaCluster) error {
	protocol := strings.ToLower(cluster.SecurityProtocol)
	switch protocol {
	case "", securityPlaintext:
		return nil
	case securitySSL:
		config.Net.TLS.Enable = true
		config.Net.TLS.Config = &tls.Config{MinVersion: tls.VersionTLS12}
		return nil
	case securitySASLPlaintext, securitySASLSSL:
	default:
		return &types.BadRequestError{
			Message: fmt.Sprintf("stream_to.kafka.security_protocol %q is not supported", cluster.SecurityProtocol),
		}
	}

	mechanism := strings.ToUpper(cluster.SaslMechanisms)
	if mechanism == "" {
		mechanism = sarama.SASLTypePlaintext
	}
	if mechanism != sarama.SASLTypePlaintext {
		return &types.BadRequestError{
			Message: fmt.Sprintf("stream_to.kafka.sasl_mechanisms %q is not supported, expected %s", cluster.SaslMechanisms, sarama.SASLTypePlaintext),
		}
	}
	config.Net.SASL.Enable = true
	config.Net.SASL.Mechanism = sarama.SASLTypePlaintext
	config.Net.SASL.User = cluster.SaslUsername
	config.Net.SASL.Password = cluster.SaslPasswd
	config.Net.SASL.Handshake = true
	if protocol == securitySASLSSL {
		config.Net.TLS.Enable = true
		config.Net.TLS.Config = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	return nil
}
