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

//go:generate mockgen -package $GOPACKAGE -source $GOFILE -destination validator_mock.go -self_package github.com/uber/streamroute/common/messaging/kafka

package kafka

import (
	"context"
	"fmt"
	"time"

	"github.com/Shopify/sarama"

	"github.com/uber/streamroute/common/log"
	"github.com/uber/streamroute/common/log/tag"
	"github.com/uber/streamroute/common/types"
)

type (
	// Validator checks the kafka settings of a stream-to cluster before it is stored
	Validator interface {
		ValidateCluster(ctx context.Context, cluster *types.KafkaCluster) error
	}

	// ValidatorOptions configures broker probing
	ValidatorOptions struct {
		// ProbeBrokers connects to the brokers and fetches metadata
		ProbeBrokers bool
		DialTimeout  time.Duration
	}

	validatorImpl struct {
		options ValidatorOptions
		logger  log.Logger
	}
)

var _ Validator = (*validatorImpl)(nil)

// NewValidator creates a kafka settings validator
func NewValidator(options ValidatorOptions, logger log.Logger) Validator {
	if options.DialTimeout <= 0 {
		options.DialTimeout = 5 * time.Second
	}
	return &validatorImpl{
		options: options,
		logger:  logger.WithTags(tag.Component(tag.ComponentKafkaValidator)),
	}
}

func (v *validatorImpl) ValidateCluster(ctx context.Context, cluster *types.KafkaCluster) error {
	config, err := NewSaramaConfig(cluster)
	if err != nil {
		return err
	}
	if !v.options.ProbeBrokers {
		return nil
	}

	config.Net.DialTimeout = v.options.DialTimeout
	config.Metadata.Retry.Max = 0
	brokers := Brokers(cluster)

	result := make(chan error, 1)
	go func() {
		client, err := sarama.NewClient(brokers, config)
		if err == nil {
			client.Close()
		}
		result <- err
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-result:
		if err != nil {
			v.logger.Warn("kafka brokers unreachable", tag.Address(fmt.Sprint(brokers)), tag.Error(err))
			return &types.BadRequestError{Message: fmt.Sprintf("stream_to.kafka.storage_address %v is unreachable: %v", brokers, err)}
		}
		return nil
	}
}
