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

package config

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/uber-go/tally/prometheus"
	"gopkg.in/validator.v2"

	"github.com/uber/streamroute/common"
	"github.com/uber/streamroute/common/coordination"
	promBuckets "github.com/uber/streamroute/common/metrics/tally/prometheus"
)

type (
	// Config contains the configuration for the routing control plane
	Config struct {
		// Log is the logging config
		Log Logger `yaml:"log"`
		// ZooKeeper is the coordination service holding every document
		ZooKeeper ZooKeeper `yaml:"zookeeper"`
		// Paths are the coordination tree roots
		Paths Paths `yaml:"paths"`
		// Cache configures the live route cache
		Cache Cache `yaml:"cache"`
		// Loader configures the watch-driven cache loader
		Loader Loader `yaml:"loader"`
		// Metrics is the metrics subsystem configuration
		Metrics Metrics `yaml:"metrics"`
		// Admin is the management endpoint configuration
		Admin Admin `yaml:"admin"`
		// Kafka configures validation of kafka stream-to documents
		Kafka Kafka `yaml:"kafka"`
	}

	// Logger contains the config items for logger
	Logger struct {
		// Stdout is true if the output needs to goto standard out; default is stderr
		Stdout bool `yaml:"stdout"`
		// Level is the desired log level; see colocated zap_logger.go::parseZapLevel()
		Level string `yaml:"level"`
		// OutputFile is the path to the log output file
		OutputFile string `yaml:"outputFile"`
		// LevelKey is the desired log level, defaults to "level"
		LevelKey string `yaml:"levelKey"`
		// Encoding decides the format, supports "console" and "json".
		// "json" will print the log in JSON format(better for machine), while "console" will print in plain-text format(more human friendly)
		// Default is "json"
		Encoding string `yaml:"encoding"`
	}

	// ZooKeeper contains the coordination service connection settings
	ZooKeeper struct {
		Servers        []string      `yaml:"servers" validate:"min=1"`
		SessionTimeout time.Duration `yaml:"sessionTimeout"`
		// Auth is a digest credential in user:password form
		Auth string `yaml:"auth"`
		// ConnectTimeout bounds the wait for the first session at startup
		ConnectTimeout time.Duration `yaml:"connectTimeout"`
	}

	// Paths are the roots of the coordination tree
	Paths struct {
		Root         string `yaml:"root"`
		PlatRegistry string `yaml:"platRegistry"`
	}

	// Cache configures the live route cache
	Cache struct {
		QueueSize           int           `yaml:"queueSize" validate:"min=0"`
		ChannelGracePeriod  time.Duration `yaml:"channelGracePeriod"`
		StreamToGracePeriod time.Duration `yaml:"streamToGracePeriod"`
		SweepInterval       time.Duration `yaml:"sweepInterval"`
		// PlatIDMode stores channels flagged is_platid under their platform number
		PlatIDMode bool `yaml:"platIDMode"`
	}

	// Loader configures the cache loader
	Loader struct {
		ResyncInterval time.Duration `yaml:"resyncInterval"`
		Concurrency    int           `yaml:"concurrency" validate:"min=0"`
		Timeout        time.Duration `yaml:"timeout"`
	}

	// Metrics contains the config items for metrics subsystem
	Metrics struct {
		// Prometheus is the configuration for prometheus reporter
		Prometheus *prometheus.Configuration `yaml:"prometheus"`
		// Tags is the set of key-value pairs to be reported as part of every metric
		Tags map[string]string `yaml:"tags"`
		// Prefix sets the prefix to all outgoing metrics
		Prefix string `yaml:"prefix"`
		// ReportingInterval is the interval of metrics reporter
		ReportingInterval time.Duration `yaml:"reportingInterval"`
	}

	// Admin is the management endpoint configuration
	Admin struct {
		ListenAddress  string        `yaml:"listenAddress" validate:"nonzero"`
		RequestTimeout time.Duration `yaml:"requestTimeout"`
		// RebuildSchedule is a standard cron spec for index reconciliation, empty disables it
		RebuildSchedule string `yaml:"rebuildSchedule"`
		// RebuildTimeout bounds one scheduled reconciliation sweep
		RebuildTimeout time.Duration `yaml:"rebuildTimeout"`
	}

	// Kafka configures the kafka stream-to validator
	Kafka struct {
		// ProbeBrokers connects to the brokers of a kafka stream-to before it is stored
		ProbeBrokers bool          `yaml:"probeBrokers"`
		DialTimeout  time.Duration `yaml:"dialTimeout"`
	}
)

const (
	defaultSessionTimeout    = 10 * time.Second
	defaultConnectTimeout    = 30 * time.Second
	defaultRequestTimeout    = 10 * time.Second
	defaultReportingInterval = time.Second
	defaultKafkaDialTimeout  = 5 * time.Second
	defaultRebuildTimeout    = 10 * time.Minute
)

// ValidateAndFillDefaults validates this config and fills default values if needed
func (c *Config) ValidateAndFillDefaults() error {
	c.fillDefaults()
	return c.validate()
}

func (c *Config) validate() error {
	if err := validator.Validate(c); err != nil {
		return fmt.Errorf("invalid config: %v", err)
	}
	if c.Cache.ChannelGracePeriod < c.Cache.SweepInterval {
		return fmt.Errorf("cache.channelGracePeriod %v is shorter than cache.sweepInterval %v",
			c.Cache.ChannelGracePeriod, c.Cache.SweepInterval)
	}
	return nil
}

func (c *Config) fillDefaults() {
	if c.ZooKeeper.SessionTimeout == 0 {
		c.ZooKeeper.SessionTimeout = defaultSessionTimeout
	}
	if c.ZooKeeper.ConnectTimeout == 0 {
		c.ZooKeeper.ConnectTimeout = defaultConnectTimeout
	}
	if c.Paths.Root == "" {
		c.Paths.Root = common.RootPath
	}
	if c.Paths.PlatRegistry == "" {
		c.Paths.PlatRegistry = common.PlatRegistryPath
	}
	if c.Cache.QueueSize == 0 {
		c.Cache.QueueSize = common.DefaultEventQueueSize
	}
	if c.Cache.ChannelGracePeriod == 0 {
		c.Cache.ChannelGracePeriod = common.ChannelGracePeriod
	}
	if c.Cache.StreamToGracePeriod == 0 {
		c.Cache.StreamToGracePeriod = common.StreamToGracePeriod
	}
	if c.Cache.SweepInterval == 0 {
		c.Cache.SweepInterval = common.TombstoneSweepInterval
	}
	if c.Loader.ResyncInterval == 0 {
		c.Loader.ResyncInterval = common.DefaultResyncInterval
	}
	if c.Loader.Concurrency == 0 {
		c.Loader.Concurrency = common.DefaultLoaderConcurrency
	}
	if c.Loader.Timeout == 0 {
		c.Loader.Timeout = common.DefaultCoordinationTimeout
	}
	if c.Metrics.ReportingInterval == 0 {
		c.Metrics.ReportingInterval = defaultReportingInterval
	}
	if c.Admin.RequestTimeout == 0 {
		c.Admin.RequestTimeout = defaultRequestTimeout
	}
	if c.Admin.RebuildTimeout == 0 {
		c.Admin.RebuildTimeout = defaultRebuildTimeout
	}
	if c.Metrics.Prometheus != nil && len(c.Metrics.Prometheus.DefaultHistogramBuckets) == 0 {
		c.Metrics.Prometheus.DefaultHistogramBuckets = promBuckets.LatencyBuckets(c.Admin.RebuildTimeout)
	}
	if c.Kafka.DialTimeout == 0 {
		c.Kafka.DialTimeout = defaultKafkaDialTimeout
	}
}

// Options converts the connection settings for the zookeeper client
func (z *ZooKeeper) Options() coordination.ZooKeeperOptions {
	return coordination.ZooKeeperOptions{
		Servers:        z.Servers,
		SessionTimeout: z.SessionTimeout,
		Auth:           z.Auth,
	}
}

// String converts the config object into a string, masking the zookeeper credential
func (c *Config) String() string {
	masked := *c
	if masked.ZooKeeper.Auth != "" {
		masked.ZooKeeper.Auth = "******"
	}
	out, _ := json.MarshalIndent(masked, "", "    ")
	return string(out)
}
