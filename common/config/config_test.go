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
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uber-go/tally/prometheus"
	"gopkg.in/yaml.v2"

	"github.com/uber/streamroute/common"
	"github.com/uber/streamroute/common/log/loggerimpl"
)

func TestLoadRepositoryConfig(t *testing.T) {
	var cfg Config
	require.NoError(t, Load("development", "../../config", "", &cfg))
	require.NoError(t, cfg.ValidateAndFillDefaults())

	assert.Equal(t, []string{"127.0.0.1:2181"}, cfg.ZooKeeper.Servers)
	assert.Equal(t, 10*time.Second, cfg.ZooKeeper.SessionTimeout)
	assert.Equal(t, common.RootPath, cfg.Paths.Root)
	assert.Equal(t, 120*time.Second, cfg.Cache.ChannelGracePeriod)
	assert.Equal(t, "debug", cfg.Log.Level)
	require.NotNil(t, cfg.Metrics.Prometheus)
	assert.NotEmpty(t, cfg.String())
}

func TestLoadWrittenSections(t *testing.T) {
	sections := map[string]interface{}{
		"zookeeper": ZooKeeper{Servers: []string{"zk1:2181", "zk2:2181"}, SessionTimeout: 15 * time.Second},
		"cache":     Cache{QueueSize: 16, ChannelGracePeriod: time.Minute, SweepInterval: time.Second, PlatIDMode: true},
		"loader":    Loader{ResyncInterval: time.Second, Concurrency: 4},
		"admin":     Admin{ListenAddress: "127.0.0.1:0"},
	}
	out, err := yaml.Marshal(sections)
	require.NoError(t, err)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, baseFile), out, fileMode))

	var cfg Config
	require.NoError(t, Load("", dir, "", &cfg))
	assert.Equal(t, sections["zookeeper"], cfg.ZooKeeper)
	assert.Equal(t, sections["cache"], cfg.Cache)
	assert.Equal(t, sections["loader"], cfg.Loader)
	assert.Equal(t, "127.0.0.1:0", cfg.Admin.ListenAddress)
}

func TestFillDefaults(t *testing.T) {
	cfg := &Config{
		ZooKeeper: ZooKeeper{Servers: []string{"zk:2181"}},
		Admin:     Admin{ListenAddress: ":7940"},
	}
	require.NoError(t, cfg.ValidateAndFillDefaults())

	assert.Equal(t, common.PlatRegistryPath, cfg.Paths.PlatRegistry)
	assert.Equal(t, common.DefaultEventQueueSize, cfg.Cache.QueueSize)
	assert.Equal(t, common.StreamToGracePeriod, cfg.Cache.StreamToGracePeriod)
	assert.Equal(t, common.TombstoneSweepInterval, cfg.Cache.SweepInterval)
	assert.Equal(t, common.DefaultLoaderConcurrency, cfg.Loader.Concurrency)
	assert.Equal(t, defaultKafkaDialTimeout, cfg.Kafka.DialTimeout)
}

func TestFillDefaultsSizesTimerBuckets(t *testing.T) {
	cfg := &Config{
		ZooKeeper: ZooKeeper{Servers: []string{"zk:2181"}},
		Admin:     Admin{ListenAddress: ":7940", RebuildTimeout: time.Hour},
		Metrics:   Metrics{Prometheus: &prometheus.Configuration{}},
	}
	require.NoError(t, cfg.ValidateAndFillDefaults())
	buckets := cfg.Metrics.Prometheus.DefaultHistogramBuckets
	require.NotEmpty(t, buckets)
	assert.Equal(t, time.Hour.Seconds(), buckets[len(buckets)-1].Upper)
}

func TestValidate(t *testing.T) {
	tests := map[string]func(c *Config){
		"no servers":      func(c *Config) { c.ZooKeeper.Servers = nil },
		"no admin listen": func(c *Config) { c.Admin.ListenAddress = "" },
		"negative queue":  func(c *Config) { c.Cache.QueueSize = -1 },
		"grace too short": func(c *Config) {
			c.Cache.ChannelGracePeriod = time.Second
			c.Cache.SweepInterval = time.Minute
		},
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := &Config{
				ZooKeeper: ZooKeeper{Servers: []string{"zk:2181"}},
				Admin:     Admin{ListenAddress: ":7940"},
			}
			mutate(cfg)
			assert.Error(t, cfg.ValidateAndFillDefaults())
		})
	}
}

func TestStringMasksAuth(t *testing.T) {
	cfg := &Config{ZooKeeper: ZooKeeper{Auth: "user:secret"}}
	assert.NotContains(t, cfg.String(), "secret")
	assert.Equal(t, "user:secret", cfg.ZooKeeper.Auth)
}

func TestZooKeeperOptions(t *testing.T) {
	z := ZooKeeper{Servers: []string{"a:1", "b:2"}, SessionTimeout: time.Second, Auth: "u:p"}
	opts := z.Options()
	assert.Equal(t, z.Servers, opts.Servers)
	assert.Equal(t, time.Second, opts.SessionTimeout)
	assert.Equal(t, "u:p", opts.Auth)
}

func TestNewScopeWithoutPrometheus(t *testing.T) {
	m := &Metrics{}
	scope, closer := m.NewScope(loggerimpl.NewNopLogger())
	defer closer()
	assert.NotNil(t, scope)
}

func TestNewZapLogger(t *testing.T) {
	cfg := &Logger{Stdout: true, Level: "warn", Encoding: "console"}
	logger, err := cfg.NewZapLogger()
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(parseZapLevel("info")))

	_, err = (&Logger{Encoding: "xml"}).NewZapLogger()
	assert.Error(t, err)
}
