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

package streamroute

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path"
	"strings"
	"syscall"

	"github.com/urfave/cli"

	"github.com/uber/streamroute/common/config"
	"github.com/uber/streamroute/common/coordination"
	"github.com/uber/streamroute/common/log/loggerimpl"
	"github.com/uber/streamroute/common/log/tag"
)

const (
	flagRoot       = "root"
	flagConfig     = "config"
	flagEnv        = "env"
	flagZone       = "zone"
	flagAddress    = "address"
	flagTimeout    = "timeout"
	flagPlatName   = "plat_name"
	flagChannelID  = "channel_id"
	flagStreamToID = "stream_to_id"
	flagBizID      = "bk_biz_id"
	flagOdm        = "odm"
	flagType       = "type"

	// EnvKeyRoot the environment variable key for runtime root dir
	EnvKeyRoot = "STREAMROUTE_ROOT"
	// EnvKeyAdminAddress the environment variable key for the admin endpoint used by admin commands
	EnvKeyAdminAddress = "STREAMROUTE_ADMIN_ADDRESS"
)

func startHandler(c *cli.Context) error {
	env := getEnvironment(c)
	zone := getZone(c)
	configDir := getConfigDir(c)

	var cfg config.Config
	if err := config.Load(env, configDir, zone, &cfg); err != nil {
		return fmt.Errorf("failed to load config file: %w", err)
	}
	if err := cfg.ValidateAndFillDefaults(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	zapLogger, err := cfg.Log.NewZapLogger()
	if err != nil {
		return fmt.Errorf("failed to create the zap logger: %w", err)
	}
	logger := loggerimpl.NewLogger(zapLogger)
	logger.Info("config loaded", tag.Value(cfg.String()))

	client, err := coordination.NewZooKeeperClient(cfg.ZooKeeper.Options(), logger)
	if err != nil {
		return fmt.Errorf("failed to connect to zookeeper: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	daemon, err := newServer(ctx, &cfg, client, logger)
	if err != nil {
		client.Close()
		return err
	}
	daemon.Start()
	<-ctx.Done()
	daemon.Stop()
	return nil
}

func getRootDir(c *cli.Context) string {
	rootDir := c.GlobalString(flagRoot)
	if len(rootDir) == 0 {
		var err error
		if rootDir, err = os.Getwd(); err != nil {
			rootDir = "."
		}
	}
	return rootDir
}

func getConfigDir(c *cli.Context) string {
	return path.Join(getRootDir(c), c.GlobalString(flagConfig))
}

func getEnvironment(c *cli.Context) string {
	return strings.TrimSpace(c.GlobalString(flagEnv))
}

func getZone(c *cli.Context) string {
	return strings.TrimSpace(c.GlobalString(flagZone))
}

func adminFlags(extra ...cli.Flag) []cli.Flag {
	return append([]cli.Flag{
		cli.StringFlag{
			Name:   flagAddress + ", ad",
			Value:  "127.0.0.1:7940",
			Usage:  "host:port of the route admin endpoint",
			EnvVar: EnvKeyAdminAddress,
		},
		cli.DurationFlag{
			Name:  flagTimeout + ", t",
			Value: defaultAdminTimeout,
			Usage: "request timeout",
		},
	}, extra...)
}

func indexFlags() []cli.Flag {
	return adminFlags(
		cli.StringFlag{Name: flagPlatName + ", p", Usage: "owning platform"},
		cli.Int64Flag{Name: flagBizID + ", b", Value: -1, Usage: "business id, negative means unset"},
		cli.StringFlag{Name: flagOdm, Usage: "odm name"},
		cli.StringFlag{Name: flagType, Usage: "report mode of a stream-to"},
		cli.UintFlag{Name: flagStreamToID + ", s", Usage: "referenced stream-to id"},
	)
}

// BuildCLI is the command line of the server binary
func BuildCLI() *cli.App {
	app := cli.NewApp()
	app.Name = "streamroute"
	app.Usage = "Stream routing control plane"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:   flagRoot + ", r",
			Value:  ".",
			Usage:  "root directory of execution environment",
			EnvVar: EnvKeyRoot,
		},
		cli.StringFlag{
			Name:   flagConfig + ", c",
			Value:  "config",
			Usage:  "config dir path relative to root",
			EnvVar: config.EnvKeyConfigDir,
		},
		cli.StringFlag{
			Name:   flagEnv + ", e",
			Value:  "development",
			Usage:  "runtime environment",
			EnvVar: config.EnvKeyEnvironment,
		},
		cli.StringFlag{
			Name:   flagZone + ", az",
			Value:  "",
			Usage:  "availability zone",
			EnvVar: config.EnvKeyAvailabilityZone,
		},
	}

	app.Commands = []cli.Command{
		{
			Name:   "start",
			Usage:  "start the route admin server and the live route cache",
			Action: startHandler,
		},
		{
			Name:    "channel",
			Aliases: []string{"ch"},
			Usage:   "inspect channels",
			Subcommands: []cli.Command{
				{
					Name:  "query",
					Usage: "show one channel or every channel of a platform",
					Flags: adminFlags(
						cli.StringFlag{Name: flagPlatName + ", p", Usage: "owning platform"},
						cli.UintFlag{Name: flagChannelID + ", id", Usage: "channel id, zero lists the platform"},
					),
					Action: queryChannels,
				},
				{
					Name:   "ids",
					Usage:  "look channel ids up by index",
					Flags:  indexFlags(),
					Action: queryChannelIDs,
				},
			},
		},
		{
			Name:    "streamto",
			Aliases: []string{"st"},
			Usage:   "inspect stream-to clusters",
			Subcommands: []cli.Command{
				{
					Name:  "query",
					Usage: "show one stream-to or every stream-to of a platform",
					Flags: adminFlags(
						cli.StringFlag{Name: flagPlatName + ", p", Usage: "owning platform"},
						cli.UintFlag{Name: flagStreamToID + ", id", Usage: "stream-to id, zero lists the platform"},
					),
					Action: queryStreamTos,
				},
				{
					Name:   "ids",
					Usage:  "look stream-to ids up by index",
					Flags:  indexFlags(),
					Action: queryStreamToIDs,
				},
			},
		},
		{
			Name:  "index",
			Usage: "maintain secondary indices",
			Subcommands: []cli.Command{
				{
					Name:   "rebuild",
					Usage:  "re-create the index entries of every stored document",
					Flags:  adminFlags(),
					Action: rebuildIndices,
				},
			},
		},
	}
	return app
}
