// Copyright 2025 The LinnFS Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Binary linnfs inspects LinnFS filesystem images.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"

	"linnfs.dev/linnfs/cmd/linnfs/cmd"
	"linnfs.dev/linnfs/cmd/linnfs/config"
)

var (
	configFile = flag.String("config", "", "path to a TOML configuration file")
	debug      = flag.Bool("debug", false, "enable debug logging")
	logFile    = flag.String("log-file", "", "write logs to this file instead of stderr")
)

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(new(cmd.Info), "")
	subcommands.Register(new(cmd.Ls), "")
	subcommands.Register(new(cmd.Cat), "")
	subcommands.Register(new(cmd.Stat), "")

	flag.Parse()

	conf := config.Default()
	if *configFile != "" {
		var err error
		if conf, err = config.Load(*configFile); err != nil {
			logrus.WithError(err).Fatal("loading configuration")
		}
	}
	if *debug {
		conf.LogLevel = "debug"
	}
	if *logFile != "" {
		conf.LogFile = *logFile
	}
	if err := conf.ApplyLogging(); err != nil {
		logrus.WithError(err).Fatal("configuring logging")
	}

	os.Exit(int(subcommands.Execute(context.Background(), conf)))
}
