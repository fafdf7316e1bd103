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

package cmd

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"

	"linnfs.dev/linnfs/cmd/linnfs/config"
)

// Cat implements subcommands.Command for the "cat" command.
type Cat struct{}

// Name implements subcommands.Command.Name.
func (*Cat) Name() string {
	return "cat"
}

// Synopsis implements subcommands.Command.Synopsis.
func (*Cat) Synopsis() string {
	return "write a file from inside an image to stdout"
}

// Usage implements subcommands.Command.Usage.
func (*Cat) Usage() string {
	return `cat <image> <path>

Reads the regular file at path inside the image and writes its content to
stdout.

`
}

// SetFlags implements subcommands.Command.SetFlags.
func (*Cat) SetFlags(*flag.FlagSet) {}

// Execute implements subcommands.Command.Execute.
func (*Cat) Execute(_ context.Context, f *flag.FlagSet, args ...any) subcommands.ExitStatus {
	if f.NArg() != 2 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	conf := args[0].(*config.Config)

	srv, cleanup, err := mountServer(f.Arg(0), conf)
	if err != nil {
		Fatalf("mounting %q: %v", f.Arg(0), err)
	}
	defer cleanup()

	buf := make([]byte, 64*1024)
	for off := int64(0); ; {
		n, err := srv.ReadFile(f.Arg(1), buf, off)
		if err != nil {
			Fatalf("reading %q: %v", f.Arg(1), err)
		}
		if n == 0 {
			break
		}
		if _, err := os.Stdout.Write(buf[:n]); err != nil {
			Fatalf("writing output: %v", err)
		}
		off += int64(n)
	}
	return subcommands.ExitSuccess
}
