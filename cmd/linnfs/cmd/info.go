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
	"fmt"

	"github.com/google/subcommands"

	"linnfs.dev/linnfs/cmd/linnfs/config"
)

// Info implements subcommands.Command for the "info" command.
type Info struct{}

// Name implements subcommands.Command.Name.
func (*Info) Name() string {
	return "info"
}

// Synopsis implements subcommands.Command.Synopsis.
func (*Info) Synopsis() string {
	return "mount an image and print its superblock summary"
}

// Usage implements subcommands.Command.Usage.
func (*Info) Usage() string {
	return `info <image>

Mounts the image, validates its superblock and group descriptor table, and
prints the filesystem geometry.

`
}

// SetFlags implements subcommands.Command.SetFlags.
func (*Info) SetFlags(*flag.FlagSet) {}

// Execute implements subcommands.Command.Execute.
func (*Info) Execute(_ context.Context, f *flag.FlagSet, args ...any) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	conf := args[0].(*config.Config)

	fs, cleanup, err := mount(f.Arg(0), conf)
	if err != nil {
		Fatalf("mounting %q: %v", f.Arg(0), err)
	}
	defer cleanup()

	sb := fs.SuperBlock()
	fmt.Printf("revision:        %d.%d\n", sb.MajorRevision, sb.MinorRevision)
	fmt.Printf("block size:      %d\n", sb.BlockSize)
	fmt.Printf("blocks:          %d (%d free)\n", sb.BlocksCount, sb.FreeBlocksCount)
	fmt.Printf("inodes:          %d (%d free)\n", sb.InodesCount, sb.FreeInodesCount)
	fmt.Printf("groups:          %d\n", sb.GroupCount())
	fmt.Printf("inodes/group:    %d\n", sb.InodesPerGroup)
	fmt.Printf("groups table:    block %d\n", sb.GroupsTable)
	return subcommands.ExitSuccess
}
