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

// Ls implements subcommands.Command for the "ls" command.
type Ls struct {
	long bool
}

// Name implements subcommands.Command.Name.
func (*Ls) Name() string {
	return "ls"
}

// Synopsis implements subcommands.Command.Synopsis.
func (*Ls) Synopsis() string {
	return "list a directory inside an image"
}

// Usage implements subcommands.Command.Usage.
func (*Ls) Usage() string {
	return `ls [-l] <image> <path>

Lists the entries of the directory at path inside the image.

OPTIONS:
`
}

// SetFlags implements subcommands.Command.SetFlags.
func (l *Ls) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&l.long, "l", false, "print entry types and inode numbers")
}

// Execute implements subcommands.Command.Execute.
func (l *Ls) Execute(_ context.Context, f *flag.FlagSet, args ...any) subcommands.ExitStatus {
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

	entries, err := srv.ReadDir(f.Arg(1))
	if err != nil {
		Fatalf("listing %q: %v", f.Arg(1), err)
	}
	for i := range entries {
		if l.long {
			fmt.Printf("%c %8d %s\n", typeChar(uint16(entries[i].FileType)), entries[i].Inode, entries[i].EntryName())
		} else {
			fmt.Println(entries[i].EntryName())
		}
	}
	return subcommands.ExitSuccess
}
