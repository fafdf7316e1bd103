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
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"linnfs.dev/linnfs/cmd/linnfs/config"
)

// Stat implements subcommands.Command for the "stat" command.
type Stat struct {
	jsonOut bool
}

// Name implements subcommands.Command.Name.
func (*Stat) Name() string {
	return "stat"
}

// Synopsis implements subcommands.Command.Synopsis.
func (*Stat) Synopsis() string {
	return "describe a file or directory inside an image"
}

// Usage implements subcommands.Command.Usage.
func (*Stat) Usage() string {
	return `stat [-json] <image> <path>

Resolves path inside the image and prints the metadata of the file or
directory found there.

OPTIONS:
`
}

// SetFlags implements subcommands.Command.SetFlags.
func (s *Stat) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&s.jsonOut, "json", false, "print the metadata as JSON")
}

// Execute implements subcommands.Command.Execute.
func (s *Stat) Execute(_ context.Context, f *flag.FlagSet, args ...any) subcommands.ExitStatus {
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

	info, err := srv.Stat(f.Arg(1))
	if err != nil {
		Fatalf("stat %q: %v", f.Arg(1), err)
	}

	if s.jsonOut {
		if err := json.NewEncoder(os.Stdout).Encode(info); err != nil {
			Fatalf("encoding metadata: %v", err)
		}
		return subcommands.ExitSuccess
	}
	fmt.Printf("type:   %c\n", typeChar(info.Type))
	fmt.Printf("mode:   %04o\n", info.Mode)
	fmt.Printf("owner:  %d:%d\n", info.UserID, info.GroupID)
	fmt.Printf("size:   %d\n", info.Size)
	fmt.Printf("links:  %d\n", info.LinksCount)
	fmt.Printf("mtime:  %d\n", info.ModifyTime)
	return subcommands.ExitSuccess
}
