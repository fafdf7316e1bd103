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

// Package cmd implements subcommands for the linnfs tool.
package cmd

import (
	"fmt"
	"os"

	"linnfs.dev/linnfs/cmd/linnfs/config"
	"linnfs.dev/linnfs/pkg/blockdev"
	"linnfs.dev/linnfs/pkg/fsserver"
	"linnfs.dev/linnfs/pkg/linnfs"
)

// Fatalf writes a message to stderr and exits with failure.
func Fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "linnfs: "+format+"\n", args...)
	os.Exit(1)
}

// mount opens and mounts the image at imagePath. The returned cleanup
// function unmaps the image.
func mount(imagePath string, conf *config.Config) (*linnfs.FileSystem, func(), error) {
	f, err := os.Open(imagePath)
	if err != nil {
		return nil, nil, err
	}
	img, err := blockdev.OpenImage(f)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	fs, err := linnfs.Mount(img, linnfs.MountOptions{
		InodeCacheCapacity: conf.InodeCacheCapacity,
	})
	if err != nil {
		img.Close()
		return nil, nil, err
	}
	return fs, img.Close, nil
}

// mountServer mounts imagePath and wraps it in a request server.
func mountServer(imagePath string, conf *config.Config) (*fsserver.Server, func(), error) {
	fs, cleanup, err := mount(imagePath, conf)
	if err != nil {
		return nil, nil, err
	}
	return fsserver.New(fs, imagePath), cleanup, nil
}

// typeChar returns the ls-style type character of an inode type.
func typeChar(fileType uint16) byte {
	switch fileType {
	case linnfs.FileTypeDirectory:
		return 'd'
	case linnfs.FileTypeBlockDevice:
		return 'b'
	case linnfs.FileTypeCharacterDevice:
		return 'c'
	case linnfs.FileTypeSymlink:
		return 'l'
	case linnfs.FileTypeFIFO:
		return 'p'
	case linnfs.FileTypeSocket:
		return 's'
	default:
		return '-'
	}
}
