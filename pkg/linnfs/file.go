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

package linnfs

import (
	"io"

	"linnfs.dev/linnfs/pkg/blockdev"
)

// File is a regular file on a mounted filesystem.
type File struct {
	fs    *FileSystem
	inode *Inode
}

// Inode returns the file's decoded inode.
func (f *File) Inode() *Inode {
	return f.inode
}

// Size returns the file size in bytes.
func (f *File) Size() uint64 {
	return uint64(f.inode.Size)
}

// ReadAt reads file content starting at offset off, translating each
// touched logical block through the inode's block map. It implements
// io.ReaderAt: reads past the end of the file are truncated and report
// io.EOF alongside the bytes read.
func (f *File) ReadAt(p []byte, off int64) (int, error) {
	size := int64(f.inode.Size)
	if off < 0 || off >= size {
		return 0, io.EOF
	}
	short := false
	if int64(len(p)) > size-off {
		p = p[:size-off]
		short = true
	}

	blockSize := int64(f.fs.sb.BlockSize)
	n := 0
	for n < len(p) {
		pos := off + int64(n)
		within := pos % blockSize
		chunk := blockSize - within
		if rem := int64(len(p) - n); chunk > rem {
			chunk = rem
		}
		physical, err := f.fs.BlockOffset(f.inode, uint64(pos/blockSize))
		if err != nil {
			return n, err
		}
		if err := blockdev.ReadFull(f.fs.dev, p[n:n+int(chunk)], int64(physical)+within); err != nil {
			return n, err
		}
		n += int(chunk)
	}
	if short {
		return n, io.EOF
	}
	return n, nil
}
