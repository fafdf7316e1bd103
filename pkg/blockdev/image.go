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

package blockdev

import (
	"io"
	"os"

	"golang.org/x/sys/unix"
)

// Image is a filesystem image file mapped read-only into memory. The whole
// image is mapped via a shared mapping and the host kernel caches the pages
// transparently, so Image performs no caching of its own.
type Image struct {
	src   *os.File
	bytes []byte
}

// OpenImage maps the image file src. On success the ownership of src is
// transferred to the returned Image.
func OpenImage(src *os.File) (*Image, error) {
	stat, err := src.Stat()
	if err != nil {
		return nil, err
	}
	bytes, err := unix.Mmap(int(src.Fd()), 0, int(stat.Size()), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, err
	}
	return &Image{src: src, bytes: bytes}, nil
}

// Close unmaps and closes the image.
func (i *Image) Close() {
	unix.Munmap(i.bytes)
	i.src.Close()
}

// Size returns the size of the image in bytes.
func (i *Image) Size() int64 {
	return int64(len(i.bytes))
}

// ReadAt implements Device.ReadAt.
func (i *Image) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 || off >= int64(len(i.bytes)) {
		return 0, io.EOF
	}
	n := copy(p, i.bytes[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}
