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

// Package blockdev provides read-only access to the block storage backing a
// filesystem image.
//
// The filesystem core issues exactly one read per storage access and treats
// every failure as final; ReadFull encodes that contract.
package blockdev

import (
	"linnfs.dev/linnfs/pkg/fserr"
)

// Device is a byte-addressed storage handle. Only reads exist; the server
// has no write path.
//
// ReadAt follows the io.ReaderAt contract. Implementations are not required
// to support concurrent calls.
type Device interface {
	ReadAt(p []byte, off int64) (int, error)
}

// ReadFull reads exactly len(p) bytes from d at off. The read is attempted
// once; an error or a short read reports fserr.ErrIO with no partial result.
func ReadFull(d Device, p []byte, off int64) error {
	if n, err := d.ReadAt(p, off); err != nil || n < len(p) {
		return fserr.ErrIO
	}
	return nil
}
