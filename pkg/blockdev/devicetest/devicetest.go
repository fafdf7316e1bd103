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

// Package devicetest provides a scripted in-memory block device for tests.
package devicetest

import (
	"errors"
	"io"
)

// ErrScripted is returned by reads that were scripted to fail.
var ErrScripted = errors.New("scripted read failure")

// Device is an in-memory block device that counts reads and can be scripted
// to fail. The read count lets tests assert exactly how many storage
// accesses an operation performed.
type Device struct {
	// Data is the raw image content.
	Data []byte

	// Reads is the total number of ReadAt calls observed.
	Reads int

	// Offsets records the starting offset of every ReadAt call.
	Offsets []int64

	// FailAfter, when non-negative, fails every read once Reads exceeds
	// it. A zero value fails the first read.
	FailAfter int

	// FailOffsets scripts failures for reads starting at specific offsets.
	FailOffsets map[int64]bool
}

// New returns a device serving data with no scripted failures.
func New(data []byte) *Device {
	return &Device{Data: data, FailAfter: -1}
}

// ReadAt implements blockdev.Device.ReadAt.
func (d *Device) ReadAt(p []byte, off int64) (int, error) {
	d.Reads++
	d.Offsets = append(d.Offsets, off)
	if d.FailAfter >= 0 && d.Reads > d.FailAfter {
		return 0, ErrScripted
	}
	if d.FailOffsets[off] {
		return 0, ErrScripted
	}
	if off < 0 || off >= int64(len(d.Data)) {
		return 0, io.EOF
	}
	n := copy(p, d.Data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}
