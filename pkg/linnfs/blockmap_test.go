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
	"testing"

	"linnfs.dev/linnfs/pkg/binary"
	"linnfs.dev/linnfs/pkg/blockdev/devicetest"
	"linnfs.dev/linnfs/pkg/fserr"
)

// numPerBlock for the test geometry: 1024 / 8.
const testPointersPerBlock = 128

// newBlockMapFixture builds a translator-only filesystem over a raw image
// holding indirect pointer chains:
//
//	single:  inode.Block[4] = 20,  20[42] = 30
//	double:  inode.Block[5] = 21,  21[3] = 22,  22[7] = 31
//	triple:  inode.Block[6] = 23,  23[2] = 24,  24[5] = 25,  25[9] = 32
func newBlockMapFixture() (*FileSystem, *devicetest.Device, *Inode) {
	data := make([]byte, 40*testBlockSize)
	writePtr := func(block, index, pointer uint64) {
		binary.LittleEndian.PutUint64(data[block*testBlockSize+index*BlockPointerSize:], pointer)
	}
	writePtr(20, 42, 30)
	writePtr(21, 3, 22)
	writePtr(22, 7, 31)
	writePtr(23, 2, 24)
	writePtr(24, 5, 25)
	writePtr(25, 9, 32)

	dev := devicetest.New(data)
	fs := &FileSystem{
		dev: dev,
		sb: SuperBlock{
			BlockSize:      testBlockSize,
			InodesCount:    16,
			InodesPerGroup: 16,
		},
	}
	inode := &Inode{
		Type:  FileTypeRegular,
		Block: [BlockPointers]uint64{10, 11, 12, 13, 20, 21, 23},
	}
	return fs, dev, inode
}

func TestBlockOffsetDirect(t *testing.T) {
	fs, dev, inode := newBlockMapFixture()

	for blk := uint64(0); blk < DirectBlocks; blk++ {
		offset, err := fs.BlockOffset(inode, blk)
		if err != nil {
			t.Fatalf("BlockOffset(%d) failed: %v", blk, err)
		}
		if want := inode.Block[blk] * testBlockSize; offset != want {
			t.Errorf("BlockOffset(%d) = %d, want %d", blk, offset, want)
		}
	}
	// Direct blocks resolve without touching storage.
	if dev.Reads != 0 {
		t.Errorf("direct translation performed %d reads, want 0", dev.Reads)
	}
}

func TestBlockOffsetSingleIndirect(t *testing.T) {
	fs, dev, inode := newBlockMapFixture()

	blk := uint64(DirectBlocks + 42)
	offset, err := fs.BlockOffset(inode, blk)
	if err != nil {
		t.Fatalf("BlockOffset(%d) failed: %v", blk, err)
	}
	if want := uint64(30 * testBlockSize); offset != want {
		t.Errorf("BlockOffset(%d) = %d, want %d", blk, offset, want)
	}
	if dev.Reads != 1 {
		t.Errorf("depth 1 translation performed %d reads, want 1", dev.Reads)
	}
}

func TestBlockOffsetDoubleIndirect(t *testing.T) {
	fs, dev, inode := newBlockMapFixture()

	// Logical distance past the direct and single regions decomposes as
	// 3*numPerBlock + 7.
	blk := uint64(DirectBlocks + testPointersPerBlock + 3*testPointersPerBlock + 7)
	offset, err := fs.BlockOffset(inode, blk)
	if err != nil {
		t.Fatalf("BlockOffset(%d) failed: %v", blk, err)
	}
	if want := uint64(31 * testBlockSize); offset != want {
		t.Errorf("BlockOffset(%d) = %d, want %d", blk, offset, want)
	}
	if dev.Reads != 2 {
		t.Errorf("depth 2 translation performed %d reads, want 2", dev.Reads)
	}
}

func TestBlockOffsetTripleIndirect(t *testing.T) {
	fs, dev, inode := newBlockMapFixture()

	// Remaining distance decomposes as 2*numPerBlock^2 + 5*numPerBlock + 9.
	n := uint64(testPointersPerBlock)
	blk := DirectBlocks + n*n + (2*n*n + 5*n + 9)
	offset, err := fs.BlockOffset(inode, blk)
	if err != nil {
		t.Fatalf("BlockOffset(%d) failed: %v", blk, err)
	}
	if want := uint64(32 * testBlockSize); offset != want {
		t.Errorf("BlockOffset(%d) = %d, want %d", blk, offset, want)
	}
	if dev.Reads != 3 {
		t.Errorf("depth 3 translation performed %d reads, want 3", dev.Reads)
	}
}

func TestBlockOffsetNoCaching(t *testing.T) {
	fs, dev, inode := newBlockMapFixture()

	// Indirect levels are deliberately re-read on every translation.
	blk := uint64(DirectBlocks + 42)
	for i := 0; i < 3; i++ {
		if _, err := fs.BlockOffset(inode, blk); err != nil {
			t.Fatalf("BlockOffset(%d) failed: %v", blk, err)
		}
	}
	if dev.Reads != 3 {
		t.Errorf("three depth 1 translations performed %d reads, want 3", dev.Reads)
	}
}

func TestBlockOffsetReadFailure(t *testing.T) {
	fs, dev, inode := newBlockMapFixture()
	dev.FailOffsets = map[int64]bool{22 * testBlockSize: true}

	// Failure at the second level of a depth 2 walk discards the whole
	// computation.
	blk := uint64(DirectBlocks + testPointersPerBlock + 3*testPointersPerBlock + 7)
	if _, err := fs.BlockOffset(inode, blk); err != fserr.ErrIO {
		t.Fatalf("BlockOffset returned %v, want %v", err, fserr.ErrIO)
	}
	if dev.Reads != 2 {
		t.Errorf("aborted translation performed %d reads, want 2", dev.Reads)
	}
}
