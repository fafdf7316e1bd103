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
)

// The mock image geometry used throughout these tests: one group of 16
// inodes, group descriptor table at block 2, inode table at block 5 (the 16
// records spill into block 6), data blocks from block 7 on.
const (
	testBlockSize = 1024
	testBlocks    = 13
)

// testImage assembles a LinnFS image in memory record by record.
type testImage struct {
	data  []byte
	sb    SuperBlock
	group GroupDescriptor
}

func newTestImage() *testImage {
	img := &testImage{data: make([]byte, testBlocks*testBlockSize)}
	img.sb = SuperBlock{
		Magic0:          SuperBlockMagic0,
		Magic1:          SuperBlockMagic1,
		State:           StateValid,
		BlockSize:       testBlockSize,
		BlocksCount:     testBlocks,
		InodesCount:     16,
		FreeBlocksCount: 1,
		FreeInodesCount: 10,
		InodesPerGroup:  16,
		GroupsTable:     2,
	}
	img.group = GroupDescriptor{
		FreeInodesCount: 10,
		InodeTable:      5,
	}
	return img
}

func (img *testImage) writeAt(off int64, b []byte) {
	copy(img.data[off:], b)
}

func (img *testImage) writeRecord(off int64, record any) {
	img.writeAt(off, binary.Marshal(nil, binary.LittleEndian, record))
}

// inodeOffset returns the on-disk byte offset of inode n.
func (img *testImage) inodeOffset(n uint64) int64 {
	return int64(img.group.InodeTable)*testBlockSize + int64(n-1)*InodeSize
}

func (img *testImage) writeInode(n uint64, inode *Inode) {
	img.writeRecord(img.inodeOffset(n), inode)
}

func (img *testImage) writeDirent(block uint64, slot int, name string, n uint64, fileType uint8) {
	entry := DirectoryEntry{Inode: n, FileType: fileType}
	copy(entry.Name[:], name)
	img.writeRecord(int64(block)*testBlockSize+int64(slot)*DirentSize, &entry)
}

// writePointer writes one entry of an indirect pointer block.
func (img *testImage) writePointer(block, index, pointer uint64) {
	var b [BlockPointerSize]byte
	binary.LittleEndian.PutUint64(b[:], pointer)
	img.writeAt(int64(block)*testBlockSize+int64(index)*BlockPointerSize, b[:])
}

// bytes returns the assembled image.
func (img *testImage) bytes() []byte {
	img.writeRecord(SuperBlockOffset, &img.sb)
	img.writeRecord(int64(img.sb.GroupsTable)*testBlockSize, &img.group)
	return img.data
}

// bigFileSize spans two blocks so reads cross a block boundary.
const bigFileSize = 1500

func bigFileContent() []byte {
	content := make([]byte, bigFileSize)
	for i := range content {
		content[i] = byte(i % 251)
	}
	return content
}

// buildTestTree returns an image with the directory tree used by the lookup
// and read tests:
//
//	/
//	├── a/          (inode 3, dir)
//	│   └── b       (inode 4, file, "bee\n")
//	├── hello.txt   (inode 2, file, "Hello, world!\n")
//	├── fifo        (inode 5, FIFO)
//	└── big.bin     (inode 6, file, 1500 bytes)
func buildTestTree() *testImage {
	img := newTestImage()

	img.writeInode(RootInode, &Inode{
		Type:       FileTypeDirectory,
		Size:       4 * DirentSize,
		LinksCount: 3,
		Block:      [BlockPointers]uint64{7},
	})
	img.writeDirent(7, 0, "a", 3, uint8(FileTypeDirectory))
	img.writeDirent(7, 1, "hello.txt", 2, uint8(FileTypeRegular))
	img.writeDirent(7, 2, "fifo", 5, uint8(FileTypeFIFO))
	img.writeDirent(7, 3, "big.bin", 6, uint8(FileTypeRegular))

	img.writeInode(2, &Inode{
		Type:       FileTypeRegular,
		Size:       14,
		LinksCount: 1,
		Block:      [BlockPointers]uint64{9},
	})
	img.writeAt(9*testBlockSize, []byte("Hello, world!\n"))

	img.writeInode(3, &Inode{
		Type:       FileTypeDirectory,
		Size:       1 * DirentSize,
		LinksCount: 2,
		Block:      [BlockPointers]uint64{8},
	})
	img.writeDirent(8, 0, "b", 4, uint8(FileTypeRegular))

	img.writeInode(4, &Inode{
		Type:       FileTypeRegular,
		Size:       4,
		LinksCount: 1,
		Block:      [BlockPointers]uint64{10},
	})
	img.writeAt(10*testBlockSize, []byte("bee\n"))

	img.writeInode(5, &Inode{
		Type:       FileTypeFIFO,
		LinksCount: 1,
	})

	img.writeInode(6, &Inode{
		Type:       FileTypeRegular,
		Size:       bigFileSize,
		LinksCount: 1,
		Block:      [BlockPointers]uint64{11, 12},
	})
	img.writeAt(11*testBlockSize, bigFileContent())

	return img
}

// mountTestTree mounts the standard fixture on a counting fake device.
func mountTestTree(t *testing.T) (*FileSystem, *devicetest.Device) {
	t.Helper()
	dev := devicetest.New(buildTestTree().bytes())
	fs, err := Mount(dev, MountOptions{})
	if err != nil {
		t.Fatalf("Mount failed: %v", err)
	}
	return fs, dev
}
