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

import "bytes"

// Definitions for the superblock.
const (
	// SuperBlockMagic0 and SuperBlockMagic1 must both match for an image
	// to be accepted at mount time.
	SuperBlockMagic0 = 0x512DEADC
	SuperBlockMagic1 = 0x512BEEFC

	// SuperBlockOffset is the fixed byte offset of the superblock.
	SuperBlockOffset = 1024
)

// Superblock cleanliness states.
const (
	StateValid = iota
	StateInvalid
)

// Inode block pointer geometry. An inode carries DirectBlocks inline data
// pointers followed by one single, one double and one triple indirect
// pointer.
const (
	DirectBlocks  = 4
	BlockPointers = DirectBlocks + 3
)

// RootInode is the reserved inode number of the root directory. Inode
// numbers are 1-based; 0 is never a valid inode.
const RootInode = 1

// Inode types.
const (
	FileTypeRegular uint16 = iota
	FileTypeDirectory
	FileTypeBlockDevice
	FileTypeCharacterDevice
	FileTypeSymlink
	FileTypeFIFO
	FileTypeSocket
)

// Sizes of on-disk structures in bytes.
const (
	SuperBlockSize      = 64
	GroupDescriptorSize = 32
	InodeSize           = 88
	DirentSize          = 64

	// DirentNameLen is the fixed width of a directory entry name field.
	// Shorter names are NUL padded.
	DirentNameLen = 55

	// BlockPointerSize is the width of one entry in an indirect pointer
	// block.
	BlockPointerSize = 8
)

// SuperBlock is the on-disk filesystem-wide metadata record. It is read
// once at mount time and immutable afterwards.
type SuperBlock struct {
	Magic0          uint32
	Magic1          uint32
	MajorRevision   uint16
	MinorRevision   uint16
	State           uint16
	Padding         uint16
	BlockSize       uint32
	BlocksCount     uint32
	InodesCount     uint32
	FreeBlocksCount uint32
	FreeInodesCount uint32
	InodesPerGroup  uint32
	GroupsTable     uint64
	Reserved        [16]uint8
}

// GroupCount returns the number of block groups described by sb.
func (sb *SuperBlock) GroupCount() uint64 {
	return uint64(sb.InodesCount) / uint64(sb.InodesPerGroup)
}

// BlockToOffset converts a block number to a byte offset on storage.
func (sb *SuperBlock) BlockToOffset(block uint64) uint64 {
	return block * uint64(sb.BlockSize)
}

// PointersPerBlock returns the number of block pointer entries that fit in
// one storage block.
func (sb *SuperBlock) PointersPerBlock() uint64 {
	return uint64(sb.BlockSize) / BlockPointerSize
}

// GroupDescriptor is the on-disk record describing one block group. The
// descriptor table starts at block GroupsTable and is immutable after mount.
type GroupDescriptor struct {
	FreeBlocksCount uint32
	FreeInodesCount uint32
	BlockMap        uint64
	InodeMap        uint64
	InodeTable      uint64
}

// Inode is the on-disk per-file metadata record. Decoded inodes are owned
// by the mount's inode cache; file cache nodes hold shared references.
type Inode struct {
	Type       uint16
	Mode       uint16
	UserID     uint16
	GroupID    uint16
	Size       uint32
	AccessTime uint32
	CreateTime uint32
	ModifyTime uint32
	ChangeTime uint32
	LinksCount uint16
	Padding    uint16

	// Block holds DirectBlocks direct pointers followed by the single,
	// double and triple indirect pointers.
	Block [BlockPointers]uint64
}

// IsDirectory indicates whether i is a directory.
func (i *Inode) IsDirectory() bool {
	return i.Type == FileTypeDirectory
}

// IsRegular indicates whether i is a regular file.
func (i *Inode) IsRegular() bool {
	return i.Type == FileTypeRegular
}

// DirectoryEntry is the on-disk record mapping one name to an inode number.
// A directory's data blocks hold a sequence of these; an entry with inode 0
// is an unused slot.
type DirectoryEntry struct {
	Inode    uint64
	FileType uint8
	Name     [DirentNameLen]byte
}

// EntryName returns the NUL-trimmed name of the entry.
func (d *DirectoryEntry) EntryName() string {
	if n := bytes.IndexByte(d.Name[:], 0); n != -1 {
		return string(d.Name[:n])
	}
	return string(d.Name[:])
}
