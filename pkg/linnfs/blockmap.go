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
	"linnfs.dev/linnfs/pkg/binary"
	"linnfs.dev/linnfs/pkg/blockdev"
)

// BlockOffset translates blk, a file-relative logical block number of
// inode, into the byte offset of the backing data block on storage.
//
// The first DirectBlocks logical blocks resolve from the inode's inline
// pointers with no storage access. Beyond that the logical block number is a
// path through a fixed-radix trie of indirect pointer blocks: depth 1 covers
// the next PointersPerBlock blocks, depth 2 up to PointersPerBlock squared,
// depth 3 the rest. Translation reads one pointer block per level, selecting
// at each level one base-PointersPerBlock digit of the remaining logical
// distance, most significant digit first.
//
// Indirect pointer blocks are not cached; every call re-reads each level. A
// read failure at any level discards the computation and reports ErrIO.
func (fs *FileSystem) BlockOffset(inode *Inode, blk uint64) (uint64, error) {
	if blk < DirectBlocks {
		return fs.sb.BlockToOffset(inode.Block[blk]), nil
	}

	numPerBlock := fs.sb.PointersPerBlock()
	rel := blk - DirectBlocks

	var depth uint64
	var rem uint64
	switch {
	case rel < numPerBlock:
		depth, rem = 1, rel
	case rel < numPerBlock*numPerBlock:
		depth, rem = 2, rel-numPerBlock
	default:
		depth, rem = 3, rel-numPerBlock*numPerBlock
	}

	offset := fs.sb.BlockToOffset(inode.Block[DirectBlocks+depth-1])
	buf := make([]byte, fs.sb.BlockSize)
	for level := depth; level > 0; level-- {
		if err := blockdev.ReadFull(fs.dev, buf, int64(offset)); err != nil {
			return 0, err
		}
		// radix is the weight of this level's digit:
		// numPerBlock^(level-1).
		radix := uint64(1)
		for i := uint64(1); i < level; i++ {
			radix *= numPerBlock
		}
		index := (rem / radix) % numPerBlock
		pointer := binary.LittleEndian.Uint64(buf[index*BlockPointerSize:])
		offset = fs.sb.BlockToOffset(pointer)
	}
	return offset, nil
}
