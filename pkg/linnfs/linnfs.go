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

// Package linnfs decodes LinnFS filesystem images.
//
// A FileSystem is a read-only mount of one image: it owns the superblock,
// the group descriptor table, the decoded inode cache and the tree of
// resolved path components. All state is per mount; independent mounts do
// not share anything.
package linnfs

import (
	"sync"

	"github.com/sirupsen/logrus"

	"linnfs.dev/linnfs/pkg/binary"
	"linnfs.dev/linnfs/pkg/blockdev"
	"linnfs.dev/linnfs/pkg/fserr"
)

// MountOptions configures a mount.
type MountOptions struct {
	// InodeCacheCapacity bounds the number of decoded inodes retained by
	// the mount. Zero keeps every decoded inode for the lifetime of the
	// mount.
	InodeCacheCapacity int
}

// FileSystem is a mounted LinnFS image.
type FileSystem struct {
	dev    blockdev.Device
	sb     SuperBlock
	groups []GroupDescriptor

	// mu makes the check-then-insert sequences in the inode cache and the
	// file cache tree atomic under concurrent lookups. Requests are
	// otherwise handled one at a time.
	mu     sync.Mutex
	inodes *inodeCache
	root   *FileCache
}

// Mount reads and validates the superblock and group descriptor table of the
// image on dev and materializes the root directory. A failure here is fatal
// for the mount: no FileSystem is returned.
func Mount(dev blockdev.Device, opts MountOptions) (*FileSystem, error) {
	fs := &FileSystem{
		dev:    dev,
		inodes: newInodeCache(opts.InodeCacheCapacity),
	}

	buf := make([]byte, SuperBlockSize)
	if err := blockdev.ReadFull(dev, buf, SuperBlockOffset); err != nil {
		logrus.WithError(err).Error("reading superblock failed")
		return nil, err
	}
	binary.Unmarshal(buf, binary.LittleEndian, &fs.sb)

	if fs.sb.Magic0 != SuperBlockMagic0 || fs.sb.Magic1 != SuperBlockMagic1 {
		logrus.Errorf("superblock magic mismatch: 0x%x 0x%x", fs.sb.Magic0, fs.sb.Magic1)
		return nil, fserr.ErrCorruptSuperblock
	}
	if fs.sb.InodesPerGroup == 0 {
		logrus.Error("superblock has zero inodes per group")
		return nil, fserr.ErrCorruptSuperblock
	}

	count := fs.sb.GroupCount()
	fs.groups = make([]GroupDescriptor, count)
	buf = make([]byte, GroupDescriptorSize)
	for i := uint64(0); i < count; i++ {
		offset := fs.sb.BlockToOffset(fs.sb.GroupsTable) + i*GroupDescriptorSize
		if err := blockdev.ReadFull(dev, buf, int64(offset)); err != nil {
			logrus.WithError(err).Errorf("reading group descriptor %d failed", i)
			return nil, err
		}
		binary.Unmarshal(buf, binary.LittleEndian, &fs.groups[i])
	}
	logrus.Debugf("%d group descriptors", count)
	logrus.Debugf("%d inodes, %d blocks",
		fs.sb.InodesCount-fs.sb.FreeInodesCount,
		fs.sb.BlocksCount-fs.sb.FreeBlocksCount)

	rootInode, err := fs.GetInode(RootInode)
	if err != nil {
		logrus.WithError(err).Error("reading root inode failed")
		return nil, err
	}
	fs.root = newFileCache(fs, rootInode)
	return fs, nil
}

// SuperBlock returns a copy of the mount's superblock.
func (fs *FileSystem) SuperBlock() SuperBlock {
	return fs.sb
}

// BlockSize returns the block size of the mounted image.
func (fs *FileSystem) BlockSize() uint32 {
	return fs.sb.BlockSize
}

// group returns the descriptor of group n. Out-of-range numbers report
// NotFound; after a successful mount this is unreachable for any group
// derived from a valid inode number.
func (fs *FileSystem) group(n uint64) (*GroupDescriptor, error) {
	if n >= uint64(len(fs.groups)) {
		return nil, fserr.ErrNotFound
	}
	return &fs.groups[n], nil
}

// groupByInode returns the descriptor of the group owning inode n.
func (fs *FileSystem) groupByInode(n uint64) (*GroupDescriptor, error) {
	return fs.group((n - 1) / uint64(fs.sb.InodesPerGroup))
}

// GetInode returns the decoded inode n, reading and decoding it on the
// first lookup and serving the shared cached copy afterwards.
func (fs *FileSystem) GetInode(n uint64) (*Inode, error) {
	if n == 0 || n >= uint64(fs.sb.InodesCount) {
		return nil, fserr.ErrNotFound
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.getInodeLocked(n)
}

// Preconditions: fs.mu is held.
func (fs *FileSystem) getInodeLocked(n uint64) (*Inode, error) {
	if inode := fs.inodes.get(n); inode != nil {
		return inode, nil
	}

	group, err := fs.groupByInode(n)
	if err != nil {
		return nil, err
	}
	index := (n - 1) % uint64(fs.sb.InodesPerGroup)
	offset := fs.sb.BlockToOffset(group.InodeTable) + index*InodeSize

	buf := make([]byte, InodeSize)
	if err := blockdev.ReadFull(fs.dev, buf, int64(offset)); err != nil {
		logrus.WithError(err).Warnf("reading inode %d failed", n)
		return nil, err
	}
	inode := new(Inode)
	binary.Unmarshal(buf, binary.LittleEndian, inode)
	fs.inodes.put(n, inode)
	return inode, nil
}

// CreateFile always fails: the filesystem is read-only.
func (fs *FileSystem) CreateFile(path string) error {
	return fserr.ErrNotSupported
}
