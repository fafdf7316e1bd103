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
	"linnfs.dev/linnfs/pkg/fserr"
)

// Directory is a directory on a mounted filesystem. Its data blocks hold a
// sequence of fixed-width DirectoryEntry records.
type Directory struct {
	fs    *FileSystem
	inode *Inode
}

// Inode returns the directory's decoded inode.
func (d *Directory) Inode() *Inode {
	return d.inode
}

// iterEntries invokes cb on each used entry, one data block per storage
// read, stopping early when cb returns false.
func (d *Directory) iterEntries(cb func(*DirectoryEntry) bool) error {
	size := uint64(d.inode.Size)
	blockSize := uint64(d.fs.sb.BlockSize)
	buf := make([]byte, blockSize)

	for blk := uint64(0); blk*blockSize < size; blk++ {
		remaining := size - blk*blockSize
		if remaining > blockSize {
			remaining = blockSize
		}
		count := remaining / DirentSize
		if count == 0 {
			break
		}
		physical, err := d.fs.BlockOffset(d.inode, blk)
		if err != nil {
			return err
		}
		if err := blockdev.ReadFull(d.fs.dev, buf[:count*DirentSize], int64(physical)); err != nil {
			return err
		}
		for i := uint64(0); i < count; i++ {
			var entry DirectoryEntry
			binary.Unmarshal(buf[i*DirentSize:(i+1)*DirentSize], binary.LittleEndian, &entry)
			if entry.Inode == 0 {
				continue
			}
			if !cb(&entry) {
				return nil
			}
		}
	}
	return nil
}

// GetEntry scans the directory for an entry named name.
func (d *Directory) GetEntry(name string) (DirectoryEntry, error) {
	var entry DirectoryEntry
	found := false
	if err := d.iterEntries(func(e *DirectoryEntry) bool {
		if e.EntryName() == name {
			entry = *e
			found = true
			return false
		}
		return true
	}); err != nil {
		return DirectoryEntry{}, err
	}
	if !found {
		return DirectoryEntry{}, fserr.ErrNotFound
	}
	return entry, nil
}

// List returns all used entries of the directory in on-disk order.
func (d *Directory) List() ([]DirectoryEntry, error) {
	var entries []DirectoryEntry
	if err := d.iterEntries(func(e *DirectoryEntry) bool {
		entries = append(entries, *e)
		return true
	}); err != nil {
		return nil, err
	}
	return entries, nil
}
