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
	"strings"

	"linnfs.dev/linnfs/pkg/fserr"
)

// FileCache is one resolved path component: a directory or regular file
// materialized on its first successful lookup. The mount's root is
// materialized at mount time; every other node is created lazily as paths
// are resolved. Nodes are never invalidated within a mount's lifetime.
//
// The node holds a shared reference to its inode; the mount's inode cache
// owns the decoded record.
type FileCache struct {
	inode *Inode

	// Exactly one of dir and file is non-nil; the inode's type is
	// resolved once at materialization.
	dir  *Directory
	file *File

	// children maps resolved child names, directories only.
	children map[string]*FileCache
}

func newFileCache(fs *FileSystem, inode *Inode) *FileCache {
	c := &FileCache{inode: inode}
	switch {
	case inode.IsDirectory():
		c.dir = &Directory{fs: fs, inode: inode}
		c.children = make(map[string]*FileCache)
	case inode.IsRegular():
		c.file = &File{fs: fs, inode: inode}
	}
	return c
}

// Inode returns the node's decoded inode.
func (c *FileCache) Inode() *Inode {
	return c.inode
}

// IsDirectory indicates whether the node is a directory.
func (c *FileCache) IsDirectory() bool {
	return c.dir != nil
}

// Directory returns the node's directory object, or nil for a file node.
func (c *FileCache) Directory() *Directory {
	return c.dir
}

// File returns the node's file object, or nil for a directory node.
func (c *FileCache) File() *File {
	return c.file
}

// LookupFile resolves path to a cached node, materializing any path
// components not yet resolved. Already-cached segments are descended with
// zero storage reads. Resolution short-circuits on the first failure; there
// is no partial-path recovery.
func (fs *FileSystem) LookupFile(path string) (*FileCache, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	c := fs.root
	for _, name := range splitPath(path) {
		if child, ok := c.children[name]; ok {
			c = child
			continue
		}
		if c.dir == nil {
			return nil, fserr.ErrNotADirectory
		}
		entry, err := c.dir.GetEntry(name)
		if err != nil {
			return nil, err
		}
		inode, err := fs.getInodeLocked(entry.Inode)
		if err != nil {
			return nil, err
		}
		if !inode.IsDirectory() && !inode.IsRegular() {
			return nil, fserr.ErrUnsupportedType
		}
		child := newFileCache(fs, inode)
		c.children[name] = child
		c = child
	}
	return c, nil
}

// splitPath splits path into its non-empty segments. The root path has no
// segments.
func splitPath(path string) []string {
	var segments []string
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	return segments
}
