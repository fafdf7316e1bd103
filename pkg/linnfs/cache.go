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

import "container/list"

// inodeCache retains decoded inodes keyed by inode number. The cache owns
// the decoded records; callers receive shared references and must not rely
// on the cache for lifetime once an entry has been evicted.
//
// With capacity 0 nothing is ever evicted, matching the historical server
// behavior of keeping every decoded inode for the life of the mount. A
// positive capacity bounds the cache with least-recently-used eviction.
//
// Not safe for concurrent use; the mount's mutex serializes access.
type inodeCache struct {
	capacity int
	entries  map[uint64]*list.Element
	lru      list.List
}

type cacheEntry struct {
	number uint64
	inode  *Inode
}

func newInodeCache(capacity int) *inodeCache {
	c := &inodeCache{
		capacity: capacity,
		entries:  make(map[uint64]*list.Element),
	}
	c.lru.Init()
	return c
}

// get returns the cached inode or nil.
func (c *inodeCache) get(n uint64) *Inode {
	elem, ok := c.entries[n]
	if !ok {
		return nil
	}
	if c.capacity > 0 {
		c.lru.MoveToFront(elem)
	}
	return elem.Value.(*cacheEntry).inode
}

// put inserts a decoded inode, evicting the least recently used entry if
// the cache is bounded and full.
func (c *inodeCache) put(n uint64, inode *Inode) {
	c.entries[n] = c.lru.PushFront(&cacheEntry{number: n, inode: inode})
	if c.capacity > 0 && len(c.entries) > c.capacity {
		oldest := c.lru.Back()
		c.lru.Remove(oldest)
		delete(c.entries, oldest.Value.(*cacheEntry).number)
	}
}

// len returns the number of cached inodes.
func (c *inodeCache) len() int {
	return len(c.entries)
}
