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

	"linnfs.dev/linnfs/pkg/fserr"
)

func TestLookupRoot(t *testing.T) {
	fs, dev := mountTestTree(t)

	before := dev.Reads
	c, err := fs.LookupFile("/")
	if err != nil {
		t.Fatalf(`LookupFile("/") failed: %v`, err)
	}
	if !c.IsDirectory() {
		t.Error("root is not a directory node")
	}
	if dev.Reads != before {
		t.Errorf("root lookup performed %d reads, want 0", dev.Reads-before)
	}
}

func TestLookupFile(t *testing.T) {
	fs, _ := mountTestTree(t)

	c, err := fs.LookupFile("/a/b")
	if err != nil {
		t.Fatalf(`LookupFile("/a/b") failed: %v`, err)
	}
	if c.IsDirectory() {
		t.Error("/a/b resolved to a directory node")
	}
	if c.File() == nil {
		t.Fatal("/a/b has no file object")
	}
	if got, want := c.File().Size(), uint64(4); got != want {
		t.Errorf("/a/b size = %d, want %d", got, want)
	}
}

func TestLookupDirectory(t *testing.T) {
	fs, _ := mountTestTree(t)

	c, err := fs.LookupFile("/a")
	if err != nil {
		t.Fatalf(`LookupFile("/a") failed: %v`, err)
	}
	if !c.IsDirectory() || c.Directory() == nil {
		t.Error("/a did not resolve to a directory node")
	}
}

func TestLookupNotFound(t *testing.T) {
	fs, _ := mountTestTree(t)

	if _, err := fs.LookupFile("/a/x"); err != fserr.ErrNotFound {
		t.Errorf(`LookupFile("/a/x") returned %v, want %v`, err, fserr.ErrNotFound)
	}
}

func TestLookupNotADirectory(t *testing.T) {
	fs, _ := mountTestTree(t)

	if _, err := fs.LookupFile("/a/b/c"); err != fserr.ErrNotADirectory {
		t.Errorf(`LookupFile("/a/b/c") returned %v, want %v`, err, fserr.ErrNotADirectory)
	}
}

func TestLookupUnsupportedType(t *testing.T) {
	fs, _ := mountTestTree(t)

	if _, err := fs.LookupFile("/fifo"); err != fserr.ErrUnsupportedType {
		t.Errorf(`LookupFile("/fifo") returned %v, want %v`, err, fserr.ErrUnsupportedType)
	}
}

func TestLookupCached(t *testing.T) {
	fs, dev := mountTestTree(t)

	first, err := fs.LookupFile("/a/b")
	if err != nil {
		t.Fatalf(`LookupFile("/a/b") failed: %v`, err)
	}

	// The second resolution descends through cached nodes only.
	before := dev.Reads
	second, err := fs.LookupFile("/a/b")
	if err != nil {
		t.Fatalf(`LookupFile("/a/b") failed: %v`, err)
	}
	if dev.Reads != before {
		t.Errorf("cached lookup performed %d reads, want 0", dev.Reads-before)
	}
	if first != second {
		t.Errorf("cached lookup returned a different node: %p vs %p", first, second)
	}
}

func TestLookupSharesIntermediateNodes(t *testing.T) {
	fs, dev := mountTestTree(t)

	if _, err := fs.LookupFile("/a"); err != nil {
		t.Fatalf(`LookupFile("/a") failed: %v`, err)
	}
	// Resolving deeper reuses the cached "a" node: the only reads left
	// are the scan of a's entries and the decode of b's inode.
	before := dev.Reads
	if _, err := fs.LookupFile("/a/b"); err != nil {
		t.Fatalf(`LookupFile("/a/b") failed: %v`, err)
	}
	if got := dev.Reads - before; got != 2 {
		t.Errorf("lookup below cached node performed %d reads, want 2", got)
	}
}

func TestLookupPropagatesInodeFailure(t *testing.T) {
	img := buildTestTree()
	fs, dev := mountTestTree(t)
	dev.FailOffsets = map[int64]bool{img.inodeOffset(4): true}

	// The inode decode failure surfaces verbatim through the resolver.
	if _, err := fs.LookupFile("/a/b"); err != fserr.ErrIO {
		t.Errorf(`LookupFile("/a/b") returned %v, want %v`, err, fserr.ErrIO)
	}
}

func TestLookupPathForms(t *testing.T) {
	fs, _ := mountTestTree(t)

	// Trailing slashes and duplicate separators resolve to the same node.
	want, err := fs.LookupFile("/a/b")
	if err != nil {
		t.Fatalf(`LookupFile("/a/b") failed: %v`, err)
	}
	for _, path := range []string{"a/b", "/a/b/", "//a//b"} {
		got, err := fs.LookupFile(path)
		if err != nil {
			t.Errorf("LookupFile(%q) failed: %v", path, err)
			continue
		}
		if got != want {
			t.Errorf("LookupFile(%q) resolved to a different node", path)
		}
	}
}
