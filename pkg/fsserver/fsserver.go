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

// Package fsserver exposes a mounted filesystem to the enclosing request
// dispatch layer.
//
// The transport delivering requests lives outside this package; Server
// provides the handlers it dispatches to. Requests are handled one at a
// time and run to completion synchronously. Failures are reported as fserr
// sentinels so the dispatch layer can translate them to wire errnos with
// fserr.ToErrno.
package fsserver

import (
	"io"

	"github.com/sirupsen/logrus"

	"linnfs.dev/linnfs/pkg/fserr"
	"linnfs.dev/linnfs/pkg/linnfs"
)

// Server handles filesystem requests against one mount.
type Server struct {
	fs  *linnfs.FileSystem
	log *logrus.Entry
}

// New returns a server for the mount fs, identified in logs as mountPoint.
func New(fs *linnfs.FileSystem, mountPoint string) *Server {
	return &Server{
		fs:  fs,
		log: logrus.WithField("mount", mountPoint),
	}
}

// FileInfo describes one file or directory for a stat-style request.
type FileInfo struct {
	Type       uint16
	Mode       uint16
	UserID     uint16
	GroupID    uint16
	Size       uint64
	LinksCount uint16
	ModifyTime uint32
}

func infoFromInode(inode *linnfs.Inode) FileInfo {
	return FileInfo{
		Type:       inode.Type,
		Mode:       inode.Mode,
		UserID:     inode.UserID,
		GroupID:    inode.GroupID,
		Size:       uint64(inode.Size),
		LinksCount: inode.LinksCount,
		ModifyTime: inode.ModifyTime,
	}
}

// Stat resolves path and describes the file or directory found there.
func (s *Server) Stat(path string) (FileInfo, error) {
	c, err := s.fs.LookupFile(path)
	if err != nil {
		s.log.WithError(err).Debugf("stat %q failed", path)
		return FileInfo{}, err
	}
	return infoFromInode(c.Inode()), nil
}

// ReadFile reads up to len(p) bytes of the regular file at path, starting
// at offset off, and returns the number of bytes read.
func (s *Server) ReadFile(path string, p []byte, off int64) (int, error) {
	c, err := s.fs.LookupFile(path)
	if err != nil {
		s.log.WithError(err).Debugf("read %q failed", path)
		return 0, err
	}
	if c.IsDirectory() {
		return 0, fserr.ErrIsADirectory
	}
	n, err := c.File().ReadAt(p, off)
	if err == io.EOF {
		// A truncated read is reported through the byte count.
		return n, nil
	}
	if err != nil {
		s.log.WithError(err).Warnf("read %q failed", path)
	}
	return n, err
}

// ReadDir resolves path to a directory and lists its entries.
func (s *Server) ReadDir(path string) ([]linnfs.DirectoryEntry, error) {
	c, err := s.fs.LookupFile(path)
	if err != nil {
		s.log.WithError(err).Debugf("readdir %q failed", path)
		return nil, err
	}
	if !c.IsDirectory() {
		return nil, fserr.ErrNotADirectory
	}
	return c.Directory().List()
}

// Create always fails: the filesystem is read-only.
func (s *Server) Create(path string) error {
	s.log.Debugf("create %q rejected", path)
	return s.fs.CreateFile(path)
}
