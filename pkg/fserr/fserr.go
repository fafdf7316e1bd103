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

// Package fserr defines the error values reported by the filesystem core.
//
// Errors are exported as identity-comparable sentinels so that callers can
// dispatch on them cheaply, each carrying the errno that the enclosing
// request dispatch layer reports upward.
package fserr

// Errno is the wire error number reported to the enclosing request layer.
type Errno int32

// Errno values for the errors the core can produce.
const (
	ENOENT  Errno = 2
	EIO     Errno = 5
	ENOTDIR Errno = 20
	EISDIR  Errno = 21
	EROFS   Errno = 30
	ENOTSUP Errno = 95
	EUCLEAN Errno = 117
)

// Error is a filesystem error with a fixed wire errno and a descriptive
// message. Errors are compared by identity, not by value.
type Error struct {
	errno   Errno
	message string
}

// New creates a new *Error.
func New(errno Errno, message string) *Error {
	return &Error{
		errno:   errno,
		message: message,
	}
}

// Error implements error.Error.
func (e *Error) Error() string { return e.message }

// Errno returns the wire errno of this error.
func (e *Error) Errno() Errno { return e.errno }

// The error values produced by the filesystem core. Each failure path
// returns exactly one of these; they carry no dynamic context.
var (
	// ErrCorruptSuperblock indicates that the superblock magic fields did
	// not match the expected constants at mount time.
	ErrCorruptSuperblock = New(EUCLEAN, "corrupt superblock")

	// ErrIO indicates that a storage read failed. Reads are attempted
	// exactly once; there is no retry behind this error.
	ErrIO = New(EIO, "I/O error")

	// ErrNotFound indicates an invalid inode number, an absent directory
	// entry or an unresolved path segment.
	ErrNotFound = New(ENOENT, "no such file or directory")

	// ErrNotADirectory indicates a path descent through a non-directory.
	ErrNotADirectory = New(ENOTDIR, "not a directory")

	// ErrIsADirectory indicates a file data operation on a directory.
	ErrIsADirectory = New(EISDIR, "is a directory")

	// ErrUnsupportedType indicates an inode type outside the set this
	// server materializes (directories and regular files).
	ErrUnsupportedType = New(ENOTSUP, "unsupported inode type")

	// ErrNotSupported indicates a write operation on the read-only core.
	ErrNotSupported = New(EROFS, "operation not supported")
)

// ToErrno maps err to its wire errno. Errors that did not originate in this
// package map to EIO, which is the only honest answer for an unclassified
// failure from the storage layer.
func ToErrno(err error) Errno {
	if e, ok := err.(*Error); ok {
		return e.Errno()
	}
	return EIO
}
