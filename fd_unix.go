// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build unix

package evx

import (
	"golang.org/x/sys/unix"
)

// FD holds exclusive ownership of one kernel file descriptor.
// The zero FD is empty. An FD must not be duplicated by assignment
// after it holds a descriptor: exactly one holder closes it, a copy
// would close a descriptor it no longer owns. Ownership moves with
// MoveFrom or leaves the handle with Release.
//
// The descriptor is stored shifted by one so that the zero value of
// the struct is the empty handle.
type FD struct {
	v int
}

// NewFD adopts fd. Negative values produce an empty handle.
func NewFD(fd int) FD {
	if fd < 0 {
		return FD{}
	}
	return FD{v: fd + 1}
}

// Raw returns the held descriptor, or -1 when empty.
func (f *FD) Raw() int {
	return f.v - 1
}

// Valid reports whether the handle holds an open descriptor.
func (f *FD) Valid() bool {
	return f.v > 0
}

// Release gives up ownership and returns the raw descriptor, or -1
// when the handle was empty. The handle becomes empty and will not
// close the descriptor.
func (f *FD) Release() int {
	fd := f.v - 1
	f.v = 0
	return fd
}

// Reset closes any held descriptor and adopts fd. Pass a negative
// value to leave the handle empty.
func (f *FD) Reset(fd int) {
	if f.v > 0 {
		_ = unix.Close(f.v - 1)
	}
	if fd < 0 {
		f.v = 0
		return
	}
	f.v = fd + 1
}

// MoveFrom transfers ownership out of other, closing any descriptor
// this handle previously held. Transferring from itself is a no-op.
func (f *FD) MoveFrom(other *FD) {
	if f == other {
		return
	}
	f.Reset(other.Release())
}

// Close releases the descriptor, if any. The close result is
// discarded: a scoped handle has nowhere meaningful to report it, and
// the descriptor is gone either way. Closing an empty handle does
// nothing.
func (f *FD) Close() {
	if f.v > 0 {
		_ = unix.Close(f.v - 1)
	}
	f.v = 0
}
