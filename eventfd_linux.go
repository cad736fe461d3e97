// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build linux

package evx

import (
	"encoding/binary"

	"golang.org/x/sys/unix"
)

// eventfd is a kernel event counter. Writes add to the counter, reads
// return and zero it, which is what makes the waker coalesce.
type eventfd struct {
	fd FD
}

func newEventfd() (*eventfd, error) {
	fd, err := unix.Eventfd(0, unix.EFD_NONBLOCK|unix.EFD_CLOEXEC)
	if err != nil {
		return nil, osError(err)
	}
	return &eventfd{fd: NewFD(fd)}, nil
}

func (e *eventfd) raw() int {
	return e.fd.Raw()
}

func (e *eventfd) writeUint64(val uint64) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], val)
	if _, err := unix.Write(e.fd.Raw(), buf[:]); err != nil {
		return osError(err)
	}
	return nil
}

func (e *eventfd) readUint64() (uint64, error) {
	var buf [8]byte
	if _, err := unix.Read(e.fd.Raw(), buf[:]); err != nil {
		return 0, osError(err)
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}

func (e *eventfd) close() {
	e.fd.Close()
}
