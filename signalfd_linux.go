// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build linux

package evx

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

const (
	sigsetNSig        = 64
	sigsetBitsPerWord = 64
)

// Signalfd delivers process signals as descriptor readiness, so they
// can join a poll like any other source. The signals must be blocked
// in the receiving threads for delivery to go through the descriptor.
type Signalfd struct {
	fd FD
}

// NewSignalfd creates a non-blocking close-on-exec signalfd
// subscribed to the given signals.
func NewSignalfd(signals ...unix.Signal) (*Signalfd, error) {
	var set unix.Sigset_t
	for _, sig := range signals {
		sigAddSet(&set, sig)
	}
	fd, err := unix.Signalfd(-1, &set, unix.SFD_NONBLOCK|unix.SFD_CLOEXEC)
	if err != nil {
		return nil, osError(err)
	}
	return &Signalfd{fd: NewFD(fd)}, nil
}

// ReadSiginfo reads one pending signal. With none pending the
// would-block error is returned.
func (s *Signalfd) ReadSiginfo() (sig unix.Signal, code int, err error) {
	var buf [128]byte
	if _, err = unix.Read(s.fd.Raw(), buf[:]); err != nil {
		return -1, -1, osError(err)
	}
	info := (*unix.Siginfo)(unsafe.Pointer(&buf))
	return unix.Signal(info.Signo), int(info.Code), nil
}

func (s *Signalfd) Raw() int {
	return s.fd.Raw()
}

func (s *Signalfd) Close() {
	s.fd.Close()
}

func (s *Signalfd) Register(r Registry, tok Token, intr Interest) error {
	return r.RegisterFD(s.fd.Raw(), tok, intr)
}

func (s *Signalfd) Reregister(r Registry, tok Token, intr Interest) error {
	return r.ReregisterFD(s.fd.Raw(), tok, intr)
}

func (s *Signalfd) Deregister(r Registry) error {
	return r.DeregisterFD(s.fd.Raw())
}

var _ Source = (*Signalfd)(nil)

func sigAddSet(set *unix.Sigset_t, sig unix.Signal) {
	n := uint(sig - 1)
	if n >= sigsetNSig {
		return
	}
	set.Val[n/sigsetBitsPerWord] |= 1 << (n % sigsetBitsPerWord)
}
