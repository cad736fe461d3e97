// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build linux

package evx

import (
	"golang.org/x/sys/unix"
)

// PipeSender is the write end of an anonymous pipe.
type PipeSender struct {
	fd FD
}

// PipeReceiver is the read end of an anonymous pipe.
type PipeReceiver struct {
	fd FD
}

// Pipe creates an anonymous pipe with both ends non-blocking and
// close-on-exec.
func Pipe() (*PipeSender, *PipeReceiver, error) {
	var fds [2]int
	if err := unix.Pipe2(fds[:], unix.O_NONBLOCK|unix.O_CLOEXEC); err != nil {
		return nil, nil, osError(err)
	}
	return &PipeSender{fd: NewFD(fds[1])}, &PipeReceiver{fd: NewFD(fds[0])}, nil
}

// PipeSenderFromRaw adopts fd as the write end of a pipe.
func PipeSenderFromRaw(fd int) *PipeSender {
	return &PipeSender{fd: NewFD(fd)}
}

// PipeReceiverFromRaw adopts fd as the read end of a pipe.
func PipeReceiverFromRaw(fd int) *PipeReceiver {
	return &PipeReceiver{fd: NewFD(fd)}
}

func (p *PipeSender) Write(b []byte) (int, error) {
	n, err := unix.Write(p.fd.Raw(), b)
	if err != nil {
		return 0, osError(err)
	}
	return n, nil
}

func (p *PipeSender) SetNonblocking(enable bool) error {
	return osError(unix.SetNonblock(p.fd.Raw(), enable))
}

func (p *PipeSender) Raw() int {
	return p.fd.Raw()
}

// IntoRaw releases ownership of the descriptor to the caller.
func (p *PipeSender) IntoRaw() int {
	return p.fd.Release()
}

func (p *PipeSender) Close() {
	p.fd.Close()
}

func (p *PipeSender) Register(r Registry, tok Token, intr Interest) error {
	return r.RegisterFD(p.fd.Raw(), tok, intr)
}

func (p *PipeSender) Reregister(r Registry, tok Token, intr Interest) error {
	return r.ReregisterFD(p.fd.Raw(), tok, intr)
}

func (p *PipeSender) Deregister(r Registry) error {
	return r.DeregisterFD(p.fd.Raw())
}

func (p *PipeReceiver) Read(b []byte) (int, error) {
	n, err := unix.Read(p.fd.Raw(), b)
	if err != nil {
		return 0, osError(err)
	}
	return n, nil
}

func (p *PipeReceiver) SetNonblocking(enable bool) error {
	return osError(unix.SetNonblock(p.fd.Raw(), enable))
}

func (p *PipeReceiver) Raw() int {
	return p.fd.Raw()
}

// IntoRaw releases ownership of the descriptor to the caller.
func (p *PipeReceiver) IntoRaw() int {
	return p.fd.Release()
}

func (p *PipeReceiver) Close() {
	p.fd.Close()
}

func (p *PipeReceiver) Register(r Registry, tok Token, intr Interest) error {
	return r.RegisterFD(p.fd.Raw(), tok, intr)
}

func (p *PipeReceiver) Reregister(r Registry, tok Token, intr Interest) error {
	return r.ReregisterFD(p.fd.Raw(), tok, intr)
}

func (p *PipeReceiver) Deregister(r Registry) error {
	return r.DeregisterFD(p.fd.Raw())
}

var (
	_ Source = (*PipeSender)(nil)
	_ Source = (*PipeReceiver)(nil)
)
