// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build linux

package evx

import (
	"golang.org/x/sys/unix"
)

func newUnixFd(typ int) (int, error) {
	fd, err := unix.Socket(unix.AF_UNIX, typ|unix.SOCK_NONBLOCK|unix.SOCK_CLOEXEC, 0)
	if err != nil {
		return -1, osError(err)
	}
	return fd, nil
}

// UnixListener is a non-blocking listening AF_UNIX stream socket.
type UnixListener struct {
	fd   FD
	path string
}

// ListenUnix binds laddr and starts listening. The socket file is
// unlinked again on Close.
func ListenUnix(laddr *UnixAddr) (*UnixListener, error) {
	if laddr == nil {
		return nil, InvalidAddrError("nil local address")
	}
	fd, err := newUnixFd(unix.SOCK_STREAM)
	if err != nil {
		return nil, err
	}
	l := &UnixListener{fd: NewFD(fd), path: laddr.Name}
	if err = unix.Bind(fd, convertUnixAddr(laddr)); err != nil {
		l.fd.Close()
		return nil, osError(err)
	}
	if err = unix.Listen(fd, defaultBacklog); err != nil {
		l.fd.Close()
		return nil, osError(err)
	}
	return l, nil
}

func (l *UnixListener) Accept() (*UnixStream, *UnixAddr, error) {
	nfd, sa, err := unix.Accept4(l.fd.Raw(), unix.SOCK_NONBLOCK|unix.SOCK_CLOEXEC)
	if err != nil {
		return nil, nil, osError(err)
	}
	return &UnixStream{fd: NewFD(nfd)}, unixAddrFromSockaddr(sa, "unix"), nil
}

func (l *UnixListener) Addr() (*UnixAddr, error) {
	sa, err := unix.Getsockname(l.fd.Raw())
	if err != nil {
		return nil, osError(err)
	}
	return unixAddrFromSockaddr(sa, "unix"), nil
}

func (l *UnixListener) Raw() int {
	return l.fd.Raw()
}

// IntoRaw releases ownership of the descriptor to the caller. The
// socket file stays on disk.
func (l *UnixListener) IntoRaw() int {
	return l.fd.Release()
}

func (l *UnixListener) Close() {
	if len(l.path) > 0 {
		_ = unix.Unlink(l.path)
	}
	l.fd.Close()
}

func (l *UnixListener) Register(r Registry, tok Token, intr Interest) error {
	return r.RegisterFD(l.fd.Raw(), tok, intr)
}

func (l *UnixListener) Reregister(r Registry, tok Token, intr Interest) error {
	return r.ReregisterFD(l.fd.Raw(), tok, intr)
}

func (l *UnixListener) Deregister(r Registry) error {
	return r.DeregisterFD(l.fd.Raw())
}

// UnixStream is a non-blocking connected AF_UNIX stream socket.
type UnixStream struct {
	fd FD
}

// ConnectUnix starts a non-blocking connect to raddr. As with TCP, an
// in-progress result is success at construction.
func ConnectUnix(raddr *UnixAddr) (*UnixStream, error) {
	if raddr == nil {
		return nil, InvalidAddrError("nil remote address")
	}
	fd, err := newUnixFd(unix.SOCK_STREAM)
	if err != nil {
		return nil, err
	}
	s := &UnixStream{fd: NewFD(fd)}
	if err = unix.Connect(fd, convertUnixAddr(raddr)); err != nil &&
		err != unix.EINPROGRESS && err != unix.EAGAIN {
		s.fd.Close()
		return nil, osError(err)
	}
	return s, nil
}

// UnixStreamPair returns two connected stream sockets.
func UnixStreamPair() (s [2]*UnixStream, err error) {
	fds, err := unix.Socketpair(unix.AF_UNIX, unix.SOCK_STREAM|unix.SOCK_NONBLOCK|unix.SOCK_CLOEXEC, 0)
	if err != nil {
		return s, osError(err)
	}
	s[0] = &UnixStream{fd: NewFD(fds[0])}
	s[1] = &UnixStream{fd: NewFD(fds[1])}
	return s, nil
}

// UnixStreamFromRaw adopts a connected descriptor created elsewhere.
func UnixStreamFromRaw(fd int) *UnixStream {
	return &UnixStream{fd: NewFD(fd)}
}

func (s *UnixStream) Read(b []byte) (int, error) {
	n, err := unix.Read(s.fd.Raw(), b)
	if err != nil {
		return 0, osError(err)
	}
	return n, nil
}

func (s *UnixStream) Write(b []byte) (int, error) {
	n, err := unix.Write(s.fd.Raw(), b)
	if err != nil {
		return 0, osError(err)
	}
	return n, nil
}

func (s *UnixStream) Shutdown(how int) error {
	return osError(unix.Shutdown(s.fd.Raw(), how))
}

func (s *UnixStream) LocalAddr() (*UnixAddr, error) {
	sa, err := unix.Getsockname(s.fd.Raw())
	if err != nil {
		return nil, osError(err)
	}
	return unixAddrFromSockaddr(sa, "unix"), nil
}

func (s *UnixStream) PeerAddr() (*UnixAddr, error) {
	sa, err := unix.Getpeername(s.fd.Raw())
	if err != nil {
		return nil, osError(err)
	}
	return unixAddrFromSockaddr(sa, "unix"), nil
}

func (s *UnixStream) TakeError() (int, error) {
	v, err := unix.GetsockoptInt(s.fd.Raw(), unix.SOL_SOCKET, unix.SO_ERROR)
	if err != nil {
		return 0, osError(err)
	}
	return v, nil
}

func (s *UnixStream) Raw() int {
	return s.fd.Raw()
}

// IntoRaw releases ownership of the descriptor to the caller.
func (s *UnixStream) IntoRaw() int {
	return s.fd.Release()
}

func (s *UnixStream) Close() {
	s.fd.Close()
}

func (s *UnixStream) Register(r Registry, tok Token, intr Interest) error {
	return r.RegisterFD(s.fd.Raw(), tok, intr)
}

func (s *UnixStream) Reregister(r Registry, tok Token, intr Interest) error {
	return r.ReregisterFD(s.fd.Raw(), tok, intr)
}

func (s *UnixStream) Deregister(r Registry) error {
	return r.DeregisterFD(s.fd.Raw())
}

// UnixDatagram is a non-blocking AF_UNIX datagram socket.
type UnixDatagram struct {
	fd   FD
	path string
}

// BindUnixDatagram creates a datagram socket bound to laddr. The
// socket file is unlinked again on Close.
func BindUnixDatagram(laddr *UnixAddr) (*UnixDatagram, error) {
	if laddr == nil {
		return nil, InvalidAddrError("nil local address")
	}
	fd, err := newUnixFd(unix.SOCK_DGRAM)
	if err != nil {
		return nil, err
	}
	so := &UnixDatagram{fd: NewFD(fd), path: laddr.Name}
	if err = unix.Bind(fd, convertUnixAddr(laddr)); err != nil {
		so.fd.Close()
		return nil, osError(err)
	}
	return so, nil
}

// UnboundUnixDatagram creates a datagram socket with no name, good
// enough for the sending side.
func UnboundUnixDatagram() (*UnixDatagram, error) {
	fd, err := newUnixFd(unix.SOCK_DGRAM)
	if err != nil {
		return nil, err
	}
	return &UnixDatagram{fd: NewFD(fd)}, nil
}

// UnixDatagramPair returns two connected datagram sockets.
func UnixDatagramPair() (s [2]*UnixDatagram, err error) {
	fds, err := unix.Socketpair(unix.AF_UNIX, unix.SOCK_DGRAM|unix.SOCK_NONBLOCK|unix.SOCK_CLOEXEC, 0)
	if err != nil {
		return s, osError(err)
	}
	s[0] = &UnixDatagram{fd: NewFD(fds[0])}
	s[1] = &UnixDatagram{fd: NewFD(fds[1])}
	return s, nil
}

func (so *UnixDatagram) Connect(raddr *UnixAddr) error {
	if raddr == nil {
		return InvalidAddrError("nil remote address")
	}
	return osError(unix.Connect(so.fd.Raw(), convertUnixAddr(raddr)))
}

func (so *UnixDatagram) Send(b []byte) (int, error) {
	n, err := unix.Write(so.fd.Raw(), b)
	if err != nil {
		return 0, osError(err)
	}
	return n, nil
}

func (so *UnixDatagram) Recv(b []byte) (int, error) {
	n, err := unix.Read(so.fd.Raw(), b)
	if err != nil {
		return 0, osError(err)
	}
	return n, nil
}

func (so *UnixDatagram) SendTo(b []byte, raddr *UnixAddr) (int, error) {
	if raddr == nil {
		return 0, InvalidAddrError("nil remote address")
	}
	err := unix.Sendto(so.fd.Raw(), b, 0, convertUnixAddr(raddr))
	if err != nil {
		return 0, osError(err)
	}
	return len(b), nil
}

func (so *UnixDatagram) RecvFrom(b []byte) (int, *UnixAddr, error) {
	n, sa, err := unix.Recvfrom(so.fd.Raw(), b, 0)
	if err != nil {
		return 0, nil, osError(err)
	}
	return n, unixAddrFromSockaddr(sa, "unixgram"), nil
}

func (so *UnixDatagram) LocalAddr() (*UnixAddr, error) {
	sa, err := unix.Getsockname(so.fd.Raw())
	if err != nil {
		return nil, osError(err)
	}
	return unixAddrFromSockaddr(sa, "unixgram"), nil
}

func (so *UnixDatagram) Raw() int {
	return so.fd.Raw()
}

// IntoRaw releases ownership of the descriptor to the caller. The
// socket file, if bound, stays on disk.
func (so *UnixDatagram) IntoRaw() int {
	return so.fd.Release()
}

func (so *UnixDatagram) Close() {
	if len(so.path) > 0 {
		_ = unix.Unlink(so.path)
	}
	so.fd.Close()
}

func (so *UnixDatagram) Register(r Registry, tok Token, intr Interest) error {
	return r.RegisterFD(so.fd.Raw(), tok, intr)
}

func (so *UnixDatagram) Reregister(r Registry, tok Token, intr Interest) error {
	return r.ReregisterFD(so.fd.Raw(), tok, intr)
}

func (so *UnixDatagram) Deregister(r Registry) error {
	return r.DeregisterFD(so.fd.Raw())
}

var (
	_ Source = (*UnixListener)(nil)
	_ Source = (*UnixStream)(nil)
	_ Source = (*UnixDatagram)(nil)
)
