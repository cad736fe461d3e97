// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build linux

package evx

import (
	"golang.org/x/sys/unix"
)

// TCPListener is a non-blocking listening stream socket.
type TCPListener struct {
	fd FD
}

func newTCPFd(sa unix.Sockaddr) (int, error) {
	domain := unix.AF_INET
	if _, ok := sa.(*unix.SockaddrInet6); ok {
		domain = unix.AF_INET6
	}
	fd, err := unix.Socket(domain, unix.SOCK_STREAM|unix.SOCK_NONBLOCK|unix.SOCK_CLOEXEC, 0)
	if err != nil {
		return -1, osError(err)
	}
	return fd, nil
}

// ListenTCP binds laddr and starts listening. SO_REUSEADDR is set
// before the bind so a restarted server can take the port back while
// old connections sit in TIME_WAIT.
func ListenTCP(laddr *TCPAddr) (*TCPListener, error) {
	if laddr == nil {
		return nil, InvalidAddrError("nil local address")
	}
	sa := convertTCPAddr(laddr)
	fd, err := newTCPFd(sa)
	if err != nil {
		return nil, err
	}
	l := &TCPListener{fd: NewFD(fd)}
	if err = unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); err != nil {
		l.fd.Close()
		return nil, osError(err)
	}
	if err = unix.Bind(fd, sa); err != nil {
		l.fd.Close()
		return nil, osError(err)
	}
	if err = unix.Listen(fd, defaultBacklog); err != nil {
		l.fd.Close()
		return nil, osError(err)
	}
	return l, nil
}

// TCPListenerFromRaw adopts a listening descriptor created elsewhere.
func TCPListenerFromRaw(fd int) *TCPListener {
	return &TCPListener{fd: NewFD(fd)}
}

// Accept takes one pending connection. With no connection queued the
// would-block error is returned and the caller waits for the next
// readable event.
func (l *TCPListener) Accept() (*TCPStream, *TCPAddr, error) {
	nfd, sa, err := unix.Accept4(l.fd.Raw(), unix.SOCK_NONBLOCK|unix.SOCK_CLOEXEC)
	if err != nil {
		return nil, nil, osError(err)
	}
	return &TCPStream{fd: NewFD(nfd)}, tcpAddrFromSockaddr(sa), nil
}

func (l *TCPListener) Addr() (*TCPAddr, error) {
	sa, err := unix.Getsockname(l.fd.Raw())
	if err != nil {
		return nil, osError(err)
	}
	return tcpAddrFromSockaddr(sa), nil
}

func (l *TCPListener) SetTTL(ttl uint32) error {
	return osError(unix.SetsockoptInt(l.fd.Raw(), unix.IPPROTO_IP, unix.IP_TTL, int(ttl)))
}

func (l *TCPListener) TTL() (uint32, error) {
	v, err := unix.GetsockoptInt(l.fd.Raw(), unix.IPPROTO_IP, unix.IP_TTL)
	if err != nil {
		return 0, osError(err)
	}
	return uint32(v), nil
}

// TakeError returns and clears the pending socket error.
func (l *TCPListener) TakeError() (int, error) {
	v, err := unix.GetsockoptInt(l.fd.Raw(), unix.SOL_SOCKET, unix.SO_ERROR)
	if err != nil {
		return 0, osError(err)
	}
	return v, nil
}

func (l *TCPListener) Raw() int {
	return l.fd.Raw()
}

// IntoRaw releases ownership of the descriptor to the caller.
func (l *TCPListener) IntoRaw() int {
	return l.fd.Release()
}

func (l *TCPListener) Close() {
	l.fd.Close()
}

func (l *TCPListener) Register(r Registry, tok Token, intr Interest) error {
	return r.RegisterFD(l.fd.Raw(), tok, intr)
}

func (l *TCPListener) Reregister(r Registry, tok Token, intr Interest) error {
	return r.ReregisterFD(l.fd.Raw(), tok, intr)
}

func (l *TCPListener) Deregister(r Registry) error {
	return r.DeregisterFD(l.fd.Raw())
}

// TCPStream is a non-blocking connected stream socket.
type TCPStream struct {
	fd FD
}

// ConnectTCP starts a non-blocking connect to raddr. An in-progress
// result is success here: register the stream writable and complete
// the handshake check with TakeError once the writable event arrives.
func ConnectTCP(raddr *TCPAddr) (*TCPStream, error) {
	if raddr == nil {
		return nil, InvalidAddrError("nil remote address")
	}
	sa := convertTCPAddr(raddr)
	fd, err := newTCPFd(sa)
	if err != nil {
		return nil, err
	}
	s := &TCPStream{fd: NewFD(fd)}
	if err = unix.Connect(fd, sa); err != nil && err != unix.EINPROGRESS {
		s.fd.Close()
		return nil, osError(err)
	}
	return s, nil
}

// TCPStreamFromRaw adopts a connected descriptor created elsewhere.
func TCPStreamFromRaw(fd int) *TCPStream {
	return &TCPStream{fd: NewFD(fd)}
}

// Read returns 0, nil at end of stream. Short reads are expected and
// are not errors.
func (s *TCPStream) Read(b []byte) (int, error) {
	n, err := unix.Read(s.fd.Raw(), b)
	if err != nil {
		return 0, osError(err)
	}
	return n, nil
}

func (s *TCPStream) Write(b []byte) (int, error) {
	n, err := unix.Write(s.fd.Raw(), b)
	if err != nil {
		return 0, osError(err)
	}
	return n, nil
}

// Peek reads without consuming.
func (s *TCPStream) Peek(b []byte) (int, error) {
	n, _, err := unix.Recvfrom(s.fd.Raw(), b, unix.MSG_PEEK)
	if err != nil {
		return 0, osError(err)
	}
	return n, nil
}

func (s *TCPStream) ReadV(iovs [][]byte) (int, error) {
	n, err := unix.Readv(s.fd.Raw(), iovs)
	if err != nil {
		return 0, osError(err)
	}
	return n, nil
}

func (s *TCPStream) WriteV(iovs [][]byte) (int, error) {
	n, err := unix.Writev(s.fd.Raw(), iovs)
	if err != nil {
		return 0, osError(err)
	}
	return n, nil
}

// Shutdown closes one or both directions; how is unix.SHUT_RD,
// unix.SHUT_WR or unix.SHUT_RDWR.
func (s *TCPStream) Shutdown(how int) error {
	return osError(unix.Shutdown(s.fd.Raw(), how))
}

func (s *TCPStream) SetNoDelay(enable bool) error {
	return osError(unix.SetsockoptInt(s.fd.Raw(), unix.IPPROTO_TCP, unix.TCP_NODELAY, boolInt(enable)))
}

func (s *TCPStream) NoDelay() (bool, error) {
	v, err := unix.GetsockoptInt(s.fd.Raw(), unix.IPPROTO_TCP, unix.TCP_NODELAY)
	if err != nil {
		return false, osError(err)
	}
	return v != 0, nil
}

func (s *TCPStream) SetTTL(ttl uint32) error {
	return osError(unix.SetsockoptInt(s.fd.Raw(), unix.IPPROTO_IP, unix.IP_TTL, int(ttl)))
}

func (s *TCPStream) TTL() (uint32, error) {
	v, err := unix.GetsockoptInt(s.fd.Raw(), unix.IPPROTO_IP, unix.IP_TTL)
	if err != nil {
		return 0, osError(err)
	}
	return uint32(v), nil
}

func (s *TCPStream) LocalAddr() (*TCPAddr, error) {
	sa, err := unix.Getsockname(s.fd.Raw())
	if err != nil {
		return nil, osError(err)
	}
	return tcpAddrFromSockaddr(sa), nil
}

func (s *TCPStream) PeerAddr() (*TCPAddr, error) {
	sa, err := unix.Getpeername(s.fd.Raw())
	if err != nil {
		return nil, osError(err)
	}
	return tcpAddrFromSockaddr(sa), nil
}

// TakeError returns and clears the pending socket error, the
// completion check after a non-blocking connect.
func (s *TCPStream) TakeError() (int, error) {
	v, err := unix.GetsockoptInt(s.fd.Raw(), unix.SOL_SOCKET, unix.SO_ERROR)
	if err != nil {
		return 0, osError(err)
	}
	return v, nil
}

func (s *TCPStream) Raw() int {
	return s.fd.Raw()
}

// IntoRaw releases ownership of the descriptor to the caller.
func (s *TCPStream) IntoRaw() int {
	return s.fd.Release()
}

func (s *TCPStream) Close() {
	s.fd.Close()
}

func (s *TCPStream) Register(r Registry, tok Token, intr Interest) error {
	return r.RegisterFD(s.fd.Raw(), tok, intr)
}

func (s *TCPStream) Reregister(r Registry, tok Token, intr Interest) error {
	return r.ReregisterFD(s.fd.Raw(), tok, intr)
}

func (s *TCPStream) Deregister(r Registry) error {
	return r.DeregisterFD(s.fd.Raw())
}

var (
	_ Source = (*TCPListener)(nil)
	_ Source = (*TCPStream)(nil)
)

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
