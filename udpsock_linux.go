// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build linux

package evx

import (
	"golang.org/x/sys/unix"
)

// UDPSocket is a non-blocking datagram socket.
type UDPSocket struct {
	fd FD
}

func newUDPFd(sa unix.Sockaddr) (int, error) {
	domain := unix.AF_INET
	if _, ok := sa.(*unix.SockaddrInet6); ok {
		domain = unix.AF_INET6
	}
	fd, err := unix.Socket(domain, unix.SOCK_DGRAM|unix.SOCK_NONBLOCK|unix.SOCK_CLOEXEC, 0)
	if err != nil {
		return -1, osError(err)
	}
	return fd, nil
}

// BindUDP creates a datagram socket bound to laddr.
func BindUDP(laddr *UDPAddr) (*UDPSocket, error) {
	if laddr == nil {
		return nil, InvalidAddrError("nil local address")
	}
	sa := convertUDPAddr(laddr)
	fd, err := newUDPFd(sa)
	if err != nil {
		return nil, err
	}
	so := &UDPSocket{fd: NewFD(fd)}
	if err = unix.Bind(fd, sa); err != nil {
		so.fd.Close()
		return nil, osError(err)
	}
	return so, nil
}

// UDPSocketFromRaw adopts a datagram descriptor created elsewhere.
func UDPSocketFromRaw(fd int) *UDPSocket {
	return &UDPSocket{fd: NewFD(fd)}
}

// Connect fixes the default peer so Send and Recv can be used.
func (so *UDPSocket) Connect(raddr *UDPAddr) error {
	if raddr == nil {
		return InvalidAddrError("nil remote address")
	}
	return osError(unix.Connect(so.fd.Raw(), convertUDPAddr(raddr)))
}

func (so *UDPSocket) Send(b []byte) (int, error) {
	n, err := unix.Write(so.fd.Raw(), b)
	if err != nil {
		return 0, osError(err)
	}
	return n, nil
}

func (so *UDPSocket) Recv(b []byte) (int, error) {
	n, err := unix.Read(so.fd.Raw(), b)
	if err != nil {
		return 0, osError(err)
	}
	return n, nil
}

func (so *UDPSocket) SendTo(b []byte, raddr *UDPAddr) (int, error) {
	if raddr == nil {
		return 0, InvalidAddrError("nil remote address")
	}
	err := unix.Sendto(so.fd.Raw(), b, 0, convertUDPAddr(raddr))
	if err != nil {
		return 0, osError(err)
	}
	return len(b), nil
}

func (so *UDPSocket) RecvFrom(b []byte) (int, *UDPAddr, error) {
	n, sa, err := unix.Recvfrom(so.fd.Raw(), b, 0)
	if err != nil {
		return 0, nil, osError(err)
	}
	return n, udpAddrFromSockaddr(sa), nil
}

func (so *UDPSocket) LocalAddr() (*UDPAddr, error) {
	sa, err := unix.Getsockname(so.fd.Raw())
	if err != nil {
		return nil, osError(err)
	}
	return udpAddrFromSockaddr(sa), nil
}

func (so *UDPSocket) PeerAddr() (*UDPAddr, error) {
	sa, err := unix.Getpeername(so.fd.Raw())
	if err != nil {
		return nil, osError(err)
	}
	return udpAddrFromSockaddr(sa), nil
}

func (so *UDPSocket) Raw() int {
	return so.fd.Raw()
}

// IntoRaw releases ownership of the descriptor to the caller.
func (so *UDPSocket) IntoRaw() int {
	return so.fd.Release()
}

func (so *UDPSocket) Close() {
	so.fd.Close()
}

func (so *UDPSocket) Register(r Registry, tok Token, intr Interest) error {
	return r.RegisterFD(so.fd.Raw(), tok, intr)
}

func (so *UDPSocket) Reregister(r Registry, tok Token, intr Interest) error {
	return r.ReregisterFD(so.fd.Raw(), tok, intr)
}

func (so *UDPSocket) Deregister(r Registry) error {
	return r.DeregisterFD(so.fd.Raw())
}

var _ Source = (*UDPSocket)(nil)
