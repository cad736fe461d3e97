//go:build unix

package evx

import (
	"net"

	"golang.org/x/sys/unix"
)

const (
	defaultBacklog = 511
)

func convertTCPAddr(addr *net.TCPAddr) unix.Sockaddr {
	if addr.IP.To4() != nil {
		return &unix.SockaddrInet4{
			Port: addr.Port,
			Addr: IP4AddressToBytes(addr.IP),
		}
	}
	return &unix.SockaddrInet6{
		Port: addr.Port,
		Addr: IP6AddressToBytes(addr.IP),
	}
}

func convertUDPAddr(addr *net.UDPAddr) unix.Sockaddr {
	if addr.IP.To4() != nil {
		return &unix.SockaddrInet4{
			Port: addr.Port,
			Addr: IP4AddressToBytes(addr.IP),
		}
	}
	return &unix.SockaddrInet6{
		Port: addr.Port,
		Addr: IP6AddressToBytes(addr.IP),
	}
}

func convertUnixAddr(addr *net.UnixAddr) unix.Sockaddr {
	return &unix.SockaddrUnix{
		Name: addr.Name,
	}
}

func tcpAddrFromSockaddr(sa unix.Sockaddr) *TCPAddr {
	switch a := sa.(type) {
	case *unix.SockaddrInet4:
		return &TCPAddr{IP: net.IP(a.Addr[:]), Port: a.Port}
	case *unix.SockaddrInet6:
		return &TCPAddr{IP: net.IP(a.Addr[:]), Port: a.Port}
	}
	return nil
}

func udpAddrFromSockaddr(sa unix.Sockaddr) *UDPAddr {
	switch a := sa.(type) {
	case *unix.SockaddrInet4:
		return &UDPAddr{IP: net.IP(a.Addr[:]), Port: a.Port}
	case *unix.SockaddrInet6:
		return &UDPAddr{IP: net.IP(a.Addr[:]), Port: a.Port}
	}
	return nil
}

func unixAddrFromSockaddr(sa unix.Sockaddr, network string) *UnixAddr {
	a, ok := sa.(*unix.SockaddrUnix)
	if !ok {
		return nil
	}
	return &UnixAddr{Name: a.Name, Net: network}
}
