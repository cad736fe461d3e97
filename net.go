package evx

import (
	"net"
)

type Addr = net.Addr
type TCPAddr = net.TCPAddr
type UDPAddr = net.UDPAddr
type UnixAddr = net.UnixAddr

var (
	TCPAddrFromAddrPort = net.TCPAddrFromAddrPort
	UDPAddrFromAddrPort = net.UDPAddrFromAddrPort
)

var (
	ResolveTCPAddr  = net.ResolveTCPAddr
	ResolveUDPAddr  = net.ResolveUDPAddr
	ResolveUnixAddr = net.ResolveUnixAddr
)

type OpError = net.OpError
type AddrError = net.AddrError
type InvalidAddrError = net.InvalidAddrError
type UnknownNetworkError = net.UnknownNetworkError

func IP4AddressToBytes(ip net.IP) [4]byte {
	ip4 := ip.To4()
	if ip4 == nil {
		return [4]byte{}
	}
	return [4]byte{ip4[0], ip4[1], ip4[2], ip4[3]}
}

func IP6AddressToBytes(ip net.IP) [16]byte {
	ip16 := ip.To16()
	if ip16 == nil {
		return [16]byte{}
	}
	var out [16]byte
	copy(out[:], ip16)
	return out
}
