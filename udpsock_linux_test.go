//go:build linux

package evx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLoopbackUDP(t *testing.T) *UDPSocket {
	t.Helper()
	laddr, err := ResolveUDPAddr("udp4", "127.0.0.1:0")
	require.NoError(t, err)
	so, err := BindUDP(laddr)
	require.NoError(t, err)
	t.Cleanup(so.Close)
	return so
}

func TestUDPSendToRecvFrom(t *testing.T) {
	a := newLoopbackUDP(t)
	b := newLoopbackUDP(t)

	baddr, err := b.LocalAddr()
	require.NoError(t, err)
	aaddr, err := a.LocalAddr()
	require.NoError(t, err)

	p := newTestPoll(t)
	require.NoError(t, p.Registry().Register(b, Token(2), Readable))

	payload := []byte("datagram")
	n, err := a.SendTo(payload, baddr)
	require.NoError(t, err)
	require.Equal(t, len(payload), n)

	rec := newRecorder()
	rec.waitFor(t, p, Token(2), Readable)

	buf := make([]byte, 64)
	n, from, err := b.RecvFrom(buf)
	require.NoError(t, err)
	assert.Equal(t, payload, buf[:n])
	require.NotNil(t, from)
	assert.Equal(t, aaddr.Port, from.Port)
}

func TestUDPConnectedSendRecv(t *testing.T) {
	a := newLoopbackUDP(t)
	b := newLoopbackUDP(t)

	baddr, err := b.LocalAddr()
	require.NoError(t, err)
	require.NoError(t, a.Connect(baddr))

	peer, err := a.PeerAddr()
	require.NoError(t, err)
	assert.Equal(t, baddr.Port, peer.Port)

	p := newTestPoll(t)
	require.NoError(t, p.Registry().Register(b, Token(2), Readable))

	_, err = a.Send([]byte("hello"))
	require.NoError(t, err)

	rec := newRecorder()
	rec.waitFor(t, p, Token(2), Readable)

	buf := make([]byte, 16)
	n, err := b.Recv(buf)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(buf[:n]))
}

func TestUDPRecvWouldBlock(t *testing.T) {
	a := newLoopbackUDP(t)
	buf := make([]byte, 16)
	_, _, err := a.RecvFrom(buf)
	require.Error(t, err)
	assert.True(t, IsWouldBlock(err))
}
