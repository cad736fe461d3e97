//go:build linux

package evx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

const (
	tokListener Token = 1
	tokClient   Token = 2
	tokServer   Token = 3
)

func TestTCPEchoThroughPoll(t *testing.T) {
	laddr, err := ResolveTCPAddr("tcp4", "127.0.0.1:0")
	require.NoError(t, err)
	lis, err := ListenTCP(laddr)
	require.NoError(t, err)
	defer lis.Close()

	bound, err := lis.Addr()
	require.NoError(t, err)
	require.NotZero(t, bound.Port)

	p := newTestPoll(t)
	reg := p.Registry()
	require.NoError(t, reg.Register(lis, tokListener, Readable))

	cli, err := ConnectTCP(bound)
	require.NoError(t, err)
	defer cli.Close()
	require.NoError(t, reg.Register(cli, tokClient, Readable.Or(Writable)))

	rec := newRecorder()
	rec.waitFor(t, p, tokListener, Readable)

	srv, peer, err := lis.Accept()
	require.NoError(t, err)
	defer srv.Close()
	require.NotNil(t, peer)
	require.NoError(t, reg.Register(srv, tokServer, Readable))

	// connect has finished once the client reports writable
	rec.waitFor(t, p, tokClient, Writable)
	soerr, err := cli.TakeError()
	require.NoError(t, err)
	require.Zero(t, soerr)

	payload := []byte("0123456789")
	n, err := cli.Write(payload)
	require.NoError(t, err)
	require.Equal(t, len(payload), n)

	rec.waitFor(t, p, tokServer, Readable)
	buf := make([]byte, 64)
	n, err = srv.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, payload, buf[:n])

	n, err = srv.Write(buf[:n])
	require.NoError(t, err)
	require.Equal(t, len(payload), n)

	rec.waitFor(t, p, tokClient, Readable)
	n, err = cli.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, payload, buf[:n])
}

func TestTCPAcceptWouldBlock(t *testing.T) {
	laddr, err := ResolveTCPAddr("tcp4", "127.0.0.1:0")
	require.NoError(t, err)
	lis, err := ListenTCP(laddr)
	require.NoError(t, err)
	defer lis.Close()

	_, _, err = lis.Accept()
	require.Error(t, err)
	assert.True(t, IsWouldBlock(err))
}

func TestTCPPeerShutdownReadClosed(t *testing.T) {
	laddr, err := ResolveTCPAddr("tcp4", "127.0.0.1:0")
	require.NoError(t, err)
	lis, err := ListenTCP(laddr)
	require.NoError(t, err)
	defer lis.Close()
	bound, err := lis.Addr()
	require.NoError(t, err)

	p := newTestPoll(t)
	reg := p.Registry()
	require.NoError(t, reg.Register(lis, tokListener, Readable))

	cli, err := ConnectTCP(bound)
	require.NoError(t, err)
	defer cli.Close()

	rec := newRecorder()
	rec.waitFor(t, p, tokListener, Readable)
	srv, _, err := lis.Accept()
	require.NoError(t, err)
	defer srv.Close()
	require.NoError(t, reg.Register(srv, tokServer, Readable))

	require.NoError(t, cli.Shutdown(unix.SHUT_WR))

	rec.waitFor(t, p, tokServer, Readable)
	buf := make([]byte, 8)
	n, err := srv.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, 0, n, "peer shutdown reads as end of stream")
}

func TestTCPConnectRefused(t *testing.T) {
	// a listener that is gone again leaves a port nothing accepts on
	laddr, err := ResolveTCPAddr("tcp4", "127.0.0.1:0")
	require.NoError(t, err)
	lis, err := ListenTCP(laddr)
	require.NoError(t, err)
	bound, err := lis.Addr()
	require.NoError(t, err)
	lis.Close()

	p := newTestPoll(t)
	cli, err := ConnectTCP(bound)
	if err != nil {
		// loopback may refuse synchronously
		assert.True(t, IsConnectionRefused(err))
		return
	}
	defer cli.Close()
	require.NoError(t, p.Registry().Register(cli, tokClient, Writable))

	rec := newRecorder()
	rec.waitFor(t, p, tokClient, Writable)
	soerr, err := cli.TakeError()
	require.NoError(t, err)
	assert.EqualValues(t, unix.ECONNREFUSED, soerr)
}

func TestTCPStreamOptions(t *testing.T) {
	laddr, err := ResolveTCPAddr("tcp4", "127.0.0.1:0")
	require.NoError(t, err)
	lis, err := ListenTCP(laddr)
	require.NoError(t, err)
	defer lis.Close()
	bound, err := lis.Addr()
	require.NoError(t, err)

	cli, err := ConnectTCP(bound)
	require.NoError(t, err)
	defer cli.Close()

	require.NoError(t, cli.SetNoDelay(true))
	nd, err := cli.NoDelay()
	require.NoError(t, err)
	assert.True(t, nd)

	require.NoError(t, cli.SetTTL(96))
	ttl, err := cli.TTL()
	require.NoError(t, err)
	assert.EqualValues(t, 96, ttl)

	local, err := cli.LocalAddr()
	require.NoError(t, err)
	assert.NotZero(t, local.Port)
}

func TestTCPAddrInUse(t *testing.T) {
	laddr, err := ResolveTCPAddr("tcp4", "127.0.0.1:0")
	require.NoError(t, err)
	lis, err := ListenTCP(laddr)
	require.NoError(t, err)
	defer lis.Close()
	bound, err := lis.Addr()
	require.NoError(t, err)

	// second listener on the same port; REUSEADDR does not allow two
	// active listeners without REUSEPORT
	_, err = ListenTCP(bound)
	require.Error(t, err)
	assert.True(t, IsAddrInUse(err))
}
