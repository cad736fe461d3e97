//go:build linux

package evx

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func eventWith(flags uint32, tok Token) Event {
	raw := &unix.EpollEvent{Events: flags}
	tokenToEpollData(raw, tok)
	return Event{raw: raw}
}

func TestEventTokenRoundTrip(t *testing.T) {
	for _, v := range []uint64{0, 1, 0xFFFF, 1 << 31, 1 << 32, 0xDEADBEEFCAFEBABE, math.MaxUint64} {
		ev := eventWith(0, Token(v))
		assert.Equal(t, Token(v), ev.Token())
	}
}

func TestEventPredicates(t *testing.T) {
	assert.True(t, eventWith(unix.EPOLLIN, 0).IsReadable())
	assert.False(t, eventWith(unix.EPOLLIN, 0).IsWritable())

	assert.True(t, eventWith(unix.EPOLLOUT, 0).IsWritable())
	assert.True(t, eventWith(unix.EPOLLERR, 0).IsError())
	assert.True(t, eventWith(unix.EPOLLPRI, 0).IsPriority())

	// read side closed on HUP or RDHUP
	assert.True(t, eventWith(unix.EPOLLHUP, 0).IsReadClosed())
	assert.True(t, eventWith(uint32(unix.EPOLLRDHUP), 0).IsReadClosed())
	assert.False(t, eventWith(unix.EPOLLERR, 0).IsReadClosed())

	// write side closed on HUP or ERR
	assert.True(t, eventWith(unix.EPOLLHUP, 0).IsWriteClosed())
	assert.True(t, eventWith(unix.EPOLLERR, 0).IsWriteClosed())
	assert.False(t, eventWith(uint32(unix.EPOLLRDHUP), 0).IsWriteClosed())
}

func TestEventsBatch(t *testing.T) {
	evs := NewEvents(8)
	require.Equal(t, 8, evs.Cap())
	require.Equal(t, 0, evs.Len())
	require.True(t, evs.IsEmpty())

	buf := evs.rawBuf()
	require.Len(t, buf, 8)
	buf[0].Events = unix.EPOLLIN
	tokenToEpollData(&buf[0], Token(3))
	buf[1].Events = unix.EPOLLOUT
	tokenToEpollData(&buf[1], Token(9))
	evs.setLen(2)

	require.Equal(t, 2, evs.Len())
	assert.Equal(t, Token(3), evs.At(0).Token())
	assert.True(t, evs.At(0).IsReadable())
	assert.Equal(t, Token(9), evs.At(1).Token())
	assert.True(t, evs.At(1).IsWritable())

	evs.Clear()
	assert.Equal(t, 0, evs.Len())
	assert.True(t, evs.IsEmpty())
}
