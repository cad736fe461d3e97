//go:build unix

package evx

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestOSErrorWrapsErrno(t *testing.T) {
	err := osError(unix.EAGAIN)
	require.Error(t, err)

	var e *Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, int(unix.EAGAIN), e.Code())
	assert.True(t, errors.Is(err, unix.EAGAIN))
	assert.Equal(t, unix.EAGAIN.Error(), err.Error())
}

func TestOSErrorPassThrough(t *testing.T) {
	assert.NoError(t, osError(nil))

	plain := fmt.Errorf("not an errno")
	assert.Equal(t, plain, osError(plain))
}

func TestErrorPredicates(t *testing.T) {
	cases := []struct {
		errno unix.Errno
		pred  func(error) bool
	}{
		{unix.EAGAIN, IsWouldBlock},
		{unix.EWOULDBLOCK, IsWouldBlock},
		{unix.EINTR, IsInterrupted},
		{unix.EINPROGRESS, IsInProgress},
		{unix.ECONNREFUSED, IsConnectionRefused},
		{unix.ECONNRESET, IsConnectionReset},
		{unix.ECONNABORTED, IsConnectionAborted},
		{unix.ENOTCONN, IsNotConnected},
		{unix.EADDRINUSE, IsAddrInUse},
		{unix.EPIPE, IsBrokenPipe},
		{unix.EEXIST, IsAlreadyExists},
		{unix.ENOENT, IsNotFound},
	}
	for _, c := range cases {
		assert.True(t, c.pred(osError(c.errno)), "errno %d", int(c.errno))
		// raw errnos classify the same way
		assert.True(t, c.pred(c.errno))
	}
	assert.False(t, IsWouldBlock(osError(unix.EPIPE)))
	assert.False(t, IsWouldBlock(nil))
	assert.False(t, IsAlreadyExists(errors.New("other")))
}
