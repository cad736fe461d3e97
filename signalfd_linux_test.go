//go:build linux

package evx

import (
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestSignalfdThroughPoll(t *testing.T) {
	// signal delivery must stay on this thread: block the signal here
	// and direct it here, so it ends up in the signalfd and nowhere
	// else
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	var mask unix.Sigset_t
	sigAddSet(&mask, unix.SIGUSR1)
	require.NoError(t, unix.PthreadSigmask(unix.SIG_BLOCK, &mask, nil))
	defer unix.PthreadSigmask(unix.SIG_UNBLOCK, &mask, nil)

	sfd, err := NewSignalfd(unix.SIGUSR1)
	require.NoError(t, err)
	defer sfd.Close()

	p := newTestPoll(t)
	require.NoError(t, p.Registry().Register(sfd, Token(0x51), Readable))

	require.NoError(t, unix.Tgkill(unix.Getpid(), unix.Gettid(), unix.SIGUSR1))

	evs := NewEvents(8)
	require.NoError(t, p.Poll(evs, 2*time.Second))
	require.Equal(t, 1, evs.Len())
	require.Equal(t, Token(0x51), evs.At(0).Token())
	require.True(t, evs.At(0).IsReadable())

	sig, _, err := sfd.ReadSiginfo()
	require.NoError(t, err)
	assert.Equal(t, unix.SIGUSR1, sig)

	// nothing further pending
	_, _, err = sfd.ReadSiginfo()
	require.Error(t, err)
	assert.True(t, IsWouldBlock(err))
}
