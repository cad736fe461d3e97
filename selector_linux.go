//go:build linux

package evx

import (
	"time"

	"go.uber.org/zap"
	"golang.org/x/sys/unix"
)

// selector wraps one epoll instance. All registrations are installed
// edge-triggered: the kernel reports a descriptor once per transition
// into readiness, so the owner must drain it to would-block before the
// next event can fire.
type selector struct {
	epfd FD
}

func newSelector() (*selector, error) {
	fd, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		return nil, osError(err)
	}
	return &selector{epfd: NewFD(fd)}, nil
}

func (s *selector) raw() int {
	return s.epfd.Raw()
}

// interestToEpoll translates an interest set into the epoll mask.
// EPOLLET is unconditional. Readable interest also subscribes to
// RDHUP so a peer shutdown surfaces as read-closed.
func interestToEpoll(intr Interest) uint32 {
	flags := uint32(unix.EPOLLET)
	if intr.IsReadable() {
		flags |= unix.EPOLLIN | unix.EPOLLRDHUP
	}
	if intr.IsWritable() {
		flags |= unix.EPOLLOUT
	}
	if intr.IsPriority() {
		flags |= unix.EPOLLPRI
	}
	return flags
}

// tokenToEpollData splits tok across the Fd and Pad fields, which
// together are the kernel's 64-bit user data union.
func tokenToEpollData(ev *unix.EpollEvent, tok Token) {
	ev.Fd = int32(uint32(tok))
	ev.Pad = int32(uint32(tok >> 32))
}

func (s *selector) register(fd int, tok Token, intr Interest) error {
	ev := unix.EpollEvent{Events: interestToEpoll(intr)}
	tokenToEpollData(&ev, tok)
	if err := unix.EpollCtl(s.epfd.Raw(), unix.EPOLL_CTL_ADD, fd, &ev); err != nil {
		logger.Debug("epoll add failed",
			zap.Int("fd", fd), zap.Stringer("token", tok), zap.Error(err))
		return osError(err)
	}
	return nil
}

func (s *selector) reregister(fd int, tok Token, intr Interest) error {
	ev := unix.EpollEvent{Events: interestToEpoll(intr)}
	tokenToEpollData(&ev, tok)
	if err := unix.EpollCtl(s.epfd.Raw(), unix.EPOLL_CTL_MOD, fd, &ev); err != nil {
		logger.Debug("epoll mod failed",
			zap.Int("fd", fd), zap.Stringer("token", tok), zap.Error(err))
		return osError(err)
	}
	return nil
}

func (s *selector) deregister(fd int) error {
	if err := unix.EpollCtl(s.epfd.Raw(), unix.EPOLL_CTL_DEL, fd, nil); err != nil {
		logger.Debug("epoll del failed", zap.Int("fd", fd), zap.Error(err))
		return osError(err)
	}
	return nil
}

// wait blocks until at least one event is available or the timeout
// elapses, retrying transparently when a signal interrupts the call.
// A negative timeout blocks indefinitely; zero polls without blocking.
// Returns the number of events written into evs.
func (s *selector) wait(evs []unix.EpollEvent, timeout time.Duration) (int, error) {
	if len(evs) == 0 {
		return 0, nil
	}
	msec := -1
	if timeout >= 0 {
		msec = int(timeout.Milliseconds())
	}
	for {
		n, err := unix.EpollWait(s.epfd.Raw(), evs, msec)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return 0, osError(err)
		}
		return n, nil
	}
}

// tryClone duplicates the epoll descriptor. The clone refers to the
// same kernel instance and registration set; only the handle is new.
func (s *selector) tryClone() (*selector, error) {
	fd, err := unix.Dup(s.epfd.Raw())
	if err != nil {
		return nil, osError(err)
	}
	unix.CloseOnExec(fd)
	return &selector{epfd: NewFD(fd)}, nil
}

func (s *selector) close() {
	s.epfd.Close()
}
