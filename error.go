// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build unix

package evx

import (
	"errors"

	"golang.org/x/sys/unix"
)

// Error is an operating system error produced by one of the library's
// system calls. It carries the raw errno so that callers can classify
// the failure with the predicate helpers below.
type Error struct {
	errno unix.Errno
}

func newError(errno unix.Errno) *Error {
	return &Error{errno: errno}
}

// osError converts a unix syscall error into *Error. Non-errno errors
// pass through unchanged. Every fallible syscall in the package funnels
// its error through here.
func osError(err error) error {
	if err == nil {
		return nil
	}
	errno, ok := err.(unix.Errno)
	if !ok {
		return err
	}
	return newError(errno)
}

func (e *Error) Error() string {
	return e.errno.Error()
}

// Code returns the raw OS error number.
func (e *Error) Code() int {
	return int(e.errno)
}

// Unwrap exposes the underlying errno, so errors.Is(err, unix.EAGAIN)
// keeps working for callers that prefer raw comparison.
func (e *Error) Unwrap() error {
	return e.errno
}

func (e *Error) Timeout() bool {
	return e.errno.Timeout()
}

func (e *Error) Temporary() bool {
	return e.errno.Temporary()
}

func errnoOf(err error) (unix.Errno, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.errno, true
	}
	var errno unix.Errno
	if errors.As(err, &errno) {
		return errno, true
	}
	return 0, false
}

// IsWouldBlock reports whether err means a non-blocking operation had
// nothing to do. Not a failure: the caller re-enters the poll and
// retries once readiness is reported again.
func IsWouldBlock(err error) bool {
	errno, ok := errnoOf(err)
	return ok && (errno == unix.EAGAIN || errno == unix.EWOULDBLOCK)
}

// IsInterrupted reports whether err means the system call was
// interrupted by a signal.
func IsInterrupted(err error) bool {
	errno, ok := errnoOf(err)
	return ok && errno == unix.EINTR
}

// IsInProgress reports whether err means a non-blocking connect has
// started and will complete asynchronously.
func IsInProgress(err error) bool {
	errno, ok := errnoOf(err)
	return ok && errno == unix.EINPROGRESS
}

func IsConnectionRefused(err error) bool {
	errno, ok := errnoOf(err)
	return ok && errno == unix.ECONNREFUSED
}

func IsConnectionReset(err error) bool {
	errno, ok := errnoOf(err)
	return ok && errno == unix.ECONNRESET
}

func IsConnectionAborted(err error) bool {
	errno, ok := errnoOf(err)
	return ok && errno == unix.ECONNABORTED
}

func IsNotConnected(err error) bool {
	errno, ok := errnoOf(err)
	return ok && errno == unix.ENOTCONN
}

func IsAddrInUse(err error) bool {
	errno, ok := errnoOf(err)
	return ok && errno == unix.EADDRINUSE
}

func IsBrokenPipe(err error) bool {
	errno, ok := errnoOf(err)
	return ok && errno == unix.EPIPE
}

// IsAlreadyExists reports whether err means the descriptor is already
// registered with the selector.
func IsAlreadyExists(err error) bool {
	errno, ok := errnoOf(err)
	return ok && errno == unix.EEXIST
}

// IsNotFound reports whether err means the descriptor has no
// registration in the selector.
func IsNotFound(err error) bool {
	errno, ok := errnoOf(err)
	return ok && errno == unix.ENOENT
}
