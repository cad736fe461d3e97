// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build linux

package evx

import (
	"go.uber.org/zap"
)

// Waker interrupts a goroutine parked in Poll.Poll from anywhere in
// the process. It owns an eventfd registered readable under a
// caller-chosen token; Wake bumps the counter, which makes the
// descriptor readable and ends the wait.
//
// Wakes coalesce: any number of Wake calls before a Drain produce one
// readable event per poll round. The Waker value is a shared handle,
// copies refer to the same descriptor and any of them may wake, drain
// or close it.
type Waker struct {
	inner *wakerInner
}

type wakerInner struct {
	efd *eventfd
	tok Token
}

// NewWaker creates the wakeup descriptor and registers it in r with
// interest Readable under tok.
func NewWaker(r Registry, tok Token) (Waker, error) {
	efd, err := newEventfd()
	if err != nil {
		return Waker{}, err
	}
	if err := r.RegisterFD(efd.raw(), tok, Readable); err != nil {
		efd.close()
		return Waker{}, err
	}
	logger.Debug("waker registered",
		zap.Int("fd", efd.raw()), zap.Stringer("token", tok))
	return Waker{inner: &wakerInner{efd: efd, tok: tok}}, nil
}

// Token returns the token the waker was registered with.
func (w Waker) Token() Token {
	return w.inner.tok
}

// Wake makes the registered descriptor readable. A saturated counter
// reports would-block, which means the descriptor is readable already;
// that counts as success. Any other write failure is a real fault with
// the descriptor and is returned.
func (w Waker) Wake() error {
	err := w.inner.efd.writeUint64(1)
	if err != nil && IsWouldBlock(err) {
		return nil
	}
	return err
}

// Drain consumes the pending counter value and clears the readiness
// signal. Call it after dispatching the waker's event, before the
// next poll round should be wakeable again. Read failures are
// ignored: with nothing pending the non-blocking read simply reports
// would-block.
func (w Waker) Drain() {
	_, _ = w.inner.efd.readUint64()
}

// Close releases the wakeup descriptor. Deregister it first if the
// selector should not drop it implicitly.
func (w Waker) Close() {
	w.inner.efd.close()
}
