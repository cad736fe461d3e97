// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build linux

package evx

import (
	"time"
)

// Registry hands out the registration operations of a selector. It is
// a small value, cheap to copy and safe to share: goroutines may
// register and deregister concurrently with another goroutine sitting
// in Poll.Poll, the kernel instance is the serialization point.
//
// A Registry obtained from Poll.Registry borrows the poll's selector
// and is valid while the poll lives. A Registry obtained from TryClone
// owns a duplicated selector handle and must be closed.
type Registry struct {
	sel   *selector
	owned bool
}

// RegisterFD installs fd with the given token and interest. Fails
// with already-exists when fd is already registered on this selector.
func (r Registry) RegisterFD(fd int, tok Token, intr Interest) error {
	return r.sel.register(fd, tok, intr)
}

// ReregisterFD atomically replaces the token and interest of an
// existing registration. Fails with not-found when fd is not
// registered.
func (r Registry) ReregisterFD(fd int, tok Token, intr Interest) error {
	return r.sel.reregister(fd, tok, intr)
}

// DeregisterFD removes the registration for fd. Deregister before
// closing a descriptor that should stay usable; closing an fd that is
// still registered removes it from the kernel instance as a side
// effect.
func (r Registry) DeregisterFD(fd int) error {
	return r.sel.deregister(fd)
}

// Register lets s choose which of its descriptors is installed.
func (r Registry) Register(s Source, tok Token, intr Interest) error {
	return s.Register(r, tok, intr)
}

func (r Registry) Reregister(s Source, tok Token, intr Interest) error {
	return s.Reregister(r, tok, intr)
}

func (r Registry) Deregister(s Source) error {
	return s.Deregister(r)
}

// TryClone duplicates the selector handle. The returned Registry
// shares the registration set with the original but owns its
// duplicated descriptor: close it when done. It stays valid after the
// parent poll is closed.
func (r Registry) TryClone() (Registry, error) {
	sel, err := r.sel.tryClone()
	if err != nil {
		return Registry{}, err
	}
	return Registry{sel: sel, owned: true}, nil
}

// Close releases the duplicated selector handle of a cloned registry.
// On a borrowed registry it does nothing.
func (r Registry) Close() {
	if r.owned {
		r.sel.close()
	}
}

// Poll owns a selector and drives it one wait call at a time. Any
// number of goroutines may register through its Registry, but only
// one at a time may sit in Poll: the event batch is a single-writer
// buffer.
type Poll struct {
	sel *selector
}

// NewPoll creates a poll with a fresh kernel instance.
func NewPoll() (*Poll, error) {
	sel, err := newSelector()
	if err != nil {
		return nil, err
	}
	return &Poll{sel: sel}, nil
}

// Registry returns a registration handle borrowing this poll's
// selector.
func (p *Poll) Registry() Registry {
	return Registry{sel: p.sel}
}

// Poll clears evs, then blocks until at least one registered
// descriptor is ready or the timeout elapses. A negative timeout
// blocks indefinitely, zero checks readiness without blocking. On
// return evs holds exactly the delivered events; on error it is
// empty.
func (p *Poll) Poll(evs *Events, timeout time.Duration) error {
	evs.Clear()
	n, err := p.sel.wait(evs.rawBuf(), timeout)
	if err != nil {
		return err
	}
	evs.setLen(n)
	return nil
}

// Close releases the kernel instance. Outstanding registrations die
// with it.
func (p *Poll) Close() {
	p.sel.close()
}
