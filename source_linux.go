// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build linux

package evx

// Source is anything that can take part in a poll. Each method
// forwards to the registry with a descriptor the source owns, so the
// selector never learns the concrete type. A source usually owns
// exactly one descriptor; nothing stops it from owning several and
// picking per call.
//
// Sources keep no back-reference to the selector they are registered
// in: reregistration and deregistration take the registry again.
type Source interface {
	Register(r Registry, tok Token, intr Interest) error
	Reregister(r Registry, tok Token, intr Interest) error
	Deregister(r Registry) error
}

// RawFD is a non-owning source around a descriptor whose lifetime the
// caller manages, the escape hatch for descriptors created outside
// this package.
type RawFD int

func (fd RawFD) Register(r Registry, tok Token, intr Interest) error {
	return r.RegisterFD(int(fd), tok, intr)
}

func (fd RawFD) Reregister(r Registry, tok Token, intr Interest) error {
	return r.ReregisterFD(int(fd), tok, intr)
}

func (fd RawFD) Deregister(r Registry) error {
	return r.DeregisterFD(int(fd))
}

var _ Source = RawFD(0)
