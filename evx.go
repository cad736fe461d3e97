// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package evx is a readiness notification library over the kernel's
// scalable event facility. A Poll owns one selector instance; sources
// are registered through its Registry with a caller-chosen Token and
// an Interest set, and each Poll.Poll call fills an Events batch with
// the descriptors that became ready.
//
// All registrations are edge-triggered. An event reports a transition
// into readiness, not a level: after a readable event the owner must
// read until would-block before another readable event can arrive,
// and likewise for writes. Missing this is the classic way to hang a
// connection.
//
// The library moves no application bytes on its own. Socket and pipe
// wrappers are thin non-blocking shims over the raw system calls, and
// short reads, short writes and would-block results are the caller's
// to handle by re-entering the poll.
package evx
