//go:build linux

package evx

import (
	"golang.org/x/sys/unix"
)

// Event is a read-only view of one kernel event in an Events batch.
// It borrows from the batch: the view is valid until the next Poll
// call refills the same batch.
type Event struct {
	raw *unix.EpollEvent
}

// Token returns the token the descriptor was registered with. The
// 64-bit value is split across the Fd and Pad halves of the epoll data
// union; see tokenToEpollData.
func (e Event) Token() Token {
	return Token(uint32(e.raw.Pad))<<32 | Token(uint32(e.raw.Fd))
}

func (e Event) IsReadable() bool {
	return e.raw.Events&unix.EPOLLIN != 0
}

func (e Event) IsWritable() bool {
	return e.raw.Events&unix.EPOLLOUT != 0
}

func (e Event) IsError() bool {
	return e.raw.Events&unix.EPOLLERR != 0
}

// IsReadClosed reports that the peer shut down its writing side: the
// read direction of this descriptor will not produce new bytes.
func (e Event) IsReadClosed() bool {
	return e.raw.Events&(unix.EPOLLHUP|unix.EPOLLRDHUP) != 0
}

// IsWriteClosed reports hang-up or error. The two are deliberately
// folded together; combine with IsError to tell them apart.
func (e Event) IsWriteClosed() bool {
	return e.raw.Events&(unix.EPOLLHUP|unix.EPOLLERR) != 0
}

func (e Event) IsPriority() bool {
	return e.raw.Events&unix.EPOLLPRI != 0
}

// Raw returns the kernel event as delivered.
func (e Event) Raw() unix.EpollEvent {
	return *e.raw
}

// Events is a fixed-capacity batch of kernel events filled by one Poll
// call. The batch owns its buffer; Event views index into it.
type Events struct {
	buf []unix.EpollEvent
	n   int
}

// NewEvents allocates a batch able to carry up to capacity events per
// poll round.
func NewEvents(capacity int) *Events {
	return &Events{buf: make([]unix.EpollEvent, capacity)}
}

func (evs *Events) Len() int {
	return evs.n
}

func (evs *Events) Cap() int {
	return len(evs.buf)
}

func (evs *Events) IsEmpty() bool {
	return evs.n == 0
}

// At returns the i-th event of the current batch. i must be below
// Len.
func (evs *Events) At(i int) Event {
	return Event{raw: &evs.buf[i]}
}

func (evs *Events) Clear() {
	evs.n = 0
}

// rawBuf exposes the backing array for the selector to fill.
func (evs *Events) rawBuf() []unix.EpollEvent {
	return evs.buf
}

// setLen records how many entries the selector delivered.
func (evs *Events) setLen(n int) {
	evs.n = n
}
