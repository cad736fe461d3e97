// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package evx

// Interest is the set of readiness conditions a registration asks to
// be notified about. The empty set is legal: the descriptor is still
// registered and error or hang-up conditions are still reported.
type Interest uint8

const (
	Readable Interest = 1 << iota
	Writable
	Priority
)

// Or returns the union of i and other.
func (i Interest) Or(other Interest) Interest {
	return i | other
}

// Remove returns i with the bits of other cleared.
func (i Interest) Remove(other Interest) Interest {
	return i &^ other
}

func (i Interest) IsReadable() bool {
	return i&Readable != 0
}

func (i Interest) IsWritable() bool {
	return i&Writable != 0
}

func (i Interest) IsPriority() bool {
	return i&Priority != 0
}

func (i Interest) IsEmpty() bool {
	return i == 0
}

// Raw returns the underlying bits. Only useful for debug output.
func (i Interest) Raw() uint8 {
	return uint8(i)
}

func (i Interest) String() string {
	if i.IsEmpty() {
		return "interest(NONE)"
	}
	s := "interest("
	sep := ""
	if i.IsReadable() {
		s += "READABLE"
		sep = "|"
	}
	if i.IsWritable() {
		s += sep + "WRITABLE"
		sep = "|"
	}
	if i.IsPriority() {
		s += sep + "PRIORITY"
	}
	return s + ")"
}
