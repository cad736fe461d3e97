// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package evx

import "strconv"

// Token is the caller-chosen identifier attached to a registration and
// carried back verbatim on every event for that descriptor. The
// library never interprets it; zero is as good a value as any other.
// Token is an ordinary comparable integer, so it works as a map key.
type Token uint64

func (t Token) Value() uint64 {
	return uint64(t)
}

func (t Token) String() string {
	return "token(" + strconv.FormatUint(uint64(t), 10) + ")"
}
