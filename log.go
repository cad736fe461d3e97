// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package evx

import "go.uber.org/zap"

// logger is a no-op until the embedding program installs one. Only the
// registration and waker paths log, at debug level; the wait loop is
// silent.
var logger = zap.NewNop()

// SetLogger installs l as the package logger. Passing nil restores the
// no-op logger.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
}
