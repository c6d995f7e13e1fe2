// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package hyper

import (
	"code.hybscloud.com/kont"
)

// Settled is the outcome reported by a request handler through its
// callback. Err is nil when the handler called next().
type Settled struct {
	Err error
}

// Callback is the effect operation for waiting on a request handler.
// FromRequestHandler performs it; it starts the handler on first dispatch
// and resumes with its Settled outcome. The zero value panics.
type Callback struct {
	kont.Phantom[Settled]
	f *future
}

// DispatchCallback handles Callback.
// Non-blocking: returns iox.ErrWouldBlock until the handler calls back.
func (op Callback) DispatchCallback() (kont.Resumed, error) {
	if op.f == nil {
		panic("hyper: Callback not built by FromRequestHandler")
	}
	s, err := op.f.poll()
	if err != nil {
		return nil, err
	}
	return s, nil
}
