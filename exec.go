// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package hyper

import (
	"code.hybscloud.com/iox"
	"code.hybscloud.com/kont"
)

// callbackDispatcher is satisfied by Callback. DispatchCallback never
// blocks; it reports iox.ErrWouldBlock until the handler has called back.
type callbackDispatcher interface {
	DispatchCallback() (kont.Resumed, error)
}

// callbackHandler is the kont.Handler behind Exec. It turns the
// non-blocking callback dispatch into a wait.
type callbackHandler[R any] struct{}

// Dispatch implements kont.Handler. Any effect other than Callback panics.
func (callbackHandler[R]) Dispatch(op kont.Operation) (kont.Resumed, bool) {
	cop, ok := op.(callbackDispatcher)
	if !ok {
		panic("hyper: unhandled effect in callbackHandler")
	}
	return dispatchWait(cop), true
}

// dispatchWait retries DispatchCallback with iox.Backoff until the
// callback has settled.
func dispatchWait(cop callbackDispatcher) kont.Resumed {
	var bo iox.Backoff
	for {
		v, err := cop.DispatchCallback()
		if err == nil {
			return v
		}
		bo.Wait()
	}
}

// Exec runs m on c to completion on the calling goroutine and returns
// its result. A pending callback is waited out with adaptive backoff; a
// handler that never calls back blocks Exec forever.
func Exec[I, O Phase, E, A any](m Middleware[I, O, E, A], c I) kont.Either[E, Result[O, A]] {
	return kont.Handle(m(c), callbackHandler[kont.Either[E, Result[O, A]]]{})
}
