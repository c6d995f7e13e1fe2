// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package hyper

import (
	"code.hybscloud.com/kont"
)

// Step runs m on c up to its first callback. It returns (result, nil)
// when m completes without one, and (zero, suspension) otherwise.
func Step[I, O Phase, E, A any](m Middleware[I, O, E, A], c I) (kont.Either[E, Result[O, A]], *kont.Suspension[kont.Either[E, Result[O, A]]]) {
	return kont.StepExpr(kont.Reify(m(c)))
}

// Advance dispatches the pending callback of susp. The first call starts
// the wrapped handler.
//
// While the handler has not called back, Advance returns
// iox.ErrWouldBlock together with susp, which stays valid for a retry.
// Otherwise susp is consumed and the computation runs on to its next
// callback or to completion.
func Advance[R any](susp *kont.Suspension[R]) (R, *kont.Suspension[R], error) {
	cop, ok := susp.Op().(callbackDispatcher)
	if !ok {
		panic("hyper: unhandled effect in Advance")
	}
	v, err := cop.DispatchCallback()
	if err != nil {
		var zero R
		return zero, susp, err
	}
	result, next := susp.Resume(v)
	return result, next, nil
}
