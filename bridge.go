// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package hyper

import (
	"net/http"

	"code.hybscloud.com/hyper/connect"
	"code.hybscloud.com/kont"
)

// FromRequestHandler runs h as one step of a computation.
//
// h is started with the live response and request, and the step waits for
// its next callback. next(err) fails the step with onError(err). next()
// yields project(req); the connection is returned unchanged, so whatever h
// wrote directly is not part of the action log. Only the first callback
// counts.
func FromRequestHandler[I Phase, E, A any](h connect.Handler, project func(r *http.Request) kont.Either[E, A], onError func(err error) E) Middleware[I, I, E, A] {
	return func(c I) Outcome[I, E, A] {
		base := c.core()
		return kont.Bind(kont.Perform(Callback{f: newFuture(h, base)}), func(s Settled) Outcome[I, E, A] {
			if s.Err != nil {
				return left[I, E, A](onError(s.Err))
			}
			r := project(base.req)
			if e, ok := r.GetLeft(); ok {
				return left[I, E, A](e)
			}
			a, _ := r.GetRight()
			return right[I, E](c, a)
		})
	}
}
