// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package hyper

import (
	"net/http"

	"code.hybscloud.com/hyper/connect"
)

// ToRequestHandler turns m into a pipeline handler.
//
// Each request gets a fresh StatusOpen connection. m runs to completion on
// the serving goroutine. A failure is passed to next untouched, leaving the
// response as it was. On success the recorded actions are replayed in the
// order they were recorded, and next(nil) is called only when they did not
// end the response. When the adapter wrapped w itself, the pending status
// is committed before next(nil), so later stages cannot change it.
func ToRequestHandler[O Phase, E, A any](m Middleware[StatusOpen, O, E, A], opts ...Option) connect.HandlerFunc {
	in := NewInterpreter(opts...)
	return func(w http.ResponseWriter, r *http.Request, next func(error)) {
		res, owned := connect.AsResponse(w)
		r = connect.WithLocals(r)
		ctx := r.Context()

		result := Exec(m, StatusOpen{conn: newConn(res, r, in)})
		if e, ok := result.GetLeft(); ok {
			in.metrics.request(ctx, outcomeFailed)
			next(toError(e))
			return
		}
		final, _ := result.GetRight()
		c := final.Conn.core()
		in.replay(ctx, c)
		if c.ended {
			in.metrics.request(ctx, outcomeEnded)
			return
		}
		if owned {
			res.Commit()
		}
		in.metrics.request(ctx, outcomeNext)
		next(nil)
	}
}
