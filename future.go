// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package hyper

import (
	"log/slog"
	"net/http"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/hyper/connect"
	"code.hybscloud.com/lfq"
)

// settleCapacity bounds the settlement queue. Only the first callback is
// ever enqueued.
const settleCapacity = 2

// future is a request handler started lazily and settled by its callback.
// The callback may run on any goroutine; it is the single producer of
// settled, and the dispatching goroutine is the single consumer.
type future struct {
	handler connect.Handler
	res     *connect.Response
	req     *http.Request
	logger  *slog.Logger
	serial  Serial
	started bool
	calls   atomix.Uint32
	settled lfq.SPSC[Settled]
}

func newFuture(h connect.Handler, c conn) *future {
	f := &future{
		handler: h,
		res:     c.res,
		req:     c.req,
		logger:  c.in.logger,
		serial:  c.serial,
	}
	f.settled.Init(settleCapacity)
	return f
}

// done is the next callback handed to the handler. The first call wins.
func (f *future) done(err error) {
	if n := f.calls.Add(1); n != 1 {
		f.logger.WarnContext(f.req.Context(), "hyper: request handler callback invoked more than once",
			"serial", f.serial, "calls", n)
		return
	}
	s := Settled{Err: err}
	f.settled.Enqueue(&s)
}

// poll starts the handler on first use and reports its outcome, or
// iox.ErrWouldBlock while it has not called back.
func (f *future) poll() (Settled, error) {
	if !f.started {
		f.started = true
		f.handler.ServeNext(f.res, f.req, f.done)
	}
	return f.settled.Dequeue()
}
