// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package hyper

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"code.hybscloud.com/hyper/connect"
)

// Interpreter applies recorded actions to a live response.
// It holds no per-request state and is safe for concurrent use.
type Interpreter struct {
	logger  *slog.Logger
	cookies CookiePolicy
	metrics metrics
}

// NewInterpreter returns an Interpreter configured by opts.
func NewInterpreter(opts ...Option) *Interpreter {
	o := buildOptions(opts)
	return &Interpreter{
		logger:  o.logger,
		cookies: o.cookies,
		metrics: newMetrics(o.meterProvider, o.logger),
	}
}

// Apply performs the effect of a on res.
// Write failures are the transport's concern and are only logged.
func (in *Interpreter) Apply(res *connect.Response, a Action) {
	in.apply(context.Background(), res, a, 0)
}

func (in *Interpreter) apply(ctx context.Context, res *connect.Response, a Action, serial Serial) {
	switch a := a.(type) {
	case SetHeader:
		res.Header().Set(a.Name, a.Value)
	case SetStatus:
		res.SetStatus(a.Code)
	case SetBody:
		if _, err := res.Write(a.Body); err != nil {
			in.logger.DebugContext(ctx, "hyper: write body", "serial", serial, "err", err)
		}
		res.End()
	case EndResponse:
		res.End()
	case PipeStream:
		in.pipe(ctx, res, a.Source, serial)
	case SetCookie:
		if in.cookies == CookieApply {
			http.SetCookie(res, a.Options.cookie(a.Name, a.Value))
			break
		}
		in.logger.WarnContext(ctx, "setCookie is not implemented", "serial", serial, "cookie", a.Name)
	case ClearCookie:
		if in.cookies == CookieApply {
			opts := a.Options
			opts.MaxAge = -1
			opts.Expires = time.Unix(0, 0)
			http.SetCookie(res, opts.cookie(a.Name, ""))
			break
		}
		in.logger.WarnContext(ctx, "clearCookie is not implemented", "serial", serial, "cookie", a.Name)
	}
	in.metrics.action(ctx, a)
}

func (in *Interpreter) pipe(ctx context.Context, res *connect.Response, src io.Reader, serial Serial) {
	if _, err := io.Copy(res, src); err != nil {
		in.logger.DebugContext(ctx, "hyper: pipe stream", "serial", serial, "err", err)
	}
	if c, ok := src.(io.Closer); ok {
		c.Close()
	}
	res.End()
}

// replay applies the log of c in the order it was recorded.
func (in *Interpreter) replay(ctx context.Context, c conn) {
	for _, a := range c.log.chronological() {
		in.apply(ctx, c.res, a, c.serial)
	}
}

// Replay applies the log of c to its response in the order the actions
// were recorded, and reports whether the response was ended.
// A connection is replayed once; ToRequestHandler does this itself.
func Replay[C Phase](c C) bool {
	base := c.core()
	base.in.replay(base.req.Context(), base)
	return base.ended
}
