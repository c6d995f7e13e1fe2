// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package hyper_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"code.hybscloud.com/hyper"
	"code.hybscloud.com/hyper/connect"
	"go.opentelemetry.io/otel/metric/noop"
)

var benchOpts = []hyper.Option{hyper.WithLogger(quiet), hyper.WithMeterProvider(noop.NewMeterProvider())}

// BenchmarkToRequestHandlerSend measures status, header and body replay.
func BenchmarkToRequestHandlerSend(b *testing.B) {
	m := hyper.Then(hyper.Status[error](http.StatusOK),
		hyper.Then(hyper.ContentType[error](hyper.TextPlain),
			hyper.Then(hyper.CloseHeaders[error](), hyper.Send[error]("hello"))))
	h := hyper.ToRequestHandler(m, benchOpts...)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	next := func(error) {}
	b.ReportAllocs()
	for b.Loop() {
		h(httptest.NewRecorder(), req, next)
	}
}

// BenchmarkFromRequestHandler measures one synchronous callback round-trip.
func BenchmarkFromRequestHandler(b *testing.B) {
	pass := connect.HandlerFunc(func(w http.ResponseWriter, r *http.Request, next func(error)) { next(nil) })
	m := hyper.IChain(hyper.FromRequestHandler[hyper.StatusOpen](pass, unit, func(error) string { return "oops" }),
		func(struct{}) hyper.Middleware[hyper.StatusOpen, hyper.ResponseEnded, string, struct{}] {
			return sendOK[string]()
		})
	h := hyper.ToRequestHandler(m, benchOpts...)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	next := func(error) {}
	b.ReportAllocs()
	for b.Loop() {
		h(httptest.NewRecorder(), req, next)
	}
}

// BenchmarkActions measures recording and reading back a log.
func BenchmarkActions(b *testing.B) {
	c := hyper.NewConn(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil), benchOpts...)
	b.ReportAllocs()
	for b.Loop() {
		h := c.SetStatus(http.StatusOK)
		for range 8 {
			h = h.SetHeader("X-Bench", "v")
		}
		_ = h.CloseHeaders().EndResponse().Actions()
	}
}

// BenchmarkQuery measures nested query parsing.
func BenchmarkQuery(b *testing.B) {
	c := hyper.NewConn(httptest.NewRecorder(),
		httptest.NewRequest(http.MethodGet, "/?order=desc&shoe[color]=blue&shoe[type]=converse&tag[]=a&tag[]=b", nil),
		benchOpts...)
	b.ReportAllocs()
	for b.Loop() {
		_ = c.Query()
	}
}
