// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package hyper_test

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"code.hybscloud.com/hyper"
	"code.hybscloud.com/hyper/connect"
	"code.hybscloud.com/kont"
)

// quiet is a logger that drops everything.
var quiet = slog.New(slog.DiscardHandler)

// logBuffer is a goroutine-safe sink for a text logger.
type logBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *logBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *logBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func newLogger() (*slog.Logger, *logBuffer) {
	var b logBuffer
	return slog.New(slog.NewTextHandler(&b, &slog.HandlerOptions{Level: slog.LevelDebug})), &b
}

// serve runs the handlers as a connect.App and returns the response.
func serve(t testing.TB, req *http.Request, h ...connect.Handler) *http.Response {
	t.Helper()
	rec := httptest.NewRecorder()
	connect.New(connect.WithLogger(quiet)).Use(h...).ServeHTTP(rec, req)
	return rec.Result()
}

// nextCall records how a handler called next.
type nextCall struct {
	calls int
	err   error
}

// direct runs h outside any App.
func direct(h connect.HandlerFunc, req *http.Request) (*httptest.ResponseRecorder, *nextCall) {
	rec := httptest.NewRecorder()
	var nc nextCall
	h(rec, req, func(err error) {
		nc.calls++
		nc.err = err
	})
	return rec, &nc
}

func readBody(t testing.TB, res *http.Response) string {
	t.Helper()
	defer res.Body.Close()
	b, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(b)
}

// sendStatus sets code and ends the response with no body.
func sendStatus[E any](code int) hyper.Middleware[hyper.StatusOpen, hyper.ResponseEnded, E, struct{}] {
	return hyper.Then(hyper.Status[E](code), hyper.Then(hyper.CloseHeaders[E](), hyper.End[E]()))
}

// sendOK is sendStatus(200).
func sendOK[E any]() hyper.Middleware[hyper.StatusOpen, hyper.ResponseEnded, E, struct{}] {
	return sendStatus[E](http.StatusOK)
}

// execStep drives m on c to completion via the Step+Advance loop.
// Retries on iox.ErrWouldBlock (callback not fired yet).
func execStep[I, O hyper.Phase, E, A any](m hyper.Middleware[I, O, E, A], c I) kont.Either[E, hyper.Result[O, A]] {
	result, susp := hyper.Step(m, c)
	for susp != nil {
		var err error
		result, susp, err = hyper.Advance(susp)
		if err != nil {
			continue
		}
	}
	return result
}
