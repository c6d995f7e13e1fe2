// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package connect

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
)

// Handler is a pipeline stage.
type Handler interface {
	ServeNext(w http.ResponseWriter, r *http.Request, next func(error))
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(w http.ResponseWriter, r *http.Request, next func(error))

// ServeNext calls f(w, r, next).
func (f HandlerFunc) ServeNext(w http.ResponseWriter, r *http.Request, next func(error)) {
	f(w, r, next)
}

// Option configures an App.
type Option func(*App)

// WithErrorHandler replaces DefaultErrorHandler.
func WithErrorHandler(h ErrorHandler) Option {
	return func(app *App) {
		app.onError = h
	}
}

// WithLogger sets the logger used for pipeline diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(app *App) {
		app.logger = logger
	}
}

// App runs its handlers in the order they were added.
type App struct {
	stack   []Handler
	onError ErrorHandler
	logger  *slog.Logger
}

// New returns an empty App.
func New(opts ...Option) *App {
	app := &App{logger: slog.Default()}
	for _, opt := range opts {
		opt(app)
	}
	if app.onError == nil {
		app.onError = DefaultErrorHandler(app.logger)
	}
	return app
}

// Use appends handlers to the stack.
func (app *App) Use(h ...Handler) *App {
	app.stack = append(app.stack, h...)
	return app
}

// ServeHTTP implements http.Handler.
func (app *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	res, _ := AsResponse(w)
	r = WithLocals(r)
	app.serve(res, r, 0)
	res.Commit()
}

func (app *App) serve(res *Response, r *http.Request, i int) {
	if i >= len(app.stack) {
		app.notFound(res, r)
		return
	}
	defer func() {
		if rec := recover(); rec != nil {
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			app.onError(res, r, fmt.Errorf("connect: panic in handler %d: %v", i, rec))
		}
	}()
	app.stack[i].ServeNext(res, r, app.next(res, r, i))
}

// next returns the continuation handed to handler i.
func (app *App) next(res *Response, r *http.Request, i int) func(error) {
	called := false
	return func(err error) {
		if called {
			app.logger.WarnContext(r.Context(), "connect: next called more than once", "handler", i)
			return
		}
		called = true
		if err != nil {
			app.onError(res, r, err)
			return
		}
		app.serve(res, r, i+1)
	}
}

// notFound finishes a request that fell off the end of the stack.
func (app *App) notFound(res *Response, r *http.Request) {
	if res.Written() {
		res.End()
		return
	}
	h := res.Header()
	h.Set("Content-Type", "text/plain; charset=utf-8")
	h.Set("X-Content-Type-Options", "nosniff")
	res.WriteHeader(http.StatusNotFound)
	io.WriteString(res, "Cannot "+r.Method+" "+r.URL.Path)
	res.End()
}
