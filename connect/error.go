// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package connect

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
)

// StatusError is an error that carries the HTTP status to respond with.
type StatusError struct {
	Status int
	Err    error
}

// Errorf returns a *StatusError with status and a formatted cause.
func Errorf(status int, format string, args ...any) *StatusError {
	return &StatusError{Status: status, Err: fmt.Errorf(format, args...)}
}

func (e *StatusError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("connect: %d %s", e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("connect: %d %s: %v", e.Status, http.StatusText(e.Status), e.Err)
}

func (e *StatusError) Unwrap() error {
	return e.Err
}

// ErrorHandler finishes a request that a handler aborted with next(err).
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// statusOf returns the status carried by err, or 500.
func statusOf(err error) int {
	var se *StatusError
	if errors.As(err, &se) && se.Status >= 400 && se.Status < 600 {
		return se.Status
	}
	return http.StatusInternalServerError
}

// DefaultErrorHandler responds with the status carried by err (500 when
// none) and its status text. Server errors are logged.
func DefaultErrorHandler(logger *slog.Logger) ErrorHandler {
	return func(w http.ResponseWriter, r *http.Request, err error) {
		status := statusOf(err)
		if status >= http.StatusInternalServerError {
			logger.ErrorContext(r.Context(), "connect: request failed",
				"method", r.Method, "path", r.URL.Path, "status", status, "err", err)
		}
		res, _ := AsResponse(w)
		if res.Written() {
			res.End()
			return
		}
		h := res.Header()
		h.Set("Content-Type", "text/plain; charset=utf-8")
		h.Set("X-Content-Type-Options", "nosniff")
		res.WriteHeader(status)
		io.WriteString(res, http.StatusText(status))
		res.End()
	}
}
