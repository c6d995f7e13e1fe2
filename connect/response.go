// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package connect

import (
	"errors"
	"net/http"
)

// ErrResponseEnded is returned by [Response.Write] after [Response.End].
var ErrResponseEnded = errors.New("connect: write after end")

// Response is the live response passed through the pipeline.
// A status set with SetStatus is held back until the first write, so
// headers may still be added after it.
type Response struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
	ended       bool
}

// AsResponse returns w as a *Response, wrapping it when needed.
// The boolean reports whether a new wrapper was created.
func AsResponse(w http.ResponseWriter) (*Response, bool) {
	if res, ok := w.(*Response); ok {
		return res, false
	}
	return &Response{ResponseWriter: w}, true
}

// SetStatus records the status code sent with the first write.
// Ignored once the header has been written.
func (res *Response) SetStatus(code int) {
	if res.wroteHeader {
		return
	}
	res.status = code
}

// Status returns the status code sent, or to be sent, with the header.
func (res *Response) Status() int {
	if res.status == 0 {
		return http.StatusOK
	}
	return res.status
}

// WriteHeader sends the header with code. Later calls are ignored.
func (res *Response) WriteHeader(code int) {
	if res.wroteHeader {
		return
	}
	res.wroteHeader = true
	res.status = code
	res.ResponseWriter.WriteHeader(code)
}

// Write sends the header if needed, then p.
func (res *Response) Write(p []byte) (int, error) {
	if res.ended {
		return 0, ErrResponseEnded
	}
	if !res.wroteHeader {
		res.WriteHeader(res.Status())
	}
	return res.ResponseWriter.Write(p)
}

// Commit sends a status recorded by SetStatus. It is a no-op when no
// status is pending or the header is already out.
func (res *Response) Commit() {
	if res.wroteHeader || res.status == 0 {
		return
	}
	res.WriteHeader(res.status)
}

// End finishes the response. The header is sent if it was not yet,
// and further writes fail with ErrResponseEnded.
func (res *Response) End() {
	if !res.wroteHeader {
		res.WriteHeader(res.Status())
	}
	res.ended = true
}

// Ended reports whether End was called.
func (res *Response) Ended() bool {
	return res.ended
}

// Written reports whether the header has been sent.
func (res *Response) Written() bool {
	return res.wroteHeader
}

// Flush sends buffered data to the client when the underlying writer supports it.
func (res *Response) Flush() {
	if !res.wroteHeader {
		res.WriteHeader(res.Status())
	}
	if f, ok := res.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Unwrap returns the underlying writer for [net/http.ResponseController].
func (res *Response) Unwrap() http.ResponseWriter {
	return res.ResponseWriter
}
