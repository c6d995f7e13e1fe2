// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package hyper

import "io"

// Phase is the set of connection types, one per response phase.
// Each type exposes only the transitions legal in its phase:
//
//	StatusOpen    --SetStatus-->                       HeadersOpen
//	HeadersOpen   --SetHeader/SetCookie/ClearCookie--> HeadersOpen
//	HeadersOpen   --CloseHeaders-->                    BodyOpen
//	BodyOpen      --SetBody/PipeStream/EndResponse-->  ResponseEnded
type Phase interface {
	StatusOpen | HeadersOpen | BodyOpen | ResponseEnded
	core() conn
}

// Phase markers. Each phase type carries a different one, so the phase
// types have distinct underlying types and do not convert into each other.
type (
	statusPhase  struct{}
	headersPhase struct{}
	bodyPhase    struct{}
	endedPhase   struct{}
)

// StatusOpen is a connection whose status has not been set.
// Only NewConn and ToRequestHandler build a usable one; the zero value
// panics when replayed or bridged.
type StatusOpen struct {
	_ [0]statusPhase
	conn
}

// HeadersOpen is a connection that accepts headers and cookies.
type HeadersOpen struct {
	_ [0]headersPhase
	conn
}

// BodyOpen is a connection whose headers are closed.
type BodyOpen struct {
	_ [0]bodyPhase
	conn
}

// ResponseEnded is a connection whose response is complete.
// It has no mutators.
type ResponseEnded struct {
	_ [0]endedPhase
	conn
}

// SetStatus records the status code.
func (c StatusOpen) SetStatus(code int) HeadersOpen {
	return HeadersOpen{conn: c.chain(SetStatus{Code: code}, false)}
}

// SetHeader records a response header.
func (c HeadersOpen) SetHeader(name, value string) HeadersOpen {
	return HeadersOpen{conn: c.chain(SetHeader{Name: name, Value: value}, false)}
}

// SetCookie records a cookie. See CookiePolicy for how it is applied.
func (c HeadersOpen) SetCookie(name, value string, opts CookieOptions) HeadersOpen {
	return HeadersOpen{conn: c.chain(SetCookie{Name: name, Value: value, Options: opts}, false)}
}

// ClearCookie records the removal of a cookie. See CookiePolicy.
func (c HeadersOpen) ClearCookie(name string, opts CookieOptions) HeadersOpen {
	return HeadersOpen{conn: c.chain(ClearCookie{Name: name, Options: opts}, false)}
}

// CloseHeaders moves to the body phase. Nothing is recorded.
func (c HeadersOpen) CloseHeaders() BodyOpen {
	return BodyOpen{conn: c.conn}
}

// SetBody records the body and ends the response.
func (c BodyOpen) SetBody(body []byte) ResponseEnded {
	return ResponseEnded{conn: c.chain(SetBody{Body: body}, true)}
}

// PipeStream records a source to drain into the response, ending it.
func (c BodyOpen) PipeStream(src io.Reader) ResponseEnded {
	return ResponseEnded{conn: c.chain(PipeStream{Source: src}, true)}
}

// EndResponse ends the response without a body.
func (c BodyOpen) EndResponse() ResponseEnded {
	return ResponseEnded{conn: c.chain(EndResponse{}, true)}
}
