// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package hyper

import (
	"net/http"
	"strings"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/hyper/connect"
)

// Serial is a monotonically increasing connection identifier.
// It correlates log records of one request.
type Serial = uint32

// connections is the global monotonic counter for connection serials.
var connections atomix.Uint32

// conn is the state shared by every phase type. It is copied by value on
// each transition and never modified after construction.
type conn struct {
	req    *http.Request
	res    *connect.Response
	log    *actionList
	ended  bool
	serial Serial
	in     *Interpreter
}

func newConn(res *connect.Response, req *http.Request, in *Interpreter) conn {
	return conn{req: req, res: res, serial: connections.Add(1), in: in}
}

// NewConn returns the initial connection for one request.
// Most callers use ToRequestHandler instead; NewConn serves custom drivers
// built on Step and Advance, which finish with Replay.
func NewConn(w http.ResponseWriter, r *http.Request, opts ...Option) StatusOpen {
	res, _ := connect.AsResponse(w)
	return StatusOpen{conn: newConn(res, connect.WithLocals(r), NewInterpreter(opts...))}
}

func (c conn) core() conn {
	if c.in == nil {
		panic("hyper: connection not built by NewConn")
	}
	return c
}

// chain returns a copy of c with a appended to the log. Once set, ended
// stays set.
func (c conn) chain(a Action, ended bool) conn {
	c.log = c.log.cons(a)
	c.ended = c.ended || ended
	return c
}

// Request returns the incoming request.
func (c conn) Request() *http.Request {
	return c.req
}

// Method returns the request method.
func (c conn) Method() string {
	return c.req.Method
}

// OriginalURL returns the request target as received, path and query.
func (c conn) OriginalURL() string {
	if c.req.RequestURI != "" {
		return c.req.RequestURI
	}
	return c.req.URL.RequestURI()
}

// Header returns the incoming request header name. Repeated fields are
// joined with ", ".
func (c conn) Header(name string) (string, bool) {
	values := c.req.Header.Values(name)
	if len(values) == 0 {
		return "", false
	}
	return strings.Join(values, ", "), true
}

// Body returns the body attached by an upstream parser such as
// connect.JSON. It reports false when no parser ran.
func (c conn) Body() (any, bool) {
	return connect.Body(c.req)
}

// Query parses the query string of OriginalURL using bracket nesting:
// "a[b]=1" yields {"a": {"b": "1"}}. Values are string, map[string]any
// or []any. The map is empty when the URL has no '?'.
func (c conn) Query() map[string]any {
	target := c.OriginalURL()
	i := strings.IndexByte(target, '?')
	if i < 0 {
		return map[string]any{}
	}
	return parseQuery(target[i+1:])
}

// Params always returns nil: there is no router here. Route parameters
// come from a router running alongside.
func (c conn) Params() any {
	return nil
}

// Serial returns the connection serial.
func (c conn) Serial() Serial {
	return c.serial
}

// Ended reports whether a terminal action has been recorded.
func (c conn) Ended() bool {
	return c.ended
}

// Actions returns a copy of the log in the order it was recorded.
func (c conn) Actions() []Action {
	return c.log.chronological()
}
