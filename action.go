// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package hyper

import (
	"io"
	"net/http"
	"time"
)

// Action is a deferred response effect recorded on a connection.
// The set is closed: SetBody, EndResponse, SetStatus, SetHeader,
// ClearCookie, SetCookie and PipeStream.
type Action interface {
	// String returns the action tag, e.g. "setHeader".
	String() string
	isAction()
}

// SetBody writes Body and ends the response. A nil Body is an empty body.
type SetBody struct {
	Body []byte
}

// EndResponse ends the response without a body.
type EndResponse struct{}

// SetStatus sets the status code.
type SetStatus struct {
	Code int
}

// SetHeader sets one response header.
type SetHeader struct {
	Name  string
	Value string
}

// ClearCookie removes a cookie on the client.
type ClearCookie struct {
	Name    string
	Options CookieOptions
}

// SetCookie sets a cookie on the client.
type SetCookie struct {
	Name    string
	Value   string
	Options CookieOptions
}

// PipeStream drains Source into the response and ends it.
// Source is closed afterwards when it implements io.Closer.
type PipeStream struct {
	Source io.Reader
}

func (SetBody) String() string     { return "setBody" }
func (EndResponse) String() string { return "endResponse" }
func (SetStatus) String() string   { return "setStatus" }
func (SetHeader) String() string   { return "setHeader" }
func (ClearCookie) String() string { return "clearCookie" }
func (SetCookie) String() string   { return "setCookie" }
func (PipeStream) String() string  { return "pipeStream" }

func (SetBody) isAction()     {}
func (EndResponse) isAction() {}
func (SetStatus) isAction()   {}
func (SetHeader) isAction()   {}
func (ClearCookie) isAction() {}
func (SetCookie) isAction()   {}
func (PipeStream) isAction()  {}

// CookieOptions are the attributes of a recorded cookie.
type CookieOptions struct {
	Expires  time.Time
	Domain   string
	Path     string
	MaxAge   int
	HttpOnly bool
	Secure   bool
	SameSite http.SameSite
}

// cookie builds the net/http form of a cookie. Path defaults to "/".
func (o CookieOptions) cookie(name, value string) *http.Cookie {
	path := o.Path
	if path == "" {
		path = "/"
	}
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     path,
		Domain:   o.Domain,
		Expires:  o.Expires,
		MaxAge:   o.MaxAge,
		Secure:   o.Secure,
		HttpOnly: o.HttpOnly,
		SameSite: o.SameSite,
	}
}

// actionList is a persistent cons list. Cells are never mutated, so a
// connection's log is shared by every connection derived from it.
// Storage order is most recent first.
type actionList struct {
	head Action
	tail *actionList
	size int
}

func (l *actionList) cons(a Action) *actionList {
	return &actionList{head: a, tail: l, size: l.len() + 1}
}

func (l *actionList) len() int {
	if l == nil {
		return 0
	}
	return l.size
}

// chronological returns the actions in append order.
func (l *actionList) chronological() []Action {
	out := make([]Action, l.len())
	i := len(out) - 1
	for n := l; n != nil; n = n.tail {
		out[i] = n.head
		i--
	}
	return out
}
