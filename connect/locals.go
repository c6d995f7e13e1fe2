// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package connect

import (
	"context"
	"net/http"
)

type localsKey struct{}

// locals is the per-request slot shared by every handler of one request.
type locals struct {
	body    any
	hasBody bool
}

// WithLocals returns r carrying a request-scoped locals slot.
// r is returned unchanged when it already has one.
func WithLocals(r *http.Request) *http.Request {
	if _, ok := r.Context().Value(localsKey{}).(*locals); ok {
		return r
	}
	return r.WithContext(context.WithValue(r.Context(), localsKey{}, &locals{}))
}

// SetBody attaches a parsed body to r.
// Returns false when r has no locals slot (see WithLocals).
func SetBody(r *http.Request, v any) bool {
	l, ok := r.Context().Value(localsKey{}).(*locals)
	if !ok {
		return false
	}
	l.body, l.hasBody = v, true
	return true
}

// Body returns the body attached by an upstream parser.
func Body(r *http.Request) (any, bool) {
	l, ok := r.Context().Value(localsKey{}).(*locals)
	if !ok || !l.hasBody {
		return nil, false
	}
	return l.body, true
}
