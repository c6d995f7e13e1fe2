// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package connect is a callback-driven request pipeline on net/http.
//
// Handlers receive the live response, the request and a continuation:
//
//	func(w http.ResponseWriter, r *http.Request, next func(error))
//
// Calling next(nil) passes control to the following handler; next(err)
// aborts to the error handler. A handler that finishes the response does
// not call next. [App] expects next to be called before the handler
// returns, and at most once.
//
// # Pieces
//
//   - [App]: ordered handler stack implementing [net/http.Handler].
//   - [Response]: the live response; its status is held back until the first write.
//   - Request locals: [WithLocals], [SetBody], [Body] carry a parsed body between handlers.
//   - [JSON]: body parser for application/json requests.
//   - [StatusError]: an error carrying the HTTP status the error handler should send.
package connect
