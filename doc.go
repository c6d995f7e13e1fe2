// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package hyper runs typed, phase-checked HTTP response computations inside
// a callback-style handler pipeline ([code.hybscloud.com/hyper/connect]).
//
// A computation never writes to the response. It threads an immutable
// connection through the response phases and records actions; the adapter
// replays the recorded actions once the computation has succeeded.
//
// # Architecture
//
//   - Phases: [StatusOpen], [HeadersOpen], [BodyOpen], [ResponseEnded]. Each type only exposes the transitions legal in its phase.
//   - Actions: [SetStatus], [SetHeader], [SetCookie], [ClearCookie], [SetBody], [PipeStream], [EndResponse]. Applied by an [Interpreter].
//   - Engine: [Middleware] over [code.hybscloud.com/kont] effects. Failures are data, returned as [code.hybscloud.com/kont.Either].
//   - Callbacks: wrapped handlers suspend the computation on a [Callback] effect, settled through a lock-free queue from [code.hybscloud.com/lfq].
//
// # API Topologies
//
//   - Adapters: [ToRequestHandler] runs a computation as a pipeline handler. [FromRequestHandler] runs a pipeline handler as a computation step.
//   - Constructors: [Right], [Left], [FromEither], [FromConnection], [GetConnection], [RightIO], [LeftIO].
//   - Sequencing: [IChain], [Chain], [Then], [Map], [MapLeft], [Bimap], [OrElse].
//   - Response: [Status], [Header], [ContentType], [Cookie], [ExpireCookie], [Redirect], [CloseHeaders], [Send], [SendBytes], [JSON], [Stream], [End].
//   - Decoders: [DecodeQuery], [DecodeMethod], [DecodeBody], [DecodeHeader], [DecodeParams].
//
// # Integration
//
//   - Stepping: [Step] and [Advance] evaluate a computation one callback at a time, returning [code.hybscloud.com/iox.ErrWouldBlock] while a handler is pending. Finish with [Replay].
//   - Blocking: [Exec] waits past callbacks using adaptive backoff.
//
// Cookies are recorded but, by default, only logged when replayed. Use
// [WithCookiePolicy] with [CookieApply] to emit Set-Cookie headers.
//
// # Example
//
//	hello := hyper.IChain(hyper.Status[error](http.StatusOK), func(struct{}) hyper.Middleware[hyper.HeadersOpen, hyper.ResponseEnded, error, struct{}] {
//		return hyper.Then(hyper.CloseHeaders[error](), hyper.Send[error]("hello"))
//	})
//	app := connect.New().Use(hyper.ToRequestHandler(hello))
//	http.ListenAndServe(":8080", app)
package hyper
