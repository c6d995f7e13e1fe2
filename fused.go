// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package hyper

import (
	"encoding/json"
	"io"
	"net/http"
)

// MediaType is a Content-Type value.
type MediaType string

const (
	ApplicationJSON   MediaType = "application/json"
	ApplicationXML    MediaType = "application/xml"
	TextPlain         MediaType = "text/plain"
	TextHTML          MediaType = "text/html"
	FormURLEncoded    MediaType = "application/x-www-form-urlencoded"
	MultipartFormData MediaType = "multipart/form-data"
	OctetStream       MediaType = "application/octet-stream"
)

// transition lifts a phase method into a middleware producing nothing.
func transition[I, O Phase, E any](f func(c I) O) Middleware[I, O, E, struct{}] {
	return func(c I) Outcome[O, E, struct{}] {
		return right[O, E](f(c), struct{}{})
	}
}

// Status records the status code.
func Status[E any](code int) Middleware[StatusOpen, HeadersOpen, E, struct{}] {
	return transition[StatusOpen, HeadersOpen, E](func(c StatusOpen) HeadersOpen {
		return c.SetStatus(code)
	})
}

// Header records a response header.
func Header[E any](name, value string) Middleware[HeadersOpen, HeadersOpen, E, struct{}] {
	return transition[HeadersOpen, HeadersOpen, E](func(c HeadersOpen) HeadersOpen {
		return c.SetHeader(name, value)
	})
}

// ContentType records the Content-Type header.
func ContentType[E any](t MediaType) Middleware[HeadersOpen, HeadersOpen, E, struct{}] {
	return Header[E]("Content-Type", string(t))
}

// Cookie records a cookie.
func Cookie[E any](name, value string, opts CookieOptions) Middleware[HeadersOpen, HeadersOpen, E, struct{}] {
	return transition[HeadersOpen, HeadersOpen, E](func(c HeadersOpen) HeadersOpen {
		return c.SetCookie(name, value, opts)
	})
}

// ExpireCookie records the removal of a cookie.
func ExpireCookie[E any](name string, opts CookieOptions) Middleware[HeadersOpen, HeadersOpen, E, struct{}] {
	return transition[HeadersOpen, HeadersOpen, E](func(c HeadersOpen) HeadersOpen {
		return c.ClearCookie(name, opts)
	})
}

// CloseHeaders moves to the body phase.
func CloseHeaders[E any]() Middleware[HeadersOpen, BodyOpen, E, struct{}] {
	return transition[HeadersOpen, BodyOpen, E](HeadersOpen.CloseHeaders)
}

// Send records body as the response body.
func Send[E any](body string) Middleware[BodyOpen, ResponseEnded, E, struct{}] {
	return SendBytes[E]([]byte(body))
}

// SendBytes records body as the response body.
func SendBytes[E any](body []byte) Middleware[BodyOpen, ResponseEnded, E, struct{}] {
	return transition[BodyOpen, ResponseEnded, E](func(c BodyOpen) ResponseEnded {
		return c.SetBody(body)
	})
}

// End ends the response without a body.
func End[E any]() Middleware[BodyOpen, ResponseEnded, E, struct{}] {
	return transition[BodyOpen, ResponseEnded, E](BodyOpen.EndResponse)
}

// Stream records src to be copied into the response.
func Stream[E any](src io.Reader) Middleware[BodyOpen, ResponseEnded, E, struct{}] {
	return transition[BodyOpen, ResponseEnded, E](func(c BodyOpen) ResponseEnded {
		return c.PipeStream(src)
	})
}

// Redirect records a 302 with a Location header.
func Redirect[E any](uri string) Middleware[StatusOpen, HeadersOpen, E, struct{}] {
	return Then(Status[E](http.StatusFound), Header[E]("Location", uri))
}

// JSON marshals body, sets the JSON content type and sends it.
// A marshal failure is mapped by onError and nothing is recorded.
func JSON[E any](body any, onError func(error) E) Middleware[HeadersOpen, ResponseEnded, E, struct{}] {
	return func(c HeadersOpen) Outcome[ResponseEnded, E, struct{}] {
		b, err := json.Marshal(body)
		if err != nil {
			return left[ResponseEnded, E, struct{}](onError(err))
		}
		return right[ResponseEnded, E](c.
			SetHeader("Content-Type", string(ApplicationJSON)).
			CloseHeaders().
			SetBody(b), struct{}{})
	}
}
