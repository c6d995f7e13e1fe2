// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package hyper

import (
	"code.hybscloud.com/kont"
)

// Decoders read the request before the status is set. Each hands one
// part of the request to f and fails with f's Left.

// DecodeParams decodes route parameters, which are always nil here.
func DecodeParams[E, A any](f func(params any) kont.Either[E, A]) Middleware[StatusOpen, StatusOpen, E, A] {
	return FromConnection(func(c StatusOpen) kont.Either[E, A] {
		return f(c.Params())
	})
}

// DecodeQuery decodes the parsed query string.
func DecodeQuery[E, A any](f func(query map[string]any) kont.Either[E, A]) Middleware[StatusOpen, StatusOpen, E, A] {
	return FromConnection(func(c StatusOpen) kont.Either[E, A] {
		return f(c.Query())
	})
}

// DecodeBody decodes the body attached by an upstream parser. f sees nil
// when no parser ran.
func DecodeBody[E, A any](f func(body any) kont.Either[E, A]) Middleware[StatusOpen, StatusOpen, E, A] {
	return FromConnection(func(c StatusOpen) kont.Either[E, A] {
		body, _ := c.Body()
		return f(body)
	})
}

// DecodeMethod decodes the request method.
func DecodeMethod[E, A any](f func(method string) kont.Either[E, A]) Middleware[StatusOpen, StatusOpen, E, A] {
	return FromConnection(func(c StatusOpen) kont.Either[E, A] {
		return f(c.Method())
	})
}

// DecodeHeader decodes one incoming header. ok is false when it is absent.
func DecodeHeader[E, A any](name string, f func(value string, ok bool) kont.Either[E, A]) Middleware[StatusOpen, StatusOpen, E, A] {
	return FromConnection(func(c StatusOpen) kont.Either[E, A] {
		return f(c.Header(name))
	})
}
