// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package hyper

import (
	"code.hybscloud.com/kont"
)

// Result is a successful step: the connection after the step and the
// value it produced.
type Result[C Phase, A any] struct {
	Conn  C
	Value A
}

// Outcome is the effectful result of a Middleware.
type Outcome[C Phase, E, A any] = kont.Eff[kont.Either[E, Result[C, A]]]

// Middleware is a computation that takes a connection in phase I to
// phase O, failing with E or producing A.
type Middleware[I, O Phase, E, A any] func(c I) Outcome[O, E, A]

func right[C Phase, E, A any](c C, a A) Outcome[C, E, A] {
	return kont.Pure(kont.Right[E](Result[C, A]{Conn: c, Value: a}))
}

func left[C Phase, E, A any](e E) Outcome[C, E, A] {
	return kont.Pure(kont.Left[E, Result[C, A]](e))
}

// Right succeeds with a without touching the connection.
func Right[C Phase, E, A any](a A) Middleware[C, C, E, A] {
	return func(c C) Outcome[C, E, A] {
		return right[C, E](c, a)
	}
}

// Left fails with e.
func Left[C Phase, E, A any](e E) Middleware[C, C, E, A] {
	return func(C) Outcome[C, E, A] {
		return left[C, E, A](e)
	}
}

// FromEither lifts an Either.
func FromEither[C Phase, E, A any](e kont.Either[E, A]) Middleware[C, C, E, A] {
	return FromConnection[C](func(C) kont.Either[E, A] { return e })
}

// FromConnection computes an Either from the connection.
func FromConnection[C Phase, E, A any](f func(c C) kont.Either[E, A]) Middleware[C, C, E, A] {
	return func(c C) Outcome[C, E, A] {
		r := f(c)
		if e, ok := r.GetLeft(); ok {
			return left[C, E, A](e)
		}
		a, _ := r.GetRight()
		return right[C, E](c, a)
	}
}

// GetConnection produces the connection itself.
func GetConnection[C Phase, E any]() Middleware[C, C, E, C] {
	return func(c C) Outcome[C, E, C] {
		return right[C, E](c, c)
	}
}

// RightIO runs m and succeeds with its value.
func RightIO[C Phase, E, A any](m kont.Eff[A]) Middleware[C, C, E, A] {
	return func(c C) Outcome[C, E, A] {
		return kont.Map(m, func(a A) kont.Either[E, Result[C, A]] {
			return kont.Right[E](Result[C, A]{Conn: c, Value: a})
		})
	}
}

// LeftIO runs m and fails with its value.
func LeftIO[C Phase, E, A any](m kont.Eff[E]) Middleware[C, C, E, A] {
	return func(C) Outcome[C, E, A] {
		return kont.Map(m, func(e E) kont.Either[E, Result[C, A]] {
			return kont.Left[E, Result[C, A]](e)
		})
	}
}

// IChain runs m, then the middleware f picks from its value, starting
// from the phase m left the connection in.
func IChain[I, O, Z Phase, E, A, B any](m Middleware[I, O, E, A], f func(a A) Middleware[O, Z, E, B]) Middleware[I, Z, E, B] {
	return func(c I) Outcome[Z, E, B] {
		return kont.Bind(m(c), func(r kont.Either[E, Result[O, A]]) Outcome[Z, E, B] {
			if e, ok := r.GetLeft(); ok {
				return left[Z, E, B](e)
			}
			res, _ := r.GetRight()
			return f(res.Value)(res.Conn)
		})
	}
}

// Chain is IChain for a continuation that stays in one phase.
func Chain[I, O Phase, E, A, B any](m Middleware[I, O, E, A], f func(a A) Middleware[O, O, E, B]) Middleware[I, O, E, B] {
	return IChain(m, f)
}

// Then runs m, discards its value and runs next.
func Then[I, O, Z Phase, E, A, B any](m Middleware[I, O, E, A], next Middleware[O, Z, E, B]) Middleware[I, Z, E, B] {
	return IChain(m, func(A) Middleware[O, Z, E, B] { return next })
}

// Map transforms the value of m.
func Map[I, O Phase, E, A, B any](m Middleware[I, O, E, A], f func(a A) B) Middleware[I, O, E, B] {
	return Bimap(m, func(e E) E { return e }, f)
}

// MapLeft transforms the failure of m.
func MapLeft[I, O Phase, E, F, A any](m Middleware[I, O, E, A], f func(e E) F) Middleware[I, O, F, A] {
	return Bimap(m, f, func(a A) A { return a })
}

// Bimap transforms both the failure and the value of m.
func Bimap[I, O Phase, E, F, A, B any](m Middleware[I, O, E, A], f func(e E) F, g func(a A) B) Middleware[I, O, F, B] {
	return func(c I) Outcome[O, F, B] {
		return kont.Map(m(c), func(r kont.Either[E, Result[O, A]]) kont.Either[F, Result[O, B]] {
			if e, ok := r.GetLeft(); ok {
				return kont.Left[F, Result[O, B]](f(e))
			}
			res, _ := r.GetRight()
			return kont.Right[F](Result[O, B]{Conn: res.Conn, Value: g(res.Value)})
		})
	}
}

// OrElse recovers from a failure of m by running f(e) on the connection m
// started from. Actions recorded by the failed branch are dropped.
func OrElse[I, O Phase, E, F, A any](m Middleware[I, O, E, A], f func(e E) Middleware[I, O, F, A]) Middleware[I, O, F, A] {
	return func(c I) Outcome[O, F, A] {
		return kont.Bind(m(c), func(r kont.Either[E, Result[O, A]]) Outcome[O, F, A] {
			if e, ok := r.GetLeft(); ok {
				return f(e)(c)
			}
			res, _ := r.GetRight()
			return right[O, F](res.Conn, res.Value)
		})
	}
}
