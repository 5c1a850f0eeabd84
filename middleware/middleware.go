// Package middleware is an algebra of composable steps over a [hyper.Connection].
//
// A [Middleware] takes a connection in phase I to a connection in phase O, producing a value of type A,
// or fails with an error value of type E. Errors are values in a [kont.Either], never panics.
package middleware

import (
	"context"

	"code.hybscloud.com/kont"

	"maragu.dev/hyperglue/hyper"
)

// Result of a successful [Middleware]: the produced value and the next connection.
type Result[O hyper.Phase, A any] struct {
	Value A
	Conn  hyper.Connection[O]
}

// Middleware from phase I to phase O, failing with E or producing A.
type Middleware[I, O hyper.Phase, E, A any] func(ctx context.Context, c hyper.Connection[I]) kont.Either[E, Result[O, A]]

func succeed[O hyper.Phase, E, A any](a A, c hyper.Connection[O]) kont.Either[E, Result[O, A]] {
	return kont.Right[E](Result[O, A]{Value: a, Conn: c})
}

func fail[O hyper.Phase, E, A any](e E) kont.Either[E, Result[O, A]] {
	return kont.Left[E, Result[O, A]](e)
}

// Right is a middleware that produces a without touching the connection.
func Right[I hyper.Phase, E, A any](a A) Middleware[I, I, E, A] {
	return func(ctx context.Context, c hyper.Connection[I]) kont.Either[E, Result[I, A]] {
		return succeed[I, E](a, c)
	}
}

// Left is a middleware that fails with e.
func Left[I hyper.Phase, E, A any](e E) Middleware[I, I, E, A] {
	return func(ctx context.Context, c hyper.Connection[I]) kont.Either[E, Result[I, A]] {
		return fail[I, E, A](e)
	}
}

func FromEither[I hyper.Phase, E, A any](ea kont.Either[E, A]) Middleware[I, I, E, A] {
	return FromConnection(func(hyper.Connection[I]) kont.Either[E, A] {
		return ea
	})
}

// FromConnection lifts a read of the connection into a middleware that doesn't change the phase.
func FromConnection[I hyper.Phase, E, A any](f func(c hyper.Connection[I]) kont.Either[E, A]) Middleware[I, I, E, A] {
	return func(ctx context.Context, c hyper.Connection[I]) kont.Either[E, Result[I, A]] {
		ea := f(c)
		if a, ok := ea.GetRight(); ok {
			return succeed[I, E](a, c)
		}
		e, _ := ea.GetLeft()
		return fail[I, E, A](e)
	}
}

// ModifyConnection lifts a connection operation into a middleware that always succeeds.
func ModifyConnection[E any, I, O hyper.Phase](f func(c hyper.Connection[I]) hyper.Connection[O]) Middleware[I, O, E, struct{}] {
	return func(ctx context.Context, c hyper.Connection[I]) kont.Either[E, Result[O, struct{}]] {
		return succeed[O, E](struct{}{}, f(c))
	}
}

// TryCatch runs f, which may block, and maps its error with onError.
func TryCatch[I hyper.Phase, E, A any](f func(ctx context.Context) (A, error), onError func(error) E) Middleware[I, I, E, A] {
	return func(ctx context.Context, c hyper.Connection[I]) kont.Either[E, Result[I, A]] {
		a, err := f(ctx)
		if err != nil {
			return fail[I, E, A](onError(err))
		}
		return succeed[I, E](a, c)
	}
}

// Map the produced value with f.
func Map[I, O hyper.Phase, E, A, B any](m Middleware[I, O, E, A], f func(A) B) Middleware[I, O, E, B] {
	return func(ctx context.Context, c hyper.Connection[I]) kont.Either[E, Result[O, B]] {
		r := m(ctx, c)
		res, ok := r.GetRight()
		if !ok {
			e, _ := r.GetLeft()
			return fail[O, E, B](e)
		}
		return succeed[O, E](f(res.Value), res.Conn)
	}
}

// MapLeft maps the error value with f.
func MapLeft[I, O hyper.Phase, E, F, A any](m Middleware[I, O, E, A], f func(E) F) Middleware[I, O, F, A] {
	return func(ctx context.Context, c hyper.Connection[I]) kont.Either[F, Result[O, A]] {
		r := m(ctx, c)
		if res, ok := r.GetRight(); ok {
			return kont.Right[F](res)
		}
		e, _ := r.GetLeft()
		return fail[O, F, A](f(e))
	}
}

// Chain m with the middleware f returns for its value.
// If m fails, f is not called and the error is returned.
func Chain[I, O, Z hyper.Phase, E, A, B any](m Middleware[I, O, E, A], f func(A) Middleware[O, Z, E, B]) Middleware[I, Z, E, B] {
	return func(ctx context.Context, c hyper.Connection[I]) kont.Either[E, Result[Z, B]] {
		r := m(ctx, c)
		res, ok := r.GetRight()
		if !ok {
			e, _ := r.GetLeft()
			return fail[Z, E, B](e)
		}
		return f(res.Value)(ctx, res.Conn)
	}
}

// AndThen runs n after m, discarding the value of m.
func AndThen[I, O, Z hyper.Phase, E, A, B any](m Middleware[I, O, E, A], n Middleware[O, Z, E, B]) Middleware[I, Z, E, B] {
	return Chain(m, func(A) Middleware[O, Z, E, B] {
		return n
	})
}

// OrElse recovers from an error in m with the middleware f returns for it.
// The recovery runs against the connection m was given.
func OrElse[I, O hyper.Phase, E, F, A any](m Middleware[I, O, E, A], f func(E) Middleware[I, O, F, A]) Middleware[I, O, F, A] {
	return func(ctx context.Context, c hyper.Connection[I]) kont.Either[F, Result[O, A]] {
		r := m(ctx, c)
		if res, ok := r.GetRight(); ok {
			return kont.Right[F](res)
		}
		e, _ := r.GetLeft()
		return f(e)(ctx, c)
	}
}

// Exec m against c, returning the final connection or the error.
func Exec[I, O hyper.Phase, E, A any](ctx context.Context, m Middleware[I, O, E, A], c hyper.Connection[I]) kont.Either[E, hyper.Connection[O]] {
	r := m(ctx, c)
	res, ok := r.GetRight()
	if !ok {
		e, _ := r.GetLeft()
		return kont.Left[E, hyper.Connection[O]](e)
	}
	return kont.Right[E](res.Conn)
}
