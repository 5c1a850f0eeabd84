// Package readermiddleware is [middleware.Middleware] with access to an environment of type R,
// such as a database or configuration, given when the pipeline is executed.
package readermiddleware

import (
	"context"

	"code.hybscloud.com/kont"

	"maragu.dev/hyperglue/hyper"
	"maragu.dev/hyperglue/middleware"
	"maragu.dev/hyperglue/model"
)

type ReaderMiddleware[R any, I, O hyper.Phase, E, A any] func(r R) middleware.Middleware[I, O, E, A]

// FromMiddleware ignores the environment.
func FromMiddleware[R any, I, O hyper.Phase, E, A any](m middleware.Middleware[I, O, E, A]) ReaderMiddleware[R, I, O, E, A] {
	return func(R) middleware.Middleware[I, O, E, A] {
		return m
	}
}

// Ask produces the environment.
func Ask[R any, I hyper.Phase, E any]() ReaderMiddleware[R, I, I, E, R] {
	return func(r R) middleware.Middleware[I, I, E, R] {
		return middleware.Right[I, E](r)
	}
}

// Asks produces f applied to the environment.
func Asks[R any, I hyper.Phase, E, A any](f func(R) A) ReaderMiddleware[R, I, I, E, A] {
	return func(r R) middleware.Middleware[I, I, E, A] {
		return middleware.Right[I, E](f(r))
	}
}

func Map[R any, I, O hyper.Phase, E, A, B any](m ReaderMiddleware[R, I, O, E, A], f func(A) B) ReaderMiddleware[R, I, O, E, B] {
	return func(r R) middleware.Middleware[I, O, E, B] {
		return middleware.Map(m(r), f)
	}
}

func Chain[R any, I, O, Z hyper.Phase, E, A, B any](m ReaderMiddleware[R, I, O, E, A], f func(A) ReaderMiddleware[R, O, Z, E, B]) ReaderMiddleware[R, I, Z, E, B] {
	return func(r R) middleware.Middleware[I, Z, E, B] {
		return middleware.Chain(m(r), func(a A) middleware.Middleware[O, Z, E, B] {
			return f(a)(r)
		})
	}
}

func AndThen[R any, I, O, Z hyper.Phase, E, A, B any](m ReaderMiddleware[R, I, O, E, A], n ReaderMiddleware[R, O, Z, E, B]) ReaderMiddleware[R, I, Z, E, B] {
	return func(r R) middleware.Middleware[I, Z, E, B] {
		return middleware.AndThen(m(r), n(r))
	}
}

// Exec m with the environment r against c.
func Exec[R any, I, O hyper.Phase, E, A any](ctx context.Context, m ReaderMiddleware[R, I, O, E, A], r R, c hyper.Connection[I]) kont.Either[E, hyper.Connection[O]] {
	return middleware.Exec(ctx, m(r), c)
}

func Session[R, E any](name, value string, opts middleware.SessionOptions) ReaderMiddleware[R, hyper.HeadersOpen, hyper.HeadersOpen, E, struct{}] {
	return FromMiddleware[R](middleware.Session[E](name, value, opts))
}

func ClearSession[R, E any](name string) ReaderMiddleware[R, hyper.HeadersOpen, hyper.HeadersOpen, E, struct{}] {
	return FromMiddleware[R](middleware.ClearSession[E](name))
}

func DecodeSession[R, E, A any](name string, f func(value any) kont.Either[E, A]) ReaderMiddleware[R, hyper.StatusOpen, hyper.StatusOpen, E, A] {
	return FromMiddleware[R](middleware.DecodeSession(name, f))
}

func SendRedirect[R, E any](uri string) ReaderMiddleware[R, hyper.StatusOpen, hyper.ResponseEnded, E, struct{}] {
	return FromMiddleware[R](middleware.SendRedirect[E](uri))
}

func SendJSON[R any](body any) ReaderMiddleware[R, hyper.StatusOpen, hyper.ResponseEnded, model.Error, struct{}] {
	return FromMiddleware[R](middleware.SendJSON(body))
}

type methodDecoder[R any] = ReaderMiddleware[R, hyper.StatusOpen, hyper.StatusOpen, model.Error, string]

func GET[R any]() methodDecoder[R] {
	return FromMiddleware[R](middleware.GET)
}

func POST[R any]() methodDecoder[R] {
	return FromMiddleware[R](middleware.POST)
}

func PUT[R any]() methodDecoder[R] {
	return FromMiddleware[R](middleware.PUT)
}

func PATCH[R any]() methodDecoder[R] {
	return FromMiddleware[R](middleware.PATCH)
}

func DELETE[R any]() methodDecoder[R] {
	return FromMiddleware[R](middleware.DELETE)
}
