package middleware

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"

	"code.hybscloud.com/kont"

	"maragu.dev/hyperglue/hyper"
)

type (
	statusOpen    = hyper.Connection[hyper.StatusOpen]
	headersOpen   = hyper.Connection[hyper.HeadersOpen]
	bodyOpen      = hyper.Connection[hyper.BodyOpen]
	responseEnded = hyper.Connection[hyper.ResponseEnded]
)

func Status[E any](status int) Middleware[hyper.StatusOpen, hyper.HeadersOpen, E, struct{}] {
	return ModifyConnection[E](func(c statusOpen) headersOpen {
		return hyper.SetStatus(c, status)
	})
}

func Header[E any](name, value string) Middleware[hyper.HeadersOpen, hyper.HeadersOpen, E, struct{}] {
	return ModifyConnection[E](func(c headersOpen) headersOpen {
		return hyper.SetHeader(c, name, value)
	})
}

func ContentType[E any](mediaType string) Middleware[hyper.HeadersOpen, hyper.HeadersOpen, E, struct{}] {
	return Header[E]("Content-Type", mediaType)
}

func Cookie[E any](name, value string, opts hyper.CookieOptions) Middleware[hyper.HeadersOpen, hyper.HeadersOpen, E, struct{}] {
	return ModifyConnection[E](func(c headersOpen) headersOpen {
		return hyper.SetCookie(c, name, value, opts)
	})
}

func ClearCookie[E any](name string, opts hyper.CookieOptions) Middleware[hyper.HeadersOpen, hyper.HeadersOpen, E, struct{}] {
	return ModifyConnection[E](func(c headersOpen) headersOpen {
		return hyper.ClearCookie(c, name, opts)
	})
}

func CloseHeaders[E any]() Middleware[hyper.HeadersOpen, hyper.BodyOpen, E, struct{}] {
	return ModifyConnection[E](hyper.CloseHeaders)
}

// Send body and end the response.
func Send[E any](body string) Middleware[hyper.BodyOpen, hyper.ResponseEnded, E, struct{}] {
	return ModifyConnection[E](func(c bodyOpen) responseEnded {
		return hyper.SetBody(c, body)
	})
}

// End the response without a body.
func End[E any]() Middleware[hyper.BodyOpen, hyper.ResponseEnded, E, struct{}] {
	return ModifyConnection[E](hyper.EndResponse)
}

func Pipe[E any](stream io.Reader) Middleware[hyper.BodyOpen, hyper.ResponseEnded, E, struct{}] {
	return ModifyConnection[E](func(c bodyOpen) responseEnded {
		return hyper.PipeStream(c, stream)
	})
}

// JSON sets the content type, closes the headers, and sends body marshalled as JSON.
// If marshalling fails, the middleware fails with the result of onError.
func JSON[E any](body any, onError func(error) E) Middleware[hyper.HeadersOpen, hyper.ResponseEnded, E, struct{}] {
	return func(ctx context.Context, c headersOpen) kont.Either[E, Result[hyper.ResponseEnded, struct{}]] {
		b, err := json.Marshal(body)
		if err != nil {
			return fail[hyper.ResponseEnded, E, struct{}](onError(err))
		}
		send := AndThen(ContentType[E](hyper.MediaTypeJSON), AndThen(CloseHeaders[E](), Send[E](string(b))))
		return send(ctx, c)
	}
}

// Redirect with status 302 Found to uri.
func Redirect[E any](uri string) Middleware[hyper.StatusOpen, hyper.HeadersOpen, E, struct{}] {
	return AndThen(Status[E](http.StatusFound), Header[E]("Location", uri))
}

func DecodeMethod[E, A any](f func(method string) kont.Either[E, A]) Middleware[hyper.StatusOpen, hyper.StatusOpen, E, A] {
	return FromConnection(func(c statusOpen) kont.Either[E, A] {
		return f(c.Method())
	})
}

// DecodeHeader with the given name. Missing headers are given to f as the empty string.
func DecodeHeader[E, A any](name string, f func(value string) kont.Either[E, A]) Middleware[hyper.StatusOpen, hyper.StatusOpen, E, A] {
	return FromConnection(func(c statusOpen) kont.Either[E, A] {
		return f(c.Header(name))
	})
}

func DecodeQuery[E, A any](f func(query url.Values) kont.Either[E, A]) Middleware[hyper.StatusOpen, hyper.StatusOpen, E, A] {
	return FromConnection(func(c statusOpen) kont.Either[E, A] {
		return f(c.Query())
	})
}

// DecodeParam with the given name. ok is false if there is no such route parameter.
func DecodeParam[E, A any](name string, f func(value string, ok bool) kont.Either[E, A]) Middleware[hyper.StatusOpen, hyper.StatusOpen, E, A] {
	return FromConnection(func(c statusOpen) kont.Either[E, A] {
		v, ok := c.Params()[name]
		return f(v, ok)
	})
}

func DecodeParams[E, A any](f func(params hyper.Params) kont.Either[E, A]) Middleware[hyper.StatusOpen, hyper.StatusOpen, E, A] {
	return FromConnection(func(c statusOpen) kont.Either[E, A] {
		return f(c.Params())
	})
}

// DecodeBody as parsed before the pipeline started.
func DecodeBody[E, A any](f func(body any) kont.Either[E, A]) Middleware[hyper.StatusOpen, hyper.StatusOpen, E, A] {
	return FromConnection(func(c statusOpen) kont.Either[E, A] {
		return f(c.Body())
	})
}
