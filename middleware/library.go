package middleware

import (
	"net/http"
	"strings"

	"code.hybscloud.com/kont"

	"maragu.dev/hyperglue/hyper"
	"maragu.dev/hyperglue/model"
)

// SessionOptions for [Session]. The zero value sets a persistent value.
type SessionOptions struct {
	Flash bool
}

// Session value under name, applied to the session when the response is interpreted.
func Session[E any](name, value string, opts SessionOptions) Middleware[hyper.HeadersOpen, hyper.HeadersOpen, E, struct{}] {
	return ModifyConnection[E](func(c headersOpen) headersOpen {
		return hyper.SetSession(c, name, value, opts.Flash)
	})
}

func ClearSession[E any](name string) Middleware[hyper.HeadersOpen, hyper.HeadersOpen, E, struct{}] {
	return ModifyConnection[E](func(c headersOpen) headersOpen {
		return hyper.ClearSession(c, name)
	})
}

// DecodeSession value under name with f. Missing values are given to f as nil.
func DecodeSession[E, A any](name string, f func(value any) kont.Either[E, A]) Middleware[hyper.StatusOpen, hyper.StatusOpen, E, A] {
	return FromConnection(func(c statusOpen) kont.Either[E, A] {
		return f(c.Session(name))
	})
}

// SendRedirect to uri and end the response.
func SendRedirect[E any](uri string) Middleware[hyper.StatusOpen, hyper.ResponseEnded, E, struct{}] {
	return AndThen(Redirect[E](uri), AndThen(CloseHeaders[E](), End[E]()))
}

// SendJSON with status 200 OK.
func SendJSON(body any) Middleware[hyper.StatusOpen, hyper.ResponseEnded, model.Error, struct{}] {
	return AndThen(Status[model.Error](http.StatusOK), JSON(body, func(error) model.Error {
		return model.ErrorJSON
	}))
}

type methodDecoder = Middleware[hyper.StatusOpen, hyper.StatusOpen, model.Error, string]

// GET only accepts the method exactly as "GET".
// The other method decoders accept any case.
var GET methodDecoder = DecodeMethod(func(method string) kont.Either[model.Error, string] {
	if method == http.MethodGet {
		return kont.Right[model.Error](http.MethodGet)
	}
	return kont.Left[model.Error, string](model.ErrorMethodNotAllowed)
})

var POST = decodeMethodFold(http.MethodPost)

var PUT = decodeMethodFold(http.MethodPut)

var PATCH = decodeMethodFold(http.MethodPatch)

var DELETE = decodeMethodFold(http.MethodDelete)

func decodeMethodFold(expected string) methodDecoder {
	return DecodeMethod(func(method string) kont.Either[model.Error, string] {
		if strings.EqualFold(method, expected) {
			return kont.Right[model.Error](expected)
		}
		return kont.Left[model.Error, string](model.ErrorMethodNotAllowed)
	})
}
