package main

import (
	"net/http"

	"code.hybscloud.com/kont"

	ghttp "maragu.dev/hyperglue/http"
	"maragu.dev/hyperglue/hyper"
	"maragu.dev/hyperglue/middleware"
	"maragu.dev/hyperglue/model"
)

type handler = middleware.Middleware[hyper.StatusOpen, hyper.ResponseEnded, model.Error, struct{}]

func routes(sessions ghttp.SessionStore) func(r *ghttp.Router) {
	return func(r *ghttp.Router) {
		r.Get("/greet/{name}", ghttp.ToHandler(greet))

		r.Route("/session", func(r *ghttp.Router) {
			r.Get("/", ghttp.ToHandlerWithSession(sessions, readValue))
			r.Post("/", ghttp.ToHandlerWithSession(sessions, setValue))
			r.Delete("/", ghttp.ToHandlerWithSession(sessions, clearValue))
		})

		r.Route("/flash", func(r *ghttp.Router) {
			r.Get("/", ghttp.ToHandlerWithSession(sessions, readFlash))
			r.Post("/", ghttp.ToHandlerWithSession(sessions, setFlash))
		})
	}
}

// greet the name route param.
var greet = middleware.Chain(
	middleware.AndThen(middleware.GET, middleware.DecodeParam("name", func(value string, ok bool) kont.Either[model.Error, string] {
		if !ok || value == "" {
			return kont.Left[model.Error, string](model.ErrorMissingParam)
		}
		return kont.Right[model.Error](value)
	})),
	func(name string) handler {
		return middleware.SendJSON(map[string]string{"greeting": "Hello, " + name + "!"})
	},
)

// setValue from the form body in the session, and redirect to read it.
var setValue = middleware.Chain(
	middleware.AndThen(middleware.POST, middleware.DecodeBody(formValue("value"))),
	func(value string) handler {
		return middleware.AndThen(middleware.Redirect[model.Error]("/session"),
			middleware.AndThen(middleware.Session[model.Error]("value", value, middleware.SessionOptions{}),
				middleware.AndThen(middleware.CloseHeaders[model.Error](), middleware.End[model.Error]())))
	},
)

var readValue = middleware.Chain(
	middleware.DecodeSession("value", func(value any) kont.Either[model.Error, string] {
		if s, ok := value.(string); ok {
			return kont.Right[model.Error](s)
		}
		return kont.Left[model.Error, string](model.ErrorMissingSession)
	}),
	func(value string) handler {
		return middleware.SendJSON(map[string]string{"value": value})
	},
)

// clearValue from the session, responding with no content.
var clearValue = middleware.AndThen(middleware.DELETE,
	middleware.AndThen(middleware.Status[model.Error](http.StatusNoContent),
		middleware.AndThen(middleware.ClearSession[model.Error]("value"),
			middleware.AndThen(middleware.CloseHeaders[model.Error](), middleware.End[model.Error]()))))

// setFlash message from the form body, which is shown once.
var setFlash = middleware.Chain(
	middleware.AndThen(middleware.POST, middleware.DecodeBody(formValue("message"))),
	func(message string) handler {
		return middleware.AndThen(middleware.Redirect[model.Error]("/flash"),
			middleware.AndThen(middleware.Session[model.Error]("message", message, middleware.SessionOptions{Flash: true}),
				middleware.AndThen(middleware.CloseHeaders[model.Error](), middleware.End[model.Error]())))
	},
)

// readFlash message, which is null after the first read.
var readFlash = middleware.Chain(
	middleware.DecodeSession("message", func(value any) kont.Either[model.Error, any] {
		return kont.Right[model.Error](value)
	}),
	func(message any) handler {
		return middleware.SendJSON(map[string]any{"message": message})
	},
)

// formValue decodes the named field of a form body.
func formValue(name string) func(body any) kont.Either[model.Error, string] {
	return func(body any) kont.Either[model.Error, string] {
		form, ok := body.(map[string]string)
		if !ok {
			return kont.Left[model.Error, string](model.ErrorInvalidBody)
		}
		value, ok := form[name]
		if !ok {
			return kont.Left[model.Error, string](model.ErrorInvalidBody)
		}
		return kont.Right[model.Error](value)
	}
}
