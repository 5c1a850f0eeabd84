package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"code.hybscloud.com/kont"
	"maragu.dev/is"

	"maragu.dev/hyperglue/hyper"
	"maragu.dev/hyperglue/middleware"
	"maragu.dev/hyperglue/model"
)

func TestMethodDecoders(t *testing.T) {
	tests := []struct {
		name     string
		decoder  middleware.Middleware[hyper.StatusOpen, hyper.StatusOpen, model.Error, string]
		method   string
		expected string
		ok       bool
	}{
		{name: "GET accepts GET", decoder: middleware.GET, method: "GET", expected: "GET", ok: true},
		{name: "GET rejects lowercase get", decoder: middleware.GET, method: "get", ok: false},
		{name: "GET rejects POST", decoder: middleware.GET, method: "POST", ok: false},
		{name: "POST accepts POST", decoder: middleware.POST, method: "POST", expected: "POST", ok: true},
		{name: "POST accepts lowercase post", decoder: middleware.POST, method: "post", expected: "POST", ok: true},
		{name: "POST rejects GET", decoder: middleware.POST, method: "GET", ok: false},
		{name: "PUT accepts PUT", decoder: middleware.PUT, method: "PUT", expected: "PUT", ok: true},
		{name: "PUT accepts mixed case", decoder: middleware.PUT, method: "Put", expected: "PUT", ok: true},
		{name: "PUT rejects PATCH", decoder: middleware.PUT, method: "PATCH", ok: false},
		{name: "PATCH accepts PATCH", decoder: middleware.PATCH, method: "PATCH", expected: "PATCH", ok: true},
		{name: "PATCH rejects PUT", decoder: middleware.PATCH, method: "PUT", ok: false},
		{name: "DELETE accepts DELETE", decoder: middleware.DELETE, method: "DELETE", expected: "DELETE", ok: true},
		{name: "DELETE accepts lowercase delete", decoder: middleware.DELETE, method: "delete", expected: "DELETE", ok: true},
		{name: "DELETE rejects GET", decoder: middleware.DELETE, method: "GET", ok: false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			r := test.decoder(t.Context(), newConnection(test.method))

			if !test.ok {
				e, ok := r.GetLeft()
				is.True(t, ok)
				is.Equal(t, model.ErrorMethodNotAllowed, e)
				return
			}

			res, ok := r.GetRight()
			is.True(t, ok)
			is.Equal(t, test.expected, res.Value)
			is.Equal(t, 0, len(res.Conn.Actions()))
		})
	}
}

func TestSendJSON(t *testing.T) {
	t.Run("sends json with status 200", func(t *testing.T) {
		res, _, ok := run(t, http.MethodGet, middleware.SendJSON(map[string]string{"hello": "world"}))

		is.True(t, ok)
		is.Equal(t, http.StatusOK, res.StatusCode)
		is.Equal(t, "application/json", res.Headers.Get("Content-Type"))
		is.Equal(t, `{"hello":"world"}`, res.Body)
	})

	t.Run("fails with a json error if the body cannot be marshalled", func(t *testing.T) {
		_, e, ok := run(t, http.MethodGet, middleware.SendJSON(make(chan int)))

		is.True(t, !ok)
		is.Equal(t, model.ErrorJSON, e)
	})
}

func TestSendRedirect(t *testing.T) {
	t.Run("redirects with 302 and no body", func(t *testing.T) {
		res, _, ok := run(t, http.MethodGet, middleware.SendRedirect[model.Error]("/somewhere"))

		is.True(t, ok)
		is.Equal(t, http.StatusFound, res.StatusCode)
		is.Equal(t, "/somewhere", res.Headers.Get("Location"))
		is.Equal(t, "", res.Body)
	})
}

func TestMethodDecoder_pipeline(t *testing.T) {
	t.Run("a failed method decode applies nothing after it", func(t *testing.T) {
		m := middleware.AndThen(middleware.POST, middleware.AndThen(middleware.Status[model.Error](http.StatusCreated),
			middleware.AndThen(middleware.Header[model.Error]("X-After", "yes"),
				middleware.AndThen(middleware.CloseHeaders[model.Error](), middleware.Send[model.Error]("created")))))

		_, e, ok := run(t, http.MethodGet, m)
		is.True(t, !ok)
		is.Equal(t, model.ErrorMethodNotAllowed, e)
	})

	t.Run("a successful method decode continues", func(t *testing.T) {
		m := middleware.AndThen(middleware.GET, middleware.SendJSON("yo"))

		res, _, ok := run(t, http.MethodGet, m)
		is.True(t, ok)
		is.Equal(t, `"yo"`, res.Body)
	})
}

func TestSession(t *testing.T) {
	t.Run("sets, flashes, and clears session values when interpreted", func(t *testing.T) {
		s := hyper.NewMemorySession()
		s.Set("old", "value")
		c := hyper.NewConnection(httptest.NewRequest(http.MethodGet, "/", nil), nil, nil, s)

		m := middleware.AndThen(middleware.Status[model.Error](http.StatusOK),
			middleware.AndThen(middleware.Session[model.Error]("x", "1", middleware.SessionOptions{}),
				middleware.AndThen(middleware.Session[model.Error]("f", "once", middleware.SessionOptions{Flash: true}),
					middleware.AndThen(middleware.ClearSession[model.Error]("old"),
						middleware.AndThen(middleware.CloseHeaders[model.Error](), middleware.End[model.Error]())))))

		r := middleware.Exec(t.Context(), m, c)
		ended, ok := r.GetRight()
		is.True(t, ok)

		is.Equal(t, "value", s.Get("old").(string))
		_ = hyper.Interpret(ended)

		is.Equal(t, "1", s.Get("x").(string))
		is.Equal(t, "once", s.Get("f").(string))
		is.True(t, s.Get("f") == nil)
		is.True(t, s.Get("old") == nil)
	})
}

func TestDecodeSession(t *testing.T) {
	decodeString := func(v any) kont.Either[model.Error, string] {
		if s, ok := v.(string); ok {
			return kont.Right[model.Error](s)
		}
		return kont.Left[model.Error, string](model.ErrorMissingSession)
	}

	t.Run("decodes an existing value", func(t *testing.T) {
		s := hyper.NewMemorySession()
		s.Set("x", "1")
		c := hyper.NewConnection(httptest.NewRequest(http.MethodGet, "/", nil), nil, nil, s)

		res, ok := middleware.DecodeSession("x", decodeString)(t.Context(), c).GetRight()
		is.True(t, ok)
		is.Equal(t, "1", res.Value)
	})

	t.Run("fails with the decoder error for a missing value", func(t *testing.T) {
		e, ok := middleware.DecodeSession("x", decodeString)(t.Context(), newConnection(http.MethodGet)).GetLeft()
		is.True(t, ok)
		is.Equal(t, model.ErrorMissingSession, e)
	})
}

func TestDecoders(t *testing.T) {
	t.Run("decodes header, query, params, and body", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/?q=search", nil)
		r.Header.Set("X-Name", "Ada")
		c := hyper.NewConnection(r, hyper.Params{"id": "123"}, "a body", nil)

		header, _ := middleware.DecodeHeader("X-Name", func(v string) kont.Either[string, string] {
			return kont.Right[string](strings.ToUpper(v))
		})(t.Context(), c).GetRight()
		is.Equal(t, "ADA", header.Value)

		query, _ := middleware.DecodeQuery(func(q url.Values) kont.Either[string, string] {
			return kont.Right[string](q.Get("q"))
		})(t.Context(), c).GetRight()
		is.Equal(t, "search", query.Value)

		param, _ := middleware.DecodeParam("id", func(v string, ok bool) kont.Either[string, string] {
			if !ok {
				return kont.Left[string, string]("missing")
			}
			return kont.Right[string](v)
		})(t.Context(), c).GetRight()
		is.Equal(t, "123", param.Value)

		params, _ := middleware.DecodeParams(func(p hyper.Params) kont.Either[string, int] {
			return kont.Right[string](len(p))
		})(t.Context(), c).GetRight()
		is.Equal(t, 1, params.Value)

		body, _ := middleware.DecodeBody(func(b any) kont.Either[string, string] {
			return kont.Right[string](b.(string))
		})(t.Context(), c).GetRight()
		is.Equal(t, "a body", body.Value)
	})

	t.Run("fails on a missing param", func(t *testing.T) {
		e, ok := middleware.DecodeParam("nope", func(v string, ok bool) kont.Either[model.Error, string] {
			if !ok {
				return kont.Left[model.Error, string](model.ErrorMissingParam)
			}
			return kont.Right[model.Error](v)
		})(t.Context(), newConnection(http.MethodGet)).GetLeft()
		is.True(t, ok)
		is.Equal(t, model.ErrorMissingParam, e)
	})
}

func TestPrimitives(t *testing.T) {
	t.Run("sets cookies, content type, and pipes", func(t *testing.T) {
		m := middleware.AndThen(middleware.Status[string](http.StatusOK),
			middleware.AndThen(middleware.Cookie[string]("a", "1", hyper.CookieOptions{}),
				middleware.AndThen(middleware.ClearCookie[string]("b", hyper.CookieOptions{}),
					middleware.AndThen(middleware.ContentType[string](hyper.MediaTypeTextPlain),
						middleware.AndThen(middleware.CloseHeaders[string](), middleware.Pipe[string](strings.NewReader("streamed")))))))

		res, _, ok := run(t, http.MethodGet, m)
		is.True(t, ok)
		is.Equal(t, "text/plain", res.Headers.Get("Content-Type"))
		is.EqualSlice(t, []string{"a=1", "b=; Max-Age=0"}, res.Headers.Values("Set-Cookie"))
	})

	t.Run("redirect stays in headers open", func(t *testing.T) {
		m := middleware.Chain(middleware.Redirect[string]("/there"), func(struct{}) middleware.Middleware[hyper.HeadersOpen, hyper.ResponseEnded, string, struct{}] {
			return middleware.ModifyConnection[string](func(c headersOpen) hyper.Connection[hyper.ResponseEnded] {
				return hyper.EndResponse(hyper.CloseHeaders(hyper.SetHeader(c, "X-Extra", "1")))
			})
		})

		res, _, ok := run(t, http.MethodGet, m)
		is.True(t, ok)
		is.Equal(t, "/there", res.Headers.Get("Location"))
		is.Equal(t, "1", res.Headers.Get("X-Extra"))
	})
}
