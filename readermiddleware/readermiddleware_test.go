package readermiddleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"code.hybscloud.com/kont"
	"maragu.dev/is"

	"maragu.dev/hyperglue/hyper"
	"maragu.dev/hyperglue/middleware"
	"maragu.dev/hyperglue/model"
	rm "maragu.dev/hyperglue/readermiddleware"
)

type config struct {
	Greeting string
	Home     string
}

func TestReaderMiddleware(t *testing.T) {
	greet := rm.AndThen(rm.GET[config](),
		rm.Chain(rm.Asks[config, hyper.StatusOpen, model.Error](func(c config) string { return c.Greeting }),
			func(greeting string) rm.ReaderMiddleware[config, hyper.StatusOpen, hyper.ResponseEnded, model.Error, struct{}] {
				return rm.SendJSON[config](greeting)
			}))

	t.Run("reads from the environment", func(t *testing.T) {
		c := hyper.NewConnection(httptest.NewRequest(http.MethodGet, "/", nil), nil, nil, nil)

		r := rm.Exec(t.Context(), greet, config{Greeting: "hi"}, c)
		ended, ok := r.GetRight()
		is.True(t, ok)

		res := hyper.Interpret(ended)
		is.Equal(t, `"hi"`, res.Body)
	})

	t.Run("fails on the wrong method", func(t *testing.T) {
		c := hyper.NewConnection(httptest.NewRequest(http.MethodPost, "/", nil), nil, nil, nil)

		e, ok := rm.Exec(t.Context(), greet, config{Greeting: "hi"}, c).GetLeft()
		is.True(t, ok)
		is.Equal(t, model.ErrorMethodNotAllowed, e)
	})

	t.Run("lifts the session and redirect library", func(t *testing.T) {
		s := hyper.NewMemorySession()
		s.Set("flash", "old")
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		c := hyper.NewConnection(req, nil, nil, s)

		home := rm.Chain(rm.Ask[config, hyper.StatusOpen, model.Error](), func(c config) rm.ReaderMiddleware[config, hyper.StatusOpen, hyper.HeadersOpen, model.Error, struct{}] {
			return rm.FromMiddleware[config](middleware.Redirect[model.Error](c.Home))
		})

		m := rm.AndThen(rm.POST[config](),
			rm.AndThen(rm.DecodeSession[config]("flash", func(v any) kont.Either[model.Error, any] { return kont.Right[model.Error](v) }),
				rm.AndThen(home,
					rm.AndThen(rm.Session[config, model.Error]("x", "1", middleware.SessionOptions{}),
						rm.AndThen(rm.ClearSession[config, model.Error]("flash"),
							rm.FromMiddleware[config](middleware.AndThen(middleware.CloseHeaders[model.Error](), middleware.End[model.Error]())))))))

		ended, ok := rm.Exec(t.Context(), m, config{Home: "/home"}, c).GetRight()
		is.True(t, ok)

		res := hyper.Interpret(ended)
		is.Equal(t, http.StatusFound, res.StatusCode)
		is.Equal(t, "/home", res.Headers.Get("Location"))
		is.Equal(t, "1", s.Get("x").(string))
		is.True(t, s.Get("flash") == nil)
	})

	t.Run("maps values and lifts the other decoders", func(t *testing.T) {
		c := hyper.NewConnection(httptest.NewRequest(http.MethodDelete, "/", nil), nil, nil, nil)

		m := rm.Map(rm.DELETE[config](), func(method string) int { return len(method) })
		res, ok := m(config{})(t.Context(), c).GetRight()
		is.True(t, ok)
		is.Equal(t, 6, res.Value)

		for _, d := range []rm.ReaderMiddleware[config, hyper.StatusOpen, hyper.StatusOpen, model.Error, string]{rm.PUT[config](), rm.PATCH[config]()} {
			is.True(t, d(config{})(t.Context(), c).IsLeft())
		}
	})

	t.Run("sends a redirect", func(t *testing.T) {
		c := hyper.NewConnection(httptest.NewRequest(http.MethodGet, "/", nil), nil, nil, nil)

		ended, ok := rm.Exec(t.Context(), rm.SendRedirect[config, model.Error]("/x"), config{}, c).GetRight()
		is.True(t, ok)
		is.Equal(t, "/x", hyper.Interpret(ended).Headers.Get("Location"))
	})
}
