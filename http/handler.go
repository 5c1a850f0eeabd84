package http

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/codes"

	"maragu.dev/hyperglue/hyper"
	"maragu.dev/hyperglue/middleware"
)

// Handler produces a response for a request and its route params.
// Errors are for failures outside the pipeline, such as an unreadable body.
type Handler = func(ctx context.Context, r *http.Request, params hyper.Params) (hyper.Response, error)

// SessionStore loads sessions from a Cookie header and commits them to a Set-Cookie header value.
type SessionStore interface {
	Load(ctx context.Context, cookieHeader string) (hyper.Session, error)
	Commit(ctx context.Context, s hyper.Session) (string, error)
}

// ToHandler runs m on a fresh connection for each request.
// A failed pipeline gives [hyper.ErrorResponse] of the error value.
func ToHandler[E, A any](m middleware.Middleware[hyper.StatusOpen, hyper.ResponseEnded, E, A]) Handler {
	return func(ctx context.Context, r *http.Request, params hyper.Params) (hyper.Response, error) {
		body, err := ReadBody(r)
		if err != nil {
			return hyper.Response{}, err
		}

		res, _ := run(ctx, m, hyper.NewConnection(r, params, body, nil))
		return res, nil
	}
}

// ToHandlerWithSession is like [ToHandler], with the session loaded from store before m runs.
// The session is committed only if m succeeds, and its cookie is added to the Set-Cookie headers.
func ToHandlerWithSession[E, A any](store SessionStore, m middleware.Middleware[hyper.StatusOpen, hyper.ResponseEnded, E, A]) Handler {
	return func(ctx context.Context, r *http.Request, params hyper.Params) (hyper.Response, error) {
		body, err := ReadBody(r)
		if err != nil {
			return hyper.Response{}, err
		}

		s, err := store.Load(ctx, r.Header.Get("Cookie"))
		if err != nil {
			return hyper.Response{}, err
		}

		res, ok := run(ctx, m, hyper.NewConnection(r, params, body, s))
		if !ok {
			return res, nil
		}

		cookie, err := store.Commit(ctx, s)
		if err != nil {
			return hyper.Response{}, err
		}
		res.Headers.Add("Set-Cookie", cookie)

		return res, nil
	}
}

// run m on c, and report whether it succeeded.
func run[E, A any](ctx context.Context, m middleware.Middleware[hyper.StatusOpen, hyper.ResponseEnded, E, A], c hyper.Connection[hyper.StatusOpen]) (hyper.Response, bool) {
	result := middleware.Exec(ctx, m, c)
	if ended, ok := result.GetRight(); ok {
		return hyper.Interpret(ended), true
	}
	e, _ := result.GetLeft()
	return hyper.ErrorResponse(e), false
}

// Adapt a [Handler] to an [http.HandlerFunc], with route params from chi.
// Handler errors are logged, recorded on the root span if there is one, and answered with a plain 500.
func Adapt(h Handler, log *slog.Logger) http.HandlerFunc {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	return func(w http.ResponseWriter, r *http.Request) {
		res, err := h(r.Context(), r, routeParams(r))
		if err != nil {
			log.Info("Error handling request", "method", r.Method, "path", r.URL.Path, "error", err)
			if span := GetRootSpanFromContext(r.Context()); span != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, "handler failed")
			}
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		for name, values := range res.Headers {
			for _, v := range values {
				w.Header().Add(name, v)
			}
		}
		w.WriteHeader(res.StatusCode)
		_, _ = io.WriteString(w, res.Body)
	}
}

func routeParams(r *http.Request) hyper.Params {
	params := hyper.Params{}
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return params
	}
	for i, key := range rctx.URLParams.Keys {
		if key == "*" {
			continue
		}
		params[key] = rctx.URLParams.Values[i]
	}
	return params
}
