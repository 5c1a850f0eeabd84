package http_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"maragu.dev/is"

	ghttp "maragu.dev/hyperglue/http"
	"maragu.dev/hyperglue/hyper"
	"maragu.dev/hyperglue/middleware"
)

func newSpanRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()

	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
	})
	return sr
}

func TestOpenTelemetry(t *testing.T) {
	t.Run("names the root span after the route pattern", func(t *testing.T) {
		sr := newSpanRecorder(t)

		mux := chi.NewRouter()
		mux.Use(ghttp.OpenTelemetry)
		mux.Get("/things/{id}", ghttp.Adapt(ghttp.ToHandler(middleware.SendJSON("thing")), nil))

		w := httptest.NewRecorder()
		mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/things/123", nil))
		is.Equal(t, http.StatusOK, w.Code)

		spans := sr.Ended()
		is.Equal(t, 1, len(spans))
		is.Equal(t, "GET /things/{id}", spans[0].Name())
	})

	t.Run("records handler errors on the root span", func(t *testing.T) {
		sr := newSpanRecorder(t)

		h := func(ctx context.Context, r *http.Request, params hyper.Params) (hyper.Response, error) {
			return hyper.Response{}, errors.New("oh no")
		}

		mux := chi.NewRouter()
		mux.Use(ghttp.OpenTelemetry)
		mux.Get("/broken", ghttp.Adapt(h, nil))

		w := httptest.NewRecorder()
		mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/broken", nil))
		is.Equal(t, http.StatusInternalServerError, w.Code)

		spans := sr.Ended()
		is.Equal(t, 1, len(spans))
		is.Equal(t, codes.Error, spans[0].Status().Code)
		is.Equal(t, 1, len(spans[0].Events()))
		is.Equal(t, "exception", spans[0].Events()[0].Name)
	})
}
