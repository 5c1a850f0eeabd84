package http

import (
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"maragu.dev/httph"

	"maragu.dev/hyperglue/middleware"
	"maragu.dev/hyperglue/model"
)

// setupRoutes as well as middleware.
func (s *Server) setupRoutes() {
	r := s.r

	r.Use(chimiddleware.RealIP, chimiddleware.Recoverer)
	r.Use(chimiddleware.Compress(5))
	r.Use(OpenTelemetry)
	r.Use(httph.NoClickjacking)

	r.NotFound(ToHandler(notFound))

	r.Group(func(r *Router) {
		if s.routes != nil {
			s.routes(r)
		}
	})
}

// notFound responds 404 with a JSON error.
var notFound = middleware.AndThen(
	middleware.Status[model.Error](http.StatusNotFound),
	middleware.JSON[model.Error](model.ErrorNotFound, func(error) model.Error { return model.ErrorJSON }),
)
