package http

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
)

// Router registers [Handler]s on a chi mux.
type Router struct {
	Mux chi.Router
	log *slog.Logger
}

func (r *Router) Get(path string, h Handler) {
	r.Mux.Get(path, Adapt(h, r.log))
}

func (r *Router) Post(path string, h Handler) {
	r.Mux.Post(path, Adapt(h, r.log))
}

func (r *Router) Put(path string, h Handler) {
	r.Mux.Put(path, Adapt(h, r.log))
}

func (r *Router) Patch(path string, h Handler) {
	r.Mux.Patch(path, Adapt(h, r.log))
}

func (r *Router) Delete(path string, h Handler) {
	r.Mux.Delete(path, Adapt(h, r.log))
}

// Handle h for all methods, so the pipeline can decode the method itself.
func (r *Router) Handle(path string, h Handler) {
	r.Mux.Handle(path, Adapt(h, r.log))
}

func (r *Router) Group(cb func(r *Router)) {
	r.Mux.Group(func(mux chi.Router) {
		cb(&Router{Mux: mux, log: r.log})
	})
}

func (r *Router) Route(pattern string, cb func(r *Router)) {
	r.Mux.Route(pattern, func(mux chi.Router) {
		cb(&Router{Mux: mux, log: r.log})
	})
}

func (r *Router) Use(middlewares ...Middleware) {
	r.Mux.Use(middlewares...)
}

func (r *Router) NotFound(h Handler) {
	r.Mux.NotFound(Adapt(h, r.log))
}
