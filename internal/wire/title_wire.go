package wire

import (
	"yamdb/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireTitle(r chi.Router, handler *adaptor.Handler, g guards) {
	titleHandler := handler.Title

	r.Route("/titles", func(r chi.Router) {
		r.Get("/", titleHandler.List)
		r.With(g.session, g.admin).Post("/", titleHandler.Create)

		r.Route("/{titleID}", func(r chi.Router) {
			r.Get("/", titleHandler.Get)
			r.Get("/rating", titleHandler.Rating)

			r.Group(func(r chi.Router) {
				r.Use(g.session, g.admin)
				r.Patch("/", titleHandler.Update)
				r.Delete("/", titleHandler.Delete)
			})

			wireReview(r, handler.Review, handler.Comment, g)
		})
	})
}
