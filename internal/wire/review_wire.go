package wire

import (
	"yamdb/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

// wireReview mounts reviews and their comments under /titles/{titleID}.
// Author and moderator checks happen in the services.
func wireReview(r chi.Router, reviewHandler *adaptor.ReviewHandler, commentHandler *adaptor.CommentHandler, g guards) {
	r.Route("/reviews", func(r chi.Router) {
		r.Get("/", reviewHandler.List)
		r.With(g.session).Post("/", reviewHandler.Create)

		r.Route("/{reviewID}", func(r chi.Router) {
			r.Get("/", reviewHandler.Get)
			r.With(g.session).Patch("/", reviewHandler.Update)
			r.With(g.session).Delete("/", reviewHandler.Delete)

			r.Route("/comments", func(r chi.Router) {
				r.Get("/", commentHandler.List)
				r.With(g.session).Post("/", commentHandler.Create)

				r.Route("/{commentID}", func(r chi.Router) {
					r.Get("/", commentHandler.Get)
					r.With(g.session).Patch("/", commentHandler.Update)
					r.With(g.session).Delete("/", commentHandler.Delete)
				})
			})
		})
	})
}
