package wire

import (
	"yamdb/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

// wireCatalog mounts a category or genre collection at path. Reads are
// public, writes are admin only.
func wireCatalog(r chi.Router, path string, catalogHandler *adaptor.CatalogHandler, g guards) {
	r.Route(path, func(r chi.Router) {
		r.Get("/", catalogHandler.List)

		r.Group(func(r chi.Router) {
			r.Use(g.session, g.admin)
			r.Post("/", catalogHandler.Create)
			r.Delete("/{slug}", catalogHandler.Delete)
		})
	})
}
