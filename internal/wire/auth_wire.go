package wire

import (
	"yamdb/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAuth(r chi.Router, authHandler *adaptor.AuthHandler, g guards) {
	r.Route("/auth", func(r chi.Router) {
		r.With(g.limit).Post("/signup", authHandler.Register)
		r.With(g.limit).Post("/login", authHandler.Login)
		r.With(g.session).Post("/logout", authHandler.Logout)
	})
}
