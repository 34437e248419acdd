package wire

import (
	"review-api/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

// wireUser configures profile and user management routes. Admin checks
// happen in the service so the policy lives in one place.
func wireUser(r chi.Router, userHandler *adaptor.UserHandler) {
	r.Route("/users", func(r chi.Router) {
		// GET /api/v1/users?search=&page=1&per_page=10
		r.Get("/", userHandler.List)
		r.Post("/", userHandler.Create)

		// Own profile. Static segments win over {username}.
		r.Get("/me", userHandler.GetMe)
		r.Patch("/me", userHandler.UpdateMe)

		r.Route("/{username}", func(r chi.Router) {
			r.Get("/", userHandler.Get)
			r.Patch("/", userHandler.Update)
			r.Delete("/", userHandler.Delete)
		})
	})
}
