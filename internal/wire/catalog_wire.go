package wire

import (
	"review-api/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireCatalog(r chi.Router, handler *adaptor.Handler) {
	wireTaxon(r, "/categories", handler.Category)
	wireTaxon(r, "/genres", handler.Genre)

	r.Route("/titles", func(r chi.Router) {
		r.Get("/", handler.Title.List) // ?genre=&category=&year=&name=
		r.Post("/", handler.Title.Create)

		r.Route("/{title_id}", func(r chi.Router) {
			r.Get("/", handler.Title.Get)
			r.Patch("/", handler.Title.Update)
			r.Delete("/", handler.Title.Delete)
			r.Get("/rating", handler.Title.Rating)

			wireReview(r, handler.Review, handler.Comment)
		})
	})
}

func wireTaxon(r chi.Router, path string, h *adaptor.TaxonHandler) {
	r.Route(path, func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Patch("/{slug}", h.Rename)
		r.Delete("/{slug}", h.Delete)
	})
}
