package wire

import (
	"review-api/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

// wireReview mounts under /titles/{title_id}.
func wireReview(r chi.Router, reviewHandler *adaptor.ReviewHandler, commentHandler *adaptor.CommentHandler) {
	r.Route("/reviews", func(r chi.Router) {
		r.Get("/", reviewHandler.List)
		r.Post("/", reviewHandler.Create)

		r.Route("/{review_id}", func(r chi.Router) {
			r.Get("/", reviewHandler.Get)
			r.Patch("/", reviewHandler.Update)
			r.Delete("/", reviewHandler.Delete)

			r.Route("/comments", func(r chi.Router) {
				r.Get("/", commentHandler.List)
				r.Post("/", commentHandler.Create)
				r.Get("/{comment_id}", commentHandler.Get)
				r.Patch("/{comment_id}", commentHandler.Update)
				r.Delete("/{comment_id}", commentHandler.Delete)
			})
		})
	})
}
