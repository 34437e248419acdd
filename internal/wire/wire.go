// internal/wire/wire.go
package wire

import (
	"net/http"

	"review-api/internal/adaptor"
	"review-api/internal/data/repository"
	"review-api/internal/usecase"
	"review-api/pkg/mail"
	"review-api/pkg/middleware"
	"review-api/pkg/token"
	"review-api/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// App holds the assembled HTTP stack.
type App struct {
	Router *chi.Mux
}

// Wiring builds services, handlers and routes on top of the repositories.
func Wiring(repo *repository.Repository, config *utils.Config, logger *zap.Logger) (*App, error) {
	mailer, err := mail.New(config.Email, logger)
	if err != nil {
		return nil, err
	}

	tokens := token.NewJWTIssuer(config.JWT.Secret, config.JWT.AccessTTL, config.JWT.RefreshTTL)
	codes := token.NewConfirmationCodes(config.Confirmation.Secret, config.Confirmation.TTL)

	service := usecase.NewService(repo, config, tokens, codes, mailer, logger)
	handler := adaptor.NewHandler(service, config, logger)

	return &App{
		Router: setupRouter(handler, tokens, repo, logger),
	}, nil
}

func setupRouter(
	handler *adaptor.Handler,
	tokens middleware.AccessTokenParser,
	repo *repository.Repository,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(chimw.StripSlashes)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Route("/api/v1", func(r chi.Router) {
		// Anonymous requests pass; each service decides what they may do.
		r.Use(middleware.Authenticate(tokens, repo.User, logger))

		wireAuth(r, handler.Auth)
		wireUser(r, handler.User)
		wireCatalog(r, handler)
	})

	return r
}
