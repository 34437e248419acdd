package middleware

import (
	"context"
	"net/http"
	"strings"

	"review-api/internal/data/entity"
	"review-api/internal/policy"
	"review-api/pkg/token"
	"review-api/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AccessTokenParser validates a bearer access token.
type AccessTokenParser interface {
	ParseAccess(tokenString string) (*token.Claims, error)
}

// UserFinder loads the user a token was issued to.
type UserFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
}

// Authenticate resolves the bearer token into the request actor. Requests
// without an Authorization header pass through anonymous; a header that does
// not carry a valid access token for an existing user is rejected with 401.
// Whether the resulting actor may do anything is decided further down.
func Authenticate(tokens AccessTokenParser, users UserFinder, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}

			scheme, tokenString, ok := strings.Cut(authHeader, " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || tokenString == "" {
				utils.ResponseUnauthorized(w, "Invalid token format. Use: Bearer <token>")
				return
			}

			claims, err := tokens.ParseAccess(tokenString)
			if err != nil {
				logger.Warn("Rejected access token", zap.Error(err), zap.String("path", r.URL.Path))
				utils.ResponseUnauthorized(w, "Invalid or expired token")
				return
			}

			// Reload so role changes and deletions take effect immediately.
			user, err := users.FindByID(r.Context(), claims.UserID)
			if err != nil {
				logger.Error("Failed to load token user",
					zap.Error(err),
					zap.String("user_id", claims.UserID.String()))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}
			if user == nil {
				logger.Warn("Token user no longer exists", zap.String("user_id", claims.UserID.String()))
				utils.ResponseUnauthorized(w, "Invalid or expired token")
				return
			}

			ctx := utils.SetActor(r.Context(), policy.ActorFromUser(user))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
