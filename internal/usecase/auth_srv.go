package usecase

import (
	"context"
	"fmt"
	"time"

	"review-api/internal/data/entity"
	"review-api/internal/data/repository"
	"review-api/internal/dto/request"
	"review-api/internal/dto/response"
	"review-api/pkg/apperr"
	"review-api/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService interface {
	Signup(ctx context.Context, req *request.SignupRequest) (*response.SignupResponse, error)
	ExchangeToken(ctx context.Context, req *request.TokenRequest) (*response.TokenResponse, error)
}

type authService struct {
	users   repository.UserRepository
	tokens  TokenIssuer
	codes   CodeGenerator
	mailer  Mailer
	appName string
	log     *zap.Logger
	clock   clock
}

func NewAuthService(
	users repository.UserRepository,
	tokens TokenIssuer,
	codes CodeGenerator,
	mailer Mailer,
	config *utils.Config,
	log *zap.Logger,
) AuthService {
	return &authService{
		users:   users,
		tokens:  tokens,
		codes:   codes,
		mailer:  mailer,
		appName: config.App.Name,
		log:     log.With(zap.String("service", "auth")),
	}
}

// Signup is get-or-create on the (username, email) pair. The user row is
// written before the mail goes out and is kept if delivery fails, so a retry
// simply re-issues a code.
func (s *authService) Signup(ctx context.Context, req *request.SignupRequest) (*response.SignupResponse, error) {
	const op = "auth.signup"

	// 1. Validasi input
	if err := utils.Validate(op, req); err != nil {
		s.log.Warn("Signup validation failed", zap.Any("errors", apperr.FieldsOf(err)))
		return nil, err
	}

	// 2. Get or create
	user, err := s.getOrCreate(ctx, op, req.Username, req.Email)
	if err != nil {
		logFailure(s.log, "Signup failed", err, zap.String("username", req.Username))
		return nil, err
	}

	// 3. Issue code
	code, err := s.codes.Make(user)
	if err != nil {
		s.log.Error("Failed to make confirmation code", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, apperr.Internal(op, err)
	}

	// 4. Deliver
	subject := fmt.Sprintf("%s confirmation code", s.appName)
	body := fmt.Sprintf("Hello %s,\n\nyour confirmation code is: %s\n", user.Username, code)
	if err := s.mailer.Send(ctx, user.Email, subject, body); err != nil {
		s.log.Error("Failed to deliver confirmation code",
			zap.Error(err),
			zap.String("user_id", user.ID.String()),
		)
		return nil, apperr.Dependency(op, "failed to deliver confirmation code", err)
	}

	s.log.Info("Confirmation code issued", zap.String("user_id", user.ID.String()))

	resp := response.SignupToResponse(user)
	return &resp, nil
}

func (s *authService) getOrCreate(ctx context.Context, op, username, email string) (*entity.User, error) {
	user, err := s.matchPair(ctx, op, username, email)
	if err != nil || user != nil {
		return user, err
	}

	now := s.clock.now()
	user = &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Username: username,
		Email:    email,
		Role:     entity.RoleUser,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if !apperr.Is(err, apperr.KindConflict) {
			return nil, wrapInternal(op, err)
		}
		// Lost a race with a concurrent signup; the pair may now exist.
		existing, lookupErr := s.matchPair(ctx, op, username, email)
		if lookupErr != nil {
			return nil, lookupErr
		}
		if existing == nil {
			return nil, err
		}
		return existing, nil
	}

	s.log.Info("User signed up", zap.String("user_id", user.ID.String()))
	return user, nil
}

// matchPair returns the user owning exactly this pair, nil if neither half is
// taken, and a conflict if either half belongs to someone else.
func (s *authService) matchPair(ctx context.Context, op, username, email string) (*entity.User, error) {
	byName, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, apperr.Internal(op, err)
	}
	if byName != nil {
		if byName.Email != email {
			return nil, apperr.Conflict(op, "username already registered with a different email")
		}
		return byName, nil
	}

	byEmail, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, apperr.Internal(op, err)
	}
	if byEmail != nil {
		return nil, apperr.Conflict(op, "email already registered with a different username")
	}

	return nil, nil
}

// ExchangeToken trades a confirmation code for tokens. Success stamps
// last_login, which invalidates every code issued before it.
func (s *authService) ExchangeToken(ctx context.Context, req *request.TokenRequest) (*response.TokenResponse, error) {
	const op = "auth.token"

	if err := utils.Validate(op, req); err != nil {
		return nil, err
	}

	user, err := s.users.FindByUsername(ctx, req.Username)
	if err != nil {
		s.log.Error("Failed to find user", zap.Error(err), zap.String("username", req.Username))
		return nil, apperr.Internal(op, err)
	}
	if user == nil {
		s.log.Warn("Token requested for unknown user", zap.String("username", req.Username))
		return nil, apperr.NotFound(op, "user not found")
	}

	if !s.codes.Check(user, req.ConfirmationCode) {
		s.log.Warn("Invalid confirmation code", zap.String("user_id", user.ID.String()))
		return nil, apperr.Auth(op, apperr.ErrInvalidConfirmationCode)
	}

	now := s.clock.now().UTC().Truncate(time.Microsecond)
	swapped, err := s.users.UpdateLastLogin(ctx, user.ID, user.LastLogin, now)
	if err != nil {
		return nil, wrapInternal(op, err)
	}
	if !swapped {
		// Another exchange consumed the code first.
		s.log.Warn("Confirmation code already used", zap.String("user_id", user.ID.String()))
		return nil, apperr.Auth(op, apperr.ErrInvalidConfirmationCode)
	}
	user.LastLogin = &now

	pair, err := s.tokens.Issue(user)
	if err != nil {
		s.log.Error("Failed to issue tokens", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, apperr.Internal(op, err)
	}

	s.log.Info("Tokens issued", zap.String("user_id", user.ID.String()))

	return &response.TokenResponse{Refresh: pair.Refresh, Access: pair.Access}, nil
}
