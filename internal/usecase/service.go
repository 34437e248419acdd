package usecase

import (
	"context"
	"time"

	"review-api/internal/data/entity"
	"review-api/internal/data/repository"
	"review-api/internal/policy"
	"review-api/pkg/apperr"
	"review-api/pkg/token"
	"review-api/pkg/utils"

	"go.uber.org/zap"
)

// TokenIssuer turns a confirmed user into a refresh/access pair.
type TokenIssuer interface {
	Issue(user *entity.User) (*token.Pair, error)
}

// CodeGenerator makes and checks confirmation codes bound to a user's state.
type CodeGenerator interface {
	Make(user *entity.User) (string, error)
	Check(user *entity.User, code string) bool
}

type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

type Service struct {
	Auth     AuthService
	User     UserService
	Category TaxonService
	Genre    TaxonService
	Title    TitleService
	Review   ReviewService
	Comment  CommentService
}

func NewService(
	repo *repository.Repository,
	config *utils.Config,
	tokens TokenIssuer,
	codes CodeGenerator,
	mailer Mailer,
	log *zap.Logger,
) *Service {
	return &Service{
		Auth:     NewAuthService(repo.User, tokens, codes, mailer, config, log),
		User:     NewUserService(repo.User, log),
		Category: NewCategoryService(repo.Category, log),
		Genre:    NewGenreService(repo.Genre, log),
		Title:    NewTitleService(repo.Title, repo.Category, repo.Genre, repo.Review, log),
		Review:   NewReviewService(repo.Review, repo.Title, log),
		Comment:  NewCommentService(repo.Comment, repo.Review, log),
	}
}

// authorize turns a policy denial into an auth error: anonymous callers are
// told to authenticate, everyone else is refused.
func authorize(op string, actor policy.Actor, action policy.Action, res policy.Resource) error {
	if policy.Allow(actor, action, res) {
		return nil
	}
	if !actor.Authenticated() {
		return apperr.Auth(op, apperr.ErrAuthenticationRequired)
	}
	return apperr.Auth(op, apperr.ErrPermissionDenied)
}

// logFailure logs expected failures at warn and the rest at error.
func logFailure(log *zap.Logger, msg string, err error, fields ...zap.Field) {
	fields = append(fields, zap.Error(err))
	switch apperr.KindOf(err) {
	case apperr.KindInternal, apperr.KindDependency:
		log.Error(msg, fields...)
	default:
		log.Warn(msg, fields...)
	}
}

func wrapInternal(op string, err error) error {
	if apperr.KindOf(err) != apperr.KindInternal {
		return err
	}
	return apperr.Internal(op, err)
}

type clock func() time.Time

func (c clock) now() time.Time {
	if c == nil {
		return time.Now()
	}
	return c()
}
