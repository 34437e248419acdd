package usecase

import (
	"context"

	"review-api/internal/data/entity"
	"review-api/internal/data/repository"
	"review-api/internal/dto/request"
	"review-api/internal/dto/response"
	"review-api/internal/policy"
	"review-api/pkg/apperr"
	"review-api/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserService interface {
	// Own profile
	GetMe(ctx context.Context, actor policy.Actor) (*response.UserResponse, error)
	UpdateMe(ctx context.Context, actor policy.Actor, req *request.UpdateUserRequest) (*response.UserResponse, error)

	// Admin user management, addressed by username
	List(ctx context.Context, actor policy.Actor, req request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error)
	Create(ctx context.Context, actor policy.Actor, req *request.CreateUserRequest) (*response.UserResponse, error)
	Get(ctx context.Context, actor policy.Actor, username string) (*response.UserResponse, error)
	Update(ctx context.Context, actor policy.Actor, username string, req *request.UpdateUserRequest) (*response.UserResponse, error)
	Delete(ctx context.Context, actor policy.Actor, username string) error
}

type userService struct {
	userRepo repository.UserRepository
	log      *zap.Logger
	clock    clock
}

func NewUserService(userRepo repository.UserRepository, log *zap.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		log:      log.With(zap.String("service", "user")),
	}
}

func (us *userService) GetMe(ctx context.Context, actor policy.Actor) (*response.UserResponse, error) {
	const op = "user.me"

	if err := authorize(op, actor, policy.Read, policy.Resource{Kind: policy.Profile, OwnerID: actor.UserID}); err != nil {
		return nil, err
	}

	user, err := us.load(ctx, op, actor.UserID)
	if err != nil {
		return nil, err
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

// UpdateMe applies a partial self-update. A submitted role is dropped: only
// the admin endpoints change roles.
func (us *userService) UpdateMe(ctx context.Context, actor policy.Actor, req *request.UpdateUserRequest) (*response.UserResponse, error) {
	const op = "user.update_me"

	if err := authorize(op, actor, policy.Update, policy.Resource{Kind: policy.Profile, OwnerID: actor.UserID}); err != nil {
		return nil, err
	}

	if err := utils.Validate(op, req); err != nil {
		return nil, err
	}

	user, err := us.load(ctx, op, actor.UserID)
	if err != nil {
		return nil, err
	}

	if req.Role != nil && entity.UserRole(*req.Role) != user.Role {
		us.log.Debug("Ignoring role in self update",
			zap.String("user_id", user.ID.String()),
			zap.String("requested", *req.Role),
		)
	}
	us.apply(user, req, false)

	if err := us.userRepo.Update(ctx, user); err != nil {
		logFailure(us.log, "Failed to update profile", err, zap.String("user_id", user.ID.String()))
		return nil, wrapInternal(op, err)
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (us *userService) List(ctx context.Context, actor policy.Actor, req request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error) {
	const op = "user.list"

	if err := authorize(op, actor, policy.Read, policy.Resource{Kind: policy.Account}); err != nil {
		return nil, err
	}

	users, err := us.userRepo.FindAll(ctx, req.Search, req.Limit(), req.Offset())
	if err != nil {
		return nil, apperr.Internal(op, err)
	}

	total, err := us.userRepo.CountAll(ctx, req.Search)
	if err != nil {
		return nil, apperr.Internal(op, err)
	}

	return response.MapPage(users, response.UserToResponse, req.Page, req.Limit(), total), nil
}

func (us *userService) Create(ctx context.Context, actor policy.Actor, req *request.CreateUserRequest) (*response.UserResponse, error) {
	const op = "user.create"

	if err := authorize(op, actor, policy.Create, policy.Resource{Kind: policy.Account}); err != nil {
		return nil, err
	}

	if err := utils.Validate(op, req); err != nil {
		return nil, err
	}

	role := entity.RoleUser
	if req.Role != "" {
		role = entity.UserRole(req.Role)
	}

	now := us.clock.now()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Bio:       req.Bio,
		Role:      role,
	}

	if err := us.userRepo.Create(ctx, user); err != nil {
		logFailure(us.log, "Failed to create user", err, zap.String("username", req.Username))
		return nil, wrapInternal(op, err)
	}

	us.log.Info("User created by admin",
		zap.String("user_id", user.ID.String()),
		zap.String("admin_id", actor.UserID.String()),
	)

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (us *userService) Get(ctx context.Context, actor policy.Actor, username string) (*response.UserResponse, error) {
	const op = "user.get"

	if err := authorize(op, actor, policy.Read, policy.Resource{Kind: policy.Account}); err != nil {
		return nil, err
	}

	user, err := us.loadByUsername(ctx, op, username)
	if err != nil {
		return nil, err
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (us *userService) Update(ctx context.Context, actor policy.Actor, username string, req *request.UpdateUserRequest) (*response.UserResponse, error) {
	const op = "user.update"

	if err := authorize(op, actor, policy.Update, policy.Resource{Kind: policy.Account}); err != nil {
		return nil, err
	}

	if err := utils.Validate(op, req); err != nil {
		return nil, err
	}

	user, err := us.loadByUsername(ctx, op, username)
	if err != nil {
		return nil, err
	}

	us.apply(user, req, true)

	if err := us.userRepo.Update(ctx, user); err != nil {
		logFailure(us.log, "Failed to update user", err, zap.String("user_id", user.ID.String()))
		return nil, wrapInternal(op, err)
	}

	us.log.Info("User updated by admin",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)),
	)

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (us *userService) Delete(ctx context.Context, actor policy.Actor, username string) error {
	const op = "user.delete"

	if err := authorize(op, actor, policy.Delete, policy.Resource{Kind: policy.Account}); err != nil {
		return err
	}

	user, err := us.loadByUsername(ctx, op, username)
	if err != nil {
		return err
	}

	if err := us.userRepo.Delete(ctx, user.ID); err != nil {
		return wrapInternal(op, err)
	}

	return nil
}

func (us *userService) apply(user *entity.User, req *request.UpdateUserRequest, allowRole bool) {
	if req.Username != nil {
		user.Username = *req.Username
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if allowRole && req.Role != nil {
		user.Role = entity.UserRole(*req.Role)
	}
	user.UpdatedAt = us.clock.now()
}

func (us *userService) load(ctx context.Context, op string, id uuid.UUID) (*entity.User, error) {
	user, err := us.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Internal(op, err)
	}
	if user == nil {
		return nil, apperr.NotFound(op, "user not found")
	}
	return user, nil
}

func (us *userService) loadByUsername(ctx context.Context, op, username string) (*entity.User, error) {
	user, err := us.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, apperr.Internal(op, err)
	}
	if user == nil {
		return nil, apperr.NotFound(op, "user not found")
	}
	return user, nil
}
