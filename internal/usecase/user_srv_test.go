package usecase

import (
	"context"
	"testing"

	"review-api/internal/data/entity"
	"review-api/internal/dto/request"
	"review-api/internal/policy"
	"review-api/pkg/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func strPtr(s string) *string { return &s }

func TestUpdateMe_IgnoresRole(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewUserService(users, zap.NewNop())
	ctx := context.Background()

	user := existingUser("reader", "reader@example.com")
	actor := policy.ActorFromUser(user)

	users.On("FindByID", ctx, user.ID).Return(user, nil)
	users.On("Update", ctx, mock.AnythingOfType("*entity.User")).Return(nil)

	resp, err := svc.UpdateMe(ctx, actor, &request.UpdateUserRequest{
		Bio:  strPtr("film nerd"),
		Role: strPtr("admin"),
	})

	require.NoError(t, err)
	assert.Equal(t, entity.RoleUser, resp.Role)
	assert.Equal(t, "film nerd", resp.Bio)
	users.AssertCalled(t, "Update", ctx, mock.MatchedBy(func(u *entity.User) bool {
		return u.Role == entity.RoleUser
	}))
}

func TestGetMe_Anonymous(t *testing.T) {
	svc := NewUserService(new(MockUserRepository), zap.NewNop())

	_, err := svc.GetMe(context.Background(), policy.Actor{})

	assert.ErrorIs(t, err, apperr.ErrAuthenticationRequired)
}

func TestAdminUpdate_ChangesRole(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewUserService(users, zap.NewNop())
	ctx := context.Background()

	target := existingUser("reader", "reader@example.com")
	admin := actorWith(entity.RoleAdmin)

	users.On("FindByUsername", ctx, "reader").Return(target, nil)
	users.On("Update", ctx, target).Return(nil)

	resp, err := svc.Update(ctx, admin, "reader", &request.UpdateUserRequest{Role: strPtr("moderator")})

	require.NoError(t, err)
	assert.Equal(t, entity.RoleModerator, resp.Role)
}

func TestAdminUpdate_InvalidRole(t *testing.T) {
	svc := NewUserService(new(MockUserRepository), zap.NewNop())

	_, err := svc.Update(context.Background(), actorWith(entity.RoleAdmin), "reader", &request.UpdateUserRequest{Role: strPtr("owner")})

	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	assert.Equal(t, "Must be one of: user, moderator, admin", apperr.FieldsOf(err)["role"])
}

func TestUserManagement_RequiresAdmin(t *testing.T) {
	svc := NewUserService(new(MockUserRepository), zap.NewNop())
	ctx := context.Background()

	for _, role := range []entity.UserRole{entity.RoleUser, entity.RoleModerator} {
		actor := actorWith(role)

		_, err := svc.List(ctx, actor, request.NewPaginatedRequest(1, 10, 10))
		assert.ErrorIs(t, err, apperr.ErrPermissionDenied)

		_, err = svc.Get(ctx, actor, "reader")
		assert.ErrorIs(t, err, apperr.ErrPermissionDenied)

		err = svc.Delete(ctx, actor, "reader")
		assert.ErrorIs(t, err, apperr.ErrPermissionDenied)
	}
}

func TestAdminCreate(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewUserService(users, zap.NewNop())
	ctx := context.Background()

	users.On("Create", ctx, mock.MatchedBy(func(u *entity.User) bool {
		return u.Username == "newbie" && u.Role == entity.RoleUser
	})).Return(nil).Once()
	users.On("Create", ctx, mock.AnythingOfType("*entity.User")).
		Return(apperr.Conflict("create user", "username already taken"))

	resp, err := svc.Create(ctx, actorWith(entity.RoleAdmin), &request.CreateUserRequest{Username: "newbie", Email: "n@example.com"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleUser, resp.Role)

	_, err = svc.Create(ctx, actorWith(entity.RoleAdmin), &request.CreateUserRequest{Username: "newbie", Email: "n@example.com"})
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	_, err = svc.Create(ctx, actorWith(entity.RoleAdmin), &request.CreateUserRequest{Username: "me", Email: "m@example.com"})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestAdminList(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewUserService(users, zap.NewNop())
	ctx := context.Background()

	req := request.NewPaginatedRequest(2, 1, 10)
	req.Search = "rea"

	users.On("FindAll", ctx, "rea", 1, 1).Return([]*entity.User{existingUser("reader", "r@example.com")}, nil)
	users.On("CountAll", ctx, "rea").Return(int64(2), nil)

	page, err := svc.List(ctx, actorWith(entity.RoleAdmin), req)

	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "reader", page.Data[0].Username)
	assert.Equal(t, 2, page.Pagination.TotalPages)
}

func TestAdminDelete_UnknownUser(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewUserService(users, zap.NewNop())
	ctx := context.Background()

	users.On("FindByUsername", ctx, "ghost").Return(nil, nil)

	err := svc.Delete(ctx, actorWith(entity.RoleAdmin), "ghost")

	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	users.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
