package usecase

import (
	"context"
	"time"

	"review-api/internal/data/entity"
	"review-api/pkg/token"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockUserRepository mocks the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context, search string, limit, offset int) ([]*entity.User, error) {
	args := m.Called(ctx, search, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.User), args.Error(1)
}

func (m *MockUserRepository) CountAll(ctx context.Context, search string) (int64, error) {
	args := m.Called(ctx, search)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID, prev *time.Time, at time.Time) (bool, error) {
	args := m.Called(ctx, id, prev, at)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// MockTitleRepository mocks the TitleRepository interface
type MockTitleRepository struct {
	mock.Mock
}

func (m *MockTitleRepository) Create(ctx context.Context, title *entity.Title) error {
	return m.Called(ctx, title).Error(0)
}

func (m *MockTitleRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Title, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Title), args.Error(1)
}

func (m *MockTitleRepository) FindAll(ctx context.Context, filter entity.TitleFilter, limit, offset int) ([]*entity.Title, error) {
	args := m.Called(ctx, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Title), args.Error(1)
}

func (m *MockTitleRepository) CountAll(ctx context.Context, filter entity.TitleFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTitleRepository) Update(ctx context.Context, title *entity.Title, replaceGenres bool) error {
	return m.Called(ctx, title, replaceGenres).Error(0)
}

func (m *MockTitleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// MockCategoryRepository mocks the CategoryRepository interface
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *entity.Category) error {
	return m.Called(ctx, category).Error(0)
}

func (m *MockCategoryRepository) FindBySlug(ctx context.Context, slug string) (*entity.Category, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindAll(ctx context.Context, search string, limit, offset int) ([]*entity.Category, error) {
	args := m.Called(ctx, search, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Category), args.Error(1)
}

func (m *MockCategoryRepository) CountAll(ctx context.Context, search string) (int64, error) {
	args := m.Called(ctx, search)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCategoryRepository) Rename(ctx context.Context, slug, name string) error {
	return m.Called(ctx, slug, name).Error(0)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, slug string) error {
	return m.Called(ctx, slug).Error(0)
}

// MockGenreRepository mocks the GenreRepository interface
type MockGenreRepository struct {
	mock.Mock
}

func (m *MockGenreRepository) Create(ctx context.Context, genre *entity.Genre) error {
	return m.Called(ctx, genre).Error(0)
}

func (m *MockGenreRepository) FindBySlug(ctx context.Context, slug string) (*entity.Genre, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Genre), args.Error(1)
}

func (m *MockGenreRepository) FindAll(ctx context.Context, search string, limit, offset int) ([]*entity.Genre, error) {
	args := m.Called(ctx, search, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Genre), args.Error(1)
}

func (m *MockGenreRepository) CountAll(ctx context.Context, search string) (int64, error) {
	args := m.Called(ctx, search)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockGenreRepository) Rename(ctx context.Context, slug, name string) error {
	return m.Called(ctx, slug, name).Error(0)
}

func (m *MockGenreRepository) Delete(ctx context.Context, slug string) error {
	return m.Called(ctx, slug).Error(0)
}

// MockCommentRepository mocks the CommentRepository interface
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *entity.Comment) error {
	return m.Called(ctx, comment).Error(0)
}

func (m *MockCommentRepository) FindByID(ctx context.Context, reviewID, id uuid.UUID) (*entity.Comment, error) {
	args := m.Called(ctx, reviewID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Comment), args.Error(1)
}

func (m *MockCommentRepository) FindByReviewID(ctx context.Context, reviewID uuid.UUID, limit, offset int) ([]*entity.Comment, error) {
	args := m.Called(ctx, reviewID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Comment), args.Error(1)
}

func (m *MockCommentRepository) CountByReviewID(ctx context.Context, reviewID uuid.UUID) (int64, error) {
	args := m.Called(ctx, reviewID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCommentRepository) Update(ctx context.Context, comment *entity.Comment) error {
	return m.Called(ctx, comment).Error(0)
}

func (m *MockCommentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// MockTokenIssuer mocks TokenIssuer
type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) Issue(user *entity.User) (*token.Pair, error) {
	args := m.Called(user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*token.Pair), args.Error(1)
}

// MockCodeGenerator mocks CodeGenerator
type MockCodeGenerator struct {
	mock.Mock
}

func (m *MockCodeGenerator) Make(user *entity.User) (string, error) {
	args := m.Called(user)
	return args.String(0), args.Error(1)
}

func (m *MockCodeGenerator) Check(user *entity.User, code string) bool {
	return m.Called(user, code).Bool(0)
}

// MockMailer mocks Mailer
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(ctx context.Context, to, subject, body string) error {
	return m.Called(ctx, to, subject, body).Error(0)
}
