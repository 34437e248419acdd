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

func TestTaxonCreate_AdminOnly(t *testing.T) {
	genres := new(MockGenreRepository)
	svc := NewGenreService(genres, zap.NewNop())
	ctx := context.Background()
	req := &request.TaxonRequest{Name: "Drama", Slug: "drama"}

	_, err := svc.Create(ctx, policy.Actor{}, req)
	assert.ErrorIs(t, err, apperr.ErrAuthenticationRequired)

	_, err = svc.Create(ctx, actorWith(entity.RoleModerator), req)
	assert.ErrorIs(t, err, apperr.ErrPermissionDenied)

	genres.On("Create", ctx, mock.MatchedBy(func(g *entity.Genre) bool {
		return g.Slug == "drama" && g.Name == "Drama"
	})).Return(nil)

	resp, err := svc.Create(ctx, actorWith(entity.RoleAdmin), req)
	require.NoError(t, err)
	assert.Equal(t, "drama", resp.Slug)
}

func TestTaxonCreate_DuplicateSlug(t *testing.T) {
	categories := new(MockCategoryRepository)
	svc := NewCategoryService(categories, zap.NewNop())
	ctx := context.Background()

	categories.On("Create", ctx, mock.AnythingOfType("*entity.Category")).
		Return(apperr.Conflict("create category", "slug already exists"))

	_, err := svc.Create(ctx, actorWith(entity.RoleAdmin), &request.TaxonRequest{Name: "Films", Slug: "films"})

	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestTaxonCreate_BadSlug(t *testing.T) {
	svc := NewCategoryService(new(MockCategoryRepository), zap.NewNop())

	_, err := svc.Create(context.Background(), actorWith(entity.RoleAdmin), &request.TaxonRequest{Name: "Films", Slug: "no spaces"})

	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	assert.Contains(t, apperr.FieldsOf(err), "slug")
}

func TestTaxonRename_KeepsSlug(t *testing.T) {
	genres := new(MockGenreRepository)
	svc := NewGenreService(genres, zap.NewNop())
	ctx := context.Background()

	genres.On("Rename", ctx, "drama", "Dramas").Return(nil)

	resp, err := svc.Rename(ctx, actorWith(entity.RoleAdmin), "drama", &request.RenameTaxonRequest{Name: "Dramas"})

	require.NoError(t, err)
	assert.Equal(t, "drama", resp.Slug)
	assert.Equal(t, "Dramas", resp.Name)
}

func TestTaxonDelete_Missing(t *testing.T) {
	genres := new(MockGenreRepository)
	svc := NewGenreService(genres, zap.NewNop())
	ctx := context.Background()

	genres.On("Delete", ctx, "nope").Return(apperr.NotFound("delete genre", "genre not found"))

	err := svc.Delete(ctx, actorWith(entity.RoleAdmin), "nope")

	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestTaxonList_Anonymous(t *testing.T) {
	categories := new(MockCategoryRepository)
	svc := NewCategoryService(categories, zap.NewNop())
	ctx := context.Background()

	films := &entity.Category{Taxon: entity.Taxon{Name: "Films", Slug: "films"}}
	books := &entity.Category{Taxon: entity.Taxon{Name: "Books", Slug: "books"}}
	categories.On("FindAll", ctx, "", 10, 0).Return([]*entity.Category{books, films}, nil)
	categories.On("CountAll", ctx, "").Return(int64(2), nil)

	page, err := svc.List(ctx, request.NewPaginatedRequest(1, 10, 10))

	require.NoError(t, err)
	require.Len(t, page.Data, 2)
	assert.Equal(t, "books", page.Data[0].Slug)
	assert.Equal(t, int64(2), page.Pagination.Total)
}
