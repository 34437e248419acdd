package usecase

import (
	"context"
	"testing"
	"time"

	"review-api/internal/data/entity"
	"review-api/internal/dto/request"
	"review-api/pkg/apperr"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type titleFixture struct {
	titles     *MockTitleRepository
	categories *MockCategoryRepository
	genres     *MockGenreRepository
	svc        *titleService
}

func newTitleFixture() *titleFixture {
	f := &titleFixture{
		titles:     new(MockTitleRepository),
		categories: new(MockCategoryRepository),
		genres:     new(MockGenreRepository),
	}
	f.svc = NewTitleService(f.titles, f.categories, f.genres, newFakeReviewRepository(), zap.NewNop()).(*titleService)
	f.svc.clock = func() time.Time { return time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC) }
	return f
}

func TestTitleCreate_FutureYear(t *testing.T) {
	f := newTitleFixture()

	_, err := f.svc.Create(context.Background(), actorWith(entity.RoleAdmin), &request.CreateTitleRequest{Name: "Soon", Year: 2027})

	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	assert.Contains(t, apperr.FieldsOf(err), "year")
	f.titles.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestTitleYear_LowerBoundOnCreateAndUpdate(t *testing.T) {
	f := newTitleFixture()
	ctx := context.Background()
	admin := actorWith(entity.RoleAdmin)

	_, err := f.svc.Create(ctx, admin, &request.CreateTitleRequest{Name: "Old", Year: -5})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	assert.Contains(t, apperr.FieldsOf(err), "year")

	year := -5
	_, err = f.svc.Update(ctx, admin, uuid.New(), &request.UpdateTitleRequest{Year: &year})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	assert.Contains(t, apperr.FieldsOf(err), "year")

	f.titles.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	f.titles.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestTitleCreate_UnknownGenre(t *testing.T) {
	f := newTitleFixture()
	ctx := context.Background()

	f.genres.On("FindBySlug", ctx, "noir").Return(nil, nil)

	_, err := f.svc.Create(ctx, actorWith(entity.RoleAdmin), &request.CreateTitleRequest{
		Name:  "Chinatown",
		Year:  1974,
		Genre: []string{"noir"},
	})

	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	assert.Contains(t, apperr.FieldsOf(err), "genre")
}

func TestTitleCreate_ResolvesSlugs(t *testing.T) {
	f := newTitleFixture()
	ctx := context.Background()

	films := &entity.Category{Base: entity.Base{ID: uuid.New()}, Taxon: entity.Taxon{Name: "Films", Slug: "films"}}
	drama := &entity.Genre{Base: entity.Base{ID: uuid.New()}, Taxon: entity.Taxon{Name: "Drama", Slug: "drama"}}

	f.categories.On("FindBySlug", ctx, "films").Return(films, nil)
	f.genres.On("FindBySlug", ctx, "drama").Return(drama, nil).Once()

	f.titles.On("Create", ctx, mock.MatchedBy(func(title *entity.Title) bool {
		return title.CategoryID != nil && *title.CategoryID == films.ID && len(title.Genres) == 1
	})).Return(nil)
	f.titles.On("FindByID", ctx, mock.AnythingOfType("uuid.UUID")).Return(&entity.Title{
		Base:     entity.Base{ID: uuid.New()},
		Name:     "Ikiru",
		Year:     1952,
		Category: films,
		Genres:   []entity.Genre{*drama},
	}, nil)

	category := "films"
	resp, err := f.svc.Create(ctx, actorWith(entity.RoleAdmin), &request.CreateTitleRequest{
		Name:     "Ikiru",
		Year:     1952,
		Genre:    []string{"drama", "drama"},
		Category: &category,
	})

	require.NoError(t, err)
	assert.Equal(t, "Ikiru", resp.Name)
	assert.Nil(t, resp.Rating)
	require.NotNil(t, resp.Category)
	assert.Equal(t, "films", resp.Category.Slug)
	require.Len(t, resp.Genre, 1)
	f.genres.AssertNumberOfCalls(t, "FindBySlug", 1)
}

func TestTitleCreate_RequiresAdmin(t *testing.T) {
	f := newTitleFixture()

	_, err := f.svc.Create(context.Background(), actorWith(entity.RoleModerator), &request.CreateTitleRequest{Name: "x", Year: 2000})

	assert.ErrorIs(t, err, apperr.ErrPermissionDenied)
}

func TestTitleUpdate_ClearsCategoryKeepsGenres(t *testing.T) {
	f := newTitleFixture()
	ctx := context.Background()

	catID := uuid.New()
	title := &entity.Title{
		Base:       entity.Base{ID: uuid.New()},
		Name:       "Ran",
		Year:       1985,
		CategoryID: &catID,
		Genres:     []entity.Genre{{Taxon: entity.Taxon{Name: "Drama", Slug: "drama"}}},
	}

	f.titles.On("FindByID", ctx, title.ID).Return(title, nil)
	f.titles.On("Update", ctx, mock.MatchedBy(func(updated *entity.Title) bool {
		return updated.CategoryID == nil && len(updated.Genres) == 1
	}), false).Return(nil)

	empty := ""
	resp, err := f.svc.Update(ctx, actorWith(entity.RoleAdmin), title.ID, &request.UpdateTitleRequest{Category: &empty})

	require.NoError(t, err)
	assert.Equal(t, "Ran", resp.Name)
	f.titles.AssertExpectations(t)
}

func TestTitleUpdate_Missing(t *testing.T) {
	f := newTitleFixture()
	ctx := context.Background()
	id := uuid.New()

	f.titles.On("FindByID", ctx, id).Return(nil, nil)

	name := "New"
	_, err := f.svc.Update(ctx, actorWith(entity.RoleAdmin), id, &request.UpdateTitleRequest{Name: &name})

	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestTitleList_PassesFilter(t *testing.T) {
	f := newTitleFixture()
	ctx := context.Background()

	year := 1979
	filter := entity.TitleFilter{GenreSlug: "drama", Year: &year}
	f.titles.On("FindAll", ctx, filter, 10, 0).Return([]*entity.Title{{Name: "Stalker", Year: 1979}}, nil)
	f.titles.On("CountAll", ctx, filter).Return(int64(1), nil)

	page, err := f.svc.List(ctx, filter, request.NewPaginatedRequest(1, 10, 10))

	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "Stalker", page.Data[0].Name)
}
