package usecase

import (
	"context"
	"fmt"

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

type TitleService interface {
	List(ctx context.Context, filter entity.TitleFilter, req request.PaginatedRequest) (*response.PaginatedResponse[response.TitleResponse], error)
	Get(ctx context.Context, id uuid.UUID) (*response.TitleResponse, error)
	Create(ctx context.Context, actor policy.Actor, req *request.CreateTitleRequest) (*response.TitleResponse, error)
	Update(ctx context.Context, actor policy.Actor, id uuid.UUID, req *request.UpdateTitleRequest) (*response.TitleResponse, error)
	Delete(ctx context.Context, actor policy.Actor, id uuid.UUID) error

	// Rating is the mean review score, nil when there are no reviews.
	Rating(ctx context.Context, id uuid.UUID) (*float64, error)
}

type titleService struct {
	titles     repository.TitleRepository
	categories repository.CategoryRepository
	genres     repository.GenreRepository
	reviews    repository.ReviewRepository
	log        *zap.Logger
	clock      clock
}

func NewTitleService(
	titles repository.TitleRepository,
	categories repository.CategoryRepository,
	genres repository.GenreRepository,
	reviews repository.ReviewRepository,
	log *zap.Logger,
) TitleService {
	return &titleService{
		titles:     titles,
		categories: categories,
		genres:     genres,
		reviews:    reviews,
		log:        log.With(zap.String("service", "title")),
	}
}

func (s *titleService) List(ctx context.Context, filter entity.TitleFilter, req request.PaginatedRequest) (*response.PaginatedResponse[response.TitleResponse], error) {
	const op = "title.list"

	titles, err := s.titles.FindAll(ctx, filter, req.Limit(), req.Offset())
	if err != nil {
		return nil, apperr.Internal(op, err)
	}

	total, err := s.titles.CountAll(ctx, filter)
	if err != nil {
		return nil, apperr.Internal(op, err)
	}

	return response.MapPage(titles, response.TitleToResponse, req.Page, req.Limit(), total), nil
}

func (s *titleService) Get(ctx context.Context, id uuid.UUID) (*response.TitleResponse, error) {
	title, err := s.load(ctx, "title.get", id)
	if err != nil {
		return nil, err
	}

	resp := response.TitleToResponse(title)
	return &resp, nil
}

func (s *titleService) Create(ctx context.Context, actor policy.Actor, req *request.CreateTitleRequest) (*response.TitleResponse, error) {
	const op = "title.create"

	if err := authorize(op, actor, policy.Create, policy.Resource{Kind: policy.Catalog}); err != nil {
		return nil, err
	}

	if err := utils.Validate(op, req); err != nil {
		return nil, err
	}
	if err := s.checkYear(op, req.Year); err != nil {
		return nil, err
	}

	now := s.clock.now()
	title := &entity.Title{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:        req.Name,
		Year:        req.Year,
		Description: req.Description,
	}

	if req.Category != nil && *req.Category != "" {
		category, err := s.resolveCategory(ctx, op, *req.Category)
		if err != nil {
			return nil, err
		}
		title.CategoryID = &category.ID
	}

	genres, err := s.resolveGenres(ctx, op, req.Genre)
	if err != nil {
		return nil, err
	}
	title.Genres = genres

	if err := s.titles.Create(ctx, title); err != nil {
		logFailure(s.log, "Failed to create title", err, zap.String("name", req.Name))
		return nil, wrapInternal(op, err)
	}

	s.log.Info("Title created", zap.String("title_id", title.ID.String()))

	return s.Get(ctx, title.ID)
}

func (s *titleService) Update(ctx context.Context, actor policy.Actor, id uuid.UUID, req *request.UpdateTitleRequest) (*response.TitleResponse, error) {
	const op = "title.update"

	if err := authorize(op, actor, policy.Update, policy.Resource{Kind: policy.Catalog}); err != nil {
		return nil, err
	}

	if err := utils.Validate(op, req); err != nil {
		return nil, err
	}

	title, err := s.load(ctx, op, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		title.Name = *req.Name
	}
	if req.Year != nil {
		if err := s.checkYear(op, *req.Year); err != nil {
			return nil, err
		}
		title.Year = *req.Year
	}
	if req.Description != nil {
		title.Description = req.Description
	}
	if req.Category != nil {
		if *req.Category == "" {
			title.CategoryID = nil
		} else {
			category, err := s.resolveCategory(ctx, op, *req.Category)
			if err != nil {
				return nil, err
			}
			title.CategoryID = &category.ID
		}
	}

	replaceGenres := req.Genre != nil
	if replaceGenres {
		genres, err := s.resolveGenres(ctx, op, req.Genre)
		if err != nil {
			return nil, err
		}
		title.Genres = genres
	}
	title.UpdatedAt = s.clock.now()

	if err := s.titles.Update(ctx, title, replaceGenres); err != nil {
		logFailure(s.log, "Failed to update title", err, zap.String("title_id", id.String()))
		return nil, wrapInternal(op, err)
	}

	return s.Get(ctx, id)
}

func (s *titleService) Delete(ctx context.Context, actor policy.Actor, id uuid.UUID) error {
	const op = "title.delete"

	if err := authorize(op, actor, policy.Delete, policy.Resource{Kind: policy.Catalog}); err != nil {
		return err
	}

	if err := s.titles.Delete(ctx, id); err != nil {
		return wrapInternal(op, err)
	}

	return nil
}

func (s *titleService) Rating(ctx context.Context, id uuid.UUID) (*float64, error) {
	const op = "title.rating"

	if _, err := s.load(ctx, op, id); err != nil {
		return nil, err
	}

	rating, err := s.reviews.AverageScore(ctx, id)
	if err != nil {
		return nil, apperr.Internal(op, err)
	}

	return rating, nil
}

func (s *titleService) load(ctx context.Context, op string, id uuid.UUID) (*entity.Title, error) {
	title, err := s.titles.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Internal(op, err)
	}
	if title == nil {
		return nil, apperr.NotFound(op, "title not found")
	}
	return title, nil
}

func (s *titleService) checkYear(op string, year int) error {
	if entity.YearInFuture(year, s.clock.now()) {
		return apperr.Validation(op, "validation failed", map[string]string{
			"year": "Year cannot be in the future",
		})
	}
	return nil
}

func (s *titleService) resolveCategory(ctx context.Context, op, slug string) (*entity.Category, error) {
	category, err := s.categories.FindBySlug(ctx, slug)
	if err != nil {
		return nil, apperr.Internal(op, err)
	}
	if category == nil {
		return nil, apperr.Validation(op, "validation failed", map[string]string{
			"category": fmt.Sprintf("Category %q does not exist", slug),
		})
	}
	return category, nil
}

func (s *titleService) resolveGenres(ctx context.Context, op string, slugs []string) ([]entity.Genre, error) {
	genres := make([]entity.Genre, 0, len(slugs))
	seen := make(map[string]bool, len(slugs))

	for _, slug := range slugs {
		if seen[slug] {
			continue
		}
		seen[slug] = true

		genre, err := s.genres.FindBySlug(ctx, slug)
		if err != nil {
			return nil, apperr.Internal(op, err)
		}
		if genre == nil {
			return nil, apperr.Validation(op, "validation failed", map[string]string{
				"genre": fmt.Sprintf("Genre %q does not exist", slug),
			})
		}
		genres = append(genres, *genre)
	}

	return genres, nil
}
