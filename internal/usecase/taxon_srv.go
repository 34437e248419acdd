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

// TaxonService manages categories or genres; both behave the same.
type TaxonService interface {
	List(ctx context.Context, req request.PaginatedRequest) (*response.PaginatedResponse[response.TaxonResponse], error)
	Create(ctx context.Context, actor policy.Actor, req *request.TaxonRequest) (*response.TaxonResponse, error)
	Rename(ctx context.Context, actor policy.Actor, slug string, req *request.RenameTaxonRequest) (*response.TaxonResponse, error)
	Delete(ctx context.Context, actor policy.Actor, slug string) error
}

type taxonStore[T any] interface {
	Create(ctx context.Context, item *T) error
	FindBySlug(ctx context.Context, slug string) (*T, error)
	FindAll(ctx context.Context, search string, limit, offset int) ([]*T, error)
	CountAll(ctx context.Context, search string) (int64, error)
	Rename(ctx context.Context, slug, name string) error
	Delete(ctx context.Context, slug string) error
}

type taxonService[T any] struct {
	repo       taxonStore[T]
	noun       string
	build      func(entity.Base, entity.Taxon) *T
	toResponse func(*T) response.TaxonResponse
	log        *zap.Logger
	clock      clock
}

func NewCategoryService(repo repository.CategoryRepository, log *zap.Logger) TaxonService {
	return &taxonService[entity.Category]{
		repo: repo,
		noun: "category",
		build: func(b entity.Base, t entity.Taxon) *entity.Category {
			return &entity.Category{Base: b, Taxon: t}
		},
		toResponse: response.CategoryToResponse,
		log:        log.With(zap.String("service", "category")),
	}
}

func NewGenreService(repo repository.GenreRepository, log *zap.Logger) TaxonService {
	return &taxonService[entity.Genre]{
		repo: repo,
		noun: "genre",
		build: func(b entity.Base, t entity.Taxon) *entity.Genre {
			return &entity.Genre{Base: b, Taxon: t}
		},
		toResponse: response.GenreToResponse,
		log:        log.With(zap.String("service", "genre")),
	}
}

func (s *taxonService[T]) List(ctx context.Context, req request.PaginatedRequest) (*response.PaginatedResponse[response.TaxonResponse], error) {
	op := s.noun + ".list"

	items, err := s.repo.FindAll(ctx, req.Search, req.Limit(), req.Offset())
	if err != nil {
		return nil, apperr.Internal(op, err)
	}

	total, err := s.repo.CountAll(ctx, req.Search)
	if err != nil {
		return nil, apperr.Internal(op, err)
	}

	return response.MapPage(items, s.toResponse, req.Page, req.Limit(), total), nil
}

func (s *taxonService[T]) Create(ctx context.Context, actor policy.Actor, req *request.TaxonRequest) (*response.TaxonResponse, error) {
	op := s.noun + ".create"

	if err := authorize(op, actor, policy.Create, policy.Resource{Kind: policy.Catalog}); err != nil {
		return nil, err
	}

	if err := utils.Validate(op, req); err != nil {
		return nil, err
	}

	now := s.clock.now()
	item := s.build(
		entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		entity.Taxon{Name: req.Name, Slug: req.Slug},
	)

	if err := s.repo.Create(ctx, item); err != nil {
		logFailure(s.log, "Failed to create "+s.noun, err, zap.String("slug", req.Slug))
		return nil, wrapInternal(op, err)
	}

	s.log.Info(s.noun+" created", zap.String("slug", req.Slug))

	resp := s.toResponse(item)
	return &resp, nil
}

func (s *taxonService[T]) Rename(ctx context.Context, actor policy.Actor, slug string, req *request.RenameTaxonRequest) (*response.TaxonResponse, error) {
	op := s.noun + ".rename"

	if err := authorize(op, actor, policy.Update, policy.Resource{Kind: policy.Catalog}); err != nil {
		return nil, err
	}

	if err := utils.Validate(op, req); err != nil {
		return nil, err
	}

	if err := s.repo.Rename(ctx, slug, req.Name); err != nil {
		return nil, wrapInternal(op, err)
	}

	resp := response.TaxonResponse{Name: req.Name, Slug: slug}
	return &resp, nil
}

func (s *taxonService[T]) Delete(ctx context.Context, actor policy.Actor, slug string) error {
	op := s.noun + ".delete"

	if err := authorize(op, actor, policy.Delete, policy.Resource{Kind: policy.Catalog}); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, slug); err != nil {
		return wrapInternal(op, err)
	}

	return nil
}
