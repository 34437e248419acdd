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

type ReviewService interface {
	List(ctx context.Context, titleID uuid.UUID, req request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error)
	Get(ctx context.Context, titleID, reviewID uuid.UUID) (*response.ReviewResponse, error)
	Create(ctx context.Context, actor policy.Actor, titleID uuid.UUID, req *request.CreateReviewRequest) (*response.ReviewResponse, error)
	Update(ctx context.Context, actor policy.Actor, titleID, reviewID uuid.UUID, req *request.UpdateReviewRequest) (*response.ReviewResponse, error)
	Delete(ctx context.Context, actor policy.Actor, titleID, reviewID uuid.UUID) error
}

type reviewService struct {
	reviews repository.ReviewRepository
	titles  repository.TitleRepository
	log     *zap.Logger
	clock   clock
}

func NewReviewService(reviews repository.ReviewRepository, titles repository.TitleRepository, log *zap.Logger) ReviewService {
	return &reviewService{
		reviews: reviews,
		titles:  titles,
		log:     log.With(zap.String("service", "review")),
	}
}

func (s *reviewService) List(ctx context.Context, titleID uuid.UUID, req request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error) {
	const op = "review.list"

	if err := s.requireTitle(ctx, op, titleID); err != nil {
		return nil, err
	}

	reviews, err := s.reviews.FindByTitleID(ctx, titleID, req.Limit(), req.Offset())
	if err != nil {
		return nil, apperr.Internal(op, err)
	}

	total, err := s.reviews.CountByTitleID(ctx, titleID)
	if err != nil {
		return nil, apperr.Internal(op, err)
	}

	return response.MapPage(reviews, response.ReviewToResponse, req.Page, req.Limit(), total), nil
}

func (s *reviewService) Get(ctx context.Context, titleID, reviewID uuid.UUID) (*response.ReviewResponse, error) {
	review, err := s.load(ctx, "review.get", titleID, reviewID)
	if err != nil {
		return nil, err
	}

	resp := response.ReviewToResponse(review)
	return &resp, nil
}

// Create inserts without a prior existence check; the (author, title)
// unique constraint reports a second review as a conflict.
func (s *reviewService) Create(ctx context.Context, actor policy.Actor, titleID uuid.UUID, req *request.CreateReviewRequest) (*response.ReviewResponse, error) {
	const op = "review.create"

	if err := authorize(op, actor, policy.Create, policy.Resource{Kind: policy.Content}); err != nil {
		return nil, err
	}

	if err := utils.Validate(op, req); err != nil {
		s.log.Warn("Create review validation failed", zap.Any("errors", apperr.FieldsOf(err)))
		return nil, err
	}

	if err := s.requireTitle(ctx, op, titleID); err != nil {
		return nil, err
	}

	review := &entity.Review{
		ID: uuid.New(),
		Post: entity.Post{
			Text:           req.Text,
			AuthorID:       actor.UserID,
			AuthorUsername: actor.Username,
			PubDate:        s.clock.now(),
		},
		TitleID: titleID,
		Score:   req.Score,
	}

	if err := s.reviews.Create(ctx, review); err != nil {
		logFailure(s.log, "Failed to create review", err,
			zap.String("title_id", titleID.String()),
			zap.String("author_id", actor.UserID.String()),
		)
		return nil, wrapInternal(op, err)
	}

	s.log.Info("Review created",
		zap.String("review_id", review.ID.String()),
		zap.String("title_id", titleID.String()),
	)

	resp := response.ReviewToResponse(review)
	return &resp, nil
}

func (s *reviewService) Update(ctx context.Context, actor policy.Actor, titleID, reviewID uuid.UUID, req *request.UpdateReviewRequest) (*response.ReviewResponse, error) {
	const op = "review.update"

	review, err := s.load(ctx, op, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	if err := authorize(op, actor, policy.Update, policy.Resource{Kind: policy.Content, OwnerID: review.AuthorID}); err != nil {
		s.log.Warn("Review update denied",
			zap.String("review_id", reviewID.String()),
			zap.String("actor_id", actor.UserID.String()),
		)
		return nil, err
	}

	if err := utils.Validate(op, req); err != nil {
		return nil, err
	}

	if req.Text != nil {
		review.Text = *req.Text
	}
	if req.Score != nil {
		review.Score = *req.Score
	}

	if err := s.reviews.Update(ctx, review); err != nil {
		logFailure(s.log, "Failed to update review", err, zap.String("review_id", reviewID.String()))
		return nil, wrapInternal(op, err)
	}

	resp := response.ReviewToResponse(review)
	return &resp, nil
}

func (s *reviewService) Delete(ctx context.Context, actor policy.Actor, titleID, reviewID uuid.UUID) error {
	const op = "review.delete"

	review, err := s.load(ctx, op, titleID, reviewID)
	if err != nil {
		return err
	}

	if err := authorize(op, actor, policy.Delete, policy.Resource{Kind: policy.Content, OwnerID: review.AuthorID}); err != nil {
		return err
	}

	if err := s.reviews.Delete(ctx, reviewID); err != nil {
		return wrapInternal(op, err)
	}

	return nil
}

func (s *reviewService) requireTitle(ctx context.Context, op string, titleID uuid.UUID) error {
	title, err := s.titles.FindByID(ctx, titleID)
	if err != nil {
		return apperr.Internal(op, err)
	}
	if title == nil {
		return apperr.NotFound(op, "title not found")
	}
	return nil
}

func (s *reviewService) load(ctx context.Context, op string, titleID, reviewID uuid.UUID) (*entity.Review, error) {
	review, err := s.reviews.FindByID(ctx, titleID, reviewID)
	if err != nil {
		return nil, apperr.Internal(op, err)
	}
	if review == nil {
		return nil, apperr.NotFound(op, "review not found")
	}
	return review, nil
}
