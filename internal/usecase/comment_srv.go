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

type CommentService interface {
	List(ctx context.Context, titleID, reviewID uuid.UUID, req request.PaginatedRequest) (*response.PaginatedResponse[response.CommentResponse], error)
	Get(ctx context.Context, titleID, reviewID, commentID uuid.UUID) (*response.CommentResponse, error)
	Create(ctx context.Context, actor policy.Actor, titleID, reviewID uuid.UUID, req *request.CommentRequest) (*response.CommentResponse, error)
	Update(ctx context.Context, actor policy.Actor, titleID, reviewID, commentID uuid.UUID, req *request.CommentRequest) (*response.CommentResponse, error)
	Delete(ctx context.Context, actor policy.Actor, titleID, reviewID, commentID uuid.UUID) error
}

type commentService struct {
	comments repository.CommentRepository
	reviews  repository.ReviewRepository
	log      *zap.Logger
	clock    clock
}

func NewCommentService(comments repository.CommentRepository, reviews repository.ReviewRepository, log *zap.Logger) CommentService {
	return &commentService{
		comments: comments,
		reviews:  reviews,
		log:      log.With(zap.String("service", "comment")),
	}
}

func (s *commentService) List(ctx context.Context, titleID, reviewID uuid.UUID, req request.PaginatedRequest) (*response.PaginatedResponse[response.CommentResponse], error) {
	const op = "comment.list"

	if err := s.requireReview(ctx, op, titleID, reviewID); err != nil {
		return nil, err
	}

	comments, err := s.comments.FindByReviewID(ctx, reviewID, req.Limit(), req.Offset())
	if err != nil {
		return nil, apperr.Internal(op, err)
	}

	total, err := s.comments.CountByReviewID(ctx, reviewID)
	if err != nil {
		return nil, apperr.Internal(op, err)
	}

	return response.MapPage(comments, response.CommentToResponse, req.Page, req.Limit(), total), nil
}

func (s *commentService) Get(ctx context.Context, titleID, reviewID, commentID uuid.UUID) (*response.CommentResponse, error) {
	comment, err := s.load(ctx, "comment.get", titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}

	resp := response.CommentToResponse(comment)
	return &resp, nil
}

func (s *commentService) Create(ctx context.Context, actor policy.Actor, titleID, reviewID uuid.UUID, req *request.CommentRequest) (*response.CommentResponse, error) {
	const op = "comment.create"

	if err := authorize(op, actor, policy.Create, policy.Resource{Kind: policy.Content}); err != nil {
		return nil, err
	}

	if err := utils.Validate(op, req); err != nil {
		return nil, err
	}

	if err := s.requireReview(ctx, op, titleID, reviewID); err != nil {
		return nil, err
	}

	comment := &entity.Comment{
		ID: uuid.New(),
		Post: entity.Post{
			Text:           req.Text,
			AuthorID:       actor.UserID,
			AuthorUsername: actor.Username,
			PubDate:        s.clock.now(),
		},
		ReviewID: reviewID,
	}

	if err := s.comments.Create(ctx, comment); err != nil {
		logFailure(s.log, "Failed to create comment", err, zap.String("review_id", reviewID.String()))
		return nil, wrapInternal(op, err)
	}

	resp := response.CommentToResponse(comment)
	return &resp, nil
}

func (s *commentService) Update(ctx context.Context, actor policy.Actor, titleID, reviewID, commentID uuid.UUID, req *request.CommentRequest) (*response.CommentResponse, error) {
	const op = "comment.update"

	comment, err := s.load(ctx, op, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}

	if err := authorize(op, actor, policy.Update, policy.Resource{Kind: policy.Content, OwnerID: comment.AuthorID}); err != nil {
		return nil, err
	}

	if err := utils.Validate(op, req); err != nil {
		return nil, err
	}

	comment.Text = req.Text
	if err := s.comments.Update(ctx, comment); err != nil {
		return nil, wrapInternal(op, err)
	}

	resp := response.CommentToResponse(comment)
	return &resp, nil
}

func (s *commentService) Delete(ctx context.Context, actor policy.Actor, titleID, reviewID, commentID uuid.UUID) error {
	const op = "comment.delete"

	comment, err := s.load(ctx, op, titleID, reviewID, commentID)
	if err != nil {
		return err
	}

	if err := authorize(op, actor, policy.Delete, policy.Resource{Kind: policy.Content, OwnerID: comment.AuthorID}); err != nil {
		return err
	}

	if err := s.comments.Delete(ctx, commentID); err != nil {
		return wrapInternal(op, err)
	}

	return nil
}

// requireReview checks the review exists under the given title.
func (s *commentService) requireReview(ctx context.Context, op string, titleID, reviewID uuid.UUID) error {
	review, err := s.reviews.FindByID(ctx, titleID, reviewID)
	if err != nil {
		return apperr.Internal(op, err)
	}
	if review == nil {
		return apperr.NotFound(op, "review not found")
	}
	return nil
}

func (s *commentService) load(ctx context.Context, op string, titleID, reviewID, commentID uuid.UUID) (*entity.Comment, error) {
	if err := s.requireReview(ctx, op, titleID, reviewID); err != nil {
		return nil, err
	}

	comment, err := s.comments.FindByID(ctx, reviewID, commentID)
	if err != nil {
		return nil, apperr.Internal(op, err)
	}
	if comment == nil {
		return nil, apperr.NotFound(op, "comment not found")
	}
	return comment, nil
}
