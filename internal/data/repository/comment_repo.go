package repository

import (
	"context"
	"errors"
	"fmt"

	"review-api/internal/data/entity"
	"review-api/pkg/apperr"
	"review-api/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *entity.Comment) error
	FindByID(ctx context.Context, reviewID, id uuid.UUID) (*entity.Comment, error)
	FindByReviewID(ctx context.Context, reviewID uuid.UUID, limit, offset int) ([]*entity.Comment, error)
	CountByReviewID(ctx context.Context, reviewID uuid.UUID) (int64, error)
	Update(ctx context.Context, comment *entity.Comment) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type commentRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCommentRepository(db database.PgxIface, log *zap.Logger) CommentRepository {
	return &commentRepository{
		db:  db,
		log: log.With(zap.String("repository", "comment")),
	}
}

const commentSelect = `
		SELECT c.id, c.review_id, c.author_id, u.username, c.text, c.pub_date
		FROM comments c
		INNER JOIN users u ON u.id = c.author_id
`

func scanComment(row pgx.Row) (*entity.Comment, error) {
	var comment entity.Comment
	err := row.Scan(
		&comment.ID,
		&comment.ReviewID,
		&comment.AuthorID,
		&comment.AuthorUsername,
		&comment.Text,
		&comment.PubDate,
	)
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) Create(ctx context.Context, comment *entity.Comment) error {
	query := `
		INSERT INTO comments (id, review_id, author_id, text, pub_date)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query,
		comment.ID,
		comment.ReviewID,
		comment.AuthorID,
		comment.Text,
		comment.PubDate,
	)
	if err != nil {
		r.log.Error("Failed to create comment",
			zap.Error(err),
			zap.String("review_id", comment.ReviewID.String()),
		)
		return translate(fmt.Sprintf("create comment for review %s", comment.ReviewID), err)
	}

	return nil
}

func (r *commentRepository) FindByID(ctx context.Context, reviewID, id uuid.UUID) (*entity.Comment, error) {
	comment, err := scanComment(r.db.QueryRow(ctx, commentSelect+` WHERE c.id = $1 AND c.review_id = $2`, id, reviewID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find comment by ID",
			zap.Error(err),
			zap.String("comment_id", id.String()),
		)
		return nil, fmt.Errorf("find comment by ID %s: %w", id, err)
	}

	return comment, nil
}

// FindByReviewID lists newest first.
func (r *commentRepository) FindByReviewID(ctx context.Context, reviewID uuid.UUID, limit, offset int) ([]*entity.Comment, error) {
	query := commentSelect + `
		WHERE c.review_id = $1
		ORDER BY c.pub_date DESC, c.id
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, reviewID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find comments by review ID",
			zap.Error(err),
			zap.String("review_id", reviewID.String()),
		)
		return nil, fmt.Errorf("find comments by review ID %s: %w", reviewID, err)
	}
	defer rows.Close()

	var comments []*entity.Comment
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			r.log.Error("Failed to scan comment row", zap.Error(err))
			return nil, fmt.Errorf("scan comment row: %w", err)
		}
		comments = append(comments, comment)
	}

	return comments, rows.Err()
}

func (r *commentRepository) CountByReviewID(ctx context.Context, reviewID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM comments WHERE review_id = $1`, reviewID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count comments", zap.Error(err))
		return 0, fmt.Errorf("count comments by review ID %s: %w", reviewID, err)
	}

	return count, nil
}

func (r *commentRepository) Update(ctx context.Context, comment *entity.Comment) error {
	result, err := r.db.Exec(ctx, `UPDATE comments SET text = $2 WHERE id = $1`, comment.ID, comment.Text)
	if err != nil {
		r.log.Error("Failed to update comment",
			zap.Error(err),
			zap.String("comment_id", comment.ID.String()),
		)
		return fmt.Errorf("update comment %s: %w", comment.ID, err)
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("update comment", "comment not found")
	}

	return nil
}

func (r *commentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete comment",
			zap.Error(err),
			zap.String("comment_id", id.String()),
		)
		return fmt.Errorf("delete comment %s: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("delete comment", "comment not found")
	}

	r.log.Info("Comment deleted", zap.String("comment_id", id.String()))
	return nil
}
