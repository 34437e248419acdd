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

type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	FindByID(ctx context.Context, titleID, id uuid.UUID) (*entity.Review, error)
	FindByTitleID(ctx context.Context, titleID uuid.UUID, limit, offset int) ([]*entity.Review, error)
	CountByTitleID(ctx context.Context, titleID uuid.UUID) (int64, error)
	Update(ctx context.Context, review *entity.Review) error
	Delete(ctx context.Context, id uuid.UUID) error

	// AverageScore is nil when the title has no reviews.
	AverageScore(ctx context.Context, titleID uuid.UUID) (*float64, error)
}

type reviewRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReviewRepository(db database.PgxIface, log *zap.Logger) ReviewRepository {
	return &reviewRepository{
		db:  db,
		log: log.With(zap.String("repository", "review")),
	}
}

const reviewSelect = `
		SELECT r.id, r.title_id, r.author_id, u.username, r.text, r.score, r.pub_date
		FROM reviews r
		INNER JOIN users u ON u.id = r.author_id
`

func scanReview(row pgx.Row) (*entity.Review, error) {
	var review entity.Review
	err := row.Scan(
		&review.ID,
		&review.TitleID,
		&review.AuthorID,
		&review.AuthorUsername,
		&review.Text,
		&review.Score,
		&review.PubDate,
	)
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// Create relies on the (author_id, title_id) unique constraint; a second
// review for the same pair comes back as a conflict.
func (r *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	query := `
		INSERT INTO reviews (id, title_id, author_id, text, score, pub_date)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		review.ID,
		review.TitleID,
		review.AuthorID,
		review.Text,
		review.Score,
		review.PubDate,
	)

	if err != nil {
		if isConstraintError(err) {
			r.log.Warn("Review violates constraint",
				zap.Error(err),
				zap.String("author_id", review.AuthorID.String()),
				zap.String("title_id", review.TitleID.String()),
			)
		} else {
			r.log.Error("Failed to create review",
				zap.Error(err),
				zap.String("author_id", review.AuthorID.String()),
				zap.String("title_id", review.TitleID.String()),
			)
		}
		return translate(fmt.Sprintf("create review for title %s", review.TitleID), err)
	}

	return nil
}

func (r *reviewRepository) FindByID(ctx context.Context, titleID, id uuid.UUID) (*entity.Review, error) {
	review, err := scanReview(r.db.QueryRow(ctx, reviewSelect+` WHERE r.id = $1 AND r.title_id = $2`, id, titleID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find review by ID",
			zap.Error(err),
			zap.String("review_id", id.String()),
		)
		return nil, fmt.Errorf("find review by ID %s: %w", id, err)
	}

	return review, nil
}

// FindByTitleID lists newest first.
func (r *reviewRepository) FindByTitleID(ctx context.Context, titleID uuid.UUID, limit, offset int) ([]*entity.Review, error) {
	query := reviewSelect + `
		WHERE r.title_id = $1
		ORDER BY r.pub_date DESC, r.id
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, titleID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find reviews by title ID",
			zap.Error(err),
			zap.String("title_id", titleID.String()),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find reviews by title ID %s: %w", titleID, err)
	}
	defer rows.Close()

	var reviews []*entity.Review
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			r.log.Error("Failed to scan review row", zap.Error(err))
			return nil, fmt.Errorf("scan review row: %w", err)
		}
		reviews = append(reviews, review)
	}

	return reviews, rows.Err()
}

func (r *reviewRepository) CountByTitleID(ctx context.Context, titleID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM reviews WHERE title_id = $1`

	var count int64
	err := r.db.QueryRow(ctx, query, titleID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count reviews by title ID",
			zap.Error(err),
			zap.String("title_id", titleID.String()),
		)
		return 0, fmt.Errorf("count reviews by title ID %s: %w", titleID, err)
	}

	return count, nil
}

func (r *reviewRepository) Update(ctx context.Context, review *entity.Review) error {
	query := `
		UPDATE reviews
		SET text = $2, score = $3
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		review.ID,
		review.Text,
		review.Score,
	)

	if err != nil {
		r.log.Error("Failed to update review",
			zap.Error(err),
			zap.String("review_id", review.ID.String()),
		)
		return translate(fmt.Sprintf("update review %s", review.ID), err)
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("update review", "review not found")
	}

	return nil
}

// Delete removes the review and its comments.
func (r *reviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM reviews WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete review",
			zap.Error(err),
			zap.String("review_id", id.String()),
		)
		return fmt.Errorf("delete review %s: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("delete review", "review not found")
	}

	r.log.Info("Review deleted", zap.String("review_id", id.String()))
	return nil
}

func (r *reviewRepository) AverageScore(ctx context.Context, titleID uuid.UUID) (*float64, error) {
	query := `SELECT AVG(score)::float8 FROM reviews WHERE title_id = $1`

	var avg *float64
	err := r.db.QueryRow(ctx, query, titleID).Scan(&avg)
	if err != nil {
		r.log.Error("Failed to get title average score",
			zap.Error(err),
			zap.String("title_id", titleID.String()),
		)
		return nil, fmt.Errorf("get average score for %s: %w", titleID, err)
	}

	return avg, nil
}
