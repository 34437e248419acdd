package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"review-api/internal/data/entity"
	"review-api/pkg/apperr"
	"review-api/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type TitleRepository interface {
	Create(ctx context.Context, title *entity.Title) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Title, error)
	FindAll(ctx context.Context, filter entity.TitleFilter, limit, offset int) ([]*entity.Title, error)
	CountAll(ctx context.Context, filter entity.TitleFilter) (int64, error)
	Update(ctx context.Context, title *entity.Title, replaceGenres bool) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type titleRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTitleRepository(db database.PgxIface, log *zap.Logger) TitleRepository {
	return &titleRepository{
		db:  db,
		log: log.With(zap.String("repository", "title")),
	}
}

// rating is recomputed from reviews on every read.
const titleSelect = `
		SELECT t.id, t.name, t.year, t.description, t.category_id, t.created_at, t.updated_at,
		       c.name, c.slug,
		       (SELECT AVG(r.score)::float8 FROM reviews r WHERE r.title_id = t.id) AS rating
		FROM titles t
		LEFT JOIN categories c ON c.id = t.category_id
`

func scanTitle(row pgx.Row) (*entity.Title, error) {
	var (
		title        entity.Title
		categoryName *string
		categorySlug *string
	)
	err := row.Scan(
		&title.ID,
		&title.Name,
		&title.Year,
		&title.Description,
		&title.CategoryID,
		&title.CreatedAt,
		&title.UpdatedAt,
		&categoryName,
		&categorySlug,
		&title.Rating,
	)
	if err != nil {
		return nil, err
	}

	if title.CategoryID != nil && categorySlug != nil {
		title.Category = &entity.Category{
			Base:  entity.Base{ID: *title.CategoryID},
			Taxon: entity.Taxon{Name: *categoryName, Slug: *categorySlug},
		}
	}
	title.Genres = []entity.Genre{}
	return &title, nil
}

// titleWhere renders the filter as a WHERE clause starting at placeholder $1.
func titleWhere(filter entity.TitleFilter) (string, []any) {
	var conds []string
	var args []any

	if filter.GenreSlug != "" {
		args = append(args, filter.GenreSlug)
		conds = append(conds, fmt.Sprintf(`EXISTS (
			SELECT 1 FROM title_genres tg JOIN genres g ON g.id = tg.genre_id
			WHERE tg.title_id = t.id AND g.slug = $%d)`, len(args)))
	}
	if filter.CategorySlug != "" {
		args = append(args, filter.CategorySlug)
		conds = append(conds, fmt.Sprintf("c.slug = $%d", len(args)))
	}
	if filter.Year != nil {
		args = append(args, *filter.Year)
		conds = append(conds, fmt.Sprintf("t.year = $%d", len(args)))
	}
	if filter.NameContains != "" {
		// case-sensitive substring match
		args = append(args, filter.NameContains)
		conds = append(conds, fmt.Sprintf("strpos(t.name, $%d) > 0", len(args)))
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// Create inserts the title and its genre links in one transaction.
func (r *titleRepository) Create(ctx context.Context, title *entity.Title) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		r.log.Error("Failed to begin transaction", zap.Error(err))
		return fmt.Errorf("begin create title: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO titles (id, name, year, description, category_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err = tx.Exec(ctx, query,
		title.ID,
		title.Name,
		title.Year,
		title.Description,
		title.CategoryID,
		title.CreatedAt,
		title.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create title",
			zap.Error(err),
			zap.String("name", title.Name),
		)
		return translate("create title", err)
	}

	if err := r.linkGenres(ctx, tx, title); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		r.log.Error("Failed to commit title", zap.Error(err))
		return fmt.Errorf("commit create title: %w", err)
	}

	return nil
}

func (r *titleRepository) linkGenres(ctx context.Context, tx pgx.Tx, title *entity.Title) error {
	query := `INSERT INTO title_genres (title_id, genre_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`

	for _, genre := range title.Genres {
		if _, err := tx.Exec(ctx, query, title.ID, genre.ID); err != nil {
			r.log.Error("Failed to link genre",
				zap.Error(err),
				zap.String("title_id", title.ID.String()),
				zap.String("genre", genre.Slug),
			)
			return translate("link genre "+genre.Slug, err)
		}
	}

	return nil
}

func (r *titleRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Title, error) {
	title, err := scanTitle(r.db.QueryRow(ctx, titleSelect+` WHERE t.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find title by ID",
			zap.Error(err),
			zap.String("title_id", id.String()),
		)
		return nil, fmt.Errorf("find title by ID %s: %w", id, err)
	}

	if err := r.attachGenres(ctx, []*entity.Title{title}); err != nil {
		return nil, err
	}

	return title, nil
}

func (r *titleRepository) FindAll(ctx context.Context, filter entity.TitleFilter, limit, offset int) ([]*entity.Title, error) {
	where, args := titleWhere(filter)

	var queryBuilder strings.Builder
	queryBuilder.WriteString(titleSelect)
	queryBuilder.WriteString(where)
	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY t.name, t.year LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2))
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		r.log.Error("Failed to find all titles",
			zap.Error(err),
			zap.Any("filter", filter),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find titles: %w", err)
	}
	defer rows.Close()

	var titles []*entity.Title
	for rows.Next() {
		title, err := scanTitle(rows)
		if err != nil {
			r.log.Error("Failed to scan title row", zap.Error(err))
			return nil, fmt.Errorf("scan title row: %w", err)
		}
		titles = append(titles, title)
	}
	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate title rows: %w", err)
	}

	if err := r.attachGenres(ctx, titles); err != nil {
		return nil, err
	}

	return titles, nil
}

func (r *titleRepository) CountAll(ctx context.Context, filter entity.TitleFilter) (int64, error) {
	where, args := titleWhere(filter)
	query := `SELECT COUNT(*) FROM titles t LEFT JOIN categories c ON c.id = t.category_id` + where

	var total int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		r.log.Error("Failed to count titles",
			zap.Error(err),
			zap.Any("filter", filter),
		)
		return 0, fmt.Errorf("count titles: %w", err)
	}

	return total, nil
}

// attachGenres loads genres for all titles with one query.
func (r *titleRepository) attachGenres(ctx context.Context, titles []*entity.Title) error {
	if len(titles) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(titles))
	byID := make(map[uuid.UUID]*entity.Title, len(titles))
	for _, t := range titles {
		ids = append(ids, t.ID)
		byID[t.ID] = t
	}

	query := `
		SELECT tg.title_id, g.id, g.name, g.slug, g.created_at, g.updated_at
		FROM title_genres tg
		INNER JOIN genres g ON g.id = tg.genre_id
		WHERE tg.title_id = ANY($1)
		ORDER BY g.name
	`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		r.log.Error("Failed to load title genres", zap.Error(err))
		return fmt.Errorf("load title genres: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var titleID uuid.UUID
		var genre entity.Genre
		if err := rows.Scan(&titleID, &genre.ID, &genre.Name, &genre.Slug, &genre.CreatedAt, &genre.UpdatedAt); err != nil {
			r.log.Error("Failed to scan genre row", zap.Error(err))
			return fmt.Errorf("scan genre row: %w", err)
		}
		if t, ok := byID[titleID]; ok {
			t.Genres = append(t.Genres, genre)
		}
	}

	return rows.Err()
}

// Update writes the scalar fields; genre links are replaced only when asked.
func (r *titleRepository) Update(ctx context.Context, title *entity.Title, replaceGenres bool) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		r.log.Error("Failed to begin transaction", zap.Error(err))
		return fmt.Errorf("begin update title: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		UPDATE titles
		SET name = $2, year = $3, description = $4, category_id = $5, updated_at = $6
		WHERE id = $1
	`
	result, err := tx.Exec(ctx, query,
		title.ID,
		title.Name,
		title.Year,
		title.Description,
		title.CategoryID,
		title.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update title",
			zap.Error(err),
			zap.String("title_id", title.ID.String()),
		)
		return translate("update title", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("update title", "title not found")
	}

	if replaceGenres {
		if _, err := tx.Exec(ctx, `DELETE FROM title_genres WHERE title_id = $1`, title.ID); err != nil {
			r.log.Error("Failed to clear title genres", zap.Error(err))
			return fmt.Errorf("clear title genres: %w", err)
		}
		if err := r.linkGenres(ctx, tx, title); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		r.log.Error("Failed to commit title update", zap.Error(err))
		return fmt.Errorf("commit update title: %w", err)
	}

	return nil
}

// Delete removes the title with its reviews, comments and genre links.
func (r *titleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM titles WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete title",
			zap.Error(err),
			zap.String("title_id", id.String()),
		)
		return fmt.Errorf("delete title %s: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("delete title", "title not found")
	}

	r.log.Info("Title deleted", zap.String("title_id", id.String()))
	return nil
}
