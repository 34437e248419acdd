package repository

import (
	"context"
	"errors"
	"fmt"

	"review-api/internal/data/entity"
	"review-api/pkg/apperr"
	"review-api/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	FindBySlug(ctx context.Context, slug string) (*entity.Category, error)
	FindAll(ctx context.Context, search string, limit, offset int) ([]*entity.Category, error)
	CountAll(ctx context.Context, search string) (int64, error)
	Rename(ctx context.Context, slug, name string) error
	Delete(ctx context.Context, slug string) error
}

type GenreRepository interface {
	Create(ctx context.Context, genre *entity.Genre) error
	FindBySlug(ctx context.Context, slug string) (*entity.Genre, error)
	FindAll(ctx context.Context, search string, limit, offset int) ([]*entity.Genre, error)
	CountAll(ctx context.Context, search string) (int64, error)
	Rename(ctx context.Context, slug, name string) error
	Delete(ctx context.Context, slug string) error
}

// taxonRepository serves both categories and genres; they share one shape
// and differ only by table.
type taxonRepository[T any] struct {
	db    database.PgxIface
	log   *zap.Logger
	table string
	noun  string
	parts func(*T) (*entity.Base, *entity.Taxon)
}

func NewCategoryRepository(db database.PgxIface, log *zap.Logger) CategoryRepository {
	return &taxonRepository[entity.Category]{
		db:    db,
		log:   log.With(zap.String("repository", "category")),
		table: "categories",
		noun:  "category",
		parts: func(c *entity.Category) (*entity.Base, *entity.Taxon) { return &c.Base, &c.Taxon },
	}
}

func NewGenreRepository(db database.PgxIface, log *zap.Logger) GenreRepository {
	return &taxonRepository[entity.Genre]{
		db:    db,
		log:   log.With(zap.String("repository", "genre")),
		table: "genres",
		noun:  "genre",
		parts: func(g *entity.Genre) (*entity.Base, *entity.Taxon) { return &g.Base, &g.Taxon },
	}
}

func (r *taxonRepository[T]) scan(row pgx.Row) (*T, error) {
	item := new(T)
	base, taxon := r.parts(item)
	if err := row.Scan(&base.ID, &taxon.Name, &taxon.Slug, &base.CreatedAt, &base.UpdatedAt); err != nil {
		return nil, err
	}
	return item, nil
}

func (r *taxonRepository[T]) Create(ctx context.Context, item *T) error {
	base, taxon := r.parts(item)
	query := `INSERT INTO ` + r.table + ` (id, name, slug, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.Exec(ctx, query, base.ID, taxon.Name, taxon.Slug, base.CreatedAt, base.UpdatedAt)
	if err != nil {
		if isConstraintError(err) {
			r.log.Warn("Duplicate slug", zap.String("slug", taxon.Slug))
		} else {
			r.log.Error("Failed to create "+r.noun,
				zap.Error(err),
				zap.String("slug", taxon.Slug),
			)
		}
		return translate(fmt.Sprintf("create %s %s", r.noun, taxon.Slug), err)
	}

	return nil
}

func (r *taxonRepository[T]) FindBySlug(ctx context.Context, slug string) (*T, error) {
	query := `SELECT id, name, slug, created_at, updated_at FROM ` + r.table + ` WHERE slug = $1`

	item, err := r.scan(r.db.QueryRow(ctx, query, slug))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find "+r.noun+" by slug",
			zap.Error(err),
			zap.String("slug", slug),
		)
		return nil, fmt.Errorf("find %s by slug %s: %w", r.noun, slug, err)
	}

	return item, nil
}

// FindAll orders by name; search matches names case-insensitively.
func (r *taxonRepository[T]) FindAll(ctx context.Context, search string, limit, offset int) ([]*T, error) {
	query := `
		SELECT id, name, slug, created_at, updated_at
		FROM ` + r.table + `
		WHERE name ILIKE $1
		ORDER BY name, slug
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, containsPattern(search), limit, offset)
	if err != nil {
		r.log.Error("Failed to find all "+r.table,
			zap.Error(err),
			zap.String("search", search),
		)
		return nil, fmt.Errorf("find all %s: %w", r.table, err)
	}
	defer rows.Close()

	var items []*T
	for rows.Next() {
		item, err := r.scan(rows)
		if err != nil {
			r.log.Error("Failed to scan "+r.noun+" row", zap.Error(err))
			return nil, fmt.Errorf("scan %s row: %w", r.noun, err)
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

func (r *taxonRepository[T]) CountAll(ctx context.Context, search string) (int64, error) {
	query := `SELECT COUNT(*) FROM ` + r.table + ` WHERE name ILIKE $1`

	var count int64
	if err := r.db.QueryRow(ctx, query, containsPattern(search)).Scan(&count); err != nil {
		r.log.Error("Failed to count "+r.table, zap.Error(err))
		return 0, fmt.Errorf("count %s: %w", r.table, err)
	}

	return count, nil
}

// Rename changes the display name. The slug is the identity and stays.
func (r *taxonRepository[T]) Rename(ctx context.Context, slug, name string) error {
	query := `UPDATE ` + r.table + ` SET name = $2, updated_at = NOW() WHERE slug = $1`

	result, err := r.db.Exec(ctx, query, slug, name)
	if err != nil {
		r.log.Error("Failed to rename "+r.noun,
			zap.Error(err),
			zap.String("slug", slug),
		)
		return fmt.Errorf("rename %s %s: %w", r.noun, slug, err)
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("rename "+r.noun, r.noun+" not found")
	}

	return nil
}

// Delete removes the row. Titles lose the category (set null) or the genre
// membership (cascade) but survive.
func (r *taxonRepository[T]) Delete(ctx context.Context, slug string) error {
	query := `DELETE FROM ` + r.table + ` WHERE slug = $1`

	result, err := r.db.Exec(ctx, query, slug)
	if err != nil {
		r.log.Error("Failed to delete "+r.noun,
			zap.Error(err),
			zap.String("slug", slug),
		)
		return fmt.Errorf("delete %s %s: %w", r.noun, slug, err)
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("delete "+r.noun, r.noun+" not found")
	}

	r.log.Info(r.noun+" deleted", zap.String("slug", slug))
	return nil
}
