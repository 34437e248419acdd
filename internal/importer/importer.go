// Package importer loads the static CSV fixtures into the store.
//
// Rows go through the repositories one at a time, so the same constraints
// that guard the API guard the import. Integer ids in the files are only
// used to link rows to each other; every imported row gets a fresh UUID.
package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"review-api/internal/data/entity"
	"review-api/internal/data/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Files in load order: every file only references ones before it.
const (
	UsersFile      = "users.csv"
	CategoriesFile = "category.csv"
	GenresFile     = "genre.csv"
	TitlesFile     = "titles.csv"
	GenreTitleFile = "genre_title.csv"
	ReviewsFile    = "review.csv"
	CommentsFile   = "comments.csv"
)

// RowError pins a failure to a file and line.
type RowError struct {
	File string
	Line int
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("%s:%d: %v", e.File, e.Line, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// Stats counts imported rows per file.
type Stats map[string]int

type Importer struct {
	repo *repository.Repository
	log  *zap.Logger
	now  func() time.Time

	users      map[string]uuid.UUID
	categories map[string]uuid.UUID
	genres     map[string]*entity.Genre
	titles     map[string]*entity.Title
	reviews    map[string]uuid.UUID
}

func New(repo *repository.Repository, log *zap.Logger) *Importer {
	return &Importer{
		repo: repo,
		log:  log.With(zap.String("component", "importer")),
		now:  time.Now,
	}
}

// Run imports every known file found in dir. Missing files are skipped; the
// first bad row stops the import with a *RowError.
func (im *Importer) Run(ctx context.Context, dir string) (Stats, error) {
	im.users = make(map[string]uuid.UUID)
	im.categories = make(map[string]uuid.UUID)
	im.genres = make(map[string]*entity.Genre)
	im.titles = make(map[string]*entity.Title)
	im.reviews = make(map[string]uuid.UUID)

	steps := []struct {
		file string
		row  func(ctx context.Context, rec record) error
	}{
		{UsersFile, im.user},
		{CategoriesFile, im.category},
		{GenresFile, im.genre},
		{TitlesFile, im.title},
		{GenreTitleFile, im.genreTitle},
		{ReviewsFile, im.review},
		{CommentsFile, im.comment},
	}

	stats := make(Stats)
	for _, step := range steps {
		n, err := im.load(ctx, filepath.Join(dir, step.file), step.row)
		if errors.Is(err, fs.ErrNotExist) {
			im.log.Warn("Import file missing, skipping", zap.String("file", step.file))
			continue
		}
		if err != nil {
			return stats, err
		}
		if step.file == GenreTitleFile {
			if err := im.flushGenres(ctx); err != nil {
				return stats, err
			}
		}
		stats[step.file] = n
		im.log.Info("Imported file", zap.String("file", step.file), zap.Int("rows", n))
	}

	return stats, nil
}

// record is one CSV row addressed by header name.
type record struct {
	header map[string]int
	values []string
}

func (r record) get(col string) string {
	i, ok := r.header[col]
	if !ok || i >= len(r.values) {
		return ""
	}
	return strings.TrimSpace(r.values[i])
}

func (r record) require(col string) (string, error) {
	v := r.get(col)
	if v == "" {
		return "", fmt.Errorf("column %q is empty", col)
	}
	return v, nil
}

func (im *Importer) load(ctx context.Context, path string, row func(context.Context, record) error) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	name := filepath.Base(path)
	reader := csv.NewReader(f)

	cols, err := reader.Read()
	if err == io.EOF {
		return 0, nil
	}
	if err != nil {
		return 0, &RowError{File: name, Line: 1, Err: err}
	}
	header := make(map[string]int, len(cols))
	for i, c := range cols {
		header[strings.TrimPrefix(strings.TrimSpace(c), "\ufeff")] = i
	}

	n := 0
	for {
		values, err := reader.Read()
		if err == io.EOF {
			return n, nil
		}
		if err != nil {
			var parseErr *csv.ParseError
			line := 0
			if errors.As(err, &parseErr) {
				line = parseErr.StartLine
			}
			return n, &RowError{File: name, Line: line, Err: err}
		}
		line, _ := reader.FieldPos(0)
		if err := row(ctx, record{header: header, values: values}); err != nil {
			return n, &RowError{File: name, Line: line, Err: err}
		}
		n++
	}
}

func (im *Importer) user(ctx context.Context, rec record) error {
	id, err := rec.require("id")
	if err != nil {
		return err
	}
	username, err := rec.require("username")
	if err != nil {
		return err
	}
	if problem := entity.UsernameProblem(username); problem != "" {
		return fmt.Errorf("username %q: %s", username, problem)
	}
	email, err := rec.require("email")
	if err != nil {
		return err
	}

	role := entity.RoleUser
	if v := rec.get("role"); v != "" {
		role = entity.UserRole(v)
		if !role.Valid() {
			return fmt.Errorf("unknown role %q", v)
		}
	}

	now := im.now()
	user := &entity.User{
		Base:      entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Username:  username,
		Email:     email,
		FirstName: rec.get("first_name"),
		LastName:  rec.get("last_name"),
		Bio:       rec.get("bio"),
		Role:      role,
	}
	if err := im.repo.User.Create(ctx, user); err != nil {
		return err
	}

	im.users[id] = user.ID
	return nil
}

func (im *Importer) category(ctx context.Context, rec record) error {
	id, taxon, err := taxonRow(rec)
	if err != nil {
		return err
	}

	now := im.now()
	category := &entity.Category{Base: entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now}, Taxon: taxon}
	if err := im.repo.Category.Create(ctx, category); err != nil {
		return err
	}

	im.categories[id] = category.ID
	return nil
}

func (im *Importer) genre(ctx context.Context, rec record) error {
	id, taxon, err := taxonRow(rec)
	if err != nil {
		return err
	}

	now := im.now()
	genre := &entity.Genre{Base: entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now}, Taxon: taxon}
	if err := im.repo.Genre.Create(ctx, genre); err != nil {
		return err
	}

	im.genres[id] = genre
	return nil
}

func taxonRow(rec record) (string, entity.Taxon, error) {
	id, err := rec.require("id")
	if err != nil {
		return "", entity.Taxon{}, err
	}
	name, err := rec.require("name")
	if err != nil {
		return "", entity.Taxon{}, err
	}
	slug, err := rec.require("slug")
	if err != nil {
		return "", entity.Taxon{}, err
	}
	return id, entity.Taxon{Name: name, Slug: slug}, nil
}

func (im *Importer) title(ctx context.Context, rec record) error {
	id, err := rec.require("id")
	if err != nil {
		return err
	}
	name, err := rec.require("name")
	if err != nil {
		return err
	}
	year, err := intColumn(rec, "year")
	if err != nil {
		return err
	}
	now := im.now()
	if entity.YearInFuture(year, now) {
		return fmt.Errorf("year %d is in the future", year)
	}

	title := &entity.Title{
		Base: entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Name: name,
		Year: year,
	}
	if v := rec.get("description"); v != "" {
		title.Description = &v
	}
	if ref := rec.get("category"); ref != "" {
		categoryID, ok := im.categories[ref]
		if !ok {
			return fmt.Errorf("unknown category id %s", ref)
		}
		title.CategoryID = &categoryID
	}

	if err := im.repo.Title.Create(ctx, title); err != nil {
		return err
	}

	im.titles[id] = title
	return nil
}

// genreTitle collects links; flushGenres writes them once per title.
func (im *Importer) genreTitle(_ context.Context, rec record) error {
	titleRef, err := rec.require("title_id")
	if err != nil {
		return err
	}
	genreRef, err := rec.require("genre_id")
	if err != nil {
		return err
	}

	title, ok := im.titles[titleRef]
	if !ok {
		return fmt.Errorf("unknown title id %s", titleRef)
	}
	genre, ok := im.genres[genreRef]
	if !ok {
		return fmt.Errorf("unknown genre id %s", genreRef)
	}

	for _, g := range title.Genres {
		if g.ID == genre.ID {
			return nil
		}
	}
	title.Genres = append(title.Genres, *genre)
	return nil
}

func (im *Importer) flushGenres(ctx context.Context) error {
	for _, title := range im.titles {
		if len(title.Genres) == 0 {
			continue
		}
		if err := im.repo.Title.Update(ctx, title, true); err != nil {
			return &RowError{File: GenreTitleFile, Err: fmt.Errorf("title %q: %w", title.Name, err)}
		}
	}
	return nil
}

func (im *Importer) review(ctx context.Context, rec record) error {
	id, err := rec.require("id")
	if err != nil {
		return err
	}
	title, err := ref(rec, "title_id", im.titles)
	if err != nil {
		return err
	}
	author, err := ref(rec, "author", im.users)
	if err != nil {
		return err
	}
	text, err := rec.require("text")
	if err != nil {
		return err
	}
	score, err := intColumn(rec, "score")
	if err != nil {
		return err
	}
	if !entity.ScoreInRange(score) {
		return fmt.Errorf("score %d out of range", score)
	}
	pubDate, err := im.timeColumn(rec, "pub_date")
	if err != nil {
		return err
	}

	review := &entity.Review{
		ID:      uuid.New(),
		Post:    entity.Post{Text: text, AuthorID: author, PubDate: pubDate},
		TitleID: title.ID,
		Score:   score,
	}
	if err := im.repo.Review.Create(ctx, review); err != nil {
		return err
	}

	im.reviews[id] = review.ID
	return nil
}

func (im *Importer) comment(ctx context.Context, rec record) error {
	review, err := ref(rec, "review_id", im.reviews)
	if err != nil {
		return err
	}
	author, err := ref(rec, "author", im.users)
	if err != nil {
		return err
	}
	text, err := rec.require("text")
	if err != nil {
		return err
	}
	pubDate, err := im.timeColumn(rec, "pub_date")
	if err != nil {
		return err
	}

	return im.repo.Comment.Create(ctx, &entity.Comment{
		ID:       uuid.New(),
		Post:     entity.Post{Text: text, AuthorID: author, PubDate: pubDate},
		ReviewID: review,
	})
}

func ref[T any](rec record, col string, known map[string]T) (T, error) {
	var zero T
	key, err := rec.require(col)
	if err != nil {
		return zero, err
	}
	v, ok := known[key]
	if !ok {
		return zero, fmt.Errorf("unknown %s %s", col, key)
	}
	return v, nil
}

func intColumn(rec record, col string) (int, error) {
	raw, err := rec.require(col)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("column %q: %w", col, err)
	}
	return v, nil
}

// timeColumn accepts RFC 3339; an empty cell means now.
func (im *Importer) timeColumn(rec record, col string) (time.Time, error) {
	raw := rec.get(col)
	if raw == "" {
		return im.now(), nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("column %q: %w", col, err)
	}
	return t, nil
}
