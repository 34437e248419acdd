package entity

import (
	"time"

	"github.com/google/uuid"
)

type Base struct {
	ID        uuid.UUID `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Taxon is the name/slug pair shared by categories and genres.
// The slug is the identity and never changes after creation.
type Taxon struct {
	Name string `db:"name"`
	Slug string `db:"slug"`
}

// Post holds the authored-text fields shared by reviews and comments.
type Post struct {
	Text           string    `db:"text"`
	AuthorID       uuid.UUID `db:"author_id"`
	AuthorUsername string    `db:"-"` // filled by joins
	PubDate        time.Time `db:"pub_date"`
}
