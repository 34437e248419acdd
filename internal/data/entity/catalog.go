package entity

import (
	"time"

	"github.com/google/uuid"
)

type Category struct {
	Base
	Taxon
}

type Genre struct {
	Base
	Taxon
}

type Title struct {
	Base
	Name        string     `db:"name"`
	Year        int        `db:"year"`
	Description *string    `db:"description"`
	CategoryID  *uuid.UUID `db:"category_id"`

	// Populated on reads.
	Category *Category `db:"-"`
	Genres   []Genre   `db:"-"`
	Rating   *float64  `db:"-"` // nil when the title has no reviews
}

// YearInFuture reports whether year lies after the current calendar year.
func YearInFuture(year int, now time.Time) bool {
	return year > now.Year()
}

// TitleFilter narrows title listings. Empty fields are ignored.
type TitleFilter struct {
	GenreSlug    string
	CategorySlug string
	Year         *int
	NameContains string
}
