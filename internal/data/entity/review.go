package entity

import (
	"github.com/google/uuid"
)

const (
	MinScore = 1
	MaxScore = 10
)

type Review struct {
	ID uuid.UUID `db:"id"`
	Post
	TitleID uuid.UUID `db:"title_id"`
	Score   int       `db:"score"`
}

type Comment struct {
	ID uuid.UUID `db:"id"`
	Post
	ReviewID uuid.UUID `db:"review_id"`
}

// ScoreInRange reports whether score is an allowed review score.
func ScoreInRange(score int) bool {
	return score >= MinScore && score <= MaxScore
}
