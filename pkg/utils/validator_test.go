package utils

import (
	"testing"

	"review-api/pkg/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signupInput struct {
	Username string `json:"username" validate:"required,max=150,username"`
	Email    string `json:"email" validate:"required,email,max=254"`
}

type reviewInput struct {
	Text  string `json:"text" validate:"required"`
	Score int    `json:"score" validate:"required,min=1,max=10"`
}

type profileInput struct {
	Username *string `json:"username" validate:"omitempty,username"`
	Role     *string `json:"role" validate:"omitempty,role"`
	Slug     string  `json:"slug" validate:"omitempty,slug"`
}

func TestValidateStruct_Username(t *testing.T) {
	errs := ValidateStruct(signupInput{Username: "Me", Email: "me@example.com"})
	require.Contains(t, errs, "username")
	assert.Equal(t, `Username "me" is reserved`, errs["username"])

	errs = ValidateStruct(signupInput{Username: "bad name", Email: "x@example.com"})
	require.Contains(t, errs, "username")

	assert.Empty(t, ValidateStruct(signupInput{Username: "good.name", Email: "x@example.com"}))
}

func TestValidateStruct_Email(t *testing.T) {
	errs := ValidateStruct(signupInput{Username: "someone", Email: "not-an-email"})
	assert.Equal(t, "Invalid email format", errs["email"])
}

func TestValidateStruct_ScoreRange(t *testing.T) {
	errs := ValidateStruct(reviewInput{Text: "ok", Score: 11})
	assert.Equal(t, "Maximum value is 10", errs["score"])

	errs = ValidateStruct(reviewInput{Text: "ok", Score: -1})
	assert.Equal(t, "Minimum value is 1", errs["score"])

	assert.Empty(t, ValidateStruct(reviewInput{Text: "ok", Score: 10}))
}

func TestValidateStruct_PointerFields(t *testing.T) {
	me := "me"
	boss := "boss"
	errs := ValidateStruct(profileInput{Username: &me, Role: &boss, Slug: "no spaces"})

	assert.Equal(t, `Username "me" is reserved`, errs["username"])
	assert.Equal(t, "Must be one of: user, moderator, admin", errs["role"])
	assert.Contains(t, errs, "slug")

	assert.Empty(t, ValidateStruct(profileInput{}))
}

func TestValidate_WrapsAsValidationError(t *testing.T) {
	err := Validate("review.create", reviewInput{Score: 3})

	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	assert.Contains(t, apperr.FieldsOf(err), "text")
}
