package request

// Genres and category are referenced by slug.
type CreateTitleRequest struct {
	Name        string   `json:"name" validate:"required,max=256"`
	Year        int      `json:"year" validate:"required,min=1"`
	Description *string  `json:"description"`
	Genre       []string `json:"genre" validate:"dive,slug"`
	Category    *string  `json:"category" validate:"omitempty,slug"`
}

// UpdateTitleRequest: a nil Genre keeps the current genres, an empty list
// clears them; an empty Category clears the category.
type UpdateTitleRequest struct {
	Name        *string  `json:"name" validate:"omitnil,min=1,max=256"`
	Year        *int     `json:"year" validate:"omitnil,min=1"`
	Description *string  `json:"description"`
	Genre       []string `json:"genre" validate:"omitempty,dive,slug"`
	Category    *string  `json:"category" validate:"omitempty,slug"`
}
