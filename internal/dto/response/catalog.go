package response

import (
	"time"

	"review-api/internal/data/entity"
)

type TaxonResponse struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type TitleResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Year        int             `json:"year"`
	Rating      *float64        `json:"rating"`
	Description *string         `json:"description"`
	Genre       []TaxonResponse `json:"genre"`
	Category    *TaxonResponse  `json:"category"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Helper converters
func CategoryToResponse(category *entity.Category) TaxonResponse {
	return TaxonResponse{Name: category.Name, Slug: category.Slug}
}

func GenreToResponse(genre *entity.Genre) TaxonResponse {
	return TaxonResponse{Name: genre.Name, Slug: genre.Slug}
}

func TitleToResponse(title *entity.Title) TitleResponse {
	genres := make([]TaxonResponse, 0, len(title.Genres))
	for i := range title.Genres {
		genres = append(genres, GenreToResponse(&title.Genres[i]))
	}

	resp := TitleResponse{
		ID:          title.ID.String(),
		Name:        title.Name,
		Year:        title.Year,
		Rating:      title.Rating,
		Description: title.Description,
		Genre:       genres,
		CreatedAt:   title.CreatedAt,
	}

	if title.Category != nil {
		category := CategoryToResponse(title.Category)
		resp.Category = &category
	}

	return resp
}
