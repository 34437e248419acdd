package request

// TaxonRequest creates a category or a genre.
type TaxonRequest struct {
	Name string `json:"name" validate:"required,max=256"`
	Slug string `json:"slug" validate:"required,max=50,slug"`
}

type RenameTaxonRequest struct {
	Name string `json:"name" validate:"required,max=256"`
}
