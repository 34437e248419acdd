package response

import "review-api/pkg/utils"

type PaginatedResponse[T any] struct {
	Data       []T            `json:"data"`
	Pagination PaginationMeta `json:"pagination"`
}

// PaginationMeta
type PaginationMeta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	TotalPages int   `json:"total_pages"`
}

func NewPaginatedResponse[T any](data []T, page, perPage int, total int64) *PaginatedResponse[T] {
	if data == nil {
		data = []T{}
	}

	return &PaginatedResponse[T]{
		Data: data,
		Pagination: PaginationMeta{
			Page:       page,
			PerPage:    perPage,
			Total:      total,
			TotalPages: utils.CalculateTotalPages(total, perPage),
		},
	}
}

// MapPage converts a page of entities with fn.
func MapPage[E any, T any](items []*E, fn func(*E) T, page, perPage int, total int64) *PaginatedResponse[T] {
	data := make([]T, 0, len(items))
	for _, item := range items {
		data = append(data, fn(item))
	}
	return NewPaginatedResponse(data, page, perPage, total)
}
