package request

import "review-api/pkg/utils"

const MaxPerPage = 100

type PaginatedRequest struct {
	Page    int
	PerPage int
	Search  string
}

// NewPaginatedRequest clamps page and per_page into range.
func NewPaginatedRequest(page, perPage, defaultPerPage int) PaginatedRequest {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage < 1 {
		perPage = 10
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	return PaginatedRequest{Page: page, PerPage: perPage}
}

func (p PaginatedRequest) Offset() int {
	return utils.CalculateOffset(p.Page, p.Limit())
}

func (p PaginatedRequest) Limit() int {
	if p.PerPage < 1 {
		return 10
	}
	if p.PerPage > MaxPerPage {
		return MaxPerPage
	}
	return p.PerPage
}
