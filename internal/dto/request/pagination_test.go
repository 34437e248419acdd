package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPaginatedRequest(t *testing.T) {
	tests := []struct {
		name        string
		page        int
		perPage     int
		wantPage    int
		wantPerPage int
		wantOffset  int
	}{
		{"defaults", 0, 0, 1, 10, 0},
		{"second page", 2, 20, 2, 20, 20},
		{"clamped", 3, 500, 3, 100, 200},
		{"negative", -4, -1, 1, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPaginatedRequest(tt.page, tt.perPage, 10)
			assert.Equal(t, tt.wantPage, p.Page)
			assert.Equal(t, tt.wantPerPage, p.Limit())
			assert.Equal(t, tt.wantOffset, p.Offset())
		})
	}
}

func TestPaginatedRequest_LimitClampsUnbuiltValues(t *testing.T) {
	assert.Equal(t, 10, PaginatedRequest{}.Limit())
	assert.Equal(t, MaxPerPage, PaginatedRequest{Page: 1, PerPage: 1000}.Limit())
	assert.Equal(t, 0, PaginatedRequest{Page: 0, PerPage: 5}.Offset())
}
