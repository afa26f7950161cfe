package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		in       PaginationParams
		expected PaginationParams
	}{
		{"defaults", PaginationParams{}, PaginationParams{Page: 1, PerPage: 15}},
		{"caps page size", PaginationParams{Page: 3, PerPage: 500}, PaginationParams{Page: 3, PerPage: 100}},
		{"keeps valid", PaginationParams{Page: 2, PerPage: 20}, PaginationParams{Page: 2, PerPage: 20}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.in
			p.Validate()
			assert.Equal(t, tt.expected, p)
		})
	}
}

func TestNewPagination(t *testing.T) {
	p := NewPagination(2, 10, 21)
	assert.Equal(t, 3, p.TotalPages)
	assert.True(t, p.HasNext)
	assert.True(t, p.HasPrev)

	p = NewPagination(1, 10, 0)
	assert.Equal(t, 0, p.TotalPages)
	assert.False(t, p.HasNext)
	assert.False(t, p.HasPrev)

	assert.Equal(t, 20, (&PaginationParams{Page: 3, PerPage: 10}).Offset())
}

func TestNewPaginatedResultEncodesEmptyItems(t *testing.T) {
	r := NewPaginatedResult[int](nil, NewPagination(1, 15, 0))
	assert.NotNil(t, r.Items)
	assert.Empty(t, r.Items)
}
