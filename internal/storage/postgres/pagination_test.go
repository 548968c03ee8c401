package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginationParamsNormalize(t *testing.T) {
	p := PaginationParams{}.Normalize()
	assert.Equal(t, 10, p.Limit)
	assert.Equal(t, 1, p.Page)

	p = PaginationParams{Limit: 500, Page: -3}.Normalize()
	assert.Equal(t, 100, p.Limit)
	assert.Equal(t, 1, p.Page)
}

func TestNewPaginator(t *testing.T) {
	p := NewPaginator(PaginationParams{Limit: 10, Page: 2}, 25)

	assert.Equal(t, 10, p.Limit)
	assert.Equal(t, 10, p.Skip)
	assert.Equal(t, 2, p.CurrentPage)
	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, int64(25), p.TotalRecords)
	assert.True(t, p.HasNextPage)
}

func TestNewPaginatorLastPage(t *testing.T) {
	p := NewPaginator(PaginationParams{Limit: 10, Page: 3}, 25)

	assert.Equal(t, 20, p.Skip)
	assert.False(t, p.HasNextPage)
}

func TestNewPaginatorEmpty(t *testing.T) {
	p := NewPaginator(PaginationParams{}, 0)

	assert.Equal(t, 0, p.TotalPages)
	assert.False(t, p.HasNextPage)
}
