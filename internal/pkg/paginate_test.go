package pkg

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginatorMeta(t *testing.T) {
	p := NewPaginator(10)

	cases := []struct {
		name  string
		page  int
		total int64
		want  PageMeta
	}{
		{"first of two", 1, 13, PageMeta{Number: 1, PageSize: 10, TotalCount: 13, TotalPages: 2, HasNext: true}},
		{"last page", 2, 13, PageMeta{Number: 2, PageSize: 10, TotalCount: 13, TotalPages: 2, HasPrevious: true}},
		{"beyond last", 3, 13, PageMeta{Number: 3, PageSize: 10, TotalCount: 13, TotalPages: 2, HasPrevious: true}},
		{"exact multiple", 1, 10, PageMeta{Number: 1, PageSize: 10, TotalCount: 10, TotalPages: 1}},
		{"empty", 1, 0, PageMeta{Number: 1, PageSize: 10}},
		{"zero page", 0, 5, PageMeta{Number: 1, PageSize: 10, TotalCount: 5, TotalPages: 1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, p.Meta(tc.page, tc.total))
		})
	}
}

func TestPaginatorOffset(t *testing.T) {
	p := NewPaginator(10)
	assert.Equal(t, 0, p.Offset(1))
	assert.Equal(t, 10, p.Offset(2))
	assert.Equal(t, 0, p.Offset(-4))
}

func TestNewPaginatorDefaultsSize(t *testing.T) {
	assert.Equal(t, 10, NewPaginator(0).PageSize)
}

func TestPaginatorInRange(t *testing.T) {
	p := NewPaginator(10)
	assert.True(t, p.InRange(1, 13))
	assert.True(t, p.InRange(2, 13))
	assert.True(t, p.InRange(0, 13))
	assert.False(t, p.InRange(3, 13))
	assert.False(t, p.InRange(1, 0))
	assert.False(t, p.InRange(math.MaxInt, 13))
	assert.False(t, p.InRange(math.MaxInt/10+2, 13))
}
