package pagination_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/alloyforge/pkg/pagination"
)

func TestFromRequest(t *testing.T) {
	tests := []struct {
		query  string
		page   int
		limit  int
		offset int
	}{
		{"", 1, 20, 0},
		{"?page=3&limit=10", 3, 10, 20},
		{"?page=0&limit=-5", 1, 20, 0},
		{"?page=abc&limit=xyz", 1, 20, 0},
		{"?limit=1000", 1, 100, 0},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			p := pagination.FromRequest(httptest.NewRequest("GET", "/materials"+tt.query, nil))
			assert.Equal(t, tt.page, p.Page)
			assert.Equal(t, tt.limit, p.Limit)
			assert.Equal(t, tt.offset, p.Offset())
		})
	}
}

func TestNewMeta(t *testing.T) {
	assert.Equal(t, pagination.Meta{Page: 2, Limit: 20, Total: 45, TotalPages: 3}, pagination.NewMeta(2, 20, 45))
	assert.Equal(t, 0, pagination.NewMeta(1, 0, 10).TotalPages)
}

func TestWindow(t *testing.T) {
	items := []string{"a", "b", "c", "d", "e"}

	tests := []struct {
		name          string
		limit, offset int
		want          []string
	}{
		{"first_page", 2, 0, []string{"a", "b"}},
		{"middle", 2, 2, []string{"c", "d"}},
		{"short_last_page", 2, 4, []string{"e"}},
		{"past_end", 2, 5, nil},
		{"no_limit", 0, 3, []string{"d", "e"}},
		{"negative_offset", 1, -3, []string{"a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pagination.Window(items, tt.limit, tt.offset))
		})
	}
}
