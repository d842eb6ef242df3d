package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestGetPaginationParams(t *testing.T) {
	tests := []struct {
		query string
		want  PaginationParams
	}{
		{"", PaginationParams{Page: 1, PageSize: 20, Offset: 0}},
		{"?page=3&limit=10", PaginationParams{Page: 3, PageSize: 10, Offset: 20}},
		{"?page=-1&limit=500", PaginationParams{Page: 1, PageSize: 20, Offset: 0}},
		{"?page=abc", PaginationParams{Page: 1, PageSize: 20, Offset: 0}},
	}

	e := echo.New()
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/api/swaps"+tt.query, nil)
		c := e.NewContext(req, httptest.NewRecorder())
		assert.Equal(t, tt.want, GetPaginationParams(c), tt.query)
	}
}

func TestWindow(t *testing.T) {
	start, end := Window(10, 0, 3)
	assert.Equal(t, 0, start)
	assert.Equal(t, 3, end)

	start, end = Window(10, 8, 5)
	assert.Equal(t, 8, start)
	assert.Equal(t, 10, end)

	start, end = Window(2, 5, 5)
	assert.Equal(t, 2, start)
	assert.Equal(t, 2, end)

	start, end = Window(4, 0, 0)
	assert.Equal(t, 0, start)
	assert.Equal(t, 4, end)
}
