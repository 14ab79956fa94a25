package utils

import (
	"math"
	"strconv"

	"github.com/labstack/echo/v4"
)

// PaginationParams represents pagination parameters
type PaginationParams struct {
	Page     int
	PageSize int
	Offset   int
}

// GetPaginationParams extracts pagination parameters from request
func GetPaginationParams(c echo.Context) PaginationParams {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	pageSize, _ := strconv.Atoi(c.QueryParam("limit"))

	if page <= 0 {
		page = 1
	}

	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}

	// Keep (page-1)*pageSize from overflowing.
	if maxPage := math.MaxInt / pageSize; page > maxPage {
		page = maxPage
	}

	return PaginationParams{
		Page:     page,
		PageSize: pageSize,
		Offset:   (page - 1) * pageSize,
	}
}

// Window returns the [start, end) bounds of the requested page within n items.
func (p PaginationParams) Window(n int) (int, int) {
	start := p.Offset
	if start < 0 || start > n {
		start = n
	}
	end := n
	if p.PageSize > 0 && p.PageSize < n-start {
		end = start + p.PageSize
	}
	return start, end
}
