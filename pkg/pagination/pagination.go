package pagination

import (
	"fmt"
	"strconv"

	"github.com/labstack/echo/v4"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Params holds pagination parameters extracted from a request.
type Params struct {
	Limit  int
	Offset int
}

// FromContext extracts pagination parameters from the echo context.
func FromContext(c echo.Context) Params {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	if offset < 0 {
		offset = 0
	}

	return Params{Limit: limit, Offset: offset}
}

// Response wraps a paginated list payload with navigation links.
type Response struct {
	Count    int         `json:"count"`
	Next     *string     `json:"next"`
	Previous *string     `json:"previous"`
	Results  interface{} `json:"results"`
}

// NewResponse builds a paginated response for the given page. basePath is the
// request path used to construct the next/previous links.
func NewResponse(results interface{}, count int, p Params, basePath string) *Response {
	resp := &Response{
		Count:   count,
		Results: results,
	}
	if p.HasNext(count) {
		next := pageURL(basePath, p.Limit, p.NextOffset())
		resp.Next = &next
	}
	if p.HasPrevious() {
		prev := pageURL(basePath, p.Limit, p.PreviousOffset())
		resp.Previous = &prev
	}
	return resp
}

func pageURL(basePath string, limit, offset int) string {
	if offset == 0 {
		return fmt.Sprintf("%s?limit=%d", basePath, limit)
	}
	return fmt.Sprintf("%s?limit=%d&offset=%d", basePath, limit, offset)
}

// HasNext returns true if there are more results after the current page.
func (p Params) HasNext(total int) bool {
	return p.Offset+p.Limit < total
}

// HasPrevious returns true if there are results before the current page.
func (p Params) HasPrevious() bool {
	return p.Offset > 0
}

// NextOffset returns the offset for the next page.
func (p Params) NextOffset() int {
	return p.Offset + p.Limit
}

// PreviousOffset returns the offset for the previous page.
// Returns 0 if the result would be negative.
func (p Params) PreviousOffset() int {
	prev := p.Offset - p.Limit
	if prev < 0 {
		return 0
	}
	return prev
}
