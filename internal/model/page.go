package model

import (
	"net/url"
	"strconv"
)

// AllCategory selects every item of a vertical.
const AllCategory = "전체"

// PageRequest describes which slice of a collection to fetch.
type PageRequest struct {
	Page     int    `json:"page" validate:"gte=1"`
	Size     int    `json:"size" validate:"gt=0"`
	Category string `json:"category,omitempty"`
}

// Query returns page and size as query parameters.
func (r PageRequest) Query() url.Values {
	q := url.Values{}
	q.Set("page", strconv.Itoa(r.Page))
	q.Set("size", strconv.Itoa(r.Size))
	return q
}

// FilterQuery is Query plus the category, repeated only when it narrows the
// listing.
func (r PageRequest) FilterQuery() url.Values {
	q := r.Query()
	if r.Category != "" && r.Category != AllCategory {
		q.Set("category", r.Category)
	}
	return q
}

// PageRequestDTO echoes the request parameters inside a PageResult.
type PageRequestDTO struct {
	Page int `json:"page"`
	Size int `json:"size"`
}

// PageResult is the backend's envelope for a paginated list.
type PageResult[T any] struct {
	DTOList        []T            `json:"dtoList" validate:"dive"`
	PageRequestDTO PageRequestDTO `json:"pageRequestDTO"`
	TotalCount     int            `json:"totalCount" validate:"gte=0"`
	PageNumList    []int          `json:"pageNumList" validate:"dive,gte=1"`
	Prev           bool           `json:"prev"`
	Next           bool           `json:"next"`
	PrevPage       int            `json:"prevPage" validate:"gte=0"`
	NextPage       int            `json:"nextPage" validate:"gte=0"`
	TotalPage      int            `json:"totalPage" validate:"gte=0"`
	Current        int            `json:"current" validate:"gte=0"`
}

// Normalize fills fields some endpoints leave out. The product listing reports
// the current page only through pageRequestDTO.
func (p *PageResult[T]) Normalize() {
	if p.Current == 0 {
		p.Current = p.PageRequestDTO.Page
	}
	if p.DTOList == nil {
		p.DTOList = []T{}
	}
	if p.PageNumList == nil {
		p.PageNumList = []int{}
	}
}

// EmptyPage returns the initial result a view holds before its first fetch.
func EmptyPage[T any]() PageResult[T] {
	return PageResult[T]{
		DTOList:     []T{},
		PageNumList: []int{},
		TotalPage:   1,
		Current:     1,
	}
}
