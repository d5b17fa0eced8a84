package store

import "audimew-storefront/internal/model"

// blockSize is how many page numbers one pager block shows.
const blockSize = 10

// NewPageResult builds the page envelope for items, which is page req.Page
// of total matching rows. Page numbers come in blocks of ten: page 13 of 30
// shows 11..20 with prev and next set.
func NewPageResult[T any](items []T, req model.PageRequest, total int) model.PageResult[T] {
	end := ceilDiv(req.Page, blockSize) * blockSize
	start := end - (blockSize - 1)
	last := ceilDiv(total, req.Size)
	end = min(end, last)

	prev := start > 1
	next := total > end*req.Size

	nums := make([]int, 0, blockSize)
	for i := start; i <= end; i++ {
		nums = append(nums, i)
	}

	res := model.PageResult[T]{
		DTOList:        items,
		PageRequestDTO: model.PageRequestDTO{Page: req.Page, Size: req.Size},
		TotalCount:     total,
		PageNumList:    nums,
		Prev:           prev,
		Next:           next,
		TotalPage:      last,
		Current:        req.Page,
	}
	if prev {
		res.PrevPage = start - 1
	}
	if next {
		res.NextPage = end + 1
	}
	if res.DTOList == nil {
		res.DTOList = []T{}
	}
	return res
}

func ceilDiv(a, b int) int {
	if b <= 0 || a <= 0 {
		return 0
	}
	return (a + b - 1) / b
}
