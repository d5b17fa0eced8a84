// Package pager renders page-number controls and slices client-side pages.
package pager

import "strconv"

// Control is one clickable element of the pager row.
type Control struct {
	Label   string `json:"label"`
	Page    int    `json:"page"`
	Current bool   `json:"current"`
}

// Controls is the rendered pager row.
type Controls struct {
	Prev  *Control  `json:"prev,omitempty"`
	Pages []Control `json:"pages"`
	Next  *Control  `json:"next,omitempty"`
}

// Pager is stateless: it renders from Current and Total and forwards clicks
// to OnPageChange. It does not clamp; the caller supplies a valid Total.
type Pager struct {
	Current      int
	Total        int
	OnPageChange func(page int)
}

// Controls returns exactly Total numbered controls with Current highlighted,
// plus prev/next when there is somewhere to go.
func (p Pager) Controls() Controls {
	out := Controls{Pages: make([]Control, 0, max(p.Total, 0))}
	for n := 1; n <= p.Total; n++ {
		out.Pages = append(out.Pages, Control{Label: strconv.Itoa(n), Page: n, Current: n == p.Current})
	}
	if p.Current > 1 && p.Total > 0 {
		out.Prev = &Control{Label: "이전", Page: p.Current - 1}
	}
	if p.Current < p.Total {
		out.Next = &Control{Label: "다음", Page: p.Current + 1}
	}
	return out
}

// Click reports a page choice to the owner.
func (p Pager) Click(page int) {
	if p.OnPageChange != nil {
		p.OnPageChange(page)
	}
}

// TotalPages is ceil(n / perPage).
func TotalPages(n, perPage int) int {
	if n <= 0 || perPage <= 0 {
		return 0
	}
	return (n + perPage - 1) / perPage
}

// Paginate returns the 1-based page of items. Out-of-range pages are empty.
func Paginate[T any](items []T, page, perPage int) []T {
	if page < 1 || perPage <= 0 {
		return []T{}
	}
	start := (page - 1) * perPage
	if start >= len(items) {
		return []T{}
	}
	end := min(start+perPage, len(items))
	return items[start:end]
}
