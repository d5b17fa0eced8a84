package member

import (
	"cmp"
	"math"
	"slices"

	"audimew-storefront/internal/format"
	"audimew-storefront/internal/model"
	"audimew-storefront/internal/pager"
)

const (
	PointsPerPage  = 5
	ReviewsPerPage = 4
	maxStars       = 5
)

// PointLine is one rendered row of the point history.
type PointLine struct {
	model.Point
	Display string `json:"display"`
	Earned  bool   `json:"earned"`
}

// PointPage is one page of a member's point history.
type PointPage struct {
	TotalPoint        int            `json:"totalPoint"`
	TotalPointDisplay string         `json:"totalPointDisplay"`
	Lines             []PointLine    `json:"lines"`
	Pager             pager.Controls `json:"pager"`
	Current           int            `json:"current"`
	TotalPage         int            `json:"totalPage"`
	Empty             bool           `json:"empty"`
}

// PointHistory drops zero-amount entries, orders the rest newest first and
// returns the requested page.
func PointHistory(points []model.Point, totalPoint, page int) PointPage {
	kept := make([]model.Point, 0, len(points))
	for _, p := range points {
		if p.PointAmount != 0 {
			kept = append(kept, p)
		}
	}
	slices.SortStableFunc(kept, func(a, b model.Point) int {
		return cmp.Compare(b.PointID, a.PointID)
	})

	total := pager.TotalPages(len(kept), PointsPerPage)
	lines := make([]PointLine, 0, PointsPerPage)
	for _, p := range pager.Paginate(kept, page, PointsPerPage) {
		lines = append(lines, PointLine{
			Point:   p,
			Display: format.SignedPoints(p.PointAmount),
			Earned:  p.PointAmount > 0,
		})
	}

	return PointPage{
		TotalPoint:        totalPoint,
		TotalPointDisplay: format.Number(int64(totalPoint)) + "P",
		Lines:             lines,
		Pager:             pager.Pager{Current: page, Total: total}.Controls(),
		Current:           page,
		TotalPage:         total,
		Empty:             len(kept) == 0,
	}
}

// Stars is the star breakdown of a rating out of five.
type Stars struct {
	Full  int `json:"full"`
	Half  int `json:"half"`
	Empty int `json:"empty"`
}

// StarsFor splits a rating into full, half and empty stars.
func StarsFor(rating float64) Stars {
	rating = math.Max(0, math.Min(maxStars, rating))
	s := Stars{
		Full:  int(math.Floor(rating)),
		Empty: int(math.Floor(maxStars - rating)),
	}
	if rating != math.Trunc(rating) {
		s.Half = 1
	}
	return s
}

// ReviewLine is one rendered review.
type ReviewLine struct {
	model.Review
	Stars Stars `json:"stars"`
}

// ReviewPage is one page of a member's reviews.
type ReviewPage struct {
	Lines     []ReviewLine   `json:"lines"`
	Pager     pager.Controls `json:"pager"`
	Current   int            `json:"current"`
	TotalPage int            `json:"totalPage"`
	Empty     bool           `json:"empty"`
}

// ReviewHistory orders reviews newest first and returns the requested page.
func ReviewHistory(reviews []model.Review, page int) ReviewPage {
	sorted := slices.Clone(reviews)
	slices.SortStableFunc(sorted, func(a, b model.Review) int {
		return cmp.Compare(b.PreviewNo, a.PreviewNo)
	})

	total := pager.TotalPages(len(sorted), ReviewsPerPage)
	lines := make([]ReviewLine, 0, ReviewsPerPage)
	for _, r := range pager.Paginate(sorted, page, ReviewsPerPage) {
		lines = append(lines, ReviewLine{Review: r, Stars: StarsFor(r.ReviewRating)})
	}

	return ReviewPage{
		Lines:     lines,
		Pager:     pager.Pager{Current: page, Total: total}.Controls(),
		Current:   page,
		TotalPage: total,
		Empty:     len(sorted) == 0,
	}
}
