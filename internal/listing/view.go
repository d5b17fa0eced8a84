package listing

import (
	"context"
	"errors"
	"slices"
	"sync"

	"go.uber.org/zap"

	"audimew-storefront/internal/model"
	"audimew-storefront/internal/pager"
)

const (
	// ProductsEmptyMessage is shown when a product category has no items.
	ProductsEmptyMessage = "현재 이 카테고리의 상품이 없습니다."
	// ConcertsEmptyMessage is shown when a concert category has no items.
	ConcertsEmptyMessage = "현재 이 카테고리의 공연이 없습니다."
)

var (
	ErrUnknownCategory = errors.New("listing: unknown category")
	ErrInvalidPage     = errors.New("listing: page must be at least 1")
)

// Fetcher turns a page request into one backend round trip.
type Fetcher[T any] func(ctx context.Context, req model.PageRequest) (model.PageResult[T], error)

// Options configures a View.
type Options struct {
	Name         string
	PageSize     int
	Categories   []string
	EmptyMessage string
}

// Snapshot is what a view renders from.
type Snapshot[T any] struct {
	SelectedCategory string              `json:"selectedCategory"`
	CurrentPage      int                 `json:"currentPage"`
	Categories       []string            `json:"categories"`
	Result           model.PageResult[T] `json:"result"`
	Pager            pager.Controls      `json:"pager"`
	Empty            bool                `json:"empty"`
	EmptyMessage     string              `json:"emptyMessage,omitempty"`
	ScrollTop        bool                `json:"scrollTop"`
	Generation       uint64              `json:"generation"`
	Superseded       bool                `json:"superseded"`
}

// View owns the paging state of one list screen: the selected category, the
// current page and exactly one result. Every transition issues a fresh fetch
// tagged with a generation number; a response is applied only when its
// generation is still the latest one issued.
type View[T any] struct {
	fetch Fetcher[T]
	opts  Options
	log   *zap.Logger

	mu        sync.Mutex
	category  string
	page      int
	scrollTop bool
	result    model.PageResult[T]
	issued    uint64
	applied   uint64
	dropped   int
}

// New returns a view on page 1 of the all-category with an empty result.
func New[T any](fetch Fetcher[T], opts Options, log *zap.Logger) *View[T] {
	if len(opts.Categories) == 0 {
		opts.Categories = []string{model.AllCategory}
	}
	return &View[T]{
		fetch:    fetch,
		opts:     opts,
		log:      log.With(zap.String("view", opts.Name)),
		category: model.AllCategory,
		page:     1,
		result:   model.EmptyPage[T](),
	}
}

// Load fetches the current state, as on first display.
func (v *View[T]) Load(ctx context.Context) (Snapshot[T], error) {
	v.mu.Lock()
	req, gen := v.issueLocked()
	v.mu.Unlock()
	return v.run(ctx, req, gen)
}

// SelectCategory switches to category c and goes back to page 1.
func (v *View[T]) SelectCategory(ctx context.Context, c string) (Snapshot[T], error) {
	if !slices.Contains(v.opts.Categories, c) {
		return v.Snapshot(), ErrUnknownCategory
	}

	v.mu.Lock()
	v.category = c
	v.page = 1
	v.scrollTop = false
	req, gen := v.issueLocked()
	v.mu.Unlock()
	return v.run(ctx, req, gen)
}

// SelectPage moves to page p and asks the client to scroll to the top.
func (v *View[T]) SelectPage(ctx context.Context, p int) (Snapshot[T], error) {
	if p < 1 {
		return v.Snapshot(), ErrInvalidPage
	}

	v.mu.Lock()
	v.page = p
	v.scrollTop = true
	req, gen := v.issueLocked()
	v.mu.Unlock()
	return v.run(ctx, req, gen)
}

// Snapshot returns the current state without fetching.
func (v *View[T]) Snapshot() Snapshot[T] {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.snapshotLocked()
}

// Dropped returns how many responses arrived after a newer request had been
// issued and were discarded.
func (v *View[T]) Dropped() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.dropped
}

func (v *View[T]) issueLocked() (model.PageRequest, uint64) {
	v.issued++
	return model.PageRequest{Page: v.page, Size: v.opts.PageSize, Category: v.category}, v.issued
}

func (v *View[T]) run(ctx context.Context, req model.PageRequest, gen uint64) (Snapshot[T], error) {
	res, err := v.fetch(ctx, req)

	v.mu.Lock()
	defer v.mu.Unlock()

	// A newer request owns the view; this outcome, failure or not, is moot.
	if gen != v.issued {
		v.dropped++
		v.log.Debug("discarding superseded response",
			zap.Uint64("generation", gen), zap.Uint64("latest", v.issued), zap.Error(err))
		snap := v.snapshotLocked()
		snap.Superseded = true
		return snap, nil
	}

	if err != nil {
		v.log.Error("list fetch failed, keeping previous result",
			zap.String("category", req.Category), zap.Int("page", req.Page),
			zap.Uint64("generation", gen), zap.Error(err))
		return v.snapshotLocked(), err
	}

	res.Normalize()
	v.result = res
	v.applied = gen
	return v.snapshotLocked(), nil
}

func (v *View[T]) snapshotLocked() Snapshot[T] {
	res := v.result
	res.DTOList = slices.Clone(res.DTOList)
	res.PageNumList = slices.Clone(res.PageNumList)

	empty := res.TotalPage == 0 || len(res.DTOList) == 0
	snap := Snapshot[T]{
		SelectedCategory: v.category,
		CurrentPage:      v.page,
		Categories:       slices.Clone(v.opts.Categories),
		Result:           res,
		Pager:            pager.Pager{Current: res.Current, Total: res.TotalPage}.Controls(),
		Empty:            empty,
		ScrollTop:        v.scrollTop,
		Generation:       v.applied,
	}
	if empty {
		snap.EmptyMessage = v.opts.EmptyMessage
	}
	return snap
}
