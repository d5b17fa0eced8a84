package listing

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"audimew-storefront/internal/model"
)

var productCategories = []string{"전체", "헤드셋", "이어폰", "스피커", "앰프"}

// recordingFetcher serves pages of n items with a fixed page count and
// records every request it receives.
type recordingFetcher struct {
	mu        sync.Mutex
	requests  []model.PageRequest
	items     int
	totalPage int
	err       error
}

func (f *recordingFetcher) fetch(ctx context.Context, req model.PageRequest) (model.PageResult[model.Product], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	if f.err != nil {
		return model.PageResult[model.Product]{}, f.err
	}
	return page(req, f.items, f.totalPage), nil
}

func page(req model.PageRequest, n, totalPage int) model.PageResult[model.Product] {
	items := make([]model.Product, n)
	for i := range items {
		items[i] = model.Product{Pno: int64(req.Page*100 + i), Pname: "item", Category: req.Category}
	}
	nums := make([]int, totalPage)
	for i := range nums {
		nums[i] = i + 1
	}
	return model.PageResult[model.Product]{
		DTOList:        items,
		PageRequestDTO: model.PageRequestDTO{Page: req.Page, Size: req.Size},
		TotalCount:     n,
		PageNumList:    nums,
		TotalPage:      totalPage,
		Current:        req.Page,
	}
}

func newProductView(f Fetcher[model.Product]) *View[model.Product] {
	return New(f, Options{
		Name:         "products",
		PageSize:     12,
		Categories:   productCategories,
		EmptyMessage: ProductsEmptyMessage,
	}, zap.NewNop())
}

func TestView_InitialLoadScenario(t *testing.T) {
	f := &recordingFetcher{items: 12, totalPage: 3}
	v := newProductView(f.fetch)

	snap, err := v.Load(context.Background())
	require.NoError(t, err)

	require.Len(t, f.requests, 1)
	assert.Equal(t, model.PageRequest{Page: 1, Size: 12, Category: "전체"}, f.requests[0])
	assert.Equal(t, "전체", snap.SelectedCategory)
	assert.Len(t, snap.Result.DTOList, 12)
	assert.Equal(t, 1, snap.Result.Current)
	require.Len(t, snap.Pager.Pages, 3)
	assert.True(t, snap.Pager.Pages[0].Current)
	assert.False(t, snap.Empty)
	assert.Empty(t, snap.EmptyMessage)
}

func TestView_SelectCategoryResetsPage(t *testing.T) {
	f := &recordingFetcher{items: 12, totalPage: 3}
	v := newProductView(f.fetch)
	ctx := context.Background()

	_, err := v.Load(ctx)
	require.NoError(t, err)
	snap, err := v.SelectPage(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, snap.CurrentPage)
	assert.True(t, snap.ScrollTop)

	snap, err = v.SelectCategory(ctx, "스피커")
	require.NoError(t, err)

	require.Len(t, f.requests, 3)
	assert.Equal(t, model.PageRequest{Page: 1, Size: 12, Category: "스피커"}, f.requests[2])
	assert.Equal(t, 1, snap.CurrentPage)
	assert.Equal(t, 1, snap.Result.Current)
	assert.Equal(t, "스피커", snap.SelectedCategory)
	assert.False(t, snap.ScrollTop)
}

func TestView_CurrentFollowsRequestedPage(t *testing.T) {
	f := &recordingFetcher{items: 12, totalPage: 5}
	v := newProductView(f.fetch)

	for _, p := range []int{3, 1, 5, 2} {
		snap, err := v.SelectPage(context.Background(), p)
		require.NoError(t, err)
		assert.Equal(t, p, snap.Result.Current)
	}
	assert.Len(t, f.requests, 4, "one request per transition")
}

func TestView_EmptyState(t *testing.T) {
	testCases := []struct {
		name      string
		items     int
		totalPage int
	}{
		{name: "Zero pages", items: 0, totalPage: 0},
		{name: "No items", items: 0, totalPage: 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := &recordingFetcher{items: tc.items, totalPage: tc.totalPage}
			v := newProductView(f.fetch)

			snap, err := v.SelectCategory(context.Background(), "앰프")
			require.NoError(t, err)
			assert.True(t, snap.Empty)
			assert.Equal(t, ProductsEmptyMessage, snap.EmptyMessage)
			assert.Empty(t, snap.Result.DTOList)
		})
	}
}

func TestView_FetchFailureKeepsResult(t *testing.T) {
	f := &recordingFetcher{items: 12, totalPage: 3}
	v := newProductView(f.fetch)
	ctx := context.Background()

	_, err := v.Load(ctx)
	require.NoError(t, err)

	f.err = errors.New("connection refused")
	snap, err := v.SelectPage(ctx, 2)
	require.Error(t, err)

	assert.Equal(t, 1, snap.Result.Current, "previous result is kept")
	assert.Len(t, snap.Result.DTOList, 12)
	assert.Equal(t, 2, snap.CurrentPage)
}

func TestView_FailureOnFirstFetchKeepsEmptyResult(t *testing.T) {
	f := &recordingFetcher{err: errors.New("connection refused")}
	v := newProductView(f.fetch)

	snap, err := v.Load(context.Background())
	require.Error(t, err)
	assert.Empty(t, snap.Result.DTOList)
	assert.True(t, snap.Empty)
	assert.Zero(t, snap.Generation)
}

func TestView_UnknownCategoryIssuesNoFetch(t *testing.T) {
	f := &recordingFetcher{items: 1, totalPage: 1}
	v := newProductView(f.fetch)

	_, err := v.SelectCategory(context.Background(), "뮤지컬")
	assert.ErrorIs(t, err, ErrUnknownCategory)

	_, err = v.SelectPage(context.Background(), 0)
	assert.ErrorIs(t, err, ErrInvalidPage)
	assert.Empty(t, f.requests)
}

func TestView_DiscardsOutOfOrderResponses(t *testing.T) {
	started := make(chan int, 2)
	release := map[int]chan struct{}{2: make(chan struct{}), 3: make(chan struct{})}

	fetch := func(ctx context.Context, req model.PageRequest) (model.PageResult[model.Product], error) {
		started <- req.Page
		<-release[req.Page]
		return page(req, 12, 3), nil
	}
	v := newProductView(fetch)
	ctx := context.Background()

	slow := make(chan Snapshot[model.Product], 1)
	go func() {
		snap, err := v.SelectPage(ctx, 2)
		assert.NoError(t, err)
		slow <- snap
	}()
	require.Equal(t, 2, waitFor(t, started))

	fast := make(chan Snapshot[model.Product], 1)
	go func() {
		snap, err := v.SelectPage(ctx, 3)
		assert.NoError(t, err)
		fast <- snap
	}()
	require.Equal(t, 3, waitFor(t, started))

	// The newer request resolves first.
	close(release[3])
	latest := <-fast
	assert.False(t, latest.Superseded)
	assert.Equal(t, 3, latest.Result.Current)

	// The stale response arrives last and must not win.
	close(release[2])
	stale := <-slow
	assert.True(t, stale.Superseded)
	assert.Equal(t, 3, stale.Result.Current)

	assert.Equal(t, 3, v.Snapshot().Result.Current)
	assert.Equal(t, 1, v.Dropped())
}

func TestView_SupersededFailureIsNotAnError(t *testing.T) {
	started := make(chan int, 2)
	release := map[int]chan struct{}{2: make(chan struct{}), 3: make(chan struct{})}

	fetch := func(ctx context.Context, req model.PageRequest) (model.PageResult[model.Product], error) {
		started <- req.Page
		<-release[req.Page]
		if req.Page == 2 {
			return model.PageResult[model.Product]{}, errors.New("connection reset")
		}
		return page(req, 12, 3), nil
	}
	v := newProductView(fetch)
	ctx := context.Background()

	type outcome struct {
		snap Snapshot[model.Product]
		err  error
	}
	slow := make(chan outcome, 1)
	go func() {
		snap, err := v.SelectPage(ctx, 2)
		slow <- outcome{snap, err}
	}()
	require.Equal(t, 2, waitFor(t, started))

	fast := make(chan outcome, 1)
	go func() {
		snap, err := v.SelectPage(ctx, 3)
		fast <- outcome{snap, err}
	}()
	require.Equal(t, 3, waitFor(t, started))

	// The older request fails while the newer one is still in flight.
	close(release[2])
	stale := <-slow
	require.NoError(t, stale.err)
	assert.True(t, stale.snap.Superseded)

	close(release[3])
	latest := <-fast
	require.NoError(t, latest.err)
	assert.False(t, latest.snap.Superseded)
	assert.Equal(t, 3, latest.snap.Result.Current)
	assert.Equal(t, 1, v.Dropped())
}

func waitFor(t *testing.T, ch <-chan int) int {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for fetch to start")
		return 0
	}
}
