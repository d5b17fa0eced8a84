package mirror

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"audimew-storefront/internal/model"
	"audimew-storefront/internal/remote"
)

type lister[T any] func(ctx context.Context, req model.PageRequest) (model.PageResult[T], error)

// fetchAll reads page 1 to learn the page count, then hands the remaining
// pages to a pool of workers. Items come back in page order. Pages that
// failed are reported in the error while the rest are still returned.
// A page count that disagrees with totalCount or exceeds maxPages is
// rejected before anything else is fetched.
func fetchAll[T any](ctx context.Context, list lister[T], size, workers, maxPages int) ([]T, error) {
	first, err := list(ctx, model.PageRequest{Page: 1, Size: size})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch page 1: %w", err)
	}
	if err := checkPageCount(first.TotalPage, first.TotalCount, size, maxPages); err != nil {
		return nil, err
	}
	items := append([]T(nil), first.DTOList...)
	if first.TotalPage <= 1 {
		return items, nil
	}

	pages := make([][]T, first.TotalPage+1)
	jobs := make(chan int)

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for range max(1, min(workers, first.TotalPage-1)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for page := range jobs {
				res, err := list(ctx, model.PageRequest{Page: page, Size: size})
				if err != nil {
					mu.Lock()
					errs = append(errs, fmt.Errorf("failed to fetch page %d: %w", page, err))
					mu.Unlock()
					continue
				}
				pages[page] = res.DTOList
			}
		}()
	}

dispatch:
	for page := 2; page <= first.TotalPage; page++ {
		select {
		case jobs <- page:
		case <-ctx.Done():
			mu.Lock()
			errs = append(errs, ctx.Err())
			mu.Unlock()
			break dispatch
		}
	}
	close(jobs)
	wg.Wait()

	for _, p := range pages[2:] {
		items = append(items, p...)
	}
	return items, errors.Join(errs...)
}

func checkPageCount(totalPage, totalCount, size, maxPages int) error {
	want := 0
	if totalCount > 0 && size > 0 {
		want = (totalCount-1)/size + 1
	}
	if totalPage > want {
		return fmt.Errorf("%w: totalPage %d for %d items of size %d", remote.ErrMalformed, totalPage, totalCount, size)
	}
	if totalPage > maxPages {
		return fmt.Errorf("%w: totalPage %d exceeds the limit of %d", remote.ErrMalformed, totalPage, maxPages)
	}
	return nil
}
