package remote

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"audimew-storefront/internal/model"
)

// ListConcerts fetches one page of concerts. A narrowing category is sent in
// both the path and the query, which is what the reservation backend expects.
func (c *Client) ListConcerts(ctx context.Context, req model.PageRequest) (model.PageResult[model.Concert], error) {
	if err := c.validate.Struct(req); err != nil {
		return model.PageResult[model.Concert]{}, fmt.Errorf("invalid page request: %w", err)
	}

	path := "/concert/list/" + url.PathEscape(categoryOrAll(req.Category))
	page, err := getJSON[model.PageResult[model.Concert]](ctx, c, path, req.FilterQuery(), "")
	if err != nil {
		return model.PageResult[model.Concert]{}, err
	}
	page.Normalize()
	return *page, nil
}

// ReadConcert fetches a single concert.
func (c *Client) ReadConcert(ctx context.Context, cno int64) (*model.Concert, error) {
	return getJSON[model.Concert](ctx, c, "/concert/read/"+strconv.FormatInt(cno, 10), nil, "")
}

// ConcertSchedule fetches the performance of cno starting at startTime.
func (c *Client) ConcertSchedule(ctx context.Context, cno int64, startTime string) (*model.ConcertSchedule, error) {
	q := url.Values{}
	q.Set("cno", strconv.FormatInt(cno, 10))
	q.Set("startTime", startTime)
	return getJSON[model.ConcertSchedule](ctx, c, "/concert/reservation", q, "")
}

// ConcertImageURL returns the poster of cn.
func (c *Client) ConcertImageURL(cn model.Concert) string {
	if cn.UploadFileName == nil || *cn.UploadFileName == "" {
		return DefaultImage
	}
	return c.imageURL + "/concert/view/" + url.PathEscape(*cn.UploadFileName)
}
