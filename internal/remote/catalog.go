package remote

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"audimew-storefront/internal/model"
)

// ListProducts fetches one page of the catalog. The category travels in the
// path only.
func (c *Client) ListProducts(ctx context.Context, req model.PageRequest) (model.PageResult[model.Product], error) {
	if err := c.validate.Struct(req); err != nil {
		return model.PageResult[model.Product]{}, fmt.Errorf("invalid page request: %w", err)
	}

	path := "/products/list/" + url.PathEscape(categoryOrAll(req.Category))
	page, err := getJSON[model.PageResult[model.Product]](ctx, c, path, req.Query(), "")
	if err != nil {
		return model.PageResult[model.Product]{}, err
	}
	page.Normalize()
	return *page, nil
}

// ReadProduct fetches a single product with its review summary.
func (c *Client) ReadProduct(ctx context.Context, pno int64) (*model.ProductDetail, error) {
	return getJSON[model.ProductDetail](ctx, c, "/products/read/"+strconv.FormatInt(pno, 10), nil, "")
}

// ProductThumbnailURL returns the list-card image of p.
func (c *Client) ProductThumbnailURL(p model.Product) string {
	if len(p.UploadFileNames) == 0 || p.UploadFileNames[0] == "" {
		return DefaultImage
	}
	return c.imageURL + "/product/view/s_" + url.PathEscape(p.UploadFileNames[0])
}

// ProductImageURL returns the full-size image of p.
func (c *Client) ProductImageURL(p model.Product) string {
	if len(p.UploadFileNames) == 0 || p.UploadFileNames[0] == "" {
		return DefaultImage
	}
	return c.imageURL + "/product/view/" + url.PathEscape(p.UploadFileNames[0])
}

// DefaultImage is shown for items without an uploaded image.
const DefaultImage = "/images/default.png"

func categoryOrAll(category string) string {
	if category == "" {
		return model.AllCategory
	}
	return category
}
