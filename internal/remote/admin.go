package remote

import (
	"context"
	"io"
	"net/http"
	"strconv"

	"audimew-storefront/internal/model"
)

// AdminProduct fetches a product for the editor.
func (c *Client) AdminProduct(ctx context.Context, token string, pno int64) (*model.Product, error) {
	return getJSON[model.Product](ctx, c, "/admin/product/read/"+strconv.FormatInt(pno, 10), nil, token)
}

// ModifyProduct submits an edited product as a multipart form and returns
// the backend's message.
func (c *Client) ModifyProduct(ctx context.Context, token string, form io.Reader, contentType string) (string, error) {
	data, err := c.do(ctx, http.MethodPut, c.endpoint("/admin/product/modify", nil), form, contentType, token)
	if err != nil {
		return "", err
	}
	return message(data), nil
}
