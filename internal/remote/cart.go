package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
)

// AddCart puts qty units of pno into the member's cart and returns the
// backend's message.
func (c *Client) AddCart(ctx context.Context, token, userID string, pno int64, qty int) (string, error) {
	body, contentType, err := formBody(map[string]string{
		"userId":    userID,
		"pNo":       strconv.FormatInt(pno, 10),
		"numOfItem": strconv.Itoa(qty),
	})
	if err != nil {
		return "", err
	}

	data, err := c.do(ctx, http.MethodPost, c.endpoint("/user/cart", nil), body, contentType, token)
	if err != nil {
		return "", err
	}
	return message(data), nil
}

func formBody(fields map[string]string) (io.Reader, string, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, "", fmt.Errorf("failed to write form field %q: %w", k, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close multipart writer: %w", err)
	}
	return &body, w.FormDataContentType(), nil
}

func jsonBody(v any) (io.Reader, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request payload: %w", err)
	}
	return bytes.NewReader(data), nil
}
