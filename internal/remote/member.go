package remote

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"audimew-storefront/internal/model"
)

// CheckID asks whether userID is still free.
func (c *Client) CheckID(ctx context.Context, userID string) (bool, error) {
	q := url.Values{}
	q.Set("userId", userID)
	res, err := getJSON[model.Result](ctx, c, "/member/checkId", q, "")
	if err != nil {
		return false, err
	}
	return res.Success, nil
}

// Register creates a member account.
func (c *Client) Register(ctx context.Context, req model.SignupRequest) (*model.Result, error) {
	return sendJSON[model.Result](ctx, c, http.MethodPost, "/member/register", req, "")
}

// Profile fetches the my-page profile of userID.
func (c *Client) Profile(ctx context.Context, token, userID string) (*model.Profile, error) {
	return getJSON[model.Profile](ctx, c, "/member/profile/"+url.PathEscape(userID), nil, token)
}

// DeleteReview removes one of the member's reviews. A body of false means
// the backend refused.
func (c *Client) DeleteReview(ctx context.Context, token string, reviewNo int64) (bool, error) {
	data, err := c.do(ctx, http.MethodDelete, c.endpoint("/member/review/"+strconv.FormatInt(reviewNo, 10), nil), nil, "", token)
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(string(data)) != "false", nil
}

// UpdateProfileImage uploads a new profile image for userID.
func (c *Client) UpdateProfileImage(ctx context.Context, token, userID, filename string, image io.Reader) error {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("profileImage", filename)
	if err != nil {
		return fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, image); err != nil {
		return fmt.Errorf("failed to copy profile image: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close multipart writer: %w", err)
	}

	_, err = c.do(ctx, http.MethodPost, c.endpoint("/member/profile-image/"+url.PathEscape(userID), nil), &body, w.FormDataContentType(), token)
	return err
}

// DeleteProfileImage removes the profile image of userID.
func (c *Client) DeleteProfileImage(ctx context.Context, token, userID string) error {
	_, err := c.do(ctx, http.MethodDelete, c.endpoint("/member/profile-image/"+url.PathEscape(userID), nil), nil, "", token)
	return err
}

// ProfileImageURL returns the public URL of a stored profile image, or an
// empty string when the member has none.
func (c *Client) ProfileImageURL(name string) string {
	if name == "" {
		return ""
	}
	return c.imageURL + "/member/profile-image/" + url.PathEscape(name)
}
