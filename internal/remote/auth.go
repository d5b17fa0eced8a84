package remote

import (
	"context"
	"net/http"

	"audimew-storefront/internal/model"
)

type loginRequest struct {
	UserID string `json:"userId"`
	UserPw string `json:"userPw"`
}

type logoutRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// Login exchanges credentials for tokens.
func (c *Client) Login(ctx context.Context, userID, password string) (*model.LoginResult, error) {
	return sendJSON[model.LoginResult](ctx, c, http.MethodPost, "/auth/login", loginRequest{UserID: userID, UserPw: password}, "")
}

// Logout revokes the refresh token.
func (c *Client) Logout(ctx context.Context, refreshToken string) error {
	body, err := jsonBody(logoutRequest{RefreshToken: refreshToken})
	if err != nil {
		return err
	}
	_, err = c.do(ctx, http.MethodPost, c.endpoint("/auth/logout", nil), body, "application/json", "")
	return err
}
