package soap4me

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/mmcdole/soap4/internal/domain"
)

// Login exchanges credentials for a session token.
// A well-formed response with ok=false yields domain.ErrLoginIncorrect.
func (c *Client) Login(ctx context.Context, username, password string) (*domain.AuthResult, error) {
	const op = "login"
	form := url.Values{
		"login":    {username},
		"password": {password},
	}
	data, err := c.doRequest(ctx, op, http.MethodPost, "/login/", nil, form)
	if err != nil {
		return nil, err
	}

	var resp LoginResponse
	if err := c.decode(op, data, &resp); err != nil {
		return nil, err
	}
	if !resp.OK || resp.Token == "" {
		c.logger.Info("login rejected")
		return nil, fmt.Errorf("%s: %w", op, domain.ErrLoginIncorrect)
	}

	c.logger.Info("login succeeded", "expiresAt", int64(resp.Till))
	return &domain.AuthResult{
		Token:            resp.Token,
		ExpiresAtSeconds: int64(resp.Till),
	}, nil
}
