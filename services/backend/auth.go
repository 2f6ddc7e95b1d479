package backend

import (
	"context"
	"net/http"

	"github.com/YarKhan02/Workshop-sub000/models"
)

type loginResponse struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

func (c *Client) Login(ctx context.Context, email, password string) (*models.User, error) {
	body := map[string]string{"email": email, "password": password}
	var resp loginResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login/", nil, body, &resp); err != nil {
		return nil, err
	}
	user := resp.User
	user.Token = resp.Token
	return &user, nil
}
