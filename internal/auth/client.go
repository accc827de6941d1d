package auth

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/juanbetancurm/frontBurger/internal/backend"
	"github.com/juanbetancurm/frontBurger/internal/session"
)

type Client struct {
	api *backend.Client
	log *slog.Logger
}

func NewClient(api *backend.Client, log *slog.Logger) *Client {
	return &Client{api: api, log: log}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token  string `json:"token"`
	UserID int64  `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

// Login exchanges credentials for a token and the caller's identity. The
// session store is untouched here; the handler decides what to persist.
func (c *Client) Login(ctx context.Context, email, password string) (session.User, string, error) {
	var resp loginResponse
	err := c.api.DoJSON(ctx, http.MethodPost, "/api/auth/login", nil, loginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return session.User{}, "", err
	}

	user := session.User{ID: resp.UserID, Email: resp.Email, Role: resp.Role}
	c.log.Info("login succeeded", "email", user.Email, "role", user.Role)
	return user, resp.Token, nil
}
