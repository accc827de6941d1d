package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/juanbetancurm/frontBurger/internal/auth"
	"github.com/juanbetancurm/frontBurger/internal/backend"
	"github.com/juanbetancurm/frontBurger/internal/logging"
	"github.com/juanbetancurm/frontBurger/internal/session"
)

type AuthHandler struct {
	Auth     *auth.Client
	Sessions *session.Store
}

type loginForm struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var form loginForm
	if err := c.Bind(&form); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("invalid request body"))
	}
	if form.Email == "" || form.Password == "" {
		return c.JSON(http.StatusBadRequest, errorBody("email and password are required"))
	}

	user, token, err := h.Auth.Login(ctx, form.Email, form.Password)
	if err != nil {
		l.Warn("login failed", "email", form.Email, "error", err)
		if errors.Is(err, backend.ErrUnauthorized) || errors.Is(err, backend.ErrForbidden) {
			return c.JSON(http.StatusUnauthorized, errorBody(MsgLoginFailed))
		}
		return backendError(c, err)
	}

	if err := h.Sessions.Login(user, token); err != nil {
		l.Error("session persist failed", "error", err)
		return c.JSON(http.StatusInternalServerError, errorBody(MsgServerError))
	}

	return c.JSON(http.StatusOK, session.Session{Token: token, User: user})
}

func (h *AuthHandler) Logout(c echo.Context) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "auth.logout")
	if err := h.Sessions.Logout(); err != nil {
		l.Error("logout failed", "error", err)
		return c.JSON(http.StatusInternalServerError, errorBody(MsgServerError))
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AuthHandler) Session(c echo.Context) error {
	sess, ok := h.Sessions.Current()
	if !ok {
		return c.JSON(http.StatusUnauthorized, errorBody("no active session"))
	}
	return c.JSON(http.StatusOK, sess)
}
