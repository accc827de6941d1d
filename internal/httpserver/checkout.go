package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/juanbetancurm/frontBurger/internal/checkout"
	"github.com/juanbetancurm/frontBurger/internal/logging"
)

type CheckoutHandler struct {
	Checkout *checkout.Orchestrator
}

type checkoutStatus struct {
	State  checkout.State   `json:"state"`
	Error  string           `json:"error,omitempty"`
	Result *checkout.Result `json:"result,omitempty"`
}

func (h *CheckoutHandler) status() checkoutStatus {
	st := checkoutStatus{State: h.Checkout.State(), Error: h.Checkout.LastError()}
	if result, ok := h.Checkout.Result(); ok {
		st.Result = &result
	}
	return st
}

func (h *CheckoutHandler) Status(c echo.Context) error {
	return c.JSON(http.StatusOK, h.status())
}

func (h *CheckoutHandler) Begin(c echo.Context) error {
	if err := h.Checkout.Begin(); err != nil {
		return c.JSON(http.StatusConflict, errorBody(err.Error()))
	}
	return c.JSON(http.StatusOK, h.status())
}

func (h *CheckoutHandler) Confirm(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "checkout.confirm")

	result, err := h.Checkout.Confirm(ctx)
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrEmptyCart):
			return c.JSON(http.StatusBadRequest, errorBody(checkout.ErrEmptyCart.Error()))
		case errors.Is(err, checkout.ErrNotConfirming):
			return c.JSON(http.StatusConflict, errorBody("no hay una compra en confirmación"))
		}
		l.Error("purchase failed", "error", err)
		return backendError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

func (h *CheckoutHandler) Dismiss(c echo.Context) error {
	if err := h.Checkout.Dismiss(); err != nil {
		return c.JSON(http.StatusConflict, errorBody("no hay una compra que cerrar"))
	}
	return c.JSON(http.StatusOK, h.status())
}
