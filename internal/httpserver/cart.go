package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/juanbetancurm/frontBurger/internal/cart"
	"github.com/juanbetancurm/frontBurger/internal/logging"
)

type CartHandler struct {
	Cart *cart.Client
}

func (h *CartHandler) GetCart(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Cart.Load(c.Request().Context()))
}

type addItemForm struct {
	ArticleID   int64   `json:"articleId"`
	ArticleName string  `json:"articleName"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

func (h *CartHandler) AddItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add")

	var form addItemForm
	if err := c.Bind(&form); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("invalid request body"))
	}
	if form.ArticleID <= 0 {
		return c.JSON(http.StatusBadRequest, errorBody("articleId is required"))
	}

	updated, err := h.Cart.AddItem(ctx, form.ArticleID, form.ArticleName, form.Price, form.Quantity)
	if err != nil {
		if errors.Is(err, cart.ErrMutationInFlight) {
			return c.JSON(http.StatusConflict, errorBody("la línea ya tiene una operación en curso"))
		}
		l.Warn("add item failed", "article_id", form.ArticleID, "error", err)
		return backendError(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

type updateQuantityForm struct {
	ArticleID int64 `json:"articleId"`
	Quantity  int   `json:"quantity"`
}

func (h *CartHandler) UpdateQuantity(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.update")

	var form updateQuantityForm
	if err := c.Bind(&form); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("invalid request body"))
	}

	updated, err := h.Cart.UpdateQuantity(ctx, form.ArticleID, form.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, cart.ErrQuantity):
			return c.JSON(http.StatusBadRequest, errorBody("la cantidad debe ser al menos 1"))
		case errors.Is(err, cart.ErrMutationInFlight):
			return c.JSON(http.StatusConflict, errorBody("la línea ya tiene una operación en curso"))
		}
		l.Warn("update quantity failed", "article_id", form.ArticleID, "error", err)
		return backendError(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *CartHandler) RemoveItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.remove")

	articleID, err := strconv.ParseInt(c.Param("articleId"), 10, 64)
	if err != nil || articleID <= 0 {
		return c.JSON(http.StatusBadRequest, errorBody("invalid article id"))
	}

	updated, err := h.Cart.RemoveItem(ctx, articleID)
	if err != nil {
		if errors.Is(err, cart.ErrMutationInFlight) {
			return c.JSON(http.StatusConflict, errorBody("la línea ya tiene una operación en curso"))
		}
		l.Warn("remove item failed", "article_id", articleID, "error", err)
		return backendError(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *CartHandler) Clear(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.clear")

	if err := h.Cart.Clear(ctx); err != nil {
		l.Warn("cart clear failed", "error", err)
		return backendError(c, err)
	}
	return c.JSON(http.StatusOK, h.Cart.Snapshot())
}
