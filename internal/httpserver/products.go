package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/juanbetancurm/frontBurger/internal/catalog"
	"github.com/juanbetancurm/frontBurger/internal/logging"
)

type ProductsHandler struct {
	Catalog *catalog.Client
}

type productsResponse struct {
	Articles   []catalog.Article  `json:"articles"`
	Categories []catalog.Category `json:"categories"`
	Brands     []catalog.Brand    `json:"brands"`
}

// Products loads the storefront data set. The category filter is applied
// client-side over the fetched articles, matching the POS grid behaviour.
func (h *ProductsHandler) Products(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "products.list")

	articles, err := h.Catalog.Articles(ctx, catalog.DefaultQuery())
	if err != nil {
		l.Error("articles fetch failed", "error", err)
		return backendError(c, err)
	}
	categories, err := h.Catalog.Categories(ctx, catalog.DefaultQuery())
	if err != nil {
		l.Error("categories fetch failed", "error", err)
		return backendError(c, err)
	}
	brands, err := h.Catalog.Brands(ctx, catalog.DefaultQuery())
	if err != nil {
		l.Error("brands fetch failed", "error", err)
		return backendError(c, err)
	}

	if raw := c.QueryParam("category"); raw != "" {
		categoryID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, errorBody("invalid category id"))
		}
		articles = h.Catalog.FilterByCategory(categoryID)
	}

	return c.JSON(http.StatusOK, productsResponse{
		Articles:   articles,
		Categories: categories,
		Brands:     brands,
	})
}
