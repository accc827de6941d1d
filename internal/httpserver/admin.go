package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/juanbetancurm/frontBurger/internal/availability"
	"github.com/juanbetancurm/frontBurger/internal/logging"
	"github.com/juanbetancurm/frontBurger/internal/purchase"
)

// AdminHandler serves the auxiliar-facing views: inventory availability and
// the daily sales summary.
type AdminHandler struct {
	Resolver  *availability.Resolver
	Purchases *purchase.Client
}

type availabilityRow struct {
	availability.Record
	Status string `json:"status"`
}

type availabilityResponse struct {
	Products []availabilityRow `json:"products"`
	Error    string            `json:"error,omitempty"`
}

func (h *AdminHandler) Availability(c echo.Context) error {
	ctx := c.Request().Context()

	records, errMsg := h.Resolver.Resolve(ctx)

	records = availability.Filter(records, c.QueryParam("search"))
	records = availability.SortBy(records, c.QueryParam("sortBy"), c.QueryParam("order") == "desc")

	rows := make([]availabilityRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, availabilityRow{Record: rec, Status: availability.StatusFor(rec.Quantity)})
	}
	return c.JSON(http.StatusOK, availabilityResponse{Products: rows, Error: errMsg})
}

func (h *AdminHandler) DailySales(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.sales")

	summary, err := h.Purchases.DailySummary(ctx, c.QueryParam("date"))
	if err != nil {
		l.Error("sales summary fetch failed", "error", err)
		return backendError(c, err)
	}
	return c.JSON(http.StatusOK, summary)
}
