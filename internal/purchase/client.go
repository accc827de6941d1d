package purchase

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/juanbetancurm/frontBurger/internal/backend"
)

type OrderItem struct {
	ArticleID   int64   `json:"articleId"`
	ArticleName string  `json:"articleName"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

type OrderRequest struct {
	Items       []OrderItem `json:"items"`
	TotalAmount float64     `json:"totalAmount"`
}

type OrderResponse struct {
	ID          int64   `json:"id"`
	TotalAmount float64 `json:"totalAmount"`
	Status      string  `json:"status"`
}

type DailySummary struct {
	Date         string  `json:"date"`
	TotalOrders  int     `json:"totalOrders"`
	TotalRevenue float64 `json:"totalRevenue"`
}

// Client talks to the purchase backend: order submission, the stock snapshot
// and the daily sales summary.
type Client struct {
	api *backend.Client
	log *slog.Logger
}

func NewClient(api *backend.Client, log *slog.Logger) *Client {
	return &Client{api: api, log: log}
}

func (c *Client) Complete(ctx context.Context, items []OrderItem, totalAmount float64) (OrderResponse, error) {
	req := OrderRequest{Items: items, TotalAmount: totalAmount}
	var resp OrderResponse
	if err := c.api.DoJSON(ctx, http.MethodPost, "/purchase/complete", nil, req, &resp); err != nil {
		return OrderResponse{}, err
	}
	c.log.Info("purchase completed", "order_id", resp.ID, "total", totalAmount)
	return resp, nil
}

// Availability returns the raw stock snapshot payload. The shape varies by
// backend version (bare array or wrapped object), so decoding is left to the
// availability resolver.
func (c *Client) Availability(ctx context.Context) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := c.api.DoJSON(ctx, http.MethodGet, "/purchase/availability", nil, nil, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// DailySummary fetches the sales summary for date (YYYY-MM-DD, empty means
// today). A 404 means the backend has no data for that day and resolves to a
// zero summary, not an error.
func (c *Client) DailySummary(ctx context.Context, date string) (DailySummary, error) {
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	query := url.Values{"date": {date}}

	var resp DailySummary
	err := c.api.DoJSON(ctx, http.MethodGet, "/purchase/sales/daily", query, nil, &resp)
	if err != nil {
		if errors.Is(err, backend.ErrNotFound) {
			c.log.Warn("no sales data for date", "date", date)
			return DailySummary{Date: date, TotalOrders: 0, TotalRevenue: 0}, nil
		}
		return DailySummary{}, err
	}
	if resp.Date == "" {
		resp.Date = date
	}
	return resp, nil
}
