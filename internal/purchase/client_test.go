package purchase

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/juanbetancurm/frontBurger/internal/backend"
	"github.com/juanbetancurm/frontBurger/internal/logging"
)

type stubTokens struct{}

func (stubTokens) Token() string { return "tok" }
func (stubTokens) Invalidate()   {}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	api, err := backend.NewClient(srv.URL, 5*time.Second, stubTokens{}, logging.New("error"))
	require.NoError(t, err)
	return NewClient(api, logging.New("error"))
}

func TestCompleteSendsOrderSnapshot(t *testing.T) {
	var got OrderRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/purchase/complete", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(OrderResponse{ID: 42, TotalAmount: 20, Status: "completed"})
	})

	items := []OrderItem{{ArticleID: 1, ArticleName: "Burger", Quantity: 2, Price: 10}}
	resp, err := c.Complete(context.Background(), items, 20)
	require.NoError(t, err)
	require.Equal(t, int64(42), resp.ID)

	require.Equal(t, items, got.Items)
	require.Equal(t, float64(20), got.TotalAmount)
}

func TestCompleteServerError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := c.Complete(context.Background(), nil, 0)
	require.ErrorIs(t, err, backend.ErrServer)
}

func TestDailySummaryNotFoundResolvesToZeroData(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "2024-01-01", r.URL.Query().Get("date"))
		w.WriteHeader(http.StatusNotFound)
	})

	summary, err := c.DailySummary(context.Background(), "2024-01-01")
	require.NoError(t, err)
	require.Equal(t, DailySummary{Date: "2024-01-01", TotalOrders: 0, TotalRevenue: 0}, summary)
}

func TestDailySummaryDefaultsToToday(t *testing.T) {
	var gotDate string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotDate = r.URL.Query().Get("date")
		json.NewEncoder(w).Encode(DailySummary{TotalOrders: 3, TotalRevenue: 150})
	})

	summary, err := c.DailySummary(context.Background(), "")
	require.NoError(t, err)
	require.Equal(t, time.Now().Format("2006-01-02"), gotDate)
	require.Equal(t, 3, summary.TotalOrders)
	require.Equal(t, gotDate, summary.Date)
}

func TestAvailabilityReturnsRawPayload(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/purchase/availability", r.URL.Path)
		w.Write([]byte(`[{"id":1,"name":"X"}]`))
	})

	raw, err := c.Availability(context.Background())
	require.NoError(t, err)
	require.JSONEq(t, `[{"id":1,"name":"X"}]`, string(raw))
}
