package checkout

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/juanbetancurm/frontBurger/internal/backend"
	"github.com/juanbetancurm/frontBurger/internal/cart"
	"github.com/juanbetancurm/frontBurger/internal/catalog"
	"github.com/juanbetancurm/frontBurger/internal/logging"
	"github.com/juanbetancurm/frontBurger/internal/purchase"
)

type stubTokens struct{}

func (stubTokens) Token() string { return "tok" }
func (stubTokens) Invalidate()   {}

// testBackend fakes the cart, purchase and catalog services on one server and
// records the order in which endpoints were hit.
type testBackend struct {
	mu    sync.Mutex
	calls []string

	failComplete bool
	failCleanup  bool

	initialCart cart.Cart
}

func (b *testBackend) record(name string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = append(b.calls, name)
}

func (b *testBackend) recorded() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.calls))
	copy(out, b.calls)
	return out
}

func (b *testBackend) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/cart":
			b.record("get_cart")
			json.NewEncoder(w).Encode(b.initialCart)
		case r.Method == http.MethodDelete && r.URL.Path == "/cart":
			b.record("clear_cart")
			if b.failCleanup {
				w.WriteHeader(http.StatusInternalServerError)
			}
		case r.Method == http.MethodPost && r.URL.Path == "/purchase/complete":
			b.record("complete")
			if b.failComplete {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			var req purchase.OrderRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			json.NewEncoder(w).Encode(purchase.OrderResponse{ID: 42, TotalAmount: req.TotalAmount, Status: "completed"})
		case r.Method == http.MethodGet && r.URL.Path == "/article/articles":
			b.record("articles")
			if b.failCleanup {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			json.NewEncoder(w).Encode([]catalog.Article{})
		default:
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	}
}

func newOrchestrator(t *testing.T, b *testBackend) (*Orchestrator, *cart.Client) {
	t.Helper()
	srv := httptest.NewServer(b.handler(t))
	t.Cleanup(srv.Close)

	log := logging.New("error")
	api, err := backend.NewClient(srv.URL, 5*time.Second, stubTokens{}, log)
	require.NoError(t, err)

	cartClient := cart.NewClient(api, log)
	orch := NewOrchestrator(cartClient, purchase.NewClient(api, log), catalog.NewClient(api, log), log)
	return orch, cartClient
}

func oneLineCart() cart.Cart {
	return cart.Cart{
		Items: []cart.Line{{ArticleID: 1, ArticleName: "Burger", Quantity: 2, Price: 10, Subtotal: 20}},
		Total: 20,
	}
}

func TestConfirmEmptyCartRejectedBeforeNetwork(t *testing.T) {
	b := &testBackend{}
	orch, _ := newOrchestrator(t, b)

	require.NoError(t, orch.Begin())
	_, err := orch.Confirm(context.Background())
	require.ErrorIs(t, err, ErrEmptyCart)

	require.Equal(t, StateConfirming, orch.State())
	require.Empty(t, b.recorded())
}

func TestConfirmHappyPath(t *testing.T) {
	b := &testBackend{initialCart: oneLineCart()}
	orch, cartClient := newOrchestrator(t, b)

	cartClient.Load(context.Background())
	require.NoError(t, orch.Begin())

	result, err := orch.Confirm(context.Background())
	require.NoError(t, err)
	require.Equal(t, Result{OrderID: 42, Total: 20}, result)
	require.Equal(t, StateCompleted, orch.State())

	got, ok := orch.Result()
	require.True(t, ok)
	require.Equal(t, result, got)

	// Local cart reset and the steps ran in order.
	require.Empty(t, cartClient.Snapshot().Items)
	require.Equal(t, []string{"get_cart", "complete", "clear_cart", "articles"}, b.recorded())

	require.NoError(t, orch.Dismiss())
	require.Equal(t, StateIdle, orch.State())
}

func TestOrderFailureLeavesCartUntouched(t *testing.T) {
	b := &testBackend{initialCart: oneLineCart(), failComplete: true}
	orch, cartClient := newOrchestrator(t, b)

	cartClient.Load(context.Background())
	require.NoError(t, orch.Begin())

	_, err := orch.Confirm(context.Background())
	require.ErrorIs(t, err, backend.ErrServer)
	require.Equal(t, StateFailed, orch.State())
	require.NotEmpty(t, orch.LastError())

	require.Equal(t, oneLineCart(), cartClient.Snapshot())
	require.Equal(t, []string{"get_cart", "complete"}, b.recorded())

	require.NoError(t, orch.Dismiss())
	require.Equal(t, StateIdle, orch.State())
}

func TestCleanupFailuresDoNotFailThePurchase(t *testing.T) {
	b := &testBackend{initialCart: oneLineCart(), failCleanup: true}
	orch, cartClient := newOrchestrator(t, b)

	cartClient.Load(context.Background())
	require.NoError(t, orch.Begin())

	result, err := orch.Confirm(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(42), result.OrderID)
	require.Equal(t, StateCompleted, orch.State())

	// Local reset still happens even though the server-side clear failed.
	require.Empty(t, cartClient.Snapshot().Items)
}

func TestBeginWhileBusy(t *testing.T) {
	orch, _ := newOrchestrator(t, &testBackend{})

	require.NoError(t, orch.Begin())
	require.ErrorIs(t, orch.Begin(), ErrBusy)
}

func TestConfirmWithoutBegin(t *testing.T) {
	orch, _ := newOrchestrator(t, &testBackend{})

	_, err := orch.Confirm(context.Background())
	require.ErrorIs(t, err, ErrNotConfirming)
}

func TestDismissFromIdleRejected(t *testing.T) {
	orch, _ := newOrchestrator(t, &testBackend{})
	require.Error(t, orch.Dismiss())
}
