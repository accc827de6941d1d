package checkout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/juanbetancurm/frontBurger/internal/cart"
	"github.com/juanbetancurm/frontBurger/internal/catalog"
	"github.com/juanbetancurm/frontBurger/internal/purchase"
)

type State string

const (
	StateIdle       State = "idle"
	StateConfirming State = "confirming"
	StateProcessing State = "processing"
	StateCompleted  State = "completed"
	StateFailed     State = "failed"
)

var (
	ErrEmptyCart     = errors.New("el carrito está vacío")
	ErrNotConfirming = errors.New("no purchase confirmation in progress")
	ErrBusy          = errors.New("checkout already in progress")
)

type Result struct {
	OrderID int64   `json:"orderId"`
	Total   float64 `json:"total"`
}

// Orchestrator runs purchase completion as one user-visible transaction:
// submit the order, clear the server cart, reset the local cart, refresh the
// catalog. The steps are strictly ordered and it is not atomic across
// services: once the order submission succeeds the purchase is committed, and
// later cleanup failures are logged, never surfaced as a purchase failure.
type Orchestrator struct {
	cart    *cart.Client
	orders  *purchase.Client
	catalog *catalog.Client
	log     *slog.Logger

	mu      sync.Mutex
	state   State
	lastErr string
	result  Result
}

func NewOrchestrator(cartClient *cart.Client, orders *purchase.Client, cat *catalog.Client, log *slog.Logger) *Orchestrator {
	return &Orchestrator{
		cart:    cartClient,
		orders:  orders,
		catalog: cat,
		log:     log,
		state:   StateIdle,
	}
}

func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

func (o *Orchestrator) LastError() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.lastErr
}

func (o *Orchestrator) Result() (Result, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.result, o.state == StateCompleted
}

// Begin opens the confirmation step. No network call happens here.
func (o *Orchestrator) Begin() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.state != StateIdle {
		return fmt.Errorf("state %s: %w", o.state, ErrBusy)
	}
	o.state = StateConfirming
	o.lastErr = ""
	return nil
}

// Confirm executes the purchase sequence. An empty cart is rejected before
// any request leaves the process and the confirmation stays open.
func (o *Orchestrator) Confirm(ctx context.Context) (Result, error) {
	o.mu.Lock()
	if o.state != StateConfirming {
		o.mu.Unlock()
		return Result{}, fmt.Errorf("state %s: %w", o.state, ErrNotConfirming)
	}
	snapshot := o.cart.Snapshot()
	if len(snapshot.Items) == 0 {
		o.mu.Unlock()
		return Result{}, ErrEmptyCart
	}
	o.state = StateProcessing
	o.mu.Unlock()

	items := make([]purchase.OrderItem, 0, len(snapshot.Items))
	for _, line := range snapshot.Items {
		items = append(items, purchase.OrderItem{
			ArticleID:   line.ArticleID,
			ArticleName: line.ArticleName,
			Quantity:    line.Quantity,
			Price:       line.Price,
		})
	}

	resp, err := o.orders.Complete(ctx, items, snapshot.Total)
	if err != nil {
		o.mu.Lock()
		o.state = StateFailed
		o.lastErr = err.Error()
		o.mu.Unlock()
		return Result{}, err
	}

	// Order is committed. Everything after this is best-effort cleanup.
	if err := o.cart.Clear(ctx); err != nil {
		o.log.Error("cart clear after purchase", "order_id", resp.ID, "error", err)
	}
	if _, err := o.catalog.Refresh(ctx); err != nil {
		o.log.Error("catalog refresh after purchase", "order_id", resp.ID, "error", err)
	}

	result := Result{OrderID: resp.ID, Total: snapshot.Total}
	o.mu.Lock()
	o.state = StateCompleted
	o.result = result
	o.mu.Unlock()
	return result, nil
}

// Dismiss returns to Idle from the confirmation view or a terminal state.
func (o *Orchestrator) Dismiss() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	switch o.state {
	case StateConfirming, StateCompleted, StateFailed:
		o.state = StateIdle
		o.lastErr = ""
		o.result = Result{}
		return nil
	default:
		return fmt.Errorf("state %s: %w", o.state, ErrNotConfirming)
	}
}
