package cart

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"

	"github.com/juanbetancurm/frontBurger/internal/backend"
)

var (
	// ErrQuantity rejects update requests before any network traffic.
	ErrQuantity = errors.New("quantity must be at least 1")
	// ErrMutationInFlight means a mutation for the same article has not
	// resolved yet; the caller should disable the affected line, not queue.
	ErrMutationInFlight = errors.New("mutation already in flight for this article")
)

// Client synchronizes a local copy of the server-owned cart. The cache is only
// ever replaced wholesale with a cart the backend returned, never patched
// field by field, so server-side pricing and stock rules can't drift from
// what the user sees.
//
// Every cart-replacing call is tagged with a sequence number taken at issue
// time. A response whose sequence is below the last applied one is discarded:
// concurrent mutations on distinct lines may resolve out of order, and without
// the tag the earlier-issued response could clobber a newer cart.
type Client struct {
	api *backend.Client
	log *slog.Logger

	mu         sync.Mutex
	cached     Cart
	pending    map[int64]bool
	issuedSeq  uint64
	appliedSeq uint64
}

func NewClient(api *backend.Client, log *slog.Logger) *Client {
	return &Client{
		api:     api,
		log:     log,
		cached:  Empty(),
		pending: map[int64]bool{},
	}
}

// Snapshot returns a copy of the cached cart for rendering.
func (c *Client) Snapshot() Cart {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := Cart{Total: c.cached.Total, Items: make([]Line, len(c.cached.Items))}
	copy(out.Items, c.cached.Items)
	return out
}

// Pending reports whether a mutation for the article is still outstanding.
func (c *Client) Pending(articleID int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending[articleID]
}

func (c *Client) issue() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.issuedSeq++
	return c.issuedSeq
}

// apply replaces the cache wholesale unless a newer response already landed.
func (c *Client) apply(seq uint64, cart Cart) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if seq <= c.appliedSeq {
		c.log.Warn("discarding stale cart response", "seq", seq, "applied_seq", c.appliedSeq)
		return
	}
	c.appliedSeq = seq
	if cart.Items == nil {
		cart.Items = []Line{}
	}
	c.cached = cart
}

func (c *Client) begin(articleID int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending[articleID] {
		return fmt.Errorf("article %d: %w", articleID, ErrMutationInFlight)
	}
	c.pending[articleID] = true
	return nil
}

func (c *Client) end(articleID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.pending, articleID)
}

// Load fetches the active cart. Absence of a cart is not a failure: any error,
// transport or otherwise, resolves to the empty cart.
func (c *Client) Load(ctx context.Context) Cart {
	seq := c.issue()
	var fetched Cart
	if err := c.api.DoJSON(ctx, http.MethodGet, "/cart", nil, nil, &fetched); err != nil {
		c.log.Info("no existing cart, starting empty", "reason", err)
		c.apply(seq, Empty())
		return c.Snapshot()
	}
	c.apply(seq, fetched)
	return c.Snapshot()
}

type addItemRequest struct {
	ArticleID   int64   `json:"articleId"`
	ArticleName string  `json:"articleName"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

// AddItem submits a new line. A conflict means the article is already in the
// cart; the error wraps backend.ErrConflict so the caller can tell the user to
// adjust the quantity instead of retrying the add.
func (c *Client) AddItem(ctx context.Context, articleID int64, name string, price float64, quantity int) (Cart, error) {
	if quantity < 1 {
		quantity = 1
	}
	if err := c.begin(articleID); err != nil {
		return c.Snapshot(), err
	}
	defer c.end(articleID)

	seq := c.issue()
	req := addItemRequest{ArticleID: articleID, ArticleName: name, Quantity: quantity, Price: price}
	var updated Cart
	if err := c.api.DoJSON(ctx, http.MethodPost, "/cart/items", nil, req, &updated); err != nil {
		return c.Snapshot(), err
	}
	c.apply(seq, updated)
	c.log.Info("item added to cart", "article_id", articleID, "name", name)
	return c.Snapshot(), nil
}

type updateQuantityRequest struct {
	ArticleID int64 `json:"articleId"`
	Quantity  int   `json:"quantity"`
}

// UpdateQuantity changes a line's quantity. Quantities below 1 are rejected
// locally; no request leaves the process and the cache is untouched.
func (c *Client) UpdateQuantity(ctx context.Context, articleID int64, quantity int) (Cart, error) {
	if quantity < 1 {
		return c.Snapshot(), fmt.Errorf("article %d: %w", articleID, ErrQuantity)
	}
	if err := c.begin(articleID); err != nil {
		return c.Snapshot(), err
	}
	defer c.end(articleID)

	seq := c.issue()
	var updated Cart
	if err := c.api.DoJSON(ctx, http.MethodPut, "/cart/items", nil, updateQuantityRequest{ArticleID: articleID, Quantity: quantity}, &updated); err != nil {
		return c.Snapshot(), err
	}
	c.apply(seq, updated)
	return c.Snapshot(), nil
}

// RemoveItem deletes a line; the backend answers with the remaining cart.
func (c *Client) RemoveItem(ctx context.Context, articleID int64) (Cart, error) {
	if err := c.begin(articleID); err != nil {
		return c.Snapshot(), err
	}
	defer c.end(articleID)

	seq := c.issue()
	var updated Cart
	if err := c.api.DoJSON(ctx, http.MethodDelete, "/cart/items/"+strconv.FormatInt(articleID, 10), nil, nil, &updated); err != nil {
		return c.Snapshot(), err
	}
	c.apply(seq, updated)
	return c.Snapshot(), nil
}

// Clear issues the bulk delete and resets the cache to empty unconditionally;
// the clear endpoint returns no cart shape to wait for. The error, if any, is
// returned for surfacing only.
func (c *Client) Clear(ctx context.Context) error {
	seq := c.issue()
	err := c.api.DoJSON(ctx, http.MethodDelete, "/cart", nil, nil, nil)
	c.apply(seq, Empty())
	if err != nil {
		return err
	}
	c.log.Info("cart cleared")
	return nil
}
