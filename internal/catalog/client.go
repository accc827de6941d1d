package catalog

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"sync"

	"github.com/juanbetancurm/frontBurger/internal/backend"
)

// ListQuery mirrors the paging parameters the catalog backends expect.
type ListQuery struct {
	Page   int
	Size   int
	SortBy string
	Asc    bool
}

func (q ListQuery) normalize() ListQuery {
	if q.Page < 0 {
		q.Page = 0
	}
	if q.Size <= 0 || q.Size > 100 {
		q.Size = 50
	}
	if q.SortBy == "" {
		q.SortBy = "name"
	}
	return q
}

func DefaultQuery() ListQuery {
	return ListQuery{Page: 0, Size: 50, SortBy: "name", Asc: true}
}

// Client is a read-through view of the article, category and brand listings.
// It keeps the last successful fetch in memory for rendering; it never caches
// across failures and never mutates anything server-side.
type Client struct {
	api *backend.Client
	log *slog.Logger

	mu         sync.Mutex
	articles   []Article
	categories []Category
	brands     []Brand
}

func NewClient(api *backend.Client, log *slog.Logger) *Client {
	return &Client{api: api, log: log}
}

func (c *Client) Articles(ctx context.Context, q ListQuery) ([]Article, error) {
	q = q.normalize()
	sortOrder := "asc"
	if !q.Asc {
		sortOrder = "desc"
	}
	query := url.Values{
		"page":      {strconv.Itoa(q.Page)},
		"size":      {strconv.Itoa(q.Size)},
		"sortBy":    {q.SortBy},
		"sortOrder": {sortOrder},
	}

	var articles []Article
	if err := c.api.DoJSON(ctx, http.MethodGet, "/article/articles", query, nil, &articles); err != nil {
		return nil, err
	}
	if articles == nil {
		articles = []Article{}
	}

	c.mu.Lock()
	c.articles = articles
	c.mu.Unlock()
	return articles, nil
}

func (c *Client) Categories(ctx context.Context, q ListQuery) ([]Category, error) {
	var categories []Category
	if err := c.api.DoJSON(ctx, http.MethodGet, "/category/categoriespage", pagedQuery(q), nil, &categories); err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []Category{}
	}

	c.mu.Lock()
	c.categories = categories
	c.mu.Unlock()
	return categories, nil
}

func (c *Client) Brands(ctx context.Context, q ListQuery) ([]Brand, error) {
	var brands []Brand
	if err := c.api.DoJSON(ctx, http.MethodGet, "/brand/brandspage", pagedQuery(q), nil, &brands); err != nil {
		return nil, err
	}
	if brands == nil {
		brands = []Brand{}
	}

	c.mu.Lock()
	c.brands = brands
	c.mu.Unlock()
	return brands, nil
}

// pagedQuery builds the category/brand paging shape, which uses a boolean
// asc flag instead of the articles endpoint's sortOrder string.
func pagedQuery(q ListQuery) url.Values {
	q = q.normalize()
	return url.Values{
		"page":   {strconv.Itoa(q.Page)},
		"size":   {strconv.Itoa(q.Size)},
		"sortBy": {q.SortBy},
		"asc":    {strconv.FormatBool(q.Asc)},
	}
}

// Refresh re-fetches the article listing with the default paging, used after
// a purchase so stock numbers reflect what was just sold.
func (c *Client) Refresh(ctx context.Context) ([]Article, error) {
	return c.Articles(ctx, DefaultQuery())
}

func (c *Client) CachedArticles() []Article {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Article, len(c.articles))
	copy(out, c.articles)
	return out
}

func (c *Client) CachedCategories() []Category {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Category, len(c.categories))
	copy(out, c.categories)
	return out
}

func (c *Client) CachedBrands() []Brand {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Brand, len(c.brands))
	copy(out, c.brands)
	return out
}

// FilterByCategory is a client-local filter over the cached articles;
// categoryID 0 means no filter.
func (c *Client) FilterByCategory(categoryID int64) []Article {
	articles := c.CachedArticles()
	if categoryID == 0 {
		return articles
	}
	out := make([]Article, 0, len(articles))
	for _, a := range articles {
		if a.CategoryID == categoryID {
			out = append(out, a)
		}
	}
	return out
}
