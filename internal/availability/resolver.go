package availability

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/juanbetancurm/frontBurger/internal/catalog"
	"github.com/juanbetancurm/frontBurger/internal/purchase"
)

// NoBrand is the placeholder shown when a source carries no brand name.
const NoBrand = "Sin marca"

// ErrMsgUnavailable is surfaced when both sources fail.
const ErrMsgUnavailable = "No se pudo obtener la información de disponibilidad"

type Record struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	BrandName   string  `json:"brandName"`
	Description string  `json:"description,omitempty"`
}

// wrapperKeys are the conventional envelope fields probed when the primary
// endpoint answers with an object instead of a bare array.
var wrapperKeys = []string{"items", "products", "data", "content", "availability"}

// Resolver produces the inventory view from the purchase backend's stock
// snapshot, falling back to the article listing when the snapshot is down or
// unrecognizable. Both shapes normalize into Record.
type Resolver struct {
	purchases *purchase.Client
	catalog   *catalog.Client
	log       *slog.Logger
}

func NewResolver(purchases *purchase.Client, cat *catalog.Client, log *slog.Logger) *Resolver {
	return &Resolver{purchases: purchases, catalog: cat, log: log}
}

// Resolve never fails: it returns the records it could get, possibly none,
// plus a display message that is empty on success.
func (r *Resolver) Resolve(ctx context.Context) ([]Record, string) {
	raw, err := r.purchases.Availability(ctx)
	if err == nil {
		if records, ok := decodePrimary(raw); ok {
			return records, ""
		}
		r.log.Warn("availability payload has no recognizable shape, falling back to catalog")
	} else {
		r.log.Warn("availability endpoint failed, falling back to catalog", "error", err)
	}

	articles, err := r.catalog.Articles(ctx, catalog.ListQuery{Page: 0, Size: 100, SortBy: "name", Asc: true})
	if err != nil {
		r.log.Error("catalog fallback failed", "error", err)
		return []Record{}, ErrMsgUnavailable
	}
	return FromArticles(articles), ""
}

// primaryRecord tolerates null or missing numeric and text fields.
type primaryRecord struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Quantity    *int     `json:"quantity"`
	Price       *float64 `json:"price"`
	BrandName   *string  `json:"brandName"`
	Description *string  `json:"description"`
}

func decodePrimary(raw json.RawMessage) ([]Record, bool) {
	var entries []primaryRecord
	if err := json.Unmarshal(raw, &entries); err == nil {
		return normalizePrimary(entries), true
	}

	var wrapped map[string]json.RawMessage
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, false
	}
	for _, key := range wrapperKeys {
		inner, ok := wrapped[key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(inner, &entries); err == nil {
			return normalizePrimary(entries), true
		}
	}
	return nil, false
}

func normalizePrimary(entries []primaryRecord) []Record {
	records := make([]Record, 0, len(entries))
	for _, e := range entries {
		rec := Record{ID: e.ID, Name: e.Name, BrandName: NoBrand}
		if e.Quantity != nil {
			rec.Quantity = *e.Quantity
		}
		if e.Price != nil {
			rec.Price = *e.Price
		}
		if e.BrandName != nil && *e.BrandName != "" {
			rec.BrandName = *e.BrandName
		}
		if e.Description != nil {
			rec.Description = *e.Description
		}
		records = append(records, rec)
	}
	return records
}

// FromArticles maps the catalog listing onto the availability shape.
func FromArticles(articles []catalog.Article) []Record {
	records := make([]Record, 0, len(articles))
	for _, a := range articles {
		rec := Record{
			ID:          a.ID,
			Name:        a.Name,
			Quantity:    a.Quantity,
			Price:       a.Price,
			BrandName:   a.BrandName,
			Description: a.Description,
		}
		if rec.BrandName == "" {
			rec.BrandName = NoBrand
		}
		records = append(records, rec)
	}
	return records
}
