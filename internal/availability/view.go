package availability

import (
	"sort"
	"strings"
)

// Stock status labels shown in the inventory view.
const (
	StatusOut  = "Sin Stock"
	StatusLow  = "Stock Bajo"
	StatusOK   = "Disponible"
	lowStockAt = 5
)

func StatusFor(quantity int) string {
	switch {
	case quantity == 0:
		return StatusOut
	case quantity <= lowStockAt:
		return StatusLow
	default:
		return StatusOK
	}
}

// Filter keeps records whose name or brand contains term, case-insensitive.
// Stateless: recomputed on every call over the resolved sequence.
func Filter(records []Record, term string) []Record {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		out := make([]Record, len(records))
		copy(out, records)
		return out
	}
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if strings.Contains(strings.ToLower(r.Name), term) ||
			strings.Contains(strings.ToLower(r.BrandName), term) {
			out = append(out, r)
		}
	}
	return out
}

// Sort fields accepted by SortBy.
const (
	SortByName     = "name"
	SortByQuantity = "quantity"
	SortByPrice    = "price"
)

// SortBy returns a sorted copy; unknown fields fall back to name. Name and
// brand compare case-insensitively, matching how the listing displays them.
func SortBy(records []Record, field string, desc bool) []Record {
	out := make([]Record, len(records))
	copy(out, records)

	less := func(a, b Record) bool {
		switch field {
		case SortByQuantity:
			return a.Quantity < b.Quantity
		case SortByPrice:
			return a.Price < b.Price
		default:
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if desc {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out
}
