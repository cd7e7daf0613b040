// Package query implements the pure derived views over the cached item
// collection: text/category filtering, stable sorting, and the mine/others
// ownership partition. Everything here is synchronous and side-effect free.
package query

import (
	"sort"
	"strings"

	"github.com/dkolesn/swapmart/internal/model"
)

// Order selects the sort applied to a listing view.
type Order string

const (
	OrderNewest    Order = "latest"
	OrderOldest    Order = "oldest"
	OrderPriceHigh Order = "price_high"
	OrderPriceLow  Order = "price_low"
)

// ParseOrder maps a user-supplied sort name to an Order, defaulting to newest.
func ParseOrder(s string) Order {
	switch Order(s) {
	case OrderOldest, OrderPriceHigh, OrderPriceLow:
		return Order(s)
	default:
		return OrderNewest
	}
}

// Params are the browse filters. Zero values disable each criterion.
type Params struct {
	Search     string
	CategoryID int64
}

// Filter returns the items matching params: case-insensitive substring match
// over title and description, and category-id equality. Filtering is
// idempotent; applying the same params twice yields the same set.
func Filter(items []model.Item, p Params) []model.Item {
	search := strings.ToLower(strings.TrimSpace(p.Search))
	out := make([]model.Item, 0, len(items))
	for _, it := range items {
		if search != "" &&
			!strings.Contains(strings.ToLower(it.Title), search) &&
			!strings.Contains(strings.ToLower(it.Description), search) {
			continue
		}
		if p.CategoryID != 0 && it.CategoryID != p.CategoryID {
			continue
		}
		out = append(out, it)
	}
	return out
}

// Sort returns a sorted copy of items; the input is untouched. Sorting is
// stable: items with equal keys keep their original relative order.
func Sort(items []model.Item, order Order) []model.Item {
	out := make([]model.Item, len(items))
	copy(out, items)
	switch order {
	case OrderOldest:
		sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	case OrderPriceHigh:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price() > out[j].Price() })
	case OrderPriceLow:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price() < out[j].Price() })
	default: // newest first
		sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	}
	return out
}

// Partition splits items by ownership relative to userID: mine holds every
// item the user owns regardless of approval; others holds only approved items
// belonging to someone else. Recomputed from attributes, never stored.
func Partition(items []model.Item, userID int64) (mine, others []model.Item) {
	for _, it := range items {
		switch {
		case userID != 0 && it.OwnerID == userID:
			mine = append(mine, it)
		case it.Approved():
			others = append(others, it)
		}
	}
	return mine, others
}
