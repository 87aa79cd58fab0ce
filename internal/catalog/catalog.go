// Package catalog resolves article numbers to warehouse items.
package catalog

import (
	"context"
	"time"

	"buildboard-api/internal/model"
)

// DefaultLookupDelay is the simulated inventory-service latency.
const DefaultLookupDelay = 800 * time.Millisecond

// Catalog looks items up by exact article number. A missing article yields
// (nil, nil); errors are reserved for the lookup itself failing.
type Catalog interface {
	Lookup(ctx context.Context, articleNumber string) (*model.Item, error)
}

// StaticCatalog serves a fixed item table after a fixed delay, standing in
// for a real inventory service.
type StaticCatalog struct {
	items map[string]model.Item
	delay time.Duration
}

// NewStaticCatalog copies items into a new catalog. A negative delay is
// treated as zero.
func NewStaticCatalog(items []model.Item, delay time.Duration) *StaticCatalog {
	if delay < 0 {
		delay = 0
	}
	m := make(map[string]model.Item, len(items))
	for _, it := range items {
		m[it.ArticleNumber] = it
	}
	return &StaticCatalog{items: m, delay: delay}
}

// NewSeededCatalog returns a StaticCatalog over SeedItems.
func NewSeededCatalog(delay time.Duration) *StaticCatalog {
	return NewStaticCatalog(SeedItems(), delay)
}

// Lookup waits for the configured delay and then resolves articleNumber.
// The only error is ctx ending before the delay elapses.
func (c *StaticCatalog) Lookup(ctx context.Context, articleNumber string) (*model.Item, error) {
	if c.delay > 0 {
		timer := time.NewTimer(c.delay)
		defer timer.Stop()

		select {
		case <-timer.C:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	it, ok := c.items[articleNumber]
	if !ok {
		return nil, nil
	}
	return &it, nil
}

// Len returns the number of items in the catalog.
func (c *StaticCatalog) Len() int {
	return len(c.items)
}

// SeedItems returns the built-in demo inventory.
func SeedItems() []model.Item {
	return []model.Item{
		{ArticleNumber: "123.456.78", Name: "LACK Side Table, White", WarehouseLocation: "Aisle 12, Bin 04", StockStatus: model.StockInStock},
		{ArticleNumber: "987.654.32", Name: "BILLY Bookcase, Birch", WarehouseLocation: "Aisle 05, Bin 12", StockStatus: model.StockLowStock},
		{ArticleNumber: "456.789.01", Name: "MALM Bed Frame, Black-Brown", WarehouseLocation: "Aisle 22, Bin 08", StockStatus: model.StockInStock},
		{ArticleNumber: "111.222.33", Name: "POÄNG Armchair, Beige", WarehouseLocation: "Aisle 01, Bin 15", StockStatus: model.StockOutOfStock},
	}
}

var _ Catalog = (*StaticCatalog)(nil)
